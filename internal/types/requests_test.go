package types

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateJobRequestValidate(t *testing.T) {
	valid := CreateJobRequest{
		Title:       "Backend Engineer Intern",
		Description: "Build and operate Go services.",
		Skills:      []string{"Go", "PostgreSQL"},
		Experience:  "0-1 years",
	}
	require.NoError(t, valid.Validate())

	missingTitle := valid
	missingTitle.Title = ""
	assert.Error(t, missingTitle.Validate())

	noSkills := valid
	noSkills.Skills = nil
	assert.Error(t, noSkills.Validate())

	emptySkill := valid
	emptySkill.Skills = []string{"Go", ""}
	assert.Error(t, emptySkill.Validate())
}

func TestUpdateRoleRequestValidate(t *testing.T) {
	assert.NoError(t, (&UpdateRoleRequest{Role: "STUDENT"}).Validate())
	assert.NoError(t, (&UpdateRoleRequest{Role: "RECRUITER"}).Validate())
	assert.Error(t, (&UpdateRoleRequest{Role: "ADMIN"}).Validate())
	assert.Error(t, (&UpdateRoleRequest{}).Validate())
}

func TestUpdateApplicationStatusRequestValidate(t *testing.T) {
	for _, status := range []string{"PENDING", "SHORTLISTED", "REJECTED"} {
		assert.NoError(t, (&UpdateApplicationStatusRequest{Status: status}).Validate())
	}
	assert.Error(t, (&UpdateApplicationStatusRequest{Status: "HIRED"}).Validate())
}

func TestStartInterviewRequestValidate(t *testing.T) {
	assert.NoError(t, (&StartInterviewRequest{JobID: uuid.New()}).Validate())
	assert.Error(t, (&StartInterviewRequest{}).Validate())
}

func TestSubmitAnswerRequestValidate(t *testing.T) {
	idx := 0
	assert.NoError(t, (&SubmitAnswerRequest{QuestionIndex: &idx, Answer: "I would use a worker pool."}).Validate())

	missingIndex := &SubmitAnswerRequest{Answer: "an answer"}
	assert.Error(t, missingIndex.Validate())

	emptyAnswer := &SubmitAnswerRequest{QuestionIndex: &idx}
	assert.Error(t, emptyAnswer.Validate())
}
