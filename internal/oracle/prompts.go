package oracle

import (
	"encoding/json"
	"fmt"
	"strings"
)

// promptSpec describes a single oracle operation: the task preamble, the
// exact JSON shape the model must return, and the named input sections.
type promptSpec struct {
	task     string
	shape    string
	sections []promptSection
}

type promptSection struct {
	name string
	body string
}

// build assembles the final prompt. The shape sketch and the "JSON only"
// instruction are repeated verbatim for every operation; models drift
// without them.
func (p promptSpec) build() string {
	var sb strings.Builder

	sb.WriteString(p.task)
	sb.WriteString("\n\n")

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n")
	sb.WriteString(p.shape)
	sb.WriteString("\n\n")
	sb.WriteString("IMPORTANT: Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n")

	for _, s := range p.sections {
		sb.WriteString("\n")
		sb.WriteString(s.name)
		sb.WriteString(":\n\"\"\"\n")
		sb.WriteString(s.body)
		sb.WriteString("\n\"\"\"\n")
	}

	return sb.String()
}

// mustJSON marshals v for embedding into a prompt section. Domain values
// handed to the oracle are plain structs and slices; marshalling cannot fail.
func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("oracle: marshal prompt input: %v", err))
	}
	return string(b)
}

func parseResumePrompt(resumeText string) string {
	return promptSpec{
		task: `You are an expert at parsing resumes. Extract structured data from the resume text provided.
Copy skill names as they appear; do not invent skills that are not in the text.`,
		shape: `{
  "name": "string",
  "skills": ["string"],
  "projects": [{"name": "string", "description": "string", "technologies": ["string"]}],
  "experience": [{"company": "string", "position": "string", "duration": "string", "description": "string"}],
  "education": [{"institution": "string", "degree": "string", "field": "string", "year": "string"}]
}`,
		sections: []promptSection{{name: "Resume text", body: resumeText}},
	}.build()
}

func generateQuestionsPrompt(resume *ParsedResume, jobDescription string) string {
	return promptSpec{
		task: fmt.Sprintf(`You are an expert interviewer. Generate interview questions tailored to the candidate's resume and the job description.
Generate exactly %d technical questions and exactly %d behavioral questions.`, NumTechnical, NumBehavioral),
		shape: `{
  "technical": ["string"],
  "behavioral": ["string"]
}`,
		sections: []promptSection{
			{name: "Candidate resume", body: mustJSON(resume)},
			{name: "Job description", body: jobDescription},
		},
	}.build()
}

func evaluateAnswerPrompt(question, answer string, resume *ParsedResume, jobDescription string) string {
	return promptSpec{
		task: `You are an expert interviewer evaluating a candidate's answer.
Score the answer from 0 to 10 and assess confidence, strengths, and weaknesses. Include a model answer that would have scored higher.`,
		shape: `{
  "score": 0,
  "confidence": "low|medium|high",
  "strengths": ["string"],
  "weaknesses": ["string"],
  "model_answer": "string"
}`,
		sections: []promptSection{
			{name: "Question", body: question},
			{name: "Candidate answer", body: answer},
			{name: "Candidate resume", body: mustJSON(resume)},
			{name: "Job description", body: jobDescription},
		},
	}.build()
}

func matchScorePrompt(resume *ParsedResume, jobDescription string, requiredSkills []string) string {
	return promptSpec{
		task: `You are an expert recruiter. Calculate a match score between 0 and 100 for how well the candidate fits the job requirements.
Also identify missing skills and strength areas.`,
		shape: `{
  "match_score": 0,
  "missing_skills": ["string"],
  "strength_areas": ["string"]
}`,
		sections: []promptSection{
			{name: "Candidate resume", body: mustJSON(resume)},
			{name: "Job description", body: jobDescription},
			{name: "Required skills", body: strings.Join(requiredSkills, ", ")},
		},
	}.build()
}

func finalFeedbackPrompt(transcript []TranscriptEntry) string {
	return promptSpec{
		task: `You are an expert career coach. Generate comprehensive interview feedback from the full transcript of questions, answers, and per-answer evaluations.
Include a hireability assessment, overall strengths, weak areas, and a personalized improvement roadmap.`,
		shape: `{
  "hireability": "string",
  "strengths": ["string"],
  "weak_areas": ["string"],
  "roadmap": "string"
}`,
		sections: []promptSection{
			{name: "Interview transcript", body: mustJSON(transcript)},
		},
	}.build()
}
