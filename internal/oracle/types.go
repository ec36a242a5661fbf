// Package oracle is the typed boundary around the external generative model.
// It translates domain objects into prompts, validates every response against
// a JSON Schema before decoding, and never trusts unvalidated fields.
package oracle

// ParsedResume is the structured extraction of a raw resume text.
// Skills is the only field the rest of the system depends on being present.
type ParsedResume struct {
	Name       string       `json:"name"`
	Skills     []string     `json:"skills"`
	Projects   []Project    `json:"projects,omitempty"`
	Experience []Experience `json:"experience,omitempty"`
	Education  []Education  `json:"education,omitempty"`
}

// Project is a single project entry on a resume.
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
}

// Experience is a single work-experience entry on a resume.
type Experience struct {
	Company     string `json:"company"`
	Position    string `json:"position,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Description string `json:"description,omitempty"`
}

// Education is a single education entry on a resume.
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
	Year        string `json:"year,omitempty"`
}

// QuestionSet is the generated interview question set: exactly
// NumTechnical technical and NumBehavioral behavioral questions.
type QuestionSet struct {
	Technical  []string `json:"technical"`
	Behavioral []string `json:"behavioral"`
}

// Question counts the generator is contracted to return.
const (
	NumTechnical  = 5
	NumBehavioral = 2
)

// Evaluation is the model's judgment of a single interview answer.
// Score is on a 0-10 scale.
type Evaluation struct {
	Score       float64  `json:"score"`
	Confidence  string   `json:"confidence"`
	Strengths   []string `json:"strengths,omitempty"`
	Weaknesses  []string `json:"weaknesses,omitempty"`
	ModelAnswer string   `json:"model_answer,omitempty"`
}

// MatchResult is the model's resume-to-job fit estimate on a 0-100 scale.
type MatchResult struct {
	MatchScore    float64  `json:"match_score"`
	MissingSkills []string `json:"missing_skills,omitempty"`
	StrengthAreas []string `json:"strength_areas,omitempty"`
}

// Feedback is the aggregate interview feedback synthesized once all
// questions have been answered.
type Feedback struct {
	Hireability string   `json:"hireability"`
	Strengths   []string `json:"strengths"`
	WeakAreas   []string `json:"weak_areas"`
	Roadmap     string   `json:"roadmap"`
}

// TranscriptEntry is one question/answer/evaluation triple handed to the
// final feedback synthesis.
type TranscriptEntry struct {
	Question   string     `json:"question"`
	Type       string     `json:"type"`
	Answer     string     `json:"answer"`
	Evaluation Evaluation `json:"evaluation"`
}
