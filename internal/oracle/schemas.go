package oracle

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Response schemas, compiled once at init. Every oracle response is checked
// against its schema before being decoded into a typed result; fields that
// fail validation are never seen by callers.

var (
	parseResumeSchema = mustSchema(`{
		"type": "object",
		"required": ["name", "skills"],
		"properties": {
			"name": {"type": "string"},
			"skills": {"type": "array", "items": {"type": "string"}},
			"projects": {"type": "array", "items": {"type": "object"}},
			"experience": {"type": "array", "items": {"type": "object"}},
			"education": {"type": "array", "items": {"type": "object"}}
		}
	}`)

	questionSetSchema = mustSchema(fmt.Sprintf(`{
		"type": "object",
		"required": ["technical", "behavioral"],
		"properties": {
			"technical": {
				"type": "array",
				"items": {"type": "string", "minLength": 1},
				"minItems": %[1]d, "maxItems": %[1]d
			},
			"behavioral": {
				"type": "array",
				"items": {"type": "string", "minLength": 1},
				"minItems": %[2]d, "maxItems": %[2]d
			}
		}
	}`, NumTechnical, NumBehavioral))

	evaluationSchema = mustSchema(`{
		"type": "object",
		"required": ["score", "confidence"],
		"properties": {
			"score": {"type": "number", "minimum": 0, "maximum": 10},
			"confidence": {"type": "string"},
			"strengths": {"type": "array", "items": {"type": "string"}},
			"weaknesses": {"type": "array", "items": {"type": "string"}},
			"model_answer": {"type": "string"}
		}
	}`)

	matchResultSchema = mustSchema(`{
		"type": "object",
		"required": ["match_score"],
		"properties": {
			"match_score": {"type": "number", "minimum": 0, "maximum": 100},
			"missing_skills": {"type": "array", "items": {"type": "string"}},
			"strength_areas": {"type": "array", "items": {"type": "string"}}
		}
	}`)

	feedbackSchema = mustSchema(`{
		"type": "object",
		"required": ["hireability", "strengths", "weak_areas", "roadmap"],
		"properties": {
			"hireability": {"type": "string", "minLength": 1},
			"strengths": {"type": "array", "items": {"type": "string"}},
			"weak_areas": {"type": "array", "items": {"type": "string"}},
			"roadmap": {"type": "string"}
		}
	}`)
)

func mustSchema(doc string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(doc))
	if err != nil {
		panic(fmt.Sprintf("oracle: invalid response schema: %v", err))
	}
	return schema
}

// validateResponse checks a raw model response against a compiled schema.
func validateResponse(schema *gojsonschema.Schema, raw string) error {
	result, err := schema.Validate(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	return fmt.Errorf("response failed schema validation: %s", strings.Join(msgs, "; "))
}
