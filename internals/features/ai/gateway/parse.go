// file: internals/features/ai/gateway/parse.go
package gateway

import (
	"encoding/json"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ParseResult is a tagged result: either Parsed with a JSON payload, or
// Unparseable with the raw completion text. Callers branch on Parsed; no
// error value is involved.
type ParseResult struct {
	Parsed  bool
	Payload json.RawMessage
	Raw     string
}

// extractJSON pulls the first JSON array or object slice out of completion
// text. Providers wrap payloads in prose and markdown fences; the slice from
// the first opening bracket to the matching last closing bracket is the best
// recovery we have.
func extractJSON(text string) (json.RawMessage, bool) {
	text = strings.TrimSpace(text)

	for _, pair := range [][2]string{{"[", "]"}, {"{", "}"}} {
		start := strings.Index(text, pair[0])
		end := strings.LastIndex(text, pair[1])
		if start >= 0 && end > start {
			candidate := text[start : end+1]
			if json.Valid([]byte(candidate)) {
				return json.RawMessage(candidate), true
			}
		}
	}
	return nil, false
}

// ParseCompletion extracts the JSON payload and validates it against the
// given schema document. Any failure yields Unparseable with the raw text.
func ParseCompletion(text string, schema *gojsonschema.Schema) ParseResult {
	payload, ok := extractJSON(text)
	if !ok {
		return ParseResult{Parsed: false, Raw: text}
	}
	if schema != nil {
		res, err := schema.Validate(gojsonschema.NewBytesLoader(payload))
		if err != nil || !res.Valid() {
			return ParseResult{Parsed: false, Raw: text}
		}
	}
	return ParseResult{Parsed: true, Payload: payload}
}

func mustSchema(doc string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(doc))
	if err != nil {
		panic("gateway: invalid embedded schema: " + err.Error())
	}
	return s
}

// questionsSchema validates the generated-questions payload shape.
var questionsSchema = mustSchema(`{
	"type": "array",
	"minItems": 1,
	"items": {
		"type": "object",
		"required": ["question_text", "question_type", "correct_answer"],
		"properties": {
			"question_text":  {"type": "string", "minLength": 1},
			"question_type":  {"type": "string", "enum": ["multiple_choice", "true_false", "short_answer", "essay"]},
			"options":        {"type": "object", "additionalProperties": {"type": "string"}},
			"correct_answer": {"type": "string", "minLength": 1},
			"explanation":    {"type": "string"},
			"points":         {"type": "number", "exclusiveMinimum": 0},
			"difficulty":     {"type": "string", "enum": ["easy", "medium", "hard"]}
		}
	}
}`)

// gradeSchema validates the subjective-grading payload shape.
var gradeSchema = mustSchema(`{
	"type": "object",
	"required": ["points_earned", "feedback"],
	"properties": {
		"points_earned": {"type": "number", "minimum": 0},
		"percentage":    {"type": "number", "minimum": 0, "maximum": 100},
		"feedback":      {"type": "string"},
		"strengths":     {"type": "array", "items": {"type": "string"}},
		"improvements":  {"type": "array", "items": {"type": "string"}},
		"is_correct":    {"type": "boolean"}
	}
}`)

// insightsSchema validates the class-performance narrative payload.
var insightsSchema = mustSchema(`{
	"type": "object",
	"required": ["summary"],
	"properties": {
		"summary":         {"type": "string", "minLength": 1},
		"strengths":       {"type": "array", "items": {"type": "string"}},
		"weaknesses":      {"type": "array", "items": {"type": "string"}},
		"recommendations": {"type": "array", "items": {"type": "string"}}
	}
}`)
