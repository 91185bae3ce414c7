// file: internals/features/ai/gateway/generate.go
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

const (
	SourceAI       = "ai_generated"
	SourceFallback = "ai_fallback"
)

type GenerateQuestionsRequest struct {
	TopicName  string
	Subject    string
	GradeLevel int
	Count      int
	Difficulty string // easy|medium|hard, empty = mixed
	Types      []string
}

type QuestionDraft struct {
	QuestionText  string            `json:"question_text"`
	QuestionType  string            `json:"question_type"`
	Options       map[string]string `json:"options,omitempty"`
	CorrectAnswer string            `json:"correct_answer"`
	Explanation   string            `json:"explanation,omitempty"`
	Points        float64           `json:"points,omitempty"`
	Difficulty    string            `json:"difficulty,omitempty"`
}

type GenerateQuestionsResult struct {
	Questions []QuestionDraft `json:"questions"`
	Source    string          `json:"source"` // ai_generated | ai_fallback
}

const generateSystemPrompt = "You are an educational content generator for school quizzes. " +
	"Respond with a JSON array only, no prose, no markdown fences."

// GenerateQuestions asks the provider for question drafts. Transport
// failures, unparseable completions and schema mismatches all degrade to the
// template fallback set; callers never see an error.
func (c *Client) GenerateQuestions(ctx context.Context, req GenerateQuestionsRequest) GenerateQuestionsResult {
	if req.Count <= 0 {
		req.Count = 5
	}

	text, err := c.complete(ctx, generateSystemPrompt, buildGeneratePrompt(req))
	if err != nil {
		log.Printf("[AI] generation failed, serving fallback: %v", err)
		return fallbackQuestions(req)
	}

	parsed := ParseCompletion(text, questionsSchema)
	if !parsed.Parsed {
		log.Printf("[AI] unparseable generation payload, serving fallback")
		return fallbackQuestions(req)
	}

	var drafts []QuestionDraft
	if err := json.Unmarshal(parsed.Payload, &drafts); err != nil {
		return fallbackQuestions(req)
	}
	if len(drafts) > req.Count {
		drafts = drafts[:req.Count]
	}
	for i := range drafts {
		normalizeDraft(&drafts[i], req.Difficulty)
	}
	return GenerateQuestionsResult{Questions: drafts, Source: SourceAI}
}

func buildGeneratePrompt(req GenerateQuestionsRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d quiz questions about %q", req.Count, req.TopicName)
	if req.Subject != "" {
		fmt.Fprintf(&b, " for the subject %q", req.Subject)
	}
	if req.GradeLevel > 0 {
		fmt.Fprintf(&b, " at grade level %d", req.GradeLevel)
	}
	if req.Difficulty != "" {
		fmt.Fprintf(&b, " with difficulty %q", req.Difficulty)
	}
	if len(req.Types) > 0 {
		fmt.Fprintf(&b, " using only these question types: %s", strings.Join(req.Types, ", "))
	}
	b.WriteString(". Each array item must have question_text, question_type " +
		"(multiple_choice|true_false|short_answer|essay), correct_answer, and for " +
		"multiple_choice an options object keyed A-D where correct_answer is the " +
		"matching key. Include explanation, points and difficulty where sensible.")
	return b.String()
}

func normalizeDraft(d *QuestionDraft, fallbackDifficulty string) {
	if d.Points <= 0 {
		d.Points = 1
	}
	if d.Difficulty == "" {
		if fallbackDifficulty != "" {
			d.Difficulty = fallbackDifficulty
		} else {
			d.Difficulty = "medium"
		}
	}
	if d.QuestionType == "multiple_choice" {
		d.CorrectAnswer = strings.ToUpper(strings.TrimSpace(d.CorrectAnswer))
	}
	if d.QuestionType == "true_false" {
		d.CorrectAnswer = strings.ToLower(strings.TrimSpace(d.CorrectAnswer))
		d.Options = nil
	}
}

// fallbackQuestions is the deterministic template set served when the
// provider is unavailable. Teachers edit these before publishing.
func fallbackQuestions(req GenerateQuestionsRequest) GenerateQuestionsResult {
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = "medium"
	}
	topic := req.TopicName
	if topic == "" {
		topic = "this topic"
	}

	templates := []QuestionDraft{
		{
			QuestionText: fmt.Sprintf("Which statement best describes %s?", topic),
			QuestionType: "multiple_choice",
			Options: map[string]string{
				"A": fmt.Sprintf("A core concept of %s", topic),
				"B": "An unrelated concept",
				"C": "A common misconception",
				"D": "None of the above",
			},
			CorrectAnswer: "A",
			Explanation:   "Placeholder generated offline; review before publishing.",
			Points:        1,
			Difficulty:    difficulty,
		},
		{
			QuestionText:  fmt.Sprintf("True or false: %s is part of this course unit.", topic),
			QuestionType:  "true_false",
			CorrectAnswer: "true",
			Explanation:   "Placeholder generated offline; review before publishing.",
			Points:        1,
			Difficulty:    difficulty,
		},
		{
			QuestionText:  fmt.Sprintf("In one or two sentences, define %s.", topic),
			QuestionType:  "short_answer",
			CorrectAnswer: fmt.Sprintf("A short definition of %s.", topic),
			Explanation:   "Placeholder generated offline; review before publishing.",
			Points:        2,
			Difficulty:    difficulty,
		},
		{
			QuestionText:  fmt.Sprintf("Explain why %s matters, with an example.", topic),
			QuestionType:  "essay",
			CorrectAnswer: fmt.Sprintf("An explanation of the relevance of %s with one concrete example.", topic),
			Explanation:   "Placeholder generated offline; review before publishing.",
			Points:        5,
			Difficulty:    difficulty,
		},
	}

	out := make([]QuestionDraft, 0, req.Count)
	for len(out) < req.Count {
		out = append(out, templates[len(out)%len(templates)])
	}
	return GenerateQuestionsResult{Questions: out, Source: SourceFallback}
}
