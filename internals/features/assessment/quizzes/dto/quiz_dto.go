// file: internals/features/assessment/quizzes/dto/quiz_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "schoolhub_backend/internals/features/assessment/quizzes/model"
	quizservice "schoolhub_backend/internals/features/assessment/quizzes/service"
)

/* ==============================
   CREATE (POST /quizzes)
============================== */

type CreateQuizRequest struct {
	QuizTopicID      uuid.UUID   `json:"quiz_topic_id" validate:"required"`
	QuizClassID      *uuid.UUID  `json:"quiz_class_id" validate:"omitempty"`
	QuizTitle        string      `json:"quiz_title" validate:"required,max=200"`
	QuizDescription  *string     `json:"quiz_description" validate:"omitempty"`
	QuizInstructions *string     `json:"quiz_instructions" validate:"omitempty"`
	QuizTimeLimitMin *int        `json:"quiz_time_limit_min" validate:"omitempty,gt=0"`
	QuizStartTime    *time.Time  `json:"quiz_start_time" validate:"omitempty"`
	QuizEndTime      *time.Time  `json:"quiz_end_time" validate:"omitempty"`
	QuizAllowRetakes bool        `json:"quiz_allow_retakes"`
	QuizShowResultsImmediately *bool     `json:"quiz_show_results_immediately" validate:"omitempty"`
	QuizQuestionIDs  []uuid.UUID `json:"quiz_question_ids" validate:"required,min=1"`
}

func (r *CreateQuizRequest) ToInput(teacherID uuid.UUID) quizservice.CreateQuizInput {
	showResults := true
	if r.QuizShowResultsImmediately != nil {
		showResults = *r.QuizShowResultsImmediately
	}
	return quizservice.CreateQuizInput{
		TopicID:      r.QuizTopicID,
		ClassID:      r.QuizClassID,
		TeacherID:    teacherID,
		Title:        r.QuizTitle,
		Description:  r.QuizDescription,
		Instructions: r.QuizInstructions,
		TimeLimitMin: r.QuizTimeLimitMin,
		StartTime:    r.QuizStartTime,
		EndTime:      r.QuizEndTime,
		AllowRetakes: r.QuizAllowRetakes,
		ShowResultsImmediately: showResults,
		QuestionIDs:  r.QuizQuestionIDs,
	}
}

/* ==============================
   SUGGEST (POST /quizzes/suggest)
============================== */

type SuggestQuizRequest struct {
	TopicID           uuid.UUID `json:"topic_id" validate:"required"`
	TargetDurationMin int       `json:"target_duration_min" validate:"omitempty,gte=0"`
	Easy              int       `json:"easy" validate:"gte=0"`
	Medium            int       `json:"medium" validate:"gte=0"`
	Hard              int       `json:"hard" validate:"gte=0"`
}

func (r *SuggestQuizRequest) ToInput() quizservice.SuggestInput {
	return quizservice.SuggestInput{
		TopicID:           r.TopicID,
		TargetDurationMin: r.TargetDurationMin,
		Spread: quizservice.DifficultySpread{
			Easy:   r.Easy,
			Medium: r.Medium,
			Hard:   r.Hard,
		},
	}
}

/* ==============================
   RESPONSES
============================== */

type QuizResponse struct {
	QuizID           uuid.UUID  `json:"quiz_id"`
	QuizTopicID      uuid.UUID  `json:"quiz_topic_id"`
	QuizClassID      *uuid.UUID `json:"quiz_class_id,omitempty"`
	QuizTeacherID    uuid.UUID  `json:"quiz_teacher_id"`
	QuizTitle        string     `json:"quiz_title"`
	QuizDescription  *string    `json:"quiz_description,omitempty"`
	QuizInstructions *string    `json:"quiz_instructions,omitempty"`
	QuizTotalQuestions int      `json:"quiz_total_questions"`
	QuizTotalPoints    float64  `json:"quiz_total_points"`
	QuizTimeLimitMin   *int     `json:"quiz_time_limit_min,omitempty"`
	QuizStartTime      *time.Time `json:"quiz_start_time,omitempty"`
	QuizEndTime        *time.Time `json:"quiz_end_time,omitempty"`
	QuizIsActive       bool     `json:"quiz_is_active"`
	QuizAllowRetakes   bool     `json:"quiz_allow_retakes"`
	QuizShowResultsImmediately bool `json:"quiz_show_results_immediately"`
	QuizCreatedAt      time.Time `json:"quiz_created_at"`
}

func FromQuizModel(m *model.QuizModel) QuizResponse {
	return QuizResponse{
		QuizID:           m.QuizID,
		QuizTopicID:      m.QuizTopicID,
		QuizClassID:      m.QuizClassID,
		QuizTeacherID:    m.QuizTeacherID,
		QuizTitle:        m.QuizTitle,
		QuizDescription:  m.QuizDescription,
		QuizInstructions: m.QuizInstructions,
		QuizTotalQuestions: m.QuizTotalQuestions,
		QuizTotalPoints:    m.QuizTotalPoints,
		QuizTimeLimitMin:   m.QuizTimeLimitMin,
		QuizStartTime:      m.QuizStartTime,
		QuizEndTime:        m.QuizEndTime,
		QuizIsActive:       m.QuizIsActive,
		QuizAllowRetakes:   m.QuizAllowRetakes,
		QuizShowResultsImmediately: m.QuizShowResultsImmediately,
		QuizCreatedAt:      m.QuizCreatedAt,
	}
}

func FromQuizModels(items []model.QuizModel) []QuizResponse {
	out := make([]QuizResponse, 0, len(items))
	for i := range items {
		out = append(out, FromQuizModel(&items[i]))
	}
	return out
}

// StudentQuestionResponse is the answer-stripped view served to students
// taking a quiz.
type StudentQuestionResponse struct {
	OrderNumber     int               `json:"order_number"`
	QuestionID      uuid.UUID         `json:"question_id"`
	QuestionText    string            `json:"question_text"`
	QuestionType    string            `json:"question_type"`
	QuestionOptions map[string]string `json:"question_options,omitempty"`
	Points          float64           `json:"points"`
	TimeLimitSec    *int              `json:"time_limit_sec,omitempty"`
}

type StudentQuizResponse struct {
	Quiz      QuizResponse              `json:"quiz"`
	Questions []StudentQuestionResponse `json:"questions"`
}

func FromOrderedQuestions(quiz *model.QuizModel, ordered []quizservice.OrderedQuestion) StudentQuizResponse {
	qs := make([]StudentQuestionResponse, 0, len(ordered))
	for _, oq := range ordered {
		opts, _ := oq.Question.OptionsMap()
		qs = append(qs, StudentQuestionResponse{
			OrderNumber:     oq.OrderNumber,
			QuestionID:      oq.Question.QuestionID,
			QuestionText:    oq.Question.QuestionText,
			QuestionType:    string(oq.Question.QuestionType),
			QuestionOptions: opts,
			Points:          oq.Points,
			TimeLimitSec:    oq.Question.QuestionTimeLimitSec,
		})
	}
	return StudentQuizResponse{
		Quiz:      FromQuizModel(quiz),
		Questions: qs,
	}
}
