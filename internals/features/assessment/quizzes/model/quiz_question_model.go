// file: internals/features/assessment/quizzes/model/quiz_question_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// QuizQuestionModel pins a question into a quiz with a stable order and a
// points snapshot taken at assembly time.
type QuizQuestionModel struct {
	QuizQuestionID         uuid.UUID `gorm:"column:quiz_question_id;type:uuid;primaryKey" json:"quiz_question_id"`
	QuizQuestionQuizID     uuid.UUID `gorm:"column:quiz_question_quiz_id;type:uuid;not null;uniqueIndex:uq_quiz_question" json:"quiz_question_quiz_id"`
	QuizQuestionQuestionID uuid.UUID `gorm:"column:quiz_question_question_id;type:uuid;not null;uniqueIndex:uq_quiz_question" json:"quiz_question_question_id"`

	QuizQuestionOrderNumber int     `gorm:"column:quiz_question_order_number;not null" json:"quiz_question_order_number"`
	QuizQuestionPoints      float64 `gorm:"column:quiz_question_points;type:numeric(6,2);not null" json:"quiz_question_points"`

	QuizQuestionCreatedAt time.Time `gorm:"column:quiz_question_created_at;not null;autoCreateTime" json:"quiz_question_created_at"`
}

func (QuizQuestionModel) TableName() string { return "quiz_questions" }
