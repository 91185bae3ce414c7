// file: internals/features/assessment/attempts/service/attempt_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	model "schoolhub_backend/internals/features/assessment/attempts/model"
	catalogmodel "schoolhub_backend/internals/features/assessment/catalog/model"
	quizmodel "schoolhub_backend/internals/features/assessment/quizzes/model"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// lockForUpdate adds a row lock on dialects that support it. The sqlite
// driver used in tests rejects FOR UPDATE; there the surrounding transaction
// already serializes writers.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

/* ==============================
   StartAttempt
============================== */

// StartAttempt opens a new in_progress attempt. attempt_number is derived
// from the prior-attempt count inside the insert transaction so concurrent
// starts of the same (quiz, student) pair stay monotonic.
func (s *Service) StartAttempt(ctx context.Context, tenantID, quizID, studentID uuid.UUID) (*model.AttemptModel, error) {
	var quiz quizmodel.QuizModel
	if err := s.db.WithContext(ctx).
		First(&quiz, "quiz_id = ? AND quiz_tenant_id = ?", quizID, tenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: quiz %s", ErrNotFound, quizID)
		}
		return nil, err
	}
	if !quiz.OpenAt(time.Now()) {
		return nil, fmt.Errorf("%w: quiz is not open for attempts", ErrInvalidState)
	}

	attempt := &model.AttemptModel{
		AttemptID:        uuid.New(),
		AttemptTenantID:  tenantID,
		AttemptQuizID:    quizID,
		AttemptStudentID: studentID,
		AttemptStatus:    model.AttemptStatusInProgress,
		AttemptStartedAt: time.Now().UTC(),
		AttemptMaxScore:  quiz.QuizTotalPoints,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prior int64
		if err := tx.Model(&model.AttemptModel{}).
			Where("attempt_quiz_id = ? AND attempt_student_id = ?", quizID, studentID).
			Count(&prior).Error; err != nil {
			return err
		}
		if prior > 0 && !quiz.QuizAllowRetakes {
			return fmt.Errorf("%w: retakes are not allowed for this quiz", ErrInvalidState)
		}
		attempt.AttemptNumber = int(prior) + 1
		return tx.Create(attempt).Error
	})
	if err != nil {
		return nil, err
	}
	return attempt, nil
}

/* ==============================
   SubmitAnswer
============================== */

type SubmitAnswerInput struct {
	QuestionID   uuid.UUID
	Response     string
	TimeTakenSec *int
}

// SubmitAnswer records (or overwrites) the student's answer for one question
// of an in_progress attempt. Objective types are scored on the spot from the
// quiz_questions points snapshot; subjective types wait for grading.
func (s *Service) SubmitAnswer(ctx context.Context, tenantID, attemptID, studentID uuid.UUID, in SubmitAnswerInput) (*model.AnswerModel, error) {
	attempt, err := s.getOwnedAttempt(ctx, tenantID, attemptID, studentID)
	if err != nil {
		return nil, err
	}
	if attempt.AttemptStatus != model.AttemptStatusInProgress {
		return nil, fmt.Errorf("%w: attempt is %s", ErrInvalidState, attempt.AttemptStatus)
	}

	// membership check: the question must be pinned into the attempt's quiz
	var join quizmodel.QuizQuestionModel
	if err := s.db.WithContext(ctx).
		First(&join, "quiz_question_quiz_id = ? AND quiz_question_question_id = ?",
			attempt.AttemptQuizID, in.QuestionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: question does not belong to this quiz", ErrValidation)
		}
		return nil, err
	}

	var question catalogmodel.QuestionModel
	if err := s.db.WithContext(ctx).Unscoped().
		First(&question, "question_id = ?", in.QuestionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: question %s", ErrNotFound, in.QuestionID)
		}
		return nil, err
	}

	answer := &model.AnswerModel{
		AnswerID:            uuid.New(),
		AnswerTenantID:      tenantID,
		AnswerAttemptID:     attemptID,
		AnswerQuestionID:    in.QuestionID,
		AnswerStudentAnswer: in.Response,
		AnswerTimeTakenSec:  in.TimeTakenSec,
	}

	if question.IsObjective() {
		correct := checkObjective(&question, in.Response)
		answer.AnswerIsCorrect = &correct
		answer.AnswerGradingStatus = model.GradingStatusAuto
		if correct {
			answer.AnswerPointsEarned = join.QuizQuestionPoints
		}
	} else {
		answer.AnswerGradingStatus = model.GradingStatusPendingReview
	}

	// last write wins per (attempt, question)
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "answer_attempt_id"}, {Name: "answer_question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"answer_student_answer",
			"answer_is_correct",
			"answer_points_earned",
			"answer_grading_status",
			"answer_time_taken_sec",
			"answer_updated_at",
		}),
	}).Create(answer).Error
	if err != nil {
		return nil, err
	}

	// on conflict the DB keeps the original row's id and timestamps; re-read
	// so the caller gets the row as stored, not the candidate insert
	var stored model.AnswerModel
	if err := s.db.WithContext(ctx).
		First(&stored, "answer_attempt_id = ? AND answer_question_id = ?",
			attemptID, in.QuestionID).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// checkObjective compares the response against the stored correct answer.
// MCQ compares option labels case-insensitively; true/false the literal.
func checkObjective(q *catalogmodel.QuestionModel, response string) bool {
	switch q.QuestionType {
	case catalogmodel.QuestionTypeMultipleChoice:
		return strings.ToUpper(strings.TrimSpace(response)) ==
			strings.ToUpper(strings.TrimSpace(q.QuestionCorrectAnswer))
	case catalogmodel.QuestionTypeTrueFalse:
		return strings.ToLower(strings.TrimSpace(response)) ==
			strings.ToLower(strings.TrimSpace(q.QuestionCorrectAnswer))
	default:
		return false
	}
}

/* ==============================
   FinalizeAttempt
============================== */

// FinalizeAttempt closes the attempt exactly once. The whole read-sum-write
// runs under a row lock; a second call finds status != in_progress and fails
// without touching the row.
func (s *Service) FinalizeAttempt(ctx context.Context, tenantID, attemptID, studentID uuid.UUID) (*model.AttemptModel, error) {
	var out model.AttemptModel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var attempt model.AttemptModel
		if err := lockForUpdate(tx).
			First(&attempt, "attempt_id = ? AND attempt_tenant_id = ?", attemptID, tenantID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: attempt %s", ErrNotFound, attemptID)
			}
			return err
		}
		if attempt.AttemptStudentID != studentID {
			return fmt.Errorf("%w: attempt belongs to another student", ErrForbidden)
		}
		if attempt.AttemptStatus != model.AttemptStatusInProgress {
			return fmt.Errorf("%w: attempt is %s", ErrInvalidState, attempt.AttemptStatus)
		}

		total, err := sumPointsEarned(tx, attemptID)
		if err != nil {
			return err
		}
		if total > attempt.AttemptMaxScore {
			total = attempt.AttemptMaxScore
		}

		now := time.Now().UTC()
		attempt.AttemptStatus = model.AttemptStatusSubmitted
		attempt.AttemptFinishedAt = &now
		attempt.AttemptTotalScore = round2(total)
		if attempt.AttemptMaxScore > 0 {
			attempt.AttemptPercentage = round2(100 * total / attempt.AttemptMaxScore)
		} else {
			attempt.AttemptPercentage = 0
		}

		if err := tx.Save(&attempt).Error; err != nil {
			return err
		}
		out = attempt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func sumPointsEarned(tx *gorm.DB, attemptID uuid.UUID) (float64, error) {
	var total float64
	err := tx.Model(&model.AnswerModel{}).
		Where("answer_attempt_id = ?", attemptID).
		Select("COALESCE(SUM(answer_points_earned), 0)").
		Scan(&total).Error
	return total, err
}

/* ==============================
   Grading (subjective / regrade)
============================== */

type GradeInput struct {
	QuestionID   uuid.UUID
	PointsEarned float64
	Feedback     *string
	Status       model.GradingStatus // ai_graded or manually_graded
}

// GradeAnswer applies a grading result to one answer. Points are capped at
// the question's snapshot points. When the attempt is already submitted the
// totals are recomputed so regrades land in the stored score.
func (s *Service) GradeAnswer(ctx context.Context, tenantID, attemptID uuid.UUID, in GradeInput) (*model.AnswerModel, error) {
	if in.Status != model.GradingStatusAIGraded && in.Status != model.GradingStatusManuallyGraded {
		return nil, fmt.Errorf("%w: grading status must be ai_graded or manually_graded", ErrValidation)
	}
	if in.PointsEarned < 0 {
		return nil, fmt.Errorf("%w: points_earned must be >= 0", ErrValidation)
	}

	var out model.AnswerModel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var attempt model.AttemptModel
		if err := lockForUpdate(tx).
			First(&attempt, "attempt_id = ? AND attempt_tenant_id = ?", attemptID, tenantID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: attempt %s", ErrNotFound, attemptID)
			}
			return err
		}

		var answer model.AnswerModel
		if err := tx.First(&answer,
			"answer_attempt_id = ? AND answer_question_id = ?", attemptID, in.QuestionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: no answer for question %s", ErrNotFound, in.QuestionID)
			}
			return err
		}

		var join quizmodel.QuizQuestionModel
		if err := tx.First(&join,
			"quiz_question_quiz_id = ? AND quiz_question_question_id = ?",
			attempt.AttemptQuizID, in.QuestionID).Error; err != nil {
			return err
		}

		points := in.PointsEarned
		if points > join.QuizQuestionPoints {
			points = join.QuizQuestionPoints
		}
		correct := points >= join.QuizQuestionPoints

		answer.AnswerPointsEarned = round2(points)
		answer.AnswerIsCorrect = &correct
		answer.AnswerGradingStatus = in.Status
		if in.Feedback != nil {
			answer.AnswerFeedback = in.Feedback
		}
		if err := tx.Save(&answer).Error; err != nil {
			return err
		}

		if attempt.AttemptStatus == model.AttemptStatusSubmitted {
			total, err := sumPointsEarned(tx, attemptID)
			if err != nil {
				return err
			}
			if total > attempt.AttemptMaxScore {
				total = attempt.AttemptMaxScore
			}
			attempt.AttemptTotalScore = round2(total)
			if attempt.AttemptMaxScore > 0 {
				attempt.AttemptPercentage = round2(100 * total / attempt.AttemptMaxScore)
			}
			if err := tx.Save(&attempt).Error; err != nil {
				return err
			}
		}

		out = answer
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

/* ==============================
   Reads
============================== */

func (s *Service) getOwnedAttempt(ctx context.Context, tenantID, attemptID, studentID uuid.UUID) (*model.AttemptModel, error) {
	var attempt model.AttemptModel
	if err := s.db.WithContext(ctx).
		First(&attempt, "attempt_id = ? AND attempt_tenant_id = ?", attemptID, tenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: attempt %s", ErrNotFound, attemptID)
		}
		return nil, err
	}
	if attempt.AttemptStudentID != studentID {
		return nil, fmt.Errorf("%w: attempt belongs to another student", ErrForbidden)
	}
	return &attempt, nil
}

func (s *Service) GetAttempt(ctx context.Context, tenantID, attemptID uuid.UUID) (*model.AttemptModel, error) {
	var attempt model.AttemptModel
	if err := s.db.WithContext(ctx).
		First(&attempt, "attempt_id = ? AND attempt_tenant_id = ?", attemptID, tenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: attempt %s", ErrNotFound, attemptID)
		}
		return nil, err
	}
	return &attempt, nil
}

// AttemptAnswers returns the stored answers of one attempt.
func (s *Service) AttemptAnswers(ctx context.Context, tenantID, attemptID uuid.UUID) ([]model.AnswerModel, error) {
	var answers []model.AnswerModel
	err := s.db.WithContext(ctx).
		Where("answer_tenant_id = ? AND answer_attempt_id = ?", tenantID, attemptID).
		Order("answer_created_at ASC").
		Find(&answers).Error
	return answers, err
}

// PendingSubjectiveAnswers lists the answers still waiting for a grade.
func (s *Service) PendingSubjectiveAnswers(ctx context.Context, tenantID, attemptID uuid.UUID) ([]model.AnswerModel, error) {
	var answers []model.AnswerModel
	err := s.db.WithContext(ctx).
		Where("answer_tenant_id = ? AND answer_attempt_id = ? AND answer_grading_status = ?",
			tenantID, attemptID, model.GradingStatusPendingReview).
		Order("answer_created_at ASC").
		Find(&answers).Error
	return answers, err
}

// StudentResults lists the student's submitted attempts, newest first.
func (s *Service) StudentResults(ctx context.Context, tenantID, studentID uuid.UUID) ([]model.AttemptModel, error) {
	var attempts []model.AttemptModel
	err := s.db.WithContext(ctx).
		Where("attempt_tenant_id = ? AND attempt_student_id = ? AND attempt_status = ?",
			tenantID, studentID, model.AttemptStatusSubmitted).
		Order("attempt_finished_at DESC").
		Find(&attempts).Error
	return attempts, err
}
