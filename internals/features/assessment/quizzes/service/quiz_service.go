// file: internals/features/assessment/quizzes/service/quiz_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	catalogmodel "schoolhub_backend/internals/features/assessment/catalog/model"
	model "schoolhub_backend/internals/features/assessment/quizzes/model"
)

var (
	ErrNotFound   = errors.New("quiz: not found")
	ErrValidation = errors.New("quiz: validation failed")
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

/* ==============================
   Create
============================== */

type CreateQuizInput struct {
	TopicID      uuid.UUID
	ClassID      *uuid.UUID
	TeacherID    uuid.UUID
	Title        string
	Description  *string
	Instructions *string
	TimeLimitMin *int
	StartTime    *time.Time
	EndTime      *time.Time
	AllowRetakes bool
	ShowResultsImmediately bool

	// Ordered: order_number follows slice position (1-based).
	QuestionIDs []uuid.UUID
}

// Create builds the quiz and its join rows in one transaction. Every question
// must be an active question of the tenant; totals are derived, never trusted
// from the client.
func (s *Service) Create(ctx context.Context, tenantID uuid.UUID, in CreateQuizInput) (*model.QuizModel, error) {
	if len(in.QuestionIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one question required", ErrValidation)
	}
	seen := make(map[uuid.UUID]struct{}, len(in.QuestionIDs))
	for _, id := range in.QuestionIDs {
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: duplicate question id %s", ErrValidation, id)
		}
		seen[id] = struct{}{}
	}
	if in.StartTime != nil && in.EndTime != nil && in.EndTime.Before(*in.StartTime) {
		return nil, fmt.Errorf("%w: end_time before start_time", ErrValidation)
	}

	var questions []catalogmodel.QuestionModel
	if err := s.db.WithContext(ctx).
		Where("question_tenant_id = ? AND question_id IN ?", tenantID, in.QuestionIDs).
		Find(&questions).Error; err != nil {
		return nil, err
	}
	if len(questions) != len(in.QuestionIDs) {
		return nil, fmt.Errorf("%w: one or more questions not found in this tenant", ErrValidation)
	}
	byID := make(map[uuid.UUID]*catalogmodel.QuestionModel, len(questions))
	for i := range questions {
		byID[questions[i].QuestionID] = &questions[i]
	}

	quiz := &model.QuizModel{
		QuizID:        uuid.New(),
		QuizTenantID:  tenantID,
		QuizTopicID:   in.TopicID,
		QuizClassID:   in.ClassID,
		QuizTeacherID: in.TeacherID,
		QuizTitle:     in.Title,
		QuizDescription:  in.Description,
		QuizInstructions: in.Instructions,
		QuizTimeLimitMin: in.TimeLimitMin,
		QuizStartTime:    in.StartTime,
		QuizEndTime:      in.EndTime,
		QuizIsActive:     true,
		QuizAllowRetakes: in.AllowRetakes,
		QuizShowResultsImmediately: in.ShowResultsImmediately,
		QuizTotalQuestions: len(in.QuestionIDs),
	}

	joins := make([]model.QuizQuestionModel, 0, len(in.QuestionIDs))
	for i, qid := range in.QuestionIDs {
		q := byID[qid]
		quiz.QuizTotalPoints += q.QuestionPoints
		joins = append(joins, model.QuizQuestionModel{
			QuizQuestionID:          uuid.New(),
			QuizQuestionQuizID:      quiz.QuizID,
			QuizQuestionQuestionID:  qid,
			QuizQuestionOrderNumber: i + 1,
			QuizQuestionPoints:      q.QuestionPoints,
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(quiz).Error; err != nil {
			return err
		}
		return tx.Create(&joins).Error
	})
	if err != nil {
		return nil, err
	}
	return quiz, nil
}

/* ==============================
   Reads
============================== */

func (s *Service) GetByID(ctx context.Context, tenantID, quizID uuid.UUID) (*model.QuizModel, error) {
	var quiz model.QuizModel
	if err := s.db.WithContext(ctx).
		First(&quiz, "quiz_id = ? AND quiz_tenant_id = ?", quizID, tenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// OrderedQuestion pairs a catalog question with its position and points
// snapshot inside one quiz.
type OrderedQuestion struct {
	OrderNumber int
	Points      float64
	Question    catalogmodel.QuestionModel
}

// QuestionsInOrder resolves the quiz's questions by order_number. Unscoped so
// questions soft-deleted after assembly stay resolvable for historical reads.
func (s *Service) QuestionsInOrder(ctx context.Context, quizID uuid.UUID) ([]OrderedQuestion, error) {
	var joins []model.QuizQuestionModel
	if err := s.db.WithContext(ctx).
		Where("quiz_question_quiz_id = ?", quizID).
		Order("quiz_question_order_number ASC").
		Find(&joins).Error; err != nil {
		return nil, err
	}
	if len(joins) == 0 {
		return []OrderedQuestion{}, nil
	}

	ids := make([]uuid.UUID, 0, len(joins))
	for _, j := range joins {
		ids = append(ids, j.QuizQuestionQuestionID)
	}
	var questions []catalogmodel.QuestionModel
	if err := s.db.WithContext(ctx).Unscoped().
		Where("question_id IN ?", ids).
		Find(&questions).Error; err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalogmodel.QuestionModel, len(questions))
	for i := range questions {
		byID[questions[i].QuestionID] = &questions[i]
	}

	out := make([]OrderedQuestion, 0, len(joins))
	for _, j := range joins {
		q, ok := byID[j.QuizQuestionQuestionID]
		if !ok {
			continue
		}
		out = append(out, OrderedQuestion{
			OrderNumber: j.QuizQuestionOrderNumber,
			Points:      j.QuizQuestionPoints,
			Question:    *q,
		})
	}
	return out, nil
}

/* ==============================
   Assembly suggestion
============================== */

type DifficultySpread struct {
	Easy   int `json:"easy"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
}

type SuggestInput struct {
	TopicID           uuid.UUID
	TargetDurationMin int
	Spread            DifficultySpread
}

type SuggestResult struct {
	QuestionIDs       []uuid.UUID `json:"question_ids"`
	FilledEasy        int         `json:"filled_easy"`
	FilledMedium      int         `json:"filled_medium"`
	FilledHard        int         `json:"filled_hard"`
	TotalPoints       float64     `json:"total_points"`
	EstimatedDurationSec int      `json:"estimated_duration_sec"`
}

const defaultQuestionTimeSec = 120

// Suggest picks questions per difficulty tier, highest points first, oldest
// first on ties. Under-supply in a tier is not an error; the result just fills
// what exists.
func (s *Service) Suggest(ctx context.Context, tenantID uuid.UUID, in SuggestInput) (*SuggestResult, error) {
	if in.Spread.Easy < 0 || in.Spread.Medium < 0 || in.Spread.Hard < 0 {
		return nil, fmt.Errorf("%w: negative tier count", ErrValidation)
	}
	if in.Spread.Easy+in.Spread.Medium+in.Spread.Hard == 0 {
		return nil, fmt.Errorf("%w: at least one question requested", ErrValidation)
	}

	res := &SuggestResult{QuestionIDs: []uuid.UUID{}}

	pick := func(tier catalogmodel.DifficultyLevel, want int) (int, error) {
		if want == 0 {
			return 0, nil
		}
		var candidates []catalogmodel.QuestionModel
		if err := s.db.WithContext(ctx).
			Where("question_tenant_id = ? AND question_topic_id = ? AND question_difficulty = ?",
				tenantID, in.TopicID, tier).
			Order("question_points DESC").
			Order("question_created_at ASC").
			Limit(want).
			Find(&candidates).Error; err != nil {
			return 0, err
		}
		for _, q := range candidates {
			res.QuestionIDs = append(res.QuestionIDs, q.QuestionID)
			res.TotalPoints += q.QuestionPoints
			if q.QuestionTimeLimitSec != nil && *q.QuestionTimeLimitSec > 0 {
				res.EstimatedDurationSec += *q.QuestionTimeLimitSec
			} else {
				res.EstimatedDurationSec += defaultQuestionTimeSec
			}
		}
		return len(candidates), nil
	}

	var err error
	if res.FilledEasy, err = pick(catalogmodel.DifficultyEasy, in.Spread.Easy); err != nil {
		return nil, err
	}
	if res.FilledMedium, err = pick(catalogmodel.DifficultyMedium, in.Spread.Medium); err != nil {
		return nil, err
	}
	if res.FilledHard, err = pick(catalogmodel.DifficultyHard, in.Spread.Hard); err != nil {
		return nil, err
	}
	return res, nil
}
