// file: internals/features/assessment/quizzes/service/quiz_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	catalogmodel "schoolhub_backend/internals/features/assessment/catalog/model"
	model "schoolhub_backend/internals/features/assessment/quizzes/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&catalogmodel.TopicModel{},
		&catalogmodel.QuestionModel{},
		&model.QuizModel{},
		&model.QuizQuestionModel{},
	))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})
	return db
}

func seedTopic(t *testing.T, db *gorm.DB, tenantID uuid.UUID) catalogmodel.TopicModel {
	t.Helper()
	topic := catalogmodel.TopicModel{
		TopicID:         uuid.New(),
		TopicTenantID:   tenantID,
		TopicName:       "Photosynthesis",
		TopicSubject:    "science",
		TopicGradeLevel: 7,
	}
	require.NoError(t, db.Create(&topic).Error)
	return topic
}

func seedQuestion(t *testing.T, db *gorm.DB, tenantID, topicID uuid.UUID, difficulty catalogmodel.DifficultyLevel, points float64, timeLimitSec *int, createdAt time.Time) catalogmodel.QuestionModel {
	t.Helper()
	q := catalogmodel.QuestionModel{
		QuestionID:            uuid.New(),
		QuestionTenantID:      tenantID,
		QuestionTopicID:       topicID,
		QuestionText:          "True or false: plants breathe.",
		QuestionType:          catalogmodel.QuestionTypeTrueFalse,
		QuestionDifficulty:    difficulty,
		QuestionCorrectAnswer: "true",
		QuestionPoints:        points,
		QuestionTimeLimitSec:  timeLimitSec,
		QuestionCreatedAt:     createdAt,
	}
	require.NoError(t, db.Create(&q).Error)
	return q
}

func TestCreate_ComputesTotalsAndOrder(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	tenantID := uuid.New()
	topic := seedTopic(t, db, tenantID)
	now := time.Now()

	q1 := seedQuestion(t, db, tenantID, topic.TopicID, catalogmodel.DifficultyEasy, 1, nil, now)
	q2 := seedQuestion(t, db, tenantID, topic.TopicID, catalogmodel.DifficultyMedium, 2.5, nil, now)

	quiz, err := svc.Create(context.Background(), tenantID, CreateQuizInput{
		TopicID:     topic.TopicID,
		TeacherID:   uuid.New(),
		Title:       "Unit check",
		QuestionIDs: []uuid.UUID{q2.QuestionID, q1.QuestionID},
		ShowResultsImmediately: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, quiz.QuizTotalQuestions)
	assert.Equal(t, 3.5, quiz.QuizTotalPoints)

	ordered, err := svc.QuestionsInOrder(context.Background(), quiz.QuizID)
	require.NoError(t, err)
	require.Len(t, ordered, 2)
	assert.Equal(t, q2.QuestionID, ordered[0].Question.QuestionID)
	assert.Equal(t, 1, ordered[0].OrderNumber)
	assert.Equal(t, q1.QuestionID, ordered[1].Question.QuestionID)
	assert.Equal(t, 2, ordered[1].OrderNumber)
}

func TestCreate_RejectsForeignAndDuplicateQuestions(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	tenantID := uuid.New()
	topic := seedTopic(t, db, tenantID)
	q := seedQuestion(t, db, tenantID, topic.TopicID, catalogmodel.DifficultyEasy, 1, nil, time.Now())

	_, err := svc.Create(context.Background(), tenantID, CreateQuizInput{
		TopicID:     topic.TopicID,
		TeacherID:   uuid.New(),
		Title:       "Bad quiz",
		QuestionIDs: []uuid.UUID{q.QuestionID, uuid.New()},
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), tenantID, CreateQuizInput{
		TopicID:     topic.TopicID,
		TeacherID:   uuid.New(),
		Title:       "Duped quiz",
		QuestionIDs: []uuid.UUID{q.QuestionID, q.QuestionID},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSuggest_GreedyPerTier(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	tenantID := uuid.New()
	topic := seedTopic(t, db, tenantID)
	base := time.Now().Add(-time.Hour)

	// easy tier: 3 candidates; highest points first, oldest breaks ties
	low := seedQuestion(t, db, tenantID, topic.TopicID, catalogmodel.DifficultyEasy, 1, nil, base)
	highOld := seedQuestion(t, db, tenantID, topic.TopicID, catalogmodel.DifficultyEasy, 3, nil, base.Add(time.Minute))
	highNew := seedQuestion(t, db, tenantID, topic.TopicID, catalogmodel.DifficultyEasy, 3, nil, base.Add(2*time.Minute))
	_ = low

	res, err := svc.Suggest(context.Background(), tenantID, SuggestInput{
		TopicID: topic.TopicID,
		Spread:  DifficultySpread{Easy: 2},
	})
	require.NoError(t, err)
	require.Len(t, res.QuestionIDs, 2)
	assert.Equal(t, highOld.QuestionID, res.QuestionIDs[0])
	assert.Equal(t, highNew.QuestionID, res.QuestionIDs[1])
	assert.Equal(t, 2, res.FilledEasy)
	assert.Equal(t, 6.0, res.TotalPoints)
}

func TestSuggest_UnderSupplyIsBestEffort(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	tenantID := uuid.New()
	topic := seedTopic(t, db, tenantID)
	now := time.Now()

	limit := 90
	seedQuestion(t, db, tenantID, topic.TopicID, catalogmodel.DifficultyEasy, 1, &limit, now)
	seedQuestion(t, db, tenantID, topic.TopicID, catalogmodel.DifficultyHard, 2, nil, now)

	res, err := svc.Suggest(context.Background(), tenantID, SuggestInput{
		TopicID: topic.TopicID,
		Spread:  DifficultySpread{Easy: 3, Medium: 2, Hard: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.FilledEasy)
	assert.Equal(t, 0, res.FilledMedium)
	assert.Equal(t, 1, res.FilledHard)
	assert.Len(t, res.QuestionIDs, 2)
	// 90s explicit + 120s default
	assert.Equal(t, 210, res.EstimatedDurationSec)
}

func TestSuggest_RejectsEmptySpread(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)

	_, err := svc.Suggest(context.Background(), uuid.New(), SuggestInput{
		TopicID: uuid.New(),
		Spread:  DifficultySpread{},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSuggest_ExcludesSoftDeleted(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	tenantID := uuid.New()
	topic := seedTopic(t, db, tenantID)

	q := seedQuestion(t, db, tenantID, topic.TopicID, catalogmodel.DifficultyMedium, 1, nil, time.Now())
	require.NoError(t, db.Delete(&catalogmodel.QuestionModel{}, "question_id = ?", q.QuestionID).Error)

	res, err := svc.Suggest(context.Background(), tenantID, SuggestInput{
		TopicID: topic.TopicID,
		Spread:  DifficultySpread{Medium: 1},
	})
	require.NoError(t, err)
	assert.Empty(t, res.QuestionIDs)
}
