// file: internals/features/analytics/service/analytics_service_test.go
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

	gateway "schoolhub_backend/internals/features/ai/gateway"
	attemptmodel "schoolhub_backend/internals/features/assessment/attempts/model"
	catalogmodel "schoolhub_backend/internals/features/assessment/catalog/model"
	quizmodel "schoolhub_backend/internals/features/assessment/quizzes/model"
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
		&quizmodel.QuizModel{},
		&quizmodel.QuizQuestionModel{},
		&attemptmodel.AttemptModel{},
		&attemptmodel.AnswerModel{},
	))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})
	return db
}

// offlineGateway always fails outbound calls, forcing the computed path.
func offlineGateway() *gateway.Client {
	return gateway.NewClient(gateway.Config{APIURL: "http://unused", Model: "m"})
}

func seedAttempt(t *testing.T, db *gorm.DB, tenantID, quizID, studentID uuid.UUID, percentage float64, finishedAt time.Time) attemptmodel.AttemptModel {
	t.Helper()
	var prior int64
	require.NoError(t, db.Model(&attemptmodel.AttemptModel{}).
		Where("attempt_quiz_id = ? AND attempt_student_id = ?", quizID, studentID).
		Count(&prior).Error)
	a := attemptmodel.AttemptModel{
		AttemptID:         uuid.New(),
		AttemptTenantID:   tenantID,
		AttemptQuizID:     quizID,
		AttemptStudentID:  studentID,
		AttemptNumber:     int(prior) + 1,
		AttemptStatus:     attemptmodel.AttemptStatusSubmitted,
		AttemptStartedAt:  finishedAt.Add(-10 * time.Minute),
		AttemptFinishedAt: &finishedAt,
		AttemptTotalScore: percentage / 10,
		AttemptMaxScore:   10,
		AttemptPercentage: percentage,
	}
	require.NoError(t, db.Create(&a).Error)
	return a
}

func TestQuizPerformance_ComputedFallback(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db, offlineGateway())
	tenantID := uuid.New()

	quiz := quizmodel.QuizModel{
		QuizID:          uuid.New(),
		QuizTenantID:    tenantID,
		QuizTopicID:     uuid.New(),
		QuizTeacherID:   uuid.New(),
		QuizTitle:       "Fractions check",
		QuizTotalPoints: 10,
		QuizIsActive:    true,
	}
	require.NoError(t, db.Create(&quiz).Error)

	now := time.Now().UTC()
	seedAttempt(t, db, tenantID, quiz.QuizID, uuid.New(), 90, now)
	seedAttempt(t, db, tenantID, quiz.QuizID, uuid.New(), 70, now)
	seedAttempt(t, db, tenantID, quiz.QuizID, uuid.New(), 40, now) // below pass threshold

	res, err := svc.QuizPerformance(context.Background(), tenantID, quiz.QuizID)
	require.NoError(t, err)
	assert.Equal(t, 3, res.AttemptCount)
	assert.Equal(t, 66.67, res.AveragePercent)
	assert.Equal(t, 66.67, res.PassRate)
	assert.Equal(t, 40.0, res.MinPercent)
	assert.Equal(t, 90.0, res.MaxPercent)
	assert.Equal(t, InsightsSourceComputed, res.InsightsSource)
	require.NotNil(t, res.Insights)
	assert.NotEmpty(t, res.Insights.Summary)
}

func TestQuizPerformance_MostMissed(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db, offlineGateway())
	tenantID := uuid.New()

	question := catalogmodel.QuestionModel{
		QuestionID:            uuid.New(),
		QuestionTenantID:      tenantID,
		QuestionTopicID:       uuid.New(),
		QuestionText:          "Hardest question",
		QuestionType:          catalogmodel.QuestionTypeTrueFalse,
		QuestionDifficulty:    catalogmodel.DifficultyHard,
		QuestionCorrectAnswer: "true",
		QuestionPoints:        1,
	}
	require.NoError(t, db.Create(&question).Error)

	quiz := quizmodel.QuizModel{
		QuizID:          uuid.New(),
		QuizTenantID:    tenantID,
		QuizTopicID:     uuid.New(),
		QuizTeacherID:   uuid.New(),
		QuizTitle:       "Hard quiz",
		QuizTotalPoints: 1,
		QuizIsActive:    true,
	}
	require.NoError(t, db.Create(&quiz).Error)

	now := time.Now().UTC()
	wrong := false
	for i := 0; i < 2; i++ {
		a := seedAttempt(t, db, tenantID, quiz.QuizID, uuid.New(), 0, now)
		require.NoError(t, db.Create(&attemptmodel.AnswerModel{
			AnswerID:            uuid.New(),
			AnswerTenantID:      tenantID,
			AnswerAttemptID:     a.AttemptID,
			AnswerQuestionID:    question.QuestionID,
			AnswerStudentAnswer: "false",
			AnswerIsCorrect:     &wrong,
			AnswerGradingStatus: attemptmodel.GradingStatusAuto,
		}).Error)
	}

	res, err := svc.QuizPerformance(context.Background(), tenantID, quiz.QuizID)
	require.NoError(t, err)
	require.Len(t, res.MostMissed, 1)
	assert.Equal(t, question.QuestionID, res.MostMissed[0].QuestionID)
	assert.Equal(t, 2, res.MostMissed[0].MissCount)
	assert.Equal(t, "Hardest question", res.MostMissed[0].QuestionText)
}

func TestQuizPerformance_NoAttempts(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db, offlineGateway())
	tenantID := uuid.New()

	quiz := quizmodel.QuizModel{
		QuizID:        uuid.New(),
		QuizTenantID:  tenantID,
		QuizTopicID:   uuid.New(),
		QuizTeacherID: uuid.New(),
		QuizTitle:     "Fresh quiz",
		QuizIsActive:  true,
	}
	require.NoError(t, db.Create(&quiz).Error)

	res, err := svc.QuizPerformance(context.Background(), tenantID, quiz.QuizID)
	require.NoError(t, err)
	assert.Zero(t, res.AttemptCount)
	assert.Equal(t, InsightsSourceComputed, res.InsightsSource)
}

func TestQuizPerformance_UnknownQuiz(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db, offlineGateway())

	_, err := svc.QuizPerformance(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStudentReport_TrendAndAggregates(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db, offlineGateway())
	tenantID := uuid.New()
	studentID := uuid.New()
	quizID := uuid.New()

	base := time.Now().UTC().Add(-3 * time.Hour)
	seedAttempt(t, db, tenantID, quizID, studentID, 50, base)
	seedAttempt(t, db, tenantID, quizID, studentID, 60, base.Add(time.Hour))
	seedAttempt(t, db, tenantID, quizID, studentID, 80, base.Add(2*time.Hour))

	res, err := svc.StudentReport(context.Background(), tenantID, studentID)
	require.NoError(t, err)
	assert.Equal(t, 3, res.AttemptCount)
	assert.Equal(t, 63.33, res.AveragePercent)
	assert.Equal(t, 80.0, res.BestPercent)
	assert.Equal(t, 80.0, res.LatestPercent)
	assert.Equal(t, "improving", res.Trend)
	assert.Equal(t, InsightsSourceComputed, res.InsightsSource)
}

func TestStudentReport_NoAttempts(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db, offlineGateway())

	res, err := svc.StudentReport(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.Zero(t, res.AttemptCount)
	assert.Equal(t, "steady", res.Trend)
	assert.Equal(t, InsightsSourceComputed, res.InsightsSource)
}
