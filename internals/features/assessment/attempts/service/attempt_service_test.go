// file: internals/features/assessment/attempts/service/attempt_service_test.go
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

	model "schoolhub_backend/internals/features/assessment/attempts/model"
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
		&model.AttemptModel{},
		&model.AnswerModel{},
	))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})
	return db
}

type fixture struct {
	tenantID  uuid.UUID
	studentID uuid.UUID
	quiz      *quizmodel.QuizModel
	questions []catalogmodel.QuestionModel
}

// seedQuiz builds a 3x1pt MCQ quiz, all with correct answer "A".
func seedQuiz(t *testing.T, db *gorm.DB, allowRetakes bool) fixture {
	t.Helper()
	f := fixture{
		tenantID:  uuid.New(),
		studentID: uuid.New(),
	}

	topic := catalogmodel.TopicModel{
		TopicID:         uuid.New(),
		TopicTenantID:   f.tenantID,
		TopicName:       "Fractions",
		TopicSubject:    "math",
		TopicGradeLevel: 5,
	}
	require.NoError(t, db.Create(&topic).Error)

	for i := 0; i < 3; i++ {
		q := catalogmodel.QuestionModel{
			QuestionID:         uuid.New(),
			QuestionTenantID:   f.tenantID,
			QuestionTopicID:    topic.TopicID,
			QuestionText:       "Pick A",
			QuestionType:       catalogmodel.QuestionTypeMultipleChoice,
			QuestionDifficulty: catalogmodel.DifficultyEasy,
			QuestionPoints:     1,
		}
		require.NoError(t, q.SetOptions(map[string]string{"A": "right", "B": "wrong"}, "A"))
		require.NoError(t, db.Create(&q).Error)
		f.questions = append(f.questions, q)
	}

	f.quiz = &quizmodel.QuizModel{
		QuizID:             uuid.New(),
		QuizTenantID:       f.tenantID,
		QuizTopicID:        topic.TopicID,
		QuizTeacherID:      uuid.New(),
		QuizTitle:          "Fractions check",
		QuizTotalQuestions: 3,
		QuizTotalPoints:    3,
		QuizIsActive:       true,
		QuizAllowRetakes:   allowRetakes,
	}
	require.NoError(t, db.Create(f.quiz).Error)

	for i, q := range f.questions {
		require.NoError(t, db.Create(&quizmodel.QuizQuestionModel{
			QuizQuestionID:          uuid.New(),
			QuizQuestionQuizID:      f.quiz.QuizID,
			QuizQuestionQuestionID:  q.QuestionID,
			QuizQuestionOrderNumber: i + 1,
			QuizQuestionPoints:      q.QuestionPoints,
		}).Error)
	}
	return f
}

func TestStartAttempt_NumbersIncrease(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	f := seedQuiz(t, db, true)
	ctx := context.Background()

	first, err := svc.StartAttempt(ctx, f.tenantID, f.quiz.QuizID, f.studentID)
	require.NoError(t, err)
	assert.Equal(t, 1, first.AttemptNumber)
	assert.Equal(t, model.AttemptStatusInProgress, first.AttemptStatus)
	assert.Equal(t, 3.0, first.AttemptMaxScore)

	second, err := svc.StartAttempt(ctx, f.tenantID, f.quiz.QuizID, f.studentID)
	require.NoError(t, err)
	assert.Equal(t, 2, second.AttemptNumber)

	third, err := svc.StartAttempt(ctx, f.tenantID, f.quiz.QuizID, f.studentID)
	require.NoError(t, err)
	assert.Equal(t, 3, third.AttemptNumber)
}

func TestAttemptNumber_UniquePerQuizStudent(t *testing.T) {
	db := openTestDB(t)
	f := seedQuiz(t, db, true)

	a := model.AttemptModel{
		AttemptID:        uuid.New(),
		AttemptTenantID:  f.tenantID,
		AttemptQuizID:    f.quiz.QuizID,
		AttemptStudentID: f.studentID,
		AttemptNumber:    1,
		AttemptStatus:    model.AttemptStatusInProgress,
		AttemptStartedAt: time.Now().UTC(),
	}
	require.NoError(t, db.Create(&a).Error)

	// same (quiz, student, number) must be rejected by the unique index
	dup := a
	dup.AttemptID = uuid.New()
	assert.Error(t, db.Create(&dup).Error)
}

func TestStartAttempt_RetakesDisallowed(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	f := seedQuiz(t, db, false)
	ctx := context.Background()

	_, err := svc.StartAttempt(ctx, f.tenantID, f.quiz.QuizID, f.studentID)
	require.NoError(t, err)

	_, err = svc.StartAttempt(ctx, f.tenantID, f.quiz.QuizID, f.studentID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestStartAttempt_InactiveQuiz(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	f := seedQuiz(t, db, true)
	require.NoError(t, db.Model(f.quiz).Update("quiz_is_active", false).Error)

	_, err := svc.StartAttempt(context.Background(), f.tenantID, f.quiz.QuizID, f.studentID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestSubmitAnswer_ForeignQuestionWritesNothing(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	f := seedQuiz(t, db, true)
	ctx := context.Background()

	attempt, err := svc.StartAttempt(ctx, f.tenantID, f.quiz.QuizID, f.studentID)
	require.NoError(t, err)

	_, err = svc.SubmitAnswer(ctx, f.tenantID, attempt.AttemptID, f.studentID, SubmitAnswerInput{
		QuestionID: uuid.New(), // not part of the quiz
		Response:   "A",
	})
	assert.ErrorIs(t, err, ErrValidation)

	var count int64
	require.NoError(t, db.Model(&model.AnswerModel{}).
		Where("answer_attempt_id = ?", attempt.AttemptID).
		Count(&count).Error)
	assert.Zero(t, count)
}

func TestSubmitAnswer_ForbiddenForOtherStudent(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	f := seedQuiz(t, db, true)
	ctx := context.Background()

	attempt, err := svc.StartAttempt(ctx, f.tenantID, f.quiz.QuizID, f.studentID)
	require.NoError(t, err)

	_, err = svc.SubmitAnswer(ctx, f.tenantID, attempt.AttemptID, uuid.New(), SubmitAnswerInput{
		QuestionID: f.questions[0].QuestionID,
		Response:   "A",
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestSubmitAnswer_UpsertOverwrites(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	f := seedQuiz(t, db, true)
	ctx := context.Background()

	attempt, err := svc.StartAttempt(ctx, f.tenantID, f.quiz.QuizID, f.studentID)
	require.NoError(t, err)

	ans, err := svc.SubmitAnswer(ctx, f.tenantID, attempt.AttemptID, f.studentID, SubmitAnswerInput{
		QuestionID: f.questions[0].QuestionID,
		Response:   "B",
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, ans.AnswerPointsEarned)

	// change of mind before finalize: last write wins
	_, err = svc.SubmitAnswer(ctx, f.tenantID, attempt.AttemptID, f.studentID, SubmitAnswerInput{
		QuestionID: f.questions[0].QuestionID,
		Response:   "a",
	})
	require.NoError(t, err)

	var rows []model.AnswerModel
	require.NoError(t, db.
		Where("answer_attempt_id = ? AND answer_question_id = ?", attempt.AttemptID, f.questions[0].QuestionID).
		Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "a", rows[0].AnswerStudentAnswer)
	assert.Equal(t, 1.0, rows[0].AnswerPointsEarned) // case-insensitive label match
}

func TestSubmitAnswer_OverwriteReturnsStoredRow(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	f := seedQuiz(t, db, true)
	ctx := context.Background()

	attempt, err := svc.StartAttempt(ctx, f.tenantID, f.quiz.QuizID, f.studentID)
	require.NoError(t, err)

	first, err := svc.SubmitAnswer(ctx, f.tenantID, attempt.AttemptID, f.studentID, SubmitAnswerInput{
		QuestionID: f.questions[0].QuestionID,
		Response:   "B",
	})
	require.NoError(t, err)

	// the conflict path keeps the original row; the returned id must be the
	// persisted one, not a fresh candidate id
	second, err := svc.SubmitAnswer(ctx, f.tenantID, attempt.AttemptID, f.studentID, SubmitAnswerInput{
		QuestionID: f.questions[0].QuestionID,
		Response:   "A",
	})
	require.NoError(t, err)
	assert.Equal(t, first.AnswerID, second.AnswerID)

	var stored model.AnswerModel
	require.NoError(t, db.
		First(&stored, "answer_attempt_id = ? AND answer_question_id = ?",
			attempt.AttemptID, f.questions[0].QuestionID).Error)
	assert.Equal(t, stored.AnswerID, second.AnswerID)
	assert.Equal(t, "A", second.AnswerStudentAnswer)
	assert.False(t, stored.AnswerCreatedAt.IsZero())
}

func TestFinalize_TwoOfThreeCorrect(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	f := seedQuiz(t, db, true)
	ctx := context.Background()

	attempt, err := svc.StartAttempt(ctx, f.tenantID, f.quiz.QuizID, f.studentID)
	require.NoError(t, err)

	responses := []string{"A", "A", "B"} // 2 right, 1 wrong
	for i, q := range f.questions {
		_, err := svc.SubmitAnswer(ctx, f.tenantID, attempt.AttemptID, f.studentID, SubmitAnswerInput{
			QuestionID: q.QuestionID,
			Response:   responses[i],
		})
		require.NoError(t, err)
	}

	done, err := svc.FinalizeAttempt(ctx, f.tenantID, attempt.AttemptID, f.studentID)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptStatusSubmitted, done.AttemptStatus)
	assert.NotNil(t, done.AttemptFinishedAt)
	assert.Equal(t, 2.0, done.AttemptTotalScore)
	assert.Equal(t, 3.0, done.AttemptMaxScore)
	assert.Equal(t, 66.67, done.AttemptPercentage)
}

func TestFinalize_TwiceFailsAndStateUnchanged(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	f := seedQuiz(t, db, true)
	ctx := context.Background()

	attempt, err := svc.StartAttempt(ctx, f.tenantID, f.quiz.QuizID, f.studentID)
	require.NoError(t, err)
	_, err = svc.SubmitAnswer(ctx, f.tenantID, attempt.AttemptID, f.studentID, SubmitAnswerInput{
		QuestionID: f.questions[0].QuestionID,
		Response:   "A",
	})
	require.NoError(t, err)

	first, err := svc.FinalizeAttempt(ctx, f.tenantID, attempt.AttemptID, f.studentID)
	require.NoError(t, err)

	_, err = svc.FinalizeAttempt(ctx, f.tenantID, attempt.AttemptID, f.studentID)
	assert.ErrorIs(t, err, ErrInvalidState)

	var after model.AttemptModel
	require.NoError(t, db.First(&after, "attempt_id = ?", attempt.AttemptID).Error)
	assert.Equal(t, first.AttemptTotalScore, after.AttemptTotalScore)
	assert.Equal(t, first.AttemptPercentage, after.AttemptPercentage)
	require.NotNil(t, after.AttemptFinishedAt)
	assert.Equal(t, first.AttemptFinishedAt.Unix(), after.AttemptFinishedAt.Unix())
}

func TestFinalize_ZeroMaxScore(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	f := seedQuiz(t, db, true)
	require.NoError(t, db.Model(f.quiz).Update("quiz_total_points", 0).Error)
	ctx := context.Background()

	attempt, err := svc.StartAttempt(ctx, f.tenantID, f.quiz.QuizID, f.studentID)
	require.NoError(t, err)

	done, err := svc.FinalizeAttempt(ctx, f.tenantID, attempt.AttemptID, f.studentID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, done.AttemptPercentage)
}

func TestGradeAnswer_CapsAndRecomputes(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	f := seedQuiz(t, db, true)
	ctx := context.Background()

	// swap one MCQ for an essay worth 2 points so grading has a subject
	essay := catalogmodel.QuestionModel{
		QuestionID:            uuid.New(),
		QuestionTenantID:      f.tenantID,
		QuestionTopicID:       f.questions[0].QuestionTopicID,
		QuestionText:          "Explain fractions",
		QuestionType:          catalogmodel.QuestionTypeEssay,
		QuestionDifficulty:    catalogmodel.DifficultyMedium,
		QuestionCorrectAnswer: "A fraction represents a part of a whole.",
		QuestionPoints:        2,
	}
	require.NoError(t, db.Create(&essay).Error)
	require.NoError(t, db.Create(&quizmodel.QuizQuestionModel{
		QuizQuestionID:          uuid.New(),
		QuizQuestionQuizID:      f.quiz.QuizID,
		QuizQuestionQuestionID:  essay.QuestionID,
		QuizQuestionOrderNumber: 4,
		QuizQuestionPoints:      2,
	}).Error)
	require.NoError(t, db.Model(f.quiz).Update("quiz_total_points", 5).Error)

	attempt, err := svc.StartAttempt(ctx, f.tenantID, f.quiz.QuizID, f.studentID)
	require.NoError(t, err)

	ans, err := svc.SubmitAnswer(ctx, f.tenantID, attempt.AttemptID, f.studentID, SubmitAnswerInput{
		QuestionID: essay.QuestionID,
		Response:   "part of a whole",
	})
	require.NoError(t, err)
	assert.Equal(t, model.GradingStatusPendingReview, ans.AnswerGradingStatus)
	assert.Equal(t, 0.0, ans.AnswerPointsEarned)

	done, err := svc.FinalizeAttempt(ctx, f.tenantID, attempt.AttemptID, f.studentID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, done.AttemptTotalScore) // ungraded subjective counts as zero

	// grade above the question's worth: capped at 2
	graded, err := svc.GradeAnswer(ctx, f.tenantID, attempt.AttemptID, GradeInput{
		QuestionID:   essay.QuestionID,
		PointsEarned: 10,
		Status:       model.GradingStatusManuallyGraded,
	})
	require.NoError(t, err)
	assert.Equal(t, 2.0, graded.AnswerPointsEarned)
	require.NotNil(t, graded.AnswerIsCorrect)
	assert.True(t, *graded.AnswerIsCorrect)

	// submitted attempt totals recomputed in place
	var after model.AttemptModel
	require.NoError(t, db.First(&after, "attempt_id = ?", attempt.AttemptID).Error)
	assert.Equal(t, 2.0, after.AttemptTotalScore)
	assert.Equal(t, 40.0, after.AttemptPercentage)
	assert.LessOrEqual(t, after.AttemptTotalScore, after.AttemptMaxScore)
}

func TestGradeAnswer_RejectsBadStatus(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	f := seedQuiz(t, db, true)

	_, err := svc.GradeAnswer(context.Background(), f.tenantID, uuid.New(), GradeInput{
		QuestionID:   f.questions[0].QuestionID,
		PointsEarned: 1,
		Status:       model.GradingStatusAuto,
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestStudentResults_OnlySubmittedNewestFirst(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	f := seedQuiz(t, db, true)
	ctx := context.Background()

	a1, err := svc.StartAttempt(ctx, f.tenantID, f.quiz.QuizID, f.studentID)
	require.NoError(t, err)
	_, err = svc.FinalizeAttempt(ctx, f.tenantID, a1.AttemptID, f.studentID)
	require.NoError(t, err)

	a2, err := svc.StartAttempt(ctx, f.tenantID, f.quiz.QuizID, f.studentID)
	require.NoError(t, err)
	_, err = svc.FinalizeAttempt(ctx, f.tenantID, a2.AttemptID, f.studentID)
	require.NoError(t, err)

	// a third attempt left open never shows up
	_, err = svc.StartAttempt(ctx, f.tenantID, f.quiz.QuizID, f.studentID)
	require.NoError(t, err)

	results, err := svc.StudentResults(ctx, f.tenantID, f.studentID)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, model.AttemptStatusSubmitted, r.AttemptStatus)
	}
}
