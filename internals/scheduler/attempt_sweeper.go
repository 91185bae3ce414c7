// file: internals/scheduler/attempt_sweeper.go
package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	attemptmodel "schoolhub_backend/internals/features/assessment/attempts/model"
	quizmodel "schoolhub_backend/internals/features/assessment/quizzes/model"
)

// expiryGrace gives slow clients a moment past the quiz time limit before
// the attempt is written off.
const expiryGrace = 30 * time.Second

// StartAttemptSweeper runs SweepExpiredAttempts every minute. in_progress
// attempts whose quiz time limit has passed are marked abandoned so they
// never linger as open work and never count as submitted results. Abandoned
// attempts still occupy their attempt_number slot.
func StartAttemptSweeper(db *gorm.DB) *cron.Cron {
	c := cron.New()
	_, err := c.AddFunc("* * * * *", func() {
		n, err := SweepExpiredAttempts(db, time.Now().UTC())
		if err != nil {
			log.Printf("[SWEEPER] sweep failed: %v", err)
			return
		}
		if n > 0 {
			log.Printf("[SWEEPER] abandoned %d expired attempts", n)
		}
	})
	if err != nil {
		log.Printf("[SWEEPER] schedule failed: %v", err)
		return c
	}
	c.Start()
	log.Println("✅ Attempt sweeper scheduled (every minute)")
	return c
}

// SweepExpiredAttempts abandons in_progress attempts past their quiz's time
// limit. Quizzes without a time limit never expire.
func SweepExpiredAttempts(db *gorm.DB, now time.Time) (int64, error) {
	var attempts []attemptmodel.AttemptModel
	if err := db.
		Where("attempt_status = ?", attemptmodel.AttemptStatusInProgress).
		Find(&attempts).Error; err != nil {
		return 0, err
	}
	if len(attempts) == 0 {
		return 0, nil
	}

	// resolve time limits once per quiz
	limits := map[string]*int{}
	var swept int64
	for _, a := range attempts {
		key := a.AttemptQuizID.String()
		limit, seen := limits[key]
		if !seen {
			var quiz quizmodel.QuizModel
			if err := db.Unscoped().
				First(&quiz, "quiz_id = ?", a.AttemptQuizID).Error; err != nil {
				limits[key] = nil
				continue
			}
			limit = quiz.QuizTimeLimitMin
			limits[key] = limit
		}
		if limit == nil || *limit <= 0 {
			continue
		}

		deadline := a.AttemptStartedAt.Add(time.Duration(*limit)*time.Minute + expiryGrace)
		if now.Before(deadline) {
			continue
		}

		res := db.Model(&attemptmodel.AttemptModel{}).
			Where("attempt_id = ? AND attempt_status = ?", a.AttemptID, attemptmodel.AttemptStatusInProgress).
			Updates(map[string]interface{}{
				"attempt_status":      attemptmodel.AttemptStatusAbandoned,
				"attempt_finished_at": now,
			})
		if res.Error != nil {
			log.Printf("[SWEEPER] failed to abandon attempt %s: %v", a.AttemptID, res.Error)
			continue
		}
		swept += res.RowsAffected
	}
	return swept, nil
}
