// file: internals/features/school/schedule/scheduler/substitution_cleanup.go
package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	scheduleModel "shkola_backend/internals/features/school/schedule/model"
)

// StartSubstitutionCleanupScheduler deletes substitutions for past dates
// every night at 03:00 server time. Substitutions are one-off by nature,
// so anything older than today is noise.
func StartSubstitutionCleanupScheduler(db *gorm.DB) *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc("0 3 * * *", func() {
		CleanupPastSubstitutions(db)
	})
	if err != nil {
		log.Printf("[ERROR] substitution cleanup schedule: %v", err)
		return c
	}

	c.Start()
	log.Println("🕒 Substitution cleanup scheduler started (daily 03:00)")
	return c
}

func CleanupPastSubstitutions(db *gorm.DB) {
	today := time.Now().Truncate(24 * time.Hour)
	res := db.Where("substitution_date < ?", today).
		Delete(&scheduleModel.SubstitutionModel{})
	if res.Error != nil {
		log.Printf("[ERROR] substitution cleanup: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("[INFO] substitution cleanup: removed %d past rows", res.RowsAffected)
	}
}
