package scheduler

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	database "shkola_backend/internals/databases"
	scheduleModel "shkola_backend/internals/features/school/schedule/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Discard,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedSubstitution(t *testing.T, db *gorm.DB, date time.Time, lessonNumber int) {
	t.Helper()
	sub := scheduleModel.SubstitutionModel{
		SubstitutionDate:         date,
		SubstitutionLessonNumber: lessonNumber,
		SubstitutionClassID:      uuid.New(),
		SubstitutionSubjectID:    uuid.New(),
	}
	if err := db.Create(&sub).Error; err != nil {
		t.Fatalf("seed substitution: %v", err)
	}
}

func TestCleanupPastSubstitutions(t *testing.T) {
	db := newTestDB(t)

	now := time.Now()
	seedSubstitution(t, db, now.AddDate(0, 0, -2), 1)
	seedSubstitution(t, db, now.AddDate(0, 0, -1), 2)
	seedSubstitution(t, db, now.AddDate(0, 0, 1), 3)

	CleanupPastSubstitutions(db)

	var remaining []scheduleModel.SubstitutionModel
	if err := db.Find(&remaining).Error; err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(remaining) != 1 {
		t.Fatalf("remaining = %d, want 1 (only the future substitution)", len(remaining))
	}
	if remaining[0].SubstitutionLessonNumber != 3 {
		t.Errorf("remaining lesson number = %d, want 3", remaining[0].SubstitutionLessonNumber)
	}
}
