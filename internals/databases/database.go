package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"shkola_backend/internals/configs"
	academicsModel "shkola_backend/internals/features/school/academics/model"
	scheduleModel "shkola_backend/internals/features/school/schedule/model"
	userModel "shkola_backend/internals/features/users/users/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Connecting to PostgreSQL...")

	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=shkola&options=-c statement_timeout=15000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // PgBouncer friendly
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("❌ DB connect failed: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Migrate creates all tables plus the conditional slot-uniqueness indexes
// that AutoMigrate cannot express (partial indexes over nullable group).
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&userModel.UserModel{},
		&userModel.TeacherProfileModel{},
		&userModel.StudentProfileModel{},
		&userModel.ParentProfileModel{},
		&userModel.ParentChildModel{},
		&academicsModel.GradeLevelModel{},
		&academicsModel.SchoolClassModel{},
		&academicsModel.SubjectModel{},
		&academicsModel.GradeLevelSubjectModel{},
		&academicsModel.ClassGroupModel{},
		&academicsModel.ClassGroupStudentModel{},
		&academicsModel.RoomModel{},
		&academicsModel.ClassSubjectModel{},
		&scheduleModel.ScheduleLessonModel{},
		&scheduleModel.SubstitutionModel{},
	); err != nil {
		return err
	}

	for _, stmt := range []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_schedule_lessons_slot
			ON schedule_lessons (schedule_lesson_class_id, schedule_lesson_weekday, schedule_lesson_number)
			WHERE schedule_lesson_group_id IS NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_schedule_lessons_slot_group
			ON schedule_lessons (schedule_lesson_class_id, schedule_lesson_weekday, schedule_lesson_number, schedule_lesson_group_id)
			WHERE schedule_lesson_group_id IS NOT NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_substitutions_slot
			ON substitutions (substitution_date, substitution_lesson_number, substitution_class_id)
			WHERE substitution_group_id IS NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_substitutions_slot_group
			ON substitutions (substitution_date, substitution_lesson_number, substitution_class_id, substitution_group_id)
			WHERE substitution_group_id IS NOT NULL`,
	} {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
