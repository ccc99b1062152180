package service

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	database "shkola_backend/internals/databases"
	academicsModel "shkola_backend/internals/features/school/academics/model"
	scheduleModel "shkola_backend/internals/features/school/schedule/model"
	dto "shkola_backend/internals/features/school/schedule_import/dto"
	userModel "shkola_backend/internals/features/users/users/model"
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

func seedClass(t *testing.T, db *gorm.DB, number int, letter string) uuid.UUID {
	t.Helper()
	grade := academicsModel.GradeLevelModel{GradeLevelNumber: number}
	if err := db.Where("grade_level_number = ?", number).FirstOrCreate(&grade).Error; err != nil {
		t.Fatalf("seed grade: %v", err)
	}
	sc := academicsModel.SchoolClassModel{
		SchoolClassGradeLevelID: grade.GradeLevelID,
		SchoolClassLetter:       letter,
	}
	if err := db.Create(&sc).Error; err != nil {
		t.Fatalf("seed class: %v", err)
	}
	return sc.SchoolClassID
}

func seedTeacher(t *testing.T, db *gorm.DB, firstName, lastName string) uuid.UUID {
	t.Helper()
	u := userModel.UserModel{
		UserUsername:     fmt.Sprintf("%s_%s", firstName, lastName),
		UserFirstName:    firstName,
		UserLastName:     lastName,
		UserPasswordHash: "x",
		UserIsTeacher:    true,
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed teacher: %v", err)
	}
	return u.UserID
}

func countLessons(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&scheduleModel.ScheduleLessonModel{}).Count(&n).Error; err != nil {
		t.Fatalf("count lessons: %v", err)
	}
	return n
}

func TestExecuteImportEndToEnd(t *testing.T) {
	db := newTestDB(t)
	existingClassID := seedClass(t, db, 5, "А")
	teacherID := seedTeacher(t, db, "Анна", "Иванова")

	lessons := []dto.ClassLesson{
		// 5А resolves via the DB fallback, no mapping decision needed
		{ClassName: "5А", Weekday: 1, Period: 1, SubjectName: "Математика", RoomName: "201", TeacherName: "Иванова А.П."},
		// 7Б is created; group split with two rooms and two teachers
		{ClassName: "7Б", Weekday: 1, Period: 1, SubjectName: "Труды", Subject2Name: "Информатика",
			RoomName: "303", Room2Name: "103", TeacherName: "Кузнецов Н.Н.", Teacher2Name: "Петров В.В."},
	}
	result, err := ExecuteImport(db, lessons,
		map[string]dto.ClassDecision{
			"7Б": {Action: "create"},
		},
		map[string]dto.TeacherDecision{
			"Иванова А.П.":  {Action: "link", ID: &teacherID},
			"Кузнецов Н.Н.": {Action: "create", FirstName: "Николай", LastName: "Кузнецов"},
			"Петров В.В.":   {Action: "skip"},
		},
		map[string]dto.RoomDecision{
			"201": {Action: "create"},
			"303": {Action: "create"},
			"103": {Action: "create", Name: "103 (информатика)"},
		},
		false,
	)
	if err != nil {
		t.Fatalf("ExecuteImport: %v", err)
	}
	if result.Created != 3 || result.Skipped != 0 || len(result.Errors) != 0 {
		t.Fatalf("result = %+v, want created=3 skipped=0 errors=0", result)
	}

	// 5А lesson is linked to the seeded teacher
	var lesson5a scheduleModel.ScheduleLessonModel
	if err := db.First(&lesson5a, "schedule_lesson_class_id = ?", existingClassID).Error; err != nil {
		t.Fatalf("5А lesson: %v", err)
	}
	if lesson5a.ScheduleLessonTeacherID == nil || *lesson5a.ScheduleLessonTeacherID != teacherID {
		t.Errorf("5А teacher = %v, want %v", lesson5a.ScheduleLessonTeacherID, teacherID)
	}
	if lesson5a.ScheduleLessonRoomID == nil {
		t.Errorf("5А room not resolved")
	}
	if lesson5a.ScheduleLessonGroupID != nil {
		t.Errorf("5А lesson should not carry a group")
	}

	// the created teacher account exists with a temp password
	var created userModel.UserModel
	if err := db.First(&created, "user_last_name = ? AND user_first_name = ?", "Кузнецов", "Николай").Error; err != nil {
		t.Fatalf("created teacher: %v", err)
	}
	if !created.UserIsTeacher || !created.UserMustChangePassword || created.UserTempPassword == "" {
		t.Errorf("created teacher flags wrong: %+v", created)
	}
	var profiles int64
	db.Model(&userModel.TeacherProfileModel{}).
		Where("teacher_profile_user_id = ?", created.UserID).Count(&profiles)
	if profiles != 1 {
		t.Errorf("teacher profile count = %d, want 1", profiles)
	}

	// 7Б got its group pair and two rows, the second without a teacher
	var groups []academicsModel.ClassGroupModel
	if err := db.Order("class_group_name").Find(&groups).Error; err != nil {
		t.Fatalf("groups: %v", err)
	}
	if len(groups) != 2 || groups[0].ClassGroupName != "Группа 1" || groups[1].ClassGroupName != "Группа 2" {
		t.Fatalf("groups = %+v, want Группа 1/Группа 2", groups)
	}
	var group2Lesson scheduleModel.ScheduleLessonModel
	if err := db.First(&group2Lesson, "schedule_lesson_group_id = ?", groups[1].ClassGroupID).Error; err != nil {
		t.Fatalf("group2 lesson: %v", err)
	}
	if group2Lesson.ScheduleLessonTeacherID != nil {
		t.Errorf("group2 teacher = %v, want nil (explicitly skipped)", group2Lesson.ScheduleLessonTeacherID)
	}
	if group2Lesson.ScheduleLessonRoomID == nil {
		t.Errorf("group2 room not resolved")
	}

	// renamed room decision used the supplied name
	var room academicsModel.RoomModel
	if err := db.First(&room, "room_name = ?", "103 (информатика)").Error; err != nil {
		t.Errorf("renamed room missing: %v", err)
	}

	// subjects landed in the class curriculum
	var classSubjects int64
	db.Model(&academicsModel.ClassSubjectModel{}).Count(&classSubjects)
	if classSubjects != 3 {
		t.Errorf("class subjects = %d, want 3", classSubjects)
	}
}

func TestExecuteImportReplaceExisting(t *testing.T) {
	db := newTestDB(t)
	classID := seedClass(t, db, 5, "А")

	subject := academicsModel.SubjectModel{SubjectName: "Старый предмет"}
	if err := db.Create(&subject).Error; err != nil {
		t.Fatalf("seed subject: %v", err)
	}
	old := scheduleModel.ScheduleLessonModel{
		ScheduleLessonClassID:   classID,
		ScheduleLessonWeekday:   5,
		ScheduleLessonNumber:    6,
		ScheduleLessonSubjectID: subject.SubjectID,
	}
	if err := db.Create(&old).Error; err != nil {
		t.Fatalf("seed lesson: %v", err)
	}

	lessons := []dto.ClassLesson{
		{ClassName: "5А", Weekday: 1, Period: 1, SubjectName: "Математика"},
	}
	result, err := ExecuteImport(db, lessons, nil, nil, nil, true)
	if err != nil {
		t.Fatalf("ExecuteImport: %v", err)
	}
	if result.Created != 1 {
		t.Fatalf("created = %d, want 1", result.Created)
	}
	if n := countLessons(t, db); n != 1 {
		t.Errorf("lessons after replace = %d, want 1", n)
	}
}

func TestExecuteImportUnknownClassSkipped(t *testing.T) {
	db := newTestDB(t)
	lessons := []dto.ClassLesson{
		{ClassName: "9В", Weekday: 1, Period: 1, SubjectName: "Математика"},
		{ClassName: "не класс", Weekday: 1, Period: 2, SubjectName: "История"},
	}
	result, err := ExecuteImport(db, lessons, nil, nil, nil, false)
	if err != nil {
		t.Fatalf("ExecuteImport: %v", err)
	}
	if result.Created != 0 || result.Skipped != 2 {
		t.Errorf("result = %+v, want created=0 skipped=2", result)
	}
}

func TestExecuteImportSlotCollisionErrorsCapped(t *testing.T) {
	db := newTestDB(t)
	seedClass(t, db, 5, "А")

	lessons := make([]dto.ClassLesson, 0, 25)
	for i := 0; i < 25; i++ {
		lessons = append(lessons, dto.ClassLesson{
			ClassName: "5А", Weekday: 1, Period: 1, SubjectName: "Математика",
		})
	}
	result, err := ExecuteImport(db, lessons, nil, nil, nil, false)
	if err != nil {
		t.Fatalf("ExecuteImport: %v", err)
	}
	if result.Created != 1 {
		t.Errorf("created = %d, want 1 (slot is unique)", result.Created)
	}
	if len(result.Errors) != maxReportedErrors {
		t.Errorf("errors = %d, want capped at %d", len(result.Errors), maxReportedErrors)
	}
}

func TestExecuteImportSurnameFallback(t *testing.T) {
	db := newTestDB(t)
	seedClass(t, db, 5, "А")
	teacherID := seedTeacher(t, db, "Анна", "Иванова")

	// the teacher was never reported missing, so no mapping arrives;
	// resolution falls back to the surname lookup
	lessons := []dto.ClassLesson{
		{ClassName: "5А", Weekday: 1, Period: 1, SubjectName: "Математика", TeacherName: "Иванова А.П."},
	}
	result, err := ExecuteImport(db, lessons, nil, nil, nil, false)
	if err != nil {
		t.Fatalf("ExecuteImport: %v", err)
	}
	if result.Created != 1 {
		t.Fatalf("created = %d, want 1", result.Created)
	}
	var lesson scheduleModel.ScheduleLessonModel
	if err := db.First(&lesson).Error; err != nil {
		t.Fatalf("lesson: %v", err)
	}
	if lesson.ScheduleLessonTeacherID == nil || *lesson.ScheduleLessonTeacherID != teacherID {
		t.Errorf("teacher = %v, want %v (surname fallback)", lesson.ScheduleLessonTeacherID, teacherID)
	}
}
