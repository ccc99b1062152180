package service

import (
	"testing"

	academicsModel "shkola_backend/internals/features/school/academics/model"
	scheduleModel "shkola_backend/internals/features/school/schedule/model"
	dto "shkola_backend/internals/features/school/schedule_import/dto"
	userModel "shkola_backend/internals/features/users/users/model"
)

// Full preview-then-confirm run against an empty directory: everything the
// spreadsheets mention is reported missing, then created on confirm.
func TestImportFlowEmptyDirectory(t *testing.T) {
	db := newTestDB(t)

	classesFile := buildWorkbook(t, [][]any{
		{"День", "Урок", "5А", "каб"},
		{"Понедельник", "1", "Математика", "201"},
		{nil, "2", "Русский язык", "205"},
	})
	teachersFile := buildWorkbook(t, [][]any{
		{"День", "Урок", "Иванова А.П.", "каб"},
		{"Понедельник", "1", "Математика", "201"},
	})

	classLessons, err := ParseClassesFile(classesFile)
	if err != nil {
		t.Fatalf("ParseClassesFile: %v", err)
	}
	teacherLessons, teacherNames, err := ParseTeachersFile(teachersFile)
	if err != nil {
		t.Fatalf("ParseTeachersFile: %v", err)
	}
	MatchTeachers(classLessons, teacherLessons)

	dir, err := LoadDirectory(db)
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	report := Analyze(classLessons, teacherNames, dir)

	if len(report.MissingClasses) != 1 || report.MissingClasses[0] != "5А" {
		t.Fatalf("missing classes = %v, want [5А]", report.MissingClasses)
	}
	if len(report.MissingTeachers) != 1 || report.MissingTeachers[0].Name != "Иванова А.П." {
		t.Fatalf("missing teachers = %+v, want Иванова А.П.", report.MissingTeachers)
	}
	if len(report.MissingTeachers[0].Similar) != 0 {
		t.Errorf("empty directory cannot suggest candidates: %+v", report.MissingTeachers[0].Similar)
	}
	wantRooms := []string{"201", "205"}
	if len(report.MissingRooms) != len(wantRooms) {
		t.Fatalf("missing rooms = %v, want %v", report.MissingRooms, wantRooms)
	}
	for i, r := range wantRooms {
		if report.MissingRooms[i] != r {
			t.Errorf("missing rooms = %v, want %v", report.MissingRooms, wantRooms)
		}
	}
	if len(report.DBClasses) != 0 || len(report.DBTeachers) != 0 || len(report.DBRooms) != 0 {
		t.Errorf("directory options should be empty")
	}
	if report.Stats.TotalLessons != 2 || report.Stats.WithTeacher != 1 {
		t.Errorf("stats = %+v, want total=2 with_teacher=1", report.Stats)
	}

	// the frontend round-trips parsed_lessons plus one decision per missing entity
	result, err := ExecuteImport(db, report.ParsedLessons,
		map[string]dto.ClassDecision{
			"5А": {Action: "create"},
		},
		map[string]dto.TeacherDecision{
			"Иванова А.П.": {Action: "create", FirstName: "Анна", LastName: "Иванова"},
		},
		map[string]dto.RoomDecision{
			"201": {Action: "create"},
			"205": {Action: "create"},
		},
		false,
	)
	if err != nil {
		t.Fatalf("ExecuteImport: %v", err)
	}
	if result.Created != 2 || result.Skipped != 0 || len(result.Errors) != 0 {
		t.Fatalf("result = %+v, want created=2", result)
	}

	var class academicsModel.SchoolClassModel
	if err := db.First(&class, "school_class_letter = ?", "А").Error; err != nil {
		t.Fatalf("created class: %v", err)
	}
	var teacher userModel.UserModel
	if err := db.First(&teacher, "user_last_name = ?", "Иванова").Error; err != nil {
		t.Fatalf("created teacher: %v", err)
	}

	var lessons []scheduleModel.ScheduleLessonModel
	if err := db.Order("schedule_lesson_number").Find(&lessons).Error; err != nil {
		t.Fatalf("lessons: %v", err)
	}
	if len(lessons) != 2 {
		t.Fatalf("lessons = %d, want 2", len(lessons))
	}
	if lessons[0].ScheduleLessonTeacherID == nil || *lessons[0].ScheduleLessonTeacherID != teacher.UserID {
		t.Errorf("period 1 teacher = %v, want the matched one", lessons[0].ScheduleLessonTeacherID)
	}
	if lessons[1].ScheduleLessonTeacherID != nil {
		t.Errorf("period 2 had no teacher in the source, got %v", lessons[1].ScheduleLessonTeacherID)
	}
	for i, l := range lessons {
		if l.ScheduleLessonRoomID == nil {
			t.Errorf("lesson %d room not resolved", i)
		}
	}
}

// Running the same confirm twice must not duplicate rooms, subjects or
// classes; only the lesson rows collide.
func TestImportFlowDoubleRunKeepsDirectoryStable(t *testing.T) {
	db := newTestDB(t)
	seedClass(t, db, 5, "А")

	lessons := []dto.ClassLesson{
		{ClassName: "5А", Weekday: 1, Period: 1, SubjectName: "Математика", RoomName: "201"},
		{ClassName: "5А", Weekday: 1, Period: 2, SubjectName: "Русский язык", RoomName: "205"},
	}
	roomMappings := map[string]dto.RoomDecision{
		"201": {Action: "create"},
		"205": {Action: "create"},
	}

	first, err := ExecuteImport(db, lessons, nil, nil, roomMappings, false)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.Created != 2 {
		t.Fatalf("first run created = %d, want 2", first.Created)
	}

	// second run resolves rooms through the DB fallback, no mappings
	second, err := ExecuteImport(db, lessons, nil, nil, nil, false)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second.Created != 0 || len(second.Errors) != 2 {
		t.Errorf("second run = %+v, want created=0 errors=2", second)
	}

	var rooms, subjects, classes int64
	db.Model(&academicsModel.RoomModel{}).Count(&rooms)
	db.Model(&academicsModel.SubjectModel{}).Count(&subjects)
	db.Model(&academicsModel.SchoolClassModel{}).Count(&classes)
	if rooms != 2 || subjects != 2 || classes != 1 {
		t.Errorf("directory after double run: rooms=%d subjects=%d classes=%d, want 2/2/1",
			rooms, subjects, classes)
	}
	if n := countLessons(t, db); n != 2 {
		t.Errorf("lessons = %d, want 2", n)
	}
}
