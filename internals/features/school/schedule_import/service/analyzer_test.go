package service

import (
	"testing"

	"github.com/google/uuid"

	dto "shkola_backend/internals/features/school/schedule_import/dto"
)

func testDirectory() (*Directory, uuid.UUID, uuid.UUID, uuid.UUID) {
	classID := uuid.New()
	teacherID := uuid.New()
	roomID := uuid.New()
	dir := &Directory{
		Classes:  []DirectoryClass{{ID: classID, Number: 5, Letter: "А"}},
		Teachers: []DirectoryTeacher{{ID: teacherID, FirstName: "Анна", LastName: "Иванова"}},
		Rooms:    []DirectoryRoom{{ID: roomID, Name: "201"}},
	}
	return dir, classID, teacherID, roomID
}

func TestAnalyzeMissingEntities(t *testing.T) {
	dir, _, teacherID, _ := testDirectory()

	lessons := []dto.ClassLesson{
		{ClassName: "5А", Weekday: 1, Period: 1, SubjectName: "Математика", RoomName: "201", TeacherName: "Иванова А.П."},
		{ClassName: "7Б", Weekday: 1, Period: 1, SubjectName: "Труды", Subject2Name: "Информатика",
			RoomName: "303", Room2Name: "103", TeacherName: "Иванов К.М.", Teacher2Name: "Петров В.В."},
	}
	report := Analyze(lessons, []string{"Иванова А.П.", "Иванов К.М.", "Петров В.В."}, dir)

	if len(report.MissingClasses) != 1 || report.MissingClasses[0] != "7Б" {
		t.Errorf("missing classes = %v, want [7Б]", report.MissingClasses)
	}

	if len(report.MissingRooms) != 2 {
		t.Fatalf("missing rooms = %v, want [103 303]", report.MissingRooms)
	}
	if report.MissingRooms[0] != "103" || report.MissingRooms[1] != "303" {
		t.Errorf("missing rooms = %v, want [103 303]", report.MissingRooms)
	}

	// Иванова matches exactly; Иванов and Петров are missing, and Иванов
	// gets Иванова suggested via the surname prefix
	if len(report.MissingTeachers) != 2 {
		t.Fatalf("missing teachers = %+v, want 2 entries", report.MissingTeachers)
	}
	byName := map[string]dto.MissingTeacher{}
	for _, mt := range report.MissingTeachers {
		byName[mt.Name] = mt
	}
	ivanov, ok := byName["Иванов К.М."]
	if !ok {
		t.Fatalf("Иванов К.М. not reported missing: %+v", report.MissingTeachers)
	}
	if len(ivanov.Similar) != 1 || ivanov.Similar[0].ID != teacherID {
		t.Errorf("Иванов suggestions = %+v, want Иванова", ivanov.Similar)
	}
	if ivanov.Similar[0].Name != "Иванова Анна" {
		t.Errorf("suggestion name = %q, want \"Иванова Анна\"", ivanov.Similar[0].Name)
	}
	petrov, ok := byName["Петров В.В."]
	if !ok {
		t.Fatalf("Петров В.В. not reported missing")
	}
	if len(petrov.Similar) != 0 {
		t.Errorf("Петров suggestions = %+v, want none", petrov.Similar)
	}

	if report.Stats.TotalLessons != 2 || report.Stats.WithTeacher != 2 {
		t.Errorf("stats = %+v, want total=2 with_teacher=2", report.Stats)
	}
}

func TestAnalyzeClassNameNormalization(t *testing.T) {
	dir, _, _, _ := testDirectory()
	lessons := []dto.ClassLesson{
		{ClassName: "5 А", Weekday: 1, Period: 1, SubjectName: "Математика"},
	}
	report := Analyze(lessons, nil, dir)
	if len(report.MissingClasses) != 0 {
		t.Errorf("missing classes = %v, want none ('5 А' should match '5А')", report.MissingClasses)
	}
}

func TestAnalyzeShortSurnameNeverSuggests(t *testing.T) {
	dir := &Directory{
		Teachers: []DirectoryTeacher{{ID: uuid.New(), FirstName: "Ян", LastName: "Ян"}},
	}
	lessons := []dto.ClassLesson{}
	report := Analyze(lessons, []string{"Я И.О."}, dir)
	if len(report.MissingTeachers) != 1 {
		t.Fatalf("missing teachers = %+v, want 1", report.MissingTeachers)
	}
	// one-rune prefixes are below the minimum overlap
	if len(report.MissingTeachers[0].Similar) != 0 {
		t.Errorf("suggestions = %+v, want none", report.MissingTeachers[0].Similar)
	}
}

func TestAnalyzeDirectoryOptions(t *testing.T) {
	dir, classID, teacherID, roomID := testDirectory()
	report := Analyze(nil, nil, dir)

	if len(report.DBClasses) != 1 || report.DBClasses[0].ID != classID || report.DBClasses[0].Name != "5-А" {
		t.Errorf("db_classes = %+v", report.DBClasses)
	}
	if len(report.DBTeachers) != 1 || report.DBTeachers[0].ID != teacherID || report.DBTeachers[0].Name != "Иванова Анна" {
		t.Errorf("db_teachers = %+v", report.DBTeachers)
	}
	if len(report.DBRooms) != 1 || report.DBRooms[0].ID != roomID || report.DBRooms[0].Name != "201" {
		t.Errorf("db_rooms = %+v", report.DBRooms)
	}
}
