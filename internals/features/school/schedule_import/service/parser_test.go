package service

import (
	"testing"

	"github.com/xuri/excelize/v2"

	dto "shkola_backend/internals/features/school/schedule_import/dto"
)

func buildWorkbook(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestParseClassName(t *testing.T) {
	tests := []struct {
		raw     string
		number  int
		letter  string
		wantErr bool
	}{
		{"1а", 1, "А", false},
		{"11б", 11, "Б", false},
		{"5 А", 5, "А", false},
		{"7В ", 7, "В", false},
		{"9", 9, "", false},
		{"абв", 0, "", true},
		{"", 0, "", true},
	}
	for _, tt := range tests {
		number, letter, err := ParseClassName(tt.raw)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseClassName(%q): expected error", tt.raw)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClassName(%q): %v", tt.raw, err)
			continue
		}
		if number != tt.number || letter != tt.letter {
			t.Errorf("ParseClassName(%q) = (%d, %q), want (%d, %q)",
				tt.raw, number, letter, tt.number, tt.letter)
		}
	}
}

func TestParseClassesFile(t *testing.T) {
	// 5А is a plain 2-column block, 7Б a 3-column block with a group column
	fileBytes := buildWorkbook(t, [][]any{
		{"День", "Урок", "5А", "каб", "7Б", nil, "каб"},
		{nil, "1", "Химия", "202", nil, nil, nil}, // before any day label
		{"Понедельник", "1", "Математика", "201", "Труды", "Информатика", "303, 103"},
		{nil, "2", "Русский язык", "205", "Физика", "Физика", "210"},
		{nil, nil, "Пусто", "101", nil, nil, nil}, // no period
		{"Вторник", "абв", "Химия", "202", nil, nil, nil}, // unparseable period
		{nil, "1", nil, nil, "История", nil, "210"},
	})

	lessons, err := ParseClassesFile(fileBytes)
	if err != nil {
		t.Fatalf("ParseClassesFile: %v", err)
	}

	want := []dto.ClassLesson{
		{ClassName: "5А", Weekday: 1, Period: 1, SubjectName: "Математика", RoomName: "201"},
		{ClassName: "7Б", Weekday: 1, Period: 1, SubjectName: "Труды", Subject2Name: "Информатика", RoomName: "303", Room2Name: "103"},
		{ClassName: "5А", Weekday: 1, Period: 2, SubjectName: "Русский язык", RoomName: "205"},
		{ClassName: "7Б", Weekday: 1, Period: 2, SubjectName: "Физика", RoomName: "210"},
		{ClassName: "7Б", Weekday: 2, Period: 1, SubjectName: "История", RoomName: "210"},
	}
	if len(lessons) != len(want) {
		t.Fatalf("got %d lessons, want %d: %+v", len(lessons), len(want), lessons)
	}
	for i, w := range want {
		if lessons[i] != w {
			t.Errorf("lesson %d = %+v, want %+v", i, lessons[i], w)
		}
	}
}

func TestParseClassesFileSameGroupSubjectCollapses(t *testing.T) {
	// the comparison ignores case and surrounding whitespace; the
	// primary cell keeps its original casing
	fileBytes := buildWorkbook(t, [][]any{
		{"День", "Урок", "7Б", nil, "каб"},
		{"Среда", "3", "Физика", "Физика", "210, 211"},
		{nil, "4", "Физика", "физика", "210, 211"},
		{nil, "5", "Химия", " ХИМИЯ ", "202"},
	})
	lessons, err := ParseClassesFile(fileBytes)
	if err != nil {
		t.Fatalf("ParseClassesFile: %v", err)
	}
	if len(lessons) != 3 {
		t.Fatalf("got %d lessons, want 3", len(lessons))
	}
	for i, l := range lessons {
		if l.Subject2Name != "" {
			t.Errorf("lesson %d: Subject2Name = %q, want empty", i, l.Subject2Name)
		}
	}
	if lessons[1].SubjectName != "Физика" || lessons[2].SubjectName != "Химия" {
		t.Errorf("primary subjects = (%q, %q), casing must survive",
			lessons[1].SubjectName, lessons[2].SubjectName)
	}
	// without a group split the comma stays in the room cell
	for i, l := range lessons[:2] {
		if l.RoomName != "210, 211" || l.Room2Name != "" {
			t.Errorf("lesson %d rooms = (%q, %q), want (\"210, 211\", \"\")", i, l.RoomName, l.Room2Name)
		}
	}
}

func TestParseTeachersFile(t *testing.T) {
	fileBytes := buildWorkbook(t, [][]any{
		{"День", "Урок", "Иванова А.П.", "каб", "Петров В.В.", "каб", "Сидорова Е.А.", "каб"},
		{"Понедельник", "1", "Математика", "201", "Информатика", "103", nil, nil},
		{nil, "2", "Математика", "201", nil, nil, nil, nil},
	})

	lessons, names, err := ParseTeachersFile(fileBytes)
	if err != nil {
		t.Fatalf("ParseTeachersFile: %v", err)
	}

	wantNames := []string{"Иванова А.П.", "Петров В.В.", "Сидорова Е.А."}
	if len(names) != len(wantNames) {
		t.Fatalf("got %d header names, want %d: %v", len(names), len(wantNames), names)
	}
	for i, n := range wantNames {
		if names[i] != n {
			t.Errorf("names[%d] = %q, want %q", i, names[i], n)
		}
	}

	want := []dto.TeacherLesson{
		{TeacherName: "Иванова А.П.", Weekday: 1, Period: 1, SubjectName: "Математика", RoomName: "201"},
		{TeacherName: "Петров В.В.", Weekday: 1, Period: 1, SubjectName: "Информатика", RoomName: "103"},
		{TeacherName: "Иванова А.П.", Weekday: 1, Period: 2, SubjectName: "Математика", RoomName: "201"},
	}
	if len(lessons) != len(want) {
		t.Fatalf("got %d lessons, want %d: %+v", len(lessons), len(want), lessons)
	}
	for i, w := range want {
		if lessons[i] != w {
			t.Errorf("lesson %d = %+v, want %+v", i, lessons[i], w)
		}
	}
}
