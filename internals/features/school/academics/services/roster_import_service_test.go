package services

import (
	"testing"

	"github.com/xuri/excelize/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	database "shkola_backend/internals/databases"
	academicsModel "shkola_backend/internals/features/school/academics/model"
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

func TestImportClassRosterCSV(t *testing.T) {
	db := newTestDB(t)

	csv := "\xEF\xBB\xBF" + // Excel writes a BOM
		"параллель;буква;фамилия_ученика;имя_ученика;email_ученика;телефон_ученика;" +
		"фамилия_родителя1;имя_родителя1;email_родителя1;телефон_родителя1;" +
		"фамилия_родителя2;имя_родителя2;email_родителя2;телефон_родителя2\n" +
		"5;а;Смирнов;Пётр;;;Смирнова;Ольга;olga@example.com;;Смирнов;Игорь;;\n" +
		"5;А;Козлова;Мария;;;;;;;;;;\n" +
		";;Безклассов;Иван;;;;;;;;;;\n"

	result, err := ImportClassRoster(db, "roster.csv", []byte(csv))
	if err != nil {
		t.Fatalf("ImportClassRoster: %v", err)
	}

	if len(result.Students) != 2 {
		t.Errorf("students = %d, want 2", len(result.Students))
	}
	if len(result.Parents) != 2 {
		t.Errorf("parents = %d, want 2", len(result.Parents))
	}
	if len(result.Errors) != 1 {
		t.Fatalf("errors = %v, want 1 (row without class)", result.Errors)
	}

	// both rows land in the same 5А class, letter upper-cased
	var classes []academicsModel.SchoolClassModel
	if err := db.Find(&classes).Error; err != nil {
		t.Fatalf("classes: %v", err)
	}
	if len(classes) != 1 || classes[0].SchoolClassLetter != "А" {
		t.Fatalf("classes = %+v, want one 5А", classes)
	}
	var studentProfiles int64
	db.Model(&userModel.StudentProfileModel{}).
		Where("student_profile_class_id = ?", classes[0].SchoolClassID).
		Count(&studentProfiles)
	if studentProfiles != 2 {
		t.Errorf("student profiles = %d, want 2", studentProfiles)
	}

	// parents are linked to their child and must change the temp password
	var links int64
	db.Model(&userModel.ParentChildModel{}).Count(&links)
	if links != 2 {
		t.Errorf("parent links = %d, want 2", links)
	}
	for _, p := range result.Parents {
		if !p.UserIsParent || !p.UserMustChangePassword || p.UserTempPassword == "" {
			t.Errorf("parent flags wrong: %+v", p)
		}
	}
}

func TestImportClassRosterXLSX(t *testing.T) {
	db := newTestDB(t)

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"параллель", "буква", "фамилия_ученика", "имя_ученика"},
		{"7", "б", "Новикова", "Елена"},
		{nil, nil, nil, nil}, // fully empty rows are ignored
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	f.Close()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	result, err := ImportClassRoster(db, "roster.xlsx", buf.Bytes())
	if err != nil {
		t.Fatalf("ImportClassRoster: %v", err)
	}
	if len(result.Students) != 1 || len(result.Parents) != 0 || len(result.Errors) != 0 {
		t.Fatalf("result = %+v, want one student", result)
	}
	if result.Students[0].UserLastName != "Новикова" || !result.Students[0].UserIsStudent {
		t.Errorf("student = %+v", result.Students[0])
	}
}

func TestImportClassRosterUnsupportedFormat(t *testing.T) {
	db := newTestDB(t)
	if _, err := ImportClassRoster(db, "roster.txt", []byte("whatever")); err == nil {
		t.Fatal("expected error for unsupported file format")
	}
}
