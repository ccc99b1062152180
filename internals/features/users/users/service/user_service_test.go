package service

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	database "shkola_backend/internals/databases"
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

func TestCreateUserWithTempPassword(t *testing.T) {
	db := newTestDB(t)

	user, err := CreateUserWithTempPassword(db, "Анна", "Иванова", []string{"teacher"}, "anna@example.com", "+79990000000")
	if err != nil {
		t.Fatalf("CreateUserWithTempPassword: %v", err)
	}
	if user.UserUsername != "анна_иванова" {
		t.Errorf("username = %q, want анна_иванова", user.UserUsername)
	}
	if !user.UserIsTeacher || user.UserIsAdmin || user.UserIsStudent {
		t.Errorf("roles wrong: %+v", user)
	}
	if !user.UserMustChangePassword || user.UserTempPassword == "" {
		t.Errorf("temp password not issued: %+v", user)
	}
	if err := bcrypt.CompareHashAndPassword(
		[]byte(user.UserPasswordHash), []byte(user.UserTempPassword)); err != nil {
		t.Errorf("temp password does not match the stored hash")
	}
}

func TestCreateUserNamesakeUsernames(t *testing.T) {
	db := newTestDB(t)

	first, err := CreateUserWithTempPassword(db, "Анна", "Иванова", nil, "", "")
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := CreateUserWithTempPassword(db, "Анна", "Иванова", nil, "", "")
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if first.UserUsername != "анна_иванова" || second.UserUsername != "анна_иванова_1" {
		t.Errorf("usernames = %q, %q; want анна_иванова, анна_иванова_1",
			first.UserUsername, second.UserUsername)
	}
}

func TestCreateStudentDropsOtherRoles(t *testing.T) {
	db := newTestDB(t)

	user, err := CreateUserWithTempPassword(db, "Пётр", "Смирнов", []string{"student", "admin", "teacher"}, "", "")
	if err != nil {
		t.Fatalf("CreateUserWithTempPassword: %v", err)
	}
	if !user.UserIsStudent || user.UserIsAdmin || user.UserIsTeacher || user.UserIsParent {
		t.Errorf("student must not carry other roles: %+v", user)
	}
}

func TestCreateUserRequiresNames(t *testing.T) {
	db := newTestDB(t)
	if _, err := CreateUserWithTempPassword(db, "", "Иванова", nil, "", ""); err == nil {
		t.Fatal("expected error for missing first name")
	}
	if _, err := CreateUserWithTempPassword(db, "Анна", " ", nil, "", ""); err == nil {
		t.Fatal("expected error for missing last name")
	}
}

func TestResetPassword(t *testing.T) {
	db := newTestDB(t)

	user, err := CreateUserWithTempPassword(db, "Анна", "Иванова", nil, "", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	oldHash := user.UserPasswordHash

	password, err := ResetPassword(db, user)
	if err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	if password == "" || user.UserPasswordHash == oldHash {
		t.Errorf("password not rotated")
	}
	if !user.UserMustChangePassword || user.UserTempPassword != password {
		t.Errorf("reset state wrong: %+v", user)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.UserPasswordHash), []byte(password)); err != nil {
		t.Errorf("new password does not match the stored hash")
	}
}
