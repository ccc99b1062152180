// file: internals/features/users/users/service/user_service.go
package service

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	helper "shkola_backend/internals/helpers"

	userModel "shkola_backend/internals/features/users/users/model"
)

// CreateUserWithTempPassword creates a user with a generated password
// that must be changed on first login. The generated password stays
// readable in user_temp_password so an admin can hand it out.
func CreateUserWithTempPassword(db *gorm.DB, firstName, lastName string, roles []string, email, phone string) (*userModel.UserModel, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return nil, fmt.Errorf("имя и фамилия обязательны")
	}

	password := helper.GenerateTempPassword(12)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &userModel.UserModel{
		UserFirstName:          firstName,
		UserLastName:           lastName,
		UserEmail:              strings.TrimSpace(email),
		UserPhone:              strings.TrimSpace(phone),
		UserPasswordHash:       string(hash),
		UserMustChangePassword: true,
		UserTempPassword:       password,
	}
	for _, role := range roles {
		switch role {
		case "admin":
			user.UserIsAdmin = true
		case "teacher":
			user.UserIsTeacher = true
		case "parent":
			user.UserIsParent = true
		case "student":
			user.UserIsStudent = true
		}
	}
	// a student never carries other roles
	if user.UserIsStudent {
		user.UserIsAdmin = false
		user.UserIsTeacher = false
		user.UserIsParent = false
	}

	username, err := nextFreeUsername(db, firstName, lastName)
	if err != nil {
		return nil, err
	}
	user.UserUsername = username

	if err := db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// ResetPassword issues a fresh temp password and forces a change on next login.
func ResetPassword(db *gorm.DB, user *userModel.UserModel) (string, error) {
	password := helper.GenerateTempPassword(12)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	user.UserPasswordHash = string(hash)
	user.UserTempPassword = password
	user.UserMustChangePassword = true
	if err := db.Save(user).Error; err != nil {
		return "", err
	}
	return password, nil
}

// nextFreeUsername: "имя_фамилия" lower-cased, with a numeric suffix when taken.
func nextFreeUsername(db *gorm.DB, firstName, lastName string) (string, error) {
	base := strings.ToLower(firstName + "_" + lastName)
	base = strings.ReplaceAll(base, " ", "_")
	candidate := base
	for counter := 1; ; counter++ {
		var n int64
		if err := db.Model(&userModel.UserModel{}).
			Where("user_username = ?", candidate).
			Count(&n).Error; err != nil {
			return "", err
		}
		if n == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s_%d", base, counter)
	}
}
