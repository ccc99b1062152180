package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NOTE:
// - role flags mirror the directory roles (admin/teacher/parent/student)
// - a student never carries other roles; enforced in service, not in SQL
// - user_temp_password keeps the generated password until the first login change
type UserModel struct {
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`

	UserUsername  string `gorm:"column:user_username;type:varchar(150);not null;uniqueIndex" json:"user_username"`
	UserFirstName string `gorm:"column:user_first_name;type:varchar(150);not null" json:"user_first_name"`
	UserLastName  string `gorm:"column:user_last_name;type:varchar(150);not null" json:"user_last_name"`
	UserEmail     string `gorm:"column:user_email;type:varchar(254);not null;default:''" json:"user_email"`
	UserPhone     string `gorm:"column:user_phone;type:varchar(20);not null;default:''" json:"user_phone"`

	UserPasswordHash string `gorm:"column:user_password_hash;type:varchar(128);not null" json:"-"`

	UserIsAdmin   bool `gorm:"column:user_is_admin;not null;default:false" json:"user_is_admin"`
	UserIsTeacher bool `gorm:"column:user_is_teacher;not null;default:false;index" json:"user_is_teacher"`
	UserIsParent  bool `gorm:"column:user_is_parent;not null;default:false" json:"user_is_parent"`
	UserIsStudent bool `gorm:"column:user_is_student;not null;default:false" json:"user_is_student"`

	UserBirthDate *time.Time `gorm:"column:user_birth_date;type:date" json:"user_birth_date,omitempty"`

	UserMustChangePassword bool   `gorm:"column:user_must_change_password;not null;default:true" json:"user_must_change_password"`
	UserTempPassword       string `gorm:"column:user_temp_password;type:varchar(50);not null;default:''" json:"-"`

	UserCreatedAt time.Time `gorm:"column:user_created_at;not null;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt time.Time `gorm:"column:user_updated_at;not null;autoUpdateTime" json:"user_updated_at"`
}

func (UserModel) TableName() string { return "users" }

func (m *UserModel) BeforeCreate(tx *gorm.DB) error {
	if m.UserID == uuid.Nil {
		m.UserID = uuid.New()
	}
	return nil
}

// FullName — "Фамилия Имя", the display order used everywhere in the UI.
func (m *UserModel) FullName() string {
	return m.UserLastName + " " + m.UserFirstName
}

func (m *UserModel) Roles() []string {
	roles := make([]string, 0, 4)
	if m.UserIsAdmin {
		roles = append(roles, "admin")
	}
	if m.UserIsTeacher {
		roles = append(roles, "teacher")
	}
	if m.UserIsParent {
		roles = append(roles, "parent")
	}
	if m.UserIsStudent {
		roles = append(roles, "student")
	}
	return roles
}
