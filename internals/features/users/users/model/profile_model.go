package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TeacherProfileModel struct {
	TeacherProfileID     uuid.UUID `gorm:"column:teacher_profile_id;type:uuid;primaryKey" json:"teacher_profile_id"`
	TeacherProfileUserID uuid.UUID `gorm:"column:teacher_profile_user_id;type:uuid;not null;uniqueIndex" json:"teacher_profile_user_id"`

	TeacherProfileCreatedAt time.Time `gorm:"column:teacher_profile_created_at;not null;autoCreateTime" json:"teacher_profile_created_at"`
}

func (TeacherProfileModel) TableName() string { return "teacher_profiles" }

func (m *TeacherProfileModel) BeforeCreate(tx *gorm.DB) error {
	if m.TeacherProfileID == uuid.Nil {
		m.TeacherProfileID = uuid.New()
	}
	return nil
}

type StudentProfileModel struct {
	StudentProfileID      uuid.UUID `gorm:"column:student_profile_id;type:uuid;primaryKey" json:"student_profile_id"`
	StudentProfileUserID  uuid.UUID `gorm:"column:student_profile_user_id;type:uuid;not null;uniqueIndex" json:"student_profile_user_id"`
	StudentProfileClassID uuid.UUID `gorm:"column:student_profile_class_id;type:uuid;not null;index" json:"student_profile_class_id"`

	StudentProfileCreatedAt time.Time `gorm:"column:student_profile_created_at;not null;autoCreateTime" json:"student_profile_created_at"`
}

func (StudentProfileModel) TableName() string { return "student_profiles" }

func (m *StudentProfileModel) BeforeCreate(tx *gorm.DB) error {
	if m.StudentProfileID == uuid.Nil {
		m.StudentProfileID = uuid.New()
	}
	return nil
}

type ParentProfileModel struct {
	ParentProfileID     uuid.UUID `gorm:"column:parent_profile_id;type:uuid;primaryKey" json:"parent_profile_id"`
	ParentProfileUserID uuid.UUID `gorm:"column:parent_profile_user_id;type:uuid;not null;uniqueIndex" json:"parent_profile_user_id"`

	ParentProfileCreatedAt time.Time `gorm:"column:parent_profile_created_at;not null;autoCreateTime" json:"parent_profile_created_at"`
}

func (ParentProfileModel) TableName() string { return "parent_profiles" }

func (m *ParentProfileModel) BeforeCreate(tx *gorm.DB) error {
	if m.ParentProfileID == uuid.Nil {
		m.ParentProfileID = uuid.New()
	}
	return nil
}

// parent ↔ student link
type ParentChildModel struct {
	ParentChildID        uuid.UUID `gorm:"column:parent_child_id;type:uuid;primaryKey" json:"parent_child_id"`
	ParentChildParentID  uuid.UUID `gorm:"column:parent_child_parent_id;type:uuid;not null;uniqueIndex:uq_parent_children_pair" json:"parent_child_parent_id"`
	ParentChildStudentID uuid.UUID `gorm:"column:parent_child_student_id;type:uuid;not null;uniqueIndex:uq_parent_children_pair" json:"parent_child_student_id"`
}

func (ParentChildModel) TableName() string { return "parent_children" }

func (m *ParentChildModel) BeforeCreate(tx *gorm.DB) error {
	if m.ParentChildID == uuid.Nil {
		m.ParentChildID = uuid.New()
	}
	return nil
}
