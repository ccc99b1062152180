package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// One-off replacement of a scheduled lesson on a concrete date.
// Same conditional slot uniqueness as schedule_lessons, keyed on the date.
type SubstitutionModel struct {
	SubstitutionID uuid.UUID `gorm:"column:substitution_id;type:uuid;primaryKey" json:"substitution_id"`

	SubstitutionDate         time.Time `gorm:"column:substitution_date;type:date;not null;index" json:"substitution_date"`
	SubstitutionLessonNumber int       `gorm:"column:substitution_lesson_number;not null" json:"substitution_lesson_number"`

	SubstitutionClassID   uuid.UUID  `gorm:"column:substitution_class_id;type:uuid;not null;index" json:"substitution_class_id"`
	SubstitutionSubjectID uuid.UUID  `gorm:"column:substitution_subject_id;type:uuid;not null" json:"substitution_subject_id"`
	SubstitutionTeacherID *uuid.UUID `gorm:"column:substitution_teacher_id;type:uuid" json:"substitution_teacher_id,omitempty"`
	SubstitutionRoomID    *uuid.UUID `gorm:"column:substitution_room_id;type:uuid" json:"substitution_room_id,omitempty"`
	SubstitutionGroupID   *uuid.UUID `gorm:"column:substitution_group_id;type:uuid" json:"substitution_group_id,omitempty"`

	SubstitutionOriginalLessonID *uuid.UUID `gorm:"column:substitution_original_lesson_id;type:uuid" json:"substitution_original_lesson_id,omitempty"`

	SubstitutionCreatedAt time.Time `gorm:"column:substitution_created_at;not null;autoCreateTime" json:"substitution_created_at"`
}

func (SubstitutionModel) TableName() string { return "substitutions" }

func (m *SubstitutionModel) BeforeCreate(tx *gorm.DB) error {
	if m.SubstitutionID == uuid.Nil {
		m.SubstitutionID = uuid.New()
	}
	return nil
}
