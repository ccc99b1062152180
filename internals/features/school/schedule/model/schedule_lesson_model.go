package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Weekdays are 1..5 (Monday..Friday), matching the timetable spreadsheets.
const (
	WeekdayMonday = 1
	WeekdayFriday = 5
	WeekdayMin    = WeekdayMonday
	WeekdayMax    = WeekdayFriday
)

// NOTE:
// - teacher/room/group are nullable: an imported lesson may legitimately
//   have no matched teacher and no resolvable room
// - slot uniqueness is a pair of partial indexes created in Migrate():
//   (class, weekday, number) WHERE group IS NULL
//   (class, weekday, number, group) WHERE group IS NOT NULL
type ScheduleLessonModel struct {
	ScheduleLessonID      uuid.UUID `gorm:"column:schedule_lesson_id;type:uuid;primaryKey" json:"schedule_lesson_id"`
	ScheduleLessonClassID uuid.UUID `gorm:"column:schedule_lesson_class_id;type:uuid;not null;index" json:"schedule_lesson_class_id"`

	ScheduleLessonWeekday int `gorm:"column:schedule_lesson_weekday;not null" json:"schedule_lesson_weekday"`
	ScheduleLessonNumber  int `gorm:"column:schedule_lesson_number;not null" json:"schedule_lesson_number"`

	ScheduleLessonSubjectID uuid.UUID  `gorm:"column:schedule_lesson_subject_id;type:uuid;not null" json:"schedule_lesson_subject_id"`
	ScheduleLessonTeacherID *uuid.UUID `gorm:"column:schedule_lesson_teacher_id;type:uuid" json:"schedule_lesson_teacher_id,omitempty"`
	ScheduleLessonRoomID    *uuid.UUID `gorm:"column:schedule_lesson_room_id;type:uuid" json:"schedule_lesson_room_id,omitempty"`
	ScheduleLessonGroupID   *uuid.UUID `gorm:"column:schedule_lesson_group_id;type:uuid" json:"schedule_lesson_group_id,omitempty"`

	ScheduleLessonCreatedAt time.Time `gorm:"column:schedule_lesson_created_at;not null;autoCreateTime" json:"schedule_lesson_created_at"`
}

func (ScheduleLessonModel) TableName() string { return "schedule_lessons" }

func (m *ScheduleLessonModel) BeforeCreate(tx *gorm.DB) error {
	if m.ScheduleLessonID == uuid.Nil {
		m.ScheduleLessonID = uuid.New()
	}
	return nil
}
