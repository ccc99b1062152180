// file: internals/features/school/schedule/dto/schedule_dto.go
package dto

import (
	"github.com/google/uuid"
)

/* ===== Requests ===== */

type CreateScheduleLessonRequest struct {
	ClassID   uuid.UUID  `json:"school_class" validate:"required"`
	Weekday   int        `json:"weekday" validate:"required,min=1,max=5"`
	Number    int        `json:"lesson_number" validate:"required,min=1,max=10"`
	SubjectID uuid.UUID  `json:"subject" validate:"required"`
	TeacherID *uuid.UUID `json:"teacher"`
	RoomID    *uuid.UUID `json:"room"`
	GroupID   *uuid.UUID `json:"group"`
}

type SubstitutionRequest struct {
	Date             string     `json:"date" validate:"required,datetime=2006-01-02"`
	LessonNumber     int        `json:"lesson_number" validate:"required,min=1,max=10"`
	ClassID          uuid.UUID  `json:"school_class" validate:"required"`
	SubjectID        uuid.UUID  `json:"subject" validate:"required"`
	TeacherID        *uuid.UUID `json:"teacher"`
	RoomID           *uuid.UUID `json:"room"`
	GroupID          *uuid.UUID `json:"group"`
	OriginalLessonID *uuid.UUID `json:"original_lesson"`
}

/* ===== Responses ===== */

// ScheduleLessonResponse carries the resolved directory names so the
// timetable can be rendered without extra lookups.
type ScheduleLessonResponse struct {
	ScheduleLessonID uuid.UUID  `json:"schedule_lesson_id"`
	ClassID          uuid.UUID  `json:"class_id"`
	ClassName        string     `json:"class_name"`
	Weekday          int        `json:"weekday"`
	Number           int        `json:"lesson_number"`
	SubjectID        uuid.UUID  `json:"subject_id"`
	SubjectName      string     `json:"subject_name"`
	TeacherID        *uuid.UUID `json:"teacher_id,omitempty"`
	TeacherName      string     `json:"teacher_name,omitempty"`
	RoomID           *uuid.UUID `json:"room_id,omitempty"`
	RoomName         string     `json:"room_name,omitempty"`
	GroupID          *uuid.UUID `json:"group_id,omitempty"`
	GroupName        string     `json:"group_name,omitempty"`
}

type SubstitutionResponse struct {
	SubstitutionID   uuid.UUID  `json:"substitution_id"`
	Date             string     `json:"date"`
	LessonNumber     int        `json:"lesson_number"`
	ClassID          uuid.UUID  `json:"class_id"`
	ClassName        string     `json:"class_name"`
	SubjectID        uuid.UUID  `json:"subject_id"`
	SubjectName      string     `json:"subject_name"`
	TeacherID        *uuid.UUID `json:"teacher_id,omitempty"`
	TeacherName      string     `json:"teacher_name,omitempty"`
	RoomID           *uuid.UUID `json:"room_id,omitempty"`
	RoomName         string     `json:"room_name,omitempty"`
	GroupID          *uuid.UUID `json:"group_id,omitempty"`
	GroupName        string     `json:"group_name,omitempty"`
	OriginalLessonID *uuid.UUID `json:"original_lesson_id,omitempty"`
}
