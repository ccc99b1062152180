// file: internals/features/school/schedule_import/dto/import_dto.go
package dto

import (
	"github.com/google/uuid"
)

/* =========================================================
   Parsed lessons

   These round-trip through the client: the preview response
   carries them out, the confirm request carries them back.
   Empty string means "no value" throughout.
   ========================================================= */

type ClassLesson struct {
	ClassName    string `json:"class_name"`
	Weekday      int    `json:"weekday"`
	Period       int    `json:"period"`
	SubjectName  string `json:"subject_name"`
	Subject2Name string `json:"subject2_name,omitempty"`
	RoomName     string `json:"room_name,omitempty"`
	Room2Name    string `json:"room2_name,omitempty"` // only set for group lessons
	TeacherName  string `json:"teacher_name,omitempty"`
	Teacher2Name string `json:"teacher2_name,omitempty"` // filled by the matcher
}

type TeacherLesson struct {
	TeacherName string `json:"teacher_name"`
	Weekday     int    `json:"weekday"`
	Period      int    `json:"period"`
	SubjectName string `json:"subject_name"`
	RoomName    string `json:"room_name,omitempty"`
}

/* =========================================================
   Mapping decisions (confirm step)
   ========================================================= */

// ClassDecision: link the Excel class to an existing one or create it
// from its parsed name.
type ClassDecision struct {
	Action string     `json:"action" validate:"required,oneof=create link"`
	ID     *uuid.UUID `json:"id,omitempty"`
}

// RoomDecision: create (optionally renamed) or link.
type RoomDecision struct {
	Action string     `json:"action" validate:"required,oneof=create link"`
	Name   string     `json:"name,omitempty"`
	ID     *uuid.UUID `json:"id,omitempty"`
}

// TeacherDecision: create an account, link to an existing user, or
// import the lessons without a teacher.
type TeacherDecision struct {
	Action    string     `json:"action" validate:"required,oneof=create link skip"`
	ID        *uuid.UUID `json:"id,omitempty"`
	FirstName string     `json:"first_name,omitempty"`
	LastName  string     `json:"last_name,omitempty"`
}

/* =========================================================
   Preview / confirm payloads
   ========================================================= */

type DirectoryOption struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type MissingTeacher struct {
	Name    string            `json:"name"`
	Similar []DirectoryOption `json:"similar"`
}

type PreviewStats struct {
	TotalLessons int `json:"total_lessons"`
	WithTeacher  int `json:"with_teacher"`
}

type PreviewResponse struct {
	ParsedLessons []ClassLesson `json:"parsed_lessons"`

	MissingClasses  []string         `json:"missing_classes"`
	MissingTeachers []MissingTeacher `json:"missing_teachers"`
	MissingRooms    []string         `json:"missing_rooms"`

	DBClasses  []DirectoryOption `json:"db_classes"`
	DBTeachers []DirectoryOption `json:"db_teachers"`
	DBRooms    []DirectoryOption `json:"db_rooms"`

	Stats PreviewStats `json:"stats"`
}

type ConfirmRequest struct {
	ParsedLessons   []ClassLesson              `json:"parsed_lessons" validate:"required"`
	ClassMappings   map[string]ClassDecision   `json:"class_mappings"`
	TeacherMappings map[string]TeacherDecision `json:"teacher_mappings"`
	RoomMappings    map[string]RoomDecision    `json:"room_mappings"`
	ReplaceExisting bool                       `json:"replace_existing"`
}

type ImportResult struct {
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}
