// file: internals/features/school/academics/dto/academics_dto.go
package dto

import (
	"fmt"

	"github.com/google/uuid"

	academicsModel "shkola_backend/internals/features/school/academics/model"
)

/* ===== Requests ===== */

type CreateGradeLevelRequest struct {
	Number int `json:"number" validate:"required,min=1,max=11"`
}

type CreateSchoolClassRequest struct {
	GradeLevelID uuid.UUID `json:"grade_level" validate:"required"`
	Letter       string    `json:"letter" validate:"required,max=5"`
}

type CreateSubjectRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

type CreateGradeSubjectRequest struct {
	GradeLevelID uuid.UUID `json:"grade_level" validate:"required"`
	SubjectID    uuid.UUID `json:"subject" validate:"required"`
}

type CreateRoomRequest struct {
	Name string `json:"name" validate:"required,max=50"`
}

type ClassGroupRequest struct {
	Name     string      `json:"name"`
	Students []uuid.UUID `json:"students"`
}

// ClassSubjectEntry is one element of the batch create payload.
type ClassSubjectEntry struct {
	Name      string     `json:"name"`
	TeacherID *uuid.UUID `json:"teacher"`
	GroupID   *uuid.UUID `json:"group"`
}

type UpdateClassSubjectRequest struct {
	Name      *string    `json:"name"`
	TeacherID *uuid.UUID `json:"teacher"`
	GroupID   *uuid.UUID `json:"group"`
}

/* ===== Responses ===== */

type SchoolClassResponse struct {
	SchoolClassID   uuid.UUID `json:"school_class_id"`
	GradeLevelID    uuid.UUID `json:"grade_level_id"`
	GradeNumber     int       `json:"grade_number"`
	Letter          string    `json:"letter"`
	SchoolClassName string    `json:"name"`
}

func FromSchoolClassModel(m academicsModel.SchoolClassModel, gradeNumber int) SchoolClassResponse {
	return SchoolClassResponse{
		SchoolClassID:   m.SchoolClassID,
		GradeLevelID:    m.SchoolClassGradeLevelID,
		GradeNumber:     gradeNumber,
		Letter:          m.SchoolClassLetter,
		SchoolClassName: fmt.Sprintf("%d%s", gradeNumber, m.SchoolClassLetter),
	}
}

type ClassGroupResponse struct {
	ClassGroupID uuid.UUID   `json:"class_group_id"`
	ClassID      uuid.UUID   `json:"class_id"`
	Name         string      `json:"name"`
	Students     []uuid.UUID `json:"students"`
}

type ClassSubjectResponse struct {
	ClassSubjectID uuid.UUID  `json:"class_subject_id"`
	ClassID        uuid.UUID  `json:"class_id"`
	Name           string     `json:"name"`
	TeacherID      *uuid.UUID `json:"teacher_id,omitempty"`
	TeacherName    string     `json:"teacher_name,omitempty"`
	GroupID        *uuid.UUID `json:"group_id,omitempty"`
	GroupName      string     `json:"group_name,omitempty"`
}

type RosterImportResponse struct {
	StudentsCount int      `json:"students_count"`
	ParentsCount  int      `json:"parents_count"`
	Errors        []string `json:"errors"`
}
