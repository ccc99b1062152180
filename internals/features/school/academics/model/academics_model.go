package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================================================
   Directory: grade levels, classes, subjects, rooms, groups
   ========================================================= */

type GradeLevelModel struct {
	GradeLevelID     uuid.UUID `gorm:"column:grade_level_id;type:uuid;primaryKey" json:"grade_level_id"`
	GradeLevelNumber int       `gorm:"column:grade_level_number;not null;uniqueIndex" json:"grade_level_number"`

	GradeLevelCreatedAt time.Time `gorm:"column:grade_level_created_at;not null;autoCreateTime" json:"grade_level_created_at"`
}

func (GradeLevelModel) TableName() string { return "grade_levels" }

func (m *GradeLevelModel) BeforeCreate(tx *gorm.DB) error {
	if m.GradeLevelID == uuid.Nil {
		m.GradeLevelID = uuid.New()
	}
	return nil
}

type SchoolClassModel struct {
	SchoolClassID           uuid.UUID `gorm:"column:school_class_id;type:uuid;primaryKey" json:"school_class_id"`
	SchoolClassGradeLevelID uuid.UUID `gorm:"column:school_class_grade_level_id;type:uuid;not null;uniqueIndex:uq_school_classes_grade_letter" json:"school_class_grade_level_id"`
	// stored upper-cased ("А", "Б")
	SchoolClassLetter string `gorm:"column:school_class_letter;type:varchar(5);not null;uniqueIndex:uq_school_classes_grade_letter" json:"school_class_letter"`

	SchoolClassCreatedAt time.Time `gorm:"column:school_class_created_at;not null;autoCreateTime" json:"school_class_created_at"`
}

func (SchoolClassModel) TableName() string { return "school_classes" }

func (m *SchoolClassModel) BeforeCreate(tx *gorm.DB) error {
	if m.SchoolClassID == uuid.Nil {
		m.SchoolClassID = uuid.New()
	}
	return nil
}

type SubjectModel struct {
	SubjectID   uuid.UUID `gorm:"column:subject_id;type:uuid;primaryKey" json:"subject_id"`
	SubjectName string    `gorm:"column:subject_name;type:varchar(200);not null;uniqueIndex" json:"subject_name"`

	SubjectCreatedAt time.Time `gorm:"column:subject_created_at;not null;autoCreateTime" json:"subject_created_at"`
}

func (SubjectModel) TableName() string { return "subjects" }

func (m *SubjectModel) BeforeCreate(tx *gorm.DB) error {
	if m.SubjectID == uuid.Nil {
		m.SubjectID = uuid.New()
	}
	return nil
}

type GradeLevelSubjectModel struct {
	GradeLevelSubjectID           uuid.UUID `gorm:"column:grade_level_subject_id;type:uuid;primaryKey" json:"grade_level_subject_id"`
	GradeLevelSubjectGradeLevelID uuid.UUID `gorm:"column:grade_level_subject_grade_level_id;type:uuid;not null;uniqueIndex:uq_grade_level_subjects_pair" json:"grade_level_subject_grade_level_id"`
	GradeLevelSubjectSubjectID    uuid.UUID `gorm:"column:grade_level_subject_subject_id;type:uuid;not null;uniqueIndex:uq_grade_level_subjects_pair" json:"grade_level_subject_subject_id"`
}

func (GradeLevelSubjectModel) TableName() string { return "grade_level_subjects" }

func (m *GradeLevelSubjectModel) BeforeCreate(tx *gorm.DB) error {
	if m.GradeLevelSubjectID == uuid.Nil {
		m.GradeLevelSubjectID = uuid.New()
	}
	return nil
}

type ClassGroupModel struct {
	ClassGroupID      uuid.UUID `gorm:"column:class_group_id;type:uuid;primaryKey" json:"class_group_id"`
	ClassGroupClassID uuid.UUID `gorm:"column:class_group_class_id;type:uuid;not null;uniqueIndex:uq_class_groups_class_name" json:"class_group_class_id"`
	ClassGroupName    string    `gorm:"column:class_group_name;type:varchar(100);not null;uniqueIndex:uq_class_groups_class_name" json:"class_group_name"`

	ClassGroupCreatedAt time.Time `gorm:"column:class_group_created_at;not null;autoCreateTime" json:"class_group_created_at"`
}

func (ClassGroupModel) TableName() string { return "class_groups" }

func (m *ClassGroupModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassGroupID == uuid.Nil {
		m.ClassGroupID = uuid.New()
	}
	return nil
}

// membership of students in a class group
type ClassGroupStudentModel struct {
	ClassGroupStudentID      uuid.UUID `gorm:"column:class_group_student_id;type:uuid;primaryKey" json:"class_group_student_id"`
	ClassGroupStudentGroupID uuid.UUID `gorm:"column:class_group_student_group_id;type:uuid;not null;uniqueIndex:uq_class_group_students_pair" json:"class_group_student_group_id"`
	ClassGroupStudentUserID  uuid.UUID `gorm:"column:class_group_student_user_id;type:uuid;not null;uniqueIndex:uq_class_group_students_pair" json:"class_group_student_user_id"`
}

func (ClassGroupStudentModel) TableName() string { return "class_group_students" }

func (m *ClassGroupStudentModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassGroupStudentID == uuid.Nil {
		m.ClassGroupStudentID = uuid.New()
	}
	return nil
}

type RoomModel struct {
	RoomID   uuid.UUID `gorm:"column:room_id;type:uuid;primaryKey" json:"room_id"`
	RoomName string    `gorm:"column:room_name;type:varchar(50);not null;uniqueIndex" json:"room_name"`

	RoomCreatedAt time.Time `gorm:"column:room_created_at;not null;autoCreateTime" json:"room_created_at"`
}

func (RoomModel) TableName() string { return "rooms" }

func (m *RoomModel) BeforeCreate(tx *gorm.DB) error {
	if m.RoomID == uuid.Nil {
		m.RoomID = uuid.New()
	}
	return nil
}

// subject offered by a concrete class (free-form name, may differ from the
// directory subject list); optionally pinned to a teacher and a group
type ClassSubjectModel struct {
	ClassSubjectID        uuid.UUID  `gorm:"column:class_subject_id;type:uuid;primaryKey" json:"class_subject_id"`
	ClassSubjectClassID   uuid.UUID  `gorm:"column:class_subject_class_id;type:uuid;not null;uniqueIndex:uq_class_subjects_class_name" json:"class_subject_class_id"`
	ClassSubjectName      string     `gorm:"column:class_subject_name;type:varchar(200);not null;uniqueIndex:uq_class_subjects_class_name" json:"class_subject_name"`
	ClassSubjectTeacherID *uuid.UUID `gorm:"column:class_subject_teacher_id;type:uuid" json:"class_subject_teacher_id,omitempty"`
	ClassSubjectGroupID   *uuid.UUID `gorm:"column:class_subject_group_id;type:uuid" json:"class_subject_group_id,omitempty"`

	ClassSubjectCreatedAt time.Time `gorm:"column:class_subject_created_at;not null;autoCreateTime" json:"class_subject_created_at"`
}

func (ClassSubjectModel) TableName() string { return "class_subjects" }

func (m *ClassSubjectModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassSubjectID == uuid.Nil {
		m.ClassSubjectID = uuid.New()
	}
	return nil
}
