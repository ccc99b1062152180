// internals/features/school/schedule/controller/names.go
package controller

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	academicsModel "shkola_backend/internals/features/school/academics/model"
	userModel "shkola_backend/internals/features/users/users/model"
)

// directoryNames resolves display names for the ids referenced by a set
// of schedule rows, one query per directory table.
type directoryNames struct {
	Classes  map[uuid.UUID]string
	Subjects map[uuid.UUID]string
	Teachers map[uuid.UUID]string
	Rooms    map[uuid.UUID]string
	Groups   map[uuid.UUID]string
}

type nameRefs struct {
	ClassIDs   []uuid.UUID
	SubjectIDs []uuid.UUID
	TeacherIDs []uuid.UUID
	RoomIDs    []uuid.UUID
	GroupIDs   []uuid.UUID
}

func loadDirectoryNames(db *gorm.DB, refs nameRefs) (*directoryNames, error) {
	out := &directoryNames{
		Classes:  map[uuid.UUID]string{},
		Subjects: map[uuid.UUID]string{},
		Teachers: map[uuid.UUID]string{},
		Rooms:    map[uuid.UUID]string{},
		Groups:   map[uuid.UUID]string{},
	}

	if ids := dedupe(refs.ClassIDs); len(ids) > 0 {
		var classes []academicsModel.SchoolClassModel
		if err := db.Where("school_class_id IN ?", ids).Find(&classes).Error; err != nil {
			return nil, err
		}
		gradeIDs := make([]uuid.UUID, 0, len(classes))
		for _, sc := range classes {
			gradeIDs = append(gradeIDs, sc.SchoolClassGradeLevelID)
		}
		var grades []academicsModel.GradeLevelModel
		if err := db.Where("grade_level_id IN ?", dedupe(gradeIDs)).Find(&grades).Error; err != nil {
			return nil, err
		}
		numbers := map[uuid.UUID]int{}
		for _, g := range grades {
			numbers[g.GradeLevelID] = g.GradeLevelNumber
		}
		for _, sc := range classes {
			out.Classes[sc.SchoolClassID] = fmt.Sprintf("%d%s",
				numbers[sc.SchoolClassGradeLevelID], sc.SchoolClassLetter)
		}
	}

	if ids := dedupe(refs.SubjectIDs); len(ids) > 0 {
		var subjects []academicsModel.SubjectModel
		if err := db.Where("subject_id IN ?", ids).Find(&subjects).Error; err != nil {
			return nil, err
		}
		for _, s := range subjects {
			out.Subjects[s.SubjectID] = s.SubjectName
		}
	}

	if ids := dedupe(refs.TeacherIDs); len(ids) > 0 {
		var teachers []userModel.UserModel
		if err := db.Where("user_id IN ?", ids).Find(&teachers).Error; err != nil {
			return nil, err
		}
		for _, t := range teachers {
			out.Teachers[t.UserID] = t.FullName()
		}
	}

	if ids := dedupe(refs.RoomIDs); len(ids) > 0 {
		var rooms []academicsModel.RoomModel
		if err := db.Where("room_id IN ?", ids).Find(&rooms).Error; err != nil {
			return nil, err
		}
		for _, r := range rooms {
			out.Rooms[r.RoomID] = r.RoomName
		}
	}

	if ids := dedupe(refs.GroupIDs); len(ids) > 0 {
		var groups []academicsModel.ClassGroupModel
		if err := db.Where("class_group_id IN ?", ids).Find(&groups).Error; err != nil {
			return nil, err
		}
		for _, g := range groups {
			out.Groups[g.ClassGroupID] = g.ClassGroupName
		}
	}

	return out, nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := map[uuid.UUID]bool{}
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id != uuid.Nil && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
