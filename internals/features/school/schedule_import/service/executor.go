// file: internals/features/school/schedule_import/service/executor.go
package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	academicsModel "shkola_backend/internals/features/school/academics/model"
	scheduleModel "shkola_backend/internals/features/school/schedule/model"
	dto "shkola_backend/internals/features/school/schedule_import/dto"
	userModel "shkola_backend/internals/features/users/users/model"
	userService "shkola_backend/internals/features/users/users/service"
	helper "shkola_backend/internals/helpers"
)

const maxReportedErrors = 20

// ExecuteImport applies the confirmed mapping decisions and creates the
// schedule rows. Each lesson is inserted independently so one bad row
// (say, a slot collision) does not abort the rest of the run.
func ExecuteImport(
	db *gorm.DB,
	lessons []dto.ClassLesson,
	classMappings map[string]dto.ClassDecision,
	teacherMappings map[string]dto.TeacherDecision,
	roomMappings map[string]dto.RoomDecision,
	replaceExisting bool,
) (*dto.ImportResult, error) {
	if replaceExisting {
		if err := db.Exec(`DELETE FROM schedule_lessons`).Error; err != nil {
			return nil, err
		}
	}

	ctx, err := newImportContext(db)
	if err != nil {
		return nil, err
	}
	if err := ctx.applyClassMappings(classMappings); err != nil {
		return nil, err
	}
	if err := ctx.applyRoomMappings(roomMappings); err != nil {
		return nil, err
	}
	if err := ctx.applyTeacherMappings(teacherMappings); err != nil {
		return nil, err
	}

	for _, lesson := range lessons {
		ctx.importLesson(lesson)
	}

	reported := ctx.errors
	if len(reported) > maxReportedErrors {
		reported = reported[:maxReportedErrors]
	}
	return &dto.ImportResult{
		Created: ctx.created,
		Skipped: ctx.skipped,
		Errors:  reported,
	}, nil
}

func (ctx *importContext) applyClassMappings(mappings map[string]dto.ClassDecision) error {
	for excelName, decision := range mappings {
		switch decision.Action {
		case "link":
			if decision.ID != nil {
				ctx.classIDs[strings.ToLower(excelName)] = *decision.ID
			}
		case "create":
			number, letter, err := ParseClassName(excelName)
			if err != nil {
				// not a parseable class name, leave it to the fallback
				continue
			}
			classID, err := getOrCreateClass(ctx.db, number, letter)
			if err != nil {
				return err
			}
			ctx.classIDs[strings.ToLower(excelName)] = classID
		}
	}
	return nil
}

func (ctx *importContext) applyRoomMappings(mappings map[string]dto.RoomDecision) error {
	for excelName, decision := range mappings {
		norm := normalize(excelName)
		switch decision.Action {
		case "link":
			if decision.ID != nil {
				ctx.roomIDs[norm] = *decision.ID
			}
		case "create":
			name := strings.TrimSpace(decision.Name)
			if name == "" {
				name = strings.TrimSpace(excelName)
			}
			var room academicsModel.RoomModel
			err := ctx.db.Where("room_name = ?", name).First(&room).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				room = academicsModel.RoomModel{RoomName: name}
				err = ctx.db.Create(&room).Error
			}
			if err != nil {
				return err
			}
			ctx.roomIDs[norm] = room.RoomID
		}
	}
	return nil
}

func (ctx *importContext) applyTeacherMappings(mappings map[string]dto.TeacherDecision) error {
	for excelName, decision := range mappings {
		switch decision.Action {
		case "link":
			ctx.teachers[excelName] = decision.ID
		case "create":
			id, err := ctx.createTeacher(excelName, decision)
			if err != nil {
				return err
			}
			ctx.teachers[excelName] = &id
		default: // skip
			ctx.teachers[excelName] = nil
		}
	}
	return nil
}

// createTeacher makes a teacher account from the decision, falling back
// to the Excel header name ("Фамилия И.О.") when no names were typed in.
// "Н/А" fills whichever name is still unknown.
func (ctx *importContext) createTeacher(excelName string, decision dto.TeacherDecision) (uuid.UUID, error) {
	firstName := strings.TrimSpace(decision.FirstName)
	lastName := strings.TrimSpace(decision.LastName)
	switch {
	case firstName == "" && lastName == "":
		parts := strings.Fields(excelName)
		if len(parts) > 0 {
			lastName = parts[0]
		} else {
			lastName = excelName
		}
		if len(parts) > 1 {
			firstName = parts[1]
		} else {
			firstName = "Н/А"
		}
	case firstName == "":
		firstName = "Н/А"
	case lastName == "":
		lastName = firstName
		firstName = "Н/А"
	}

	user, err := userService.CreateUserWithTempPassword(ctx.db, firstName, lastName, []string{"teacher"}, "", "")
	if err != nil {
		return uuid.Nil, err
	}

	profile := userModel.TeacherProfileModel{TeacherProfileUserID: user.UserID}
	if err := ctx.db.Create(&profile).Error; err != nil && !helper.IsUniqueViolation(err) {
		return uuid.Nil, err
	}

	// surname fallback should see the new account too
	key := strings.ToLower(user.UserLastName)
	if _, ok := ctx.dbTeachers[key]; !ok {
		ctx.dbTeachers[key] = user.UserID
	}
	return user.UserID, nil
}

func (ctx *importContext) importLesson(lesson dto.ClassLesson) {
	classID, ok := ctx.resolveClass(lesson.ClassName)
	if !ok {
		ctx.skipped++
		return
	}

	subjectName := strings.TrimSpace(lesson.SubjectName)
	if subjectName == "" {
		ctx.skipped++
		return
	}
	subjectID, err := ctx.getOrCreateSubject(subjectName)
	if err != nil {
		ctx.errors = append(ctx.errors, fmt.Sprintf("%s %d/%d %s: %v",
			lesson.ClassName, lesson.Weekday, lesson.Period, subjectName, err))
		return
	}

	roomID := ctx.resolveRoom(lesson.RoomName)
	teacherID := ctx.resolveTeacher(lesson.TeacherName)

	// a differing second subject splits the class into its group pair
	var group1ID, group2ID *uuid.UUID
	if lesson.Subject2Name != "" {
		pair, err := ctx.getClassGroups(classID)
		if err != nil {
			ctx.errors = append(ctx.errors, fmt.Sprintf("%s %d/%d: %v",
				lesson.ClassName, lesson.Weekday, lesson.Period, err))
			return
		}
		group1ID, group2ID = &pair[0], &pair[1]
	}

	row := scheduleModel.ScheduleLessonModel{
		ScheduleLessonClassID:   classID,
		ScheduleLessonWeekday:   lesson.Weekday,
		ScheduleLessonNumber:    lesson.Period,
		ScheduleLessonSubjectID: subjectID,
		ScheduleLessonTeacherID: teacherID,
		ScheduleLessonRoomID:    roomID,
		ScheduleLessonGroupID:   group1ID,
	}
	if err := ctx.db.Create(&row).Error; err != nil {
		ctx.errors = append(ctx.errors, fmt.Sprintf("%s %d/%d %s: %v",
			lesson.ClassName, lesson.Weekday, lesson.Period, subjectName, err))
		return
	}
	ctx.created++
	ctx.ensureClassSubject(classID, subjectName)

	if lesson.Subject2Name != "" && group2ID != nil {
		subject2ID, err := ctx.getOrCreateSubject(lesson.Subject2Name)
		if err != nil {
			ctx.errors = append(ctx.errors, fmt.Sprintf("%s group2 %d/%d: %v",
				lesson.ClassName, lesson.Weekday, lesson.Period, err))
			return
		}
		row2 := scheduleModel.ScheduleLessonModel{
			ScheduleLessonClassID:   classID,
			ScheduleLessonWeekday:   lesson.Weekday,
			ScheduleLessonNumber:    lesson.Period,
			ScheduleLessonSubjectID: subject2ID,
			ScheduleLessonTeacherID: ctx.resolveTeacher(lesson.Teacher2Name),
			ScheduleLessonRoomID:    ctx.resolveRoom(lesson.Room2Name),
			ScheduleLessonGroupID:   group2ID,
		}
		if err := ctx.db.Create(&row2).Error; err != nil {
			ctx.errors = append(ctx.errors, fmt.Sprintf("%s group2 %d/%d: %v",
				lesson.ClassName, lesson.Weekday, lesson.Period, err))
			return
		}
		ctx.created++
		ctx.ensureClassSubject(classID, lesson.Subject2Name)
	}
}

// resolveClass uses the mapping decisions first, then searches the DB
// directly for classes that were never reported missing.
func (ctx *importContext) resolveClass(excelName string) (uuid.UUID, bool) {
	if id, ok := ctx.classIDs[strings.ToLower(excelName)]; ok {
		return id, true
	}

	number, letter, err := ParseClassName(excelName)
	if err != nil {
		return uuid.Nil, false
	}
	var sc academicsModel.SchoolClassModel
	err = ctx.db.Where(
		`school_class_grade_level_id IN (SELECT grade_level_id FROM grade_levels WHERE grade_level_number = ?)
		 AND lower(school_class_letter) = lower(?)`,
		number, letter,
	).First(&sc).Error
	if err != nil {
		return uuid.Nil, false
	}
	ctx.classIDs[strings.ToLower(excelName)] = sc.SchoolClassID
	return sc.SchoolClassID, true
}

func getOrCreateClass(db *gorm.DB, number int, letter string) (uuid.UUID, error) {
	var grade academicsModel.GradeLevelModel
	err := db.Where("grade_level_number = ?", number).First(&grade).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		grade = academicsModel.GradeLevelModel{GradeLevelNumber: number}
		err = db.Create(&grade).Error
	}
	if err != nil {
		return uuid.Nil, err
	}

	var sc academicsModel.SchoolClassModel
	err = db.Where("school_class_grade_level_id = ? AND school_class_letter = ?",
		grade.GradeLevelID, letter).First(&sc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		sc = academicsModel.SchoolClassModel{
			SchoolClassGradeLevelID: grade.GradeLevelID,
			SchoolClassLetter:       letter,
		}
		err = db.Create(&sc).Error
	}
	if err != nil {
		return uuid.Nil, err
	}
	return sc.SchoolClassID, nil
}
