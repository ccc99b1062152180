// file: internals/features/school/schedule_import/service/context.go
package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	academicsModel "shkola_backend/internals/features/school/academics/model"
	userModel "shkola_backend/internals/features/users/users/model"
	helper "shkola_backend/internals/helpers"
)

// importContext carries all per-run state of one import execution:
// the resolved mapping decisions, directory fallback caches and the
// running counters. A fresh context is built for every confirm call.
type importContext struct {
	db *gorm.DB

	// resolved mapping decisions
	classIDs map[string]uuid.UUID  // lower(excel class name) → id
	roomIDs  map[string]uuid.UUID  // normalized room fragment → id
	teachers map[string]*uuid.UUID // excel teacher name → id, nil = explicitly skipped

	// directory fallbacks for entities that were already in the DB and
	// therefore never showed up in the mapping decisions
	dbRooms    map[string]uuid.UUID // normalized name → id
	dbTeachers map[string]uuid.UUID // lower(surname) → id, first match wins

	subjectIDs       map[string]uuid.UUID        // subject name → id (get-or-create cache)
	groupPairs       map[uuid.UUID][2]uuid.UUID  // class id → (Группа 1, Группа 2)
	classSubjectSeen map[classSubjectKey]struct{}

	created int
	skipped int
	errors  []string
}

type classSubjectKey struct {
	classID uuid.UUID
	name    string
}

func newImportContext(db *gorm.DB) (*importContext, error) {
	ctx := &importContext{
		db:               db,
		classIDs:         map[string]uuid.UUID{},
		roomIDs:          map[string]uuid.UUID{},
		teachers:         map[string]*uuid.UUID{},
		dbRooms:          map[string]uuid.UUID{},
		dbTeachers:       map[string]uuid.UUID{},
		subjectIDs:       map[string]uuid.UUID{},
		groupPairs:       map[uuid.UUID][2]uuid.UUID{},
		classSubjectSeen: map[classSubjectKey]struct{}{},
		errors:           []string{},
	}

	var rooms []academicsModel.RoomModel
	if err := db.Find(&rooms).Error; err != nil {
		return nil, err
	}
	for _, r := range rooms {
		ctx.dbRooms[normalize(r.RoomName)] = r.RoomID
	}

	var teachers []userModel.UserModel
	if err := db.Where("user_is_teacher = ?", true).Find(&teachers).Error; err != nil {
		return nil, err
	}
	for _, t := range teachers {
		key := strings.ToLower(t.UserLastName)
		if _, ok := ctx.dbTeachers[key]; !ok {
			ctx.dbTeachers[key] = t.UserID
		}
	}
	return ctx, nil
}

// resolveRoom tries each comma-separated fragment against the mapping
// decisions, then against the pre-existing directory.
func (ctx *importContext) resolveRoom(roomRaw string) *uuid.UUID {
	if roomRaw == "" {
		return nil
	}
	for _, part := range strings.Split(roomRaw, ",") {
		norm := normalize(part)
		if id, ok := ctx.roomIDs[norm]; ok {
			return &id
		}
		if id, ok := ctx.dbRooms[norm]; ok {
			return &id
		}
	}
	return nil
}

// resolveTeacher distinguishes three states: mapped (use the decision,
// where nil means the teacher was explicitly skipped), and unmapped
// (the teacher was never missing — fall back to a surname lookup).
func (ctx *importContext) resolveTeacher(teacherName string) *uuid.UUID {
	if teacherName == "" {
		return nil
	}
	if id, mapped := ctx.teachers[teacherName]; mapped {
		return id
	}
	surname := surnameOf(teacherName)
	if id, ok := ctx.dbTeachers[surname]; ok {
		return &id
	}
	return nil
}

func (ctx *importContext) getOrCreateSubject(name string) (uuid.UUID, error) {
	if id, ok := ctx.subjectIDs[name]; ok {
		return id, nil
	}
	var subject academicsModel.SubjectModel
	err := ctx.db.Where("subject_name = ?", name).First(&subject).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		subject = academicsModel.SubjectModel{SubjectName: name}
		err = ctx.db.Create(&subject).Error
	}
	if err != nil {
		return uuid.Nil, err
	}
	ctx.subjectIDs[name] = subject.SubjectID
	return subject.SubjectID, nil
}

// getClassGroups returns the "Группа 1"/"Группа 2" pair for a class,
// creating it on first use.
func (ctx *importContext) getClassGroups(classID uuid.UUID) ([2]uuid.UUID, error) {
	if pair, ok := ctx.groupPairs[classID]; ok {
		return pair, nil
	}
	var pair [2]uuid.UUID
	for i, name := range []string{"Группа 1", "Группа 2"} {
		var group academicsModel.ClassGroupModel
		err := ctx.db.Where("class_group_class_id = ? AND class_group_name = ?", classID, name).
			First(&group).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			group = academicsModel.ClassGroupModel{
				ClassGroupClassID: classID,
				ClassGroupName:    name,
			}
			err = ctx.db.Create(&group).Error
		}
		if err != nil {
			return pair, err
		}
		pair[i] = group.ClassGroupID
	}
	ctx.groupPairs[classID] = pair
	return pair, nil
}

// ensureClassSubject records the subject in the class curriculum. A
// unique violation means another row of this run (or a concurrent
// request) created it first; that is not an error.
func (ctx *importContext) ensureClassSubject(classID uuid.UUID, name string) {
	key := classSubjectKey{classID, strings.ToLower(name)}
	if _, ok := ctx.classSubjectSeen[key]; ok {
		return
	}
	ctx.classSubjectSeen[key] = struct{}{}

	var n int64
	if err := ctx.db.Model(&academicsModel.ClassSubjectModel{}).
		Where("class_subject_class_id = ? AND class_subject_name = ?", classID, name).
		Count(&n).Error; err != nil || n > 0 {
		return
	}
	cs := academicsModel.ClassSubjectModel{
		ClassSubjectClassID: classID,
		ClassSubjectName:    name,
	}
	if err := ctx.db.Create(&cs).Error; err != nil && !helper.IsUniqueViolation(err) {
		ctx.errors = append(ctx.errors, "class subject "+name+": "+err.Error())
	}
}
