// internals/features/school/academics/controller/class_subject_controller.go
package controller

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "shkola_backend/internals/features/school/academics/dto"
	academicsModel "shkola_backend/internals/features/school/academics/model"
	userModel "shkola_backend/internals/features/users/users/model"
	helper "shkola_backend/internals/helpers"
)

type ClassSubjectController struct {
	DB *gorm.DB
}

// GET /api/a/classes/:id/subjects
func (h *ClassSubjectController) ListByClass(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Некорректный идентификатор класса")
	}
	if err := h.ensureClassExists(classID); err != nil {
		return err
	}

	var subjects []academicsModel.ClassSubjectModel
	if err := h.DB.Where("class_subject_class_id = ?", classID).
		Order("class_subject_name").Find(&subjects).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось получить предметы класса")
	}

	out, err := h.toResponses(subjects)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось получить предметы класса")
	}
	return helper.JsonList(c, "", out, nil)
}

// POST /api/a/classes/:id/subjects — accepts a single entry or a batch
func (h *ClassSubjectController) Create(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Некорректный идентификатор класса")
	}
	if err := h.ensureClassExists(classID); err != nil {
		return err
	}

	var entries []dto.ClassSubjectEntry
	if err := c.BodyParser(&entries); err != nil {
		var single dto.ClassSubjectEntry
		if err := c.BodyParser(&single); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Некорректный запрос")
		}
		entries = []dto.ClassSubjectEntry{single}
	}

	created := make([]academicsModel.ClassSubjectModel, 0, len(entries))
	importErrors := []string{}
	for i, entry := range entries {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			importErrors = append(importErrors, fmt.Sprintf("Запись %d: название обязательно", i+1))
			continue
		}
		cs := academicsModel.ClassSubjectModel{
			ClassSubjectClassID:   classID,
			ClassSubjectName:      name,
			ClassSubjectTeacherID: entry.TeacherID,
			ClassSubjectGroupID:   entry.GroupID,
		}
		if err := h.DB.Create(&cs).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				importErrors = append(importErrors, fmt.Sprintf("Запись %d: предмет «%s» уже есть в классе", i+1, name))
				continue
			}
			importErrors = append(importErrors, fmt.Sprintf("Запись %d: %v", i+1, err))
			continue
		}
		created = append(created, cs)
	}

	responses, err := h.toResponses(created)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось получить предметы класса")
	}
	return helper.JsonCreated(c, "Предметы класса созданы", fiber.Map{
		"created": responses,
		"errors":  importErrors,
	})
}

// PUT /api/a/class-subjects/:id
func (h *ClassSubjectController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Некорректный идентификатор")
	}

	var cs academicsModel.ClassSubjectModel
	if err := h.DB.First(&cs, "class_subject_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Предмет не найден")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Ошибка базы данных")
	}

	// raw map so that an explicit null clears the pointer fields
	var raw map[string]any
	if err := c.BodyParser(&raw); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Некорректный запрос")
	}
	if v, ok := raw["name"].(string); ok {
		if name := strings.TrimSpace(v); name != "" {
			cs.ClassSubjectName = name
		}
	}
	if v, present := raw["teacher"]; present {
		id, err := parseOptionalUUID(v)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Некорректный идентификатор учителя")
		}
		cs.ClassSubjectTeacherID = id
	}
	if v, present := raw["group"]; present {
		id, err := parseOptionalUUID(v)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Некорректный идентификатор группы")
		}
		cs.ClassSubjectGroupID = id
	}

	if err := h.DB.Save(&cs).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось обновить предмет")
	}
	responses, err := h.toResponses([]academicsModel.ClassSubjectModel{cs})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Ошибка базы данных")
	}
	return helper.JsonUpdated(c, "Предмет обновлён", responses[0])
}

// DELETE /api/a/class-subjects/:id
func (h *ClassSubjectController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Некорректный идентификатор")
	}
	res := h.DB.Delete(&academicsModel.ClassSubjectModel{}, "class_subject_id = ?", id)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось удалить предмет")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Предмет не найден")
	}
	return helper.JsonDeleted(c, "Предмет удалён", fiber.Map{"class_subject_id": id})
}

func (h *ClassSubjectController) ensureClassExists(classID uuid.UUID) error {
	var n int64
	if err := h.DB.Model(&academicsModel.SchoolClassModel{}).
		Where("school_class_id = ?", classID).Count(&n).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Ошибка базы данных")
	}
	if n == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Класс не найден")
	}
	return nil
}

func (h *ClassSubjectController) toResponses(subjects []academicsModel.ClassSubjectModel) ([]dto.ClassSubjectResponse, error) {
	teacherIDs := make([]uuid.UUID, 0)
	groupIDs := make([]uuid.UUID, 0)
	for _, cs := range subjects {
		if cs.ClassSubjectTeacherID != nil {
			teacherIDs = append(teacherIDs, *cs.ClassSubjectTeacherID)
		}
		if cs.ClassSubjectGroupID != nil {
			groupIDs = append(groupIDs, *cs.ClassSubjectGroupID)
		}
	}

	teacherNames := map[uuid.UUID]string{}
	if len(teacherIDs) > 0 {
		var teachers []userModel.UserModel
		if err := h.DB.Where("user_id IN ?", teacherIDs).Find(&teachers).Error; err != nil {
			return nil, err
		}
		for _, t := range teachers {
			teacherNames[t.UserID] = t.FullName()
		}
	}
	groupNames := map[uuid.UUID]string{}
	if len(groupIDs) > 0 {
		var groups []academicsModel.ClassGroupModel
		if err := h.DB.Where("class_group_id IN ?", groupIDs).Find(&groups).Error; err != nil {
			return nil, err
		}
		for _, g := range groups {
			groupNames[g.ClassGroupID] = g.ClassGroupName
		}
	}

	out := make([]dto.ClassSubjectResponse, 0, len(subjects))
	for _, cs := range subjects {
		resp := dto.ClassSubjectResponse{
			ClassSubjectID: cs.ClassSubjectID,
			ClassID:        cs.ClassSubjectClassID,
			Name:           cs.ClassSubjectName,
			TeacherID:      cs.ClassSubjectTeacherID,
			GroupID:        cs.ClassSubjectGroupID,
		}
		if cs.ClassSubjectTeacherID != nil {
			resp.TeacherName = teacherNames[*cs.ClassSubjectTeacherID]
		}
		if cs.ClassSubjectGroupID != nil {
			resp.GroupName = groupNames[*cs.ClassSubjectGroupID]
		}
		out = append(out, resp)
	}
	return out, nil
}

func parseOptionalUUID(v any) (*uuid.UUID, error) {
	s, ok := v.(string)
	if !ok || s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
