// internals/features/school/academics/controller/class_group_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "shkola_backend/internals/features/school/academics/dto"
	academicsModel "shkola_backend/internals/features/school/academics/model"
	helper "shkola_backend/internals/helpers"
)

type ClassGroupController struct {
	DB *gorm.DB
}

// GET /api/a/classes/:id/groups
func (h *ClassGroupController) ListByClass(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Некорректный идентификатор класса")
	}
	if err := h.ensureClassExists(classID); err != nil {
		return err
	}

	var groups []academicsModel.ClassGroupModel
	if err := h.DB.Where("class_group_class_id = ?", classID).
		Order("class_group_name").Find(&groups).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось получить группы")
	}

	out := make([]dto.ClassGroupResponse, 0, len(groups))
	for _, g := range groups {
		students, err := h.groupStudents(g.ClassGroupID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Не удалось получить состав группы")
		}
		out = append(out, dto.ClassGroupResponse{
			ClassGroupID: g.ClassGroupID,
			ClassID:      g.ClassGroupClassID,
			Name:         g.ClassGroupName,
			Students:     students,
		})
	}
	return helper.JsonList(c, "", out, nil)
}

// POST /api/a/classes/:id/groups
func (h *ClassGroupController) Create(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Некорректный идентификатор класса")
	}
	if err := h.ensureClassExists(classID); err != nil {
		return err
	}

	var req dto.ClassGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Некорректный запрос")
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Название группы обязательно")
	}

	group := academicsModel.ClassGroupModel{
		ClassGroupClassID: classID,
		ClassGroupName:    req.Name,
	}
	if err := h.DB.Create(&group).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return fiber.NewError(fiber.StatusConflict, "Группа с таким названием уже есть в классе")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось создать группу")
	}
	if err := h.setGroupStudents(group.ClassGroupID, req.Students); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось сохранить состав группы")
	}

	return helper.JsonCreated(c, "Группа создана", dto.ClassGroupResponse{
		ClassGroupID: group.ClassGroupID,
		ClassID:      group.ClassGroupClassID,
		Name:         group.ClassGroupName,
		Students:     req.Students,
	})
}

// PUT /api/a/groups/:id
func (h *ClassGroupController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Некорректный идентификатор")
	}

	var group academicsModel.ClassGroupModel
	if err := h.DB.First(&group, "class_group_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Группа не найдена")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Ошибка базы данных")
	}

	var req dto.ClassGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Некорректный запрос")
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		group.ClassGroupName = name
	}
	if err := h.DB.Save(&group).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось обновить группу")
	}
	if req.Students != nil {
		if err := h.setGroupStudents(group.ClassGroupID, req.Students); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Не удалось сохранить состав группы")
		}
	}

	students, err := h.groupStudents(group.ClassGroupID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось получить состав группы")
	}
	return helper.JsonUpdated(c, "Группа обновлена", dto.ClassGroupResponse{
		ClassGroupID: group.ClassGroupID,
		ClassID:      group.ClassGroupClassID,
		Name:         group.ClassGroupName,
		Students:     students,
	})
}

// DELETE /api/a/groups/:id
func (h *ClassGroupController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Некорректный идентификатор")
	}
	if err := h.DB.Delete(&academicsModel.ClassGroupStudentModel{}, "class_group_student_group_id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось удалить состав группы")
	}
	res := h.DB.Delete(&academicsModel.ClassGroupModel{}, "class_group_id = ?", id)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось удалить группу")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Группа не найдена")
	}
	return helper.JsonDeleted(c, "Группа удалена", fiber.Map{"class_group_id": id})
}

func (h *ClassGroupController) ensureClassExists(classID uuid.UUID) error {
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

func (h *ClassGroupController) groupStudents(groupID uuid.UUID) ([]uuid.UUID, error) {
	var members []academicsModel.ClassGroupStudentModel
	if err := h.DB.Where("class_group_student_group_id = ?", groupID).Find(&members).Error; err != nil {
		return nil, err
	}
	out := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		out = append(out, m.ClassGroupStudentUserID)
	}
	return out, nil
}

// setGroupStudents replaces the membership set.
func (h *ClassGroupController) setGroupStudents(groupID uuid.UUID, students []uuid.UUID) error {
	return h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&academicsModel.ClassGroupStudentModel{}, "class_group_student_group_id = ?", groupID).Error; err != nil {
			return err
		}
		for _, userID := range students {
			m := academicsModel.ClassGroupStudentModel{
				ClassGroupStudentGroupID: groupID,
				ClassGroupStudentUserID:  userID,
			}
			if err := tx.Create(&m).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
