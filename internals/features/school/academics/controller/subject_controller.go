// internals/features/school/academics/controller/subject_controller.go
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

type SubjectController struct {
	DB *gorm.DB
}

// GET /api/a/subjects
func (h *SubjectController) List(c *fiber.Ctx) error {
	var subjects []academicsModel.SubjectModel
	if err := h.DB.Order("subject_name").Find(&subjects).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось получить предметы")
	}
	return helper.JsonList(c, "", subjects, nil)
}

// POST /api/a/subjects — get-or-create by name
func (h *SubjectController) Create(c *fiber.Ctx) error {
	var req dto.CreateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Некорректный запрос")
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Название предмета обязательно")
	}

	var subject academicsModel.SubjectModel
	err := h.DB.Where("subject_name = ?", req.Name).First(&subject).Error
	switch {
	case err == nil:
		return helper.JsonOK(c, "Предмет уже существует", subject)
	case errors.Is(err, gorm.ErrRecordNotFound):
		subject = academicsModel.SubjectModel{SubjectName: req.Name}
		if err := h.DB.Create(&subject).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Не удалось создать предмет")
		}
		return helper.JsonCreated(c, "Предмет создан", subject)
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "Ошибка базы данных")
	}
}

// DELETE /api/a/subjects/:id
func (h *SubjectController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Некорректный идентификатор")
	}
	res := h.DB.Delete(&academicsModel.SubjectModel{}, "subject_id = ?", id)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось удалить предмет")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Не найдено")
	}
	return helper.JsonDeleted(c, "Предмет удалён", fiber.Map{"subject_id": id})
}
