// internals/features/school/academics/controller/grade_level_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "shkola_backend/internals/features/school/academics/dto"
	academicsModel "shkola_backend/internals/features/school/academics/model"
	helper "shkola_backend/internals/helpers"
)

type GradeLevelController struct {
	DB *gorm.DB
}

// GET /api/a/grade-levels
func (h *GradeLevelController) List(c *fiber.Ctx) error {
	var levels []academicsModel.GradeLevelModel
	if err := h.DB.Order("grade_level_number").Find(&levels).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось получить параллели")
	}
	return helper.JsonList(c, "", levels, nil)
}

// POST /api/a/grade-levels — get-or-create by number
func (h *GradeLevelController) Create(c *fiber.Ctx) error {
	var req dto.CreateGradeLevelRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Некорректный запрос")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Номер параллели обязателен")
	}

	var level academicsModel.GradeLevelModel
	err := h.DB.Where("grade_level_number = ?", req.Number).First(&level).Error
	switch {
	case err == nil:
		return helper.JsonOK(c, "Параллель уже существует", level)
	case errors.Is(err, gorm.ErrRecordNotFound):
		level = academicsModel.GradeLevelModel{GradeLevelNumber: req.Number}
		if err := h.DB.Create(&level).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Не удалось создать параллель")
		}
		return helper.JsonCreated(c, "Параллель создана", level)
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "Ошибка базы данных")
	}
}

// DELETE /api/a/grade-levels/:id
func (h *GradeLevelController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Некорректный идентификатор")
	}
	res := h.DB.Delete(&academicsModel.GradeLevelModel{}, "grade_level_id = ?", id)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось удалить параллель")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Не найдено")
	}
	return helper.JsonDeleted(c, "Параллель удалена", fiber.Map{"grade_level_id": id})
}
