// internals/features/school/academics/controller/grade_subject_controller.go
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

type GradeSubjectController struct {
	DB *gorm.DB
}

// GET /api/a/grade-subjects?grade_level=<uuid>
func (h *GradeSubjectController) List(c *fiber.Ctx) error {
	q := h.DB.Model(&academicsModel.GradeLevelSubjectModel{})
	if grade := c.Query("grade_level"); grade != "" {
		gradeID, err := uuid.Parse(grade)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Некорректный идентификатор параллели")
		}
		q = q.Where("grade_level_subject_grade_level_id = ?", gradeID)
	}
	var links []academicsModel.GradeLevelSubjectModel
	if err := q.Find(&links).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось получить предметы параллели")
	}
	return helper.JsonList(c, "", links, nil)
}

// POST /api/a/grade-subjects — get-or-create pair
func (h *GradeSubjectController) Create(c *fiber.Ctx) error {
	var req dto.CreateGradeSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Некорректный запрос")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "grade_level и subject обязательны")
	}

	var link academicsModel.GradeLevelSubjectModel
	err := h.DB.Where(
		"grade_level_subject_grade_level_id = ? AND grade_level_subject_subject_id = ?",
		req.GradeLevelID, req.SubjectID,
	).First(&link).Error
	switch {
	case err == nil:
		return helper.JsonOK(c, "Связь уже существует", link)
	case errors.Is(err, gorm.ErrRecordNotFound):
		link = academicsModel.GradeLevelSubjectModel{
			GradeLevelSubjectGradeLevelID: req.GradeLevelID,
			GradeLevelSubjectSubjectID:    req.SubjectID,
		}
		if err := h.DB.Create(&link).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Не удалось создать связь")
		}
		return helper.JsonCreated(c, "Связь создана", link)
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "Ошибка базы данных")
	}
}

// DELETE /api/a/grade-subjects/:id
func (h *GradeSubjectController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Некорректный идентификатор")
	}
	res := h.DB.Delete(&academicsModel.GradeLevelSubjectModel{}, "grade_level_subject_id = ?", id)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось удалить связь")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Не найдено")
	}
	return helper.JsonDeleted(c, "Связь удалена", fiber.Map{"grade_level_subject_id": id})
}
