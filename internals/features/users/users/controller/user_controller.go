// internals/features/users/users/controller/user_controller.go
package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "shkola_backend/internals/features/users/users/dto"
	userModel "shkola_backend/internals/features/users/users/model"
	userService "shkola_backend/internals/features/users/users/service"
	helper "shkola_backend/internals/helpers"
)

type UserController struct {
	DB *gorm.DB
}

// GET /api/a/teachers — lightweight list for pickers
func (h *UserController) Teachers(c *fiber.Ctx) error {
	var teachers []userModel.UserModel
	if err := h.DB.Where("user_is_teacher = ?", true).
		Order("user_last_name, user_first_name").
		Find(&teachers).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось получить учителей")
	}
	out := make([]dto.TeacherResponse, 0, len(teachers))
	for _, t := range teachers {
		out = append(out, dto.FromTeacherModel(t))
	}
	return helper.JsonList(c, "", out, nil)
}

// GET /api/a/students/:id/parents
func (h *UserController) StudentParents(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Некорректный идентификатор ученика")
	}

	var links []userModel.ParentChildModel
	if err := h.DB.Where("parent_child_student_id = ?", studentID).Find(&links).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось получить родителей")
	}
	parentIDs := make([]uuid.UUID, 0, len(links))
	for _, l := range links {
		parentIDs = append(parentIDs, l.ParentChildParentID)
	}

	out := []dto.UserResponse{}
	if len(parentIDs) > 0 {
		var parents []userModel.UserModel
		if err := h.DB.Where("user_id IN ?", parentIDs).
			Order("user_last_name, user_first_name").
			Find(&parents).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Не удалось получить родителей")
		}
		for _, p := range parents {
			out = append(out, dto.FromUserModel(p))
		}
	}
	return helper.JsonList(c, "", out, nil)
}

// POST /api/a/users/:id/reset-password — issues a fresh temp password
func (h *UserController) ResetPassword(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Некорректный идентификатор")
	}

	var user userModel.UserModel
	if err := h.DB.First(&user, "user_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Пользователь не найден")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Ошибка базы данных")
	}

	password, err := userService.ResetPassword(h.DB, &user)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось сбросить пароль")
	}
	return helper.JsonOK(c, "Пароль сброшен", fiber.Map{
		"user_id":       user.UserID,
		"temp_password": password,
	})
}
