// internals/features/school/academics/controller/room_controller.go
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

type RoomController struct {
	DB *gorm.DB
}

// GET /api/a/rooms
func (h *RoomController) List(c *fiber.Ctx) error {
	var rooms []academicsModel.RoomModel
	if err := h.DB.Order("room_name").Find(&rooms).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось получить кабинеты")
	}
	return helper.JsonList(c, "", rooms, nil)
}

// POST /api/a/rooms — get-or-create by name
func (h *RoomController) Create(c *fiber.Ctx) error {
	var req dto.CreateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Некорректный запрос")
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Название кабинета обязательно")
	}

	var room academicsModel.RoomModel
	err := h.DB.Where("room_name = ?", req.Name).First(&room).Error
	switch {
	case err == nil:
		return helper.JsonOK(c, "Кабинет уже существует", room)
	case errors.Is(err, gorm.ErrRecordNotFound):
		room = academicsModel.RoomModel{RoomName: req.Name}
		if err := h.DB.Create(&room).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Не удалось создать кабинет")
		}
		return helper.JsonCreated(c, "Кабинет создан", room)
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "Ошибка базы данных")
	}
}

// DELETE /api/a/rooms/:id
func (h *RoomController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Некорректный идентификатор")
	}
	res := h.DB.Delete(&academicsModel.RoomModel{}, "room_id = ?", id)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось удалить кабинет")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Не найдено")
	}
	return helper.JsonDeleted(c, "Кабинет удалён", fiber.Map{"room_id": id})
}
