// internals/features/school/academics/controller/roster_import_controller.go
package controller

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "shkola_backend/internals/features/school/academics/dto"
	"shkola_backend/internals/features/school/academics/services"
	helper "shkola_backend/internals/helpers"
)

type RosterImportController struct {
	DB *gorm.DB
}

// POST /api/a/classes/import — multipart, field "file"
func (h *RosterImportController) Import(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Файл не загружен")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Не удалось открыть файл")
	}
	defer file.Close()
	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Не удалось прочитать файл")
	}

	result, err := services.ImportClassRoster(h.DB, fileHeader.Filename, fileBytes)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return helper.JsonOK(c, "Импорт завершён", dto.RosterImportResponse{
		StudentsCount: len(result.Students),
		ParentsCount:  len(result.Parents),
		Errors:        result.Errors,
	})
}
