// internals/features/school/schedule_import/controller/import_controller.go
package controller

import (
	"io"
	"log"
	"mime/multipart"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "shkola_backend/internals/features/school/schedule_import/dto"
	"shkola_backend/internals/features/school/schedule_import/service"
	helper "shkola_backend/internals/helpers"
)

type ScheduleImportController struct {
	DB *gorm.DB
}

// POST /api/a/schedule/import/preview
//
// Multipart form: classes_file (required), teachers_file (optional).
// Parses both spreadsheets, matches teachers onto class lessons by
// (weekday, period, room) and reports everything the directory is
// missing, without touching the database.
func (h *ScheduleImportController) Preview(c *fiber.Ctx) error {
	classesBytes, err := readFormFile(c, "classes_file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Файл расписания по классам не загружен")
	}

	classLessons, err := service.ParseClassesFile(classesBytes)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	teacherNames := []string{}
	if teachersBytes, err := readFormFile(c, "teachers_file"); err == nil {
		teacherLessons, names, err := service.ParseTeachersFile(teachersBytes)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		teacherNames = names
		service.MatchTeachers(classLessons, teacherLessons)
	}

	dir, err := service.LoadDirectory(h.DB)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось загрузить справочники")
	}
	report := service.Analyze(classLessons, teacherNames, dir)

	log.Printf("[INFO] schedule import preview: %d lessons, %d missing classes, %d missing teachers, %d missing rooms",
		report.Stats.TotalLessons, len(report.MissingClasses), len(report.MissingTeachers), len(report.MissingRooms))
	return helper.JsonOK(c, "", report)
}

// POST /api/a/schedule/import/confirm
func (h *ScheduleImportController) Confirm(c *fiber.Ctx) error {
	var req dto.ConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Некорректный запрос")
	}
	if len(req.ParsedLessons) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Нет уроков для импорта")
	}
	v := validator.New()
	for _, d := range req.ClassMappings {
		if err := v.Struct(d); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Некорректное сопоставление классов")
		}
	}
	for _, d := range req.TeacherMappings {
		if err := v.Struct(d); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Некорректное сопоставление учителей")
		}
	}
	for _, d := range req.RoomMappings {
		if err := v.Struct(d); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Некорректное сопоставление кабинетов")
		}
	}

	result, err := service.ExecuteImport(
		h.DB,
		req.ParsedLessons,
		req.ClassMappings,
		req.TeacherMappings,
		req.RoomMappings,
		req.ReplaceExisting,
	)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Импорт не выполнен: "+err.Error())
	}

	log.Printf("[INFO] schedule import confirm: created=%d skipped=%d errors=%d",
		result.Created, result.Skipped, len(result.Errors))
	return helper.JsonOK(c, "Импорт завершён", result)
}

func readFormFile(c *fiber.Ctx, field string) ([]byte, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, err
	}
	return readAll(fileHeader)
}

func readAll(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
