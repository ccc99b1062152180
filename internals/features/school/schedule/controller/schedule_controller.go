// internals/features/school/schedule/controller/schedule_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "shkola_backend/internals/features/school/schedule/dto"
	scheduleModel "shkola_backend/internals/features/school/schedule/model"
	helper "shkola_backend/internals/helpers"
)

type ScheduleController struct {
	DB *gorm.DB
}

// GET /api/a/schedule?class=<uuid>
func (h *ScheduleController) ListByClass(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Query("class"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Параметр class обязателен")
	}

	var lessons []scheduleModel.ScheduleLessonModel
	if err := h.DB.Where("schedule_lesson_class_id = ?", classID).
		Order("schedule_lesson_weekday, schedule_lesson_number").
		Find(&lessons).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось получить расписание")
	}
	out, err := h.toResponses(lessons)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось получить расписание")
	}
	return helper.JsonList(c, "", out, nil)
}

// GET /api/a/schedule/all
func (h *ScheduleController) ListAll(c *fiber.Ctx) error {
	var lessons []scheduleModel.ScheduleLessonModel
	if err := h.DB.Order("schedule_lesson_weekday, schedule_lesson_number").
		Find(&lessons).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось получить расписание")
	}
	out, err := h.toResponses(lessons)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось получить расписание")
	}
	return helper.JsonList(c, "", out, nil)
}

// POST /api/a/schedule/create
func (h *ScheduleController) Create(c *fiber.Ctx) error {
	var req dto.CreateScheduleLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Некорректный запрос")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Класс, день недели, номер урока и предмет обязательны")
	}

	lesson := scheduleModel.ScheduleLessonModel{
		ScheduleLessonClassID:   req.ClassID,
		ScheduleLessonWeekday:   req.Weekday,
		ScheduleLessonNumber:    req.Number,
		ScheduleLessonSubjectID: req.SubjectID,
		ScheduleLessonTeacherID: req.TeacherID,
		ScheduleLessonRoomID:    req.RoomID,
		ScheduleLessonGroupID:   req.GroupID,
	}
	if err := h.DB.Create(&lesson).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return fiber.NewError(fiber.StatusConflict, "Урок в этом слоте уже существует")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось создать урок")
	}

	out, err := h.toResponses([]scheduleModel.ScheduleLessonModel{lesson})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Ошибка базы данных")
	}
	return helper.JsonCreated(c, "Урок добавлен в расписание", out[0])
}

// DELETE /api/a/schedule/:id
func (h *ScheduleController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Некорректный идентификатор")
	}
	res := h.DB.Delete(&scheduleModel.ScheduleLessonModel{}, "schedule_lesson_id = ?", id)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось удалить урок")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Урок не найден")
	}
	return helper.JsonDeleted(c, "Урок удалён", fiber.Map{"schedule_lesson_id": id})
}

func (h *ScheduleController) toResponses(lessons []scheduleModel.ScheduleLessonModel) ([]dto.ScheduleLessonResponse, error) {
	refs := nameRefs{}
	for _, l := range lessons {
		refs.ClassIDs = append(refs.ClassIDs, l.ScheduleLessonClassID)
		refs.SubjectIDs = append(refs.SubjectIDs, l.ScheduleLessonSubjectID)
		if l.ScheduleLessonTeacherID != nil {
			refs.TeacherIDs = append(refs.TeacherIDs, *l.ScheduleLessonTeacherID)
		}
		if l.ScheduleLessonRoomID != nil {
			refs.RoomIDs = append(refs.RoomIDs, *l.ScheduleLessonRoomID)
		}
		if l.ScheduleLessonGroupID != nil {
			refs.GroupIDs = append(refs.GroupIDs, *l.ScheduleLessonGroupID)
		}
	}
	names, err := loadDirectoryNames(h.DB, refs)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ScheduleLessonResponse, 0, len(lessons))
	for _, l := range lessons {
		resp := dto.ScheduleLessonResponse{
			ScheduleLessonID: l.ScheduleLessonID,
			ClassID:          l.ScheduleLessonClassID,
			ClassName:        names.Classes[l.ScheduleLessonClassID],
			Weekday:          l.ScheduleLessonWeekday,
			Number:           l.ScheduleLessonNumber,
			SubjectID:        l.ScheduleLessonSubjectID,
			SubjectName:      names.Subjects[l.ScheduleLessonSubjectID],
			TeacherID:        l.ScheduleLessonTeacherID,
			RoomID:           l.ScheduleLessonRoomID,
			GroupID:          l.ScheduleLessonGroupID,
		}
		if l.ScheduleLessonTeacherID != nil {
			resp.TeacherName = names.Teachers[*l.ScheduleLessonTeacherID]
		}
		if l.ScheduleLessonRoomID != nil {
			resp.RoomName = names.Rooms[*l.ScheduleLessonRoomID]
		}
		if l.ScheduleLessonGroupID != nil {
			resp.GroupName = names.Groups[*l.ScheduleLessonGroupID]
		}
		out = append(out, resp)
	}
	return out, nil
}
