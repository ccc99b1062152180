// internals/features/school/schedule/controller/substitution_controller.go
package controller

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	dto "shkola_backend/internals/features/school/schedule/dto"
	scheduleModel "shkola_backend/internals/features/school/schedule/model"
	helper "shkola_backend/internals/helpers"
)

const dateLayout = "2006-01-02"

type SubstitutionController struct {
	DB *gorm.DB
}

// GET /api/a/substitutions?date=YYYY-MM-DD | ?from=&to=
func (h *SubstitutionController) List(c *fiber.Ctx) error {
	q := h.DB.Model(&scheduleModel.SubstitutionModel{}).
		Order("substitution_date, substitution_lesson_number")

	if date := c.Query("date"); date != "" {
		d, err := time.Parse(dateLayout, date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Некорректная дата")
		}
		q = q.Where("substitution_date = ?", d)
	} else {
		if from := c.Query("from"); from != "" {
			d, err := time.Parse(dateLayout, from)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Некорректная дата from")
			}
			q = q.Where("substitution_date >= ?", d)
		}
		if to := c.Query("to"); to != "" {
			d, err := time.Parse(dateLayout, to)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Некорректная дата to")
			}
			q = q.Where("substitution_date <= ?", d)
		}
	}

	var subs []scheduleModel.SubstitutionModel
	if err := q.Find(&subs).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось получить замены")
	}
	out, err := h.toResponses(subs)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось получить замены")
	}
	return helper.JsonList(c, "", out, nil)
}

// POST /api/a/substitutions
func (h *SubstitutionController) Create(c *fiber.Ctx) error {
	var req dto.SubstitutionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Некорректный запрос")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Дата, номер урока, класс и предмет обязательны")
	}
	date, _ := time.Parse(dateLayout, req.Date)

	sub := scheduleModel.SubstitutionModel{
		SubstitutionDate:             date,
		SubstitutionLessonNumber:     req.LessonNumber,
		SubstitutionClassID:          req.ClassID,
		SubstitutionSubjectID:        req.SubjectID,
		SubstitutionTeacherID:        req.TeacherID,
		SubstitutionRoomID:           req.RoomID,
		SubstitutionGroupID:          req.GroupID,
		SubstitutionOriginalLessonID: req.OriginalLessonID,
	}
	if err := h.DB.Create(&sub).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return fiber.NewError(fiber.StatusConflict, "Замена на этот слот уже существует")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось создать замену")
	}

	out, err := h.toResponses([]scheduleModel.SubstitutionModel{sub})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Ошибка базы данных")
	}
	return helper.JsonCreated(c, "Замена создана", out[0])
}

// PUT /api/a/substitutions/:id
func (h *SubstitutionController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Некорректный идентификатор")
	}

	var sub scheduleModel.SubstitutionModel
	if err := h.DB.First(&sub, "substitution_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Замена не найдена")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Ошибка базы данных")
	}

	var req dto.SubstitutionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Некорректный запрос")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Дата, номер урока, класс и предмет обязательны")
	}
	date, _ := time.Parse(dateLayout, req.Date)

	sub.SubstitutionDate = date
	sub.SubstitutionLessonNumber = req.LessonNumber
	sub.SubstitutionClassID = req.ClassID
	sub.SubstitutionSubjectID = req.SubjectID
	sub.SubstitutionTeacherID = req.TeacherID
	sub.SubstitutionRoomID = req.RoomID
	sub.SubstitutionGroupID = req.GroupID
	sub.SubstitutionOriginalLessonID = req.OriginalLessonID

	if err := h.DB.Save(&sub).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return fiber.NewError(fiber.StatusConflict, "Замена на этот слот уже существует")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось обновить замену")
	}

	out, err := h.toResponses([]scheduleModel.SubstitutionModel{sub})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Ошибка базы данных")
	}
	return helper.JsonUpdated(c, "Замена обновлена", out[0])
}

// DELETE /api/a/substitutions/:id
func (h *SubstitutionController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Некорректный идентификатор")
	}
	res := h.DB.Delete(&scheduleModel.SubstitutionModel{}, "substitution_id = ?", id)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось удалить замену")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Замена не найдена")
	}
	return helper.JsonDeleted(c, "Замена удалена", fiber.Map{"substitution_id": id})
}

// GET /api/a/substitutions/export?from=&to= — XLSX download
func (h *SubstitutionController) Export(c *fiber.Ctx) error {
	q := h.DB.Model(&scheduleModel.SubstitutionModel{}).
		Order("substitution_date, substitution_lesson_number")
	if from := c.Query("from"); from != "" {
		d, err := time.Parse(dateLayout, from)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Некорректная дата from")
		}
		q = q.Where("substitution_date >= ?", d)
	}
	if to := c.Query("to"); to != "" {
		d, err := time.Parse(dateLayout, to)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Некорректная дата to")
		}
		q = q.Where("substitution_date <= ?", d)
	}

	var subs []scheduleModel.SubstitutionModel
	if err := q.Find(&subs).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось получить замены")
	}
	rows, err := h.toResponses(subs)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось получить замены")
	}

	buf, err := buildSubstitutionWorkbook(rows)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось сформировать файл")
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="substitutions.xlsx"`)
	return c.Send(buf)
}

func buildSubstitutionWorkbook(rows []dto.SubstitutionResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Замены"
	f.SetSheetName(f.GetSheetName(0), sheet)

	header := []any{"Дата", "Урок", "Класс", "Предмет", "Учитель", "Кабинет", "Группа"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		values := []any{
			row.Date,
			row.LessonNumber,
			row.ClassName,
			row.SubjectName,
			row.TeacherName,
			row.RoomName,
			row.GroupName,
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, err
		}
	}

	out, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func (h *SubstitutionController) toResponses(subs []scheduleModel.SubstitutionModel) ([]dto.SubstitutionResponse, error) {
	refs := nameRefs{}
	for _, s := range subs {
		refs.ClassIDs = append(refs.ClassIDs, s.SubstitutionClassID)
		refs.SubjectIDs = append(refs.SubjectIDs, s.SubstitutionSubjectID)
		if s.SubstitutionTeacherID != nil {
			refs.TeacherIDs = append(refs.TeacherIDs, *s.SubstitutionTeacherID)
		}
		if s.SubstitutionRoomID != nil {
			refs.RoomIDs = append(refs.RoomIDs, *s.SubstitutionRoomID)
		}
		if s.SubstitutionGroupID != nil {
			refs.GroupIDs = append(refs.GroupIDs, *s.SubstitutionGroupID)
		}
	}
	names, err := loadDirectoryNames(h.DB, refs)
	if err != nil {
		return nil, err
	}

	out := make([]dto.SubstitutionResponse, 0, len(subs))
	for _, s := range subs {
		resp := dto.SubstitutionResponse{
			SubstitutionID:   s.SubstitutionID,
			Date:             s.SubstitutionDate.Format(dateLayout),
			LessonNumber:     s.SubstitutionLessonNumber,
			ClassID:          s.SubstitutionClassID,
			ClassName:        names.Classes[s.SubstitutionClassID],
			SubjectID:        s.SubstitutionSubjectID,
			SubjectName:      names.Subjects[s.SubstitutionSubjectID],
			TeacherID:        s.SubstitutionTeacherID,
			RoomID:           s.SubstitutionRoomID,
			GroupID:          s.SubstitutionGroupID,
			OriginalLessonID: s.SubstitutionOriginalLessonID,
		}
		if s.SubstitutionTeacherID != nil {
			resp.TeacherName = names.Teachers[*s.SubstitutionTeacherID]
		}
		if s.SubstitutionRoomID != nil {
			resp.RoomName = names.Rooms[*s.SubstitutionRoomID]
		}
		if s.SubstitutionGroupID != nil {
			resp.GroupName = names.Groups[*s.SubstitutionGroupID]
		}
		out = append(out, resp)
	}
	return out, nil
}
