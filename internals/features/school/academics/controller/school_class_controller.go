// internals/features/school/academics/controller/school_class_controller.go
package controller

import (
	"errors"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "shkola_backend/internals/features/school/academics/dto"
	academicsModel "shkola_backend/internals/features/school/academics/model"
	userModel "shkola_backend/internals/features/users/users/model"
	helper "shkola_backend/internals/helpers"
)

type SchoolClassController struct {
	DB *gorm.DB
}

// GET /api/a/classes?grade_level=<uuid>
func (h *SchoolClassController) List(c *fiber.Ctx) error {
	q := h.DB.Model(&academicsModel.SchoolClassModel{})
	if grade := c.Query("grade_level"); grade != "" {
		gradeID, err := uuid.Parse(grade)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Некорректный идентификатор параллели")
		}
		q = q.Where("school_class_grade_level_id = ?", gradeID)
	}

	var classes []academicsModel.SchoolClassModel
	if err := q.Find(&classes).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось получить классы")
	}

	numbers, err := h.gradeNumbers(classes)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось получить параллели")
	}

	out := make([]dto.SchoolClassResponse, 0, len(classes))
	for _, sc := range classes {
		out = append(out, dto.FromSchoolClassModel(sc, numbers[sc.SchoolClassGradeLevelID]))
	}
	// sort by grade number then letter
	sortClassResponses(out)
	return helper.JsonList(c, "", out, nil)
}

// POST /api/a/classes
func (h *SchoolClassController) Create(c *fiber.Ctx) error {
	var req dto.CreateSchoolClassRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Некорректный запрос")
	}
	req.Letter = strings.ToUpper(strings.TrimSpace(req.Letter))
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Параллель и буква обязательны")
	}

	var grade academicsModel.GradeLevelModel
	if err := h.DB.First(&grade, "grade_level_id = ?", req.GradeLevelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Параллель не найдена")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Ошибка базы данных")
	}

	sc := academicsModel.SchoolClassModel{
		SchoolClassGradeLevelID: req.GradeLevelID,
		SchoolClassLetter:       req.Letter,
	}
	if err := h.DB.Create(&sc).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return fiber.NewError(fiber.StatusConflict, "Такой класс уже существует")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось создать класс")
	}
	return helper.JsonCreated(c, "Класс создан", dto.FromSchoolClassModel(sc, grade.GradeLevelNumber))
}

// DELETE /api/a/classes/:id
func (h *SchoolClassController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Некорректный идентификатор")
	}
	res := h.DB.Delete(&academicsModel.SchoolClassModel{}, "school_class_id = ?", id)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось удалить класс")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Не найдено")
	}
	return helper.JsonDeleted(c, "Класс удалён", fiber.Map{"school_class_id": id})
}

// GET /api/a/classes/:id/students
func (h *SchoolClassController) Students(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Некорректный идентификатор класса")
	}

	var profiles []userModel.StudentProfileModel
	if err := h.DB.Where("student_profile_class_id = ?", classID).Find(&profiles).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось получить учеников")
	}

	userIDs := make([]uuid.UUID, 0, len(profiles))
	for _, p := range profiles {
		userIDs = append(userIDs, p.StudentProfileUserID)
	}
	var users []userModel.UserModel
	if len(userIDs) > 0 {
		if err := h.DB.Where("user_id IN ?", userIDs).
			Order("user_last_name, user_first_name").
			Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Не удалось получить учеников")
		}
	}

	byUser := make(map[uuid.UUID]uuid.UUID, len(profiles))
	for _, p := range profiles {
		byUser[p.StudentProfileUserID] = p.StudentProfileID
	}
	out := make([]fiber.Map, 0, len(users))
	for _, u := range users {
		out = append(out, fiber.Map{
			"student_profile_id": byUser[u.UserID],
			"user_id":            u.UserID,
			"first_name":         u.UserFirstName,
			"last_name":          u.UserLastName,
			"full_name":          u.FullName(),
		})
	}
	return helper.JsonList(c, "", out, nil)
}

func (h *SchoolClassController) gradeNumbers(classes []academicsModel.SchoolClassModel) (map[uuid.UUID]int, error) {
	ids := make([]uuid.UUID, 0, len(classes))
	seen := map[uuid.UUID]bool{}
	for _, sc := range classes {
		if !seen[sc.SchoolClassGradeLevelID] {
			seen[sc.SchoolClassGradeLevelID] = true
			ids = append(ids, sc.SchoolClassGradeLevelID)
		}
	}
	numbers := make(map[uuid.UUID]int, len(ids))
	if len(ids) == 0 {
		return numbers, nil
	}
	var grades []academicsModel.GradeLevelModel
	if err := h.DB.Where("grade_level_id IN ?", ids).Find(&grades).Error; err != nil {
		return nil, err
	}
	for _, g := range grades {
		numbers[g.GradeLevelID] = g.GradeLevelNumber
	}
	return numbers, nil
}

func sortClassResponses(out []dto.SchoolClassResponse) {
	sort.Slice(out, func(i, j int) bool {
		if out[i].GradeNumber != out[j].GradeNumber {
			return out[i].GradeNumber < out[j].GradeNumber
		}
		return out[i].Letter < out[j].Letter
	})
}
