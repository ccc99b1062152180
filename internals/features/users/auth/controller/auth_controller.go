// internals/features/users/auth/controller/auth_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"shkola_backend/internals/configs"
	authDTO "shkola_backend/internals/features/users/auth/dto"
	userDTO "shkola_backend/internals/features/users/users/dto"
	userModel "shkola_backend/internals/features/users/users/model"
	helper "shkola_backend/internals/helpers"
	authMiddleware "shkola_backend/internals/middlewares/auth"
)

const (
	accessTokenTTL  = 1 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

type AuthController struct {
	DB *gorm.DB
}

// POST /api/auth/login
//
// Authentication is by first name + last name + password. Namesakes are
// tried one by one until a password matches.
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req authDTO.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Некорректный запрос")
	}
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Имя, фамилия и пароль обязательны")
	}

	var candidates []userModel.UserModel
	if err := h.DB.Where(
		"lower(user_first_name) = lower(?) AND lower(user_last_name) = lower(?)",
		req.FirstName, req.LastName,
	).Find(&candidates).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Ошибка базы данных")
	}

	var user *userModel.UserModel
	for i := range candidates {
		if bcrypt.CompareHashAndPassword(
			[]byte(candidates[i].UserPasswordHash), []byte(req.Password)) == nil {
			user = &candidates[i]
			break
		}
	}
	if user == nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Неверные имя, фамилия или пароль")
	}

	access, refresh, err := issueTokens(user)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось выдать токен")
	}
	return helper.JsonOK(c, "Вход выполнен", fiber.Map{
		"access":  access,
		"refresh": refresh,
		"user":    userDTO.FromUserModel(*user),
	})
}

// POST /api/auth/change-password
func (h *AuthController) ChangePassword(c *fiber.Ctx) error {
	userID, err := authMiddleware.GetUserID(c)
	if err != nil {
		return err
	}

	var req authDTO.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Некорректный запрос")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Пароль должен быть не короче 8 символов")
	}

	var user userModel.UserModel
	if err := h.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "Пользователь не найден")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Ошибка базы данных")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось изменить пароль")
	}
	user.UserPasswordHash = string(hash)
	user.UserMustChangePassword = false
	user.UserTempPassword = ""
	if err := h.DB.Save(&user).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось изменить пароль")
	}

	access, refresh, err := issueTokens(&user)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Не удалось выдать токен")
	}
	return helper.JsonOK(c, "Пароль успешно изменён", fiber.Map{
		"access":  access,
		"refresh": refresh,
	})
}

// GET /api/auth/me
func (h *AuthController) Me(c *fiber.Ctx) error {
	userID, err := authMiddleware.GetUserID(c)
	if err != nil {
		return err
	}
	var user userModel.UserModel
	if err := h.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "Пользователь не найден")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Ошибка базы данных")
	}
	return helper.JsonOK(c, "", userDTO.FromUserModel(user))
}

// PATCH /api/auth/me — only the phone is self-serviceable
func (h *AuthController) UpdateMe(c *fiber.Ctx) error {
	userID, err := authMiddleware.GetUserID(c)
	if err != nil {
		return err
	}
	var req authDTO.UpdateMeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Некорректный запрос")
	}

	var user userModel.UserModel
	if err := h.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "Пользователь не найден")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Ошибка базы данных")
	}
	if req.Phone != nil {
		user.UserPhone = strings.TrimSpace(*req.Phone)
		if err := h.DB.Model(&user).Update("user_phone", user.UserPhone).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Не удалось обновить профиль")
		}
	}
	return helper.JsonUpdated(c, "Профиль обновлён", userDTO.FromUserModel(user))
}

func issueTokens(user *userModel.UserModel) (access string, refresh string, err error) {
	now := time.Now()

	accessClaims := jwt.MapClaims{
		"user_id":              user.UserID.String(),
		"roles":                user.Roles(),
		"must_change_password": user.UserMustChangePassword,
		"iat":                  now.Unix(),
		"exp":                  now.Add(accessTokenTTL).Unix(),
	}
	access, err = jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).
		SignedString([]byte(configs.JWTSecret))
	if err != nil {
		return "", "", err
	}

	refreshClaims := jwt.MapClaims{
		"user_id": user.UserID.String(),
		"typ":     "refresh",
		"iat":     now.Unix(),
		"exp":     now.Add(refreshTokenTTL).Unix(),
	}
	refresh, err = jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).
		SignedString([]byte(configs.JWTRefreshSecret))
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
