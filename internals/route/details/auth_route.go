// file: internals/route/details/auth_route.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "shkola_backend/internals/features/users/auth/controller"
	"shkola_backend/internals/middlewares"
	authMiddleware "shkola_backend/internals/middlewares/auth"
)

func AuthRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := &authController.AuthController{DB: db}

	auth := api.Group("/auth")
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)

	auth.Post("/change-password", authMiddleware.AuthMiddleware(), ctrl.ChangePassword)
	auth.Get("/me", authMiddleware.AuthMiddleware(), ctrl.Me)
	auth.Patch("/me", authMiddleware.AuthMiddleware(), ctrl.UpdateMe)
}
