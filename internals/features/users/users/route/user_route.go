// file: internals/features/users/users/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userController "shkola_backend/internals/features/users/users/controller"
)

func UserAdminRoutes(r fiber.Router, db *gorm.DB) {
	users := &userController.UserController{DB: db}

	r.Get("/teachers", users.Teachers)
	r.Get("/students/:id/parents", users.StudentParents)
	r.Post("/users/:id/reset-password", users.ResetPassword)
}
