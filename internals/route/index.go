// file: internals/route/index.go
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authMiddleware "shkola_backend/internals/middlewares/auth"
	routeDetails "shkola_backend/internals/route/details"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api")

	routeDetails.AuthRoutes(api, db)

	admin := api.Group("/a", authMiddleware.AuthMiddleware(), authMiddleware.IsAdmin())
	routeDetails.AdminRoutes(admin, db)
}
