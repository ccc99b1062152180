// file: internals/features/school/schedule/route/schedule_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	scheduleController "shkola_backend/internals/features/school/schedule/controller"
	importController "shkola_backend/internals/features/school/schedule_import/controller"
)

// ScheduleAdminRoutes mounts the timetable, the substitutions and the
// two-step Excel import under the admin group.
func ScheduleAdminRoutes(r fiber.Router, db *gorm.DB) {
	schedule := &scheduleController.ScheduleController{DB: db}
	substitutions := &scheduleController.SubstitutionController{DB: db}
	scheduleImport := &importController.ScheduleImportController{DB: db}

	r.Get("/schedule", schedule.ListByClass)
	r.Get("/schedule/all", schedule.ListAll)
	r.Post("/schedule/create", schedule.Create)
	r.Post("/schedule/import/preview", scheduleImport.Preview)
	r.Post("/schedule/import/confirm", scheduleImport.Confirm)
	r.Delete("/schedule/:id", schedule.Delete)

	r.Get("/substitutions", substitutions.List)
	r.Post("/substitutions", substitutions.Create)
	r.Get("/substitutions/export", substitutions.Export)
	r.Put("/substitutions/:id", substitutions.Update)
	r.Delete("/substitutions/:id", substitutions.Delete)
}
