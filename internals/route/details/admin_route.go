// file: internals/route/details/admin_route.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	academicsRoute "shkola_backend/internals/features/school/academics/route"
	scheduleRoute "shkola_backend/internals/features/school/schedule/route"
	userRoute "shkola_backend/internals/features/users/users/route"
)

// AdminRoutes wires every admin-only feature group. The caller is
// responsible for attaching auth and role guards.
func AdminRoutes(admin fiber.Router, db *gorm.DB) {
	academicsRoute.AcademicsAdminRoutes(admin, db)
	scheduleRoute.ScheduleAdminRoutes(admin, db)
	userRoute.UserAdminRoutes(admin, db)
}
