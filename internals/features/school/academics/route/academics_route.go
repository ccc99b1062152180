// file: internals/features/school/academics/route/academics_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	academicsController "shkola_backend/internals/features/school/academics/controller"
)

// AcademicsAdminRoutes mounts the directory CRUD under the admin group.
func AcademicsAdminRoutes(r fiber.Router, db *gorm.DB) {
	gradeLevels := &academicsController.GradeLevelController{DB: db}
	classes := &academicsController.SchoolClassController{DB: db}
	subjects := &academicsController.SubjectController{DB: db}
	gradeSubjects := &academicsController.GradeSubjectController{DB: db}
	rooms := &academicsController.RoomController{DB: db}
	groups := &academicsController.ClassGroupController{DB: db}
	classSubjects := &academicsController.ClassSubjectController{DB: db}
	rosterImport := &academicsController.RosterImportController{DB: db}

	r.Get("/grade-levels", gradeLevels.List)
	r.Post("/grade-levels", gradeLevels.Create)
	r.Delete("/grade-levels/:id", gradeLevels.Delete)

	r.Get("/classes", classes.List)
	r.Post("/classes", classes.Create)
	r.Post("/classes/import", rosterImport.Import)
	r.Delete("/classes/:id", classes.Delete)
	r.Get("/classes/:id/students", classes.Students)

	r.Get("/classes/:id/groups", groups.ListByClass)
	r.Post("/classes/:id/groups", groups.Create)
	r.Put("/groups/:id", groups.Update)
	r.Delete("/groups/:id", groups.Delete)

	r.Get("/classes/:id/subjects", classSubjects.ListByClass)
	r.Post("/classes/:id/subjects", classSubjects.Create)
	r.Put("/class-subjects/:id", classSubjects.Update)
	r.Delete("/class-subjects/:id", classSubjects.Delete)

	r.Get("/subjects", subjects.List)
	r.Post("/subjects", subjects.Create)
	r.Delete("/subjects/:id", subjects.Delete)

	r.Get("/grade-subjects", gradeSubjects.List)
	r.Post("/grade-subjects", gradeSubjects.Create)
	r.Delete("/grade-subjects/:id", gradeSubjects.Delete)

	r.Get("/rooms", rooms.List)
	r.Post("/rooms", rooms.Create)
	r.Delete("/rooms/:id", rooms.Delete)
}
