// file: internals/features/school/schedule_import/service/analyzer.go
package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	academicsModel "shkola_backend/internals/features/school/academics/model"
	dto "shkola_backend/internals/features/school/schedule_import/dto"
	userModel "shkola_backend/internals/features/users/users/model"
)

// Directory is a snapshot of the persisted classes, teachers and rooms
// that an import run is compared against.
type Directory struct {
	Classes  []DirectoryClass
	Teachers []DirectoryTeacher
	Rooms    []DirectoryRoom
}

type DirectoryClass struct {
	ID     uuid.UUID
	Number int
	Letter string
}

type DirectoryTeacher struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
}

type DirectoryRoom struct {
	ID   uuid.UUID
	Name string
}

func LoadDirectory(db *gorm.DB) (*Directory, error) {
	dir := &Directory{}

	var classes []academicsModel.SchoolClassModel
	if err := db.Find(&classes).Error; err != nil {
		return nil, err
	}
	var grades []academicsModel.GradeLevelModel
	if err := db.Find(&grades).Error; err != nil {
		return nil, err
	}
	numbers := map[uuid.UUID]int{}
	for _, g := range grades {
		numbers[g.GradeLevelID] = g.GradeLevelNumber
	}
	for _, sc := range classes {
		dir.Classes = append(dir.Classes, DirectoryClass{
			ID:     sc.SchoolClassID,
			Number: numbers[sc.SchoolClassGradeLevelID],
			Letter: sc.SchoolClassLetter,
		})
	}

	var teachers []userModel.UserModel
	if err := db.Where("user_is_teacher = ?", true).Find(&teachers).Error; err != nil {
		return nil, err
	}
	for _, t := range teachers {
		dir.Teachers = append(dir.Teachers, DirectoryTeacher{
			ID:        t.UserID,
			FirstName: t.UserFirstName,
			LastName:  t.UserLastName,
		})
	}

	var rooms []academicsModel.RoomModel
	if err := db.Find(&rooms).Error; err != nil {
		return nil, err
	}
	for _, r := range rooms {
		dir.Rooms = append(dir.Rooms, DirectoryRoom{ID: r.RoomID, Name: r.RoomName})
	}
	return dir, nil
}

// Analyze compares the parsed lessons against the directory and reports
// what is referenced by the spreadsheets but absent from the database.
// For unknown teachers it suggests candidates whose surname shares a
// prefix with the Excel surname.
func Analyze(classLessons []dto.ClassLesson, excelTeacherNames []string, dir *Directory) *dto.PreviewResponse {
	excelClasses := collectClasses(classLessons)
	excelRooms := collectRooms(classLessons)
	excelTeachers := collectTeachers(classLessons, excelTeacherNames)

	classByNorm := map[string]uuid.UUID{}
	for _, c := range dir.Classes {
		key := fmt.Sprintf("%d%s", c.Number, strings.ToLower(c.Letter))
		classByNorm[key] = c.ID
	}
	teachersByLast := map[string][]DirectoryTeacher{}
	for _, t := range dir.Teachers {
		key := strings.ToLower(t.LastName)
		teachersByLast[key] = append(teachersByLast[key], t)
	}
	roomByNorm := map[string]uuid.UUID{}
	for _, r := range dir.Rooms {
		roomByNorm[normalize(r.Name)] = r.ID
	}

	report := &dto.PreviewResponse{
		ParsedLessons:   classLessons,
		MissingClasses:  []string{},
		MissingTeachers: []dto.MissingTeacher{},
		MissingRooms:    []string{},
	}

	for _, clsName := range excelClasses {
		norm := strings.ReplaceAll(strings.ToLower(clsName), " ", "")
		if _, ok := classByNorm[norm]; !ok {
			report.MissingClasses = append(report.MissingClasses, clsName)
		}
	}

	for _, teacherName := range excelTeachers {
		excelLast := surnameOf(teacherName)
		if _, ok := teachersByLast[excelLast]; ok {
			continue
		}
		similar := []dto.DirectoryOption{}
		for dbLast, users := range teachersByLast {
			if surnamePrefixMatch(excelLast, dbLast) {
				for _, u := range users {
					similar = append(similar, dto.DirectoryOption{
						ID:   u.ID,
						Name: u.LastName + " " + u.FirstName,
					})
				}
			}
		}
		sort.Slice(similar, func(i, j int) bool { return similar[i].Name < similar[j].Name })
		report.MissingTeachers = append(report.MissingTeachers, dto.MissingTeacher{
			Name:    teacherName,
			Similar: similar,
		})
	}

	for _, roomName := range excelRooms {
		if _, ok := roomByNorm[normalize(roomName)]; !ok {
			report.MissingRooms = append(report.MissingRooms, roomName)
		}
	}

	report.DBClasses = make([]dto.DirectoryOption, 0, len(dir.Classes))
	for _, c := range dir.Classes {
		report.DBClasses = append(report.DBClasses, dto.DirectoryOption{
			ID:   c.ID,
			Name: fmt.Sprintf("%d-%s", c.Number, c.Letter),
		})
	}
	report.DBTeachers = make([]dto.DirectoryOption, 0, len(dir.Teachers))
	for _, t := range dir.Teachers {
		report.DBTeachers = append(report.DBTeachers, dto.DirectoryOption{
			ID:   t.ID,
			Name: t.LastName + " " + t.FirstName,
		})
	}
	report.DBRooms = make([]dto.DirectoryOption, 0, len(dir.Rooms))
	for _, r := range dir.Rooms {
		report.DBRooms = append(report.DBRooms, dto.DirectoryOption{ID: r.ID, Name: r.Name})
	}

	report.Stats.TotalLessons = len(classLessons)
	for _, l := range classLessons {
		if l.TeacherName != "" || l.Teacher2Name != "" {
			report.Stats.WithTeacher++
		}
	}
	return report
}

func collectClasses(lessons []dto.ClassLesson) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, l := range lessons {
		if !seen[l.ClassName] {
			seen[l.ClassName] = true
			out = append(out, l.ClassName)
		}
	}
	sort.Strings(out)
	return out
}

// collectRooms expands comma-separated room cells into fragments.
func collectRooms(lessons []dto.ClassLesson) []string {
	seen := map[string]bool{}
	out := []string{}
	add := func(raw string) {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part != "" && !seen[part] {
				seen[part] = true
				out = append(out, part)
			}
		}
	}
	for _, l := range lessons {
		if l.RoomName != "" {
			add(l.RoomName)
		}
		if l.Room2Name != "" {
			add(l.Room2Name)
		}
	}
	sort.Strings(out)
	return out
}

func collectTeachers(lessons []dto.ClassLesson, headerNames []string) []string {
	seen := map[string]bool{}
	out := []string{}
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	for _, name := range headerNames {
		add(name)
	}
	for _, l := range lessons {
		add(l.TeacherName)
		add(l.Teacher2Name)
	}
	sort.Strings(out)
	return out
}

// surnameOf takes the first word of "Фамилия И.О." style names.
func surnameOf(teacherName string) string {
	parts := strings.Fields(teacherName)
	if len(parts) == 0 {
		return ""
	}
	return strings.ToLower(parts[0])
}

// surnamePrefixMatch compares the first min(len, len, 4) runes; shorter
// than 2 never matches.
func surnamePrefixMatch(a, b string) bool {
	ra, rb := []rune(a), []rune(b)
	n := len(ra)
	if len(rb) < n {
		n = len(rb)
	}
	if n > 4 {
		n = 4
	}
	if n < 2 {
		return false
	}
	return string(ra[:n]) == string(rb[:n])
}
