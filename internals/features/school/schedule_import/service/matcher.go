// file: internals/features/school/schedule_import/service/matcher.go
package service

import (
	"strings"

	dto "shkola_backend/internals/features/school/schedule_import/dto"
)

type slotKey struct {
	weekday int
	period  int
	room    string
}

// MatchTeachers fills TeacherName (and Teacher2Name for group lessons)
// in classLessons by matching on (weekday, period, room). A room cell
// may list several rooms separated by commas; each fragment is indexed
// separately and the first teacher indexed for a slot wins.
func MatchTeachers(classLessons []dto.ClassLesson, teacherLessons []dto.TeacherLesson) {
	index := map[slotKey]string{}
	for _, tl := range teacherLessons {
		if tl.RoomName == "" {
			continue
		}
		for _, part := range strings.Split(tl.RoomName, ",") {
			key := slotKey{tl.Weekday, tl.Period, normalize(part)}
			if _, ok := index[key]; !ok {
				index[key] = tl.TeacherName
			}
		}
	}

	for i := range classLessons {
		lesson := &classLessons[i]
		if lesson.RoomName != "" {
			for _, part := range strings.Split(lesson.RoomName, ",") {
				key := slotKey{lesson.Weekday, lesson.Period, normalize(part)}
				if name, ok := index[key]; ok {
					lesson.TeacherName = name
					break
				}
			}
		}
		if lesson.Room2Name != "" {
			key := slotKey{lesson.Weekday, lesson.Period, normalize(lesson.Room2Name)}
			if name, ok := index[key]; ok {
				lesson.Teacher2Name = name
			}
		}
	}
}
