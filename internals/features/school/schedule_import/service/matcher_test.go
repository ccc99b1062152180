package service

import (
	"testing"

	dto "shkola_backend/internals/features/school/schedule_import/dto"
)

func TestMatchTeachers(t *testing.T) {
	classLessons := []dto.ClassLesson{
		{ClassName: "5А", Weekday: 1, Period: 1, SubjectName: "Математика", RoomName: "201"},
		{ClassName: "7Б", Weekday: 1, Period: 1, SubjectName: "Труды", Subject2Name: "Информатика", RoomName: "303", Room2Name: "103"},
		{ClassName: "5А", Weekday: 1, Period: 2, SubjectName: "История", RoomName: "999"},
	}
	teacherLessons := []dto.TeacherLesson{
		{TeacherName: "Иванова А.П.", Weekday: 1, Period: 1, SubjectName: "Математика", RoomName: "201"},
		{TeacherName: "Кузнецов Н.Н.", Weekday: 1, Period: 1, SubjectName: "Труды", RoomName: "303"},
		{TeacherName: "Петров В.В.", Weekday: 1, Period: 1, SubjectName: "Информатика", RoomName: "103"},
	}

	MatchTeachers(classLessons, teacherLessons)

	if got := classLessons[0].TeacherName; got != "Иванова А.П." {
		t.Errorf("lesson 0 teacher = %q, want Иванова А.П.", got)
	}
	if got := classLessons[1].TeacherName; got != "Кузнецов Н.Н." {
		t.Errorf("lesson 1 teacher = %q, want Кузнецов Н.Н.", got)
	}
	if got := classLessons[1].Teacher2Name; got != "Петров В.В." {
		t.Errorf("lesson 1 teacher2 = %q, want Петров В.В.", got)
	}
	if got := classLessons[2].TeacherName; got != "" {
		t.Errorf("lesson 2 teacher = %q, want empty (no room match)", got)
	}
}

func TestMatchTeachersFirstIndexedWins(t *testing.T) {
	classLessons := []dto.ClassLesson{
		{ClassName: "5А", Weekday: 2, Period: 3, SubjectName: "Химия", RoomName: "202"},
	}
	teacherLessons := []dto.TeacherLesson{
		{TeacherName: "Первая У.У.", Weekday: 2, Period: 3, SubjectName: "Химия", RoomName: "202"},
		{TeacherName: "Вторая У.У.", Weekday: 2, Period: 3, SubjectName: "Химия", RoomName: "202"},
	}
	MatchTeachers(classLessons, teacherLessons)
	if got := classLessons[0].TeacherName; got != "Первая У.У." {
		t.Errorf("teacher = %q, want Первая У.У. (first indexed wins)", got)
	}
}

func TestMatchTeachersCommaFragments(t *testing.T) {
	// a teacher covering two rooms in one slot is indexed under both
	classLessons := []dto.ClassLesson{
		{ClassName: "5А", Weekday: 3, Period: 1, SubjectName: "Труды", RoomName: "105"},
	}
	teacherLessons := []dto.TeacherLesson{
		{TeacherName: "Смирнов Л.Л.", Weekday: 3, Period: 1, SubjectName: "Труды", RoomName: "104, 105"},
	}
	MatchTeachers(classLessons, teacherLessons)
	if got := classLessons[0].TeacherName; got != "Смирнов Л.Л." {
		t.Errorf("teacher = %q, want Смирнов Л.Л.", got)
	}
}
