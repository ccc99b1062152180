// file: internals/features/school/schedule_import/service/parser.go
//
// Schedule import from Excel files.
//
// Supported formats:
//   - classes file: rows = (day, period), cols = classes with (subject, [group2 subject], room)
//   - teachers file: rows = (day, period), cols = teachers with (subject, room)
//
// Teacher lessons are linked to class lessons by (weekday, period, room).
package service

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/xuri/excelize/v2"

	dto "shkola_backend/internals/features/school/schedule_import/dto"
)

// roomHeaderMark labels the room column in both spreadsheet formats.
const roomHeaderMark = "каб"

var dayMap = map[string]int{
	"понедельник": 1,
	"вторник":     2,
	"среда":       3,
	"четверг":     4,
	"пятница":     5,
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ParseClassName splits "1а" or "11б" into the grade number and the
// upper-cased letter.
func ParseClassName(raw string) (int, string, error) {
	runes := []rune(strings.TrimSpace(raw))
	num := ""
	for i, r := range runes {
		if unicode.IsDigit(r) {
			num += string(r)
			continue
		}
		n, err := strconv.Atoi(num)
		if err != nil {
			return 0, "", fmt.Errorf("не удалось разобрать название класса %q", raw)
		}
		letter := strings.ToUpper(strings.TrimSpace(string(runes[i:])))
		return n, letter, nil
	}
	n, err := strconv.Atoi(num)
	if err != nil {
		return 0, "", fmt.Errorf("не удалось разобрать название класса %q", raw)
	}
	return n, "", nil
}

// cell returns the trimmed value at index i, or "" past the row end.
// Rows from excelize have trailing empty cells stripped.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

type classColumn struct {
	name     string
	subjCol  int
	subj2Col int // -1 when the class has no group column
	roomCol  int
}

type teacherColumn struct {
	name    string
	subjCol int
	roomCol int
}

func readSheet(fileBytes []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(fileBytes))
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть файл Excel: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("в файле нет листов")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("файл пуст")
	}
	return rows, nil
}

// ParseClassesFile parses the schedule-by-classes workbook.
//
// The header is scanned for class blocks in two layouts:
//
//	pattern A, 2 columns: [class, "каб"]
//	pattern B, 3 columns: [class, <empty>, "каб"]  (group split possible)
func ParseClassesFile(fileBytes []byte) ([]dto.ClassLesson, error) {
	rows, err := readSheet(fileBytes)
	if err != nil {
		return nil, err
	}
	header := rows[0]
	width := headerWidth(rows)

	classCols := []classColumn{}
	i := 2 // col 0 is the day, col 1 the period
	for i < width {
		val := cell(header, i)
		if val == "" || normalize(val) == roomHeaderMark {
			i++
			continue
		}
		next1 := cell(header, i+1)
		next2 := cell(header, i+2)
		switch {
		case next1 != "" && normalize(next1) == roomHeaderMark:
			classCols = append(classCols, classColumn{
				name: val, subjCol: i, subj2Col: -1, roomCol: i + 1,
			})
			i += 2
		case next1 == "" && next2 != "" && normalize(next2) == roomHeaderMark:
			classCols = append(classCols, classColumn{
				name: val, subjCol: i, subj2Col: i + 1, roomCol: i + 2,
			})
			i += 3
		default:
			i++
		}
	}

	lessons := []dto.ClassLesson{}
	currentDay := 0

	for _, row := range rows[1:] {
		if day, ok := dayMap[normalize(cell(row, 0))]; ok {
			currentDay = day
		}

		periodVal := cell(row, 1)
		if periodVal == "" || currentDay == 0 {
			continue
		}
		period, err := strconv.Atoi(periodVal)
		if err != nil {
			continue
		}

		for _, cls := range classCols {
			subj := cell(row, cls.subjCol)
			if subj == "" {
				continue
			}
			subj2 := ""
			if cls.subj2Col >= 0 {
				subj2 = cell(row, cls.subj2Col)
			}
			room := cell(row, cls.roomCol)

			// same subject in both groups (modulo case and whitespace)
			// is a single lesson; the primary cell keeps its casing
			if normalize(subj2) == normalize(subj) {
				subj2 = ""
			}

			// group lessons may list both rooms: "303, 103"
			room1, room2 := room, ""
			if subj2 != "" && strings.Contains(room, ",") {
				parts := strings.SplitN(room, ",", 2)
				room1 = strings.TrimSpace(parts[0])
				room2 = strings.TrimSpace(parts[1])
			}

			lessons = append(lessons, dto.ClassLesson{
				ClassName:    cls.name,
				Weekday:      currentDay,
				Period:       period,
				SubjectName:  subj,
				Subject2Name: subj2,
				RoomName:     room1,
				Room2Name:    room2,
			})
		}
	}
	return lessons, nil
}

// ParseTeachersFile parses the schedule-by-teachers workbook. It returns
// the lessons plus every teacher name found in the header, including
// teachers whose columns are empty.
func ParseTeachersFile(fileBytes []byte) ([]dto.TeacherLesson, []string, error) {
	rows, err := readSheet(fileBytes)
	if err != nil {
		return nil, nil, err
	}
	header := rows[0]
	width := headerWidth(rows)

	teacherCols := []teacherColumn{}
	i := 2
	for i < width {
		val := cell(header, i)
		if val == "" {
			i++
			continue
		}
		next1 := cell(header, i+1)
		if next1 != "" && normalize(next1) == roomHeaderMark {
			teacherCols = append(teacherCols, teacherColumn{
				name: val, subjCol: i, roomCol: i + 1,
			})
			i += 2
		} else {
			i++
		}
	}

	names := make([]string, 0, len(teacherCols))
	for _, t := range teacherCols {
		names = append(names, t.name)
	}

	lessons := []dto.TeacherLesson{}
	currentDay := 0

	for _, row := range rows[1:] {
		if day, ok := dayMap[normalize(cell(row, 0))]; ok {
			currentDay = day
		}

		periodVal := cell(row, 1)
		if periodVal == "" || currentDay == 0 {
			continue
		}
		period, err := strconv.Atoi(periodVal)
		if err != nil {
			continue
		}

		for _, t := range teacherCols {
			subj := cell(row, t.subjCol)
			if subj == "" {
				continue
			}
			lessons = append(lessons, dto.TeacherLesson{
				TeacherName: t.name,
				Weekday:     currentDay,
				Period:      period,
				SubjectName: subj,
				RoomName:    cell(row, t.roomCol),
			})
		}
	}
	return lessons, names, nil
}

// headerWidth is the widest row in the sheet; excelize trims trailing
// empty cells per row, so the header alone can undercount.
func headerWidth(rows [][]string) int {
	w := 0
	for _, row := range rows {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}
