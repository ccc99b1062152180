// file: internals/features/school/academics/services/roster_import_service.go
package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	academicsModel "shkola_backend/internals/features/school/academics/model"
	userModel "shkola_backend/internals/features/users/users/model"
	userService "shkola_backend/internals/features/users/users/service"
)

// RosterImportResult is the outcome of one class roster import.
type RosterImportResult struct {
	Students []*userModel.UserModel
	Parents  []*userModel.UserModel
	Errors   []string
}

// ImportClassRoster reads a CSV or XLSX roster and creates classes,
// students and their parents. Expected columns:
// параллель, буква, фамилия_ученика, имя_ученика, email_ученика, телефон_ученика,
// фамилия_родителя1, имя_родителя1, email_родителя1, телефон_родителя1,
// фамилия_родителя2, имя_родителя2, email_родителя2, телефон_родителя2
func ImportClassRoster(db *gorm.DB, filename string, fileBytes []byte) (*RosterImportResult, error) {
	rows, err := parseImportFile(filename, fileBytes)
	if err != nil {
		return nil, err
	}

	result := &RosterImportResult{Errors: []string{}}
	for i, row := range rows {
		line := i + 2 // 1-based, after the header row
		gradeNum, _ := strconv.Atoi(strings.TrimSpace(row["параллель"]))
		letter := strings.ToUpper(strings.TrimSpace(row["буква"]))
		studentLast := strings.TrimSpace(row["фамилия_ученика"])
		studentFirst := strings.TrimSpace(row["имя_ученика"])

		if gradeNum == 0 || letter == "" || studentLast == "" || studentFirst == "" {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Строка %d: параллель, буква, фамилия и имя ученика обязательны", line))
			continue
		}

		if err := db.Transaction(func(tx *gorm.DB) error {
			classID, err := getOrCreateClass(tx, gradeNum, letter)
			if err != nil {
				return err
			}

			studentUser, err := userService.CreateUserWithTempPassword(
				tx, studentFirst, studentLast, []string{"student"},
				strings.TrimSpace(row["email_ученика"]),
				strings.TrimSpace(row["телефон_ученика"]),
			)
			if err != nil {
				return err
			}
			profile := userModel.StudentProfileModel{
				StudentProfileUserID:  studentUser.UserID,
				StudentProfileClassID: classID,
			}
			if err := tx.Create(&profile).Error; err != nil {
				return err
			}
			result.Students = append(result.Students, studentUser)

			for _, suffix := range []string{"1", "2"} {
				pLast := strings.TrimSpace(row["фамилия_родителя"+suffix])
				pFirst := strings.TrimSpace(row["имя_родителя"+suffix])
				if pLast == "" || pFirst == "" {
					continue
				}
				parentUser, err := userService.CreateUserWithTempPassword(
					tx, pFirst, pLast, []string{"parent"},
					strings.TrimSpace(row["email_родителя"+suffix]),
					strings.TrimSpace(row["телефон_родителя"+suffix]),
				)
				if err != nil {
					return err
				}
				parentProfile := userModel.ParentProfileModel{ParentProfileUserID: parentUser.UserID}
				if err := tx.Create(&parentProfile).Error; err != nil {
					return err
				}
				link := userModel.ParentChildModel{
					ParentChildParentID:  parentUser.UserID,
					ParentChildStudentID: studentUser.UserID,
				}
				if err := tx.Create(&link).Error; err != nil {
					return err
				}
				result.Parents = append(result.Parents, parentUser)
			}
			return nil
		}); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Строка %d: %v", line, err))
		}
	}
	return result, nil
}

func getOrCreateClass(tx *gorm.DB, gradeNum int, letter string) (classID uuid.UUID, err error) {
	var grade academicsModel.GradeLevelModel
	err = tx.Where("grade_level_number = ?", gradeNum).First(&grade).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		grade = academicsModel.GradeLevelModel{GradeLevelNumber: gradeNum}
		err = tx.Create(&grade).Error
	}
	if err != nil {
		return
	}

	var sc academicsModel.SchoolClassModel
	err = tx.Where("school_class_grade_level_id = ? AND school_class_letter = ?",
		grade.GradeLevelID, letter).First(&sc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		sc = academicsModel.SchoolClassModel{
			SchoolClassGradeLevelID: grade.GradeLevelID,
			SchoolClassLetter:       letter,
		}
		err = tx.Create(&sc).Error
	}
	if err != nil {
		return
	}
	return sc.SchoolClassID, nil
}

/* ===== File parsing ===== */

// parseImportFile turns a CSV (`;`-separated) or XLSX file into rows keyed
// by the lower-cased header names.
func parseImportFile(filename string, fileBytes []byte) ([]map[string]string, error) {
	name := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(name, ".csv"):
		return parseCSV(fileBytes)
	case strings.HasSuffix(name, ".xlsx"):
		return parseXLSX(fileBytes)
	default:
		return nil, fmt.Errorf("Поддерживаются только CSV и XLSX файлы")
	}
}

func parseCSV(fileBytes []byte) ([]map[string]string, error) {
	// strip UTF-8 BOM written by Excel
	fileBytes = bytes.TrimPrefix(fileBytes, []byte{0xEF, 0xBB, 0xBF})

	reader := csv.NewReader(bytes.NewReader(fileBytes))
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать CSV: %w", err)
	}
	return rowsFromRecords(records), nil
}

func parseXLSX(fileBytes []byte) ([]map[string]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(fileBytes))
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать XLSX: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("в файле нет листов")
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	return rowsFromRecords(records), nil
}

func rowsFromRecords(records [][]string) []map[string]string {
	if len(records) == 0 {
		return nil
	}
	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	out := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		empty := true
		for _, cell := range record {
			if strings.TrimSpace(cell) != "" {
				empty = false
				break
			}
		}
		if empty {
			continue
		}
		row := map[string]string{}
		for i, h := range headers {
			if i < len(record) {
				row[h] = strings.TrimSpace(record[i])
			} else {
				row[h] = ""
			}
		}
		out = append(out, row)
	}
	return out
}
