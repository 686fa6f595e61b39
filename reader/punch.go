package reader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nel-office/attendance/model"
	"github.com/nel-office/attendance/utils"
)

// Punch export layout: department, employee no, name, date, first scan,
// last scan. The first two rows are the header and a subtitle row.
const (
	punchSkipRows   = 2
	punchColName    = 2
	punchColDate    = 3
	punchColOnDuty  = 4
	punchColOffDuty = 5
)

// ReadPunches loads the raw clock-in export from dir. The badge system
// exports either xlsx or csv depending on who pulled the report; both carry
// the same columns.
func ReadPunches(dir string) ([]model.PunchRecord, error) {
	path, err := FindFileByName(dir, PunchMarker)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		rows, err = readCSVRows(path)
	} else {
		rows, err = readSheetRows(path, 0)
	}
	if err != nil {
		return nil, err
	}

	records := make([]model.PunchRecord, 0, len(rows))
	for i, row := range rows {
		if i < punchSkipRows {
			continue
		}
		name := cell(row, punchColName)
		if name == "" {
			continue
		}
		date, err := utils.ParseDate(cell(row, punchColDate))
		if err != nil {
			return nil, fmt.Errorf("%s row %d date: %v: %w", filepath.Base(path), i+1, err, ErrMalformedInput)
		}
		onDuty, err := optionalTimestamp(cell(row, punchColOnDuty))
		if err != nil {
			return nil, fmt.Errorf("%s row %d first scan: %v: %w", filepath.Base(path), i+1, err, ErrMalformedInput)
		}
		offDuty, err := optionalTimestamp(cell(row, punchColOffDuty))
		if err != nil {
			return nil, fmt.Errorf("%s row %d last scan: %v: %w", filepath.Base(path), i+1, err, ErrMalformedInput)
		}
		records = append(records, model.PunchRecord{
			Name:    name,
			Date:    date,
			OnDuty:  onDuty,
			OffDuty: offDuty,
		})
	}
	return records, nil
}

// MaxPunchDate returns the latest date in the punch stream. It backs the
// end-date fallback when the CLI argument does not parse.
func MaxPunchDate(records []model.PunchRecord) (time.Time, bool) {
	var max time.Time
	for _, r := range records {
		if r.Date.After(max) {
			max = r.Date
		}
	}
	return max, !max.IsZero()
}

func optionalTimestamp(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	return utils.ParseTimestamp(s)
}

func readSheetRows(path string, sheetIdx int) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if sheetIdx >= len(sheets) {
		return nil, fmt.Errorf("workbook %s has no sheet %d: %w", path, sheetIdx+1, ErrMalformedInput)
	}
	rows, err := f.GetRows(sheets[sheetIdx])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s of %s: %w", sheets[sheetIdx], path, err)
	}
	return rows, nil
}

func readCSVRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := utils.ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %v: %w", path, err, ErrMalformedInput)
	}
	return rows, nil
}
