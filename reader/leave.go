package reader

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/nel-office/attendance/config"
	"github.com/nel-office/attendance/model"
	"github.com/nel-office/attendance/utils"
)

// Leave export layout (second sheet of the workbook): seq, employee no,
// name, leave code, start date, end date, duration in days, half-day flag.
// The first two rows are headers. The end date is ignored: multi-day leave
// is reconstructed from the duration by the splitter.
const (
	leaveSheetIdx = 1
	leaveSkipRows = 2
	leaveColName  = 2
	leaveColCode  = 3
	leaveColDate  = 4
	leaveColDur   = 6
)

// ReadLeaves loads the leave export from dir. The numeric leave code is
// resolved to its label through the configured table, and the duration is
// scaled from days to hours.
func ReadLeaves(dir string, cfg *config.Configuration) ([]model.ExceptionRecord, error) {
	path, err := FindFileByName(dir, LeaveMarker)
	if err != nil {
		return nil, err
	}
	rows, err := readSheetRows(path, leaveSheetIdx)
	if err != nil {
		return nil, err
	}

	records := make([]model.ExceptionRecord, 0, len(rows))
	for i, row := range rows {
		if i < leaveSkipRows {
			continue
		}
		name := cell(row, leaveColName)
		if name == "" {
			continue
		}
		label, err := cfg.LeaveType(normalizeCode(cell(row, leaveColCode)))
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", filepath.Base(path), i+1, err)
		}
		date, err := utils.ParseDate(cell(row, leaveColDate))
		if err != nil {
			return nil, fmt.Errorf("%s row %d date: %v: %w", filepath.Base(path), i+1, err, ErrMalformedInput)
		}
		durStr := cell(row, leaveColDur)
		days, err := strconv.ParseFloat(durStr, 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d duration %q: %w", filepath.Base(path), i+1, durStr, ErrMalformedInput)
		}
		records = append(records, model.ExceptionRecord{
			Name:     name,
			Date:     date,
			Type:     label,
			Duration: utils.Ptr(days * 8),
		})
	}
	return records, nil
}

// normalizeCode strips the float rendering some exports give numeric cells,
// so "9700.0" and "9700" hit the same table entry.
func normalizeCode(s string) string {
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return s
}
