package reader

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/nel-office/attendance/model"
	"github.com/nel-office/attendance/utils"
)

// Anomaly export columns, selected by header name. HR reorders this report
// between months, so positions cannot be trusted.
const (
	anomalyHeaderName = "姓名"
	anomalyHeaderDate = "开始日期"
	anomalyHeaderType = "异常类型"
	anomalyHeaderDur  = "异常时数"
)

// ReadAnomalies loads the HR-reported anomaly export from dir.
func ReadAnomalies(dir string) ([]model.ExceptionRecord, error) {
	path, err := FindFileByName(dir, AnomalyMarker)
	if err != nil {
		return nil, err
	}
	rows, err := readSheetRows(path, 0)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	cols := map[string]int{}
	for idx := range rows[0] {
		cols[cell(rows[0], idx)] = idx
	}
	for _, required := range []string{anomalyHeaderName, anomalyHeaderDate, anomalyHeaderType, anomalyHeaderDur} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%s missing column %q: %w", filepath.Base(path), required, ErrMalformedInput)
		}
	}

	records := make([]model.ExceptionRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		name := cell(row, cols[anomalyHeaderName])
		if name == "" {
			continue
		}
		date, err := utils.ParseDate(cell(row, cols[anomalyHeaderDate]))
		if err != nil {
			return nil, fmt.Errorf("%s row %d date: %v: %w", filepath.Base(path), i+2, err, ErrMalformedInput)
		}
		rec := model.ExceptionRecord{
			Name: name,
			Date: date,
			Type: cell(row, cols[anomalyHeaderType]),
		}
		if s := cell(row, cols[anomalyHeaderDur]); s != "" {
			hours, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("%s row %d duration %q: %w", filepath.Base(path), i+2, s, ErrMalformedInput)
			}
			rec.Duration = utils.Ptr(hours)
		}
		records = append(records, rec)
	}
	return records, nil
}
