package utils

import (
	"encoding/csv"
	"io"
)

// ParseCSV reads the whole input. Punch exports pad rows unevenly, so the
// per-record field count check is disabled.
func ParseCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	return records, nil
}
