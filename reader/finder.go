package reader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Filename markers of the three monthly exports. HR hands the files over
// with a timestamp suffix, so discovery goes by substring.
const (
	PunchMarker   = "打卡记录_"
	AnomalyMarker = "考勤异常数据_"
	LeaveMarker   = "请假"
)

var (
	// ErrSourceNotFound reports that no file in the source directory
	// matches the expected marker.
	ErrSourceNotFound = errors.New("source file not found")
	// ErrMalformedInput reports a required cell that failed type coercion.
	ErrMalformedInput = errors.New("malformed input")
)

// FindFileByName returns the first regular file in dir whose name contains
// marker.
func FindFileByName(dir, marker string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read source directory %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.Contains(entry.Name(), marker) {
			return filepath.Join(dir, entry.Name()), nil
		}
	}
	return "", fmt.Errorf("no file matching %q in %s: %w", marker, dir, ErrSourceNotFound)
}

// cell returns the trimmed cell at idx, or "" when the row is too short.
// GetRows drops trailing empty cells, so short rows are normal.
func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
