package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Per-sheet number formats and column widths, keyed by column letter.
// Detail sheet: date column as yyyy-mm-dd, punch columns as time of day.
var (
	cellFormats = map[string]map[string]string{
		DetailSheet:  {"B": "yyyy-mm-dd", "C": "hh:mm:ss", "D": "hh:mm:ss"},
		SummarySheet: {},
	}
	columnWidths = map[string][]colWidth{
		DetailSheet:  {{"B", 13}, {"C", 13}, {"D", 13}, {"G", 12}, {"H", 25}},
		SummarySheet: {{"B", 20}, {"C", 25}},
	}
)

type colWidth struct {
	col   string
	width float64
}

// Style reopens the saved workbook and applies borders, alignment, number
// formats and column widths to every sheet. It runs after the data write so
// a failure here never costs the report itself.
func Style(filename string) error {
	f, err := excelize.OpenFile(filename)
	if err != nil {
		return fmt.Errorf("reopen %s: %w", filename, err)
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		if err := styleSheet(f, sheet); err != nil {
			return err
		}
	}
	if err := f.Save(); err != nil {
		return fmt.Errorf("save styled %s: %w", filename, err)
	}
	return nil
}

func styleSheet(f *excelize.File, sheet string) error {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("read %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil
	}
	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}

	base := excelize.Style{
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", WrapText: true},
	}
	baseID, err := f.NewStyle(&base)
	if err != nil {
		return fmt.Errorf("build base style: %w", err)
	}

	for c := 1; c <= cols; c++ {
		top, err := excelize.CoordinatesToCellName(c, 1)
		if err != nil {
			return err
		}
		bottom, err := excelize.CoordinatesToCellName(c, len(rows))
		if err != nil {
			return err
		}
		letter, _, err := excelize.SplitCellName(top)
		if err != nil {
			return err
		}

		styleID := baseID
		if format, ok := cellFormats[sheet][letter]; ok {
			styled := base
			styled.CustomNumFmt = &format
			if styleID, err = f.NewStyle(&styled); err != nil {
				return fmt.Errorf("build %s column style: %w", letter, err)
			}
		}
		if err := f.SetCellStyle(sheet, top, bottom, styleID); err != nil {
			return fmt.Errorf("style %s column %s: %w", sheet, letter, err)
		}
	}

	for _, cw := range columnWidths[sheet] {
		if err := f.SetColWidth(sheet, cw.col, cw.col, cw.width); err != nil {
			return fmt.Errorf("set %s width of %s: %w", sheet, cw.col, err)
		}
	}
	return nil
}
