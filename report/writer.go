package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/nel-office/attendance/model"
)

// Sheet and header names match the workbook HR has been receiving for years;
// do not rename them.
const (
	DetailSheet  = "详情"
	SummarySheet = "汇总"
)

var (
	detailHeader  = []string{"姓名", "日期", "上班打卡", "下班打卡", "异常类型", "异常时数", "迟到/早退", "考勤异常（未有打卡记录）"}
	summaryHeader = []string{"姓名", "迟到/早退", "考勤异常（未有打卡记录）"}
)

// Write produces the two-sheet report workbook at filename. The data write
// must succeed; styling is applied afterwards and a styling failure only
// logs a warning, leaving the unstyled file in place.
func Write(rows []model.ReconciledRow, summaries []model.EmployeeSummary, filename string, log *zap.SugaredLogger) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", DetailSheet); err != nil {
		return fmt.Errorf("rename detail sheet: %w", err)
	}
	if err := writeDetail(f, rows); err != nil {
		return err
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}
	if err := writeSummary(f, summaries); err != nil {
		return err
	}

	if err := f.SaveAs(filename); err != nil {
		return fmt.Errorf("save report %s: %w", filename, err)
	}

	if err := Style(filename); err != nil {
		log.Warnw("report styling failed, keeping unstyled file", "file", filename, "error", err)
	}
	return nil
}

func writeDetail(f *excelize.File, rows []model.ReconciledRow) error {
	if err := f.SetSheetRow(DetailSheet, "A1", &detailHeader); err != nil {
		return fmt.Errorf("write detail header: %w", err)
	}
	for i, row := range rows {
		values := []interface{}{
			row.Name,
			row.Date,
			nil, nil,
			row.Exception,
			nil,
			row.LateOrEarly,
			row.MissingPunch,
		}
		if row.OnDuty != nil {
			values[2] = *row.OnDuty
		}
		if row.OffDuty != nil {
			values[3] = *row.OffDuty
		}
		if row.Duration != nil {
			values[5] = *row.Duration
		}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("detail row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(DetailSheet, axis, &values); err != nil {
			return fmt.Errorf("write detail row %d: %w", i+2, err)
		}
	}
	return nil
}

func writeSummary(f *excelize.File, summaries []model.EmployeeSummary) error {
	if err := f.SetSheetRow(SummarySheet, "A1", &summaryHeader); err != nil {
		return fmt.Errorf("write summary header: %w", err)
	}
	for i, s := range summaries {
		values := []interface{}{s.Name, s.LateOrEarly, s.MissingPunch}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("summary row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(SummarySheet, axis, &values); err != nil {
			return fmt.Errorf("write summary row %d: %w", i+2, err)
		}
	}
	return nil
}
