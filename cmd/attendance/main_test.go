package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFixture(t *testing.T, path string, sheets []string, rows map[string][][]interface{}) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", sheet))
		} else {
			_, err := f.NewSheet(sheet)
			require.NoError(t, err)
		}
		for r, row := range rows[sheet] {
			axis, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(sheet, axis, &row))
		}
	}
	require.NoError(t, f.SaveAs(path))
}

func writeSources(t *testing.T, dir string) {
	writeFixture(t, filepath.Join(dir, "打卡记录_20191227103406.xlsx"), []string{"Sheet1"}, map[string][][]interface{}{
		"Sheet1": {
			{"部门名称", "人员编号", "姓名", "日期", "最早打卡时间", "最晚打卡时间"},
			{},
			{"国家工程实验室", "K01962", "王丽梅", "2019-12-04", "2019-12-04 08:20:53", "2019-12-04 18:04:51"},
		},
	})
	writeFixture(t, filepath.Join(dir, "考勤异常数据_20191227.xlsx"), []string{"Sheet1"}, map[string][][]interface{}{
		"Sheet1": {
			{"序号", "工号", "姓名", "部门", "职位", "异常类型", "开始日期", "异常时数", "异常情况说明/事由", "流程状态"},
		},
	})
	writeFixture(t, filepath.Join(dir, "考勤汇总表-请假(1).xlsx"), []string{"封面", "请假明细"}, map[string][][]interface{}{
		"封面": {{"考勤汇总表"}},
		"请假明细": {
			{"考勤汇总"},
			{"序号", "员工编号", "员工姓名", "假别", "开始日期", "结束日期", "缺勤时长", "开始时间(上午/下午)"},
		},
	})
}

// chdir switches to dir for the duration of the test, restoring the
// original working directory on cleanup (t.Chdir needs Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

func TestRunEndToEnd(t *testing.T) {
	src := t.TempDir()
	writeSources(t, src)
	chdir(t, t.TempDir())

	rootCmd.SetArgs([]string{src, "20191204"})
	require.NoError(t, rootCmd.Execute())

	out := "实验室打卡记录汇总-20191204.xlsx"
	_, err := os.Stat(out)
	require.NoError(t, err)

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()

	detail, err := f.GetRows("详情")
	require.NoError(t, err)
	// One employee, workdays 2019-12-02..04, plus the header.
	require.Len(t, detail, 4)

	// 12/02 and 12/03 have no punches at all.
	missing, err := f.GetCellValue("详情", "H2")
	require.NoError(t, err)
	assert.Equal(t, "12/02全天卡", missing)

	// 12/04 is a clean day: no late/early, no missing punch.
	late, err := f.GetCellValue("详情", "G4")
	require.NoError(t, err)
	assert.Empty(t, late)
	missing, err = f.GetCellValue("详情", "H4")
	require.NoError(t, err)
	assert.Empty(t, missing)

	summary, err := f.GetRows("汇总")
	require.NoError(t, err)
	require.Len(t, summary, 2)
	assert.Equal(t, "王丽梅", summary[1][0])
	summaryMissing, err := f.GetCellValue("汇总", "C2")
	require.NoError(t, err)
	assert.Equal(t, "12/02全天卡;12/03全天卡", summaryMissing)
}

func TestRunMissingSource(t *testing.T) {
	chdir(t, t.TempDir())
	rootCmd.SetArgs([]string{t.TempDir(), "20191204"})
	assert.Error(t, rootCmd.Execute())
}
