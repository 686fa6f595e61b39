package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nel-office/attendance/config"
	"github.com/nel-office/attendance/model"
	"github.com/nel-office/attendance/utils"
)

func punchAt(name, day, onDuty, offDuty string) model.PunchRecord {
	rec := model.PunchRecord{Name: name, Date: utils.MustParseDate(day)}
	if onDuty != "" {
		t, _ := utils.ParseTimestamp(day + " " + onDuty)
		rec.OnDuty = t
	}
	if offDuty != "" {
		t, _ := utils.ParseTimestamp(day + " " + offDuty)
		rec.OffDuty = t
	}
	return rec
}

func testLog() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func TestReconcileGridSize(t *testing.T) {
	roster := []string{"王丽梅", "张三", "李四"}
	workdays := dates("2019-12-02", "2019-12-03", "2019-12-04", "2019-12-05")

	// Sparse sources never change the grid shape.
	punches := []model.PunchRecord{punchAt("王丽梅", "2019-12-02", "08:20:53", "18:04:51")}
	exceptions := []model.ExceptionRecord{
		{Name: "张三", Date: utils.MustParseDate("2019-12-03"), Type: "事假", Duration: utils.Ptr(8.0)},
	}

	rows, err := Reconcile(roster, workdays, punches, exceptions, config.DuplicateWarn, testLog())
	require.NoError(t, err)
	require.Len(t, rows, len(roster)*len(workdays))

	// Per-employee blocks in roster order, dates ascending inside each.
	for i, row := range rows {
		assert.Equal(t, roster[i/len(workdays)], row.Name)
		assert.Equal(t, workdays[i%len(workdays)], row.Date)
	}
}

func TestReconcileJoinNulls(t *testing.T) {
	roster := []string{"王丽梅"}
	workdays := dates("2019-12-02")

	rows, err := Reconcile(roster, workdays, nil, nil, config.DuplicateWarn, testLog())
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Nil(t, row.OnDuty)
	assert.Nil(t, row.OffDuty)
	assert.Empty(t, row.Exception)
	assert.Nil(t, row.Duration)
}

func TestReconcileFlags(t *testing.T) {
	day := "2019-12-04"
	tests := []struct {
		name            string
		punch           *model.PunchRecord
		exception       *model.ExceptionRecord
		wantLateOrEarly string
		wantMissing     string
	}{
		{
			name:  "normal day",
			punch: utils.Ptr(punchAt("王丽梅", day, "08:20:53", "18:04:51")),
		},
		{
			name:            "late arrival",
			punch:           utils.Ptr(punchAt("王丽梅", day, "09:15:00", "18:30:00")),
			wantLateOrEarly: "12/04-09:15",
		},
		{
			name:            "boundary minute after nine",
			punch:           utils.Ptr(punchAt("王丽梅", day, "09:01:00", "18:00:00")),
			wantLateOrEarly: "12/04-09:01",
		},
		{
			name:  "nine sharp is on time",
			punch: utils.Ptr(punchAt("王丽梅", day, "09:00:59", "18:00:00")),
		},
		{
			name:            "early departure",
			punch:           utils.Ptr(punchAt("王丽梅", day, "08:30:00", "17:45:00")),
			wantLateOrEarly: "12/04-17:45",
		},
		{
			name:        "single morning scan",
			punch:       utils.Ptr(punchAt("王丽梅", day, "08:00:00", "08:00:00")),
			wantMissing: "12/04下班卡",
		},
		{
			name:        "single afternoon scan",
			punch:       utils.Ptr(punchAt("王丽梅", day, "18:05:00", "18:05:00")),
			wantMissing: "12/04上班卡",
		},
		{
			name:        "no punches at all",
			wantMissing: "12/04全天卡",
		},
		{
			name:      "exception suppresses both flags",
			punch:     utils.Ptr(punchAt("王丽梅", day, "10:30:00", "10:30:00")),
			exception: &model.ExceptionRecord{Name: "王丽梅", Date: utils.MustParseDate(day), Type: "培训"},
		},
		{
			name:      "exception on empty day",
			exception: &model.ExceptionRecord{Name: "王丽梅", Date: utils.MustParseDate(day), Type: "事假", Duration: utils.Ptr(8.0)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var punches []model.PunchRecord
			if tt.punch != nil {
				punches = append(punches, *tt.punch)
			}
			var exceptions []model.ExceptionRecord
			if tt.exception != nil {
				exceptions = append(exceptions, *tt.exception)
			}

			rows, err := Reconcile([]string{"王丽梅"}, dates(day), punches, exceptions, config.DuplicateWarn, testLog())
			require.NoError(t, err)
			require.Len(t, rows, 1)

			assert.Equal(t, tt.wantLateOrEarly, rows[0].LateOrEarly)
			assert.Equal(t, tt.wantMissing, rows[0].MissingPunch)
			if tt.exception != nil {
				assert.Equal(t, tt.exception.Type, rows[0].Exception)
			}
		})
	}
}

func TestReconcileDuplicateExceptionWarn(t *testing.T) {
	day := utils.MustParseDate("2019-12-04")
	exceptions := []model.ExceptionRecord{
		{Name: "王丽梅", Date: day, Type: "事假", Duration: utils.Ptr(8.0)},
		{Name: "王丽梅", Date: day, Type: "培训"},
	}

	rows, err := Reconcile([]string{"王丽梅"}, []time.Time{day}, nil, exceptions, config.DuplicateWarn, testLog())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "事假", rows[0].Exception, "first match wins")
}

func TestReconcileDuplicateExceptionReject(t *testing.T) {
	day := utils.MustParseDate("2019-12-04")
	exceptions := []model.ExceptionRecord{
		{Name: "王丽梅", Date: day, Type: "事假"},
		{Name: "王丽梅", Date: day, Type: "培训"},
	}

	_, err := Reconcile([]string{"王丽梅"}, []time.Time{day}, nil, exceptions, config.DuplicateReject, testLog())
	require.ErrorIs(t, err, ErrDuplicateException)
}

func TestRoster(t *testing.T) {
	punches := []model.PunchRecord{
		punchAt("王丽梅", "2019-12-02", "08:00:00", "18:00:00"),
		punchAt("张三", "2019-12-02", "08:00:00", "18:00:00"),
		punchAt("王丽梅", "2019-12-03", "08:00:00", "18:00:00"),
	}
	exceptions := []model.ExceptionRecord{
		{Name: "李四", Date: utils.MustParseDate("2019-12-02"), Type: "产假", Duration: utils.Ptr(8.0)},
	}

	assert.Equal(t, []string{"王丽梅", "张三"}, Roster(punches, exceptions, false))
	assert.Equal(t, []string{"王丽梅", "张三", "李四"}, Roster(punches, exceptions, true))
}
