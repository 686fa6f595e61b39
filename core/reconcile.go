package core

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nel-office/attendance/config"
	"github.com/nel-office/attendance/model"
)

// ErrDuplicateException reports more than one exception record matching a
// single (name, date) grid key. Whether it aborts the run depends on the
// configured duplicate policy.
var ErrDuplicateException = errors.New("duplicate exception match")

// On-duty scans after 09:00 count as late, off-duty scans before 18:00 as
// early. A single scan before noon is read as a morning punch.
const (
	lateHour    = 9
	earlyHour   = 18
	noonHour    = 12
	flagLayout  = "01/02-15:04"
	dayLayout   = "01/02"
	fullDayMark = "全天卡"
	offDutyMark = "下班卡"
	onDutyMark  = "上班卡"
)

type gridKey struct {
	name string
	date string
}

func keyOf(name string, date time.Time) gridKey {
	return gridKey{name: name, date: date.Format(time.DateOnly)}
}

// Roster returns the distinct employee names in first-appearance order.
// By default only the punch source contributes; with fromAllSources set,
// names seen only in the exception stream are appended after it.
func Roster(punches []model.PunchRecord, exceptions []model.ExceptionRecord, fromAllSources bool) []string {
	seen := make(map[string]struct{})
	var names []string
	add := func(name string) {
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	for _, p := range punches {
		add(p.Name)
	}
	if fromAllSources {
		for _, e := range exceptions {
			add(e.Name)
		}
	}
	return names
}

// Reconcile builds the roster x workdays grid, left-joins the punch and
// exception streams onto it and derives the two anomaly flags per row.
// The grid always has len(roster)*len(workdays) rows; joins never add or
// remove any.
func Reconcile(
	roster []string,
	workdays []time.Time,
	punches []model.PunchRecord,
	exceptions []model.ExceptionRecord,
	policy config.DuplicatePolicy,
	log *zap.SugaredLogger,
) ([]model.ReconciledRow, error) {

	punchIdx := make(map[gridKey]model.PunchRecord, len(punches))
	for _, p := range punches {
		key := keyOf(p.Name, p.Date)
		if _, ok := punchIdx[key]; ok {
			continue // first row wins, the export has one row per day
		}
		punchIdx[key] = p
	}

	excIdx := make(map[gridKey]model.ExceptionRecord, len(exceptions))
	for _, e := range exceptions {
		key := keyOf(e.Name, e.Date)
		if prev, ok := excIdx[key]; ok {
			if policy == config.DuplicateReject {
				return nil, fmt.Errorf("%s on %s (%s vs %s): %w",
					e.Name, key.date, prev.Type, e.Type, ErrDuplicateException)
			}
			log.Warnw("duplicate exception match, keeping first",
				"name", e.Name, "date", key.date, "kept", prev.Type, "dropped", e.Type)
			continue
		}
		excIdx[key] = e
	}

	rows := make([]model.ReconciledRow, 0, len(roster)*len(workdays))
	for _, name := range roster {
		for _, day := range workdays {
			row := model.ReconciledRow{Name: name, Date: day}
			key := keyOf(name, day)
			if p, ok := punchIdx[key]; ok {
				row.OnDuty = p.OnDuty
				row.OffDuty = p.OffDuty
			}
			if e, ok := excIdx[key]; ok {
				row.Exception = e.Type
				row.Duration = e.Duration
			}
			row.LateOrEarly = lateOrEarly(row)
			row.MissingPunch = missingPunch(row)
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// lateOrEarly flags an on-duty scan after 09:00 or an off-duty scan before
// 18:00. An approved exception suppresses the flag, and a single-scan day
// is left to missingPunch: with one scan the system cannot tell a morning
// badge from an evening one.
func lateOrEarly(row model.ReconciledRow) string {
	if row.Exception != "" {
		return ""
	}
	if row.OnDuty == nil || row.OffDuty == nil {
		return ""
	}
	if row.OnDuty.Equal(*row.OffDuty) {
		return ""
	}
	if row.OnDuty.Hour() > lateHour || (row.OnDuty.Hour() == lateHour && row.OnDuty.Minute() > 0) {
		return row.OnDuty.Format(flagLayout)
	}
	if row.OffDuty.Hour() < earlyHour {
		return row.OffDuty.Format(flagLayout)
	}
	return ""
}

// missingPunch flags days with no scan at all, and single-scan days as
// missing either the on-duty or the off-duty punch depending on which side
// of noon the scan fell.
func missingPunch(row model.ReconciledRow) string {
	if row.Exception != "" {
		return ""
	}
	if row.OnDuty == nil || row.OffDuty == nil {
		return row.Date.Format(dayLayout) + fullDayMark
	}
	if row.OnDuty.Equal(*row.OffDuty) {
		if row.OnDuty.Hour() < noonHour {
			return row.OnDuty.Format(dayLayout) + offDutyMark
		}
		return row.OnDuty.Format(dayLayout) + onDutyMark
	}
	return ""
}
