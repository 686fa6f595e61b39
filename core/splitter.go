package core

import (
	"math"
	"time"

	"github.com/nel-office/attendance/model"
)

// HoursPerWorkday is the duration one workday absorbs before an exception
// record spills onto the next one.
const HoursPerWorkday = 8.0

type exceptionKey struct {
	name     string
	date     string
	typ      string
	hasDur   bool
	duration float64
}

// ExpandExceptions rewrites every record whose duration exceeds one workday
// into ceil(d/8) records: the original keeps its date and duration, the
// continuation days land on the following weekdays with no duration figure.
// Exact duplicates are dropped afterwards, so running the expansion again on
// its own output changes nothing.
func ExpandExceptions(records []model.ExceptionRecord) []model.ExceptionRecord {
	out := make([]model.ExceptionRecord, 0, len(records))
	for _, r := range records {
		out = append(out, r)
		if r.Duration == nil || *r.Duration <= HoursPerWorkday {
			continue
		}
		extra := int(math.Ceil(*r.Duration/HoursPerWorkday)) - 1
		for i := 1; i <= extra; i++ {
			out = append(out, model.ExceptionRecord{
				Name: r.Name,
				Date: NextWorkday(r.Date, i),
				Type: r.Type,
			})
		}
	}
	return dedupe(out)
}

func dedupe(records []model.ExceptionRecord) []model.ExceptionRecord {
	seen := make(map[exceptionKey]struct{}, len(records))
	out := records[:0]
	for _, r := range records {
		key := exceptionKey{
			name: r.Name,
			date: r.Date.Format(time.DateOnly),
			typ:  r.Type,
		}
		if r.Duration != nil {
			key.hasDur = true
			key.duration = *r.Duration
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}
