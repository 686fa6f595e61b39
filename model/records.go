package model

import "time"

// PunchRecord holds the earliest and latest badge scans for one employee on
// one date. A nil OnDuty/OffDuty means the export carried no time in that
// column; the absence of a PunchRecord for a (name, date) pair means the
// punch source had no row at all for that day.
type PunchRecord struct {
	Name    string
	Date    time.Time
	OnDuty  *time.Time
	OffDuty *time.Time
}

// ExceptionRecord is an HR anomaly or a leave entry after normalisation.
// Both sources reduce to the same shape and are unioned into one stream.
// Duration is in hours; it is nil on the continuation days produced by
// splitting a multi-day record.
type ExceptionRecord struct {
	Name     string
	Date     time.Time
	Type     string
	Duration *float64
}

// ReconciledRow is one cell of the employee x workday grid after the punch
// and exception joins and flag derivation. Exception, LateOrEarly and
// MissingPunch use the empty string for "none".
type ReconciledRow struct {
	Name         string
	Date         time.Time
	OnDuty       *time.Time
	OffDuty      *time.Time
	Exception    string
	Duration     *float64
	LateOrEarly  string
	MissingPunch string
}

// EmployeeSummary is the per-employee rollup for the report's summary sheet.
type EmployeeSummary struct {
	Name         string
	LateOrEarly  string
	MissingPunch string
}
