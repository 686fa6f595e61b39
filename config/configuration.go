package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// FileName is looked up inside the source directory. The file is optional;
// a missing file means the built-in defaults apply unchanged.
const FileName = "attendance.yaml"

const dateLayout = "2006-01-02"

// DuplicatePolicy decides what happens when more than one exception record
// matches a single (name, date) grid key.
type DuplicatePolicy string

const (
	// DuplicateWarn keeps the first match and logs every collision.
	DuplicateWarn DuplicatePolicy = "warn"
	// DuplicateReject aborts the run on the first collision.
	DuplicateReject DuplicatePolicy = "reject"
)

// Configuration carries everything that varies between reporting periods:
// the holiday calendar, the make-up workdays, the leave-code table and the
// two behaviour switches. One instance is built per run and passed down;
// nothing here is process-global.
type Configuration struct {
	Holidays      []string          `yaml:"holidays" validate:"dive,datetime=2006-01-02"`
	ExtraWorkdays []string          `yaml:"extra_workdays" validate:"dive,datetime=2006-01-02"`
	LeaveTypes    map[string]string `yaml:"leave_types" validate:"required,dive,required"`

	// RosterFromAllSources widens the roster to names seen in any source.
	// Default false: only employees present in the punch log get grid rows.
	RosterFromAllSources bool `yaml:"roster_from_all_sources"`

	DuplicatePolicy DuplicatePolicy `yaml:"duplicate_policy" validate:"oneof=warn reject"`

	holidaySet map[string]struct{}
	workdaySet map[string]struct{}
}

// ErrUnknownLeaveCode reports a leave-type code absent from LeaveTypes.
var ErrUnknownLeaveCode = errors.New("unknown leave code")

// Default returns the built-in configuration: the 2020 mainland holiday
// calendar with its make-up weekend workdays, and the HR leave-code table.
func Default() *Configuration {
	cfg := &Configuration{
		Holidays: []string{
			"2020-01-01",
			"2020-01-24", "2020-01-27", "2020-01-28", "2020-01-29", "2020-01-30", "2020-01-31",
			"2020-04-06",
			"2020-05-01", "2020-05-04", "2020-05-05",
			"2020-06-25", "2020-06-26",
			"2020-10-01", "2020-10-02", "2020-10-05", "2020-10-06", "2020-10-07", "2020-10-08",
		},
		ExtraWorkdays: []string{
			"2020-01-19", "2020-02-01",
			"2020-04-26", "2020-05-09",
			"2020-06-28",
			"2020-09-27", "2020-10-10",
		},
		LeaveTypes: map[string]string{
			"9700": "事假",
			"9701": "病假",
			"9702": "年假",
			"9703": "调休",
			"9704": "婚假",
			"9705": "产假",
			"9706": "陪产假",
			"9707": "丧假",
		},
		DuplicatePolicy: DuplicateWarn,
	}
	cfg.index()
	return cfg
}

// Load reads FileName from dir if it exists and merges it over the defaults.
func Load(dir string) (*Configuration, error) {
	cfg := Default()

	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read configuration %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration %s: %w", path, err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate configuration %s: %w", path, err)
	}
	cfg.index()
	return cfg, nil
}

func (c *Configuration) index() {
	c.holidaySet = make(map[string]struct{}, len(c.Holidays))
	for _, d := range c.Holidays {
		c.holidaySet[d] = struct{}{}
	}
	c.workdaySet = make(map[string]struct{}, len(c.ExtraWorkdays))
	for _, d := range c.ExtraWorkdays {
		c.workdaySet[d] = struct{}{}
	}
}

// IsHoliday reports whether the date is configured as a holiday.
func (c *Configuration) IsHoliday(day time.Time) bool {
	_, ok := c.holidaySet[day.Format(dateLayout)]
	return ok
}

// IsExtraWorkday reports whether the date is whitelisted as a workday even
// though it falls on a weekend or a holiday.
func (c *Configuration) IsExtraWorkday(day time.Time) bool {
	_, ok := c.workdaySet[day.Format(dateLayout)]
	return ok
}

// LeaveType resolves a numeric leave code to its label.
func (c *Configuration) LeaveType(code string) (string, error) {
	label, ok := c.LeaveTypes[code]
	if !ok {
		return "", fmt.Errorf("leave code %q: %w", code, ErrUnknownLeaveCode)
	}
	return label, nil
}
