package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nel-office/attendance/config"
	"github.com/nel-office/attendance/core"
	"github.com/nel-office/attendance/reader"
	"github.com/nel-office/attendance/report"
)

const endDateLayout = "20060102"

var rootCmd = &cobra.Command{
	Use:   "attendance <dir> <enddate>",
	Short: "Reconcile the monthly attendance exports into one report workbook",
	Long: `Reconcile the three monthly attendance exports found in <dir> (raw
clock-in log, HR anomaly log, leave log) into a single workbook with a
per-day detail sheet and a per-employee summary sheet.

<enddate> truncates the reporting period (format: YYYYMMDD, e.g. 20200122).
If it does not parse, the latest punch date in the clock-in log is used.`,
	Args:          cobra.ExactArgs(2),
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func run(cmd *cobra.Command, args []string) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()
	log := logger.Sugar().With("run_id", uuid.NewString())

	dir, endArg := args[0], args[1]

	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}

	punches, err := reader.ReadPunches(dir)
	if err != nil {
		return err
	}
	anomalies, err := reader.ReadAnomalies(dir)
	if err != nil {
		return err
	}
	leaves, err := reader.ReadLeaves(dir, cfg)
	if err != nil {
		return err
	}
	log.Infow("sources loaded",
		"punches", len(punches), "anomalies", len(anomalies), "leaves", len(leaves))

	exceptions := core.ExpandExceptions(append(anomalies, leaves...))

	endDate, err := time.ParseInLocation(endDateLayout, endArg, time.UTC)
	if err != nil {
		fallback, ok := reader.MaxPunchDate(punches)
		if !ok {
			return fmt.Errorf("end date %q does not parse and the punch log is empty", endArg)
		}
		log.Infow("end date does not parse, using latest punch date",
			"arg", endArg, "enddate", fallback.Format(time.DateOnly))
		endDate = fallback
	}

	workdays := core.MakeWorkdays(endDate.Year(), endDate.Month(), &endDate, cfg)
	roster := core.Roster(punches, exceptions, cfg.RosterFromAllSources)
	log.Infow("grid prepared", "employees", len(roster), "workdays", len(workdays))

	rows, err := core.Reconcile(roster, workdays, punches, exceptions, cfg.DuplicatePolicy, log)
	if err != nil {
		return err
	}
	summaries := core.Summarize(rows)

	filename := fmt.Sprintf("实验室打卡记录汇总-%s.xlsx", endArg)
	if err := report.Write(rows, summaries, filename, log); err != nil {
		return err
	}
	log.Infow("report written", "file", filename, "rows", len(rows))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
