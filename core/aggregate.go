package core

import (
	"strings"

	"github.com/nel-office/attendance/model"
	"github.com/nel-office/attendance/utils"
)

// Summarize groups the reconciled rows per employee and concatenates the
// non-empty flags: late/early entries joined with line breaks, missing-punch
// entries with semicolons. Row order is preserved, so each concatenation
// reads chronologically.
func Summarize(rows []model.ReconciledRow) []model.EmployeeSummary {
	var order []string
	seen := make(map[string]struct{})
	for _, r := range rows {
		if _, ok := seen[r.Name]; !ok {
			seen[r.Name] = struct{}{}
			order = append(order, r.Name)
		}
	}

	byName := utils.GroupBy(rows, func(r model.ReconciledRow) string { return r.Name })

	summaries := make([]model.EmployeeSummary, 0, len(order))
	for _, name := range order {
		group := byName[name]
		late := utils.Filter(group, func(r model.ReconciledRow) bool { return r.LateOrEarly != "" })
		missing := utils.Filter(group, func(r model.ReconciledRow) bool { return r.MissingPunch != "" })

		var lateParts, missingParts []string
		for _, r := range late {
			lateParts = append(lateParts, r.LateOrEarly)
		}
		for _, r := range missing {
			missingParts = append(missingParts, r.MissingPunch)
		}
		summaries = append(summaries, model.EmployeeSummary{
			Name:         name,
			LateOrEarly:  strings.Join(lateParts, "\n"),
			MissingPunch: strings.Join(missingParts, ";"),
		})
	}
	return summaries
}
