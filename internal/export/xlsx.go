package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/guroosh/ledger/internal/ledger"
)

// WriteWorkbook renders a report as an XLSX workbook with one sheet per
// report section and saves it at path.
func WriteWorkbook(report ledger.Report, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSummarySheet(f, report); err != nil {
		return err
	}
	if err := writeGoalsSheet(f, report); err != nil {
		return err
	}
	if err := writeAssetsSheet(f, report); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, report ledger.Report) error {
	const name = "Summary"
	if err := f.SetSheetName("Sheet1", name); err != nil {
		return fmt.Errorf("renaming summary sheet: %w", err)
	}

	rows := [][]any{
		{"Generated", report.GeneratedAt.UTC().Format("2006-01-02"), "", "Currency", report.Currency},
		{},
		{"Category", "Spent", "Budget", "Progress %", "Status"},
	}
	for _, s := range report.Summaries {
		limit := any("")
		if s.HasBudget {
			limit = toFloat(s.Limit)
		}
		status := s.StatusLabel
		if status == "" {
			status = string(s.Status)
		}
		rows = append(rows, []any{
			s.Category.Name, toFloat(s.Spent), limit, toFloat(s.Progress), status,
		})
	}
	rows = append(rows,
		[]any{},
		[]any{"Total spent", toFloat(report.Totals.Spent)},
		[]any{"Total budget", toFloat(report.Totals.Budget)},
		[]any{"Budget coverage %", toFloat(report.Coverage)},
	)

	return writeRows(f, name, rows)
}

func writeGoalsSheet(f *excelize.File, report ledger.Report) error {
	const name = "Goals"
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("creating goals sheet: %w", err)
	}

	rows := [][]any{
		{"Goal", "Target", "Saved", "Progress %", "Remaining"},
	}
	for _, g := range report.Goals {
		rows = append(rows, []any{
			g.Name, toFloat(g.TargetAmount), toFloat(g.SavedAmount),
			toFloat(g.Progress), toFloat(g.Remaining),
		})
	}
	rows = append(rows, []any{}, []any{"Average completion %", toFloat(report.AverageGoalPercent)})

	return writeRows(f, name, rows)
}

func writeAssetsSheet(f *excelize.File, report ledger.Report) error {
	const name = "Assets"
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("creating assets sheet: %w", err)
	}

	rows := [][]any{
		{"Asset", "Category", "Current Value", "Purchase Value", "Gain", "Gain %"},
	}
	for _, a := range report.Assets {
		rows = append(rows, []any{
			a.Name, string(a.Category),
			toFloat(a.Delta.Current), toFloat(a.Delta.Purchase),
			toFloat(a.Delta.Diff), toFloat(a.Delta.Pct),
		})
	}

	rows = append(rows, []any{}, []any{"Distribution", "Value"})
	for _, slice := range report.Distribution.Slices {
		rows = append(rows, []any{string(slice.Category), toFloat(slice.Value)})
	}
	rows = append(rows, []any{"Total", toFloat(report.Distribution.Total)})

	return writeRows(f, name, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("computing cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
