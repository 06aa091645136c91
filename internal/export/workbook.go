package export

import (
	"fmt"
	"io"
	"time"

	"alcyxob/workout-tracker/internal/domain"

	"github.com/xuri/excelize/v2"
)

const (
	SheetCompletions = "Completions"
	SheetWeekly      = "Weekly"
)

// ProgressWorkbook writes the progress of workout as an xlsx workbook: one
// row per credited day and one row per week bucket.
func ProgressWorkbook(w io.Writer, workout *domain.Workout, progress *domain.Progress) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), SheetCompletions)
	if err := addSheet(f, SheetWeekly); err != nil {
		return err
	}

	title := workout.Title
	if title == "" {
		title = workout.ID
	}
	rows := [][]interface{}{
		{"Workout", title},
		{"Day", "Weekday", "Week"},
	}
	for _, day := range progress.RecentCompletions(-1) {
		weekday := ""
		if t, err := time.Parse(domain.DayLayout, day); err == nil {
			weekday = t.Weekday().String()
		}
		rows = append(rows, []interface{}{day, weekday, weekOf(day)})
	}
	if err := writeRows(f, SheetCompletions, rows); err != nil {
		return err
	}

	rows = [][]interface{}{{"Week", "Completed Workouts", "Total Minutes"}}
	for _, s := range progress.RecentWeeks(-1) {
		rows = append(rows, []interface{}{s.Week, s.CompletedWorkouts, s.TotalMinutes})
	}
	if err := writeRows(f, SheetWeekly, rows); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// weekOf labels a stored day key. Day keys carry no zone, so the label is
// computed on the civil date.
func weekOf(day string) string {
	t, err := time.Parse(domain.DayLayout, day)
	if err != nil {
		return ""
	}
	return domain.WeekLabel(t)
}

func addSheet(f *excelize.File, name string) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("add sheet %s: %w", name, err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return f.SetColWidth(sheet, "A", "C", 20)
}
