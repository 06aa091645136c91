package cli

import (
	"fmt"
	"io"
	"strings"

	"alcyxob/workout-tracker/internal/domain"

	"github.com/fatih/color"
)

const boxWidth = 44

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	labelColor  = color.New(color.FgYellow, color.Bold)
	nameColor   = color.New(color.FgMagenta, color.Bold)
	okColor     = color.New(color.FgGreen, color.Bold)
)

// printBoxedHeader prints title centered in a box.
func printBoxedHeader(w io.Writer, title string) {
	border := strings.Repeat("═", boxWidth)
	headerColor.Fprintln(w, "╔"+border+"╗")
	headerColor.Fprintln(w, "║"+center(title, boxWidth)+"║")
	headerColor.Fprintln(w, "╚"+border+"╝")
}

func center(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}

func printMetric(w io.Writer, label string, value interface{}) {
	fmt.Fprintf(w, "  %s: %v\n", labelColor.Sprint(label), value)
}

func printWorkout(w io.Writer, workout *domain.Workout) {
	printBoxedHeader(w, workout.Title)
	fmt.Fprintln(w, workout.Description)
	fmt.Fprintln(w)
	printMetric(w, "ID", workout.ID)
	printMetric(w, "Duration", workout.Duration)
	printMetric(w, "Difficulty", workout.Difficulty)
	printMetric(w, "Goal", fmt.Sprintf("%s / %s", workout.Modality, workout.Objective))
	if workout.CreatedAt != "" {
		printMetric(w, "Created", workout.CreatedAt)
	}
	fmt.Fprintln(w)

	for i, ex := range workout.Exercises {
		fmt.Fprintf(w, "%2d. %s  %d x %s, rest %s\n", i+1, nameColor.Sprint(ex.Name), ex.Sets, ex.Reps, ex.Rest)
		if ex.Notes != "" {
			fmt.Fprintf(w, "    %s\n", ex.Notes)
		}
		if ex.VideoURL != "" {
			fmt.Fprintf(w, "    %s\n", ex.VideoURL)
		}
	}
	fmt.Fprintln(w)
	labelColor.Fprintln(w, "Tips:")
	for _, tip := range workout.Tips {
		fmt.Fprintf(w, "  • %s\n", tip)
	}
}

// weekBar draws one bar per completed workout.
func weekBar(n int) string {
	return strings.Repeat("█", n)
}
