package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/export"
	"alcyxob/workout-tracker/internal/service"

	"github.com/spf13/cobra"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		modality, objective, gender, injury string
		height, weight                     float64
		age, frequency                     int
		questionnaire, dryRun              bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a workout and make it the active one",
		Example: `  fitctl generate --modality running --objective 5km
  fitctl generate --questionnaire`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				sel     *service.Selection
				profile *domain.UserProfile
				err     error
			)
			if questionnaire {
				sel, err = askQuestions(cmd.InOrStdin(), cmd.OutOrStdout())
				if err != nil {
					return err
				}
				profile = &sel.Profile
			} else {
				if modality == "" || objective == "" {
					return fmt.Errorf("--modality and --objective are required unless --questionnaire is set")
				}
				sel = &service.Selection{Modality: domain.Modality(modality), Objective: domain.Objective(objective)}
				f := cmd.Flags()
				if f.Changed("height") || f.Changed("weight") || f.Changed("age") {
					profile = &domain.UserProfile{
						Height:              height,
						Weight:              weight,
						Age:                 age,
						Gender:              domain.Gender(strings.ToLower(gender)),
						Frequency:           frequency,
						InjuryOrComorbidity: injury,
					}
				}
			}

			if err := a.open(cmd.Context(), cmd.ErrOrStderr()); err != nil {
				return err
			}
			var workout *domain.Workout
			if dryRun {
				workout, err = a.workouts.Preview(sel.Modality, sel.Objective, profile)
			} else {
				workout, err = a.workouts.Create(cmd.Context(), a.ns(), sel.Modality, sel.Objective, profile)
			}
			if err != nil {
				return err
			}
			printWorkout(cmd.OutOrStdout(), workout)
			if !dryRun {
				fmt.Fprintln(cmd.OutOrStdout())
				okColor.Fprintln(cmd.OutOrStdout(), "Workout saved. Progress starts fresh.")
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&modality, "modality", "", "running or strength")
	f.StringVar(&objective, "objective", "", "5km, 10km, weight-loss or hypertrophy")
	f.Float64Var(&height, "height", 0, "height in cm")
	f.Float64Var(&weight, "weight", 0, "weight in kg")
	f.IntVar(&age, "age", 0, "age in years")
	f.StringVar(&gender, "gender", string(domain.GenderOther), "male, female or other")
	f.IntVar(&frequency, "frequency", 3, "training sessions per week")
	f.StringVar(&injury, "injury", "None", "injury or comorbidity, if any")
	f.BoolVarP(&questionnaire, "questionnaire", "q", false, "answer the questionnaire interactively")
	f.BoolVar(&dryRun, "dry-run", false, "print the workout without saving it")
	return cmd
}

// askQuestions walks the questionnaire, reading one option number per line.
func askQuestions(in io.Reader, out io.Writer) (*service.Selection, error) {
	scanner := bufio.NewScanner(in)
	answers := service.Answers{}
	for _, q := range service.Questions() {
		labelColor.Fprintln(out, q.Text)
		for i, opt := range q.Options {
			fmt.Fprintf(out, "  %d) %s\n", i+1, opt)
		}
		for {
			fmt.Fprint(out, "> ")
			if !scanner.Scan() {
				if err := scanner.Err(); err != nil {
					return nil, err
				}
				return nil, fmt.Errorf("%w: %s", service.ErrMissingAnswer, q.Field)
			}
			n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
			if err == nil && n >= 1 && n <= len(q.Options) {
				answers[q.Field] = q.Options[n-1]
				break
			}
			fmt.Fprintf(out, "Please pick a number between 1 and %d.\n", len(q.Options))
		}
	}
	return service.ParseAnswers(answers)
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the active workout",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.open(cmd.Context(), cmd.ErrOrStderr()); err != nil {
				return err
			}
			workout, err := a.workouts.Current(cmd.Context(), a.ns())
			if err != nil {
				return err
			}
			printWorkout(cmd.OutOrStdout(), workout)
			return nil
		},
	}
}

func newCompleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "complete",
		Short: "Mark today's session of the active workout as done",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.open(cmd.Context(), cmd.ErrOrStderr()); err != nil {
				return err
			}
			res, err := a.completion.Complete(cmd.Context(), a.ns())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if res.Completion.Credited {
				okColor.Fprintf(out, "Nice work! %s credited (%s).\n", res.Completion.Day, res.Completion.Week)
				printMetric(out, "Points earned", res.PointsAwarded)
			} else {
				fmt.Fprintf(out, "Already completed today (%s).\n", res.Completion.Day)
			}
			printMetric(out, "Total completions", res.Completion.Progress.TotalCompletions())
			printMetric(out, "Points balance", res.Balance)
			return nil
		},
	}
}

func newStatusCmd(a *app) *cobra.Command {
	var recent, weeks int
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show progress of the active workout",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.open(cmd.Context(), cmd.ErrOrStderr()); err != nil {
				return err
			}
			workout, err := a.workouts.Current(cmd.Context(), a.ns())
			if err != nil {
				return err
			}
			s, err := a.progress.Summary(cmd.Context(), a.ns(), workout.ID, recent, weeks)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printBoxedHeader(out, "STATUS")
			printMetric(out, "Workout", workout.Title)
			printMetric(out, "Total completions", s.TotalCompletions)
			printMetric(out, "This week ("+s.Week+")", s.ThisWeek)
			printMetric(out, "Completed today", s.CompletedToday)
			printMetric(out, "Streak", fmt.Sprintf("%d days", s.Streak))
			fmt.Fprintln(out)

			labelColor.Fprintln(out, "Recent sessions:")
			for _, day := range s.Recent {
				fmt.Fprintf(out, "  • %s\n", day)
			}
			labelColor.Fprintln(out, "Weekly:")
			for _, w := range s.Weeks {
				fmt.Fprintf(out, "  %s %s %d\n", w.Week, weekBar(w.CompletedWorkouts), w.CompletedWorkouts)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&recent, "recent", 7, "number of recent days to list")
	cmd.Flags().IntVar(&weeks, "weeks", 8, "number of weeks to chart")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export progress of the active workout to an xlsx workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.open(cmd.Context(), cmd.ErrOrStderr()); err != nil {
				return err
			}
			workout, err := a.workouts.Current(cmd.Context(), a.ns())
			if err != nil {
				return err
			}
			progress, err := a.progress.GetProgress(cmd.Context(), a.ns(), workout.ID)
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := export.ProgressWorkbook(f, workout, progress); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			okColor.Fprintf(cmd.OutOrStdout(), "Progress written to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "progress.xlsx", "output file")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Delete the active workout and its progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.open(cmd.Context(), cmd.ErrOrStderr()); err != nil {
				return err
			}
			if err := a.workouts.Delete(cmd.Context(), a.ns()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Workout deleted.")
			return nil
		},
	}
}

func newQuestionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "questions",
		Short: "List the workout questionnaire",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for i, q := range service.Questions() {
				fmt.Fprintf(out, "%d. %s [%s]\n", i+1, labelColor.Sprint(q.Text), q.Field)
				for _, opt := range q.Options {
					fmt.Fprintf(out, "   - %s\n", opt)
				}
			}
			return nil
		},
	}
}

func newPointsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "points",
		Short: "Show the points balance and history",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.open(cmd.Context(), cmd.ErrOrStderr()); err != nil {
				return err
			}
			ledger, err := a.rewards.Ledger(cmd.Context(), a.ns())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printMetric(out, "Balance", ledger.Balance)
			printMetric(out, "Workouts rewarded", ledger.TotalActivities())
			for _, act := range ledger.Activities {
				fmt.Fprintf(out, "  %s  %+5d  %s\n", act.Date.Format(domain.DayLayout), act.Points, act.Name)
			}
			return nil
		},
	}
}
