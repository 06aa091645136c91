package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type runner struct {
	t     *testing.T
	db    string
	clock time.Time
}

func newRunner(t *testing.T) *runner {
	color.NoColor = true
	return &runner{
		t:     t,
		db:    filepath.Join(t.TempDir(), "fitness.db"),
		clock: time.Date(2026, 1, 20, 8, 0, 0, 0, time.Local),
	}
}

func (r *runner) run(stdin string, args ...string) (string, error) {
	r.t.Helper()
	var stdout, stderr bytes.Buffer
	args = append([]string{"--backend", "sqlite", "--db", r.db}, args...)
	err := Execute(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr,
		WithClock(func() time.Time { return r.clock }))
	return stdout.String(), err
}

func TestCLI_GenerateCompleteStatus(t *testing.T) {
	r := newRunner(t)

	out, err := r.run("", "generate", "--modality", "running", "--objective", "5km")
	require.NoError(t, err)
	assert.Contains(t, out, "5km Running Plan")
	assert.Contains(t, out, "Workout saved")

	out, err = r.run("", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Interval Running")

	out, err = r.run("", "complete")
	require.NoError(t, err)
	assert.Contains(t, out, "2026-01-20 credited (2026-W04)")
	assert.Contains(t, out, "Points earned: 50")

	out, err = r.run("", "complete")
	require.NoError(t, err)
	assert.Contains(t, out, "Already completed today")

	r.clock = r.clock.AddDate(0, 0, 1)
	_, err = r.run("", "complete")
	require.NoError(t, err)

	out, err = r.run("", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Total completions: 2")
	assert.Contains(t, out, "This week (2026-W04): 2")
	assert.Contains(t, out, "Streak: 2 days")
	assert.Contains(t, out, "2026-W04 ██ 2")

	out, err = r.run("", "points")
	require.NoError(t, err)
	assert.Contains(t, out, "Balance: 100")
}

func TestCLI_RegenerateResetsProgress(t *testing.T) {
	r := newRunner(t)
	_, err := r.run("", "generate", "--modality", "running", "--objective", "10km")
	require.NoError(t, err)
	_, err = r.run("", "complete")
	require.NoError(t, err)

	_, err = r.run("", "generate", "--modality", "strength", "--objective", "weight-loss")
	require.NoError(t, err)
	out, err := r.run("", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Total completions: 0")
}

func TestCLI_Questionnaire(t *testing.T) {
	r := newRunner(t)
	// hypertrophy, 4 times, 26-35, 71-80kg, 171-180cm, female, none, beginner
	out, err := r.run("2\n3\n2\n3\n9\n3\n2\n1\n1\n", "generate", "--questionnaire")
	require.NoError(t, err)
	assert.Contains(t, out, "Please pick a number between 1 and 5")
	assert.Contains(t, out, "Personalized Hypertrophy Plan")
	assert.Contains(t, out, "Tailored for 4 sessions per week")

	_, err = r.run("1\n", "generate", "--questionnaire")
	assert.Error(t, err)
}

func TestCLI_Errors(t *testing.T) {
	r := newRunner(t)

	_, err := r.run("", "show")
	assert.Error(t, err)
	_, err = r.run("", "complete")
	assert.Error(t, err)
	_, err = r.run("", "generate", "--modality", "running")
	assert.Error(t, err)
	_, err = r.run("", "generate", "--modality", "strength", "--objective", "hypertrophy")
	assert.Error(t, err)
}

func TestCLI_ExportAndDelete(t *testing.T) {
	r := newRunner(t)
	_, err := r.run("", "generate", "--modality", "running", "--objective", "5km")
	require.NoError(t, err)
	_, err = r.run("", "complete")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "progress.xlsx")
	out, err := r.run("", "export", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	rows, err := f.GetRows("Completions")
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.Equal(t, []string{"2026-01-20", "Tuesday", "2026-W04"}, rows[2])

	_, err = r.run("", "delete")
	require.NoError(t, err)
	_, err = r.run("", "show")
	assert.Error(t, err)
}

func TestCLI_Questions(t *testing.T) {
	r := newRunner(t)
	out, err := r.run("", "questions")
	require.NoError(t, err)
	assert.Contains(t, out, "What is your main goal? [objective]")
	assert.Contains(t, out, "   - More than 190cm")
}
