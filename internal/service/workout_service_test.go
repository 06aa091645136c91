package service

import (
	"context"
	"testing"
	"time"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository/kvstore"
	"alcyxob/workout-tracker/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProfile() *domain.UserProfile {
	return &domain.UserProfile{Height: 175, Weight: 75, Age: 30, Gender: domain.GenderFemale, Frequency: 3, InjuryOrComorbidity: "None"}
}

func TestGenerateWorkout_Templates(t *testing.T) {
	tests := []struct {
		modality   domain.Modality
		objective  domain.Objective
		exercises  int
		difficulty domain.Difficulty
	}{
		{domain.ModalityRunning, domain.Objective5km, 4, domain.DifficultyBeginner},
		{domain.ModalityRunning, domain.Objective10km, 5, domain.DifficultyIntermediate},
		{domain.ModalityStrength, domain.ObjectiveWeightLoss, 8, domain.DifficultyIntermediate},
		{domain.ModalityStrength, domain.ObjectiveHypertrophy, 7, domain.DifficultyIntermediate},
	}
	for _, tt := range tests {
		t.Run(string(tt.objective), func(t *testing.T) {
			w, err := GenerateWorkout(tt.modality, tt.objective, validProfile())
			require.NoError(t, err)
			assert.Len(t, w.Exercises, tt.exercises)
			assert.Equal(t, tt.difficulty, w.Difficulty)
			assert.Equal(t, tt.modality, w.Modality)
			assert.Equal(t, tt.objective, w.Objective)
			assert.NotContains(t, w.Tips, cautionTip)
			assert.Empty(t, w.ID)
		})
	}

	_, err := GenerateWorkout(domain.ModalityRunning, domain.ObjectiveHypertrophy, nil)
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestGenerateWorkout_Hypertrophy(t *testing.T) {
	p := validProfile()
	p.Frequency = 5
	p.InjuryOrComorbidity = "Yes - muscle/joint injury"
	w, err := GenerateWorkout(domain.ModalityStrength, domain.ObjectiveHypertrophy, p)
	require.NoError(t, err)
	assert.Equal(t, 4, w.Exercises[0].Sets)
	assert.Equal(t, 4, w.Exercises[1].Sets)
	assert.Equal(t, 3, w.Exercises[2].Sets)
	assert.Contains(t, w.Description, "5 sessions per week")
	assert.Contains(t, w.Tips, cautionTip)
	assert.NotEmpty(t, w.Exercises[0].VideoURL)

	w, err = GenerateWorkout(domain.ModalityStrength, domain.ObjectiveHypertrophy, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.DifficultyBeginner, w.Difficulty)
	assert.Equal(t, 3, w.Exercises[0].Sets)

	w, err = GenerateWorkout(domain.ModalityStrength, domain.ObjectiveHypertrophy, &domain.UserProfile{Age: 20})
	require.NoError(t, err)
	assert.Equal(t, domain.DifficultyBeginner, w.Difficulty)
}

func newTestWorkoutService(now time.Time) (WorkoutService, *flakyStore) {
	store := newFlakyStore()
	return NewWorkoutService(kvstore.NewWorkoutRepository(store), func() time.Time { return now }), store
}

func TestWorkoutService_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 20, 10, 0, 0, 0, time.UTC)
	svc, _ := newTestWorkoutService(now)

	_, err := svc.Current(ctx, testNS)
	assert.ErrorIs(t, err, ErrWorkoutNotFound)

	w, err := svc.Create(ctx, testNS, domain.ModalityRunning, domain.Objective5km, nil)
	require.NoError(t, err)
	id, err := uuid.Parse(w.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
	assert.Equal(t, "2026-01-20T10:00:00Z", w.CreatedAt)

	got, err := svc.Current(ctx, testNS)
	require.NoError(t, err)
	assert.Equal(t, w, got)

	// regenerating replaces wholesale
	w2, err := svc.Create(ctx, testNS, domain.ModalityStrength, domain.ObjectiveHypertrophy, validProfile())
	require.NoError(t, err)
	assert.NotEqual(t, w.ID, w2.ID)
	got, err = svc.Current(ctx, testNS)
	require.NoError(t, err)
	assert.Equal(t, w2.ID, got.ID)
	assert.Equal(t, *validProfile(), got.UserInfo)

	require.NoError(t, svc.Delete(ctx, testNS))
	_, err = svc.Current(ctx, testNS)
	assert.ErrorIs(t, err, ErrWorkoutNotFound)
}

func TestWorkoutService_DeleteWaitsForCompletionInFlight(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestWorkoutService(time.Date(2026, 1, 20, 10, 0, 0, 0, time.UTC))
	w, err := svc.Create(ctx, testNS, domain.ModalityRunning, domain.Objective5km, nil)
	require.NoError(t, err)

	// a completion holds the namespace while it writes progress
	unlock := progressLocks.Lock(testNS)
	deleted := make(chan error, 1)
	go func() {
		deleted <- svc.Delete(ctx, testNS)
	}()

	select {
	case <-deleted:
		t.Fatal("delete ran while progress was being written")
	case <-time.After(50 * time.Millisecond):
	}
	require.NoError(t, kvstore.NewProgressRepository(store).Save(ctx, testNS, domain.NewProgress(w.ID)))
	unlock()

	require.NoError(t, <-deleted)
	_, err = store.Get(ctx, kvstore.ProgressKey(testNS))
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.Zero(t, progressLocks.size())
}

func TestWorkoutService_Validation(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestWorkoutService(time.Now())

	_, err := svc.Create(ctx, testNS, domain.ModalityStrength, domain.ObjectiveHypertrophy, nil)
	assert.ErrorIs(t, err, ErrQuestionnaireRequired)

	bad := validProfile()
	bad.Age = 5
	_, err = svc.Preview(domain.ModalityStrength, domain.ObjectiveWeightLoss, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidProfile)

	_, err = svc.Create(ctx, testNS, domain.ModalityStrength, domain.Objective10km, nil)
	assert.ErrorIs(t, err, ErrInvalidSelection)
	assert.Zero(t, store.Len())

	store.fail(false, true)
	_, err = svc.Create(ctx, testNS, domain.ModalityRunning, domain.Objective10km, nil)
	assert.ErrorIs(t, err, errStoreDown)
}

func TestWorkoutService_Options(t *testing.T) {
	svc, _ := newTestWorkoutService(time.Now())
	opts := svc.Options()
	require.Len(t, opts, 4)
	for _, o := range opts {
		assert.True(t, domain.ValidPair(o.Modality, o.Objective))
		assert.Equal(t, o.Objective == domain.ObjectiveHypertrophy, o.RequiresQuestionnaire)
	}
	opts[0].Title = "changed"
	assert.NotEqual(t, "changed", svc.Options()[0].Title)
}
