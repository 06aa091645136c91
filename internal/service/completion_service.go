package service

import (
	"context"

	"alcyxob/workout-tracker/internal/domain"

	log "github.com/sirupsen/logrus"
)

// CompletionResult is what the user sees after pressing "complete".
type CompletionResult struct {
	Workout       *domain.Workout `json:"workout"`
	Completion    *Completion     `json:"completion"`
	PointsAwarded int             `json:"pointsAwarded"`
	Balance       int             `json:"balance"`
}

// CompletionService credits today's session of the active workout and pays
// out points for it.
type CompletionService interface {
	Complete(ctx context.Context, ns string) (*CompletionResult, error)
}

type completionService struct {
	workouts WorkoutService
	progress ProgressService
	rewards  RewardsService
}

func NewCompletionService(workouts WorkoutService, progress ProgressService, rewards RewardsService) CompletionService {
	return &completionService{workouts: workouts, progress: progress, rewards: rewards}
}

func (s *completionService) Complete(ctx context.Context, ns string) (*CompletionResult, error) {
	workout, err := s.workouts.Current(ctx, ns)
	if err != nil {
		return nil, err
	}
	completion, err := s.progress.MarkCompleted(ctx, ns, workout.ID)
	if err != nil {
		return nil, err
	}
	result := &CompletionResult{Workout: workout, Completion: completion}

	if !completion.Credited {
		if ledger, err := s.rewards.Ledger(ctx, ns); err == nil {
			result.Balance = ledger.Balance
		}
		return result, nil
	}

	// The day is already credited at this point; a failed payout is logged
	// rather than reported as a failed completion.
	ledger, err := s.rewards.Award(ctx, ns, "Completed workout: "+workout.Title, s.rewards.PointsPerWorkout())
	if err != nil {
		log.WithError(err).WithFields(log.Fields{"ns": ns, "workout": workout.ID}).Error("could not award completion points")
		return result, nil
	}
	result.PointsAwarded = s.rewards.PointsPerWorkout()
	result.Balance = ledger.Balance
	return result, nil
}
