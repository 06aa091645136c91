package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var (
	ErrInvalidSelection      = errors.New("invalid modality/objective selection")
	ErrQuestionnaireRequired = errors.New("this workout requires the questionnaire")
	ErrWorkoutNotFound       = errors.New("no active workout")
)

// WorkoutOption is one entry of the workout picker.
type WorkoutOption struct {
	Modality              domain.Modality  `json:"modality"`
	Objective             domain.Objective `json:"objective"`
	Title                 string           `json:"title"`
	Description           string           `json:"description"`
	RequiresQuestionnaire bool             `json:"requiresQuestionnaire"`
}

var workoutOptions = []WorkoutOption{
	{Modality: domain.ModalityRunning, Objective: domain.Objective5km, Title: "5km Run", Description: "Beginner program to complete 5km"},
	{Modality: domain.ModalityRunning, Objective: domain.Objective10km, Title: "10km Run", Description: "Intermediate program to complete 10km"},
	{Modality: domain.ModalityStrength, Objective: domain.ObjectiveWeightLoss, Title: "Weight Loss", Description: "Circuit training to burn fat"},
	{Modality: domain.ModalityStrength, Objective: domain.ObjectiveHypertrophy, Title: "Hypertrophy", Description: "Personalized muscle gain plan", RequiresQuestionnaire: true},
}

// WorkoutService manages the single active workout of a namespace.
type WorkoutService interface {
	Options() []WorkoutOption
	// Preview generates without saving.
	Preview(modality domain.Modality, objective domain.Objective, profile *domain.UserProfile) (*domain.Workout, error)
	// Create generates and saves a workout, replacing the previous one.
	// Progress of the old workout is dropped the next time it is read.
	Create(ctx context.Context, ns string, modality domain.Modality, objective domain.Objective, profile *domain.UserProfile) (*domain.Workout, error)
	Current(ctx context.Context, ns string) (*domain.Workout, error)
	Delete(ctx context.Context, ns string) error
}

type workoutService struct {
	workoutRepo repository.WorkoutRepository
	now         func() time.Time
	locks       *keyedMutex
}

func NewWorkoutService(workoutRepo repository.WorkoutRepository, now func() time.Time) WorkoutService {
	if now == nil {
		now = time.Now
	}
	return &workoutService{workoutRepo: workoutRepo, now: now, locks: progressLocks}
}

func (s *workoutService) Options() []WorkoutOption {
	out := make([]WorkoutOption, len(workoutOptions))
	copy(out, workoutOptions)
	return out
}

func (s *workoutService) Preview(modality domain.Modality, objective domain.Objective, profile *domain.UserProfile) (*domain.Workout, error) {
	if objective == domain.ObjectiveHypertrophy && profile == nil {
		return nil, ErrQuestionnaireRequired
	}
	if profile != nil {
		if err := profile.Validate(); err != nil {
			return nil, err
		}
	}
	return GenerateWorkout(modality, objective, profile)
}

func (s *workoutService) Create(ctx context.Context, ns string, modality domain.Modality, objective domain.Objective, profile *domain.UserProfile) (*domain.Workout, error) {
	workout, err := s.Preview(modality, objective, profile)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate workout id: %w", err)
	}
	workout.ID = id.String()
	workout.CreatedAt = s.now().UTC().Format(time.RFC3339)

	if err := s.workoutRepo.Save(ctx, ns, workout); err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"ns": ns, "workout": workout.ID, "objective": objective}).Info("workout created")
	return workout, nil
}

func (s *workoutService) Current(ctx context.Context, ns string) (*domain.Workout, error) {
	workout, err := s.workoutRepo.Load(ctx, ns)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}

// Delete removes the workout and its progress under the namespace's progress
// lock, so a completion in flight cannot write the progress back afterwards.
func (s *workoutService) Delete(ctx context.Context, ns string) error {
	unlock := s.locks.Lock(ns)
	defer unlock()
	if err := s.workoutRepo.Delete(ctx, ns); err != nil {
		return err
	}
	log.WithField("ns", ns).Info("workout deleted")
	return nil
}
