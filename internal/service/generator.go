package service

import (
	"fmt"

	"alcyxob/workout-tracker/internal/domain"
)

const cautionTip = "Respect your limits. See a health professional if you have an injury or comorbidity."

// Summaries of the training guidance each template is built on.
const (
	hypertrophyVolume = "For hypertrophy, 10-20 sets per muscle group per week are recommended (Schoenfeld, 2016)."
	weightLossVolume  = "High-intensity circuit training is effective for weight loss."
	run5kmVolume      = "A progressive 8-12 week program to run 5km."
	run10kmVolume     = "A progressive 12-16 week program to run 10km."
)

// GenerateWorkout builds the template workout for a modality/objective pair.
// The result has no id or creation time; profile may be nil.
func GenerateWorkout(modality domain.Modality, objective domain.Objective, profile *domain.UserProfile) (*domain.Workout, error) {
	if !domain.ValidPair(modality, objective) {
		return nil, fmt.Errorf("%w: %s/%s", ErrInvalidSelection, modality, objective)
	}

	var w *domain.Workout
	switch objective {
	case domain.Objective5km:
		w = run5km()
	case domain.Objective10km:
		w = run10km()
	case domain.ObjectiveWeightLoss:
		w = weightLossCircuit()
	default:
		w = hypertrophySplit(profile)
	}
	if profile.HasRestriction() {
		w.Tips = append(w.Tips, cautionTip)
	}
	w.Modality = modality
	w.Objective = objective
	if profile != nil {
		w.UserInfo = *profile
	}
	return w, nil
}

func run5km() *domain.Workout {
	return &domain.Workout{
		Title:       "5km Running Plan",
		Description: "Evidence-based program to reach a 5km distance. " + run5kmVolume,
		Duration:    "30-45 minutes",
		Difficulty:  domain.DifficultyBeginner,
		Exercises: []domain.Exercise{
			{Name: "Warm-up", Sets: 1, Reps: "5-10 minutes of easy walking", Rest: "No rest", Notes: "Prepare the body for exercise"},
			{Name: "Interval Running", Sets: 5, Reps: "2 minutes running / 1 minute walking", Rest: "1 minute walking", Notes: "Alternate running and walking"},
			{Name: "Continuous Running", Sets: 1, Reps: "10-15 minutes at a comfortable pace", Rest: "2 minutes walking", Notes: "Keep a steady, comfortable pace"},
			{Name: "Cool-down", Sets: 1, Reps: "5 minutes of easy walking + stretching", Rest: "No rest", Notes: "Gradual recovery"},
		},
		Tips: []string{
			"Stay hydrated during the workout",
			"Wear proper running shoes",
			"Respect your rest days",
			"Increase the distance gradually",
			"Listen to your body and adjust the intensity",
		},
	}
}

func run10km() *domain.Workout {
	return &domain.Workout{
		Title:       "10km Running Plan",
		Description: "Progressive evidence-based program to reach 10km. " + run10kmVolume,
		Duration:    "45-60 minutes",
		Difficulty:  domain.DifficultyIntermediate,
		Exercises: []domain.Exercise{
			{Name: "Warm-up", Sets: 1, Reps: "10 minutes of walking/easy jogging", Rest: "No rest"},
			{Name: "Long Run", Sets: 1, Reps: "20-30 minutes at a comfortable pace", Rest: "3 minutes walking", Notes: "Build aerobic endurance"},
			{Name: "Speed Intervals", Sets: 4, Reps: "3 minutes fast / 2 minutes recovery", Rest: "2 minutes walking", Notes: "Improve speed and VO2 max"},
			{Name: "Tempo Run", Sets: 1, Reps: "15 minutes at race pace", Rest: "3 minutes walking", Notes: "Simulate race pace"},
			{Name: "Cool-down", Sets: 1, Reps: "10 minutes walking + stretching", Rest: "No rest"},
		},
		Tips: []string{
			"Train 4-5 times per week",
			"Vary the type of session",
			"Include active rest days",
			"Monitor your heart rate",
			"Proper nutrition is essential",
		},
	}
}

func weightLossCircuit() *domain.Workout {
	return &domain.Workout{
		Title:       "Strength Training for Weight Loss",
		Description: "Evidence-based circuit workout for weight loss. " + weightLossVolume,
		Duration:    "40-50 minutes",
		Difficulty:  domain.DifficultyIntermediate,
		Exercises: []domain.Exercise{
			{Name: "Warm-up", Sets: 1, Reps: "5 minutes on treadmill/bike", Rest: "No rest"},
			{Name: "Squat", Sets: 3, Reps: "15-20 reps", Rest: "30 seconds", Notes: "Focus on full range of motion"},
			{Name: "Bench Press", Sets: 3, Reps: "12-15 reps", Rest: "30 seconds"},
			{Name: "Bent-over Row", Sets: 3, Reps: "12-15 reps", Rest: "30 seconds"},
			{Name: "Leg Press", Sets: 3, Reps: "15-20 reps", Rest: "30 seconds"},
			{Name: "Dumbbell Shoulder Press", Sets: 3, Reps: "12-15 reps", Rest: "30 seconds"},
			{Name: "Crunches", Sets: 3, Reps: "20-25 reps", Rest: "30 seconds"},
			{Name: "Finishing Cardio", Sets: 1, Reps: "10-15 minutes on treadmill/bike", Rest: "No rest"},
		},
		Tips: []string{
			"Keep the intensity high throughout",
			"Short rests between exercises",
			"Focus on full, controlled movement",
			"Stay properly hydrated",
			"Combine with a balanced diet",
		},
	}
}

func hypertrophySplit(profile *domain.UserProfile) *domain.Workout {
	frequency := 3
	if profile != nil && profile.Frequency > 0 {
		frequency = profile.Frequency
	}
	mainSets := 3
	if frequency >= 4 {
		mainSets = 4
	}

	difficulty := domain.DifficultyIntermediate
	if profile == nil || (profile.Age > 0 && profile.Age < 25 && profile.Frequency == 0) {
		difficulty = domain.DifficultyBeginner
	}

	return &domain.Workout{
		Title: "Personalized Hypertrophy Plan",
		Description: fmt.Sprintf("Evidence-based hypertrophy workout (Schoenfeld, 2016). %s Tailored for %d sessions per week.",
			hypertrophyVolume, frequency),
		Duration:   "60-75 minutes",
		Difficulty: difficulty,
		Exercises: []domain.Exercise{
			{Name: "Barbell Squat", Sets: mainSets, Reps: "8-12 reps", Rest: "90 seconds", Notes: "Fundamental leg exercise", VideoURL: videoSearch("barbell+squat+proper+form")},
			{Name: "Bench Press", Sets: mainSets, Reps: "8-12 reps", Rest: "90 seconds", Notes: "Works chest, triceps and delts", VideoURL: videoSearch("bench+press+form")},
			{Name: "Bent-over Row", Sets: 3, Reps: "8-12 reps", Rest: "90 seconds", Notes: "Strengthens the back", VideoURL: videoSearch("bent+over+row+form")},
			{Name: "Dumbbell Shoulder Press", Sets: 3, Reps: "8-12 reps", Rest: "90 seconds", Notes: "Develops the shoulders", VideoURL: videoSearch("dumbbell+shoulder+press+form")},
			{Name: "Barbell Curl", Sets: 3, Reps: "10-12 reps", Rest: "60 seconds", Notes: "Biceps isolation", VideoURL: videoSearch("barbell+curl+form")},
			{Name: "Triceps Pushdown", Sets: 3, Reps: "10-12 reps", Rest: "60 seconds", Notes: "Triceps isolation", VideoURL: videoSearch("triceps+pushdown+form")},
			{Name: "Calf Raise", Sets: 3, Reps: "15-20 reps", Rest: "60 seconds", VideoURL: videoSearch("calf+raise+form")},
		},
		Tips: []string{
			fmt.Sprintf("Train %d times per week for best results", frequency),
			"Keep the intensity at 60-80% of 1RM",
			"Rest properly between sets (60-90s)",
			"Increase the load gradually",
			"A protein-rich diet is essential",
			"Sleep at least 7-8 hours a night",
		},
	}
}

func videoSearch(query string) string {
	return "https://www.youtube.com/results?search_query=" + query
}
