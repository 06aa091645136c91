package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"alcyxob/workout-tracker/internal/domain"
)

var ErrMissingAnswer = errors.New("questionnaire answer missing")

// Question is one step of the workout questionnaire.
type Question struct {
	Field   string   `json:"field"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// Answers maps a question field to the chosen option.
type Answers map[string]string

var questions = []Question{
	{Field: "objective", Text: "What is your main goal?", Options: []string{"Weight loss", "Hypertrophy (Muscle gain)", "Endurance", "Strength", "Definition"}},
	{Field: "frequency", Text: "How many times per week can you train?", Options: []string{"2 times", "3 times", "4 times", "5 times", "6 times"}},
	{Field: "age", Text: "What is your age?", Options: []string{"18-25 years", "26-35 years", "36-45 years", "46-55 years", "56+ years"}},
	{Field: "weight", Text: "What is your current weight? (kg)", Options: []string{"Less than 60kg", "60-70kg", "71-80kg", "81-90kg", "91-100kg", "More than 100kg"}},
	{Field: "height", Text: "What is your height? (cm)", Options: []string{"Less than 160cm", "160-170cm", "171-180cm", "181-190cm", "More than 190cm"}},
	{Field: "gender", Text: "What is your gender?", Options: []string{"Male", "Female", "Other"}},
	{Field: "injuryOrComorbidity", Text: "Do you have any injury or comorbidity?", Options: []string{"None", "Yes - muscle/joint injury", "Yes - comorbidity (e.g. diabetes, hypertension)", "Yes - injury and comorbidity"}},
	{Field: "experience", Text: "What is your experience level?", Options: []string{"Beginner", "Intermediate", "Advanced"}},
}

// Questions returns the questionnaire in the order it is asked.
func Questions() []Question {
	out := make([]Question, len(questions))
	copy(out, questions)
	return out
}

// Selection is what a completed questionnaire resolves to.
type Selection struct {
	Modality  domain.Modality    `json:"modality"`
	Objective domain.Objective   `json:"objective"`
	Profile   domain.UserProfile `json:"profile"`
}

// ParseAnswers turns questionnaire answers into a profile and the workout
// they call for. Every question must be answered.
func ParseAnswers(answers Answers) (*Selection, error) {
	for _, q := range questions {
		if strings.TrimSpace(answers[q.Field]) == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingAnswer, q.Field)
		}
	}

	sel := &Selection{
		Profile: domain.UserProfile{
			Age:                 parseBucket(answers["age"], ageBuckets, 60),
			Weight:              float64(parseBucket(answers["weight"], weightBuckets, 105)),
			Height:              float64(parseBucket(answers["height"], heightBuckets, 195)),
			Gender:              parseGender(answers["gender"]),
			Frequency:           parseFrequency(answers["frequency"]),
			Objective:           answers["objective"],
			InjuryOrComorbidity: answers["injuryOrComorbidity"],
		},
	}
	sel.Modality, sel.Objective = goalFor(answers["objective"])
	return sel, nil
}

type bucket struct {
	match string
	value int
}

// Ranges resolve to their midpoints; anything unmatched is the open upper range.
var (
	ageBuckets    = []bucket{{"18-25", 22}, {"26-35", 30}, {"36-45", 40}, {"46-55", 50}}
	weightBuckets = []bucket{{"less than 60", 55}, {"60-70", 65}, {"71-80", 75}, {"81-90", 85}, {"91-100", 95}}
	heightBuckets = []bucket{{"less than 160", 155}, {"160-170", 165}, {"171-180", 175}, {"181-190", 185}}
)

func parseBucket(answer string, buckets []bucket, fallback int) int {
	answer = strings.ToLower(answer)
	for _, b := range buckets {
		if strings.Contains(answer, b.match) {
			return b.value
		}
	}
	return fallback
}

func parseGender(answer string) domain.Gender {
	switch g := domain.Gender(strings.ToLower(strings.TrimSpace(answer))); g {
	case domain.GenderMale, domain.GenderFemale:
		return g
	}
	return domain.GenderOther
}

func parseFrequency(answer string) int {
	fields := strings.Fields(answer)
	if len(fields) == 0 {
		return 3
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 1 || n > 7 {
		return 3
	}
	return n
}

func goalFor(answer string) (domain.Modality, domain.Objective) {
	goal := strings.ToLower(answer)
	switch {
	case strings.Contains(goal, "weight loss"), strings.Contains(goal, "definition"):
		return domain.ModalityStrength, domain.ObjectiveWeightLoss
	case strings.Contains(goal, "hypertrophy"), strings.Contains(goal, "muscle"):
		return domain.ModalityStrength, domain.ObjectiveHypertrophy
	case strings.Contains(goal, "endurance"):
		return domain.ModalityRunning, domain.Objective10km
	}
	return domain.ModalityStrength, domain.ObjectiveHypertrophy
}
