package domain

import (
	"errors"
	"fmt"
)

// CurrentSchemaVersion is the version tag written into every persisted
// Workout and Progress blob. Blobs written before the tag existed decode
// with a zero version and are read as version 1.
const CurrentSchemaVersion = 1

// Difficulty of a generated workout.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
)

// Modality is the kind of training a workout targets.
type Modality string

const (
	ModalityRunning  Modality = "running"
	ModalityStrength Modality = "strength"
)

// Objective is the goal a workout was generated for.
type Objective string

const (
	Objective5km         Objective = "5km"
	Objective10km        Objective = "10km"
	ObjectiveWeightLoss  Objective = "weight-loss"
	ObjectiveHypertrophy Objective = "hypertrophy"
)

// Gender as answered in the questionnaire.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

var (
	ErrInvalidProfile     = errors.New("invalid user profile")
	ErrUnsupportedVersion = errors.New("unsupported schema version")
)

// Exercise is one entry of a workout, in the order it should be performed.
type Exercise struct {
	Name     string `json:"name"`
	Sets     int    `json:"sets"`
	Reps     string `json:"reps"`
	Rest     string `json:"rest"`
	Notes    string `json:"notes,omitempty"`
	VideoURL string `json:"videoUrl,omitempty"` // Demo video reference
}

// UserProfile is the snapshot of the user's answers a workout was generated from.
type UserProfile struct {
	Height              float64 `json:"height"` // cm
	Weight              float64 `json:"weight"` // kg
	Age                 int     `json:"age"`
	Gender              Gender  `json:"gender"`
	Frequency           int     `json:"frequency"` // sessions per week
	Objective           string  `json:"objective,omitempty"`
	InjuryOrComorbidity string  `json:"injuryOrComorbidity,omitempty"`
}

// Validate checks the profile against the ranges the questionnaire form accepts.
func (p UserProfile) Validate() error {
	switch {
	case p.Height < 100 || p.Height > 250:
		return fmt.Errorf("%w: height must be between 100 and 250 cm", ErrInvalidProfile)
	case p.Weight < 30 || p.Weight > 300:
		return fmt.Errorf("%w: weight must be between 30 and 300 kg", ErrInvalidProfile)
	case p.Age < 12 || p.Age > 100:
		return fmt.Errorf("%w: age must be between 12 and 100 years", ErrInvalidProfile)
	case p.Frequency < 1 || p.Frequency > 7:
		return fmt.Errorf("%w: frequency must be between 1 and 7 times per week", ErrInvalidProfile)
	}
	switch p.Gender {
	case GenderMale, GenderFemale, GenderOther:
	default:
		return fmt.Errorf("%w: unknown gender %q", ErrInvalidProfile, p.Gender)
	}
	return nil
}

// HasRestriction reports whether the user declared an injury or comorbidity.
func (p *UserProfile) HasRestriction() bool {
	return p != nil && p.InjuryOrComorbidity != "" && p.InjuryOrComorbidity != "None"
}

// Workout is the single active workout of a user. It is never edited after
// creation; regenerating replaces it wholesale.
type Workout struct {
	SchemaVersion int         `json:"schemaVersion,omitempty"`
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	Exercises     []Exercise  `json:"exercises"`
	Duration      string      `json:"duration"`
	Difficulty    Difficulty  `json:"difficulty"`
	Tips          []string    `json:"tips"`
	Modality      Modality    `json:"modality"`
	Objective     Objective   `json:"objective"`
	UserInfo      UserProfile `json:"userInfo"`
	CreatedAt     string      `json:"createdAt"` // RFC3339
}

// CheckVersion rejects blobs written by a newer schema than this binary knows.
func (w *Workout) CheckVersion() error {
	if w.SchemaVersion > CurrentSchemaVersion {
		return fmt.Errorf("%w: workout v%d", ErrUnsupportedVersion, w.SchemaVersion)
	}
	return nil
}

// ValidPair reports whether the objective belongs to the modality.
func ValidPair(m Modality, o Objective) bool {
	switch m {
	case ModalityRunning:
		return o == Objective5km || o == Objective10km
	case ModalityStrength:
		return o == ObjectiveWeightLoss || o == ObjectiveHypertrophy
	}
	return false
}
