package domain

import (
	"time"
)

// Plan is the subscription tier of a user.
type Plan string

const (
	PlanFree     Plan = "free"
	PlanBasic    Plan = "basic"
	PlanAdvanced Plan = "advanced"
)

// User is an account able to log in. Workouts, progress and points live in
// the user's own storage namespace, not on this record.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	Plan         Plan      `json:"plan"`
	CreatedAt    time.Time `json:"createdAt"`
}
