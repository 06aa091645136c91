package domain

import "time"

// ProductCategory groups rewards in the store.
type ProductCategory string

const (
	CategoryAll        ProductCategory = "all"
	CategorySports     ProductCategory = "sports"
	CategoryFood       ProductCategory = "food"
	CategoryWithdrawal ProductCategory = "withdrawal"
)

// Product is a reward that can be redeemed with points.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Points      int             `json:"points"`
	Category    ProductCategory `json:"category"`
	Discount    string          `json:"discount,omitempty"`
}

// Activity is one entry of the points ledger. Redemptions carry negative points.
type Activity struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Points int       `json:"points"`
	Date   time.Time `json:"date"`
}

// PointsLedger holds the balance and its history for one namespace.
type PointsLedger struct {
	Balance    int        `json:"balance"`
	Activities []Activity `json:"activities"`
}

// CanRedeem reports whether the balance covers cost.
func (l *PointsLedger) CanRedeem(cost int) bool {
	return l.Balance >= cost
}

// Apply adds a to the history and moves the balance by a.Points.
func (l *PointsLedger) Apply(a Activity) {
	l.Activities = append(l.Activities, a)
	l.Balance += a.Points
}

// TotalActivities counts earning entries, ignoring redemptions.
func (l *PointsLedger) TotalActivities() int {
	n := 0
	for _, a := range l.Activities {
		if a.Points > 0 {
			n++
		}
	}
	return n
}
