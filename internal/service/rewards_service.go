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
	ErrInsufficientPoints    = errors.New("insufficient points")
	ErrWithdrawalUnavailable = errors.New("cash withdrawal is only available on scheduled dates")
	ErrProductNotFound       = errors.New("product not found")
	ErrUnknownCategory       = errors.New("unknown product category")
)

// DefaultPointsPerWorkout is credited for each completed workout day.
const DefaultPointsPerWorkout = 50

var catalog = []domain.Product{
	{ID: "1", Name: "Adidas Discount - 20%", Description: "Discount on Adidas sports products", Points: 200, Category: domain.CategorySports, Discount: "20% OFF"},
	{ID: "2", Name: "Nike Discount - 15%", Description: "Discount on Nike shoes and clothing", Points: 150, Category: domain.CategorySports, Discount: "15% OFF"},
	{ID: "3", Name: "Fitness Meal Combo", Description: "Discount on fitness meals", Points: 100, Category: domain.CategoryFood, Discount: "R$ 20 OFF"},
	{ID: "4", Name: "Supplements Discount", Description: "15% off supplements", Points: 120, Category: domain.CategoryFood, Discount: "15% OFF"},
	{ID: "5", Name: "Cash Withdrawal", Description: "Withdrawal available 3x per year", Points: 1000, Category: domain.CategoryWithdrawal},
}

// Redemption is the result of a successful Redeem.
type Redemption struct {
	Product domain.Product       `json:"product"`
	Ledger  *domain.PointsLedger `json:"ledger"`
}

// RewardsService credits points for completed workouts and redeems them
// against the product catalog.
type RewardsService interface {
	Ledger(ctx context.Context, ns string) (*domain.PointsLedger, error)
	Award(ctx context.Context, ns, reason string, points int) (*domain.PointsLedger, error)
	Products(category domain.ProductCategory) ([]domain.Product, error)
	Redeem(ctx context.Context, ns, productID string) (*Redemption, error)
	PointsPerWorkout() int
}

type rewardsService struct {
	pointsRepo       repository.PointsRepository
	pointsPerWorkout int
	now              func() time.Time
	locks            *keyedMutex
}

func NewRewardsService(pointsRepo repository.PointsRepository, pointsPerWorkout int) RewardsService {
	if pointsPerWorkout <= 0 {
		pointsPerWorkout = DefaultPointsPerWorkout
	}
	return &rewardsService{
		pointsRepo:       pointsRepo,
		pointsPerWorkout: pointsPerWorkout,
		now:              time.Now,
		locks:            newKeyedMutex(),
	}
}

func (s *rewardsService) PointsPerWorkout() int {
	return s.pointsPerWorkout
}

func (s *rewardsService) Ledger(ctx context.Context, ns string) (*domain.PointsLedger, error) {
	return s.pointsRepo.Load(ctx, ns)
}

func (s *rewardsService) Award(ctx context.Context, ns, reason string, points int) (*domain.PointsLedger, error) {
	if points <= 0 {
		return nil, fmt.Errorf("award must be positive, got %d", points)
	}
	return s.apply(ctx, ns, func(*domain.PointsLedger) error { return nil }, reason, points)
}

func (s *rewardsService) Products(category domain.ProductCategory) ([]domain.Product, error) {
	switch category {
	case "", domain.CategoryAll:
		out := make([]domain.Product, len(catalog))
		copy(out, catalog)
		return out, nil
	case domain.CategorySports, domain.CategoryFood, domain.CategoryWithdrawal:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	var out []domain.Product
	for _, p := range catalog {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *rewardsService) Redeem(ctx context.Context, ns, productID string) (*Redemption, error) {
	product, ok := findProduct(productID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
	}

	check := func(l *domain.PointsLedger) error {
		if !l.CanRedeem(product.Points) {
			return fmt.Errorf("%w: %d needed, %d available", ErrInsufficientPoints, product.Points, l.Balance)
		}
		if product.Category == domain.CategoryWithdrawal {
			return ErrWithdrawalUnavailable
		}
		return nil
	}
	ledger, err := s.apply(ctx, ns, check, "Redeemed: "+product.Name, -product.Points)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"ns": ns, "product": product.ID, "balance": ledger.Balance}).Info("reward redeemed")
	return &Redemption{Product: product, Ledger: ledger}, nil
}

// apply runs a load-check-append-save cycle under the namespace lock.
func (s *rewardsService) apply(ctx context.Context, ns string, check func(*domain.PointsLedger) error, name string, points int) (*domain.PointsLedger, error) {
	unlock := s.locks.Lock(ns)
	defer unlock()

	ledger, err := s.pointsRepo.Load(ctx, ns)
	if err != nil {
		return nil, err
	}
	if err := check(ledger); err != nil {
		return nil, err
	}
	ledger.Apply(domain.Activity{
		ID:     uuid.NewString(),
		Name:   name,
		Points: points,
		Date:   s.now().UTC(),
	})
	if err := s.pointsRepo.Save(ctx, ns, ledger); err != nil {
		return nil, err
	}
	return ledger, nil
}

func findProduct(id string) (domain.Product, bool) {
	for _, p := range catalog {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}
