package domain

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
)

const DefaultGoalIcon = "🎯"

type Goal struct {
	ID          uuid.UUID `json:"id"`
	UserID      string    `json:"-"`
	Name        string    `json:"name"`
	Target      float64   `json:"target"`
	Current     float64   `json:"current"`
	Icon        string    `json:"icon"`
	Description string    `json:"description"`
	TargetDate  time.Time `json:"targetDate"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Progress is the funded share of the target as a whole percentage, 0 for a zero target.
func (g *Goal) Progress() int {
	if g.Target <= 0 {
		return 0
	}
	return int(math.Round(g.Current / g.Target * 100))
}

//go:generate mockgen -source=goal.go -destination=mock_goal_repository.go -package=domain

type GoalRepository interface {
	Create(ctx context.Context, goal *Goal) error
	FindByID(ctx context.Context, userID string, goalID uuid.UUID) (*Goal, error)
	FindByUser(ctx context.Context, userID, category string) ([]Goal, error)
	Update(ctx context.Context, goal *Goal) error
	// AddToCurrent atomically adds amount to the saved total, capped at the target.
	AddToCurrent(ctx context.Context, userID string, goalID uuid.UUID, amount float64, updatedAt time.Time) error
	Delete(ctx context.Context, userID string, goalID uuid.UUID) error
}
