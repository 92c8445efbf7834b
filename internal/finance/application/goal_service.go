package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
	"github.com/sebuszqo/FinanceTracker/internal/log"
)

type CreateGoalInput struct {
	Name        string   `json:"name"`
	Target      *float64 `json:"target"`
	TargetDate  string   `json:"targetDate"`
	Category    string   `json:"category"`
	Icon        string   `json:"icon"`
	Description string   `json:"description"`
}

type UpdateGoalInput struct {
	Name        *string  `json:"name"`
	Target      *float64 `json:"target"`
	TargetDate  *string  `json:"targetDate"`
	Category    *string  `json:"category"`
	Icon        *string  `json:"icon"`
	Description *string  `json:"description"`
}

type GoalService struct {
	repo   domain.GoalRepository
	logger *log.Logger
	now    func() time.Time
}

func NewGoalService(repo domain.GoalRepository, logger *log.Logger) *GoalService {
	return &GoalService{repo: repo, logger: logger.WithComponent(log.ComponentFinance), now: time.Now}
}

func (s *GoalService) List(ctx context.Context, userID, category string) ([]domain.Goal, error) {
	return s.repo.FindByUser(ctx, userID, strings.TrimSpace(category))
}

func (s *GoalService) Get(ctx context.Context, userID string, goalID uuid.UUID) (*domain.Goal, error) {
	return s.repo.FindByID(ctx, userID, goalID)
}

func (s *GoalService) Create(ctx context.Context, userID string, input CreateGoalInput) (*domain.Goal, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, financeErrors.ErrNameRequired
	}
	category := strings.TrimSpace(input.Category)
	if category == "" {
		return nil, financeErrors.ErrGoalCategoryRequired
	}
	if strings.TrimSpace(input.TargetDate) == "" {
		return nil, financeErrors.ErrTargetDateRequired
	}
	targetDate, err := domain.ParseDate(input.TargetDate)
	if err != nil {
		return nil, err
	}
	target, err := requiredAmount(input.Target)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	goal := &domain.Goal{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        name,
		Target:      target,
		Current:     0,
		Icon:        valueOr(input.Icon, domain.DefaultGoalIcon),
		Description: strings.TrimSpace(input.Description),
		TargetDate:  targetDate,
		Category:    category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *GoalService) Update(ctx context.Context, userID string, goalID uuid.UUID, input UpdateGoalInput) (*domain.Goal, error) {
	goal, err := s.repo.FindByID(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, financeErrors.ErrNameRequired
		}
		goal.Name = name
	}
	if input.Target != nil {
		target, err := requiredAmount(input.Target)
		if err != nil {
			return nil, err
		}
		goal.Target = target
	}
	if input.TargetDate != nil {
		targetDate, err := domain.ParseDate(*input.TargetDate)
		if err != nil {
			return nil, err
		}
		goal.TargetDate = targetDate
	}
	if input.Category != nil {
		category := strings.TrimSpace(*input.Category)
		if category == "" {
			return nil, financeErrors.ErrGoalCategoryRequired
		}
		goal.Category = category
	}
	if input.Icon != nil {
		goal.Icon = valueOr(*input.Icon, domain.DefaultGoalIcon)
	}
	if input.Description != nil {
		goal.Description = strings.TrimSpace(*input.Description)
	}
	goal.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *GoalService) Delete(ctx context.Context, userID string, goalID uuid.UUID) error {
	return s.repo.Delete(ctx, userID, goalID)
}

// Fund adds amount to the goal, capping the saved total at the target, and returns the
// updated goal with its progress percentage. The increment happens in a single statement.
func (s *GoalService) Fund(ctx context.Context, userID string, goalID uuid.UUID, amount float64) (*domain.Goal, int, error) {
	amount = cents(money(amount))
	if amount <= 0 {
		return nil, 0, financeErrors.ErrInvalidAmount
	}
	if err := s.repo.AddToCurrent(ctx, userID, goalID, amount, s.now().UTC()); err != nil {
		return nil, 0, err
	}
	goal, err := s.repo.FindByID(ctx, userID, goalID)
	if err != nil {
		return nil, 0, err
	}

	s.logger.Debug().
		Str(log.FieldOperation, log.OpFund).
		Str(log.FieldUserID, userID).
		Str(log.FieldResourceID, goalID.String()).
		Float64("current", goal.Current).
		Msg("Goal funded")
	return goal, goal.Progress(), nil
}
