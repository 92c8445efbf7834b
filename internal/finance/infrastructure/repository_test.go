package infrastructure

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sebuszqo/FinanceTracker/internal/db/dbtest"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"
)

// RepositorySuite runs against any migrated database returned by openDB.
type RepositorySuite struct {
	suite.Suite
	openDB     func(t testing.TB) *sql.DB
	db         *sql.DB
	ctx        context.Context
	userID     string
	otherID    string
	categories *CategoryRepository
	expenses   *ExpenseRepository
	income     *IncomeRepository
	budgets    *BudgetRepository
	goals      *GoalRepository
	now        time.Time
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, &RepositorySuite{openDB: dbtest.NewSQLite})
}

func (s *RepositorySuite) SetupTest() {
	s.db = s.openDB(s.T())
	s.ctx = context.Background()
	s.userID = uuid.NewString()
	s.otherID = uuid.NewString()
	dbtest.InsertUser(s.T(), s.db, s.userID, "owner@example.com")
	dbtest.InsertUser(s.T(), s.db, s.otherID, "other@example.com")

	s.categories = NewCategoryRepository(s.db)
	s.expenses = NewExpenseRepository(s.db)
	s.income = NewIncomeRepository(s.db)
	s.budgets = NewBudgetRepository(s.db)
	s.goals = NewGoalRepository(s.db)
	s.now = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
}

func (s *RepositorySuite) newCategory(userID, name, categoryType string) *domain.Category {
	category := &domain.Category{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Icon:      domain.DefaultCategoryIcon,
		Color:     domain.DefaultCategoryColor,
		Type:      categoryType,
		CreatedAt: s.now,
		UpdatedAt: s.now,
	}
	s.Require().NoError(s.categories.Create(s.ctx, category))
	return category
}

func (s *RepositorySuite) newExpense(category *domain.Category, amount float64, date time.Time) *domain.Expense {
	expense := &domain.Expense{
		ID:          uuid.New(),
		UserID:      category.UserID,
		Description: "expense",
		Amount:      amount,
		CategoryID:  category.ID,
		Date:        date,
		CreatedAt:   s.now,
		UpdatedAt:   s.now,
	}
	s.Require().NoError(s.expenses.Create(s.ctx, expense))
	return expense
}

func (s *RepositorySuite) TestCategoryCRUD() {
	budget := 250.0
	food := s.newCategory(s.userID, "Food", domain.CategoryTypeExpense)
	s.newCategory(s.userID, "Salary", domain.CategoryTypeIncome)
	s.newCategory(s.otherID, "Food", domain.CategoryTypeExpense)

	found, err := s.categories.FindByID(s.ctx, s.userID, food.ID)
	s.Require().NoError(err)
	s.Equal("Food", found.Name)
	s.Nil(found.Budget)

	_, err = s.categories.FindByID(s.ctx, s.otherID, food.ID)
	s.ErrorIs(err, financeErrors.ErrCategoryNotFound)

	all, err := s.categories.FindByUser(s.ctx, s.userID, "")
	s.Require().NoError(err)
	s.Len(all, 2)
	s.Equal("Food", all[0].Name)

	expenseOnly, err := s.categories.FindByUser(s.ctx, s.userID, domain.CategoryTypeExpense)
	s.Require().NoError(err)
	s.Len(expenseOnly, 1)

	found.Name = "Groceries"
	found.Budget = &budget
	s.Require().NoError(s.categories.Update(s.ctx, found))

	updated, err := s.categories.FindByID(s.ctx, s.userID, food.ID)
	s.Require().NoError(err)
	s.Equal("Groceries", updated.Name)
	s.Require().NotNil(updated.Budget)
	s.InDelta(250.0, *updated.Budget, 0.001)
}

func (s *RepositorySuite) TestCategoryDuplicate() {
	s.newCategory(s.userID, "Food", domain.CategoryTypeExpense)

	duplicate := &domain.Category{
		ID: uuid.New(), UserID: s.userID, Name: "Food", Icon: "x", Color: "y",
		Type: domain.CategoryTypeExpense, CreatedAt: s.now, UpdatedAt: s.now,
	}
	s.ErrorIs(s.categories.Create(s.ctx, duplicate), financeErrors.ErrCategoryExists)

	// same name with the other type is allowed
	duplicate.Type = domain.CategoryTypeIncome
	s.NoError(s.categories.Create(s.ctx, duplicate))
}

func (s *RepositorySuite) TestCategoryDelete() {
	food := s.newCategory(s.userID, "Food", domain.CategoryTypeExpense)
	unused := s.newCategory(s.userID, "Unused", domain.CategoryTypeExpense)
	s.newExpense(food, 10, s.now)

	s.ErrorIs(s.categories.Delete(s.ctx, s.userID, food.ID), financeErrors.ErrCategoryInUse)
	s.ErrorIs(s.categories.Delete(s.ctx, s.otherID, unused.ID), financeErrors.ErrCategoryNotFound)
	s.NoError(s.categories.Delete(s.ctx, s.userID, unused.ID))
	s.ErrorIs(s.categories.Delete(s.ctx, s.userID, unused.ID), financeErrors.ErrCategoryNotFound)

	// the in-use category is untouched after the rolled back attempt
	_, err := s.categories.FindByID(s.ctx, s.userID, food.ID)
	s.NoError(err)
}

func (s *RepositorySuite) TestExpenseListAndPagination() {
	food := s.newCategory(s.userID, "Food", domain.CategoryTypeExpense)
	transport := s.newCategory(s.userID, "Transport", domain.CategoryTypeExpense)
	for i := 0; i < 5; i++ {
		s.newExpense(food, float64(10*(i+1)), s.now.AddDate(0, 0, -i))
	}
	s.newExpense(transport, 99, s.now.AddDate(0, -2, 0))

	expenses, total, err := s.expenses.List(s.ctx, s.userID, domain.ExpenseFilter{Page: domain.PageRequest{Page: 1, Limit: 2}})
	s.Require().NoError(err)
	s.Equal(6, total)
	s.Require().Len(expenses, 2)
	s.True(expenses[0].Date.After(expenses[1].Date))
	s.Require().NotNil(expenses[0].Category)
	s.Equal("Food", expenses[0].Category.Name)

	lastPage, _, err := s.expenses.List(s.ctx, s.userID, domain.ExpenseFilter{Page: domain.PageRequest{Page: 3, Limit: 2}})
	s.Require().NoError(err)
	s.Len(lastPage, 2)
	s.InDelta(99.0, lastPage[1].Amount, 0.001)

	filtered, total, err := s.expenses.List(s.ctx, s.userID, domain.ExpenseFilter{
		DateRange:  domain.DateRange{Start: s.now.AddDate(0, 0, -2), End: s.now.Add(time.Hour)},
		CategoryID: &food.ID,
	})
	s.Require().NoError(err)
	s.Equal(3, total)
	s.Len(filtered, 3)

	others, total, err := s.expenses.List(s.ctx, s.otherID, domain.ExpenseFilter{})
	s.Require().NoError(err)
	s.Zero(total)
	s.Empty(others)
}

func (s *RepositorySuite) TestExpenseUpdateDeleteScopedByUser() {
	food := s.newCategory(s.userID, "Food", domain.CategoryTypeExpense)
	expense := s.newExpense(food, 10, s.now)

	expense.Amount = 12.5
	expense.Notes = "lunch"
	s.Require().NoError(s.expenses.Update(s.ctx, expense))

	found, err := s.expenses.FindByID(s.ctx, s.userID, expense.ID)
	s.Require().NoError(err)
	s.InDelta(12.5, found.Amount, 0.001)
	s.Equal("lunch", found.Notes)
	s.True(s.now.Equal(found.Date))

	foreign := *expense
	foreign.UserID = s.otherID
	s.ErrorIs(s.expenses.Update(s.ctx, &foreign), financeErrors.ErrExpenseNotFound)
	s.ErrorIs(s.expenses.Delete(s.ctx, s.otherID, expense.ID), financeErrors.ErrExpenseNotFound)
	s.NoError(s.expenses.Delete(s.ctx, s.userID, expense.ID))
	_, err = s.expenses.FindByID(s.ctx, s.userID, expense.ID)
	s.ErrorIs(err, financeErrors.ErrExpenseNotFound)
}

func (s *RepositorySuite) TestExpenseRangeAndSum() {
	food := s.newCategory(s.userID, "Food", domain.CategoryTypeExpense)
	s.newExpense(food, 10.10, s.now)
	s.newExpense(food, 20.20, s.now.Add(-time.Hour))
	s.newExpense(food, 500, s.now.AddDate(0, -1, 0))

	window := domain.DateRange{Start: s.now.AddDate(0, 0, -1), End: s.now.Add(time.Second)}
	inRange, err := s.expenses.FindInRange(s.ctx, s.userID, window)
	s.Require().NoError(err)
	s.Len(inRange, 2)
	s.True(inRange[0].Date.Before(inRange[1].Date))

	sum, err := s.expenses.SumByCategory(s.ctx, s.userID, food.ID, window)
	s.Require().NoError(err)
	s.InDelta(30.30, sum, 0.001)

	empty, err := s.expenses.SumByCategory(s.ctx, s.userID, uuid.New(), window)
	s.Require().NoError(err)
	s.Zero(empty)
}

func (s *RepositorySuite) TestIncomeFilters() {
	salary := s.newCategory(s.userID, "Salary", domain.CategoryTypeIncome)
	freelance := s.newCategory(s.userID, "Freelance", domain.CategoryTypeIncome)

	for i, entry := range []struct {
		source    *domain.Category
		recurring bool
	}{{salary, true}, {salary, true}, {freelance, false}} {
		income := &domain.Income{
			ID: uuid.New(), UserID: s.userID, Description: "pay", Amount: 1000,
			SourceID: entry.source.ID, Date: s.now.AddDate(0, 0, -i), Recurring: entry.recurring,
			CreatedAt: s.now, UpdatedAt: s.now,
		}
		s.Require().NoError(s.income.Create(s.ctx, income))
	}

	recurring := true
	list, total, err := s.income.List(s.ctx, s.userID, domain.IncomeFilter{Recurring: &recurring})
	s.Require().NoError(err)
	s.Equal(2, total)
	s.Require().Len(list, 2)
	s.True(list[0].Recurring)
	s.Equal("Salary", list[0].Source.Name)

	list, total, err = s.income.List(s.ctx, s.userID, domain.IncomeFilter{SourceID: &freelance.ID})
	s.Require().NoError(err)
	s.Equal(1, total)
	s.False(list[0].Recurring)

	inRange, err := s.income.FindInRange(s.ctx, s.userID, domain.DateRange{Start: s.now.AddDate(0, 0, -1), End: s.now.Add(time.Hour)})
	s.Require().NoError(err)
	s.Len(inRange, 2)
}

func (s *RepositorySuite) TestBudgetUniqueness() {
	food := s.newCategory(s.userID, "Food", domain.CategoryTypeExpense)
	newBudget := func(period string) *domain.Budget {
		return &domain.Budget{
			ID: uuid.New(), UserID: s.userID, CategoryID: food.ID, Amount: 400, Period: period,
			StartDate: s.now, CreatedAt: s.now, UpdatedAt: s.now,
		}
	}

	monthly := newBudget(domain.BudgetPeriodMonthly)
	s.Require().NoError(s.budgets.Create(s.ctx, monthly))
	s.ErrorIs(s.budgets.Create(s.ctx, newBudget(domain.BudgetPeriodMonthly)), financeErrors.ErrBudgetExists)
	s.NoError(s.budgets.Create(s.ctx, newBudget(domain.BudgetPeriodWeekly)))

	list, err := s.budgets.FindByUser(s.ctx, s.userID, domain.BudgetPeriodMonthly)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal("Food", list[0].Category.Name)
	s.Nil(list[0].EndDate)

	end := s.now.AddDate(0, 6, 0)
	monthly.Amount = 450
	monthly.EndDate = &end
	s.Require().NoError(s.budgets.Update(s.ctx, monthly))

	found, err := s.budgets.FindByID(s.ctx, s.userID, monthly.ID)
	s.Require().NoError(err)
	s.InDelta(450.0, found.Amount, 0.001)
	s.Require().NotNil(found.EndDate)
	s.True(end.Equal(*found.EndDate))

	s.ErrorIs(s.budgets.Delete(s.ctx, s.otherID, monthly.ID), financeErrors.ErrBudgetNotFound)
	s.NoError(s.budgets.Delete(s.ctx, s.userID, monthly.ID))
}

func (s *RepositorySuite) TestGoals() {
	later := &domain.Goal{
		ID: uuid.New(), UserID: s.userID, Name: "Car", Target: 10000, Icon: domain.DefaultGoalIcon,
		TargetDate: s.now.AddDate(2, 0, 0), Category: "vehicle", CreatedAt: s.now, UpdatedAt: s.now,
	}
	sooner := &domain.Goal{
		ID: uuid.New(), UserID: s.userID, Name: "Trip", Target: 100, Current: 80, Icon: domain.DefaultGoalIcon,
		TargetDate: s.now.AddDate(0, 3, 0), Category: "travel", CreatedAt: s.now, UpdatedAt: s.now,
	}
	s.Require().NoError(s.goals.Create(s.ctx, later))
	s.Require().NoError(s.goals.Create(s.ctx, sooner))

	goals, err := s.goals.FindByUser(s.ctx, s.userID, "")
	s.Require().NoError(err)
	s.Require().Len(goals, 2)
	s.Equal("Trip", goals[0].Name)

	travel, err := s.goals.FindByUser(s.ctx, s.userID, "travel")
	s.Require().NoError(err)
	s.Len(travel, 1)

	s.Require().NoError(s.goals.AddToCurrent(s.ctx, s.userID, sooner.ID, 50, s.now))
	found, err := s.goals.FindByID(s.ctx, s.userID, sooner.ID)
	s.Require().NoError(err)
	s.InDelta(100.0, found.Current, 0.001)

	s.Require().NoError(s.goals.AddToCurrent(s.ctx, s.userID, later.ID, 0.1, s.now))
	s.Require().NoError(s.goals.AddToCurrent(s.ctx, s.userID, later.ID, 0.2, s.now))
	found, err = s.goals.FindByID(s.ctx, s.userID, later.ID)
	s.Require().NoError(err)
	s.Equal(0.3, found.Current)

	s.ErrorIs(s.goals.AddToCurrent(s.ctx, s.otherID, sooner.ID, 1, s.now), financeErrors.ErrGoalNotFound)
	_, err = s.goals.FindByID(s.ctx, s.otherID, sooner.ID)
	s.ErrorIs(err, financeErrors.ErrGoalNotFound)
}

func (s *RepositorySuite) TestGoalConcurrentFunding() {
	goal := &domain.Goal{
		ID: uuid.New(), UserID: s.userID, Name: "House", Target: 1000, Icon: domain.DefaultGoalIcon,
		TargetDate: s.now.AddDate(5, 0, 0), Category: "home", CreatedAt: s.now, UpdatedAt: s.now,
	}
	s.Require().NoError(s.goals.Create(s.ctx, goal))

	var group errgroup.Group
	for i := 0; i < 20; i++ {
		group.Go(func() error {
			return s.goals.AddToCurrent(s.ctx, s.userID, goal.ID, 10, s.now)
		})
	}
	s.Require().NoError(group.Wait())

	found, err := s.goals.FindByID(s.ctx, s.userID, goal.ID)
	s.Require().NoError(err)
	s.InDelta(200.0, found.Current, 0.001)
}
