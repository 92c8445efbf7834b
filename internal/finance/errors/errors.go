package errors

import (
	"errors"
	"fmt"
)

// ValidationError is caused by the caller's input and is safe to show to them.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	return errors.As(err, &validationError)
}

// NotFoundError covers both missing records and records owned by another user.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

func NewNotFoundError(resource string) error {
	return &NotFoundError{Resource: resource}
}

func IsNotFoundError(err error) bool {
	var notFoundError *NotFoundError
	return errors.As(err, &notFoundError)
}

var (
	ErrCategoryNotFound = NewNotFoundError("Category")
	ErrExpenseNotFound  = NewNotFoundError("Expense")
	ErrIncomeNotFound   = NewNotFoundError("Income")
	ErrBudgetNotFound   = NewNotFoundError("Budget")
	ErrGoalNotFound     = NewNotFoundError("Goal")
)

var (
	ErrCategoryExists          = NewValidationError("Category already exists")
	ErrCategoryInUse           = NewValidationError("Category is in use")
	ErrInvalidCategoryType     = NewValidationError("Invalid category type")
	ErrInvalidCategory         = NewValidationError("Invalid category")
	ErrInvalidIncomeSource     = NewValidationError("Invalid income source")
	ErrBudgetExists            = NewValidationError("Budget already exists for this category and period")
	ErrInvalidBudgetPeriod     = NewValidationError("Invalid budget period")
	ErrInvalidAmount           = NewValidationError("Invalid amount")
	ErrNegativeAmount          = NewValidationError("Amount must be greater than or equal to zero")
	ErrDescriptionRequired     = NewValidationError("Description is required")
	ErrNameRequired            = NewValidationError("Name is required")
	ErrGoalCategoryRequired    = NewValidationError("Category is required")
	ErrTargetDateRequired      = NewValidationError("Target date is required")
	ErrInvalidDate             = NewValidationError("Invalid date format")
	ErrInvalidDateRange        = NewValidationError("Start date must be before end date")
	ErrUnsupportedExportFormat = NewValidationError("Unsupported export format")
	ErrInvalidPagination       = NewValidationError("Invalid pagination parameters")
	ErrInvalidRecurringFilter  = NewValidationError("Recurring must be true or false")
)
