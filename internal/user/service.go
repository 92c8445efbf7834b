package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/badoux/checkmail"
	"github.com/google/uuid"
	"github.com/sebuszqo/FinanceTracker/internal/log"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/currency"
)

const (
	maxEmailLength    = 254
	minEmailLength    = 3
	maxNameLength     = 100
	minPasswordLength = 6
	defaultBcryptCost = 12
	DefaultTimezone   = "UTC"
	DefaultCurrency   = "USD"
)

var (
	ErrInvalidEmail       = errors.New("email address is not valid")
	ErrEmailLength        = fmt.Errorf("email address is too long or too short, max length: %d, min length: %d", maxEmailLength, minEmailLength)
	ErrNameRequired       = errors.New("first name and last name are required")
	ErrNameLength         = fmt.Errorf("names must be at most %d characters", maxNameLength)
	ErrPasswordTooShort   = fmt.Errorf("password must be at least %d characters", minPasswordLength)
	ErrInvalidTimezone    = errors.New("timezone is not valid")
	ErrInvalidCurrency    = errors.New("currency must be an ISO 4217 code")
	ErrEmailAlreadyExists = errors.New("User already exists")
	ErrInternalError      = errors.New("internal Server Error")
)

var registrationErrors = []error{
	ErrInvalidEmail,
	ErrEmailLength,
	ErrNameRequired,
	ErrNameLength,
	ErrPasswordTooShort,
	ErrInvalidTimezone,
	ErrInvalidCurrency,
	ErrEmailAlreadyExists,
}

// IsRegistrationError reports whether err is caused by the caller's input.
func IsRegistrationError(err error) bool {
	for _, target := range registrationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

type User struct {
	ID               string    `json:"id"`
	FirstName        string    `json:"firstName"`
	LastName         string    `json:"lastName"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	Phone            string    `json:"phone"`
	Timezone         string    `json:"timezone"`
	Currency         string    `json:"currency"`
	TwoFactorEnabled bool      `json:"twoFactorEnabled"`
	TwoFactorSecret  string    `json:"-"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type RegisterInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
	Timezone  string `json:"timezone"`
	Currency  string `json:"currency"`
}

type Service interface {
	Register(ctx context.Context, input RegisterInput) (*User, error)
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	Location(ctx context.Context, userID string) (*time.Location, error)
}

type Options struct {
	BcryptCost      int
	VerifyEmailHost bool
}

type service struct {
	repo    Repository
	options Options
	logger  *log.Logger
}

func NewUserService(repo Repository, options Options, logger *log.Logger) Service {
	if options.BcryptCost == 0 {
		options.BcryptCost = defaultBcryptCost
	}
	return &service{
		repo:    repo,
		options: options,
		logger:  logger.WithComponent(log.ComponentUser),
	}
}

func hashPassword(password string, cost int) (string, error) {
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(hashedPasswordBytes), err
}

func (s *service) validateEmailAddress(email string) error {
	if len(email) > maxEmailLength || len(email) <= minEmailLength {
		return ErrEmailLength
	}

	if err := checkmail.ValidateFormat(email); err != nil {
		return ErrInvalidEmail
	}

	if s.options.VerifyEmailHost {
		if err := checkmail.ValidateHost(email); err != nil {
			var smtpErr checkmail.SmtpError
			if errors.As(err, &smtpErr) {
				// the domain resolved; only the mailbox probe failed
				s.logger.Debug().Err(err).Msg("Email host reachable, mailbox check failed")
				return nil
			}
			return ErrInvalidEmail
		}
	}
	return nil
}

func normalizeCurrency(code string) (string, error) {
	if code == "" {
		return DefaultCurrency, nil
	}
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return "", ErrInvalidCurrency
	}
	return unit.String(), nil
}

func normalizeTimezone(tz string) (string, error) {
	if tz == "" {
		return DefaultTimezone, nil
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return "", ErrInvalidTimezone
	}
	return tz, nil
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)

	if err := s.validateEmailAddress(email); err != nil {
		return nil, err
	}
	if firstName == "" || lastName == "" {
		return nil, ErrNameRequired
	}
	if len(firstName) > maxNameLength || len(lastName) > maxNameLength {
		return nil, ErrNameLength
	}
	if len(input.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	timezone, err := normalizeTimezone(input.Timezone)
	if err != nil {
		return nil, err
	}
	currencyCode, err := normalizeCurrency(input.Currency)
	if err != nil {
		return nil, err
	}

	existingUser, err := s.repo.getUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		s.logger.Error().Err(err).Str(log.FieldOperation, log.OpRegister).Msg("Could not check existing user")
		return nil, ErrInternalError
	}
	if existingUser != nil {
		return nil, ErrEmailAlreadyExists
	}

	passwordHash, err := hashPassword(input.Password, s.options.BcryptCost)
	if err != nil {
		s.logger.Error().Err(err).Str(log.FieldOperation, log.OpRegister).Msg("Could not hash password")
		return nil, ErrInternalError
	}

	now := time.Now().UTC()
	user := &User{
		ID:           uuid.NewString(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: passwordHash,
		Phone:        strings.TrimSpace(input.Phone),
		Timezone:     timezone,
		Currency:     currencyCode,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.createUser(ctx, user); err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			return nil, err
		}
		s.logger.Error().Err(err).Str(log.FieldOperation, log.OpRegister).Msg("Could not create user")
		return nil, ErrInternalError
	}

	s.logger.Info().Str(log.FieldUserID, user.ID).Msg("User registered")
	return user, nil
}

func (s *service) GetUserByID(ctx context.Context, id string) (*User, error) {
	return s.repo.getUserByID(ctx, id)
}

func (s *service) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.getUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

// Location resolves the user's preferred timezone, falling back to UTC for unknown zones.
func (s *service) Location(ctx context.Context, userID string) (*time.Location, error) {
	user, err := s.repo.getUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(user.Timezone)
	if err != nil {
		s.logger.Warn().Err(err).
			Str(log.FieldUserID, userID).
			Str("timezone", user.Timezone).
			Msg("Stored timezone is unknown, falling back to UTC")
		return time.UTC, nil
	}
	return loc, nil
}
