package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/sebuszqo/FinanceTracker/internal/log"
	"github.com/sebuszqo/FinanceTracker/internal/user"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials    = errors.New("Invalid credentials")
	ErrInternalError         = errors.New("internal Server Error")
	ErrTwoFactorRequired     = errors.New("Two-factor code required")
	ErrInvalid2FACode        = errors.New("Invalid two-factor code")
	ErrUser2FANotEnabled     = errors.New("Two-factor authentication is not enabled")
	ErrUser2FAAlreadyEnabled = errors.New("Two-factor authentication is already enabled")
	ErrUser2FANotSetUp       = errors.New("Two-factor authentication has not been set up")
)

// TwoFactorAuthenticator generates and checks TOTP secrets.
type TwoFactorAuthenticator interface {
	GenerateSecret(accountName string) (otpURL string, secret string, err error)
	VerifyCode(secret, code string) bool
}

type Service interface {
	Login(ctx context.Context, email, password, code string) (*user.User, string, error)
	SetupTwoFactor(ctx context.Context, userID string) (otpURL string, secret string, err error)
	EnableTwoFactor(ctx context.Context, userID, code string) error
	DisableTwoFactor(ctx context.Context, userID, code string) error
	JWTAccessTokenMiddleware() func(http.Handler) http.Handler
}

type service struct {
	repo          Repository
	userService   user.Service
	jwtManager    JWTManagerInterface
	authenticator TwoFactorAuthenticator
	logger        *log.Logger
}

func NewAuthService(repo Repository, userService user.Service, jwtManager JWTManagerInterface, authenticator TwoFactorAuthenticator, logger *log.Logger) Service {
	return &service{
		repo:          repo,
		userService:   userService,
		jwtManager:    jwtManager,
		authenticator: authenticator,
		logger:        logger.WithComponent(log.ComponentAuth),
	}
}

func (s *service) Login(ctx context.Context, email, password, code string) (*user.User, string, error) {
	existingUser, err := s.userService.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		s.logger.Error().Err(err).Str(log.FieldOperation, log.OpLogin).Msg("Could not load user")
		return nil, "", ErrInternalError
	}

	if !doPasswordsMatch(existingUser.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	if existingUser.TwoFactorEnabled {
		if code == "" {
			return nil, "", ErrTwoFactorRequired
		}
		if !s.authenticator.VerifyCode(existingUser.TwoFactorSecret, code) {
			return nil, "", ErrInvalid2FACode
		}
	}

	token, err := s.jwtManager.IssueAccessToken(existingUser.ID)
	if err != nil {
		s.logger.Error().Err(err).Str(log.FieldOperation, log.OpLogin).Str(log.FieldUserID, existingUser.ID).Msg("Could not issue access token")
		return nil, "", ErrInternalError
	}

	s.logger.Info().Str(log.FieldUserID, existingUser.ID).Msg("User logged in")
	return existingUser, token, nil
}

func (s *service) SetupTwoFactor(ctx context.Context, userID string) (string, string, error) {
	existingUser, err := s.loadUser(ctx, userID)
	if err != nil {
		return "", "", err
	}
	if existingUser.TwoFactorEnabled {
		return "", "", ErrUser2FAAlreadyEnabled
	}

	otpURL, secret, err := s.authenticator.GenerateSecret(existingUser.Email)
	if err != nil {
		s.logger.Error().Err(err).Str(log.FieldUserID, userID).Msg("Could not generate TOTP secret")
		return "", "", ErrInternalError
	}
	if err := s.repo.SaveTwoFactorSecret(ctx, userID, secret); err != nil {
		s.logger.Error().Err(err).Str(log.FieldUserID, userID).Msg("Could not save TOTP secret")
		return "", "", ErrInternalError
	}

	return otpURL, secret, nil
}

func (s *service) EnableTwoFactor(ctx context.Context, userID, code string) error {
	existingUser, err := s.loadUser(ctx, userID)
	if err != nil {
		return err
	}
	if existingUser.TwoFactorEnabled {
		return ErrUser2FAAlreadyEnabled
	}
	if existingUser.TwoFactorSecret == "" {
		return ErrUser2FANotSetUp
	}
	if !s.authenticator.VerifyCode(existingUser.TwoFactorSecret, code) {
		return ErrInvalid2FACode
	}

	if err := s.repo.EnableTwoFactor(ctx, userID); err != nil {
		s.logger.Error().Err(err).Str(log.FieldUserID, userID).Msg("Could not enable two-factor authentication")
		return ErrInternalError
	}
	s.logger.Info().Str(log.FieldUserID, userID).Msg("Two-factor authentication enabled")
	return nil
}

func (s *service) DisableTwoFactor(ctx context.Context, userID, code string) error {
	existingUser, err := s.loadUser(ctx, userID)
	if err != nil {
		return err
	}
	if !existingUser.TwoFactorEnabled {
		return ErrUser2FANotEnabled
	}
	if !s.authenticator.VerifyCode(existingUser.TwoFactorSecret, code) {
		return ErrInvalid2FACode
	}

	if err := s.repo.DisableTwoFactor(ctx, userID); err != nil {
		s.logger.Error().Err(err).Str(log.FieldUserID, userID).Msg("Could not disable two-factor authentication")
		return ErrInternalError
	}
	s.logger.Info().Str(log.FieldUserID, userID).Msg("Two-factor authentication disabled")
	return nil
}

func (s *service) loadUser(ctx context.Context, userID string) (*user.User, error) {
	existingUser, err := s.userService.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, user.ErrUserNotFound
		}
		s.logger.Error().Err(err).Str(log.FieldUserID, userID).Msg("Could not load user")
		return nil, ErrInternalError
	}
	return existingUser, nil
}

func doPasswordsMatch(hashedPassword, currPassword string) bool {
	err := bcrypt.CompareHashAndPassword(
		[]byte(hashedPassword), []byte(currPassword))
	return err == nil
}
