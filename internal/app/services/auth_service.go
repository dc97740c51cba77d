package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/incampus/backend/internal/app/models"
	"github.com/incampus/backend/internal/pkg/apperrors"
	"github.com/incampus/backend/internal/pkg/auth"
	"github.com/incampus/backend/internal/pkg/email"
	"github.com/incampus/backend/internal/pkg/logger"
)

// Verification codes expire this long after signup
const otpTTL = 10 * time.Minute

// AuthService handles signup, email verification and login
type AuthService struct {
	users      UserStore
	jwtService *auth.JWTService
	mailer     email.Sender
}

// NewAuthService creates a new AuthService
func NewAuthService(users UserStore, jwtService *auth.JWTService, mailer email.Sender) *AuthService {
	return &AuthService{users: users, jwtService: jwtService, mailer: mailer}
}

// Signup registers an unverified account and sends a verification code to the
// email address. Mail delivery is best effort; a delivery failure does not
// undo the registration.
func (s *AuthService) Signup(ctx context.Context, emailAddr, password, universityID string) (*models.User, error) {
	exists, err := s.users.EmailExists(ctx, emailAddr)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	code, err := generateOTP()
	if err != nil {
		return nil, fmt.Errorf("error generating verification code: %w", err)
	}
	expiresAt := time.Now().Add(otpTTL)

	user := &models.User{
		Email:        emailAddr,
		Password:     hashed,
		UniversityID: universityID,
		Role:         models.RoleStudent,
		IsVerified:   false,
		OTPCode:      &code,
		OTPExpiresAt: &expiresAt,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if s.mailer != nil {
		if err := s.mailer.SendOTP(user.Email, user.Name, code); err != nil {
			logger.Error().Err(err).Str("email", user.Email).Msg("Failed to send verification code")
		}
	}

	logger.Info().Int64("userId", user.ID).Str("email", user.Email).Msg("User registered")
	return user, nil
}

// VerifyOTP checks the signup code and, when valid, activates the account and
// returns a fresh access token.
func (s *AuthService) VerifyOTP(ctx context.Context, emailAddr, code string) (*models.User, string, int, error) {
	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		return nil, "", 0, err
	}

	if user.IsVerified {
		return nil, "", 0, apperrors.ErrUserAlreadyVerified
	}
	if !user.HasPendingOTP(time.Now()) || *user.OTPCode != code {
		return nil, "", 0, apperrors.ErrInvalidOTP
	}

	if err := s.users.MarkVerified(ctx, user.ID); err != nil {
		return nil, "", 0, err
	}
	user.IsVerified = true
	user.OTPCode = nil
	user.OTPExpiresAt = nil

	token, expiresIn, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, "", 0, fmt.Errorf("error generating token: %w", err)
	}

	logger.Info().Int64("userId", user.ID).Msg("User verified")
	return user, token, expiresIn, nil
}

// Login checks credentials and returns an access token. Unverified accounts
// cannot log in.
func (s *AuthService) Login(ctx context.Context, emailAddr, password string) (*models.User, string, int, error) {
	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		// Hide whether the account exists
		return nil, "", 0, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, "", 0, apperrors.ErrInvalidCredentials
	}
	if !user.IsVerified {
		return nil, "", 0, apperrors.ErrEmailNotVerified
	}

	token, expiresIn, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, "", 0, fmt.Errorf("error generating token: %w", err)
	}

	logger.Info().Int64("userId", user.ID).Msg("User logged in")
	return user, token, expiresIn, nil
}

// generateOTP produces an unbiased six digit code
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
