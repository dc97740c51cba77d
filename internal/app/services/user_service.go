package services

import (
	"context"
	"mime/multipart"
	"strings"
	"time"

	"github.com/incampus/backend/internal/app/models"
	"github.com/incampus/backend/internal/app/models/dto"
	"github.com/incampus/backend/internal/pkg/apperrors"
	"github.com/incampus/backend/internal/pkg/auth"
	"github.com/incampus/backend/internal/pkg/email"
	"github.com/incampus/backend/internal/pkg/filestorage"
	"github.com/incampus/backend/internal/pkg/logger"
)

const searchLimit = 20

// UserService handles profiles, user search, profile images and the OTP-gated
// account security flows (email change, password change, account deletion).
type UserService struct {
	users   UserStore
	storage filestorage.FileStorage
	mailer  email.Sender
}

// NewUserService creates a new UserService
func NewUserService(users UserStore, storage filestorage.FileStorage, mailer email.Sender) *UserService {
	return &UserService{users: users, storage: storage, mailer: mailer}
}

// GetProfile returns a user's full profile
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*dto.UserProfile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewUserProfile(user), nil
}

// UpdateProfile applies the given profile fields for the user
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserProfile, error) {
	if req.Role != nil && !models.IsValidRole(*req.Role) {
		return nil, apperrors.NewValidationError("Invalid role")
	}
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if trimmed == "" {
			return nil, apperrors.NewValidationError("Name cannot be empty")
		}
		req.Name = &trimmed
	}

	user, err := s.users.UpdateProfile(ctx, userID, req.Name, req.Bio, req.Role)
	if err != nil {
		return nil, err
	}
	return dto.NewUserProfile(user), nil
}

// UpdateAvatar stores a new avatar image and records its URL. The previous
// image file, if any, is removed best effort.
func (s *UserService) UpdateAvatar(ctx context.Context, userID int64, file *multipart.FileHeader) (*dto.UserProfile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	url, err := s.storage.SaveFile(file, "avatars")
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdateAvatarURL(ctx, userID, url); err != nil {
		return nil, err
	}

	if user.AvatarURL != nil {
		_ = s.storage.DeleteFile(*user.AvatarURL)
	}
	return s.GetProfile(ctx, userID)
}

// UpdateCoverPhoto stores a new cover photo and records its URL
func (s *UserService) UpdateCoverPhoto(ctx context.Context, userID int64, file *multipart.FileHeader) (*dto.UserProfile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	url, err := s.storage.SaveFile(file, "covers")
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdateCoverPhotoURL(ctx, userID, url); err != nil {
		return nil, err
	}

	if user.CoverPhotoURL != nil {
		_ = s.storage.DeleteFile(*user.CoverPhotoURL)
	}
	return s.GetProfile(ctx, userID)
}

// RequestSecurityOTP issues a fresh code to the user's current email address.
// The same code gates email change, password change and account deletion;
// issuing a new one invalidates any previous pending code.
func (s *UserService) RequestSecurityOTP(ctx context.Context, userID int64) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	code, err := generateOTP()
	if err != nil {
		return err
	}
	if err := s.users.SetOTP(ctx, userID, code, time.Now().Add(otpTTL)); err != nil {
		return err
	}

	if s.mailer != nil {
		if err := s.mailer.SendOTP(user.Email, user.Name, code); err != nil {
			logger.Error().Err(err).Str("email", user.Email).Msg("Failed to send security code")
		}
	}
	return nil
}

// ChangeEmail verifies the pending code and moves the account to a new email
// address
func (s *UserService) ChangeEmail(ctx context.Context, userID int64, code, newEmail string) (*dto.UserProfile, error) {
	user, err := s.verifySecurityOTP(ctx, userID, code)
	if err != nil {
		return nil, err
	}

	newEmail = strings.TrimSpace(newEmail)
	if newEmail == user.Email {
		return nil, apperrors.NewValidationError("New email matches the current one")
	}
	taken, err := s.users.EmailExists(ctx, newEmail)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	if err := s.users.UpdateEmail(ctx, userID, newEmail); err != nil {
		return nil, err
	}
	if err := s.users.ClearOTP(ctx, userID); err != nil {
		return nil, err
	}

	logger.Info().Int64("userId", userID).Msg("Email address changed")
	return s.GetProfile(ctx, userID)
}

// ChangePassword verifies the pending code and replaces the password
func (s *UserService) ChangePassword(ctx context.Context, userID int64, code, newPassword string) error {
	if _, err := s.verifySecurityOTP(ctx, userID, code); err != nil {
		return err
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, userID, hashed); err != nil {
		return err
	}
	if err := s.users.ClearOTP(ctx, userID); err != nil {
		return err
	}

	logger.Info().Int64("userId", userID).Msg("Password changed")
	return nil
}

// DeleteAccount verifies the pending code and removes the account with
// everything hanging off it. Profile image files are cleaned up best effort.
func (s *UserService) DeleteAccount(ctx context.Context, userID int64, code string) error {
	user, err := s.verifySecurityOTP(ctx, userID, code)
	if err != nil {
		return err
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}

	if user.AvatarURL != nil {
		_ = s.storage.DeleteFile(*user.AvatarURL)
	}
	if user.CoverPhotoURL != nil {
		_ = s.storage.DeleteFile(*user.CoverPhotoURL)
	}

	logger.Info().Int64("userId", userID).Msg("Account deleted")
	return nil
}

func (s *UserService) verifySecurityOTP(ctx context.Context, userID int64, code string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.HasPendingOTP(time.Now()) || *user.OTPCode != code {
		return nil, apperrors.ErrInvalidOTP
	}
	return user, nil
}

// Search finds users matching the query string
func (s *UserService) Search(ctx context.Context, query string) ([]dto.UserSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []dto.UserSummary{}, nil
	}

	users, err := s.users.Search(ctx, query, searchLimit)
	if err != nil {
		return nil, err
	}

	results := make([]dto.UserSummary, 0, len(users))
	for _, user := range users {
		results = append(results, dto.NewUserSummary(user))
	}
	return results, nil
}
