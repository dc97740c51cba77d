package dto

import (
	"time"

	"github.com/incampus/backend/internal/app/models"
	"github.com/incampus/backend/internal/pkg/universityid"
)

// UserSummary is the compact user representation embedded in other responses
type UserSummary struct {
	ID     int64   `json:"id" example:"1"`
	Name   string  `json:"name" example:"Arjun Das"`
	Avatar *string `json:"avatar,omitempty"`
	Role   string  `json:"role" example:"student"`
	Course string  `json:"course,omitempty" example:"BCA"`
	Batch  string  `json:"batch,omitempty" example:"2023"`
}

// UserProfile is the full user representation returned by profile endpoints
type UserProfile struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	UniversityID string    `json:"universityId"`
	Name         string    `json:"name"`
	Bio          string    `json:"bio,omitempty"`
	Role         string    `json:"role"`
	Course       string    `json:"course,omitempty"`
	Batch        string    `json:"batch,omitempty"`
	Avatar       *string   `json:"avatar,omitempty"`
	CoverPhoto   *string   `json:"coverPhoto,omitempty"`
	IsVerified   bool      `json:"isVerified"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UpdateProfileRequest is the payload for profile updates
type UpdateProfileRequest struct {
	Name *string `json:"name,omitempty"`
	Bio  *string `json:"bio,omitempty"`
	Role *string `json:"role,omitempty"`
}

// ChangeEmailRequest is the payload for the OTP-gated email change
type ChangeEmailRequest struct {
	OTP      string `json:"otp" binding:"required,len=6"`
	NewEmail string `json:"newEmail" binding:"required,email"`
}

// ChangePasswordRequest is the payload for the OTP-gated password change
type ChangePasswordRequest struct {
	OTP         string `json:"otp" binding:"required,len=6"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// DeleteAccountRequest is the payload for the OTP-gated account deletion
type DeleteAccountRequest struct {
	OTP string `json:"otp" binding:"required,len=6"`
}

// NewUserSummary builds a summary view with the course and batch derived from
// the university identifier.
func NewUserSummary(user *models.User) UserSummary {
	course, batch := universityid.Parse(user.UniversityID)
	return UserSummary{
		ID:     user.ID,
		Name:   user.Name,
		Avatar: user.AvatarURL,
		Role:   string(user.Role),
		Course: course,
		Batch:  batch,
	}
}

// NewUserProfile builds the full profile view of a user
func NewUserProfile(user *models.User) *UserProfile {
	course, batch := universityid.Parse(user.UniversityID)
	return &UserProfile{
		ID:           user.ID,
		Email:        user.Email,
		UniversityID: user.UniversityID,
		Name:         user.Name,
		Bio:          user.Bio,
		Role:         string(user.Role),
		Course:       course,
		Batch:        batch,
		Avatar:       user.AvatarURL,
		CoverPhoto:   user.CoverPhotoURL,
		IsVerified:   user.IsVerified,
		CreatedAt:    user.CreatedAt,
	}
}
