package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID            int64      `json:"id" db:"id" example:"1"`                                    // Unique identifier for the user
	Email         string     `json:"email" db:"email" example:"student@bwu.ac.in"`              // User's email address
	Password      string     `json:"-" db:"password"`                                           // User's hashed password (excluded from JSON)
	UniversityID  string     `json:"universityId" db:"university_id" example:"BWU/BCA/23/734"`  // Structured campus identifier encoding course and batch
	Name          string     `json:"name" db:"name" example:"Arjun Das"`                        // Display name
	Bio           string     `json:"bio,omitempty" db:"bio"`                                    // Short profile bio
	Role          RoleType   `json:"role" db:"role" example:"student"`                          // User's role (student, faculty or admin)
	AvatarURL     *string    `json:"avatar,omitempty" db:"avatar_url"`                          // URL of the user's avatar (nullable)
	CoverPhotoURL *string    `json:"coverPhoto,omitempty" db:"cover_photo_url"`                 // URL of the user's cover photo (nullable)
	IsVerified    bool       `json:"isVerified" db:"is_verified" example:"true"`                // Whether the email address has been verified
	OTPCode       *string    `json:"-" db:"otp_code"`                                           // Pending verification code (nullable)
	OTPExpiresAt  *time.Time `json:"-" db:"otp_expires_at"`                                     // Expiry of the pending verification code
	CreatedAt     time.Time  `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`  // Timestamp when the user was created
	UpdatedAt     time.Time  `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"`  // Timestamp when the user was last updated
}

// HasPendingOTP reports whether the user has a verification code that has not
// expired yet.
func (u *User) HasPendingOTP(now time.Time) bool {
	return u.OTPCode != nil && u.OTPExpiresAt != nil && now.Before(*u.OTPExpiresAt)
}
