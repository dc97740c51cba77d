package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrEmailNotVerified   = errors.New("email not verified")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailAlreadyExists  = errors.New("user already exists")
	ErrUserAlreadyVerified = errors.New("user is already verified")
	ErrInvalidOTP          = errors.New("invalid or expired OTP")
	ErrUniversityIDExists  = errors.New("university ID already registered")
)

// Friendship errors
var (
	ErrSelfFriendRequest     = errors.New("you cannot send friend request to yourself")
	ErrFriendshipExists      = errors.New("friend request already exists")
	ErrFriendRequestNotFound = errors.New("friend request not found")
	ErrFriendshipNotFound    = errors.New("friendship not found")
	ErrNotRequestRecipient   = errors.New("you are not authorized to respond to this request")
	ErrNotRequestSender      = errors.New("you are not authorized to cancel this request")
	ErrRequestNotPending     = errors.New("friend request is not pending")
)

// Post errors
var (
	ErrPostNotFound = errors.New("post not found")
	ErrEmptyPost    = errors.New("post must contain either content or media")
	ErrNotPostOwner = errors.New("you are not authorized to delete this post")
)

// Notification errors
var (
	ErrNotificationNotFound     = errors.New("notification not found")
	ErrNotNotificationRecipient = errors.New("not authorized to delete this notification")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a validation error with a message
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}
