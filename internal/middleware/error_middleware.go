package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/incampus/backend/internal/app/models/dto"
	"github.com/incampus/backend/internal/pkg/apperrors"
	"github.com/incampus/backend/internal/pkg/logger"
)

// HandleAPIError maps service errors to HTTP status codes and the error
// envelope. Conflicts and invalid state transitions map to 400, matching the
// behavior clients already depend on.
func HandleAPIError(c *gin.Context, err error) {
	var custom *apperrors.CustomError
	message := err.Error()
	if errors.As(err, &custom) && custom.Message != "" {
		message = custom.Message
	}

	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound),
		errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrFriendRequestNotFound),
		errors.Is(err, apperrors.ErrFriendshipNotFound),
		errors.Is(err, apperrors.ErrPostNotFound),
		errors.Is(err, apperrors.ErrNotificationNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(message))

	case errors.Is(err, apperrors.ErrPermissionDenied),
		errors.Is(err, apperrors.ErrNotRequestRecipient),
		errors.Is(err, apperrors.ErrNotRequestSender),
		errors.Is(err, apperrors.ErrNotPostOwner),
		errors.Is(err, apperrors.ErrNotNotificationRecipient):
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(message))

	case errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrEmailNotVerified),
		errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrTokenInvalid):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(message))

	case errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrSelfFriendRequest),
		errors.Is(err, apperrors.ErrFriendshipExists),
		errors.Is(err, apperrors.ErrRequestNotPending),
		errors.Is(err, apperrors.ErrEmailAlreadyExists),
		errors.Is(err, apperrors.ErrUniversityIDExists),
		errors.Is(err, apperrors.ErrUserAlreadyVerified),
		errors.Is(err, apperrors.ErrInvalidOTP),
		errors.Is(err, apperrors.ErrEmptyPost),
		errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(message))

	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error"))
	}
}
