package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/incampus/backend/internal/app/models/dto"
	"github.com/incampus/backend/internal/app/services"
	"github.com/incampus/backend/internal/middleware"
)

// UserController handles profile and user search endpoints
type UserController struct {
	userService *services.UserService
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService) *UserController {
	return &UserController{userService: userService}
}

// Me handles fetching the caller's own profile
// @Summary Get own profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UserProfile} "Profile"
// @Router /users/me [get]
func (c *UserController) Me(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	profile, err := c.userService.GetProfile(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"user": profile}))
}

// UpdateMe handles updating the caller's profile fields
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.UserProfile} "Updated profile"
// @Failure 400 {object} dto.APIResponse "Invalid fields"
// @Router /users/me [patch]
func (c *UserController) UpdateMe(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid profile fields"))
		return
	}

	profile, err := c.userService.UpdateProfile(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"user": profile}))
}

// Get handles fetching another user's profile
// @Summary Get a user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User id"
// @Success 200 {object} dto.APIResponse{data=dto.UserProfile} "Profile"
// @Failure 404 {object} dto.APIResponse "User not found"
// @Router /users/{userId} [get]
func (c *UserController) Get(ctx *gin.Context) {
	userID, ok := pathID(ctx, "userId")
	if !ok {
		return
	}

	profile, err := c.userService.GetProfile(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"user": profile}))
}

// Search handles user search
// @Summary Search users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param q query string true "Search term"
// @Success 200 {object} dto.APIResponse{data=[]dto.UserSummary} "Matches"
// @Router /users/search [get]
func (c *UserController) Search(ctx *gin.Context) {
	results, err := c.userService.Search(ctx, ctx.Query("q"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"users": results}))
}

// SendSecurityOTP handles issuing a code for the account security flows. The
// same handler backs the email-change, password-change and account-deletion
// send endpoints; the code is always delivered to the current address.
// @Summary Send an account security code
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Code sent"
// @Router /users/send-email-change-otp [post]
func (c *UserController) SendSecurityOTP(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	if err := c.userService.RequestSecurityOTP(ctx, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("A verification code was sent to your email"))
}

// ChangeEmail handles the OTP-gated email change
// @Summary Change email address
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangeEmailRequest true "Code and new address"
// @Success 200 {object} dto.APIResponse{data=dto.UserProfile} "Updated profile"
// @Failure 400 {object} dto.APIResponse "Invalid or expired code, or address taken"
// @Router /users/verify-email-change-otp [post]
func (c *UserController) ChangeEmail(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	var req dto.ChangeEmailRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("A 6-digit code and a valid new email are required"))
		return
	}

	profile, err := c.userService.ChangeEmail(ctx, userID, req.OTP, req.NewEmail)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"user": profile}))
}

// ChangePassword handles the OTP-gated password change
// @Summary Change password
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangePasswordRequest true "Code and new password"
// @Success 200 {object} dto.APIResponse "Password changed"
// @Failure 400 {object} dto.APIResponse "Invalid or expired code"
// @Router /users/verify-password-change-otp [post]
func (c *UserController) ChangePassword(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	var req dto.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("A 6-digit code and a password of at least 8 characters are required"))
		return
	}

	if err := c.userService.ChangePassword(ctx, userID, req.OTP, req.NewPassword); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Password changed successfully"))
}

// DeleteAccount handles the OTP-gated account deletion
// @Summary Delete own account
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.DeleteAccountRequest true "Code"
// @Success 200 {object} dto.APIResponse "Account deleted"
// @Failure 400 {object} dto.APIResponse "Invalid or expired code"
// @Router /users/verify-delete-account-otp [post]
func (c *UserController) DeleteAccount(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	var req dto.DeleteAccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("A 6-digit code is required"))
		return
	}

	if err := c.userService.DeleteAccount(ctx, userID, req.OTP); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Account deleted"))
}

// UploadAvatar handles replacing the caller's avatar
// @Summary Upload an avatar image
// @Tags users
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param avatar formData file true "Image file"
// @Success 200 {object} dto.APIResponse{data=dto.UserProfile} "Updated profile"
// @Failure 400 {object} dto.APIResponse "Missing file"
// @Router /profile/avatar [post]
func (c *UserController) UploadAvatar(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	file, err := ctx.FormFile("avatar")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("An avatar file is required"))
		return
	}

	profile, err := c.userService.UpdateAvatar(ctx, userID, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"user": profile}))
}

// UploadCoverPhoto handles replacing the caller's cover photo
// @Summary Upload a cover photo
// @Tags users
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param coverPhoto formData file true "Image file"
// @Success 200 {object} dto.APIResponse{data=dto.UserProfile} "Updated profile"
// @Failure 400 {object} dto.APIResponse "Missing file"
// @Router /profile/cover [post]
func (c *UserController) UploadCoverPhoto(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	file, err := ctx.FormFile("coverPhoto")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("A coverPhoto file is required"))
		return
	}

	profile, err := c.userService.UpdateCoverPhoto(ctx, userID, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"user": profile}))
}
