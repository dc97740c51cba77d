package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/incampus/backend/internal/app/models/dto"
	"github.com/incampus/backend/internal/app/services"
	"github.com/incampus/backend/internal/middleware"
)

// AuthController handles signup, verification and login
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Signup handles new account registration
// @Summary Register a new account
// @Description Creates an unverified account and emails a verification code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "Signup details"
// @Success 201 {object} dto.APIResponse{data=dto.SignupResponse} "Account created"
// @Failure 400 {object} dto.APIResponse "Invalid input or email already registered"
// @Router /auth/signup [post]
func (c *AuthController) Signup(ctx *gin.Context) {
	var req dto.SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Valid email, password (min 8 chars) and university ID are required"))
		return
	}

	user, err := c.authService.Signup(ctx, req.Email, req.Password, req.UniversityID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	response := dto.NewSuccessResponse(dto.SignupResponse{Email: user.Email})
	response.Message = "User created successfully. Please verify your email."
	ctx.JSON(http.StatusCreated, response)
}

// VerifyOTP handles email verification
// @Summary Verify a signup code
// @Description Activates the account and returns an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.VerifyOTPRequest true "Email and code"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse} "Account verified"
// @Failure 400 {object} dto.APIResponse "Invalid or expired code"
// @Failure 404 {object} dto.APIResponse "Unknown email"
// @Router /auth/verify-otp [post]
func (c *AuthController) VerifyOTP(ctx *gin.Context) {
	var req dto.VerifyOTPRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Email and 6-digit code are required"))
		return
	}

	user, token, expiresIn, err := c.authService.VerifyOTP(ctx, req.Email, req.OTP)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.TokenResponse{
		Token:     token,
		ExpiresIn: expiresIn,
		User:      dto.NewUserProfile(user),
	}))
}

// Login handles credential login
// @Summary Log in
// @Description Checks credentials and returns an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse} "Logged in"
// @Failure 401 {object} dto.APIResponse "Bad credentials or unverified account"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Please provide email and password"))
		return
	}

	user, token, expiresIn, err := c.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.TokenResponse{
		Token:     token,
		ExpiresIn: expiresIn,
		User:      dto.NewUserProfile(user),
	}))
}
