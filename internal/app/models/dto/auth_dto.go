package dto

// SignupRequest is the payload for account creation
type SignupRequest struct {
	Email        string `json:"email" binding:"required,email" example:"student@bwu.ac.in"`
	Password     string `json:"password" binding:"required,min=8" example:"s3cretpass"`
	UniversityID string `json:"universityId" binding:"required" example:"BWU/BCA/23/734"`
}

// SignupResponse carries the email the verification code was sent to
type SignupResponse struct {
	Email string `json:"email" example:"student@bwu.ac.in"`
}

// LoginRequest is the payload for credential login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// VerifyOTPRequest is the payload for email verification
type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6"`
}

// TokenResponse carries an issued access token and the authenticated user
type TokenResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expiresIn" example:"3600"`
	User      *UserProfile `json:"user"`
}
