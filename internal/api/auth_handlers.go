package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listoria/listoria-server/internal/service"
)

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "register",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/register",
		Summary:     "Register new user",
		Description: "Creates a new account and emails a six digit verification code. The account stays pending until the code is confirmed.",
		Tags:        []string{"Authentication"},
	}, s.handleRegister)

	huma.Register(s.api, huma.Operation{
		OperationID: "verifyEmail",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/verify",
		Summary:     "Verify email address",
		Description: "Confirms a registration with the emailed code and returns the first session tokens",
		Tags:        []string{"Authentication"},
	}, s.handleVerifyEmail)

	huma.Register(s.api, huma.Operation{
		OperationID: "resendCode",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/resend",
		Summary:     "Resend verification code",
		Description: "Issues a fresh verification code for a pending account",
		Tags:        []string{"Authentication"},
	}, s.handleResendCode)

	huma.Register(s.api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/login",
		Summary:     "User login",
		Description: "Authenticates a user and returns access and refresh tokens",
		Tags:        []string{"Authentication"},
	}, s.handleLogin)

	huma.Register(s.api, huma.Operation{
		OperationID: "refresh",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/refresh",
		Summary:     "Refresh tokens",
		Description: "Exchanges a refresh token for new tokens",
		Tags:        []string{"Authentication"},
	}, s.handleRefresh)

	huma.Register(s.api, huma.Operation{
		OperationID: "logout",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/logout",
		Summary:     "Logout",
		Description: "Revokes the specified session",
		Tags:        []string{"Authentication"},
	}, s.handleLogout)

	huma.Register(s.api, huma.Operation{
		OperationID: "forgotPassword",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/forgot-password",
		Summary:     "Request password reset",
		Description: "Emails a reset code. Always succeeds so the endpoint cannot probe for accounts.",
		Tags:        []string{"Authentication"},
	}, s.handleForgotPassword)

	huma.Register(s.api, huma.Operation{
		OperationID: "resetPassword",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/reset-password",
		Summary:     "Reset password",
		Description: "Consumes an emailed reset code and replaces the password. All sessions are revoked.",
		Tags:        []string{"Authentication"},
	}, s.handleResetPassword)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCurrentUser",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/me",
		Summary:     "Current user",
		Description: "Returns the authenticated user's profile",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetCurrentUser)
}

// === DTOs ===

// RegisterRequest is the request body for user registration.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email,max=254" doc:"User email address"`
	Password  string `json:"password" validate:"required,min=8,max=1024" doc:"User password"`
	Name      string `json:"name" validate:"required,min=1,max=100" doc:"Display name"`
	BirthDate string `json:"birth_date" validate:"required" doc:"Birth date (YYYY-MM-DD), must be 18 or older"`
}

// RegisterInput wraps the register request for Huma.
type RegisterInput struct {
	Body RegisterRequest
}

// RegisterResponse contains the result of a registration.
type RegisterResponse struct {
	UserID  string `json:"user_id" doc:"Created user ID"`
	Message string `json:"message" doc:"Status message"`
}

// RegisterOutput wraps the register response for Huma.
type RegisterOutput struct {
	Body RegisterResponse
}

// VerifyEmailRequest is the request body for email verification.
type VerifyEmailRequest struct {
	Email      string `json:"email" validate:"required,email,max=254" doc:"Registered email address"`
	Code       string `json:"code" validate:"required,len=6" doc:"Six digit code from the verification email"`
	ClientName string `json:"client_name,omitempty" validate:"omitempty,max=100" doc:"Client name for the session"`
}

// VerifyEmailInput wraps the verify request with headers for Huma.
type VerifyEmailInput struct {
	Body          VerifyEmailRequest
	XForwardedFor string `header:"X-Forwarded-For"`
	XRealIP       string `header:"X-Real-IP"`
}

// ResendCodeRequest is the request body for resending a verification code.
type ResendCodeRequest struct {
	Email string `json:"email" validate:"required,email,max=254" doc:"Registered email address"`
}

// ResendCodeInput wraps the resend request for Huma.
type ResendCodeInput struct {
	Body ResendCodeRequest
}

// LoginRequest is the request body for user login.
type LoginRequest struct {
	Email      string `json:"email" validate:"required,email,max=254" doc:"User email"`
	Password   string `json:"password" validate:"required,max=1024" doc:"User password"`
	ClientName string `json:"client_name,omitempty" validate:"omitempty,max=100" doc:"Client name for the session"`
}

// LoginInput wraps the login request with headers for Huma.
type LoginInput struct {
	Body          LoginRequest
	XForwardedFor string `header:"X-Forwarded-For"`
	XRealIP       string `header:"X-Real-IP"`
}

// RefreshRequest is the request body for token refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required" doc:"Refresh token"`
	ClientName   string `json:"client_name,omitempty" validate:"omitempty,max=100" doc:"Updated client name"`
}

// RefreshInput wraps the refresh request with headers for Huma.
type RefreshInput struct {
	Body          RefreshRequest
	XForwardedFor string `header:"X-Forwarded-For"`
	XRealIP       string `header:"X-Real-IP"`
}

// LogoutRequest is the request body for logout.
type LogoutRequest struct {
	SessionID string `json:"session_id" validate:"required,max=100" doc:"Session ID to revoke"`
}

// LogoutInput wraps the logout request for Huma.
type LogoutInput struct {
	Body LogoutRequest
}

// ForgotPasswordRequest is the request body for starting a password reset.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email,max=254" doc:"Account email address"`
}

// ForgotPasswordInput wraps the forgot-password request for Huma.
type ForgotPasswordInput struct {
	Body ForgotPasswordRequest
}

// ResetPasswordRequest is the request body for completing a password reset.
type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email,max=254" doc:"Account email address"`
	Code        string `json:"code" validate:"required,len=6" doc:"Six digit code from the reset email"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=1024" doc:"Replacement password"`
}

// ResetPasswordInput wraps the reset-password request for Huma.
type ResetPasswordInput struct {
	Body ResetPasswordRequest
}

// AuthenticatedInput carries the Authorization header for protected routes.
type AuthenticatedInput struct {
	Authorization string `header:"Authorization" doc:"Bearer access token"`
}

// UserResponse contains user information in auth responses.
type UserResponse struct {
	ID          string    `json:"id" doc:"User ID"`
	Email       string    `json:"email" doc:"User email"`
	Name        string    `json:"name" doc:"Display name"`
	BirthDate   string    `json:"birth_date,omitempty" doc:"Birth date (YYYY-MM-DD)"`
	Status      string    `json:"status,omitempty" doc:"Account status: active or pending"`
	CreatedAt   time.Time `json:"created_at" doc:"Creation timestamp"`
	UpdatedAt   time.Time `json:"updated_at" doc:"Last update timestamp"`
	VerifiedAt  time.Time `json:"verified_at,omitzero" doc:"Email verification timestamp"`
	LastLoginAt time.Time `json:"last_login_at,omitzero" doc:"Last login timestamp"`
}

// AuthResponse contains authentication tokens and user info.
type AuthResponse struct {
	AccessToken  string       `json:"access_token" doc:"PASETO access token"`
	RefreshToken string       `json:"refresh_token" doc:"Refresh token"`
	SessionID    string       `json:"session_id" doc:"Session identifier"`
	TokenType    string       `json:"token_type" doc:"Token type (Bearer)"`
	ExpiresIn    int          `json:"expires_in" doc:"Token expiry in seconds"`
	User         UserResponse `json:"user" doc:"Authenticated user"`
}

// AuthOutput wraps the auth response for Huma.
type AuthOutput struct {
	Body AuthResponse
}

// MessageResponse contains a simple message.
type MessageResponse struct {
	Message string `json:"message" doc:"Success message"`
}

// MessageOutput wraps the message response for Huma.
type MessageOutput struct {
	Body MessageResponse
}

// UserOutput wraps a user profile for Huma.
type UserOutput struct {
	Body UserResponse
}

// === Handlers ===

func (s *Server) handleRegister(ctx context.Context, input *RegisterInput) (*RegisterOutput, error) {
	resp, err := s.services.Auth.Register(ctx, service.RegisterRequest{
		Email:     input.Body.Email,
		Password:  input.Body.Password,
		Name:      input.Body.Name,
		BirthDate: input.Body.BirthDate,
	})
	if err != nil {
		return nil, err
	}

	return &RegisterOutput{
		Body: RegisterResponse{
			UserID:  resp.UserID,
			Message: resp.Message,
		},
	}, nil
}

func (s *Server) handleVerifyEmail(ctx context.Context, input *VerifyEmailInput) (*AuthOutput, error) {
	resp, err := s.services.Auth.VerifyEmail(ctx, service.VerifyEmailRequest{
		Email:      input.Body.Email,
		Code:       input.Body.Code,
		ClientName: input.Body.ClientName,
		IPAddress:  extractIP(input.XForwardedFor, input.XRealIP),
	})
	if err != nil {
		return nil, err
	}

	return &AuthOutput{Body: mapAuthResponse(resp)}, nil
}

func (s *Server) handleResendCode(ctx context.Context, input *ResendCodeInput) (*MessageOutput, error) {
	if err := s.services.Auth.ResendVerificationCode(ctx, input.Body.Email); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "If the account is pending, a new code was sent"}}, nil
}

func (s *Server) handleLogin(ctx context.Context, input *LoginInput) (*AuthOutput, error) {
	resp, err := s.services.Auth.Login(ctx, service.LoginRequest{
		Email:      input.Body.Email,
		Password:   input.Body.Password,
		ClientName: input.Body.ClientName,
		IPAddress:  extractIP(input.XForwardedFor, input.XRealIP),
	})
	if err != nil {
		return nil, err
	}

	return &AuthOutput{Body: mapAuthResponse(resp)}, nil
}

func (s *Server) handleRefresh(ctx context.Context, input *RefreshInput) (*AuthOutput, error) {
	resp, err := s.services.Auth.RefreshTokens(ctx, service.RefreshRequest{
		RefreshToken: input.Body.RefreshToken,
		ClientName:   input.Body.ClientName,
		IPAddress:    extractIP(input.XForwardedFor, input.XRealIP),
	})
	if err != nil {
		return nil, err
	}

	return &AuthOutput{Body: mapAuthResponse(resp)}, nil
}

func (s *Server) handleLogout(ctx context.Context, input *LogoutInput) (*MessageOutput, error) {
	if err := s.services.Auth.Logout(ctx, input.Body.SessionID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Logged out successfully"}}, nil
}

func (s *Server) handleForgotPassword(ctx context.Context, input *ForgotPasswordInput) (*MessageOutput, error) {
	if err := s.services.Auth.ForgotPassword(ctx, service.ForgotPasswordRequest{
		Email: input.Body.Email,
	}); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "If the account exists, a reset code was sent"}}, nil
}

func (s *Server) handleResetPassword(ctx context.Context, input *ResetPasswordInput) (*MessageOutput, error) {
	if err := s.services.Auth.ResetPassword(ctx, service.ResetPasswordRequest{
		Email:       input.Body.Email,
		Code:        input.Body.Code,
		NewPassword: input.Body.NewPassword,
	}); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Password reset successfully"}}, nil
}

func (s *Server) handleGetCurrentUser(ctx context.Context, _ *AuthenticatedInput) (*UserOutput, error) {
	user, err := s.RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: mapUserResponse(user)}, nil
}
