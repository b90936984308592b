package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/listoria/listoria-server/internal/auth"
	"github.com/listoria/listoria-server/internal/domain"
	domainerrors "github.com/listoria/listoria-server/internal/errors"
	"github.com/listoria/listoria-server/internal/id"
	"github.com/listoria/listoria-server/internal/mail"
	"github.com/listoria/listoria-server/internal/store"
)

// minimumAge is the youngest age allowed to register. The service is
// restricted to adults.
const minimumAge = 18

// birthDateLayout is the wire format for birth dates.
const birthDateLayout = "2006-01-02"

// validate is a shared validator instance for request validation.
var validate = func() *validator.Validate {
	v := validator.New()
	// Use JSON tag names for field names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "" {
			return fld.Name
		}
		// Remove any options (like omitempty, -)
		for i := range len(name) {
			if name[i] == ',' {
				return name[:i]
			}
		}
		return name
	})
	return v
}()

// AuthService handles user accounts: registration with email verification,
// login, password reset, and token verification. Session management is
// delegated to SessionService.
type AuthService struct {
	store          *store.Store
	tokenService   *auth.TokenService
	sessionService *SessionService
	mailSender     mail.Sender
	logger         *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	store *store.Store,
	tokenService *auth.TokenService,
	sessionService *SessionService,
	mailSender mail.Sender,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		store:          store,
		tokenService:   tokenService,
		sessionService: sessionService,
		mailSender:     mailSender,
		logger:         logger,
	}
}

// RegisterRequest contains user registration data.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=1024"`
	Name      string `json:"name" validate:"required"`
	BirthDate string `json:"birth_date" validate:"required"`
}

// RegisterResponse contains the result of a registration request.
type RegisterResponse struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

// VerifyEmailRequest confirms a registered address with an emailed code.
type VerifyEmailRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Code       string `json:"code" validate:"required,len=6,numeric"`
	ClientName string `json:"client_name"`
	IPAddress  string `json:"-"` // Extracted from request by handler
}

// LoginRequest contains user credentials.
type LoginRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	ClientName string `json:"client_name"`
	IPAddress  string `json:"-"` // Extracted from request by handler
}

// RefreshRequest contains the refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
	ClientName   string `json:"client_name"`
	IPAddress    string `json:"-"` // Extracted from request by handler
}

// ForgotPasswordRequest starts a password reset.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest completes a password reset with an emailed code.
type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required,len=6,numeric"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=1024"`
}

// AuthResponse contains authentication tokens and user data.
type AuthResponse struct {
	User *domain.User `json:"user"`
	SessionResponse
}

// Register creates a new user account in pending status and emails a
// six digit verification code. The account cannot log in until the code
// is confirmed via VerifyEmail.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	birthDate, err := time.Parse(birthDateLayout, req.BirthDate)
	if err != nil {
		return nil, domainerrors.Validation("birth_date must be in YYYY-MM-DD format")
	}
	applicant := domain.User{BirthDate: birthDate}
	if applicant.AgeAt(time.Now()) < minimumAge {
		return nil, domainerrors.Forbiddenf("this service is restricted to users %d and older", minimumAge)
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	userID, err := id.Generate("user")
	if err != nil {
		return nil, fmt.Errorf("generate user ID: %w", err)
	}

	user := &domain.User{
		Record: domain.Record{
			ID: userID,
		},
		Email:        req.Email,
		PasswordHash: passwordHash,
		Name:         req.Name,
		BirthDate:    birthDate,
		Status:       domain.UserStatusPending,
	}
	user.InitTimestamps()

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			return nil, domainerrors.AlreadyExists("email already in use")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := s.issueCode(ctx, store.CodePurposeVerify, user.Email, user.Name); err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("User registered (pending verification)",
			"user_id", userID,
			"email", user.Email,
		)
	}

	return &RegisterResponse{
		UserID:  userID,
		Message: "Registration received. Check your email for the verification code.",
	}, nil
}

// VerifyEmail consumes a verification code, activates the account, and
// creates the first session. Codes are single use and expire after
// fifteen minutes.
func (s *AuthService) VerifyEmail(ctx context.Context, req VerifyEmailRequest) (*AuthResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, domainerrors.InvalidCredentials("invalid email or code")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := s.store.ConsumeCode(ctx, store.CodePurposeVerify, req.Email, req.Code); err != nil {
		switch {
		case errors.Is(err, store.ErrCodeNotFound):
			return nil, domainerrors.TokenExpired("verification code expired or already used")
		case errors.Is(err, store.ErrCodeMismatch):
			return nil, domainerrors.InvalidCredentials("invalid email or code")
		}
		return nil, fmt.Errorf("consume code: %w", err)
	}

	now := time.Now()
	user.Status = domain.UserStatusActive
	user.VerifiedAt = now
	user.LastLoginAt = now
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("activate user: %w", err)
	}

	sessionResp, err := s.sessionService.CreateSession(ctx, user, req.ClientName, req.IPAddress)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("User verified",
			"user_id", user.ID,
			"email", user.Email,
		)
	}

	return &AuthResponse{
		User:            user,
		SessionResponse: *sessionResp,
	}, nil
}

// ResendVerificationCode issues a fresh verification code for a pending
// account, replacing any outstanding one.
func (s *AuthService) ResendVerificationCode(ctx context.Context, email string) error {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// Don't leak whether email exists
			return nil
		}
		return fmt.Errorf("lookup user: %w", err)
	}
	if !user.IsPending() {
		return domainerrors.AlreadyConfigured("account is already verified")
	}
	return s.issueCode(ctx, store.CodePurposeVerify, user.Email, user.Name)
}

// Login authenticates a user and creates a new session.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// Don't leak whether email exists
			return nil, domainerrors.InvalidCredentials("invalid email or password")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	valid, err := auth.VerifyPassword(user.PasswordHash, req.Password)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		return nil, domainerrors.InvalidCredentials("invalid email or password")
	}

	if user.IsPending() {
		return nil, domainerrors.Forbidden("your email address has not been verified")
	}

	user.LastLoginAt = time.Now()
	user.Touch()
	if err := s.store.UpdateUser(ctx, user); err != nil {
		// Log but don't fail login
		if s.logger != nil {
			s.logger.Warn("Failed to update last login time",
				"user_id", user.ID,
				"error", err,
			)
		}
	}

	sessionResp, err := s.sessionService.CreateSession(ctx, user, req.ClientName, req.IPAddress)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("User logged in",
			"user_id", user.ID,
			"client", req.ClientName,
		)
	}

	return &AuthResponse{
		User:            user,
		SessionResponse: *sessionResp,
	}, nil
}

// RefreshTokens generates new tokens using a refresh token.
// The old refresh token is invalidated (token rotation).
func (s *AuthService) RefreshTokens(ctx context.Context, req RefreshRequest) (*AuthResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	sessionResp, user, err := s.sessionService.RefreshSession(ctx, req.RefreshToken, req.ClientName, req.IPAddress)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		User:            user,
		SessionResponse: *sessionResp,
	}, nil
}

// Logout revokes a session, invalidating its refresh token.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.sessionService.DeleteSession(ctx, sessionID)
}

// ForgotPassword emails a reset code to the account. Always succeeds for
// unknown addresses so the endpoint cannot be used to probe for accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error {
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}

	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// Don't leak whether email exists
			return nil
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	code, err := auth.GenerateCode()
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}
	if err := s.store.SaveCode(ctx, store.CodePurposeReset, user.Email, code); err != nil {
		return fmt.Errorf("save code: %w", err)
	}
	if err := s.mailSender.SendResetCode(ctx, user.Email, code); err != nil {
		return fmt.Errorf("send reset code: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Password reset code issued", "user_id", user.ID)
	}
	return nil
}

// ResetPassword consumes a reset code and replaces the password. All of
// the user's sessions are revoked so stolen refresh tokens die with the
// old password.
func (s *AuthService) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}

	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return domainerrors.InvalidCredentials("invalid email or code")
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	if err := s.store.ConsumeCode(ctx, store.CodePurposeReset, req.Email, req.Code); err != nil {
		switch {
		case errors.Is(err, store.ErrCodeNotFound):
			return domainerrors.TokenExpired("reset code expired or already used")
		case errors.Is(err, store.ErrCodeMismatch):
			return domainerrors.InvalidCredentials("invalid email or code")
		}
		return fmt.Errorf("consume code: %w", err)
	}

	passwordHash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = passwordHash
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	if err := s.store.DeleteAllUserSessions(ctx, user.ID); err != nil {
		if s.logger != nil {
			s.logger.Warn("Failed to revoke sessions after password reset",
				"user_id", user.ID,
				"error", err,
			)
		}
	}

	if s.logger != nil {
		s.logger.Info("Password reset", "user_id", user.ID)
	}
	return nil
}

// VerifyAccessToken validates a token and returns the associated user.
// Used by authentication middleware.
func (s *AuthService) VerifyAccessToken(ctx context.Context, tokenString string) (*domain.User, *auth.AccessClaims, error) {
	claims, err := s.tokenService.VerifyAccessToken(tokenString)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid token: %w", err)
	}

	user, err := s.store.GetUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, nil, errors.New("user not found")
		}
		return nil, nil, fmt.Errorf("get user: %w", err)
	}

	return user, claims, nil
}

// issueCode generates, stores, and emails a one-time code.
func (s *AuthService) issueCode(ctx context.Context, purpose store.CodePurpose, email, name string) error {
	code, err := auth.GenerateCode()
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}
	if err := s.store.SaveCode(ctx, purpose, email, code); err != nil {
		return fmt.Errorf("save code: %w", err)
	}
	if err := s.mailSender.SendVerificationCode(ctx, email, name, code); err != nil {
		return fmt.Errorf("send verification code: %w", err)
	}
	return nil
}

// formatValidationError converts validator errors to user-friendly domain errors.
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		// Return first validation error as a domain error
		for _, e := range validationErrs {
			field := e.Field()
			switch e.Tag() {
			case "required":
				return domainerrors.Validationf("%s is required", field)
			case "email":
				return domainerrors.Validationf("%s must be a valid email address", field)
			case "min":
				return domainerrors.Validationf("%s must be at least %s characters", field, e.Param())
			case "max":
				return domainerrors.Validationf("%s exceeds maximum length of %s characters", field, e.Param())
			case "len":
				return domainerrors.Validationf("%s must be exactly %s characters", field, e.Param())
			case "numeric":
				return domainerrors.Validationf("%s must contain only digits", field)
			default:
				return domainerrors.Validationf("%s is invalid", field)
			}
		}
	}
	return err
}
