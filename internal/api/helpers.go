package api

import (
	"github.com/listoria/listoria-server/internal/domain"
	"github.com/listoria/listoria-server/internal/service"
)

func mapAuthResponse(resp *service.AuthResponse) AuthResponse {
	return AuthResponse{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		SessionID:    resp.SessionID,
		TokenType:    resp.TokenType,
		ExpiresIn:    resp.ExpiresIn,
		User:         mapUserResponse(resp.User),
	}
}

func mapUserResponse(user *domain.User) UserResponse {
	birthDate := ""
	if !user.BirthDate.IsZero() {
		birthDate = user.BirthDate.Format("2006-01-02")
	}
	return UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Name,
		BirthDate:   birthDate,
		Status:      string(user.Status),
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
		VerifiedAt:  user.VerifiedAt,
		LastLoginAt: user.LastLoginAt,
	}
}

func extractIP(xForwardedFor, xRealIP string) string {
	if xForwardedFor != "" {
		for i := 0; i < len(xForwardedFor); i++ {
			if xForwardedFor[i] == ',' {
				return xForwardedFor[:i]
			}
		}
		return xForwardedFor
	}
	return xRealIP
}
