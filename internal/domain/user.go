package domain

import "time"

// UserStatus represents the user's account status.
type UserStatus string

const (
	// UserStatusActive indicates the user verified their email and can log in.
	UserStatusActive UserStatus = "active"
	// UserStatusPending indicates the user has registered but not yet
	// confirmed the verification code sent to their email.
	UserStatusPending UserStatus = "pending"
)

// User represents a registered account in the system.
type User struct {
	Record
	Email        string     `json:"email"`
	PasswordHash string     `json:"password_hash,omitempty"` // Stored hashed, filter from API responses
	Name         string     `json:"name"`
	BirthDate    time.Time  `json:"birth_date"`
	Status       UserStatus `json:"status,omitempty"` // active or pending (empty = active for backward compat)
	VerifiedAt   time.Time  `json:"verified_at,omitempty"`
	LastLoginAt  time.Time  `json:"last_login_at"`
}

// IsActive returns true if the user can log in and use the system.
// Empty status is treated as active for backward compatibility with existing users.
func (u *User) IsActive() bool {
	return u.Status == "" || u.Status == UserStatusActive
}

// IsPending returns true if the user has not yet verified their email.
func (u *User) IsPending() bool {
	return u.Status == UserStatusPending
}

// Age returns the user's age in whole years as of now.
func (u *User) Age() int {
	return u.AgeAt(time.Now())
}

// AgeAt returns the user's age in whole years as of the given time.
func (u *User) AgeAt(now time.Time) int {
	if u.BirthDate.IsZero() {
		return 0
	}
	age := now.Year() - u.BirthDate.Year()
	// Birthday not reached yet this year.
	if now.YearDay() < u.BirthDate.YearDay() {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// Session represents an active user session with refresh token.
// Each device gets its own session.
type Session struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	RefreshTokenHash string    `json:"refresh_token_hash,omitempty"` // Stored hashed, filter from API responses
	ExpiresAt        time.Time `json:"expires_at"`
	CreatedAt        time.Time `json:"created_at"`
	LastSeenAt       time.Time `json:"last_seen_at"`
	IPAddress        string    `json:"ip_address,omitempty"`
	ClientName       string    `json:"client_name,omitempty"`
}

// Touch updates the session's last seen timestamp.
func (s *Session) Touch() {
	s.LastSeenAt = time.Now()
}

// IsExpired checks if the session has passed its expiration time.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
