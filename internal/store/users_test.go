package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/listoria/listoria-server/internal/domain"
	"github.com/listoria/listoria-server/internal/store"
	"github.com/stretchr/testify/require"
)

func newTestUser(id, email string) *domain.User {
	user := &domain.User{
		Email:     email,
		Name:      "Test User",
		BirthDate: time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC),
		Status:    domain.UserStatusPending,
	}
	user.ID = id
	user.InitTimestamps()
	return user
}

func TestCreateUser_Success(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	user := newTestUser("user_1", "ayse@example.com")

	err := s.CreateUser(ctx, user)
	require.NoError(t, err)

	retrieved, err := s.GetUser(ctx, "user_1")
	require.NoError(t, err)
	require.Equal(t, "ayse@example.com", retrieved.Email)
	require.True(t, retrieved.IsPending())
}

func TestCreateUser_DuplicateEmailDifferentCase(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	err := s.CreateUser(ctx, newTestUser("user_1", "ayse@example.com"))
	require.NoError(t, err)

	// Same address with different casing must conflict.
	err = s.CreateUser(ctx, newTestUser("user_2", "AYSE@Example.com"))
	require.ErrorIs(t, err, store.ErrEmailExists)
}

func TestGetUser_NotFound(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := s.GetUser(context.Background(), "nonexistent")
	require.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestGetUserByEmail_CaseInsensitive(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	err := s.CreateUser(ctx, newTestUser("user_1", "Mehmet@Example.com"))
	require.NoError(t, err)

	retrieved, err := s.GetUserByEmail(ctx, "mehmet@example.com")
	require.NoError(t, err)
	require.Equal(t, "user_1", retrieved.ID)
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := s.GetUserByEmail(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestUpdateUser_ActivatesAccount(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	user := newTestUser("user_1", "ayse@example.com")

	err := s.CreateUser(ctx, user)
	require.NoError(t, err)

	user.Status = domain.UserStatusActive
	user.VerifiedAt = time.Now()

	err = s.UpdateUser(ctx, user)
	require.NoError(t, err)

	retrieved, err := s.GetUser(ctx, "user_1")
	require.NoError(t, err)
	require.True(t, retrieved.IsActive())
	require.False(t, retrieved.VerifiedAt.IsZero())
}

func TestUpdateUser_NotFound(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	user := newTestUser("ghost", "ghost@example.com")
	err := s.UpdateUser(context.Background(), user)
	require.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestGetUser_SoftDeleted(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	user := newTestUser("user_1", "ayse@example.com")

	err := s.CreateUser(ctx, user)
	require.NoError(t, err)

	user.MarkDeleted()
	err = s.UpdateUser(ctx, user)
	require.NoError(t, err)

	_, err = s.GetUser(ctx, "user_1")
	require.ErrorIs(t, err, store.ErrUserNotFound)

	_, err = s.GetUserByEmail(ctx, "ayse@example.com")
	require.ErrorIs(t, err, store.ErrUserNotFound)
}
