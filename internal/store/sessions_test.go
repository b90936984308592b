package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/listoria/listoria-server/internal/domain"
	"github.com/listoria/listoria-server/internal/store"
	"github.com/stretchr/testify/require"
)

func newTestSession(id, userID, tokenHash string) *domain.Session {
	now := time.Now()
	return &domain.Session{
		ID:               id,
		UserID:           userID,
		RefreshTokenHash: tokenHash,
		ExpiresAt:        now.Add(24 * time.Hour),
		CreatedAt:        now,
		LastSeenAt:       now,
		ClientName:       "Listoria Web",
	}
}

func TestCreateSession_AndGet(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	session := newTestSession("sess_1", "user_1", "hash_abc")

	err := s.CreateSession(ctx, session)
	require.NoError(t, err)

	retrieved, err := s.GetSession(ctx, "sess_1")
	require.NoError(t, err)
	require.Equal(t, "user_1", retrieved.UserID)
	require.Equal(t, "hash_abc", retrieved.RefreshTokenHash)
}

func TestCreateSession_Duplicate(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	session := newTestSession("sess_1", "user_1", "hash_abc")

	err := s.CreateSession(ctx, session)
	require.NoError(t, err)

	err = s.CreateSession(ctx, session)
	require.Error(t, err)
}

func TestGetSession_NotFound(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := s.GetSession(context.Background(), "nonexistent")
	require.ErrorIs(t, err, store.ErrSessionNotFound)
}

func TestGetSession_Expired(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	session := newTestSession("sess_1", "user_1", "hash_abc")
	session.ExpiresAt = time.Now().Add(-time.Hour)

	err := s.CreateSession(ctx, session)
	require.NoError(t, err)

	_, err = s.GetSession(ctx, "sess_1")
	require.ErrorIs(t, err, store.ErrSessionExpired)
}

func TestGetSessionByRefreshToken(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	session := newTestSession("sess_1", "user_1", "hash_abc")

	err := s.CreateSession(ctx, session)
	require.NoError(t, err)

	retrieved, err := s.GetSessionByRefreshToken(ctx, "hash_abc")
	require.NoError(t, err)
	require.Equal(t, "sess_1", retrieved.ID)

	_, err = s.GetSessionByRefreshToken(ctx, "wrong_hash")
	require.ErrorIs(t, err, store.ErrSessionNotFound)
}

func TestUpdateSession_TokenRotation(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	session := newTestSession("sess_1", "user_1", "hash_old")

	err := s.CreateSession(ctx, session)
	require.NoError(t, err)

	session.RefreshTokenHash = "hash_new"
	err = s.UpdateSession(ctx, session)
	require.NoError(t, err)

	// New token resolves, old one does not.
	retrieved, err := s.GetSessionByRefreshToken(ctx, "hash_new")
	require.NoError(t, err)
	require.Equal(t, "sess_1", retrieved.ID)

	_, err = s.GetSessionByRefreshToken(ctx, "hash_old")
	require.ErrorIs(t, err, store.ErrSessionNotFound)
}

func TestDeleteSession(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	session := newTestSession("sess_1", "user_1", "hash_abc")

	err := s.CreateSession(ctx, session)
	require.NoError(t, err)

	err = s.DeleteSession(ctx, "sess_1")
	require.NoError(t, err)

	_, err = s.GetSession(ctx, "sess_1")
	require.ErrorIs(t, err, store.ErrSessionNotFound)

	// Token index cleaned up too.
	_, err = s.GetSessionByRefreshToken(ctx, "hash_abc")
	require.ErrorIs(t, err, store.ErrSessionNotFound)

	// Idempotent.
	err = s.DeleteSession(ctx, "sess_1")
	require.NoError(t, err)
}

func TestListUserSessions(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	require.NoError(t, s.CreateSession(ctx, newTestSession("sess_1", "user_1", "hash_1")))
	require.NoError(t, s.CreateSession(ctx, newTestSession("sess_2", "user_1", "hash_2")))
	require.NoError(t, s.CreateSession(ctx, newTestSession("sess_3", "user_2", "hash_3")))

	// Expired sessions are skipped.
	expired := newTestSession("sess_4", "user_1", "hash_4")
	expired.ExpiresAt = time.Now().Add(-time.Minute)
	require.NoError(t, s.CreateSession(ctx, expired))

	sessions, err := s.ListUserSessions(ctx, "user_1")
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	for _, session := range sessions {
		require.Equal(t, "user_1", session.UserID)
	}
}

func TestDeleteAllUserSessions(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	require.NoError(t, s.CreateSession(ctx, newTestSession("sess_1", "user_1", "hash_1")))
	require.NoError(t, s.CreateSession(ctx, newTestSession("sess_2", "user_1", "hash_2")))
	require.NoError(t, s.CreateSession(ctx, newTestSession("sess_3", "user_2", "hash_3")))

	err := s.DeleteAllUserSessions(ctx, "user_1")
	require.NoError(t, err)

	sessions, err := s.ListUserSessions(ctx, "user_1")
	require.NoError(t, err)
	require.Empty(t, sessions)

	// Other user untouched.
	sessions, err = s.ListUserSessions(ctx, "user_2")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
}

func TestDeleteExpiredSessions(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	require.NoError(t, s.CreateSession(ctx, newTestSession("sess_1", "user_1", "hash_1")))

	expired := newTestSession("sess_2", "user_1", "hash_2")
	expired.ExpiresAt = time.Now().Add(-time.Minute)
	require.NoError(t, s.CreateSession(ctx, expired))

	count, err := s.DeleteExpiredSessions(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	_, err = s.GetSession(ctx, "sess_1")
	require.NoError(t, err)
}
