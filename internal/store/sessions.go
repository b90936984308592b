package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/listoria/listoria-server/internal/domain"
)

// Sessions are stored under session:<id> with two index families:
// idx:sessions:token:<hash> resolves a refresh token hash to the session
// id, and idx:sessions:user:<userID>:<id> enumerates a user's sessions.

func sessionKey(id string) []byte {
	return []byte(sessionPrefix + id)
}

func tokenIndexKey(hash string) []byte {
	return []byte(sessionByTokenPrefix + hash)
}

func userIndexKey(userID, sessionID string) []byte {
	return []byte(sessionByUserPrefix + userID + ":" + sessionID)
}

// CreateSession stores a session together with its token and user index
// entries.
func (s *Store) CreateSession(_ context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(sessionKey(session.ID)); err == nil {
			return errors.New("session already exists")
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check session: %w", err)
		}

		if err := txn.Set(sessionKey(session.ID), data); err != nil {
			return err
		}
		if err := txn.Set(tokenIndexKey(session.RefreshTokenHash), []byte(session.ID)); err != nil {
			return err
		}
		return txn.Set(userIndexKey(session.UserID, session.ID), nil)
	})
}

// GetSession retrieves a live session by ID. Expired sessions answer
// ErrSessionExpired so callers can distinguish them from unknown ids.
func (s *Store) GetSession(_ context.Context, id string) (*domain.Session, error) {
	var session domain.Session
	if err := s.get(sessionKey(id), &session); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session.IsExpired() {
		return nil, ErrSessionExpired
	}
	return &session, nil
}

// GetSessionByRefreshToken resolves a refresh token hash to its session.
// Used by the refresh flow.
func (s *Store) GetSessionByRefreshToken(ctx context.Context, tokenHash string) (*domain.Session, error) {
	var sessionID string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(tokenIndexKey(tokenHash))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			sessionID = string(val)
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("lookup session by token: %w", err)
	}
	return s.GetSession(ctx, sessionID)
}

// UpdateSession rewrites a session. When the refresh token hash changed,
// the token index moves with it so the rotated-out token stops
// resolving.
func (s *Store) UpdateSession(_ context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		var old domain.Session
		item, err := txn.Get(sessionKey(session.ID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrSessionNotFound
		}
		if err != nil {
			return fmt.Errorf("get session: %w", err)
		}
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &old)
		}); err != nil {
			return err
		}

		if err := txn.Set(sessionKey(session.ID), data); err != nil {
			return err
		}

		if old.RefreshTokenHash != session.RefreshTokenHash {
			if err := txn.Delete(tokenIndexKey(old.RefreshTokenHash)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
			if err := txn.Set(tokenIndexKey(session.RefreshTokenHash), []byte(session.ID)); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteSession removes a session and both of its index entries. Deleting
// an unknown session is a no-op so logout is idempotent.
func (s *Store) DeleteSession(_ context.Context, sessionID string) error {
	// Load even if expired; the indexes still have to go.
	var session domain.Session
	if err := s.get(sessionKey(sessionID), &session); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return fmt.Errorf("get session for deletion: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(sessionKey(sessionID)); err != nil {
			return err
		}
		if err := txn.Delete(tokenIndexKey(session.RefreshTokenHash)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		if err := txn.Delete(userIndexKey(session.UserID, sessionID)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return nil
	})
}

// ListUserSessions returns a user's live sessions. Expired entries are
// skipped, not deleted; the cleanup job owns removal.
func (s *Store) ListUserSessions(ctx context.Context, userID string) ([]*domain.Session, error) {
	prefix := sessionByUserPrefix + userID + ":"
	var sessions []*domain.Session

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		opts.PrefetchValues = false // session ids come from the keys

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
			sessionID := strings.TrimPrefix(string(it.Item().Key()), prefix)

			session, err := s.GetSession(ctx, sessionID)
			if err != nil {
				if errors.Is(err, ErrSessionExpired) || errors.Is(err, ErrSessionNotFound) {
					continue
				}
				return err
			}
			sessions = append(sessions, session)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list user sessions: %w", err)
	}
	return sessions, nil
}

// DeleteAllUserSessions revokes every session of a user. Called after a
// password reset so stolen refresh tokens die with the old password.
func (s *Store) DeleteAllUserSessions(ctx context.Context, userID string) error {
	sessions, err := s.ListUserSessions(ctx, userID)
	if err != nil {
		return fmt.Errorf("list sessions for deletion: %w", err)
	}
	for _, session := range sessions {
		if err := s.DeleteSession(ctx, session.ID); err != nil {
			return fmt.Errorf("delete session %s: %w", session.ID, err)
		}
	}
	return nil
}

// DeleteExpiredSessions scans for expired sessions and removes them,
// returning how many were deleted. Run periodically by the cleanup job.
func (s *Store) DeleteExpiredSessions(ctx context.Context) (int, error) {
	prefix := []byte(sessionPrefix)
	var expired []string

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var session domain.Session
				if json.Unmarshal(val, &session) != nil {
					// Malformed rows are left for the inspector tool
					return nil
				}
				if session.IsExpired() {
					expired = append(expired, session.ID)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("find expired sessions: %w", err)
	}

	// Deletes run outside the view transaction
	for _, sessionID := range expired {
		if err := s.DeleteSession(ctx, sessionID); err != nil {
			if s.logger != nil {
				s.logger.Warn("failed to delete expired session", "session_id", sessionID, "error", err)
			}
		}
	}
	return len(expired), nil
}
