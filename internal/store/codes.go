package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// CodePurpose distinguishes why a one-time code was issued.
type CodePurpose string

const (
	// CodePurposeVerify is for confirming a freshly registered email address.
	CodePurposeVerify CodePurpose = "verify"
	// CodePurposeReset is for password reset requests.
	CodePurposeReset CodePurpose = "reset"
)

// CodeTTL is how long a one-time code stays valid. Badger expires the
// entry natively, so no cleanup job is needed.
const CodeTTL = 15 * time.Minute

const codePrefix = "code:"

var (
	// ErrCodeNotFound is returned when no code exists for the address, or it has expired.
	ErrCodeNotFound = errors.New("code not found or expired")
	// ErrCodeMismatch is returned when the submitted code does not match the stored one.
	ErrCodeMismatch = errors.New("code does not match")
)

func codeKey(purpose CodePurpose, email string) []byte {
	return []byte(codePrefix + string(purpose) + ":" + normalizeEmail(email))
}

// SaveCode stores a one-time code for the given address with a fresh TTL.
// A previous unexpired code for the same address and purpose is replaced.
func (s *Store) SaveCode(_ context.Context, purpose CodePurpose, email, code string) error {
	key := codeKey(purpose, email)

	err := s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(key, []byte(code)).WithTTL(CodeTTL)
		return txn.SetEntry(entry)
	})
	if err != nil {
		return fmt.Errorf("save code: %w", err)
	}
	return nil
}

// ConsumeCode validates a submitted code and deletes it on success.
// A code can be consumed at most once; a second attempt with the same
// code reports ErrCodeNotFound. A wrong code leaves the stored one in
// place until it expires.
func (s *Store) ConsumeCode(_ context.Context, purpose CodePurpose, email, code string) error {
	key := codeKey(purpose, email)

	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrCodeNotFound
		}
		if err != nil {
			return fmt.Errorf("get code: %w", err)
		}

		var stored string
		if err := item.Value(func(val []byte) error {
			stored = string(val)
			return nil
		}); err != nil {
			return fmt.Errorf("read code: %w", err)
		}

		if stored != code {
			return ErrCodeMismatch
		}

		return txn.Delete(key)
	})
	if err != nil {
		return err
	}
	return nil
}
