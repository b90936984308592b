package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/listoria/listoria-server/internal/domain"
)

func main() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/Listoria/data/db")
	}

	opts := badger.DefaultOptions(dbPath).
		WithReadOnly(true).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	fmt.Println("=== Database Inspection ===")
	fmt.Println()

	userCount := 0
	activeUsers := 0
	pendingUsers := 0
	sessionCount := 0
	expiredSessions := 0
	codeCount := 0

	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			key := string(item.Key())

			switch {
			case strings.HasPrefix(key, "user:") && !strings.HasPrefix(key, "user:idx:"):
				err := item.Value(func(val []byte) error {
					var user domain.User
					if err := json.Unmarshal(val, &user); err != nil {
						return err
					}

					userCount++
					if user.IsPending() {
						pendingUsers++
					} else {
						activeUsers++
					}

					if userCount <= 5 {
						fmt.Printf("User: %s\n", user.Email)
						fmt.Printf("  ID: %s\n", user.ID)
						fmt.Printf("  Name: %s\n", user.Name)
						fmt.Printf("  Status: %s\n", user.Status)
						if !user.VerifiedAt.IsZero() {
							fmt.Printf("  Verified: %s\n", user.VerifiedAt.Format(time.RFC3339))
						}
						fmt.Println()
					}
					return nil
				})
				if err != nil {
					log.Printf("Error reading user %s: %v", key, err)
				}

			case strings.HasPrefix(key, "session:"):
				err := item.Value(func(val []byte) error {
					var session domain.Session
					if err := json.Unmarshal(val, &session); err != nil {
						return err
					}

					sessionCount++
					if session.IsExpired() {
						expiredSessions++
					}
					return nil
				})
				if err != nil {
					log.Printf("Error reading session %s: %v", key, err)
				}

			case strings.HasPrefix(key, "code:"):
				codeCount++
			}
		}
		return nil
	})

	if err != nil {
		log.Fatalf("Error iterating database: %v", err)
	}

	fmt.Println("=== Summary ===")
	fmt.Printf("Total users: %d\n", userCount)
	fmt.Printf("Active users: %d\n", activeUsers)
	fmt.Printf("Pending users: %d\n", pendingUsers)
	fmt.Printf("Total sessions: %d\n", sessionCount)
	fmt.Printf("Expired sessions: %d\n", expiredSessions)
	fmt.Printf("Live one-time codes: %d\n", codeCount)
}
