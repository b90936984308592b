// Package id mints the prefixed identifiers used for users and sessions.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Generate creates a unique ID of the form prefix-nanoid, for example
// "user-V1StGXR8_Z5jdHi6B-myT". The NanoID part is 21 URL-safe
// characters, shorter than a UUID with comparable entropy.
//
// Returns an error only when the system cannot supply secure randomness.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// MustGenerate is like Generate but panics on failure. Reserve it for
// places where a missing entropy source should take the process down,
// such as test fixtures and startup paths.
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}
