package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode(t *testing.T) {
	seen := make(map[string]bool)

	for range 100 {
		code, err := GenerateCode()
		require.NoError(t, err)
		require.Len(t, code, 6)

		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "code %q contains non-digit", code)
		}

		seen[code] = true
	}

	// 100 draws from a million possibilities should not all collide.
	assert.Greater(t, len(seen), 90)
}
