package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Alice@123")
	require.NoError(t, err)
	assert.NotEqual(t, "Alice@123", hash)

	assert.True(t, CheckPassword(hash, "Alice@123"))
	assert.False(t, CheckPassword(hash, "alice@123"))
	assert.False(t, CheckPassword(hash, ""))
	assert.False(t, CheckPassword("not-a-hash", "Alice@123"))
}
