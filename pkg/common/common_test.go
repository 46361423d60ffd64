package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDint64Unique(t *testing.T) {
	seen := make(map[int64]bool)
	for i := 0; i < 1000; i++ {
		id := UUIDint64()
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
}

func TestTokenKeyLengthAndUniqueness(t *testing.T) {
	a := TokenKey()
	b := TokenKey()
	assert.Len(t, a, 40)
	assert.NotEqual(t, a, b)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hashed, err := HashPassword("correct horse battery")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hashed, "correct horse battery"))
	assert.False(t, CheckPassword(hashed, "wrong password"))
}
