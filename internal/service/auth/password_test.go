package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptVerifier(t *testing.T) {
	hash, err := HashPassword("correct horse", bcrypt.MinCost)
	require.NoError(t, err)

	v := NewBcryptVerifier()
	assert.NoError(t, v.Compare(hash, "correct horse"))
	assert.ErrorIs(t, v.Compare(hash, "battery staple"), bcrypt.ErrMismatchedHashAndPassword)
	assert.Error(t, v.Compare("not-a-hash", "correct horse"))
}

func TestHashPasswordSalts(t *testing.T) {
	a, err := HashPassword("pw", bcrypt.MinCost)
	require.NoError(t, err)
	b, err := HashPassword("pw", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}
