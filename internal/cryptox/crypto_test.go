package cryptox

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret", bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$2a$"), "unexpected hash format %q", hash)
	assert.NotContains(t, hash, "s3cret")
	assert.NoError(t, ComparePassword(hash, "s3cret"))
}

func TestHashPassword_Salted(t *testing.T) {
	a, err := HashPassword("same", bcrypt.MinCost)
	require.NoError(t, err)
	b, err := HashPassword("same", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "two hashes of the same password must differ")
}

func TestHashPassword_LowCostFallsBackToDefault(t *testing.T) {
	hash, err := HashPassword("pw", 0)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, DefaultCost, cost)
}

func TestHashPassword_GeneratorError(t *testing.T) {
	orig := generateFromPassword
	generateFromPassword = func([]byte, int) ([]byte, error) { return nil, errors.New("boom") }
	defer func() { generateFromPassword = orig }()

	_, err := HashPassword("pw", bcrypt.MinCost)
	require.EqualError(t, err, "boom")
}

func TestComparePassword_Mismatch(t *testing.T) {
	hash, err := HashPassword("right", bcrypt.MinCost)
	require.NoError(t, err)

	err = ComparePassword(hash, "wrong")
	assert.ErrorIs(t, err, ErrMismatch)
}

func TestComparePassword_MalformedHash(t *testing.T) {
	err := ComparePassword("not-a-bcrypt-hash", "pw")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrMismatch))
}
