package common

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomHex(t *testing.T) {
	a, err := RandomHex(16)
	require.NoError(t, err)
	b, err := RandomHex(16)
	require.NoError(t, err)

	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
	_, err = hex.DecodeString(a)
	assert.NoError(t, err)

	empty, err := RandomHex(0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestWipe(t *testing.T) {
	secret := []byte("s3cret-pass")
	Wipe(secret)
	assert.Equal(t, make([]byte, len(secret)), secret)

	assert.NotPanics(t, func() { Wipe(nil) })
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "carol@evento.io", NormalizeEmail("  Carol@Evento.IO "))
	assert.Equal(t, "bob@evento.io", NormalizeEmail("bob@evento.io"))
	assert.Empty(t, NormalizeEmail("   "))
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", true},
		{"bearer   abc ", "abc", true},
		{"BEARER abc", "abc", true},
		{"Bearer ", "", false},
		{"Bearer    ", "", false},
		{"Basic dXNlcjpwYXNz", "", false},
		{"abc", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := BearerToken(tt.header)
		assert.Equal(t, tt.want, got, tt.header)
		assert.Equal(t, tt.ok, ok, tt.header)
	}
}

func TestBearer_RoundTrip(t *testing.T) {
	tok, ok := BearerToken(Bearer("jwt"))
	assert.True(t, ok)
	assert.Equal(t, "jwt", tok)
}
