package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/Ouarghii/evento/internal/common"
	"github.com/Ouarghii/evento/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIssuer_RejectsEmptySecret(t *testing.T) {
	t.Parallel()

	_, err := NewIssuer("", time.Hour)
	assert.ErrorIs(t, err, ErrEmptySecret)

	_, err = NewIssuer("k", 0)
	assert.ErrorIs(t, err, ErrInvalidTTL)
}

func TestIssueAndValidate_Success(t *testing.T) {
	t.Parallel()

	iss, err := NewIssuer("super-secret", time.Hour)
	require.NoError(t, err)

	tok, err := iss.Issue("user-123", models.RoleContributor, "carol@x.com")
	require.NoError(t, err)

	claims, err := iss.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.SubjectID())
	assert.Equal(t, models.RoleContributor, claims.Role)
	assert.Equal(t, "carol@x.com", claims.Email)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestIssue_UniqueTokenIDs(t *testing.T) {
	t.Parallel()

	iss, err := NewIssuer("k", time.Hour)
	require.NoError(t, err)

	a, err := iss.Issue("u1", models.RoleUser, "")
	require.NoError(t, err)
	b, err := iss.Issue("u1", models.RoleUser, "")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestIssue_RejectsBadInput(t *testing.T) {
	t.Parallel()

	iss, err := NewIssuer("k", time.Hour)
	require.NoError(t, err)

	_, err = iss.Issue("", models.RoleUser, "")
	assert.Error(t, err)
	_, err = iss.Issue("u1", models.Role("root"), "")
	assert.Error(t, err)
}

func TestValidate_Expired(t *testing.T) {
	t.Parallel()

	past, err := NewIssuer("secret", time.Minute)
	require.NoError(t, err)
	past.now = func() time.Time { return time.Now().Add(-time.Hour) }

	tok, err := past.Issue("u1", models.RoleUser, "")
	require.NoError(t, err)

	current, err := NewIssuer("secret", time.Minute)
	require.NoError(t, err)

	_, err = current.Validate(tok)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestValidate_WrongSecret(t *testing.T) {
	t.Parallel()

	right, _ := NewIssuer("right-secret", time.Hour)
	wrong, _ := NewIssuer("wrong-secret", time.Hour)

	tok, err := right.Issue("u2", models.RoleAdmin, "")
	require.NoError(t, err)

	_, err = wrong.Validate(tok)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestValidate_MalformedString(t *testing.T) {
	t.Parallel()

	iss, _ := NewIssuer("k", time.Hour)
	_, err := iss.Validate("not.a.jwt")
	assert.ErrorIs(t, err, common.ErrInvalidToken)

	_, err = iss.Validate("")
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestValidate_RejectsNoneAlgorithm(t *testing.T) {
	t.Parallel()

	iss, _ := NewIssuer("k", time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Role: models.RoleAdmin,
	})
	tok, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = iss.Validate(tok)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestValidate_RequiresExpiry(t *testing.T) {
	t.Parallel()

	iss, _ := NewIssuer("k", time.Hour)

	forever := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"},
		Role:             models.RoleAdmin,
	})
	tok, err := forever.SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = iss.Validate(tok)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
	assert.False(t, strings.Contains(err.Error(), "expired"))
}
