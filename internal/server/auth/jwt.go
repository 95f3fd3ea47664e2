// Package auth issues and validates the HS256 session tokens handed out on
// login.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/Ouarghii/evento/internal/common"
	"github.com/Ouarghii/evento/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrEmptySecret = errors.New("jwt secret must not be empty")
	ErrInvalidTTL  = errors.New("token ttl must be positive")
)

// Claims are the registered claims plus the role and email of the subject
// at issue time. The role is advisory: authorization always uses the role
// resolved from the account store.
type Claims struct {
	jwt.RegisteredClaims
	Role  models.Role `json:"role"`
	Email string      `json:"email,omitempty"`
}

func (c *Claims) SubjectID() string { return c.Subject }

// Issuer signs and validates tokens with a single injected secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		return nil, ErrInvalidTTL
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (i *Issuer) TTL() time.Duration { return i.ttl }

// Issue returns a signed token for the subject.
func (i *Issuer) Issue(subjectID string, role models.Role, email string) (string, error) {
	if subjectID == "" || !role.Valid() {
		return "", fmt.Errorf("issue token: bad subject %q or role %q", subjectID, role)
	}

	jti, err := common.RandomHex(16)
	if err != nil {
		return "", err
	}

	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
			ID:        jti,
		},
		Role:  role,
		Email: email,
	})

	return token.SignedString(i.secret)
}

// Validate checks signature, algorithm and expiry. Expired tokens yield
// common.ErrTokenExpired, anything else wrong common.ErrInvalidToken.
func (i *Issuer) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.Subject == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
