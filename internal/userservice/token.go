package userservice

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sushihentaime/bloglist/internal/common"
)

var ErrEmptySecret = errors.New("token secret must not be empty")

// NewTokenSigner returns a signer for HS256 credentials. A non-positive ttl falls back to DefaultTokenTTL.
func NewTokenSigner(secret string, ttl time.Duration) (*TokenSigner, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	return &TokenSigner{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Sign issues a credential asserting the identity of u.
func (s *TokenSigner) Sign(u *User) (string, error) {
	now := s.now()

	claims := Claims{
		UserID:   u.ID,
		Username: u.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(u.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks the signature, algorithm and expiry of token and returns its claims.
// Every failure is reported as common.ErrUnauthenticated.
func (s *TokenSigner) Verify(token string) (*Claims, error) {
	if token == "" {
		return nil, common.ErrUnauthenticated
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return nil, common.ErrUnauthenticated
	}

	if claims.UserID <= 0 {
		return nil, common.ErrUnauthenticated
	}

	return claims, nil
}
