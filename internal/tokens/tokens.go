// Package tokens issues and verifies HS256 access tokens for the demo users.
package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const TokenType = "bearer"

var (
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token has expired")
)

// CredentialChecker is satisfied by credentials.Store.
type CredentialChecker interface {
	Check(username, password string) bool
}

type Token struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
}

type Service struct {
	creds  CredentialChecker
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now for issuance and verification.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(creds CredentialChecker, secret []byte, ttl time.Duration, opts ...Option) *Service {
	s := &Service{
		creds:  creds,
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Issue(username, password string) (Token, error) {
	if !s.creds.Check(username, password) {
		return Token{}, ErrInvalidCredentials
	}

	now := s.now()
	exp := now.Add(s.ttl)
	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        NewJTI(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return Token{}, fmt.Errorf("sign token: %w", err)
	}

	return Token{AccessToken: signed, TokenType: TokenType, ExpiresAt: exp}, nil
}

// Verify checks signature and expiry and returns the token subject.
func (s *Service) Verify(raw string) (string, error) {
	claims, err := AccessClaimsFromToken(raw, s.secret, s.now)
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

func AccessClaimsFromToken(raw string, secret []byte, now func() time.Time) (*AccessClaims, error) {
	var claims AccessClaims
	tkn, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		default:
			return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
	}
	if !tkn.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
