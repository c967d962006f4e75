// internal/pkg/jwt/manager.go
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

// Verification failure modes. Invalid input is never treated as anonymous.
var (
	ErrTokenMissing   = errors.New("jwt: missing token")
	ErrTokenMalformed = errors.New("jwt: malformed token")
	ErrTokenExpired   = errors.New("jwt: token expired")
	ErrTokenSignature = errors.New("jwt: invalid signature")
)

type Config struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
}

// Manager signs and verifies HS256 bearer credentials against a
// process-wide secret.
type Manager struct {
	secret   []byte
	issuer   string
	audience string
	Ttl      time.Duration
}

func NewManager(cfg Config) (*Manager, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt: empty signing secret")
	}
	ttl := cfg.TTL
	if ttl == 0 {
		ttl = 240 * time.Hour
	}
	return &Manager{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		Ttl:      ttl,
	}, nil
}

// Generate creates a signed token for the given email and role.
func (m *Manager) Generate(email, role string) (string, string, error) {
	now := time.Now()
	jti := ulid.Make().String()

	claims := &Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   email,
			Audience:  []string{m.audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(m.Ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        jti,
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(m.secret)
	return signed, jti, err
}

// Verify decodes the raw token, checks signature and expiry, and returns
// the claims. Failures map to one of the package sentinels.
func (m *Manager) Verify(raw string) (*Claims, error) {
	if raw == "" {
		return nil, ErrTokenMissing
	}

	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignature
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		default:
			return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
		}
	}
	if !tok.Valid {
		return nil, ErrTokenSignature
	}
	if claims.Email == "" {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}
