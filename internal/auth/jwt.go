package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"medassist/internal/models"
	"medassist/pkg/apperror"
)

const DefaultTTL = 24 * time.Hour

// Issuer mints and verifies bearer tokens. The signing key is loaded once at
// startup; rotating it invalidates every outstanding token (there is no
// revocation list).
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// TTL reports the validity window tokens are issued with.
func (i *Issuer) TTL() time.Duration { return i.ttl }

func (i *Issuer) Issue(c Claims) (string, error) {
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":     c.Subject,
		"user_id": c.UserID,
		"role":    string(c.Role),
		"iat":     now.Unix(),
		"exp":     now.Add(i.ttl).Unix(),
	})
	return tok.SignedString(i.secret)
}

func (i *Issuer) Verify(tokenStr string) (Claims, error) {
	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !tok.Valid {
		return Claims{}, fmt.Errorf("%w: invalid token", apperror.ErrUnauthenticated)
	}
	mapc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, fmt.Errorf("%w: invalid claims", apperror.ErrUnauthenticated)
	}
	sub, _ := mapc["sub"].(string)
	uid, _ := mapc["user_id"].(string)
	role, _ := mapc["role"].(string)
	return Claims{Subject: sub, UserID: uid, Role: models.Role(role)}, nil
}
