// Package token issues and validates the signed bearer tokens used by the API.
//
// Claims are trusted for the full token lifetime: deactivating a user or
// changing their role does not invalidate tokens already issued, so those
// changes only take effect at the next login.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gestioncoop/admin-usuarios/internal/core/domain"
)

const DefaultTTL = 24 * time.Hour

// ErrInvalidToken covers every validation failure: bad signature, wrong
// algorithm, expiry, malformed structure. Callers see a single 401 outcome.
var ErrInvalidToken = errors.New("invalid token")

// Claims embeds the identity and role of the authenticated user.
type Claims struct {
	ID      int64       `json:"id"`
	Usuario string      `json:"usuario"`
	Rol     domain.Role `json:"rol"`
	jwt.RegisteredClaims
}

// Issuer signs and validates HS256 tokens with a server-held secret.
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

// Issue returns a signed token for the given user.
func (i *Issuer) Issue(user *domain.User) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		ID:      user.ID,
		Usuario: user.Usuario,
		Rol:     user.Rol,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Usuario,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}

// Validate parses and verifies a token string and returns its claims.
func (i *Issuer) Validate(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}
	if claims.ID == 0 || claims.Usuario == "" || !claims.Rol.Valid() {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
