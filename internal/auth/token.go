package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/vovandreevik/Automation-of-the-Dean-office/internal/user"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the self-contained session state carried by an access token.
// Subject is the user id; PersonID is set only for accounts linked to a person.
type Claims struct {
	jwt.RegisteredClaims
	PersonID string `json:"person_id,omitempty"`
}

// TokenIssuer signs and verifies access tokens with a process-wide HMAC
// secret. The secret is read from configuration once at startup and treated
// as immutable afterwards.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue produces a signed HS256 token for the given user.
func (t *TokenIssuer) Issue(u *user.User) (string, error) {
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(u.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	if u.PersonID != nil {
		claims.PersonID = strconv.Itoa(*u.PersonID)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Parse verifies the signature and expiry and returns the claims. A token
// without a subject is rejected even when the signature verifies.
func (t *TokenIssuer) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
