package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var errBadCookie = errors.New("session: invalid cookie token")

// CookieCodec signs and verifies the session-id token carried by the browser
// cookie. The token is an HS256 JWT whose sid claim is the Redis session id;
// a tampered or expired token simply starts a fresh session.
type CookieCodec struct {
	secret []byte
	ttl    time.Duration
}

func NewCookieCodec(secret string, ttl time.Duration) *CookieCodec {
	return &CookieCodec{secret: []byte(secret), ttl: ttl}
}

// Encode wraps the session id in a signed token.
func (cc *CookieCodec) Encode(sid string) (string, error) {
	claims := jwt.MapClaims{
		"sid": sid,
		"exp": time.Now().Add(cc.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(cc.secret)
}

// Decode verifies the token and returns the session id it carries.
func (cc *CookieCodec) Decode(token string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return cc.secret, nil
	})
	if err != nil || !tkn.Valid {
		return "", errBadCookie
	}

	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", errBadCookie
	}
	return sid, nil
}
