package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	pkgerrors "github.com/pkg/errors"

	"github.com/studymate/studymate/core"
)

var nowFunc = time.Now

// Claims carries the signed-in student's identity inside the session token.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// NewToken signs a session token for the given email, valid for the
// configured session lifetime.
func NewToken(conf *core.Config, email string) (string, error) {
	now := nowFunc()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    conf.AppName,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(conf.SessionTokenLifetime)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(conf.SecretKey)
	if err != nil {
		return "", pkgerrors.Wrap(err, "signing session token")
	}
	return token, nil
}

// ParseToken verifies a session token and returns the email it was
// issued for.
func ParseToken(conf *core.Config, token string) (string, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(t *jwt.Token) (interface{}, error) { return conf.SecretKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(conf.AppName),
		jwt.WithTimeFunc(func() time.Time { return nowFunc() }),
	)
	if err != nil {
		return "", pkgerrors.Wrap(err, "parsing session token")
	}
	return claims.Email, nil
}
