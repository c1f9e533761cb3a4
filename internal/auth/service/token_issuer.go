package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/socialnet/api/internal/common/clock"
)

var ErrEmptyUsernameClaim = errors.New("token has no username claim")

type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type TokenIssuer struct {
	jwtSecret []byte
	clock     clock.Clock
	ttl       time.Duration
}

func NewTokenIssuer(jwtSecret string, ttl time.Duration, clock clock.Clock) *TokenIssuer {
	return &TokenIssuer{
		jwtSecret: []byte(jwtSecret),
		clock:     clock,
		ttl:       ttl,
	}
}

// IssueToken signs {username, exp} with HS256; reason labels the issuance metric.
func (ti *TokenIssuer) IssueToken(username, reason string) (string, error) {
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(ti.clock.Now().Add(ti.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	incrementTokensIssued(reason)
	return token, nil
}

// ParseToken verifies signature and expiry against the issuer's clock. Expiry failures wrap jwt.ErrTokenExpired.
func (ti *TokenIssuer) ParseToken(tokenString string) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(
		tokenString,
		&claims,
		func(*jwt.Token) (any, error) { return ti.jwtSecret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(ti.clock.Now),
	)
	if err != nil {
		return Claims{}, err
	}
	if claims.Username == "" {
		return Claims{}, ErrEmptyUsernameClaim
	}
	return claims, nil
}
