package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry reads the exp claim of a bearer token without verifying its signature.
// ok is false when the token is not a JWT or carries no exp claim.
func TokenExpiry(tokenString string) (exp time.Time, ok bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return time.Time{}, false
	}
	numericDate, err := claims.GetExpirationTime()
	if err != nil || numericDate == nil {
		return time.Time{}, false
	}
	return numericDate.Time, true
}

// TokenExpired reports whether the token carries an exp claim that is before now.
// Opaque tokens are never considered expired.
func TokenExpired(tokenString string, now time.Time) bool {
	exp, ok := TokenExpiry(tokenString)
	return ok && !exp.After(now)
}
