package middleware

import (
	"crypto/rsa"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ValidateToken checks the identity-provider token's signature, expiry and,
// if issuer is non-empty, its issuer. With a nil publicKey the signature is
// not checked; that mode exists for local development only.
func ValidateToken(tokenString string, publicKey *rsa.PublicKey, issuer string) (*jwt.Token, error) {
	var (
		token *jwt.Token
		err   error
	)
	if publicKey != nil {
		token, err = jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return publicKey, nil
		})
	} else {
		token, _, err = jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
		if err == nil {
			token.Valid = true
		}
	}
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, errors.New("missing expiration claim")
	}
	if time.Unix(int64(exp), 0).Before(time.Now()) {
		return nil, jwt.ErrTokenExpired
	}

	if issuer != "" {
		iss, ok := claims["iss"].(string)
		if !ok {
			return nil, errors.New("missing issuer claim")
		}
		if iss != issuer {
			return nil, errors.New("invalid token issuer")
		}
	}
	return token, nil
}
