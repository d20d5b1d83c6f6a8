// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"passport/config"
	"passport/internal/domain/service"
	"passport/internal/errors"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret string
}

// NewJWTService is the constructor for jwtService. A missing secret is a
// fatal configuration error, not a per-request one.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return &jwtService{secret: cfg.SecretKey}, nil
}

// Issue creates a signed token bound to the given account id.
// The token intentionally carries no expiration claim; sessions stay valid
// until the signing secret rotates.
func (s *jwtService) Issue(accountID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"sub": accountID, // Subject (who the token is for)
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Validate checks the token signature and returns the account id it encodes.
func (s *jwtService) Validate(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secret), nil
	})
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to parse token")
	}
	if !token.Valid {
		return uuid.Nil, errors.New("token is not valid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("failed to parse token claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("account id missing from token")
	}

	accountID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "invalid account id in token")
	}

	return accountID, nil
}
