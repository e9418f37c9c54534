package identity

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
)

// SecretValidator verifies HS256 access tokens locally using the shared
// signing secret, skipping the round trip to the provider. It never
// returns ErrUnavailable: every verification failure is a bad credential.
type SecretValidator struct {
	secret []byte
}

func NewSecretValidator(secret string) *SecretValidator {
	return &SecretValidator{secret: []byte(secret)}
}

type accessClaims struct {
	Email    string `json:"email"`
	Metadata struct {
		FullName string `json:"full_name"`
	} `json:"user_metadata"`
	jwt.RegisteredClaims
}

func (v *SecretValidator) Validate(_ context.Context, credential string) (*Identity, error) {
	if credential == "" {
		return nil, ErrUnauthenticated
	}

	var claims accessClaims

	token, err := jwt.ParseWithClaims(credential, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnauthenticated
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrUnauthenticated
	}

	if claims.Subject == "" {
		return nil, ErrUnauthenticated
	}

	return &Identity{
		ID:          claims.Subject,
		Email:       claims.Email,
		DisplayName: claims.Metadata.FullName,
	}, nil
}
