package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidToken covers any token that fails parsing or verification.
	ErrInvalidToken = errors.New("auth: invalid token")
	// ErrMissingSecret is returned when the verifier is built without a key.
	ErrMissingSecret = errors.New("auth: signing secret is required")
)

// Claims are the identity-provider access token claims we rely on
type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Verifier checks HS256 access tokens signed with the provider's shared secret
type Verifier struct {
	secret   []byte
	audience string
}

// NewVerifier creates a verifier. An empty audience disables the aud check.
func NewVerifier(secret, audience string) (*Verifier, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &Verifier{secret: []byte(secret), audience: audience}, nil
}

// Verify validates the token and returns the caller it identifies
func (v *Verifier) Verify(tokenString string) (Caller, error) {
	if tokenString == "" {
		return Caller{}, fmt.Errorf("%w: empty token", ErrInvalidToken)
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(v.audience))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, parserOpts...)
	if err != nil {
		return Caller{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return Caller{}, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil || userID == uuid.Nil {
		return Caller{}, fmt.Errorf("%w: subject is not a user id", ErrInvalidToken)
	}

	return Caller{UserID: userID, Email: claims.Email}, nil
}

// Issue signs a token for the given caller. The service never issues tokens in
// production; tests and local tooling use this to mint provider-shaped tokens.
func (v *Verifier) Issue(caller Caller, claims jwt.RegisteredClaims) (string, error) {
	claims.Subject = caller.UserID.String()
	if v.audience != "" && len(claims.Audience) == 0 {
		claims.Audience = jwt.ClaimStrings{v.audience}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Email:            caller.Email,
		Role:             "authenticated",
		RegisteredClaims: claims,
	})
	signed, err := token.SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
