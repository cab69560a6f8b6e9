// Package auth adapts the external token verifier: an opaque credential
// string either decodes to an identity claim or the connection is refused.
package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Vivekkumarprince1/next-complete-vaani/internal/core"
	"github.com/Vivekkumarprince1/next-complete-vaani/internal/domain"
)

var (
	ErrNoCredential      = errors.New("no credential supplied")
	ErrInvalidCredential = errors.New("credential invalid")
)

// Claims carries the identity of the connecting client. Username may be
// top-level or nested under "user", depending on who minted the token.
type Claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username,omitempty"`
	User     struct {
		Username string `json:"username,omitempty"`
	} `json:"user,omitempty"`
	jwt.RegisteredClaims
}

type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

// Verify decodes and validates the credential. All parse and signature
// failures collapse into ErrInvalidCredential; only an empty credential
// is reported separately.
func (v *JWTVerifier) Verify(credential string) (core.Identity, error) {
	if credential == "" {
		return core.Identity{}, ErrNoCredential
	}

	token, err := jwt.ParseWithClaims(credential, &Claims{}, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return core.Identity{}, errors.Join(ErrInvalidCredential, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return core.Identity{}, ErrInvalidCredential
	}

	username := claims.Username
	if username == "" {
		username = claims.User.Username
	}
	if username == "" {
		username = domain.UnknownUsername
	}
	return core.Identity{
		UserID:   domain.UserID(claims.UserID),
		Username: username,
	}, nil
}
