package token

import (
	"errors"

	"retail_survey/internal/abstraction"
	"retail_survey/internal/config"

	"github.com/golang-jwt/jwt/v4"
)

type TokenClaims struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	UuidLogin string `json:"uuid_login"`
	Exp       int64  `json:"exp"`

	jwt.RegisteredClaims
}

func (c TokenClaims) Valid() error {
	if c.ID <= 0 || c.UuidLogin == "" {
		return errors.New("invalid_token")
	}
	return nil
}

func (c TokenClaims) AuthContext() *abstraction.AuthContext {
	return &abstraction.AuthContext{
		ID:        c.ID,
		Username:  c.Username,
		Name:      c.Name,
		UuidLogin: c.UuidLogin,
	}
}

type AuthToken struct {
	claims *TokenClaims
}

func NewAuthToken(claims *TokenClaims) *AuthToken {
	return &AuthToken{claims: claims}
}

func (t *AuthToken) Token() (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":         t.claims.ID,
		"username":   t.claims.Username,
		"name":       t.claims.Name,
		"uuid_login": t.claims.UuidLogin,
		"exp":        t.claims.Exp,
	})
	return token.SignedString([]byte(config.Get().JWT.SecretKey))
}
