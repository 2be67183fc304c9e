package middleware

import (
	"errors"
	"net/http"
	"strings"

	"ofx-converter/internal/api/responses"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys set by RequireJWT.
const (
	UsernameKey = "username"
	RolesKey    = "roles"
)

var errMissingToken = errors.New("token de acesso ausente")

// RequireJWT aceita apenas requisições com "Authorization: Bearer <token>"
// assinado em HS256 com secret. Tokens expirados são recusados.
func RequireJWT(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := parseBearer(c.GetHeader("Authorization"), secret)
		if err != nil {
			responses.Error(c, http.StatusUnauthorized, "Acesso não autorizado", err.Error())
			c.Abort()
			return
		}

		if username, ok := claims["username"].(string); ok {
			c.Set(UsernameKey, username)
		}
		if raw, ok := claims["roles"].([]interface{}); ok {
			roles := make([]string, 0, len(raw))
			for _, r := range raw {
				if s, ok := r.(string); ok {
					roles = append(roles, s)
				}
			}
			c.Set(RolesKey, roles)
		}
		c.Next()
	}
}

func parseBearer(header string, secret []byte) (jwt.MapClaims, error) {
	tokenString, found := strings.CutPrefix(header, "Bearer ")
	if !found || strings.TrimSpace(tokenString) == "" {
		return nil, errMissingToken
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(strings.TrimSpace(tokenString), claims, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token inválido")
	}
	return claims, nil
}
