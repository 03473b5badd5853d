package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Abort(c, http.StatusUnauthorized, "missing_authorization_header", "Token ausente.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_authorization_header", "Cabeçalho inválido.")
			return
		}

		tokenString := strings.TrimSpace(parts[1])

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token", "Token inválido.")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token_claims", "Token inválido.")
			return
		}

		userID, _ := claims["sub"].(string)
		role, _ := claims["role"].(string)
		if userID == "" || !validRole(domain.Role(role)) {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token_payload", "Token inválido.")
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUserRole, domain.Role(role))

		c.Next()
	}
}

func validRole(r domain.Role) bool {
	switch r {
	case domain.RoleClient, domain.RoleProfessional, domain.RoleAdmin:
		return true
	}
	return false
}

// CurrentUser returns the authenticated caller. Name is not carried in the
// token and is left empty.
func CurrentUser(c *gin.Context) domain.User {
	id := c.GetString(ContextUserID)
	role, _ := c.Get(ContextUserRole)
	r, _ := role.(domain.Role)
	return domain.User{ID: id, Role: r}
}

// RequireRole must run after AuthMiddleware.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		current := CurrentUser(c).Role
		for _, r := range roles {
			if current == r {
				c.Next()
				return
			}
		}
		httperr.Abort(c, http.StatusForbidden, "forbidden_role", "Acesso negado.")
	}
}
