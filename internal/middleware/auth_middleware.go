package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "pomodoroclock/backend/internal/errors"
	"pomodoroclock/backend/internal/service"
)

const ClaimsContextKey = "claims"

// Authenticate stores the claims of a bearer token in the context when one
// is presented. Requests without a token pass through anonymously; a
// malformed or invalid token is rejected.
func Authenticate(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			abort(c, apperrors.Unauthorized("invalid authorization format"))
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			abort(c, apperrors.Unauthorized("invalid authorization format"))
			return
		}

		claims, apiErr := authService.ParseToken(token)
		if apiErr != nil {
			abort(c, apiErr)
			return
		}

		c.Set(ClaimsContextKey, claims)
		c.Next()
	}
}

// Claims returns the authenticated caller, or nil.
func Claims(c *gin.Context) *service.Claims {
	value, ok := c.Get(ClaimsContextKey)
	if !ok {
		return nil
	}
	claims, ok := value.(*service.Claims)
	if !ok {
		return nil
	}
	return claims
}

func EnsureLoggedIn() gin.HandlerFunc {
	return func(c *gin.Context) {
		if Claims(c) == nil {
			abort(c, apperrors.Unauthorized("login required"))
			return
		}
		c.Next()
	}
}

func EnsureAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := Claims(c)
		if claims == nil {
			abort(c, apperrors.Unauthorized("login required"))
			return
		}
		if !claims.IsAdmin {
			abort(c, apperrors.Forbidden("admin required"))
			return
		}
		c.Next()
	}
}

// EnsureCorrectUserOrAdmin lets the request through when the caller is an
// admin or matches the :username path parameter.
func EnsureCorrectUserOrAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := Claims(c)
		if claims == nil {
			abort(c, apperrors.Unauthorized("login required"))
			return
		}
		if !claims.CanActAs(c.Param("username")) {
			abort(c, apperrors.Forbidden("must be the same user or an admin"))
			return
		}
		c.Next()
	}
}

// EnsureParticipantOrAdmin lets the request through when the caller is an
// admin or matches any of the named path parameters.
func EnsureParticipantOrAdmin(params ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := Claims(c)
		if claims == nil {
			abort(c, apperrors.Unauthorized("login required"))
			return
		}
		for _, param := range params {
			if claims.CanActAs(c.Param(param)) {
				c.Next()
				return
			}
		}
		abort(c, apperrors.Forbidden("must be a participant or an admin"))
	}
}

func abort(c *gin.Context, apiErr *apperrors.APIError) {
	c.AbortWithStatusJSON(apiErr.Status, gin.H{
		"error": gin.H{
			"code":    apiErr.Code,
			"message": apiErr.Message,
			"status":  apiErr.Status,
		},
	})
}
