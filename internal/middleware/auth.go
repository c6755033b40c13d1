package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mesametamaarkhan/theekkardo/internal/auth"
	"github.com/mesametamaarkhan/theekkardo/internal/logger"
	"github.com/mesametamaarkhan/theekkardo/internal/models"
)

// Actor is the verified identity of the caller, injected into every
// lifecycle/bidding operation that needs an authorization decision.
type Actor struct {
	ID    string
	Email string
	Role  models.UserRole
}

// AuthMiddleware verifies the bearer JWT and stores the actor in the
// gin context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing or invalid"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)

		ctx := logger.WithUserID(c.Request.Context(), claims.UserID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireRoles restricts a route group to the given roles.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]bool)
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		roleVal, exists := c.Get("role")
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: no role"})
			return
		}

		role, ok := roleVal.(models.UserRole)
		if !ok {
			roleStr, isString := roleVal.(string)
			if !isString {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: invalid role type"})
				return
			}
			role = models.UserRole(roleStr)
		}

		if !roleSet[role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: insufficient role"})
			return
		}

		c.Next()
	}
}

// CurrentActor extracts the authenticated actor from the gin context.
// Returns false when AuthMiddleware did not run.
func CurrentActor(c *gin.Context) (Actor, bool) {
	userIDVal, exists := c.Get("userID")
	if !exists {
		return Actor{}, false
	}
	userID, ok := userIDVal.(string)
	if !ok || userID == "" {
		return Actor{}, false
	}

	actor := Actor{ID: userID}
	if emailVal, ok := c.Get("email"); ok {
		actor.Email, _ = emailVal.(string)
	}
	if roleVal, ok := c.Get("role"); ok {
		switch r := roleVal.(type) {
		case models.UserRole:
			actor.Role = r
		case string:
			actor.Role = models.UserRole(r)
		}
	}
	return actor, true
}
