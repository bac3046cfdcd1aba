package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mbokatech/hall-management-backend/internal/auth"
)

// HallAccessChecker is implemented by the hall service
type HallAccessChecker interface {
	IsHallManager(hallID uint, userID string) (bool, error)
}

// RequireRole checks if the user has one of the allowed roles
func RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetUserFromContext(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}

		for _, role := range allowedRoles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "unauthorized"})
	}
}

// RequireHallAccess guards host routes carrying a :id hall parameter.
// Admins pass; everyone else must be the gerant or carry a role on the hall.
func RequireHallAccess(checker HallAccessChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetUserFromContext(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}

		if user.Role == auth.RoleAdmin || user.Role == auth.RoleSuperAdmin {
			c.Next()
			return
		}

		hallID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil || hallID == 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid hall ID"})
			return
		}

		allowed, err := checker.IsHallManager(uint(hallID), user.ID)
		if err != nil {
			// NotFound stays NotFound; hides whether the hall exists
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "hall not found"})
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "you do not manage this hall"})
			return
		}

		c.Next()
	}
}
