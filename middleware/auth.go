package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/mbokatech/hall-management-backend/config"
	"github.com/mbokatech/hall-management-backend/internal/auth"
	"github.com/mbokatech/hall-management-backend/utils"
)

// AuthMiddleware authenticates the request and sets the local user in context.
//
// Two token shapes are accepted: provider ID tokens (verified against the
// external identity provider, with the local user row auto-provisioned on
// first sight) and the local HS256 pair issued to admin accounts.
func AuthMiddleware(cfg *config.Config, authSvc auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid Authorization header"})
			return
		}
		tokenStr := parts[1]

		// Provider ID token first
		if utils.IsIdentityEnabled() {
			if decoded, err := utils.VerifyIDToken(c.Request.Context(), tokenStr); err == nil {
				ident := auth.Identity{UID: decoded.UID}
				if email, ok := decoded.Claims["email"].(string); ok {
					ident.Email = email
				}
				if phone, ok := decoded.Claims["phone_number"].(string); ok {
					ident.Phone = phone
				}
				if name, ok := decoded.Claims["name"].(string); ok {
					ident.FullName = name
				}

				// custom tokens carry no contact claims; fall back to the
				// provider's user record
				if ident.Email == "" && ident.Phone == "" {
					if rec, rerr := utils.GetProviderUser(c.Request.Context(), decoded.UID); rerr == nil {
						ident.Email = rec.Email
						ident.Phone = rec.PhoneNumber
						if ident.FullName == "" {
							ident.FullName = rec.DisplayName
						}
					}
				}

				user, err := authSvc.ProvisionFromIdentity(ident)
				if err != nil {
					c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user provisioning failed"})
					return
				}

				setAuthContext(c, user)
				c.Next()
				return
			}
		}

		// Local admin access token
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			return []byte(cfg.JWTAccessSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			return
		}

		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user_id missing in token"})
			return
		}

		user, err := authSvc.GetUserByID(userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		setAuthContext(c, user)
		c.Next()
	}
}

func setAuthContext(c *gin.Context, user *auth.User) {
	c.Set("user", user)
	c.Set("user_id", user.ID)
}

// GetUserFromContext retrieves the authenticated user, nil when absent
func GetUserFromContext(c *gin.Context) *auth.User {
	userVal, exists := c.Get("user")
	if !exists {
		return nil
	}
	user, ok := userVal.(*auth.User)
	if !ok {
		return nil
	}
	return user
}

// GetUserIDFromContext retrieves the authenticated user id, nil when absent
func GetUserIDFromContext(c *gin.Context) *string {
	user := GetUserFromContext(c)
	if user == nil {
		return nil
	}
	id := user.ID
	return &id
}
