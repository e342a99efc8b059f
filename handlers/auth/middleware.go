package auth

import (
	"net/http"

	"estate-sales-portal-server/models"
	"estate-sales-portal-server/utils"

	"github.com/gin-gonic/gin"
)

// Actor is the closed classification of who is making a request. Every gated
// route decides from this, not from ad hoc boolean flags.
type Actor int

const (
	ActorAnonymous Actor = iota
	ActorNoRole
	ActorClient
	ActorAgent
	ActorAdmin
)

func classify(user *models.User) Actor {
	if user == nil {
		return ActorAnonymous
	}
	switch user.Role {
	case models.RoleAdmin:
		return ActorAdmin
	case models.RoleAgent:
		return ActorAgent
	case models.RoleClient:
		return ActorClient
	default:
		return ActorNoRole
	}
}

// AuthMiddleware resolves the bearer token to an active user and stores it in
// the request context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			c.Abort()
			return
		}

		userID, err := utils.ExtractUserIDFromToken(authHeader)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		var user models.User
		if err := utils.DB.First(&user, userID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			c.Abort()
			return
		}

		if !user.Active {
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is suspended"})
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Next()
	}
}

// RequireActor gates a route group to the listed actors. Runs after
// AuthMiddleware.
func RequireActor(allowed ...Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := CurrentActor(c)
		for _, a := range allowed {
			if actor == a {
				c.Next()
				return
			}
		}

		switch actor {
		case ActorAnonymous:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		case ActorNoRole, ActorClient, ActorAgent, ActorAdmin:
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this resource"})
		}
		c.Abort()
	}
}

// CurrentActor classifies the request's user, if any.
func CurrentActor(c *gin.Context) Actor {
	userInterface, exists := c.Get("user")
	if !exists {
		return ActorAnonymous
	}
	user := userInterface.(models.User)
	return classify(&user)
}

// CurrentUser returns the authenticated user set by AuthMiddleware.
func CurrentUser(c *gin.Context) (models.User, bool) {
	userInterface, exists := c.Get("user")
	if !exists {
		return models.User{}, false
	}
	return userInterface.(models.User), true
}

// OptionalAuth resolves a bearer token when present but lets anonymous
// requests through; the application form accepts both.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		userID, err := utils.ExtractUserIDFromToken(authHeader)
		if err != nil {
			c.Next()
			return
		}

		var user models.User
		if err := utils.DB.First(&user, userID).Error; err == nil && user.Active {
			c.Set("user", user)
		}
		c.Next()
	}
}
