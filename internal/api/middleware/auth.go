package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/trendlinehq/builder-api/pkg/utils"
)

// AuthRequired validates the bearer token and rejects requests without one.
// Saved builds are per-user, so every /builds route sits behind this.
func AuthRequired(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := parseToken(c, jwtSecret)
		if err != nil {
			utils.SendUnauthorized(c, err.Error())
			c.Abort()
			return
		}

		c.Set("user_id", claims.Subject)
		c.Set("authenticated", true)
		c.Next()
	}
}

// OptionalAuth validates the bearer token if present; anonymous requests
// continue unauthenticated. Used on share decoding so logged-in users get
// their saved context resolved.
func OptionalAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := parseToken(c, jwtSecret)
		if err != nil {
			c.Set("authenticated", false)
			c.Next()
			return
		}

		c.Set("user_id", claims.Subject)
		c.Set("authenticated", true)
		c.Next()
	}
}

func parseToken(c *gin.Context, jwtSecret string) (*jwt.RegisteredClaims, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, fmt.Errorf("authorization header required")
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return nil, fmt.Errorf("bearer token required")
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

// GetUserID extracts the authenticated user id from the gin context.
func GetUserID(c *gin.Context) (string, error) {
	userID, exists := c.Get("user_id")
	if !exists {
		return "", fmt.Errorf("user ID not found in context")
	}

	uid, ok := userID.(string)
	if !ok || uid == "" {
		return "", fmt.Errorf("invalid user ID in context")
	}
	return uid, nil
}

// IsAuthenticated checks if the request is authenticated
func IsAuthenticated(c *gin.Context) bool {
	authenticated, exists := c.Get("authenticated")
	if !exists {
		return false
	}

	auth, ok := authenticated.(bool)
	return ok && auth
}
