package middleware

import (
	"log"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"github.com/403errors/ideaflowai/internal/users"
)

// FirebaseAuth validates Firebase ID tokens, stores the caller identity in
// the Gin context, and keeps the users/{uid} profile stub in sync.
func FirebaseAuth(authClient *fbauth.Client, userRepo *users.Repo) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing authorization token"})
			c.Abort()
			return
		}

		decoded, err := authClient.VerifyIDToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
			c.Abort()
			return
		}

		c.Set("firebase_uid", decoded.UID)

		upsert := users.UpsertUser{UID: decoded.UID}
		if email, ok := decoded.Claims["email"].(string); ok {
			c.Set("email", email)
			upsert.Email = email
		}
		if name, ok := decoded.Claims["name"].(string); ok {
			upsert.DisplayName = name
		}
		if photo, ok := decoded.Claims["picture"].(string); ok {
			upsert.PhotoURL = photo
		}

		// Best effort: a failed stub write must not block the request.
		if err := userRepo.EnsureUser(c.Request.Context(), upsert); err != nil {
			log.Printf("[auth] ensure user %s: %v", decoded.UID, err)
		}

		c.Next()
	}
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return bearerToken[7:]
	}
	return ""
}
