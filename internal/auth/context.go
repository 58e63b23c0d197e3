package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxUID   = "firebase_uid"
	CtxEmail = "email"
)

// UserUID extracts the Firebase UID from the Gin context.
// This is set by Middleware.
func UserUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUID))
}

// UserEmail returns the token's email claim, if any.
func UserEmail(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxEmail))
}
