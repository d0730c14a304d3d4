package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	sessionCookie  = "sid"
	sessionMaxAge  = 24 * 60 * 60 // seconds, matches the cart TTL
	sessionKeyName = "session_id"
)

// EnsureSession guarantees every store request carries a session id,
// minting one into a cookie on first contact. The id keys the
// visitor's cart, so it must never be shared between visitors: if the
// system cannot produce a random id the request fails instead.
func EnsureSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(sessionCookie)
		if err != nil || sid == "" {
			token, err := generateRandomString(16)
			if err != nil {
				log.Printf("❌ Failed to mint session id: %v", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to start session"})
				return
			}
			sid = "sess_" + token
			c.SetCookie(sessionCookie, sid, sessionMaxAge, "/", "", false, true)
		}
		c.Set(sessionKeyName, sid)
		c.Next()
	}
}

// SessionID returns the session id set by EnsureSession.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionKeyName)
}

func generateRandomString(n int) (string, error) {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
