package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// CookieName carries the anonymous user id.
	CookieName = "user_id"

	userIDKey = "user_id"

	maxUserIDLen = 128
)

// currentUser returns the id carried by the request cookie, or "".
func currentUser(c *gin.Context) string {
	id, err := c.Cookie(CookieName)
	if err != nil || id == "" || len(id) > maxUserIDLen {
		return ""
	}
	c.Set(userIDKey, id)
	return id
}

// ensureUser returns the request's user id, minting one when absent.
func ensureUser(c *gin.Context) (id string, minted bool) {
	if id = currentUser(c); id != "" {
		return id, false
	}
	id = uuid.NewString()
	c.Set(userIDKey, id)
	return id, true
}

// setUserCookie (re)issues the identity cookie.
func (s *Server) setUserCookie(c *gin.Context, id string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, id, int(s.config.CookieMaxAge.Seconds()), "/", "", s.config.CookieSecure, true)
}
