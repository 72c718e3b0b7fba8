package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const tokenCookie = "token"

// Manager sets and clears the HTTP-only session token cookie.
type Manager struct {
	Domain string
	Secure bool
}

func NewCookie(domain string, secure bool) *Manager {
	return &Manager{Domain: domain, Secure: secure}
}

func (m *Manager) SetToken(c *gin.Context, token string, exp time.Time) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(tokenCookie, token, maxAgeFrom(exp), "/", m.Domain, m.Secure, true)
}

// Clear expires the token cookie immediately (logout).
func (m *Manager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(tokenCookie, "", -1, "/", m.Domain, m.Secure, true)
}

// Token reads the session token cookie, empty when absent.
func Token(c *gin.Context) string {
	t, err := c.Cookie(tokenCookie)
	if err != nil {
		return ""
	}
	return t
}

func maxAgeFrom(exp time.Time) int {
	sec := int(time.Until(exp).Seconds())
	if sec < 0 {
		return 0
	}
	return sec
}
