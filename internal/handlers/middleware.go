package handlers

import (
	"net/http"
	"time"

	"invoice_idor/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	sessionCookieName = "invoice.sid"

	ctxSessionKey = "session"
	ctxUserIDKey  = "userId"
)

// sessionMiddleware attaches a session to every request, issuing a cookie
// for new ones.
func (h *Handler) sessionMiddleware(c *gin.Context) {
	cookie, _ := c.Cookie(sessionCookieName)

	sess, token, err := h.services.Sessions.CreateOrReuse(cookie)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("session_create_failed", "err", err)
		}
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if token != "" {
		setSessionCookie(c, token)
	}

	c.Set(ctxSessionKey, sess)
	c.Next()
}

// requireAuth redirects anonymous sessions to the login page.
func (h *Handler) requireAuth(c *gin.Context) {
	sess := currentSession(c)
	if !h.services.Sessions.IsAuthenticated(sess.ID) {
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return
	}

	if latest, ok := h.services.Sessions.Session(sess.ID); ok {
		sess = latest
		c.Set(ctxSessionKey, sess)
	}
	c.Set(ctxUserIDKey, sess.UserID)
	c.Next()
}

func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()

	if h.log == nil {
		return
	}
	h.log.Infow("http_request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"latency", time.Since(start).String(),
		"client_ip", c.ClientIP(),
	)
}

func currentSession(c *gin.Context) models.Session {
	if v, ok := c.Get(ctxSessionKey); ok {
		if s, ok := v.(models.Session); ok {
			return s
		}
	}
	return models.Session{}
}

// setSessionCookie writes a browser-session cookie (no Max-Age), HttpOnly, not Secure.
func setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(sessionCookieName, token, 0, "/", "", false, true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
}
