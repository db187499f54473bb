package handlers

import (
	"errors"
	"net/http"

	"invoice_idor/internal/models"
	"invoice_idor/internal/service"

	"github.com/gin-gonic/gin"
)

const msgInvalidCredentials = "Invalid credentials"

func (h *Handler) index(c *gin.Context) {
	sess := currentSession(c)
	data := gin.H{"title": "Home"}

	if sess.IsAuthenticated() {
		user, err := h.services.Authentication.UserByID(c.Request.Context(), sess.UserID)
		if err != nil {
			h.logAndTextError(c, http.StatusInternalServerError, "failed to load user", "index_user_lookup_failed", err, "userId", sess.UserID)
			return
		}
		data["user"] = user
	}
	c.HTML(http.StatusOK, "index.tmpl", data)
}

func (h *Handler) loginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.tmpl", gin.H{"title": "Log in"})
}

// login checks form credentials. Both an unknown username and a wrong
// password produce the same page so neither can be told apart.
func (h *Handler) login(c *gin.Context) {
	ctx := c.Request.Context()
	sess := currentSession(c)
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := h.services.Authentication.Login(ctx, username, password)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			h.logAndTextError(c, http.StatusInternalServerError, "login failed", "auth_login_error", err)
			return
		}
		if h.log != nil {
			h.log.Infow("auth_login_failed", "username", username)
		}
		h.recordEvent(c, models.AccessEvent{
			Type:        models.EventLoginFailure,
			UserID:      sess.UserID,
			Description: "failed login attempt",
			Metadata:    gin.H{"username": username},
		})
		c.HTML(http.StatusOK, "login.tmpl", gin.H{"title": "Log in", "error": msgInvalidCredentials})
		return
	}

	if _, err := h.services.Sessions.Authenticate(sess.ID, user.ID); err != nil {
		h.logAndTextError(c, http.StatusInternalServerError, "login failed", "auth_session_bind_failed", err, "userId", user.ID)
		return
	}
	h.recordEvent(c, models.AccessEvent{
		Type:        models.EventLoginSuccess,
		UserID:      user.ID,
		Description: "user " + user.Username + " logged in",
	})
	c.Redirect(http.StatusFound, "/my-invoices")
}

func (h *Handler) logout(c *gin.Context) {
	sess := currentSession(c)
	if sess.IsAuthenticated() {
		h.recordEvent(c, models.AccessEvent{
			Type:        models.EventLogout,
			UserID:      sess.UserID,
			Description: "session destroyed",
		})
	}

	if err := h.services.Sessions.Destroy(sess.ID); err != nil && !errors.Is(err, service.ErrSessionNotFound) {
		h.logAndTextError(c, http.StatusInternalServerError, "logout failed", "auth_logout_failed", err)
		return
	}
	clearSessionCookie(c)
	c.Redirect(http.StatusFound, "/")
}
