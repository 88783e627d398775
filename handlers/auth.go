package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ *Srv }

func NewAuthHandler(s *Srv) *AuthHandler { return &AuthHandler{Srv: s} }

// Login authenticates against the ledger (plain equality, no lockout)
// and stores the principal in the session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var in struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.Ledger.Login(in.Username, in.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	sess := sessions.Default(c)
	sess.Set(sessionUserKey, in.Username)
	if err := sess.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save session"})
		return
	}

	user, _ := h.Ledger.CurrentUser()
	h.Log.WithField("username", user.Username).Info("login")
	c.JSON(http.StatusOK, gin.H{"username": user.Username, "role": user.Role})
}

// Logout clears both the engine session and the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Ledger.Logout()
	sess := sessions.Default(c)
	sess.Clear()
	_ = sess.Save()
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Me reports the acting user. Runs behind AuthRequired.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := h.Ledger.CurrentUser()
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"username": user.Username,
		"role":     user.Role,
		"is_admin": h.Ledger.IsAdmin(),
	})
}
