package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rental-ledger/models"
)

type AdminHandler struct{ *Srv }

func NewAdminHandler(s *Srv) *AdminHandler { return &AdminHandler{Srv: s} }

// CreateUser appends a new account. Admin only.
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var in struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Ledger.CreateUser(in.Username, in.Password, models.Role(in.Role)); err != nil {
		fail(c, err)
		return
	}
	h.Log.WithField("username", in.Username).Info("user created")
	c.JSON(http.StatusCreated, gin.H{"username": in.Username, "role": in.Role})
}

// ClearAll wipes the whole ledger and recreates the bootstrap admin. The
// engine performs no gating of its own, so this handler owns the full
// confirmation flow: admin session (middleware), an explicit confirm
// flag, and re-verification of the submitted password against the live
// admin record.
func (h *AdminHandler) ClearAll(c *gin.Context) {
	var in struct {
		Password string `json:"password" binding:"required"`
		Confirm  bool   `json:"confirm"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !in.Confirm {
		c.JSON(http.StatusBadRequest, gin.H{"error": "confirmation required"})
		return
	}
	if !h.Ledger.CheckPassword("admin", in.Password) {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin password mismatch"})
		return
	}

	if err := h.Ledger.ClearAll(); err != nil {
		fail(c, err)
		return
	}
	h.Log.Warn("ledger cleared, bootstrap admin recreated")
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
