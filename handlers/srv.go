package handlers

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"rental-ledger/ledger"
)

// Session cookie key holding the authenticated username.
const sessionUserKey = "username"

// Srv bundles the handler dependencies. The engine is not safe for
// concurrent use, so every request runs under the mutex; the handlers
// rebind the engine session from the cookie principal per request.
type Srv struct {
	mu     sync.Mutex
	Ledger *ledger.Engine
	Log    *logrus.Logger
}

func NewSrv(eng *ledger.Engine, log *logrus.Logger) *Srv {
	return &Srv{Ledger: eng, Log: log}
}

// Serialize holds the engine lock for the whole request. Registered
// globally, before any handler touches the engine.
func (s *Srv) Serialize() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()
		c.Next()
	}
}

// AuthRequired restores the engine session from the cookie. Requests
// without a valid principal are rejected; a principal that no longer
// resolves (cleared ledger) is logged out.
func (s *Srv) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		username, ok := sess.Get(sessionUserKey).(string)
		if !ok || username == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if !s.Ledger.Resume(username) {
			sess.Clear()
			_ = sess.Save()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

// AdminRequired rejects non-admin sessions. Must run after AuthRequired.
func (s *Srv) AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.Ledger.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// fail maps a ledger error to its HTTP status and writes the JSON body.
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ledger.ErrNotLoggedIn):
		status = http.StatusUnauthorized
	case errors.Is(err, ledger.ErrPermissionDenied):
		status = http.StatusForbidden
	case errors.Is(err, ledger.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ledger.ErrInvalidRole):
		status = http.StatusBadRequest
	case errors.Is(err, ledger.ErrDuplicateUser),
		errors.Is(err, ledger.ErrDuplicatePlate),
		errors.Is(err, ledger.ErrVehicleUnavailable),
		errors.Is(err, ledger.ErrAlreadyReturned):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
