package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct{ *Srv }

func NewStatsHandler(s *Srv) *StatsHandler { return &StatsHandler{Srv: s} }

// intQuery reads a positive integer query parameter, falling back to def
// when absent or unparsable.
func intQuery(c *gin.Context, name string, def int) int {
	n, err := strconv.Atoi(c.DefaultQuery(name, strconv.Itoa(def)))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// Recent lists rentals picked up within the last ?days (default 7).
func (h *StatsHandler) Recent(c *gin.Context) {
	days := intQuery(c, "days", 7)
	c.JSON(http.StatusOK, gin.H{"rentals": h.Ledger.RentalsInLastNDays(days)})
}

// Week lists rentals picked up in the current Monday-to-Sunday week.
func (h *StatsHandler) Week(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rentals": h.Ledger.RentalsInCurrentWeek()})
}

// TopVehicles ranks this month's most rented vehicles (?n, default 5).
func (h *StatsHandler) TopVehicles(c *gin.Context) {
	n := intQuery(c, "n", 5)
	c.JSON(http.StatusOK, gin.H{"vehicles": h.Ledger.TopVehiclesThisMonth(n)})
}

// TopCustomers ranks this month's customers by rental count (?n, default 5).
func (h *StatsHandler) TopCustomers(c *gin.Context) {
	n := intQuery(c, "n", 5)
	c.JSON(http.StatusOK, gin.H{"customers": h.Ledger.TopCustomersThisMonth(n)})
}

// Revenue returns per-day revenue buckets for the last ?days (default 7),
// oldest day first, labels formatted DD/MM.
func (h *StatsHandler) Revenue(c *gin.Context) {
	days := intQuery(c, "days", 7)
	c.JSON(http.StatusOK, h.Ledger.DailyRevenueLastNDays(days))
}
