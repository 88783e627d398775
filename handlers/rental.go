package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type RentalHandler struct{ *Srv }

func NewRentalHandler(s *Srv) *RentalHandler { return &RentalHandler{Srv: s} }

// Rent opens a rental on an available vehicle for the acting user.
func (h *RentalHandler) Rent(c *gin.Context) {
	var in struct {
		VehicleID    int     `json:"vehicle_id" binding:"required"`
		CustomerName string  `json:"customer_name" binding:"required"`
		TaxID        string  `json:"tax_id" binding:"required"`
		Phone        string  `json:"phone"`
		Days         int     `json:"days" binding:"required,gt=0"`
		DailyRate    float64 `json:"daily_rate" binding:"gte=0"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conf, err := h.Ledger.RentVehicle(in.VehicleID, in.CustomerName, in.TaxID, in.Phone, in.Days, in.DailyRate)
	if err != nil {
		fail(c, err)
		return
	}
	h.Log.WithFields(map[string]interface{}{
		"rental_id":  conf.RentalID,
		"vehicle_id": in.VehicleID,
	}).Info("vehicle rented")
	c.JSON(http.StatusCreated, conf)
}

// Return closes an open rental and frees its vehicle. Any logged-in user
// may return any rental.
func (h *RentalHandler) Return(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rental id"})
		return
	}

	conf, err := h.Ledger.ReturnVehicle(id)
	if err != nil {
		fail(c, err)
		return
	}
	h.Log.WithField("rental_id", conf.RentalID).Info("vehicle returned")
	c.JSON(http.StatusOK, conf)
}

// ListOpen returns rentals without a return timestamp, insertion order.
func (h *RentalHandler) ListOpen(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rentals": h.Ledger.ListOpenRentals()})
}
