package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type VehicleHandler struct{ *Srv }

func NewVehicleHandler(s *Srv) *VehicleHandler { return &VehicleHandler{Srv: s} }

// List returns the fleet in registration order.
func (h *VehicleHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"vehicles": h.Ledger.ListVehicles()})
}

// Register creates a vehicle. Admin only.
func (h *VehicleHandler) Register(c *gin.Context) {
	var in struct {
		Name  string `json:"name" binding:"required"`
		Brand string `json:"brand" binding:"required"`
		Year  string `json:"year" binding:"required"`
		Plate string `json:"plate" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	v, err := h.Ledger.RegisterVehicle(in.Name, in.Brand, in.Year, in.Plate)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

// Modify updates the supplied fields of a vehicle; omitted or empty
// fields keep their current value. Admin only.
func (h *VehicleHandler) Modify(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vehicle id"})
		return
	}

	var in struct {
		Name  string `json:"name"`
		Brand string `json:"brand"`
		Year  string `json:"year"`
		Plate string `json:"plate"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	v, err := h.Ledger.ModifyVehicle(id, in.Name, in.Brand, in.Year, in.Plate)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}
