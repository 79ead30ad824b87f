package handlers

import (
	"net/http"

	"shuttle/internal/domain/models"
	"shuttle/internal/http/middleware"
	"shuttle/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/admin/dashboard
func GetDashboard(c *gin.Context) {
	rows, err := services.SummaryService{}.Dashboard(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"admin": middleware.GetSession(c).Username,
		"buses": rows,
	})
}

// PUT /api/admin/buses/:id
func UpdateBus(c *gin.Context) {
	busID, ok := paramID(c, "id", "id bus tidak valid")
	if !ok {
		return
	}
	var req models.BusUpdate
	if !BindJSONOrError(c, &req) {
		return
	}
	bus, err := adminService(c).UpdateBus(c.Request.Context(), middleware.GetSession(c), busID, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "data bus diperbarui",
		"bus":     bus,
	})
}

type addRouteRequest struct {
	StopName string `json:"stop_name"`
	StopTime string `json:"stop_time"`
}

// POST /api/admin/buses/:id/routes
func AddRoute(c *gin.Context) {
	busID, ok := paramID(c, "id", "id bus tidak valid")
	if !ok {
		return
	}
	var req addRouteRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	stop, err := adminService(c).AddRoute(c.Request.Context(), middleware.GetSession(c), busID, req.StopName, req.StopTime)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "halte ditambahkan",
		"route":   stop,
	})
}
