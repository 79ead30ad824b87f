package handlers

import (
	"net/http"

	"shuttle/internal/domain"
	"shuttle/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/buses
func GetBuses(c *gin.Context) {
	buses, err := services.SummaryService{}.ListBuses(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, buses)
}

// GET /api/buses/summary
func GetBusSummary(c *gin.Context) {
	rows, err := services.SummaryService{}.Summaries(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GET /api/buses/:id/route
func GetBusRoute(c *gin.Context) {
	busID, ok := paramID(c, "id", "id bus tidak valid")
	if !ok {
		return
	}
	stops, err := services.SummaryService{}.Route(c.Request.Context(), busID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"bus_id":      busID,
		"stops":       stops,
		"route_label": domain.RouteLabel(stops),
	})
}
