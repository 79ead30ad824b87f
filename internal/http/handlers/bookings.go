package handlers

import (
	"net/http"

	"shuttle/internal/http/middleware"
	"shuttle/internal/services"

	"github.com/gin-gonic/gin"
)

type bookingRequest struct {
	BusID    int64  `json:"bus_id"`
	UserName string `json:"user_name"`
}

// POST /api/bookings
func CreateBooking(c *gin.Context) {
	var req bookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
	booking, err := svc.BookSeat(c.Request.Context(), req.BusID, req.UserName)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "seat berhasil dipesan",
		"booking": booking,
	})
}

// GET /api/bookings/:id/receipt
func GetBookingReceipt(c *gin.Context) {
	id, ok := paramID(c, "id", "id booking tidak valid")
	if !ok {
		return
	}
	svc := services.ReceiptService{RequestID: middleware.GetRequestID(c)}
	pdfBytes, filename, err := svc.Generate(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
