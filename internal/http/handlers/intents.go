package handlers

import (
	"net/http"

	"shuttle/internal/http/middleware"
	"shuttle/internal/services"

	"github.com/gin-gonic/gin"
)

type intentRequest struct {
	StudentID string `json:"student_id"`
	BusID     int64  `json:"bus_id"`
}

// POST /api/intents
func CreateIntent(c *gin.Context) {
	var req intentRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	svc := services.IntentService{RequestID: middleware.GetRequestID(c)}
	intent, err := svc.Submit(c.Request.Context(), req.StudentID, req.BusID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "intent tercatat",
		"intent":  intent,
	})
}
