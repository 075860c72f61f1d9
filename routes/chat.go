package routes

import (
	"petcare/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterChatRoutes registers the conversational endpoints.
func RegisterChatRoutes(r *gin.Engine, h *handlers.ChatHandler) {
	chat := r.Group("/api/chat")
	{
		chat.POST("", h.HandleMessage)              // One conversational turn
		chat.GET("/:sessionId", h.GetConversation)  // Read-only session lookup
	}
}

// RegisterAppointmentRoutes registers the appointment record endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, h *handlers.AppointmentHandler) {
	appts := r.Group("/api/appointments")
	{
		appts.GET("/:id", h.GetAppointment)
		appts.GET("/session/:sessionId", h.ListSessionAppointments)
		appts.PATCH("/:id/status", h.UpdateAppointmentStatus)
	}
}
