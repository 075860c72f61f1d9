package routes

import (
	"petcare/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires all endpoint groups onto the router.
func RegisterRoutes(r *gin.Engine, chatHandler *handlers.ChatHandler, apptHandler *handlers.AppointmentHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
	}))

	r.GET("/health", handlers.HealthHandler)

	RegisterChatRoutes(r, chatHandler)
	RegisterAppointmentRoutes(r, apptHandler)
}
