package router

import (
	"meeting-scheduler/core/middleware"
	"meeting-scheduler/modules/participant/controller"

	"github.com/labstack/echo/v4"
)

// ParticipantRouter handles participant routes
type ParticipantRouter struct {
	ParticipantController *controller.ParticipantController
}

// NewParticipantRouter creates a new router
func NewParticipantRouter(participantController *controller.ParticipantController) *ParticipantRouter {
	return &ParticipantRouter{
		ParticipantController: participantController,
	}
}

// Setup registers participant routes
func (r *ParticipantRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	participantRoutes := v1.Group("/participants")
	participantRoutes.POST("", r.ParticipantController.CreateParticipant)
	participantRoutes.GET("", r.ParticipantController.GetParticipants)
	participantRoutes.GET("/:id", r.ParticipantController.GetParticipant)
	participantRoutes.PUT("/:id", r.ParticipantController.UpdateParticipant)
	participantRoutes.DELETE("/:id", r.ParticipantController.DeleteParticipant)

	// Availability intake
	participantRoutes.POST("/:id/availability", r.ParticipantController.AddAvailability)
	participantRoutes.GET("/:id/availability", r.ParticipantController.GetAvailability)
	participantRoutes.DELETE("/:id/availability/:intervalId", r.ParticipantController.DeleteAvailability)
}
