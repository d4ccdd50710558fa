package router

import (
	"meeting-scheduler/core/middleware"
	"meeting-scheduler/modules/scheduling/controller"

	"github.com/labstack/echo/v4"
)

// SchedulingRouter handles scheduling routes
type SchedulingRouter struct {
	SchedulingController *controller.SchedulingController
}

// NewSchedulingRouter creates a new router
func NewSchedulingRouter(schedulingController *controller.SchedulingController) *SchedulingRouter {
	return &SchedulingRouter{
		SchedulingController: schedulingController,
	}
}

// Setup registers scheduling routes
func (r *SchedulingRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	schedulingRoutes := v1.Group("/scheduling")
	schedulingRoutes.POST("/run", r.SchedulingController.Run)
	schedulingRoutes.POST("/run/async", r.SchedulingController.RunAsync)
	schedulingRoutes.GET("/status", r.SchedulingController.Status)
	schedulingRoutes.GET("/summary", r.SchedulingController.Summary)
}
