package participant

import (
	"meeting-scheduler/core/database"
	"meeting-scheduler/core/middleware"
	"meeting-scheduler/modules/participant/controller"
	"meeting-scheduler/modules/participant/repository"
	"meeting-scheduler/modules/participant/router"
	"meeting-scheduler/modules/participant/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the participant module and registers routes
func Init(e *echo.Echo, db database.IDatabase, mw *middleware.Middleware) {
	repo := repository.NewParticipantRepository(db)
	svc := service.NewParticipantService(repo)
	ctrl := controller.NewParticipantController(svc)
	rtr := router.NewParticipantRouter(ctrl)

	rtr.Setup(e, mw)
}
