package scheduling

import (
	"meeting-scheduler/core/cache"
	"meeting-scheduler/core/database"
	"meeting-scheduler/core/middleware"
	meetingRepo "meeting-scheduler/modules/meeting/repository"
	participantRepo "meeting-scheduler/modules/participant/repository"
	"meeting-scheduler/modules/scheduling/controller"
	"meeting-scheduler/modules/scheduling/router"
	"meeting-scheduler/modules/scheduling/service"
	"meeting-scheduler/modules/scheduling/worker"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
)

// Init initializes the scheduling module, registers routes and returns the
// worker so the server can attach it to the task mux.
func Init(e *echo.Echo, db database.IDatabase, cacheClient cache.ICache, queue *asynq.Client, mw *middleware.Middleware) *worker.Worker {
	participants := participantRepo.NewParticipantRepository(db)
	meetings := meetingRepo.NewMeetingRepository(db)
	svc := service.NewSchedulingService(participants, meetings, cacheClient, queue)
	ctrl := controller.NewSchedulingController(svc)
	rtr := router.NewSchedulingRouter(ctrl)

	rtr.Setup(e, mw)

	return worker.NewWorker(svc)
}
