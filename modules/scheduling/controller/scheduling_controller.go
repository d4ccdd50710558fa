package controller

import (
	"meeting-scheduler/core/controller"
	"meeting-scheduler/modules/scheduling/service"

	"github.com/labstack/echo/v4"
)

// SchedulingController handles scheduling HTTP requests
type SchedulingController struct {
	controller.BaseController
	SchedulingService service.SchedulingServiceInterface
}

// NewSchedulingController creates a new controller
func NewSchedulingController(svc service.SchedulingServiceInterface) *SchedulingController {
	return &SchedulingController{
		BaseController:    controller.NewBaseController(),
		SchedulingService: svc,
	}
}

// Run handles POST /scheduling/run
// @Summary Run the scheduler over all unscheduled meetings
// @Tags Scheduling
// @Produce json
// @Success 200 {object} dto.RunResponse
// @Failure 500 {object} errors.AppError
// @Router /scheduling/run [post]
func (c *SchedulingController) Run(ctx echo.Context) error {
	result, appErr := c.SchedulingService.Run(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Scheduling run completed")
}

// RunAsync handles POST /scheduling/run/async
// @Summary Queue a scheduling run in the background
// @Tags Scheduling
// @Produce json
// @Success 202 {object} dto.EnqueueResponse
// @Failure 500 {object} errors.AppError
// @Router /scheduling/run/async [post]
func (c *SchedulingController) RunAsync(ctx echo.Context) error {
	result, appErr := c.SchedulingService.EnqueueRun(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.AcceptedResponse(ctx, result, "Scheduling run queued")
}

// Status handles GET /scheduling/status
// @Summary Get the result of the last scheduling run
// @Tags Scheduling
// @Produce json
// @Success 200 {object} dto.RunResponse
// @Failure 404 {object} errors.AppError
// @Router /scheduling/status [get]
func (c *SchedulingController) Status(ctx echo.Context) error {
	result, appErr := c.SchedulingService.LastResult(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// Summary handles GET /scheduling/summary
// @Summary Get scheduled/failed counts of the last run
// @Tags Scheduling
// @Produce json
// @Success 200 {object} dto.SummaryDTO
// @Failure 404 {object} errors.AppError
// @Router /scheduling/summary [get]
func (c *SchedulingController) Summary(ctx echo.Context) error {
	result, appErr := c.SchedulingService.Summary(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}
