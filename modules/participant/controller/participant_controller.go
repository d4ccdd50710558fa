package controller

import (
	"meeting-scheduler/core/controller"
	"meeting-scheduler/core/errors"
	"meeting-scheduler/modules/participant/dto"
	"meeting-scheduler/modules/participant/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ParticipantController handles participant HTTP requests
type ParticipantController struct {
	controller.BaseController
	ParticipantService service.ParticipantServiceInterface
}

// NewParticipantController creates a new controller
func NewParticipantController(svc service.ParticipantServiceInterface) *ParticipantController {
	return &ParticipantController{
		BaseController:     controller.NewBaseController(),
		ParticipantService: svc,
	}
}

// CreateParticipant handles POST /participants
// @Summary Register a participant
// @Tags Participant
// @Accept json
// @Produce json
// @Param request body dto.CreateParticipantRequest true "Participant details"
// @Success 200 {object} dto.ParticipantResponse
// @Failure 400 {object} errors.AppError
// @Router /participants [post]
func (c *ParticipantController) CreateParticipant(ctx echo.Context) error {
	var req dto.CreateParticipantRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.ParticipantService.CreateParticipant(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Participant created successfully")
}

// GetParticipant handles GET /participants/:id
// @Summary Get a participant with availability
// @Tags Participant
// @Produce json
// @Param id path string true "Participant ID"
// @Success 200 {object} dto.ParticipantResponse
// @Failure 404 {object} errors.AppError
// @Router /participants/{id} [get]
func (c *ParticipantController) GetParticipant(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid participant ID")
	}

	result, appErr := c.ParticipantService.GetParticipantByID(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// GetParticipants handles GET /participants
// @Summary List participants
// @Tags Participant
// @Produce json
// @Success 200 {array} dto.ParticipantResponse
// @Router /participants [get]
func (c *ParticipantController) GetParticipants(ctx echo.Context) error {
	result, appErr := c.ParticipantService.GetAllParticipants(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// UpdateParticipant handles PUT /participants/:id
// @Summary Update participant details
// @Tags Participant
// @Accept json
// @Produce json
// @Param id path string true "Participant ID"
// @Param request body dto.UpdateParticipantRequest true "Fields to update"
// @Success 200 {object} dto.ParticipantResponse
// @Failure 404 {object} errors.AppError
// @Router /participants/{id} [put]
func (c *ParticipantController) UpdateParticipant(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid participant ID")
	}

	var req dto.UpdateParticipantRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.ParticipantService.UpdateParticipant(ctx.Request().Context(), id, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Participant updated successfully")
}

// DeleteParticipant handles DELETE /participants/:id
// @Summary Remove a participant
// @Tags Participant
// @Param id path string true "Participant ID"
// @Success 200 {object} controller.SuccessResponse
// @Failure 404 {object} errors.AppError
// @Router /participants/{id} [delete]
func (c *ParticipantController) DeleteParticipant(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid participant ID")
	}

	if appErr := c.ParticipantService.DeleteParticipant(ctx.Request().Context(), id); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Participant deleted successfully")
}

// AddAvailability handles POST /participants/:id/availability
// @Summary Declare a free window
// @Tags Participant
// @Accept json
// @Produce json
// @Param id path string true "Participant ID"
// @Param request body dto.AddAvailabilityRequest true "Free window"
// @Success 200 {object} dto.AvailabilityResponse
// @Failure 400 {object} errors.AppError
// @Router /participants/{id}/availability [post]
func (c *ParticipantController) AddAvailability(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid participant ID")
	}

	var req dto.AddAvailabilityRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.ParticipantService.AddAvailability(ctx.Request().Context(), id, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Availability added successfully")
}

// GetAvailability handles GET /participants/:id/availability?date=YYYY-MM-DD
// @Summary List declared free windows
// @Tags Participant
// @Produce json
// @Param id path string true "Participant ID"
// @Param date query string false "Filter by date"
// @Success 200 {array} dto.AvailabilityResponse
// @Router /participants/{id}/availability [get]
func (c *ParticipantController) GetAvailability(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid participant ID")
	}

	result, appErr := c.ParticipantService.GetAvailability(ctx.Request().Context(), id, ctx.QueryParam("date"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// DeleteAvailability handles DELETE /participants/:id/availability/:intervalId
// @Summary Remove a declared free window
// @Tags Participant
// @Param id path string true "Participant ID"
// @Param intervalId path string true "Interval ID"
// @Success 200 {object} controller.SuccessResponse
// @Router /participants/{id}/availability/{intervalId} [delete]
func (c *ParticipantController) DeleteAvailability(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid participant ID")
	}
	intervalID, err := uuid.Parse(ctx.Param("intervalId"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid interval ID")
	}

	if appErr := c.ParticipantService.DeleteAvailability(ctx.Request().Context(), id, intervalID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Availability deleted successfully")
}
