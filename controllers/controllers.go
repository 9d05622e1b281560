package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/salonworks/salon-api/db"
	"github.com/salonworks/salon-api/schedule"
	"github.com/salonworks/salon-api/scheduler"
	"github.com/salonworks/salon-api/utils"
)

var (
	schedulerSvc *scheduler.Service
	staffStore   *db.StaffStore
)

// Init wires the handlers to the scheduling service and staff directory.
// Called once from main before routes are registered.
func Init(svc *scheduler.Service, staff *db.StaffStore) {
	schedulerSvc = svc
	staffStore = staff
}

// respondSchedulerError maps the scheduling error taxonomy onto HTTP
// statuses. Conflict and InvalidState get different messages on purpose:
// the first means "pick another staff member", the second "this
// appointment was already processed".
func respondSchedulerError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, schedule.ErrInvalidFormat):
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid date or time format",
			Error:   err.Error(),
		})
	case errors.Is(err, scheduler.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Not found",
			Error:   err.Error(),
		})
	case errors.Is(err, scheduler.ErrInvalidState):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
			Message: "This appointment was already processed",
			Error:   err.Error(),
		})
	case errors.Is(err, scheduler.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "This staff member is no longer available - choose another",
			Error:   err.Error(),
		})
	case errors.Is(err, scheduler.ErrUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(utils.ErrorResponse{
			Message: "Could not verify availability, try again",
			Error:   err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Internal error",
			Error:   err.Error(),
		})
	}
}
