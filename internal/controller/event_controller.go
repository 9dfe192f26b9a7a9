package controller

import (
	"edubook-be/internal/pkg/serverutils"
	"edubook-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IEventController interface {
	RegisterRoutes(r fiber.Router)
	Poll(ctx *fiber.Ctx) error
	Acknowledge(ctx *fiber.Ctx) error
}

type eventController struct {
	eventService service.IEventService
}

func NewEventController(eventService service.IEventService) IEventController {
	return &eventController{
		eventService: eventService,
	}
}

func (c *eventController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/events/v1")
	h.Get(":sessionId/poll", c.Poll)
	h.Post(":eventId/acknowledge", c.Acknowledge)
}

func (c *eventController) Poll(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("sessionId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	res, err := c.eventService.Poll(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success poll events", res))
}

func (c *eventController) Acknowledge(ctx *fiber.Ctx) error {
	eventId, err := uuid.Parse(ctx.Params("eventId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid event id")
	}

	res, err := c.eventService.Acknowledge(ctx.Context(), eventId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success acknowledge event", res))
}
