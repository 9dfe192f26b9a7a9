package controller

import (
	"edubook-be/internal/dto"
	"edubook-be/internal/pkg/serverutils"
	"edubook-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IContentController interface {
	RegisterRoutes(r fiber.Router)
	Latest(ctx *fiber.Ctx) error
	Revise(ctx *fiber.Ctx) error
}

type contentController struct {
	contentService service.IContentService
}

func NewContentController(contentService service.IContentService) IContentController {
	return &contentController{
		contentService: contentService,
	}
}

func (c *contentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/content/v1")
	h.Get(":sessionId", c.Latest)
	h.Post(":contentId/revise", c.Revise)
}

func (c *contentController) Latest(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("sessionId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	res, err := c.contentService.Latest(ctx.Context(), sessionId)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "no content generated for this session yet")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show content", res))
}

func (c *contentController) Revise(ctx *fiber.Ctx) error {
	contentId, err := uuid.Parse(ctx.Params("contentId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid content id")
	}

	var req dto.ReviseContentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.ContentId = contentId

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.contentService.Revise(ctx.Context(), &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "content not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success revise content", res))
}
