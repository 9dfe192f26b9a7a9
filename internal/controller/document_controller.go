package controller

import (
	"io"

	"edubook-be/internal/dto"
	"edubook-be/internal/pkg/serverutils"
	"edubook-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService service.IDocumentService
}

func NewDocumentController(documentService service.IDocumentService) IDocumentController {
	return &documentController{
		documentService: documentService,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/document/v1")
	h.Post("upload", c.Upload)
}

func (c *documentController) Upload(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.FormValue("session_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	req := dto.UploadDocumentRequest{
		SessionId:  sessionId,
		UserPrompt: ctx.FormValue("user_prompt"),
		Enhance:    ctx.FormValue("enhance") == "true",
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "missing file upload")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not read file upload")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not read file upload")
	}

	res, err := c.documentService.Upload(ctx.Context(), &req, fileHeader.Filename, data)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "session not found")
	}

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Document accepted for processing", res))
}
