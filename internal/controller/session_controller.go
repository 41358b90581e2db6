package controller

import (
	"errors"

	"conversation-assistant-be/internal/dto"
	"conversation-assistant-be/internal/pkg/serverutils"
	"conversation-assistant-be/internal/service"
	"conversation-assistant-be/pkg/assistant"

	"github.com/gofiber/fiber/v2"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Start(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Stop(ctx *fiber.Ctx) error
	IngestSegment(ctx *fiber.Ctx) error
	IngestAudio(ctx *fiber.Ctx) error
	ListProfiles(ctx *fiber.Ctx) error
}

type sessionController struct {
	sessionService service.ISessionService
}

func NewSessionController(sessionService service.ISessionService) ISessionController {
	return &sessionController{
		sessionService: sessionService,
	}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session/v1")
	h.Get("profiles", c.ListProfiles)
	h.Post("", c.Start)
	h.Get(":topic", c.Show)
	h.Delete(":topic", c.Stop)
	h.Post(":topic/segments", c.IngestSegment)
	h.Post(":topic/audio", c.IngestAudio)
}

func (c *sessionController) Start(ctx *fiber.Ctx) error {
	var req dto.StartSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.sessionService.Start(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrSessionExists) {
			return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, err.Error()))
		}
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Session started", res))
}

func (c *sessionController) Show(ctx *fiber.Ctx) error {
	topic := ctx.Params("topic")

	res, err := c.sessionService.Show(ctx.Context(), topic)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Session state", res))
}

func (c *sessionController) Stop(ctx *fiber.Ctx) error {
	topic := ctx.Params("topic")

	if err := c.sessionService.Stop(ctx.Context(), topic); err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Session stopped", nil))
}

func (c *sessionController) IngestSegment(ctx *fiber.Ctx) error {
	topic := ctx.Params("topic")

	var req dto.IngestSegmentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.sessionService.Ingest(ctx.Context(), topic, req.Segment)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		if errors.Is(err, assistant.ErrSessionNotListening) {
			return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, err.Error()))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Segment ingested", res))
}

func (c *sessionController) IngestAudio(ctx *fiber.Ctx) error {
	topic := ctx.Params("topic")

	fileHeader, err := ctx.FormFile("audio")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Audio file is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	res, err := c.sessionService.IngestAudio(ctx.Context(), topic, fileHeader.Filename, file)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Audio ingested", res))
}

func (c *sessionController) ListProfiles(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Available profiles", assistant.ProfileNames()))
}
