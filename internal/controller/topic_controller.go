package controller

import (
	"errors"

	"conversation-assistant-be/internal/dto"
	"conversation-assistant-be/internal/pkg/serverutils"
	"conversation-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ITopicController interface {
	RegisterRoutes(r fiber.Router)
	UploadContext(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
	ListRecords(ctx *fiber.Ctx) error
	DeleteRecord(ctx *fiber.Ctx) error
}

type topicController struct {
	knowledgeService service.IKnowledgeService
}

func NewTopicController(knowledgeService service.IKnowledgeService) ITopicController {
	return &topicController{
		knowledgeService: knowledgeService,
	}
}

func (c *topicController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/topic/v1")
	h.Post(":topic/context", c.UploadContext)
	h.Get(":topic/records", c.ListRecords)
	h.Delete(":topic/records/:id", c.DeleteRecord)
	h.Delete(":topic", c.Clear)
}

func (c *topicController) UploadContext(ctx *fiber.Ctx) error {
	topic := ctx.Params("topic")

	var req dto.UploadContextRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.knowledgeService.UploadContext(ctx.Context(), topic, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Document queued", res))
}

func (c *topicController) Clear(ctx *fiber.Ctx) error {
	topic := ctx.Params("topic")
	profile := ctx.Query("profile", "")

	if err := c.knowledgeService.ClearTopic(ctx.Context(), topic, profile); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Topic cleared", nil))
}

func (c *topicController) ListRecords(ctx *fiber.Ctx) error {
	topic := ctx.Params("topic")
	profile := ctx.Query("profile", "")
	page := ctx.QueryInt("page", 1)
	pageSize := ctx.QueryInt("page_size", 20)

	res, err := c.knowledgeService.ListRecords(ctx.Context(), topic, profile, page, pageSize)
	if err != nil {
		if errors.Is(err, service.ErrRecordStoreUnavailable) {
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(serverutils.ErrorResponse(503, err.Error()))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Knowledge records", res))
}

func (c *topicController) DeleteRecord(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid record id"))
	}

	if err := c.knowledgeService.DeleteRecord(ctx.Context(), id); err != nil {
		if errors.Is(err, service.ErrRecordStoreUnavailable) {
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(serverutils.ErrorResponse(503, err.Error()))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Record deleted", nil))
}
