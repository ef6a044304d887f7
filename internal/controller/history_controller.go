package controller

import (
	"github.com/gofiber/fiber/v2"

	"admissions-chatbot-be/internal/dto"
	"admissions-chatbot-be/internal/pkg/serverutils"
	"admissions-chatbot-be/internal/service"
)

type IHistoryController interface {
	RegisterRoutes(r fiber.Router)
	ListSessions(ctx *fiber.Ctx) error
	GetMessages(ctx *fiber.Ctx) error
	Rename(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type historyController struct {
	historyService service.IHistoryService
}

func NewHistoryController(historyService service.IHistoryService) IHistoryController {
	return &historyController{
		historyService: historyService,
	}
}

func (c *historyController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/history/v1")
	h.Use(serverutils.OptionalJwtMiddleware)
	h.Get("/sessions", c.ListSessions)
	h.Get("/:session_id", c.GetMessages)
	h.Put("/:session_id/rename", c.Rename)
	h.Delete("/:session_id", c.Delete)
}

func (c *historyController) ListSessions(ctx *fiber.Ctx) error {
	ownerId := ctx.Query("owner_id")
	if tokenOwner, ok := ctx.Locals("owner_id").(string); ok && tokenOwner != "" {
		ownerId = tokenOwner
	}
	limit := ctx.QueryInt("limit", 20)

	res, err := c.historyService.ListSessions(ctx.Context(), ownerId, limit)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list sessions", res))
}

func (c *historyController) GetMessages(ctx *fiber.Ctx) error {
	res, err := c.historyService.GetMessages(ctx.Context(), ctx.Params("session_id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get messages", res))
}

func (c *historyController) Rename(ctx *fiber.Ctx) error {
	var req dto.RenameSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.historyService.RenameSession(ctx.Context(), ctx.Params("session_id"), req.Title); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success rename session", nil))
}

func (c *historyController) Delete(ctx *fiber.Ctx) error {
	if err := c.historyService.DeleteSession(ctx.Context(), ctx.Params("session_id")); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete session", nil))
}
