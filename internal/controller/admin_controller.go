package controller

import (
	"github.com/gofiber/fiber/v2"

	"admissions-chatbot-be/internal/pkg/serverutils"
	"admissions-chatbot-be/internal/service"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	Reindex(ctx *fiber.Ctx) error
}

type adminController struct {
	indexerService service.IIndexerService
}

func NewAdminController(indexerService service.IIndexerService) IAdminController {
	return &adminController{
		indexerService: indexerService,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/v1")
	h.Post("/reindex", c.Reindex)
}

// Reindex enqueues a knowledge-base rebuild; the response returns
// before the rebuild finishes.
func (c *adminController) Reindex(ctx *fiber.Ctx) error {
	if err := c.indexerService.TriggerReindex(); err != nil {
		return err
	}
	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Reindex scheduled", nil))
}
