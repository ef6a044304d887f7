package controller

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/valyala/fasthttp"

	"admissions-chatbot-be/internal/dto"
	"admissions-chatbot-be/internal/pkg/serverutils"
	"admissions-chatbot-be/internal/service"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	ChatStream(ctx *fiber.Ctx) error
	CreateSession(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.OptionalJwtMiddleware)
	h.Post("", c.Chat)
	h.Post("/stream", c.ChatStream)
	h.Post("/session", c.CreateSession)
	h.Get("/ws", websocket.New(c.chatWebsocket))
}

func (c *chatController) parseRequest(ctx *fiber.Ctx) (*dto.ChatRequest, error) {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return nil, err
	}
	// A verified token wins over whatever the body claims.
	if ownerId, ok := ctx.Locals("owner_id").(string); ok && ownerId != "" {
		req.OwnerId = ownerId
	}
	return &req, nil
}

func (c *chatController) Chat(ctx *fiber.Ctx) error {
	req, err := c.parseRequest(ctx)
	if err != nil {
		return err
	}

	res, err := c.chatService.ProcessMessage(ctx.Context(), req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

// ChatStream answers over server-sent events, one JSON frame per event.
func (c *chatController) ChatStream(ctx *fiber.Ctx) error {
	req, err := c.parseRequest(ctx)
	if err != nil {
		return err
	}

	ctx.Set("Content-Type", "text/event-stream")
	ctx.Set("Cache-Control", "no-cache")
	ctx.Set("Connection", "keep-alive")

	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		sink := func(frame interface{}) error {
			data, err := json.Marshal(frame)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
				return err
			}
			return w.Flush()
		}
		// The handler has returned by the time this runs; the request
		// context is gone. Disconnects surface as sink write errors.
		c.chatService.ProcessMessageStream(context.Background(), req, sink)
	}))
	return nil
}

// chatWebsocket serves multiple turns over one connection: each client
// JSON message is a chat request, answered with the frame sequence.
func (c *chatController) chatWebsocket(conn *websocket.Conn) {
	defer conn.Close()

	ownerId, _ := conn.Locals("owner_id").(string)

	for {
		var req dto.ChatRequest
		if err := conn.ReadJSON(&req); err != nil {
			return
		}
		if req.Question == "" {
			_ = conn.WriteJSON(fiber.Map{"error": "question is required"})
			continue
		}
		if ownerId != "" {
			req.OwnerId = ownerId
		}

		sink := func(frame interface{}) error {
			return conn.WriteJSON(frame)
		}
		c.chatService.ProcessMessageStream(context.Background(), &req, sink)
	}
}

func (c *chatController) CreateSession(ctx *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	// Body is optional; anonymous sessions are fine.
	_ = ctx.BodyParser(&req)
	if ownerId, ok := ctx.Locals("owner_id").(string); ok && ownerId != "" {
		req.OwnerId = ownerId
	}

	res, err := c.chatService.CreateSession(ctx.Context(), req.OwnerId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create session", res))
}
