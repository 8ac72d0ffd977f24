package v1

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/poketrade/marketplace-api/internal/api/handler/v1/request"
	"github.com/poketrade/marketplace-api/internal/api/handler/v1/response"
	"github.com/poketrade/marketplace-api/internal/service"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust this for production!
	},
}

type ChatService interface {
	Ask(ctx context.Context, prompt string) (string, error)
}

type chatClient struct {
	conn   *websocket.Conn
	send   chan []byte
	userID uint
}

type ChatHandler struct {
	svc          ChatService
	clients      map[uint]*chatClient
	clientsMutex sync.RWMutex
	register     chan *chatClient
	unregister   chan *chatClient
}

func NewChatHandler(svc ChatService) *ChatHandler {
	return &ChatHandler{
		svc:        svc,
		clients:    make(map[uint]*chatClient),
		register:   make(chan *chatClient),
		unregister: make(chan *chatClient),
	}
}

// Run owns the client registry. Start it once, in its own goroutine.
func (h *ChatHandler) Run() {
	for {
		select {
		case client := <-h.register:
			h.clientsMutex.Lock()
			h.clients[client.userID] = client
			h.clientsMutex.Unlock()
		case client := <-h.unregister:
			h.clientsMutex.Lock()
			if _, ok := h.clients[client.userID]; ok {
				delete(h.clients, client.userID)
				close(client.send)
			}
			h.clientsMutex.Unlock()
		}
	}
}

// HandleChat godoc
// @Summary      Ask the marketplace assistant a question
// @Tags         chat
// @Produce      json
// @Param        request  body       request.ChatRequest true "request body"
// @Success      200      {object}   response.ChatResponse
// @Failure      400      {object}   response.Err
// @Failure      503      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /chat [post]
// @Security     BearerAuth
func (h *ChatHandler) HandleChat(ctx *gin.Context) {
	var req request.ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	reply, err := h.svc.Ask(ctx.Request.Context(), req.Message)
	if err != nil {
		if errors.Is(err, service.ErrChatUnavailable) {
			response.RenderErr(ctx, response.ErrServiceUnavailable(service.ErrChatUnavailable))

			return
		}

		err = fmt.Errorf("v1.HandleChat -> h.svc.Ask -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.ChatResponse{Reply: reply})
}

// HandleWebSocket godoc
// @Summary      Chat with the marketplace assistant over a WebSocket
// @Tags         chat
// @Produce      json
// @Success      101 {string} string "Switching Protocols to WebSocket"
// @Failure      401 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /chat/ws [get]
// @Security     BearerAuth
func (h *ChatHandler) HandleWebSocket(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		zap.L().Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &chatClient{
		conn:   conn,
		send:   make(chan []byte, 256),
		userID: userID,
	}
	h.register <- client

	go client.writePump()
	go client.readPump(h)
}

func (c *chatClient) writePump() {
	defer func() {
		c.conn.Close()
	}()
	for {
		message, ok := <-c.send
		if !ok {
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		w, err := c.conn.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		w.Write(message)
		if err := w.Close(); err != nil {
			return
		}
	}
}

func (c *chatClient) readPump(h *ChatHandler) {
	defer func() {
		h.unregister <- c
		c.conn.Close()
	}()
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				zap.L().Warn("websocket read failed", zap.Error(err))
			}
			break
		}

		var req request.ChatRequest
		if err := json.Unmarshal(message, &req); err != nil {
			c.sendJSON(map[string]any{"type": "error", "message": "invalid message"})
			continue
		}
		if err := req.Validate(); err != nil {
			c.sendJSON(map[string]any{"type": "error", "message": err.Error()})
			continue
		}

		reply, err := h.svc.Ask(context.Background(), req.Message)
		if err != nil {
			c.sendJSON(map[string]any{"type": "error", "message": "assistant is unavailable"})
			continue
		}

		c.sendJSON(map[string]any{"type": "reply", "message": reply})
	}
}

func (c *chatClient) sendJSON(payload map[string]any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	c.send <- data
}
