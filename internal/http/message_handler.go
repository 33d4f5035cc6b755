package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shui/internal/service"
)

// MessageHandler mantiene dependencias para los endpoints de mensajes.
type MessageHandler struct {
	logger   *zap.Logger
	messages *service.MessageService
}

// NewMessageHandler crea una instancia de MessageHandler con dependencias necesarias.
func NewMessageHandler(logger *zap.Logger, messages *service.MessageService) *MessageHandler {
	return &MessageHandler{
		logger:   logger,
		messages: messages,
	}
}

// CreateMessage maneja POST /messages.
func (h *MessageHandler) CreateMessage(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Text     string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create message request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	msg, err := h.messages.Create(c.Request.Context(), req.Username, req.Text)
	if err != nil {
		h.writeError(c, "create message", err)
		return
	}

	c.JSON(http.StatusCreated, msg)
}

// ListMessages maneja GET /messages.
func (h *MessageHandler) ListMessages(c *gin.Context) {
	msgs, err := h.messages.ListAll(c.Request.Context())
	if err != nil {
		h.writeError(c, "list messages", err)
		return
	}

	c.JSON(http.StatusOK, msgs)
}

// ListMessagesByUser maneja GET /messages/:username.
func (h *MessageHandler) ListMessagesByUser(c *gin.Context) {
	msgs, err := h.messages.ListByUser(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.writeError(c, "list messages by user", err)
		return
	}

	c.JSON(http.StatusOK, msgs)
}

// UpdateMessage maneja PUT /messages/:id.
func (h *MessageHandler) UpdateMessage(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update message request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	msg, err := h.messages.Update(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		h.writeError(c, "update message", err)
		return
	}

	c.JSON(http.StatusOK, msg)
}

// writeError traduce los tipos de error del servicio a codigos HTTP.
func (h *MessageHandler) writeError(c *gin.Context, op string, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		h.logger.Warn(op+" validation failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
	case errors.Is(err, service.ErrNotFound):
		h.logger.Warn(op+" not found", zap.String("id", c.Param("id")))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.logger.Error(op+" failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
