package handlers

import (
	"sakanly_backend/internal/services"
	"sakanly_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	*BaseHandler
	chatService services.ChatService
}

func NewChatHandler(base *BaseHandler, chatService services.ChatService) *ChatHandler {
	return &ChatHandler{BaseHandler: base, chatService: chatService}
}

func (h *ChatHandler) RegisterRoutes(r *gin.RouterGroup) {
	chat := r.Group("/chat")
	{
		chat.POST("", h.SmartAsk)
		chat.POST("/property", h.AskProperty)
		chat.POST("/agency", h.AskAgency)
	}
}

func (h *ChatHandler) SmartAsk(c *gin.Context) {
	var req dto.ChatRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.chatService.SmartAsk(c.Request.Context(), h.GetDB(c), req.Question)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondOK(c, resp, "")
}

func (h *ChatHandler) AskProperty(c *gin.Context) {
	var req dto.ChatRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.chatService.AskProperty(c.Request.Context(), h.GetDB(c), req.Question)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondOK(c, resp, "")
}

func (h *ChatHandler) AskAgency(c *gin.Context) {
	var req dto.ChatRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.chatService.AskAgency(c.Request.Context(), h.GetDB(c), req.Question)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondOK(c, resp, "")
}
