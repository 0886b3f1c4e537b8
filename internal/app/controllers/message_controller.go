package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/alumniconnect/internal/app/models/dto"
	"github.com/yigit/alumniconnect/internal/app/services"
	"github.com/yigit/alumniconnect/internal/middleware"
)

// MessageController handles direct messages between two users
type MessageController struct {
	messageService services.MessageService
}

// NewMessageController creates a new MessageController
func NewMessageController(messageService services.MessageService) *MessageController {
	return &MessageController{messageService: messageService}
}

// ListConversations returns the caller's conversations, most recent activity first
// @Summary List conversations
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ConversationResponse}
// @Router /messages/conversations [get]
func (c *MessageController) ListConversations(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}

	convs, err := c.messageService.ListConversations(ctx.Request.Context(), caller)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, convs)
}

// OpenConversation returns the conversation with another user, creating it on first contact
// @Summary Get or create conversation
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path string true "Other user ID"
// @Success 200 {object} dto.APIResponse{data=dto.ConversationResponse}
// @Failure 400 {object} dto.ErrorResponse "Cannot start a conversation with yourself"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /messages/conversations/{id} [get]
func (c *MessageController) OpenConversation(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}
	otherID, ok := pathID(ctx, "id", "user")
	if !ok {
		return
	}

	conv, err := c.messageService.OpenConversation(ctx.Request.Context(), caller, otherID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, conv)
}

// ListMessages returns a conversation's messages, oldest first
// @Summary List messages
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conversation ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.MessageResponse}
// @Failure 404 {object} dto.ErrorResponse "Conversation not found"
// @Router /messages/conversations/{id}/messages [get]
func (c *MessageController) ListMessages(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id", "conversation")
	if !ok {
		return
	}

	msgs, err := c.messageService.ListMessages(ctx.Request.Context(), caller, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, dto.NewMessageResponses(msgs))
}

// SendMessage posts a message and pushes it to the other participant
// @Summary Send message
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conversation ID"
// @Param request body dto.SendMessageRequest true "Message"
// @Success 201 {object} dto.APIResponse{data=dto.MessageResponse}
// @Failure 400 {object} dto.ErrorResponse "Message content cannot be empty"
// @Failure 404 {object} dto.ErrorResponse "Conversation not found"
// @Router /messages/conversations/{id}/messages [post]
func (c *MessageController) SendMessage(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id", "conversation")
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	msg, err := c.messageService.SendMessage(ctx.Request.Context(), caller, id, req.Content)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, dto.NewMessageResponseFromModel(msg))
}

// MarkRead marks the other participant's messages as read
// @Summary Mark conversation read
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conversation ID"
// @Success 200 {object} dto.APIResponse{data=dto.MarkReadResponse} "Marked as read"
// @Failure 404 {object} dto.ErrorResponse "Conversation not found"
// @Router /messages/conversations/{id}/read [post]
func (c *MessageController) MarkRead(ctx *gin.Context) {
	caller, ok := currentCaller(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id", "conversation")
	if !ok {
		return
	}

	n, err := c.messageService.MarkRead(ctx.Request.Context(), caller, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondMessage(ctx, http.StatusOK, services.MsgMarkedRead, dto.MarkReadResponse{Updated: n})
}
