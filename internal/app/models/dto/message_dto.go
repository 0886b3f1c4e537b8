package dto

import (
	"time"

	"github.com/yigit/alumniconnect/internal/app/models"
	"github.com/yigit/alumniconnect/internal/pkg/helpers"
)

// SendMessageRequest carries the body of a direct message
type SendMessageRequest struct {
	Content string `json:"content" binding:"required,max=5000" example:"Hi, could we talk about your team?"`
}

// ConversationResponse is one inbox entry. Index 0 of each participant slice is the caller.
type ConversationResponse struct {
	ID                 string    `json:"id"`
	Participants       []string  `json:"participants"`
	ParticipantNames   []string  `json:"participantNames"`
	ParticipantRoles   []string  `json:"participantRoles"`
	ParticipantAvatars []*string `json:"participantAvatars"`
	LastMessage        string    `json:"lastMessage"`
	LastMessageTime    string    `json:"lastMessageTime"`
	UnreadCount        int       `json:"unreadCount"`
}

// NewConversationResponse maps an inbox row as seen by caller
func NewConversationResponse(caller *models.User, c *models.ConversationSummary) ConversationResponse {
	resp := ConversationResponse{
		ID:                 helpers.FormatID(c.ID),
		Participants:       []string{helpers.FormatID(caller.ID), helpers.FormatID(c.OtherUserID)},
		ParticipantNames:   []string{caller.Name, c.OtherUserName},
		ParticipantRoles:   []string{string(caller.Role), string(c.OtherUserRole)},
		ParticipantAvatars: []*string{caller.Avatar, c.OtherUserAvatar},
		UnreadCount:        c.UnreadCount,
	}
	if c.LastMessage != nil {
		resp.LastMessage = *c.LastMessage
	}
	if c.LastMessageTime != nil {
		resp.LastMessageTime = c.LastMessageTime.UTC().Format(time.RFC3339)
	}
	return resp
}

// MessageResponse is the public view of a direct message
type MessageResponse struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	SenderID       string    `json:"senderId"`
	SenderName     string    `json:"senderName"`
	Content        string    `json:"content"`
	Timestamp      time.Time `json:"timestamp"`
	Read           bool      `json:"read"`
}

// NewMessageResponseFromModel maps a message row
func NewMessageResponseFromModel(m *models.Message) MessageResponse {
	return MessageResponse{
		ID:             helpers.FormatID(m.ID),
		ConversationID: helpers.FormatID(m.ConversationID),
		SenderID:       helpers.FormatID(m.SenderID),
		SenderName:     m.SenderName,
		Content:        m.Content,
		Timestamp:      m.CreatedAt,
		Read:           m.IsRead,
	}
}

// NewMessageResponses maps a slice of messages
func NewMessageResponses(msgs []*models.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, NewMessageResponseFromModel(m))
	}
	return out
}

// MarkReadResponse reports how many messages flipped to read
type MarkReadResponse struct {
	Updated int64 `json:"updated" example:"3"`
}

// RealtimeMessageType tags pushes that carry a new direct message
const RealtimeMessageType = "message"

// RealtimeMessageEvent is pushed to the recipient's live connections
type RealtimeMessageEvent struct {
	Type           string          `json:"type" example:"message"`
	ConversationID string          `json:"conversationId"`
	Message        MessageResponse `json:"message"`
}

// NewRealtimeMessageEvent wraps a persisted message for push delivery
func NewRealtimeMessageEvent(m *models.Message) RealtimeMessageEvent {
	return RealtimeMessageEvent{
		Type:           RealtimeMessageType,
		ConversationID: helpers.FormatID(m.ConversationID),
		Message:        NewMessageResponseFromModel(m),
	}
}
