package models

import "time"

// ConversationPair returns the canonical (low, high) ordering of two user ids
func ConversationPair(a, b int64) (low, high int64) {
	if a < b {
		return a, b
	}
	return b, a
}

// ConversationSummary is one row of a user's inbox
type ConversationSummary struct {
	ID              int64
	OtherUserID     int64
	OtherUserName   string
	OtherUserRole   RoleType
	OtherUserAvatar *string
	LastMessage     *string
	LastMessageTime *time.Time
	UnreadCount     int
	CreatedAt       time.Time
}

// Message is one direct message
type Message struct {
	ID             int64     `db:"id"`
	ConversationID int64     `db:"conversation_id"`
	SenderID       int64     `db:"sender_id"`
	SenderName     string    `db:"sender_name"`
	Content        string    `db:"content"`
	IsRead         bool      `db:"is_read"`
	CreatedAt      time.Time `db:"created_at"`
}
