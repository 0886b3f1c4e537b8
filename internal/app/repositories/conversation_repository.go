package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/alumniconnect/internal/app/models"
	"github.com/yigit/alumniconnect/internal/db"
	"github.com/yigit/alumniconnect/internal/pkg/dberrors"
)

// IConversationRepository defines direct message persistence
type IConversationRepository interface {
	GetOrCreate(ctx context.Context, userA, userB int64) (id int64, created bool, err error)
	IsParticipant(ctx context.Context, conversationID, userID int64) (bool, error)
	OtherParticipant(ctx context.Context, conversationID, userID int64) (int64, error)
	ListForUser(ctx context.Context, userID int64) ([]*models.ConversationSummary, error)
	GetSummary(ctx context.Context, conversationID, userID int64) (*models.ConversationSummary, error)
	ListMessages(ctx context.Context, conversationID int64) ([]*models.Message, error)
	CreateMessage(ctx context.Context, conversationID, senderID int64, content string) (*models.Message, error)
	MarkRead(ctx context.Context, conversationID, readerID int64) (int64, error)
}

// ConversationRepository handles database operations for conversations and messages
type ConversationRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewConversationRepository creates a new ConversationRepository
func NewConversationRepository(q db.Querier) *ConversationRepository {
	return &ConversationRepository{db: q, sb: newBuilder()}
}

// GetOrCreate returns the single conversation of the unordered pair {userA, userB}.
// The pair is stored as (least, greatest) under a unique constraint, so
// concurrent first contact from either side converges on one row. Call it
// inside a transaction so the participant rows commit with the conversation.
func (r *ConversationRepository) GetOrCreate(ctx context.Context, userA, userB int64) (int64, bool, error) {
	low, high := models.ConversationPair(userA, userB)
	conn := db.Conn(ctx, r.db)

	var id int64
	err := conn.QueryRow(ctx, `
		INSERT INTO conversations (user_low_id, user_high_id)
		VALUES ($1, $2)
		ON CONFLICT (user_low_id, user_high_id) DO NOTHING
		RETURNING id`, low, high).Scan(&id)
	switch {
	case err == nil:
		_, err = conn.Exec(ctx, `
			INSERT INTO conversation_participants (conversation_id, user_id)
			VALUES ($1, $2), ($1, $3)`, id, low, high)
		if err != nil {
			return 0, false, fmt.Errorf("error adding conversation participants: %w", err)
		}
		return id, true, nil
	case dberrors.IsNoRows(err):
		// Row already existed, possibly committed by a concurrent caller
		err = conn.QueryRow(ctx, `
			SELECT id FROM conversations WHERE user_low_id = $1 AND user_high_id = $2`, low, high).Scan(&id)
		if err != nil {
			return 0, false, fmt.Errorf("error loading conversation: %w", err)
		}
		return id, false, nil
	default:
		return 0, false, fmt.Errorf("error creating conversation: %w", err)
	}
}

// IsParticipant reports whether userID belongs to the conversation
func (r *ConversationRepository) IsParticipant(ctx context.Context, conversationID, userID int64) (bool, error) {
	var ok bool
	err := db.Conn(ctx, r.db).QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM conversation_participants WHERE conversation_id = $1 AND user_id = $2)`,
		conversationID, userID).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("error checking participant: %w", err)
	}
	return ok, nil
}

// OtherParticipant returns the counterpart of userID in the conversation
func (r *ConversationRepository) OtherParticipant(ctx context.Context, conversationID, userID int64) (int64, error) {
	var other int64
	err := db.Conn(ctx, r.db).QueryRow(ctx, `
		SELECT user_id FROM conversation_participants WHERE conversation_id = $1 AND user_id <> $2 LIMIT 1`,
		conversationID, userID).Scan(&other)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("error loading counterpart: %w", err)
	}
	return other, nil
}

func (r *ConversationRepository) selectSummaries(userID int64) squirrel.SelectBuilder {
	return r.sb.Select(
		"c.id", "c.created_at", "o.id", "o.name", "o.role", "o.avatar",
		"lm.content", "lm.created_at",
		"(SELECT COUNT(*) FROM messages um WHERE um.conversation_id = c.id AND um.sender_id <> me.user_id AND NOT um.is_read)",
	).From("conversations c").
		Join("conversation_participants me ON me.conversation_id = c.id").
		Join("conversation_participants op ON op.conversation_id = c.id AND op.user_id <> me.user_id").
		Join("users o ON o.id = op.user_id").
		LeftJoin("LATERAL (SELECT m.content, m.created_at FROM messages m WHERE m.conversation_id = c.id " +
			"ORDER BY m.created_at DESC, m.id DESC LIMIT 1) lm ON TRUE").
		Where(squirrel.Eq{"me.user_id": userID})
}

func scanSummary(row scanner) (*models.ConversationSummary, error) {
	var s models.ConversationSummary
	var role string
	err := row.Scan(
		&s.ID, &s.CreatedAt, &s.OtherUserID, &s.OtherUserName, &role, &s.OtherUserAvatar,
		&s.LastMessage, &s.LastMessageTime, &s.UnreadCount,
	)
	if err != nil {
		return nil, err
	}
	s.OtherUserRole = models.RoleType(role)
	return &s, nil
}

// ListForUser returns the inbox of userID, most recent activity first
func (r *ConversationRepository) ListForUser(ctx context.Context, userID int64) ([]*models.ConversationSummary, error) {
	query, args, err := r.selectSummaries(userID).
		OrderBy("COALESCE(lm.created_at, c.created_at) DESC", "c.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building conversation list: %w", err)
	}

	rows, err := db.Conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing conversations: %w", err)
	}
	defer rows.Close()

	out := []*models.ConversationSummary{}
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetSummary returns one inbox row of userID. Non-participants get ErrNotFound.
func (r *ConversationRepository) GetSummary(ctx context.Context, conversationID, userID int64) (*models.ConversationSummary, error) {
	query, args, err := r.selectSummaries(userID).Where(squirrel.Eq{"c.id": conversationID}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building conversation query: %w", err)
	}

	s, err := scanSummary(db.Conn(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error retrieving conversation: %w", err)
	}
	return s, nil
}

// ListMessages returns the messages of a conversation, oldest first
func (r *ConversationRepository) ListMessages(ctx context.Context, conversationID int64) ([]*models.Message, error) {
	rows, err := db.Conn(ctx, r.db).Query(ctx, `
		SELECT m.id, m.conversation_id, m.sender_id, u.name, m.content, m.is_read, m.created_at
		FROM messages m
		JOIN users u ON u.id = m.sender_id
		WHERE m.conversation_id = $1
		ORDER BY m.created_at ASC, m.id ASC`, conversationID)
	if err != nil {
		return nil, fmt.Errorf("error listing messages: %w", err)
	}
	defer rows.Close()

	msgs := []*models.Message{}
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.SenderName, &m.Content, &m.IsRead, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, &m)
	}
	return msgs, rows.Err()
}

// CreateMessage inserts a message only if senderID participates in the
// conversation. The membership check and the insert are one statement;
// a non-participant yields ErrNotFound.
func (r *ConversationRepository) CreateMessage(ctx context.Context, conversationID, senderID int64, content string) (*models.Message, error) {
	m := models.Message{ConversationID: conversationID, SenderID: senderID, Content: content}
	err := db.Conn(ctx, r.db).QueryRow(ctx, `
		WITH inserted AS (
			INSERT INTO messages (conversation_id, sender_id, content)
			SELECT $1::bigint, $2::bigint, $3::text
			WHERE EXISTS (
				SELECT 1 FROM conversation_participants WHERE conversation_id = $1 AND user_id = $2
			)
			RETURNING id, created_at, sender_id
		)
		SELECT i.id, i.created_at, u.name FROM inserted i JOIN users u ON u.id = i.sender_id`,
		conversationID, senderID, content).Scan(&m.ID, &m.CreatedAt, &m.SenderName)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error sending message: %w", err)
	}
	return &m, nil
}

// MarkRead flips every unread message not written by readerID and returns how
// many changed. A reader outside the conversation changes nothing.
func (r *ConversationRepository) MarkRead(ctx context.Context, conversationID, readerID int64) (int64, error) {
	tag, err := db.Conn(ctx, r.db).Exec(ctx, `
		UPDATE messages SET is_read = TRUE
		WHERE conversation_id = $1 AND sender_id <> $2 AND NOT is_read
		  AND EXISTS (
			SELECT 1 FROM conversation_participants WHERE conversation_id = $1 AND user_id = $2
		  )`, conversationID, readerID)
	if err != nil {
		return 0, fmt.Errorf("error marking messages read: %w", err)
	}
	return tag.RowsAffected(), nil
}
