package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/alumniconnect/internal/app/auth"
	"github.com/yigit/alumniconnect/internal/app/models"
	"github.com/yigit/alumniconnect/internal/app/models/dto"
	"github.com/yigit/alumniconnect/internal/app/repositories"
	"github.com/yigit/alumniconnect/internal/db"
	"github.com/yigit/alumniconnect/internal/pkg/apperrors"
	"github.com/yigit/alumniconnect/internal/pkg/events"
	"github.com/yigit/alumniconnect/internal/pkg/helpers"
	"github.com/yigit/alumniconnect/internal/pkg/validation"
)

// Message reason strings
const (
	MsgConversationNotFound = "Conversation not found"
	MsgSelfConversation     = "Cannot start a conversation with yourself"
	MsgEmptyMessage         = "Message content cannot be empty"
	MsgMessageTooLong       = "Message content is too long"
	MsgMarkedRead           = "Marked as read"
)

// MessageService defines direct messaging. Non-participants always get
// NotFound so conversation ids leak nothing.
type MessageService interface {
	ListConversations(ctx context.Context, caller auth.Caller) ([]dto.ConversationResponse, error)
	OpenConversation(ctx context.Context, caller auth.Caller, otherUserID int64) (dto.ConversationResponse, error)
	ListMessages(ctx context.Context, caller auth.Caller, conversationID int64) ([]*models.Message, error)
	SendMessage(ctx context.Context, caller auth.Caller, conversationID int64, content string) (*models.Message, error)
	MarkRead(ctx context.Context, caller auth.Caller, conversationID int64) (int64, error)
}

type messageServiceImpl struct {
	convRepo  repositories.IConversationRepository
	userRepo  repositories.IUserRepository
	tx        db.TxRunner
	notifier  Notifier
	publisher events.Publisher
	logger    zerolog.Logger
}

// NewMessageService creates a new MessageService
func NewMessageService(
	convRepo repositories.IConversationRepository,
	userRepo repositories.IUserRepository,
	tx db.TxRunner,
	notifier Notifier,
	publisher events.Publisher,
	logger zerolog.Logger,
) MessageService {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	return &messageServiceImpl{
		convRepo:  convRepo,
		userRepo:  userRepo,
		tx:        tx,
		notifier:  notifier,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *messageServiceImpl) ListConversations(ctx context.Context, caller auth.Caller) ([]dto.ConversationResponse, error) {
	summaries, err := s.convRepo.ListForUser(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	me := caller.User()
	out := make([]dto.ConversationResponse, 0, len(summaries))
	for _, c := range summaries {
		out = append(out, dto.NewConversationResponse(me, c))
	}
	return out, nil
}

// OpenConversation returns the one conversation between the caller and
// otherUserID, creating it on first contact
func (s *messageServiceImpl) OpenConversation(ctx context.Context, caller auth.Caller, otherUserID int64) (dto.ConversationResponse, error) {
	if otherUserID == caller.ID {
		return dto.ConversationResponse{}, apperrors.NewValidationError(MsgSelfConversation)
	}
	if _, err := s.userRepo.GetByID(ctx, otherUserID); err != nil {
		return dto.ConversationResponse{}, notFound(err, MsgUserNotFound)
	}

	var summary *models.ConversationSummary
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		id, created, err := s.convRepo.GetOrCreate(ctx, caller.ID, otherUserID)
		if err != nil {
			return err
		}
		if created {
			s.logger.Info().Int64("conversationID", id).Int64("userID", caller.ID).Int64("otherUserID", otherUserID).Msg("Conversation created")
		}

		summary, err = s.convRepo.GetSummary(ctx, id, caller.ID)
		return notFound(err, MsgConversationNotFound)
	})
	if err != nil {
		return dto.ConversationResponse{}, err
	}
	return dto.NewConversationResponse(caller.User(), summary), nil
}

func (s *messageServiceImpl) ListMessages(ctx context.Context, caller auth.Caller, conversationID int64) ([]*models.Message, error) {
	if err := s.requireParticipant(ctx, caller, conversationID); err != nil {
		return nil, err
	}
	return s.convRepo.ListMessages(ctx, conversationID)
}

// SendMessage persists the message and pushes it to the other participant.
// Push and event delivery are best effort.
func (s *messageServiceImpl) SendMessage(ctx context.Context, caller auth.Caller, conversationID int64, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError(MsgEmptyMessage)
	}
	if len(content) > validation.MessageMaxLength {
		return nil, apperrors.NewValidationError(MsgMessageTooLong)
	}

	msg, err := s.convRepo.CreateMessage(ctx, conversationID, caller.ID, content)
	if err != nil {
		return nil, notFound(err, MsgConversationNotFound)
	}

	recipient, err := s.convRepo.OtherParticipant(ctx, conversationID, caller.ID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("conversationID", conversationID).Msg("Failed to resolve recipient for push")
	} else if err := s.notifier.NotifyUser(ctx, recipient, dto.NewRealtimeMessageEvent(msg)); err != nil {
		s.logger.Warn().Err(err).Int64("conversationID", conversationID).Int64("recipientID", recipient).Msg("Realtime push failed")
	}

	publish(ctx, s.publisher, s.logger, events.New(events.TypeMessageSent, helpers.FormatID(conversationID), map[string]any{
		"conversationId": helpers.FormatID(conversationID),
		"messageId":      helpers.FormatID(msg.ID),
		"senderId":       helpers.FormatID(caller.ID),
	}))
	return msg, nil
}

// MarkRead flips the caller's unread messages; repeated calls return 0
func (s *messageServiceImpl) MarkRead(ctx context.Context, caller auth.Caller, conversationID int64) (int64, error) {
	var updated int64
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.requireParticipant(ctx, caller, conversationID); err != nil {
			return err
		}
		n, err := s.convRepo.MarkRead(ctx, conversationID, caller.ID)
		if err != nil {
			return err
		}
		updated = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}

func (s *messageServiceImpl) requireParticipant(ctx context.Context, caller auth.Caller, conversationID int64) error {
	ok, err := s.convRepo.IsParticipant(ctx, conversationID, caller.ID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NewResourceNotFoundError(MsgConversationNotFound)
	}
	return nil
}
