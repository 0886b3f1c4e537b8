package services

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/yigit/alumniconnect/internal/app/models/dto"
	"github.com/yigit/alumniconnect/internal/app/repositories"
	"github.com/yigit/alumniconnect/internal/pkg/apperrors"
	"github.com/yigit/alumniconnect/internal/pkg/events"
)

// Notifier pushes realtime payloads to the live connections of a user
type Notifier interface {
	NotifyUser(ctx context.Context, userID int64, v any) error
}

// NoopNotifier discards every push
type NoopNotifier struct{}

// NotifyUser does nothing
func (NoopNotifier) NotifyUser(context.Context, int64, any) error { return nil }

// validate checks request DTOs against the same `binding` tags gin uses, so
// services reject malformed input even when called outside an HTTP handler
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName("binding")
	v.RegisterTagNameFunc(dto.JSONFieldName)
	return v
}

// notFound converts a repository miss into a user-facing NotFound
func notFound(err error, message string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return apperrors.NewResourceNotFoundError(message)
	}
	return err
}

// publish emits e after the mutation committed. Delivery failures are logged
// and never change the outcome of the request.
func publish(ctx context.Context, p events.Publisher, logger zerolog.Logger, e events.Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, e); err != nil {
		logger.Warn().Err(err).Str("type", e.Type).Str("key", e.Key).Msg("Failed to publish domain event")
	}
}
