package services

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/yigit/alumniconnect/internal/app/models"
	"github.com/yigit/alumniconnect/internal/app/models/dto"
	"github.com/yigit/alumniconnect/internal/pkg/apperrors"
	"github.com/yigit/alumniconnect/internal/pkg/events"
	"github.com/yigit/alumniconnect/internal/pkg/helpers"
)

func TestFirstContactMessaging(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	a := e.seedUser("student", models.RoleStudent, true)
	b := e.seedUser("alum", models.RoleAlumni, true)

	conv, err := e.messages.OpenConversation(ctx, a, b.ID)
	if err != nil {
		t.Fatal(err)
	}
	convID, ok := helpers.ParseID(conv.ID)
	if !ok {
		t.Fatalf("conversation id %q not numeric", conv.ID)
	}

	msg, err := e.messages.SendMessage(ctx, a, convID, "  Hello from campus  ")
	if err != nil {
		t.Fatal(err)
	}
	if msg.Content != "Hello from campus" || msg.SenderName != "student" || msg.IsRead {
		t.Errorf("unexpected message %+v", msg)
	}

	list, err := e.messages.ListConversations(ctx, b)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Fatalf("b has %d conversations, want 1", len(list))
	}
	got := list[0]
	if got.ID != conv.ID {
		t.Errorf("b sees conversation %s, a opened %s", got.ID, conv.ID)
	}
	if got.UnreadCount != 1 || got.LastMessage != "Hello from campus" {
		t.Errorf("unexpected summary %+v", got)
	}
	if got.Participants[0] != helpers.FormatID(b.ID) || got.ParticipantNames[1] != "student" {
		t.Errorf("participants not caller-first: %v %v", got.Participants, got.ParticipantNames)
	}

	reverse, err := e.messages.OpenConversation(ctx, b, a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if reverse.ID != conv.ID {
		t.Errorf("reverse open created %s, want %s", reverse.ID, conv.ID)
	}

	// the sender has nothing unread
	mine, err := e.messages.ListConversations(ctx, a)
	if err != nil || len(mine) != 1 || mine[0].UnreadCount != 0 {
		t.Fatalf("sender summary = %+v, %v", mine, err)
	}

	if len(e.notifier.pushes) != 1 {
		t.Fatalf("pushes = %d, want 1", len(e.notifier.pushes))
	}
	p := e.notifier.pushes[0]
	ev, ok := p.payload.(dto.RealtimeMessageEvent)
	if p.userID != b.ID || !ok || ev.Type != dto.RealtimeMessageType || ev.ConversationID != conv.ID {
		t.Errorf("unexpected push %+v", p)
	}
	if got := e.publisher.types(); len(got) != 1 || got[0] != events.TypeMessageSent {
		t.Errorf("published = %v", got)
	}
}

func TestMarkReadIsIdempotent(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	a := e.seedUser("a", models.RoleStudent, true)
	b := e.seedUser("b", models.RoleAlumni, true)

	conv, err := e.messages.OpenConversation(ctx, a, b.ID)
	if err != nil {
		t.Fatal(err)
	}
	id, _ := helpers.ParseID(conv.ID)
	for _, text := range []string{"one", "two"} {
		if _, err := e.messages.SendMessage(ctx, a, id, text); err != nil {
			t.Fatal(err)
		}
	}

	// a's own messages are never marked by a
	if n, err := e.messages.MarkRead(ctx, a, id); err != nil || n != 0 {
		t.Fatalf("sender mark read = %d, %v", n, err)
	}
	if n, err := e.messages.MarkRead(ctx, b, id); err != nil || n != 2 {
		t.Fatalf("first mark read = %d, %v", n, err)
	}
	if n, err := e.messages.MarkRead(ctx, b, id); err != nil || n != 0 {
		t.Fatalf("second mark read = %d, %v", n, err)
	}

	msgs, err := e.messages.ListMessages(ctx, b, id)
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 2 || msgs[0].Content != "one" || !msgs[1].IsRead {
		t.Errorf("messages = %+v", msgs)
	}
}

// txCheckingConversationRepo records whether the membership check ran inside
// the same transaction as the update
type txCheckingConversationRepo struct {
	fakeConversationRepo
	checkedInTx *bool
}

func (r txCheckingConversationRepo) IsParticipant(ctx context.Context, convID, userID int64) (bool, error) {
	*r.checkedInTx = inFakeTx(ctx)
	return r.fakeConversationRepo.IsParticipant(ctx, convID, userID)
}

func TestMarkReadChecksMembershipInTransaction(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	a := e.seedUser("a", models.RoleStudent, true)
	b := e.seedUser("b", models.RoleAlumni, true)

	conv, err := e.messages.OpenConversation(ctx, a, b.ID)
	if err != nil {
		t.Fatal(err)
	}
	id, _ := helpers.ParseID(conv.ID)
	if _, err := e.messages.SendMessage(ctx, a, id, "hello"); err != nil {
		t.Fatal(err)
	}

	var inTx bool
	repo := txCheckingConversationRepo{fakeConversationRepo{e.store}, &inTx}
	svc := NewMessageService(repo, fakeUserRepo{e.store}, fakeTx{}, e.notifier, e.publisher, zerolog.Nop())

	if n, err := svc.MarkRead(ctx, b, id); err != nil || n != 1 {
		t.Fatalf("mark read = %d, %v", n, err)
	}
	if !inTx {
		t.Error("membership was checked outside the update transaction")
	}
}

func TestConversationAccessAndValidation(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	a := e.seedUser("a", models.RoleStudent, true)
	b := e.seedUser("b", models.RoleAlumni, true)
	outsider := e.seedUser("c", models.RoleStudent, true)

	_, err := e.messages.OpenConversation(ctx, a, a.ID)
	wantErr(t, err, apperrors.ErrValidationFailed, MsgSelfConversation)

	_, err = e.messages.OpenConversation(ctx, a, 4040)
	wantErr(t, err, apperrors.ErrResourceNotFound, MsgUserNotFound)

	conv, err := e.messages.OpenConversation(ctx, a, b.ID)
	if err != nil {
		t.Fatal(err)
	}
	id, _ := helpers.ParseID(conv.ID)

	_, err = e.messages.SendMessage(ctx, outsider, id, "hi")
	wantErr(t, err, apperrors.ErrResourceNotFound, MsgConversationNotFound)
	_, err = e.messages.ListMessages(ctx, outsider, id)
	wantErr(t, err, apperrors.ErrResourceNotFound, MsgConversationNotFound)
	_, err = e.messages.MarkRead(ctx, outsider, id)
	wantErr(t, err, apperrors.ErrResourceNotFound, MsgConversationNotFound)

	_, err = e.messages.SendMessage(ctx, a, id, "   ")
	wantErr(t, err, apperrors.ErrValidationFailed, MsgEmptyMessage)
	_, err = e.messages.SendMessage(ctx, a, id, strings.Repeat("x", 5001))
	wantErr(t, err, apperrors.ErrValidationFailed, MsgMessageTooLong)

	if len(e.notifier.pushes) != 0 {
		t.Errorf("rejected sends pushed %d notifications", len(e.notifier.pushes))
	}
}

func TestConcurrentOpenYieldsOneConversation(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	a := e.seedUser("a", models.RoleStudent, true)
	b := e.seedUser("b", models.RoleAlumni, true)

	var wg sync.WaitGroup
	ids := make([]string, 20)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			from, to := a, b
			if i%2 == 1 {
				from, to = b, a
			}
			conv, err := e.messages.OpenConversation(ctx, from, to.ID)
			if err != nil {
				t.Error(err)
				return
			}
			ids[i] = conv.ID
		}(i)
	}
	wg.Wait()

	for _, id := range ids[1:] {
		if id != ids[0] {
			t.Fatalf("got ids %v, want a single conversation", ids)
		}
	}
}
