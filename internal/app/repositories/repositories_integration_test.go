package repositories

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/yigit/alumniconnect/internal/app/auth"
	"github.com/yigit/alumniconnect/internal/app/migrations"
	"github.com/yigit/alumniconnect/internal/app/models"
)

// openTestPool connects to the database named by ALUMNI_TEST_DB and applies
// the schema. Tests are skipped when the variable is unset.
func openTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("ALUMNI_TEST_DB")
	if dsn == "" {
		t.Skip("ALUMNI_TEST_DB not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	m := migrations.NewMigrator(pool, zerolog.Nop())
	if err := m.MigrateFromDirectory(ctx, filepath.Join("..", "..", "..", "migrations")); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return pool
}

func createUser(t *testing.T, repos *Repositories, role models.RoleType) *models.User {
	t.Helper()
	u := &models.User{
		Name:         string(role) + " " + uuid.NewString()[:8],
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		Role:         role,
		IsApproved:   role.ApprovedAtCreation(),
	}
	if err := repos.UserRepository.Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func TestConversationPairIsUnique(t *testing.T) {
	repos := NewRepositories(openTestPool(t))
	ctx := context.Background()
	a := createUser(t, repos, models.RoleStudent)
	b := createUser(t, repos, models.RoleAlumni)
	outsider := createUser(t, repos, models.RoleStudent)

	first, created, err := repos.ConversationRepository.GetOrCreate(ctx, a.ID, b.ID)
	if err != nil || !created {
		t.Fatalf("first GetOrCreate: id=%d created=%v err=%v", first, created, err)
	}
	second, created, err := repos.ConversationRepository.GetOrCreate(ctx, b.ID, a.ID)
	if err != nil || created {
		t.Fatalf("second GetOrCreate: created=%v err=%v", created, err)
	}
	if first != second {
		t.Fatalf("expected same conversation, got %d and %d", first, second)
	}

	if _, err := repos.ConversationRepository.CreateMessage(ctx, first, outsider.ID, "hi"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("outsider send: expected ErrNotFound, got %v", err)
	}

	msg, err := repos.ConversationRepository.CreateMessage(ctx, first, a.ID, "hello")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if msg.SenderName != a.Name || msg.IsRead {
		t.Fatalf("unexpected message %+v", msg)
	}

	summary, err := repos.ConversationRepository.GetSummary(ctx, first, b.ID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.OtherUserID != a.ID || summary.UnreadCount != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if summary.LastMessage == nil || *summary.LastMessage != "hello" {
		t.Fatalf("unexpected last message %v", summary.LastMessage)
	}

	// the sender reading its own conversation changes nothing
	if n, err := repos.ConversationRepository.MarkRead(ctx, first, a.ID); err != nil || n != 0 {
		t.Fatalf("sender MarkRead: n=%d err=%v", n, err)
	}
	if n, err := repos.ConversationRepository.MarkRead(ctx, first, outsider.ID); err != nil || n != 0 {
		t.Fatalf("outsider MarkRead: n=%d err=%v", n, err)
	}
	if n, err := repos.ConversationRepository.MarkRead(ctx, first, b.ID); err != nil || n != 1 {
		t.Fatalf("recipient MarkRead: n=%d err=%v", n, err)
	}

	if _, err := repos.ConversationRepository.GetSummary(ctx, first, outsider.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("outsider summary: expected ErrNotFound, got %v", err)
	}
}

func TestApplicationAndRegistrationUniqueness(t *testing.T) {
	repos := NewRepositories(openTestPool(t))
	ctx := context.Background()
	poster := createUser(t, repos, models.RoleAlumni)
	student := createUser(t, repos, models.RoleStudent)

	job := &models.Job{Title: "Engineer", Company: "Acme", PostedByID: poster.ID, PostedByName: poster.Name}
	if err := repos.JobRepository.Create(ctx, job); err != nil {
		t.Fatalf("create job: %v", err)
	}

	app := &models.Application{JobID: job.ID, StudentID: student.ID}
	if err := repos.ApplicationRepository.Create(ctx, app); err != nil {
		t.Fatalf("apply: %v", err)
	}
	dup := &models.Application{JobID: job.ID, StudentID: student.ID}
	if err := repos.ApplicationRepository.Create(ctx, dup); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("second apply: expected ErrDuplicate, got %v", err)
	}

	apps, err := repos.ApplicationRepository.List(ctx, auth.ListScope{JobOwnerID: poster.ID}, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(apps) != 1 || apps[0].StudentName != student.Name {
		t.Fatalf("unexpected applications %+v", apps)
	}

	event := &models.Event{Title: "Meetup", Date: time.Now(), CreatedByID: &poster.ID}
	if err := repos.EventRepository.Create(ctx, event); err != nil {
		t.Fatalf("create event: %v", err)
	}
	if err := repos.EventRepository.Register(ctx, event.ID, student.ID); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := repos.EventRepository.Register(ctx, event.ID, student.ID); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("second register: expected ErrDuplicate, got %v", err)
	}
	if err := repos.EventRepository.Unregister(ctx, event.ID, student.ID); err != nil {
		t.Fatalf("unregister: %v", err)
	}
	if err := repos.EventRepository.Unregister(ctx, event.ID, student.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second unregister: expected ErrNotFound, got %v", err)
	}
}
