package services

import (
	"context"
	"testing"

	"github.com/yigit/alumniconnect/internal/app/models"
	"github.com/yigit/alumniconnect/internal/app/models/dto"
	"github.com/yigit/alumniconnect/internal/pkg/apperrors"
)

func TestEventCapacity(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	organizer := e.seedUser("organizer", models.RoleAlumni, true)
	a := e.seedUser("a", models.RoleStudent, true)
	b := e.seedUser("b", models.RoleStudent, true)

	capacity := 1
	event, err := e.events.Create(ctx, organizer, &dto.CreateEventRequest{
		Title:       "Alumni Meetup",
		EventDate:   "2025-06-01",
		MaxCapacity: &capacity,
	})
	if err != nil {
		t.Fatal(err)
	}
	if event.CreatedByID == nil || *event.CreatedByID != organizer.ID || event.Status != models.EventUpcoming {
		t.Fatalf("unexpected event %+v", event)
	}

	if err := e.events.Register(ctx, a, event.ID); err != nil {
		t.Fatal(err)
	}
	wantErr(t, e.events.Register(ctx, a, event.ID), apperrors.ErrValidationFailed, MsgEventFull)
	wantErr(t, e.events.Register(ctx, b, event.ID), apperrors.ErrValidationFailed, MsgEventFull)

	got, err := e.events.Get(ctx, event.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.RegisteredCount != 1 {
		t.Errorf("registered = %d, want 1", got.RegisteredCount)
	}

	if err := e.events.Unregister(ctx, a, event.ID); err != nil {
		t.Fatal(err)
	}
	wantErr(t, e.events.Unregister(ctx, a, event.ID), apperrors.ErrResourceNotFound, MsgRegistrationNotFound)
	if err := e.events.Register(ctx, b, event.ID); err != nil {
		t.Fatalf("seat freed by unregister: %v", err)
	}
}

func TestEventRegisterTwice(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	s := e.seedUser("s", models.RoleStudent, true)
	event, err := e.events.Create(ctx, s, &dto.CreateEventRequest{Title: "Open Day", EventDate: "2025-09-01"})
	if err != nil {
		t.Fatal(err)
	}
	if err := e.events.Register(ctx, s, event.ID); err != nil {
		t.Fatal(err)
	}
	wantErr(t, e.events.Register(ctx, s, event.ID), apperrors.ErrConflict, MsgAlreadyRegistered)
	wantErr(t, e.events.Register(ctx, s, 555), apperrors.ErrResourceNotFound, MsgEventNotFound)
}

func TestEventRegisterPendingAlumni(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	pending := e.seedUser("pending", models.RoleAlumni, false)
	admin := e.seedUser("admin", models.RoleAdmin, true)
	event, err := e.events.Create(ctx, admin, &dto.CreateEventRequest{Title: "Gala", EventDate: "2025-12-01"})
	if err != nil {
		t.Fatal(err)
	}
	wantErr(t, e.events.Register(ctx, pending, event.ID), apperrors.ErrPermissionDenied, "Alumni approval pending")
}

func TestEventAdminMutations(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	admin := e.seedUser("admin", models.RoleAdmin, true)
	alum := e.seedUser("alum", models.RoleAlumni, true)

	event, err := e.events.Create(ctx, alum, &dto.CreateEventRequest{Title: "Hack Night", EventDate: "2025-07-10"})
	if err != nil {
		t.Fatal(err)
	}

	cancelled := "cancelled"
	_, err = e.events.Update(ctx, alum, event.ID, &dto.UpdateEventRequest{Status: &cancelled})
	wantErr(t, err, apperrors.ErrPermissionDenied, "Admin only")

	badDate := "2025-13-40"
	_, err = e.events.Update(ctx, admin, event.ID, &dto.UpdateEventRequest{EventDate: &badDate})
	if err == nil {
		t.Fatal("expected invalid date to fail")
	}

	updated, err := e.events.Update(ctx, admin, event.ID, &dto.UpdateEventRequest{Status: &cancelled})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != models.EventCancelled {
		t.Errorf("status = %q", updated.Status)
	}

	wantErr(t, e.events.Delete(ctx, alum, event.ID), apperrors.ErrPermissionDenied, "Admin only")
	if err := e.events.Delete(ctx, admin, event.ID); err != nil {
		t.Fatal(err)
	}
	wantErr(t, e.events.Delete(ctx, admin, event.ID), apperrors.ErrResourceNotFound, MsgEventNotFound)
}
