package services

import (
	"context"
	"testing"

	"github.com/yigit/alumniconnect/internal/app/auth"
	"github.com/yigit/alumniconnect/internal/app/models"
	"github.com/yigit/alumniconnect/internal/app/models/dto"
	"github.com/yigit/alumniconnect/internal/pkg/apperrors"
	"github.com/yigit/alumniconnect/internal/pkg/events"
)

type applicationFixture struct {
	e       *env
	owner   auth.Caller
	other   auth.Caller
	student auth.Caller
	job     *models.Job
}

func newApplicationFixture(t *testing.T) applicationFixture {
	t.Helper()
	e := newEnv()
	f := applicationFixture{
		e:       e,
		owner:   e.seedUser("owner", models.RoleAlumni, true),
		other:   e.seedUser("other", models.RoleAlumni, true),
		student: e.seedUser("student", models.RoleStudent, true),
	}
	job, err := e.jobs.Create(context.Background(), f.owner, &dto.CreateJobRequest{Title: "Data Engineer", Company: "Initech"})
	if err != nil {
		t.Fatal(err)
	}
	f.job = job
	return f
}

func TestApplyOnceThenConflict(t *testing.T) {
	f := newApplicationFixture(t)
	ctx := context.Background()
	req := &dto.CreateApplicationRequest{JobID: dto.ID(f.job.ID), CoverLetter: strPtr("Hello")}

	app, err := f.e.apps.Create(ctx, f.student, req)
	if err != nil {
		t.Fatal(err)
	}
	if app.Status != models.ApplicationPending {
		t.Errorf("status = %q, want pending", app.Status)
	}
	if app.JobTitle != "Data Engineer" || app.Company != "Initech" || app.StudentName != "student" {
		t.Errorf("denormalized fields missing: %+v", app)
	}

	_, err = f.e.apps.Create(ctx, f.student, req)
	wantErr(t, err, apperrors.ErrConflict, MsgAlreadyApplied)

	job, err := f.e.jobs.Get(ctx, f.job.ID)
	if err != nil {
		t.Fatal(err)
	}
	if job.Applicants != 1 {
		t.Errorf("applicants = %d, want 1", job.Applicants)
	}
}

func TestApplyRules(t *testing.T) {
	f := newApplicationFixture(t)
	ctx := context.Background()

	_, err := f.e.apps.Create(ctx, f.other, &dto.CreateApplicationRequest{JobID: dto.ID(f.job.ID)})
	wantErr(t, err, apperrors.ErrPermissionDenied, "Only students can apply")

	_, err = f.e.apps.Create(ctx, f.student, &dto.CreateApplicationRequest{JobID: 4242})
	wantErr(t, err, apperrors.ErrResourceNotFound, MsgJobNotFound)
}

func TestListApplicationsVisibility(t *testing.T) {
	f := newApplicationFixture(t)
	ctx := context.Background()
	if _, err := f.e.apps.Create(ctx, f.student, &dto.CreateApplicationRequest{JobID: dto.ID(f.job.ID)}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		caller auth.Caller
		want   int
	}{
		{"student sees own", f.student, 1},
		{"job owner sees applicants", f.owner, 1},
		{"unrelated alumni sees none", f.other, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apps, err := f.e.apps.List(ctx, tt.caller, 0)
			if err != nil {
				t.Fatal(err)
			}
			if len(apps) != tt.want {
				t.Errorf("got %d applications, want %d", len(apps), tt.want)
			}
		})
	}

	_, err := f.e.apps.List(ctx, f.other, f.job.ID)
	wantErr(t, err, apperrors.ErrPermissionDenied, "Not your job")

	_, err = f.e.apps.List(ctx, f.other, 777)
	wantErr(t, err, apperrors.ErrResourceNotFound, MsgJobNotFound)

	apps, err := f.e.apps.List(ctx, f.owner, f.job.ID)
	if err != nil || len(apps) != 1 {
		t.Fatalf("owner by job: %v %v", apps, err)
	}
}

func TestUpdateApplicationStatus(t *testing.T) {
	f := newApplicationFixture(t)
	ctx := context.Background()
	app, err := f.e.apps.Create(ctx, f.student, &dto.CreateApplicationRequest{JobID: dto.ID(f.job.ID)})
	if err != nil {
		t.Fatal(err)
	}

	_, err = f.e.apps.UpdateStatus(ctx, f.other, app.ID, "accepted")
	wantErr(t, err, apperrors.ErrPermissionDenied, "Not authorized")

	_, err = f.e.apps.UpdateStatus(ctx, f.owner, app.ID, "hired")
	wantErr(t, err, apperrors.ErrValidationFailed, MsgInvalidStatus)

	_, err = f.e.apps.UpdateStatus(ctx, f.owner, 999, "accepted")
	wantErr(t, err, apperrors.ErrResourceNotFound, MsgApplicationNotFound)

	updated, err := f.e.apps.UpdateStatus(ctx, f.owner, app.ID, "accepted")
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != models.ApplicationAccepted {
		t.Errorf("status = %q", updated.Status)
	}
	if got := f.e.publisher.types(); len(got) != 1 || got[0] != events.TypeApplicationStatusChanged {
		t.Errorf("published = %v", got)
	}
}
