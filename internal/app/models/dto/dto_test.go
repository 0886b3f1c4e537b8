package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/yigit/alumniconnect/internal/app/models"
)

func TestIDAcceptsNumberAndString(t *testing.T) {
	var req CreateApplicationRequest
	if err := json.Unmarshal([]byte(`{"job_id": 7}`), &req); err != nil || req.JobID != 7 {
		t.Fatalf("number: %v %d", err, req.JobID)
	}
	if err := json.Unmarshal([]byte(`{"job_id": "8"}`), &req); err != nil || req.JobID != 8 {
		t.Fatalf("string: %v %d", err, req.JobID)
	}
	if err := json.Unmarshal([]byte(`{"job_id": "x"}`), &req); err == nil {
		t.Fatal("expected error for non-numeric id")
	}
}

func TestDonationResponseRedaction(t *testing.T) {
	d := &models.Donation{ID: 1, UserID: 2, Amount: 10, Currency: "USD", IsAnonymous: true, DonorName: "Ada"}

	hidden := NewDonationResponse(d, false)
	if hidden.DonorName != nil {
		t.Errorf("donor name leaked: %v", *hidden.DonorName)
	}
	raw, _ := json.Marshal(hidden)
	var m map[string]any
	_ = json.Unmarshal(raw, &m)
	if m["donorName"] != nil {
		t.Errorf("donorName in JSON = %v", m["donorName"])
	}

	shown := NewDonationResponse(d, true)
	if shown.DonorName == nil || *shown.DonorName != "Ada" {
		t.Error("donor name should be shown")
	}
}

func TestConversationResponseCallerFirst(t *testing.T) {
	caller := &models.User{ID: 3, Name: "Sam", Role: models.RoleStudent}
	last := "hello"
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	resp := NewConversationResponse(caller, &models.ConversationSummary{
		ID: 9, OtherUserID: 5, OtherUserName: "Mia", OtherUserRole: models.RoleAlumni,
		LastMessage: &last, LastMessageTime: &at, UnreadCount: 2,
	})

	if resp.ID != "9" || resp.Participants[0] != "3" || resp.Participants[1] != "5" {
		t.Errorf("unexpected participants: %+v", resp)
	}
	if resp.ParticipantRoles[1] != "alumni" || resp.LastMessage != "hello" || resp.UnreadCount != 2 {
		t.Errorf("unexpected summary: %+v", resp)
	}
	if resp.LastMessageTime != "2025-01-02T03:04:05Z" {
		t.Errorf("time = %q", resp.LastMessageTime)
	}
}

func TestJobResponseDefaults(t *testing.T) {
	resp := NewJobResponse(&models.Job{ID: 1, PostedByID: 4, Status: models.JobStatusOpen})
	if resp.Requirements == nil {
		t.Error("requirements must render as an empty list")
	}
	if resp.PostedByID != "4" || resp.PostedDate != "" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestUpdateEventRequestToModel(t *testing.T) {
	date := "2025-06-01"
	status := "cancelled"
	u, err := UpdateEventRequest{EventDate: &date, Status: &status}.ToModel()
	if err != nil {
		t.Fatal(err)
	}
	cols := u.Columns()
	if len(cols) != 2 || cols["status"] != "cancelled" {
		t.Errorf("cols = %v", cols)
	}

	bad := "01/06/2025"
	if _, err := (UpdateEventRequest{EventDate: &bad}).ToModel(); err == nil {
		t.Error("expected date parse error")
	}
}

func TestHandleValidationError(t *testing.T) {
	v := validator.New()
	err := v.Struct(struct {
		Password string `validate:"required,min=8"`
	}{Password: "short"})

	detail := HandleValidationError(err)
	if detail.Code != ErrorCodeValidationFailed || detail.Field != "password" {
		t.Errorf("detail = %+v", detail)
	}
	if detail.Message != "password must be at least 8" {
		t.Errorf("message = %q", detail.Message)
	}
}

func TestHandleValidationErrorUsesJSONNames(t *testing.T) {
	v := validator.New()
	v.SetTagName("binding")
	v.RegisterTagNameFunc(JSONFieldName)

	detail := HandleValidationError(v.Struct(&CreateApplicationRequest{}))
	if detail.Field != "job_id" || detail.Message != "job_id is required" {
		t.Errorf("detail = %+v", detail)
	}
}

func TestHandleValidationErrorHidesDecoderText(t *testing.T) {
	var req CreateApplicationRequest
	err := json.Unmarshal([]byte(`{"job_id": {"x":1}}`), &req)
	if err == nil {
		t.Fatal("expected decode error")
	}

	detail := HandleValidationError(err)
	if detail.Message != MsgInvalidRequestFormat || detail.Details != nil {
		t.Errorf("detail = %+v", detail)
	}
}
