package services

import (
	"context"
	"testing"

	"github.com/yigit/alumniconnect/internal/app/models"
	"github.com/yigit/alumniconnect/internal/app/models/dto"
	"github.com/yigit/alumniconnect/internal/app/repositories"
	"github.com/yigit/alumniconnect/internal/pkg/apperrors"
)

func TestAnonymousDonationHidesDonor(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	donor := e.seedUser("donor", models.RoleAlumni, true)
	admin := e.seedUser("admin", models.RoleAdmin, true)

	created, err := e.donations.Create(ctx, donor, &dto.CreateDonationRequest{Amount: 100, IsAnonymous: true})
	if err != nil {
		t.Fatal(err)
	}
	if created.DonorName != nil {
		t.Errorf("create response exposes donor %q", *created.DonorName)
	}
	if created.Currency != "USD" {
		t.Errorf("currency = %q, want default USD", created.Currency)
	}

	if _, err := e.donations.Create(ctx, donor, &dto.CreateDonationRequest{Amount: 20, Currency: "eur"}); err != nil {
		t.Fatal(err)
	}

	own, err := e.donations.List(ctx, donor)
	if err != nil {
		t.Fatal(err)
	}
	if len(own) != 2 {
		t.Fatalf("donor sees %d donations, want 2", len(own))
	}
	for _, d := range own {
		if d.IsAnonymous && d.DonorName != nil {
			t.Error("anonymous donation shows donor name to its donor")
		}
		if !d.IsAnonymous && (d.DonorName == nil || *d.DonorName != "donor") {
			t.Error("named donation lost its donor")
		}
		if !d.IsAnonymous && d.Currency != "EUR" {
			t.Errorf("currency = %q, want EUR", d.Currency)
		}
	}

	all, err := e.donations.List(ctx, admin)
	if err != nil {
		t.Fatal(err)
	}
	for _, d := range all {
		if d.IsAnonymous && d.DonorName != nil {
			t.Error("anonymous donation shows donor name to admin")
		}
	}
}

func TestDonationVisibilityAndStats(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	a := e.seedUser("a", models.RoleAlumni, true)
	b := e.seedUser("b", models.RoleStudent, true)
	admin := e.seedUser("admin", models.RoleAdmin, true)

	for _, amount := range []float64{10, 15.5} {
		if _, err := e.donations.Create(ctx, a, &dto.CreateDonationRequest{Amount: amount}); err != nil {
			t.Fatal(err)
		}
	}

	others, err := e.donations.List(ctx, b)
	if err != nil {
		t.Fatal(err)
	}
	if len(others) != 0 {
		t.Errorf("b sees %d donations of a", len(others))
	}

	_, err = e.donations.Stats(ctx, a)
	wantErr(t, err, apperrors.ErrPermissionDenied, "Admin only")

	stats, err := e.donations.Stats(ctx, admin)
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalDonations != 2 || stats.TotalAmount != 25.5 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestDonationAmountMustBePositive(t *testing.T) {
	e := newEnv()
	donor := e.seedUser("donor", models.RoleStudent, true)
	for _, amount := range []float64{0, -5, 0.004} {
		_, err := e.donations.Create(context.Background(), donor, &dto.CreateDonationRequest{Amount: amount})
		wantErr(t, err, apperrors.ErrValidationFailed, MsgAmountNotPositive)
	}
	if len(e.store.donations) != 0 {
		t.Errorf("%d donations stored", len(e.store.donations))
	}
}

func TestDonationAmountRange(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	donor := e.seedUser("donor", models.RoleAlumni, true)

	for _, amount := range []float64{1e12, 10000000000} {
		_, err := e.donations.Create(ctx, donor, &dto.CreateDonationRequest{Amount: amount})
		wantErr(t, err, apperrors.ErrValidationFailed, MsgAmountTooLarge)
	}

	tests := []struct {
		in, want float64
	}{
		{0.005, 0.01},
		{25.999, 26},
		{models.MaxDonationAmount, models.MaxDonationAmount},
	}
	for _, tt := range tests {
		resp, err := e.donations.Create(ctx, donor, &dto.CreateDonationRequest{Amount: tt.in})
		if err != nil {
			t.Fatalf("amount %v: %v", tt.in, err)
		}
		if resp.Amount != tt.want {
			t.Errorf("amount %v stored as %v, want %v", tt.in, resp.Amount, tt.want)
		}
	}
}

func TestDonationRejectedByStore(t *testing.T) {
	e := newEnv()
	donor := e.seedUser("donor", models.RoleAlumni, true)
	e.store.donationErr = repositories.ErrInvalidValue

	_, err := e.donations.Create(context.Background(), donor, &dto.CreateDonationRequest{Amount: 5})
	wantErr(t, err, apperrors.ErrValidationFailed, MsgInvalidDonation)
}
