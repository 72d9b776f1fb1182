package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pointraillabs/pointrail/internal/discount/domain"
	"github.com/pointraillabs/pointrail/internal/discount/repository"
	partnerdomain "github.com/pointraillabs/pointrail/internal/partner/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now(context.Context) time.Time { return f.now }

func newTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", name)
	handle, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, handle.AutoMigrate(
		&partnerdomain.Partner{},
		&domain.Discount{},
	))
	return handle
}

func seedPartner(t *testing.T, handle *gorm.DB, code string) {
	t.Helper()

	now := time.Now().UTC()
	require.NoError(t, handle.Create(&partnerdomain.Partner{
		Code:      code,
		Name:      code + " Partner",
		CreatedAt: now,
		UpdatedAt: now,
	}).Error)
}

func newService(t *testing.T, handle *gorm.DB, now time.Time) domain.Service {
	t.Helper()

	return New(Params{
		DB:    handle,
		Log:   zap.NewNop(),
		Clock: fixedClock{now: now},
		Repo:  repository.Provide(),
	})
}

func TestCreateDiscount_RunningDiscountBlocks(t *testing.T) {
	handle := newTestDB(t, "discount_running")
	seedPartner(t, handle, "ACME1")

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := newService(t, handle, now)

	_, err := svc.Create(context.Background(), domain.CreateRequest{
		Code:        "SPRING26",
		PartnerCode: "ACME1",
		Name:        "Spring promo",
		Amount:      10,
		Type:        "percentage",
		StartDate:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	// Even a disjoint window is rejected while another discount is running
	// today; the gate is "running now", not window overlap.
	_, err = svc.Create(context.Background(), domain.CreateRequest{
		Code:        "SUMMER26",
		PartnerCode: "ACME1",
		Name:        "Summer promo",
		Amount:      5000,
		StartDate:   time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyRunning)
}

func TestCreateDiscount_DormantWindowsDoNotBlock(t *testing.T) {
	handle := newTestDB(t, "discount_dormant")
	seedPartner(t, handle, "ACME1")

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := newService(t, handle, now)

	// A future window is on file but not running today.
	_, err := svc.Create(context.Background(), domain.CreateRequest{
		Code:        "SUMMER26",
		PartnerCode: "ACME1",
		Name:        "Summer promo",
		Amount:      5000,
		StartDate:   time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), domain.CreateRequest{
		Code:        "AUTUMN26",
		PartnerCode: "ACME1",
		Name:        "Autumn promo",
		Amount:      5000,
		StartDate:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.NoError(t, err, "two dormant windows may coexist")
}

func TestCreateDiscount_InactiveRowDoesNotBlock(t *testing.T) {
	handle := newTestDB(t, "discount_inactive")
	seedPartner(t, handle, "ACME1")

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := newService(t, handle, now)

	_, err := svc.Create(context.Background(), domain.CreateRequest{
		Code:        "SPRING26",
		PartnerCode: "ACME1",
		Name:        "Spring promo",
		Amount:      10,
		StartDate:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	_, err = svc.Delete(context.Background(), "SPRING26")
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), domain.CreateRequest{
		Code:        "SPRINGV2",
		PartnerCode: "ACME1",
		Name:        "Spring promo v2",
		Amount:      15,
		StartDate:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.NoError(t, err, "a soft-deleted discount releases the day")
}

func TestCreateDiscount_InvertedWindowAccepted(t *testing.T) {
	handle := newTestDB(t, "discount_inverted")
	seedPartner(t, handle, "ACME1")

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := newService(t, handle, now)

	// The window bounds are not cross-checked; an inverted window is
	// stored as-is and can never match a running-today probe.
	resp, err := svc.Create(context.Background(), domain.CreateRequest{
		Code:        "WEIRD1",
		PartnerCode: "ACME1",
		Name:        "Inverted window",
		Amount:      10,
		StartDate:   time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.True(t, resp.StartDate.After(resp.EndDate))
}

func TestCreateDiscount_DuplicateCode(t *testing.T) {
	handle := newTestDB(t, "discount_duplicate")
	seedPartner(t, handle, "ACME1")
	seedPartner(t, handle, "BOLT2")

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := newService(t, handle, now)

	req := domain.CreateRequest{
		Code:        "SUMMER26",
		PartnerCode: "ACME1",
		Name:        "Summer promo",
		Amount:      5000,
		StartDate:   time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
	}
	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	// The code is globally unique, even across partners.
	req.PartnerCode = "BOLT2"
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrCodeExists)
}

func TestCreateDiscount_UnknownPartner(t *testing.T) {
	handle := newTestDB(t, "discount_fk")

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := newService(t, handle, now)

	_, err := svc.Create(context.Background(), domain.CreateRequest{
		Code:        "GHOSTLY",
		PartnerCode: "GHOST",
		Name:        "No partner",
		Amount:      10,
		StartDate:   time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, domain.ErrPartnerNotFound)
}

func TestCreateDiscount_Validation(t *testing.T) {
	handle := newTestDB(t, "discount_validation")

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := newService(t, handle, now)

	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		req     domain.CreateRequest
		wantErr error
	}{
		{
			name:    "empty code",
			req:     domain.CreateRequest{PartnerCode: "ACME1", Name: "x", Amount: 1, StartDate: start, EndDate: end},
			wantErr: domain.ErrInvalidCode,
		},
		{
			name:    "code too long",
			req:     domain.CreateRequest{Code: "ELEVENCHARS", PartnerCode: "ACME1", Name: "x", Amount: 1, StartDate: start, EndDate: end},
			wantErr: domain.ErrInvalidCode,
		},
		{
			name:    "empty partner code",
			req:     domain.CreateRequest{Code: "OK1", Name: "x", Amount: 1, StartDate: start, EndDate: end},
			wantErr: domain.ErrInvalidPartnerCode,
		},
		{
			name:    "empty name",
			req:     domain.CreateRequest{Code: "OK1", PartnerCode: "ACME1", Amount: 1, StartDate: start, EndDate: end},
			wantErr: domain.ErrInvalidName,
		},
		{
			name:    "negative amount",
			req:     domain.CreateRequest{Code: "OK1", PartnerCode: "ACME1", Name: "x", Amount: -1, StartDate: start, EndDate: end},
			wantErr: domain.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDeleteDiscount_OneShot(t *testing.T) {
	handle := newTestDB(t, "discount_delete")
	seedPartner(t, handle, "ACME1")

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := newService(t, handle, now)

	_, err := svc.Create(context.Background(), domain.CreateRequest{
		Code:        "SPRING26",
		PartnerCode: "ACME1",
		Name:        "Spring promo",
		Amount:      10,
		StartDate:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	deleted, err := svc.Delete(context.Background(), "spring26")
	require.NoError(t, err)
	assert.False(t, deleted.IsActive)
	require.NotNil(t, deleted.DeactivatedAt)

	_, err = svc.Delete(context.Background(), "SPRING26")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateDiscount_FinalDayStillBlocks(t *testing.T) {
	handle := newTestDB(t, "discount_final_day")
	seedPartner(t, handle, "ACME1")

	// Midday on the existing discount's end date: the window is inclusive
	// of its final day, so it must still block.
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := newService(t, handle, now)

	_, err := svc.Create(context.Background(), domain.CreateRequest{
		Code:        "SPRING26",
		PartnerCode: "ACME1",
		Name:        "Spring promo",
		Amount:      10,
		StartDate:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), domain.CreateRequest{
		Code:        "SPRINGV2",
		PartnerCode: "ACME1",
		Name:        "Spring promo v2",
		Amount:      15,
		StartDate:   time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyRunning)

	// The day after the end date the window has lapsed.
	svc = newService(t, handle, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC))
	_, err = svc.Create(context.Background(), domain.CreateRequest{
		Code:        "SPRINGV2",
		PartnerCode: "ACME1",
		Name:        "Spring promo v2",
		Amount:      15,
		StartDate:   time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.NoError(t, err)
}

func TestCreateDiscount_UnknownTypeRejected(t *testing.T) {
	handle := newTestDB(t, "discount_bad_type")
	seedPartner(t, handle, "ACME1")

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := newService(t, handle, now)

	_, err := svc.Create(context.Background(), domain.CreateRequest{
		Code:        "BADTYPE",
		PartnerCode: "ACME1",
		Name:        "Mystery promo",
		Amount:      10,
		Type:        "bogof",
		StartDate:   time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidType)

	_, err = svc.Create(context.Background(), domain.CreateRequest{
		Code:        "PCT1",
		PartnerCode: "ACME1",
		Name:        "Percent promo",
		Amount:      10,
		Type:        "Percentage",
		StartDate:   time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.NoError(t, err, "type matching is case-insensitive")
}

func TestCreateDiscount_TypeDefaultsToFixed(t *testing.T) {
	handle := newTestDB(t, "discount_type_default")
	seedPartner(t, handle, "ACME1")

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := newService(t, handle, now)

	resp, err := svc.Create(context.Background(), domain.CreateRequest{
		Code:        "NOTYPE",
		PartnerCode: "ACME1",
		Name:        "Default type",
		Amount:      250,
		StartDate:   time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "fixed", resp.Type)
}
