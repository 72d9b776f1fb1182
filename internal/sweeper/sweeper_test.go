package sweeper

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/pointraillabs/pointrail/internal/config"
	discountdomain "github.com/pointraillabs/pointrail/internal/discount/domain"
	discountrepo "github.com/pointraillabs/pointrail/internal/discount/repository"
	partnerdomain "github.com/pointraillabs/pointrail/internal/partner/domain"
	programdomain "github.com/pointraillabs/pointrail/internal/program/domain"
	programrepo "github.com/pointraillabs/pointrail/internal/program/repository"
	redisclient "github.com/redis/go-redis/v9"
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

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	handle, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, handle.AutoMigrate(
		&partnerdomain.Partner{},
		&programdomain.Program{},
		&discountdomain.Discount{},
	))
	return handle
}

func newSweeper(t *testing.T, handle *gorm.DB, now time.Time, rdb *redisclient.Client) *Sweeper {
	t.Helper()

	return New(Params{
		DB:           handle,
		Log:          zap.NewNop(),
		Clock:        fixedClock{now: now},
		Redis:        rdb,
		ProgramRepo:  programrepo.Provide(),
		DiscountRepo: discountrepo.Provide(),
		Config:       config.Config{},
	})
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

func TestRunOnce_ExpiresElapsedWindows(t *testing.T) {
	handle := newTestDB(t, "sweep_expires")
	seedPartner(t, handle, "ACME1")

	now := time.Date(2026, 3, 10, 3, 0, 0, 0, time.UTC)

	elapsed := &programdomain.Program{
		ID:           1,
		PartnerCode:  "ACME1",
		ExchangeRate: 100,
		IsActive:     true,
		StartDate:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	current := &programdomain.Program{
		ID:           2,
		PartnerCode:  "ACME1",
		ExchangeRate: 100,
		IsActive:     true,
		StartDate:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, handle.Create(elapsed).Error)
	require.NoError(t, handle.Create(current).Error)

	staleDiscount := &discountdomain.Discount{
		Code:        "WINTER26",
		PartnerCode: "ACME1",
		Name:        "Winter promo",
		Amount:      10,
		Type:        "percentage",
		IsActive:    true,
		StartDate:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, handle.Create(staleDiscount).Error)

	s := newSweeper(t, handle, now, nil)
	require.NoError(t, s.RunOnce(context.Background()))

	var swept programdomain.Program
	require.NoError(t, handle.First(&swept, "id = ?", elapsed.ID).Error)
	assert.False(t, swept.IsActive)
	assert.Nil(t, swept.DeactivatedAt, "the sweep expires by date, it never supersedes")

	var untouched programdomain.Program
	require.NoError(t, handle.First(&untouched, "id = ?", current.ID).Error)
	assert.True(t, untouched.IsActive)

	var sweptDiscount discountdomain.Discount
	require.NoError(t, handle.First(&sweptDiscount, "code = ?", staleDiscount.Code).Error)
	assert.False(t, sweptDiscount.IsActive)
}

func TestRunOnce_KeepsDiscountOnFinalDay(t *testing.T) {
	handle := newTestDB(t, "sweep_final_day")
	seedPartner(t, handle, "ACME1")

	now := time.Date(2026, 3, 10, 3, 0, 0, 0, time.UTC)

	// Ends today: inclusive of its final day, so the sweep must leave it alone.
	endingToday := &discountdomain.Discount{
		Code:        "SPRING26",
		PartnerCode: "ACME1",
		Name:        "Spring promo",
		Amount:      10,
		Type:        "fixed",
		IsActive:    true,
		StartDate:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	endedYesterday := &discountdomain.Discount{
		Code:        "MARCH9",
		PartnerCode: "ACME1",
		Name:        "Early March promo",
		Amount:      5,
		Type:        "fixed",
		IsActive:    true,
		StartDate:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, handle.Create(endingToday).Error)
	require.NoError(t, handle.Create(endedYesterday).Error)

	s := newSweeper(t, handle, now, nil)
	require.NoError(t, s.RunOnce(context.Background()))

	var kept discountdomain.Discount
	require.NoError(t, handle.First(&kept, "code = ?", endingToday.Code).Error)
	assert.True(t, kept.IsActive, "a discount stays active through its end date")

	var swept discountdomain.Discount
	require.NoError(t, handle.First(&swept, "code = ?", endedYesterday.Code).Error)
	assert.False(t, swept.IsActive)
}

func TestRunOnce_Idempotent(t *testing.T) {
	handle := newTestDB(t, "sweep_idempotent")
	seedPartner(t, handle, "ACME1")

	now := time.Date(2026, 3, 10, 3, 0, 0, 0, time.UTC)
	require.NoError(t, handle.Create(&programdomain.Program{
		ID:           1,
		PartnerCode:  "ACME1",
		ExchangeRate: 100,
		IsActive:     true,
		StartDate:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt:    now,
		UpdatedAt:    now,
	}).Error)

	s := newSweeper(t, handle, now, nil)
	require.NoError(t, s.RunOnce(context.Background()))
	require.NoError(t, s.RunOnce(context.Background()))

	var count int64
	require.NoError(t, handle.Model(&programdomain.Program{}).
		Where("is_active = ?", false).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRunOnce_SkipsWhenLockHeld(t *testing.T) {
	handle := newTestDB(t, "sweep_lock")
	seedPartner(t, handle, "ACME1")

	mr := miniredis.RunT(t)
	rdb := redisclient.NewClient(&redisclient.Options{Addr: mr.Addr()})

	now := time.Date(2026, 3, 10, 3, 0, 0, 0, time.UTC)
	require.NoError(t, handle.Create(&programdomain.Program{
		ID:           1,
		PartnerCode:  "ACME1",
		ExchangeRate: 100,
		IsActive:     true,
		StartDate:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt:    now,
		UpdatedAt:    now,
	}).Error)

	// Another instance holds the lock.
	require.NoError(t, mr.Set(lockKey, "1"))

	s := newSweeper(t, handle, now, rdb)
	require.NoError(t, s.RunOnce(context.Background()))

	var p programdomain.Program
	require.NoError(t, handle.First(&p, "id = ?", int64(1)).Error)
	assert.True(t, p.IsActive, "a held lock skips the sweep entirely")

	// Once the lock clears the sweep proceeds and releases its own lock.
	mr.Del(lockKey)
	require.NoError(t, s.RunOnce(context.Background()))

	require.NoError(t, handle.First(&p, "id = ?", int64(1)).Error)
	assert.False(t, p.IsActive)
	assert.False(t, mr.Exists(lockKey), "the sweep lock is released after the run")
}
