package coupon

import (
	"errors"
	"testing"
	"time"
)

func intPtr(v int) *int { return &v }
func timePtr(v time.Time) *time.Time { return &v }

func seedCoupon(t *testing.T, repo *InMemoryRepository, c Coupon) Coupon {
	t.Helper()
	created, err := repo.Create(c)
	if err != nil {
		t.Fatalf("seed coupon %s: %v", c.Code, err)
	}
	return created
}

func TestValidateRequiresLoginBeforeLookup(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))

	// no coupon with this code exists; login_required must still win
	v := svc.Validate("NOPE", time.Now(), 0)
	if v.Valid || v.Error != ReasonLoginRequired {
		t.Fatalf("got %+v, want login_required", v)
	}
}

func TestValidateUnknownCode(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))

	v := svc.Validate("NOPE", time.Now(), 42)
	if v.Valid || v.Error != ReasonInvalidCode {
		t.Fatalf("got %+v, want invalid_code", v)
	}
}

func TestValidateInactiveCodeReadsAsInvalid(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	seedCoupon(t, repo, Coupon{Code: "PAUSED", DiscountPercentage: 10, Active: false, ValidFrom: time.Now().Add(-time.Hour)})
	svc := NewService(repo)

	v := svc.Validate("PAUSED", time.Now(), 42)
	if v.Valid || v.Error != ReasonInvalidCode {
		t.Fatalf("got %+v, want invalid_code for inactive coupon", v)
	}
}

func TestValidateWindow(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	repo := NewInMemoryRepository(nil)
	seedCoupon(t, repo, Coupon{
		Code: "SOON", DiscountPercentage: 10, Active: true,
		ValidFrom: now.Add(24 * time.Hour),
	})
	seedCoupon(t, repo, Coupon{
		Code: "GONE", DiscountPercentage: 10, Active: true,
		ValidFrom:  now.Add(-48 * time.Hour),
		ValidUntil: timePtr(now.Add(-time.Hour)),
	})
	svc := NewService(repo)

	if v := svc.Validate("SOON", now, 42); v.Error != ReasonNotYetActive {
		t.Fatalf("SOON: got %+v, want not_yet_active", v)
	}
	if v := svc.Validate("GONE", now, 42); v.Error != ReasonExpired {
		t.Fatalf("GONE: got %+v, want expired", v)
	}
}

func TestValidateUsageLimitReached(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	seedCoupon(t, repo, Coupon{
		Code: "BB202510", DiscountPercentage: 10, Active: true,
		ValidFrom:  time.Now().Add(-time.Hour),
		UsageLimit: intPtr(100),
		UsedCount:  100,
	})
	svc := NewService(repo)

	v := svc.Validate("BB202510", time.Now(), 42)
	if v.Valid || v.Error != ReasonUsageLimitReached {
		t.Fatalf("got %+v, want usage_limit_reached", v)
	}
}

func TestValidateHappyPathNormalizesCode(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	seedCoupon(t, repo, Coupon{
		Code: "BB202510", DiscountPercentage: 10, Active: true,
		ValidFrom:  time.Now().Add(-time.Hour),
		UsageLimit: intPtr(100),
		UsedCount:  99,
	})
	svc := NewService(repo)

	v := svc.Validate("  bb202510 ", time.Now(), 42)
	if !v.Valid {
		t.Fatalf("got %+v, want valid", v)
	}
	if v.Code != "BB202510" || v.DiscountPercentage != 10 {
		t.Fatalf("got code=%s discount=%v", v.Code, v.DiscountPercentage)
	}
}

func TestRedeemStopsAtLimit(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	seedCoupon(t, repo, Coupon{
		Code: "ONCE", DiscountPercentage: 5, Active: true,
		ValidFrom:  time.Now().Add(-time.Hour),
		UsageLimit: intPtr(1),
	})
	svc := NewService(repo)

	if err := svc.Redeem("ONCE"); err != nil {
		t.Fatalf("first redeem: %v", err)
	}
	if err := svc.Redeem("ONCE"); !errors.Is(err, ErrExhausted) {
		t.Fatalf("second redeem: err = %v, want ErrExhausted", err)
	}
}

func TestCreateRejectsOutOfRangeDiscount(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))

	if _, err := svc.Create(Coupon{Code: "X", DiscountPercentage: 101, Active: true}); !errors.Is(err, ErrInvalidDiscount) {
		t.Fatalf("err = %v, want ErrInvalidDiscount", err)
	}
	if _, err := svc.Create(Coupon{Code: "X", DiscountPercentage: -1, Active: true}); !errors.Is(err, ErrInvalidDiscount) {
		t.Fatalf("err = %v, want ErrInvalidDiscount", err)
	}
}
