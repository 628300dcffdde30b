package pricing

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCompute_CouponLiftsOrderOverFreeShipping(t *testing.T) {
	// 2500 with a 10% coupon discounts to 2250, which clears the 2000
	// threshold, so shipping is free and the total is the discounted amount.
	got := Compute(2500, 10, DefaultConfig())

	if !almostEqual(got.DiscountAmount, 250) {
		t.Fatalf("expected discount 250, got %v", got.DiscountAmount)
	}
	if got.ShippingCost != 0 {
		t.Fatalf("expected free shipping, got %v", got.ShippingCost)
	}
	if !almostEqual(got.Total, 2250) {
		t.Fatalf("expected total 2250, got %v", got.Total)
	}
}

func TestCompute_BelowThresholdPaysShipping(t *testing.T) {
	got := Compute(1800, 0, DefaultConfig())

	if got.DiscountAmount != 0 {
		t.Fatalf("expected no discount, got %v", got.DiscountAmount)
	}
	if got.ShippingCost != 150 {
		t.Fatalf("expected shipping 150, got %v", got.ShippingCost)
	}
	if !almostEqual(got.Total, 1950) {
		t.Fatalf("expected total 1950, got %v", got.Total)
	}
}

func TestCompute_DiscountCanDropOrderBelowThreshold(t *testing.T) {
	// raw subtotal clears the threshold but the discounted subtotal does
	// not; the threshold check must see the discounted value
	got := Compute(2100, 10, DefaultConfig())

	if !almostEqual(got.DiscountAmount, 210) {
		t.Fatalf("expected discount 210, got %v", got.DiscountAmount)
	}
	if got.ShippingCost != 150 {
		t.Fatalf("expected shipping 150 on discounted subtotal 1890, got %v", got.ShippingCost)
	}
	if !almostEqual(got.Total, 2040) {
		t.Fatalf("expected total 2040, got %v", got.Total)
	}
}

func TestCompute_ThresholdIsStrictlyGreater(t *testing.T) {
	// exactly at the threshold still pays shipping
	got := Compute(2000, 0, DefaultConfig())
	if got.ShippingCost != 150 {
		t.Fatalf("expected shipping at exactly 2000, got %v", got.ShippingCost)
	}
}

func TestCompute_GSTRateApplied(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GSTRate = 0.18

	got := Compute(1000, 0, cfg)
	if !almostEqual(got.GSTAmount, 180) {
		t.Fatalf("expected gst 180, got %v", got.GSTAmount)
	}
	if !almostEqual(got.Total, 1000+150+180) {
		t.Fatalf("expected total 1330, got %v", got.Total)
	}
}

func TestCompute_GSTDefaultsToZero(t *testing.T) {
	got := Compute(999, 5, DefaultConfig())
	if got.GSTAmount != 0 {
		t.Fatalf("expected zero gst by default, got %v", got.GSTAmount)
	}
}

func TestCompute_Idempotent(t *testing.T) {
	a := Compute(1234.56, 15, DefaultConfig())
	b := Compute(1234.56, 15, DefaultConfig())
	if a != b {
		t.Fatalf("expected identical results, got %+v and %+v", a, b)
	}
}

func TestCompute_ClampsBadInputs(t *testing.T) {
	if got := Compute(-10, 0, DefaultConfig()); got.Subtotal != 0 {
		t.Fatalf("expected negative subtotal clamped, got %+v", got)
	}
	if got := Compute(100, 150, DefaultConfig()); !almostEqual(got.DiscountAmount, 100) {
		t.Fatalf("expected discount clamped to 100%%, got %+v", got)
	}
	if got := Compute(100, -5, DefaultConfig()); got.DiscountAmount != 0 {
		t.Fatalf("expected negative discount clamped, got %+v", got)
	}
}
