package coupon

import (
	"strings"
	"time"
)

// Coupon is a percentage discount code with an activity window and an
// optional usage cap. Codes are stored upper-case; lookups normalize first.
type Coupon struct {
	ID                 int        `json:"id"`
	Code               string     `json:"code"`
	DiscountPercentage float64    `json:"discountPercentage"`
	Active             bool       `json:"active"`
	ValidFrom          time.Time  `json:"validFrom"`
	ValidUntil         *time.Time `json:"validUntil,omitempty"`
	UsageLimit         *int       `json:"usageLimit,omitempty"`
	UsedCount          int        `json:"usedCount"`
	CreatedAt          string     `json:"createdAt,omitempty"`
	UpdatedAt          string     `json:"updatedAt,omitempty"`
}

// NormalizeCode is the canonical (upper-case, trimmed) form of a code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Rejection reasons, in the priority order Validate applies them.
const (
	ReasonLoginRequired     = "login_required"
	ReasonInvalidCode       = "invalid_code"
	ReasonNotYetActive      = "not_yet_active"
	ReasonExpired           = "expired"
	ReasonUsageLimitReached = "usage_limit_reached"
	ReasonLookupError       = "lookup_error"
)

// Validation is the outcome of validating a code: either Valid with the
// coupon's code and discount, or a reason string.
type Validation struct {
	Valid              bool    `json:"valid"`
	Code               string  `json:"code,omitempty"`
	DiscountPercentage float64 `json:"discountPercentage,omitempty"`
	Error              string  `json:"error,omitempty"`
}

func rejected(reason string) Validation {
	return Validation{Valid: false, Error: reason}
}
