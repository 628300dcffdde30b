package coupon

import "time"

// Service validates and administers coupons.
type Service struct {
	repo Repository
}

// ServiceInterface is the subset the checkout path depends on.
type ServiceInterface interface {
	Validate(code string, now time.Time, userID int) Validation
	Redeem(code string) error
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Validate is a total function over (code, now, userID). Exactly one outcome
// holds, decided in priority order: an unauthenticated caller is rejected
// before any lookup; an inactive or unknown code reads as invalid_code
// (inactive coupons never come back from the filtered query); then the
// validity window, then the usage cap.
func (s *Service) Validate(code string, now time.Time, userID int) Validation {
	if userID <= 0 {
		return rejected(ReasonLoginRequired)
	}

	c, err := s.repo.GetActiveByCode(code)
	if err != nil {
		if err == ErrNotFound {
			return rejected(ReasonInvalidCode)
		}
		return rejected(ReasonLookupError)
	}

	if now.Before(c.ValidFrom) {
		return rejected(ReasonNotYetActive)
	}
	if c.ValidUntil != nil && now.After(*c.ValidUntil) {
		return rejected(ReasonExpired)
	}
	if c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit {
		return rejected(ReasonUsageLimitReached)
	}

	return Validation{Valid: true, Code: c.Code, DiscountPercentage: c.DiscountPercentage}
}

// Redeem burns one use. The repository increments conditionally, so a
// concurrent redemption past the cap comes back as ErrExhausted instead of
// an over-count.
func (s *Service) Redeem(code string) error {
	return s.repo.Redeem(code)
}

func (s *Service) List() ([]Coupon, error) {
	return s.repo.List()
}

func (s *Service) Create(c Coupon) (Coupon, error) {
	if c.DiscountPercentage < 0 || c.DiscountPercentage > 100 {
		return Coupon{}, ErrInvalidDiscount
	}
	return s.repo.Create(c)
}

func (s *Service) Update(id int, c Coupon) (Coupon, error) {
	if c.DiscountPercentage < 0 || c.DiscountPercentage > 100 {
		return Coupon{}, ErrInvalidDiscount
	}
	return s.repo.Update(id, c)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}
