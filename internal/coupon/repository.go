package coupon

import (
	"errors"
	"sync"
)

var (
	ErrNotFound        = errors.New("coupon not found")
	ErrCodeExists      = errors.New("coupon code already exists")
	ErrExhausted       = errors.New("coupon usage limit reached")
	ErrInvalidDiscount = errors.New("discount percentage must be between 0 and 100")
)

type Repository interface {
	List() ([]Coupon, error)
	// GetActiveByCode only returns coupons with active = true; inactive
	// codes are indistinguishable from missing ones by design.
	GetActiveByCode(code string) (Coupon, error)
	Create(c Coupon) (Coupon, error)
	Update(id int, c Coupon) (Coupon, error)
	Delete(id int) error
	// Redeem atomically increments used_count, refusing once the usage
	// limit is reached. Returns ErrExhausted when no row qualifies.
	Redeem(code string) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu      sync.RWMutex
	coupons []Coupon
	nextID  int
}

func NewInMemoryRepository(seed []Coupon) *InMemoryRepository {
	r := &InMemoryRepository{coupons: make([]Coupon, 0, len(seed)), nextID: 1}
	maxID := 0
	for _, c := range seed {
		c.Code = NormalizeCode(c.Code)
		r.coupons = append(r.coupons, c)
		if c.ID > maxID {
			maxID = c.ID
		}
	}
	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) List() ([]Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Coupon, len(r.coupons))
	copy(out, r.coupons)
	return out, nil
}

func (r *InMemoryRepository) GetActiveByCode(code string) (Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	normalized := NormalizeCode(code)
	for _, c := range r.coupons {
		if c.Code == normalized && c.Active {
			return c, nil
		}
	}
	return Coupon{}, ErrNotFound
}

func (r *InMemoryRepository) Create(c Coupon) (Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c.Code = NormalizeCode(c.Code)
	for _, existing := range r.coupons {
		if existing.Code == c.Code {
			return Coupon{}, ErrCodeExists
		}
	}
	if c.ID == 0 {
		c.ID = r.nextID
		r.nextID++
	}
	r.coupons = append(r.coupons, c)
	return c, nil
}

func (r *InMemoryRepository) Update(id int, update Coupon) (Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, c := range r.coupons {
		if c.ID == id {
			update.ID = id
			update.Code = NormalizeCode(update.Code)
			r.coupons[i] = update
			return update, nil
		}
	}
	return Coupon{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, c := range r.coupons {
		if c.ID == id {
			r.coupons = append(r.coupons[:i], r.coupons[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) Redeem(code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	normalized := NormalizeCode(code)
	for i, c := range r.coupons {
		if c.Code != normalized || !c.Active {
			continue
		}
		if c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit {
			return ErrExhausted
		}
		r.coupons[i].UsedCount++
		return nil
	}
	return ErrExhausted
}
