package payment

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("payment not found")

// Repository reads payment rows. Writes happen inside the order checkout
// transaction, not through this interface.
type Repository interface {
	List() ([]Payment, error)
	GetByOrderID(orderID int) (Payment, error)
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu       sync.RWMutex
	payments []Payment
}

func NewInMemoryRepository(seed []Payment) *InMemoryRepository {
	r := &InMemoryRepository{payments: make([]Payment, 0, len(seed))}
	r.payments = append(r.payments, seed...)
	return r
}

func (r *InMemoryRepository) List() ([]Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Payment, len(r.payments))
	copy(out, r.payments)
	return out, nil
}

func (r *InMemoryRepository) GetByOrderID(orderID int) (Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.payments {
		if p.OrderID == orderID {
			return p, nil
		}
	}
	return Payment{}, ErrNotFound
}

// Append is for test setup.
func (r *InMemoryRepository) Append(p Payment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payments = append(r.payments, p)
}
