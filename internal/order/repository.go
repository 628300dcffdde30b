package order

import (
	"errors"
	"sync"

	"github.com/brushandbeyond/gallery-backend/internal/payment"
)

var (
	ErrNotFound          = errors.New("order not found")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// CouponRejectedError carries the validator's reason to the caller.
type CouponRejectedError struct {
	Reason string
}

func (e *CouponRejectedError) Error() string {
	return "coupon rejected: " + e.Reason
}

// Repository persists orders. Create writes the order, its payment row, the
// guarded stock decrements and (when redeemCoupon is set) the coupon
// redemption as one atomic unit: either all of it lands or none of it does,
// so a payment-orphaned order cannot exist.
type Repository interface {
	Create(ord Order, pay payment.Payment, redeemCoupon bool) (Order, payment.Payment, error)
	ListByUser(userID int) ([]Order, error)
	ListAll() ([]Order, error)
	GetByID(id int) (Order, error)
	UpdateStatus(id int, status, updatedAt string) (Order, error)
	Delete(id int) error
}

// StockDecrementer lets the in-memory repository mirror the transactional
// stock guard the postgres implementation gets from SQL.
type StockDecrementer interface {
	DecrementStock(artworkID, qty int) error
}

// CouponRedeemer mirrors the conditional used_count increment the postgres
// implementation runs inside the checkout transaction.
type CouponRedeemer interface {
	Redeem(code string) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu       sync.RWMutex
	orders   []Order
	payments []payment.Payment
	nextID   int
	stock    StockDecrementer
	coupons  CouponRedeemer
}

func NewInMemoryRepository(stock StockDecrementer, coupons CouponRedeemer) *InMemoryRepository {
	return &InMemoryRepository{nextID: 1, stock: stock, coupons: coupons}
}

func (r *InMemoryRepository) Create(ord Order, pay payment.Payment, redeemCoupon bool) (Order, payment.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stock != nil {
		for _, it := range ord.Items {
			if err := r.stock.DecrementStock(it.ArtworkID, it.Quantity); err != nil {
				return Order{}, payment.Payment{}, ErrInsufficientStock
			}
		}
	}

	if redeemCoupon && r.coupons != nil {
		if err := r.coupons.Redeem(ord.CouponCode); err != nil {
			// undo the decrements so a refused coupon leaves stock intact,
			// like the transaction rollback does in postgres
			if r.stock != nil {
				for _, it := range ord.Items {
					r.stock.DecrementStock(it.ArtworkID, -it.Quantity)
				}
			}
			return Order{}, payment.Payment{}, err
		}
	}

	ord.ID = r.nextID
	r.nextID++
	pay.OrderID = ord.ID
	pay.ID = ord.ID
	r.orders = append(r.orders, ord)
	r.payments = append(r.payments, pay)
	return ord, pay, nil
}

func (r *InMemoryRepository) ListByUser(userID int) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Order, 0)
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) ListAll() ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Order, len(r.orders))
	copy(out, r.orders)
	return out, nil
}

func (r *InMemoryRepository) GetByID(id int) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) UpdateStatus(id int, status, updatedAt string) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, o := range r.orders {
		if o.ID == id {
			o.Status = status
			o.UpdatedAt = updatedAt
			r.orders[i] = o
			return o, nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, o := range r.orders {
		if o.ID == id {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Payments exposes the payments written so far, for test assertions.
func (r *InMemoryRepository) Payments() []payment.Payment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]payment.Payment, len(r.payments))
	copy(out, r.payments)
	return out
}
