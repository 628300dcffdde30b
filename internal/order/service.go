package order

import (
	"fmt"
	"log"
	"time"

	"github.com/brushandbeyond/gallery-backend/internal/cart"
	"github.com/brushandbeyond/gallery-backend/internal/coupon"
	"github.com/brushandbeyond/gallery-backend/internal/notification"
	"github.com/brushandbeyond/gallery-backend/internal/payment"
	"github.com/brushandbeyond/gallery-backend/internal/pricing"
	"github.com/google/uuid"
)

// CartService is the slice of the cart package checkout needs.
type CartService interface {
	Get(userID int) ([]cart.Item, error)
	Clear(userID int) error
}

// CheckoutRequest is what the storefront submits at the end of checkout.
// The reference id is whatever the customer typed from their UPI app.
type CheckoutRequest struct {
	CouponCode         string  `json:"couponCode,omitempty"`
	ShippingAddress    Address `json:"shippingAddress"`
	PaymentMethod      string  `json:"paymentMethod"`
	PaymentReferenceID string  `json:"paymentReferenceId"`
}

// Service orchestrates checkout and order administration.
type Service struct {
	repo       Repository
	carts      CartService
	coupons    coupon.ServiceInterface
	pricingCfg pricing.Config
	outbox     notification.Enqueuer
	adminEmail string
}

func NewService(repo Repository, carts CartService, coupons coupon.ServiceInterface, pricingCfg pricing.Config, outbox notification.Enqueuer, adminEmail string) *Service {
	return &Service{
		repo:       repo,
		carts:      carts,
		coupons:    coupons,
		pricingCfg: pricingCfg,
		outbox:     outbox,
		adminEmail: adminEmail,
	}
}

// Checkout snapshots the server cart, prices it, and writes the order and
// payment atomically. Notification rows are enqueued after the commit;
// their failure is logged and swallowed, never surfaced to the buyer.
func (s *Service) Checkout(userID int, customerName, customerEmail, customerPhone string, req CheckoutRequest) (Order, payment.Payment, error) {
	items, err := s.carts.Get(userID)
	if err != nil {
		return Order{}, payment.Payment{}, err
	}
	if len(items) == 0 {
		return Order{}, payment.Payment{}, ErrEmptyCart
	}

	snapshots := make([]ItemSnapshot, 0, len(items))
	subtotal := 0.0
	for _, it := range items {
		snapshots = append(snapshots, ItemSnapshot{
			ArtworkID: it.ArtworkID,
			Title:     it.Artwork.Title,
			Price:     it.Artwork.Price,
			Quantity:  it.Quantity,
			Image:     it.Artwork.MainImage(),
		})
		subtotal += it.Artwork.Price * float64(it.Quantity)
	}

	discountPct := 0.0
	couponCode := ""
	if req.CouponCode != "" {
		v := s.coupons.Validate(req.CouponCode, time.Now().UTC(), userID)
		if !v.Valid {
			return Order{}, payment.Payment{}, &CouponRejectedError{Reason: v.Error}
		}
		discountPct = v.DiscountPercentage
		couponCode = v.Code
	}

	totals := pricing.Compute(subtotal, discountPct, s.pricingCfg)
	now := time.Now().UTC().Format(time.RFC3339)

	ord := Order{
		Reference:          uuid.NewString(),
		UserID:             userID,
		Items:              snapshots,
		Subtotal:           totals.Subtotal,
		DiscountAmount:     totals.DiscountAmount,
		CouponCode:         couponCode,
		ShippingCost:       totals.ShippingCost,
		GSTAmount:          totals.GSTAmount,
		Total:              totals.Total,
		ShippingAddress:    req.ShippingAddress,
		PaymentMethod:      req.PaymentMethod,
		PaymentStatus:      "confirmed",
		Status:             StatusProcessing,
		CustomerName:       customerName,
		CustomerEmail:      customerEmail,
		PaymentReferenceID: req.PaymentReferenceID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	pay := payment.Payment{
		CustomerID:  userID,
		Amount:      totals.Total,
		ReferenceID: req.PaymentReferenceID,
		Status:      payment.StatusSuccess,
		CreatedAt:   now,
	}

	created, createdPay, err := s.repo.Create(ord, pay, couponCode != "")
	if err != nil {
		return Order{}, payment.Payment{}, err
	}

	if err := s.carts.Clear(userID); err != nil {
		log.Printf("order %d: could not clear cart for user %d: %v", created.ID, userID, err)
	}

	s.enqueueOrderNotifications(created, customerPhone)

	return created, createdPay, nil
}

// CreateManual writes an order an admin synthesized (order-request
// acceptance). It runs through the same transactional path, so the stock
// guard and the payment row still apply.
func (s *Service) CreateManual(ord Order) (Order, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	if ord.Reference == "" {
		ord.Reference = uuid.NewString()
	}
	ord.CreatedAt = now
	ord.UpdatedAt = now

	pay := payment.Payment{
		CustomerID:  ord.UserID,
		Amount:      ord.Total,
		ReferenceID: "manual",
		Status:      payment.StatusSuccess,
		CreatedAt:   now,
	}

	created, _, err := s.repo.Create(ord, pay, false)
	if err != nil {
		return Order{}, err
	}

	s.enqueueOrderNotifications(created, "")
	return created, nil
}

func (s *Service) ListByUser(userID int) ([]Order, error) {
	if userID <= 0 {
		return nil, ErrNotFound
	}
	return s.repo.ListByUser(userID)
}

func (s *Service) ListAll() ([]Order, error) {
	return s.repo.ListAll()
}

func (s *Service) GetByID(id int) (Order, error) {
	if id <= 0 {
		return Order{}, ErrNotFound
	}
	return s.repo.GetByID(id)
}

func (s *Service) UpdateStatus(id int, status string) (Order, error) {
	if !ValidStatus(status) {
		return Order{}, ErrInvalidStatus
	}
	return s.repo.UpdateStatus(id, status, time.Now().UTC().Format(time.RFC3339))
}

func (s *Service) Delete(id int) error {
	if id <= 0 {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}

func (s *Service) enqueueOrderNotifications(ord Order, customerPhone string) {
	if s.outbox == nil {
		return
	}
	now := time.Now().UTC().Format(time.RFC3339)

	subject := fmt.Sprintf("Order %s confirmed", ord.Reference)
	text := fmt.Sprintf("Hi %s, your order %s for ₹%.2f has been received and is being processed.", ord.CustomerName, ord.Reference, ord.Total)
	html := fmt.Sprintf("<p>Hi %s,</p><p>Your order <b>%s</b> for ₹%.2f has been received and is being processed.</p>", ord.CustomerName, ord.Reference, ord.Total)

	if ord.CustomerEmail != "" {
		if _, err := s.outbox.Enqueue(notification.Notification{
			ToEmail:      ord.CustomerEmail,
			ToPhone:      customerPhone,
			Subject:      subject,
			Text:         text,
			HTML:         html,
			WhatsAppBody: text,
			CreatedAt:    now,
		}); err != nil {
			log.Printf("order %d: could not enqueue customer notification: %v", ord.ID, err)
		}
	}

	if s.adminEmail != "" {
		if _, err := s.outbox.Enqueue(notification.Notification{
			ToEmail:   s.adminEmail,
			Subject:   fmt.Sprintf("New order %s", ord.Reference),
			Text:      fmt.Sprintf("Order %s from %s <%s>: ₹%.2f (%d items), payment ref %s.", ord.Reference, ord.CustomerName, ord.CustomerEmail, ord.Total, len(ord.Items), ord.PaymentReferenceID),
			CreatedAt: now,
		}); err != nil {
			log.Printf("order %d: could not enqueue admin notification: %v", ord.ID, err)
		}
	}
}
