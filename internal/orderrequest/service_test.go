package orderrequest

import (
	"errors"
	"testing"

	"github.com/brushandbeyond/gallery-backend/internal/artwork"
	"github.com/brushandbeyond/gallery-backend/internal/cart"
	"github.com/brushandbeyond/gallery-backend/internal/coupon"
	"github.com/brushandbeyond/gallery-backend/internal/notification"
	"github.com/brushandbeyond/gallery-backend/internal/order"
	"github.com/brushandbeyond/gallery-backend/internal/pricing"
	"github.com/brushandbeyond/gallery-backend/internal/user"
)

type requestFixture struct {
	service   *Service
	repo      *InMemoryRepository
	orderRepo *order.InMemoryRepository
	catalog   *artwork.InMemoryRepository
}

func newRequestFixture(t *testing.T, seedArt []artwork.Artwork, seedUsers []user.User) *requestFixture {
	t.Helper()

	catalogRepo := artwork.NewInMemoryRepository(seedArt)
	catalog := artwork.NewService(catalogRepo)
	users := user.NewService(user.NewInMemoryRepository(seedUsers))

	carts := cart.NewService(cart.NewInMemoryRepository(catalog), catalog)
	couponRepo := coupon.NewInMemoryRepository(nil)
	coupons := coupon.NewService(couponRepo)
	orderRepo := order.NewInMemoryRepository(catalogRepo, couponRepo)
	orders := order.NewService(orderRepo, carts, coupons, pricing.DefaultConfig(), notification.NewInMemoryRepository(), "")

	repo := NewInMemoryRepository(nil)
	return &requestFixture{
		service:   NewService(repo, users, catalog, orders),
		repo:      repo,
		orderRepo: orderRepo,
		catalog:   catalogRepo,
	}
}

func TestCreateValidatesArtwork(t *testing.T) {
	fx := newRequestFixture(t, []artwork.Artwork{{ID: 1, Title: "Commission", Price: 3200, StockCount: 1}}, nil)

	created, err := fx.service.Create(Request{ArtworkID: 1, Name: "Ravi", Email: "ravi@example.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 || created.Status != StatusPending {
		t.Fatalf("request = %+v", created)
	}

	if _, err := fx.service.Create(Request{ArtworkID: 99, Name: "Ravi", Email: "ravi@example.com"}); !errors.Is(err, artwork.ErrNotFound) {
		t.Fatalf("err = %v, want artwork.ErrNotFound", err)
	}
}

func TestAcceptConvertsRequestToOrder(t *testing.T) {
	fx := newRequestFixture(t,
		[]artwork.Artwork{{ID: 1, Title: "Commission", Price: 3200, StockCount: 1, Images: []string{"/uploads/c.jpg"}}},
		[]user.User{{ID: 9, Email: "Ravi@Example.com", FirstName: "Ravi"}},
	)
	created, err := fx.service.Create(Request{ArtworkID: 1, Name: "Ravi", Email: "ravi@example.com", Phone: "+915678"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	ord, err := fx.service.Accept(created.ID)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}

	if ord.UserID != 9 {
		t.Fatalf("order user = %d, want matched profile 9", ord.UserID)
	}
	if len(ord.Items) != 1 || ord.Items[0].Quantity != 1 || ord.Items[0].Price != 3200 {
		t.Fatalf("items = %+v", ord.Items)
	}
	if ord.PaymentMethod != "manual" || ord.PaymentStatus != "confirmed" || ord.Status != order.StatusProcessing {
		t.Fatalf("order = %+v", ord)
	}

	// the payment row is the synthetic manual one
	pays := fx.orderRepo.Payments()
	if len(pays) != 1 || pays[0].ReferenceID != "manual" {
		t.Fatalf("payments = %+v", pays)
	}

	// stock is consumed and the request row is gone
	if a, _ := fx.catalog.GetByID(1); a.StockCount != 0 {
		t.Fatalf("stock = %d, want 0", a.StockCount)
	}
	if _, err := fx.repo.GetByID(created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("request should be deleted after acceptance, got %v", err)
	}
}

func TestAcceptWithoutMatchingProfile(t *testing.T) {
	fx := newRequestFixture(t,
		[]artwork.Artwork{{ID: 1, Title: "Commission", Price: 3200, StockCount: 1}},
		nil,
	)
	created, err := fx.service.Create(Request{ArtworkID: 1, Name: "Ravi", Email: "ravi@example.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := fx.service.Accept(created.ID); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("err = %v, want ErrProfileNotFound", err)
	}

	// a failed acceptance leaves the request in place
	if _, err := fx.repo.GetByID(created.ID); err != nil {
		t.Fatalf("request vanished after failed acceptance: %v", err)
	}
}

func TestReject(t *testing.T) {
	fx := newRequestFixture(t, []artwork.Artwork{{ID: 1, Title: "Commission", Price: 3200, StockCount: 1}}, nil)
	created, err := fx.service.Create(Request{ArtworkID: 1, Name: "Ravi", Email: "ravi@example.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := fx.service.Reject(created.ID); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if err := fx.service.Reject(created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
