package orderrequest

import (
	"time"

	"github.com/brushandbeyond/gallery-backend/internal/artwork"
	"github.com/brushandbeyond/gallery-backend/internal/order"
	"github.com/brushandbeyond/gallery-backend/internal/user"
)

// OrderCreator is the slice of the order package acceptance needs.
type OrderCreator interface {
	CreateManual(ord order.Order) (order.Order, error)
}

// Service manages the lead lifecycle: capture, accept (convert into an
// order), reject (delete).
type Service struct {
	repo    Repository
	users   user.ServiceInterface
	catalog artwork.ServiceInterface
	orders  OrderCreator
}

func NewService(repo Repository, users user.ServiceInterface, catalog artwork.ServiceInterface, orders OrderCreator) *Service {
	return &Service{repo: repo, users: users, catalog: catalog, orders: orders}
}

func (s *Service) Create(req Request) (Request, error) {
	if _, err := s.catalog.GetByID(req.ArtworkID); err != nil {
		return Request{}, artwork.ErrNotFound
	}
	req.Status = StatusPending
	req.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	return s.repo.Create(req)
}

func (s *Service) List() ([]Request, error) {
	return s.repo.List()
}

// Accept converts a request into a manual order: quantity 1 at the
// artwork's CURRENT price, matched to the requester's profile by
// normalized email. The accepted request is hard-deleted; no audit trail
// of it survives, which mirrors the storefront's behavior.
func (s *Service) Accept(id int) (order.Order, error) {
	req, err := s.repo.GetByID(id)
	if err != nil {
		return order.Order{}, err
	}

	profile, err := s.users.GetByNormalizedEmail(req.Email)
	if err != nil {
		return order.Order{}, ErrProfileNotFound
	}

	art, err := s.catalog.GetByID(req.ArtworkID)
	if err != nil {
		return order.Order{}, artwork.ErrNotFound
	}

	ord := order.Order{
		UserID: profile.ID,
		Items: []order.ItemSnapshot{{
			ArtworkID: art.ID,
			Title:     art.Title,
			Price:     art.Price,
			Quantity:  1,
			Image:     art.MainImage(),
		}},
		Subtotal: art.Price,
		Total:    art.Price,
		ShippingAddress: order.Address{
			Name:  req.Name,
			Phone: req.Phone,
		},
		PaymentMethod: "manual",
		PaymentStatus: "confirmed",
		Status:        order.StatusProcessing,
		CustomerName:  req.Name,
		CustomerEmail: req.Email,
	}

	created, err := s.orders.CreateManual(ord)
	if err != nil {
		return order.Order{}, err
	}

	if err := s.repo.Delete(id); err != nil {
		// the order exists either way; a dangling request row is the
		// lesser failure
		return created, nil
	}
	return created, nil
}

// Reject hard-deletes the request.
func (s *Service) Reject(id int) error {
	return s.repo.Delete(id)
}
