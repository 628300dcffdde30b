package cart

import (
	"strings"

	"github.com/brushandbeyond/gallery-backend/internal/artwork"
	"github.com/lib/pq"
)

// Service owns the guest/authenticated cart duality. The server-side cart is
// authoritative for signed-in users; Merge folds whatever a guest collected
// into it at the moment they sign in.
type Service struct {
	repo    Repository
	catalog artwork.ServiceInterface
}

func NewService(repo Repository, catalog artwork.ServiceInterface) *Service {
	return &Service{repo: repo, catalog: catalog}
}

func (s *Service) Get(userID int) ([]Item, error) {
	if userID <= 0 {
		return nil, ErrNotFound
	}
	return s.repo.Get(userID)
}

func (s *Service) Count(userID int) (int, error) {
	if userID <= 0 {
		return 0, ErrNotFound
	}
	return s.repo.Count(userID)
}

// Add applies a quantity delta. The artwork must exist; adding to a vanished
// piece is rejected rather than silently creating a dangling row.
func (s *Service) Add(userID, artworkID, delta int) ([]Item, error) {
	if userID <= 0 || artworkID <= 0 {
		return nil, ErrNotFound
	}
	if delta != 0 {
		if _, err := s.catalog.GetByID(artworkID); err != nil {
			return nil, artwork.ErrNotFound
		}
		if err := s.repo.Add(userID, artworkID, delta); err != nil {
			return nil, err
		}
	}
	return s.repo.Get(userID)
}

// SetQuantity sets an exact quantity; zero or less removes the row.
func (s *Service) SetQuantity(userID, artworkID, qty int) ([]Item, error) {
	if userID <= 0 || artworkID <= 0 {
		return nil, ErrNotFound
	}
	if err := s.repo.SetQuantity(userID, artworkID, qty); err != nil {
		return nil, err
	}
	return s.repo.Get(userID)
}

func (s *Service) Remove(userID, artworkID int) ([]Item, error) {
	if userID <= 0 || artworkID <= 0 {
		return nil, ErrNotFound
	}
	if err := s.repo.Remove(userID, artworkID); err != nil {
		return nil, err
	}
	return s.repo.Get(userID)
}

func (s *Service) Clear(userID int) error {
	if userID <= 0 {
		return ErrNotFound
	}
	return s.repo.Clear(userID)
}

// Merge reconciles a guest cart into the user's server-side cart.
//
// For every guest item: a vanished artwork is dropped without affecting the
// rest; an artwork already in the server cart has the guest quantity ADDED to
// the existing quantity; anything else is inserted with the guest quantity.
// A duplicate-key failure (two tabs merging at once) is recovered by
// re-reading the current quantity and re-applying the delta instead of
// failing the batch. The authoritative cart is re-read at the end.
func (s *Service) Merge(userID int, guest []GuestItem) (MergeResult, error) {
	if userID <= 0 {
		return MergeResult{}, ErrNotFound
	}

	ids := make([]int, 0, len(guest))
	for _, g := range guest {
		if g.ArtworkID > 0 && g.Quantity > 0 {
			ids = append(ids, g.ArtworkID)
		}
	}

	existing := map[int]bool{}
	if len(ids) > 0 {
		arts, err := s.catalog.ListByIDs(ids)
		if err != nil {
			return MergeResult{}, err
		}
		for _, a := range arts {
			existing[a.ID] = true
		}
	}

	res := MergeResult{}
	for _, g := range guest {
		if g.ArtworkID <= 0 || g.Quantity <= 0 {
			res.Skipped++
			continue
		}
		if !existing[g.ArtworkID] {
			res.Skipped++
			continue
		}
		if err := s.repo.Add(userID, g.ArtworkID, g.Quantity); err != nil {
			if !isUniqueViolation(err) {
				res.Skipped++
				continue
			}
			// another merge inserted the row first; fold our quantity in
			current := 0
			if items, err2 := s.repo.Get(userID); err2 == nil {
				for _, it := range items {
					if it.ArtworkID == g.ArtworkID {
						current = it.Quantity
						break
					}
				}
			}
			if err2 := s.repo.SetQuantity(userID, g.ArtworkID, current+g.Quantity); err2 != nil {
				res.Skipped++
				continue
			}
		}
		res.Merged++
	}

	items, err := s.repo.Get(userID)
	if err != nil {
		return res, err
	}
	res.Items = items
	res.Count = Count(items)
	return res, nil
}

func isUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "duplicate key")
}
