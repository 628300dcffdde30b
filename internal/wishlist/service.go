package wishlist

import "github.com/brushandbeyond/gallery-backend/internal/artwork"

// Service orchestrates wishlist operations. The guest merge is simpler than
// the cart's: membership is a set, so merging is a union and a repeat add
// cannot conflict.
type Service struct {
	repo    Repository
	catalog artwork.ServiceInterface
}

func NewService(repo Repository, catalog artwork.ServiceInterface) *Service {
	return &Service{repo: repo, catalog: catalog}
}

func (s *Service) List(userID int) ([]artwork.Artwork, error) {
	if userID <= 0 {
		return nil, ErrNotFound
	}
	return s.repo.List(userID)
}

func (s *Service) Add(userID, artworkID int) ([]int, error) {
	if userID <= 0 || artworkID <= 0 {
		return nil, ErrNotFound
	}
	if _, err := s.catalog.GetByID(artworkID); err != nil {
		return nil, artwork.ErrNotFound
	}
	if err := s.repo.Add(userID, artworkID); err != nil {
		return nil, err
	}
	return s.repo.ListIDs(userID)
}

func (s *Service) Remove(userID, artworkID int) ([]int, error) {
	if userID <= 0 || artworkID <= 0 {
		return nil, ErrNotFound
	}
	if err := s.repo.Remove(userID, artworkID); err != nil {
		return nil, err
	}
	return s.repo.ListIDs(userID)
}

// Merge unions guest wishlist entries into the server-side set. Vanished
// artworks are dropped silently, like the cart merge.
func (s *Service) Merge(userID int, artworkIDs []int) ([]int, error) {
	if userID <= 0 {
		return nil, ErrNotFound
	}

	valid := make([]int, 0, len(artworkIDs))
	for _, id := range artworkIDs {
		if id > 0 {
			valid = append(valid, id)
		}
	}

	if len(valid) > 0 {
		arts, err := s.catalog.ListByIDs(valid)
		if err != nil {
			return nil, err
		}
		for _, a := range arts {
			if err := s.repo.Add(userID, a.ID); err != nil {
				// idempotent add; a failure here is a store error, skip the entry
				continue
			}
		}
	}

	return s.repo.ListIDs(userID)
}
