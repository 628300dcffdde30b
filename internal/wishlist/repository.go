package wishlist

import (
	"errors"
	"sort"
	"sync"

	"github.com/brushandbeyond/gallery-backend/internal/artwork"
)

var (
	ErrNotFound = errors.New("wishlist entry not found")
)

// Repository provides access to wishlist membership. Add is idempotent:
// re-adding an artwork is a no-op rather than an error, which is what makes
// the guest merge a plain set union.
type Repository interface {
	List(userID int) ([]artwork.Artwork, error)
	ListIDs(userID int) ([]int, error)
	Add(userID, artworkID int) error
	Remove(userID, artworkID int) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu      sync.RWMutex
	rows    map[int]map[int]bool // userID -> artworkID set
	catalog artwork.ServiceInterface
}

func NewInMemoryRepository(catalog artwork.ServiceInterface) *InMemoryRepository {
	return &InMemoryRepository{rows: make(map[int]map[int]bool), catalog: catalog}
}

func (r *InMemoryRepository) List(userID int) ([]artwork.Artwork, error) {
	ids, err := r.ListIDs(userID)
	if err != nil {
		return nil, err
	}
	if r.catalog == nil {
		return []artwork.Artwork{}, nil
	}
	return r.catalog.ListByIDs(ids)
}

func (r *InMemoryRepository) ListIDs(userID int) ([]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int, 0, len(r.rows[userID]))
	for id := range r.rows[userID] {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

func (r *InMemoryRepository) Add(userID, artworkID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.rows[userID] == nil {
		r.rows[userID] = make(map[int]bool)
	}
	r.rows[userID][artworkID] = true
	return nil
}

func (r *InMemoryRepository) Remove(userID, artworkID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.rows[userID][artworkID] {
		return ErrNotFound
	}
	delete(r.rows[userID], artworkID)
	return nil
}
