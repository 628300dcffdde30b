package cart

import (
	"errors"
	"sort"
	"sync"

	"github.com/brushandbeyond/gallery-backend/internal/artwork"
)

var (
	ErrNotFound = errors.New("cart item not found")
)

// Repository provides access to cart rows. Add is additive: the delta is
// applied on top of any existing quantity, and a row whose quantity drops
// to zero or below is removed.
type Repository interface {
	Get(userID int) ([]Item, error)
	Count(userID int) (int, error)
	Add(userID, artworkID, delta int) error
	SetQuantity(userID, artworkID, qty int) error
	Remove(userID, artworkID int) error
	Clear(userID int) error
}

// InMemoryRepository is used for tests and local scenarios. It resolves
// artwork snapshots from the provided catalog repository.
type InMemoryRepository struct {
	mu       sync.RWMutex
	rows     map[int]map[int]int // userID -> artworkID -> quantity
	catalog  artwork.ServiceInterface
	failAdds map[int]error // artworkID -> error to return once, for race tests
}

func NewInMemoryRepository(catalog artwork.ServiceInterface) *InMemoryRepository {
	return &InMemoryRepository{
		rows:     make(map[int]map[int]int),
		catalog:  catalog,
		failAdds: make(map[int]error),
	}
}

// FailNextAdd makes the next Add for the given artwork return err once.
// Tests use it to simulate the duplicate-key race between two merges.
func (r *InMemoryRepository) FailNextAdd(artworkID int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failAdds[artworkID] = err
}

func (r *InMemoryRepository) Get(userID int) ([]Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userRows := r.rows[userID]
	ids := make([]int, 0, len(userRows))
	for id := range userRows {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]Item, 0, len(ids))
	for _, id := range ids {
		it := Item{ArtworkID: id, Quantity: userRows[id]}
		if r.catalog != nil {
			if a, err := r.catalog.GetByID(id); err == nil {
				it.Artwork = a
			}
		}
		out = append(out, it)
	}
	return out, nil
}

func (r *InMemoryRepository) Count(userID int) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0
	for _, q := range r.rows[userID] {
		total += q
	}
	return total, nil
}

func (r *InMemoryRepository) Add(userID, artworkID, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err, ok := r.failAdds[artworkID]; ok {
		delete(r.failAdds, artworkID)
		return err
	}

	if r.rows[userID] == nil {
		r.rows[userID] = make(map[int]int)
	}
	r.rows[userID][artworkID] += delta
	if r.rows[userID][artworkID] <= 0 {
		delete(r.rows[userID], artworkID)
	}
	return nil
}

func (r *InMemoryRepository) SetQuantity(userID, artworkID, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.rows[userID] == nil {
		r.rows[userID] = make(map[int]int)
	}
	if qty <= 0 {
		delete(r.rows[userID], artworkID)
		return nil
	}
	r.rows[userID][artworkID] = qty
	return nil
}

func (r *InMemoryRepository) Remove(userID, artworkID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[userID][artworkID]; !ok {
		return ErrNotFound
	}
	delete(r.rows[userID], artworkID)
	return nil
}

func (r *InMemoryRepository) Clear(userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.rows, userID)
	return nil
}
