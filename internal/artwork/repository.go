package artwork

import (
	"errors"
	"sync"
)

var (
	ErrNotFound      = errors.New("artwork not found")
	ErrInvalidMedium = errors.New("invalid medium")
)

type Repository interface {
	List(filter ListFilter) ([]Artwork, error)
	GetByID(id int) (Artwork, error)
	ListByIDs(ids []int) ([]Artwork, error)
	Create(a Artwork) (Artwork, error)
	Update(id int, a Artwork) (Artwork, error)
	Delete(id int) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu       sync.RWMutex
	artworks []Artwork
	nextID   int
}

func NewInMemoryRepository(seed []Artwork) *InMemoryRepository {
	r := &InMemoryRepository{artworks: make([]Artwork, 0, len(seed)), nextID: 1}
	maxID := 0
	for _, a := range seed {
		a.InStock = a.StockCount > 0
		r.artworks = append(r.artworks, a)
		if a.ID > maxID {
			maxID = a.ID
		}
	}
	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) List(filter ListFilter) ([]Artwork, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Artwork, 0, len(r.artworks))
	for _, a := range r.artworks {
		if filter.Medium != "" && a.Medium != filter.Medium {
			continue
		}
		if filter.Category != "" && a.Category != filter.Category {
			continue
		}
		if filter.Featured != nil && a.Featured != *filter.Featured {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *InMemoryRepository) GetByID(id int) (Artwork, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.artworks {
		if a.ID == id {
			return a, nil
		}
	}
	return Artwork{}, ErrNotFound
}

func (r *InMemoryRepository) ListByIDs(ids []int) ([]Artwork, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Artwork, 0, len(ids))
	for _, id := range ids {
		for _, a := range r.artworks {
			if a.ID == id {
				out = append(out, a)
				break
			}
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Create(a Artwork) (Artwork, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a.ID == 0 {
		a.ID = r.nextID
		r.nextID++
	}
	a.InStock = a.StockCount > 0
	r.artworks = append(r.artworks, a)
	return a, nil
}

func (r *InMemoryRepository) Update(id int, update Artwork) (Artwork, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, a := range r.artworks {
		if a.ID == id {
			update.ID = id
			update.InStock = update.StockCount > 0
			r.artworks[i] = update
			return update, nil
		}
	}
	return Artwork{}, ErrNotFound
}

// DecrementStock takes qty off an artwork's stock, refusing to go below
// zero. It mirrors the guarded UPDATE the postgres checkout runs.
func (r *InMemoryRepository) DecrementStock(artworkID, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, a := range r.artworks {
		if a.ID != artworkID {
			continue
		}
		if a.StockCount < qty {
			return errors.New("insufficient stock")
		}
		r.artworks[i].StockCount -= qty
		r.artworks[i].InStock = r.artworks[i].StockCount > 0
		return nil
	}
	return ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, a := range r.artworks {
		if a.ID == id {
			r.artworks = append(r.artworks[:i], r.artworks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
