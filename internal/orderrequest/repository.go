package orderrequest

import (
	"errors"
	"sync"
)

var (
	ErrNotFound        = errors.New("order request not found")
	ErrProfileNotFound = errors.New("no user profile matches the request email")
)

type Repository interface {
	Create(req Request) (Request, error)
	List() ([]Request, error)
	GetByID(id int) (Request, error)
	Delete(id int) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu       sync.RWMutex
	requests []Request
	nextID   int
}

func NewInMemoryRepository(seed []Request) *InMemoryRepository {
	r := &InMemoryRepository{requests: make([]Request, 0, len(seed)), nextID: 1}
	maxID := 0
	for _, req := range seed {
		r.requests = append(r.requests, req)
		if req.ID > maxID {
			maxID = req.ID
		}
	}
	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) Create(req Request) (Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if req.ID == 0 {
		req.ID = r.nextID
		r.nextID++
	}
	r.requests = append(r.requests, req)
	return req, nil
}

func (r *InMemoryRepository) List() ([]Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Request, len(r.requests))
	copy(out, r.requests)
	return out, nil
}

func (r *InMemoryRepository) GetByID(id int) (Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, req := range r.requests {
		if req.ID == id {
			return req, nil
		}
	}
	return Request{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, req := range r.requests {
		if req.ID == id {
			r.requests = append(r.requests[:i], r.requests[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
