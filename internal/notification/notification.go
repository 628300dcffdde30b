package notification

import (
	"errors"
	"sync"
)

// Notification is an outbox row. Checkout enqueues these and returns; the
// worker owns delivery, so a mail provider outage can never fail an order.
type Notification struct {
	ID           int    `json:"id"`
	ToEmail      string `json:"toEmail,omitempty"`
	ToPhone      string `json:"toPhone,omitempty"`
	Subject      string `json:"subject,omitempty"`
	Text         string `json:"text,omitempty"`
	HTML         string `json:"html,omitempty"`
	WhatsAppBody string `json:"whatsappBody,omitempty"`
	// EmailSent and WhatsAppSent record per-channel progress so a retry
	// only re-attempts the leg that failed.
	EmailSent    bool   `json:"emailSent,omitempty"`
	WhatsAppSent bool   `json:"whatsappSent,omitempty"`
	Status       string `json:"status"`
	Attempts     int    `json:"attempts"`
	LastError    string `json:"lastError,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
}

const (
	StatusPending = "pending"
	StatusSending = "sending"
	StatusSent    = "sent"
	StatusFailed  = "failed"

	// MaxAttempts is how many delivery tries a row gets before it is
	// parked as failed.
	MaxAttempts = 5
)

var ErrNotFound = errors.New("notification not found")

// Enqueuer is the write half other packages depend on.
type Enqueuer interface {
	Enqueue(n Notification) (Notification, error)
}

type Repository interface {
	Enqueuer
	// ClaimPending moves up to limit pending rows to sending and returns
	// them, so concurrent workers never pick up the same row.
	ClaimPending(limit int) ([]Notification, error)
	MarkSent(id int) error
	// MarkRetry persists the row's attempt count and per-channel progress,
	// requeueing it as pending until MaxAttempts parks it as failed.
	MarkRetry(n Notification, lastError string) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu     sync.Mutex
	rows   []Notification
	nextID int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1}
}

func (r *InMemoryRepository) Enqueue(n Notification) (Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n.ID = r.nextID
	r.nextID++
	n.Status = StatusPending
	r.rows = append(r.rows, n)
	return n, nil
}

func (r *InMemoryRepository) ClaimPending(limit int) ([]Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Notification, 0, limit)
	for i, n := range r.rows {
		if n.Status == StatusPending {
			r.rows[i].Status = StatusSending
			out = append(out, r.rows[i])
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r *InMemoryRepository) MarkSent(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, n := range r.rows {
		if n.ID == id {
			r.rows[i].Status = StatusSent
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) MarkRetry(n Notification, lastError string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, row := range r.rows {
		if row.ID == n.ID {
			r.rows[i].Attempts = n.Attempts
			r.rows[i].LastError = lastError
			r.rows[i].EmailSent = n.EmailSent
			r.rows[i].WhatsAppSent = n.WhatsAppSent
			if n.Attempts >= MaxAttempts {
				r.rows[i].Status = StatusFailed
			} else {
				r.rows[i].Status = StatusPending
			}
			return nil
		}
	}
	return ErrNotFound
}

// All exposes every row, for test assertions.
func (r *InMemoryRepository) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Notification, len(r.rows))
	copy(out, r.rows)
	return out
}
