package orderrequest

// Request is a lead-capture record for an out-of-stock or commissioned
// piece. It is not an order: an admin either converts it into one (which
// deletes it) or rejects it (which also deletes it).
type Request struct {
	ID        int    `json:"id"`
	ArtworkID int    `json:"artworkId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Message   string `json:"message,omitempty"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt,omitempty"`
}

const StatusPending = "pending"
