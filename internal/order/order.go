package order

// ItemSnapshot freezes what was bought at checkout time. Later price edits
// on the artwork do not touch historical orders.
type ItemSnapshot struct {
	ArtworkID int     `json:"artworkId"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
}

// Address is embedded on the order row.
type Address struct {
	Name       string `json:"name"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Phone      string `json:"phone"`
}

// Order lifecycle statuses.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Order is created once at checkout and only its status mutates afterwards.
// UserID is zero for orders an admin synthesized without a storefront
// session (stored as NULL).
type Order struct {
	ID                 int            `json:"id"`
	Reference          string         `json:"reference"`
	UserID             int            `json:"userId,omitempty"`
	Items              []ItemSnapshot `json:"items"`
	Subtotal           float64        `json:"subtotal"`
	DiscountAmount     float64        `json:"discountAmount"`
	CouponCode         string         `json:"couponCode,omitempty"`
	ShippingCost       float64        `json:"shippingCost"`
	GSTAmount          float64        `json:"gstAmount"`
	Total              float64        `json:"total"`
	ShippingAddress    Address        `json:"shippingAddress"`
	PaymentMethod      string         `json:"paymentMethod"`
	PaymentStatus      string         `json:"paymentStatus"`
	Status             string         `json:"status"`
	CustomerName       string         `json:"customerName"`
	CustomerEmail      string         `json:"customerEmail"`
	PaymentReferenceID string         `json:"paymentReferenceId"`
	CreatedAt          string         `json:"createdAt,omitempty"`
	UpdatedAt          string         `json:"updatedAt,omitempty"`
}
