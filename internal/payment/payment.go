package payment

// Payment records the intent side of a manual UPI payment. Status is set to
// "success" when the row is written: the reference id is what the customer
// reported from their UPI app, not a verified settlement.
type Payment struct {
	ID          int     `json:"id"`
	OrderID     int     `json:"orderId"`
	CustomerID  int     `json:"customerId"`
	Amount      float64 `json:"amount"`
	ReferenceID string  `json:"referenceId"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"createdAt,omitempty"`
}

const StatusSuccess = "success"
