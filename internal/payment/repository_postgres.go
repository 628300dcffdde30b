package payment

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

const (
	listPaymentsQuery = `
		SELECT id, order_id, customer_id, amount, reference_id, status, created_at
		FROM payments
		ORDER BY id DESC
	`
	getPaymentByOrderQuery = `
		SELECT id, order_id, customer_id, amount, reference_id, status, created_at
		FROM payments
		WHERE order_id = $1
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() ([]Payment, error) {
	rows, err := r.db.Query(listPaymentsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Payment, 0)
	for rows.Next() {
		var p Payment
		var customerID sql.NullInt64
		var createdAt sql.NullString
		if err := rows.Scan(&p.ID, &p.OrderID, &customerID, &p.Amount, &p.ReferenceID, &p.Status, &createdAt); err != nil {
			return nil, err
		}
		p.CustomerID = int(customerID.Int64)
		p.CreatedAt = createdAt.String
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByOrderID(orderID int) (Payment, error) {
	var p Payment
	var customerID sql.NullInt64
	var createdAt sql.NullString
	err := r.db.QueryRow(getPaymentByOrderQuery, orderID).Scan(&p.ID, &p.OrderID, &customerID, &p.Amount, &p.ReferenceID, &p.Status, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return Payment{}, ErrNotFound
		}
		return Payment{}, err
	}
	p.CustomerID = int(customerID.Int64)
	p.CreatedAt = createdAt.String
	return p, nil
}
