package order

import (
	"database/sql"
	"encoding/json"

	"github.com/brushandbeyond/gallery-backend/internal/coupon"
	"github.com/brushandbeyond/gallery-backend/internal/payment"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	orderColumns = `id, reference, user_id, items, subtotal, discount_amount, coupon_code, shipping_cost, gst_amount, total, shipping_address, payment_method, payment_status, status, customer_name, customer_email, payment_reference_id, created_at, updated_at`

	insertOrderQuery = `
		INSERT INTO orders (reference, user_id, items, subtotal, discount_amount, coupon_code, shipping_cost, gst_amount, total, shipping_address, payment_method, payment_status, status, customer_name, customer_email, payment_reference_id, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
		RETURNING id
	`
	insertPaymentQuery = `
		INSERT INTO payments (order_id, customer_id, amount, reference_id, status, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id
	`
	decrementStockQuery = `
		UPDATE artworks
		SET stock_count = stock_count - $1
		WHERE id = $2 AND stock_count >= $1
	`
	redeemCouponQuery = `
		UPDATE coupons
		SET used_count = used_count + 1
		WHERE code = $1 AND active = true
		  AND (usage_limit IS NULL OR used_count < usage_limit)
	`

	listOrdersByUserQuery = `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY id DESC`
	listAllOrdersQuery    = `SELECT ` + orderColumns + ` FROM orders ORDER BY id DESC`
	getOrderQuery         = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	updateStatusQuery     = `UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`
	deleteOrderQuery      = `DELETE FROM orders WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create runs the whole checkout write in one transaction: guarded stock
// decrements, the order row, its payment row, and the coupon redemption.
func (r *PostgresRepository) Create(ord Order, pay payment.Payment, redeemCoupon bool) (Order, payment.Payment, error) {
	itemsJSON, err := json.Marshal(ord.Items)
	if err != nil {
		return Order{}, payment.Payment{}, err
	}
	addrJSON, err := json.Marshal(ord.ShippingAddress)
	if err != nil {
		return Order{}, payment.Payment{}, err
	}

	tx, err := r.db.Begin()
	if err != nil {
		return Order{}, payment.Payment{}, err
	}
	defer tx.Rollback()

	for _, it := range ord.Items {
		res, err := tx.Exec(decrementStockQuery, it.Quantity, it.ArtworkID)
		if err != nil {
			return Order{}, payment.Payment{}, err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return Order{}, payment.Payment{}, ErrInsufficientStock
		}
	}

	var userID sql.NullInt64
	if ord.UserID > 0 {
		userID = sql.NullInt64{Int64: int64(ord.UserID), Valid: true}
	}
	var couponCode sql.NullString
	if ord.CouponCode != "" {
		couponCode = sql.NullString{String: ord.CouponCode, Valid: true}
	}

	if err := tx.QueryRow(
		insertOrderQuery,
		ord.Reference, userID, itemsJSON, ord.Subtotal, ord.DiscountAmount, couponCode,
		ord.ShippingCost, ord.GSTAmount, ord.Total, addrJSON, ord.PaymentMethod,
		ord.PaymentStatus, ord.Status, ord.CustomerName, ord.CustomerEmail,
		ord.PaymentReferenceID, ord.CreatedAt, ord.UpdatedAt,
	).Scan(&ord.ID); err != nil {
		return Order{}, payment.Payment{}, err
	}

	pay.OrderID = ord.ID
	var customerID sql.NullInt64
	if pay.CustomerID > 0 {
		customerID = sql.NullInt64{Int64: int64(pay.CustomerID), Valid: true}
	}
	if err := tx.QueryRow(
		insertPaymentQuery,
		pay.OrderID, customerID, pay.Amount, pay.ReferenceID, pay.Status, pay.CreatedAt,
	).Scan(&pay.ID); err != nil {
		return Order{}, payment.Payment{}, err
	}

	if redeemCoupon {
		res, err := tx.Exec(redeemCouponQuery, ord.CouponCode)
		if err != nil {
			return Order{}, payment.Payment{}, err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return Order{}, payment.Payment{}, coupon.ErrExhausted
		}
	}

	if err := tx.Commit(); err != nil {
		return Order{}, payment.Payment{}, err
	}
	return ord, pay, nil
}

func (r *PostgresRepository) ListByUser(userID int) ([]Order, error) {
	rows, err := r.db.Query(listOrdersByUserQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (r *PostgresRepository) ListAll() ([]Order, error) {
	rows, err := r.db.Query(listAllOrdersQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (r *PostgresRepository) GetByID(id int) (Order, error) {
	o, err := scanOrder(r.db.QueryRow(getOrderQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return Order{}, ErrNotFound
		}
		return Order{}, err
	}
	return o, nil
}

func (r *PostgresRepository) UpdateStatus(id int, status, updatedAt string) (Order, error) {
	res, err := r.db.Exec(updateStatusQuery, id, status, updatedAt)
	if err != nil {
		return Order{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Order{}, ErrNotFound
	}
	return r.GetByID(id)
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(deleteOrderQuery, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func collectOrders(rows *sql.Rows) ([]Order, error) {
	out := make([]Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func scanOrder(row rowScanner) (Order, error) {
	var o Order
	var userID sql.NullInt64
	var couponCode, createdAt, updatedAt sql.NullString
	var itemsJSON, addrJSON []byte
	if err := row.Scan(
		&o.ID, &o.Reference, &userID, &itemsJSON, &o.Subtotal, &o.DiscountAmount,
		&couponCode, &o.ShippingCost, &o.GSTAmount, &o.Total, &addrJSON,
		&o.PaymentMethod, &o.PaymentStatus, &o.Status, &o.CustomerName,
		&o.CustomerEmail, &o.PaymentReferenceID, &createdAt, &updatedAt,
	); err != nil {
		return Order{}, err
	}
	o.UserID = int(userID.Int64)
	o.CouponCode = couponCode.String
	json.Unmarshal(itemsJSON, &o.Items)
	json.Unmarshal(addrJSON, &o.ShippingAddress)
	o.CreatedAt = createdAt.String
	o.UpdatedAt = updatedAt.String
	return o, nil
}
