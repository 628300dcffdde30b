package coupon

import (
	"database/sql"
	"strings"
	"time"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	couponColumns = `id, code, discount_percentage, active, valid_from, valid_until, usage_limit, used_count, created_at, updated_at`

	listCouponsQuery = `SELECT ` + couponColumns + ` FROM coupons ORDER BY id DESC`

	getActiveCouponQuery = `
		SELECT ` + couponColumns + `
		FROM coupons
		WHERE code = $1 AND active = true
	`
	insertCouponQuery = `
		INSERT INTO coupons (code, discount_percentage, active, valid_from, valid_until, usage_limit, used_count, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,0,$7,$8)
		RETURNING id
	`
	updateCouponQuery = `
		UPDATE coupons
		SET code = $1, discount_percentage = $2, active = $3, valid_from = $4,
			valid_until = $5, usage_limit = $6, updated_at = $7
		WHERE id = $8
	`
	deleteCouponQuery = `DELETE FROM coupons WHERE id = $1`

	// the WHERE clause makes the increment conditional, so two concurrent
	// redemptions cannot push used_count past the limit
	redeemCouponQuery = `
		UPDATE coupons
		SET used_count = used_count + 1
		WHERE code = $1 AND active = true
		  AND (usage_limit IS NULL OR used_count < usage_limit)
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() ([]Coupon, error) {
	rows, err := r.db.Query(listCouponsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Coupon, 0)
	for rows.Next() {
		c, err := scanCoupon(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetActiveByCode(code string) (Coupon, error) {
	c, err := scanCoupon(r.db.QueryRow(getActiveCouponQuery, NormalizeCode(code)))
	if err != nil {
		if err == sql.ErrNoRows {
			return Coupon{}, ErrNotFound
		}
		return Coupon{}, err
	}
	return c, nil
}

func (r *PostgresRepository) Create(c Coupon) (Coupon, error) {
	c.Code = NormalizeCode(c.Code)
	var validUntil sql.NullTime
	if c.ValidUntil != nil {
		validUntil = sql.NullTime{Time: *c.ValidUntil, Valid: true}
	}
	var usageLimit sql.NullInt64
	if c.UsageLimit != nil {
		usageLimit = sql.NullInt64{Int64: int64(*c.UsageLimit), Valid: true}
	}

	err := r.db.QueryRow(
		insertCouponQuery,
		c.Code, c.DiscountPercentage, c.Active, c.ValidFrom, validUntil, usageLimit,
		c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return Coupon{}, ErrCodeExists
		}
		return Coupon{}, err
	}
	return c, nil
}

func isUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "duplicate key")
}

func (r *PostgresRepository) Update(id int, c Coupon) (Coupon, error) {
	c.Code = NormalizeCode(c.Code)
	var validUntil sql.NullTime
	if c.ValidUntil != nil {
		validUntil = sql.NullTime{Time: *c.ValidUntil, Valid: true}
	}
	var usageLimit sql.NullInt64
	if c.UsageLimit != nil {
		usageLimit = sql.NullInt64{Int64: int64(*c.UsageLimit), Valid: true}
	}

	res, err := r.db.Exec(
		updateCouponQuery,
		c.Code, c.DiscountPercentage, c.Active, c.ValidFrom, validUntil, usageLimit,
		c.UpdatedAt, id,
	)
	if err != nil {
		return Coupon{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Coupon{}, ErrNotFound
	}
	c.ID = id
	return c, nil
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(deleteCouponQuery, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Redeem(code string) error {
	res, err := r.db.Exec(redeemCouponQuery, NormalizeCode(code))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrExhausted
	}
	return nil
}

func scanCoupon(row interface{ Scan(dest ...any) error }) (Coupon, error) {
	var c Coupon
	var validUntil sql.NullTime
	var usageLimit sql.NullInt64
	var createdAt, updatedAt sql.NullString
	var validFrom time.Time
	if err := row.Scan(&c.ID, &c.Code, &c.DiscountPercentage, &c.Active, &validFrom, &validUntil, &usageLimit, &c.UsedCount, &createdAt, &updatedAt); err != nil {
		return Coupon{}, err
	}
	c.ValidFrom = validFrom
	if validUntil.Valid {
		t := validUntil.Time
		c.ValidUntil = &t
	}
	if usageLimit.Valid {
		n := int(usageLimit.Int64)
		c.UsageLimit = &n
	}
	c.CreatedAt = createdAt.String
	c.UpdatedAt = updatedAt.String
	return c, nil
}
