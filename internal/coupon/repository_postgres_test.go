package coupon

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
)

func TestCreateMapsUniqueViolationToCodeExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery(`INSERT INTO coupons`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "coupons_code_key"})

	_, err = repo.Create(Coupon{Code: "BB202510", DiscountPercentage: 10, Active: true, ValidFrom: time.Now()})
	if !errors.Is(err, ErrCodeExists) {
		t.Fatalf("err = %v, want ErrCodeExists", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRedeemZeroRowsMeansExhausted(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec(`UPDATE coupons`).
		WithArgs("BB202510").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Redeem(" bb202510 "); !errors.Is(err, ErrExhausted) {
		t.Fatalf("err = %v, want ErrExhausted", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
