package order

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/brushandbeyond/gallery-backend/internal/coupon"
	"github.com/brushandbeyond/gallery-backend/internal/payment"
)

func testOrder() Order {
	return Order{
		Reference: "ref-1",
		UserID:    7,
		Items: []ItemSnapshot{
			{ArtworkID: 1, Title: "Monsoon Study", Price: 1250, Quantity: 2},
		},
		Subtotal:       2500,
		DiscountAmount: 250,
		CouponCode:     "BB202510",
		Total:          2250,
		PaymentMethod:  "upi",
		PaymentStatus:  "confirmed",
		Status:         StatusProcessing,
		CustomerName:   "Asha",
		CustomerEmail:  "asha@example.com",
		CreatedAt:      "2026-05-10T12:00:00Z",
		UpdatedAt:      "2026-05-10T12:00:00Z",
	}
}

func testPayment() payment.Payment {
	return payment.Payment{
		CustomerID:  7,
		Amount:      2250,
		ReferenceID: "UPI12345",
		Status:      payment.StatusSuccess,
		CreatedAt:   "2026-05-10T12:00:00Z",
	}
}

func TestCreateCommitsOrderPaymentAndCoupon(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE artworks").WithArgs(2, 1).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("INSERT INTO orders").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectQuery("INSERT INTO payments").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21))
	mock.ExpectExec("UPDATE coupons").WithArgs("BB202510").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ord, pay, err := repo.Create(testOrder(), testPayment(), true)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if ord.ID != 11 {
		t.Fatalf("order id = %d, want 11", ord.ID)
	}
	if pay.ID != 21 || pay.OrderID != 11 {
		t.Fatalf("payment = %+v", pay)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateRollsBackOnStockGuard(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	// zero rows affected means the guarded decrement found too little stock
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE artworks").WithArgs(2, 1).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, _, err = repo.Create(testOrder(), testPayment(), true)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateRollsBackOnExhaustedCoupon(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE artworks").WithArgs(2, 1).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("INSERT INTO orders").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectQuery("INSERT INTO payments").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21))
	// the conditional increment touches no rows once the cap is hit
	mock.ExpectExec("UPDATE coupons").WithArgs("BB202510").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, _, err = repo.Create(testOrder(), testPayment(), true)
	if !errors.Is(err, coupon.ErrExhausted) {
		t.Fatalf("err = %v, want coupon.ErrExhausted", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdateStatusNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("UPDATE orders").WithArgs(99, StatusShipped, sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(0, 0))

	if _, err := repo.UpdateStatus(99, StatusShipped, "2026-05-10T12:00:00Z"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
