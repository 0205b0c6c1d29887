package repositories

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"yatrasathi/internal/domain"
	"yatrasathi/internal/domain/models"
)

var paymentTestColumns = []string{
	"id", "ticket_request_id", "user_id", "amount", "mode", "status",
	"reference", "remarks", "created_at",
}

func TestPaymentUpdateStatusSameValueIsNoOp(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// the driver reports zero rows changed when the status already matches
	mock.ExpectExec("UPDATE payments").
		WithArgs("COMPLETED", int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := PaymentRepository{DB: db}
	if err := repo.UpdateStatus(db, 9, models.PaymentCompleted); err != nil {
		t.Fatalf("expected no-op rewrite to succeed, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPaymentListByTicket(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(paymentTestColumns).
		AddRow(1, 7, 3, "100.50", "UPI", "COMPLETED", "TXN-1", "", created).
		AddRow(2, 7, 3, "49.50", "CASH", "PENDING", "", "", created)
	mock.ExpectQuery("SELECT (.+) FROM payments").
		WithArgs(int64(7)).
		WillReturnRows(rows)

	repo := PaymentRepository{DB: db}
	out, err := repo.ListByTicket(7)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 payments, got %d", len(out))
	}
	if out[0].Amount.String() != "100.5" || out[0].Status != models.PaymentCompleted {
		t.Fatalf("unexpected first payment: %+v", out[0])
	}
	if out[1].Mode != models.ModeCash {
		t.Fatalf("unexpected second payment: %+v", out[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPaymentGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM payments").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(paymentTestColumns))

	repo := PaymentRepository{DB: db}
	_, err = repo.GetByID(99)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
