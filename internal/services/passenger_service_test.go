package services

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"yatrasathi/internal/domain"
	"yatrasathi/internal/domain/models"
	"yatrasathi/internal/repositories"
)

func newPassengerService(db *sql.DB) PassengerService {
	return PassengerService{
		Repo:    repositories.PassengerRepository{DB: db},
		Tickets: repositories.TicketRequestRepository{DB: db},
		Audit:   AuditService{Repo: repositories.AuditLogRepository{DB: db}, DB: db},
		DB:      db,
	}
}

func TestPassengerAddBatchSingleTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectTicketLookup(mock, 7)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO passengers").
		WithArgs(int64(7), "Ravi", 34, "M", nil, nil).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO passengers").
		WithArgs(int64(7), "Meera", 31, "F", "AADHAAR", "1234-5678").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec("INSERT INTO audit_logs").
		WithArgs("asha@example.com", models.ActionAddPassenger, "TicketRequestId=7, count=2", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	svc := newPassengerService(db)
	out, err := svc.AddBatch(testCustomer, 7, []models.Passenger{
		{Name: "Ravi", Age: 34, Gender: "M"},
		{Name: "Meera", Age: 31, Gender: "F", IDProofType: "AADHAAR", IDProofNumber: "1234-5678"},
	})
	if err != nil {
		t.Fatalf("add batch error: %v", err)
	}
	if len(out) != 2 || out[0].ID != 1 || out[1].ID != 2 {
		t.Fatalf("unexpected result: %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPassengerAddBatchRollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectTicketLookup(mock, 7)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO passengers").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO passengers").
		WillReturnError(errors.New("insert failed"))
	mock.ExpectRollback()

	svc := newPassengerService(db)
	_, err = svc.AddBatch(testCustomer, 7, []models.Passenger{
		{Name: "Ravi", Age: 34, Gender: "M"},
		{Name: "Meera", Age: 31, Gender: "F"},
	})
	if err == nil {
		t.Fatalf("expected error from failed insert")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPassengerAddBatchRejectsEmpty(t *testing.T) {
	svc := newPassengerService(nil)
	_, err := svc.AddBatch(testCustomer, 7, nil)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPassengerAddRejectsStaff(t *testing.T) {
	svc := newPassengerService(nil)
	_, err := svc.Add(testAdmin, 7, models.Passenger{Name: "Ravi", Age: 34, Gender: "M"})
	if !domain.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}
