package services

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"

	"yatrasathi/internal/domain"
	"yatrasathi/internal/domain/models"
	"yatrasathi/internal/repositories"
)

var ticketTestColumns = []string{
	"id", "customer_id", "origin", "destination", "travel_date",
	"travel_class", "berth_preference", "special_requirements",
	"passenger_count", "status", "approved_ticket_count", "assigned_pnr",
	"payment_amount", "assigned_employee_id", "version",
}

var (
	testAdmin    = domain.Actor{UserID: 1, Email: "admin@example.com", Role: domain.RoleAdmin}
	testEmployee = domain.Actor{UserID: 2, Email: "emp@example.com", Role: domain.RoleEmployee}
	testCustomer = domain.Actor{UserID: 3, Email: "asha@example.com", Role: domain.RoleCustomer}
)

func newTicketService(db *sql.DB) TicketService {
	return TicketService{
		Repo:  repositories.TicketRequestRepository{DB: db},
		Users: repositories.UserRepository{DB: db},
		Audit: AuditService{Repo: repositories.AuditLogRepository{DB: db}, DB: db},
		DB:    db,
	}
}

func TestTicketCreateWritesRequestAndAudit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone", "role", "active"}).
			AddRow(3, "Asha", "asha@example.com", "", "CUSTOMER", true))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO ticket_requests").
		WithArgs(int64(3), "Pune", "Delhi", "2027-01-01", nil, nil, nil, 2, "PENDING").
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectExec("INSERT INTO audit_logs").
		WithArgs("asha@example.com", models.ActionCreateTicketRequest, "RequestId=11", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	svc := newTicketService(db)
	saved, err := svc.Create(testCustomer, models.TicketRequest{
		Origin:         "Pune",
		Destination:    "Delhi",
		TravelDate:     "2027-01-01",
		PassengerCount: 2,
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if saved.ID != 11 || saved.Status != models.StatusPending || saved.CustomerID != 3 {
		t.Fatalf("unexpected saved request: %+v", saved)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTicketCreateRejectsStaff(t *testing.T) {
	svc := newTicketService(nil)
	_, err := svc.Create(testEmployee, models.TicketRequest{
		Origin:      "Pune",
		Destination: "Delhi",
		TravelDate:  "2027-01-01",
	})
	if !domain.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestTicketApproveTransition(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM ticket_requests").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(ticketTestColumns).
			AddRow(7, 3, "Pune", "Delhi", "2027-01-01", "", "", "", 2,
				"PENDING", 0, "", nil, 0, 0))
	mock.ExpectExec("UPDATE ticket_requests").
		WithArgs("APPROVED", int64(2), nil, nil, nil, int64(7), int64(0)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO audit_logs").
		WithArgs("admin@example.com", models.ActionApproveTicketRequest, "RequestId=7, count=2", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	svc := newTicketService(db)
	out, err := svc.Approve(testAdmin, 7, 2)
	if err != nil {
		t.Fatalf("approve error: %v", err)
	}
	if out.Status != models.StatusApproved || out.ApprovedTicketCount != 2 || out.Version != 1 {
		t.Fatalf("unexpected result: %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTicketApproveRejectsNonPositiveCount(t *testing.T) {
	svc := newTicketService(nil)
	_, err := svc.Approve(testAdmin, 7, 0)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTicketApproveRejectsCustomer(t *testing.T) {
	svc := newTicketService(nil)
	// role is checked before the count, so even a bad count stays unauthorized
	_, err := svc.Approve(testCustomer, 7, 0)
	if !domain.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestTicketCreateTicketRejectsCustomerWithoutLookup(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	svc := newTicketService(db)
	_, err = svc.CreateTicket(testCustomer, 7, "AB12", decimal.NewFromInt(100))
	if !domain.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	// no expectations registered: any pnr lookup would have failed the exec
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected statements ran: %v", err)
	}
}

func TestTicketConfirmSkippingStatesConflicts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM ticket_requests").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(ticketTestColumns).
			AddRow(7, 3, "Pune", "Delhi", "2027-01-01", "", "", "", 2,
				"PENDING", 0, "", nil, 0, 0))
	mock.ExpectRollback()

	svc := newTicketService(db)
	_, err = svc.Confirm(testEmployee, 7)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict skipping states, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTicketConfirmTwiceIsPermittedNoOp(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM ticket_requests").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(ticketTestColumns).
			AddRow(7, 3, "Pune", "Delhi", "2027-01-01", "", "", "", 2,
				"CONFIRMED", 2, "AB12", "120.00", 0, 3))
	mock.ExpectExec("UPDATE ticket_requests").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO audit_logs").
		WithArgs("emp@example.com", models.ActionConfirmTicketRequest, "RequestId=7", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	svc := newTicketService(db)
	out, err := svc.Confirm(testEmployee, 7)
	if err != nil {
		t.Fatalf("re-confirm error: %v", err)
	}
	if out.Status != models.StatusConfirmed {
		t.Fatalf("unexpected status: %s", out.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTicketCreateTicketAssignsPnr(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("AB12", int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM ticket_requests").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(ticketTestColumns).
			AddRow(7, 3, "Pune", "Delhi", "2027-01-01", "", "", "", 2,
				"APPROVED", 2, "", nil, 0, 1))
	mock.ExpectExec("UPDATE ticket_requests").
		WithArgs("TICKET_CREATED", int64(2), "AB12", "120.5", nil, int64(7), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO audit_logs").
		WithArgs("admin@example.com", models.ActionCreateTicket, "RequestId=7, PNR=AB12, Amount=120.5", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	svc := newTicketService(db)
	out, err := svc.CreateTicket(testAdmin, 7, "AB12", decimal.RequireFromString("120.5"))
	if err != nil {
		t.Fatalf("create ticket error: %v", err)
	}
	if out.AssignedPnr != "AB12" || !out.PaymentAmount.Valid || out.Status != models.StatusTicketCreated {
		t.Fatalf("unexpected result: %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTicketCreateTicketRejectsDuplicatePnr(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("AB12", int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))

	svc := newTicketService(db)
	_, err = svc.CreateTicket(testAdmin, 7, "AB12", decimal.NewFromInt(100))
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict on duplicate pnr, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTicketAssignRequiresStaffTarget(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone", "role", "active"}).
			AddRow(3, "Asha", "asha@example.com", "", "CUSTOMER", true))

	svc := newTicketService(db)
	_, err = svc.Assign(testAdmin, 7, 3)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
