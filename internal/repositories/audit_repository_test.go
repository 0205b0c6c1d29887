package repositories

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestAuditListRecentDefaultLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "actor", "action", "details", "created_at"}).
		AddRow(2, "admin@example.com", "APPROVE_TICKET_REQUEST", "RequestId=7, count=2", created).
		AddRow(1, "asha@example.com", "CREATE_TICKET_REQUEST", "RequestId=7", created)
	mock.ExpectQuery("SELECT (.+) FROM audit_logs").
		WithArgs(100).
		WillReturnRows(rows)

	repo := AuditLogRepository{DB: db}
	out, err := repo.ListRecent(0)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(out))
	}
	if out[0].Action != "APPROVE_TICKET_REQUEST" {
		t.Fatalf("expected newest first, got %+v", out[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
