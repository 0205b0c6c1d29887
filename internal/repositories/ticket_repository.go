package repositories

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"

	intconfig "yatrasathi/internal/config"
	intdb "yatrasathi/internal/db"
	"yatrasathi/internal/domain"
	"yatrasathi/internal/domain/models"
)

type TicketRequestRepository struct {
	DB *sql.DB
}

func (r TicketRequestRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const ticketColumns = `id,
       customer_id,
       origin,
       destination,
       DATE_FORMAT(travel_date, '%Y-%m-%d'),
       COALESCE(travel_class, ''),
       COALESCE(berth_preference, ''),
       COALESCE(special_requirements, ''),
       passenger_count,
       status,
       COALESCE(approved_ticket_count, 0),
       COALESCE(assigned_pnr, ''),
       payment_amount,
       COALESCE(assigned_employee_id, 0),
       version`

func scanTicket(row interface{ Scan(...any) error }) (models.TicketRequest, error) {
	var t models.TicketRequest
	err := row.Scan(
		&t.ID,
		&t.CustomerID,
		&t.Origin,
		&t.Destination,
		&t.TravelDate,
		&t.TravelClass,
		&t.BerthPreference,
		&t.SpecialRequirements,
		&t.PassengerCount,
		&t.Status,
		&t.ApprovedTicketCount,
		&t.AssignedPnr,
		&t.PaymentAmount,
		&t.AssignedEmployeeID,
		&t.Version,
	)
	return t, err
}

// Create inserts a new request in PENDING state and returns it with its id.
func (r TicketRequestRepository) Create(q intdb.DBTX, t models.TicketRequest) (models.TicketRequest, error) {
	res, err := q.Exec(`
		INSERT INTO ticket_requests
			(customer_id, origin, destination, travel_date, travel_class,
			 berth_preference, special_requirements, passenger_count, status, version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0)`,
		t.CustomerID,
		strings.TrimSpace(t.Origin),
		strings.TrimSpace(t.Destination),
		t.TravelDate,
		intdb.NullIfEmpty(t.TravelClass),
		intdb.NullIfEmpty(t.BerthPreference),
		intdb.NullIfEmpty(t.SpecialRequirements),
		t.PassengerCount,
		t.Status,
	)
	if err != nil {
		return models.TicketRequest{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.TicketRequest{}, err
	}
	t.ID = domain.ID(id)
	return t, nil
}

func (r TicketRequestRepository) GetByID(id domain.ID) (models.TicketRequest, error) {
	return r.getByID(r.db(), id)
}

// GetByIDTx reads the request inside an enclosing transaction so a transition
// sees a consistent row.
func (r TicketRequestRepository) GetByIDTx(q intdb.DBTX, id domain.ID) (models.TicketRequest, error) {
	return r.getByID(q, id)
}

func (r TicketRequestRepository) getByID(q intdb.DBTX, id domain.ID) (models.TicketRequest, error) {
	t, err := scanTicket(q.QueryRow(`
		SELECT `+ticketColumns+`
		FROM ticket_requests
		WHERE id = ? LIMIT 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.TicketRequest{}, domain.NotFoundError{Resource: "ticket request"}
	}
	if err != nil {
		return models.TicketRequest{}, err
	}
	return t, nil
}

// Advance persists a workflow transition guarded by the optimistic version
// counter. A concurrent transition that got there first leaves zero rows
// affected, surfaced as a conflict.
func (r TicketRequestRepository) Advance(q intdb.DBTX, t models.TicketRequest) error {
	res, err := q.Exec(`
		UPDATE ticket_requests
		SET status = ?,
		    approved_ticket_count = ?,
		    assigned_pnr = ?,
		    payment_amount = ?,
		    assigned_employee_id = ?,
		    version = version + 1
		WHERE id = ? AND version = ?`,
		t.Status,
		nullIfZero(t.ApprovedTicketCount),
		intdb.NullIfEmpty(t.AssignedPnr),
		t.PaymentAmount,
		nullIfZeroID(t.AssignedEmployeeID),
		t.ID,
		t.Version,
	)
	if err != nil {
		// the unique PNR index catches a race the pre-check cannot see
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return domain.ConflictError{Resource: "pnr", Msg: "already assigned to another request"}
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ConflictError{Resource: "ticket request", Msg: "modified concurrently"}
	}
	return nil
}

func (r TicketRequestRepository) ListByCustomer(customerID domain.ID) ([]models.TicketRequest, error) {
	return r.list(`customer_id = ?`, customerID)
}

func (r TicketRequestRepository) ListByStatus(status models.TicketStatus) ([]models.TicketRequest, error) {
	return r.list(`status = ?`, status)
}

func (r TicketRequestRepository) ListByTravelDate(date string) ([]models.TicketRequest, error) {
	return r.list(`travel_date = ?`, date)
}

func (r TicketRequestRepository) ListByAssignedEmployee(employeeID domain.ID) ([]models.TicketRequest, error) {
	return r.list(`assigned_employee_id = ?`, employeeID)
}

// Search combines optional destination, status and travel-date filters with
// case-insensitive equality matching.
func (r TicketRequestRepository) Search(destination string, status models.TicketStatus, date string) ([]models.TicketRequest, error) {
	where := []string{"1 = 1"}
	args := []any{}
	if strings.TrimSpace(destination) != "" {
		where = append(where, "LOWER(destination) = LOWER(?)")
		args = append(args, strings.TrimSpace(destination))
	}
	if status != "" {
		where = append(where, "status = ?")
		args = append(args, status)
	}
	if strings.TrimSpace(date) != "" {
		where = append(where, "travel_date = ?")
		args = append(args, strings.TrimSpace(date))
	}
	return r.list(strings.Join(where, " AND "), args...)
}

// CountByStatus backs the dashboard summaries.
func (r TicketRequestRepository) CountByStatus(status models.TicketStatus) (int64, error) {
	var n int64
	err := r.db().QueryRow(`SELECT COUNT(*) FROM ticket_requests WHERE status = ?`, status).Scan(&n)
	return n, err
}

// PnrTakenByOther reports whether another request already holds the PNR.
func (r TicketRequestRepository) PnrTakenByOther(id domain.ID, pnr string) (bool, error) {
	var n int64
	err := r.db().QueryRow(`
		SELECT COUNT(*) FROM ticket_requests
		WHERE assigned_pnr = ? AND id <> ?`, strings.TrimSpace(pnr), id).Scan(&n)
	return n > 0, err
}

func (r TicketRequestRepository) list(where string, args ...any) ([]models.TicketRequest, error) {
	rows, err := r.db().Query(`
		SELECT `+ticketColumns+`
		FROM ticket_requests
		WHERE `+where+`
		ORDER BY id ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.TicketRequest{}
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return out, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func nullIfZero(n int64) any {
	if n == 0 {
		return nil
	}
	return n
}

func nullIfZeroID(id domain.ID) any {
	if id == 0 {
		return nil
	}
	return int64(id)
}
