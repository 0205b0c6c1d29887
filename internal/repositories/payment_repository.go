package repositories

import (
	"database/sql"
	"errors"

	intconfig "yatrasathi/internal/config"
	intdb "yatrasathi/internal/db"
	"yatrasathi/internal/domain"
	"yatrasathi/internal/domain/models"
)

type PaymentRepository struct {
	DB *sql.DB
}

func (r PaymentRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const paymentColumns = `id,
       ticket_request_id,
       COALESCE(user_id, 0),
       amount,
       mode,
       status,
       COALESCE(reference, ''),
       COALESCE(remarks, ''),
       created_at`

func scanPayment(row interface{ Scan(...any) error }) (models.Payment, error) {
	var p models.Payment
	err := row.Scan(
		&p.ID,
		&p.TicketRequestID,
		&p.UserID,
		&p.Amount,
		&p.Mode,
		&p.Status,
		&p.Reference,
		&p.Remarks,
		&p.CreatedAt,
	)
	return p, err
}

// Insert writes one ledger record, optionally inside an enclosing transaction.
func (r PaymentRepository) Insert(q intdb.DBTX, p models.Payment) (models.Payment, error) {
	res, err := q.Exec(`
		INSERT INTO payments
			(ticket_request_id, user_id, amount, mode, status, reference, remarks, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.TicketRequestID,
		nullIfZeroID(p.UserID),
		p.Amount,
		p.Mode,
		p.Status,
		intdb.NullIfEmpty(p.Reference),
		intdb.NullIfEmpty(p.Remarks),
		p.CreatedAt,
	)
	if err != nil {
		return models.Payment{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Payment{}, err
	}
	p.ID = domain.ID(id)
	return p, nil
}

func (r PaymentRepository) GetByID(id domain.ID) (models.Payment, error) {
	return r.getByID(r.db(), id)
}

func (r PaymentRepository) GetByIDTx(q intdb.DBTX, id domain.ID) (models.Payment, error) {
	return r.getByID(q, id)
}

func (r PaymentRepository) getByID(q intdb.DBTX, id domain.ID) (models.Payment, error) {
	p, err := scanPayment(q.QueryRow(`
		SELECT `+paymentColumns+`
		FROM payments
		WHERE id = ? LIMIT 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Payment{}, domain.NotFoundError{Resource: "payment"}
	}
	if err != nil {
		return models.Payment{}, err
	}
	return p, nil
}

// UpdateStatus flips a payment's status. Callers verify existence first; the
// driver reports rows changed rather than rows matched, so a same-status
// rewrite legitimately affects zero rows.
func (r PaymentRepository) UpdateStatus(q intdb.DBTX, id domain.ID, status models.PaymentStatus) error {
	_, err := q.Exec(`UPDATE payments SET status = ? WHERE id = ?`, status, id)
	return err
}

func (r PaymentRepository) ListByTicket(ticketID domain.ID) ([]models.Payment, error) {
	return r.list(`ticket_request_id = ?`, ticketID)
}

func (r PaymentRepository) ListByUser(userID domain.ID) ([]models.Payment, error) {
	return r.list(`user_id = ?`, userID)
}

func (r PaymentRepository) ListAll() ([]models.Payment, error) {
	return r.list(`1 = 1`)
}

func (r PaymentRepository) list(where string, args ...any) ([]models.Payment, error) {
	rows, err := r.db().Query(`
		SELECT `+paymentColumns+`
		FROM payments
		WHERE `+where+`
		ORDER BY id ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return out, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
