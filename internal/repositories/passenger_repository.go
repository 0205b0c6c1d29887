package repositories

import (
	"database/sql"
	"strings"

	intconfig "yatrasathi/internal/config"
	intdb "yatrasathi/internal/db"
	"yatrasathi/internal/domain"
	"yatrasathi/internal/domain/models"
)

type PassengerRepository struct {
	DB *sql.DB
}

func (r PassengerRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Insert attaches one passenger to its ticket request.
func (r PassengerRepository) Insert(q intdb.DBTX, p models.Passenger) (models.Passenger, error) {
	res, err := q.Exec(`
		INSERT INTO passengers
			(ticket_request_id, name, age, gender, id_proof_type, id_proof_number)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.TicketRequestID,
		strings.TrimSpace(p.Name),
		p.Age,
		strings.TrimSpace(p.Gender),
		intdb.NullIfEmpty(p.IDProofType),
		intdb.NullIfEmpty(p.IDProofNumber),
	)
	if err != nil {
		return models.Passenger{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Passenger{}, err
	}
	p.ID = domain.ID(id)
	return p, nil
}

func (r PassengerRepository) ListByTicket(ticketID domain.ID) ([]models.Passenger, error) {
	rows, err := r.db().Query(`
		SELECT id,
		       ticket_request_id,
		       name,
		       age,
		       gender,
		       COALESCE(id_proof_type, ''),
		       COALESCE(id_proof_number, '')
		FROM passengers
		WHERE ticket_request_id = ?
		ORDER BY id ASC`, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Passenger{}
	for rows.Next() {
		var p models.Passenger
		if err := rows.Scan(
			&p.ID,
			&p.TicketRequestID,
			&p.Name,
			&p.Age,
			&p.Gender,
			&p.IDProofType,
			&p.IDProofNumber,
		); err != nil {
			return out, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
