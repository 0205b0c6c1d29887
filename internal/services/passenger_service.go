package services

import (
	"database/sql"
	"fmt"

	intconfig "yatrasathi/internal/config"
	intdb "yatrasathi/internal/db"
	"yatrasathi/internal/domain"
	"yatrasathi/internal/domain/models"
	"yatrasathi/internal/repositories"
)

// PassengerService manages the roster attached to one booking. Passengers are
// owned-child data with no lifecycle of their own.
type PassengerService struct {
	Repo      repositories.PassengerRepository
	Tickets   repositories.TicketRequestRepository
	Audit     AuditService
	DB        *sql.DB
	RequestID string
}

func (s PassengerService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s PassengerService) ListForTicket(actor domain.Actor, ticketID domain.ID) ([]models.Passenger, error) {
	if err := requireRole(actor, "list passengers", domain.RoleCustomer, domain.RoleEmployee, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if _, err := s.Tickets.GetByID(ticketID); err != nil {
		return nil, err
	}
	return s.Repo.ListByTicket(ticketID)
}

// Add attaches one passenger to an existing booking.
func (s PassengerService) Add(actor domain.Actor, ticketID domain.ID, p models.Passenger) (models.Passenger, error) {
	if err := requireRole(actor, "add passenger", domain.RoleCustomer); err != nil {
		return models.Passenger{}, err
	}
	if err := p.ValidateNew(); err != nil {
		return models.Passenger{}, err
	}
	ticket, err := s.Tickets.GetByID(ticketID)
	if err != nil {
		return models.Passenger{}, err
	}
	p.TicketRequestID = ticket.ID

	var saved models.Passenger
	err = intdb.WithTx(s.db(), func(tx *sql.Tx) error {
		var err error
		saved, err = s.Repo.Insert(tx, p)
		if err != nil {
			return err
		}
		return s.Audit.Record(tx, actor.AuditName(), models.ActionAddPassenger,
			fmt.Sprintf("TicketRequestId=%d, count=1", ticketID))
	})
	if err != nil {
		return models.Passenger{}, err
	}
	return saved, nil
}

// AddBatch attaches all passengers in one transaction, all-or-nothing. No
// cross-passenger validation is performed (in particular no check against the
// request's passengerCount).
func (s PassengerService) AddBatch(actor domain.Actor, ticketID domain.ID, ps []models.Passenger) ([]models.Passenger, error) {
	if err := requireRole(actor, "add passengers", domain.RoleCustomer); err != nil {
		return nil, err
	}
	if len(ps) == 0 {
		return nil, domain.ValidationError{Field: "passengers", Msg: "must not be empty"}
	}
	for _, p := range ps {
		if err := p.ValidateNew(); err != nil {
			return nil, err
		}
	}
	ticket, err := s.Tickets.GetByID(ticketID)
	if err != nil {
		return nil, err
	}

	out := make([]models.Passenger, 0, len(ps))
	err = intdb.WithTx(s.db(), func(tx *sql.Tx) error {
		for _, p := range ps {
			p.TicketRequestID = ticket.ID
			saved, err := s.Repo.Insert(tx, p)
			if err != nil {
				return err
			}
			out = append(out, saved)
		}
		return s.Audit.Record(tx, actor.AuditName(), models.ActionAddPassenger,
			fmt.Sprintf("TicketRequestId=%d, count=%d", ticketID, len(ps)))
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
