package services

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	intconfig "yatrasathi/internal/config"
	intdb "yatrasathi/internal/db"
	"yatrasathi/internal/domain"
	"yatrasathi/internal/domain/models"
	"yatrasathi/internal/repositories"
	"yatrasathi/internal/utils"
)

// PaymentService keeps the payment ledger. Payments never mutate booking
// status; advancing the workflow is a separate staff action.
type PaymentService struct {
	Repo      repositories.PaymentRepository
	Tickets   repositories.TicketRequestRepository
	Audit     AuditService
	DB        *sql.DB
	RequestID string
}

func (s PaymentService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

// Add records a payment collected by staff against a booking.
func (s PaymentService) Add(actor domain.Actor, ticketID domain.ID, p models.Payment) (models.Payment, error) {
	if err := requireStaff(actor, "add payment"); err != nil {
		return models.Payment{}, err
	}
	if err := p.ValidateNew(); err != nil {
		return models.Payment{}, err
	}
	if p.Status == "" {
		p.Status = models.PaymentPending
	} else if _, ok := models.ParsePaymentStatus(string(p.Status)); !ok {
		return models.Payment{}, domain.ValidationError{Field: "status", Msg: "unknown payment status"}
	}
	ticket, err := s.Tickets.GetByID(ticketID)
	if err != nil {
		return models.Payment{}, err
	}
	p.TicketRequestID = ticket.ID
	p.CreatedAt = utils.NowUTC()

	var saved models.Payment
	err = intdb.WithTx(s.db(), func(tx *sql.Tx) error {
		var err error
		saved, err = s.Repo.Insert(tx, p)
		if err != nil {
			return err
		}
		return s.Audit.Record(tx, actor.AuditName(), models.ActionAddPayment,
			fmt.Sprintf("TicketRequestId=%d, PaymentId=%d", ticketID, saved.ID))
	})
	if err != nil {
		return models.Payment{}, err
	}
	return saved, nil
}

// Make records a customer-initiated payment. Status is forced to PENDING
// regardless of the caller-supplied value.
func (s PaymentService) Make(actor domain.Actor, ticketID domain.ID, p models.Payment) (models.Payment, error) {
	if err := requireRole(actor, "make payment", domain.RoleCustomer); err != nil {
		return models.Payment{}, err
	}
	if err := p.ValidateNew(); err != nil {
		return models.Payment{}, err
	}
	ticket, err := s.Tickets.GetByID(ticketID)
	if err != nil {
		return models.Payment{}, err
	}
	p.TicketRequestID = ticket.ID
	p.UserID = actor.UserID
	p.Status = models.PaymentPending
	p.CreatedAt = utils.NowUTC()

	var saved models.Payment
	err = intdb.WithTx(s.db(), func(tx *sql.Tx) error {
		var err error
		saved, err = s.Repo.Insert(tx, p)
		if err != nil {
			return err
		}
		return s.Audit.Record(tx, actor.AuditName(), models.ActionMakePayment,
			fmt.Sprintf("TicketRequestId=%d, PaymentId=%d", ticketID, saved.ID))
	})
	if err != nil {
		return models.Payment{}, err
	}
	return saved, nil
}

// MarkCompleted is an admin-only shortcut forcing COMPLETED.
func (s PaymentService) MarkCompleted(actor domain.Actor, paymentID domain.ID) error {
	if err := requireRole(actor, "complete payment", domain.RoleAdmin); err != nil {
		return err
	}
	return intdb.WithTx(s.db(), func(tx *sql.Tx) error {
		if _, err := s.Repo.GetByIDTx(tx, paymentID); err != nil {
			return err
		}
		if err := s.Repo.UpdateStatus(tx, paymentID, models.PaymentCompleted); err != nil {
			return err
		}
		return s.Audit.Record(tx, actor.AuditName(), models.ActionCompletePayment,
			fmt.Sprintf("PaymentId=%d", paymentID))
	})
}

// UpdateStatus sets an explicit status on a payment.
func (s PaymentService) UpdateStatus(actor domain.Actor, paymentID domain.ID, status string) (models.Payment, error) {
	if err := requireStaff(actor, "update payment status"); err != nil {
		return models.Payment{}, err
	}
	parsed, ok := models.ParsePaymentStatus(status)
	if !ok {
		return models.Payment{}, domain.ValidationError{Field: "status", Msg: "unknown payment status"}
	}

	var out models.Payment
	err := intdb.WithTx(s.db(), func(tx *sql.Tx) error {
		p, err := s.Repo.GetByIDTx(tx, paymentID)
		if err != nil {
			return err
		}
		if err := s.Repo.UpdateStatus(tx, paymentID, parsed); err != nil {
			return err
		}
		p.Status = parsed
		out = p
		return s.Audit.Record(tx, actor.AuditName(), models.ActionUpdatePaymentStatus,
			fmt.Sprintf("PaymentId=%d, Status=%s", paymentID, parsed))
	})
	if err != nil {
		return models.Payment{}, err
	}
	return out, nil
}

// TotalPaid sums COMPLETED payment amounts for a booking with exact decimal
// arithmetic. An empty ledger legitimately totals zero, not an error.
func (s PaymentService) TotalPaid(actor domain.Actor, ticketID domain.ID) (decimal.Decimal, error) {
	if err := requireRole(actor, "total paid", domain.RoleCustomer, domain.RoleEmployee, domain.RoleAdmin); err != nil {
		return decimal.Zero, err
	}
	payments, err := s.ListForTicket(actor, ticketID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, p := range payments {
		if p.Status == models.PaymentCompleted {
			total = total.Add(p.Amount)
		}
	}
	return total, nil
}

func (s PaymentService) ListForTicket(actor domain.Actor, ticketID domain.ID) ([]models.Payment, error) {
	if err := requireRole(actor, "list payments", domain.RoleCustomer, domain.RoleEmployee, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if _, err := s.Tickets.GetByID(ticketID); err != nil {
		return nil, err
	}
	return s.Repo.ListByTicket(ticketID)
}

func (s PaymentService) ListAll(actor domain.Actor) ([]models.Payment, error) {
	if err := requireStaff(actor, "list all payments"); err != nil {
		return nil, err
	}
	return s.Repo.ListAll()
}

func (s PaymentService) ListMine(actor domain.Actor) ([]models.Payment, error) {
	if err := requireRole(actor, "list own payments", domain.RoleCustomer); err != nil {
		return nil, err
	}
	return s.Repo.ListByUser(actor.UserID)
}
