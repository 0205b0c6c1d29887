package services

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	intconfig "yatrasathi/internal/config"
	intdb "yatrasathi/internal/db"
	"yatrasathi/internal/domain"
	"yatrasathi/internal/domain/models"
	"yatrasathi/internal/repositories"
	"yatrasathi/internal/utils"
)

// TicketService owns the booking lifecycle state machine. Customers only
// originate requests; every forward transition is a staff action, mirroring a
// back-office flow where a human confirms real-world ticket issuance first.
type TicketService struct {
	Repo      repositories.TicketRequestRepository
	Users     repositories.UserRepository
	Audit     AuditService
	DB        *sql.DB
	RequestID string
}

func (s TicketService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

// Create registers a new request in PENDING state under the acting customer.
func (s TicketService) Create(actor domain.Actor, req models.TicketRequest) (models.TicketRequest, error) {
	if err := requireRole(actor, "create ticket request", domain.RoleCustomer); err != nil {
		return models.TicketRequest{}, err
	}
	if err := req.ValidateNew(); err != nil {
		return models.TicketRequest{}, err
	}
	travel, err := utils.ParseDate(req.TravelDate)
	if err != nil {
		return models.TicketRequest{}, domain.ValidationError{Field: "travelDate", Msg: "expected YYYY-MM-DD", Err: err}
	}
	if travel.Before(utils.NowUTC().Truncate(24 * time.Hour)) {
		// advisory only, past dates are accepted
		utils.LogEvent(s.RequestID, "ticket", "create", "travel date is in the past")
	}

	customer, err := s.Users.GetByID(actor.UserID)
	if err != nil {
		return models.TicketRequest{}, err
	}

	req.CustomerID = customer.ID
	req.TravelDate = utils.FormatDate(travel)
	req.Status = models.StatusPending
	if req.PassengerCount == 0 {
		req.PassengerCount = 1
	}

	var saved models.TicketRequest
	err = intdb.WithTx(s.db(), func(tx *sql.Tx) error {
		var err error
		saved, err = s.Repo.Create(tx, req)
		if err != nil {
			return err
		}
		return s.Audit.Record(tx, customer.Email, models.ActionCreateTicketRequest,
			fmt.Sprintf("RequestId=%d", saved.ID))
	})
	if err != nil {
		return models.TicketRequest{}, err
	}
	utils.LogEvent(s.RequestID, "ticket", "create", fmt.Sprintf("id=%d customer=%d", saved.ID, saved.CustomerID))
	return saved, nil
}

func (s TicketService) GetByID(actor domain.Actor, id domain.ID) (models.TicketRequest, error) {
	if err := requireRole(actor, "get ticket request", domain.RoleCustomer, domain.RoleEmployee, domain.RoleAdmin); err != nil {
		return models.TicketRequest{}, err
	}
	return s.Repo.GetByID(id)
}

func (s TicketService) ListMine(actor domain.Actor) ([]models.TicketRequest, error) {
	if err := requireRole(actor, "list own ticket requests", domain.RoleCustomer); err != nil {
		return nil, err
	}
	return s.Repo.ListByCustomer(actor.UserID)
}

func (s TicketService) ListByStatus(actor domain.Actor, status models.TicketStatus) ([]models.TicketRequest, error) {
	if err := requireStaff(actor, "list ticket requests by status"); err != nil {
		return nil, err
	}
	return s.Repo.ListByStatus(status)
}

func (s TicketService) ListByTravelDate(actor domain.Actor, date string) ([]models.TicketRequest, error) {
	if err := requireRole(actor, "list ticket requests by date", domain.RoleCustomer, domain.RoleEmployee, domain.RoleAdmin); err != nil {
		return nil, err
	}
	parsed, err := utils.ParseDate(date)
	if err != nil {
		return nil, domain.ValidationError{Field: "date", Msg: "expected YYYY-MM-DD", Err: err}
	}
	return s.Repo.ListByTravelDate(utils.FormatDate(parsed))
}

// Search combines destination, status and date filters; empty values match all.
func (s TicketService) Search(actor domain.Actor, destination, status, date string) ([]models.TicketRequest, error) {
	if err := requireRole(actor, "search ticket requests", domain.RoleCustomer, domain.RoleEmployee, domain.RoleAdmin); err != nil {
		return nil, err
	}
	var st models.TicketStatus
	if strings.TrimSpace(status) != "" {
		parsed, ok := models.ParseTicketStatus(status)
		if !ok {
			return nil, domain.ValidationError{Field: "status", Msg: "unknown status"}
		}
		st = parsed
	}
	if strings.TrimSpace(date) != "" {
		parsed, err := utils.ParseDate(date)
		if err != nil {
			return nil, domain.ValidationError{Field: "date", Msg: "expected YYYY-MM-DD", Err: err}
		}
		date = utils.FormatDate(parsed)
	}
	return s.Repo.Search(destination, st, date)
}

func (s TicketService) ListAssigned(actor domain.Actor, employeeID domain.ID) ([]models.TicketRequest, error) {
	if err := requireStaff(actor, "list assigned ticket requests"); err != nil {
		return nil, err
	}
	if _, err := s.Users.GetByID(employeeID); err != nil {
		return nil, err
	}
	return s.Repo.ListByAssignedEmployee(employeeID)
}

// Approve moves PENDING -> APPROVED and records the approved seat count. The
// count is not checked against passengerCount.
func (s TicketService) Approve(actor domain.Actor, id domain.ID, count int64) (models.TicketRequest, error) {
	if err := requireStaff(actor, "approve ticket request"); err != nil {
		return models.TicketRequest{}, err
	}
	if count <= 0 {
		return models.TicketRequest{}, domain.ValidationError{Field: "count", Msg: "must be positive"}
	}
	return s.transition(actor, "approve ticket request", id, models.StatusApproved,
		func(t *models.TicketRequest) error {
			t.ApprovedTicketCount = count
			return nil
		},
		models.ActionApproveTicketRequest,
		func(t models.TicketRequest) string {
			return fmt.Sprintf("RequestId=%d, count=%d", t.ID, count)
		})
}

// CreateTicket moves APPROVED -> TICKET_CREATED, assigning the externally
// reserved PNR and the payment amount snapshot.
func (s TicketService) CreateTicket(actor domain.Actor, id domain.ID, pnr string, amount decimal.Decimal) (models.TicketRequest, error) {
	if err := requireStaff(actor, "create ticket"); err != nil {
		return models.TicketRequest{}, err
	}
	pnr = strings.TrimSpace(pnr)
	if pnr == "" {
		return models.TicketRequest{}, domain.ValidationError{Field: "pnr", Msg: "must not be empty"}
	}
	if amount.IsNegative() {
		return models.TicketRequest{}, domain.ValidationError{Field: "paymentAmount", Msg: "must not be negative"}
	}
	taken, err := s.Repo.PnrTakenByOther(id, pnr)
	if err != nil {
		return models.TicketRequest{}, err
	}
	if taken {
		return models.TicketRequest{}, domain.ConflictError{Resource: "pnr", Msg: "already assigned to another request"}
	}
	return s.transition(actor, "create ticket", id, models.StatusTicketCreated,
		func(t *models.TicketRequest) error {
			t.AssignedPnr = pnr
			t.PaymentAmount = decimal.NullDecimal{Decimal: amount, Valid: true}
			return nil
		},
		models.ActionCreateTicket,
		func(t models.TicketRequest) string {
			return fmt.Sprintf("RequestId=%d, PNR=%s, Amount=%s", t.ID, pnr, amount.String())
		})
}

// Confirm moves TICKET_CREATED -> CONFIRMED. Confirming an already confirmed
// request stays a permitted no-op.
func (s TicketService) Confirm(actor domain.Actor, id domain.ID) (models.TicketRequest, error) {
	return s.transition(actor, "confirm ticket request", id, models.StatusConfirmed,
		func(t *models.TicketRequest) error { return nil },
		models.ActionConfirmTicketRequest,
		func(t models.TicketRequest) string {
			return fmt.Sprintf("RequestId=%d", t.ID)
		})
}

// Assign sets the handling staff member without touching status; it may be
// called in any state.
func (s TicketService) Assign(actor domain.Actor, id, employeeID domain.ID) (models.TicketRequest, error) {
	if err := requireStaff(actor, "assign ticket request"); err != nil {
		return models.TicketRequest{}, err
	}
	employee, err := s.Users.GetByID(employeeID)
	if err != nil {
		return models.TicketRequest{}, err
	}
	if employee.Role != domain.RoleEmployee && employee.Role != domain.RoleAdmin {
		return models.TicketRequest{}, domain.ValidationError{Field: "employeeId", Msg: "not a staff member"}
	}

	var out models.TicketRequest
	err = intdb.WithTx(s.db(), func(tx *sql.Tx) error {
		t, err := s.Repo.GetByIDTx(tx, id)
		if err != nil {
			return err
		}
		t.AssignedEmployeeID = employee.ID
		if err := s.Repo.Advance(tx, t); err != nil {
			return err
		}
		t.Version++
		out = t
		return s.Audit.Record(tx, actor.AuditName(), models.ActionAssignTicketRequest,
			fmt.Sprintf("RequestId=%d, EmployeeId=%d", t.ID, employee.ID))
	})
	if err != nil {
		return models.TicketRequest{}, err
	}
	return out, nil
}

// transition runs one guarded state change as a transactional
// read-modify-write. The version counter in Advance makes sure at most one of
// two racing staff actions wins; the loser sees a conflict.
func (s TicketService) transition(
	actor domain.Actor,
	op string,
	id domain.ID,
	target models.TicketStatus,
	mutate func(*models.TicketRequest) error,
	action string,
	details func(models.TicketRequest) string,
) (models.TicketRequest, error) {
	if err := requireStaff(actor, op); err != nil {
		return models.TicketRequest{}, err
	}

	var out models.TicketRequest
	err := intdb.WithTx(s.db(), func(tx *sql.Tx) error {
		t, err := s.Repo.GetByIDTx(tx, id)
		if err != nil {
			return err
		}
		if !t.Status.CanAdvanceTo(target) {
			return domain.ConflictError{
				Resource: "ticket request",
				Msg:      fmt.Sprintf("cannot move from %s to %s", t.Status, target),
			}
		}
		if err := mutate(&t); err != nil {
			return err
		}
		t.Status = target
		if err := s.Repo.Advance(tx, t); err != nil {
			return err
		}
		t.Version++
		out = t
		return s.Audit.Record(tx, actor.AuditName(), action, details(t))
	})
	if err != nil {
		return models.TicketRequest{}, err
	}
	utils.LogEvent(s.RequestID, "ticket", action, fmt.Sprintf("id=%d status=%s", out.ID, out.Status))
	return out, nil
}
