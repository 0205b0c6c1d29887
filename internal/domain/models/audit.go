package models

import (
	"time"

	"yatrasathi/internal/domain"
)

// Audit action tags, one per state-changing operation.
const (
	ActionCreateTicketRequest  = "CREATE_TICKET_REQUEST"
	ActionApproveTicketRequest = "APPROVE_TICKET_REQUEST"
	ActionCreateTicket         = "CREATE_TICKET"
	ActionConfirmTicketRequest = "CONFIRM_TICKET_REQUEST"
	ActionAssignTicketRequest  = "ASSIGN_TICKET_REQUEST"
	ActionAddPayment           = "ADD_PAYMENT"
	ActionMakePayment          = "MAKE_PAYMENT"
	ActionCompletePayment      = "COMPLETE_PAYMENT"
	ActionUpdatePaymentStatus  = "UPDATE_PAYMENT_STATUS"
	ActionAddPassenger         = "ADD_PASSENGER"
)

// AuditLog is an append-only record of a state-changing action. Entries are
// never mutated or deleted.
type AuditLog struct {
	ID        domain.ID `json:"id"`
	Actor     string    `json:"actor"` // email or "system"
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"createdAt"`
}
