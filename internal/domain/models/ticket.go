package models

import (
	"strings"

	"github.com/shopspring/decimal"

	"yatrasathi/internal/domain"
)

// TicketStatus is the booking lifecycle state. It only ever advances forward
// through PENDING -> APPROVED -> TICKET_CREATED -> CONFIRMED.
type TicketStatus string

const (
	StatusPending       TicketStatus = "PENDING"
	StatusApproved      TicketStatus = "APPROVED"
	StatusTicketCreated TicketStatus = "TICKET_CREATED"
	StatusConfirmed     TicketStatus = "CONFIRMED"
)

func ParseTicketStatus(s string) (TicketStatus, bool) {
	switch TicketStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, true
	case StatusApproved:
		return StatusApproved, true
	case StatusTicketCreated:
		return StatusTicketCreated, true
	case StatusConfirmed:
		return StatusConfirmed, true
	}
	return "", false
}

// rank orders statuses for the forward-only guard.
func (s TicketStatus) rank() int {
	switch s {
	case StatusPending:
		return 0
	case StatusApproved:
		return 1
	case StatusTicketCreated:
		return 2
	case StatusConfirmed:
		return 3
	}
	return -1
}

// CanAdvanceTo allows moving to the next status or re-entering the current one.
// Re-invoking a transition stays a no-op in effect instead of regressing state.
func (s TicketStatus) CanAdvanceTo(next TicketStatus) bool {
	cur, tgt := s.rank(), next.rank()
	if cur < 0 || tgt < 0 {
		return false
	}
	return tgt == cur || tgt == cur+1
}

type TravelClass string

const (
	ClassSleeper       TravelClass = "SLEEPER"
	ClassThreeA        TravelClass = "THREE_A"
	ClassTwoA          TravelClass = "TWO_A"
	ClassOneA          TravelClass = "ONE_A"
	ClassChairCar      TravelClass = "CHAIR_CAR"
	ClassSecondSitting TravelClass = "SECOND_SITTING"
)

type BerthPreference string

const (
	BerthUpper     BerthPreference = "UPPER"
	BerthMiddle    BerthPreference = "MIDDLE"
	BerthLower     BerthPreference = "LOWER"
	BerthSideUpper BerthPreference = "SIDE_UPPER"
	BerthSideLower BerthPreference = "SIDE_LOWER"
	BerthNone      BerthPreference = "NONE"
)

// TicketRequest is a customer's travel-ticket request tracked through the
// staff-driven workflow.
type TicketRequest struct {
	ID                  domain.ID           `json:"id"`
	CustomerID          domain.ID           `json:"customerId"`
	Origin              string              `json:"origin"`
	Destination         string              `json:"destination"`
	TravelDate          string              `json:"travelDate"` // YYYY-MM-DD
	TravelClass         string              `json:"travelClass,omitempty"`
	BerthPreference     string              `json:"berthPreference,omitempty"`
	SpecialRequirements string              `json:"specialRequirements,omitempty"`
	PassengerCount      int                 `json:"passengerCount"`
	Status              TicketStatus        `json:"status"`
	ApprovedTicketCount int64               `json:"approvedTicketCount,omitempty"`
	AssignedPnr         string              `json:"assignedPnr,omitempty"`
	PaymentAmount       decimal.NullDecimal `json:"paymentAmount,omitempty"`
	AssignedEmployeeID  domain.ID           `json:"assignedEmployeeId,omitempty"`
	Version             int64               `json:"-"`
}

// ValidateNew checks the required fields for creation. The travel date should be
// present or future, but pastness is advisory and not rejected here.
func (t TicketRequest) ValidateNew() error {
	if strings.TrimSpace(t.Origin) == "" {
		return domain.ValidationError{Field: "origin", Msg: "must not be empty"}
	}
	if strings.TrimSpace(t.Destination) == "" {
		return domain.ValidationError{Field: "destination", Msg: "must not be empty"}
	}
	if strings.TrimSpace(t.TravelDate) == "" {
		return domain.ValidationError{Field: "travelDate", Msg: "must not be empty"}
	}
	if t.PassengerCount < 0 {
		return domain.ValidationError{Field: "passengerCount", Msg: "must not be negative"}
	}
	return nil
}
