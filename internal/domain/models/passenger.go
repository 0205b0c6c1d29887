package models

import (
	"strings"

	"yatrasathi/internal/domain"
)

// Passenger is owned-child data of one ticket request, with no lifecycle of
// its own.
type Passenger struct {
	ID              domain.ID `json:"id"`
	TicketRequestID domain.ID `json:"ticketRequestId"`
	Name            string    `json:"name"`
	Age             int       `json:"age"`
	Gender          string    `json:"gender"`
	IDProofType     string    `json:"idProofType,omitempty"`
	IDProofNumber   string    `json:"idProofNumber,omitempty"`
}

func (p Passenger) ValidateNew() error {
	if strings.TrimSpace(p.Name) == "" {
		return domain.ValidationError{Field: "name", Msg: "must not be empty"}
	}
	if p.Age < 0 {
		return domain.ValidationError{Field: "age", Msg: "must not be negative"}
	}
	if strings.TrimSpace(p.Gender) == "" {
		return domain.ValidationError{Field: "gender", Msg: "must not be empty"}
	}
	return nil
}
