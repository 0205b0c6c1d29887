package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"yatrasathi/internal/domain"
)

type PaymentMode string

const (
	ModeUPI        PaymentMode = "UPI"
	ModeCash       PaymentMode = "CASH"
	ModeCheque     PaymentMode = "CHEQUE"
	ModeNetBanking PaymentMode = "NET_BANKING"
)

func ParsePaymentMode(s string) (PaymentMode, bool) {
	switch PaymentMode(strings.ToUpper(strings.TrimSpace(s))) {
	case ModeUPI:
		return ModeUPI, true
	case ModeCash:
		return ModeCash, true
	case ModeCheque:
		return ModeCheque, true
	case ModeNetBanking:
		return ModeNetBanking, true
	}
	return "", false
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentPartial   PaymentStatus = "PARTIAL"
)

func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch PaymentStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case PaymentPending:
		return PaymentPending, true
	case PaymentCompleted:
		return PaymentCompleted, true
	case PaymentFailed:
		return PaymentFailed, true
	case PaymentPartial:
		return PaymentPartial, true
	}
	return "", false
}

// Payment is one ledger record against a ticket request. Multiple payments may
// exist per booking; the ledger total is the sum of COMPLETED amounts only.
type Payment struct {
	ID              domain.ID       `json:"id"`
	TicketRequestID domain.ID       `json:"ticketRequestId"`
	UserID          domain.ID       `json:"userId,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Mode            PaymentMode     `json:"mode"`
	Status          PaymentStatus   `json:"status"`
	Reference       string          `json:"reference,omitempty"`
	Remarks         string          `json:"remarks,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

func (p Payment) ValidateNew() error {
	if !p.Amount.IsPositive() {
		return domain.ValidationError{Field: "amount", Msg: "must be positive"}
	}
	if _, ok := ParsePaymentMode(string(p.Mode)); !ok {
		return domain.ValidationError{Field: "mode", Msg: "unknown payment mode"}
	}
	return nil
}
