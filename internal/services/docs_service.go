package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"

	"yatrasathi/internal/domain"
	"yatrasathi/internal/domain/models"
	"yatrasathi/internal/repositories"
	"yatrasathi/internal/utils"
)

// DocsService renders PDF documents for issued bookings.
type DocsService struct {
	Tickets    repositories.TicketRequestRepository
	Passengers repositories.PassengerRepository
	Payments   PaymentService
	RequestID  string
	Loader     func(domain.ID) (ticketDocData, error)
}

type ticketDocData struct {
	TicketID      domain.ID
	Origin        string
	Destination   string
	TravelDate    string
	TravelClass   string
	Pnr           string
	Status        models.TicketStatus
	PaymentAmount decimal.Decimal
	TotalPaid     decimal.Decimal
	Passengers    []models.Passenger
}

// GenerateETicket builds the e-ticket PDF. Only available once a PNR has been
// assigned.
func (s DocsService) GenerateETicket(actor domain.Actor, ticketID domain.ID) ([]byte, string, error) {
	data, err := s.loadTicketDocData(actor, ticketID)
	if err != nil {
		return nil, "", err
	}
	if strings.TrimSpace(data.Pnr) == "" {
		return nil, "", domain.ConflictError{Resource: "ticket request", Msg: "no PNR assigned yet"}
	}
	utils.LogEvent(s.RequestID, "docs", "generate_eticket", fmt.Sprintf("ticket_id=%d", ticketID))
	return buildETicketPDF(data)
}

// GenerateReceipt builds a payment receipt PDF for the booking's ledger.
func (s DocsService) GenerateReceipt(actor domain.Actor, ticketID domain.ID) ([]byte, string, error) {
	data, err := s.loadTicketDocData(actor, ticketID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_receipt", fmt.Sprintf("ticket_id=%d", ticketID))
	return buildReceiptPDF(data)
}

func (s DocsService) loadTicketDocData(actor domain.Actor, ticketID domain.ID) (ticketDocData, error) {
	if s.Loader != nil {
		return s.Loader(ticketID)
	}
	t, err := s.Tickets.GetByID(ticketID)
	if err != nil {
		return ticketDocData{}, err
	}
	passengers, err := s.Passengers.ListByTicket(ticketID)
	if err != nil {
		return ticketDocData{}, err
	}
	total, err := s.Payments.TotalPaid(actor, ticketID)
	if err != nil {
		return ticketDocData{}, err
	}
	out := ticketDocData{
		TicketID:    t.ID,
		Origin:      t.Origin,
		Destination: t.Destination,
		TravelDate:  t.TravelDate,
		TravelClass: t.TravelClass,
		Pnr:         t.AssignedPnr,
		Status:      t.Status,
		TotalPaid:   total,
		Passengers:  passengers,
	}
	if t.PaymentAmount.Valid {
		out.PaymentAmount = t.PaymentAmount.Decimal
	}
	return out, nil
}

func buildETicketPDF(d ticketDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking      : #%d", d.TicketID),
		fmt.Sprintf("PNR          : %s", orDash(d.Pnr)),
		fmt.Sprintf("Route        : %s -> %s", orDash(d.Origin), orDash(d.Destination)),
		fmt.Sprintf("Travel date  : %s", orDash(d.TravelDate)),
		fmt.Sprintf("Class        : %s", orDash(d.TravelClass)),
		fmt.Sprintf("Status       : %s", d.Status),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Passengers:")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	if len(d.Passengers) == 0 {
		pdf.Cell(0, 6, "-")
		pdf.Ln(6)
	}
	for i, p := range d.Passengers {
		pdf.Cell(0, 6, fmt.Sprintf("%d) %s, age %d (%s)", i+1, p.Name, p.Age, p.Gender))
		pdf.Ln(6)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please carry a valid ID proof for every passenger during the journey.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ETICKET_%d_%s.pdf", d.TicketID, safeFilenamePart(d.Pnr))
	return buf.Bytes(), filename, nil
}

func buildReceiptPDF(d ticketDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Payment Receipt", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "PAYMENT RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Booking      : #%d", d.TicketID))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Route        : "+orDash(d.Origin)+" -> "+orDash(d.Destination))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Travel date  : "+orDash(d.TravelDate))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Amount due   : "+d.PaymentAmount.StringFixed(2))
	pdf.Ln(7)
	pdf.Cell(0, 8, "Total paid   : "+d.TotalPaid.StringFixed(2))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Total paid covers completed payments only.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("RECEIPT_%d.pdf", d.TicketID)
	return buf.Bytes(), filename, nil
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "ticket"
	}
	var out strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			out.WriteRune(r)
		default:
			out.WriteByte('_')
		}
	}
	return out.String()
}
