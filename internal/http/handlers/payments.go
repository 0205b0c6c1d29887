package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"yatrasathi/internal/domain/models"
	"yatrasathi/internal/http/middleware"
)

type paymentBody struct {
	Amount    decimal.Decimal `json:"amount"`
	Mode      string          `json:"mode"`
	Status    string          `json:"status"`
	Reference string          `json:"reference"`
	Remarks   string          `json:"remarks"`
}

func (b paymentBody) toModel() models.Payment {
	return models.Payment{
		Amount:    b.Amount,
		Mode:      models.PaymentMode(b.Mode),
		Status:    models.PaymentStatus(b.Status),
		Reference: b.Reference,
		Remarks:   b.Remarks,
	}
}

// POST /api/payments/ticket/:id
func AddPayment(c *gin.Context) {
	ticketID, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var body paymentBody
	if !BindJSONOrError(c, &body) {
		return
	}
	saved, err := paymentService(c).Add(middleware.CurrentActor(c), ticketID, body.toModel())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// POST /api/payments/ticket/:id/make-payment
func MakePayment(c *gin.Context) {
	ticketID, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var body paymentBody
	if !BindJSONOrError(c, &body) {
		return
	}
	saved, err := paymentService(c).Make(middleware.CurrentActor(c), ticketID, body.toModel())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// POST /api/payments/:id/complete
func CompletePayment(c *gin.Context) {
	paymentID, ok := ParamID(c, "id")
	if !ok {
		return
	}
	if err := paymentService(c).MarkCompleted(middleware.CurrentActor(c), paymentID); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "completed"})
}

type updatePaymentStatusBody struct {
	Status string `json:"status"`
}

// POST /api/payments/:id/update-status
func UpdatePaymentStatus(c *gin.Context) {
	paymentID, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var body updatePaymentStatusBody
	if !BindJSONOrError(c, &body) {
		return
	}
	saved, err := paymentService(c).UpdateStatus(middleware.CurrentActor(c), paymentID, body.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// GET /api/payments/ticket/:id
func ListPaymentsForTicket(c *gin.Context) {
	ticketID, ok := ParamID(c, "id")
	if !ok {
		return
	}
	list, err := paymentService(c).ListForTicket(middleware.CurrentActor(c), ticketID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/payments/ticket/:id/total
func TotalPaid(c *gin.Context) {
	ticketID, ok := ParamID(c, "id")
	if !ok {
		return
	}
	total, err := paymentService(c).TotalPaid(middleware.CurrentActor(c), ticketID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total})
}

// GET /api/payments/all
func ListAllPayments(c *gin.Context) {
	list, err := paymentService(c).ListAll(middleware.CurrentActor(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/payments/my
func MyPayments(c *gin.Context) {
	list, err := paymentService(c).ListMine(middleware.CurrentActor(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
