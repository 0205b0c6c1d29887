package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yatrasathi/internal/http/middleware"
)

// GET /api/tickets/:id/e-ticket
func GetETicketPDF(c *gin.Context) {
	ticketID, ok := ParamID(c, "id")
	if !ok {
		return
	}
	pdf, filename, err := docsService(c).GenerateETicket(middleware.CurrentActor(c), ticketID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// GET /api/tickets/:id/receipt
func GetReceiptPDF(c *gin.Context) {
	ticketID, ok := ParamID(c, "id")
	if !ok {
		return
	}
	pdf, filename, err := docsService(c).GenerateReceipt(middleware.CurrentActor(c), ticketID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
