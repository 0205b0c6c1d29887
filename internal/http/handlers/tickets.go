package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"yatrasathi/internal/domain/models"
	"yatrasathi/internal/http/middleware"
)

type createTicketRequestBody struct {
	Origin              string `json:"origin"`
	Destination         string `json:"destination"`
	TravelDate          string `json:"travelDate"`
	TravelClass         string `json:"travelClass"`
	BerthPreference     string `json:"berthPreference"`
	SpecialRequirements string `json:"specialRequirements"`
	PassengerCount      int    `json:"passengerCount"`
}

// POST /api/tickets
func CreateTicketRequest(c *gin.Context) {
	var body createTicketRequestBody
	if !BindJSONOrError(c, &body) {
		return
	}
	saved, err := ticketService(c).Create(middleware.CurrentActor(c), models.TicketRequest{
		Origin:              body.Origin,
		Destination:         body.Destination,
		TravelDate:          body.TravelDate,
		TravelClass:         body.TravelClass,
		BerthPreference:     body.BerthPreference,
		SpecialRequirements: body.SpecialRequirements,
		PassengerCount:      body.PassengerCount,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// GET /api/tickets/:id
func GetTicketRequest(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	t, err := ticketService(c).GetByID(middleware.CurrentActor(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// GET /api/tickets/my
func MyTicketRequests(c *gin.Context) {
	list, err := ticketService(c).ListMine(middleware.CurrentActor(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// ListByStatusHandler serves the per-status staff queues.
func ListByStatusHandler(status models.TicketStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := ticketService(c).ListByStatus(middleware.CurrentActor(c), status)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

type approveBody struct {
	Count int64 `json:"count"`
}

// POST /api/tickets/:id/approve
func ApproveTicketRequest(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var body approveBody
	if !BindJSONOrError(c, &body) {
		return
	}
	t, err := ticketService(c).Approve(middleware.CurrentActor(c), id, body.Count)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

type createTicketBody struct {
	Pnr           string          `json:"pnr"`
	PaymentAmount decimal.Decimal `json:"paymentAmount"`
}

// POST /api/tickets/:id/create-ticket
func IssueTicket(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var body createTicketBody
	if !BindJSONOrError(c, &body) {
		return
	}
	t, err := ticketService(c).CreateTicket(middleware.CurrentActor(c), id, body.Pnr, body.PaymentAmount)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// POST /api/tickets/:id/confirm
func ConfirmTicketRequest(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	t, err := ticketService(c).Confirm(middleware.CurrentActor(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// POST /api/tickets/:id/assign/:employeeId
func AssignTicketRequest(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	employeeID, ok := ParamID(c, "employeeId")
	if !ok {
		return
	}
	t, err := ticketService(c).Assign(middleware.CurrentActor(c), id, employeeID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// GET /api/tickets/assigned/:employeeId
func AssignedTicketRequests(c *gin.Context) {
	employeeID, ok := ParamID(c, "employeeId")
	if !ok {
		return
	}
	list, err := ticketService(c).ListAssigned(middleware.CurrentActor(c), employeeID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/tickets/by-date?date=YYYY-MM-DD
func TicketRequestsByDate(c *gin.Context) {
	list, err := ticketService(c).ListByTravelDate(middleware.CurrentActor(c), c.Query("date"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/tickets/search?destination=&status=&date=
func SearchTicketRequests(c *gin.Context) {
	list, err := ticketService(c).Search(
		middleware.CurrentActor(c),
		c.Query("destination"),
		c.Query("status"),
		c.Query("date"),
	)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
