package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yatrasathi/internal/domain/models"
	"yatrasathi/internal/http/middleware"
)

type passengerBody struct {
	Name          string `json:"name"`
	Age           int    `json:"age"`
	Gender        string `json:"gender"`
	IDProofType   string `json:"idProofType"`
	IDProofNumber string `json:"idProofNumber"`
}

func (b passengerBody) toModel() models.Passenger {
	return models.Passenger{
		Name:          b.Name,
		Age:           b.Age,
		Gender:        b.Gender,
		IDProofType:   b.IDProofType,
		IDProofNumber: b.IDProofNumber,
	}
}

// GET /api/passengers/ticket/:id
func ListPassengersForTicket(c *gin.Context) {
	ticketID, ok := ParamID(c, "id")
	if !ok {
		return
	}
	list, err := passengerService(c).ListForTicket(middleware.CurrentActor(c), ticketID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// POST /api/passengers/ticket/:id
func AddPassenger(c *gin.Context) {
	ticketID, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var body passengerBody
	if !BindJSONOrError(c, &body) {
		return
	}
	saved, err := passengerService(c).Add(middleware.CurrentActor(c), ticketID, body.toModel())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// POST /api/passengers/ticket/:id/batch
func AddPassengerBatch(c *gin.Context) {
	ticketID, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var bodies []passengerBody
	if !BindJSONOrError(c, &bodies) {
		return
	}
	ps := make([]models.Passenger, 0, len(bodies))
	for _, b := range bodies {
		ps = append(ps, b.toModel())
	}
	saved, err := passengerService(c).AddBatch(middleware.CurrentActor(c), ticketID, ps)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}
