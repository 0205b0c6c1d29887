package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"yatrasathi/internal/domain"
	"yatrasathi/internal/http/middleware"
	"yatrasathi/internal/repositories"
	"yatrasathi/internal/services"
)

// RespondError sends a standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"message":    message,
		"request_id": middleware.GetRequestID(c),
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures the body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "empty body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}

// ParamID parses a positive numeric path parameter.
func ParamID(c *gin.Context, name string) (domain.ID, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid "+name, err)
		return 0, false
	}
	return domain.ID(id), true
}

func auditService(c *gin.Context) services.AuditService {
	return services.AuditService{
		Repo:      repositories.AuditLogRepository{},
		RequestID: middleware.GetRequestID(c),
	}
}

func ticketService(c *gin.Context) services.TicketService {
	return services.TicketService{
		Repo:      repositories.TicketRequestRepository{},
		Users:     repositories.UserRepository{},
		Audit:     auditService(c),
		RequestID: middleware.GetRequestID(c),
	}
}

func paymentService(c *gin.Context) services.PaymentService {
	return services.PaymentService{
		Repo:      repositories.PaymentRepository{},
		Tickets:   repositories.TicketRequestRepository{},
		Audit:     auditService(c),
		RequestID: middleware.GetRequestID(c),
	}
}

func passengerService(c *gin.Context) services.PassengerService {
	return services.PassengerService{
		Repo:      repositories.PassengerRepository{},
		Tickets:   repositories.TicketRequestRepository{},
		Audit:     auditService(c),
		RequestID: middleware.GetRequestID(c),
	}
}

func docsService(c *gin.Context) services.DocsService {
	return services.DocsService{
		Tickets:    repositories.TicketRequestRepository{},
		Passengers: repositories.PassengerRepository{},
		Payments:   paymentService(c),
		RequestID:  middleware.GetRequestID(c),
	}
}
