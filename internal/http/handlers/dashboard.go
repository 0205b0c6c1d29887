package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"yatrasathi/internal/domain"
	"yatrasathi/internal/domain/models"
	"yatrasathi/internal/http/middleware"
	"yatrasathi/internal/repositories"
)

// GET /api/dashboard/admin
func AdminDashboard(c *gin.Context) {
	actor := middleware.CurrentActor(c)
	if actor.Role != domain.RoleAdmin {
		RespondDomainError(c, domain.UnauthorizedError{Operation: "admin dashboard", Role: actor.Role})
		return
	}

	tickets := repositories.TicketRequestRepository{}
	counts := map[string]int64{}
	for _, status := range []models.TicketStatus{models.StatusPending, models.StatusApproved, models.StatusConfirmed} {
		n, err := tickets.CountByStatus(status)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		counts[string(status)] = n
	}

	payments, err := repositories.PaymentRepository{}.ListAll()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}

	customers, err := repositories.UserRepository{}.Count()
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pendingTickets":   counts[string(models.StatusPending)],
		"approvedTickets":  counts[string(models.StatusApproved)],
		"confirmedTickets": counts[string(models.StatusConfirmed)],
		"totalPayments":    total,
		"customers":        customers,
	})
}

// GET /api/dashboard/employee
func EmployeeDashboard(c *gin.Context) {
	actor := middleware.CurrentActor(c)
	if !actor.IsStaff() {
		RespondDomainError(c, domain.UnauthorizedError{Operation: "employee dashboard", Role: actor.Role})
		return
	}

	tickets := repositories.TicketRequestRepository{}
	pending, err := tickets.CountByStatus(models.StatusPending)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	approved, err := tickets.CountByStatus(models.StatusApproved)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pendingTickets":  pending,
		"approvedTickets": approved,
	})
}

// GET /api/audit
func ListAuditLog(c *gin.Context) {
	limit := 100
	list, err := auditService(c).ListRecent(middleware.CurrentActor(c), limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
