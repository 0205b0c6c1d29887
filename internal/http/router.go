package api

import (
	"log"
	stdhttp "net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	intconfig "yatrasathi/internal/config"
	"yatrasathi/internal/domain/models"
	h "yatrasathi/internal/http/handlers"
	"yatrasathi/internal/http/middleware"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), corsMiddleware(env))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	auth := middleware.AuthRequired([]byte(env.JWTSecret))

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		tickets := api.Group("/tickets", auth)
		tickets.POST("", h.CreateTicketRequest)
		tickets.GET("/my", h.MyTicketRequests)
		tickets.GET("/pending", h.ListByStatusHandler(models.StatusPending))
		tickets.GET("/approved", h.ListByStatusHandler(models.StatusApproved))
		tickets.GET("/ticket-created", h.ListByStatusHandler(models.StatusTicketCreated))
		tickets.GET("/confirmed", h.ListByStatusHandler(models.StatusConfirmed))
		tickets.GET("/by-date", h.TicketRequestsByDate)
		tickets.GET("/search", h.SearchTicketRequests)
		tickets.GET("/assigned/:employeeId", h.AssignedTicketRequests)
		tickets.GET("/:id", h.GetTicketRequest)
		tickets.POST("/:id/approve", h.ApproveTicketRequest)
		tickets.POST("/:id/create-ticket", h.IssueTicket)
		tickets.POST("/:id/confirm", h.ConfirmTicketRequest)
		tickets.POST("/:id/assign/:employeeId", h.AssignTicketRequest)
		tickets.GET("/:id/e-ticket", h.GetETicketPDF)
		tickets.GET("/:id/receipt", h.GetReceiptPDF)

		payments := api.Group("/payments", auth)
		payments.GET("/all", h.ListAllPayments)
		payments.GET("/my", h.MyPayments)
		payments.POST("/ticket/:id", h.AddPayment)
		payments.GET("/ticket/:id", h.ListPaymentsForTicket)
		payments.GET("/ticket/:id/total", h.TotalPaid)
		payments.POST("/ticket/:id/make-payment", h.MakePayment)
		payments.POST("/:id/complete", h.CompletePayment)
		payments.POST("/:id/update-status", h.UpdatePaymentStatus)

		passengers := api.Group("/passengers", auth)
		passengers.GET("/ticket/:id", h.ListPassengersForTicket)
		passengers.POST("/ticket/:id", h.AddPassenger)
		passengers.POST("/ticket/:id/batch", h.AddPassengerBatch)

		dashboard := api.Group("/dashboard", auth)
		dashboard.GET("/admin", h.AdminDashboard)
		dashboard.GET("/employee", h.EmployeeDashboard)

		api.GET("/audit", auth, h.ListAuditLog)
	}

	return r
}

func corsMiddleware(env intconfig.Env) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowOrigins = env.CORSOrigins
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	return cors.New(cfg)
}
