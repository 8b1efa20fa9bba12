package handlers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/mmdatafocus/cashflow_guard/middlewares"
	"github.com/mmdatafocus/cashflow_guard/models"
	"github.com/mmdatafocus/cashflow_guard/utils"
)

var bindingOnce sync.Once

// RegisterRoutes mounts the API under /api. Reminders work in both storage
// modes; every other resource needs the database.
func RegisterRoutes(r *gin.Engine, reminders *models.ReminderService) {
	bindingOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			utils.UseJSONFieldNames(v)
		}
	})

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.NoRoute(customNotFoundHandler)

	api := r.Group("/api")

	rh := NewReminderHandler(reminders)
	reminderRoutes := api.Group("/reminders")
	{
		reminderRoutes.GET("", rh.listRemindersHandler)
		reminderRoutes.POST("", rh.createReminderHandler)
		reminderRoutes.GET("/export", rh.exportRemindersHandler)
		reminderRoutes.GET("/:id", rh.getReminderHandler)
		reminderRoutes.PUT("/:id", rh.updateReminderHandler)
		reminderRoutes.DELETE("/:id", rh.deleteReminderHandler)
	}

	db := api.Group("", middlewares.RequireDatabase())

	clientRoutes := db.Group("/clients")
	{
		clientRoutes.GET("", listClientsHandler)
		clientRoutes.POST("", createClientHandler)
		clientRoutes.GET("/:id", getClientHandler)
		clientRoutes.PUT("/:id", updateClientHandler)
		clientRoutes.DELETE("/:id", deleteClientHandler)
	}

	invoiceRoutes := db.Group("/invoices")
	{
		invoiceRoutes.GET("", listInvoicesHandler)
		invoiceRoutes.POST("", createInvoiceHandler)
		invoiceRoutes.GET("/:id", getInvoiceHandler)
		invoiceRoutes.PUT("/:id", updateInvoiceHandler)
		invoiceRoutes.DELETE("/:id", deleteInvoiceHandler)
	}

	paymentRoutes := db.Group("/payments")
	{
		paymentRoutes.GET("", listPaymentsHandler)
		paymentRoutes.POST("", createPaymentHandler)
		paymentRoutes.GET("/invoice/:invoice_id", listInvoicePaymentsHandler)
		paymentRoutes.GET("/:id", getPaymentHandler)
		paymentRoutes.PUT("/:id", updatePaymentHandler)
		paymentRoutes.DELETE("/:id", deletePaymentHandler)
	}

	dashboardRoutes := db.Group("/dashboard")
	{
		dashboardRoutes.GET("/summary", dashboardSummaryHandler)
		dashboardRoutes.GET("/activity", dashboardActivityHandler)
	}
}

func customNotFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
}
