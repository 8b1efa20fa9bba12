package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/cashflow_guard/models"
)

const paymentNotFound = "payment not found"

func listPaymentsHandler(c *gin.Context) {
	payments, err := models.ListPayments(c.Request.Context())
	if err != nil {
		respondError(c, err, paymentNotFound)
		return
	}
	c.JSON(http.StatusOK, payments)
}

func listInvoicePaymentsHandler(c *gin.Context) {
	invoiceId, ok := uuidParam(c, "invoice_id")
	if !ok {
		return
	}
	payments, err := models.ListPaymentsByInvoice(c.Request.Context(), invoiceId)
	if err != nil {
		respondError(c, err, paymentNotFound)
		return
	}
	c.JSON(http.StatusOK, payments)
}

func getPaymentHandler(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	payment, err := models.GetPayment(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, paymentNotFound)
		return
	}
	c.JSON(http.StatusOK, payment)
}

func createPaymentHandler(c *gin.Context) {
	var input models.NewPayment
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	payment, err := models.CreatePayment(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err, paymentNotFound)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

func updatePaymentHandler(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var input models.UpdatePayment
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	payment, err := models.UpdatePaymentById(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, err, paymentNotFound)
		return
	}
	c.JSON(http.StatusOK, payment)
}

func deletePaymentHandler(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := models.DeletePayment(c.Request.Context(), id); err != nil {
		respondError(c, err, paymentNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment deleted successfully"})
}
