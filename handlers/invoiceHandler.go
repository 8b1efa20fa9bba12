package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/cashflow_guard/models"
)

const invoiceNotFound = "invoice not found"

func listInvoicesHandler(c *gin.Context) {
	invoices, err := models.ListInvoices(c.Request.Context())
	if err != nil {
		respondError(c, err, invoiceNotFound)
		return
	}
	c.JSON(http.StatusOK, invoices)
}

func getInvoiceHandler(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	invoice, err := models.GetInvoice(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, invoiceNotFound)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func createInvoiceHandler(c *gin.Context) {
	var input models.NewInvoice
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	invoice, err := models.CreateInvoice(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err, invoiceNotFound)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Invoice created successfully", "invoice": invoice})
}

func updateInvoiceHandler(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var input models.UpdateInvoice
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	invoice, err := models.UpdateInvoiceById(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, err, invoiceNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Invoice updated successfully", "invoice": invoice})
}

func deleteInvoiceHandler(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := models.DeleteInvoice(c.Request.Context(), id); err != nil {
		respondError(c, err, invoiceNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}
