// controllers/billing.go
package controllers

import (
	"net/http"

	"clinicdesk-backend/config"
	"clinicdesk-backend/services"

	"github.com/gin-gonic/gin"
)

// BillExamination settles the invoice for a same-day examination record.
func BillExamination(c *gin.Context) {
	examID, ok := paramID(c, "id")
	if !ok {
		return
	}

	billing := services.NewBillingService(config.DB)

	invoice, err := billing.BillExamination(examID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Payment completed",
		"invoice": invoice,
	})
}

// GetInvoiceStatus reads an invoice's payment flag.
func GetInvoiceStatus(c *gin.Context) {
	invoiceID, ok := paramID(c, "id")
	if !ok {
		return
	}

	billing := services.NewBillingService(config.DB)

	paid, err := billing.IsPaid(invoiceID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"paid": paid})
}

// GetTodayInvoices lists today's invoices for the cashier screen.
func GetTodayInvoices(c *gin.Context) {
	billing := services.NewBillingService(config.DB)

	invoices, err := billing.TodayInvoices()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, invoices)
}
