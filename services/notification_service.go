// services/notification_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"time"

	"clinicdesk-backend/models"
	"clinicdesk-backend/utils"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// NotificationService sends the end-of-day SMS to patients with an unpaid
// invoice from today, logging every attempt.
type NotificationService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &NotificationService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

type unpaidInvoice struct {
	InvoiceID uint
	UserID    uint
	FullName  string
	Phone     string
	Total     int64
}

// SendUnpaidInvoiceReminders runs once per day from the scheduler.
func (s *NotificationService) SendUnpaidInvoiceReminders() {
	log.Println("Starting unpaid-invoice reminder processing...")

	var unpaid []unpaidInvoice
	err := s.db.Model(&models.Invoice{}).
		Select("invoices.id AS invoice_id, users.id AS user_id, users.full_name AS full_name, users.phone AS phone, invoices.total AS total").
		Joins("JOIN users ON users.id = invoices.user_id").
		Where("invoices.date = ? AND invoices.payment_completed = ?", utils.Today(), false).
		Scan(&unpaid).Error
	if err != nil {
		log.Printf("Failed to fetch unpaid invoices: %v", err)
		return
	}

	for _, inv := range unpaid {
		s.sendReminder(inv)
	}

	log.Printf("Unpaid-invoice reminder processing completed, %d invoices", len(unpaid))
}

func (s *NotificationService) sendReminder(inv unpaidInvoice) {
	message := fmt.Sprintf(
		"Hi %s, your clinic visit today has an outstanding balance of %d. Please settle it at the cashier desk.",
		inv.FullName, inv.Total)

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(inv.Phone)
	params.SetBody(message)
	params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send reminder to %s: %v", inv.Phone, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Reminder sent to %s, SID: %s", inv.Phone, *resp.Sid)
	} else {
		log.Printf("Reminder sent to %s, but no SID returned", inv.Phone)
	}

	entry := models.NotificationLog{
		InvoiceID:    inv.InvoiceID,
		UserID:       inv.UserID,
		Phone:        inv.Phone,
		Message:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		SentAt:       time.Now(),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		log.Printf("Failed to log reminder for invoice %d: %v", inv.InvoiceID, err)
	}
}
