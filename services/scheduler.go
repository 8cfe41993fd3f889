// services/scheduler.go
package services

import (
	"errors"
	"log"

	cron "github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// StartScheduler wires the two daily jobs: the morning appointment-list
// creation and the evening unpaid-invoice reminders.
func StartScheduler(db *gorm.DB) *cron.Cron {
	registration := NewRegistrationService(db)
	notifications := NewNotificationService(db)

	c := cron.New()

	// 7 AM: make sure today's queue exists before the front desk opens.
	c.AddFunc("0 7 * * *", func() {
		if _, err := registration.EnsureTodayList(); err != nil && !errors.Is(err, ErrListExists) {
			log.Printf("Failed to create today's appointment list: %v", err)
		}
	})

	// 6 PM: chase today's unpaid invoices.
	c.AddFunc("0 18 * * *", func() {
		notifications.SendUnpaidInvoiceReminders()
	})

	c.Start()
	log.Println("Daily scheduler started")
	return c
}
