// models/notification_log.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// NotificationLog records one outbound SMS attempt from the end-of-day
// unpaid-invoice job.
type NotificationLog struct {
	gorm.Model
	InvoiceID    uint      `gorm:"index;not null" json:"invoiceId"`
	UserID       uint      `gorm:"index;not null" json:"userId"`
	Phone        string    `gorm:"type:varchar(20)" json:"phone"`
	Message      string    `gorm:"type:text" json:"message"`
	Status       string    `gorm:"type:varchar(20)" json:"status"` // sent, failed
	ErrorMessage string    `gorm:"type:text" json:"errorMessage"`
	SentAt       time.Time `json:"sentAt"`
}
