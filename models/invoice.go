package models

import (
	"time"

	"gorm.io/gorm"
)

// Invoice bills one patient for one day's examination: medicine line totals
// plus the flat examination fee in force at billing time. The composite
// unique index holds the one-invoice-per-patient-per-day invariant even when
// two billing transactions race.
type Invoice struct {
	gorm.Model
	UserID           uint      `gorm:"uniqueIndex:idx_invoices_user_date;not null" json:"userId"`
	Date             time.Time `gorm:"uniqueIndex:idx_invoices_user_date;index;not null" json:"date"`
	ReceiptNumber    string    `gorm:"uniqueIndex;not null" json:"receiptNumber"`
	Total            int64     `gorm:"type:bigint;not null" json:"total"`
	PaymentCompleted bool      `gorm:"default:false" json:"paymentCompleted"`
}
