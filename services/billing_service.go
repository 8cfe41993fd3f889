// services/billing_service.go
package services

import (
	"errors"
	"strings"
	"time"

	"clinicdesk-backend/config"
	"clinicdesk-backend/models"
	"clinicdesk-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BillingService settles same-day examination records: medicine line totals
// plus the examination fee in force at billing time, at most one paid invoice
// per patient per day.
type BillingService struct {
	db *gorm.DB
}

func NewBillingService(db *gorm.DB) *BillingService {
	return &BillingService{db: db}
}

// BilledItem is one priced prescription line feeding the invoice total.
type BilledItem struct {
	Quantity  int
	UnitPrice int64
}

// InvoiceTotal computes sum(quantity * unit price) + examination fee. A
// record with no line items still bills the fee.
func InvoiceTotal(items []BilledItem, examinationFee int64) int64 {
	total := examinationFee
	for _, item := range items {
		total += int64(item.Quantity) * item.UnitPrice
	}
	return total
}

// BillExamination creates and settles the invoice for a today-record. The
// paid-status check and the invoice write run in one transaction with the
// examination record row locked, so concurrent bills for the same record
// serialize there; the unique (user, date) index on invoices backs that up if
// a second transaction still reaches the insert.
func (s *BillingService) BillExamination(examID uint) (*models.Invoice, error) {
	rules, err := config.LoadRules()
	if err != nil {
		return nil, storageErr(err)
	}

	today := utils.Today()

	var invoice models.Invoice
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var record models.ExaminationRecord
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", examID).First(&record).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return storageErr(err)
		}
		if !utils.SameDay(record.Date, today) {
			return ErrWrongDay
		}

		var items []BilledItem
		err := tx.Model(&models.ExaminationItem{}).
			Select("examination_items.quantity AS quantity, medicines.price AS unit_price").
			Joins("JOIN medicines ON medicines.id = examination_items.medicine_id").
			Where("examination_items.examination_record_id = ?", record.ID).
			Scan(&items).Error
		if err != nil {
			return storageErr(err)
		}

		total := InvoiceTotal(items, rules.ExaminationFee)

		var existing models.Invoice
		err = tx.Where("user_id = ? AND date = ?", record.UserID, today).
			First(&existing).Error
		switch {
		case err == nil:
			if existing.PaymentCompleted {
				return ErrAlreadyPaid
			}
			// Unpaid invoice from an earlier attempt: reuse it.
			existing.Total = total
			existing.PaymentCompleted = true
			if err := tx.Save(&existing).Error; err != nil {
				return storageErr(err)
			}
			invoice = existing
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			invoice = models.Invoice{
				UserID:           record.UserID,
				Date:             today,
				ReceiptNumber:    newReceiptNumber(today),
				Total:            total,
				PaymentCompleted: true,
			}
			if err := tx.Create(&invoice).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					// A concurrent bill won the race and already settled.
					return ErrAlreadyPaid
				}
				return storageErr(err)
			}
			return nil
		default:
			return storageErr(err)
		}
	})
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// IsPaid is a pure read of an invoice's payment flag.
func (s *BillingService) IsPaid(invoiceID uint) (bool, error) {
	var invoice models.Invoice
	if err := s.db.Where("id = ?", invoiceID).First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, storageErr(err)
	}
	return invoice.PaymentCompleted, nil
}

// TodayInvoices lists today's invoices for the cashier screen.
func (s *BillingService) TodayInvoices() ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := s.db.Where("date = ?", utils.Today()).Order("id").Find(&invoices).Error
	if err != nil {
		return nil, storageErr(err)
	}
	return invoices, nil
}

func newReceiptNumber(day time.Time) string {
	suffix := strings.Split(uuid.New().String(), "-")[0]
	return "INV-" + day.Format("20060102") + "-" + suffix
}
