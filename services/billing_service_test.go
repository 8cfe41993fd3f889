package services

import (
	"strings"
	"testing"
	"time"
)

func TestInvoiceTotal(t *testing.T) {
	items := []BilledItem{
		{Quantity: 3, UnitPrice: 5000},
		{Quantity: 2, UnitPrice: 30000},
	}

	total := InvoiceTotal(items, 100000)
	if total != 175000 {
		t.Errorf("expected total 175000, got %d", total)
	}
}

func TestInvoiceTotal_NoItemsStillBillsFee(t *testing.T) {
	total := InvoiceTotal(nil, 100000)
	if total != 100000 {
		t.Errorf("expected fee-only total 100000, got %d", total)
	}
}

func TestInvoiceTotal_DuplicateMedicineLines(t *testing.T) {
	// The same medicine may appear on several lines; each line counts.
	items := []BilledItem{
		{Quantity: 1, UnitPrice: 5000},
		{Quantity: 1, UnitPrice: 5000},
	}

	total := InvoiceTotal(items, 100000)
	if total != 110000 {
		t.Errorf("expected total 110000, got %d", total)
	}
}

func TestNewReceiptNumber(t *testing.T) {
	day := time.Date(2026, 8, 29, 0, 0, 0, 0, time.Local)

	number := newReceiptNumber(day)
	if !strings.HasPrefix(number, "INV-20260829-") {
		t.Errorf("unexpected receipt number format: %s", number)
	}

	if newReceiptNumber(day) == number {
		t.Error("expected receipt numbers to be unique per call")
	}
}
