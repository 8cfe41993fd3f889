package models

import (
	"time"

	"gorm.io/gorm"
)

// ExaminationRecord is one doctor visit for one patient on one day.
// Symptoms and Diagnosis stay empty until the doctor records them; the
// composite unique index holds the one-record-per-patient-per-day invariant
// even when two opens race.
type ExaminationRecord struct {
	gorm.Model
	UserID    uint              `gorm:"uniqueIndex:idx_exam_records_user_date;not null" json:"userId"`
	Date      time.Time         `gorm:"uniqueIndex:idx_exam_records_user_date;index;not null" json:"date"`
	Symptoms  string            `json:"symptoms"`
	Diagnosis string            `json:"diagnosis"`
	Items     []ExaminationItem `gorm:"foreignKey:ExaminationRecordID" json:"items,omitempty"`
}

// ExaminationItem is one prescribed medicine line. The same medicine may
// appear on multiple lines of one record.
type ExaminationItem struct {
	gorm.Model
	ExaminationRecordID uint `gorm:"index;not null" json:"examinationRecordId"`
	MedicineID          uint `gorm:"index;not null" json:"medicineId"`
	Quantity            int  `gorm:"not null" json:"quantity"`
}
