package models

import (
	"time"

	"gorm.io/gorm"
)

// AppointmentList is one calendar day's walk-in queue. Date is truncated to
// midnight in server-local time; the unique index guarantees at most one list
// per day even if two create requests race.
type AppointmentList struct {
	gorm.Model
	Name    string              `gorm:"not null" json:"name"`
	Date    time.Time           `gorm:"uniqueIndex;not null" json:"date"`
	Details []AppointmentDetail `gorm:"foreignKey:AppointmentListID" json:"details,omitempty"`
}

// AppointmentDetail is one patient's queue ticket on a list.
type AppointmentDetail struct {
	gorm.Model
	AppointmentListID uint `gorm:"index;not null" json:"appointmentListId"`
	UserID            uint `gorm:"index;not null" json:"userId"`
}
