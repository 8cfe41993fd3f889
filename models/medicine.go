package models

import (
	"gorm.io/gorm"
)

type MedicineCategory struct {
	gorm.Model
	Name      string     `gorm:"uniqueIndex;not null" json:"name"`
	Medicines []Medicine `gorm:"foreignKey:CategoryID" json:"-"`
}

// Medicine prices are whole currency units (VND has no subunit), kept as
// int64 so prescription totals never accumulate float drift.
type Medicine struct {
	gorm.Model
	Name        string `gorm:"index;not null" json:"name"`
	Price       int64  `gorm:"type:bigint;not null" json:"price"`
	Unit        string `gorm:"type:varchar(20)" json:"unit"` // pill, bottle, blister
	Description string `json:"description"`
	IsActive    bool   `gorm:"default:true" json:"isActive"`
	CategoryID  uint   `gorm:"index;not null" json:"categoryId"`
}
