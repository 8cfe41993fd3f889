package models

import (
	"gorm.io/gorm"
)

// MedicalHistory is a patient's cumulative disease record, created lazily on
// the first queue registration and only ever appended to.
type MedicalHistory struct {
	gorm.Model
	UserID  uint                   `gorm:"uniqueIndex;not null" json:"userId"`
	Details []MedicalHistoryDetail `gorm:"foreignKey:MedicalHistoryID" json:"details,omitempty"`
}

type MedicalHistoryDetail struct {
	gorm.Model
	MedicalHistoryID uint `gorm:"index;not null" json:"medicalHistoryId"`
	DiseaseID        uint `gorm:"index;not null" json:"diseaseId"`
}

// Disease is matched against diagnosis text by exact name.
type Disease struct {
	gorm.Model
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}
