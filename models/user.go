package models

import (
	"time"

	"clinicdesk-backend/utils"

	"gorm.io/gorm"
)

// Role values stored on User. Patients self-register; staff roles are
// assigned through the admin backend.
const (
	RolePatient = "patient"
	RoleNurse   = "nurse"
	RoleDoctor  = "doctor"
	RoleCashier = "cashier"
	RoleAdmin   = "admin"
)

type User struct {
	gorm.Model
	FullName  string     `gorm:"not null" json:"fullName"`
	Username  string     `gorm:"uniqueIndex;not null" json:"username"`
	Password  string     `gorm:"not null" json:"-"`
	BirthDate *time.Time `json:"birthDate"`
	Gender    string     `gorm:"type:varchar(10)" json:"gender"`
	Phone     string     `gorm:"uniqueIndex;not null" json:"phone"` // walk-in lookup key
	Address   string     `json:"address"`
	Avatar    string     `gorm:"default:'static/default-avatar.png'" json:"avatar"`
	Role      string     `gorm:"type:varchar(20);not null;default:'patient'" json:"role"`
	IsActive  bool       `gorm:"default:true" json:"isActive"`

	MedicalHistory     *MedicalHistory     `gorm:"foreignKey:UserID" json:"-"`
	ExaminationRecords []ExaminationRecord `gorm:"foreignKey:UserID" json:"-"`
	Invoices           []Invoice           `gorm:"foreignKey:UserID" json:"-"`
	AppointmentDetails []AppointmentDetail `gorm:"foreignKey:UserID" json:"-"`
}

// Hash the password before the row is first written.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}
