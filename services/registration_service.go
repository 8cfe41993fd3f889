// services/registration_service.go
package services

import (
	"errors"

	"clinicdesk-backend/config"
	"clinicdesk-backend/models"
	"clinicdesk-backend/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RegistrationService runs the daily queue: one appointment list per day,
// walk-in registration against it, capacity enforcement from the clinic
// rules, and lazy medical-history creation.
type RegistrationService struct {
	db *gorm.DB
}

func NewRegistrationService(db *gorm.DB) *RegistrationService {
	return &RegistrationService{db: db}
}

// EnsureTodayList creates today's appointment list if it does not exist yet.
// Returns ErrListExists when it is already there so the manual "create list"
// action can report the no-op; the morning cron treats that as success.
func (s *RegistrationService) EnsureTodayList() (*models.AppointmentList, error) {
	today := utils.Today()

	var list models.AppointmentList
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("date = ?", today).First(&list).Error
		if err == nil {
			return ErrListExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return storageErr(err)
		}

		list = models.AppointmentList{
			Name: "Queue " + today.Format("2006-01-02"),
			Date: today,
		}
		if err := tx.Create(&list).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Unique index on date: a concurrent create won the race.
				return ErrListExists
			}
			return storageErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// RegisterWalkIn puts the patient with this phone number on today's list.
// The count-vs-capacity check and the detail insert run in one transaction
// with today's list row locked, so two concurrent registrations cannot both
// see a free slot.
func (s *RegistrationService) RegisterWalkIn(phone string) (*models.AppointmentDetail, error) {
	rules, err := config.LoadRules()
	if err != nil {
		return nil, storageErr(err)
	}

	today := utils.Today()

	var detail models.AppointmentDetail
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var patient models.User
		if err := tx.Where("phone = ? AND is_active = ?", phone, true).First(&patient).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return storageErr(err)
		}

		var list models.AppointmentList
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("date = ?", today).First(&list).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoListYet
			}
			return storageErr(err)
		}

		var existing int64
		if err := tx.Model(&models.AppointmentDetail{}).
			Where("appointment_list_id = ? AND user_id = ?", list.ID, patient.ID).
			Count(&existing).Error; err != nil {
			return storageErr(err)
		}
		if existing > 0 {
			return ErrAlreadyRegistered
		}

		var queued int64
		if err := tx.Model(&models.AppointmentDetail{}).
			Where("appointment_list_id = ?", list.ID).
			Count(&queued).Error; err != nil {
			return storageErr(err)
		}
		if !HasCapacity(queued, rules.MaxPatientsPerDay) {
			return ErrCapacityExceeded
		}

		detail = models.AppointmentDetail{
			AppointmentListID: list.ID,
			UserID:            patient.ID,
		}
		if err := tx.Create(&detail).Error; err != nil {
			return storageErr(err)
		}

		return ensureMedicalHistory(tx, patient.ID)
	})
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// HasCapacity is the registration gate: strictly-less-than, so a list with
// queued == max is full.
func HasCapacity(queued int64, maxPerDay int) bool {
	return queued < int64(maxPerDay)
}

// ensureMedicalHistory is the lazy get-or-create for a patient's permanent
// history. Idempotent; the unique index on user_id backs it up under races.
func ensureMedicalHistory(tx *gorm.DB, userID uint) error {
	var history models.MedicalHistory
	err := tx.Where("user_id = ?", userID).First(&history).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return storageErr(err)
	}

	history = models.MedicalHistory{UserID: userID}
	if err := tx.Create(&history).Error; err != nil {
		return storageErr(err)
	}
	return nil
}

// TodayQueue lists the patients on today's appointment list in registration
// order, for the nurse and doctor screens.
func (s *RegistrationService) TodayQueue() ([]models.User, error) {
	today := utils.Today()

	var list models.AppointmentList
	if err := s.db.Where("date = ?", today).First(&list).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoListYet
		}
		return nil, storageErr(err)
	}

	var patients []models.User
	err := s.db.Model(&models.User{}).
		Joins("JOIN appointment_details ON appointment_details.user_id = users.id").
		Where("appointment_details.appointment_list_id = ?", list.ID).
		Order("appointment_details.id").
		Find(&patients).Error
	if err != nil {
		return nil, storageErr(err)
	}
	return patients, nil
}

// ListDates returns every appointment list with its date, newest first.
func (s *RegistrationService) ListDates() ([]models.AppointmentList, error) {
	var lists []models.AppointmentList
	if err := s.db.Order("date DESC").Find(&lists).Error; err != nil {
		return nil, storageErr(err)
	}
	return lists, nil
}
