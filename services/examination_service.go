// services/examination_service.go
package services

import (
	"errors"
	"strings"
	"time"

	"clinicdesk-backend/models"
	"clinicdesk-backend/utils"

	"gorm.io/gorm"
)

// ExaminationService turns queued patients into examination records, takes
// prescription line items, and records diagnoses into the permanent medical
// history.
type ExaminationService struct {
	db *gorm.DB
}

func NewExaminationService(db *gorm.DB) *ExaminationService {
	return &ExaminationService{db: db}
}

// OpenExamination creates today's examination record for one queued patient.
// The patient must be on today's list, and at most one record per patient per
// day is ever created.
func (s *ExaminationService) OpenExamination(patientID uint) (*models.ExaminationRecord, error) {
	today := utils.Today()

	var record models.ExaminationRecord
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.ExaminationRecord{}).
			Where("user_id = ? AND date = ?", patientID, today).
			Count(&existing).Error; err != nil {
			return storageErr(err)
		}
		if existing > 0 {
			return ErrRecordExists
		}

		var queued int64
		err := tx.Model(&models.AppointmentDetail{}).
			Joins("JOIN appointment_lists ON appointment_lists.id = appointment_details.appointment_list_id").
			Where("appointment_details.user_id = ? AND appointment_lists.date = ?", patientID, today).
			Count(&queued).Error
		if err != nil {
			return storageErr(err)
		}
		if queued == 0 {
			return ErrNotRegisteredToday
		}

		record = models.ExaminationRecord{UserID: patientID, Date: today}
		if err := tx.Create(&record).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// A concurrent open won the race on the (user, date) index.
				return ErrRecordExists
			}
			return storageErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// OpenTodayExaminations is the nurse's batch action: one record per queued
// patient, skipping anyone who already has one.
func (s *ExaminationService) OpenTodayExaminations() (created, skipped int, err error) {
	reg := NewRegistrationService(s.db)
	patients, err := reg.TodayQueue()
	if err != nil {
		return 0, 0, err
	}

	for _, patient := range patients {
		_, err := s.OpenExamination(patient.ID)
		switch {
		case err == nil:
			created++
		case errors.Is(err, ErrRecordExists):
			skipped++
		default:
			return created, skipped, err
		}
	}
	return created, skipped, nil
}

// AddLineItem appends one prescribed medicine to a today-record. Medicines
// are resolved by exact name; the same medicine may be added again as a new
// line.
func (s *ExaminationService) AddLineItem(examID uint, medicineName string, quantity int) (*models.ExaminationItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	today := utils.Today()

	var item models.ExaminationItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var record models.ExaminationRecord
		if err := tx.Where("id = ? AND date = ?", examID, today).First(&record).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return storageErr(err)
		}

		var medicine models.Medicine
		if err := tx.Where("name = ? AND is_active = ?", strings.TrimSpace(medicineName), true).
			First(&medicine).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMedicineNotFound
			}
			return storageErr(err)
		}

		item = models.ExaminationItem{
			ExaminationRecordID: record.ID,
			MedicineID:          medicine.ID,
			Quantity:            quantity,
		}
		if err := tx.Create(&item).Error; err != nil {
			return storageErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// RecordDiagnosis fills in symptoms and diagnosis on a today-record. When the
// diagnosis text exactly matches a known disease, one entry is appended to
// the patient's medical history in the same transaction; unknown diagnosis
// text updates the record but skips the history.
func (s *ExaminationService) RecordDiagnosis(examID uint, symptoms, diagnosis string) error {
	symptoms = strings.TrimSpace(symptoms)
	diagnosis = strings.TrimSpace(diagnosis)
	if symptoms == "" || diagnosis == "" {
		return ErrMissingFields
	}

	today := utils.Today()

	return s.db.Transaction(func(tx *gorm.DB) error {
		var record models.ExaminationRecord
		if err := tx.Where("id = ? AND date = ?", examID, today).First(&record).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return storageErr(err)
		}

		if err := tx.Model(&record).
			Updates(map[string]interface{}{"symptoms": symptoms, "diagnosis": diagnosis}).Error; err != nil {
			return storageErr(err)
		}

		var disease models.Disease
		err := tx.Where("name = ?", diagnosis).First(&disease).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil // unknown disease name, history append skipped
		}
		if err != nil {
			return storageErr(err)
		}

		if err := ensureMedicalHistory(tx, record.UserID); err != nil {
			return err
		}
		var history models.MedicalHistory
		if err := tx.Where("user_id = ?", record.UserID).First(&history).Error; err != nil {
			return storageErr(err)
		}

		entry := models.MedicalHistoryDetail{
			MedicalHistoryID: history.ID,
			DiseaseID:        disease.ID,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return storageErr(err)
		}
		return nil
	})
}

// TodayRecords lists today's examination records with their line items, for
// the doctor screen.
func (s *ExaminationService) TodayRecords() ([]models.ExaminationRecord, error) {
	var records []models.ExaminationRecord
	err := s.db.Preload("Items").
		Where("date = ?", utils.Today()).
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, storageErr(err)
	}
	return records, nil
}

// TodayRecordForPatient finds today's record for one patient.
func (s *ExaminationService) TodayRecordForPatient(patientID uint) (*models.ExaminationRecord, error) {
	var record models.ExaminationRecord
	err := s.db.Preload("Items").
		Where("user_id = ? AND date = ?", patientID, utils.Today()).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storageErr(err)
	}
	return &record, nil
}

// PrescriptionLine is one row of the patient-facing prescription view.
type PrescriptionLine struct {
	MedicineName string `json:"medicineName"`
	Unit         string `json:"unit"`
	Quantity     int    `json:"quantity"`
	Description  string `json:"description"`
}

// Prescription joins a record's line items to their medicines.
func (s *ExaminationService) Prescription(examID uint) ([]PrescriptionLine, error) {
	var lines []PrescriptionLine
	err := s.db.Model(&models.ExaminationItem{}).
		Select("medicines.name AS medicine_name, medicines.unit AS unit, examination_items.quantity AS quantity, medicines.description AS description").
		Joins("JOIN medicines ON medicines.id = examination_items.medicine_id").
		Where("examination_items.examination_record_id = ?", examID).
		Order("examination_items.id").
		Scan(&lines).Error
	if err != nil {
		return nil, storageErr(err)
	}
	return lines, nil
}

// HistoryEntry is one row of a patient's medical history view.
type HistoryEntry struct {
	DiseaseName string    `json:"diseaseName"`
	RecordedAt  time.Time `json:"recordedAt"`
}

// History returns the patient's cumulative diagnosed diseases.
func (s *ExaminationService) History(patientID uint) ([]HistoryEntry, error) {
	var history models.MedicalHistory
	if err := s.db.Where("user_id = ?", patientID).First(&history).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storageErr(err)
	}

	var entries []HistoryEntry
	err := s.db.Model(&models.MedicalHistoryDetail{}).
		Select("diseases.name AS disease_name, medical_history_details.created_at AS recorded_at").
		Joins("JOIN diseases ON diseases.id = medical_history_details.disease_id").
		Where("medical_history_details.medical_history_id = ?", history.ID).
		Order("medical_history_details.id").
		Scan(&entries).Error
	if err != nil {
		return nil, storageErr(err)
	}
	return entries, nil
}
