package services

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"clinicdesk-backend/config"
	"clinicdesk-backend/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB connects to the database named by TEST_DB_URL, migrates the
// schema and empties every table. Tests that need it are skipped when the
// variable is not set.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DB_URL")
	if dsn == "" {
		t.Skip("TEST_DB_URL not set, skipping database test")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.MedicineCategory{},
		&models.Medicine{},
		&models.Disease{},
		&models.AppointmentList{},
		&models.AppointmentDetail{},
		&models.ExaminationRecord{},
		&models.ExaminationItem{},
		&models.MedicalHistory{},
		&models.MedicalHistoryDetail{},
		&models.Invoice{},
		&models.NotificationLog{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	// Child tables first so the deletes never trip a foreign key.
	tables := []string{
		"notification_logs", "medical_history_details", "medical_histories",
		"examination_items", "examination_records", "invoices",
		"appointment_details", "appointment_lists",
		"medicines", "medicine_categories", "diseases", "users",
	}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("failed to empty %s: %v", table, err)
		}
	}

	return db
}

func useTestRules(t *testing.T, fee int64, maxPerDay int) {
	t.Helper()
	t.Setenv("CLINIC_RULES_FILE", filepath.Join(t.TempDir(), "rules.json"))
	if err := config.SaveRules(config.ClinicRules{ExaminationFee: fee, MaxPatientsPerDay: maxPerDay}); err != nil {
		t.Fatalf("failed to write test rules: %v", err)
	}
}

// seedPatient inserts a patient row directly, skipping the bcrypt hook.
func seedPatient(t *testing.T, db *gorm.DB, name, phone string) models.User {
	t.Helper()
	patient := models.User{
		FullName: name,
		Username: phone,
		Password: "not-a-real-hash",
		Phone:    phone,
		Role:     models.RolePatient,
		IsActive: true,
	}
	if err := db.Session(&gorm.Session{SkipHooks: true}).Create(&patient).Error; err != nil {
		t.Fatalf("failed to seed patient: %v", err)
	}
	return patient
}

func TestEnsureTodayList_SecondCreateIsAConflict(t *testing.T) {
	db := openTestDB(t)
	registration := NewRegistrationService(db)

	if _, err := registration.EnsureTodayList(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := registration.EnsureTodayList(); !errors.Is(err, ErrListExists) {
		t.Fatalf("expected ErrListExists, got %v", err)
	}
}

func TestRegisterWalkIn_NoListYet(t *testing.T) {
	db := openTestDB(t)
	useTestRules(t, 100000, 40)
	registration := NewRegistrationService(db)

	patient := seedPatient(t, db, "An", "0901000001")

	if _, err := registration.RegisterWalkIn(patient.Phone); !errors.Is(err, ErrNoListYet) {
		t.Fatalf("expected ErrNoListYet, got %v", err)
	}
}

func TestRegisterWalkIn_CapacityBoundary(t *testing.T) {
	db := openTestDB(t)
	useTestRules(t, 100000, 2)
	registration := NewRegistrationService(db)

	first := seedPatient(t, db, "An", "0901000001")
	second := seedPatient(t, db, "Binh", "0901000002")
	third := seedPatient(t, db, "Chi", "0901000003")

	if _, err := registration.EnsureTodayList(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := registration.RegisterWalkIn(first.Phone); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := registration.RegisterWalkIn(second.Phone); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := registration.RegisterWalkIn(third.Phone); !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded for the third patient, got %v", err)
	}
}

func TestRegisterWalkIn_DuplicateRegistration(t *testing.T) {
	db := openTestDB(t)
	useTestRules(t, 100000, 40)
	registration := NewRegistrationService(db)

	patient := seedPatient(t, db, "An", "0901000001")

	if _, err := registration.EnsureTodayList(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := registration.RegisterWalkIn(patient.Phone); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := registration.RegisterWalkIn(patient.Phone); !errors.Is(err, ErrAlreadyRegistered) {
		t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
	}

	// The first registration also creates the permanent medical history.
	var histories int64
	if err := db.Model(&models.MedicalHistory{}).Where("user_id = ?", patient.ID).Count(&histories).Error; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if histories != 1 {
		t.Errorf("expected exactly one medical history, got %d", histories)
	}
}

func TestOpenExamination_SecondOpenIsAConflict(t *testing.T) {
	db := openTestDB(t)
	useTestRules(t, 100000, 40)
	registration := NewRegistrationService(db)
	examination := NewExaminationService(db)

	patient := seedPatient(t, db, "An", "0901000001")
	if _, err := registration.EnsureTodayList(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := registration.RegisterWalkIn(patient.Phone); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	record, err := examination.OpenExamination(patient.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := examination.OpenExamination(patient.ID); !errors.Is(err, ErrRecordExists) {
		t.Fatalf("expected ErrRecordExists, got %v", err)
	}

	// The (user, date) unique index holds even for a write that bypasses the
	// service-level check, closing the open/open race.
	duplicate := models.ExaminationRecord{UserID: patient.ID, Date: record.Date}
	if err := db.Create(&duplicate).Error; !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected duplicated-key error for a second record, got %v", err)
	}
}

func TestBillExamination_SecondBillRefused(t *testing.T) {
	db := openTestDB(t)
	useTestRules(t, 100000, 40)
	registration := NewRegistrationService(db)
	examination := NewExaminationService(db)
	billing := NewBillingService(db)

	patient := seedPatient(t, db, "An", "0901000001")
	if _, err := registration.EnsureTodayList(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := registration.RegisterWalkIn(patient.Phone); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	record, err := examination.OpenExamination(patient.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	invoice, err := billing.BillExamination(record.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !invoice.PaymentCompleted {
		t.Error("expected the invoice to be settled")
	}
	if invoice.Total != 100000 {
		t.Errorf("expected fee-only total 100000, got %d", invoice.Total)
	}

	if _, err := billing.BillExamination(record.ID); !errors.Is(err, ErrAlreadyPaid) {
		t.Fatalf("expected ErrAlreadyPaid, got %v", err)
	}

	var invoices int64
	if err := db.Model(&models.Invoice{}).Where("user_id = ?", patient.ID).Count(&invoices).Error; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if invoices != 1 {
		t.Errorf("expected exactly one invoice, got %d", invoices)
	}

	// The (user, date) unique index holds even for a write that bypasses the
	// service, closing the bill/bill race.
	duplicate := models.Invoice{
		UserID:        patient.ID,
		Date:          invoice.Date,
		ReceiptNumber: newReceiptNumber(invoice.Date),
		Total:         1,
	}
	if err := db.Create(&duplicate).Error; !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected duplicated-key error for a second invoice, got %v", err)
	}
}

func TestBillExamination_TotalIncludesLineItems(t *testing.T) {
	db := openTestDB(t)
	useTestRules(t, 100000, 40)
	registration := NewRegistrationService(db)
	examination := NewExaminationService(db)
	billing := NewBillingService(db)

	category := models.MedicineCategory{Name: "Analgesics"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	medicine := models.Medicine{Name: "Paracetamol", Price: 5000, Unit: "pill", IsActive: true, CategoryID: category.ID}
	if err := db.Create(&medicine).Error; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	patient := seedPatient(t, db, "An", "0901000001")
	if _, err := registration.EnsureTodayList(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := registration.RegisterWalkIn(patient.Phone); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	record, err := examination.OpenExamination(patient.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := examination.AddLineItem(record.ID, "Paracetamol", 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	invoice, err := billing.BillExamination(record.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if invoice.Total != 3*5000+100000 {
		t.Errorf("expected total 115000, got %d", invoice.Total)
	}
}

func TestRecordDiagnosis_AppendsKnownDiseaseToHistory(t *testing.T) {
	db := openTestDB(t)
	useTestRules(t, 100000, 40)
	registration := NewRegistrationService(db)
	examination := NewExaminationService(db)

	if err := db.Create(&models.Disease{Name: "Influenza"}).Error; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	patient := seedPatient(t, db, "An", "0901000001")
	if _, err := registration.EnsureTodayList(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := registration.RegisterWalkIn(patient.Phone); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	record, err := examination.OpenExamination(patient.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := examination.RecordDiagnosis(record.ID, "fever and cough", "Influenza"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := examination.History(patient.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 || entries[0].DiseaseName != "Influenza" {
		t.Fatalf("expected one Influenza history entry, got %+v", entries)
	}

	// Unknown diagnosis text updates the record but not the history.
	if err := examination.RecordDiagnosis(record.ID, "fever and cough", "Something Unlisted"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entries, err = examination.History(patient.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected the history to be unchanged, got %+v", entries)
	}
}
