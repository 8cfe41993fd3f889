// controllers/examination.go
package controllers

import (
	"net/http"
	"strconv"

	"clinicdesk-backend/config"
	"clinicdesk-backend/services"
	"clinicdesk-backend/utils"

	"github.com/gin-gonic/gin"
)

type AddLineItemInput struct {
	MedicineName string `json:"medicineName" binding:"required"`
	Quantity     string `json:"quantity" binding:"required"`
}

type RecordDiagnosisInput struct {
	Symptoms  string `json:"symptoms"`
	Diagnosis string `json:"diagnosis"`
}

// OpenTodayExaminations creates one examination record per patient on
// today's queue, skipping patients who already have one.
func OpenTodayExaminations(c *gin.Context) {
	examination := services.NewExaminationService(config.DB)

	created, skipped, err := examination.OpenTodayExaminations()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Examination records generated",
		"created": created,
		"skipped": skipped,
	})
}

// OpenExamination creates today's examination record for one patient.
func OpenExamination(c *gin.Context) {
	patientID, ok := paramID(c, "patientId")
	if !ok {
		return
	}

	examination := services.NewExaminationService(config.DB)

	record, err := examination.OpenExamination(patientID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

// AddLineItem appends one prescribed medicine to an examination record.
// Quantity arrives as form text and must parse to a positive whole number.
func AddLineItem(c *gin.Context) {
	examID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input AddLineItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	quantity, valid := utils.ParseQuantity(input.Quantity)
	if !valid {
		respondServiceError(c, services.ErrInvalidQuantity)
		return
	}

	examination := services.NewExaminationService(config.DB)

	item, err := examination.AddLineItem(examID, input.MedicineName, quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// RecordDiagnosis fills in symptoms and diagnosis and, when the diagnosis
// names a known disease, appends to the patient's medical history.
func RecordDiagnosis(c *gin.Context) {
	examID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input RecordDiagnosisInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	examination := services.NewExaminationService(config.DB)

	if err := examination.RecordDiagnosis(examID, input.Symptoms, input.Diagnosis); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Examination record saved"})
}

// GetTodayRecords lists today's examination records with their line items.
func GetTodayRecords(c *gin.Context) {
	examination := services.NewExaminationService(config.DB)

	records, err := examination.TodayRecords()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

// GetPatientRecordToday finds today's record for one patient.
func GetPatientRecordToday(c *gin.Context) {
	patientID, ok := paramID(c, "patientId")
	if !ok {
		return
	}

	examination := services.NewExaminationService(config.DB)

	record, err := examination.TodayRecordForPatient(patientID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// GetPrescription returns a record's line items joined to medicine names.
func GetPrescription(c *gin.Context) {
	examID, ok := paramID(c, "id")
	if !ok {
		return
	}

	examination := services.NewExaminationService(config.DB)

	lines, err := examination.Prescription(examID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, lines)
}

// GetMedicalHistory returns a patient's cumulative diagnosed diseases.
func GetMedicalHistory(c *gin.Context) {
	patientID, ok := paramID(c, "id")
	if !ok {
		return
	}

	examination := services.NewExaminationService(config.DB)

	entries, err := examination.History(patientID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// paramID parses a numeric path parameter, responding with 400 on garbage.
func paramID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+name+" format")
		return 0, false
	}
	return uint(id), true
}
