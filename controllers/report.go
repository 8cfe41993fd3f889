// controllers/report.go
package controllers

import (
	"net/http"
	"time"

	"clinicdesk-backend/config"
	"clinicdesk-backend/models"
	"clinicdesk-backend/utils"

	"github.com/gin-gonic/gin"
)

type RevenueRow struct {
	Date         time.Time `json:"date"`
	PatientCount int64     `json:"patientCount"`
	Revenue      int64     `json:"revenue"`
}

type MedicineUsageRow struct {
	MedicineID   uint   `json:"medicineId"`
	MedicineName string `json:"medicineName"`
	Unit         string `json:"unit"`
	TotalUsed    int64  `json:"totalUsed"`
}

// GetRevenueReport aggregates invoices per day for one month
// (?month=2026-08, defaults to the current month).
func GetRevenueReport(c *gin.Context) {
	month := c.DefaultQuery("month", time.Now().Format("2006-01"))

	start, err := time.ParseInLocation("2006-01", month, time.Local)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid month format, expected YYYY-MM")
		return
	}
	end := start.AddDate(0, 1, 0)

	var rows []RevenueRow
	err = config.DB.Model(&models.Invoice{}).
		Select("invoices.date AS date, COUNT(invoices.id) AS patient_count, COALESCE(SUM(invoices.total), 0) AS revenue").
		Where("invoices.date >= ? AND invoices.date < ?", start, end).
		Group("invoices.date").
		Order("invoices.date").
		Scan(&rows).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to build revenue report")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"month":   month,
		"revenue": rows,
	})
}

// GetMedicineUsageReport sums prescribed quantities per medicine over a date
// range (?from=YYYY-MM-DD&to=YYYY-MM-DD, both optional).
func GetMedicineUsageReport(c *gin.Context) {
	query := config.DB.Model(&models.ExaminationItem{}).
		Select("medicines.id AS medicine_id, medicines.name AS medicine_name, medicines.unit AS unit, COALESCE(SUM(examination_items.quantity), 0) AS total_used").
		Joins("JOIN medicines ON medicines.id = examination_items.medicine_id").
		Joins("JOIN examination_records ON examination_records.id = examination_items.examination_record_id")

	if from := c.Query("from"); from != "" {
		fromDate, err := time.ParseInLocation("2006-01-02", from, time.Local)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid from date, expected YYYY-MM-DD")
			return
		}
		query = query.Where("examination_records.date >= ?", fromDate)
	}
	if to := c.Query("to"); to != "" {
		toDate, err := time.ParseInLocation("2006-01-02", to, time.Local)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid to date, expected YYYY-MM-DD")
			return
		}
		query = query.Where("examination_records.date <= ?", toDate)
	}

	var rows []MedicineUsageRow
	err := query.
		Group("medicines.id, medicines.name, medicines.unit").
		Order("total_used DESC").
		Scan(&rows).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to build medicine usage report")
		return
	}

	c.JSON(http.StatusOK, rows)
}
