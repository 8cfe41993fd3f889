// controllers/patient.go
package controllers

import (
	"errors"
	"net/http"

	"clinicdesk-backend/config"
	"clinicdesk-backend/models"
	"clinicdesk-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetPatients lists active patient accounts, optionally filtered by phone
// (?phone=...), for the front-desk lookup screen.
func GetPatients(c *gin.Context) {
	query := config.DB.Where("role = ? AND is_active = ?", models.RolePatient, true)

	if phone := c.Query("phone"); phone != "" {
		query = query.Where("phone = ?", phone)
	}

	var patients []models.User
	if err := query.Find(&patients).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve patients")
		return
	}

	c.JSON(http.StatusOK, patients)
}

// GetPatient returns one patient by id.
func GetPatient(c *gin.Context) {
	patientID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var patient models.User
	err := config.DB.Where("id = ? AND role = ?", patientID, models.RolePatient).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Patient not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, patient)
}
