// controllers/queue.go
package controllers

import (
	"net/http"

	"clinicdesk-backend/config"
	"clinicdesk-backend/services"
	"clinicdesk-backend/utils"

	"github.com/gin-gonic/gin"
)

type RegisterWalkInInput struct {
	Phone string `json:"phone" binding:"required"`
}

// CreateTodayList is the nurse's manual "create list" action. Creating a list
// that already exists is a no-op reported as a conflict.
func CreateTodayList(c *gin.Context) {
	registration := services.NewRegistrationService(config.DB)

	list, err := registration.EnsureTodayList()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Appointment list created for today",
		"list":    list,
	})
}

// RegisterWalkIn puts a patient, looked up by phone number, on today's queue.
func RegisterWalkIn(c *gin.Context) {
	var input RegisterWalkInInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	registration := services.NewRegistrationService(config.DB)

	detail, err := registration.RegisterWalkIn(input.Phone)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"detail":  detail,
	})
}

// GetTodayQueue lists the patients registered on today's list.
func GetTodayQueue(c *gin.Context) {
	registration := services.NewRegistrationService(config.DB)

	patients, err := registration.TodayQueue()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, patients)
}

// GetAppointmentLists returns every day's list, newest first.
func GetAppointmentLists(c *gin.Context) {
	registration := services.NewRegistrationService(config.DB)

	lists, err := registration.ListDates()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, lists)
}
