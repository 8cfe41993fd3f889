// controllers/respond.go
package controllers

import (
	"errors"
	"log"
	"net/http"

	"clinicdesk-backend/services"
	"clinicdesk-backend/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError converts a workflow failure into its HTTP status and
// user-facing message. Anything unrecognized is treated as a storage error.
func respondServiceError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrNoListYet),
		errors.Is(err, services.ErrNotRegisteredToday),
		errors.Is(err, services.ErrMedicineNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrAlreadyRegistered),
		errors.Is(err, services.ErrListExists),
		errors.Is(err, services.ErrRecordExists),
		errors.Is(err, services.ErrAlreadyPaid):
		status = http.StatusConflict
	case errors.Is(err, services.ErrCapacityExceeded):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrMissingFields),
		errors.Is(err, services.ErrWrongDay):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		// The cause goes to the logs; the client only ever sees the
		// generic message.
		log.Printf("Storage error: %v", err)
		utils.RespondWithError(c, status, "Storage error")
		return
	}
	utils.RespondWithError(c, status, err.Error())
}
