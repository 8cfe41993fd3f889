// controllers/rules.go
package controllers

import (
	"errors"
	"net/http"

	"clinicdesk-backend/config"
	"clinicdesk-backend/utils"

	"github.com/gin-gonic/gin"
)

type UpdateRulesInput struct {
	ExaminationFee    int64 `json:"examinationFee"`
	MaxPatientsPerDay int   `json:"maxPatientsPerDay"`
}

// GetRules returns the current daily capacity rule.
func GetRules(c *gin.Context) {
	rules, err := config.LoadRules()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to read clinic rules")
		return
	}

	c.JSON(http.StatusOK, rules)
}

// UpdateRules replaces the rule document. Rejected input leaves the stored
// rule unchanged and is answered together with the prior values so the admin
// screen can re-render them.
func UpdateRules(c *gin.Context) {
	var input UpdateRulesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		// Non-numeric input never reaches the rule file.
		prior, loadErr := config.LoadRules()
		if loadErr != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to read clinic rules")
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error": config.ErrRulesInvalid.Error(),
			"rules": prior,
		})
		return
	}

	updated := config.ClinicRules{
		ExaminationFee:    input.ExaminationFee,
		MaxPatientsPerDay: input.MaxPatientsPerDay,
	}

	if err := config.SaveRules(updated); err != nil {
		if errors.Is(err, config.ErrRulesInvalid) {
			prior, loadErr := config.LoadRules()
			if loadErr != nil {
				utils.RespondWithError(c, http.StatusInternalServerError, "Failed to read clinic rules")
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
				"rules": prior,
			})
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save clinic rules")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Clinic rules updated",
		"rules":   updated,
	})
}
