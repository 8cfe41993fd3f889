// controllers/catalog.go
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

type CreateMedicineInput struct {
	Name        string `json:"name" binding:"required"`
	Price       int64  `json:"price" binding:"required,min=1"`
	Unit        string `json:"unit" binding:"required"`
	Description string `json:"description"`
	CategoryID  uint   `json:"categoryId" binding:"required"`
}

type UpdateMedicineInput struct {
	Name        *string `json:"name"`
	Price       *int64  `json:"price"`
	Unit        *string `json:"unit"`
	Description *string `json:"description"`
	CategoryID  *uint   `json:"categoryId"`
	IsActive    *bool   `json:"isActive"`
}

// GetMedicines lists the active catalog, optionally filtered by category id
// and a name keyword.
func GetMedicines(c *gin.Context) {
	query := config.DB.Where("is_active = ?", true)

	if categoryID := c.Query("categoryId"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if kw := c.Query("kw"); kw != "" {
		query = query.Where("name ILIKE ?", "%"+kw+"%")
	}

	var medicines []models.Medicine
	if err := query.Find(&medicines).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve medicines")
		return
	}

	c.JSON(http.StatusOK, medicines)
}

// CreateMedicine adds one medicine to the catalog.
func CreateMedicine(c *gin.Context) {
	var input CreateMedicineInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var category models.MedicineCategory
	if err := config.DB.First(&category, "id = ?", input.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Category not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	medicine := models.Medicine{
		Name:        input.Name,
		Price:       input.Price,
		Unit:        input.Unit,
		Description: input.Description,
		CategoryID:  input.CategoryID,
		IsActive:    true,
	}

	if err := config.DB.Create(&medicine).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create medicine")
		return
	}

	c.JSON(http.StatusCreated, medicine)
}

// UpdateMedicine changes catalog fields in place. Deactivation replaces
// deletion so old prescriptions keep their medicine rows.
func UpdateMedicine(c *gin.Context) {
	medicineID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input UpdateMedicineInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var medicine models.Medicine
	if err := config.DB.First(&medicine, "id = ?", medicineID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Medicine not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		medicine.Name = *input.Name
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Price must be positive")
			return
		}
		medicine.Price = *input.Price
	}
	if input.Unit != nil {
		medicine.Unit = *input.Unit
	}
	if input.Description != nil {
		medicine.Description = *input.Description
	}
	if input.CategoryID != nil {
		medicine.CategoryID = *input.CategoryID
	}
	if input.IsActive != nil {
		medicine.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&medicine).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update medicine")
		return
	}

	c.JSON(http.StatusOK, medicine)
}

// GetMedicineCategories lists the catalog's categories.
func GetMedicineCategories(c *gin.Context) {
	var categories []models.MedicineCategory
	if err := config.DB.Find(&categories).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve categories")
		return
	}

	c.JSON(http.StatusOK, categories)
}

// GetDiseases lists the known diseases diagnosis text is matched against.
func GetDiseases(c *gin.Context) {
	var diseases []models.Disease
	if err := config.DB.Order("name").Find(&diseases).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve diseases")
		return
	}

	c.JSON(http.StatusOK, diseases)
}
