package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/nareshagarwalTech/shree-shyam-pharmacy/config"
	"github.com/nareshagarwalTech/shree-shyam-pharmacy/models"
	"github.com/nareshagarwalTech/shree-shyam-pharmacy/services"
	"github.com/nareshagarwalTech/shree-shyam-pharmacy/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateMedicationInput defines the expected JSON structure. RefillDate is
// not accepted: it is always derived from the other three fields.
type CreateMedicationInput struct {
	Name        string `json:"name" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required,min=1"`
	DailyDosage int    `json:"dailyDosage" binding:"required,min=1"`
	StartDate   string `json:"startDate" binding:"required"` // yyyy-MM-dd
	Notes       string `json:"notes"`
}

type UpdateMedicationInput struct {
	Name        *string `json:"name"`
	Quantity    *int    `json:"quantity" binding:"omitempty,min=1"`
	DailyDosage *int    `json:"dailyDosage" binding:"omitempty,min=1"`
	StartDate   *string `json:"startDate"`
	Notes       *string `json:"notes"`
	IsActive    *bool   `json:"isActive"`
}

// MedicationView is a medication plus its read-time classification.
type MedicationView struct {
	models.Medication
	DaysUntilRefill int             `json:"daysUntilRefill"`
	StatusLabel     services.Status `json:"status"`
	DaysText        string          `json:"daysText"`
}

func medicationView(m models.Medication, today time.Time) MedicationView {
	daysUntil := services.DaysUntil(m.RefillDate, today)
	return MedicationView{
		Medication:      m,
		DaysUntilRefill: daysUntil,
		StatusLabel:     services.ClassifyDays(daysUntil),
		DaysText:        services.FormatRelativeDays(daysUntil),
	}
}

// CreateMedication adds a medication to a customer and computes its refill date
func CreateMedication(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var customer models.Customer
	if err := config.DB.First(&customer, "id = ?", customerUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var input CreateMedicationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	startDate, err := time.Parse("2006-01-02", input.StartDate)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid start date, expected yyyy-MM-dd")
		return
	}

	refillDate, err := services.ComputeRefillDate(startDate, input.Quantity, input.DailyDosage, services.DefaultBufferDays)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	medication := models.Medication{
		CustomerID:  customer.ID,
		Name:        input.Name,
		Quantity:    input.Quantity,
		DailyDosage: input.DailyDosage,
		StartDate:   startDate,
		RefillDate:  refillDate,
		Notes:       input.Notes,
		IsActive:    true,
	}

	if err := config.DB.Create(&medication).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create medication")
		return
	}

	c.JSON(http.StatusCreated, medicationView(medication, time.Now()))
}

// UpdateMedication updates a medication, recomputing the refill date when
// any of the supply parameters change
func UpdateMedication(c *gin.Context) {
	medicationUUID, err := uuid.Parse(c.Param("medicationId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid medication ID format")
		return
	}

	var input UpdateMedicationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var medication models.Medication
	if err := config.DB.First(&medication, "id = ?", medicationUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Medication not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	recompute := false
	if input.Name != nil {
		medication.Name = *input.Name
	}
	if input.Quantity != nil {
		medication.Quantity = *input.Quantity
		recompute = true
	}
	if input.DailyDosage != nil {
		medication.DailyDosage = *input.DailyDosage
		recompute = true
	}
	if input.StartDate != nil {
		startDate, err := time.Parse("2006-01-02", *input.StartDate)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid start date, expected yyyy-MM-dd")
			return
		}
		medication.StartDate = startDate
		recompute = true
	}
	if input.Notes != nil {
		medication.Notes = *input.Notes
	}
	if input.IsActive != nil {
		medication.IsActive = *input.IsActive
	}

	if recompute {
		refillDate, err := services.ComputeRefillDate(medication.StartDate, medication.Quantity, medication.DailyDosage, services.DefaultBufferDays)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		medication.RefillDate = refillDate
	}

	if err := config.DB.Save(&medication).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update medication")
		return
	}

	c.JSON(http.StatusOK, medicationView(medication, time.Now()))
}

// DeleteMedication soft deletes a medication
func DeleteMedication(c *gin.Context) {
	medicationUUID, err := uuid.Parse(c.Param("medicationId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid medication ID format")
		return
	}

	result := config.DB.Model(&models.Medication{}).
		Where("id = ? AND is_active = true", medicationUUID).
		Update("is_active", false)

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete medication")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Medication not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Medication deleted successfully"})
}
