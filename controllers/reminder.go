// controllers/reminder.go
package controllers

import (
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/nareshagarwalTech/shree-shyam-pharmacy/config"
	"github.com/nareshagarwalTech/shree-shyam-pharmacy/models"
	"github.com/nareshagarwalTech/shree-shyam-pharmacy/services"
	"github.com/nareshagarwalTech/shree-shyam-pharmacy/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var reminderService *services.ReminderService

// SetReminderService wires the dispatch service in at startup.
func SetReminderService(s *services.ReminderService) {
	reminderService = s
}

// CustomerReminder is one due-list row: a customer/medication pair with its
// classification computed against today at read time.
type CustomerReminder struct {
	CustomerID      uuid.UUID       `json:"customerId"`
	CustomerName    string          `json:"customerName"`
	Phone           string          `json:"phone"`
	PhoneDisplay    string          `json:"phoneDisplay"`
	Address         string          `json:"address,omitempty"`
	MedicationID    uuid.UUID       `json:"medicationId"`
	MedicationName  string          `json:"medicationName"`
	Quantity        int             `json:"quantity"`
	DailyDosage     int             `json:"dailyDosage"`
	RefillDate      string          `json:"refillDate"`
	DaysUntilRefill int             `json:"daysUntilRefill"`
	Status          services.Status `json:"status"`
	DaysText        string          `json:"daysText"`
}

// GetDueReminders lists active customer/medication pairs sorted most-overdue
// first, optionally filtered to one status bucket.
func GetDueReminders(c *gin.Context) {
	var medications []models.Medication
	if err := config.DB.Where("is_active = true").Find(&medications).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve medications")
		return
	}

	customerIDs := make([]uuid.UUID, 0, len(medications))
	for _, m := range medications {
		customerIDs = append(customerIDs, m.CustomerID)
	}

	customersByID := map[uuid.UUID]models.Customer{}
	if len(customerIDs) > 0 {
		var customers []models.Customer
		if err := config.DB.Where("id IN ? AND is_active = true", customerIDs).
			Find(&customers).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
			return
		}
		for _, cust := range customers {
			customersByID[cust.ID] = cust
		}
	}

	statusFilter := c.Query("status")
	today := time.Now()

	reminders := []CustomerReminder{}
	for _, m := range medications {
		cust, ok := customersByID[m.CustomerID]
		if !ok {
			continue // customer soft-deleted
		}

		daysUntil := services.DaysUntil(m.RefillDate, today)
		status := services.ClassifyDays(daysUntil)
		if statusFilter != "" && string(status) != statusFilter {
			continue
		}

		reminders = append(reminders, CustomerReminder{
			CustomerID:      cust.ID,
			CustomerName:    cust.Name,
			Phone:           cust.Phone,
			PhoneDisplay:    utils.FormatPhoneDisplay(cust.Phone),
			Address:         cust.Address,
			MedicationID:    m.ID,
			MedicationName:  m.Name,
			Quantity:        m.Quantity,
			DailyDosage:     m.DailyDosage,
			RefillDate:      utils.ISODate(m.RefillDate),
			DaysUntilRefill: daysUntil,
			Status:          status,
			DaysText:        services.FormatRelativeDays(daysUntil),
		})
	}

	// Most overdue first
	sort.SliceStable(reminders, func(i, j int) bool {
		return reminders[i].DaysUntilRefill < reminders[j].DaysUntilRefill
	})

	c.JSON(http.StatusOK, gin.H{"reminders": reminders, "total": len(reminders)})
}

type SendReminderInput struct {
	CustomerID   string `json:"customerId" binding:"required"`
	MedicationID string `json:"medicationId"`
	Channel      string `json:"channel" binding:"omitempty,oneof=whatsapp sms call"`
	Language     string `json:"language" binding:"omitempty,oneof=english telugu"`
}

// SendReminder builds the reminder message for one customer, returns the
// click-to-chat link, and appends the dispatch log.
func SendReminder(c *gin.Context) {
	userID, _ := c.Get("userId")

	var input SendReminderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	customerUUID, err := uuid.Parse(input.CustomerID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var customer models.Customer
	if err := config.DB.First(&customer, "id = ? AND is_active = true", customerUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var medication *models.Medication
	if input.MedicationID != "" {
		medicationUUID, err := uuid.Parse(input.MedicationID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid medication ID format")
			return
		}
		var med models.Medication
		if err := config.DB.First(&med, "id = ? AND customer_id = ?", medicationUUID, customerUUID).Error; err != nil {
			utils.RespondWithError(c, http.StatusNotFound, "Medication not found")
			return
		}
		medication = &med
	}

	channel := input.Channel
	if channel == "" {
		channel = "whatsapp"
	}
	language := input.Language
	if language == "" {
		language = services.LanguageEnglish
	}

	sentBy := ""
	if userID != nil {
		sentBy = userID.(string)
	}

	result := reminderService.Dispatch(customer, medication, channel, language, sentBy)
	c.JSON(http.StatusOK, result)
}

// GetReminderTemplates lists the editable message templates
func GetReminderTemplates(c *gin.Context) {
	var templates []models.ReminderTemplate
	if err := config.DB.Order("type, language").Find(&templates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve templates")
		return
	}
	c.JSON(http.StatusOK, templates)
}

type UpdateTemplateInput struct {
	Type     string  `json:"type" binding:"required,oneof=refill"`
	Language string  `json:"language" binding:"required,oneof=english telugu"`
	Message  *string `json:"message"`
	IsActive *bool   `json:"isActive"`
}

// UpdateReminderTemplate edits one (type, language) template
func UpdateReminderTemplate(c *gin.Context) {
	var input UpdateTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var template models.ReminderTemplate
	if err := config.DB.Where("type = ? AND language = ?", input.Type, input.Language).
		First(&template).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Template not found")
		return
	}

	if input.Message != nil {
		template.Message = *input.Message
	}
	if input.IsActive != nil {
		template.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&template).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update template")
		return
	}

	c.JSON(http.StatusOK, template)
}
