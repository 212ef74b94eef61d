package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/nareshagarwalTech/shree-shyam-pharmacy/config"
	"github.com/nareshagarwalTech/shree-shyam-pharmacy/models"
	"github.com/nareshagarwalTech/shree-shyam-pharmacy/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultPageSize = 20

// CreateCustomerInput defines the expected JSON structure for creating a customer
type CreateCustomerInput struct {
	Name           string `json:"name" binding:"required"`
	Phone          string `json:"phone" binding:"required"`
	AlternatePhone string `json:"alternatePhone"`
	Address        string `json:"address"`
	Notes          string `json:"notes"`
}

// UpdateCustomerInput defines the expected JSON structure for updating a customer
type UpdateCustomerInput struct {
	Name           *string `json:"name"`
	Phone          *string `json:"phone"`
	AlternatePhone *string `json:"alternatePhone"`
	Address        *string `json:"address"`
	Notes          *string `json:"notes"`
	IsActive       *bool   `json:"isActive"`
}

// CreateCustomer creates a new customer
func CreateCustomer(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var input CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidateIndianPhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number (must be 10 digits starting with 6-9)")
		return
	}
	phone := utils.NormalizePhone(input.Phone)

	// Check if phone already exists
	var existingCustomer models.Customer
	if err := config.DB.Where("phone = ?", phone).
		First(&existingCustomer).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Customer with this phone number already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	customer := models.Customer{
		ID:              uuid.New(),
		CreatedByUserID: uuid.Must(uuid.Parse(userID.(string))),
		Name:            utils.TitleCase(input.Name),
		Phone:           phone,
		AlternatePhone:  input.AlternatePhone,
		Address:         input.Address,
		Notes:           input.Notes,
		IsActive:        true,
	}

	if err := config.DB.Create(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer")
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// GetCustomers retrieves customers with optional search and pagination
func GetCustomers(c *gin.Context) {
	query := config.DB.Model(&models.Customer{}).Where("is_active = true")

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("name ILIKE ? OR phone LIKE ?", like, "%"+utils.NormalizePhone(search)+"%")
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(defaultPageSize)))
	if pageSize < 1 || pageSize > 100 {
		pageSize = defaultPageSize
	}

	var total int64
	query.Session(&gorm.Session{}).Count(&total)

	var customers []models.Customer
	err := query.
		Preload("Medications", "is_active = true").
		Order("name asc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&customers).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customers": customers,
		"total":     total,
		"page":      page,
		"pageSize":  pageSize,
	})
}

// GetCustomer retrieves a specific customer with their medications
func GetCustomer(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var customer models.Customer
	if err := config.DB.Preload("Medications", "is_active = true").
		First(&customer, "id = ?", customerUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer updates an existing customer
func UpdateCustomer(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var input UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
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

	if input.Name != nil {
		customer.Name = utils.TitleCase(*input.Name)
	}
	if input.Phone != nil {
		if !utils.ValidateIndianPhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number (must be 10 digits starting with 6-9)")
			return
		}
		phone := utils.NormalizePhone(*input.Phone)

		if customer.Phone != phone {
			var existingCustomer models.Customer
			if err := config.DB.Where("phone = ?", phone).
				First(&existingCustomer).Error; err == nil {
				utils.RespondWithError(c, http.StatusConflict, "Another customer with this phone number already exists")
				return
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
				return
			}
		}
		customer.Phone = phone
	}
	if input.AlternatePhone != nil {
		customer.AlternatePhone = *input.AlternatePhone
	}
	if input.Address != nil {
		customer.Address = *input.Address
	}
	if input.Notes != nil {
		customer.Notes = *input.Notes
	}
	if input.IsActive != nil {
		customer.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer")
		return
	}

	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer soft deletes a customer; records are never hard-deleted
func DeleteCustomer(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	result := config.DB.Model(&models.Customer{}).
		Where("id = ? AND is_active = true", customerUUID).
		Update("is_active", false)

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete customer")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}
