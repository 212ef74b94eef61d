package controllers

import (
	"io"
	"net/http"

	"github.com/nareshagarwalTech/shree-shyam-pharmacy/config"
	"github.com/nareshagarwalTech/shree-shyam-pharmacy/services"
	"github.com/nareshagarwalTech/shree-shyam-pharmacy/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxImportBytes = 10 << 20 // 10 MB

// PreviewImport parses an uploaded spreadsheet/CSV and returns the validated
// candidate batch. Nothing is persisted here: the batch lives only until the
// staff member confirms it.
func PreviewImport(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImportBytes+1))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}
	if len(data) > maxImportBytes {
		utils.RespondWithError(c, http.StatusRequestEntityTooLarge, "File exceeds the 10 MB import limit")
		return
	}

	result := services.ParseImportFile(data)
	c.JSON(http.StatusOK, result)
}

type ConfirmImportInput struct {
	Customers []services.ImportedCustomer `json:"customers" binding:"required"`
}

// ConfirmImport persists a previously previewed batch. Each candidate is
// written independently; one failure never rolls back the others.
func ConfirmImport(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}
	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	var input ConfirmImportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if len(input.Customers) == 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "No customers to import")
		return
	}

	persister := services.NewImportPersister(config.DB)
	outcome := persister.PersistBatch(input.Customers, userUUID)

	c.JSON(http.StatusOK, outcome)
}

// DownloadImportTemplate serves the sample CSV staff can fill in.
func DownloadImportTemplate(c *gin.Context) {
	c.Header("Content-Disposition", `attachment; filename="customer_import_template.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(services.SampleCSV()))
}
