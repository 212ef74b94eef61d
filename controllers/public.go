package controllers

import (
	"net/http"

	"github.com/nareshagarwalTech/shree-shyam-pharmacy/config"
	"github.com/nareshagarwalTech/shree-shyam-pharmacy/utils"

	"github.com/gin-gonic/gin"
)

// GetPharmacyInfo serves the public contact card for the marketing site.
func GetPharmacyInfo(c *gin.Context) {
	info := config.Pharmacy
	c.JSON(http.StatusOK, gin.H{
		"pharmacy":    info,
		"whatsappUrl": utils.WhatsAppURL(info.WhatsApp, "Hi, I would like to order medicines."),
	})
}
