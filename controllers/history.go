package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/nareshagarwalTech/shree-shyam-pharmacy/config"
	"github.com/nareshagarwalTech/shree-shyam-pharmacy/models"
	"github.com/nareshagarwalTech/shree-shyam-pharmacy/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetReminderHistory lists dispatched reminders newest first, with optional
// date-range, channel and customer filters plus per-status counts.
func GetReminderHistory(c *gin.Context) {
	query := config.DB.Model(&models.ReminderLog{})

	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid from date, expected yyyy-MM-dd")
			return
		}
		query = query.Where("sent_at >= ?", t)
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid to date, expected yyyy-MM-dd")
			return
		}
		query = query.Where("sent_at < ?", t.AddDate(0, 0, 1))
	}
	if channel := c.Query("channel"); channel != "" {
		query = query.Where("channel = ?", channel)
	}
	if customerID := c.Query("customerId"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}

	var total int64
	query.Session(&gorm.Session{}).Count(&total)

	var statusRows []struct {
		Status string
		Count  int64
	}
	query.Session(&gorm.Session{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&statusRows)
	counts := map[string]int64{"sent": 0, "delivered": 0, "failed": 0}
	for _, row := range statusRows {
		counts[row.Status] = row.Count
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(defaultPageSize)))
	if pageSize < 1 || pageSize > 100 {
		pageSize = defaultPageSize
	}

	var logs []models.ReminderLog
	err := query.Order("sent_at desc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&logs).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve history")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"history":  logs,
		"total":    total,
		"counts":   counts,
		"page":     page,
		"pageSize": pageSize,
	})
}
