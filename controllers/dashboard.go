package controllers

import (
	"net/http"
	"sort"
	"time"

	"github.com/nareshagarwalTech/shree-shyam-pharmacy/config"
	"github.com/nareshagarwalTech/shree-shyam-pharmacy/models"
	"github.com/nareshagarwalTech/shree-shyam-pharmacy/services"
	"github.com/nareshagarwalTech/shree-shyam-pharmacy/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DashboardOverview struct {
	TotalCustomers     int64                   `json:"totalCustomers"`
	ActiveMedications  int64                   `json:"activeMedications"`
	StatusCounts       map[services.Status]int `json:"statusCounts"`
	DueToday           int                     `json:"dueToday"`
	RemindersSentToday int64                   `json:"remindersSentToday"`
	UpcomingRefills    []UpcomingRefill        `json:"upcomingRefills"`
}

type UpcomingRefill struct {
	CustomerName    string          `json:"customerName"`
	MedicationName  string          `json:"medicationName"`
	RefillDate      string          `json:"refillDate"`
	DaysUntilRefill int             `json:"daysUntilRefill"`
	Status          services.Status `json:"status"`
	DaysText        string          `json:"daysText"`
}

func GetDashboardOverview(c *gin.Context) {
	today := utils.BeginningOfDay(time.Now())

	var totalCustomers int64
	config.DB.Model(&models.Customer{}).Where("is_active = true").Count(&totalCustomers)

	var medications []models.Medication
	if err := config.DB.Where("is_active = true").Find(&medications).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve medications")
		return
	}

	customerIDs := make([]uuid.UUID, 0, len(medications))
	for _, m := range medications {
		customerIDs = append(customerIDs, m.CustomerID)
	}
	customerNames := map[uuid.UUID]string{}
	if len(customerIDs) > 0 {
		var customers []models.Customer
		config.DB.Where("id IN ? AND is_active = true", customerIDs).Find(&customers)
		for _, cust := range customers {
			customerNames[cust.ID] = cust.Name
		}
	}

	overview := DashboardOverview{
		TotalCustomers: totalCustomers,
		StatusCounts: map[services.Status]int{
			services.StatusOverdue: 0,
			services.StatusUrgent:  0,
			services.StatusSoon:    0,
			services.StatusOK:      0,
		},
		UpcomingRefills: []UpcomingRefill{},
	}

	for _, m := range medications {
		name, ok := customerNames[m.CustomerID]
		if !ok {
			continue
		}
		overview.ActiveMedications++

		daysUntil := services.DaysUntil(m.RefillDate, today)
		status := services.ClassifyDays(daysUntil)
		overview.StatusCounts[status]++
		if daysUntil == 0 {
			overview.DueToday++
		}

		if status != services.StatusOK {
			overview.UpcomingRefills = append(overview.UpcomingRefills, UpcomingRefill{
				CustomerName:    name,
				MedicationName:  m.Name,
				RefillDate:      utils.ISODate(m.RefillDate),
				DaysUntilRefill: daysUntil,
				Status:          status,
				DaysText:        services.FormatRelativeDays(daysUntil),
			})
		}
	}

	sort.SliceStable(overview.UpcomingRefills, func(i, j int) bool {
		return overview.UpcomingRefills[i].DaysUntilRefill < overview.UpcomingRefills[j].DaysUntilRefill
	})
	if len(overview.UpcomingRefills) > 7 {
		overview.UpcomingRefills = overview.UpcomingRefills[:7]
	}

	config.DB.Model(&models.ReminderLog{}).
		Where("sent_at >= ?", today).
		Count(&overview.RemindersSentToday)

	c.JSON(http.StatusOK, overview)
}
