// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/nareshagarwalTech/shree-shyam-pharmacy/config"
	"github.com/nareshagarwalTech/shree-shyam-pharmacy/models"
	"github.com/nareshagarwalTech/shree-shyam-pharmacy/utils"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

const (
	LanguageEnglish = "english"
	LanguageTelugu  = "telugu"
)

type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
	now    func() time.Time
}

func NewReminderService(db *gorm.DB) *ReminderService {
	s := &ReminderService{db: db, now: time.Now}

	// Twilio is optional: without credentials the service still produces
	// click-to-chat links, it just never pushes messages itself.
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	if accountSid != "" && authToken != "" {
		s.client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		})
	}

	return s
}

// Built-in refill templates, used when no active template row matches.
// Placeholders are filled with strings.ReplaceAll at dispatch time.
var builtinRefillTemplates = map[string]string{
	LanguageEnglish: `*[PharmacyName]*

Namaste [CustomerName] ji,

This is a friendly reminder that your *[Medication]* [DaysText].

Please visit us or call to place your order.

[PharmacyAddress]
[PharmacyPhone]

Thank you for choosing [PharmacyName]!`,
	LanguageTelugu: `*[PharmacyName]*

నమస్కారం [CustomerName] గారు,

మీ *[Medication]* [DaysText].

దయచేసి మా షాప్ కి రండి లేదా ఆర్డర్ చేయడానికి కాల్ చేయండి.

[PharmacyAddress]
[PharmacyPhone]

[PharmacyName] ని ఎంచుకున్నందుకు ధన్యవాదాలు!`,
}

// SeedDefaultTemplates inserts the built-in refill templates as editable
// rows, once. Existing rows are left alone.
func SeedDefaultTemplates(db *gorm.DB) {
	for language, message := range builtinRefillTemplates {
		var count int64
		db.Model(&models.ReminderTemplate{}).
			Where("type = ? AND language = ?", "refill", language).Count(&count)
		if count > 0 {
			continue
		}
		tmpl := models.ReminderTemplate{
			Type:     "refill",
			Language: language,
			Message:  message,
			IsActive: true,
		}
		if err := db.Create(&tmpl).Error; err != nil {
			log.Printf("Failed to seed %s refill template: %v", language, err)
		}
	}
}

// DaysText phrases the refill urgency for the message body.
func DaysText(daysUntil int, language string) string {
	if language == LanguageTelugu {
		switch {
		case daysUntil < 0:
			return fmt.Sprintf("%d రోజులు ఆలస్యమైంది", -daysUntil)
		case daysUntil == 0:
			return "ఈ రోజు రీఫిల్ చేయాలి"
		case daysUntil == 1:
			return "రేపు రీఫిల్ చేయాలి"
		default:
			return fmt.Sprintf("%d రోజుల్లో రీఫిల్ చేయాలి", daysUntil)
		}
	}
	switch {
	case daysUntil < 0:
		overdue := -daysUntil
		if overdue == 1 {
			return "is overdue by 1 day"
		}
		return fmt.Sprintf("is overdue by %d days", overdue)
	case daysUntil == 0:
		return "needs refill today"
	case daysUntil == 1:
		return "needs refill tomorrow"
	default:
		return fmt.Sprintf("is due for refill in %d days", daysUntil)
	}
}

func (s *ReminderService) refillTemplate(language string) string {
	var tmpl models.ReminderTemplate
	err := s.db.Where("type = ? AND language = ? AND is_active = true", "refill", language).
		First(&tmpl).Error
	if err == nil {
		return tmpl.Message
	}
	if msg, ok := builtinRefillTemplates[language]; ok {
		return msg
	}
	return builtinRefillTemplates[LanguageEnglish]
}

// BuildReminderMessage fills a refill template for one customer/medication.
func (s *ReminderService) BuildReminderMessage(customerName, medicationName string, daysUntil int, language string) string {
	msg := s.refillTemplate(language)
	msg = strings.ReplaceAll(msg, "[PharmacyName]", config.Pharmacy.Name)
	msg = strings.ReplaceAll(msg, "[PharmacyAddress]", config.Pharmacy.Address)
	msg = strings.ReplaceAll(msg, "[PharmacyPhone]", config.Pharmacy.Phone)
	msg = strings.ReplaceAll(msg, "[CustomerName]", customerName)
	msg = strings.ReplaceAll(msg, "[Medication]", medicationName)
	msg = strings.ReplaceAll(msg, "[DaysText]", DaysText(daysUntil, language))
	return msg
}

// DispatchResult is what a reminder attempt produced. For click-to-chat the
// "sent" status only means the link was built; delivery is never confirmed.
type DispatchResult struct {
	Message     string `json:"message"`
	WhatsAppURL string `json:"whatsappUrl"`
	Channel     string `json:"channel"`
	Status      string `json:"status"`
}

// Dispatch builds the reminder for a customer/medication pair, pushes it
// through Twilio when configured, and appends the immutable log entry.
func (s *ReminderService) Dispatch(customer models.Customer, medication *models.Medication, channel, language, sentBy string) DispatchResult {
	daysUntil := 0
	medicationName := "medicine"
	var medicationID *uuid.UUID
	if medication != nil {
		daysUntil = DaysUntil(medication.RefillDate, s.now())
		medicationName = medication.Name
		medicationID = &medication.ID
	}

	message := s.BuildReminderMessage(customer.Name, medicationName, daysUntil, language)

	result := DispatchResult{
		Message:     message,
		WhatsAppURL: utils.WhatsAppURL(customer.Phone, message),
		Channel:     channel,
		Status:      "sent",
	}

	errorMsg := ""
	if s.client != nil && (channel == "whatsapp" || channel == "sms") {
		errorMsg = s.sendViaTwilio(customer.Phone, message, channel)
		if errorMsg != "" {
			result.Status = "failed"
		}
	}

	reminderLog := models.ReminderLog{
		CustomerID:   customer.ID,
		MedicationID: medicationID,
		Message:      message,
		Status:       result.Status,
		ErrorMessage: errorMsg,
		Channel:      channel,
		SentAt:       s.now(),
		SentBy:       sentBy,
	}
	if err := s.db.Create(&reminderLog).Error; err != nil {
		log.Printf("Failed to log reminder for customer %s: %v", customer.ID, err)
	}

	return result
}

func (s *ReminderService) sendViaTwilio(phone, message, channel string) string {
	to := "+91" + utils.NormalizePhone(phone)
	params := &twilioApi.CreateMessageParams{}
	params.SetBody(message)

	if channel == "whatsapp" {
		params.SetTo("whatsapp:" + to)
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetTo(to)
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("Failed to send message to %s: %v", phone, err)
		return err.Error()
	}
	if resp.Sid != nil {
		log.Printf("Message sent to %s, SID: %s", phone, *resp.Sid)
	}
	return ""
}

// StartScheduler runs the owner summary every day at 9 AM.
func (s *ReminderService) StartScheduler() {
	c := cron.New()

	c.AddFunc("0 9 * * *", func() {
		s.SendDailySummary()
	})

	c.Start()
	log.Println("Reminder scheduler started")
}

// SendDailySummary re-queries already-classified records and formats counts
// for the owner; it never re-derives scheduling logic of its own.
func (s *ReminderService) SendDailySummary() {
	today := utils.BeginningOfDay(s.now())

	var medications []models.Medication
	err := s.db.
		Joins("JOIN customers ON customers.id = medications.customer_id AND customers.is_active = true AND customers.deleted_at IS NULL").
		Where("medications.is_active = true AND medications.refill_date <= ?", today).
		Find(&medications).Error
	if err != nil {
		log.Printf("[CRON] Failed to fetch due medications: %v", err)
		return
	}

	if len(medications) == 0 {
		log.Println("[CRON] No reminders due today")
		return
	}

	var overdue, urgent, dueToday int
	for _, m := range medications {
		daysUntil := DaysUntil(m.RefillDate, today)
		switch {
		case daysUntil < 0:
			overdue++
		case daysUntil == 0:
			dueToday++
		}
		if ClassifyDays(daysUntil) == StatusUrgent {
			urgent++
		}
	}

	message := BuildSummaryMessage(today, overdue, urgent, dueToday, len(medications))
	url := utils.WhatsAppURL(config.OwnerWhatsApp, message)

	log.Printf("[CRON] Daily summary: %d reminders pending", len(medications))
	log.Printf("[CRON] Owner summary link: %s", url)
}

// BuildSummaryMessage formats the owner's daily pending-reminders digest.
func BuildSummaryMessage(date time.Time, overdue, urgent, dueToday, total int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*%s*\n", config.Pharmacy.Name)
	fmt.Fprintf(&b, "Daily Reminder Summary\n%s\n\n", date.Format("Monday, 2 Jan 2006"))
	if overdue > 0 {
		fmt.Fprintf(&b, "%d OVERDUE - need immediate attention!\n", overdue)
	}
	fmt.Fprintf(&b, "Urgent: %d\n", urgent)
	fmt.Fprintf(&b, "Due Today: %d\n", dueToday)
	fmt.Fprintf(&b, "Total Pending: %d\n", total)
	return b.String()
}
