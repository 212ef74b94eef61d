package config

import "os"

// PharmacyInfo is the public contact card served on the marketing site and
// embedded in outgoing WhatsApp messages.
type PharmacyInfo struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	WhatsApp      string `json:"whatsapp"` // country code, no + sign
	Email         string `json:"email"`
	Address       string `json:"address"`
	Tagline       string `json:"tagline"`
	HoursWeekdays string `json:"hoursWeekdays"`
	HoursSunday   string `json:"hoursSunday"`
}

// OwnerWhatsApp is where the daily summary goes.
var OwnerWhatsApp string

var Pharmacy PharmacyInfo

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func LoadPharmacyInfo() {
	Pharmacy = PharmacyInfo{
		Name:          envOr("PHARMACY_NAME", "Shree Shyam Pharmacy"),
		Phone:         envOr("PHARMACY_PHONE", "+91 98765 43210"),
		WhatsApp:      envOr("PHARMACY_WHATSAPP", "919876543210"),
		Email:         envOr("PHARMACY_EMAIL", "contact@shreeshyampharmacy.in"),
		Address:       envOr("PHARMACY_ADDRESS", "Shop No. 12, Main Road, Kukatpally, Hyderabad, Telangana - 500072"),
		Tagline:       envOr("PHARMACY_TAGLINE", "Your Health, Our Priority"),
		HoursWeekdays: envOr("PHARMACY_HOURS_WEEKDAYS", "8:00 AM - 10:00 PM"),
		HoursSunday:   envOr("PHARMACY_HOURS_SUNDAY", "9:00 AM - 2:00 PM"),
	}
	OwnerWhatsApp = envOr("OWNER_WHATSAPP_NUMBER", Pharmacy.WhatsApp)
}
