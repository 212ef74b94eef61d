// utils/whatsapp.go
package utils

import (
	"net/url"
	"regexp"
	"strings"
)

var nonDigit = regexp.MustCompile(`\D`)

// NormalizePhone strips everything but digits and drops a leading "91"
// country code from 12-digit values, yielding the canonical 10-digit form.
func NormalizePhone(phone string) string {
	clean := nonDigit.ReplaceAllString(phone, "")
	if len(clean) == 12 && strings.HasPrefix(clean, "91") {
		clean = clean[2:]
	}
	return clean
}

// ValidateIndianPhone reports whether phone is a valid Indian mobile number:
// 10 digits with a leading 6-9, optionally prefixed with the 91 country code.
func ValidateIndianPhone(phone string) bool {
	clean := nonDigit.ReplaceAllString(phone, "")
	if len(clean) == 12 && strings.HasPrefix(clean, "91") {
		clean = clean[2:]
	}
	return len(clean) == 10 && clean[0] >= '6' && clean[0] <= '9'
}

// WhatsAppURL builds a wa.me click-to-chat link with a pre-filled message.
// The number gets the 91 country code when it is a bare 10-digit mobile.
func WhatsAppURL(phone, message string) string {
	clean := strings.TrimPrefix(strings.TrimSpace(phone), "+")
	clean = nonDigit.ReplaceAllString(clean, "")
	if len(clean) == 10 {
		clean = "91" + clean
	}
	return "https://wa.me/" + clean + "?text=" + url.QueryEscape(message)
}

// FormatPhoneDisplay renders a phone number in the XXXXX XXXXX style used
// across the dashboard. Unrecognized shapes pass through untouched.
func FormatPhoneDisplay(phone string) string {
	clean := nonDigit.ReplaceAllString(phone, "")
	if len(clean) == 10 {
		return clean[:5] + " " + clean[5:]
	}
	if len(clean) == 12 && strings.HasPrefix(clean, "91") {
		return "+91 " + clean[2:7] + " " + clean[7:]
	}
	return phone
}

// TitleCase capitalizes the first letter of each space-separated word.
func TitleCase(s string) string {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(s)))
	for i, w := range words {
		r := []rune(w)
		r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
