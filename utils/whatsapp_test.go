package utils

import "testing"

func TestValidateIndianPhone(t *testing.T) {
	cases := []struct {
		phone string
		want  bool
	}{
		{"9876543210", true},
		{"6123456789", true},
		{"98765 43210", true},
		{"98765-43210", true},
		{"919876543210", true}, // country code
		{"+91 98765 43210", true},
		{"987654321", false},   // 9 digits
		{"98765432101", false}, // 11 digits
		{"5876543210", false},  // bad leading digit
		{"", false},
		{"abcdefghij", false},
	}
	for _, tc := range cases {
		if got := ValidateIndianPhone(tc.phone); got != tc.want {
			t.Errorf("%q: expected %v, got %v", tc.phone, tc.want, got)
		}
	}
}

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"98765 43210", "9876543210"},
		{"919876543210", "9876543210"},
		{"+91-98765-43210", "9876543210"},
		{"9876543210", "9876543210"},
	}
	for _, tc := range cases {
		if got := NormalizePhone(tc.in); got != tc.want {
			t.Errorf("%q: expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestWhatsAppURL(t *testing.T) {
	url := WhatsAppURL("9876543210", "Hello Ramesh ji")
	want := "https://wa.me/919876543210?text=Hello+Ramesh+ji"
	if url != want {
		t.Fatalf("expected %q, got %q", want, url)
	}

	// Already has the country code
	url = WhatsAppURL("919876543210", "Hi")
	if url != "https://wa.me/919876543210?text=Hi" {
		t.Fatalf("unexpected URL: %q", url)
	}
}

func TestFormatPhoneDisplay(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"9876543210", "98765 43210"},
		{"919876543210", "+91 98765 43210"},
		{"12345", "12345"}, // unknown shape passes through
	}
	for _, tc := range cases {
		if got := FormatPhoneDisplay(tc.in); got != tc.want {
			t.Errorf("%q: expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestTitleCase(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"ramesh kumar", "Ramesh Kumar"},
		{"LAKSHMI DEVI", "Lakshmi Devi"},
		{"  venkat   rao  ", "Venkat Rao"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := TitleCase(tc.in); got != tc.want {
			t.Errorf("%q: expected %q, got %q", tc.in, tc.want, got)
		}
	}
}
