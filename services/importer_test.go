package services

import (
	"strings"
	"testing"
	"time"

	"github.com/nareshagarwalTech/shree-shyam-pharmacy/utils"

	"github.com/xuri/excelize/v2"
)

func TestParseImportFileAliasResolution(t *testing.T) {
	csvData := "Customer,Mobile\nRamesh Kumar,9876543210\n"

	result := ParseImportFile([]byte(csvData))
	if !result.Success {
		t.Fatalf("expected success, errors: %+v", result.Errors)
	}
	if len(result.Customers) != 1 {
		t.Fatalf("expected 1 customer, got %d", len(result.Customers))
	}
	if result.Customers[0].Phone != "9876543210" {
		t.Fatalf("mobile column did not resolve to phone: %+v", result.Customers[0])
	}
}

func TestParseImportFileMissingRequiredColumns(t *testing.T) {
	csvData := "notes,address\nsome note,some address\n"

	result := ParseImportFile([]byte(csvData))
	if result.Success {
		t.Fatal("expected batch failure for missing required columns")
	}
	if len(result.Customers) != 0 {
		t.Fatalf("expected no candidates, got %d", len(result.Customers))
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected a single batch error, got %d", len(result.Errors))
	}
	msg := result.Errors[0].Message
	if !strings.Contains(msg, "name") || !strings.Contains(msg, "phone") {
		t.Fatalf("error should name both missing columns: %q", msg)
	}
	if !strings.Contains(msg, "notes") || !strings.Contains(msg, "address") {
		t.Fatalf("error should echo the found headers: %q", msg)
	}
}

func TestParseImportFileRowLevelDualOutcome(t *testing.T) {
	csvData := "name,phone\n" +
		"Ramesh Kumar,9876543210\n" +
		"Bad Row,987654321\n" + // 9 digits
		"Lakshmi Devi,9123456789\n"

	result := ParseImportFile([]byte(csvData))
	if !result.Success {
		t.Fatal("partial success must still report Success true")
	}
	if len(result.Customers) != 2 {
		t.Fatalf("expected 2 customers, got %d", len(result.Customers))
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d: %+v", len(result.Errors), result.Errors)
	}
	if result.Errors[0].Row != 3 {
		t.Fatalf("expected error on row 3 (1-indexed with header), got %d", result.Errors[0].Row)
	}
	if result.Errors[0].Value != "987654321" {
		t.Fatalf("expected offending value attached, got %q", result.Errors[0].Value)
	}
	if result.Customers[0].Name != "Ramesh Kumar" || result.Customers[1].Name != "Lakshmi Devi" {
		t.Fatalf("rows 1 and 3 should survive: %+v", result.Customers)
	}
}

func TestParseImportFileMissingNameAndPhone(t *testing.T) {
	csvData := "name,phone\n" +
		",9876543210\n" +
		"Ramesh Kumar,\n"

	result := ParseImportFile([]byte(csvData))
	if len(result.Customers) != 0 {
		t.Fatalf("expected no candidates, got %d", len(result.Customers))
	}
	if len(result.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(result.Errors))
	}
	if result.Errors[0].Message != "Name is required" {
		t.Fatalf("unexpected first error: %+v", result.Errors[0])
	}
	if result.Errors[1].Message != "Phone is required" {
		t.Fatalf("unexpected second error: %+v", result.Errors[1])
	}
}

func TestParseImportFileDeduplication(t *testing.T) {
	csvData := "name,phone\n" +
		"Ramesh Kumar,98765 43210\n" +
		"Ramesh Duplicate,9876543210\n"

	result := ParseImportFile([]byte(csvData))
	if !result.Success {
		t.Fatalf("expected success, errors: %+v", result.Errors)
	}
	if len(result.Customers) != 1 {
		t.Fatalf("expected 1 candidate after dedup, got %d", len(result.Customers))
	}
	if result.Customers[0].Name != "Ramesh Kumar" {
		t.Fatalf("first occurrence should win, got %q", result.Customers[0].Name)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("dropped duplicates must not produce row errors: %+v", result.Errors)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "9876543210") {
		t.Fatalf("expected one warning naming the phone, got %+v", result.Warnings)
	}
}

func TestParseImportFileCountryCodePhone(t *testing.T) {
	csvData := "name,phone\nRamesh Kumar,919876543210\n"

	result := ParseImportFile([]byte(csvData))
	if len(result.Customers) != 1 {
		t.Fatalf("expected 1 customer, got %d (%+v)", len(result.Customers), result.Errors)
	}
	if result.Customers[0].Phone != "9876543210" {
		t.Fatalf("expected 91 prefix stripped, got %q", result.Customers[0].Phone)
	}
}

func TestParseImportFileMedicationBundle(t *testing.T) {
	csvData := "name,phone,medication,quantity,daily_dosage,start_date\n" +
		"Ramesh Kumar,9876543210,Metformin 500mg,60,2,15-01-2024\n"

	result := ParseImportFile([]byte(csvData))
	if len(result.Customers) != 1 {
		t.Fatalf("expected 1 customer, got %d (%+v)", len(result.Customers), result.Errors)
	}
	med := result.Customers[0].Medication
	if med == nil {
		t.Fatal("expected a medication bundle")
	}
	if med.Quantity != 60 || med.DailyDosage != 2 {
		t.Fatalf("unexpected supply values: %+v", med)
	}
	if med.StartDate != "2024-01-15" {
		t.Fatalf("expected start 2024-01-15, got %s", med.StartDate)
	}
	if med.RefillDate != "2024-02-11" {
		t.Fatalf("expected refill 2024-02-11, got %s", med.RefillDate)
	}
}

func TestParseImportFileMedicationDefaults(t *testing.T) {
	csvData := "name,phone,medication,quantity,daily_dosage\n" +
		"Ramesh Kumar,9876543210,BP Medicine,,\n" +
		"Lakshmi Devi,9123456789,Sugar Medicine,0,junk\n"

	result := ParseImportFile([]byte(csvData))
	if len(result.Customers) != 2 {
		t.Fatalf("expected 2 customers, got %d (%+v)", len(result.Customers), result.Errors)
	}
	for _, c := range result.Customers {
		if c.Medication.Quantity != 30 || c.Medication.DailyDosage != 1 {
			t.Errorf("%s: expected defaults 30/1, got %d/%d",
				c.Name, c.Medication.Quantity, c.Medication.DailyDosage)
		}
	}
}

func TestParseImportFileUnparseableDateIsWarning(t *testing.T) {
	csvData := "name,phone,medication,start_date\n" +
		"Ramesh Kumar,9876543210,Metformin,not-a-date\n"

	result := ParseImportFile([]byte(csvData))
	if len(result.Customers) != 1 {
		t.Fatalf("row should still be accepted, errors: %+v", result.Errors)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("bad optional date must not be an error: %+v", result.Errors)
	}
	if len(result.Warnings) == 0 || !strings.Contains(result.Warnings[0], "not-a-date") {
		t.Fatalf("expected a warning naming the bad value, got %+v", result.Warnings)
	}
	today := utils.ISODate(time.Now())
	if result.Customers[0].Medication.StartDate != today {
		t.Fatalf("expected start date to default to today %s, got %s",
			today, result.Customers[0].Medication.StartDate)
	}
}

func TestParseImportFileRefillBeforeStartWarns(t *testing.T) {
	// quantity 2 / dosage 1 -> refill a day before the start date
	csvData := "name,phone,medication,quantity,daily_dosage,start_date\n" +
		"Ramesh Kumar,9876543210,Metformin,2,1,2024-03-10\n"

	result := ParseImportFile([]byte(csvData))
	if len(result.Customers) != 1 {
		t.Fatalf("row should be accepted, errors: %+v", result.Errors)
	}
	if result.Customers[0].Medication.RefillDate != "2024-03-09" {
		t.Fatalf("expected refill 2024-03-09, got %s", result.Customers[0].Medication.RefillDate)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "before its start date") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a refill-before-start warning, got %+v", result.Warnings)
	}
}

func TestParseImportFileTitleCasesNames(t *testing.T) {
	csvData := "name,phone\nramesh KUMAR,9876543210\n"

	result := ParseImportFile([]byte(csvData))
	if len(result.Customers) != 1 {
		t.Fatalf("expected 1 customer, got %d", len(result.Customers))
	}
	if result.Customers[0].Name != "Ramesh Kumar" {
		t.Fatalf("expected title case, got %q", result.Customers[0].Name)
	}
}

func TestParseImportFileEmpty(t *testing.T) {
	for _, data := range []string{"", "name,phone\n"} {
		result := ParseImportFile([]byte(data))
		if result.Success {
			t.Errorf("empty input %q should fail the batch", data)
		}
		if len(result.Errors) != 1 || result.Errors[0].Field != "file" {
			t.Errorf("expected a single file error, got %+v", result.Errors)
		}
	}
}

func TestParseFlexibleDateRoundTrip(t *testing.T) {
	want := "2024-01-15"
	inputs := []string{
		"2024-01-15",
		"15-01-2024",
		"15/01/2024",
		"15-01-24",
		"15/01/24",
		"15-1-2024",
		"15/1/2024",
	}
	for _, input := range inputs {
		parsed, ok := ParseFlexibleDate(input)
		if !ok {
			t.Errorf("%q: expected parse to succeed", input)
			continue
		}
		if got := utils.ISODate(parsed); got != want {
			t.Errorf("%q: expected %s, got %s", input, want, got)
		}
	}
}

func TestParseFlexibleDateRejectsInvalid(t *testing.T) {
	for _, input := range []string{"", "garbage", "31-02-2024", "2024-13-01"} {
		if _, ok := ParseFlexibleDate(input); ok {
			t.Errorf("%q: expected parse to fail", input)
		}
	}
}

func TestParseImportFileXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"name", "phone", "medication", "quantity", "daily_dosage", "start_date"},
		{"ramesh kumar", "98765 43210", "Metformin 500mg", "60", "2", "15-01-2024"},
		{"Lakshmi Devi", "9123456789", "", "", "", ""},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set sheet row: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	result := ParseImportFile(buf.Bytes())
	if !result.Success {
		t.Fatalf("expected success, errors: %+v", result.Errors)
	}
	if len(result.Customers) != 2 {
		t.Fatalf("expected 2 customers, got %d", len(result.Customers))
	}
	if result.Customers[0].Name != "Ramesh Kumar" || result.Customers[0].Phone != "9876543210" {
		t.Fatalf("unexpected first candidate: %+v", result.Customers[0])
	}
	if result.Customers[0].Medication == nil || result.Customers[0].Medication.RefillDate != "2024-02-11" {
		t.Fatalf("unexpected medication: %+v", result.Customers[0].Medication)
	}
	if result.Customers[1].Medication != nil {
		t.Fatalf("row without medication name must not get a bundle: %+v", result.Customers[1].Medication)
	}
}

func TestSampleCSVParses(t *testing.T) {
	result := ParseImportFile([]byte(SampleCSV()))
	if !result.Success {
		t.Fatalf("sample template should import cleanly, errors: %+v", result.Errors)
	}
	if len(result.Customers) != 3 {
		t.Fatalf("expected 3 sample customers, got %d", len(result.Customers))
	}
}
