// services/importer.go
package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nareshagarwalTech/shree-shyam-pharmacy/utils"

	"github.com/xuri/excelize/v2"
)

// ImportedMedication is the medication bundle attached to an import row.
// RefillDate is pre-computed from the other three fields before the
// candidate ever reaches storage.
type ImportedMedication struct {
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	DailyDosage int    `json:"daily_dosage"`
	StartDate   string `json:"start_date"`  // ISO yyyy-MM-dd
	RefillDate  string `json:"refill_date"` // ISO yyyy-MM-dd
}

// ImportedCustomer is one validated candidate from a spreadsheet row.
type ImportedCustomer struct {
	Name           string              `json:"name"`
	Phone          string              `json:"phone"` // canonical 10-digit form
	AlternatePhone string              `json:"alternate_phone,omitempty"`
	Address        string              `json:"address,omitempty"`
	Notes          string              `json:"notes,omitempty"`
	Medication     *ImportedMedication `json:"medication,omitempty"`
}

type ImportError struct {
	Row     int    `json:"row"` // 1-indexed, header row is 1
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

// ImportResult is the whole batch outcome. Success is false only when the
// file itself is unusable (unreadable bytes, no rows, missing required
// columns); rejected rows leave Success true with per-row Errors.
type ImportResult struct {
	Success   bool               `json:"success"`
	Customers []ImportedCustomer `json:"customers"`
	Errors    []ImportError      `json:"errors"`
	Warnings  []string           `json:"warnings"`
}

var requiredColumns = []string{"name", "phone"}

// Header aliases, normalized form -> canonical field. Covers the column
// names staff sheets actually use, including Telugu headings.
var columnAliases = map[string]string{
	"customer_name": "name",
	"customer":      "name",
	"naam":          "name",
	"పేరు":          "name",
	"mobile":        "phone",
	"phone_number":  "phone",
	"contact":       "phone",
	"mobile_no":     "phone",
	"ఫోన్":          "phone",
	"addr":          "address",
	"location":      "address",
	"చిరునామా":      "address",
	"medicine":      "medication",
	"med":           "medication",
	"drug":          "medication",
	"మందు":          "medication",
	"qty":           "quantity",
	"tablets":       "quantity",
	"pills":         "quantity",
	"సంఖ్య":         "quantity",
	"dosage":        "daily_dosage",
	"per_day":       "daily_dosage",
	"daily":         "daily_dosage",
	"రోజుకు":        "daily_dosage",
	"date":          "start_date",
	"purchase_date": "start_date",
	"bought_on":     "start_date",
	"తేదీ":          "start_date",
}

// normalizeColumnName lowercases a header, collapses whitespace to single
// underscores and resolves it through the alias table.
func normalizeColumnName(col string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(col))), "_")
	if canonical, ok := columnAliases[normalized]; ok {
		return canonical
	}
	return normalized
}

// Flexible date layouts tried after ISO, in this fixed order. Day-first
// formats are what local sheets use; single-digit variants come last.
var flexibleDateLayouts = []string{
	"02-01-2006",
	"02/01/2006",
	"02-01-06",
	"02/01/06",
	"2006-01-02",
	"2-1-2006",
	"2/1/2006",
}

// ParseFlexibleDate parses a date cell. ISO wins first, then the fixed
// layout list; the first layout producing a valid calendar date is taken.
// Every date value in an import goes through here, whatever the upstream
// cell type claimed to be.
func ParseFlexibleDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	for _, layout := range flexibleDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// readTable turns the uploaded bytes into a header row plus data rows.
// XLSX payloads (zip magic) go through excelize, everything else is read
// as CSV.
func readTable(data []byte) ([]string, [][]string, error) {
	if bytes.HasPrefix(data, []byte("PK\x03\x04")) {
		f, err := excelize.OpenReader(bytes.NewReader(data))
		if err != nil {
			return nil, nil, err
		}
		defer f.Close()

		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil, fmt.Errorf("workbook has no sheets")
		}
		rows, err := f.GetRows(sheets[0])
		if err != nil {
			return nil, nil, err
		}
		if len(rows) == 0 {
			return nil, nil, nil
		}
		return rows[0], rows[1:], nil
	}

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\ufeff"))))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, nil
	}
	return records[0], records[1:], nil
}

// ParseImportFile ingests a spreadsheet/CSV payload and produces the
// validated candidate batch. Bad rows are recorded and skipped; only an
// unusable file or missing required columns fail the whole batch.
func ParseImportFile(data []byte) ImportResult {
	result := ImportResult{
		Customers: []ImportedCustomer{},
		Errors:    []ImportError{},
		Warnings:  []string{},
	}

	headers, rows, err := readTable(data)
	if err != nil {
		result.Errors = append(result.Errors, ImportError{
			Row: 0, Field: "file", Message: "Failed to parse file: " + err.Error(),
		})
		return result
	}
	if len(headers) == 0 || len(rows) == 0 {
		result.Errors = append(result.Errors, ImportError{
			Row: 0, Field: "file", Message: "File is empty or has no data rows",
		})
		return result
	}

	// Resolve headers to canonical field names
	canonical := make([]string, len(headers))
	present := map[string]bool{}
	for i, h := range headers {
		canonical[i] = normalizeColumnName(h)
		present[canonical[i]] = true
	}

	var missing []string
	for _, col := range requiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		result.Errors = append(result.Errors, ImportError{
			Row:   0,
			Field: "columns",
			Message: fmt.Sprintf("Missing required columns: %s. Found columns: %s",
				strings.Join(missing, ", "), strings.Join(headers, ", ")),
		})
		return result
	}

	for i, row := range rows {
		rowNum := i + 2 // 1-indexed plus header row

		fields := map[string]string{}
		for j, name := range canonical {
			if j < len(row) {
				fields[name] = row[j]
			}
		}

		name := strings.TrimSpace(fields["name"])
		if name == "" {
			result.Errors = append(result.Errors, ImportError{
				Row: rowNum, Field: "name", Message: "Name is required",
			})
			continue
		}

		rawPhone := strings.TrimSpace(fields["phone"])
		if rawPhone == "" {
			result.Errors = append(result.Errors, ImportError{
				Row: rowNum, Field: "phone", Message: "Phone is required",
			})
			continue
		}
		if !utils.ValidateIndianPhone(rawPhone) {
			result.Errors = append(result.Errors, ImportError{
				Row:     rowNum,
				Field:   "phone",
				Message: "Invalid phone number (must be 10 digits starting with 6-9)",
				Value:   rawPhone,
			})
			continue
		}

		customer := ImportedCustomer{
			Name:           utils.TitleCase(name),
			Phone:          utils.NormalizePhone(rawPhone),
			Address:        strings.TrimSpace(fields["address"]),
			AlternatePhone: strings.TrimSpace(fields["alternate_phone"]),
			Notes:          strings.TrimSpace(fields["notes"]),
		}

		if medName := strings.TrimSpace(fields["medication"]); medName != "" {
			quantity := parsePositiveInt(fields["quantity"], 30)
			dosage := parsePositiveInt(fields["daily_dosage"], 1)

			startDate := utils.BeginningOfDay(time.Now())
			if raw := strings.TrimSpace(fields["start_date"]); raw != "" {
				if parsed, ok := ParseFlexibleDate(raw); ok {
					startDate = parsed
				} else {
					result.Warnings = append(result.Warnings,
						fmt.Sprintf("Row %d: Could not parse date %q, using today", rowNum, raw))
				}
			}

			// Dosage is guaranteed >= 1 here, so this cannot fail.
			refillDate, _ := ComputeRefillDate(startDate, quantity, dosage, DefaultBufferDays)
			if refillDate.Before(utils.BeginningOfDay(startDate)) {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("Row %d: refill date for %q falls before its start date; check quantity and dosage", rowNum, medName))
			}

			customer.Medication = &ImportedMedication{
				Name:        medName,
				Quantity:    quantity,
				DailyDosage: dosage,
				StartDate:   utils.ISODate(startDate),
				RefillDate:  utils.ISODate(refillDate),
			}
		}

		result.Customers = append(result.Customers, customer)
	}

	result.Customers = dedupeByPhone(result.Customers, &result.Warnings)
	result.Success = true
	return result
}

func parsePositiveInt(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// dedupeByPhone keeps the first occurrence of each phone number, in row
// order, and records one batch warning naming the collapsed numbers.
// Dropped duplicates are deliberately not reported as row errors.
func dedupeByPhone(customers []ImportedCustomer, warnings *[]string) []ImportedCustomer {
	count := map[string]int{}
	for _, c := range customers {
		count[c.Phone]++
	}

	var duplicated []string
	seen := map[string]bool{}
	for _, c := range customers {
		if count[c.Phone] > 1 && !seen[c.Phone] {
			duplicated = append(duplicated, c.Phone)
		}
		seen[c.Phone] = true
	}
	if len(duplicated) == 0 {
		return customers
	}

	*warnings = append(*warnings,
		fmt.Sprintf("Duplicate phone numbers found: %s. Only first entry will be used.",
			strings.Join(duplicated, ", ")))

	kept := customers[:0:0]
	taken := map[string]bool{}
	for _, c := range customers {
		if taken[c.Phone] {
			continue
		}
		taken[c.Phone] = true
		kept = append(kept, c)
	}
	return kept
}

// SampleCSV is the downloadable import template.
func SampleCSV() string {
	var b strings.Builder
	w := csv.NewWriter(&b)
	w.Write([]string{"name", "phone", "address", "medication", "quantity", "daily_dosage", "start_date"})
	w.Write([]string{"Ramesh Kumar", "9876543210", "Kukatpally, Hyderabad", "Metformin 500mg", "60", "2", "15-01-2024"})
	w.Write([]string{"Lakshmi Devi", "9123456789", "Ameerpet", "BP Medicine", "30", "1", "20-01-2024"})
	w.Write([]string{"Venkat Rao", "9988776655", "Secunderabad", "", "", "", ""})
	w.Flush()
	return b.String()
}
