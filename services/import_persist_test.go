package services

import (
	"testing"

	"github.com/nareshagarwalTech/shree-shyam-pharmacy/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Medication{},
		&models.ReminderTemplate{},
		&models.ReminderLog{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestPersistBatchCreatesCustomerWithMedication(t *testing.T) {
	db := newTestDB(t)
	persister := NewImportPersister(db)

	candidates := []ImportedCustomer{
		{
			Name:  "Ramesh Kumar",
			Phone: "9876543210",
			Medication: &ImportedMedication{
				Name:        "Metformin 500mg",
				Quantity:    60,
				DailyDosage: 2,
				StartDate:   "2024-01-15",
				RefillDate:  "2024-02-11",
			},
		},
		{Name: "Lakshmi Devi", Phone: "9123456789"},
	}

	outcome := persister.PersistBatch(candidates, uuid.New())
	if outcome.Created != 2 || outcome.Updated != 0 || outcome.Failed != 0 {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}

	var customer models.Customer
	if err := db.Preload("Medications").First(&customer, "phone = ?", "9876543210").Error; err != nil {
		t.Fatalf("load customer: %v", err)
	}
	if len(customer.Medications) != 1 {
		t.Fatalf("expected 1 medication, got %d", len(customer.Medications))
	}
	med := customer.Medications[0]
	if med.Quantity != 60 || med.DailyDosage != 2 {
		t.Fatalf("unexpected medication: %+v", med)
	}
	if med.RefillDate.Format("2006-01-02") != "2024-02-11" {
		t.Fatalf("unexpected refill date: %s", med.RefillDate)
	}
}

func TestPersistBatchUpdatesExistingByPhone(t *testing.T) {
	db := newTestDB(t)
	persister := NewImportPersister(db)

	first := persister.PersistBatch([]ImportedCustomer{
		{Name: "Ramesh Kumar", Phone: "9876543210", Address: "Kukatpally"},
	}, uuid.New())
	if first.Created != 1 {
		t.Fatalf("unexpected first outcome: %+v", first)
	}

	second := persister.PersistBatch([]ImportedCustomer{
		{Name: "Ramesh K Kumar", Phone: "9876543210"},
	}, uuid.New())
	if second.Created != 0 || second.Updated != 1 {
		t.Fatalf("unexpected second outcome: %+v", second)
	}

	var count int64
	db.Model(&models.Customer{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected a single customer, got %d", count)
	}

	var customer models.Customer
	db.First(&customer, "phone = ?", "9876543210")
	if customer.Name != "Ramesh K Kumar" {
		t.Fatalf("name not updated: %q", customer.Name)
	}
	if customer.Address != "Kukatpally" {
		t.Fatalf("existing address should survive an update without one: %q", customer.Address)
	}
}

func TestPersistBatchFailureDoesNotAbortBatch(t *testing.T) {
	db := newTestDB(t)
	persister := NewImportPersister(db)

	candidates := []ImportedCustomer{
		{Name: "Ramesh Kumar", Phone: "9876543210"},
		{
			Name:  "Broken Row",
			Phone: "9988776655",
			Medication: &ImportedMedication{
				Name:        "Metformin",
				Quantity:    30,
				DailyDosage: 1,
				StartDate:   "not-a-date",
				RefillDate:  "2024-02-11",
			},
		},
		{Name: "Lakshmi Devi", Phone: "9123456789"},
	}

	outcome := persister.PersistBatch(candidates, uuid.New())
	if outcome.Failed != 1 {
		t.Fatalf("expected 1 failure, got %+v", outcome)
	}
	if len(outcome.Errors) != 1 {
		t.Fatalf("expected 1 error entry, got %+v", outcome.Errors)
	}

	// The rows before and after the failure must both be persisted
	for _, phone := range []string{"9876543210", "9123456789"} {
		var count int64
		db.Model(&models.Customer{}).Where("phone = ?", phone).Count(&count)
		if count != 1 {
			t.Errorf("customer %s missing after batch", phone)
		}
	}
}
