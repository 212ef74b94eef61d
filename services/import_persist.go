// services/import_persist.go
package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/nareshagarwalTech/shree-shyam-pharmacy/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BatchOutcome reports what happened to each candidate during persistence.
type BatchOutcome struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}

type ImportPersister struct {
	db *gorm.DB
}

func NewImportPersister(db *gorm.DB) *ImportPersister {
	return &ImportPersister{db: db}
}

// PersistBatch writes candidates one by one, in order. Existing customers
// (matched by phone) are updated, new ones created. A failed candidate is
// logged and counted but never aborts the rest of the batch; there is no
// transaction across candidates.
func (s *ImportPersister) PersistBatch(candidates []ImportedCustomer, createdBy uuid.UUID) BatchOutcome {
	outcome := BatchOutcome{}

	for _, candidate := range candidates {
		created, err := s.persistOne(candidate, createdBy)
		if err != nil {
			log.Printf("Import: failed to persist %s (%s): %v", candidate.Name, candidate.Phone, err)
			outcome.Failed++
			outcome.Errors = append(outcome.Errors,
				fmt.Sprintf("%s (%s): %v", candidate.Name, candidate.Phone, err))
			continue
		}
		if created {
			outcome.Created++
		} else {
			outcome.Updated++
		}
	}

	return outcome
}

func (s *ImportPersister) persistOne(candidate ImportedCustomer, createdBy uuid.UUID) (created bool, err error) {
	var customer models.Customer
	err = s.db.Where("phone = ?", candidate.Phone).First(&customer).Error

	switch {
	case err == nil:
		customer.Name = candidate.Name
		if candidate.Address != "" {
			customer.Address = candidate.Address
		}
		if candidate.AlternatePhone != "" {
			customer.AlternatePhone = candidate.AlternatePhone
		}
		if candidate.Notes != "" {
			customer.Notes = candidate.Notes
		}
		customer.IsActive = true
		if err := s.db.Save(&customer).Error; err != nil {
			return false, err
		}

	case errors.Is(err, gorm.ErrRecordNotFound):
		customer = models.Customer{
			CreatedByUserID: createdBy,
			Name:            candidate.Name,
			Phone:           candidate.Phone,
			AlternatePhone:  candidate.AlternatePhone,
			Address:         candidate.Address,
			Notes:           candidate.Notes,
			IsActive:        true,
		}
		if err := s.db.Create(&customer).Error; err != nil {
			return false, err
		}
		created = true

	default:
		return false, err
	}

	if candidate.Medication != nil {
		med, err := medicationFromImport(customer.ID, *candidate.Medication)
		if err != nil {
			return created, err
		}
		if err := s.db.Create(&med).Error; err != nil {
			return created, err
		}
	}

	return created, nil
}

func medicationFromImport(customerID uuid.UUID, m ImportedMedication) (models.Medication, error) {
	startDate, err := time.Parse("2006-01-02", m.StartDate)
	if err != nil {
		return models.Medication{}, fmt.Errorf("bad start date %q: %w", m.StartDate, err)
	}
	refillDate, err := time.Parse("2006-01-02", m.RefillDate)
	if err != nil {
		return models.Medication{}, fmt.Errorf("bad refill date %q: %w", m.RefillDate, err)
	}

	return models.Medication{
		CustomerID:  customerID,
		Name:        m.Name,
		Quantity:    m.Quantity,
		DailyDosage: m.DailyDosage,
		StartDate:   startDate,
		RefillDate:  refillDate,
		IsActive:    true,
	}, nil
}
