// customer.go
//
// CSE Whiteboard, a customer tracking service for customer success engineers.
// Copyright (c) 2026 CSE Whiteboard authors.

package services

import (
	"errors"
	"time"

	"github.com/cseboard/cse-whiteboard/internal/models"
	"github.com/cseboard/cse-whiteboard/internal/validation"
	"gorm.io/gorm"
)

func parseDatePtr(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

func strPtrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// CreateCustomer inserts a customer for the user and writes its create
// snapshot in the same transaction.
func CreateCustomer(db *gorm.DB, userID string, in *validation.CreateCustomerInput) (*models.Customer, error) {
	in.ApplyDefaults()

	customer := &models.Customer{
		Name:             in.Name,
		LastPatchDate:    parseDatePtr(in.LastPatchDate),
		LastPatchVersion: strPtrOrNil(in.LastPatchVersion),
		Temperament:      in.Temperament,
		Topology:         in.Topology,
		DumbledoreStage:  in.DumbledoreStage,
		PatchFrequency:   in.PatchFrequency,
		Workload:         strPtrOrNil(in.Workload),
		CloudManager:     strPtrOrNil(in.CloudManager),
		Products:         in.Products,
		MscURL:           strPtrOrNil(in.MscURL),
		RunbookURL:       strPtrOrNil(in.RunbookURL),
		SnowURL:          strPtrOrNil(in.SnowURL),
		UserID:           userID,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(customer).Error; err != nil {
			return err
		}
		return logCustomerCreate(tx, customer, userID)
	})
	if err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer fetches one customer owned by the user. A customer that exists
// under another user is reported not found, same as a missing one.
func GetCustomer(db *gorm.DB, userID string, id uint64) (*models.Customer, error) {
	var customer models.Customer
	err := db.Where("id = ? AND user_id = ?", id, userID).First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// ListCustomers returns the user's customers ordered by name. includeArchived
// widens the default active-only view.
func ListCustomers(db *gorm.DB, userID string, includeArchived bool) ([]models.Customer, error) {
	query := db.Where("user_id = ?", userID)
	if !includeArchived {
		query = query.Where("archived = ?", false)
	}

	var customers []models.Customer
	if err := query.Order("name asc").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// UpdateCustomer applies the full edit form to an owned customer, writing one
// audit row per field that actually changed. Read, apply, and audit run in a
// single transaction so the diff matches what was persisted.
func UpdateCustomer(db *gorm.DB, userID string, id uint64, in *validation.UpdateCustomerInput) (*models.Customer, error) {
	var updated *models.Customer
	err := db.Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&customer).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		old := customer

		customer.Name = in.Name
		customer.LastPatchDate = parseDatePtr(in.LastPatchDate)
		customer.LastPatchVersion = strPtrOrNil(in.LastPatchVersion)
		customer.Temperament = in.Temperament
		customer.Topology = in.Topology
		customer.DumbledoreStage = in.DumbledoreStage
		customer.PatchFrequency = in.PatchFrequency
		customer.Workload = strPtrOrNil(in.Workload)
		customer.CloudManager = strPtrOrNil(in.CloudManager)
		customer.Products = in.Products
		customer.MscURL = strPtrOrNil(in.MscURL)
		customer.RunbookURL = strPtrOrNil(in.RunbookURL)
		customer.SnowURL = strPtrOrNil(in.SnowURL)

		if err := tx.Save(&customer).Error; err != nil {
			return err
		}
		if err := logCustomerUpdate(tx, &old, &customer, userID); err != nil {
			return err
		}
		updated = &customer
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// SetCustomerArchived flips the archive flag on an owned customer and writes
// the archive row. Setting the flag to its current value still writes the row.
func SetCustomerArchived(db *gorm.DB, userID string, id uint64, archived bool) (*models.Customer, error) {
	var updated *models.Customer
	err := db.Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&customer).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		customer.Archived = archived
		if err := tx.Save(&customer).Error; err != nil {
			return err
		}
		if err := logCustomerArchived(tx, customer.ID, archived, userID); err != nil {
			return err
		}
		updated = &customer
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ListCustomerAudit returns a customer's audit trail, newest first. The trail
// covers only the customer record itself; note and todo changes live in their
// own logs.
func ListCustomerAudit(db *gorm.DB, userID string, customerID uint64) ([]models.CustomerAuditLog, error) {
	if _, err := GetCustomer(db, userID, customerID); err != nil {
		return nil, err
	}

	var logs []models.CustomerAuditLog
	err := db.Where("customer_id = ?", customerID).
		Order("created_at desc, id desc").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
