// note.go
//
// CSE Whiteboard, a customer tracking service for customer success engineers.
// Copyright (c) 2026 CSE Whiteboard authors.

package services

import (
	"errors"

	"github.com/cseboard/cse-whiteboard/internal/models"
	"github.com/cseboard/cse-whiteboard/internal/validation"
	"gorm.io/gorm"
)

// AddNote attaches a note to an owned customer and writes its create snapshot
// in the same transaction. The body is stored as the editor produced it.
func AddNote(db *gorm.DB, userID string, customerID uint64, in *validation.AddNoteInput) (*models.CustomerNote, error) {
	var note *models.CustomerNote
	err := db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Customer{}).
			Where("id = ? AND user_id = ?", customerID, userID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}

		n := &models.CustomerNote{
			CustomerID: customerID,
			Note:       in.Note,
			UserID:     userID,
		}
		if err := tx.Create(n).Error; err != nil {
			return err
		}
		if err := logNoteCreate(tx, n, userID); err != nil {
			return err
		}
		note = n
		return nil
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}

// ListNotes returns an owned customer's notes, newest first.
func ListNotes(db *gorm.DB, userID string, customerID uint64) ([]models.CustomerNote, error) {
	if _, err := GetCustomer(db, userID, customerID); err != nil {
		return nil, err
	}

	var notes []models.CustomerNote
	err := db.Where("customer_id = ?", customerID).
		Order("created_at desc, id desc").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// UpdateNote replaces the body of an owned note and writes the change row.
// Ownership is checked on the note itself; the customer id in the route is
// not consulted here.
func UpdateNote(db *gorm.DB, userID string, noteID uint64, in *validation.UpdateNoteInput) (*models.CustomerNote, error) {
	var updated *models.CustomerNote
	err := db.Transaction(func(tx *gorm.DB) error {
		var note models.CustomerNote
		if err := tx.Where("id = ? AND user_id = ?", noteID, userID).First(&note).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		oldBody := note.Note
		note.Note = in.Note
		if err := tx.Save(&note).Error; err != nil {
			return err
		}
		if err := logNoteUpdate(tx, note.ID, oldBody, note.Note, userID); err != nil {
			return err
		}
		updated = &note
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
