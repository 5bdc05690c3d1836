// main.go
//
// CSE Whiteboard, a customer tracking service for customer success engineers.
// Copyright (c) 2026 CSE Whiteboard authors.

// Seeds the database with demo customers and notes for a given user id.
//
// Usage: seed <user-id>
package main

import (
	"log"
	"os"
	"time"

	"github.com/cseboard/cse-whiteboard/internal/config"
	"github.com/cseboard/cse-whiteboard/internal/database"
	"github.com/cseboard/cse-whiteboard/internal/models"
	"gorm.io/gorm"
)

type seedCustomer struct {
	customer models.Customer
	notes    []string
}

func date(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		log.Fatalf("bad seed date %q: %v", s, err)
	}
	return &t
}

func seedData(userID string) []seedCustomer {
	return []seedCustomer{
		{
			customer: models.Customer{
				Name:            "TechStart Solutions",
				LastPatchDate:   date("2024-01-15"),
				Topology:        models.TopologyProd,
				Temperament:     models.TemperamentNeutral,
				DumbledoreStage: 5,
				PatchFrequency:  "monthly",
				UserID:          userID,
			},
			notes: []string{
				"Initial setup completed. Customer is on LTS version 2.4. All systems operational.",
				"Quarterly review conducted. Discussed upgrade path to version 3.0. Customer satisfied with current performance.",
				"Security patch applied successfully. No downtime reported. Customer confirmed all services running smoothly.",
			},
		},
		{
			customer: models.Customer{
				Name:            "Global Enterprises Inc",
				LastPatchDate:   date("2024-01-20"),
				Topology:        models.TopologyStage,
				Temperament:     models.TemperamentNeutral,
				DumbledoreStage: 3,
				PatchFrequency:  "quarterly",
				UserID:          userID,
			},
			notes: []string{
				"LTS support expired last month. Sent renewal notice to procurement team.",
				"Follow-up call scheduled for next week. Customer expressed interest in extended support package.",
			},
		},
		{
			customer: models.Customer{
				Name:            "DataFlow Systems",
				LastPatchDate:   date("2024-01-10"),
				Topology:        models.TopologyProd,
				Temperament:     models.TemperamentNeutral,
				DumbledoreStage: 7,
				PatchFrequency:  "monthly",
				UserID:          userID,
			},
			notes: []string{
				"Migrated to new infrastructure. Performance improved by 40%.",
				"Customer reported minor UI bug. Patch scheduled for next week.",
				"Bug fix deployed and verified. Customer confirmed issue resolved.",
			},
		},
		{
			customer: models.Customer{
				Name:            "CloudNet Partners",
				LastPatchDate:   date("2024-01-25"),
				Topology:        models.TopologyQA,
				Temperament:     models.TemperamentNeutral,
				DumbledoreStage: 2,
				PatchFrequency:  "quarterly",
				UserID:          userID,
			},
			notes: []string{
				"New customer onboarding in progress. Awaiting LTS decision from procurement.",
			},
		},
	}
}

func main() {
	userID := "test_user_123"
	if len(os.Args) > 1 {
		userID = os.Args[1]
	} else {
		log.Println("No userId provided. Usage: seed <user-id>")
		log.Println("Using default test userId. Data will not be visible on the board.")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	for _, sc := range seedData(userID) {
		err := db.Transaction(func(tx *gorm.DB) error {
			customer := sc.customer
			if err := tx.Create(&customer).Error; err != nil {
				return err
			}
			for _, body := range sc.notes {
				note := models.CustomerNote{
					CustomerID: customer.ID,
					Note:       body,
					UserID:     userID,
				}
				if err := tx.Create(&note).Error; err != nil {
					return err
				}
			}
			log.Printf("Created %s with %d notes", customer.Name, len(sc.notes))
			return nil
		})
		if err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
	}

	var count int64
	if err := db.Model(&models.Customer{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		log.Fatalf("Verification failed: %v", err)
	}
	log.Printf("Seeding complete: %d customers for user %s", count, userID)
}
