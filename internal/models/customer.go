// customer.go
//
// CSE Whiteboard, a customer tracking service for customer success engineers.
// Copyright (c) 2026 CSE Whiteboard authors.

package models

import (
	"time"
)

// Customer temperament values.
const (
	TemperamentHappy      = "happy"
	TemperamentSatisfied  = "satisfied"
	TemperamentNeutral    = "neutral"
	TemperamentConcerned  = "concerned"
	TemperamentFrustrated = "frustrated"
)

// Customer topology (environment stage) values.
const (
	TopologyDev   = "dev"
	TopologyQA    = "qa"
	TopologyStage = "stage"
	TopologyProd  = "prod"
)

// Customer represents a customer record owned by a single CSE user.
// Customers are archived, never deleted through the API.
type Customer struct {
	ID               uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name             string     `gorm:"size:255;not null" json:"name"`
	LastPatchDate    *time.Time `gorm:"type:date" json:"lastPatchDate"`
	LastPatchVersion *string    `gorm:"size:100" json:"lastPatchVersion"`
	PatchFrequency   string     `gorm:"size:20;not null;default:monthly" json:"patchFrequency"`
	Temperament      string     `gorm:"size:20;not null;default:neutral" json:"temperament"`
	Topology         string     `gorm:"size:20;not null;default:dev" json:"topology"`
	DumbledoreStage  int        `gorm:"not null;default:1" json:"dumbledoreStage"`
	Workload         *string    `gorm:"size:255" json:"workload"`
	CloudManager     *string    `gorm:"size:50" json:"cloudManager"`
	Products         StringList `json:"products"`
	MscURL           *string    `gorm:"size:2048" json:"mscUrl"`
	RunbookURL       *string    `gorm:"size:2048" json:"runbookUrl"`
	SnowURL          *string    `gorm:"size:2048" json:"snowUrl"`
	Archived         bool       `gorm:"not null;default:false" json:"archived"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
	UserID           string     `gorm:"size:64;not null;index" json:"userId"`

	Notes     []CustomerNote     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Todos     []Todo             `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	AuditLogs []CustomerAuditLog `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// CustomerNote is a timestamped rich-text (HTML) note attached to a customer.
// Notes are append-and-edit; there is no delete path.
type CustomerNote struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID uint64    `gorm:"not null;index" json:"customerId"`
	Note       string    `gorm:"type:text;not null" json:"note"`
	CreatedAt  time.Time `gorm:"index:idx_customer_notes_user_created" json:"createdAt"`
	UserID     string    `gorm:"size:64;not null;index:idx_customer_notes_user_created" json:"userId"`

	Todos     []Todo                 `gorm:"foreignKey:NoteID;constraint:OnDelete:SET NULL" json:"-"`
	AuditLogs []CustomerNoteAuditLog `gorm:"foreignKey:NoteID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName overrides the table name for Customer
func (Customer) TableName() string {
	return "customers"
}

// TableName overrides the table name for CustomerNote
func (CustomerNote) TableName() string {
	return "customer_notes"
}
