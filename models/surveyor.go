package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Surveyor is an inspector allowed to create reports.
type Surveyor struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"size:100;not null"`
	Email        string    `gorm:"size:100;uniqueIndex;not null"`
	Phone        string    `gorm:"size:15;uniqueIndex;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	IsActive     bool      `gorm:"default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (s *Surveyor) BeforeCreate(tx *gorm.DB) (err error) {
	s.ID = uuid.New()
	return
}
