package models

import (
	"time"
)

// Chef is the identity record that owns recipes.
type Chef struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Surname      string    `gorm:"size:100;not null" json:"surname"`
	Email        string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Rating       float64   `gorm:"not null;default:0" json:"rating"`
}
