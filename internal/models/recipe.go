package models

import (
	"time"
)

// Recipe belongs to exactly one chef. The foreign key is enforced by the
// database, not by application code.
type Recipe struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Image       string    `gorm:"size:1024;not null;default:''" json:"image"`
	Likes       int       `gorm:"not null;default:0" json:"likes"`
	Dislikes    int       `gorm:"not null;default:0" json:"dislikes"`
	ChefID      uint      `gorm:"not null;index" json:"chef_id"`
	Chef        *Chef     `gorm:"constraint:OnDelete:RESTRICT;" json:"chef,omitempty"`
}

// All returns every model managed by the schema initializer, in dependency order.
func All() []interface{} {
	return []interface{}{
		&Chef{},
		&Recipe{},
	}
}
