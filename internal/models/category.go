package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups products. ProductCount is derived from the products table
// and is only populated by queries that select it.
type Category struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name         string    `json:"name" gorm:"type:varchar(50);not null;uniqueIndex:idx_categories_name" validate:"notblank,min=2,max=50"`
	Description  string    `json:"description" gorm:"type:varchar(200)" validate:"max=200"`
	ProductCount int64     `json:"product_count" gorm:"->;-:migration"`
	CreatedAt    time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// Assign copies the mutable fields of other onto c.
func (c *Category) Assign(other *Category) {
	c.Name = other.Name
	c.Description = other.Description
}
