package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Supplier provides products. Email is optional and, when set, unique among suppliers.
type Supplier struct {
	ID            string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name          string    `json:"name" gorm:"type:varchar(100);not null" validate:"notblank,min=2,max=100"`
	ContactPerson string    `json:"contact_person" gorm:"type:varchar(100)" validate:"max=100"`
	Email         *string   `json:"email" gorm:"type:varchar(100);uniqueIndex:idx_suppliers_email" validate:"omitempty,max=100,contact_email"`
	Phone         string    `json:"phone" gorm:"type:varchar(20)" validate:"max=20"`
	Address       string    `json:"address" gorm:"type:varchar(200)" validate:"max=200"`
	ProductCount  int64     `json:"product_count" gorm:"->;-:migration"`
	CreatedAt     time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (s *Supplier) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

// BeforeSave keeps blank emails out of the unique index.
func (s *Supplier) BeforeSave(tx *gorm.DB) error {
	s.Normalize()
	return nil
}

// Normalize trims the email and clears it when blank.
func (s *Supplier) Normalize() {
	if s.Email == nil {
		return
	}
	email := strings.TrimSpace(*s.Email)
	if email == "" {
		s.Email = nil
		return
	}
	s.Email = &email
}

// EmailValue returns the email or an empty string.
func (s *Supplier) EmailValue() string {
	if s.Email == nil {
		return ""
	}
	return *s.Email
}

// Assign copies the mutable fields of other onto s.
func (s *Supplier) Assign(other *Supplier) {
	s.Name = other.Name
	s.ContactPerson = other.ContactPerson
	s.Email = other.Email
	s.Phone = other.Phone
	s.Address = other.Address
}
