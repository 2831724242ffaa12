package models

import (
	"errors"
	"time"
)

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	if p.CreatedAt.IsZero() {
		return errors.New("created_at cannot be zero")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (p *Post) BeforeCreate() {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}

// BeforeUpdate refreshes the update timestamp
func (p *Post) BeforeUpdate() {
	p.UpdatedAt = time.Now()
}

// HasCategory reports whether the post is assigned to the given category
func (p *Post) HasCategory(categoryID int) bool {
	for _, id := range p.CategoryIDs {
		if id == categoryID {
			return true
		}
	}
	return false
}
