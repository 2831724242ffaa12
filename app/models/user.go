package models

import (
	"errors"
	"time"
)

// Validate checks if the user meets all validation requirements
func (u *User) Validate() error {
	return validate.Struct(u)
}

// BeforeCreate sets up any necessary fields before creation
func (u *User) BeforeCreate() {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
}

// Validate checks if the profile meets all validation requirements
func (p *Profile) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}
	// the token is cleared once the address is verified
	if !p.EmailVerified && p.VerificationToken == "" {
		return errors.New("verification token cannot be empty")
	}
	return nil
}

// IsAuthor reports whether the profile belongs to an author or admin account
func (p *Profile) IsAuthor() bool {
	return p.UserType == UserTypeAuthor || p.UserType == UserTypeAdmin
}

// Validate checks if the category meets all validation requirements
func (c *Category) Validate() error {
	return validate.Struct(c)
}

// Validate checks if the contact message meets all validation requirements
func (m *ContactMessage) Validate() error {
	return validate.Struct(m)
}

// BeforeCreate sets up any necessary fields before creation
func (m *ContactMessage) BeforeCreate() {
	if m.SubmittedAt.IsZero() {
		m.SubmittedAt = time.Now()
	}
}
