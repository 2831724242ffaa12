package models

import "time"

// Validate checks if the reaction meets all validation requirements
func (r *Reaction) Validate() error {
	return validate.Struct(r)
}

// BeforeCreate sets up any necessary fields before creation
func (r *Reaction) BeforeCreate() {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
}

// Validate checks if the favorite meets all validation requirements
func (f *Favorite) Validate() error {
	return validate.Struct(f)
}

// BeforeCreate sets up any necessary fields before creation
func (f *Favorite) BeforeCreate() {
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now()
	}
}

// Validate checks if the rating meets all validation requirements.
// Scores outside [1,5] are rejected by the min/max tags.
func (r *Rating) Validate() error {
	return validate.Struct(r)
}

// BeforeCreate sets up any necessary fields before creation
func (r *Rating) BeforeCreate() {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
}
