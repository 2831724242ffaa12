package models

import (
	"errors"
	"time"
)

// Validate checks if the comment meets all validation requirements
func (c *Comment) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}

	if c.CreatedAt.IsZero() {
		return errors.New("created_at cannot be zero")
	}

	if c.ParentID != nil && *c.ParentID <= 0 {
		return errors.New("parent_id must reference an existing comment")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (c *Comment) BeforeCreate() {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
}

// IsReply reports whether the comment is a reply to another comment
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}
