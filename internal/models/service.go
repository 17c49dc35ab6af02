package models

import (
	"time"
)

// Service is a catalog item the company offers. Deleted items keep their row
// with is_delete set so contact submissions referencing them stay resolvable.
type Service struct {
	ID          int       `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description" db:"description"`
	DetailInfo  *string   `json:"detail_info" db:"detail_info"`
	ImageURL    *string   `json:"image_url" db:"image_url"`
	IsDelete    bool      `json:"is_delete" db:"is_delete"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
