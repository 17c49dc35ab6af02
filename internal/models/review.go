package models

import (
	"time"
)

// Review is a customer star rating, star in [1,5].
type Review struct {
	ID           int       `json:"id" db:"id"`
	Star         int       `json:"star" db:"star"`
	CustomerName string    `json:"customer_name" db:"customer_name"`
	Content      *string   `json:"content" db:"content"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
