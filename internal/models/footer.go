package models

import (
	"time"
)

// FooterColumn groups footer links; position orders columns left to right.
type FooterColumn struct {
	ID        int           `json:"id" db:"id"`
	Title     string        `json:"title" db:"title"`
	Position  int           `json:"position" db:"position"`
	Links     []*FooterLink `json:"links,omitempty"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
}

// FooterLink is one navigation entry inside a footer column.
type FooterLink struct {
	ID        int       `json:"id" db:"id"`
	ColumnID  int       `json:"column_id" db:"column_id"`
	Title     string    `json:"title" db:"title"`
	URL       string    `json:"url" db:"url"`
	Position  int       `json:"position" db:"position"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
