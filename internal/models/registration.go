package models

import (
	"time"
)

// Registration statuses. "expired" is only ever produced by the expiry sweep.
const (
	RegistrationActive    = "active"
	RegistrationExpired   = "expired"
	RegistrationCancelled = "cancelled"
)

// Payment status values accepted by the list filter. They are derived from
// amount_paid/amount_due, never stored.
const (
	PaymentPaid    = "paid"
	PaymentUnpaid  = "unpaid"
	PaymentPartial = "partial"
)

// ServiceRegistration is a customer's time-bounded subscription to a service
// package. Amounts are whole currency units.
type ServiceRegistration struct {
	ID               string    `json:"id" db:"id"`
	CustomerName     string    `json:"customer_name" db:"customer_name"`
	Phone            string    `json:"phone" db:"phone"`
	Address          *string   `json:"address" db:"address"`
	Notes            *string   `json:"notes" db:"notes"`
	ParentID         *string   `json:"parent_id" db:"parent_id"`
	RegistrationDate time.Time `json:"registration_date" db:"registration_date"`
	DurationMonths   int       `json:"duration_months" db:"duration_months"`
	EndDate          time.Time `json:"end_date" db:"end_date"`
	Status           string    `json:"status" db:"status"`
	AmountPaid       int64     `json:"amount_paid" db:"amount_paid"`
	AmountDue        int64     `json:"amount_due" db:"amount_due"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// RegistrationFilter holds the list query filters. ExpiringInDays implies
// status=active and end_date within the window.
type RegistrationFilter struct {
	Status         string     `json:"status,omitempty"`
	ExpiringInDays int        `json:"expiring_in_days,omitempty"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	PaymentStatus  string     `json:"payment_status,omitempty"`
	Page           int        `json:"page,omitempty"`
	Limit          int        `json:"limit,omitempty"`
}

// RegistrationPage is a 1-indexed page of registrations plus totals.
type RegistrationPage struct {
	Data       []*ServiceRegistration `json:"data"`
	Total      int                    `json:"total"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"total_pages"`
}

// RegistrationStats is the overview returned by /service-registrations/stats/overview.
type RegistrationStats struct {
	Total        int `json:"total"`
	Active       int `json:"active"`
	Expired      int `json:"expired"`
	Cancelled    int `json:"cancelled"`
	ExpiringSoon int `json:"expiring_soon"`
	Paid         int `json:"paid"`
	Unpaid       int `json:"unpaid"`
	Partial      int `json:"partial"`
}

// StatusCount is one bucket of the group-by-status breakdown.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}
