package models

import (
	"time"
)

// DashboardStatistics is the single cached snapshot row. The counters are
// independent snapshots of the same instant, not derived from one another.
type DashboardStatistics struct {
	ID                        int       `json:"id" db:"id"`
	TotalContacts             int       `json:"total_contacts" db:"total_contacts"`
	TotalServices             int       `json:"total_services" db:"total_services"`
	TotalReviews              int       `json:"total_reviews" db:"total_reviews"`
	TotalRegistrations        int       `json:"total_registrations" db:"total_registrations"`
	TotalUsers                int       `json:"total_users" db:"total_users"`
	ActiveRegistrations       int       `json:"active_registrations" db:"active_registrations"`
	ExpiredRegistrations      int       `json:"expired_registrations" db:"expired_registrations"`
	AverageRating             float64   `json:"average_rating" db:"average_rating"`
	NewContactsThisMonth      int       `json:"new_contacts_this_month" db:"new_contacts_this_month"`
	NewRegistrationsThisMonth int       `json:"new_registrations_this_month" db:"new_registrations_this_month"`
	CreatedAt                 time.Time `json:"created_at" db:"created_at"`
	UpdatedAt                 time.Time `json:"updated_at" db:"updated_at"`
}

// DetailedDashboard is the statistics row plus small recency/top slices.
type DetailedDashboard struct {
	Statistics            *DashboardStatistics   `json:"statistics"`
	RecentContacts        []*Contact             `json:"recent_contacts"`
	RecentRegistrations   []*ServiceRegistration `json:"recent_registrations"`
	TopRatedReviews       []*Review              `json:"top_rated_reviews"`
	RegistrationsByStatus []*StatusCount         `json:"registrations_by_status"`
}
