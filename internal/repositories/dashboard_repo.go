package repositories

import (
	"context"
	"errors"

	"corpsite/internal/models"

	"github.com/jackc/pgx/v5"
)

// DashboardRepository persists the single statistics snapshot row. At most one
// row is treated as current: the one with the latest updated_at.
type DashboardRepository interface {
	Latest(ctx context.Context) (*models.DashboardStatistics, error)
	Insert(ctx context.Context, stats *models.DashboardStatistics) error
	Update(ctx context.Context, stats *models.DashboardStatistics) error
}

type dashboardRepo struct {
	db Database
}

func NewDashboardRepo(db Database) DashboardRepository {
	return &dashboardRepo{db: db}
}

const dashboardColumns = `id, total_contacts, total_services, total_reviews, total_registrations, total_users, active_registrations, expired_registrations, average_rating, new_contacts_this_month, new_registrations_this_month, created_at, updated_at`

// Latest returns the most recent snapshot, or nil when none exists yet.
func (r *dashboardRepo) Latest(ctx context.Context) (*models.DashboardStatistics, error) {
	stats := &models.DashboardStatistics{}
	query := `
		SELECT ` + dashboardColumns + `
		FROM dashboard_statistics
		ORDER BY updated_at DESC
		LIMIT 1
	`
	err := r.db.QueryRow(ctx, query).Scan(&stats.ID, &stats.TotalContacts, &stats.TotalServices,
		&stats.TotalReviews, &stats.TotalRegistrations, &stats.TotalUsers,
		&stats.ActiveRegistrations, &stats.ExpiredRegistrations, &stats.AverageRating,
		&stats.NewContactsThisMonth, &stats.NewRegistrationsThisMonth,
		&stats.CreatedAt, &stats.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *dashboardRepo) Insert(ctx context.Context, stats *models.DashboardStatistics) error {
	query := `
		INSERT INTO dashboard_statistics (total_contacts, total_services, total_reviews, total_registrations, total_users, active_registrations, expired_registrations, average_rating, new_contacts_this_month, new_registrations_this_month, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, stats.TotalContacts, stats.TotalServices, stats.TotalReviews,
		stats.TotalRegistrations, stats.TotalUsers, stats.ActiveRegistrations,
		stats.ExpiredRegistrations, stats.AverageRating, stats.NewContactsThisMonth,
		stats.NewRegistrationsThisMonth)
	return err
}

func (r *dashboardRepo) Update(ctx context.Context, stats *models.DashboardStatistics) error {
	query := `
		UPDATE dashboard_statistics
		SET total_contacts = $1, total_services = $2, total_reviews = $3, total_registrations = $4, total_users = $5, active_registrations = $6, expired_registrations = $7, average_rating = $8, new_contacts_this_month = $9, new_registrations_this_month = $10, updated_at = NOW()
		WHERE id = $11
	`
	_, err := r.db.Exec(ctx, query, stats.TotalContacts, stats.TotalServices, stats.TotalReviews,
		stats.TotalRegistrations, stats.TotalUsers, stats.ActiveRegistrations,
		stats.ExpiredRegistrations, stats.AverageRating, stats.NewContactsThisMonth,
		stats.NewRegistrationsThisMonth, stats.ID)
	return err
}
