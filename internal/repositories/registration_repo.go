package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"corpsite/internal/models"
)

type RegistrationRepository interface {
	Create(ctx context.Context, reg *models.ServiceRegistration) error
	GetByID(ctx context.Context, id string) (*models.ServiceRegistration, error)
	Update(ctx context.Context, reg *models.ServiceRegistration) error
	Delete(ctx context.Context, id string) (int64, error)
	List(ctx context.Context, filter *models.RegistrationFilter, now time.Time) ([]*models.ServiceRegistration, int, error)
	ListExpired(ctx context.Context, now time.Time) ([]*models.ServiceRegistration, error)
	ListExpiringWithin(ctx context.Context, now time.Time, days int) ([]*models.ServiceRegistration, error)
	SweepExpired(ctx context.Context, now time.Time) (int64, error)
	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status string) (int, error)
	CountExpiringWithin(ctx context.Context, now time.Time, days int) (int, error)
	CountByPaymentStatus(ctx context.Context, paymentStatus string) (int, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int, error)
	CountGroupedByStatus(ctx context.Context) ([]*models.StatusCount, error)
	Recent(ctx context.Context, limit int) ([]*models.ServiceRegistration, error)
}

type registrationRepo struct {
	db Database
}

func NewRegistrationRepo(db Database) RegistrationRepository {
	return &registrationRepo{db: db}
}

const registrationColumns = `id, customer_name, phone, address, notes, parent_id, registration_date, duration_months, end_date, status, amount_paid, amount_due, created_at, updated_at`

func scanRegistration(row interface{ Scan(dest ...any) error }) (*models.ServiceRegistration, error) {
	reg := &models.ServiceRegistration{}
	err := row.Scan(&reg.ID, &reg.CustomerName, &reg.Phone, &reg.Address, &reg.Notes, &reg.ParentID,
		&reg.RegistrationDate, &reg.DurationMonths, &reg.EndDate, &reg.Status,
		&reg.AmountPaid, &reg.AmountDue, &reg.CreatedAt, &reg.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return reg, nil
}

func (r *registrationRepo) Create(ctx context.Context, reg *models.ServiceRegistration) error {
	query := `
		INSERT INTO service_registrations (id, customer_name, phone, address, notes, parent_id, registration_date, duration_months, end_date, status, amount_paid, amount_due, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, reg.ID, reg.CustomerName, reg.Phone, reg.Address, reg.Notes, reg.ParentID,
		reg.RegistrationDate, reg.DurationMonths, reg.EndDate, reg.Status, reg.AmountPaid, reg.AmountDue)
	return err
}

func (r *registrationRepo) GetByID(ctx context.Context, id string) (*models.ServiceRegistration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM service_registrations
		WHERE id = $1
	`
	return scanRegistration(r.db.QueryRow(ctx, query, id))
}

func (r *registrationRepo) Update(ctx context.Context, reg *models.ServiceRegistration) error {
	query := `
		UPDATE service_registrations
		SET customer_name = $1, phone = $2, address = $3, notes = $4, parent_id = $5, registration_date = $6, duration_months = $7, end_date = $8, status = $9, amount_paid = $10, amount_due = $11, updated_at = NOW()
		WHERE id = $12
	`
	_, err := r.db.Exec(ctx, query, reg.CustomerName, reg.Phone, reg.Address, reg.Notes, reg.ParentID,
		reg.RegistrationDate, reg.DurationMonths, reg.EndDate, reg.Status, reg.AmountPaid, reg.AmountDue, reg.ID)
	return err
}

func (r *registrationRepo) Delete(ctx context.Context, id string) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM service_registrations WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// paymentPredicate translates a payment status into SQL over the amount
// columns. Note paid and unpaid both match rows with amount_due = 0 and
// amount_paid = 0; the predicates are not complementary.
func paymentPredicate(paymentStatus string) (string, bool) {
	switch paymentStatus {
	case models.PaymentPaid:
		return "amount_paid >= amount_due", true
	case models.PaymentUnpaid:
		return "amount_paid = 0", true
	case models.PaymentPartial:
		return "amount_paid > 0 AND amount_paid < amount_due", true
	}
	return "", false
}

// buildListConditions assembles the WHERE clause shared by the list and count
// queries. The expiring window implicitly restricts to active registrations.
func buildListConditions(filter *models.RegistrationFilter, now time.Time) (string, []any) {
	var conditions []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.ExpiringInDays > 0 {
		conditions = append(conditions, "status = "+arg(models.RegistrationActive))
		conditions = append(conditions, "end_date <= "+arg(now.AddDate(0, 0, filter.ExpiringInDays)))
	} else if filter.Status != "" {
		conditions = append(conditions, "status = "+arg(filter.Status))
	}

	if filter.StartDate != nil {
		conditions = append(conditions, "registration_date >= "+arg(*filter.StartDate))
	}
	if filter.EndDate != nil {
		conditions = append(conditions, "registration_date <= "+arg(*filter.EndDate))
	}

	if pred, ok := paymentPredicate(filter.PaymentStatus); ok {
		conditions = append(conditions, pred)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

func (r *registrationRepo) List(ctx context.Context, filter *models.RegistrationFilter, now time.Time) ([]*models.ServiceRegistration, int, error) {
	where, args := buildListConditions(filter, now)

	var total int
	countQuery := "SELECT COUNT(*) FROM service_registrations " + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	listQuery := fmt.Sprintf(
		"SELECT "+registrationColumns+" FROM service_registrations %s ORDER BY registration_date DESC, created_at ASC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2)
	rows, err := r.db.Query(ctx, listQuery, append(args, filter.Limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var regs []*models.ServiceRegistration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, 0, err
		}
		regs = append(regs, reg)
	}
	return regs, total, rows.Err()
}

func (r *registrationRepo) ListExpired(ctx context.Context, now time.Time) ([]*models.ServiceRegistration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM service_registrations
		WHERE status = $1 AND end_date < $2
		ORDER BY end_date ASC
	`
	rows, err := r.db.Query(ctx, query, models.RegistrationActive, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regs []*models.ServiceRegistration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

func (r *registrationRepo) ListExpiringWithin(ctx context.Context, now time.Time, days int) ([]*models.ServiceRegistration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM service_registrations
		WHERE status = $1 AND end_date <= $2
		ORDER BY end_date ASC
	`
	rows, err := r.db.Query(ctx, query, models.RegistrationActive, now.AddDate(0, 0, days))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regs []*models.ServiceRegistration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

func (r *registrationRepo) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE service_registrations
		SET status = $1, updated_at = NOW()
		WHERE status = $2 AND end_date < $3
	`
	tag, err := r.db.Exec(ctx, query, models.RegistrationExpired, models.RegistrationActive, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *registrationRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM service_registrations`).Scan(&count)
	return count, err
}

func (r *registrationRepo) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM service_registrations WHERE status = $1`, status).Scan(&count)
	return count, err
}

func (r *registrationRepo) CountExpiringWithin(ctx context.Context, now time.Time, days int) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM service_registrations WHERE status = $1 AND end_date <= $2`
	err := r.db.QueryRow(ctx, query, models.RegistrationActive, now.AddDate(0, 0, days)).Scan(&count)
	return count, err
}

func (r *registrationRepo) CountByPaymentStatus(ctx context.Context, paymentStatus string) (int, error) {
	pred, ok := paymentPredicate(paymentStatus)
	if !ok {
		return 0, fmt.Errorf("unknown payment status: %s", paymentStatus)
	}
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM service_registrations WHERE "+pred).Scan(&count)
	return count, err
}

func (r *registrationRepo) CountCreatedSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM service_registrations WHERE created_at >= $1`, since).Scan(&count)
	return count, err
}

func (r *registrationRepo) CountGroupedByStatus(ctx context.Context) ([]*models.StatusCount, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM service_registrations GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []*models.StatusCount
	for rows.Next() {
		sc := &models.StatusCount{}
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, sc)
	}
	return counts, rows.Err()
}

func (r *registrationRepo) Recent(ctx context.Context, limit int) ([]*models.ServiceRegistration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM service_registrations
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regs []*models.ServiceRegistration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}
