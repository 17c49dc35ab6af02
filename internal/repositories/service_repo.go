package repositories

import (
	"context"

	"corpsite/internal/models"
)

type ServiceRepository interface {
	Create(ctx context.Context, svc *models.Service) error
	GetByID(ctx context.Context, id int) (*models.Service, error)
	Update(ctx context.Context, svc *models.Service) error
	SoftDelete(ctx context.Context, id int) (int64, error)
	List(ctx context.Context, limit, offset int) ([]*models.Service, error)
	CountActive(ctx context.Context) (int, error)
}

type serviceRepo struct {
	db Database
}

func NewServiceRepo(db Database) ServiceRepository {
	return &serviceRepo{db: db}
}

const serviceColumns = `id, title, description, detail_info, image_url, is_delete, created_at, updated_at`

func (r *serviceRepo) Create(ctx context.Context, svc *models.Service) error {
	query := `
		INSERT INTO services (title, description, detail_info, image_url, is_delete, created_at, updated_at)
		VALUES ($1, $2, $3, $4, FALSE, NOW(), NOW())
		RETURNING id
	`
	return r.db.QueryRow(ctx, query, svc.Title, svc.Description, svc.DetailInfo, svc.ImageURL).Scan(&svc.ID)
}

func (r *serviceRepo) GetByID(ctx context.Context, id int) (*models.Service, error) {
	svc := &models.Service{}
	query := `
		SELECT ` + serviceColumns + `
		FROM services
		WHERE id = $1 AND is_delete = FALSE
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&svc.ID, &svc.Title, &svc.Description, &svc.DetailInfo,
		&svc.ImageURL, &svc.IsDelete, &svc.CreatedAt, &svc.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return svc, nil
}

func (r *serviceRepo) Update(ctx context.Context, svc *models.Service) error {
	query := `
		UPDATE services
		SET title = $1, description = $2, detail_info = $3, image_url = $4, updated_at = NOW()
		WHERE id = $5 AND is_delete = FALSE
	`
	_, err := r.db.Exec(ctx, query, svc.Title, svc.Description, svc.DetailInfo, svc.ImageURL, svc.ID)
	return err
}

// SoftDelete hides the item; contact submissions keep a resolvable reference.
func (r *serviceRepo) SoftDelete(ctx context.Context, id int) (int64, error) {
	query := `
		UPDATE services
		SET is_delete = TRUE, updated_at = NOW()
		WHERE id = $1 AND is_delete = FALSE
	`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *serviceRepo) List(ctx context.Context, limit, offset int) ([]*models.Service, error) {
	query := `
		SELECT ` + serviceColumns + `
		FROM services
		WHERE is_delete = FALSE
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []*models.Service
	for rows.Next() {
		svc := &models.Service{}
		if err := rows.Scan(&svc.ID, &svc.Title, &svc.Description, &svc.DetailInfo,
			&svc.ImageURL, &svc.IsDelete, &svc.CreatedAt, &svc.UpdatedAt); err != nil {
			return nil, err
		}
		services = append(services, svc)
	}
	return services, rows.Err()
}

func (r *serviceRepo) CountActive(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM services WHERE is_delete = FALSE`).Scan(&count)
	return count, err
}
