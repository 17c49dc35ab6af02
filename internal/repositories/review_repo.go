package repositories

import (
	"context"

	"corpsite/internal/models"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id int) (*models.Review, error)
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id int) (int64, error)
	List(ctx context.Context, limit, offset int) ([]*models.Review, error)
	Count(ctx context.Context) (int, error)
	AverageRating(ctx context.Context) (float64, error)
	TopRated(ctx context.Context, limit int) ([]*models.Review, error)
}

type reviewRepo struct {
	db Database
}

func NewReviewRepo(db Database) ReviewRepository {
	return &reviewRepo{db: db}
}

const reviewColumns = `id, star, customer_name, content, created_at, updated_at`

func (r *reviewRepo) Create(ctx context.Context, review *models.Review) error {
	query := `
		INSERT INTO reviews (star, customer_name, content, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id
	`
	return r.db.QueryRow(ctx, query, review.Star, review.CustomerName, review.Content).Scan(&review.ID)
}

func (r *reviewRepo) GetByID(ctx context.Context, id int) (*models.Review, error) {
	review := &models.Review{}
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&review.ID, &review.Star, &review.CustomerName,
		&review.Content, &review.CreatedAt, &review.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return review, nil
}

func (r *reviewRepo) Update(ctx context.Context, review *models.Review) error {
	query := `
		UPDATE reviews
		SET star = $1, customer_name = $2, content = $3, updated_at = NOW()
		WHERE id = $4
	`
	_, err := r.db.Exec(ctx, query, review.Star, review.CustomerName, review.Content, review.ID)
	return err
}

func (r *reviewRepo) Delete(ctx context.Context, id int) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *reviewRepo) List(ctx context.Context, limit, offset int) ([]*models.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*models.Review
	for rows.Next() {
		review := &models.Review{}
		if err := rows.Scan(&review.ID, &review.Star, &review.CustomerName,
			&review.Content, &review.CreatedAt, &review.UpdatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}

func (r *reviewRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reviews`).Scan(&count)
	return count, err
}

// AverageRating returns 0 when no reviews exist.
func (r *reviewRepo) AverageRating(ctx context.Context) (float64, error) {
	var avg float64
	err := r.db.QueryRow(ctx, `SELECT COALESCE(AVG(star), 0) FROM reviews`).Scan(&avg)
	return avg, err
}

func (r *reviewRepo) TopRated(ctx context.Context, limit int) ([]*models.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		ORDER BY star DESC, created_at DESC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*models.Review
	for rows.Next() {
		review := &models.Review{}
		if err := rows.Scan(&review.ID, &review.Star, &review.CustomerName,
			&review.Content, &review.CreatedAt, &review.UpdatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}
