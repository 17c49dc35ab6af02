package repositories

import (
	"context"

	"corpsite/internal/models"
)

type FooterRepository interface {
	CreateColumn(ctx context.Context, column *models.FooterColumn) error
	UpdateColumn(ctx context.Context, column *models.FooterColumn) error
	DeleteColumn(ctx context.Context, id int) (int64, error)
	ListColumns(ctx context.Context) ([]*models.FooterColumn, error)
	CreateLink(ctx context.Context, link *models.FooterLink) error
	UpdateLink(ctx context.Context, link *models.FooterLink) error
	DeleteLink(ctx context.Context, id int) (int64, error)
	ListLinks(ctx context.Context) ([]*models.FooterLink, error)
}

type footerRepo struct {
	db Database
}

func NewFooterRepo(db Database) FooterRepository {
	return &footerRepo{db: db}
}

func (r *footerRepo) CreateColumn(ctx context.Context, column *models.FooterColumn) error {
	query := `
		INSERT INTO footer_columns (title, position, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id
	`
	return r.db.QueryRow(ctx, query, column.Title, column.Position).Scan(&column.ID)
}

func (r *footerRepo) UpdateColumn(ctx context.Context, column *models.FooterColumn) error {
	query := `
		UPDATE footer_columns
		SET title = $1, position = $2
		WHERE id = $3
	`
	_, err := r.db.Exec(ctx, query, column.Title, column.Position, column.ID)
	return err
}

// DeleteColumn removes the column; its links go with it via ON DELETE CASCADE.
func (r *footerRepo) DeleteColumn(ctx context.Context, id int) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM footer_columns WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *footerRepo) ListColumns(ctx context.Context) ([]*models.FooterColumn, error) {
	query := `
		SELECT id, title, position, created_at
		FROM footer_columns
		ORDER BY position ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []*models.FooterColumn
	for rows.Next() {
		column := &models.FooterColumn{}
		if err := rows.Scan(&column.ID, &column.Title, &column.Position, &column.CreatedAt); err != nil {
			return nil, err
		}
		columns = append(columns, column)
	}
	return columns, rows.Err()
}

func (r *footerRepo) CreateLink(ctx context.Context, link *models.FooterLink) error {
	query := `
		INSERT INTO footer_links (column_id, title, url, position, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id
	`
	return r.db.QueryRow(ctx, query, link.ColumnID, link.Title, link.URL, link.Position).Scan(&link.ID)
}

func (r *footerRepo) UpdateLink(ctx context.Context, link *models.FooterLink) error {
	query := `
		UPDATE footer_links
		SET column_id = $1, title = $2, url = $3, position = $4
		WHERE id = $5
	`
	_, err := r.db.Exec(ctx, query, link.ColumnID, link.Title, link.URL, link.Position, link.ID)
	return err
}

func (r *footerRepo) DeleteLink(ctx context.Context, id int) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM footer_links WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *footerRepo) ListLinks(ctx context.Context) ([]*models.FooterLink, error) {
	query := `
		SELECT id, column_id, title, url, position, created_at
		FROM footer_links
		ORDER BY column_id ASC, position ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []*models.FooterLink
	for rows.Next() {
		link := &models.FooterLink{}
		if err := rows.Scan(&link.ID, &link.ColumnID, &link.Title, &link.URL, &link.Position, &link.CreatedAt); err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	return links, rows.Err()
}
