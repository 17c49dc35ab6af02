package repositories

import (
	"context"
	"time"

	"corpsite/internal/models"
)

type ContactRepository interface {
	Create(ctx context.Context, contact *models.Contact) error
	GetByID(ctx context.Context, id int) (*models.Contact, error)
	Delete(ctx context.Context, id int) (int64, error)
	List(ctx context.Context, limit, offset int) ([]*models.Contact, int, error)
	Count(ctx context.Context) (int, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int, error)
	Recent(ctx context.Context, limit int) ([]*models.Contact, error)
}

type contactRepo struct {
	db Database
}

func NewContactRepo(db Database) ContactRepository {
	return &contactRepo{db: db}
}

const contactColumns = `id, full_name, phone, message, service_id, created_at`

func (r *contactRepo) Create(ctx context.Context, contact *models.Contact) error {
	query := `
		INSERT INTO contacts (full_name, phone, message, service_id, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id
	`
	return r.db.QueryRow(ctx, query, contact.FullName, contact.Phone, contact.Message, contact.ServiceID).Scan(&contact.ID)
}

func (r *contactRepo) GetByID(ctx context.Context, id int) (*models.Contact, error) {
	contact := &models.Contact{}
	query := `
		SELECT ` + contactColumns + `
		FROM contacts
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&contact.ID, &contact.FullName, &contact.Phone,
		&contact.Message, &contact.ServiceID, &contact.CreatedAt)
	if err != nil {
		return nil, err
	}
	return contact, nil
}

func (r *contactRepo) Delete(ctx context.Context, id int) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *contactRepo) List(ctx context.Context, limit, offset int) ([]*models.Contact, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM contacts`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + contactColumns + `
		FROM contacts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var contacts []*models.Contact
	for rows.Next() {
		contact := &models.Contact{}
		if err := rows.Scan(&contact.ID, &contact.FullName, &contact.Phone,
			&contact.Message, &contact.ServiceID, &contact.CreatedAt); err != nil {
			return nil, 0, err
		}
		contacts = append(contacts, contact)
	}
	return contacts, total, rows.Err()
}

func (r *contactRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM contacts`).Scan(&count)
	return count, err
}

func (r *contactRepo) CountCreatedSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM contacts WHERE created_at >= $1`, since).Scan(&count)
	return count, err
}

func (r *contactRepo) Recent(ctx context.Context, limit int) ([]*models.Contact, error) {
	query := `
		SELECT ` + contactColumns + `
		FROM contacts
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []*models.Contact
	for rows.Next() {
		contact := &models.Contact{}
		if err := rows.Scan(&contact.ID, &contact.FullName, &contact.Phone,
			&contact.Message, &contact.ServiceID, &contact.CreatedAt); err != nil {
			return nil, err
		}
		contacts = append(contacts, contact)
	}
	return contacts, rows.Err()
}
