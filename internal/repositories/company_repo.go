package repositories

import (
	"context"
	"errors"

	"corpsite/internal/models"

	"github.com/jackc/pgx/v5"
)

// CompanyRepository holds the singleton company profile row.
type CompanyRepository interface {
	Get(ctx context.Context) (*models.CompanyInfo, error)
	Insert(ctx context.Context, info *models.CompanyInfo) error
	Update(ctx context.Context, info *models.CompanyInfo) error
}

type companyRepo struct {
	db Database
}

func NewCompanyRepo(db Database) CompanyRepository {
	return &companyRepo{db: db}
}

const companyColumns = `id, name, logo_url, intro_text, intro_text_detail, address, tax_code, email, welcome_content, banner, intro_image, customer_count, satisfied_count, quality_percent, created_at, updated_at`

// Get returns the company row, or nil when it has not been initialized yet.
func (r *companyRepo) Get(ctx context.Context) (*models.CompanyInfo, error) {
	info := &models.CompanyInfo{}
	query := `
		SELECT ` + companyColumns + `
		FROM company_info
		ORDER BY id ASC
		LIMIT 1
	`
	err := r.db.QueryRow(ctx, query).Scan(&info.ID, &info.Name, &info.LogoURL, &info.IntroText,
		&info.IntroTextDetail, &info.Address, &info.TaxCode, &info.Email, &info.WelcomeContent,
		&info.Banner, &info.IntroImage, &info.CustomerCount, &info.SatisfiedCount,
		&info.QualityPercent, &info.CreatedAt, &info.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return info, nil
}

func (r *companyRepo) Insert(ctx context.Context, info *models.CompanyInfo) error {
	query := `
		INSERT INTO company_info (name, logo_url, intro_text, intro_text_detail, address, tax_code, email, welcome_content, banner, intro_image, customer_count, satisfied_count, quality_percent, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		RETURNING id
	`
	return r.db.QueryRow(ctx, query, info.Name, info.LogoURL, info.IntroText, info.IntroTextDetail,
		info.Address, info.TaxCode, info.Email, info.WelcomeContent, info.Banner, info.IntroImage,
		info.CustomerCount, info.SatisfiedCount, info.QualityPercent).Scan(&info.ID)
}

func (r *companyRepo) Update(ctx context.Context, info *models.CompanyInfo) error {
	query := `
		UPDATE company_info
		SET name = $1, logo_url = $2, intro_text = $3, intro_text_detail = $4, address = $5, tax_code = $6, email = $7, welcome_content = $8, banner = $9, intro_image = $10, customer_count = $11, satisfied_count = $12, quality_percent = $13, updated_at = NOW()
		WHERE id = $14
	`
	_, err := r.db.Exec(ctx, query, info.Name, info.LogoURL, info.IntroText, info.IntroTextDetail,
		info.Address, info.TaxCode, info.Email, info.WelcomeContent, info.Banner, info.IntroImage,
		info.CustomerCount, info.SatisfiedCount, info.QualityPercent, info.ID)
	return err
}
