package services

import (
	"context"
	"fmt"

	"corpsite/internal/common"
	"corpsite/internal/models"
	"corpsite/internal/repositories"
)

type FooterService interface {
	CreateColumn(ctx context.Context, column *models.FooterColumn) error
	UpdateColumn(ctx context.Context, column *models.FooterColumn) error
	DeleteColumn(ctx context.Context, id int) error
	CreateLink(ctx context.Context, link *models.FooterLink) error
	UpdateLink(ctx context.Context, link *models.FooterLink) error
	DeleteLink(ctx context.Context, id int) error
	// ListGrouped returns columns ordered by position with links nested.
	ListGrouped(ctx context.Context) ([]*models.FooterColumn, error)
}

type footerService struct {
	repo repositories.FooterRepository
}

func NewFooterService(repo repositories.FooterRepository) FooterService {
	return &footerService{repo: repo}
}

func (s *footerService) CreateColumn(ctx context.Context, column *models.FooterColumn) error {
	if err := common.ValidateRequiredString(column.Title, "title"); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return s.repo.CreateColumn(ctx, column)
}

func (s *footerService) UpdateColumn(ctx context.Context, column *models.FooterColumn) error {
	if err := common.ValidateRequiredString(column.Title, "title"); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return s.repo.UpdateColumn(ctx, column)
}

func (s *footerService) DeleteColumn(ctx context.Context, id int) error {
	affected, err := s.repo.DeleteColumn(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: footer column %d", ErrNotFound, id)
	}
	return nil
}

func (s *footerService) CreateLink(ctx context.Context, link *models.FooterLink) error {
	if err := common.ValidateRequiredString(link.Title, "title"); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := common.ValidateRequiredString(link.URL, "url"); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return s.repo.CreateLink(ctx, link)
}

func (s *footerService) UpdateLink(ctx context.Context, link *models.FooterLink) error {
	if err := common.ValidateRequiredString(link.Title, "title"); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := common.ValidateRequiredString(link.URL, "url"); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return s.repo.UpdateLink(ctx, link)
}

func (s *footerService) DeleteLink(ctx context.Context, id int) error {
	affected, err := s.repo.DeleteLink(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: footer link %d", ErrNotFound, id)
	}
	return nil
}

func (s *footerService) ListGrouped(ctx context.Context) ([]*models.FooterColumn, error) {
	columns, err := s.repo.ListColumns(ctx)
	if err != nil {
		return nil, err
	}
	links, err := s.repo.ListLinks(ctx)
	if err != nil {
		return nil, err
	}

	byColumn := make(map[int]*models.FooterColumn, len(columns))
	for _, column := range columns {
		byColumn[column.ID] = column
	}
	for _, link := range links {
		if column, ok := byColumn[link.ColumnID]; ok {
			column.Links = append(column.Links, link)
		}
	}
	return columns, nil
}
