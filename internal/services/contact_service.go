package services

import (
	"context"
	"fmt"

	"corpsite/internal/common"
	"corpsite/internal/models"
	"corpsite/internal/repositories"
)

// ContactPage is a 1-indexed page of contact submissions.
type ContactPage struct {
	Data       []*models.Contact `json:"data"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

type ContactService interface {
	Create(ctx context.Context, contact *models.Contact) error
	GetByID(ctx context.Context, id int) (*models.Contact, error)
	Delete(ctx context.Context, id int) error
	List(ctx context.Context, page, limit int) (*ContactPage, error)
}

type contactService struct {
	repo        repositories.ContactRepository
	serviceRepo repositories.ServiceRepository
}

func NewContactService(repo repositories.ContactRepository, serviceRepo repositories.ServiceRepository) ContactService {
	return &contactService{repo: repo, serviceRepo: serviceRepo}
}

func (s *contactService) Create(ctx context.Context, contact *models.Contact) error {
	if err := common.ValidateRequiredString(contact.FullName, "full_name"); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := common.ValidateRequiredString(contact.Phone, "phone"); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if contact.ServiceID != nil {
		if _, err := s.serviceRepo.GetByID(ctx, *contact.ServiceID); err != nil {
			return fmt.Errorf("%w: service %d", ErrValidation, *contact.ServiceID)
		}
	}
	return s.repo.Create(ctx, contact)
}

func (s *contactService) GetByID(ctx context.Context, id int) (*models.Contact, error) {
	contact, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return contact, nil
}

func (s *contactService) Delete(ctx context.Context, id int) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: contact %d", ErrNotFound, id)
	}
	return nil
}

func (s *contactService) List(ctx context.Context, page, limit int) (*ContactPage, error) {
	page, limit = common.NormalizePagination(page, limit)
	contacts, total, err := s.repo.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	return &ContactPage{
		Data:       contacts,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: common.TotalPages(total, limit),
	}, nil
}
