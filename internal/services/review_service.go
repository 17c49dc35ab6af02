package services

import (
	"context"
	"fmt"

	"corpsite/internal/common"
	"corpsite/internal/models"
	"corpsite/internal/repositories"
)

type ReviewService interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id int) (*models.Review, error)
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context, page, limit int) ([]*models.Review, error)
}

type reviewService struct {
	repo repositories.ReviewRepository
}

func NewReviewService(repo repositories.ReviewRepository) ReviewService {
	return &reviewService{repo: repo}
}

func (s *reviewService) Create(ctx context.Context, review *models.Review) error {
	if err := common.ValidateStarRating(review.Star); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := common.ValidateRequiredString(review.CustomerName, "customer_name"); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return s.repo.Create(ctx, review)
}

func (s *reviewService) GetByID(ctx context.Context, id int) (*models.Review, error) {
	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return review, nil
}

func (s *reviewService) Update(ctx context.Context, review *models.Review) error {
	if err := common.ValidateStarRating(review.Star); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if _, err := s.repo.GetByID(ctx, review.ID); err != nil {
		return mapNotFound(err)
	}
	return s.repo.Update(ctx, review)
}

func (s *reviewService) Delete(ctx context.Context, id int) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: review %d", ErrNotFound, id)
	}
	return nil
}

func (s *reviewService) List(ctx context.Context, page, limit int) ([]*models.Review, error) {
	page, limit = common.NormalizePagination(page, limit)
	return s.repo.List(ctx, limit, (page-1)*limit)
}
