package services

import (
	"context"
	"log"
	"time"

	"corpsite/internal/caching"
	"corpsite/internal/models"
	"corpsite/internal/repositories"
)

const companyCacheTTL = 30 * time.Minute

// CompanyService manages the singleton company-info row.
type CompanyService interface {
	Get(ctx context.Context) (*models.CompanyInfo, error)
	Upsert(ctx context.Context, info *models.CompanyInfo) (*models.CompanyInfo, error)
}

type companyService struct {
	repo         repositories.CompanyRepository
	cacheService caching.CacheService
}

func NewCompanyService(repo repositories.CompanyRepository, cacheService caching.CacheService) CompanyService {
	return &companyService{repo: repo, cacheService: cacheService}
}

// Get returns the singleton row, initializing an empty one on first access so
// callers never see a missing record.
func (s *companyService) Get(ctx context.Context) (*models.CompanyInfo, error) {
	if cached, err := s.cacheService.GetCompanyInfo(ctx); cached != nil {
		return cached, nil
	} else if err != nil {
		log.Printf("cache error for company info: %v", err)
	}

	info, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if info == nil {
		info = &models.CompanyInfo{}
		if err := s.repo.Insert(ctx, info); err != nil {
			return nil, err
		}
	}

	if cacheErr := s.cacheService.SetCompanyInfo(ctx, info, companyCacheTTL); cacheErr != nil {
		log.Printf("failed to cache company info: %v", cacheErr)
	}
	return info, nil
}

// Upsert writes the provided fields over the singleton row, creating it when
// absent.
func (s *companyService) Upsert(ctx context.Context, info *models.CompanyInfo) (*models.CompanyInfo, error) {
	existing, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		if err := s.repo.Insert(ctx, info); err != nil {
			return nil, err
		}
	} else {
		info.ID = existing.ID
		if err := s.repo.Update(ctx, info); err != nil {
			return nil, err
		}
	}

	if cacheErr := s.cacheService.DeleteCompanyInfo(ctx); cacheErr != nil {
		log.Printf("failed to invalidate company info cache: %v", cacheErr)
	}
	return info, nil
}
