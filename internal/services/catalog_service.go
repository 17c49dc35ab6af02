package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"corpsite/internal/caching"
	"corpsite/internal/common"
	"corpsite/internal/models"
	"corpsite/internal/repositories"

	"github.com/google/uuid"
)

const catalogCacheTTL = 15 * time.Minute

// CatalogService manages the service catalog shown on the public site.
type CatalogService interface {
	Create(ctx context.Context, svc *models.Service) error
	GetByID(ctx context.Context, id int) (*models.Service, error)
	Update(ctx context.Context, svc *models.Service) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context, page, limit int) ([]*models.Service, error)
	UploadImage(ctx context.Context, id int, filename string, reader io.Reader, size int64, contentType string) (*models.Service, error)
}

type catalogService struct {
	repo         repositories.ServiceRepository
	cacheService caching.CacheService
	mediaService MediaService
	bucket       string
}

func NewCatalogService(repo repositories.ServiceRepository, cacheService caching.CacheService, mediaService MediaService, bucket string) CatalogService {
	return &catalogService{
		repo:         repo,
		cacheService: cacheService,
		mediaService: mediaService,
		bucket:       bucket,
	}
}

func (s *catalogService) Create(ctx context.Context, svc *models.Service) error {
	if err := common.ValidateRequiredString(svc.Title, "title"); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return s.repo.Create(ctx, svc)
}

func (s *catalogService) GetByID(ctx context.Context, id int) (*models.Service, error) {
	if cached, err := s.cacheService.GetService(ctx, id); cached != nil {
		return cached, nil
	} else if err != nil {
		// Cache errors must not fail the read path.
		log.Printf("cache error for service %d: %v", id, err)
	}

	svc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	if cacheErr := s.cacheService.SetService(ctx, svc, catalogCacheTTL); cacheErr != nil {
		log.Printf("failed to cache service %d: %v", id, cacheErr)
	}
	return svc, nil
}

func (s *catalogService) Update(ctx context.Context, svc *models.Service) error {
	if err := common.ValidateRequiredString(svc.Title, "title"); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if _, err := s.repo.GetByID(ctx, svc.ID); err != nil {
		return mapNotFound(err)
	}
	if err := s.repo.Update(ctx, svc); err != nil {
		return err
	}
	return s.cacheService.DeleteService(ctx, svc.ID)
}

func (s *catalogService) Delete(ctx context.Context, id int) error {
	affected, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: service %d", ErrNotFound, id)
	}
	return s.cacheService.DeleteService(ctx, id)
}

func (s *catalogService) List(ctx context.Context, page, limit int) ([]*models.Service, error) {
	page, limit = common.NormalizePagination(page, limit)
	return s.repo.List(ctx, limit, (page-1)*limit)
}

// UploadImage stores the new image before touching the record, then removes
// the previous object. A failed delete leaves an orphan in the bucket, which
// is preferable to a record pointing at a missing object.
func (s *catalogService) UploadImage(ctx context.Context, id int, filename string, reader io.Reader, size int64, contentType string) (*models.Service, error) {
	svc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	objectName := fmt.Sprintf("services/%d/%s%s", id, uuid.NewString(), filepath.Ext(filename))
	if err := s.mediaService.UploadImage(ctx, s.bucket, objectName, reader, size, contentType); err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	oldObject := s.objectNameFromURL(svc.ImageURL)
	imageURL := fmt.Sprintf("/%s/%s", s.bucket, objectName)
	svc.ImageURL = &imageURL
	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, err
	}

	if oldObject != "" {
		if delErr := s.mediaService.DeleteImage(ctx, s.bucket, oldObject); delErr != nil {
			log.Printf("failed to delete old image %s: %v", oldObject, delErr)
		}
	}

	if cacheErr := s.cacheService.DeleteService(ctx, id); cacheErr != nil {
		log.Printf("failed to invalidate cache for service %d: %v", id, cacheErr)
	}
	return svc, nil
}

func (s *catalogService) objectNameFromURL(imageURL *string) string {
	if imageURL == nil {
		return ""
	}
	prefix := "/" + s.bucket + "/"
	if !strings.HasPrefix(*imageURL, prefix) {
		return ""
	}
	return strings.TrimPrefix(*imageURL, prefix)
}
