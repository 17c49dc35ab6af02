package dashboard

import (
	"context"
	"time"

	"corpsite/internal/models"
	"corpsite/internal/repositories"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"
)

// cacheTTL is how long a computed snapshot stays authoritative.
const cacheTTL = time.Hour

// detailLimit bounds the recency/top slices on the detailed view.
const detailLimit = 2

// Service computes and caches the denormalized dashboard snapshot. At most
// one current row is kept, identified by the most recent updated_at.
type Service struct {
	dashboardRepo    repositories.DashboardRepository
	contactRepo      repositories.ContactRepository
	catalogRepo      repositories.ServiceRepository
	reviewRepo       repositories.ReviewRepository
	registrationRepo repositories.RegistrationRepository
	userRepo         repositories.UserRepository
	clock            clockwork.Clock
}

func NewService(
	dashboardRepo repositories.DashboardRepository,
	contactRepo repositories.ContactRepository,
	catalogRepo repositories.ServiceRepository,
	reviewRepo repositories.ReviewRepository,
	registrationRepo repositories.RegistrationRepository,
	userRepo repositories.UserRepository,
	clock clockwork.Clock,
) *Service {
	return &Service{
		dashboardRepo:    dashboardRepo,
		contactRepo:      contactRepo,
		catalogRepo:      catalogRepo,
		reviewRepo:       reviewRepo,
		registrationRepo: registrationRepo,
		userRepo:         userRepo,
		clock:            clock,
	}
}

// GetStatistics returns the cached snapshot while it is fresh, recomputing
// and overwriting it once the TTL has lapsed.
func (s *Service) GetStatistics(ctx context.Context) (*models.DashboardStatistics, error) {
	cached, err := s.dashboardRepo.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if cached != nil && s.clock.Now().Sub(cached.UpdatedAt) < cacheTTL {
		return cached, nil
	}
	return s.Refresh(ctx)
}

// Refresh recomputes the snapshot unconditionally. Any sub-query failure
// aborts the whole recompute and the previous row stays in place.
func (s *Service) Refresh(ctx context.Context) (*models.DashboardStatistics, error) {
	stats, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := s.dashboardRepo.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		stats.ID = existing.ID
		if err := s.dashboardRepo.Update(ctx, stats); err != nil {
			return nil, err
		}
	} else {
		if err := s.dashboardRepo.Insert(ctx, stats); err != nil {
			return nil, err
		}
	}

	// Re-read so callers see the persisted timestamps.
	return s.dashboardRepo.Latest(ctx)
}

// Detailed returns the snapshot plus small recency and top-rated slices,
// fetched fresh on every call.
func (s *Service) Detailed(ctx context.Context) (*models.DetailedDashboard, error) {
	stats, err := s.GetStatistics(ctx)
	if err != nil {
		return nil, err
	}

	detail := &models.DetailedDashboard{Statistics: stats}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		detail.RecentContacts, err = s.contactRepo.Recent(gctx, detailLimit)
		return err
	})
	g.Go(func() error {
		var err error
		detail.RecentRegistrations, err = s.registrationRepo.Recent(gctx, detailLimit)
		return err
	})
	g.Go(func() error {
		var err error
		detail.TopRatedReviews, err = s.reviewRepo.TopRated(gctx, detailLimit)
		return err
	})
	g.Go(func() error {
		var err error
		detail.RegistrationsByStatus, err = s.registrationRepo.CountGroupedByStatus(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return detail, nil
}

// compute fans the count and aggregate queries out concurrently and joins
// them into one snapshot. All-or-nothing: the first failure cancels the rest.
func (s *Service) compute(ctx context.Context) (*models.DashboardStatistics, error) {
	now := s.clock.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	stats := &models.DashboardStatistics{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		stats.TotalContacts, err = s.contactRepo.Count(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.TotalServices, err = s.catalogRepo.CountActive(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.TotalReviews, err = s.reviewRepo.Count(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.TotalRegistrations, err = s.registrationRepo.Count(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.TotalUsers, err = s.userRepo.Count(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.ActiveRegistrations, err = s.registrationRepo.CountByStatus(gctx, models.RegistrationActive)
		return err
	})
	g.Go(func() error {
		var err error
		stats.ExpiredRegistrations, err = s.registrationRepo.CountByStatus(gctx, models.RegistrationExpired)
		return err
	})
	g.Go(func() error {
		var err error
		stats.AverageRating, err = s.reviewRepo.AverageRating(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.NewContactsThisMonth, err = s.contactRepo.CountCreatedSince(gctx, monthStart)
		return err
	})
	g.Go(func() error {
		var err error
		stats.NewRegistrationsThisMonth, err = s.registrationRepo.CountCreatedSince(gctx, monthStart)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}
