package background

import (
	"context"
	"log"
	"sync"
	"time"

	"corpsite/internal/dashboard"
	"corpsite/internal/services"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler runs the periodic maintenance jobs: the registration expiry
// sweep and the dashboard snapshot refresh.
type JobScheduler struct {
	scheduler       gocron.Scheduler
	registrationSvc services.RegistrationService
	dashboardSvc    *dashboard.Service
	jobs            map[string]gocron.Job
	mu              sync.RWMutex
}

func NewJobScheduler(registrationSvc services.RegistrationService, dashboardSvc *dashboard.Service) *JobScheduler {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler:       scheduler,
		registrationSvc: registrationSvc,
		dashboardSvc:    dashboardSvc,
		jobs:            make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js
}

// Start starts the job scheduler.
func (js *JobScheduler) Start() error {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
	return nil
}

// Stop stops the job scheduler.
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	// Expiry sweep - daily. Nothing else ever moves rows to expired.
	sweepJob, err := js.scheduler.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(js.sweepExpiredRegistrations, context.Background()),
		gocron.WithName("registration-expiry-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create expiry sweep job: %v", err)
	} else {
		js.jobs["expiry-sweep"] = sweepJob
	}

	// Dashboard refresh - hourly, matching the snapshot TTL so reads rarely
	// pay the recompute cost themselves.
	refreshJob, err := js.scheduler.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(js.refreshDashboard, context.Background()),
		gocron.WithName("dashboard-stats-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create dashboard refresh job: %v", err)
	} else {
		js.jobs["dashboard-refresh"] = refreshJob
	}

	log.Printf("Registered %d background jobs", len(js.jobs))
}

func (js *JobScheduler) sweepExpiredRegistrations(ctx context.Context) {
	affected, err := js.registrationSvc.SweepExpired(ctx)
	if err != nil {
		log.Printf("Expiry sweep failed: %v", err)
		return
	}
	if affected > 0 {
		log.Printf("Expiry sweep marked %d registrations expired", affected)
	}
}

func (js *JobScheduler) refreshDashboard(ctx context.Context) {
	if _, err := js.dashboardSvc.Refresh(ctx); err != nil {
		log.Printf("Dashboard refresh failed: %v", err)
	}
}

// JobNames returns the registered job names, mainly for health reporting.
func (js *JobScheduler) JobNames() []string {
	js.mu.RLock()
	defer js.mu.RUnlock()

	names := make([]string, 0, len(js.jobs))
	for name := range js.jobs {
		names = append(names, name)
	}
	return names
}
