package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"corpsite/internal/common"
	"corpsite/internal/models"
	"corpsite/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonboulle/clockwork"
)

// CreateRegistrationInput carries the fields accepted when opening a new
// registration. RegistrationDate defaults to the current time.
type CreateRegistrationInput struct {
	CustomerName     string     `json:"customer_name" validate:"required"`
	Phone            string     `json:"phone" validate:"required"`
	Address          *string    `json:"address"`
	Notes            *string    `json:"notes"`
	ParentID         *string    `json:"parent_id"`
	DurationMonths   int        `json:"duration_months" validate:"required,gt=0"`
	RegistrationDate *time.Time `json:"registration_date"`
	AmountPaid       *int64     `json:"amount_paid"`
	AmountDue        *int64     `json:"amount_due"`
}

// UpdateRegistrationInput is a partial update; nil fields are left untouched.
// Changing DurationMonths or RegistrationDate recomputes end_date from the
// registration date, discarding any prior extensions.
type UpdateRegistrationInput struct {
	CustomerName     *string    `json:"customer_name"`
	Phone            *string    `json:"phone"`
	Address          *string    `json:"address"`
	Notes            *string    `json:"notes"`
	ParentID         *string    `json:"parent_id"`
	DurationMonths   *int       `json:"duration_months"`
	RegistrationDate *time.Time `json:"registration_date"`
	Status           *string    `json:"status"`
	AmountPaid       *int64     `json:"amount_paid"`
	AmountDue        *int64     `json:"amount_due"`
}

// ExtendRegistrationInput is additive: months are added onto the current
// end_date and amounts are summed onto the existing totals.
type ExtendRegistrationInput struct {
	AdditionalDurationMonths int   `json:"additional_duration_months"`
	AdditionalAmountPaid     int64 `json:"additional_amount_paid"`
	AdditionalAmountDue      int64 `json:"additional_amount_due"`
}

type RegistrationService interface {
	Create(ctx context.Context, input *CreateRegistrationInput) (*models.ServiceRegistration, error)
	GetByID(ctx context.Context, id string) (*models.ServiceRegistration, error)
	Update(ctx context.Context, id string, input *UpdateRegistrationInput) (*models.ServiceRegistration, error)
	Extend(ctx context.Context, id string, input *ExtendRegistrationInput) (*models.ServiceRegistration, error)
	SoftDelete(ctx context.Context, id string) (*models.ServiceRegistration, error)
	PermanentDelete(ctx context.Context, id string) error
	List(ctx context.Context, filter *models.RegistrationFilter) (*models.RegistrationPage, error)
	ExpiringSoon(ctx context.Context, days int) ([]*models.ServiceRegistration, error)
	Expired(ctx context.Context) ([]*models.ServiceRegistration, error)
	SweepExpired(ctx context.Context) (int64, error)
	Statistics(ctx context.Context) (*models.RegistrationStats, error)
}

type registrationService struct {
	repo  repositories.RegistrationRepository
	clock clockwork.Clock
}

func NewRegistrationService(repo repositories.RegistrationRepository, clock clockwork.Clock) RegistrationService {
	return &registrationService{repo: repo, clock: clock}
}

func (s *registrationService) Create(ctx context.Context, input *CreateRegistrationInput) (*models.ServiceRegistration, error) {
	if strings.TrimSpace(input.CustomerName) == "" {
		return nil, fmt.Errorf("%w: customer_name is required", ErrValidation)
	}
	if strings.TrimSpace(input.Phone) == "" {
		return nil, fmt.Errorf("%w: phone is required", ErrValidation)
	}
	if input.DurationMonths <= 0 {
		return nil, fmt.Errorf("%w: duration_months must be a positive integer", ErrValidation)
	}

	registrationDate := s.clock.Now()
	if input.RegistrationDate != nil {
		registrationDate = *input.RegistrationDate
	}

	var amountPaid, amountDue int64
	if input.AmountPaid != nil {
		amountPaid = *input.AmountPaid
	}
	if input.AmountDue != nil {
		amountDue = *input.AmountDue
	}
	if amountPaid < 0 || amountDue < 0 {
		return nil, fmt.Errorf("%w: amounts cannot be negative", ErrValidation)
	}

	reg := &models.ServiceRegistration{
		ID:               uuid.NewString(),
		CustomerName:     input.CustomerName,
		Phone:            input.Phone,
		Address:          input.Address,
		Notes:            input.Notes,
		ParentID:         input.ParentID,
		RegistrationDate: registrationDate,
		DurationMonths:   input.DurationMonths,
		EndDate:          registrationDate.AddDate(0, input.DurationMonths, 0),
		Status:           models.RegistrationActive,
		AmountPaid:       amountPaid,
		AmountDue:        amountDue,
	}

	if err := s.repo.Create(ctx, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

func (s *registrationService) GetByID(ctx context.Context, id string) (*models.ServiceRegistration, error) {
	reg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return reg, nil
}

func (s *registrationService) Update(ctx context.Context, id string, input *UpdateRegistrationInput) (*models.ServiceRegistration, error) {
	reg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	if input.CustomerName != nil {
		if strings.TrimSpace(*input.CustomerName) == "" {
			return nil, fmt.Errorf("%w: customer_name cannot be empty", ErrValidation)
		}
		reg.CustomerName = *input.CustomerName
	}
	if input.Phone != nil {
		if strings.TrimSpace(*input.Phone) == "" {
			return nil, fmt.Errorf("%w: phone cannot be empty", ErrValidation)
		}
		reg.Phone = *input.Phone
	}
	if input.Address != nil {
		reg.Address = input.Address
	}
	if input.Notes != nil {
		reg.Notes = input.Notes
	}
	if input.ParentID != nil {
		reg.ParentID = input.ParentID
	}
	if input.Status != nil {
		if !validStatus(*input.Status) {
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, *input.Status)
		}
		reg.Status = *input.Status
	}
	if input.AmountPaid != nil {
		if *input.AmountPaid < 0 {
			return nil, fmt.Errorf("%w: amount_paid cannot be negative", ErrValidation)
		}
		reg.AmountPaid = *input.AmountPaid
	}
	if input.AmountDue != nil {
		if *input.AmountDue < 0 {
			return nil, fmt.Errorf("%w: amount_due cannot be negative", ErrValidation)
		}
		reg.AmountDue = *input.AmountDue
	}

	// A duration or start-date edit resets end_date from the registration
	// date. This deliberately discards prior Extend increments: update means
	// "edit the plan", extend means "add more time to the existing plan".
	if input.RegistrationDate != nil || input.DurationMonths != nil {
		if input.RegistrationDate != nil {
			reg.RegistrationDate = *input.RegistrationDate
		}
		if input.DurationMonths != nil {
			if *input.DurationMonths <= 0 {
				return nil, fmt.Errorf("%w: duration_months must be a positive integer", ErrValidation)
			}
			reg.DurationMonths = *input.DurationMonths
		}
		reg.EndDate = reg.RegistrationDate.AddDate(0, reg.DurationMonths, 0)
	}

	if err := s.repo.Update(ctx, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

func (s *registrationService) Extend(ctx context.Context, id string, input *ExtendRegistrationInput) (*models.ServiceRegistration, error) {
	if input.AdditionalDurationMonths < 0 {
		return nil, fmt.Errorf("%w: additional_duration_months cannot be negative", ErrValidation)
	}
	if input.AdditionalAmountPaid < 0 || input.AdditionalAmountDue < 0 {
		return nil, fmt.Errorf("%w: additional amounts cannot be negative", ErrValidation)
	}

	reg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	// Increments from the current end_date so renewal chains stack.
	reg.DurationMonths += input.AdditionalDurationMonths
	reg.EndDate = reg.EndDate.AddDate(0, input.AdditionalDurationMonths, 0)
	reg.AmountPaid += input.AdditionalAmountPaid
	reg.AmountDue += input.AdditionalAmountDue

	if err := s.repo.Update(ctx, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

func (s *registrationService) SoftDelete(ctx context.Context, id string) (*models.ServiceRegistration, error) {
	reg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	reg.Status = models.RegistrationCancelled
	if err := s.repo.Update(ctx, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

func (s *registrationService) PermanentDelete(ctx context.Context, id string) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: registration %s", ErrNotFound, id)
	}
	return nil
}

func (s *registrationService) List(ctx context.Context, filter *models.RegistrationFilter) (*models.RegistrationPage, error) {
	if filter.Status != "" && !validStatus(filter.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, filter.Status)
	}
	if filter.PaymentStatus != "" && !validPaymentStatus(filter.PaymentStatus) {
		return nil, fmt.Errorf("%w: unknown payment_status %q", ErrValidation, filter.PaymentStatus)
	}
	filter.Page, filter.Limit = common.NormalizePagination(filter.Page, filter.Limit)

	regs, total, err := s.repo.List(ctx, filter, s.clock.Now())
	if err != nil {
		return nil, err
	}

	return &models.RegistrationPage{
		Data:       regs,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: common.TotalPages(total, filter.Limit),
	}, nil
}

// ExpiringSoon lists active registrations whose end_date falls within the
// next N days. The window defaults to 30 days.
func (s *registrationService) ExpiringSoon(ctx context.Context, days int) ([]*models.ServiceRegistration, error) {
	if days <= 0 {
		days = 30
	}
	return s.repo.ListExpiringWithin(ctx, s.clock.Now(), days)
}

// Expired lists active registrations already past their end_date, i.e. rows
// the next sweep would transition.
func (s *registrationService) Expired(ctx context.Context) ([]*models.ServiceRegistration, error) {
	return s.repo.ListExpired(ctx, s.clock.Now())
}

func (s *registrationService) SweepExpired(ctx context.Context) (int64, error) {
	return s.repo.SweepExpired(ctx, s.clock.Now())
}

func (s *registrationService) Statistics(ctx context.Context) (*models.RegistrationStats, error) {
	stats := &models.RegistrationStats{}
	now := s.clock.Now()

	var err error
	if stats.Total, err = s.repo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Active, err = s.repo.CountByStatus(ctx, models.RegistrationActive); err != nil {
		return nil, err
	}
	if stats.Expired, err = s.repo.CountByStatus(ctx, models.RegistrationExpired); err != nil {
		return nil, err
	}
	if stats.Cancelled, err = s.repo.CountByStatus(ctx, models.RegistrationCancelled); err != nil {
		return nil, err
	}
	if stats.ExpiringSoon, err = s.repo.CountExpiringWithin(ctx, now, 30); err != nil {
		return nil, err
	}
	if stats.Paid, err = s.repo.CountByPaymentStatus(ctx, models.PaymentPaid); err != nil {
		return nil, err
	}
	if stats.Unpaid, err = s.repo.CountByPaymentStatus(ctx, models.PaymentUnpaid); err != nil {
		return nil, err
	}
	if stats.Partial, err = s.repo.CountByPaymentStatus(ctx, models.PaymentPartial); err != nil {
		return nil, err
	}
	return stats, nil
}

func validStatus(status string) bool {
	switch status {
	case models.RegistrationActive, models.RegistrationExpired, models.RegistrationCancelled:
		return true
	}
	return false
}

func validPaymentStatus(paymentStatus string) bool {
	switch paymentStatus {
	case models.PaymentPaid, models.PaymentUnpaid, models.PaymentPartial:
		return true
	}
	return false
}

// mapNotFound converts a missing-row error into the service-level sentinel.
func mapNotFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}
