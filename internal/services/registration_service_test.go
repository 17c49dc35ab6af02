package services

import (
	"context"
	"testing"
	"time"

	"corpsite/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockRegistrationRepository struct {
	mock.Mock
}

func (m *MockRegistrationRepository) Create(ctx context.Context, reg *models.ServiceRegistration) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}

func (m *MockRegistrationRepository) GetByID(ctx context.Context, id string) (*models.ServiceRegistration, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ServiceRegistration), args.Error(1)
}

func (m *MockRegistrationRepository) Update(ctx context.Context, reg *models.ServiceRegistration) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}

func (m *MockRegistrationRepository) Delete(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRegistrationRepository) List(ctx context.Context, filter *models.RegistrationFilter, now time.Time) ([]*models.ServiceRegistration, int, error) {
	args := m.Called(ctx, filter, now)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.ServiceRegistration), args.Int(1), args.Error(2)
}

func (m *MockRegistrationRepository) ListExpired(ctx context.Context, now time.Time) ([]*models.ServiceRegistration, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ServiceRegistration), args.Error(1)
}

func (m *MockRegistrationRepository) ListExpiringWithin(ctx context.Context, now time.Time, days int) ([]*models.ServiceRegistration, error) {
	args := m.Called(ctx, now, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ServiceRegistration), args.Error(1)
}

func (m *MockRegistrationRepository) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRegistrationRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockRegistrationRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

func (m *MockRegistrationRepository) CountExpiringWithin(ctx context.Context, now time.Time, days int) (int, error) {
	args := m.Called(ctx, now, days)
	return args.Int(0), args.Error(1)
}

func (m *MockRegistrationRepository) CountByPaymentStatus(ctx context.Context, paymentStatus string) (int, error) {
	args := m.Called(ctx, paymentStatus)
	return args.Int(0), args.Error(1)
}

func (m *MockRegistrationRepository) CountCreatedSince(ctx context.Context, since time.Time) (int, error) {
	args := m.Called(ctx, since)
	return args.Int(0), args.Error(1)
}

func (m *MockRegistrationRepository) CountGroupedByStatus(ctx context.Context) ([]*models.StatusCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.StatusCount), args.Error(1)
}

func (m *MockRegistrationRepository) Recent(ctx context.Context, limit int) ([]*models.ServiceRegistration, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ServiceRegistration), args.Error(1)
}

type RegistrationServiceSuite struct {
	suite.Suite
	repo  *MockRegistrationRepository
	clock *clockwork.FakeClock
	svc   RegistrationService
}

func (s *RegistrationServiceSuite) SetupTest() {
	s.repo = new(MockRegistrationRepository)
	s.clock = clockwork.NewFakeClockAt(time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC))
	s.svc = NewRegistrationService(s.repo, s.clock)
}

func TestRegistrationServiceSuite(t *testing.T) {
	suite.Run(t, new(RegistrationServiceSuite))
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *RegistrationServiceSuite) TestCreateComputesEndDate() {
	regDate := date(2024, time.January, 15)
	s.repo.On("Create", mock.Anything, mock.AnythingOfType("*models.ServiceRegistration")).Return(nil)

	reg, err := s.svc.Create(context.Background(), &CreateRegistrationInput{
		CustomerName:     "Nguyen Van A",
		Phone:            "0901234567",
		DurationMonths:   12,
		RegistrationDate: &regDate,
	})

	s.NoError(err)
	s.Equal(date(2025, time.January, 15), reg.EndDate)
	s.Equal(models.RegistrationActive, reg.Status)
	s.Equal(12, reg.DurationMonths)
	s.NotEmpty(reg.ID)
	s.repo.AssertExpectations(s.T())
}

func (s *RegistrationServiceSuite) TestCreateDefaultsRegistrationDateToNow() {
	s.repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	reg, err := s.svc.Create(context.Background(), &CreateRegistrationInput{
		CustomerName:   "Tran Thi B",
		Phone:          "0907654321",
		DurationMonths: 6,
	})

	s.NoError(err)
	s.Equal(s.clock.Now(), reg.RegistrationDate)
	s.Equal(s.clock.Now().AddDate(0, 6, 0), reg.EndDate)
}

// Day-of-month overflow follows time.AddDate normalization: Jan 31 + 1 month
// lands on Mar 2 in a leap year.
func (s *RegistrationServiceSuite) TestCreateDayOverflowNormalizes() {
	regDate := date(2024, time.January, 31)
	s.repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	reg, err := s.svc.Create(context.Background(), &CreateRegistrationInput{
		CustomerName:     "Le Van C",
		Phone:            "0900000001",
		DurationMonths:   1,
		RegistrationDate: &regDate,
	})

	s.NoError(err)
	s.Equal(date(2024, time.March, 2), reg.EndDate)
}

func (s *RegistrationServiceSuite) TestCreateRejectsInvalidInput() {
	cases := []*CreateRegistrationInput{
		{Phone: "0901", DurationMonths: 3},
		{CustomerName: "X", DurationMonths: 3},
		{CustomerName: "X", Phone: "0901", DurationMonths: 0},
		{CustomerName: "X", Phone: "0901", DurationMonths: -2},
	}
	for _, input := range cases {
		_, err := s.svc.Create(context.Background(), input)
		s.ErrorIs(err, ErrValidation)
	}
	s.repo.AssertNotCalled(s.T(), "Create")
}

func (s *RegistrationServiceSuite) existing(regDate time.Time, months int) *models.ServiceRegistration {
	return &models.ServiceRegistration{
		ID:               "reg-1",
		CustomerName:     "Nguyen Van A",
		Phone:            "0901234567",
		RegistrationDate: regDate,
		DurationMonths:   months,
		EndDate:          regDate.AddDate(0, months, 0),
		Status:           models.RegistrationActive,
		AmountPaid:       100,
		AmountDue:        300,
	}
}

func (s *RegistrationServiceSuite) TestExtendIncrementsFromEndDate() {
	reg := s.existing(date(2024, time.January, 15), 12)
	s.repo.On("GetByID", mock.Anything, "reg-1").Return(reg, nil)
	s.repo.On("Update", mock.Anything, reg).Return(nil)

	out, err := s.svc.Extend(context.Background(), "reg-1", &ExtendRegistrationInput{
		AdditionalDurationMonths: 3,
		AdditionalAmountPaid:     50,
		AdditionalAmountDue:      100,
	})

	s.NoError(err)
	s.Equal(date(2025, time.April, 15), out.EndDate)
	s.Equal(15, out.DurationMonths)
	s.Equal(int64(150), out.AmountPaid)
	s.Equal(int64(400), out.AmountDue)
}

// Two sequential extends of K months must land on the same end_date as one
// extend of 2K months.
func (s *RegistrationServiceSuite) TestExtendTwiceMatchesDoubleExtend() {
	const k = 4

	twice := s.existing(date(2024, time.February, 1), 6)
	twice.ID = "reg-twice"
	once := s.existing(date(2024, time.February, 1), 6)
	once.ID = "reg-once"

	s.repo.On("GetByID", mock.Anything, "reg-twice").Return(twice, nil)
	s.repo.On("GetByID", mock.Anything, "reg-once").Return(once, nil)
	s.repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	_, err := s.svc.Extend(context.Background(), "reg-twice", &ExtendRegistrationInput{AdditionalDurationMonths: k})
	s.NoError(err)
	_, err = s.svc.Extend(context.Background(), "reg-twice", &ExtendRegistrationInput{AdditionalDurationMonths: k})
	s.NoError(err)

	_, err = s.svc.Extend(context.Background(), "reg-once", &ExtendRegistrationInput{AdditionalDurationMonths: 2 * k})
	s.NoError(err)

	s.Equal(once.EndDate, twice.EndDate)
	s.Equal(once.DurationMonths, twice.DurationMonths)
}

// Updating the duration recomputes end_date from registration_date and
// discards prior extensions.
func (s *RegistrationServiceSuite) TestUpdateResetsEndDateFromRegistrationDate() {
	reg := s.existing(date(2024, time.January, 15), 12)
	reg.EndDate = reg.EndDate.AddDate(0, 3, 0) // simulates an earlier extend
	reg.DurationMonths = 15

	s.repo.On("GetByID", mock.Anything, "reg-1").Return(reg, nil)
	s.repo.On("Update", mock.Anything, reg).Return(nil)

	months := 10
	out, err := s.svc.Update(context.Background(), "reg-1", &UpdateRegistrationInput{DurationMonths: &months})

	s.NoError(err)
	s.Equal(date(2024, time.November, 15), out.EndDate)
	s.Equal(10, out.DurationMonths)
}

func (s *RegistrationServiceSuite) TestUpdateNotFound() {
	s.repo.On("GetByID", mock.Anything, "missing").Return(nil, pgx.ErrNoRows)

	name := "New Name"
	_, err := s.svc.Update(context.Background(), "missing", &UpdateRegistrationInput{CustomerName: &name})
	s.ErrorIs(err, ErrNotFound)
}

func (s *RegistrationServiceSuite) TestSoftDeleteSetsCancelled() {
	reg := s.existing(date(2024, time.January, 15), 12)
	s.repo.On("GetByID", mock.Anything, "reg-1").Return(reg, nil)
	s.repo.On("Update", mock.Anything, reg).Return(nil)

	out, err := s.svc.SoftDelete(context.Background(), "reg-1")
	s.NoError(err)
	s.Equal(models.RegistrationCancelled, out.Status)
}

func (s *RegistrationServiceSuite) TestPermanentDeleteNotFound() {
	s.repo.On("Delete", mock.Anything, "missing").Return(int64(0), nil)

	err := s.svc.PermanentDelete(context.Background(), "missing")
	s.ErrorIs(err, ErrNotFound)
}

func (s *RegistrationServiceSuite) TestPermanentDeleteRemovesRow() {
	s.repo.On("Delete", mock.Anything, "reg-1").Return(int64(1), nil)

	s.NoError(s.svc.PermanentDelete(context.Background(), "reg-1"))
}

func (s *RegistrationServiceSuite) TestListRejectsUnknownFilterValues() {
	_, err := s.svc.List(context.Background(), &models.RegistrationFilter{Status: "pending"})
	s.ErrorIs(err, ErrValidation)

	_, err = s.svc.List(context.Background(), &models.RegistrationFilter{PaymentStatus: "overdue"})
	s.ErrorIs(err, ErrValidation)
}

func (s *RegistrationServiceSuite) TestListNormalizesPagination() {
	s.repo.On("List", mock.Anything, mock.Anything, s.clock.Now()).Return([]*models.ServiceRegistration{}, 25, nil)

	page, err := s.svc.List(context.Background(), &models.RegistrationFilter{Page: 0, Limit: 0})

	s.NoError(err)
	s.Equal(1, page.Page)
	s.Equal(10, page.Limit)
	s.Equal(25, page.Total)
	s.Equal(3, page.TotalPages)
}

func (s *RegistrationServiceSuite) TestSweepExpiredUsesClock() {
	s.repo.On("SweepExpired", mock.Anything, s.clock.Now()).Return(int64(3), nil)

	affected, err := s.svc.SweepExpired(context.Background())
	s.NoError(err)
	s.Equal(int64(3), affected)
}

func (s *RegistrationServiceSuite) TestExpiringSoonDefaultsTo30Days() {
	expected := []*models.ServiceRegistration{{ID: "reg-1"}}
	s.repo.On("ListExpiringWithin", mock.Anything, s.clock.Now(), 30).Return(expected, nil)

	regs, err := s.svc.ExpiringSoon(context.Background(), 0)
	s.NoError(err)
	s.Equal(expected, regs)
}

func (s *RegistrationServiceSuite) TestExpiredListsUsingClock() {
	expected := []*models.ServiceRegistration{{ID: "reg-2"}}
	s.repo.On("ListExpired", mock.Anything, s.clock.Now()).Return(expected, nil)

	regs, err := s.svc.Expired(context.Background())
	s.NoError(err)
	s.Equal(expected, regs)
}

func (s *RegistrationServiceSuite) TestStatistics() {
	s.repo.On("Count", mock.Anything).Return(20, nil)
	s.repo.On("CountByStatus", mock.Anything, models.RegistrationActive).Return(12, nil)
	s.repo.On("CountByStatus", mock.Anything, models.RegistrationExpired).Return(5, nil)
	s.repo.On("CountByStatus", mock.Anything, models.RegistrationCancelled).Return(3, nil)
	s.repo.On("CountExpiringWithin", mock.Anything, s.clock.Now(), 30).Return(4, nil)
	s.repo.On("CountByPaymentStatus", mock.Anything, models.PaymentPaid).Return(10, nil)
	s.repo.On("CountByPaymentStatus", mock.Anything, models.PaymentUnpaid).Return(6, nil)
	s.repo.On("CountByPaymentStatus", mock.Anything, models.PaymentPartial).Return(4, nil)

	stats, err := s.svc.Statistics(context.Background())

	s.NoError(err)
	s.Equal(&models.RegistrationStats{
		Total: 20, Active: 12, Expired: 5, Cancelled: 3,
		ExpiringSoon: 4, Paid: 10, Unpaid: 6, Partial: 4,
	}, stats)
}

// Full lifecycle: 12-month registration from 2024-01-15, extended by 3, then
// swept after the extended end date has passed.
func TestRegistrationLifecycle(t *testing.T) {
	repo := new(MockRegistrationRepository)
	clock := clockwork.NewFakeClockAt(date(2024, time.January, 15))
	svc := NewRegistrationService(repo, clock)

	var stored *models.ServiceRegistration
	repo.On("Create", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*models.ServiceRegistration)
	})

	reg, err := svc.Create(context.Background(), &CreateRegistrationInput{
		CustomerName:   "Pham Van D",
		Phone:          "0912345678",
		DurationMonths: 12,
	})
	assert.NoError(t, err)
	assert.Equal(t, date(2025, time.January, 15), reg.EndDate)
	assert.Equal(t, models.RegistrationActive, reg.Status)

	repo.On("GetByID", mock.Anything, stored.ID).Return(stored, nil)
	repo.On("Update", mock.Anything, stored).Return(nil)

	reg, err = svc.Extend(context.Background(), stored.ID, &ExtendRegistrationInput{AdditionalDurationMonths: 3})
	assert.NoError(t, err)
	assert.Equal(t, date(2025, time.April, 15), reg.EndDate)
	assert.Equal(t, 15, reg.DurationMonths)

	clock.Advance(date(2025, time.May, 1).Sub(clock.Now()))
	repo.On("SweepExpired", mock.Anything, clock.Now()).Return(int64(1), nil)

	affected, err := svc.SweepExpired(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(1), affected)
}
