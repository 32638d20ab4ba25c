package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/schedule"
	businessClient "github.com/m04kA/SMC-SalonService/internal/integrations/businessservice"
	"github.com/m04kA/SMC-SalonService/internal/service/schedule/models"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

const (
	businessID = int64(7)
	managerID  = int64(70)
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeRepo struct {
	stored  map[int64]domain.ScheduleSettings
	getErr  error
	upserts int
}

func (r *fakeRepo) Get(_ context.Context, id int64) (*domain.ScheduleSettings, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	s, ok := r.stored[id]
	if !ok {
		return nil, scheduleRepo.ErrSettingsNotFound
	}
	return &s, nil
}

func (r *fakeRepo) Upsert(_ context.Context, s *domain.ScheduleSettings) (*domain.ScheduleSettings, error) {
	r.upserts++
	saved := *s
	saved.UpdatedAt = time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC)
	if r.stored == nil {
		r.stored = make(map[int64]domain.ScheduleSettings)
	}
	r.stored[s.BusinessID] = saved
	return &saved, nil
}

type fakeBusinesses struct{}

func (fakeBusinesses) GetBusiness(_ context.Context, id int64) (*domain.Business, error) {
	if id != businessID {
		return nil, businessClient.ErrBusinessNotFound
	}
	return &domain.Business{ID: businessID, ManagerIDs: []int64{managerID}}, nil
}

func TestService_Get_Defaults(t *testing.T) {
	svc := NewService(&fakeRepo{}, fakeBusinesses{}, nopLogger{})

	resp, err := svc.Get(context.Background(), businessID)
	require.NoError(t, err)

	assert.True(t, resp.IsDefault)
	assert.Equal(t, domain.DefaultSlotDurationMinutes, resp.SlotDurationMinutes)
	assert.Equal(t, domain.DefaultAllowSameDayBooking, resp.AllowSameDayBooking)
	assert.Nil(t, resp.UpdatedAt)
}

func TestService_Get_RepositoryError(t *testing.T) {
	svc := NewService(&fakeRepo{getErr: errors.New("db down")}, fakeBusinesses{}, nopLogger{})

	_, err := svc.Get(context.Background(), businessID)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_Update_PartialPatch(t *testing.T) {
	repo := &fakeRepo{stored: map[int64]domain.ScheduleSettings{
		businessID: {BusinessID: businessID, SlotDurationMinutes: 60, AllowSameDayBooking: true, AllowCancellation: true},
	}}
	svc := NewService(repo, fakeBusinesses{}, nopLogger{})

	resp, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
		UserID:      managerID,
		BusinessID:  businessID,
		AutoApprove: ptr.Ptr(true),
	})
	require.NoError(t, err)

	assert.False(t, resp.IsDefault)
	assert.True(t, resp.AutoApprove)
	assert.Equal(t, 60, resp.SlotDurationMinutes)
	assert.True(t, resp.AllowCancellation)
	require.NotNil(t, resp.UpdatedAt)
}

func TestService_Update_CreatesFromDefaults(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, fakeBusinesses{}, nopLogger{})

	resp, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
		UserID:              managerID,
		BusinessID:          businessID,
		SlotDurationMinutes: ptr.Ptr(15),
	})
	require.NoError(t, err)

	assert.Equal(t, 15, resp.SlotDurationMinutes)
	assert.Equal(t, domain.DefaultAllowCancellation, resp.AllowCancellation)
	assert.Equal(t, 1, repo.upserts)
}

func TestService_Update_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		req     models.UpdateSettingsRequest
		wantErr error
	}{
		{
			name:    "not a manager",
			req:     models.UpdateSettingsRequest{UserID: 1, BusinessID: businessID, AutoApprove: ptr.Ptr(true)},
			wantErr: ErrAccessDenied,
		},
		{
			name:    "unknown business",
			req:     models.UpdateSettingsRequest{UserID: managerID, BusinessID: 99, AutoApprove: ptr.Ptr(true)},
			wantErr: ErrBusinessNotFound,
		},
		{
			name:    "empty patch",
			req:     models.UpdateSettingsRequest{UserID: managerID, BusinessID: businessID},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "slot too short",
			req:     models.UpdateSettingsRequest{UserID: managerID, BusinessID: businessID, SlotDurationMinutes: ptr.Ptr(4)},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "slot too long",
			req:     models.UpdateSettingsRequest{UserID: managerID, BusinessID: businessID, SlotDurationMinutes: ptr.Ptr(481)},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "notice over a week",
			req:     models.UpdateSettingsRequest{UserID: managerID, BusinessID: businessID, MinTimeBeforeBooking: ptr.Ptr(10081)},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "future days over a year",
			req:     models.UpdateSettingsRequest{UserID: managerID, BusinessID: businessID, MaxFutureBookingDays: ptr.Ptr(366)},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "negative cancellation limit",
			req:     models.UpdateSettingsRequest{UserID: managerID, BusinessID: businessID, CancellationTimeLimit: ptr.Ptr(-1)},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{}
			svc := NewService(repo, fakeBusinesses{}, nopLogger{})

			_, err := svc.Update(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, repo.upserts)
		})
	}
}
