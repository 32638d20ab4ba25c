package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/schedule"
	businessClient "github.com/m04kA/SMC-SalonService/internal/integrations/businessservice"
	"github.com/m04kA/SMC-SalonService/internal/service/schedule/models"
)

// Service сервис для работы с настройками расписания салонов
type Service struct {
	scheduleRepo   ScheduleRepository
	businessClient BusinessServiceClient
	logger         Logger
}

// NewService создает новый экземпляр сервиса настроек расписания
func NewService(
	scheduleRepo ScheduleRepository,
	businessClient BusinessServiceClient,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo:   scheduleRepo,
		businessClient: businessClient,
		logger:         logger,
	}
}

// Get получает настройки расписания салона
// Публичный метод; если салон ничего не настраивал, возвращаются значения по умолчанию
func (s *Service) Get(ctx context.Context, businessID int64) (*models.SettingsResponse, error) {
	s.logger.Info("Get: fetching schedule settings for business=%d", businessID)

	if businessID <= 0 {
		return nil, fmt.Errorf("%w: businessId must be positive", ErrInvalidInput)
	}

	settings, isDefault, err := s.load(ctx, "Get", businessID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainSettings(settings, isDefault), nil
}

// Update обновляет настройки расписания салона
// Доступно только менеджерам салона; поддерживает частичное обновление
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating schedule settings for business=%d by user=%d", req.BusinessID, req.UserID)

	if req.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	// 1. Проверяем права доступа (только менеджер салона)
	business, err := s.businessClient.GetBusiness(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, businessClient.ErrBusinessNotFound) {
			s.logger.Warn("Update: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("Update: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}
	if !business.IsManager(req.UserID) {
		s.logger.Warn("Update: user=%d is not a manager of business=%d", req.UserID, req.BusinessID)
		return nil, ErrAccessDenied
	}

	// 2. Получаем текущие настройки (или значения по умолчанию)
	settings, _, err := s.load(ctx, "Update", req.BusinessID)
	if err != nil {
		return nil, err
	}

	// 3. Применяем изменения и валидируем результат
	req.ApplyToSettings(settings)
	if err := validateSettings(settings); err != nil {
		s.logger.Warn("Update: validation failed for business=%d: %v", req.BusinessID, err)
		return nil, err
	}

	// 4. Сохраняем
	saved, err := s.scheduleRepo.Upsert(ctx, settings)
	if err != nil {
		s.logger.Error("Update: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: schedule settings saved for business=%d", req.BusinessID)
	return models.FromDomainSettings(saved, false), nil
}

func (s *Service) load(ctx context.Context, op string, businessID int64) (*domain.ScheduleSettings, bool, error) {
	settings, err := s.scheduleRepo.Get(ctx, businessID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrSettingsNotFound) {
			return domain.DefaultScheduleSettings(businessID), true, nil
		}
		s.logger.Error("%s: repository error for business=%d: %v", op, businessID, err)
		return nil, false, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return settings, false, nil
}

// validateSettings проверяет допустимые диапазоны настроек
func validateSettings(s *domain.ScheduleSettings) error {
	if s.SlotDurationMinutes < domain.MinSlotDurationMinutes || s.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slotDurationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	if s.MinTimeBeforeBooking < domain.MinTimeBeforeBookingMinutes || s.MinTimeBeforeBooking > domain.MaxTimeBeforeBookingMinutes {
		return fmt.Errorf("%w: minTimeBeforeBooking must be between %d and %d",
			ErrInvalidInput, domain.MinTimeBeforeBookingMinutes, domain.MaxTimeBeforeBookingMinutes)
	}

	if s.MaxFutureBookingDays < domain.MinFutureBookingDays || s.MaxFutureBookingDays > domain.MaxFutureBookingDays {
		return fmt.Errorf("%w: maxFutureBookingDays must be between %d and %d",
			ErrInvalidInput, domain.MinFutureBookingDays, domain.MaxFutureBookingDays)
	}

	if s.CancellationTimeLimit < domain.MinCancellationTimeLimit || s.CancellationTimeLimit > domain.MaxCancellationTimeLimit {
		return fmt.Errorf("%w: cancellationTimeLimit must be between %d and %d",
			ErrInvalidInput, domain.MinCancellationTimeLimit, domain.MaxCancellationTimeLimit)
	}

	return nil
}
