package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/schedule"
	businessClient "github.com/m04kA/SMC-SalonService/internal/integrations/businessservice"
	"github.com/m04kA/SMC-SalonService/internal/slotengine"
)

// UseCase use case для получения свободных слотов на дату
type UseCase struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	businessClient  BusinessServiceClient
	metrics         MetricsCollector
	serviceName     string
	defaultLocation *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// defaultLocation используется для салонов без указанного часового пояса
func NewUseCase(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	businessClient BusinessServiceClient,
	metrics MetricsCollector,
	serviceName string,
	defaultLocation *time.Location,
	logger Logger,
) *UseCase {
	if defaultLocation == nil {
		defaultLocation = time.UTC
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &UseCase{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		businessClient:  businessClient,
		metrics:         metrics,
		serviceName:     serviceName,
		defaultLocation: defaultLocation,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения свободных слотов
// Закрытый день - это обычный ответ с Closed = true, а не ошибка
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: business=%d, service=%d, date=%s",
		req.BusinessID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем услугу
	service, err := uc.businessClient.GetService(ctx, req.BusinessID, req.ServiceID)
	if err != nil {
		if errors.Is(err, businessClient.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsBookable() {
		uc.logger.Warn("GetAvailableSlots: service id=%d is not bookable", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 4. Получаем салон (часовой пояс и рабочие часы)
	business, err := uc.businessClient.GetBusiness(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, businessClient.ErrBusinessNotFound) {
			uc.logger.Warn("GetAvailableSlots: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	// 5. Получаем настройки расписания (или значения по умолчанию)
	settings, err := uc.getSettings(ctx, req.BusinessID)
	if err != nil {
		return nil, err
	}

	// 6. Строим окно доступности на дату в часовом поясе салона
	loc := business.Location(uc.defaultLocation)
	date := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, loc)
	day, _ := business.WorkingHours.ForWeekday(date.Weekday())

	response := &Response{
		Date:       date,
		BusinessID: req.BusinessID,
		ServiceID:  req.ServiceID,
		Timezone:   loc.String(),
		Slots:      []domain.CandidateSlot{},
	}

	window := slotengine.BuildWindow(date, day, now, settings)
	if window.Closed {
		uc.logger.Info("GetAvailableSlots: business=%d closed on %s: %s",
			req.BusinessID, date.Format(domain.DateFormat), window.Reason)
		response.Closed = true
		response.ClosedReason = string(window.Reason)
		uc.metrics.ObserveSlots(uc.serviceName, 0)
		return response, nil
	}

	// 7. Получаем занятые интервалы в пределах окна
	booked, err := uc.appointmentRepo.ListBookedRanges(ctx, req.BusinessID, window.Start, window.End)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list booked ranges: %v", err)
		return nil, fmt.Errorf("%w: failed to list booked ranges: %w", ErrInternal, err)
	}

	// 8. Генерируем кандидатов и отбрасываем пересекающиеся с записями
	response.Slots = slotengine.SlotsInWindow(window, settings, service, booked)

	uc.metrics.ObserveSlots(uc.serviceName, len(response.Slots))
	uc.logger.Info("GetAvailableSlots: %d slots for business=%d, service=%d, date=%s (%d booked ranges)",
		len(response.Slots), req.BusinessID, req.ServiceID, date.Format(domain.DateFormat), len(booked))

	return response, nil
}

func (uc *UseCase) getSettings(ctx context.Context, businessID int64) (*domain.ScheduleSettings, error) {
	settings, err := uc.scheduleRepo.Get(ctx, businessID)
	if err == nil {
		return settings, nil
	}
	if errors.Is(err, scheduleRepo.ErrSettingsNotFound) {
		return domain.DefaultScheduleSettings(businessID), nil
	}

	uc.logger.Error("GetAvailableSlots: failed to get schedule settings for business=%d: %v", businessID, err)
	return nil, fmt.Errorf("%w: failed to get schedule settings: %v", ErrInternal, err)
}
