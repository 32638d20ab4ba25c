package book_slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/infra/events"
	"github.com/m04kA/SMC-SalonService/internal/infra/lock"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	scheduleRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/schedule"
	businessClient "github.com/m04kA/SMC-SalonService/internal/integrations/businessservice"
	userClient "github.com/m04kA/SMC-SalonService/internal/integrations/userservice"
	"github.com/m04kA/SMC-SalonService/internal/slotengine"
)

const (
	defaultMaxCommitAttempts = 3
	publishTimeout           = 3 * time.Second
)

// Исходы бронирования для метрик
const (
	outcomeBooked    = "booked"
	outcomeSlotTaken = "slot_taken"
	outcomeClosed    = "closed"
	outcomeError     = "error"
)

// Config параметры use case
type Config struct {
	ServiceName       string         // имя сервиса в метриках
	MaxCommitAttempts int            // попыток коммита при конфликте сериализации
	DefaultLocation   *time.Location // часовой пояс салонов без явного пояса
}

// UseCase use case записи клиента на услугу
type UseCase struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	businessClient  BusinessServiceClient
	userClient      UserServiceClient
	locker          Locker
	txManager       TransactionManager
	publisher       EventPublisher
	metrics         MetricsCollector
	cfg             Config
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	businessClient BusinessServiceClient,
	userClient UserServiceClient,
	locker Locker,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics MetricsCollector,
	cfg Config,
	logger Logger,
) *UseCase {
	if cfg.MaxCommitAttempts <= 0 {
		cfg.MaxCommitAttempts = defaultMaxCommitAttempts
	}
	if cfg.DefaultLocation == nil {
		cfg.DefaultLocation = time.UTC
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}

	return &UseCase{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		businessClient:  businessClient,
		userClient:      userClient,
		locker:          locker,
		txManager:       txManager,
		publisher:       publisher,
		metrics:         metrics,
		cfg:             cfg,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case записи
// Повторно проверяет окно дня и пересечения на момент коммита: слот, показанный клиенту, мог быть уже занят
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookSlot: customer=%d, business=%d, service=%d, date=%s, time=%s",
		req.CustomerID, req.BusinessID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookSlot: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем услугу
	service, err := uc.businessClient.GetService(ctx, req.BusinessID, req.ServiceID)
	if err != nil {
		if errors.Is(err, businessClient.ErrServiceNotFound) {
			uc.logger.Warn("BookSlot: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("BookSlot: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, uc.fail(fmt.Errorf("%w: failed to get service: %v", ErrInternal, err))
	}
	if !service.IsBookable() {
		uc.logger.Warn("BookSlot: service id=%d is not bookable", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 4. Получаем салон
	business, err := uc.businessClient.GetBusiness(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, businessClient.ErrBusinessNotFound) {
			uc.logger.Warn("BookSlot: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("BookSlot: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, uc.fail(fmt.Errorf("%w: failed to get business: %v", ErrInternal, err))
	}

	// 5. Получаем настройки расписания (или значения по умолчанию)
	settings, err := uc.scheduleRepo.Get(ctx, req.BusinessID)
	if err != nil {
		if !errors.Is(err, scheduleRepo.ErrSettingsNotFound) {
			uc.logger.Error("BookSlot: failed to get schedule settings: %v", err)
			return nil, uc.fail(fmt.Errorf("%w: failed to get schedule settings: %v", ErrInternal, err))
		}
		settings = domain.DefaultScheduleSettings(req.BusinessID)
	}

	// 6. Проверяем, что услуга целиком помещается в окно дня
	loc := business.Location(uc.cfg.DefaultLocation)
	date := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, loc)
	start := req.StartTime.On(date)
	duration := time.Duration(service.DurationMinutes) * time.Minute

	day, _ := business.WorkingHours.ForWeekday(date.Weekday())
	window := slotengine.BuildWindow(date, day, now, settings)
	if err := slotengine.CheckWindow(window, start, duration); err != nil {
		uc.logger.Warn("BookSlot: business=%d rejects %s: %v", req.BusinessID, start.Format(time.RFC3339), err)
		uc.metrics.IncBookingOutcome(uc.cfg.ServiceName, outcomeClosed)
		return nil, fmt.Errorf("%w: %v", ErrBusinessClosed, err)
	}

	// 7. Проверяем клиента (при недоступности UserService продолжаем без проверки)
	if err := uc.checkCustomer(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	// 8. Сохраняем запись под блокировкой салона в сериализуемой транзакции
	status := domain.StatusPending
	if settings.AutoApprove {
		status = domain.StatusApproved
	}

	created, err := uc.commit(ctx, &domain.Appointment{
		BusinessID:      req.BusinessID,
		CustomerID:      req.CustomerID,
		ServiceID:       req.ServiceID,
		StartTime:       start,
		Status:          status,
		ServiceName:     service.Name,
		ServiceDuration: service.DurationMinutes,
		ServicePrice:    service.Price,
		Notes:           req.Notes,
	})
	if err != nil {
		if errors.Is(err, ErrSlotTaken) {
			uc.metrics.IncBookingOutcome(uc.cfg.ServiceName, outcomeSlotTaken)
			return nil, err
		}
		return nil, uc.fail(err)
	}

	uc.metrics.IncBookingOutcome(uc.cfg.ServiceName, outcomeBooked)
	uc.logger.Info("BookSlot: created appointment id=%d (business=%d, %s, status=%s)",
		created.ID, created.BusinessID, created.StartTime.In(loc).Format(time.RFC3339), created.Status)

	// 9. Публикуем событие (ошибка публикации не отменяет запись)
	uc.publish(ctx, created, now)

	return &Response{
		ID:              created.ID,
		BusinessID:      created.BusinessID,
		CustomerID:      created.CustomerID,
		ServiceID:       created.ServiceID,
		StartTime:       created.StartTime.In(loc),
		EndTime:         created.EndTime().In(loc),
		Status:          string(created.Status),
		ServiceName:     created.ServiceName,
		ServiceDuration: created.ServiceDuration,
		ServicePrice:    created.ServicePrice,
		Notes:           created.Notes,
		CreatedAt:       created.CreatedAt,
	}, nil
}

func (uc *UseCase) checkCustomer(ctx context.Context, customerID int64) error {
	customer, err := uc.userClient.GetCustomerWithGracefulDegradation(ctx, customerID)
	if err != nil {
		if errors.Is(err, userClient.ErrCustomerNotFound) {
			uc.logger.Warn("BookSlot: customer id=%d not found", customerID)
			return ErrCustomerNotFound
		}
		if errors.Is(err, userClient.ErrServiceDegraded) {
			uc.logger.Warn("BookSlot: skipping customer check for id=%d: %v", customerID, err)
			return nil
		}
		uc.logger.Error("BookSlot: failed to get customer id=%d: %v", customerID, err)
		return uc.fail(fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err))
	}

	if customer.IsBlocked {
		uc.logger.Warn("BookSlot: customer id=%d is blocked", customerID)
		return ErrCustomerBlocked
	}
	return nil
}

// commit захватывает блокировку салона и пытается сохранить запись
// Конфликты сериализации и exclusion constraint повторяются до MaxCommitAttempts раз
func (uc *UseCase) commit(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	release, err := uc.locker.Acquire(ctx, appt.BusinessID)
	switch {
	case err == nil:
		defer release()
	case errors.Is(err, lock.ErrNotAcquired):
		uc.logger.Warn("BookSlot: lock for business=%d not acquired: %v", appt.BusinessID, err)
		return nil, fmt.Errorf("%w: %v", ErrBusy, err)
	default:
		// Хранилище блокировок недоступно: корректность обеспечивают транзакция и constraint в БД
		uc.logger.Error("BookSlot: lock backend failed for business=%d, continuing without lock: %v", appt.BusinessID, err)
	}

	for attempt := 1; attempt <= uc.cfg.MaxCommitAttempts; attempt++ {
		created, err := uc.tryCommit(ctx, appt)
		if err == nil {
			uc.metrics.ObserveCommitAttempts(uc.cfg.ServiceName, attempt)
			return created, nil
		}

		if errors.Is(err, ErrSlotTaken) {
			uc.metrics.ObserveCommitAttempts(uc.cfg.ServiceName, attempt)
			uc.logger.Warn("BookSlot: slot %s taken for business=%d", appt.StartTime.Format(time.RFC3339), appt.BusinessID)
			return nil, err
		}

		if !appointmentRepo.IsRetryable(err) {
			uc.logger.Error("BookSlot: failed to save appointment: %v", err)
			return nil, fmt.Errorf("%w: failed to save appointment: %w", ErrInternal, err)
		}

		uc.logger.Warn("BookSlot: commit attempt %d/%d for business=%d conflicted: %v",
			attempt, uc.cfg.MaxCommitAttempts, appt.BusinessID, err)
	}

	uc.metrics.ObserveCommitAttempts(uc.cfg.ServiceName, uc.cfg.MaxCommitAttempts)
	return nil, fmt.Errorf("%w: gave up after %d commit attempts", ErrSlotTaken, uc.cfg.MaxCommitAttempts)
}

func (uc *UseCase) tryCommit(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	var created *domain.Appointment

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Перечитываем занятые интервалы с блокировкой строк
		booked, err := uc.appointmentRepo.ListBookedRanges(txCtx, appt.BusinessID, appt.StartTime, appt.EndTime())
		if err != nil {
			return err
		}

		duration := time.Duration(appt.ServiceDuration) * time.Minute
		if err := slotengine.CheckConflict(appt.StartTime, duration, booked); err != nil {
			return fmt.Errorf("%w: %v", ErrSlotTaken, err)
		}

		candidate := *appt
		created, err = uc.appointmentRepo.Create(txCtx, &candidate)
		return err
	})

	if err != nil {
		return nil, err
	}
	return created, nil
}

func (uc *UseCase) publish(ctx context.Context, appt *domain.Appointment, now time.Time) {
	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	event := events.NewAppointmentEvent(events.TypeAppointmentBooked, appt, now)
	if err := uc.publisher.Publish(publishCtx, event); err != nil {
		uc.logger.Error("BookSlot: failed to publish %s for appointment id=%d: %v", event.Type, appt.ID, err)
	}
}

func (uc *UseCase) fail(err error) error {
	uc.metrics.IncBookingOutcome(uc.cfg.ServiceName, outcomeError)
	return err
}
