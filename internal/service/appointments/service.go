package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/infra/events"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	scheduleRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/schedule"
	businessClient "github.com/m04kA/SMC-SalonService/internal/integrations/businessservice"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
)

const publishTimeout = 3 * time.Second

// Service сервис для работы с записями
type Service struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	businessClient  BusinessServiceClient
	txManager       TransactionManager
	publisher       EventPublisher
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	businessClient BusinessServiceClient,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		businessClient:  businessClient,
		txManager:       txManager,
		publisher:       publisher,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Запись видят клиент-владелец и менеджеры салона
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, userID)

	appt, err := s.getAppointment(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if err := s.checkUserAccess(ctx, appt, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", userID, id)
		return nil, err
	}

	return models.FromDomainAppointment(appt), nil
}

// GetCustomerAppointments получает историю записей клиента
// Клиент видит только свои записи
func (s *Service) GetCustomerAppointments(ctx context.Context, req *models.GetCustomerAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetCustomerAppointments: customer=%d, user=%d, status=%v", req.CustomerID, req.UserID, req.Status)

	if req.UserID != req.CustomerID {
		s.logger.Warn("GetCustomerAppointments: user=%d requested appointments of customer=%d", req.UserID, req.CustomerID)
		return nil, ErrAccessDenied
	}

	var status *domain.AppointmentStatus
	if req.Status != nil {
		st, err := models.ToDomainStatus(*req.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		status = &st
	}

	list, err := s.appointmentRepo.ListByCustomer(ctx, req.CustomerID, status)
	if err != nil {
		s.logger.Error("GetCustomerAppointments: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetCustomerAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerAppointments: found %d appointments for customer=%d", len(list), req.CustomerID)
	return models.FromDomainAppointmentList(list), nil
}

// GetBusinessAppointments получает записи салона
// Доступно только менеджерам салона
func (s *Service) GetBusinessAppointments(ctx context.Context, req *models.GetBusinessAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetBusinessAppointments: business=%d, user=%d", req.BusinessID, req.UserID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	if err := s.checkManagerAccess(ctx, req.BusinessID, req.UserID); err != nil {
		return nil, err
	}

	list, err := s.appointmentRepo.ListByBusinessWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetBusinessAppointments: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: GetBusinessAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBusinessAppointments: found %d appointments for business=%d", len(list), req.BusinessID)
	return models.FromDomainAppointmentList(list), nil
}

// Cancel отменяет запись
// Клиент отменяет свою запись с учетом настроек салона, менеджер отменяет любую запись салона
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelAppointmentRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: appointment id=%d by user=%d", id, req.UserID)

	if req.Reason != nil {
		trimmed := strings.TrimSpace(*req.Reason)
		if len([]rune(trimmed)) > domain.MaxCancellationReasonLength {
			return nil, fmt.Errorf("%w: reason is too long", ErrInvalidInput)
		}
		if trimmed == "" {
			req.Reason = nil
		} else {
			req.Reason = &trimmed
		}
	}

	// 1. Проверяем права доступа до транзакции
	appt, err := s.getAppointment(ctx, "Cancel", id)
	if err != nil {
		return nil, err
	}

	isOwner := appt.CustomerID == req.UserID
	if !isOwner {
		if err := s.checkManagerAccess(ctx, appt.BusinessID, req.UserID); err != nil {
			return nil, err
		}
	}

	// 2. Клиент подчиняется политике отмены салона
	var settings *domain.ScheduleSettings
	if isOwner {
		settings, err = s.getSettings(ctx, appt.BusinessID)
		if err != nil {
			return nil, err
		}
	}

	now := s.timeProvider.Now()

	// 3. Перечитываем запись с блокировкой строки и отменяем
	var canceled *domain.Appointment
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.appointmentRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if !current.CanBeCanceled() {
			return ErrCannotCancel
		}

		if settings != nil {
			if !settings.AllowCancellation {
				return ErrCancellationDisabled
			}
			if now.After(settings.CancellationDeadline(current.StartTime)) {
				return ErrCancellationTooLate
			}
		}

		if err := s.appointmentRepo.Cancel(txCtx, id, req.Reason, now); err != nil {
			return err
		}

		current.Status = domain.StatusCanceled
		current.CancellationReason = req.Reason
		current.CanceledAt = &now
		canceled = current
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrCannotCancel), errors.Is(err, ErrCancellationDisabled), errors.Is(err, ErrCancellationTooLate):
			s.logger.Warn("Cancel: appointment id=%d rejected: %v", id, err)
			return nil, err
		case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: failed to cancel appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: appointment id=%d canceled by user=%d", id, req.UserID)

	// 4. Публикуем событие
	s.publish(ctx, events.TypeAppointmentCanceled, canceled, now)

	return models.FromDomainAppointment(canceled), nil
}

// UpdateStatus меняет статус записи (pending -> approved, approved -> completed)
// Доступно только менеджерам салона
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: appointment id=%d to %s by user=%d", id, req.Status, req.UserID)

	next, err := models.ToDomainStatus(req.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	appt, err := s.getAppointment(ctx, "UpdateStatus", id)
	if err != nil {
		return nil, err
	}

	if err := s.checkManagerAccess(ctx, appt.BusinessID, req.UserID); err != nil {
		return nil, err
	}

	var updated *domain.Appointment
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.appointmentRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if !current.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, next)
		}

		if err := s.appointmentRepo.UpdateStatus(txCtx, id, next); err != nil {
			return err
		}

		current.Status = next
		updated = current
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidTransition):
			s.logger.Warn("UpdateStatus: appointment id=%d: %v", id, err)
			return nil, err
		case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: failed to update appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: appointment id=%d is now %s", id, next)

	s.publish(ctx, events.TypeAppointmentStatusChanged, updated, s.timeProvider.Now())

	return models.FromDomainAppointment(updated), nil
}

// CompleteFinished переводит подтвержденные записи, время которых прошло, в completed
func (s *Service) CompleteFinished(ctx context.Context) (int64, error) {
	now := s.timeProvider.Now()

	count, err := s.appointmentRepo.CompleteFinished(ctx, now)
	if err != nil {
		s.logger.Error("CompleteFinished: repository error: %v", err)
		return 0, fmt.Errorf("%w: CompleteFinished - repository error: %v", ErrInternal, err)
	}

	if count > 0 {
		s.logger.Info("CompleteFinished: %d appointments completed", count)
	}
	return count, nil
}

func (s *Service) getAppointment(ctx context.Context, op string, id int64) (*domain.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appt, nil
}

func (s *Service) getSettings(ctx context.Context, businessID int64) (*domain.ScheduleSettings, error) {
	settings, err := s.scheduleRepo.Get(ctx, businessID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrSettingsNotFound) {
			return domain.DefaultScheduleSettings(businessID), nil
		}
		s.logger.Error("getSettings: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: failed to get schedule settings: %v", ErrInternal, err)
	}
	return settings, nil
}

// checkUserAccess проверяет, что пользователь владелец записи или менеджер салона
func (s *Service) checkUserAccess(ctx context.Context, appt *domain.Appointment, userID int64) error {
	if appt.CustomerID == userID {
		return nil
	}
	return s.checkManagerAccess(ctx, appt.BusinessID, userID)
}

// checkManagerAccess проверяет, что пользователь менеджер салона
func (s *Service) checkManagerAccess(ctx context.Context, businessID int64, userID int64) error {
	business, err := s.businessClient.GetBusiness(ctx, businessID)
	if err != nil {
		if errors.Is(err, businessClient.ErrBusinessNotFound) {
			s.logger.Warn("checkManagerAccess: business id=%d not found", businessID)
			return ErrBusinessNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get business id=%d: %v", businessID, err)
		return fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	if !business.IsManager(userID) {
		s.logger.Warn("checkManagerAccess: user=%d is not a manager of business=%d", userID, businessID)
		return ErrAccessDenied
	}
	return nil
}

func (s *Service) publish(ctx context.Context, eventType events.Type, appt *domain.Appointment, now time.Time) {
	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	event := events.NewAppointmentEvent(eventType, appt, now)
	if err := s.publisher.Publish(publishCtx, event); err != nil {
		s.logger.Error("publish: failed to publish %s for appointment id=%d: %v", event.Type, appt.ID, err)
	}
}
