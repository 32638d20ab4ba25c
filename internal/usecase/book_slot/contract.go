package book_slot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/infra/events"
	"github.com/m04kA/SMC-SalonService/internal/integrations/userservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	ListBookedRanges(ctx context.Context, businessID int64, from, to time.Time) ([]domain.BookedRange, error)
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
}

// ScheduleRepository интерфейс репозитория настроек расписания
type ScheduleRepository interface {
	Get(ctx context.Context, businessID int64) (*domain.ScheduleSettings, error)
}

// BusinessServiceClient интерфейс клиента для BusinessService
type BusinessServiceClient interface {
	GetBusiness(ctx context.Context, businessID int64) (*domain.Business, error)
	GetService(ctx context.Context, businessID, serviceID int64) (*domain.Service, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetCustomerWithGracefulDegradation(ctx context.Context, customerID int64) (*userservice.Customer, error)
}

// Locker блокировка на салон: все бронирования одного салона коммитятся по очереди
type Locker interface {
	Acquire(ctx context.Context, businessID int64) (release func(), err error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикует события после коммита
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// MetricsCollector метрики бронирования (*metrics.Metrics, nil допустим)
type MetricsCollector interface {
	IncBookingOutcome(service, outcome string)
	ObserveCommitAttempts(service string, attempts int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

type noopMetrics struct{}

func (noopMetrics) IncBookingOutcome(string, string)  {}
func (noopMetrics) ObserveCommitAttempts(string, int) {}
