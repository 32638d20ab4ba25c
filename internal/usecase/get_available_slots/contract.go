package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// ListBookedRanges возвращает интервалы активных записей салона, пересекающихся с [from, to)
	ListBookedRanges(ctx context.Context, businessID int64, from, to time.Time) ([]domain.BookedRange, error)
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

// MetricsCollector метрики расчета слотов (*metrics.Metrics, nil допустим)
type MetricsCollector interface {
	ObserveSlots(service string, count int)
}

type noopMetrics struct{}

func (noopMetrics) ObserveSlots(string, int) {}

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
