package schedule

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// ScheduleRepository интерфейс репозитория настроек расписания
type ScheduleRepository interface {
	Get(ctx context.Context, businessID int64) (*domain.ScheduleSettings, error)
	Upsert(ctx context.Context, settings *domain.ScheduleSettings) (*domain.ScheduleSettings, error)
}

// BusinessServiceClient интерфейс клиента для BusinessService
type BusinessServiceClient interface {
	GetBusiness(ctx context.Context, businessID int64) (*domain.Business, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
