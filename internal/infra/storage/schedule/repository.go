package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

const tableName = "schedule_settings"

// Repository репозиторий настроек расписания салонов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает настройки расписания салона
// Если настройки не сохранялись, возвращает ErrSettingsNotFound
func (r *Repository) Get(ctx context.Context, businessID int64) (*domain.ScheduleSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"business_id",
		"slot_duration_minutes",
		"allow_same_day_booking",
		"min_time_before_booking",
		"max_future_booking_days",
		"allow_cancellation",
		"cancellation_time_limit",
		"auto_approve",
		"created_at",
		"updated_at",
	).
		From(tableName).
		Where(squirrel.Eq{"business_id": businessID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var settings domain.ScheduleSettings
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&settings.BusinessID,
		&settings.SlotDurationMinutes,
		&settings.AllowSameDayBooking,
		&settings.MinTimeBeforeBooking,
		&settings.MaxFutureBookingDays,
		&settings.AllowCancellation,
		&settings.CancellationTimeLimit,
		&settings.AutoApprove,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %v", ErrScanRow, err)
	}

	settings.CreatedAt = createdAt.Time
	settings.UpdatedAt = updatedAt.Time

	return &settings, nil
}

// Upsert создает или полностью заменяет настройки расписания салона
func (r *Repository) Upsert(ctx context.Context, settings *domain.ScheduleSettings) (*domain.ScheduleSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"business_id",
			"slot_duration_minutes",
			"allow_same_day_booking",
			"min_time_before_booking",
			"max_future_booking_days",
			"allow_cancellation",
			"cancellation_time_limit",
			"auto_approve",
		).
		Values(
			settings.BusinessID,
			settings.SlotDurationMinutes,
			settings.AllowSameDayBooking,
			settings.MinTimeBeforeBooking,
			settings.MaxFutureBookingDays,
			settings.AllowCancellation,
			settings.CancellationTimeLimit,
			settings.AutoApprove,
		).
		Suffix(`ON CONFLICT (business_id) DO UPDATE SET
			slot_duration_minutes = EXCLUDED.slot_duration_minutes,
			allow_same_day_booking = EXCLUDED.allow_same_day_booking,
			min_time_before_booking = EXCLUDED.min_time_before_booking,
			max_future_booking_days = EXCLUDED.max_future_booking_days,
			allow_cancellation = EXCLUDED.allow_cancellation,
			cancellation_time_limit = EXCLUDED.cancellation_time_limit,
			auto_approve = EXCLUDED.auto_approve,
			updated_at = NOW()
		RETURNING created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	settings.CreatedAt = createdAt.Time
	settings.UpdatedAt = updatedAt.Time

	return settings, nil
}
