package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

const tableName = "appointments"

var appointmentColumns = []string{
	"id",
	"business_id",
	"customer_id",
	"service_id",
	"start_time",
	"status",
	"service_name",
	"service_duration",
	"service_price",
	"notes",
	"cancellation_reason",
	"canceled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями клиентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись
// Если в контексте передана активная транзакция, использует её
// Пересечение с активной записью того же салона отклоняется БД (exclusion constraint) и возвращается как ErrOverlap
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"business_id",
			"customer_id",
			"service_id",
			"start_time",
			"end_time",
			"status",
			"service_name",
			"service_duration",
			"service_price",
			"notes",
		).
		Values(
			appt.BusinessID,
			appt.CustomerID,
			appt.ServiceID,
			appt.StartTime.UTC(),
			appt.EndTime().UTC(),
			appt.Status,
			appt.ServiceName,
			appt.ServiceDuration,
			appt.ServicePrice,
			appt.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if classified := classifyPQError(err); classified != nil {
			return nil, fmt.Errorf("%w: Create: %v", classified, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From(tableName).
		Where(squirrel.Eq{"id": id})

	// Внутри транзакции блокируем строку для изменения статуса
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appt, nil
}

// ListByCustomer получает записи клиента, новые сначала
// Опционально фильтрует по статусу
func (r *Repository) ListByCustomer(ctx context.Context, customerID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From(tableName).
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCustomer - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCustomer - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// ListByBusinessWithFilter получает записи салона с фильтрацией
// Поддерживает фильтрацию по:
// - Периоду начала записи [From, To) - опционально
// - Статусу (Status) - опционально
// - Включению отмененных и завершенных записей (IncludeInactive)
//
// Пример: все активные записи салона на 15 октября
//
//	from := time.Date(2025, 10, 15, 0, 0, 0, 0, loc)
//	to := from.AddDate(0, 0, 1)
//	filter := domain.BusinessAppointmentsFilter{BusinessID: 123, From: &from, To: &to}
func (r *Repository) ListByBusinessWithFilter(ctx context.Context, filter domain.BusinessAppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From(tableName).
		Where(squirrel.Eq{"business_id": filter.BusinessID}).
		OrderBy("start_time ASC")

	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_time": filter.From.UTC()})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_time": filter.To.UTC()})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusinessWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBusinessWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// ListBookedRanges возвращает интервалы активных записей салона, пересекающихся с [from, to)
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы параллельное бронирование ждало коммита
func (r *Repository) ListBookedRanges(ctx context.Context, businessID int64, from, to time.Time) ([]domain.BookedRange, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("start_time", "end_time", "status").
		From(tableName).
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)}).
		Where(squirrel.Lt{"start_time": to.UTC()}).
		Where(squirrel.Gt{"end_time": from.UTC()}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBookedRanges - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if classified := classifyPQError(err); classified != nil {
			return nil, fmt.Errorf("%w: ListBookedRanges: %v", classified, err)
		}
		return nil, fmt.Errorf("%w: ListBookedRanges - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ranges := make([]domain.BookedRange, 0)
	for rows.Next() {
		var br domain.BookedRange
		if err := rows.Scan(&br.Start, &br.End, &br.Status); err != nil {
			return nil, fmt.Errorf("%w: ListBookedRanges - scan row: %v", ErrScanRow, err)
		}
		ranges = append(ranges, br)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBookedRanges - rows error: %v", ErrScanRow, err)
	}

	return ranges, nil
}

// UpdateStatus обновляет статус записи
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "UpdateStatus", query, args)
}

// Cancel отменяет запись с указанием причины
// Отмененная запись перестает занимать время
func (r *Repository) Cancel(ctx context.Context, id int64, reason *string, canceledAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", domain.StatusCanceled).
		Set("cancellation_reason", reason).
		Set("canceled_at", canceledAt.UTC()).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Cancel", query, args)
}

// CompleteFinished переводит подтвержденные записи, закончившиеся до before, в статус completed
// Возвращает количество обновленных записей
func (r *Repository) CompleteFinished(ctx context.Context, before time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", domain.StatusCompleted).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": domain.StatusApproved}).
		Where(squirrel.LtOrEq{"end_time": before.UTC()}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CompleteFinished - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CompleteFinished - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CompleteFinished - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

func (r *Repository) execAffectingOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appt domain.Appointment
	var createdAt, updatedAt, canceledAt sql.NullTime
	var notes, reason sql.NullString

	err := row.Scan(
		&appt.ID,
		&appt.BusinessID,
		&appt.CustomerID,
		&appt.ServiceID,
		&appt.StartTime,
		&appt.Status,
		&appt.ServiceName,
		&appt.ServiceDuration,
		&appt.ServicePrice,
		&notes,
		&reason,
		&canceledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if notes.Valid {
		appt.Notes = &notes.String
	}
	if reason.Valid {
		appt.CancellationReason = &reason.String
	}
	if canceledAt.Valid {
		appt.CanceledAt = &canceledAt.Time
	}
	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return &appt, nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}

func statusStrings(statuses []domain.AppointmentStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}
