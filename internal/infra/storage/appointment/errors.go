package appointment

import (
	"errors"

	"github.com/lib/pq"
)

// Коды ошибок PostgreSQL, которые обрабатываются отдельно
const (
	pqSerializationFailure = "40001"
	pqExclusionViolation   = "23P01"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrOverlap возвращается, когда вставка нарушает exclusion constraint на пересечение интервалов
	ErrOverlap = errors.New("appointment.repository: time range overlaps an active appointment")

	// ErrSerialization возвращается при конфликте сериализуемых транзакций
	ErrSerialization = errors.New("appointment.repository: serialization failure")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)

// IsRetryable возвращает true для ошибок, после которых бронирование можно повторить:
// конфликт сериализации или нарушение exclusion constraint
// Проверяет как уже классифицированные ошибки, так и исходные *pq.Error (например, при COMMIT)
func IsRetryable(err error) bool {
	if errors.Is(err, ErrSerialization) || errors.Is(err, ErrOverlap) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqSerializationFailure || pqErr.Code == pqExclusionViolation
	}
	return false
}

// classifyPQError превращает известные ошибки PostgreSQL в ошибки пакета
func classifyPQError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return nil
	}

	switch string(pqErr.Code) {
	case pqSerializationFailure:
		return ErrSerialization
	case pqExclusionViolation:
		return ErrOverlap
	}
	return nil
}
