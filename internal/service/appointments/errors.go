package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointments: appointment not found")

	// ErrBusinessNotFound возвращается, когда салон не найден
	ErrBusinessNotFound = errors.New("appointments: business not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("appointments: access denied")

	// ErrCannotCancel возвращается, когда запись уже отменена или завершена
	ErrCannotCancel = errors.New("appointments: appointment cannot be canceled")

	// ErrCancellationDisabled возвращается, когда салон запретил отмену клиентами
	ErrCancellationDisabled = errors.New("appointments: cancellation is disabled by the business")

	// ErrCancellationTooLate возвращается, когда до начала записи осталось меньше cancellationTimeLimit
	ErrCancellationTooLate = errors.New("appointments: too late to cancel")

	// ErrInvalidTransition возвращается при недопустимой смене статуса
	ErrInvalidTransition = errors.New("appointments: invalid status transition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("appointments: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("appointments: internal error")
)
