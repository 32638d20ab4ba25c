package businessservice

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда салон не найден
	ErrBusinessNotFound = errors.New("businessservice client: business not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена у салона
	ErrServiceNotFound = errors.New("businessservice client: service not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("businessservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("businessservice client: invalid response")
)
