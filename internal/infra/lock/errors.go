package lock

import "errors"

var (
	// ErrNotAcquired возвращается, когда блокировку не удалось получить до истечения ожидания
	ErrNotAcquired = errors.New("lock: not acquired")

	// ErrBackend возвращается при ошибке хранилища блокировок
	ErrBackend = errors.New("lock: backend error")
)
