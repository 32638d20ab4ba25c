package book_slot

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда салон не найден
	ErrBusinessNotFound = errors.New("book_slot: business not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("book_slot: service not found")

	// ErrCustomerNotFound возвращается, когда клиент не найден в UserService
	ErrCustomerNotFound = errors.New("book_slot: customer not found")

	// ErrCustomerBlocked возвращается, когда клиенту запрещено записываться
	ErrCustomerBlocked = errors.New("book_slot: customer is blocked")

	// ErrBusinessClosed возвращается, когда выбранное время вне окна записи на день
	// (выходной, прошедшая дата, запрет записи на сегодня, вне рабочих часов)
	ErrBusinessClosed = errors.New("book_slot: business is closed at the requested time")

	// ErrSlotTaken возвращается, когда время пересекается с активной записью
	ErrSlotTaken = errors.New("book_slot: slot is already taken")

	// ErrBusy возвращается, когда не удалось дождаться блокировки салона
	ErrBusy = errors.New("book_slot: business is busy, try again")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_slot: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_slot: internal error")
)
