package book_slot

import (
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Request модель запроса на запись
type Request struct {
	BusinessID int64            // ID салона
	CustomerID int64            // ID клиента
	ServiceID  int64            // ID услуги
	Date       time.Time        // Календарная дата в часовом поясе салона
	StartTime  types.TimeString // Время начала (например, "10:00")
	Notes      *string          // Комментарий клиента (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID         int64     // ID записи
	BusinessID int64     // ID салона
	CustomerID int64     // ID клиента
	ServiceID  int64     // ID услуги
	StartTime  time.Time // Начало в часовом поясе салона
	EndTime    time.Time // Окончание в часовом поясе салона
	Status     string    // pending или approved

	// Снимок услуги на момент записи
	ServiceName     string
	ServiceDuration int
	ServicePrice    float64
	Notes           *string

	CreatedAt time.Time
}
