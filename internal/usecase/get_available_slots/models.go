package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Request модель запроса на получение свободных слотов
type Request struct {
	BusinessID int64     // ID салона
	ServiceID  int64     // ID услуги
	Date       time.Time // Календарная дата (учитываются только год, месяц и день)
}

// Response модель ответа со списком свободных слотов
// Если салон не принимает записи на дату, Closed = true и Slots пуст
type Response struct {
	Date         time.Time              // Дата в часовом поясе салона
	BusinessID   int64                  // ID салона
	ServiceID    int64                  // ID услуги
	Timezone     string                 // Часовой пояс салона
	Closed       bool                   // Нет окна для записи
	ClosedReason string                 // Причина (day_off, past_date, ...)
	Slots        []domain.CandidateSlot // Свободные слоты в хронологическом порядке
}
