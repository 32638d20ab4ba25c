package models

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Request модели

// UpdateSettingsRequest запрос на обновление настроек расписания
// Все поля опциональны - обновляются только переданные значения
type UpdateSettingsRequest struct {
	UserID                int64 `json:"-"`
	BusinessID            int64 `json:"-"`
	SlotDurationMinutes   *int  `json:"slotDurationMinutes,omitempty"`
	AllowSameDayBooking   *bool `json:"allowSameDayBooking,omitempty"`
	MinTimeBeforeBooking  *int  `json:"minTimeBeforeBooking,omitempty"`  // минуты
	MaxFutureBookingDays  *int  `json:"maxFutureBookingDays,omitempty"`  // 0 = без ограничений
	AllowCancellation     *bool `json:"allowCancellation,omitempty"`
	CancellationTimeLimit *int  `json:"cancellationTimeLimit,omitempty"` // часы до начала
	AutoApprove           *bool `json:"autoApprove,omitempty"`
}

// IsEmpty возвращает true, если в запросе нет ни одного поля для обновления
func (r *UpdateSettingsRequest) IsEmpty() bool {
	return r.SlotDurationMinutes == nil &&
		r.AllowSameDayBooking == nil &&
		r.MinTimeBeforeBooking == nil &&
		r.MaxFutureBookingDays == nil &&
		r.AllowCancellation == nil &&
		r.CancellationTimeLimit == nil &&
		r.AutoApprove == nil
}

// ApplyToSettings применяет обновления к настройкам
// Обновляются только непустые (not nil) поля из request
func (r *UpdateSettingsRequest) ApplyToSettings(s *domain.ScheduleSettings) {
	if r.SlotDurationMinutes != nil {
		s.SlotDurationMinutes = *r.SlotDurationMinutes
	}
	if r.AllowSameDayBooking != nil {
		s.AllowSameDayBooking = *r.AllowSameDayBooking
	}
	if r.MinTimeBeforeBooking != nil {
		s.MinTimeBeforeBooking = *r.MinTimeBeforeBooking
	}
	if r.MaxFutureBookingDays != nil {
		s.MaxFutureBookingDays = *r.MaxFutureBookingDays
	}
	if r.AllowCancellation != nil {
		s.AllowCancellation = *r.AllowCancellation
	}
	if r.CancellationTimeLimit != nil {
		s.CancellationTimeLimit = *r.CancellationTimeLimit
	}
	if r.AutoApprove != nil {
		s.AutoApprove = *r.AutoApprove
	}
}

// Response модели

// SettingsResponse ответ с настройками расписания салона
type SettingsResponse struct {
	BusinessID            int64      `json:"businessId"`
	SlotDurationMinutes   int        `json:"slotDurationMinutes"`
	AllowSameDayBooking   bool       `json:"allowSameDayBooking"`
	MinTimeBeforeBooking  int        `json:"minTimeBeforeBooking"`
	MaxFutureBookingDays  int        `json:"maxFutureBookingDays"`
	AllowCancellation     bool       `json:"allowCancellation"`
	CancellationTimeLimit int        `json:"cancellationTimeLimit"`
	AutoApprove           bool       `json:"autoApprove"`
	IsDefault             bool       `json:"isDefault"`
	UpdatedAt             *time.Time `json:"updatedAt,omitempty"`
}

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.ScheduleSettings, isDefault bool) *SettingsResponse {
	if s == nil {
		return nil
	}

	resp := &SettingsResponse{
		BusinessID:            s.BusinessID,
		SlotDurationMinutes:   s.SlotDurationMinutes,
		AllowSameDayBooking:   s.AllowSameDayBooking,
		MinTimeBeforeBooking:  s.MinTimeBeforeBooking,
		MaxFutureBookingDays:  s.MaxFutureBookingDays,
		AllowCancellation:     s.AllowCancellation,
		CancellationTimeLimit: s.CancellationTimeLimit,
		AutoApprove:           s.AutoApprove,
		IsDefault:             isDefault,
	}
	if !s.UpdatedAt.IsZero() {
		updatedAt := s.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}
