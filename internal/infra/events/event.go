package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Type тип события жизненного цикла записи
type Type string

const (
	TypeAppointmentBooked        Type = "appointment.booked"
	TypeAppointmentCanceled      Type = "appointment.canceled"
	TypeAppointmentStatusChanged Type = "appointment.status_changed"
)

// Event событие, публикуемое после коммита изменений записи
type Event struct {
	ID          string          `json:"eventId"`
	Type        Type            `json:"eventType"`
	OccurredAt  time.Time       `json:"occurredAt"`
	Appointment AppointmentData `json:"appointment"`
}

// AppointmentData снимок записи в событии
type AppointmentData struct {
	ID                 int64     `json:"id"`
	BusinessID         int64     `json:"businessId"`
	CustomerID         int64     `json:"customerId"`
	ServiceID          int64     `json:"serviceId"`
	ServiceName        string    `json:"serviceName"`
	StartTime          time.Time `json:"startTime"`
	EndTime            time.Time `json:"endTime"`
	Status             string    `json:"status"`
	CancellationReason *string   `json:"cancellationReason,omitempty"`
}

// NewAppointmentEvent создает событие с новым идентификатором
func NewAppointmentEvent(eventType Type, appt *domain.Appointment, occurredAt time.Time) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: occurredAt.UTC(),
		Appointment: AppointmentData{
			ID:                 appt.ID,
			BusinessID:         appt.BusinessID,
			CustomerID:         appt.CustomerID,
			ServiceID:          appt.ServiceID,
			ServiceName:        appt.ServiceName,
			StartTime:          appt.StartTime.UTC(),
			EndTime:            appt.EndTime().UTC(),
			Status:             string(appt.Status),
			CancellationReason: appt.CancellationReason,
		},
	}
}
