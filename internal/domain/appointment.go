package domain

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusApproved  AppointmentStatus = "approved"
	StatusCanceled  AppointmentStatus = "canceled"
	StatusCompleted AppointmentStatus = "completed"
)

// IsValid returns true for known statuses
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusCanceled, StatusCompleted:
		return true
	}
	return false
}

// Blocks returns true if an appointment in this status occupies its time range
func (s AppointmentStatus) Blocks() bool {
	return s == StatusPending || s == StatusApproved
}

// Appointment represents a customer's booking of a salon service.
// Service fields are a snapshot taken at booking time.
type Appointment struct {
	ID         int64
	BusinessID int64
	CustomerID int64
	ServiceID  int64
	StartTime  time.Time
	Status     AppointmentStatus

	// Denormalized service snapshot
	ServiceName     string
	ServiceDuration int // minutes
	ServicePrice    float64
	Notes           *string

	CancellationReason *string
	CanceledAt         *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndTime returns the instant the service finishes
func (a *Appointment) EndTime() time.Time {
	return a.StartTime.Add(time.Duration(a.ServiceDuration) * time.Minute)
}

// Range returns the occupied range of the appointment
func (a *Appointment) Range() BookedRange {
	return BookedRange{Start: a.StartTime, End: a.EndTime(), Status: a.Status}
}

// IsActive returns true if the appointment still occupies its slot
func (a *Appointment) IsActive() bool {
	return a.Status.Blocks()
}

// CanBeCanceled returns true if the appointment can be canceled
func (a *Appointment) CanBeCanceled() bool {
	return a.Status == StatusPending || a.Status == StatusApproved
}

// CanTransitionTo reports whether a business may move the appointment to the given status
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	switch {
	case a.Status == StatusPending && next == StatusApproved:
		return true
	case a.Status == StatusApproved && next == StatusCompleted:
		return true
	}
	return false
}

// BookedRange is the half-open interval [Start, End) occupied by an appointment
type BookedRange struct {
	Start  time.Time
	End    time.Time
	Status AppointmentStatus
}

// BusinessAppointmentsFilter фильтр для получения записей салона
type BusinessAppointmentsFilter struct {
	BusinessID      int64              // Обязательный параметр
	From            *time.Time         // Начало периода (по start_time, включительно)
	To              *time.Time         // Конец периода (по start_time, не включительно)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отмененные и завершенные записи
}
