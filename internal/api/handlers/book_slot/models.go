package book_slot

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	bookSlot "github.com/m04kA/SMC-SalonService/internal/usecase/book_slot"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// BookSlotRequest HTTP request model
// ID клиента берется из заголовка X-User-ID
type BookSlotRequest struct {
	BusinessID int64   `json:"businessId" validate:"required,gt=0"`
	ServiceID  int64   `json:"serviceId" validate:"required,gt=0"`
	Date       string  `json:"date" validate:"required"`      // "2025-03-11"
	StartTime  string  `json:"startTime" validate:"required"` // "10:00"
	Notes      *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64     `json:"id"`
	BusinessID      int64     `json:"businessId"`
	CustomerID      int64     `json:"customerId"`
	ServiceID       int64     `json:"serviceId"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	Status          string    `json:"status"`
	ServiceName     string    `json:"serviceName"`
	ServiceDuration int       `json:"serviceDuration"`
	ServicePrice    float64   `json:"servicePrice"`
	Notes           *string   `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ErrInvalidDate и ErrInvalidTime различают ошибки парсинга для ответа клиенту
var (
	ErrInvalidDate = errors.New("invalid date")
	ErrInvalidTime = errors.New("invalid time")
)

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookSlotRequest) ToUseCaseRequest(customerID int64) (*bookSlot.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTime, err)
	}

	return &bookSlot.Request{
		BusinessID: r.BusinessID,
		CustomerID: customerID,
		ServiceID:  r.ServiceID,
		Date:       date,
		StartTime:  startTime,
		Notes:      r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookSlot.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		BusinessID:      resp.BusinessID,
		CustomerID:      resp.CustomerID,
		ServiceID:       resp.ServiceID,
		StartTime:       resp.StartTime,
		EndTime:         resp.EndTime,
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		ServiceDuration: resp.ServiceDuration,
		ServicePrice:    resp.ServicePrice,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt,
	}
}
