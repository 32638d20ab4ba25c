package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date         string          `json:"date"`
	BusinessID   int64           `json:"businessId"`
	ServiceID    int64           `json:"serviceId"`
	Timezone     string          `json:"timezone"`
	Closed       bool            `json:"closed"`
	ClosedReason string          `json:"closedReason,omitempty"`
	Slots        []AvailableSlot `json:"slots"`
}

// AvailableSlot модель свободного слота
type AvailableSlot struct {
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	FormattedTime   string    `json:"formattedTime"`
	DurationMinutes int       `json:"durationMinutes"`
	ServiceName     string    `json:"serviceName"`
	ServicePrice    float64   `json:"servicePrice"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime:       slot.StartTime,
			EndTime:         slot.EndTime(),
			FormattedTime:   slot.FormattedTime,
			DurationMinutes: slot.DurationMinutes,
			ServiceName:     slot.ServiceName,
			ServicePrice:    slot.ServicePrice,
		}
	}

	return &AvailableSlotsResponse{
		Date:         resp.Date.Format(domain.DateFormat),
		BusinessID:   resp.BusinessID,
		ServiceID:    resp.ServiceID,
		Timezone:     resp.Timezone,
		Closed:       resp.Closed,
		ClosedReason: resp.ClosedReason,
		Slots:        slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(businessID, serviceID int64, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		BusinessID: businessID,
		ServiceID:  serviceID,
		Date:       date,
	}, nil
}
