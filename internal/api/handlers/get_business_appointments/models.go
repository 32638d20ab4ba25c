package get_business_appointments

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
)

// ToServiceRequest конвертирует query параметры в запрос к сервису
// from и to принимаются в формате RFC3339 или YYYY-MM-DD (полночь UTC)
func ToServiceRequest(businessID, userID int64, fromStr, toStr, statusStr, includeInactiveStr string) (*models.GetBusinessAppointmentsRequest, error) {
	req := &models.GetBusinessAppointmentsRequest{
		UserID:     userID,
		BusinessID: businessID,
	}

	if fromStr != "" {
		from, err := parseBound(fromStr)
		if err != nil {
			return nil, fmt.Errorf("invalid from: %w", err)
		}
		req.From = &from
	}

	if toStr != "" {
		to, err := parseBound(toStr)
		if err != nil {
			return nil, fmt.Errorf("invalid to: %w", err)
		}
		req.To = &to
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}

func parseBound(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse(domain.DateFormat, value)
}
