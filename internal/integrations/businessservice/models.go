package businessservice

import "github.com/m04kA/SMC-SalonService/internal/domain"

// Business модель салона из BusinessService
type Business struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	Timezone     string       `json:"timezone"`
	WorkingHours WorkingHours `json:"working_hours"`
	ManagerIDs   []int64      `json:"manager_ids"`
}

// WorkingHours рабочие часы по дням недели
// Отсутствующий день означает выходной
type WorkingHours struct {
	Monday    *DaySchedule `json:"monday,omitempty"`
	Tuesday   *DaySchedule `json:"tuesday,omitempty"`
	Wednesday *DaySchedule `json:"wednesday,omitempty"`
	Thursday  *DaySchedule `json:"thursday,omitempty"`
	Friday    *DaySchedule `json:"friday,omitempty"`
	Saturday  *DaySchedule `json:"saturday,omitempty"`
	Sunday    *DaySchedule `json:"sunday,omitempty"`
}

// DaySchedule расписание на день
type DaySchedule struct {
	IsOpen    bool   `json:"is_open"`
	OpenTime  string `json:"open_time,omitempty"`  // HH:MM
	CloseTime string `json:"close_time,omitempty"` // HH:MM
}

// Service модель услуги из BusinessService
type Service struct {
	ID              int64    `json:"id"`
	BusinessID      int64    `json:"business_id"`
	Name            string   `json:"name"`
	DurationMinutes int      `json:"duration_minutes"`
	Price           *float64 `json:"price,omitempty"`
	IsActive        bool     `json:"is_active"`
}

// ErrorResponse модель ошибки от BusinessService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ToDomain конвертирует модель салона в доменную
func (b *Business) ToDomain() *domain.Business {
	return &domain.Business{
		ID:         b.ID,
		Name:       b.Name,
		Timezone:   b.Timezone,
		ManagerIDs: b.ManagerIDs,
		WorkingHours: domain.WeeklySchedule{
			Monday:    b.WorkingHours.Monday.toDomain(),
			Tuesday:   b.WorkingHours.Tuesday.toDomain(),
			Wednesday: b.WorkingHours.Wednesday.toDomain(),
			Thursday:  b.WorkingHours.Thursday.toDomain(),
			Friday:    b.WorkingHours.Friday.toDomain(),
			Saturday:  b.WorkingHours.Saturday.toDomain(),
			Sunday:    b.WorkingHours.Sunday.toDomain(),
		},
	}
}

func (d *DaySchedule) toDomain() *domain.DaySchedule {
	if d == nil {
		return nil
	}
	return &domain.DaySchedule{
		IsOpen: d.IsOpen,
		Open:   d.OpenTime,
		Close:  d.CloseTime,
	}
}

// ToDomain конвертирует модель услуги в доменную
// Если цена не указана, используется 0
func (s *Service) ToDomain() *domain.Service {
	price := 0.0
	if s.Price != nil {
		price = *s.Price
	}
	return &domain.Service{
		ID:              s.ID,
		BusinessID:      s.BusinessID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		Price:           price,
		IsActive:        s.IsActive,
	}
}
