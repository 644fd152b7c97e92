package domain

import "time"

// AppointmentStatus статус записи клиента
type AppointmentStatus string

const (
	AppointmentScheduled  AppointmentStatus = "scheduled"
	AppointmentConfirmed  AppointmentStatus = "confirmed"
	AppointmentCheckedIn  AppointmentStatus = "checked_in"
	AppointmentInProgress AppointmentStatus = "in_progress"
	AppointmentCompleted  AppointmentStatus = "completed"
	AppointmentCancelled  AppointmentStatus = "cancelled"
	AppointmentNoShow     AppointmentStatus = "no_show"
)

// Appointment запись клиента к мастеру
type Appointment struct {
	ID           int64
	LocationID   int64
	TechnicianID int64
	StartTime    time.Time
	EndTime      time.Time
	Status       AppointmentStatus

	// Денормализованные данные для отображения в календаре
	ClientName  string
	ClientPhone *string
	ServiceName string
	Notes       *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive возвращает true, если запись занимает время мастера
func (a *Appointment) IsActive() bool {
	return a.Status != AppointmentCancelled && a.Status != AppointmentNoShow
}

// CanBeMoved возвращает true, если запись можно перенести
// Завершённые и отменённые записи в календаре только отображаются
func (a *Appointment) CanBeMoved() bool {
	switch a.Status {
	case AppointmentScheduled, AppointmentConfirmed, AppointmentCheckedIn, AppointmentInProgress:
		return true
	default:
		return false
	}
}

// Duration длительность записи
func (a *Appointment) Duration() time.Duration {
	return a.EndTime.Sub(a.StartTime)
}

// ParseAppointmentStatus конвертирует строку в статус с валидацией
func ParseAppointmentStatus(s string) (AppointmentStatus, bool) {
	status := AppointmentStatus(s)
	for _, valid := range AllAppointmentStatuses {
		if status == valid {
			return status, true
		}
	}
	return "", false
}
