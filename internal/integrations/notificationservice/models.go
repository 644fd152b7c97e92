package notificationservice

import "time"

const TemplateAppointmentRescheduled = "appointment_rescheduled"

// RescheduleNotice данные SMS о переносе записи
type RescheduleNotice struct {
	AppointmentID  int64
	Phone          string
	ClientName     string
	ServiceName    string
	TechnicianName string
	NewStart       time.Time
}

// SMSRequest тело запроса к NotificationService
type SMSRequest struct {
	Phone    string            `json:"phone"`
	Template string            `json:"template"`
	Params   map[string]string `json:"params"`
}

// SMSResponse ответ NotificationService
type SMSResponse struct {
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
}

// ErrorResponse модель ошибки от NotificationService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
