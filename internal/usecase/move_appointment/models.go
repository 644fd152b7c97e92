package move_appointment

import (
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// Request модель запроса на перенос записи
type Request struct {
	AppointmentID int64
	TechnicianID  int64
	StartTime     time.Time
	EndTime       time.Time
	NotifyClient  bool
}

// Response результат переноса
type Response struct {
	Appointment *domain.Appointment

	// Conflicts события, с которыми запись пересекается на новом месте.
	// Перенос при этом выполнен
	Conflicts []domain.EventRef

	// ClientNotified true, если SMS о переносе принято сервисом уведомлений
	ClientNotified bool
}
