package get_day_calendar

import (
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/calendar/grid"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// Settings параметры сетки из конфигурации сервиса
type Settings struct {
	Location      *time.Location
	StartHour     int
	EndHour       int
	PixelsPerHour float64
	ColumnWidth   float64
}

// Request модель запроса дневного календаря
type Request struct {
	LocationID    int64
	Date          time.Time // дата дня, время игнорируется
	TechnicianIDs []int64   // пусто: все активные мастера
	StartHour     *int      // переопределение видимого диапазона
	EndHour       *int
}

// Response дневной календарь: исходные данные и собранная сетка
type Response struct {
	Day         time.Time
	Technicians []domain.Technician
	Events      []domain.CalendarEvent
	View        *grid.DayView
}
