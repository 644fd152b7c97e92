package domain

import (
	"time"

	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

// Technician мастер салона
type Technician struct {
	ID           int64
	LocationID   int64
	Name         string
	IsActive     bool
	DisplayOrder int
	Schedule     []WorkingDay
}

// WorkingDay рабочие часы мастера в один из дней недели
// Используются только для затенения нерабочего времени в сетке
type WorkingDay struct {
	DayOfWeek time.Weekday
	StartTime types.TimeString
	EndTime   types.TimeString
	IsWorking bool
}

// ScheduleFor возвращает расписание на день недели указанной даты
// Если день не описан, мастер считается нерабочим
func (t *Technician) ScheduleFor(date time.Time) WorkingDay {
	weekday := date.Weekday()
	for _, day := range t.Schedule {
		if day.DayOfWeek == weekday {
			return day
		}
	}
	return WorkingDay{DayOfWeek: weekday, IsWorking: false}
}
