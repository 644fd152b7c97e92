package calendarapi

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

// Day мастера и события дня в доменной модели
type Day struct {
	Date        time.Time // полночь в часовом поясе салона
	StartHour   int
	EndHour     int
	Technicians []domain.Technician
	Events      []domain.CalendarEvent
}

func (r *DayResponse) toDomain() (*Day, error) {
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		loc = time.UTC
	}
	date, err := time.ParseInLocation(domain.DateFormat, r.Date, loc)
	if err != nil {
		return nil, fmt.Errorf("date %q: %w", r.Date, err)
	}

	day := &Day{
		Date:        date,
		StartHour:   r.StartHour,
		EndHour:     r.EndHour,
		Technicians: make([]domain.Technician, 0, len(r.Technicians)),
		Events:      make([]domain.CalendarEvent, 0),
	}

	for _, t := range r.Technicians {
		tech := domain.Technician{
			ID:           t.ID,
			Name:         t.Name,
			IsActive:     t.IsActive,
			DisplayOrder: t.DisplayOrder,
		}
		for _, d := range t.Schedule {
			tech.Schedule = append(tech.Schedule, domain.WorkingDay{
				DayOfWeek: time.Weekday(d.DayOfWeek),
				StartTime: types.TimeString(d.StartTime),
				EndTime:   types.TimeString(d.EndTime),
				IsWorking: d.IsWorking,
			})
		}
		day.Technicians = append(day.Technicians, tech)
	}

	for _, c := range r.Columns {
		for _, e := range c.Events {
			event, err := e.toDomain(loc)
			if err != nil {
				return nil, err
			}
			day.Events = append(day.Events, event)
		}
	}
	return day, nil
}

func (e EventData) toDomain(loc *time.Location) (domain.CalendarEvent, error) {
	start, err := time.Parse(time.RFC3339, e.Start)
	if err != nil {
		return domain.CalendarEvent{}, fmt.Errorf("event %s-%d start: %w", e.Kind, e.ID, err)
	}
	end, err := time.Parse(time.RFC3339, e.End)
	if err != nil {
		return domain.CalendarEvent{}, fmt.Errorf("event %s-%d end: %w", e.Kind, e.ID, err)
	}
	start, end = start.In(loc), end.In(loc)

	kind, ok := domain.ParseEventKind(e.Kind)
	if !ok {
		return domain.CalendarEvent{}, fmt.Errorf("event %d: unknown kind %q", e.ID, e.Kind)
	}

	var event domain.CalendarEvent
	switch kind {
	case domain.KindAppointment:
		a := &domain.Appointment{
			ID:           e.ID,
			TechnicianID: e.TechnicianID,
			StartTime:    start,
			EndTime:      end,
			Status:       domain.AppointmentScheduled,
			ClientName:   e.Title,
		}
		if e.Status != nil {
			if s, ok := domain.ParseAppointmentStatus(*e.Status); ok {
				a.Status = s
			}
		}
		if e.ClientName != nil {
			a.ClientName = *e.ClientName
		}
		if e.ServiceName != nil {
			a.ServiceName = *e.ServiceName
		}
		event = domain.FromAppointment(a)
	case domain.KindBlock:
		b := &domain.TechnicianBlock{
			ID:           e.ID,
			TechnicianID: e.TechnicianID,
			Title:        e.Title,
			BlockType:    domain.BlockPersonal,
			StartTime:    start,
			EndTime:      end,
			IsActive:     true,
		}
		if e.BlockType != nil {
			b.BlockType = domain.BlockType(*e.BlockType)
		}
		event = domain.FromBlock(b)
	}

	// Сервер знает о повторениях, клиент видит только вхождение
	event.Locked = e.Locked
	if kind == domain.KindBlock && e.Recurring {
		event.Ref = domain.OccurrenceRef(e.ID, start)
	}
	return event, nil
}
