// Package grid собирает дневную сетку календаря: колонки мастеров, затенение
// нерабочего времени, линию текущего времени и карточки событий в вычисленных
// координатах.
package grid

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/calendar/layout"
	"github.com/m04kA/SMC-CalendarService/internal/calendar/projector"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// Options параметры построения сетки. Предпочтения интерфейса (выбранные мастера,
// диапазон часов) передаются сюда явно
type Options struct {
	Day           time.Time // полночь дня в часовом поясе салона
	StartHour     int
	EndHour       int
	PixelsPerHour float64
	ColumnWidth   float64
	Now           time.Time
	TechnicianIDs []int64 // пусто: все активные мастера

	// Overrides оптимистичные положения событий (перетаскивание, ожидание подтверждения)
	Overrides map[domain.EventRef]domain.CalendarEvent
}

// DayView собранная дневная сетка
type DayView struct {
	Day       time.Time
	View      projector.View
	Geometry  Geometry
	Height    float64
	HourMarks []HourMark
	Columns   []Column
	NowTop    *float64 // nil, если текущее время вне сетки
}

// HourMark горизонтальная линия часа
type HourMark struct {
	Hour int
	Top  float64
}

// Column колонка одного мастера
type Column struct {
	Index      int
	Technician domain.Technician
	OffHours   []Band
	Events     []PlacedEvent // в порядке отрисовки (по возрастанию z-index)
}

// Band затенённая полоса нерабочего времени
type Band struct {
	Top    float64
	Height float64
}

// PlacedEvent событие с вычисленными координатами
type PlacedEvent struct {
	Event      domain.CalendarEvent
	Position   domain.OverlapPosition
	Projection projector.Projection
	Optimistic bool // показано в положении, ещё не сохранённом
}

// Compose строит дневную сетку
func Compose(technicians []domain.Technician, events []domain.CalendarEvent, opts Options) *DayView {
	view := projector.View{
		Day:           opts.Day,
		StartHour:     opts.StartHour,
		EndHour:       opts.EndHour,
		PixelsPerHour: opts.PixelsPerHour,
	}

	selected := selectTechnicians(technicians, opts.TechnicianIDs)
	ids := make([]int64, len(selected))
	columnByTechnician := make(map[int64]int, len(selected))
	for i, t := range selected {
		ids[i] = t.ID
		columnByTechnician[t.ID] = i
	}

	dayEvents, optimistic := applyOverrides(events, opts.Overrides)
	visible := make([]domain.CalendarEvent, 0, len(dayEvents))
	for _, e := range dayEvents {
		if _, ok := columnByTechnician[e.TechnicianID]; !ok {
			continue
		}
		// события вне диапазона часов сетки не показываются и не участвуют в раскладке
		if !e.Intersects(view.Start(), view.End()) {
			continue
		}
		visible = append(visible, e)
	}

	positions := layout.Technicians(visible)

	columns := make([]Column, len(selected))
	for i, t := range selected {
		columns[i] = Column{
			Index:      i,
			Technician: t,
			OffHours:   offHours(t, view),
			Events:     make([]PlacedEvent, 0),
		}
	}
	for _, e := range visible {
		col := columnByTechnician[e.TechnicianID]
		columns[col].Events = append(columns[col].Events, PlacedEvent{
			Event:      e,
			Position:   positions[e.Ref],
			Projection: projector.Event(e, view),
			Optimistic: optimistic[e.Ref],
		})
	}
	for i := range columns {
		sortForRendering(columns[i].Events)
	}

	return &DayView{
		Day:  opts.Day,
		View: view,
		Geometry: Geometry{
			ColumnWidth:   opts.ColumnWidth,
			View:          view,
			TechnicianIDs: ids,
		},
		Height:    view.Height(),
		HourMarks: hourMarks(view),
		Columns:   columns,
		NowTop:    nowTop(opts.Now, view),
	}
}

// Events все размещённые события сетки
func (v *DayView) Events() []PlacedEvent {
	out := make([]PlacedEvent, 0)
	for _, c := range v.Columns {
		out = append(out, c.Events...)
	}
	return out
}

// Find ищет размещённое событие по ссылке
func (v *DayView) Find(ref domain.EventRef) (PlacedEvent, bool) {
	for _, c := range v.Columns {
		for _, e := range c.Events {
			if e.Event.Ref == ref {
				return e, true
			}
		}
	}
	return PlacedEvent{}, false
}

func selectTechnicians(technicians []domain.Technician, ids []int64) []domain.Technician {
	wanted := make(map[int64]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	out := make([]domain.Technician, 0, len(technicians))
	for _, t := range technicians {
		if len(wanted) > 0 && !wanted[t.ID] {
			continue
		}
		if len(wanted) == 0 && !t.IsActive {
			continue
		}
		out = append(out, t)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func applyOverrides(events []domain.CalendarEvent, overrides map[domain.EventRef]domain.CalendarEvent) ([]domain.CalendarEvent, map[domain.EventRef]bool) {
	optimistic := make(map[domain.EventRef]bool, len(overrides))
	if len(overrides) == 0 {
		return events, optimistic
	}

	out := make([]domain.CalendarEvent, len(events))
	for i, e := range events {
		if o, ok := overrides[e.Ref]; ok {
			out[i] = o
			optimistic[e.Ref] = true
			continue
		}
		out[i] = e
	}
	return out, optimistic
}

// offHours полосы нерабочего времени мастера в пределах сетки
func offHours(t domain.Technician, view projector.View) []Band {
	full := []Band{{Top: 0, Height: view.Height()}}

	day := t.ScheduleFor(view.Day)
	if !day.IsWorking {
		return full
	}
	workStart, errStart := day.StartTime.On(view.Day)
	workEnd, errEnd := day.EndTime.On(view.Day)
	if errStart != nil || errEnd != nil || !workEnd.After(workStart) {
		return full
	}

	bands := make([]Band, 0, 2)
	if top := view.OffsetOf(workStart); top > 0 {
		bands = append(bands, Band{Top: 0, Height: min(top, view.Height())})
	}
	if bottom := view.OffsetOf(workEnd); bottom < view.Height() {
		start := max(bottom, 0)
		bands = append(bands, Band{Top: start, Height: view.Height() - start})
	}
	return bands
}

func hourMarks(view projector.View) []HourMark {
	marks := make([]HourMark, 0, view.EndHour-view.StartHour)
	for h := view.StartHour; h < view.EndHour; h++ {
		marks = append(marks, HourMark{
			Hour: h,
			Top:  float64(h-view.StartHour) * view.PixelsPerHour,
		})
	}
	return marks
}

func nowTop(now time.Time, view projector.View) *float64 {
	if now.IsZero() || now.Before(view.Start()) || !now.Before(view.End()) {
		return nil
	}
	top := view.OffsetOf(now)
	return &top
}

func sortForRendering(events []PlacedEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Position.ZIndex != events[j].Position.ZIndex {
			return events[i].Position.ZIndex < events[j].Position.ZIndex
		}
		if !events[i].Event.Start.Equal(events[j].Event.Start) {
			return events[i].Event.Start.Before(events[j].Event.Start)
		}
		return events[i].Event.Ref.Less(events[j].Event.Ref)
	})
}
