package grid

import (
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// TargetKind что находится под указателем
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetAppointment
	TargetBlock
	TargetEmptySlot
)

// Target результат попадания указателя в сетку
type Target struct {
	Kind         TargetKind
	Event        *PlacedEvent
	TechnicianID int64
	Time         time.Time
}

// OnEvent возвращает true, если указатель попал в карточку события
func (t Target) OnEvent() bool {
	return t.Kind == TargetAppointment || t.Kind == TargetBlock
}

// HitTest определяет, что находится под точкой. Из перекрывающихся карточек
// выбирается верхняя (с наибольшим z-index)
func (v *DayView) HitTest(p Point) Target {
	if !v.Geometry.Contains(p) {
		return Target{Kind: TargetNone}
	}
	idx, ok := v.Geometry.ColumnAt(p.X)
	if !ok {
		return Target{Kind: TargetNone}
	}

	column := v.Columns[idx]
	target := Target{
		Kind:         TargetEmptySlot,
		TechnicianID: column.Technician.ID,
		Time:         v.Geometry.TimeAt(p.Y),
	}

	colX := v.Geometry.ColumnX(idx)
	var hit *PlacedEvent
	for i := range column.Events {
		e := &column.Events[i]
		if !e.contains(p, colX, v.Geometry.ColumnWidth) {
			continue
		}
		if hit == nil || e.Position.ZIndex >= hit.Position.ZIndex {
			hit = e
		}
	}
	if hit == nil {
		return target
	}

	target.Event = hit
	if hit.Event.Kind() == domain.KindBlock {
		target.Kind = TargetBlock
	} else {
		target.Kind = TargetAppointment
	}
	return target
}

func (e PlacedEvent) contains(p Point, columnX, columnWidth float64) bool {
	left := columnX + e.Position.Left*columnWidth/100
	right := columnX + e.Position.Right()*columnWidth/100
	top := e.Projection.Top
	bottom := top + e.Projection.Height
	return p.X >= left && p.X < right && p.Y >= top && p.Y < bottom
}

// ClickHandlers обработчики кликов, которые сетка отдаёт оболочке приложения
type ClickHandlers struct {
	OnAppointment func(appointmentID int64)
	OnBlock       func(blockID int64)
	OnEmptySlot   func(technicianID int64, at time.Time)
}

// Dispatch вызывает обработчик, соответствующий цели клика
func (t Target) Dispatch(h ClickHandlers) {
	switch t.Kind {
	case TargetAppointment:
		if h.OnAppointment != nil {
			h.OnAppointment(t.Event.Event.ID())
		}
	case TargetBlock:
		if h.OnBlock != nil {
			h.OnBlock(t.Event.Event.ID())
		}
	case TargetEmptySlot:
		if h.OnEmptySlot != nil {
			h.OnEmptySlot(t.TechnicianID, t.Time)
		}
	}
}
