// Package projector переводит время событий в вертикальные координаты дневной сетки
package projector

import (
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// View параметры вертикальной оси дневной сетки
type View struct {
	Day           time.Time // полночь отображаемого дня в часовом поясе салона
	StartHour     int
	EndHour       int
	PixelsPerHour float64
	MinHeight     float64 // 0 означает domain.MinEventHeightPixels
}

// Projection вертикальное положение карточки
type Projection struct {
	Top          float64
	Height       float64
	SpansNextDay bool // событие продолжается после полуночи и обрезано по низу сетки
}

// Start момент, соответствующий верхней границе сетки
func (v View) Start() time.Time {
	return v.Day.Add(time.Duration(v.StartHour) * time.Hour)
}

// End момент, соответствующий нижней границе сетки
func (v View) End() time.Time {
	return v.Day.Add(time.Duration(v.EndHour) * time.Hour)
}

// Height высота сетки в пикселях
func (v View) Height() float64 {
	return float64(v.EndHour-v.StartHour) * v.PixelsPerHour
}

// OffsetOf вертикальное смещение момента t от верхней границы сетки (без обрезки)
func (v View) OffsetOf(t time.Time) float64 {
	return t.Sub(v.Start()).Minutes() * v.PixelsPerHour / 60
}

// TimeAt момент времени, соответствующий смещению y от верхней границы сетки
func (v View) TimeAt(y float64) time.Time {
	minutes := y * 60 / v.PixelsPerHour
	return v.Start().Add(time.Duration(minutes * float64(time.Minute)))
}

func (v View) minHeight() float64 {
	if v.MinHeight > 0 {
		return v.MinHeight
	}
	return domain.MinEventHeightPixels
}

// Project вычисляет положение события в сетке.
//
// Высота не меньше минимальной, чтобы по короткому (или битому, с нулевой
// длительностью) событию можно было попасть указателем. Событие, заканчивающееся
// на следующий день, обрезается по низу сетки и помечается SpansNextDay
func Project(start, end time.Time, v View) Projection {
	gridHeight := v.Height()
	nextDay := v.Day.AddDate(0, 0, 1)

	top := clamp(v.OffsetOf(start), 0, gridHeight)
	bottom := v.OffsetOf(end)

	spansNextDay := end.After(nextDay)
	if spansNextDay || bottom > gridHeight {
		bottom = gridHeight
	}

	height := bottom - top
	if !end.After(start) || height < v.minHeight() {
		height = v.minHeight()
	}

	return Projection{
		Top:          top,
		Height:       height,
		SpansNextDay: spansNextDay,
	}
}

// Event проецирует событие календаря
func Event(e domain.CalendarEvent, v View) Projection {
	return Project(e.Start, e.End, v)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
