package grid

import (
	"math"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/calendar/projector"
)

// Point координаты указателя относительно левого верхнего угла первой колонки мастера
type Point struct {
	X float64
	Y float64
}

// Geometry переводит координаты указателя в (мастер, время) и обратно
type Geometry struct {
	ColumnWidth   float64
	View          projector.View
	TechnicianIDs []int64 // порядок колонок слева направо
}

// Contains возвращает true, если точка лежит внутри сетки
func (g Geometry) Contains(p Point) bool {
	width := g.ColumnWidth * float64(len(g.TechnicianIDs))
	return p.X >= 0 && p.Y >= 0 && p.X < width && p.Y < g.View.Height()
}

// ColumnAt индекс колонки под горизонтальной координатой
func (g Geometry) ColumnAt(x float64) (int, bool) {
	if g.ColumnWidth <= 0 || x < 0 {
		return 0, false
	}
	idx := int(math.Floor(x / g.ColumnWidth))
	if idx >= len(g.TechnicianIDs) {
		return 0, false
	}
	return idx, true
}

// TechnicianAt мастер, колонка которого под горизонтальной координатой
func (g Geometry) TechnicianAt(x float64) (int64, bool) {
	idx, ok := g.ColumnAt(x)
	if !ok {
		return 0, false
	}
	return g.TechnicianIDs[idx], true
}

// ColumnOf индекс колонки мастера
func (g Geometry) ColumnOf(technicianID int64) (int, bool) {
	for i, id := range g.TechnicianIDs {
		if id == technicianID {
			return i, true
		}
	}
	return 0, false
}

// ColumnX левая граница колонки
func (g Geometry) ColumnX(index int) float64 {
	return float64(index) * g.ColumnWidth
}

// TimeAt момент времени под вертикальной координатой
func (g Geometry) TimeAt(y float64) time.Time {
	return g.View.TimeAt(y)
}

// DeltaMinutes сдвиг во времени, соответствующий вертикальному смещению указателя
func (g Geometry) DeltaMinutes(dy float64) float64 {
	return dy * 60 / g.View.PixelsPerHour
}

// Snap округляет момент до ближайшего шага сетки, отсчитываемого от полуночи дня
func Snap(t time.Time, day time.Time, step time.Duration) time.Time {
	if step <= 0 {
		return t
	}
	offset := t.Sub(day)
	steps := math.Round(float64(offset) / float64(step))
	return day.Add(time.Duration(steps) * step)
}

// SnapDown округляет момент вниз до шага сетки
func SnapDown(t time.Time, day time.Time, step time.Duration) time.Time {
	if step <= 0 {
		return t
	}
	offset := t.Sub(day)
	steps := math.Floor(float64(offset) / float64(step))
	return day.Add(time.Duration(steps) * step)
}
