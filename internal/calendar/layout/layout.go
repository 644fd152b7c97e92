// Package layout рассчитывает горизонтальную раскладку пересекающихся событий
// в колонке мастера: смещение, ширину (в процентах колонки) и порядок наложения.
//
// Все функции чистые: каждая возвращает новую карту позиций.
package layout

import (
	"sort"

	"github.com/m04kA/SMC-CalendarService/internal/calendar/overlap"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// Positions позиции событий, ключ: ссылка на событие
type Positions map[domain.EventRef]domain.OverlapPosition

// Merge добавляет позиции other в p
func (p Positions) Merge(other Positions) {
	for ref, pos := range other {
		p[ref] = pos
	}
}

// Technicians раскладывает события нескольких мастеров за один день.
// Каждый мастер раскладывается независимо
func Technicians(events []domain.CalendarEvent) Positions {
	order := make([]int64, 0)
	byTechnician := make(map[int64][]domain.CalendarEvent)
	for _, e := range events {
		if _, seen := byTechnician[e.TechnicianID]; !seen {
			order = append(order, e.TechnicianID)
		}
		byTechnician[e.TechnicianID] = append(byTechnician[e.TechnicianID], e)
	}

	out := make(Positions, len(events))
	for _, technicianID := range order {
		out.Merge(Day(byTechnician[technicianID]))
	}
	return out
}

// Day раскладывает события одного мастера за один день
func Day(events []domain.CalendarEvent) Positions {
	out := make(Positions, len(events))
	for _, group := range overlap.CollisionGroups(events) {
		out.Merge(Group(group))
	}
	return out
}

// Group раскладывает одну группу коллизий.
// Правила применяются к подгруппам прямого пересечения, поэтому несвязанные
// части одной группы раскладываются независимо и могут занимать всю ширину
func Group(group []domain.CalendarEvent) Positions {
	if len(group) == 1 {
		return Cascade(group, 0, domain.FullWidthPercent)
	}

	blocks, appointments := splitByKind(group)
	if len(blocks) == 0 || len(appointments) == 0 {
		out := make(Positions, len(group))
		for _, sub := range overlap.DirectOverlapSubGroups(group) {
			out.Merge(Cascade(sub, 0, domain.FullWidthPercent))
		}
		return out
	}

	return mixed(blocks, appointments)
}

// mixed раскладывает группу, где пересекаются блоки и записи:
// блоки прижаты к левой колонке, записи к правой части
func mixed(blocks, appointments []domain.CalendarEvent) Positions {
	out := make(Positions, len(blocks)+len(appointments))
	blockWidth := BlockColumnWidth(blocks, appointments)

	for _, sub := range overlap.DirectOverlapSubGroups(blocks) {
		out.Merge(Cascade(sub, 0, blockWidth))
	}

	for _, sub := range overlap.DirectOverlapSubGroups(appointments) {
		if anyOverlap(sub, blocks) {
			out.Merge(Cascade(sub, blockWidth, domain.FullWidthPercent-blockWidth))
			continue
		}
		out.Merge(Cascade(sub, 0, domain.FullWidthPercent))
	}

	return out
}

// BlockColumnWidth ширина колонки блоков в смешанной группе.
// Чем большую долю записи перекрывает блок, тем шире колонка:
// clamp(15, 35, 15 + ratio*20), где ratio есть максимальная доля длительности записи,
// перекрытая каким-либо блоком
func BlockColumnWidth(blocks, appointments []domain.CalendarEvent) float64 {
	ratio := 0.0
	for _, b := range blocks {
		for _, a := range appointments {
			apptDuration := a.Duration()
			if apptDuration <= 0 {
				continue
			}
			r := float64(overlap.Duration(b, a)) / float64(apptDuration)
			if r > ratio {
				ratio = r
			}
		}
	}

	span := domain.MaxBlockColumnPercent - domain.MinBlockColumnPercent
	return clamp(domain.MinBlockColumnPercent+ratio*span, domain.MinBlockColumnPercent, domain.MaxBlockColumnPercent)
}

// Cascade раскладывает события одного вида, попарно связанных пересечениями,
// внутри полосы [left, left+width].
//
//   - одно событие занимает всю полосу;
//   - из двух раннее занимает всю полосу позади, позднее правую половину спереди;
//   - три и более: позднейшее слева и спереди, более ранние сдвигаются вправо
//     и уходят назад.
func Cascade(events []domain.CalendarEvent, left, width float64) Positions {
	sorted := SortByStart(events)
	n := len(sorted)
	out := make(Positions, n)

	switch n {
	case 0:
		return out
	case 1:
		out[sorted[0].Ref] = domain.OverlapPosition{
			Left:         left,
			Width:        width,
			ZIndex:       domain.BaseZIndex,
			IsDominant:   true,
			Column:       0,
			TotalColumns: 1,
		}
		return out
	case 2:
		// доля полосы, с которой начинается передняя карточка пары
		front := width * domain.PairFrontLeftPercent / domain.FullWidthPercent
		out[sorted[0].Ref] = domain.OverlapPosition{
			Left:         left,
			Width:        width,
			ZIndex:       domain.BaseZIndex,
			Column:       0,
			TotalColumns: 2,
		}
		out[sorted[1].Ref] = domain.OverlapPosition{
			Left:         left + front,
			Width:        width - front,
			ZIndex:       domain.BaseZIndex + 1,
			IsDominant:   true,
			Column:       1,
			TotalColumns: 2,
		}
		return out
	}

	offset, cardWidth := cascadeMetrics(n, width)
	for i, e := range sorted {
		column := n - 1 - i
		out[e.Ref] = domain.OverlapPosition{
			Left:         left + float64(column)*offset,
			Width:        cardWidth,
			ZIndex:       domain.BaseZIndex + i,
			IsDominant:   i == n-1,
			Column:       column,
			TotalColumns: n,
		}
	}
	return out
}

// cascadeMetrics шаг смещения и ширина карточки для каскада из n событий.
// Карточка не уже 25%, но и не шире полосы; если минимальная ширина не даёт
// уместить каскад, шаг уменьшается так, чтобы последняя карточка не вышла за полосу
func cascadeMetrics(n int, available float64) (offset, cardWidth float64) {
	offset = domain.MaxCascadeOffset
	if spread := domain.CascadeSpreadPercent / float64(n); spread < offset {
		offset = spread
	}

	steps := float64(n - 1)
	cardWidth = available - offset*steps
	if cardWidth < domain.MinCardWidthPercent {
		cardWidth = domain.MinCardWidthPercent
	}
	if cardWidth > available {
		cardWidth = available
	}
	if cardWidth+offset*steps > available {
		offset = (available - cardWidth) / steps
	}
	return offset, cardWidth
}

// SortByStart возвращает копию событий, упорядоченную по началу.
// Ничьи разрешаются по ссылке на событие, чтобы раскладка была детерминированной
func SortByStart(events []domain.CalendarEvent) []domain.CalendarEvent {
	sorted := make([]domain.CalendarEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Start.Equal(sorted[j].Start) {
			return sorted[i].Start.Before(sorted[j].Start)
		}
		return sorted[i].Ref.Less(sorted[j].Ref)
	})
	return sorted
}

func splitByKind(events []domain.CalendarEvent) (blocks, appointments []domain.CalendarEvent) {
	for _, e := range events {
		if e.Kind() == domain.KindBlock {
			blocks = append(blocks, e)
		} else {
			appointments = append(appointments, e)
		}
	}
	return blocks, appointments
}

func anyOverlap(events, others []domain.CalendarEvent) bool {
	for _, e := range events {
		for _, o := range others {
			if overlap.Overlaps(e, o) {
				return true
			}
		}
	}
	return false
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
