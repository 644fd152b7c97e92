// Package overlap находит пересекающиеся события одного мастера за день.
//
// Пересечение определяется строго: a.Start < b.End && a.End > b.Start.
// События нулевой длительности и события, стыкующиеся границами, не пересекаются.
package overlap

import (
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// Overlaps единственный предикат пересечения для всего календаря
func Overlaps(a, b domain.CalendarEvent) bool {
	return RangesOverlap(a.Start, a.End, b.Start, b.End)
}

// RangesOverlap предикат пересечения для произвольных интервалов
func RangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// Duration длительность общей части двух интервалов (0, если не пересекаются)
func Duration(a, b domain.CalendarEvent) time.Duration {
	if !Overlaps(a, b) {
		return 0
	}
	start := a.Start
	if b.Start.After(start) {
		start = b.Start
	}
	end := a.End
	if b.End.Before(end) {
		end = b.End
	}
	return end.Sub(start)
}

// CollisionGroups разбивает события на группы транзитивно пересекающихся.
//
// Алгоритм «расширяем до стабильности»: берём первое нераспределённое событие,
// затем повторно проходим по нераспределённым (в исходном порядке) и добавляем все,
// что пересекаются с любым событием группы, пока проход не перестанет что-либо добавлять.
// Результат является разбиением входа: каждое событие ровно в одной группе.
func CollisionGroups(events []domain.CalendarEvent) [][]domain.CalendarEvent {
	assigned := make([]bool, len(events))
	groups := make([][]domain.CalendarEvent, 0)

	for i := range events {
		if assigned[i] {
			continue
		}
		assigned[i] = true
		group := []domain.CalendarEvent{events[i]}

		for changed := true; changed; {
			changed = false
			for j := range events {
				if assigned[j] {
					continue
				}
				if overlapsAny(events[j], group) {
					assigned[j] = true
					group = append(group, events[j])
					changed = true
				}
			}
		}

		groups = append(groups, group)
	}

	return groups
}

// DirectOverlapSubGroups компоненты связности графа строгих попарных пересечений.
// Ребро есть только между событиями, интервалы которых действительно пересекаются.
// Компоненты и события внутри них идут в исходном порядке
func DirectOverlapSubGroups(events []domain.CalendarEvent) [][]domain.CalendarEvent {
	n := len(events)
	adjacency := make([][]int, n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if Overlaps(events[i], events[j]) {
				adjacency[i] = append(adjacency[i], j)
				adjacency[j] = append(adjacency[j], i)
			}
		}
	}

	visited := make([]bool, n)
	components := make([][]domain.CalendarEvent, 0)

	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}
		visited[start] = true
		queue := []int{start}
		members := []int{}

		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			members = append(members, cur)
			for _, next := range adjacency[cur] {
				if !visited[next] {
					visited[next] = true
					queue = append(queue, next)
				}
			}
		}

		components = append(components, pick(events, members))
	}

	return components
}

// ConflictsWith возвращает события из others, пересекающиеся с candidate
// у того же мастера. Событие exclude (перетаскиваемое) не учитывается
func ConflictsWith(candidate domain.CalendarEvent, others []domain.CalendarEvent, exclude domain.EventRef) []domain.CalendarEvent {
	conflicts := make([]domain.CalendarEvent, 0)
	for _, other := range others {
		if other.Ref == exclude || other.TechnicianID != candidate.TechnicianID {
			continue
		}
		if Overlaps(candidate, other) {
			conflicts = append(conflicts, other)
		}
	}
	return conflicts
}

func overlapsAny(e domain.CalendarEvent, group []domain.CalendarEvent) bool {
	for _, member := range group {
		if Overlaps(e, member) {
			return true
		}
	}
	return false
}

// pick возвращает события по индексам, сохраняя исходный порядок
func pick(events []domain.CalendarEvent, idx []int) []domain.CalendarEvent {
	marked := make([]bool, len(events))
	for _, i := range idx {
		marked[i] = true
	}
	out := make([]domain.CalendarEvent, 0, len(idx))
	for i, e := range events {
		if marked[i] {
			out = append(out, e)
		}
	}
	return out
}
