// Package recurrence разворачивает повторяющиеся блоки мастеров (RRULE, RFC 5545)
// в конкретные вхождения на запрошенном окне.
package recurrence

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

var ErrInvalidRule = errors.New("recurrence: invalid rule")

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Parse разбирает правило повторения. Префикс "RRULE:" допускается
func Parse(rule string, dtStart time.Time) (*rrule.RRule, error) {
	rule = strings.TrimSpace(rule)
	rule = strings.TrimPrefix(rule, "RRULE:")
	if rule == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidRule)
	}

	r, err := rrule.StrToRRule(rule)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidRule, rule, err)
	}
	r.DTStart(dtStart)
	return r, nil
}

// Validate проверяет правило без разворачивания
func Validate(rule string) error {
	_, err := Parse(rule, time.Now())
	return err
}

// Expand возвращает вхождения блока, пересекающиеся с окном [from, to).
// Правило вычисляется в часовом поясе loc, чтобы вхождения сохраняли
// локальное время при переходе на летнее время
func Expand(b *domain.TechnicianBlock, from, to time.Time, loc *time.Location) ([]*domain.TechnicianBlock, error) {
	if !b.IsRecurring() {
		if b.StartTime.Before(to) && b.EndTime.After(from) {
			return []*domain.TechnicianBlock{b}, nil
		}
		return nil, nil
	}
	if loc == nil {
		loc = time.UTC
	}

	r, err := Parse(*b.RecurrenceRule, b.StartTime.In(loc))
	if err != nil {
		return nil, err
	}

	duration := b.Duration()
	starts := r.Between(from.Add(-duration).In(loc), to.In(loc), true)

	out := make([]*domain.TechnicianBlock, 0, len(starts))
	for _, start := range starts {
		occ := b.Occurrence(start)
		if occ.StartTime.Before(to) && occ.EndTime.After(from) {
			out = append(out, occ)
		}
	}
	return out, nil
}

// ExpandAll разворачивает набор блоков на окне, сохраняя все вхождения в порядке
// правила. Блоки с неразборчивым правилом пропускаются с предупреждением
func ExpandAll(blocks []domain.TechnicianBlock, from, to time.Time, loc *time.Location, logger Logger) []domain.TechnicianBlock {
	out := make([]domain.TechnicianBlock, 0, len(blocks))
	for i := range blocks {
		occurrences, err := Expand(&blocks[i], from, to, loc)
		if err != nil {
			if logger != nil {
				logger.Warn("recurrence: skip block %d: %v", blocks[i].ID, err)
			}
			continue
		}
		for _, occ := range occurrences {
			out = append(out, *occ)
		}
	}
	return out
}
