package domain

import (
	"fmt"
	"time"
)

// EventKind вид события календаря
type EventKind int

const (
	KindAppointment EventKind = iota + 1
	KindBlock
)

func (k EventKind) String() string {
	switch k {
	case KindAppointment:
		return "appointment"
	case KindBlock:
		return "block"
	default:
		return "unknown"
	}
}

// ParseEventKind обратное преобразование для транспортного уровня
func ParseEventKind(s string) (EventKind, bool) {
	switch s {
	case "appointment":
		return KindAppointment, true
	case "block":
		return KindBlock, true
	default:
		return 0, false
	}
}

// EventRef идентифицирует событие в пределах дня.
// ID записей и блоков пересекаются, поэтому ключом служит пара (вид, ID).
// У вхождений повторяющегося блока общий ID, их различает Occurrence
type EventRef struct {
	Kind       EventKind
	ID         int64
	Occurrence int64 // начало вхождения (unix), 0 для неповторяющихся событий
}

// OccurrenceRef ссылка на вхождение повторяющегося блока
func OccurrenceRef(blockID int64, start time.Time) EventRef {
	return EventRef{Kind: KindBlock, ID: blockID, Occurrence: start.Unix()}
}

func (r EventRef) String() string {
	if r.Occurrence != 0 {
		return fmt.Sprintf("%s:%d@%d", r.Kind, r.ID, r.Occurrence)
	}
	return fmt.Sprintf("%s:%d", r.Kind, r.ID)
}

// Less задаёт детерминированный порядок для разрешения ничьих
func (r EventRef) Less(other EventRef) bool {
	if r.ID != other.ID {
		return r.ID < other.ID
	}
	if r.Kind != other.Kind {
		return r.Kind < other.Kind
	}
	return r.Occurrence < other.Occurrence
}

// EventPayload исходная запись, из которой построено событие:
// *Appointment или *TechnicianBlock. Алгоритмы раскладки его не читают
type EventPayload interface {
	eventKind() EventKind
}

func (*Appointment) eventKind() EventKind     { return KindAppointment }
func (*TechnicianBlock) eventKind() EventKind { return KindBlock }

// CalendarEvent единое представление события для раскладки и перетаскивания
type CalendarEvent struct {
	Ref          EventRef
	TechnicianID int64
	Start        time.Time
	End          time.Time

	// Locked события отображаются, но не перетаскиваются
	Locked bool

	Payload EventPayload
}

// FromAppointment строит событие из записи
func FromAppointment(a *Appointment) CalendarEvent {
	return CalendarEvent{
		Ref:          EventRef{Kind: KindAppointment, ID: a.ID},
		TechnicianID: a.TechnicianID,
		Start:        a.StartTime,
		End:          a.EndTime,
		Locked:       !a.CanBeMoved(),
		Payload:      a,
	}
}

// FromBlock строит событие из блока личного времени (или вхождения повторяющегося).
// Повторяющиеся блоки переносить нельзя: перенос одного вхождения не поддерживается
func FromBlock(b *TechnicianBlock) CalendarEvent {
	ref := EventRef{Kind: KindBlock, ID: b.ID}
	if b.IsRecurring() {
		ref = OccurrenceRef(b.ID, b.StartTime)
	}
	return CalendarEvent{
		Ref:          ref,
		TechnicianID: b.TechnicianID,
		Start:        b.StartTime,
		End:          b.EndTime,
		Locked:       b.IsRecurring(),
		Payload:      b,
	}
}

func (e CalendarEvent) Kind() EventKind {
	return e.Ref.Kind
}

func (e CalendarEvent) ID() int64 {
	return e.Ref.ID
}

// Duration длительность события (может быть нулевой или отрицательной для битых данных)
func (e CalendarEvent) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// Appointment возвращает исходную запись, если событие построено из неё
func (e CalendarEvent) Appointment() (*Appointment, bool) {
	a, ok := e.Payload.(*Appointment)
	return a, ok
}

// Block возвращает исходный блок, если событие построено из него
func (e CalendarEvent) Block() (*TechnicianBlock, bool) {
	b, ok := e.Payload.(*TechnicianBlock)
	return b, ok
}

// Title заголовок карточки
func (e CalendarEvent) Title() string {
	switch p := e.Payload.(type) {
	case *Appointment:
		if p.ServiceName == "" {
			return p.ClientName
		}
		return p.ClientName + " · " + p.ServiceName
	case *TechnicianBlock:
		return p.Title
	default:
		return e.Ref.String()
	}
}

// Intersects возвращает true, если событие пересекается с окном [from, to)
func (e CalendarEvent) Intersects(from, to time.Time) bool {
	return e.Start.Before(to) && e.End.After(from)
}

// Moved возвращает копию события с новым мастером и временем начала.
// Длительность сохраняется
func (e CalendarEvent) Moved(technicianID int64, start time.Time) CalendarEvent {
	moved := e
	moved.TechnicianID = technicianID
	moved.Start = start
	moved.End = start.Add(e.Duration())
	return moved
}

// OverlapPosition горизонтальное положение карточки внутри колонки мастера
type OverlapPosition struct {
	Left         float64 // процент ширины колонки
	Width        float64 // процент ширины колонки
	ZIndex       int
	IsDominant   bool
	Column       int
	TotalColumns int
}

// Right правая граница карточки в процентах
func (p OverlapPosition) Right() float64 {
	return p.Left + p.Width
}
