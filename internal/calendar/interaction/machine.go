// Package interaction машина состояний указателя для дневной сетки:
// клик, перетаскивание с привязкой к шагу сетки, выделение диапазона
// для нового блока и подтверждение переноса записи.
package interaction

import (
	"math"
	"sync"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/calendar/grid"
	"github.com/m04kA/SMC-CalendarService/internal/calendar/overlap"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// Phase состояние машины
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePressed
	PhaseDragging
	PhaseAwaitingConfirmation
	PhaseSelecting
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePressed:
		return "pressed"
	case PhaseDragging:
		return "dragging"
	case PhaseAwaitingConfirmation:
		return "awaiting_confirmation"
	case PhaseSelecting:
		return "selecting"
	default:
		return "unknown"
	}
}

// Config параметры взаимодействия
type Config struct {
	SnapMinutes        int
	ActivationDistance float64 // пикселей до начала перетаскивания

	// TouchMode отключает перетаскивание, пустая ячейка открывает создание по касанию
	TouchMode bool

	AppointmentsDraggable bool
	BlocksDraggable       bool
}

// DefaultConfig настройки по умолчанию
func DefaultConfig() Config {
	return Config{
		SnapMinutes:           domain.DefaultSnapMinutes,
		ActivationDistance:    domain.DefaultActivationPixel,
		AppointmentsDraggable: true,
		BlocksDraggable:       true,
	}
}

// DragState живое состояние перетаскивания
type DragState struct {
	Event                domain.CalendarEvent // в исходном положении
	OriginalTechnicianID int64
	OriginalTime         time.Time
	CurrentTechnicianID  int64
	CurrentTime          time.Time
	HasConflict          bool
	Conflicts            []domain.EventRef
}

// Candidate событие в текущем положении перетаскивания
func (d DragState) Candidate() domain.CalendarEvent {
	return d.Event.Moved(d.CurrentTechnicianID, d.CurrentTime)
}

// Changed возвращает true, если событие сдвинуто относительно исходного положения
func (d DragState) Changed() bool {
	return d.CurrentTechnicianID != d.OriginalTechnicianID || !d.CurrentTime.Equal(d.OriginalTime)
}

// PendingMove перенос записи, ожидающий подтверждения
type PendingMove struct {
	Event                domain.CalendarEvent
	OriginalTechnicianID int64
	OriginalTime         time.Time
	NewTechnicianID      int64
	NewTime              time.Time
	HasConflict          bool

	// LastError ошибка последней попытки сохранения
	LastError error
}

func (p PendingMove) EventID() int64 {
	return p.Event.ID()
}

// NewEnd окончание записи после переноса
func (p PendingMove) NewEnd() time.Time {
	return p.NewTime.Add(p.Event.Duration())
}

// SelectionRange выделенный диапазон для нового блока, всегда в одной колонке
type SelectionRange struct {
	TechnicianID int64
	Start        time.Time
	End          time.Time
}

// Outcome чем закончилось отпускание указателя
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeClick
	OutcomeCancelled
	OutcomeBlockCommit
	OutcomePending
	OutcomeSelection
	OutcomeIgnored // повторный сброс блока, пока сохраняется предыдущий
)

// Result результат отпускания указателя
type Result struct {
	Outcome   Outcome
	Target    grid.Target
	Pending   *PendingMove
	Selection *SelectionRange
	Commit    *Commit
}

type press struct {
	at     grid.Point
	target grid.Target
}

type selecting struct {
	technicianID int64
	anchor       time.Time
	current      time.Time
}

// Machine машина состояний указателя. Безопасна для конкурентного использования:
// сохранение (Commit.Run) может выполняться в отдельной горутине
type Machine struct {
	mu        sync.Mutex
	cfg       Config
	committer Committer
	logger    Logger

	view  *grid.DayView
	phase Phase

	press     *press
	drag      *DragState
	selecting *selecting

	pending         *PendingMove
	pendingInFlight bool

	selection      *SelectionRange
	createInFlight bool

	blockInFlight bool
	blockOverride *domain.CalendarEvent
}

// NewMachine создаёт машину состояний
func NewMachine(cfg Config, committer Committer, logger Logger) *Machine {
	if cfg.SnapMinutes <= 0 {
		cfg.SnapMinutes = domain.DefaultSnapMinutes
	}
	if cfg.ActivationDistance <= 0 {
		cfg.ActivationDistance = domain.DefaultActivationPixel
	}
	if logger == nil {
		logger = nopLogger{}
	}
	return &Machine{
		cfg:       cfg,
		committer: committer,
		logger:    logger,
		phase:     PhaseIdle,
	}
}

// SetView задаёт текущую сетку. Вызывается после каждой пересборки
func (m *Machine) SetView(view *grid.DayView) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.view = view
}

func (m *Machine) Phase() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

// Drag копия состояния перетаскивания или nil
func (m *Machine) Drag() *DragState {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.drag == nil {
		return nil
	}
	d := *m.drag
	return &d
}

// Pending копия ожидающего переноса или nil
func (m *Machine) Pending() *PendingMove {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pending == nil {
		return nil
	}
	p := *m.pending
	return &p
}

// Selection текущее выделение: растущее во время жеста или завершённое,
// ожидающее диалога создания блока
func (m *Machine) Selection() *SelectionRange {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase == PhaseSelecting && m.selecting != nil {
		r := m.selectionRange()
		return &r
	}
	if m.selection == nil {
		return nil
	}
	r := *m.selection
	return &r
}

// SelectSlot выделяет один шаг сетки в колонке мастера, начиная с шага,
// в который попадает at. Так касание пустой ячейки открывает создание блока.
// Во время жеста или ожидания подтверждения выделение не меняется
func (m *Machine) SelectSlot(technicianID int64, at time.Time) (SelectionRange, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.view == nil || m.phase != PhaseIdle {
		return SelectionRange{}, false
	}

	m.selecting = &selecting{technicianID: technicianID, anchor: at, current: at}
	r := m.selectionRange()
	m.selecting = nil
	m.selection = &r
	return r, true
}

// BlockInFlight возвращает true, пока сохраняется перенос блока
func (m *Machine) BlockInFlight() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.blockInFlight
}

// Overrides оптимистичные положения событий для пересборки сетки
func (m *Machine) Overrides() map[domain.EventRef]domain.CalendarEvent {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[domain.EventRef]domain.CalendarEvent)
	if m.blockOverride != nil {
		out[m.blockOverride.Ref] = *m.blockOverride
	}
	if m.pending != nil {
		out[m.pending.Event.Ref] = m.pending.Event.Moved(m.pending.NewTechnicianID, m.pending.NewTime)
	}
	if m.phase == PhaseDragging && m.drag != nil {
		out[m.drag.Event.Ref] = m.drag.Candidate()
	}
	return out
}

// PointerDown нажатие указателя
func (m *Machine) PointerDown(p grid.Point) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhaseIdle || m.view == nil {
		return
	}

	target := m.view.HitTest(p)
	switch target.Kind {
	case grid.TargetAppointment, grid.TargetBlock:
		m.press = &press{at: p, target: target}
		m.phase = PhasePressed
	case grid.TargetEmptySlot:
		if m.cfg.TouchMode {
			m.press = &press{at: p, target: target}
			m.phase = PhasePressed
			return
		}
		m.selection = nil
		m.selecting = &selecting{
			technicianID: target.TechnicianID,
			anchor:       target.Time,
			current:      target.Time,
		}
		m.phase = PhaseSelecting
	}
}

// PointerMove движение указателя
func (m *Machine) PointerMove(p grid.Point) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.phase {
	case PhasePressed:
		if distance(p, m.press.at) < m.cfg.ActivationDistance {
			return
		}
		if !m.press.target.OnEvent() || !m.draggable(m.press.target.Event.Event) {
			return
		}
		e := m.press.target.Event.Event
		m.drag = &DragState{
			Event:                e,
			OriginalTechnicianID: e.TechnicianID,
			OriginalTime:         e.Start,
			CurrentTechnicianID:  e.TechnicianID,
			CurrentTime:          e.Start,
		}
		m.phase = PhaseDragging
		m.updateDrag(p)
	case PhaseDragging:
		m.updateDrag(p)
	case PhaseSelecting:
		m.selecting.current = m.view.Geometry.TimeAt(clamp(p.Y, 0, m.view.Height))
	}
}

// PointerUp отпускание указателя
func (m *Machine) PointerUp(p grid.Point) Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.phase {
	case PhasePressed:
		target := m.press.target
		m.reset()
		return Result{Outcome: OutcomeClick, Target: target}
	case PhaseDragging:
		return m.drop(p)
	case PhaseSelecting:
		r := m.selectionRange()
		m.selection = &r
		m.reset()
		return Result{Outcome: OutcomeSelection, Selection: &r}
	default:
		return Result{Outcome: OutcomeNone}
	}
}

// Cancel прерывает жест (Escape, указатель покинул сетку). Ожидающий перенос
// не затрагивается
func (m *Machine) Cancel() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.phase {
	case PhasePressed, PhaseDragging, PhaseSelecting:
		m.reset()
		return true
	default:
		return false
	}
}

func (m *Machine) drop(p grid.Point) Result {
	inside := m.view.Geometry.Contains(p)
	if inside {
		// точка отпускания может отличаться от последнего движения
		m.updateDrag(p)
	}
	drag := *m.drag
	if !inside || !drag.Changed() {
		m.reset()
		return Result{Outcome: OutcomeCancelled}
	}

	if drag.Event.Kind() == domain.KindBlock {
		m.reset()
		if m.blockInFlight {
			m.logger.Warn("interaction: drop of %s ignored, previous block move in flight", drag.Event.Ref)
			return Result{Outcome: OutcomeIgnored}
		}
		candidate := drag.Candidate()
		m.blockInFlight = true
		m.blockOverride = &candidate
		return Result{Outcome: OutcomeBlockCommit, Commit: m.blockCommit(drag)}
	}

	m.pending = &PendingMove{
		Event:                drag.Event,
		OriginalTechnicianID: drag.OriginalTechnicianID,
		OriginalTime:         drag.OriginalTime,
		NewTechnicianID:      drag.CurrentTechnicianID,
		NewTime:              drag.CurrentTime,
		HasConflict:          drag.HasConflict,
	}
	m.press = nil
	m.drag = nil
	m.phase = PhaseAwaitingConfirmation
	pending := *m.pending
	return Result{Outcome: OutcomePending, Pending: &pending}
}

func (m *Machine) updateDrag(p grid.Point) {
	g := m.view.Geometry
	if technicianID, ok := g.TechnicianAt(p.X); ok {
		m.drag.CurrentTechnicianID = technicianID
	}

	step := time.Duration(m.cfg.SnapMinutes) * time.Minute
	delta := time.Duration(g.DeltaMinutes(p.Y-m.press.at.Y) * float64(time.Minute))
	m.drag.CurrentTime = grid.Snap(m.drag.OriginalTime.Add(delta), m.view.Day, step)

	conflicts := overlap.ConflictsWith(m.drag.Candidate(), m.others(), m.drag.Event.Ref)
	m.drag.HasConflict = len(conflicts) > 0
	refs := make([]domain.EventRef, 0, len(conflicts))
	for _, c := range conflicts {
		refs = append(refs, c.Ref)
	}
	m.drag.Conflicts = refs
}

func (m *Machine) others() []domain.CalendarEvent {
	placed := m.view.Events()
	out := make([]domain.CalendarEvent, 0, len(placed))
	for _, e := range placed {
		out = append(out, e.Event)
	}
	return out
}

func (m *Machine) selectionRange() SelectionRange {
	step := time.Duration(m.cfg.SnapMinutes) * time.Minute
	from, to := m.selecting.anchor, m.selecting.current
	if to.Before(from) {
		from, to = to, from
	}
	start := grid.SnapDown(from, m.view.Day, step)
	end := grid.SnapDown(to, m.view.Day, step).Add(step)
	if viewEnd := m.view.View.End(); end.After(viewEnd) {
		end = viewEnd
		if !start.Before(end) {
			start = end.Add(-step)
		}
	}
	return SelectionRange{
		TechnicianID: m.selecting.technicianID,
		Start:        start,
		End:          end,
	}
}

func (m *Machine) draggable(e domain.CalendarEvent) bool {
	if m.cfg.TouchMode || e.Locked {
		return false
	}
	switch e.Kind() {
	case domain.KindAppointment:
		return m.cfg.AppointmentsDraggable
	case domain.KindBlock:
		return m.cfg.BlocksDraggable
	default:
		return false
	}
}

// reset возвращает жест в Idle или в ожидание подтверждения, если перенос не решён
func (m *Machine) reset() {
	m.press = nil
	m.drag = nil
	m.selecting = nil
	if m.pending != nil {
		m.phase = PhaseAwaitingConfirmation
		return
	}
	m.phase = PhaseIdle
}

func distance(a, b grid.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
