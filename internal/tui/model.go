// Package tui терминальный дневной календарь салона: сетка мастеров,
// перетаскивание мышью, подтверждение переноса и создание блоков.
package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/m04kA/SMC-CalendarService/internal/calendar/grid"
	"github.com/m04kA/SMC-CalendarService/internal/calendar/interaction"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/internal/integrations/calendarapi"
)

const (
	gutterWidth = 6 // "08:00 "
	headerRows  = 2 // строка даты и строка имён мастеров

	// Условная ширина символа в пикселях сетки
	pixelsPerCell = 5.0

	defaultRequestTimeout = 10 * time.Second
)

// Options параметры запуска
type Options struct {
	Client     CalendarClient
	LocationID int64
	Date       time.Time
	Prefs      Preferences
	Logger     Logger
	Now        func() time.Time
}

type dayLoadedMsg struct {
	day *calendarapi.Day
	err error
}

type commitDoneMsg struct {
	kind interaction.CommitKind
	err  error
}

type tickMsg time.Time

// Model модель bubbletea
type Model struct {
	client     CalendarClient
	locationID int64
	date       time.Time
	prefs      Preferences
	logger     Logger
	now        func() time.Time

	machine *interaction.Machine
	day     *calendarapi.Day
	view    *grid.DayView

	notify     bool
	titleInput textinput.Model
	keys       keyMap
	help       help.Model

	width   int
	height  int
	loading bool
	status  string
	err     error
}

// New создаёт модель. Сетка загружается в Init
func New(opts Options) *Model {
	cfg := interaction.DefaultConfig()
	cfg.SnapMinutes = opts.Prefs.SnapMinutes
	cfg.TouchMode = opts.Prefs.TouchMode

	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = nopLogger{}
	}
	if opts.Date.IsZero() {
		opts.Date = opts.Now()
	}

	ti := textinput.New()
	ti.Placeholder = "название блока"
	ti.CharLimit = 255
	ti.Prompt = "› "

	return &Model{
		client:     opts.Client,
		locationID: opts.LocationID,
		date:       truncateDay(opts.Date),
		prefs:      opts.Prefs,
		logger:     opts.Logger,
		now:        opts.Now,
		machine:    interaction.NewMachine(cfg, opts.Client, opts.Logger),
		notify:     opts.Prefs.NotifyClient,
		titleInput: ti,
		keys:       defaultKeyMap(),
		help:       help.New(),
		loading:    true,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadDay(), tick())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case dayLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.status = "не удалось загрузить день"
			return m, nil
		}
		m.err = nil
		m.day = msg.day
		m.rebuild()
		return m, nil

	case commitDoneMsg:
		return m, m.onCommitDone(msg)

	case tickMsg:
		m.rebuild()
		return m, tick()

	case tea.MouseMsg:
		return m, m.onMouse(msg)

	case tea.KeyMsg:
		return m.onKey(msg)
	}
	return m, nil
}

func (m *Model) onMouse(msg tea.MouseMsg) tea.Cmd {
	if m.view == nil || m.titleInput.Focused() {
		return nil
	}
	p := m.toPoint(msg.X, msg.Y)

	var cmd tea.Cmd
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		m.machine.PointerDown(p)
	case tea.MouseActionMotion:
		m.machine.PointerMove(p)
	case tea.MouseActionRelease:
		cmd = m.onResult(m.machine.PointerUp(p))
	}
	m.rebuild()
	return cmd
}

func (m *Model) onResult(res interaction.Result) tea.Cmd {
	switch res.Outcome {
	case interaction.OutcomeClick:
		var cmd tea.Cmd
		res.Target.Dispatch(grid.ClickHandlers{
			OnAppointment: func(int64) { m.describe(res.Target.Event.Event) },
			OnBlock:       func(int64) { m.describe(res.Target.Event.Event) },
			OnEmptySlot: func(technicianID int64, at time.Time) {
				cmd = m.onEmptySlot(technicianID, at)
			},
		})
		return cmd
	case interaction.OutcomeBlockCommit:
		m.status = "сохраняю блок…"
		return m.run(res.Commit)
	case interaction.OutcomeIgnored:
		m.status = "предыдущий перенос блока ещё сохраняется"
	case interaction.OutcomePending:
		m.status = ""
	case interaction.OutcomeSelection:
		m.titleInput.SetValue("")
		return m.titleInput.Focus()
	}
	return nil
}

func (m *Model) describe(e domain.CalendarEvent) {
	m.status = fmt.Sprintf("%s, %s–%s", e.Title(), e.Start.Format(domain.TimeFormat), e.End.Format(domain.TimeFormat))
	if e.Locked {
		m.status += " (нельзя перенести)"
	}
}

// onEmptySlot в сенсорном режиме касание пустой ячейки открывает создание блока
// длиной в один шаг сетки
func (m *Model) onEmptySlot(technicianID int64, at time.Time) tea.Cmd {
	if !m.prefs.TouchMode {
		m.status = fmt.Sprintf("свободно в %s", at.Format(domain.TimeFormat))
		return nil
	}
	r, ok := m.machine.SelectSlot(technicianID, at)
	if !ok {
		return nil
	}
	m.status = fmt.Sprintf("новый блок %s–%s", r.Start.Format(domain.TimeFormat), r.End.Format(domain.TimeFormat))
	m.titleInput.SetValue("")
	return m.titleInput.Focus()
}

func (m *Model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.titleInput.Focused() {
		return m, m.onTitleKey(msg)
	}

	if m.machine.Pending() != nil {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			commit, err := m.machine.Confirm(m.notify)
			if err != nil || commit == nil {
				return m, nil
			}
			m.status = "сохраняю перенос…"
			return m, m.run(commit)
		case key.Matches(msg, m.keys.ToggleNotify):
			m.notify = !m.notify
			return m, nil
		case key.Matches(msg, m.keys.Cancel), msg.String() == "n":
			if err := m.machine.Discard(); err != nil {
				m.status = "перенос ещё сохраняется"
				return m, nil
			}
			m.status = "перенос отменён"
			m.rebuild()
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Cancel):
		if m.machine.Cancel() {
			m.rebuild()
		}
		return m, nil
	case key.Matches(msg, m.keys.PrevDay):
		return m, m.switchDay(m.date.AddDate(0, 0, -1))
	case key.Matches(msg, m.keys.NextDay):
		return m, m.switchDay(m.date.AddDate(0, 0, 1))
	case key.Matches(msg, m.keys.Today):
		return m, m.switchDay(truncateDay(m.now()))
	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, m.loadDay()
	}
	return m, nil
}

func (m *Model) onTitleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.titleInput.Blur()
		m.machine.ClearSelection()
		m.rebuild()
		return nil
	case tea.KeyEnter:
		commit, err := m.machine.CreateBlock(m.titleInput.Value())
		if errors.Is(err, interaction.ErrEmptyTitle) {
			m.status = "введите название блока"
			return nil
		}
		if err != nil || commit == nil {
			return nil
		}
		m.titleInput.Blur()
		m.status = "создаю блок…"
		return m.run(commit)
	}

	var cmd tea.Cmd
	m.titleInput, cmd = m.titleInput.Update(msg)
	return cmd
}

func (m *Model) onCommitDone(msg commitDoneMsg) tea.Cmd {
	if msg.err != nil {
		m.logger.Warn("tui: %s failed: %v", msg.kind, msg.err)
		switch msg.kind {
		case interaction.CommitMoveBlock:
			m.status = "блок не перенесён: " + errorMessage(msg.err)
		case interaction.CommitMoveAppointment:
			m.status = "запись не перенесена"
		case interaction.CommitCreateBlock:
			m.status = "блок не создан: " + errorMessage(msg.err)
			if m.machine.Selection() != nil {
				return m.titleInput.Focus()
			}
		}
		m.rebuild()
		return m.loadDay()
	}

	switch msg.kind {
	case interaction.CommitMoveBlock:
		m.status = "блок перенесён"
	case interaction.CommitMoveAppointment:
		m.status = "запись перенесена"
	case interaction.CommitCreateBlock:
		m.status = "блок создан"
	}
	return m.loadDay()
}

// run выполняет сохранение вне цикла обновления
func (m *Model) run(commit *interaction.Commit) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), defaultRequestTimeout)
		defer cancel()
		return commitDoneMsg{kind: commit.Kind, err: commit.Run(ctx)}
	}
}

func (m *Model) loadDay() tea.Cmd {
	q := calendarapi.DayQuery{
		LocationID:    m.locationID,
		Date:          m.date,
		TechnicianIDs: m.prefs.Technicians,
		StartHour:     m.prefs.StartHour,
		EndHour:       m.prefs.EndHour,
	}
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), defaultRequestTimeout)
		defer cancel()
		day, err := client.GetDay(ctx, q)
		return dayLoadedMsg{day: day, err: err}
	}
}

func (m *Model) switchDay(date time.Time) tea.Cmd {
	if m.machine.Phase() != interaction.PhaseIdle {
		m.status = "завершите текущее действие"
		return nil
	}
	m.date = date
	m.loading = true
	return m.loadDay()
}

// rebuild пересобирает сетку с учётом оптимистичных положений
func (m *Model) rebuild() {
	if m.day == nil {
		return
	}
	m.view = grid.Compose(m.day.Technicians, m.day.Events, grid.Options{
		Day:           m.day.Date,
		StartHour:     m.day.StartHour,
		EndHour:       m.day.EndHour,
		PixelsPerHour: domain.DefaultPixelsPerHour,
		ColumnWidth:   float64(m.prefs.ColumnWidth) * pixelsPerCell,
		Now:           m.now().In(m.day.Date.Location()),
		TechnicianIDs: m.prefs.Technicians,
		Overrides:     m.machine.Overrides(),
	})
	m.machine.SetView(m.view)
}

func (m *Model) pixelsPerRow() float64 {
	return domain.DefaultPixelsPerHour / float64(m.prefs.RowsPerHour)
}

// toPoint переводит ячейку терминала в координаты сетки (центр ячейки)
func (m *Model) toPoint(x, y int) grid.Point {
	return grid.Point{
		X: (float64(x-gutterWidth) + 0.5) * pixelsPerCell,
		Y: (float64(y-headerRows) + 0.5) * m.pixelsPerRow(),
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func truncateDay(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, t.Location())
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, calendarapi.ErrRejected):
		return "отклонено сервером"
	case errors.Is(err, calendarapi.ErrNotFound):
		return "событие не найдено"
	case errors.Is(err, calendarapi.ErrInvalidRequest):
		return "некорректные данные"
	default:
		return "сервис недоступен"
	}
}
