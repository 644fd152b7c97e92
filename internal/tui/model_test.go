package tui

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CalendarService/internal/calendar/interaction"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/internal/integrations/calendarapi"
	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

var day = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

type call struct {
	op           string
	id           int64
	technicianID int64
	title        string
	start, end   time.Time
	notify       bool
}

type fakeClient struct {
	mu    sync.Mutex
	calls []call
	err   error
}

func (f *fakeClient) GetDay(_ context.Context, _ calendarapi.DayQuery) (*calendarapi.Day, error) {
	return testDay(), nil
}

func (f *fakeClient) MoveAppointment(_ context.Context, id, technicianID int64, start, end time.Time, notify bool) error {
	f.record(call{op: "move_appointment", id: id, technicianID: technicianID, start: start, end: end, notify: notify})
	return f.err
}

func (f *fakeClient) MoveBlock(_ context.Context, id, technicianID int64, start, end time.Time) error {
	f.record(call{op: "move_block", id: id, technicianID: technicianID, start: start, end: end})
	return f.err
}

func (f *fakeClient) CreateBlock(_ context.Context, technicianID int64, title string, start, end time.Time) error {
	f.record(call{op: "create_block", technicianID: technicianID, title: title, start: start, end: end})
	return f.err
}

func (f *fakeClient) record(c call) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

func testDay() *calendarapi.Day {
	schedule := []domain.WorkingDay{{DayOfWeek: time.Monday, StartTime: types.TimeString("09:00"), EndTime: types.TimeString("18:00"), IsWorking: true}}
	return &calendarapi.Day{
		Date:      day,
		StartHour: 8,
		EndHour:   20,
		Technicians: []domain.Technician{
			{ID: 1, Name: "Анна", IsActive: true, DisplayOrder: 1, Schedule: schedule},
			{ID: 2, Name: "Ольга", IsActive: true, DisplayOrder: 2, Schedule: schedule},
		},
		Events: []domain.CalendarEvent{
			domain.FromAppointment(&domain.Appointment{ID: 10, TechnicianID: 1, ClientName: "Мария",
				StartTime: at(9, 0), EndTime: at(10, 0), Status: domain.AppointmentConfirmed}),
			domain.FromBlock(&domain.TechnicianBlock{ID: 20, TechnicianID: 1, Title: "Обед", BlockType: domain.BlockBreak,
				StartTime: at(13, 0), EndTime: at(14, 0), IsActive: true}),
		},
	}
}

// ячейка терминала: столбец 5 колонки мастера и строка времени (4 строки в час, сетка с 8:00)
func cellOf(column int, h, m int) (int, int) {
	x := gutterWidth + column*24 + 5
	y := headerRows + (h-8)*4 + m/15
	return x, y
}

func newTestModel(t *testing.T, client *fakeClient) *Model {
	t.Helper()
	m := New(Options{
		Client:     client,
		LocationID: 3,
		Date:       day,
		Prefs:      DefaultPreferences(),
		Now:        func() time.Time { return at(7, 0) },
	})
	m.Update(dayLoadedMsg{day: testDay()})
	require.NotNil(t, m.view)
	return m
}

func mouse(m *Model, action tea.MouseAction, x, y int) tea.Cmd {
	_, cmd := m.Update(tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft})
	return cmd
}

func runCmd(t *testing.T, m *Model, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	require.NotNil(t, cmd)
	_, next := m.Update(cmd())
	return next
}

func TestModel_AppointmentDragAwaitsConfirmation(t *testing.T) {
	client := &fakeClient{}
	m := newTestModel(t, client)

	x, y := cellOf(0, 9, 0)
	mouse(m, tea.MouseActionPress, x, y)
	mouse(m, tea.MouseActionMotion, x, y+4)
	assert.Equal(t, interaction.PhaseDragging, m.machine.Phase())

	cmd := mouse(m, tea.MouseActionRelease, x, y+4)
	assert.Nil(t, cmd)

	pending := m.machine.Pending()
	require.NotNil(t, pending)
	assert.Equal(t, at(10, 0), pending.NewTime)
	assert.Contains(t, m.View(), "Перенести запись")

	// оптимистичное положение до подтверждения
	placed, ok := m.view.Find(domain.EventRef{Kind: domain.KindAppointment, ID: 10})
	require.True(t, ok)
	assert.True(t, placed.Optimistic)
	assert.Equal(t, at(10, 0), placed.Event.Start)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Nil(t, cmd)
	assert.False(t, m.notify)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next := runCmd(t, m, cmd)
	assert.NotNil(t, next, "reload after commit")

	require.Len(t, client.calls, 1)
	assert.Equal(t, call{op: "move_appointment", id: 10, technicianID: 1, start: at(10, 0), end: at(11, 0), notify: false}, client.calls[0])
	assert.Nil(t, m.machine.Pending())
	assert.Equal(t, "запись перенесена", m.status)
}

func TestModel_DiscardPending(t *testing.T) {
	client := &fakeClient{}
	m := newTestModel(t, client)

	x, y := cellOf(0, 9, 0)
	mouse(m, tea.MouseActionPress, x, y)
	mouse(m, tea.MouseActionMotion, x, y+2)
	mouse(m, tea.MouseActionRelease, x, y+2)
	require.NotNil(t, m.machine.Pending())

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.machine.Pending())
	assert.Empty(t, client.calls)

	placed, ok := m.view.Find(domain.EventRef{Kind: domain.KindAppointment, ID: 10})
	require.True(t, ok)
	assert.False(t, placed.Optimistic)
	assert.Equal(t, at(9, 0), placed.Event.Start)
}

func TestModel_BlockDropCommitsImmediately(t *testing.T) {
	client := &fakeClient{}
	m := newTestModel(t, client)

	x, y := cellOf(0, 13, 0)
	x2, _ := cellOf(1, 13, 0)
	mouse(m, tea.MouseActionPress, x, y)
	mouse(m, tea.MouseActionMotion, x2, y)
	cmd := mouse(m, tea.MouseActionRelease, x2, y)
	require.NotNil(t, cmd)
	assert.True(t, m.machine.BlockInFlight())

	runCmd(t, m, cmd)
	require.Len(t, client.calls, 1)
	assert.Equal(t, call{op: "move_block", id: 20, technicianID: 2, start: at(13, 0), end: at(14, 0)}, client.calls[0])
	assert.False(t, m.machine.BlockInFlight())
	assert.Equal(t, "блок перенесён", m.status)
}

func TestModel_BlockDropRejected(t *testing.T) {
	client := &fakeClient{err: calendarapi.ErrRejected}
	m := newTestModel(t, client)

	x, y := cellOf(0, 13, 0)
	mouse(m, tea.MouseActionPress, x, y)
	mouse(m, tea.MouseActionMotion, x, y+4)
	runCmd(t, m, mouse(m, tea.MouseActionRelease, x, y+4))

	assert.Equal(t, "блок не перенесён: отклонено сервером", m.status)
	placed, ok := m.view.Find(domain.EventRef{Kind: domain.KindBlock, ID: 20})
	require.True(t, ok)
	assert.Equal(t, at(13, 0), placed.Event.Start)
}

func TestModel_SelectionCreatesBlock(t *testing.T) {
	client := &fakeClient{}
	m := newTestModel(t, client)

	x, y := cellOf(1, 15, 0)
	mouse(m, tea.MouseActionPress, x, y)
	mouse(m, tea.MouseActionMotion, x, y+1)
	mouse(m, tea.MouseActionRelease, x, y+1)
	require.True(t, m.titleInput.Focused())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, "введите название блока", m.status)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Врач")})
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	runCmd(t, m, cmd)

	require.Len(t, client.calls, 1)
	assert.Equal(t, call{op: "create_block", technicianID: 2, title: "Врач", start: at(15, 0), end: at(15, 30)}, client.calls[0])
	assert.Nil(t, m.machine.Selection())
}

func TestModel_TouchTapCreatesBlock(t *testing.T) {
	client := &fakeClient{}
	prefs := DefaultPreferences()
	prefs.TouchMode = true
	m := New(Options{
		Client:     client,
		LocationID: 3,
		Date:       day,
		Prefs:      prefs,
		Now:        func() time.Time { return at(7, 0) },
	})
	m.Update(dayLoadedMsg{day: testDay()})
	require.NotNil(t, m.view)

	x, y := cellOf(1, 15, 0)
	mouse(m, tea.MouseActionPress, x, y)
	mouse(m, tea.MouseActionRelease, x, y)

	require.True(t, m.titleInput.Focused())
	assert.Equal(t, "новый блок 15:00–15:15", m.status)
	selection := m.machine.Selection()
	require.NotNil(t, selection)
	assert.Equal(t, interaction.SelectionRange{TechnicianID: 2, Start: at(15, 0), End: at(15, 15)}, *selection)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Перерыв")})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	runCmd(t, m, cmd)

	require.Len(t, client.calls, 1)
	assert.Equal(t, call{op: "create_block", technicianID: 2, title: "Перерыв", start: at(15, 0), end: at(15, 15)}, client.calls[0])
	assert.Nil(t, m.machine.Selection())

	t.Run("tap on event only describes it", func(t *testing.T) {
		x, y := cellOf(0, 9, 0)
		mouse(m, tea.MouseActionPress, x, y)
		mouse(m, tea.MouseActionRelease, x, y)

		assert.Equal(t, "Мария, 09:00–10:00", m.status)
		assert.False(t, m.titleInput.Focused())
		assert.Nil(t, m.machine.Selection())
	})
}

func TestModel_EscapeCancelsDrag(t *testing.T) {
	client := &fakeClient{}
	m := newTestModel(t, client)

	x, y := cellOf(0, 9, 0)
	mouse(m, tea.MouseActionPress, x, y)
	mouse(m, tea.MouseActionMotion, x, y+3)
	require.Equal(t, interaction.PhaseDragging, m.machine.Phase())

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, interaction.PhaseIdle, m.machine.Phase())
	assert.Nil(t, mouse(m, tea.MouseActionRelease, x, y+3))
	assert.Nil(t, m.machine.Pending())
	assert.Empty(t, client.calls)
}

func TestModel_ClickShowsEvent(t *testing.T) {
	m := newTestModel(t, &fakeClient{})

	x, y := cellOf(0, 9, 0)
	mouse(m, tea.MouseActionPress, x, y)
	mouse(m, tea.MouseActionRelease, x, y)
	assert.Equal(t, "Мария, 09:00–10:00", m.status)
}

func TestModel_ViewRendersColumns(t *testing.T) {
	m := newTestModel(t, &fakeClient{})
	out := m.View()
	assert.Contains(t, out, "Анна")
	assert.Contains(t, out, "Ольга")
	assert.Contains(t, out, "08:00")
	assert.Contains(t, out, "Обед")
}
