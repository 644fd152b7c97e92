package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/m04kA/SMC-CalendarService/internal/calendar/grid"
	"github.com/m04kA/SMC-CalendarService/internal/calendar/interaction"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

type styleID int

const (
	styleEmpty styleID = iota
	styleHourLine
	styleOffHours
	styleSeparator
	styleAppointment
	styleAppointmentLocked
	styleBlock
	styleOptimistic
	styleConflict
	styleSelection
	styleNow
)

var palette = map[styleID]lipgloss.Style{
	styleEmpty:             lipgloss.NewStyle(),
	styleHourLine:          lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	styleOffHours:          lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
	styleSeparator:         lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	styleAppointment:       lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("25")),
	styleAppointmentLocked: lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Background(lipgloss.Color("239")),
	styleBlock:             lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("94")),
	styleOptimistic:        lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("221")),
	styleConflict:          lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("160")),
	styleSelection:         lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("114")),
	styleNow:               lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	modalStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

type cell struct {
	r rune
	s styleID
}

// canvas прямоугольник символов со стилями
type canvas struct {
	w, h  int
	cells [][]cell
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h, cells: make([][]cell, h)}
	for y := range c.cells {
		c.cells[y] = make([]cell, w)
		for x := range c.cells[y] {
			c.cells[y][x] = cell{r: ' ', s: styleEmpty}
		}
	}
	return c
}

func (c *canvas) set(x, y int, r rune, s styleID) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y][x] = cell{r: r, s: s}
}

func (c *canvas) fill(x0, y0, x1, y1 int, r rune, s styleID) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.set(x, y, r, s)
		}
	}
}

// text пишет строку, обрезая её по ширине
func (c *canvas) text(x, y, width int, str string, s styleID) {
	i := 0
	for _, r := range str {
		if i >= width {
			break
		}
		c.set(x+i, y, r, s)
		i++
	}
}

func (c *canvas) row(y int) string {
	var b strings.Builder
	start := 0
	for x := 1; x <= c.w; x++ {
		if x < c.w && c.cells[y][x].s == c.cells[y][start].s {
			continue
		}
		runes := make([]rune, 0, x-start)
		for i := start; i < x; i++ {
			runes = append(runes, c.cells[y][i].r)
		}
		b.WriteString(palette[c.cells[y][start].s].Render(string(runes)))
		start = x
	}
	return b.String()
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Салон %d · %s", m.locationID, m.date.Format("Mon 02.01.2006"))))
	if m.loading {
		b.WriteString(statusStyle.Render("  загрузка…"))
	}
	b.WriteString("\n")

	if m.view == nil {
		if m.err != nil {
			b.WriteString(errorStyle.Render(m.err.Error()))
			b.WriteString("\n")
		}
		b.WriteString(m.help.View(m.keys))
		return b.String()
	}

	b.WriteString(m.renderGrid())

	if pending := m.machine.Pending(); pending != nil {
		b.WriteString("\n")
		b.WriteString(m.renderPending(pending))
	}
	if m.titleInput.Focused() {
		b.WriteString("\n")
		b.WriteString(m.renderTitlePrompt())
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) renderGrid() string {
	colW := m.prefs.ColumnWidth
	pxRow := m.pixelsPerRow()
	rows := int(math.Round(m.view.Height / pxRow))
	c := newCanvas(colW*len(m.view.Columns), rows)

	for y := 0; y < rows; y++ {
		if y%m.prefs.RowsPerHour == 0 {
			c.fill(0, y, c.w, y+1, '┈', styleHourLine)
		}
	}

	drag := m.machine.Drag()
	for i, col := range m.view.Columns {
		x0 := i * colW
		for _, band := range col.OffHours {
			y0, y1 := rowSpan(band.Top, band.Height, pxRow, rows)
			c.fill(x0, y0, x0+colW, y1, '░', styleOffHours)
		}
		c.fill(x0+colW-1, 0, x0+colW, rows, '│', styleSeparator)

		for _, e := range col.Events {
			m.paintEvent(c, x0, colW, pxRow, rows, e, drag)
		}
	}

	if sel := m.machine.Selection(); sel != nil {
		if idx, ok := m.view.Geometry.ColumnOf(sel.TechnicianID); ok {
			top := m.view.View.OffsetOf(sel.Start)
			y0, y1 := rowSpan(top, m.view.View.OffsetOf(sel.End)-top, pxRow, rows)
			c.fill(idx*colW, y0, idx*colW+colW-1, y1, '▒', styleSelection)
			c.text(idx*colW, y0, colW-1, sel.Start.Format(domain.TimeFormat)+"–"+sel.End.Format(domain.TimeFormat), styleSelection)
		}
	}

	if m.view.NowTop != nil {
		y := int(*m.view.NowTop / pxRow)
		for x := 0; x < c.w; x++ {
			if y >= 0 && y < rows {
				switch c.cells[y][x].s {
				case styleEmpty, styleHourLine, styleOffHours:
					c.set(x, y, '─', styleNow)
				}
			}
		}
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", gutterWidth))
	for _, col := range m.view.Columns {
		b.WriteString(headerStyle.Render(pad(col.Technician.Name, colW)))
	}
	b.WriteString("\n")

	for y := 0; y < rows; y++ {
		label := strings.Repeat(" ", gutterWidth)
		if y%m.prefs.RowsPerHour == 0 {
			label = fmt.Sprintf("%02d:00 ", m.view.View.StartHour+y/m.prefs.RowsPerHour)
		}
		b.WriteString(statusStyle.Render(label))
		b.WriteString(c.row(y))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) paintEvent(c *canvas, x0, colW int, pxRow float64, rows int, e grid.PlacedEvent, drag *interaction.DragState) {
	left := x0 + int(math.Floor(e.Position.Left/domain.FullWidthPercent*float64(colW)))
	right := x0 + int(math.Ceil(e.Position.Right()/domain.FullWidthPercent*float64(colW)))
	if right > x0+colW-1 {
		right = x0 + colW - 1
	}
	if right <= left {
		right = left + 1
	}
	y0, y1 := rowSpan(e.Projection.Top, e.Projection.Height, pxRow, rows)

	style := styleAppointment
	switch {
	case drag != nil && drag.Event.Ref == e.Event.Ref && drag.HasConflict:
		style = styleConflict
	case e.Optimistic:
		style = styleOptimistic
	case e.Event.Kind() == domain.KindBlock:
		style = styleBlock
	case e.Event.Locked:
		style = styleAppointmentLocked
	}

	c.fill(left, y0, right, y1, ' ', style)
	c.text(left, y0, right-left, e.Event.Title(), style)
	if y1-y0 > 1 {
		c.text(left, y0+1, right-left, e.Event.Start.Format(domain.TimeFormat)+"–"+e.Event.End.Format(domain.TimeFormat), style)
	}
}

func (m *Model) renderPending(p *interaction.PendingMove) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Перенести запись «" + p.Event.Title() + "»?"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s → %s %s–%s",
		m.technicianName(p.OriginalTechnicianID), p.OriginalTime.Format(domain.TimeFormat),
		m.technicianName(p.NewTechnicianID), p.NewTime.Format(domain.TimeFormat), p.NewEnd().Format(domain.TimeFormat)))
	if p.HasConflict {
		b.WriteString("\n")
		b.WriteString(warnStyle.Render("пересекается с другими событиями мастера"))
	}

	mark := "[ ]"
	if m.notify {
		mark = "[x]"
	}
	b.WriteString("\n" + mark + " уведомить клиента (tab)")
	b.WriteString("\nenter: подтвердить, esc: вернуть на место")
	if p.LastError != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("не сохранено: " + errorMessage(p.LastError)))
	}
	return modalStyle.Render(b.String())
}

func (m *Model) renderTitlePrompt() string {
	sel := m.machine.Selection()
	header := "Новый блок"
	if sel != nil {
		header = fmt.Sprintf("Новый блок: %s %s–%s", m.technicianName(sel.TechnicianID),
			sel.Start.Format(domain.TimeFormat), sel.End.Format(domain.TimeFormat))
	}
	return modalStyle.Render(titleStyle.Render(header) + "\n" + m.titleInput.View() + "\nenter: создать, esc: отмена")
}

func (m *Model) technicianName(id int64) string {
	if m.day != nil {
		for _, t := range m.day.Technicians {
			if t.ID == id {
				return t.Name
			}
		}
	}
	return fmt.Sprintf("#%d", id)
}

// rowSpan строки терминала, занятые вертикальным отрезком. Не меньше одной строки
func rowSpan(top, height, pxRow float64, rows int) (int, int) {
	y0 := int(math.Floor(top / pxRow))
	y1 := int(math.Ceil((top + height) / pxRow))
	if y1 <= y0 {
		y1 = y0 + 1
	}
	if y0 < 0 {
		y0 = 0
	}
	if y1 > rows {
		y1 = rows
	}
	return y0, y1
}

func pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return string(runes[:width-1]) + " "
	}
	return s + strings.Repeat(" ", width-len(runes))
}
