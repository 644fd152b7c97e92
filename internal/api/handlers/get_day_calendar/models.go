package get_day_calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/calendar/grid"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
	getDayCalendar "github.com/m04kA/SMC-CalendarService/internal/usecase/get_day_calendar"
)

// DayCalendarResponse HTTP response model
type DayCalendarResponse struct {
	Date          string               `json:"date"`
	Timezone      string               `json:"timezone"`
	StartHour     int                  `json:"startHour"`
	EndHour       int                  `json:"endHour"`
	PixelsPerHour float64              `json:"pixelsPerHour"`
	ColumnWidth   float64              `json:"columnWidth"`
	Height        float64              `json:"height"`
	NowTop        *float64             `json:"nowTop,omitempty"`
	Technicians   []TechnicianResponse `json:"technicians"`
	Columns       []ColumnResponse     `json:"columns"`
}

type TechnicianResponse struct {
	ID           int64                `json:"id"`
	Name         string               `json:"name"`
	IsActive     bool                 `json:"isActive"`
	DisplayOrder int                  `json:"displayOrder"`
	Schedule     []WorkingDayResponse `json:"schedule"`
}

type WorkingDayResponse struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0 = воскресенье
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	IsWorking bool   `json:"isWorking"`
}

type ColumnResponse struct {
	TechnicianID int64           `json:"technicianId"`
	OffHours     []BandResponse  `json:"offHours"`
	Events       []EventResponse `json:"events"`
}

type BandResponse struct {
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

// EventResponse событие с вычисленным положением карточки
type EventResponse struct {
	Kind         string  `json:"kind"`
	ID           int64   `json:"id"`
	TechnicianID int64   `json:"technicianId"`
	Start        string  `json:"start"`
	End          string  `json:"end"`
	Title        string  `json:"title"`
	Locked       bool    `json:"locked"`
	Status       *string `json:"status,omitempty"`
	ClientName   *string `json:"clientName,omitempty"`
	ServiceName  *string `json:"serviceName,omitempty"`
	BlockType    *string `json:"blockType,omitempty"`
	Recurring    bool    `json:"recurring,omitempty"`

	Left         float64 `json:"left"`
	Width        float64 `json:"width"`
	ZIndex       int     `json:"zIndex"`
	IsDominant   bool    `json:"isDominant"`
	Top          float64 `json:"top"`
	Height       float64 `json:"height"`
	SpansNextDay bool    `json:"spansNextDay,omitempty"`
}

// ToUseCaseRequest собирает запрос use case из пути и query параметров
// Query params: date (YYYY-MM-DD), technicianIds (через запятую), startHour, endHour
func ToUseCaseRequest(locationID int64, query map[string][]string) (*getDayCalendar.Request, error) {
	get := func(key string) string {
		if v := query[key]; len(v) > 0 {
			return v[0]
		}
		return ""
	}

	date, err := time.Parse(domain.DateFormat, get("date"))
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}

	req := &getDayCalendar.Request{LocationID: locationID, Date: date}

	if raw := get("technicianIds"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("technicianIds: %w", err)
			}
			req.TechnicianIDs = append(req.TechnicianIDs, id)
		}
	}
	if req.StartHour, err = optionalInt(get("startHour")); err != nil {
		return nil, fmt.Errorf("startHour: %w", err)
	}
	if req.EndHour, err = optionalInt(get("endHour")); err != nil {
		return nil, fmt.Errorf("endHour: %w", err)
	}
	return req, nil
}

func optionalInt(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDayCalendar.Response) *DayCalendarResponse {
	view := resp.View
	out := &DayCalendarResponse{
		Date:          resp.Day.Format(domain.DateFormat),
		Timezone:      resp.Day.Location().String(),
		StartHour:     view.View.StartHour,
		EndHour:       view.View.EndHour,
		PixelsPerHour: view.View.PixelsPerHour,
		ColumnWidth:   view.Geometry.ColumnWidth,
		Height:        view.Height,
		NowTop:        view.NowTop,
		Technicians:   make([]TechnicianResponse, 0, len(view.Columns)),
		Columns:       make([]ColumnResponse, 0, len(view.Columns)),
	}

	for _, c := range view.Columns {
		out.Technicians = append(out.Technicians, technicianResponse(c.Technician))

		col := ColumnResponse{
			TechnicianID: c.Technician.ID,
			OffHours:     make([]BandResponse, 0, len(c.OffHours)),
			Events:       make([]EventResponse, 0, len(c.Events)),
		}
		for _, b := range c.OffHours {
			col.OffHours = append(col.OffHours, BandResponse{Top: b.Top, Height: b.Height})
		}
		for _, e := range c.Events {
			col.Events = append(col.Events, eventResponse(e))
		}
		out.Columns = append(out.Columns, col)
	}
	return out
}

func technicianResponse(t domain.Technician) TechnicianResponse {
	schedule := make([]WorkingDayResponse, 0, len(t.Schedule))
	for _, d := range t.Schedule {
		schedule = append(schedule, WorkingDayResponse{
			DayOfWeek: int(d.DayOfWeek),
			StartTime: d.StartTime.String(),
			EndTime:   d.EndTime.String(),
			IsWorking: d.IsWorking,
		})
	}
	return TechnicianResponse{
		ID:           t.ID,
		Name:         t.Name,
		IsActive:     t.IsActive,
		DisplayOrder: t.DisplayOrder,
		Schedule:     schedule,
	}
}

func eventResponse(p grid.PlacedEvent) EventResponse {
	e := p.Event
	out := EventResponse{
		Kind:         e.Kind().String(),
		ID:           e.ID(),
		TechnicianID: e.TechnicianID,
		Start:        e.Start.Format(time.RFC3339),
		End:          e.End.Format(time.RFC3339),
		Title:        e.Title(),
		Locked:       e.Locked,
		Left:         p.Position.Left,
		Width:        p.Position.Width,
		ZIndex:       p.Position.ZIndex,
		IsDominant:   p.Position.IsDominant,
		Top:          p.Projection.Top,
		Height:       p.Projection.Height,
		SpansNextDay: p.Projection.SpansNextDay,
	}

	if a, ok := e.Appointment(); ok {
		status := string(a.Status)
		out.Status = &status
		out.ClientName = &a.ClientName
		out.ServiceName = &a.ServiceName
	}
	if b, ok := e.Block(); ok {
		blockType := string(b.BlockType)
		out.BlockType = &blockType
		out.Recurring = b.IsRecurring()
	}
	return out
}
