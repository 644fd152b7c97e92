package get_day_calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/calendar/grid"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/internal/service/events"
)

// UseCase use case получения дневного календаря салона
type UseCase struct {
	technicianRepo TechnicianRepository
	events         EventLoader
	metrics        LayoutObserver
	settings       Settings
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	technicianRepo TechnicianRepository,
	events EventLoader,
	metrics LayoutObserver,
	settings Settings,
	logger Logger,
) *UseCase {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	if settings.PixelsPerHour <= 0 {
		settings.PixelsPerHour = domain.DefaultPixelsPerHour
	}
	if settings.ColumnWidth <= 0 {
		settings.ColumnWidth = domain.FullWidthPercent
	}
	return &UseCase{
		technicianRepo: technicianRepo,
		events:         events,
		metrics:        metrics,
		settings:       settings,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute загружает мастеров и события дня и раскладывает их по сетке
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDayCalendar: location=%d, date=%s, technicians=%v",
		req.LocationID, req.Date.Format(domain.DateFormat), req.TechnicianIDs)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetDayCalendar: validation failed: %v", err)
		return nil, err
	}

	startHour, endHour := uc.settings.StartHour, uc.settings.EndHour
	if req.StartHour != nil {
		startHour = *req.StartHour
	}
	if req.EndHour != nil {
		endHour = *req.EndHour
	}
	if err := validateHours(startHour, endHour); err != nil {
		uc.logger.Warn("GetDayCalendar: %v", err)
		return nil, err
	}

	y, m, d := req.Date.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, uc.settings.Location)

	technicians, err := uc.technicianRepo.ListByLocation(ctx, req.LocationID, false)
	if err != nil {
		uc.logger.Error("GetDayCalendar: failed to list technicians for location=%d: %v", req.LocationID, err)
		return nil, fmt.Errorf("%w: failed to list technicians: %v", ErrInternal, err)
	}

	ids := make([]int64, 0, len(technicians))
	for _, t := range technicians {
		ids = append(ids, t.ID)
	}

	dayEvents := make([]domain.CalendarEvent, 0)
	if len(ids) > 0 {
		dayEvents, err = uc.events.Load(ctx, events.Query{
			LocationID:    &req.LocationID,
			TechnicianIDs: ids,
			From:          day,
			To:            day.AddDate(0, 0, 1),
		})
		if err != nil {
			uc.logger.Error("GetDayCalendar: failed to load events: %v", err)
			return nil, fmt.Errorf("%w: failed to load events: %v", ErrInternal, err)
		}
	}

	started := time.Now()
	view := grid.Compose(technicians, dayEvents, grid.Options{
		Day:           day,
		StartHour:     startHour,
		EndHour:       endHour,
		PixelsPerHour: uc.settings.PixelsPerHour,
		ColumnWidth:   uc.settings.ColumnWidth,
		Now:           uc.timeProvider.Now().In(uc.settings.Location),
		TechnicianIDs: req.TechnicianIDs,
	})
	uc.metrics.ObserveLayout(time.Since(started))

	uc.logger.Info("GetDayCalendar: location=%d, date=%s: %d technicians, %d events",
		req.LocationID, day.Format(domain.DateFormat), len(view.Columns), len(dayEvents))

	return &Response{
		Day:         day,
		Technicians: technicians,
		Events:      dayEvents,
		View:        view,
	}, nil
}
