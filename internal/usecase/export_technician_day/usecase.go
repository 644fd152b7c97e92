package export_technician_day

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/calendar/icsexport"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
	technicianRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/technician"
	"github.com/m04kA/SMC-CalendarService/internal/service/events"
)

// UseCase use case выгрузки дня мастера в iCalendar
type UseCase struct {
	technicianRepo TechnicianRepository
	events         EventLoader
	location       *time.Location
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	technicianRepo TechnicianRepository,
	events EventLoader,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		technicianRepo: technicianRepo,
		events:         events,
		location:       location,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute собирает события дня мастера и сериализует их в .ics
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.TechnicianID <= 0 {
		return nil, fmt.Errorf("%w: technician_id must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	technician, err := uc.technicianRepo.GetByID(ctx, req.TechnicianID)
	if err != nil {
		if errors.Is(err, technicianRepo.ErrTechnicianNotFound) {
			return nil, ErrTechnicianNotFound
		}
		uc.logger.Error("ExportTechnicianDay: failed to get technician id=%d: %v", req.TechnicianID, err)
		return nil, fmt.Errorf("%w: failed to get technician: %v", ErrInternal, err)
	}

	y, m, d := req.Date.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, uc.location)

	dayEvents, err := uc.events.Load(ctx, events.Query{
		TechnicianIDs: []int64{technician.ID},
		From:          day,
		To:            day.AddDate(0, 0, 1),
	})
	if err != nil {
		uc.logger.Error("ExportTechnicianDay: failed to load events: %v", err)
		return nil, fmt.Errorf("%w: failed to load events: %v", ErrInternal, err)
	}

	body := icsexport.Export(*technician, dayEvents, icsexport.Options{Now: uc.timeProvider.Now()})

	uc.logger.Info("ExportTechnicianDay: technician=%d, date=%s, events=%d",
		technician.ID, day.Format(domain.DateFormat), len(dayEvents))

	return &Response{
		Filename: fmt.Sprintf("technician-%d-%s.ics", technician.ID, day.Format(domain.DateFormat)),
		Body:     body,
		Events:   len(dayEvents),
	}, nil
}
