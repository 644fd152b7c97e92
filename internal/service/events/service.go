// Package events собирает события календаря (записи и блоки, включая вхождения
// повторяющихся блоков) из хранилища и считает конфликты кандидата на перенос.
package events

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/calendar/overlap"
	"github.com/m04kA/SMC-CalendarService/internal/calendar/recurrence"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/appointment"
	blockRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/block"
)

// Query параметры выборки событий, пересекающихся с окном [From, To)
type Query struct {
	LocationID    *int64
	TechnicianIDs []int64
	From          time.Time
	To            time.Time
}

// Service сервис событий календаря
type Service struct {
	appointmentRepo AppointmentRepository
	blockRepo       BlockRepository
	location        *time.Location
	logger          Logger
}

// NewService создает новый экземпляр сервиса событий.
// location часовой пояс салона, в нём разворачиваются повторяющиеся блоки
func NewService(
	appointmentRepo AppointmentRepository,
	blockRepo BlockRepository,
	location *time.Location,
	logger Logger,
) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		appointmentRepo: appointmentRepo,
		blockRepo:       blockRepo,
		location:        location,
		logger:          logger,
	}
}

// Load возвращает записи и блоки окна в виде событий календаря: сначала записи, затем блоки
func (s *Service) Load(ctx context.Context, q Query) ([]domain.CalendarEvent, error) {
	if !q.From.Before(q.To) {
		return nil, ErrInvalidRange
	}

	appointments, err := s.appointmentRepo.List(ctx, appointmentRepo.Filter{
		LocationID:    q.LocationID,
		TechnicianIDs: q.TechnicianIDs,
		From:          q.From,
		To:            q.To,
	})
	if err != nil {
		s.logger.Error("LoadEvents: failed to list appointments: %v", err)
		return nil, fmt.Errorf("%w: Load - list appointments: %v", ErrInternal, err)
	}

	blocks, err := s.blockRepo.List(ctx, blockRepo.Filter{
		TechnicianIDs: q.TechnicianIDs,
		From:          q.From,
		To:            q.To,
	})
	if err != nil {
		s.logger.Error("LoadEvents: failed to list blocks: %v", err)
		return nil, fmt.Errorf("%w: Load - list blocks: %v", ErrInternal, err)
	}

	plain := make([]domain.TechnicianBlock, len(blocks))
	for i, b := range blocks {
		plain[i] = *b
	}
	occurrences := recurrence.ExpandAll(plain, q.From, q.To, s.location, s.logger)

	out := make([]domain.CalendarEvent, 0, len(appointments)+len(occurrences))
	for _, a := range appointments {
		out = append(out, domain.FromAppointment(a))
	}
	for i := range occurrences {
		out = append(out, domain.FromBlock(&occurrences[i]))
	}

	return out, nil
}

// Conflicts возвращает события мастера, пересекающиеся с кандидатом (сам кандидат
// не учитывается). Конфликт носит рекомендательный характер и перенос не запрещает
func (s *Service) Conflicts(ctx context.Context, candidate domain.CalendarEvent) ([]domain.EventRef, error) {
	if !candidate.Start.Before(candidate.End) {
		return []domain.EventRef{}, nil
	}

	existing, err := s.Load(ctx, Query{
		TechnicianIDs: []int64{candidate.TechnicianID},
		From:          candidate.Start,
		To:            candidate.End,
	})
	if err != nil {
		return nil, err
	}

	conflicts := overlap.ConflictsWith(candidate, existing, candidate.Ref)
	refs := make([]domain.EventRef, 0, len(conflicts))
	for _, c := range conflicts {
		refs = append(refs, c.Ref)
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Less(refs[j]) })

	return refs, nil
}
