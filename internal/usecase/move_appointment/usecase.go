package move_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/appointment"
	technicianRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/technician"
	"github.com/m04kA/SMC-CalendarService/internal/integrations/notificationservice"
)

const (
	resultOK       = "ok"
	resultRejected = "rejected"
	resultError    = "error"
	resultSkipped  = "skipped"
	resultDegraded = "degraded"
)

// UseCase use case переноса записи клиента
type UseCase struct {
	appointmentRepo AppointmentRepository
	technicianRepo  TechnicianRepository
	conflicts       ConflictFinder
	notifier        NotificationClient
	txManager       TransactionManager
	metrics         MoveRecorder
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	technicianRepo TechnicianRepository,
	conflicts ConflictFinder,
	notifier NotificationClient,
	txManager TransactionManager,
	metrics MoveRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		technicianRepo:  technicianRepo,
		conflicts:       conflicts,
		notifier:        notifier,
		txManager:       txManager,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute переносит запись к мастеру на новое время.
// Пересечения на новом месте не запрещают перенос и возвращаются в ответе.
// SMS клиенту отправляется после фиксации транзакции; его недоставка перенос не откатывает
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("MoveAppointment: appointment=%d, technician=%d, start=%s, end=%s, notify=%t",
		req.AppointmentID, req.TechnicianID, req.StartTime.Format("2006-01-02 15:04"), req.EndTime.Format("15:04"), req.NotifyClient)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("MoveAppointment: validation failed: %v", err)
		uc.metrics.RecordMove(domain.KindAppointment.String(), resultRejected)
		return nil, err
	}

	var (
		moved       *domain.Appointment
		technician  *domain.Technician
		conflictIDs []domain.EventRef
	)

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Запись блокируется до конца транзакции
		appointment, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("MoveAppointment: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("MoveAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		if !appointment.CanBeMoved() {
			uc.logger.Warn("MoveAppointment: appointment id=%d has status %s", appointment.ID, appointment.Status)
			return fmt.Errorf("%w: status %s", ErrAppointmentNotMovable, appointment.Status)
		}

		// 2. Мастер назначения должен работать в том же салоне
		technician, err = uc.technicianRepo.GetByID(txCtx, req.TechnicianID)
		if err != nil {
			if errors.Is(err, technicianRepo.ErrTechnicianNotFound) {
				uc.logger.Warn("MoveAppointment: technician id=%d not found", req.TechnicianID)
				return ErrTechnicianNotFound
			}
			uc.logger.Error("MoveAppointment: failed to get technician id=%d: %v", req.TechnicianID, err)
			return fmt.Errorf("%w: failed to get technician: %v", ErrInternal, err)
		}
		if !technician.IsActive || technician.LocationID != appointment.LocationID {
			uc.logger.Warn("MoveAppointment: technician id=%d is not available at location=%d", technician.ID, appointment.LocationID)
			return ErrTechnicianUnavailable
		}

		// 3. Пересечения на новом месте (рекомендательные)
		candidate := domain.FromAppointment(appointment)
		candidate.TechnicianID = req.TechnicianID
		candidate.Start = req.StartTime
		candidate.End = req.EndTime

		conflictIDs, err = uc.conflicts.Conflicts(txCtx, candidate)
		if err != nil {
			uc.logger.Error("MoveAppointment: failed to check conflicts: %v", err)
			return fmt.Errorf("%w: failed to check conflicts: %v", ErrInternal, err)
		}

		// 4. Сохраняем перенос
		if err := uc.appointmentRepo.Reschedule(txCtx, appointment.ID, req.TechnicianID, req.StartTime, req.EndTime); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			uc.logger.Error("MoveAppointment: failed to reschedule appointment id=%d: %v", appointment.ID, err)
			return fmt.Errorf("%w: failed to reschedule: %v", ErrInternal, err)
		}

		appointment.TechnicianID = req.TechnicianID
		appointment.StartTime = req.StartTime
		appointment.EndTime = req.EndTime
		moved = appointment
		return nil
	})

	if err != nil {
		uc.metrics.RecordMove(domain.KindAppointment.String(), moveResult(err))
		return nil, err
	}
	uc.metrics.RecordMove(domain.KindAppointment.String(), resultOK)

	if len(conflictIDs) > 0 {
		uc.logger.Warn("MoveAppointment: appointment id=%d now overlaps %v", moved.ID, conflictIDs)
	}

	notified := false
	if req.NotifyClient {
		notified = uc.notify(ctx, moved, technician)
	}

	uc.logger.Info("MoveAppointment: appointment id=%d moved to technician=%d at %s, conflicts=%d, notified=%t",
		moved.ID, moved.TechnicianID, moved.StartTime.Format("2006-01-02 15:04"), len(conflictIDs), notified)

	return &Response{
		Appointment:    moved,
		Conflicts:      conflictIDs,
		ClientNotified: notified,
	}, nil
}

// notify отправляет SMS о переносе. Ошибки не пробрасываются: перенос уже сохранён
func (uc *UseCase) notify(ctx context.Context, a *domain.Appointment, technician *domain.Technician) bool {
	if a.ClientPhone == nil || *a.ClientPhone == "" {
		uc.logger.Warn("MoveAppointment: appointment id=%d has no client phone, SMS skipped", a.ID)
		uc.metrics.RecordNotification(resultSkipped)
		return false
	}

	err := uc.notifier.SendRescheduleWithGracefulDegradation(ctx, notificationservice.RescheduleNotice{
		AppointmentID:  a.ID,
		Phone:          *a.ClientPhone,
		ClientName:     a.ClientName,
		ServiceName:    a.ServiceName,
		TechnicianName: technician.Name,
		NewStart:       a.StartTime,
	})
	switch {
	case err == nil:
		uc.metrics.RecordNotification(resultOK)
		return true
	case errors.Is(err, notificationservice.ErrServiceDegraded):
		uc.metrics.RecordNotification(resultDegraded)
	default:
		uc.metrics.RecordNotification(resultRejected)
	}
	uc.logger.Error("MoveAppointment: client of appointment id=%d not notified: %v", a.ID, err)
	return false
}

func moveResult(err error) string {
	if errors.Is(err, ErrInternal) {
		return resultError
	}
	return resultRejected
}
