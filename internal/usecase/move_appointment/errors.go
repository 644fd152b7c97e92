package move_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("move_appointment: appointment not found")

	// ErrAppointmentNotMovable возвращается для завершённых, отменённых записей и неявок
	ErrAppointmentNotMovable = errors.New("move_appointment: appointment cannot be moved")

	// ErrTechnicianNotFound возвращается, когда мастер назначения не найден
	ErrTechnicianNotFound = errors.New("move_appointment: technician not found")

	// ErrTechnicianUnavailable возвращается, когда мастер неактивен или работает в другом салоне
	ErrTechnicianUnavailable = errors.New("move_appointment: technician is not available at this location")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("move_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("move_appointment: internal error")
)
