package create_block

import "errors"

var (
	// ErrTechnicianNotFound возвращается, когда мастер не найден
	ErrTechnicianNotFound = errors.New("create_block: technician not found")

	// ErrTechnicianInactive возвращается, когда мастер неактивен
	ErrTechnicianInactive = errors.New("create_block: technician is inactive")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_block: invalid input data")

	// ErrInvalidRecurrence возвращается при неразборчивом правиле повторения
	ErrInvalidRecurrence = errors.New("create_block: invalid recurrence rule")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_block: internal error")
)
