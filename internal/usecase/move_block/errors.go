package move_block

import "errors"

var (
	// ErrBlockNotFound возвращается, когда блок не найден или снят
	ErrBlockNotFound = errors.New("move_block: block not found")

	// ErrRecurringBlock возвращается при попытке перенести повторяющийся блок
	ErrRecurringBlock = errors.New("move_block: recurring block cannot be moved")

	// ErrTechnicianNotFound возвращается, когда мастер назначения не найден
	ErrTechnicianNotFound = errors.New("move_block: technician not found")

	// ErrTechnicianUnavailable возвращается, когда мастер неактивен или работает в другом салоне
	ErrTechnicianUnavailable = errors.New("move_block: technician is not available at this location")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("move_block: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("move_block: internal error")
)
