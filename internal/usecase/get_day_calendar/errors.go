package get_day_calendar

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_day_calendar: invalid input data")

	// ErrInvalidHours возвращается при некорректном диапазоне часов сетки
	ErrInvalidHours = errors.New("get_day_calendar: invalid visible hours")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_day_calendar: internal error")
)
