package events

import "errors"

var (
	// ErrInvalidRange возвращается, когда окно выборки пустое или перевёрнуто
	ErrInvalidRange = errors.New("events: invalid time range")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("events: internal error")
)
