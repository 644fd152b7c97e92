package calendarapi

import "errors"

var (
	// ErrInvalidRequest возвращается при ответе 400
	ErrInvalidRequest = errors.New("calendarapi client: invalid request")

	// ErrNotFound возвращается при ответе 404 (событие или мастер удалены)
	ErrNotFound = errors.New("calendarapi client: not found")

	// ErrRejected возвращается при ответе 409: событие нельзя перенести
	ErrRejected = errors.New("calendarapi client: rejected")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("calendarapi client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("calendarapi client: invalid response")
)
