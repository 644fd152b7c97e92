package notificationservice

import "errors"

var (
	// ErrInvalidRequest возвращается, когда сервис отклонил уведомление (неверный телефон, шаблон)
	ErrInvalidRequest = errors.New("notificationservice client: invalid request")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notificationservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("notificationservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation.
	// Перенос записи при этом уже сохранён, клиент просто не получит SMS
	ErrServiceDegraded = errors.New("notificationservice unavailable: graceful degradation applied")
)
