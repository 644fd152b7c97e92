package export_technician_day

import "time"

// Request модель запроса выгрузки дня мастера
type Request struct {
	TechnicianID int64
	Date         time.Time
}

// Response содержимое файла .ics
type Response struct {
	Filename string
	Body     string
	Events   int
}
