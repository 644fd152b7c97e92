package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Параметры раскладки пересекающихся событий (проценты ширины колонки)
const (
	FullWidthPercent       = 100.0
	PairFrontLeftPercent   = 50.0
	MaxCascadeOffset       = 15.0
	CascadeSpreadPercent   = 50.0
	MinCardWidthPercent    = 25.0
	MinBlockColumnPercent  = 15.0
	MaxBlockColumnPercent  = 35.0
	BaseZIndex             = 1
	MinEventHeightPixels   = 20.0
	DefaultSnapMinutes     = 15
	DefaultPixelsPerHour   = 80.0
	DefaultActivationPixel = 8.0
)

// AllAppointmentStatuses все допустимые статусы записей
var AllAppointmentStatuses = []AppointmentStatus{
	AppointmentScheduled,
	AppointmentConfirmed,
	AppointmentCheckedIn,
	AppointmentInProgress,
	AppointmentCompleted,
	AppointmentCancelled,
	AppointmentNoShow,
}

// InactiveAppointmentStatuses статусы, не занимающие время мастера
var InactiveAppointmentStatuses = []AppointmentStatus{
	AppointmentCancelled,
	AppointmentNoShow,
}
