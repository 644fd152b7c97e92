package calendarapi

import "time"

// DayQuery параметры запроса дневной сетки
type DayQuery struct {
	LocationID    int64
	Date          time.Time
	TechnicianIDs []int64
	StartHour     *int
	EndHour       *int
}

// DayResponse ответ GET /locations/{id}/calendar
type DayResponse struct {
	Date          string           `json:"date"`
	Timezone      string           `json:"timezone"`
	StartHour     int              `json:"startHour"`
	EndHour       int              `json:"endHour"`
	PixelsPerHour float64          `json:"pixelsPerHour"`
	Technicians   []TechnicianData `json:"technicians"`
	Columns       []ColumnData     `json:"columns"`
}

type TechnicianData struct {
	ID           int64            `json:"id"`
	Name         string           `json:"name"`
	IsActive     bool             `json:"isActive"`
	DisplayOrder int              `json:"displayOrder"`
	Schedule     []WorkingDayData `json:"schedule"`
}

type WorkingDayData struct {
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	IsWorking bool   `json:"isWorking"`
}

type ColumnData struct {
	TechnicianID int64       `json:"technicianId"`
	Events       []EventData `json:"events"`
}

// EventData событие дня. Положение карточки клиент пересчитывает сам
type EventData struct {
	Kind         string  `json:"kind"`
	ID           int64   `json:"id"`
	TechnicianID int64   `json:"technicianId"`
	Start        string  `json:"start"`
	End          string  `json:"end"`
	Title        string  `json:"title"`
	Locked       bool    `json:"locked"`
	Status       *string `json:"status,omitempty"`
	ClientName   *string `json:"clientName,omitempty"`
	ServiceName  *string `json:"serviceName,omitempty"`
	BlockType    *string `json:"blockType,omitempty"`
	Recurring    bool    `json:"recurring,omitempty"`
}

type moveRequest struct {
	TechnicianID int64  `json:"technicianId"`
	Start        string `json:"start"`
	End          string `json:"end"`
	NotifyClient *bool  `json:"notifyClient,omitempty"`
}

type createBlockRequest struct {
	TechnicianID int64  `json:"technicianId"`
	Title        string `json:"title"`
	Start        string `json:"start"`
	End          string `json:"end"`
}

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
