package move_appointment

import (
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	moveAppointment "github.com/m04kA/SMC-CalendarService/internal/usecase/move_appointment"
)

// MoveAppointmentRequest HTTP request model
type MoveAppointmentRequest struct {
	TechnicianID int64  `json:"technicianId"`
	Start        string `json:"start"` // RFC3339
	End          string `json:"end"`
	NotifyClient bool   `json:"notifyClient"`
}

// MoveAppointmentResponse HTTP response model
type MoveAppointmentResponse struct {
	ID             int64                       `json:"id"`
	TechnicianID   int64                       `json:"technicianId"`
	Start          string                      `json:"start"`
	End            string                      `json:"end"`
	Status         string                      `json:"status"`
	ClientNotified bool                        `json:"clientNotified"`
	Conflicts      []handlers.EventRefResponse `json:"conflicts"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *MoveAppointmentRequest) ToUseCaseRequest(appointmentID int64) (*moveAppointment.Request, error) {
	start, err := time.Parse(time.RFC3339, r.Start)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse(time.RFC3339, r.End)
	if err != nil {
		return nil, err
	}
	return &moveAppointment.Request{
		AppointmentID: appointmentID,
		TechnicianID:  r.TechnicianID,
		StartTime:     start,
		EndTime:       end,
		NotifyClient:  r.NotifyClient,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *moveAppointment.Response) *MoveAppointmentResponse {
	a := resp.Appointment
	return &MoveAppointmentResponse{
		ID:             a.ID,
		TechnicianID:   a.TechnicianID,
		Start:          a.StartTime.Format(time.RFC3339),
		End:            a.EndTime.Format(time.RFC3339),
		Status:         string(a.Status),
		ClientNotified: resp.ClientNotified,
		Conflicts:      handlers.EventRefs(resp.Conflicts),
	}
}
