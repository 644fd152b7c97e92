package move_appointment

import (
	"fmt"
	"time"
)

const maxDuration = 24 * time.Hour

func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointment_id must be positive", ErrInvalidInput)
	}
	if req.TechnicianID <= 0 {
		return fmt.Errorf("%w: technician_id must be positive", ErrInvalidInput)
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: start_time and end_time are required", ErrInvalidInput)
	}
	if !req.EndTime.After(req.StartTime) {
		return fmt.Errorf("%w: end_time must be after start_time", ErrInvalidInput)
	}
	if req.EndTime.Sub(req.StartTime) > maxDuration {
		return fmt.Errorf("%w: appointment cannot be longer than %s", ErrInvalidInput, maxDuration)
	}
	return nil
}
