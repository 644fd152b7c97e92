package get_day_calendar

import "fmt"

func validateRequest(req *Request) error {
	if req.LocationID <= 0 {
		return fmt.Errorf("%w: location_id must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	for _, id := range req.TechnicianIDs {
		if id <= 0 {
			return fmt.Errorf("%w: technician_id must be positive", ErrInvalidInput)
		}
	}
	return nil
}

func validateHours(start, end int) error {
	if start < 0 || end > 24 || start >= end {
		return fmt.Errorf("%w: start=%d end=%d", ErrInvalidHours, start, end)
	}
	return nil
}
