package move_block

import "fmt"

func validateRequest(req *Request) error {
	if req.BlockID <= 0 {
		return fmt.Errorf("%w: block_id must be positive", ErrInvalidInput)
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
	return nil
}
