package create_block

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-CalendarService/internal/calendar/recurrence"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

const maxTitleLength = 255

func validateRequest(req *Request) error {
	if req.TechnicianID <= 0 {
		return fmt.Errorf("%w: technician_id must be positive", ErrInvalidInput)
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return fmt.Errorf("%w: title is longer than %d characters", ErrInvalidInput, maxTitleLength)
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: start_time and end_time are required", ErrInvalidInput)
	}
	if !req.EndTime.After(req.StartTime) {
		return fmt.Errorf("%w: end_time must be after start_time", ErrInvalidInput)
	}
	if _, err := parseBlockType(req.BlockType); err != nil {
		return err
	}
	if req.RecurrenceRule != nil && strings.TrimSpace(*req.RecurrenceRule) != "" {
		if err := recurrence.Validate(*req.RecurrenceRule); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidRecurrence, err)
		}
	}
	return nil
}

func parseBlockType(s string) (domain.BlockType, error) {
	if s == "" {
		return domain.BlockPersonal, nil
	}
	switch t := domain.BlockType(s); t {
	case domain.BlockPersonal, domain.BlockBreak, domain.BlockTraining, domain.BlockVacation:
		return t, nil
	default:
		return "", fmt.Errorf("%w: unknown block_type %q", ErrInvalidInput, s)
	}
}
