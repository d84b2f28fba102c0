package get_free_surgeons

import (
	"fmt"
	"strings"
)

// validateRequest валидирует входные данные запроса
// Hour и DurationMinutes должны приходить парой: фильтр без одного из них
// не задает интервала
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.Specialty) == "" {
		return fmt.Errorf("%w: specialty is required", ErrInvalidInput)
	}

	if req.ExcludeCaseID != nil && *req.ExcludeCaseID <= 0 {
		return fmt.Errorf("%w: excludeCaseId must be positive", ErrInvalidInput)
	}

	if !req.hasFilter() {
		if req.Hour != nil || req.DurationMinutes != nil {
			return fmt.Errorf("%w: hour and durationMinutes must be provided together", ErrInvalidInput)
		}
		return nil
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required when filtering by interval", ErrInvalidInput)
	}

	if *req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: got %d minutes", ErrInvalidDuration, *req.DurationMinutes)
	}

	return nil
}

// hasFilter сообщает, задан ли интервальный фильтр целиком
func (r *Request) hasFilter() bool {
	return r.Hour != nil && r.DurationMinutes != nil
}
