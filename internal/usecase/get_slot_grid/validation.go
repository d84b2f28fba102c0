package get_slot_grid

import "fmt"

// validateRequest валидирует входные данные запроса
// Неположительная длительность отклоняется до построения сетки: пустой
// интервал не конфликтует ни с чем, и сетка "все свободно" вводила бы в
// заблуждение
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: got %d minutes", ErrInvalidDuration, req.DurationMinutes)
	}

	if req.ExcludeCaseID != nil && *req.ExcludeCaseID <= 0 {
		return fmt.Errorf("%w: excludeCaseId must be positive", ErrInvalidInput)
	}

	return nil
}
