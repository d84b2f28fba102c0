package submit_session

import (
	"fmt"
	"strings"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.SessionID) == "" {
		return fmt.Errorf("%w: sessionId is required", ErrInvalidInput)
	}

	if req.Version <= 0 {
		return fmt.Errorf("%w: version must be positive", ErrInvalidInput)
	}

	return nil
}
