package create_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AppointmentBot/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if _, err := domain.ParseWeekday(string(req.Weekday)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.StartAt.IsZero() || req.EndAt.IsZero() {
		return fmt.Errorf("%w: slot interval is required", ErrInvalidInput)
	}

	if !req.StartAt.Before(req.EndAt) {
		return fmt.Errorf("%w: slot start must be before end", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Name) == "" || len(req.Name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Contact) == "" || len(req.Contact) > domain.MaxContactLength {
		return fmt.Errorf("%w: contact is required", ErrInvalidInput)
	}

	return nil
}
