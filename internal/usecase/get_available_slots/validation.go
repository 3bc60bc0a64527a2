package get_available_slots

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StudentID <= 0 {
		return fmt.Errorf("%w: student_id must be positive", ErrInvalidInput)
	}

	if req.CourseID <= 0 {
		return fmt.Errorf("%w: course_id must be positive", ErrInvalidInput)
	}

	seen := make(map[int64]struct{}, len(req.SelectedSlotIDs))
	for _, id := range req.SelectedSlotIDs {
		if id <= 0 {
			return fmt.Errorf("%w: slot_id must be positive", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: slot_id %d selected twice", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	return nil
}
