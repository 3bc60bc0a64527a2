package create_enrollment

import (
	"fmt"
	"regexp"

	"github.com/m04kA/DSP-EnrollmentService/internal/domain"
)

// paymentReferencePattern формат ссылки на платеж из платежной системы
var paymentReferencePattern = regexp.MustCompile(`^[A-Z0-9-]+$`)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StudentID <= 0 {
		return fmt.Errorf("%w: student_id must be positive", ErrInvalidInput)
	}

	if req.CourseID <= 0 {
		return fmt.Errorf("%w: course_id must be positive", ErrInvalidInput)
	}

	if len(req.SlotIDs) == 0 {
		return fmt.Errorf("%w: slot_ids must not be empty", ErrInvalidInput)
	}

	seen := make(map[int64]struct{}, len(req.SlotIDs))
	for _, id := range req.SlotIDs {
		if id <= 0 {
			return fmt.Errorf("%w: slot_id must be positive", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: slot_id %d selected twice", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	if err := validatePaymentReference(req.PaymentReference); err != nil {
		return err
	}

	category, err := domain.ParseDiscountCategory(req.DiscountCategory)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if category.HasDiscount() && (req.DiscountProofRef == nil || *req.DiscountProofRef == "") {
		return ErrDiscountProofRequired
	}

	return nil
}

// validatePaymentReference проверяет формат ссылки на платеж
func validatePaymentReference(ref string) error {
	if len(ref) < domain.MinPaymentReferenceLength || len(ref) > domain.MaxPaymentReferenceLength {
		return fmt.Errorf("%w: payment_reference length must be between %d and %d",
			ErrInvalidInput, domain.MinPaymentReferenceLength, domain.MaxPaymentReferenceLength)
	}
	if !paymentReferencePattern.MatchString(ref) {
		return fmt.Errorf("%w: payment_reference must contain only A-Z, 0-9 and -", ErrInvalidInput)
	}
	return nil
}

// validateSelection пересобирает выбор слотов по требованию расписания
// и проверяет каждый слот: тип курса, длительность, временное окно,
// хронологию и доступную ёмкость. Порядок slots соответствует порядку дней.
func validateSelection(
	slots []*domain.Slot,
	requirement *domain.ScheduleRequirement,
	classification domain.CourseClassification,
	tolerance float64,
) error {
	if len(slots) < requirement.RequiredCount() {
		return fmt.Errorf("%w: selected %d of %d required slots",
			ErrSelectionIncomplete, len(slots), requirement.RequiredCount())
	}
	if len(slots) > requirement.RequiredCount() {
		return fmt.Errorf("%w: selected %d slots, course requires %d",
			ErrSelectionInvalid, len(slots), requirement.RequiredCount())
	}

	selection := domain.NewSelectionSet(requirement.RequiredCount())

	for i, slot := range slots {
		day := requirement.Days[i]

		if slot.Classification != classification {
			return fmt.Errorf("%w: slot %d classification %q does not match course",
				ErrSelectionInvalid, slot.ID, slot.Classification)
		}
		if !day.MatchesDuration(slot.DurationHours(), tolerance) {
			return fmt.Errorf("%w: slot %d duration %.2fh does not match day %d requirement %.2fh",
				ErrSelectionInvalid, slot.ID, slot.DurationHours(), day.DayIndex, day.DurationHours)
		}
		if !day.Window.Matches(slot.StartTime) {
			return fmt.Errorf("%w: slot %d start %s is outside day %d window %s",
				ErrSelectionInvalid, slot.ID, slot.StartTime, day.DayIndex, day.Window)
		}

		next, err := selection.TryAdd(slot)
		if err != nil {
			switch err {
			case domain.ErrCapacityExhausted:
				return fmt.Errorf("%w: slot %d", ErrSlotNoLongerAvailable, slot.ID)
			default:
				return fmt.Errorf("%w: slot %d: %v", ErrSelectionInvalid, slot.ID, err)
			}
		}
		selection = next
	}

	return nil
}
