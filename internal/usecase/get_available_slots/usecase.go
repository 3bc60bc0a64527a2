package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/DSP-EnrollmentService/internal/domain"
	catalogClient "github.com/m04kA/DSP-EnrollmentService/internal/integrations/catalogservice"
	"github.com/m04kA/DSP-EnrollmentService/pkg/ptr"
)

// UseCase use case для получения доступных слотов под следующий
// незаполненный день требования расписания курса
type UseCase struct {
	slotRepo       SlotRepository
	enrollmentRepo EnrollmentRepository
	catalogClient  CatalogServiceClient
	timeProvider   TimeProvider
	logger         Logger
	tolerance      float64
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	enrollmentRepo EnrollmentRepository,
	catalogClient CatalogServiceClient,
	logger Logger,
	tolerance float64,
) *UseCase {
	if tolerance <= 0 {
		tolerance = domain.DurationToleranceHours
	}
	return &UseCase{
		slotRepo:       slotRepo,
		enrollmentRepo: enrollmentRepo,
		catalogClient:  catalogClient,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
		tolerance:      tolerance,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: student=%d, course=%d, selected=%d",
		req.StudentID, req.CourseID, len(req.SelectedSlotIDs))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Guard активного зачисления: подбор расписания не начинается,
	// пока у студента есть незавершенное зачисление
	hasActive, err := uc.enrollmentRepo.HasActive(ctx, req.StudentID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to check active enrollment for student=%d: %v", req.StudentID, err)
		return nil, fmt.Errorf("%w: failed to check active enrollment: %v", ErrUnavailable, err)
	}
	if hasActive {
		uc.logger.Warn("GetAvailableSlots: student=%d already has an active enrollment", req.StudentID)
		return nil, ErrActiveEnrollmentExists
	}

	// 3. Получаем курс из каталога
	course, err := uc.catalogClient.GetCourse(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrCourseNotFound) {
			uc.logger.Warn("GetAvailableSlots: course id=%d not found", req.CourseID)
			return nil, ErrCourseNotFound
		}
		if errors.Is(err, catalogClient.ErrUnavailable) {
			uc.logger.Error("GetAvailableSlots: catalog unavailable for course id=%d: %v", req.CourseID, err)
			return nil, fmt.Errorf("%w: catalog service: %v", ErrUnavailable, err)
		}
		uc.logger.Error("GetAvailableSlots: failed to get course id=%d: %v", req.CourseID, err)
		return nil, fmt.Errorf("%w: failed to get course: %v", ErrInternal, err)
	}
	if !course.IsPublished {
		uc.logger.Warn("GetAvailableSlots: course id=%d is not published", req.CourseID)
		return nil, ErrCourseNotPublished
	}

	classification, err := domain.ParseCourseClassification(course.Classification)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: course id=%d has unknown classification %q", req.CourseID, course.Classification)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 4. Получаем требование расписания
	requirementDTO, err := uc.catalogClient.GetScheduleRequirement(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrRequirementNotFound) {
			uc.logger.Warn("GetAvailableSlots: schedule requirement for course id=%d not found", req.CourseID)
			return nil, ErrRequirementNotFound
		}
		if errors.Is(err, catalogClient.ErrUnavailable) {
			uc.logger.Error("GetAvailableSlots: catalog unavailable for requirement course id=%d: %v", req.CourseID, err)
			return nil, fmt.Errorf("%w: catalog service: %v", ErrUnavailable, err)
		}
		uc.logger.Error("GetAvailableSlots: failed to get schedule requirement for course id=%d: %v", req.CourseID, err)
		return nil, fmt.Errorf("%w: failed to get schedule requirement: %v", ErrInternal, err)
	}

	requirement, err := toDomainRequirement(requirementDTO, course.RequiredScheduleCount)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: invalid schedule requirement for course id=%d: %v", req.CourseID, err)
		return nil, fmt.Errorf("%w: invalid schedule requirement: %v", ErrInternal, err)
	}

	// 5. Если выбор уже полон, слоты подбирать не для чего
	day, ok := requirement.NextDay(len(req.SelectedSlotIDs))
	if !ok {
		uc.logger.Info("GetAvailableSlots: selection for student=%d, course=%d already complete (%d slots)",
			req.StudentID, req.CourseID, len(req.SelectedSlotIDs))
		return &Response{
			CourseID:      req.CourseID,
			RequiredCount: requirement.RequiredCount(),
			SelectedCount: len(req.SelectedSlotIDs),
			Complete:      true,
			Slots:         []Slot{},
		}, nil
	}

	// 6. Проверяем, что все уже выбранные слоты существуют
	selectedIDs := make(map[int64]struct{}, len(req.SelectedSlotIDs))
	if len(req.SelectedSlotIDs) > 0 {
		selected, err := uc.slotRepo.GetByIDs(ctx, req.SelectedSlotIDs)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to load selected slots: %v", err)
			return nil, fmt.Errorf("%w: failed to load selected slots: %v", ErrUnavailable, err)
		}
		if len(selected) != len(req.SelectedSlotIDs) {
			uc.logger.Warn("GetAvailableSlots: %d of %d selected slots not found",
				len(req.SelectedSlotIDs)-len(selected), len(req.SelectedSlotIDs))
			return nil, ErrSlotNotFound
		}
		for _, slot := range selected {
			selectedIDs[slot.ID] = struct{}{}
		}
	}

	// 7. Забираем пул доступных слотов курса начиная с сегодняшнего дня
	now := uc.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	pool, err := uc.slotRepo.QueryAvailable(ctx, domain.SlotFilter{
		CourseID:       req.CourseID,
		Classification: ptr.Ptr(classification),
		FromDate:       ptr.Ptr(today),
		OnlyEligible:   true,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to query slot pool for course=%d: %v", req.CourseID, err)
		return nil, fmt.Errorf("%w: failed to query slot pool: %v", ErrUnavailable, err)
	}

	// 8. Отбираем слоты, подходящие под требование следующего дня
	matched := eligibleSlotsForDay(day, classification, selectedIDs, pool, uc.tolerance)

	slots := make([]Slot, 0, len(matched))
	for _, slot := range matched {
		slots = append(slots, fromDomainSlot(slot))
	}

	uc.logger.Info("GetAvailableSlots: matched %d of %d pool slots for student=%d, course=%d, day=%d",
		len(slots), len(pool), req.StudentID, req.CourseID, day.DayIndex)

	return &Response{
		CourseID:      req.CourseID,
		RequiredCount: requirement.RequiredCount(),
		SelectedCount: len(req.SelectedSlotIDs),
		Complete:      false,
		DayIndex:      day.DayIndex,
		DurationHours: day.DurationHours,
		TimeWindow:    day.Window.String(),
		Slots:         slots,
	}, nil
}
