package create_enrollment

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/DSP-EnrollmentService/internal/domain"
	slotRepo "github.com/m04kA/DSP-EnrollmentService/internal/infra/storage/slot"
	catalogClient "github.com/m04kA/DSP-EnrollmentService/internal/integrations/catalogservice"
	uploadClient "github.com/m04kA/DSP-EnrollmentService/internal/integrations/uploadservice"
)

// UseCase use case для фиксации зачисления: атомарно списывает ёмкость
// всех выбранных слотов и создает зачисление со снимком расчета стоимости
type UseCase struct {
	slotRepo       SlotRepository
	enrollmentRepo EnrollmentRepository
	catalogClient  CatalogServiceClient
	uploadClient   UploadServiceClient
	txManager      TransactionManager
	timeProvider   TimeProvider
	logger         Logger
	tolerance      float64
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	enrollmentRepo EnrollmentRepository,
	catalogClient CatalogServiceClient,
	uploadClient UploadServiceClient,
	txManager TransactionManager,
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
		uploadClient:   uploadClient,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
		tolerance:      tolerance,
	}
}

// Execute выполняет use case фиксации зачисления.
// Использует сериализуемую транзакцию: guard активного зачисления,
// перепроверка выбора и списание ёмкости видят согласованный снимок,
// а конкурентные фиксации на последнее место не проходят обе.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateEnrollment: student=%d, course=%d, slots=%d, category=%s",
		req.StudentID, req.CourseID, len(req.SlotIDs), req.DiscountCategory)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateEnrollment: validation failed: %v", err)
		return nil, err
	}

	category, err := domain.ParseDiscountCategory(req.DiscountCategory)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Получаем курс из каталога
	course, err := uc.catalogClient.GetCourse(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrCourseNotFound) {
			uc.logger.Warn("CreateEnrollment: course id=%d not found", req.CourseID)
			return nil, ErrCourseNotFound
		}
		if errors.Is(err, catalogClient.ErrUnavailable) {
			uc.logger.Error("CreateEnrollment: catalog unavailable for course id=%d: %v", req.CourseID, err)
			return nil, fmt.Errorf("%w: catalog service: %v", ErrUnavailable, err)
		}
		uc.logger.Error("CreateEnrollment: failed to get course id=%d: %v", req.CourseID, err)
		return nil, fmt.Errorf("%w: failed to get course: %v", ErrInternal, err)
	}
	if !course.IsPublished {
		uc.logger.Warn("CreateEnrollment: course id=%d is not published", req.CourseID)
		return nil, ErrCourseNotPublished
	}

	classification, err := domain.ParseCourseClassification(course.Classification)
	if err != nil {
		uc.logger.Error("CreateEnrollment: course id=%d has unknown classification %q", req.CourseID, course.Classification)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	modality, err := domain.ParseModality(course.Modality)
	if err != nil {
		uc.logger.Error("CreateEnrollment: course id=%d has unknown modality %q", req.CourseID, course.Modality)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 3. Получаем требование расписания
	requirementDTO, err := uc.catalogClient.GetScheduleRequirement(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrRequirementNotFound) {
			uc.logger.Warn("CreateEnrollment: schedule requirement for course id=%d not found", req.CourseID)
			return nil, ErrRequirementNotFound
		}
		if errors.Is(err, catalogClient.ErrUnavailable) {
			uc.logger.Error("CreateEnrollment: catalog unavailable for requirement course id=%d: %v", req.CourseID, err)
			return nil, fmt.Errorf("%w: catalog service: %v", ErrUnavailable, err)
		}
		uc.logger.Error("CreateEnrollment: failed to get schedule requirement for course id=%d: %v", req.CourseID, err)
		return nil, fmt.Errorf("%w: failed to get schedule requirement: %v", ErrInternal, err)
	}

	requirement, err := toDomainRequirement(requirementDTO, course.RequiredScheduleCount)
	if err != nil {
		uc.logger.Error("CreateEnrollment: invalid schedule requirement for course id=%d: %v", req.CourseID, err)
		return nil, fmt.Errorf("%w: invalid schedule requirement: %v", ErrInternal, err)
	}

	// 4. Проверяем ссылки на артефакты в хранилище.
	// При недоступности хранилища ссылка принимается по формату, при 404 -
	// отклоняется: отсутствующее подтверждение критично.
	if err := uc.checkProofs(ctx, req); err != nil {
		return nil, err
	}

	// 5. Считаем снимок стоимости
	quote := domain.Quote(course.BasePrice, category, modality)

	// Переменные для хранения результата
	var (
		result    *domain.Enrollment
		slotsByID map[int64]*domain.Slot
	)

	// 6. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Guard активного зачисления - авторитетная проверка внутри
		// транзакции, а не раннее совещательное чтение
		hasActive, err := uc.enrollmentRepo.HasActive(txCtx, req.StudentID)
		if err != nil {
			uc.logger.Error("CreateEnrollment: failed to check active enrollment for student=%d: %v", req.StudentID, err)
			return fmt.Errorf("%w: failed to check active enrollment: %v", ErrUnavailable, err)
		}
		if hasActive {
			uc.logger.Warn("CreateEnrollment: student=%d already has an active enrollment", req.StudentID)
			return ErrActiveEnrollmentExists
		}

		// 6.2. Загружаем выбранные слоты с блокировкой (FOR UPDATE).
		// Репозиторий возвращает слоты по возрастанию id - в том же порядке
		// блокируются строки у всех конкурентных фиксаций, что исключает
		// взаимоблокировки.
		locked, err := uc.slotRepo.GetByIDs(txCtx, req.SlotIDs)
		if err != nil {
			uc.logger.Error("CreateEnrollment: failed to load selected slots: %v", err)
			return fmt.Errorf("%w: failed to load selected slots: %v", ErrUnavailable, err)
		}
		if len(locked) != len(req.SlotIDs) {
			uc.logger.Warn("CreateEnrollment: %d of %d selected slots not found",
				len(req.SlotIDs)-len(locked), len(req.SlotIDs))
			return ErrSlotNotFound
		}

		slotsByID = make(map[int64]*domain.Slot, len(locked))
		for _, slot := range locked {
			slotsByID[slot.ID] = slot
		}

		// Восстанавливаем порядок дней из запроса
		ordered := make([]*domain.Slot, 0, len(req.SlotIDs))
		for _, id := range req.SlotIDs {
			ordered = append(ordered, slotsByID[id])
		}

		// 6.3. Перепроверяем выбор на свежих данных: длительности, окна,
		// хронологию и остатки ёмкости
		if err := validateSelection(ordered, requirement, classification, uc.tolerance); err != nil {
			uc.logger.Warn("CreateEnrollment: selection re-check failed for student=%d: %v", req.StudentID, err)
			return err
		}

		// Даты идут по возрастанию, достаточно проверить первую
		now := uc.timeProvider.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if ordered[0].Date.Before(today) {
			uc.logger.Warn("CreateEnrollment: slot id=%d date %s is in the past",
				ordered[0].ID, ordered[0].Date.Format(domain.DateFormat))
			return fmt.Errorf("%w: slot %d date is in the past", ErrSelectionInvalid, ordered[0].ID)
		}

		// 6.4. Списываем ёмкость всех слотов по возрастанию id.
		// Условные UPDATE не уводят остаток ниже нуля; первый же отказ
		// откатывает всю транзакцию, частичных списаний не остается.
		decrementOrder := make([]int64, len(req.SlotIDs))
		copy(decrementOrder, req.SlotIDs)
		sort.Slice(decrementOrder, func(i, j int) bool { return decrementOrder[i] < decrementOrder[j] })

		withVehicle := classification == domain.ClassificationPractical
		for _, slotID := range decrementOrder {
			if err := uc.slotRepo.DecrementCapacity(txCtx, slotID, withVehicle); err != nil {
				if errors.Is(err, slotRepo.ErrSlotExhausted) {
					uc.logger.Warn("CreateEnrollment: slot id=%d exhausted during commit", slotID)
					return fmt.Errorf("%w: slot %d", ErrSlotNoLongerAvailable, slotID)
				}
				uc.logger.Error("CreateEnrollment: failed to decrement capacity for slot id=%d: %v", slotID, err)
				return fmt.Errorf("%w: failed to decrement capacity: %v", ErrInternal, err)
			}
		}

		// 6.5. Создаем зачисление со снимком стоимости и назначениями
		assignments := make([]domain.SlotAssignment, 0, len(ordered))
		for i, slot := range ordered {
			assignments = append(assignments, domain.SlotAssignment{
				DayIndex: requirement.Days[i].DayIndex,
				SlotID:   slot.ID,
				Outcome:  domain.OutcomePending,
			})
		}

		enrollment := &domain.Enrollment{
			StudentID:        req.StudentID,
			CourseID:         req.CourseID,
			Status:           domain.StatusPending,
			DiscountCategory: quote.DiscountCategory,
			BasePrice:        quote.BasePrice,
			DiscountAmount:   quote.DiscountAmount,
			NetPrice:         quote.NetPrice,
			AmountDueNow:     quote.AmountDueNow,
			AmountDueLater:   quote.AmountDueLater,
			PaymentReference: req.PaymentReference,
			DiscountProofRef: req.DiscountProofRef,
			PaymentProofRef:  req.PaymentProofRef,
			Assignments:      assignments,
		}

		created, err := uc.enrollmentRepo.Create(txCtx, enrollment)
		if err != nil {
			uc.logger.Error("CreateEnrollment: failed to create enrollment: %v", err)
			return fmt.Errorf("%w: failed to create enrollment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateEnrollment: successfully created enrollment id=%d for student=%d, course=%d, due_now=%.2f",
		result.ID, result.StudentID, result.CourseID, result.AmountDueNow)

	return toResponse(result, slotsByID), nil
}

// checkProofs проверяет существование приложенных артефактов в хранилище
func (uc *UseCase) checkProofs(ctx context.Context, req *Request) error {
	refs := make([]string, 0, 2)
	if req.DiscountProofRef != nil && *req.DiscountProofRef != "" {
		refs = append(refs, *req.DiscountProofRef)
	}
	if req.PaymentProofRef != nil && *req.PaymentProofRef != "" {
		refs = append(refs, *req.PaymentProofRef)
	}

	for _, ref := range refs {
		err := uc.uploadClient.CheckArtifactWithGracefulDegradation(ctx, ref)
		if err == nil {
			continue
		}
		if errors.Is(err, uploadClient.ErrArtifactNotFound) {
			uc.logger.Warn("CreateEnrollment: proof artifact ref=%s not found", ref)
			return fmt.Errorf("%w: ref=%s", ErrProofNotFound, ref)
		}
		if errors.Is(err, uploadClient.ErrServiceDegraded) {
			// Хранилище недоступно - принимаем ссылку, формат уже проверен
			continue
		}
		uc.logger.Error("CreateEnrollment: failed to check proof artifact ref=%s: %v", ref, err)
		return fmt.Errorf("%w: failed to check proof artifact: %v", ErrInternal, err)
	}

	return nil
}
