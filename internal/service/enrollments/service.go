package enrollments

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/DSP-EnrollmentService/internal/domain"
	enrollmentRepo "github.com/m04kA/DSP-EnrollmentService/internal/infra/storage/enrollment"
	slotRepo "github.com/m04kA/DSP-EnrollmentService/internal/infra/storage/slot"
	"github.com/m04kA/DSP-EnrollmentService/internal/service/enrollments/models"
)

// Service сервис для работы с зачислениями
type Service struct {
	enrollmentRepo EnrollmentRepository
	slotRepo       SlotRepository
	txManager      TransactionManager
	logger         Logger
}

// NewService создает новый экземпляр сервиса зачислений
func NewService(
	enrollmentRepo EnrollmentRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		enrollmentRepo: enrollmentRepo,
		slotRepo:       slotRepo,
		txManager:      txManager,
		logger:         logger,
	}
}

// GetByID получает зачисление по ID
// Студент видит только своё зачисление, сотрудник автошколы - любое
func (s *Service) GetByID(ctx context.Context, id int64, userID int64, isStaff bool) (*models.EnrollmentResponse, error) {
	s.logger.Info("GetByID: fetching enrollment id=%d for user=%d", id, userID)

	enrollment, err := s.enrollmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, enrollmentRepo.ErrEnrollmentNotFound) {
			s.logger.Warn("GetByID: enrollment id=%d not found", id)
			return nil, ErrEnrollmentNotFound
		}
		s.logger.Error("GetByID: repository error for enrollment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if enrollment.StudentID != userID && !isStaff {
		s.logger.Warn("GetByID: access denied for user=%d to enrollment id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched enrollment id=%d", id)
	return models.FromDomainEnrollment(enrollment), nil
}

// GetStudentEnrollments получает историю зачислений студента
// Опционально фильтрует по статусу
func (s *Service) GetStudentEnrollments(ctx context.Context, req *models.GetStudentEnrollmentsRequest) (*models.EnrollmentListResponse, error) {
	s.logger.Info("GetStudentEnrollments: fetching enrollments for student=%d, status=%v", req.StudentID, req.Status)

	var domainStatus *domain.EnrollmentStatus
	if req.Status != nil {
		status, err := domain.ParseEnrollmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetStudentEnrollments: invalid status=%s for student=%d", *req.Status, req.StudentID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	enrollments, err := s.enrollmentRepo.GetByStudentID(ctx, req.StudentID, domainStatus)
	if err != nil {
		s.logger.Error("GetStudentEnrollments: repository error for student=%d: %v", req.StudentID, err)
		return nil, fmt.Errorf("%w: GetStudentEnrollments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetStudentEnrollments: successfully fetched %d enrollments for student=%d", len(enrollments), req.StudentID)
	return models.FromDomainEnrollmentList(enrollments), nil
}

// Cancel отменяет зачисление и возвращает ёмкость незакрытых дней в слоты.
// Студент может отменить только своё зачисление, сотрудник - любое.
// Отмена и возврат ёмкости выполняются в одной сериализуемой транзакции:
// конкурентная фиксация на освобождаемые места либо видит возврат целиком,
// либо не видит вовсе.
func (s *Service) Cancel(ctx context.Context, enrollmentID int64, req *models.CancelEnrollmentRequest) error {
	s.logger.Info("Cancel: cancelling enrollment id=%d by user=%d", enrollmentID, req.UserID)

	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		s.logger.Warn("Cancel: cancellation reason too long for enrollment id=%d", enrollmentID)
		return fmt.Errorf("%w: cancellation reason too long", ErrInvalidInput)
	}

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		enrollment, err := s.enrollmentRepo.GetByID(txCtx, enrollmentID)
		if err != nil {
			if errors.Is(err, enrollmentRepo.ErrEnrollmentNotFound) {
				s.logger.Warn("Cancel: enrollment id=%d not found", enrollmentID)
				return ErrEnrollmentNotFound
			}
			s.logger.Error("Cancel: repository error for enrollment id=%d: %v", enrollmentID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		if enrollment.StudentID != req.UserID && !req.IsStaff {
			s.logger.Warn("Cancel: access denied for user=%d to enrollment id=%d", req.UserID, enrollmentID)
			return ErrAccessDenied
		}

		if !enrollment.CanBeCancelled() {
			s.logger.Warn("Cancel: enrollment id=%d cannot be cancelled, status=%s", enrollmentID, enrollment.Status)
			return ErrCannotCancel
		}

		// Возвращаем ёмкость только незакрытых дней: по закрытым дням
		// место уже было использовано
		if err := s.restorePendingCapacity(txCtx, enrollment); err != nil {
			return err
		}

		if err := s.enrollmentRepo.Cancel(txCtx, enrollmentID, req.CancellationReason); err != nil {
			if errors.Is(err, enrollmentRepo.ErrEnrollmentNotFound) {
				return ErrEnrollmentNotFound
			}
			s.logger.Error("Cancel: repository error for enrollment id=%d: %v", enrollmentID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Cancel: successfully cancelled enrollment id=%d", enrollmentID)
	return nil
}

// RecordDayOutcome записывает результат учебного дня и продвигает статус
// зачисления. Доступно только сотрудникам автошколы.
// Чтение результатов, запись и вычисление нового статуса идут в одной
// сериализуемой транзакции: две конкурентные записи последних дней не могут
// обе увидеть чужой день как незакрытый и оставить зачисление в in_progress.
func (s *Service) RecordDayOutcome(ctx context.Context, enrollmentID int64, req *models.RecordDayOutcomeRequest) (*models.EnrollmentResponse, error) {
	s.logger.Info("RecordDayOutcome: enrollment id=%d, day=%d, outcome=%s by user=%d",
		enrollmentID, req.DayIndex, req.Outcome, req.UserID)

	if !req.IsStaff {
		s.logger.Warn("RecordDayOutcome: access denied for user=%d", req.UserID)
		return nil, ErrAccessDenied
	}

	outcome, err := domain.ParseDayOutcome(req.Outcome)
	if err != nil || outcome == domain.OutcomePending {
		s.logger.Warn("RecordDayOutcome: invalid outcome=%s for enrollment id=%d", req.Outcome, enrollmentID)
		return nil, fmt.Errorf("%w: outcome must be completed or absent", ErrInvalidInput)
	}

	var result *domain.Enrollment

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		enrollment, err := s.enrollmentRepo.GetByID(txCtx, enrollmentID)
		if err != nil {
			if errors.Is(err, enrollmentRepo.ErrEnrollmentNotFound) {
				s.logger.Warn("RecordDayOutcome: enrollment id=%d not found", enrollmentID)
				return ErrEnrollmentNotFound
			}
			s.logger.Error("RecordDayOutcome: repository error for enrollment id=%d: %v", enrollmentID, err)
			return fmt.Errorf("%w: RecordDayOutcome - repository error: %v", ErrInternal, err)
		}

		if enrollment.Status.IsTerminal() {
			s.logger.Warn("RecordDayOutcome: enrollment id=%d is already %s", enrollmentID, enrollment.Status)
			return fmt.Errorf("%w: enrollment is %s", ErrInvalidStatus, enrollment.Status)
		}

		assignment, ok := enrollment.Assignment(req.DayIndex)
		if !ok {
			s.logger.Warn("RecordDayOutcome: enrollment id=%d has no assignment for day=%d", enrollmentID, req.DayIndex)
			return ErrAssignmentNotFound
		}
		if assignment.Outcome != domain.OutcomePending {
			s.logger.Warn("RecordDayOutcome: day=%d of enrollment id=%d already recorded as %s",
				req.DayIndex, enrollmentID, assignment.Outcome)
			return ErrOutcomeAlreadyRecorded
		}

		if err := s.enrollmentRepo.UpdateDayOutcome(txCtx, enrollmentID, req.DayIndex, outcome); err != nil {
			if errors.Is(err, enrollmentRepo.ErrAssignmentNotFound) {
				return ErrAssignmentNotFound
			}
			s.logger.Error("RecordDayOutcome: failed to update outcome for enrollment id=%d, day=%d: %v",
				enrollmentID, req.DayIndex, err)
			return fmt.Errorf("%w: RecordDayOutcome - repository error: %v", ErrInternal, err)
		}

		newStatus := enrollment.StatusAfterOutcome(req.DayIndex, outcome)
		if newStatus != enrollment.Status {
			if !domain.CanTransition(enrollment.Status, newStatus) {
				s.logger.Error("RecordDayOutcome: illegal transition %s -> %s for enrollment id=%d",
					enrollment.Status, newStatus, enrollmentID)
				return fmt.Errorf("%w: %s -> %s", ErrInvalidStatus, enrollment.Status, newStatus)
			}
			if err := s.enrollmentRepo.UpdateStatus(txCtx, enrollmentID, newStatus); err != nil {
				s.logger.Error("RecordDayOutcome: failed to update status for enrollment id=%d: %v", enrollmentID, err)
				return fmt.Errorf("%w: RecordDayOutcome - repository error: %v", ErrInternal, err)
			}
		}

		updated, err := s.enrollmentRepo.GetByID(txCtx, enrollmentID)
		if err != nil {
			s.logger.Error("RecordDayOutcome: failed to reload enrollment id=%d: %v", enrollmentID, err)
			return fmt.Errorf("%w: RecordDayOutcome - repository error: %v", ErrInternal, err)
		}

		result = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("RecordDayOutcome: enrollment id=%d, day=%d recorded as %s, status=%s",
		enrollmentID, req.DayIndex, outcome, result.Status)
	return models.FromDomainEnrollment(result), nil
}

// restorePendingCapacity возвращает ёмкость слотов незакрытых дней
// зачисления. Слоты обрабатываются по возрастанию id - в том же порядке,
// в котором она списывалась при фиксации.
func (s *Service) restorePendingCapacity(ctx context.Context, enrollment *domain.Enrollment) error {
	pending := make([]int64, 0, len(enrollment.Assignments))
	for _, a := range enrollment.Assignments {
		if a.Outcome == domain.OutcomePending {
			pending = append(pending, a.SlotID)
		}
	}
	if len(pending) == 0 {
		return nil
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i] < pending[j] })

	slots, err := s.slotRepo.GetByIDs(ctx, pending)
	if err != nil {
		s.logger.Error("restorePendingCapacity: failed to load slots for enrollment id=%d: %v", enrollment.ID, err)
		return fmt.Errorf("%w: restorePendingCapacity - repository error: %v", ErrInternal, err)
	}

	withVehicle := make(map[int64]bool, len(slots))
	for _, slot := range slots {
		withVehicle[slot.ID] = slot.RequiresVehicle()
	}

	for _, slotID := range pending {
		if err := s.slotRepo.RestoreCapacity(ctx, slotID, withVehicle[slotID]); err != nil {
			// Переполнение ёмкости - аномалия данных по одному слоту,
			// она не должна блокировать отмену всего зачисления
			if errors.Is(err, slotRepo.ErrCapacityOverflow) {
				s.logger.Warn("restorePendingCapacity: slot id=%d already at full capacity, skipping restore for enrollment id=%d",
					slotID, enrollment.ID)
				continue
			}
			s.logger.Error("restorePendingCapacity: failed to restore slot id=%d for enrollment id=%d: %v",
				slotID, enrollment.ID, err)
			return fmt.Errorf("%w: restorePendingCapacity - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("restorePendingCapacity: restored %d slots for enrollment id=%d", len(pending), enrollment.ID)
	return nil
}
