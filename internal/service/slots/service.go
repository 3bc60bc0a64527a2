package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/DSP-EnrollmentService/internal/domain"
	slotRepo "github.com/m04kA/DSP-EnrollmentService/internal/infra/storage/slot"
	"github.com/m04kA/DSP-EnrollmentService/internal/service/slots/models"
	"github.com/m04kA/DSP-EnrollmentService/pkg/types"
)

// Service сервис для управления слотами расписания.
// Создание слотов доступно только сотрудникам автошколы.
type Service struct {
	slotRepo SlotRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(slotRepo SlotRepository, logger Logger) *Service {
	return &Service{
		slotRepo: slotRepo,
		logger:   logger,
	}
}

// Create создает новый слот расписания
func (s *Service) Create(ctx context.Context, req *models.CreateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("Create: creating slot for course=%d, date=%s, time=%s-%s by user=%d",
		req.CourseID, req.Date, req.StartTime, req.EndTime, req.UserID)

	if !req.IsStaff {
		s.logger.Warn("Create: access denied for user=%d", req.UserID)
		return nil, ErrAccessDenied
	}

	slot, err := toDomainSlot(req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.slotRepo.Create(ctx, slot)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created slot id=%d", created.ID)
	return models.FromDomainSlot(created), nil
}

// GetByID получает слот по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.SlotResponse, error) {
	s.logger.Info("GetByID: fetching slot id=%d", id)

	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("GetByID: slot id=%d not found", id)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("GetByID: repository error for slot id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSlot(slot), nil
}

// toDomainSlot валидирует запрос и конвертирует его в domain слот
func toDomainSlot(req *models.CreateSlotRequest) (*domain.Slot, error) {
	if req.CourseID <= 0 {
		return nil, fmt.Errorf("%w: course_id must be positive", ErrInvalidInput)
	}

	classification, err := domain.ParseCourseClassification(req.Classification)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, req.Date)
	}

	startTime, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start time %q", ErrInvalidInput, req.StartTime)
	}

	endTime, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end time %q", ErrInvalidInput, req.EndTime)
	}

	if !startTime.IsBefore(endTime) {
		return nil, fmt.Errorf("%w: start time must be before end time", ErrInvalidInput)
	}

	if req.TotalSeats <= 0 {
		return nil, fmt.Errorf("%w: total_seats must be positive", ErrInvalidInput)
	}

	if classification == domain.ClassificationPractical && req.TotalVehicles <= 0 {
		return nil, fmt.Errorf("%w: total_vehicles must be positive for practical slots", ErrInvalidInput)
	}

	return &domain.Slot{
		CourseID:       req.CourseID,
		Classification: classification,
		Date:           date,
		StartTime:      startTime,
		EndTime:        endTime,
		TotalSeats:     req.TotalSeats,
		TotalVehicles:  req.TotalVehicles,
	}, nil
}
