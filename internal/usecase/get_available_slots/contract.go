package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/DSP-EnrollmentService/internal/domain"
	"github.com/m04kA/DSP-EnrollmentService/internal/integrations/catalogservice"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Slot, error)
	QueryAvailable(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error)
}

// EnrollmentRepository интерфейс репозитория зачислений
type EnrollmentRepository interface {
	HasActive(ctx context.Context, studentID int64) (bool, error)
}

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetCourse(ctx context.Context, courseID int64) (*catalogservice.Course, error)
	GetScheduleRequirement(ctx context.Context, courseID int64) (*catalogservice.ScheduleRequirement, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
