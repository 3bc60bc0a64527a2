package create_enrollment

import (
	"context"
	"time"

	"github.com/m04kA/DSP-EnrollmentService/internal/domain"
	"github.com/m04kA/DSP-EnrollmentService/internal/integrations/catalogservice"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Slot, error)
	DecrementCapacity(ctx context.Context, slotID int64, withVehicle bool) error
}

// EnrollmentRepository интерфейс репозитория зачислений
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *domain.Enrollment) (*domain.Enrollment, error)
	HasActive(ctx context.Context, studentID int64) (bool, error)
}

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetCourse(ctx context.Context, courseID int64) (*catalogservice.Course, error)
	GetScheduleRequirement(ctx context.Context, courseID int64) (*catalogservice.ScheduleRequirement, error)
}

// UploadServiceClient интерфейс клиента для UploadService
type UploadServiceClient interface {
	CheckArtifactWithGracefulDegradation(ctx context.Context, ref string) error
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
