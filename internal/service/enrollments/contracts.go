package enrollments

import (
	"context"

	"github.com/m04kA/DSP-EnrollmentService/internal/domain"
)

// EnrollmentRepository интерфейс репозитория зачислений
type EnrollmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Enrollment, error)
	GetByStudentID(ctx context.Context, studentID int64, status *domain.EnrollmentStatus) ([]*domain.Enrollment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.EnrollmentStatus) error
	Cancel(ctx context.Context, id int64, reason string) error
	UpdateDayOutcome(ctx context.Context, enrollmentID int64, dayIndex int, outcome domain.DayOutcome) error
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Slot, error)
	RestoreCapacity(ctx context.Context, slotID int64, withVehicle bool) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
