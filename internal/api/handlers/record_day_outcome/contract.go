package record_day_outcome

import (
	"context"

	"github.com/m04kA/DSP-EnrollmentService/internal/service/enrollments/models"
)

type EnrollmentService interface {
	RecordDayOutcome(ctx context.Context, enrollmentID int64, req *models.RecordDayOutcomeRequest) (*models.EnrollmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
