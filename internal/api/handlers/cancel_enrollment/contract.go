package cancel_enrollment

import (
	"context"

	"github.com/m04kA/DSP-EnrollmentService/internal/service/enrollments/models"
)

type EnrollmentService interface {
	Cancel(ctx context.Context, enrollmentID int64, req *models.CancelEnrollmentRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
