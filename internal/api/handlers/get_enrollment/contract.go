package get_enrollment

import (
	"context"

	"github.com/m04kA/DSP-EnrollmentService/internal/service/enrollments/models"
)

type EnrollmentService interface {
	GetByID(ctx context.Context, id int64, userID int64, isStaff bool) (*models.EnrollmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
