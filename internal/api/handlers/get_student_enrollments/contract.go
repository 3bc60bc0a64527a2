package get_student_enrollments

import (
	"context"

	"github.com/m04kA/DSP-EnrollmentService/internal/service/enrollments/models"
)

type EnrollmentService interface {
	GetStudentEnrollments(ctx context.Context, req *models.GetStudentEnrollmentsRequest) (*models.EnrollmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
