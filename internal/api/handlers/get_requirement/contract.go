package get_requirement

import (
	"context"

	"github.com/m04kA/DSP-EnrollmentService/internal/integrations/catalogservice"
)

type CatalogServiceClient interface {
	GetCourse(ctx context.Context, courseID int64) (*catalogservice.Course, error)
	GetScheduleRequirement(ctx context.Context, courseID int64) (*catalogservice.ScheduleRequirement, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
