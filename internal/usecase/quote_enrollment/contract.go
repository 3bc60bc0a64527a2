package quote_enrollment

import (
	"context"

	"github.com/m04kA/DSP-EnrollmentService/internal/integrations/catalogservice"
)

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetCourse(ctx context.Context, courseID int64) (*catalogservice.Course, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
