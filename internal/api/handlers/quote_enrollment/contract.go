package quote_enrollment

import (
	"context"

	quoteEnrollment "github.com/m04kA/DSP-EnrollmentService/internal/usecase/quote_enrollment"
)

type QuoteEnrollmentUseCase interface {
	Execute(ctx context.Context, req *quoteEnrollment.Request) (*quoteEnrollment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
