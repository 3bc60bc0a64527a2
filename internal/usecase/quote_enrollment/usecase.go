package quote_enrollment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/DSP-EnrollmentService/internal/domain"
	catalogClient "github.com/m04kA/DSP-EnrollmentService/internal/integrations/catalogservice"
)

// UseCase use case для предварительного расчета стоимости записи.
// Тот же чистый расчет используется при фиксации зачисления, поэтому
// показанная студенту сумма совпадает с зафиксированной до копейки.
type UseCase struct {
	catalogClient CatalogServiceClient
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(catalogClient CatalogServiceClient, logger Logger) *UseCase {
	return &UseCase{
		catalogClient: catalogClient,
		logger:        logger,
	}
}

// Execute выполняет use case расчета стоимости
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("QuoteEnrollment: course=%d, category=%s", req.CourseID, req.DiscountCategory)

	// 1. Валидация входных данных
	if req.CourseID <= 0 {
		return nil, fmt.Errorf("%w: course_id must be positive", ErrInvalidInput)
	}

	category, err := domain.ParseDiscountCategory(req.DiscountCategory)
	if err != nil {
		uc.logger.Warn("QuoteEnrollment: invalid discount category %q", req.DiscountCategory)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Получаем курс из каталога
	course, err := uc.catalogClient.GetCourse(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrCourseNotFound) {
			uc.logger.Warn("QuoteEnrollment: course id=%d not found", req.CourseID)
			return nil, ErrCourseNotFound
		}
		if errors.Is(err, catalogClient.ErrUnavailable) {
			uc.logger.Error("QuoteEnrollment: catalog unavailable for course id=%d: %v", req.CourseID, err)
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		uc.logger.Error("QuoteEnrollment: failed to get course id=%d: %v", req.CourseID, err)
		return nil, fmt.Errorf("%w: failed to get course: %v", ErrInternal, err)
	}
	if !course.IsPublished {
		uc.logger.Warn("QuoteEnrollment: course id=%d is not published", req.CourseID)
		return nil, ErrCourseNotPublished
	}

	modality, err := domain.ParseModality(course.Modality)
	if err != nil {
		uc.logger.Error("QuoteEnrollment: course id=%d has unknown modality %q", req.CourseID, course.Modality)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 3. Считаем стоимость
	quote := domain.Quote(course.BasePrice, category, modality)

	uc.logger.Info("QuoteEnrollment: course=%d, category=%s, net=%.2f, due_now=%.2f",
		req.CourseID, category, quote.NetPrice, quote.AmountDueNow)

	return &Response{
		CourseID:         course.ID,
		CourseName:       course.Name,
		Modality:         string(modality),
		DiscountCategory: string(quote.DiscountCategory),
		BasePrice:        quote.BasePrice,
		DiscountAmount:   quote.DiscountAmount,
		NetPrice:         quote.NetPrice,
		AmountDueNow:     quote.AmountDueNow,
		AmountDueLater:   quote.AmountDueLater,
	}, nil
}
