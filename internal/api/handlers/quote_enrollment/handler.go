package quote_enrollment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/DSP-EnrollmentService/internal/api/handlers"
	quoteEnrollment "github.com/m04kA/DSP-EnrollmentService/internal/usecase/quote_enrollment"
)

const (
	msgInvalidCourseID    = "некорректный ID курса"
	msgInvalidCategory    = "некорректная льготная категория"
	msgCourseNotFound     = "курс не найден"
	msgCourseNotPublished = "курс не опубликован"
	msgCatalogUnavailable = "каталог курсов временно недоступен"
)

type Handler struct {
	useCase QuoteEnrollmentUseCase
	logger  Logger
}

func NewHandler(useCase QuoteEnrollmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/courses/{courseId}/quote?discountCategory=pwd
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	courseIDStr := vars["courseId"]

	courseID, err := strconv.ParseInt(courseIDStr, 10, 64)
	if err != nil || courseID <= 0 {
		h.logger.Warn("GET /courses/{id}/quote - Invalid course ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourseID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &quoteEnrollment.Request{
		CourseID:         courseID,
		DiscountCategory: r.URL.Query().Get("discountCategory"),
	})
	if err != nil {
		switch {
		case errors.Is(err, quoteEnrollment.ErrInvalidInput):
			h.logger.Warn("GET /courses/{id}/quote - Invalid input: course_id=%d, error=%v", courseID, err)
			handlers.RespondBadRequest(w, msgInvalidCategory)

		case errors.Is(err, quoteEnrollment.ErrCourseNotFound):
			h.logger.Warn("GET /courses/{id}/quote - Course not found: course_id=%d", courseID)
			handlers.RespondNotFound(w, msgCourseNotFound)

		case errors.Is(err, quoteEnrollment.ErrCourseNotPublished):
			h.logger.Warn("GET /courses/{id}/quote - Course not published: course_id=%d", courseID)
			handlers.RespondNotFound(w, msgCourseNotPublished)

		case errors.Is(err, quoteEnrollment.ErrUnavailable):
			h.logger.Error("GET /courses/{id}/quote - Catalog unavailable: course_id=%d, error=%v", courseID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgCatalogUnavailable)

		default:
			h.logger.Error("GET /courses/{id}/quote - Failed to quote: course_id=%d, error=%v", courseID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /courses/{id}/quote - Quote calculated: course_id=%d, category=%s",
		courseID, result.DiscountCategory)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
