package get_enrollment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/DSP-EnrollmentService/internal/api/handlers"
	"github.com/m04kA/DSP-EnrollmentService/internal/api/middleware"
	"github.com/m04kA/DSP-EnrollmentService/internal/service/enrollments"
)

const (
	msgInvalidEnrollmentID = "некорректный ID зачисления"
	msgNotFound            = "зачисление не найдено"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgForbidden           = "доступ запрещен"
)

type Handler struct {
	service EnrollmentService
	logger  Logger
}

func NewHandler(service EnrollmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/enrollments/{enrollmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	enrollmentIDStr := vars["enrollmentId"]

	enrollmentID, err := strconv.ParseInt(enrollmentIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /enrollments/{id} - Invalid enrollment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEnrollmentID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /enrollments/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Получаем зачисление (сервис сам проверит права доступа)
	enrollment, err := h.service.GetByID(r.Context(), enrollmentID, userID, middleware.IsStaff(r.Context()))
	if err != nil {
		switch {
		case errors.Is(err, enrollments.ErrEnrollmentNotFound):
			h.logger.Warn("GET /enrollments/{id} - Enrollment not found: enrollment_id=%d", enrollmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, enrollments.ErrAccessDenied):
			h.logger.Warn("GET /enrollments/{id} - Access denied: enrollment_id=%d, user_id=%d", enrollmentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /enrollments/{id} - Failed to get enrollment: enrollment_id=%d, error=%v", enrollmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /enrollments/{id} - Enrollment retrieved successfully: enrollment_id=%d, user_id=%d",
		enrollmentID, userID)
	handlers.RespondJSON(w, http.StatusOK, enrollment)
}
