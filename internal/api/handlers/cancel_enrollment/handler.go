package cancel_enrollment

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
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgNotFound            = "зачисление не найдено"
	msgForbidden           = "доступ запрещен"
	msgCannotCancel        = "зачисление не может быть отменено"
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

// Handle PATCH /api/v1/enrollments/{enrollmentId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	enrollmentIDStr := vars["enrollmentId"]

	enrollmentID, err := strconv.ParseInt(enrollmentIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /enrollments/{id}/cancel - Invalid enrollment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEnrollmentID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /enrollments/{id}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем body
	var req CancelEnrollmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /enrollments/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Отменяем зачисление (сервис сам проверит права доступа)
	err = h.service.Cancel(r.Context(), enrollmentID, req.ToServiceRequest(userID, middleware.IsStaff(r.Context())))
	if err != nil {
		switch {
		case errors.Is(err, enrollments.ErrEnrollmentNotFound):
			h.logger.Warn("PATCH /enrollments/{id}/cancel - Enrollment not found: enrollment_id=%d", enrollmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, enrollments.ErrAccessDenied):
			h.logger.Warn("PATCH /enrollments/{id}/cancel - Access denied: enrollment_id=%d, user_id=%d",
				enrollmentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, enrollments.ErrCannotCancel):
			h.logger.Warn("PATCH /enrollments/{id}/cancel - Cannot cancel: enrollment_id=%d", enrollmentID)
			handlers.RespondBadRequest(w, msgCannotCancel)

		case errors.Is(err, enrollments.ErrInvalidInput):
			h.logger.Warn("PATCH /enrollments/{id}/cancel - Invalid input: enrollment_id=%d, error=%v",
				enrollmentID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /enrollments/{id}/cancel - Failed to cancel enrollment: enrollment_id=%d, error=%v",
				enrollmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /enrollments/{id}/cancel - Enrollment cancelled successfully: enrollment_id=%d, user_id=%d",
		enrollmentID, userID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
