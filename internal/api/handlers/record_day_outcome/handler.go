package record_day_outcome

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
	msgInvalidDayIndex     = "некорректный номер учебного дня"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgNotFound            = "зачисление не найдено"
	msgAssignmentNotFound  = "у зачисления нет назначения на этот день"
	msgForbidden           = "доступ запрещен"
	msgAlreadyRecorded     = "результат этого дня уже записан"
	msgInvalidTransition   = "недопустимый переход статуса зачисления"
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

// Handle PATCH /api/v1/enrollments/{enrollmentId}/days/{dayIndex}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	enrollmentID, err := strconv.ParseInt(vars["enrollmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /enrollments/{id}/days/{day} - Invalid enrollment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEnrollmentID)
		return
	}

	dayIndex, err := strconv.Atoi(vars["dayIndex"])
	if err != nil || dayIndex <= 0 {
		h.logger.Warn("PATCH /enrollments/{id}/days/{day} - Invalid day index: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDayIndex)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /enrollments/{id}/days/{day} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем body
	var req RecordDayOutcomeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /enrollments/{id}/days/{day} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := req.ToServiceRequest(userID, middleware.IsStaff(r.Context()), dayIndex)

	result, err := h.service.RecordDayOutcome(r.Context(), enrollmentID, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, enrollments.ErrEnrollmentNotFound):
			h.logger.Warn("PATCH /enrollments/{id}/days/{day} - Enrollment not found: enrollment_id=%d", enrollmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, enrollments.ErrAssignmentNotFound):
			h.logger.Warn("PATCH /enrollments/{id}/days/{day} - Assignment not found: enrollment_id=%d, day=%d",
				enrollmentID, dayIndex)
			handlers.RespondNotFound(w, msgAssignmentNotFound)

		case errors.Is(err, enrollments.ErrAccessDenied):
			h.logger.Warn("PATCH /enrollments/{id}/days/{day} - Access denied: enrollment_id=%d, user_id=%d",
				enrollmentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, enrollments.ErrOutcomeAlreadyRecorded):
			h.logger.Warn("PATCH /enrollments/{id}/days/{day} - Outcome already recorded: enrollment_id=%d, day=%d",
				enrollmentID, dayIndex)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyRecorded)

		case errors.Is(err, enrollments.ErrInvalidStatus):
			h.logger.Warn("PATCH /enrollments/{id}/days/{day} - Invalid status transition: enrollment_id=%d, error=%v",
				enrollmentID, err)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		case errors.Is(err, enrollments.ErrInvalidInput):
			h.logger.Warn("PATCH /enrollments/{id}/days/{day} - Invalid input: enrollment_id=%d, error=%v",
				enrollmentID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /enrollments/{id}/days/{day} - Failed to record outcome: enrollment_id=%d, error=%v",
				enrollmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /enrollments/{id}/days/{day} - Outcome recorded successfully: enrollment_id=%d, day=%d, status=%s",
		enrollmentID, dayIndex, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
