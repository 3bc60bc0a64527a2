package get_student_enrollments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/DSP-EnrollmentService/internal/api/handlers"
	"github.com/m04kA/DSP-EnrollmentService/internal/api/middleware"
	"github.com/m04kA/DSP-EnrollmentService/internal/service/enrollments"
	"github.com/m04kA/DSP-EnrollmentService/internal/service/enrollments/models"
)

const (
	msgInvalidStudentID = "некорректный ID студента"
	msgInvalidStatus    = "некорректный статус зачисления"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgForbidden        = "доступ запрещен"
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

// Handle GET /api/v1/students/{studentId}/enrollments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	studentIDStr := vars["studentId"]

	studentID, err := strconv.ParseInt(studentIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /students/{studentId}/enrollments - Invalid student ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStudentID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /students/{studentId}/enrollments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Студент видит только свою историю, сотрудник - любую
	if userID != studentID && !middleware.IsStaff(r.Context()) {
		h.logger.Warn("GET /students/{studentId}/enrollments - Access denied: student_id=%d, user_id=%d",
			studentID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	// Получаем status из query параметров (опционально)
	status := r.URL.Query().Get("status")
	var statusPtr *string
	if status != "" {
		statusPtr = &status
	}

	result, err := h.service.GetStudentEnrollments(r.Context(), &models.GetStudentEnrollmentsRequest{
		StudentID: studentID,
		Status:    statusPtr,
	})
	if err != nil {
		switch {
		case errors.Is(err, enrollments.ErrInvalidInput):
			h.logger.Warn("GET /students/{studentId}/enrollments - Invalid status: student_id=%d, status=%s",
				studentID, status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /students/{studentId}/enrollments - Failed to get enrollments: student_id=%d, error=%v",
				studentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /students/{studentId}/enrollments - Enrollments retrieved successfully: student_id=%d, count=%d",
		studentID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
