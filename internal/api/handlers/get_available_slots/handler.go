package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/DSP-EnrollmentService/internal/api/handlers"
	"github.com/m04kA/DSP-EnrollmentService/internal/api/middleware"
	getAvailableSlots "github.com/m04kA/DSP-EnrollmentService/internal/usecase/get_available_slots"
)

const (
	msgInvalidCourseID      = "некорректный ID курса"
	msgInvalidSlotIDs       = "некорректный список выбранных слотов"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgCourseNotFound       = "курс не найден"
	msgCourseNotPublished   = "курс не опубликован"
	msgRequirementNotFound  = "у курса нет опубликованного требования расписания"
	msgActiveEnrollment     = "у студента уже есть активное зачисление"
	msgSlotNotFound         = "один из выбранных слотов не найден"
	msgServiceUnavailable   = "сервис временно недоступен, повторите запрос позже"
	msgInvalidRequestParams = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/courses/{courseId}/available-slots?selectedSlotIds=1,2,3
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	courseIDStr := vars["courseId"]

	courseID, err := strconv.ParseInt(courseIDStr, 10, 64)
	if err != nil || courseID <= 0 {
		h.logger.Warn("GET /courses/{id}/available-slots - Invalid course ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourseID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /courses/{id}/available-slots - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	selectedSlotIDs, err := parseSlotIDs(r.URL.Query().Get("selectedSlotIds"))
	if err != nil {
		h.logger.Warn("GET /courses/{id}/available-slots - Invalid selected slot IDs: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotIDs)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		StudentID:       userID,
		CourseID:        courseID,
		SelectedSlotIDs: selectedSlotIDs,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /courses/{id}/available-slots - Invalid input: course_id=%d, error=%v", courseID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestParams)

		case errors.Is(err, getAvailableSlots.ErrCourseNotFound):
			h.logger.Warn("GET /courses/{id}/available-slots - Course not found: course_id=%d", courseID)
			handlers.RespondNotFound(w, msgCourseNotFound)

		case errors.Is(err, getAvailableSlots.ErrCourseNotPublished):
			h.logger.Warn("GET /courses/{id}/available-slots - Course not published: course_id=%d", courseID)
			handlers.RespondNotFound(w, msgCourseNotPublished)

		case errors.Is(err, getAvailableSlots.ErrRequirementNotFound):
			h.logger.Warn("GET /courses/{id}/available-slots - Requirement not found: course_id=%d", courseID)
			handlers.RespondNotFound(w, msgRequirementNotFound)

		case errors.Is(err, getAvailableSlots.ErrActiveEnrollmentExists):
			h.logger.Warn("GET /courses/{id}/available-slots - Active enrollment exists: user_id=%d", userID)
			handlers.RespondError(w, http.StatusConflict, msgActiveEnrollment)

		case errors.Is(err, getAvailableSlots.ErrSlotNotFound):
			h.logger.Warn("GET /courses/{id}/available-slots - Selected slot not found: course_id=%d", courseID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, getAvailableSlots.ErrUnavailable):
			h.logger.Error("GET /courses/{id}/available-slots - Service unavailable: course_id=%d, error=%v", courseID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgServiceUnavailable)

		default:
			h.logger.Error("GET /courses/{id}/available-slots - Failed to get slots: course_id=%d, error=%v", courseID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /courses/{id}/available-slots - Slots retrieved: course_id=%d, user_id=%d, slots=%d",
		courseID, userID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// parseSlotIDs парсит список ID слотов из query параметра вида "1,2,3"
func parseSlotIDs(raw string) ([]int64, error) {
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
