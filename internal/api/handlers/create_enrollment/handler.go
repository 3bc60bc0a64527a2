package create_enrollment

import (
	"errors"
	"net/http"

	"github.com/m04kA/DSP-EnrollmentService/internal/api/handlers"
	"github.com/m04kA/DSP-EnrollmentService/internal/api/middleware"
	createEnrollment "github.com/m04kA/DSP-EnrollmentService/internal/usecase/create_enrollment"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgCourseNotFound      = "курс не найден"
	msgCourseNotPublished  = "курс не опубликован"
	msgRequirementNotFound = "у курса нет опубликованного требования расписания"
	msgActiveEnrollment    = "у студента уже есть активное зачисление"
	msgSlotNotFound        = "один из выбранных слотов не найден"
	msgSelectionIncomplete = "выбраны не все учебные дни курса"
	msgSelectionInvalid    = "выбранные слоты не соответствуют требованию расписания"
	msgSlotNoLongerFree    = "один из выбранных слотов уже занят, обновите подбор"
	msgDiscountProofNeeded = "для льготной категории требуется подтверждающий документ"
	msgProofNotFound       = "приложенный документ не найден в хранилище"
	msgServiceUnavailable  = "сервис временно недоступен, повторите запрос позже"
)

type Handler struct {
	useCase CreateEnrollmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateEnrollmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/enrollments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /enrollments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateEnrollmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /enrollments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, createEnrollment.ErrInvalidInput):
			h.logger.Warn("POST /enrollments - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, createEnrollment.ErrCourseNotFound):
			h.logger.Warn("POST /enrollments - Course not found: course_id=%d", req.CourseID)
			handlers.RespondNotFound(w, msgCourseNotFound)

		case errors.Is(err, createEnrollment.ErrCourseNotPublished):
			h.logger.Warn("POST /enrollments - Course not published: course_id=%d", req.CourseID)
			handlers.RespondNotFound(w, msgCourseNotPublished)

		case errors.Is(err, createEnrollment.ErrRequirementNotFound):
			h.logger.Warn("POST /enrollments - Requirement not found: course_id=%d", req.CourseID)
			handlers.RespondNotFound(w, msgRequirementNotFound)

		case errors.Is(err, createEnrollment.ErrActiveEnrollmentExists):
			h.logger.Warn("POST /enrollments - Active enrollment exists: user_id=%d", userID)
			handlers.RespondError(w, http.StatusConflict, msgActiveEnrollment)

		case errors.Is(err, createEnrollment.ErrSlotNotFound):
			h.logger.Warn("POST /enrollments - Slot not found: user_id=%d, course_id=%d", userID, req.CourseID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createEnrollment.ErrSelectionIncomplete):
			h.logger.Warn("POST /enrollments - Selection incomplete: user_id=%d, course_id=%d", userID, req.CourseID)
			handlers.RespondBadRequest(w, msgSelectionIncomplete)

		case errors.Is(err, createEnrollment.ErrSelectionInvalid):
			h.logger.Warn("POST /enrollments - Selection invalid: user_id=%d, course_id=%d, error=%v",
				userID, req.CourseID, err)
			handlers.RespondBadRequest(w, msgSelectionInvalid)

		case errors.Is(err, createEnrollment.ErrSlotNoLongerAvailable):
			h.logger.Warn("POST /enrollments - Slot no longer available: user_id=%d, course_id=%d",
				userID, req.CourseID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNoLongerFree)

		case errors.Is(err, createEnrollment.ErrDiscountProofRequired):
			h.logger.Warn("POST /enrollments - Discount proof required: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgDiscountProofNeeded)

		case errors.Is(err, createEnrollment.ErrProofNotFound):
			h.logger.Warn("POST /enrollments - Proof not found: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgProofNotFound)

		case errors.Is(err, createEnrollment.ErrUnavailable):
			h.logger.Error("POST /enrollments - Service unavailable: user_id=%d, error=%v", userID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgServiceUnavailable)

		default:
			h.logger.Error("POST /enrollments - Failed to create enrollment: user_id=%d, course_id=%d, error=%v",
				userID, req.CourseID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /enrollments - Enrollment created successfully: enrollment_id=%d, user_id=%d, course_id=%d",
		result.ID, userID, req.CourseID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
