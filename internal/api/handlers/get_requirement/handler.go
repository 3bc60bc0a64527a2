package get_requirement

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/DSP-EnrollmentService/internal/api/handlers"
	"github.com/m04kA/DSP-EnrollmentService/internal/integrations/catalogservice"
)

const (
	msgInvalidCourseID     = "некорректный ID курса"
	msgCourseNotFound      = "курс не найден"
	msgRequirementNotFound = "у курса нет опубликованного требования расписания"
	msgCourseNotPublished  = "курс не опубликован"
	msgCatalogUnavailable  = "каталог курсов временно недоступен"
)

type Handler struct {
	catalogClient CatalogServiceClient
	logger        Logger
}

func NewHandler(catalogClient CatalogServiceClient, logger Logger) *Handler {
	return &Handler{
		catalogClient: catalogClient,
		logger:        logger,
	}
}

// Handle GET /api/v1/courses/{courseId}/schedule-requirement
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	courseIDStr := vars["courseId"]

	courseID, err := strconv.ParseInt(courseIDStr, 10, 64)
	if err != nil || courseID <= 0 {
		h.logger.Warn("GET /courses/{id}/schedule-requirement - Invalid course ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourseID)
		return
	}

	course, err := h.catalogClient.GetCourse(r.Context(), courseID)
	if err != nil {
		switch {
		case errors.Is(err, catalogservice.ErrCourseNotFound):
			h.logger.Warn("GET /courses/{id}/schedule-requirement - Course not found: course_id=%d", courseID)
			handlers.RespondNotFound(w, msgCourseNotFound)

		case errors.Is(err, catalogservice.ErrUnavailable):
			h.logger.Error("GET /courses/{id}/schedule-requirement - Catalog unavailable: course_id=%d, error=%v", courseID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgCatalogUnavailable)

		default:
			h.logger.Error("GET /courses/{id}/schedule-requirement - Failed to get course: course_id=%d, error=%v", courseID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if !course.IsPublished {
		h.logger.Warn("GET /courses/{id}/schedule-requirement - Course not published: course_id=%d", courseID)
		handlers.RespondNotFound(w, msgCourseNotPublished)
		return
	}

	requirement, err := h.catalogClient.GetScheduleRequirement(r.Context(), courseID)
	if err != nil {
		switch {
		case errors.Is(err, catalogservice.ErrRequirementNotFound):
			h.logger.Warn("GET /courses/{id}/schedule-requirement - Requirement not found: course_id=%d", courseID)
			handlers.RespondNotFound(w, msgRequirementNotFound)

		case errors.Is(err, catalogservice.ErrUnavailable):
			h.logger.Error("GET /courses/{id}/schedule-requirement - Catalog unavailable: course_id=%d, error=%v", courseID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgCatalogUnavailable)

		default:
			h.logger.Error("GET /courses/{id}/schedule-requirement - Failed to get requirement: course_id=%d, error=%v", courseID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /courses/{id}/schedule-requirement - Requirement retrieved: course_id=%d, days=%d",
		courseID, len(requirement.Days))
	handlers.RespondJSON(w, http.StatusOK, FromClientResponse(course, requirement))
}
