package schedule

import (
	"errors"
	"net/http"

	"github.com/AloneRunner/DersTimeTable/internal/middleware"
	apperr "github.com/AloneRunner/DersTimeTable/internal/pkg/errors"
	"github.com/AloneRunner/DersTimeTable/internal/pkg/response"
	"github.com/AloneRunner/DersTimeTable/internal/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler exposes the schedule module's generate/publish/archive endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates a new schedule Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the schedule endpoints under rg. generateRateLimit
// is applied only to the generation endpoint, which is the one expensive
// call in this module since it drives the solver. generateGate runs just
// before it too, e.g. a subscription entitlement check; pass
// gin.HandlerFunc(func(c *gin.Context) { c.Next() }) to skip it.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, generateRateLimit, generateGate gin.HandlerFunc) {
	schedules := rg.Group("/schedules")
	schedules.GET("", middleware.PermissionRequired("schedule:view"), h.ListSchedules)
	schedules.GET("/:id", middleware.PermissionRequired("schedule:view"), h.GetSchedule)
	schedules.GET("/published/entries", middleware.PermissionRequired("schedule:view"), h.GetPublishedEntries)
	schedules.POST("/generate", middleware.PermissionRequired("schedule:manage"), generateRateLimit, generateGate, h.GenerateSchedule)
	schedules.POST("/:id/publish", middleware.PermissionRequired("schedule:manage"), h.PublishSchedule)
	schedules.POST("/:id/archive", middleware.PermissionRequired("schedule:manage"), h.ArchiveSchedule)
	schedules.DELETE("/:id", middleware.PermissionRequired("schedule:manage"), h.DeleteSchedule)
}

func (h *Handler) ListSchedules(c *gin.Context) {
	tenantID, _ := middleware.GetCurrentTenantID(c)
	schedules, total, err := h.service.ListSchedules(c.Request.Context(), tenantID)
	if err != nil {
		apperr.Abort(c, apperr.InternalError(err.Error()))
		return
	}
	response.OK(c, gin.H{"schedules": schedules, "total": total})
}

func (h *Handler) GetSchedule(c *gin.Context) {
	tenantID, _ := middleware.GetCurrentTenantID(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apperr.Abort(c, apperr.BadRequest("invalid schedule id"))
		return
	}
	sched, err := h.service.GetSchedule(c.Request.Context(), tenantID, id)
	if err != nil {
		if errors.Is(err, ErrScheduleNotFound) {
			apperr.Abort(c, apperr.NotFound("schedule not found"))
			return
		}
		apperr.Abort(c, apperr.InternalError(err.Error()))
		return
	}
	response.OK(c, sched)
}

func (h *Handler) GetPublishedEntries(c *gin.Context) {
	tenantID, _ := middleware.GetCurrentTenantID(c)
	entries, err := h.service.GetPublishedEntries(c.Request.Context(), tenantID)
	if err != nil {
		if errors.Is(err, ErrScheduleNotFound) {
			apperr.Abort(c, apperr.NotFound("no published schedule"))
			return
		}
		apperr.Abort(c, apperr.InternalError(err.Error()))
		return
	}
	response.OK(c, gin.H{"entries": entries})
}

func (h *Handler) GenerateSchedule(c *gin.Context) {
	tenantID, _ := middleware.GetCurrentTenantID(c)
	userID, _ := middleware.GetCurrentUserID(c)

	var req GenerateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Abort(c, apperr.ValidationFailed(err.Error()))
		return
	}
	if err := validator.ValidateStruct(req); err != nil {
		abortValidation(c, err)
		return
	}

	sched, err := h.service.GenerateSchedule(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		apperr.Abort(c, apperr.BadRequest(err.Error()))
		return
	}
	response.Created(c, sched)
}

func (h *Handler) PublishSchedule(c *gin.Context) {
	tenantID, _ := middleware.GetCurrentTenantID(c)
	userID, _ := middleware.GetCurrentUserID(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apperr.Abort(c, apperr.BadRequest("invalid schedule id"))
		return
	}
	sched, err := h.service.PublishSchedule(c.Request.Context(), tenantID, id, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrScheduleNotFound):
			apperr.Abort(c, apperr.NotFound("schedule not found"))
		case errors.Is(err, ErrScheduleAlreadyPublished):
			apperr.Abort(c, apperr.Conflict(err.Error()))
		default:
			apperr.Abort(c, apperr.InternalError(err.Error()))
		}
		return
	}
	response.OK(c, sched)
}

func (h *Handler) ArchiveSchedule(c *gin.Context) {
	tenantID, _ := middleware.GetCurrentTenantID(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apperr.Abort(c, apperr.BadRequest("invalid schedule id"))
		return
	}
	sched, err := h.service.ArchiveSchedule(c.Request.Context(), tenantID, id)
	if err != nil {
		if errors.Is(err, ErrScheduleNotFound) {
			apperr.Abort(c, apperr.NotFound("schedule not found"))
			return
		}
		apperr.Abort(c, apperr.InternalError(err.Error()))
		return
	}
	response.OK(c, sched)
}

func (h *Handler) DeleteSchedule(c *gin.Context) {
	tenantID, _ := middleware.GetCurrentTenantID(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apperr.Abort(c, apperr.BadRequest("invalid schedule id"))
		return
	}
	if err := h.service.DeleteSchedule(c.Request.Context(), tenantID, id); err != nil {
		switch {
		case errors.Is(err, ErrScheduleNotFound):
			apperr.Abort(c, apperr.NotFound("schedule not found"))
		case errors.Is(err, ErrScheduleNotDraft):
			apperr.Abort(c, apperr.Conflict(err.Error()))
		default:
			apperr.Abort(c, apperr.InternalError(err.Error()))
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// abortValidation converts a validator error into an RFC 7807 validation
// response and aborts the request.
func abortValidation(c *gin.Context, err error) {
	details := validator.FieldErrors(err)
	fieldErrors := make([]apperr.FieldError, 0, len(details))
	for _, d := range details {
		fieldErrors = append(fieldErrors, apperr.FieldError{Field: d.Field, Message: d.Message})
	}
	apperr.AbortWithValidation(c, apperr.NewValidationError("validation failed", fieldErrors))
}
