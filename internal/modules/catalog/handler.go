package catalog

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

// Handler exposes the catalog module's CRUD endpoints over gin.
type Handler struct {
	service *Service
}

// NewHandler creates a new catalog Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
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

// RegisterRoutes mounts the catalog endpoints under rg.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	teachers := rg.Group("/teachers")
	teachers.GET("", middleware.PermissionRequired("catalog:view"), h.ListTeachers)
	teachers.GET("/:id", middleware.PermissionRequired("catalog:view"), h.GetTeacher)
	teachers.POST("", middleware.PermissionRequired("catalog:manage"), h.CreateTeacher)
	teachers.PATCH("/:id", middleware.PermissionRequired("catalog:manage"), h.UpdateTeacher)
	teachers.DELETE("/:id", middleware.PermissionRequired("catalog:manage"), h.DeleteTeacher)

	classrooms := rg.Group("/classrooms")
	classrooms.GET("", middleware.PermissionRequired("catalog:view"), h.ListClassrooms)
	classrooms.POST("", middleware.PermissionRequired("catalog:manage"), h.CreateClassroom)
	classrooms.PATCH("/:id", middleware.PermissionRequired("catalog:manage"), h.UpdateClassroom)
	classrooms.DELETE("/:id", middleware.PermissionRequired("catalog:manage"), h.DeleteClassroom)

	subjects := rg.Group("/subjects")
	subjects.GET("", middleware.PermissionRequired("catalog:view"), h.ListSubjects)
	subjects.POST("", middleware.PermissionRequired("catalog:manage"), h.CreateSubject)
	subjects.PATCH("/:id", middleware.PermissionRequired("catalog:manage"), h.UpdateSubject)
	subjects.DELETE("/:id", middleware.PermissionRequired("catalog:manage"), h.DeleteSubject)

	locations := rg.Group("/locations")
	locations.GET("", middleware.PermissionRequired("catalog:view"), h.ListLocations)
	locations.POST("", middleware.PermissionRequired("catalog:manage"), h.CreateLocation)
	locations.DELETE("/:id", middleware.PermissionRequired("catalog:manage"), h.DeleteLocation)

	fixedAssignments := rg.Group("/fixed-assignments")
	fixedAssignments.GET("", middleware.PermissionRequired("catalog:view"), h.ListFixedAssignments)
	fixedAssignments.POST("", middleware.PermissionRequired("catalog:manage"), h.CreateFixedAssignment)
	fixedAssignments.DELETE("/:id", middleware.PermissionRequired("catalog:manage"), h.DeleteFixedAssignment)

	lessonGroups := rg.Group("/lesson-groups")
	lessonGroups.GET("", middleware.PermissionRequired("catalog:view"), h.ListLessonGroups)
	lessonGroups.POST("", middleware.PermissionRequired("catalog:manage"), h.CreateLessonGroup)
	lessonGroups.DELETE("/:id", middleware.PermissionRequired("catalog:manage"), h.DeleteLessonGroup)

	duties := rg.Group("/duties")
	duties.GET("", middleware.PermissionRequired("catalog:view"), h.ListDuties)
	duties.POST("", middleware.PermissionRequired("catalog:manage"), h.CreateDuty)
	duties.DELETE("/:id", middleware.PermissionRequired("catalog:manage"), h.DeleteDuty)

	settings := rg.Group("/school-settings")
	settings.GET("", middleware.PermissionRequired("catalog:view"), h.GetSchoolSettings)
	settings.PUT("", middleware.PermissionRequired("catalog:manage"), h.UpsertSchoolSettings)
}

// ---------------------------------------------------------------- Teacher

func (h *Handler) ListTeachers(c *gin.Context) {
	tenantID, _ := middleware.GetCurrentTenantID(c)
	teachers, total, err := h.service.ListTeachers(c.Request.Context(), TeacherFilter{TenantID: tenantID})
	if err != nil {
		apperr.Abort(c, apperr.InternalError(err.Error()))
		return
	}
	response.OK(c, gin.H{"teachers": teachers, "total": total})
}

func (h *Handler) GetTeacher(c *gin.Context) {
	tenantID, _ := middleware.GetCurrentTenantID(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apperr.Abort(c, apperr.BadRequest("invalid teacher id"))
		return
	}
	teacher, err := h.service.GetTeacher(c.Request.Context(), tenantID, id)
	if err != nil {
		if errors.Is(err, ErrTeacherNotFound) {
			apperr.Abort(c, apperr.NotFound("teacher not found"))
			return
		}
		apperr.Abort(c, apperr.InternalError(err.Error()))
		return
	}
	response.OK(c, teacher)
}

func (h *Handler) CreateTeacher(c *gin.Context) {
	tenantID, _ := middleware.GetCurrentTenantID(c)
	var req CreateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Abort(c, apperr.ValidationFailed(err.Error()))
		return
	}
	if err := validator.ValidateStruct(req); err != nil {
		abortValidation(c, err)
		return
	}
	teacher, err := h.service.CreateTeacher(c.Request.Context(), tenantID, req)
	if err != nil {
		apperr.Abort(c, apperr.InternalError(err.Error()))
		return
	}
	response.Created(c, teacher)
}

func (h *Handler) UpdateTeacher(c *gin.Context) {
	tenantID, _ := middleware.GetCurrentTenantID(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apperr.Abort(c, apperr.BadRequest("invalid teacher id"))
		return
	}
	var req UpdateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Abort(c, apperr.ValidationFailed(err.Error()))
		return
	}
	teacher, err := h.service.UpdateTeacher(c.Request.Context(), tenantID, id, req)
	if err != nil {
		if errors.Is(err, ErrTeacherNotFound) {
			apperr.Abort(c, apperr.NotFound("teacher not found"))
			return
		}
		apperr.Abort(c, apperr.InternalError(err.Error()))
		return
	}
	response.OK(c, teacher)
}

func (h *Handler) DeleteTeacher(c *gin.Context) {
	tenantID, _ := middleware.GetCurrentTenantID(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apperr.Abort(c, apperr.BadRequest("invalid teacher id"))
		return
	}
	if err := h.service.DeleteTeacher(c.Request.Context(), tenantID, id); err != nil {
		apperr.Abort(c, apperr.InternalError(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// ---------------------------------------------------------------- Classroom

func (h *Handler) ListClassrooms(c *gin.Context) {
	tenantID, _ := middleware.GetCurrentTenantID(c)
	classrooms, total, err := h.service.ListClassrooms(c.Request.Context(), ClassroomFilter{TenantID: tenantID})
	if err != nil {
		apperr.Abort(c, apperr.InternalError(err.Error()))
		return
	}
	response.OK(c, gin.H{"classrooms": classrooms, "total": total})
}

func (h *Handler) CreateClassroom(c *gin.Context) {
	tenantID, _ := middleware.GetCurrentTenantID(c)
	var req CreateClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Abort(c, apperr.ValidationFailed(err.Error()))
		return
	}
	if err := validator.ValidateStruct(req); err != nil {
		abortValidation(c, err)
		return
	}
	classroom, err := h.service.CreateClassroom(c.Request.Context(), tenantID, req)
	if err != nil {
		apperr.Abort(c, apperr.BadRequest(err.Error()))
		return
	}
	response.Created(c, classroom)
}

func (h *Handler) UpdateClassroom(c *gin.Context) {
	tenantID, _ := middleware.GetCurrentTenantID(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apperr.Abort(c, apperr.BadRequest("invalid classroom id"))
		return
	}
	var req UpdateClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Abort(c, apperr.ValidationFailed(err.Error()))
		return
	}
	classroom, err := h.service.UpdateClassroom(c.Request.Context(), tenantID, id, req)
	if err != nil {
		if errors.Is(err, ErrClassroomNotFound) {
			apperr.Abort(c, apperr.NotFound("classroom not found"))
			return
		}
		apperr.Abort(c, apperr.BadRequest(err.Error()))
		return
	}
	response.OK(c, classroom)
}

func (h *Handler) DeleteClassroom(c *gin.Context) {
	tenantID, _ := middleware.GetCurrentTenantID(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apperr.Abort(c, apperr.BadRequest("invalid classroom id"))
		return
	}
	if err := h.service.DeleteClassroom(c.Request.Context(), tenantID, id); err != nil {
		apperr.Abort(c, apperr.InternalError(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// ---------------------------------------------------------------- Subject

func (h *Handler) ListSubjects(c *gin.Context) {
	tenantID, _ := middleware.GetCurrentTenantID(c)
	subjects, total, err := h.service.ListSubjects(c.Request.Context(), SubjectFilter{TenantID: tenantID})
	if err != nil {
		apperr.Abort(c, apperr.InternalError(err.Error()))
		return
	}
	response.OK(c, gin.H{"subjects": subjects, "total": total})
}

func (h *Handler) CreateSubject(c *gin.Context) {
	tenantID, _ := middleware.GetCurrentTenantID(c)
	var req CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Abort(c, apperr.ValidationFailed(err.Error()))
		return
	}
	if err := validator.ValidateStruct(req); err != nil {
		abortValidation(c, err)
		return
	}
	subject, err := h.service.CreateSubject(c.Request.Context(), tenantID, req)
	if err != nil {
		apperr.Abort(c, apperr.BadRequest(err.Error()))
		return
	}
	response.Created(c, subject)
}

func (h *Handler) UpdateSubject(c *gin.Context) {
	tenantID, _ := middleware.GetCurrentTenantID(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apperr.Abort(c, apperr.BadRequest("invalid subject id"))
		return
	}
	var req UpdateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Abort(c, apperr.ValidationFailed(err.Error()))
		return
	}
	subject, err := h.service.UpdateSubject(c.Request.Context(), tenantID, id, req)
	if err != nil {
		if errors.Is(err, ErrSubjectNotFound) {
			apperr.Abort(c, apperr.NotFound("subject not found"))
			return
		}
		apperr.Abort(c, apperr.BadRequest(err.Error()))
		return
	}
	response.OK(c, subject)
}

func (h *Handler) DeleteSubject(c *gin.Context) {
	tenantID, _ := middleware.GetCurrentTenantID(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apperr.Abort(c, apperr.BadRequest("invalid subject id"))
		return
	}
	if err := h.service.DeleteSubject(c.Request.Context(), tenantID, id); err != nil {
		apperr.Abort(c, apperr.InternalError(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// ---------------------------------------------------------------- Location

func (h *Handler) ListLocations(c *gin.Context) {
	tenantID, _ := middleware.GetCurrentTenantID(c)
	locations, err := h.service.ListLocations(c.Request.Context(), tenantID)
	if err != nil {
		apperr.Abort(c, apperr.InternalError(err.Error()))
		return
	}
	response.OK(c, gin.H{"locations": locations})
}

func (h *Handler) CreateLocation(c *gin.Context) {
	tenantID, _ := middleware.GetCurrentTenantID(c)
	var req CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Abort(c, apperr.ValidationFailed(err.Error()))
		return
	}
	location, err := h.service.CreateLocation(c.Request.Context(), tenantID, req)
	if err != nil {
		apperr.Abort(c, apperr.InternalError(err.Error()))
		return
	}
	response.Created(c, location)
}

func (h *Handler) DeleteLocation(c *gin.Context) {
	tenantID, _ := middleware.GetCurrentTenantID(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apperr.Abort(c, apperr.BadRequest("invalid location id"))
		return
	}
	if err := h.service.DeleteLocation(c.Request.Context(), tenantID, id); err != nil {
		apperr.Abort(c, apperr.InternalError(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// ---------------------------------------------------------------- FixedAssignment

func (h *Handler) ListFixedAssignments(c *gin.Context) {
	tenantID, _ := middleware.GetCurrentTenantID(c)
	assignments, err := h.service.ListFixedAssignments(c.Request.Context(), tenantID)
	if err != nil {
		apperr.Abort(c, apperr.InternalError(err.Error()))
		return
	}
	response.OK(c, gin.H{"fixedAssignments": assignments})
}

func (h *Handler) CreateFixedAssignment(c *gin.Context) {
	tenantID, _ := middleware.GetCurrentTenantID(c)
	var req CreateFixedAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Abort(c, apperr.ValidationFailed(err.Error()))
		return
	}
	if err := validator.ValidateStruct(req); err != nil {
		abortValidation(c, err)
		return
	}
	assignment, err := h.service.CreateFixedAssignment(c.Request.Context(), tenantID, req)
	if err != nil {
		apperr.Abort(c, apperr.BadRequest(err.Error()))
		return
	}
	response.Created(c, assignment)
}

func (h *Handler) DeleteFixedAssignment(c *gin.Context) {
	tenantID, _ := middleware.GetCurrentTenantID(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apperr.Abort(c, apperr.BadRequest("invalid fixed assignment id"))
		return
	}
	if err := h.service.DeleteFixedAssignment(c.Request.Context(), tenantID, id); err != nil {
		apperr.Abort(c, apperr.InternalError(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// ---------------------------------------------------------------- LessonGroup

func (h *Handler) ListLessonGroups(c *gin.Context) {
	tenantID, _ := middleware.GetCurrentTenantID(c)
	groups, err := h.service.ListLessonGroups(c.Request.Context(), tenantID)
	if err != nil {
		apperr.Abort(c, apperr.InternalError(err.Error()))
		return
	}
	response.OK(c, gin.H{"lessonGroups": groups})
}

func (h *Handler) CreateLessonGroup(c *gin.Context) {
	tenantID, _ := middleware.GetCurrentTenantID(c)
	var req CreateLessonGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Abort(c, apperr.ValidationFailed(err.Error()))
		return
	}
	group, err := h.service.CreateLessonGroup(c.Request.Context(), tenantID, req)
	if err != nil {
		apperr.Abort(c, apperr.InternalError(err.Error()))
		return
	}
	response.Created(c, group)
}

func (h *Handler) DeleteLessonGroup(c *gin.Context) {
	tenantID, _ := middleware.GetCurrentTenantID(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apperr.Abort(c, apperr.BadRequest("invalid lesson group id"))
		return
	}
	if err := h.service.DeleteLessonGroup(c.Request.Context(), tenantID, id); err != nil {
		apperr.Abort(c, apperr.InternalError(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// ---------------------------------------------------------------- Duty

func (h *Handler) ListDuties(c *gin.Context) {
	tenantID, _ := middleware.GetCurrentTenantID(c)
	duties, err := h.service.ListDuties(c.Request.Context(), tenantID)
	if err != nil {
		apperr.Abort(c, apperr.InternalError(err.Error()))
		return
	}
	response.OK(c, gin.H{"duties": duties})
}

func (h *Handler) CreateDuty(c *gin.Context) {
	tenantID, _ := middleware.GetCurrentTenantID(c)
	var req CreateDutyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Abort(c, apperr.ValidationFailed(err.Error()))
		return
	}
	if err := validator.ValidateStruct(req); err != nil {
		abortValidation(c, err)
		return
	}
	duty, err := h.service.CreateDuty(c.Request.Context(), tenantID, req)
	if err != nil {
		apperr.Abort(c, apperr.BadRequest(err.Error()))
		return
	}
	response.Created(c, duty)
}

func (h *Handler) DeleteDuty(c *gin.Context) {
	tenantID, _ := middleware.GetCurrentTenantID(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apperr.Abort(c, apperr.BadRequest("invalid duty id"))
		return
	}
	if err := h.service.DeleteDuty(c.Request.Context(), tenantID, id); err != nil {
		apperr.Abort(c, apperr.InternalError(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// ---------------------------------------------------------------- SchoolSettings

func (h *Handler) GetSchoolSettings(c *gin.Context) {
	tenantID, _ := middleware.GetCurrentTenantID(c)
	settings, err := h.service.GetSchoolSettings(c.Request.Context(), tenantID)
	if err != nil {
		if errors.Is(err, ErrSchoolSettingsNotFound) {
			apperr.Abort(c, apperr.NotFound("school settings not configured"))
			return
		}
		apperr.Abort(c, apperr.InternalError(err.Error()))
		return
	}
	response.OK(c, settings)
}

func (h *Handler) UpsertSchoolSettings(c *gin.Context) {
	tenantID, _ := middleware.GetCurrentTenantID(c)
	var req UpsertSchoolSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Abort(c, apperr.ValidationFailed(err.Error()))
		return
	}
	if err := validator.ValidateStruct(req); err != nil {
		abortValidation(c, err)
		return
	}
	settings, err := h.service.UpsertSchoolSettings(c.Request.Context(), tenantID, req)
	if err != nil {
		apperr.Abort(c, apperr.InternalError(err.Error()))
		return
	}
	response.OK(c, settings)
}
