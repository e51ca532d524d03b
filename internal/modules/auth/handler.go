package auth

import (
	"errors"
	"net/http"

	"github.com/AloneRunner/DersTimeTable/internal/middleware"
	apperr "github.com/AloneRunner/DersTimeTable/internal/pkg/errors"
	"github.com/AloneRunner/DersTimeTable/internal/pkg/response"
	"github.com/AloneRunner/DersTimeTable/internal/pkg/validator"
	svcauth "github.com/AloneRunner/DersTimeTable/internal/services/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler exposes the bridge-code login endpoints.
type Handler struct {
	service *Service
	jwt     *svcauth.JWTService
}

// NewHandler creates a new auth Handler.
func NewHandler(service *Service, jwt *svcauth.JWTService) *Handler {
	return &Handler{service: service, jwt: jwt}
}

// RegisterRoutes mounts the bridge-code auth endpoints under rg. These
// routes run ahead of middleware.Auth() in the chain: the caller has no
// token yet, only an X-Tenant-ID header resolved by middleware.Tenant.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/request-code", h.RequestCode)
	auth.POST("/verify", h.VerifyCode)
	auth.POST("/refresh", h.Refresh)
	auth.POST("/logout", h.Logout)
	auth.GET("/me", middleware.AuthRequired(h.jwt), h.Me)
}

func (h *Handler) tenantID(c *gin.Context) (uuid.UUID, error) {
	raw := middleware.GetTenantID(c)
	if raw == "" {
		return uuid.Nil, errors.New("missing tenant")
	}
	return uuid.Parse(raw)
}

func (h *Handler) RequestCode(c *gin.Context) {
	tenantID, err := h.tenantID(c)
	if err != nil {
		apperr.Abort(c, apperr.BadRequest("missing or invalid X-Tenant-ID header"))
		return
	}

	var req RequestCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Abort(c, apperr.ValidationFailed(err.Error()))
		return
	}
	if err := validator.ValidateStruct(req); err != nil {
		abortValidation(c, err)
		return
	}

	resp, err := h.service.RequestCode(c.Request.Context(), tenantID, req)
	if err != nil {
		apperr.Abort(c, apperr.BadRequest(err.Error()))
		return
	}
	response.Created(c, resp)
}

func (h *Handler) VerifyCode(c *gin.Context) {
	tenantID, err := h.tenantID(c)
	if err != nil {
		apperr.Abort(c, apperr.BadRequest("missing or invalid X-Tenant-ID header"))
		return
	}

	var req VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Abort(c, apperr.ValidationFailed(err.Error()))
		return
	}
	if err := validator.ValidateStruct(req); err != nil {
		abortValidation(c, err)
		return
	}

	session, err := h.service.VerifyCode(c.Request.Context(), tenantID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrCodeNotFound):
			apperr.Abort(c, apperr.NotFound("code not found"))
		case errors.Is(err, ErrCodeExpired):
			apperr.Abort(c, apperr.Unauthorized("code expired"))
		case errors.Is(err, ErrCodeAlreadyConsumed):
			apperr.Abort(c, apperr.Unauthorized("code already used"))
		default:
			apperr.Abort(c, apperr.InternalError(err.Error()))
		}
		return
	}
	response.OK(c, session)
}

func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Abort(c, apperr.ValidationFailed(err.Error()))
		return
	}
	if err := validator.ValidateStruct(req); err != nil {
		abortValidation(c, err)
		return
	}

	session, err := h.service.Refresh(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrRefreshTokenInvalid) {
			apperr.Abort(c, apperr.Unauthorized("refresh token invalid or expired"))
			return
		}
		apperr.Abort(c, apperr.InternalError(err.Error()))
		return
	}
	response.OK(c, session)
}

func (h *Handler) Logout(c *gin.Context) {
	tenantID, err := h.tenantID(c)
	if err != nil {
		apperr.Abort(c, apperr.BadRequest("missing or invalid X-Tenant-ID header"))
		return
	}

	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Abort(c, apperr.ValidationFailed(err.Error()))
		return
	}

	if err := h.service.Logout(c.Request.Context(), tenantID, req.Email); err != nil {
		apperr.Abort(c, apperr.InternalError(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Me(c *gin.Context) {
	claims, ok := middleware.GetCurrentClaims(c)
	if !ok {
		apperr.Abort(c, apperr.Unauthorized("not authenticated"))
		return
	}
	response.OK(c, MeResponse{Email: claims.Email, TenantID: claims.TenantID.String()})
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
