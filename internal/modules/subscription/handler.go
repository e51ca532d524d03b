package subscription

import (
	"github.com/AloneRunner/DersTimeTable/internal/middleware"
	apperr "github.com/AloneRunner/DersTimeTable/internal/pkg/errors"
	"github.com/AloneRunner/DersTimeTable/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler exposes the trial/status endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates a new subscription Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the subscription endpoints under rg.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	subs := rg.Group("/subscriptions")
	subs.POST("/trial", h.StartTrial)
	subs.GET("/status", h.Status)
}

func (h *Handler) StartTrial(c *gin.Context) {
	tenantID, _ := middleware.GetCurrentTenantID(c)
	resp, err := h.service.StartTrial(c.Request.Context(), tenantID)
	if err != nil {
		if err == ErrTrialAlreadyStarted {
			apperr.Abort(c, apperr.Conflict(err.Error()))
			return
		}
		apperr.Abort(c, apperr.InternalError(err.Error()))
		return
	}
	response.Created(c, resp)
}

func (h *Handler) Status(c *gin.Context) {
	tenantID, _ := middleware.GetCurrentTenantID(c)
	resp, err := h.service.Status(c.Request.Context(), tenantID)
	if err != nil {
		apperr.Abort(c, apperr.InternalError(err.Error()))
		return
	}
	response.OK(c, resp)
}

// RequireActive returns a middleware that aborts with 402 Payment Required
// unless the requesting tenant has an active subscription or trial. Use it
// to gate subscription-only operations such as schedule generation.
func RequireActive(service *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID, _ := middleware.GetCurrentTenantID(c)
		entitled, err := service.IsEntitled(c.Request.Context(), tenantID)
		if err != nil {
			apperr.Abort(c, apperr.InternalError(err.Error()))
			c.Abort()
			return
		}
		if !entitled {
			apperr.Abort(c, apperr.SubscriptionRequired())
			c.Abort()
			return
		}
		c.Next()
	}
}
