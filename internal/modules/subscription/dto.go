package subscription

import (
	"time"

	"github.com/AloneRunner/DersTimeTable/internal/pkg/database/models"
)

// StatusResponse reports a tenant's current subscription state.
type StatusResponse struct {
	OK        bool       `json:"ok"`
	Provider  string     `json:"provider,omitempty"`
	Status    string     `json:"status,omitempty"`
	StartAt   *time.Time `json:"startAt,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	Reason    string     `json:"reason,omitempty"`
}

func statusFromModel(sub *models.Subscription) StatusResponse {
	return StatusResponse{
		OK:        sub.IsActive(),
		Provider:  string(sub.Provider),
		Status:    string(sub.Status),
		StartAt:   &sub.StartAt,
		ExpiresAt: &sub.ExpiresAt,
	}
}
