package auth

import "time"

// RequestCodeRequest asks for a bridge code to be issued to an email
// address. No account needs to exist ahead of time; the first request for
// an email creates its identity implicitly.
type RequestCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name,omitempty" binding:"omitempty,max=150"`
}

// RequestCodeResponse echoes the issued code directly in the response body,
// matching the original source's dev-mode behavior: there is no email
// provider wired up, so the code that would have been emailed is returned
// to the caller instead.
type RequestCodeResponse struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// VerifyCodeRequest exchanges a bridge code for a session.
type VerifyCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6,numeric"`
}

// RefreshRequest exchanges a refresh token for a new token pair.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// SessionResponse is the token pair returned on successful verification or
// refresh.
type SessionResponse struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
	Email        string    `json:"email"`
}

// MeResponse describes the currently authenticated identity.
type MeResponse struct {
	Email    string `json:"email"`
	TenantID string `json:"tenantId"`
}
