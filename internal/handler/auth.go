package handler

import (
	"encoding/json"
	"net/http"

	"autoparts-storefront-api/internal/service"
	"autoparts-storefront-api/pkg/apierror"
	"autoparts-storefront-api/pkg/response"
)

// AuthHandler handles sign-in and sign-out.
type AuthHandler struct {
	sessionService service.SessionService
	captchaService service.CaptchaService
}

// NewAuthHandler creates a new auth handler. captchaService may be nil to
// disable the captcha gate on sign-in.
func NewAuthHandler(sessionService service.SessionService, captchaService service.CaptchaService) *AuthHandler {
	return &AuthHandler{
		sessionService: sessionService,
		captchaService: captchaService,
	}
}

// SignInRequest is the sign-in payload.
type SignInRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
	CaptchaID  string `json:"captchaId,omitempty"`
	Captcha    string `json:"captcha,omitempty"`
}

// SignInResponse carries the opaque session token.
type SignInResponse struct {
	Token string          `json:"token"`
	User  json.RawMessage `json:"user,omitempty"`
}

// SignIn handles POST /api/v1/auth/sign-in
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON"))
		return
	}
	defer r.Body.Close()

	if h.captchaService != nil && req.CaptchaID != "" {
		ok, err := h.captchaService.Verify(r.Context(), req.CaptchaID, req.Captcha)
		if err != nil {
			response.Error(w, err)
			return
		}
		if !ok {
			response.Error(w, apierror.Forbidden("Captcha inválido."))
			return
		}
	}

	token, data, err := h.sessionService.SignIn(r.Context(), req.Identifier, req.Password)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, SignInResponse{Token: token, User: data.User})
}

// Refresh handles POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	data, err := h.sessionService.Refresh(r.Context(), r.Header.Get("X-Token"))
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, map[string]interface{}{
		"expires_at": data.ExpiresAt,
	})
}

// SignOut handles POST /api/v1/auth/sign-out
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionService.SignOut(r.Context(), r.Header.Get("X-Token")); err != nil {
		response.Error(w, err)
		return
	}

	response.NoContent(w)
}
