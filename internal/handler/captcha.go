package handler

import (
	"encoding/json"
	"net/http"

	"autoparts-storefront-api/internal/service"
	"autoparts-storefront-api/pkg/apierror"
	"autoparts-storefront-api/pkg/response"
)

// CaptchaHandler handles captcha HTTP requests.
type CaptchaHandler struct {
	captchaService service.CaptchaService
}

// NewCaptchaHandler creates a new captcha handler.
func NewCaptchaHandler(captchaService service.CaptchaService) *CaptchaHandler {
	return &CaptchaHandler{
		captchaService: captchaService,
	}
}

// New handles POST /api/v1/captcha
func (h *CaptchaHandler) New(w http.ResponseWriter, r *http.Request) {
	challenge, err := h.captchaService.New(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Created(w, challenge)
}

// VerifyRequest is the payload for a verification attempt.
type VerifyRequest struct {
	ID     string `json:"id"`
	Answer string `json:"answer"`
}

// Verify handles POST /api/v1/captcha/verify
func (h *CaptchaHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON"))
		return
	}
	defer r.Body.Close()

	ok, err := h.captchaService.Verify(r.Context(), req.ID, req.Answer)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, map[string]bool{"valid": ok})
}
