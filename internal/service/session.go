package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"autoparts-storefront-api/internal/cache"
	"autoparts-storefront-api/internal/cms"
	"autoparts-storefront-api/internal/model"
	"autoparts-storefront-api/pkg/apierror"
	"autoparts-storefront-api/pkg/uid"
)

const (
	pathAuthLocal    = "/auth/new-local"
	sessionKeyPrefix = "session:"
)

// SessionService exchanges CMS credentials for opaque session tokens. The
// CMS JWT never leaves the server; clients carry only the token.
type SessionService interface {
	SignIn(ctx context.Context, identifier, password string) (string, *model.SessionData, error)
	Validate(ctx context.Context, token string) (*model.SessionData, error)
	Refresh(ctx context.Context, token string) (*model.SessionData, error)
	SignOut(ctx context.Context, token string) error
}

type sessionService struct {
	cms   *cms.Client
	cache cache.Cache
	ttl   time.Duration
}

// NewSessionService creates the session service.
func NewSessionService(client *cms.Client, c cache.Cache, ttl time.Duration) SessionService {
	return &sessionService{cms: client, cache: c, ttl: ttl}
}

func (s *sessionService) SignIn(ctx context.Context, identifier, password string) (string, *model.SessionData, error) {
	if identifier == "" || password == "" {
		return "", nil, apierror.ValidationError("Credenciales incompletas.",
			apierror.FieldError{Field: "identifier", Message: "identifier and password are required"})
	}

	raw, err := s.cms.Post(ctx, pathAuthLocal, map[string]string{
		"identifier": identifier,
		"password":   password,
	})
	if err != nil {
		var statusErr *cms.StatusError
		if errors.As(err, &statusErr) &&
			(statusErr.StatusCode == http.StatusBadRequest || statusErr.StatusCode == http.StatusUnauthorized) {
			return "", nil, apierror.Unauthorized("Credenciales inválidas.")
		}
		log.Printf("[SessionService] Sign-in failed: %v", err)
		return "", nil, apierror.Upstream("No se pudo iniciar sesión.", err)
	}

	var body struct {
		JWT  string          `json:"jwt"`
		User json.RawMessage `json:"user"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || body.JWT == "" {
		log.Printf("[SessionService] Unexpected auth response shape")
		return "", nil, apierror.Upstream("No se pudo iniciar sesión.", err)
	}

	now := time.Now().UTC()
	data := &model.SessionData{
		CMSToken:  body.JWT,
		User:      body.User,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	token := uid.New()
	payload, err := json.Marshal(data)
	if err != nil {
		return "", nil, apierror.InternalError("No se pudo iniciar sesión.").WithCause(err)
	}
	if err := s.cache.Set(ctx, sessionKeyPrefix+token, payload, s.ttl); err != nil {
		return "", nil, apierror.InternalError("No se pudo iniciar sesión.").WithCause(err)
	}

	return token, data, nil
}

func (s *sessionService) Validate(ctx context.Context, token string) (*model.SessionData, error) {
	if token == "" {
		return nil, apierror.Unauthorized("Sesión requerida.")
	}

	payload, err := s.cache.Get(ctx, sessionKeyPrefix+token)
	if err != nil {
		if err == cache.ErrCacheMiss {
			return nil, apierror.Unauthorized("Sesión expirada o inválida.")
		}
		return nil, apierror.InternalError("No se pudo validar la sesión.").WithCause(err)
	}

	var data model.SessionData
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, apierror.Unauthorized("Sesión expirada o inválida.")
	}
	if time.Now().After(data.ExpiresAt) {
		_ = s.cache.Delete(ctx, sessionKeyPrefix+token)
		return nil, apierror.Unauthorized("Sesión expirada o inválida.")
	}

	return &data, nil
}

// Refresh extends a valid session by the configured TTL.
func (s *sessionService) Refresh(ctx context.Context, token string) (*model.SessionData, error) {
	data, err := s.Validate(ctx, token)
	if err != nil {
		return nil, err
	}

	data.ExpiresAt = time.Now().UTC().Add(s.ttl)

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, apierror.InternalError("No se pudo renovar la sesión.").WithCause(err)
	}
	if err := s.cache.Set(ctx, sessionKeyPrefix+token, payload, s.ttl); err != nil {
		return nil, apierror.InternalError("No se pudo renovar la sesión.").WithCause(err)
	}

	return data, nil
}

func (s *sessionService) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.cache.Delete(ctx, sessionKeyPrefix+token)
}

// Ensure sessionService implements SessionService
var _ SessionService = (*sessionService)(nil)
