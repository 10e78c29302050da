package service

import (
	"context"
	"crypto/rand"
	"log"
	"math/big"
	"strings"
	"time"

	"autoparts-storefront-api/internal/cache"
	"autoparts-storefront-api/pkg/apierror"
	"autoparts-storefront-api/pkg/uid"
)

const captchaKeyPrefix = "captcha:"

// defaultCaptchaCharset omits visually ambiguous characters (0/O, 1/I).
const defaultCaptchaCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const (
	minCaptchaLength = 4
	maxCaptchaLength = 12
)

// Challenge is a generated captcha. Code is handed to the rendering layer
// and never returned to API clients alongside the id.
type Challenge struct {
	ID   string `json:"id"`
	Code string `json:"code"`
}

// CaptchaService issues and verifies single-use captcha challenges.
type CaptchaService interface {
	// New generates a challenge and stores it with the configured TTL.
	New(ctx context.Context) (*Challenge, error)

	// Verify checks an answer against a stored challenge. Challenges are
	// single-use: a verification attempt consumes the challenge whether or
	// not the answer matched. Comparison is case-insensitive.
	Verify(ctx context.Context, id, answer string) (bool, error)
}

type captchaService struct {
	cache   cache.Cache
	length  int
	charset string
	ttl     time.Duration
}

// NewCaptchaService creates the captcha service. Length is clamped to a
// sane range and an empty charset falls back to the default.
func NewCaptchaService(c cache.Cache, length int, charset string, ttl time.Duration) CaptchaService {
	if length < minCaptchaLength {
		length = minCaptchaLength
	}
	if length > maxCaptchaLength {
		length = maxCaptchaLength
	}
	if charset == "" {
		charset = defaultCaptchaCharset
	}
	return &captchaService{
		cache:   c,
		length:  length,
		charset: charset,
		ttl:     ttl,
	}
}

func (s *captchaService) New(ctx context.Context) (*Challenge, error) {
	code, err := randomCode(s.length, s.charset)
	if err != nil {
		log.Printf("[CaptchaService] Code generation failed: %v", err)
		return nil, apierror.InternalError("No se pudo generar el captcha.").WithCause(err)
	}

	id := uid.New()
	if err := s.cache.Set(ctx, captchaKeyPrefix+id, []byte(code), s.ttl); err != nil {
		return nil, apierror.InternalError("No se pudo generar el captcha.").WithCause(err)
	}

	return &Challenge{ID: id, Code: code}, nil
}

func (s *captchaService) Verify(ctx context.Context, id, answer string) (bool, error) {
	if id == "" || answer == "" {
		return false, nil
	}

	key := captchaKeyPrefix + id
	stored, err := s.cache.Get(ctx, key)
	if err != nil {
		if err == cache.ErrCacheMiss {
			return false, nil
		}
		return false, apierror.InternalError("No se pudo verificar el captcha.").WithCause(err)
	}

	// Consume before comparing so a wrong answer burns the challenge too.
	_ = s.cache.Delete(ctx, key)

	return strings.EqualFold(string(stored), strings.TrimSpace(answer)), nil
}

func randomCode(length int, charset string) (string, error) {
	chars := []rune(charset)
	max := big.NewInt(int64(len(chars)))

	code := make([]rune, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = chars[n.Int64()]
	}
	return string(code), nil
}

// Ensure captchaService implements CaptchaService
var _ CaptchaService = (*captchaService)(nil)
