package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoparts-storefront-api/internal/cache"
)

func newTestCaptcha(t *testing.T, length int, charset string, ttl time.Duration) CaptchaService {
	t.Helper()
	memCache := cache.NewMemoryCache()
	t.Cleanup(func() { memCache.Close() })
	return NewCaptchaService(memCache, length, charset, ttl)
}

func TestCaptchaNewGeneratesCodeFromCharset(t *testing.T) {
	svc := newTestCaptcha(t, 6, "", time.Minute)

	challenge, err := svc.New(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, challenge.ID)
	assert.Len(t, challenge.Code, 6)

	for _, r := range challenge.Code {
		assert.True(t, strings.ContainsRune(defaultCaptchaCharset, r),
			"code must only use charset characters, got %q", r)
	}
}

func TestCaptchaLengthClamping(t *testing.T) {
	svc := newTestCaptcha(t, 1, "", time.Minute)
	challenge, err := svc.New(context.Background())
	require.NoError(t, err)
	assert.Len(t, challenge.Code, minCaptchaLength)

	svc = newTestCaptcha(t, 100, "", time.Minute)
	challenge, err = svc.New(context.Background())
	require.NoError(t, err)
	assert.Len(t, challenge.Code, maxCaptchaLength)
}

func TestCaptchaVerifyCaseInsensitive(t *testing.T) {
	svc := newTestCaptcha(t, 6, "", time.Minute)
	ctx := context.Background()

	challenge, err := svc.New(ctx)
	require.NoError(t, err)

	ok, err := svc.Verify(ctx, challenge.ID, strings.ToLower(challenge.Code))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCaptchaIsSingleUse(t *testing.T) {
	svc := newTestCaptcha(t, 6, "", time.Minute)
	ctx := context.Background()

	challenge, err := svc.New(ctx)
	require.NoError(t, err)

	ok, err := svc.Verify(ctx, challenge.ID, challenge.Code)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = svc.Verify(ctx, challenge.ID, challenge.Code)
	require.NoError(t, err)
	assert.False(t, ok, "a challenge must not verify twice")
}

func TestCaptchaWrongAnswerConsumesChallenge(t *testing.T) {
	svc := newTestCaptcha(t, 6, "", time.Minute)
	ctx := context.Background()

	challenge, err := svc.New(ctx)
	require.NoError(t, err)

	ok, err := svc.Verify(ctx, challenge.ID, "WRONG!")
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = svc.Verify(ctx, challenge.ID, challenge.Code)
	require.NoError(t, err)
	assert.False(t, ok, "a failed attempt must burn the challenge")
}

func TestCaptchaVerifyUnknownID(t *testing.T) {
	svc := newTestCaptcha(t, 6, "", time.Minute)

	ok, err := svc.Verify(context.Background(), "missing", "ABC123")
	require.NoError(t, err)
	assert.False(t, ok)
}
