package drivers

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockDriver_RecordsCalls(t *testing.T) {
	m := NewMockDriver()
	u, err := m.SignedURL(context.Background(), "b", "video/1/a.mp4", SignOptions{Method: http.MethodGet, TTL: 15 * time.Minute})
	require.NoError(t, err)
	assert.Equal(t, "https://mock.invalid/b/video/1/a.mp4?expires_in=900&method=GET", u)

	calls := m.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "video/1/a.mp4", calls[0].Object)
}

func TestMockDriver_SignErr(t *testing.T) {
	m := NewMockDriver()
	m.SignErr = errors.New("no signing permission")

	_, err := m.SignedURL(context.Background(), "b", "o", SignOptions{Method: http.MethodGet, TTL: time.Minute})
	assert.EqualError(t, err, "no signing permission")
	assert.Len(t, m.Calls(), 1)
}

func TestMockDriver_RejectsNonPositiveTTL(t *testing.T) {
	m := NewMockDriver()

	_, err := m.SignedURL(context.Background(), "b", "o", SignOptions{Method: http.MethodGet})
	assert.ErrorIs(t, err, ErrExpired)
}

func TestMockDriver_ExistsDelete(t *testing.T) {
	m := NewMockDriver("b/video/1/a.mp4")
	ctx := context.Background()

	ok, err := m.Exists(ctx, "b", "video/1/a.mp4")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, m.Delete(ctx, "b", "video/1/a.mp4"))
	assert.ErrorIs(t, m.Delete(ctx, "b", "video/1/a.mp4"), ErrObjectNotFound)
}
