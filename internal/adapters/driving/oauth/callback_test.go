//nolint:noctx // Test file uses http.Get for convenience; context not required in tests
package oauth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T, state string) *CallbackServer {
	t.Helper()
	server := NewCallbackServer(0, state)
	require.NoError(t, server.Start())
	t.Cleanup(func() { _ = server.Stop() })
	return server
}

func callback(t *testing.T, server *CallbackServer, query url.Values) *http.Response {
	t.Helper()
	resp, err := http.Get(server.RedirectURI() + "?" + query.Encode())
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestNewCallbackServer(t *testing.T) {
	server := NewCallbackServer(8080, "test-state-123")

	require.NotNil(t, server)
	assert.Equal(t, 8080, server.port)
	assert.Equal(t, "test-state-123", server.expectedState)
	assert.NotNil(t, server.codeChan)
	assert.NotNil(t, server.errChan)
	assert.Nil(t, server.server)
	assert.Nil(t, server.listener)
}

func TestCallbackServer_Start_RandomPort(t *testing.T) {
	server := startServer(t, "s")

	assert.NotZero(t, server.Port())
	assert.Equal(t, fmt.Sprintf("http://localhost:%d/callback", server.Port()), server.RedirectURI())
}

func TestCallbackServer_Start_PortInUse(t *testing.T) {
	first := startServer(t, "s1")

	second := NewCallbackServer(first.Port(), "s2")
	err := second.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to listen")
}

func TestCallbackServer_Stop_NotStarted(t *testing.T) {
	assert.NoError(t, NewCallbackServer(0, "s").Stop())
}

func TestCallbackServer_HandleCallback_Success(t *testing.T) {
	server := startServer(t, "state-abc")

	resp := callback(t, server, url.Values{"code": {"code-xyz"}, "state": {"state-abc"}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Authorization successful!")

	code, err := server.WaitForCode(context.Background(), time.Second)
	require.NoError(t, err)
	assert.Equal(t, "code-xyz", code)
}

func TestCallbackServer_HandleCallback_Failures(t *testing.T) {
	tests := []struct {
		name    string
		query   url.Values
		wantErr string
	}{
		{
			name:    "state mismatch",
			query:   url.Values{"code": {"c"}, "state": {"wrong"}},
			wantErr: "state mismatch",
		},
		{
			name:    "empty state",
			query:   url.Values{"code": {"c"}},
			wantErr: "state mismatch",
		},
		{
			name:    "missing code",
			query:   url.Values{"state": {"good"}},
			wantErr: "no authorization code received",
		},
		{
			name:    "provider error",
			query:   url.Values{"error": {"access_denied"}, "error_description": {"User <denied>"}},
			wantErr: "oauth error: access_denied - User <denied>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := startServer(t, "good")

			resp := callback(t, server, tt.query)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Contains(t, string(body), "Authorization failed")
			assert.NotContains(t, string(body), "<denied>")

			_, err = server.WaitForCode(context.Background(), time.Second)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCallbackServer_RepeatedFailuresDoNotBlock(t *testing.T) {
	server := startServer(t, "good")

	for i := 0; i < 3; i++ {
		resp := callback(t, server, url.Values{"state": {"bad"}})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
}

func TestCallbackServer_Deliver(t *testing.T) {
	server := NewCallbackServer(0, "s")

	server.Deliver("first")
	server.Deliver("second")

	code, err := server.WaitForCode(context.Background(), time.Second)
	require.NoError(t, err)
	assert.Equal(t, "first", code)
}

func TestCallbackServer_WaitForCode_Timeout(t *testing.T) {
	server := NewCallbackServer(0, "s")

	code, err := server.WaitForCode(context.Background(), 50*time.Millisecond)

	assert.ErrorIs(t, err, ErrCallbackTimeout)
	assert.Empty(t, code)
}

func TestCallbackServer_WaitForCode_Cancelled(t *testing.T) {
	server := NewCallbackServer(0, "s")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := server.WaitForCode(ctx, time.Minute)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCallbackServer_WaitForCode_Error(t *testing.T) {
	server := NewCallbackServer(0, "s")
	want := errors.New("oauth error occurred")
	server.fail(want)

	code, err := server.WaitForCode(context.Background(), time.Second)
	assert.Equal(t, want, err)
	assert.Empty(t, code)
}

func TestCallbackServer_ConcurrentCallbacks(t *testing.T) {
	server := startServer(t, "s")

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := http.Get(server.RedirectURI() + fmt.Sprintf("?code=c%d&state=s", i))
			if assert.NoError(t, err) {
				resp.Body.Close()
			}
		}(i)
	}
	wg.Wait()

	code, err := server.WaitForCode(context.Background(), time.Second)
	require.NoError(t, err)
	assert.Regexp(t, `^c[0-4]$`, code)
}

func TestGenerateState(t *testing.T) {
	a, err := GenerateState()
	require.NoError(t, err)
	b, err := GenerateState()
	require.NoError(t, err)

	assert.Len(t, a, 43)
	assert.NotEqual(t, a, b)
}
