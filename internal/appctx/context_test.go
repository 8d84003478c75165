package appctx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/updatekit/updatekit-go/internal/config"
	"github.com/updatekit/updatekit-go/internal/update"
)

func testApp(t *testing.T, endpoint string) *App {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Endpoint = endpoint
	cfg.APIKey = "uk_test_key"
	cfg.AppID = "com.example.app"
	cfg.AppVersionCode = "229"
	cfg.AppVersionName = "2.5.1"
	cfg.DataDir = t.TempDir()

	app, err := New(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func TestCheckForUpdate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"home_url": "https://example.com",
			"data": [{
				"channel": "appstore",
				"version_code": "230",
				"version_name": "2.6.0",
				"app_url": "https://apps.example.com/app/id123",
				"update_type": 3,
				"skip_attempts": 3
			}]
		}`))
	}))
	defer srv.Close()

	app := testApp(t, srv.URL)

	st, err := app.CheckForUpdate(context.Background())
	require.NoError(t, err)

	assert.True(t, st.IsUpdateAvailable)
	assert.True(t, st.ShowPopup)
	assert.Equal(t, update.PolicyPopupForce, st.UpdateType)
	assert.Equal(t, 3, st.RemainingSkipAttempts)
	assert.Equal(t, "2.5.1", st.CurrentVersionName)

	// Skips persist across decision cycles within the same handle.
	assert.Equal(t, 2, app.Engine.SkipUpdate("230"))

	st, err = app.CheckForUpdate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, st.RemainingSkipAttempts)
}

func TestCheckForUpdate_FetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	app := testApp(t, srv.URL)

	_, err := app.CheckForUpdate(context.Background())
	assert.Error(t, err, "fetch failure must surface, never a fabricated zero-value decision")
}

func TestNew_NilArguments(t *testing.T) {
	_, err := New(nil, zaptest.NewLogger(t))
	assert.Error(t, err)

	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	_, err = New(cfg, nil)
	assert.Error(t, err)
}
