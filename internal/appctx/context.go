// Package appctx wires the client, state store, and decision engine into a
// single handle constructed once at startup and passed by reference. Multiple
// independent handles (e.g. two configurations side by side) are fine as long
// as they use separate data directories.
package appctx

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/updatekit/updatekit-go/internal/client"
	"github.com/updatekit/updatekit-go/internal/config"
	"github.com/updatekit/updatekit-go/internal/kv"
	"github.com/updatekit/updatekit-go/internal/secret"
	"github.com/updatekit/updatekit-go/internal/state"
	"github.com/updatekit/updatekit-go/internal/update"
)

// App holds all application dependencies.
type App struct {
	Config *config.Config
	Logger *zap.Logger
	KV     kv.Store
	State  *state.Store
	Engine *update.Engine
	Client *client.Client
}

// New creates an application handle from validated configuration.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	kvStore, err := kv.NewBolt(cfg.DataDir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open local state store: %w", err)
	}

	stateStore := state.New(kvStore, logger)

	apiKey, err := secret.Resolve(cfg.APIKey)
	if err != nil {
		kvStore.Close()
		return nil, fmt.Errorf("failed to resolve API key: %w", err)
	}

	return &App{
		Config: cfg,
		Logger: logger,
		KV:     kvStore,
		State:  stateStore,
		Engine: update.NewEngine(stateStore, cfg.AppVersionName, logger),
		Client: client.New(cfg, apiKey, stateStore.InstallID(), logger),
	}, nil
}

// CheckForUpdate fetches the channel configuration and runs one decision
// cycle against the first channel record.
func (a *App) CheckForUpdate(ctx context.Context) (update.UpdateState, error) {
	resp, err := a.Client.FetchChannel(ctx)
	if err != nil {
		return update.UpdateState{}, err
	}

	return a.Engine.CalculateUpdateState(resp.Data[0], a.Config.AppVersionCode), nil
}

// Close releases the local state store.
func (a *App) Close() error {
	return a.KV.Close()
}
