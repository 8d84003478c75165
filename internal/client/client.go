// Package client talks to the remote config endpoint and materializes the
// channel records the decision engine consumes. Retry policy, if any, belongs
// to the caller.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/updatekit/updatekit-go/internal/config"
	"github.com/updatekit/updatekit-go/internal/update"
)

// httpTimeout is the timeout for config endpoint requests.
const httpTimeout = 10 * time.Second

// Client fetches channel configuration over HTTP.
type Client struct {
	cfg        *config.Config
	apiKey     string
	installID  string
	logger     *zap.Logger
	httpClient *http.Client
}

// New creates a config client. apiKey must already be resolved; installID is
// the persisted per-installation identifier.
func New(cfg *config.Config, apiKey, installID string, logger *zap.Logger) *Client {
	return &Client{
		cfg:       cfg,
		apiKey:    apiKey,
		installID: installID,
		logger:    logger,
		httpClient: &http.Client{
			Timeout: httpTimeout,
		},
	}
}

// SetHTTPClient replaces the underlying HTTP client. Primarily for testing.
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.httpClient = hc
}

// FetchChannel performs a single GET against the config endpoint and returns
// the decoded response. The response must carry at least one channel record.
func (c *Client) FetchChannel(ctx context.Context) (*update.ChannelResponse, error) {
	reqURL, err := c.buildURL()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build config request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("Config fetch failed", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch channel config: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug("Config endpoint returned non-200 status",
			zap.Int("status_code", resp.StatusCode))
		return nil, fmt.Errorf("config endpoint returned status %d", resp.StatusCode)
	}

	var channelResp update.ChannelResponse
	if err := json.NewDecoder(resp.Body).Decode(&channelResp); err != nil {
		return nil, fmt.Errorf("failed to decode channel config: %w", err)
	}

	if len(channelResp.Data) == 0 {
		return nil, fmt.Errorf("config endpoint returned no channel data")
	}

	c.logger.Debug("Fetched channel config",
		zap.String("channel", channelResp.Data[0].Channel),
		zap.String("target", channelResp.Data[0].VersionCode))

	return &channelResp, nil
}

// buildURL assembles the endpoint URL with the app, device, and locale
// parameters the server resolves a target version against.
func (c *Client) buildURL() (string, error) {
	u, err := url.Parse(c.cfg.Endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", c.cfg.Endpoint, err)
	}

	q := u.Query()
	q.Set("channel", c.cfg.Channel)
	q.Set("app_id", c.cfg.AppID)
	q.Set("app_version_code", c.cfg.AppVersionCode)
	q.Set("app_version_name", c.cfg.AppVersionName)
	q.Set("phone_locale_country", c.cfg.LocaleCountry)
	q.Set("phone_locale_language", c.cfg.LocaleLanguage)
	q.Set("os_version_code", c.cfg.OSVersionCode)
	q.Set("device_manufacturer", c.cfg.DeviceManufacturer)
	q.Set("device_brand", c.cfg.DeviceBrand)
	q.Set("device_model", c.cfg.DeviceModel)
	if c.installID != "" {
		q.Set("app_instance_id", c.installID)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}
