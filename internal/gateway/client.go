// Package gateway implements the typed HTTP client for the hosting
// provider's REST API. Every request authenticates with the per-user API
// key carried as the "token" query parameter. The gateway itself never
// retries; retry policy belongs to the caller.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"gamepanel/internal/constants"
	"gamepanel/internal/errors"
)

// Client is a stateless provider API client bound to one credential.
// It is safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a new provider API client for the given credential
func New(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = constants.DefaultProviderBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: constants.DefaultGatewayTimeout,
		},
	}
}

// NewWithHTTPClient creates a client with a caller-supplied http.Client,
// used by tests to point at an httptest server
func NewWithHTTPClient(baseURL, apiKey string, hc *http.Client) *Client {
	c := New(baseURL, apiKey)
	if hc != nil {
		c.httpClient = hc
	}
	return c
}

// ListServices fetches the authoritative service list
func (c *Client) ListServices(ctx context.Context) ([]RemoteService, error) {
	var services []RemoteService
	if err := c.get(ctx, "/service/list", &services); err != nil {
		return nil, err
	}

	// Entries without an id cannot be addressed by any follow-up call;
	// quarantine them at the boundary instead of passing them inward.
	valid := services[:0]
	for _, s := range services {
		if s.ID == "" {
			continue
		}
		valid = append(valid, s)
	}
	return valid, nil
}

// GetServiceDetail fetches the extended payload for one service
func (c *Client) GetServiceDetail(ctx context.Context, serviceID string) (*ServiceDetail, error) {
	var detail ServiceDetail
	if err := c.get(ctx, "/service/"+serviceID, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// GetServiceStatus fetches the live status of one service
func (c *Client) GetServiceStatus(ctx context.Context, serviceID string) (ServiceStatus, error) {
	var info StatusInfo
	if err := c.get(ctx, "/service/"+serviceID+"/status", &info); err != nil {
		return StatusUnknown, err
	}
	if info.Status == "" {
		return StatusUnknown, nil
	}
	return info.Status, nil
}

// StartService boots a stopped service
func (c *Client) StartService(ctx context.Context, serviceID string) error {
	return c.post(ctx, "/service/"+serviceID+"/start", nil, nil)
}

// StopService shuts a running service down
func (c *Client) StopService(ctx context.Context, serviceID string) error {
	return c.post(ctx, "/service/"+serviceID+"/stop", nil, nil)
}

// RestartService restarts a service
func (c *Client) RestartService(ctx context.Context, serviceID string) error {
	return c.post(ctx, "/service/"+serviceID+"/restart", nil, nil)
}

// ReinstallService wipes the service and installs the given OS image with a
// new root password. Destructive; callers must confirm before dispatching.
func (c *Client) ReinstallService(ctx context.Context, serviceID, osID, password string) error {
	body := map[string]string{
		"os":       osID,
		"password": password,
	}
	return c.post(ctx, "/service/"+serviceID+"/reinstall", body, nil)
}

// HideService removes the service from the user's panel without cancelling it
func (c *Client) HideService(ctx context.Context, serviceID string) error {
	return c.post(ctx, "/service/"+serviceID+"/hide", nil, nil)
}

// ExtendService extends the service runtime by the given number of days
func (c *Client) ExtendService(ctx context.Context, serviceID string, durationDays int) error {
	body := map[string]int{"duration": durationDays}
	return c.post(ctx, "/service/"+serviceID+"/extend", body, nil)
}

// CreateBackup requests a backup of the service
func (c *Client) CreateBackup(ctx context.Context, serviceID string) error {
	return c.post(ctx, "/service/"+serviceID+"/backup", nil, nil)
}

// ListOperatingSystems fetches the OS images available for reinstallation
func (c *Client) ListOperatingSystems(ctx context.Context, serviceID string) ([]OSOption, error) {
	var options []OSOption
	if err := c.get(ctx, "/service/"+serviceID+"/os", &options); err != nil {
		return nil, err
	}
	return options, nil
}

// ListIPAllocations fetches the IP assignments of a service
func (c *Client) ListIPAllocations(ctx context.Context, serviceID string) (*IPAllocations, error) {
	var ips IPAllocations
	if err := c.get(ctx, "/service/"+serviceID+"/ip", &ips); err != nil {
		return nil, err
	}
	return &ips, nil
}

// Internal HTTP methods

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// do issues one request and normalizes every failure mode into a PanelError.
// The credential is appended here and never included in error details.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return errors.InternalError(fmt.Sprintf("invalid request URL for %s", path), err)
	}
	q := u.Query()
	q.Set("token", c.apiKey)
	u.RawQuery = q.Encode()

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(errors.ErrJSONMarshal, "failed to marshal request body", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), bodyReader)
	if err != nil {
		return errors.InternalError(fmt.Sprintf("failed to build request for %s", path), err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error embeds the full URL including the token; report the
		// bare transport error against the path instead.
		if ue, ok := err.(*url.Error); ok {
			err = ue.Err
		}
		return errors.GatewayNetworkError(path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		msg := string(bytes.TrimSpace(data))
		if msg == "" {
			msg = resp.Status
		}
		return errors.GatewayHTTPError(resp.StatusCode, msg)
	}

	if out == nil {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.GatewayDecodeError(path, err)
	}

	return nil
}

// Timeout returns the client's per-request timeout
func (c *Client) Timeout() time.Duration {
	return c.httpClient.Timeout
}
