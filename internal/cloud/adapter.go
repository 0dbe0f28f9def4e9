// Package cloud implements the optional task sync adapter. Sync is
// request/response shaped, so failures surface as a structured Result
// instead of an error: the caller renders the outcome, nothing crashes.
//
// The protocol is deliberately dumb: the whole task collection is
// upserted against a per-device row, and a pull wholesale-replaces the
// local collection. Last fetch wins; there is no field-level merge.
package cloud

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/focusfoundry/tempo/internal/clock"
	"github.com/focusfoundry/tempo/internal/domain"
	"github.com/focusfoundry/tempo/internal/kvstore"
)

// DeviceIDKey is the store key holding the stable per-device identifier.
const DeviceIDKey = "app.deviceId"

// Result is the outcome of a sync call. OK false carries a
// human-readable reason in Err.
type Result struct {
	OK  bool   `json:"ok"`
	Err string `json:"error,omitempty"`
}

// Adapter is the sync boundary consumed by the CLI. Implementations
// must never return a Go error for remote failures; everything folds
// into the Result.
type Adapter interface {
	// PushTasks upserts the full collection under this device's id.
	PushTasks(ctx context.Context, tasks []domain.Task) Result

	// PullTasks fetches the collection stored for this device. The
	// returned tasks are only meaningful when Result.OK is true.
	PullTasks(ctx context.Context) (Result, []domain.Task)
}

// envelope is the wire format for a device's stored collection.
type envelope struct {
	DeviceID  string        `json:"device_id"`
	Payload   []domain.Task `json:"payload"`
	UpdatedAt string        `json:"updated_at"`
}

// HTTPAdapter syncs against a JSON endpoint at BaseURL. An empty
// BaseURL means cloud sync is not configured; every call then returns
// Result{OK: false} without touching the network. Non-https URLs are
// rejected since the payload is user data.
type HTTPAdapter struct {
	baseURL string
	client  *http.Client
	store   kvstore.Store
	clock   clock.Clock
	logger  zerolog.Logger
}

// NewHTTPAdapter creates an HTTPAdapter. A nil client gets a default
// with a 15s timeout.
func NewHTTPAdapter(baseURL string, client *http.Client, store kvstore.Store, clk clock.Clock, logger zerolog.Logger) *HTTPAdapter {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &HTTPAdapter{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		store:   store,
		clock:   clk,
		logger:  logger.With().Str("component", "cloud").Logger(),
	}
}

// Configured reports whether a usable endpoint is set.
func (a *HTTPAdapter) Configured() bool {
	if a.baseURL == "" {
		return false
	}
	u, err := url.Parse(a.baseURL)
	if err != nil {
		return false
	}
	return u.Scheme == "https"
}

// DeviceID returns the stable per-device identifier, generating and
// persisting one on first use.
func (a *HTTPAdapter) DeviceID() string {
	var id string
	if a.store.Get(DeviceIDKey, &id) && id != "" {
		return id
	}
	id = "dev_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	if err := a.store.Set(DeviceIDKey, id); err != nil {
		a.logger.Warn().Err(err).Msg("failed to persist device id")
	}
	return id
}

// PushTasks upserts the collection under this device's row.
func (a *HTTPAdapter) PushTasks(ctx context.Context, tasks []domain.Task) Result {
	if !a.Configured() {
		return Result{Err: "cloud not configured"}
	}
	body, err := json.Marshal(envelope{
		DeviceID:  a.DeviceID(),
		Payload:   tasks,
		UpdatedAt: a.clock.Now().Format(time.RFC3339),
	})
	if err != nil {
		return Result{Err: "sync failed: " + err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, a.baseURL+"/todos", bytes.NewReader(body))
	if err != nil {
		return Result{Err: "sync failed: " + err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Client-Info", "tempo")

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Warn().Err(err).Msg("push failed")
		return Result{Err: "sync failed: " + err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{Err: "sync failed: " + resp.Status}
	}
	return Result{OK: true}
}

// PullTasks fetches this device's stored collection. A missing payload
// decodes as an empty collection, which is a valid pull.
func (a *HTTPAdapter) PullTasks(ctx context.Context) (Result, []domain.Task) {
	if !a.Configured() {
		return Result{Err: "cloud not configured"}, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/todos?device_id="+url.QueryEscape(a.DeviceID()), nil)
	if err != nil {
		return Result{Err: "fetch failed: " + err.Error()}, nil
	}
	req.Header.Set("X-Client-Info", "tempo")

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Warn().Err(err).Msg("pull failed")
		return Result{Err: "fetch failed: " + err.Error()}, nil
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{Err: "fetch failed: " + resp.Status}, nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return Result{Err: "fetch failed: " + err.Error()}, nil
	}
	return Result{OK: true}, env.Payload
}

var _ Adapter = (*HTTPAdapter)(nil)
