// Package fetch implements the remote candidate lookup for the suggest
// widget: a debounced, single-slot HTTP GET against a URL template. Only the
// newest debounce survives, and starting a request aborts the previous
// in-flight one, so at most one request per fetcher is ever outstanding.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"
	"github.com/goccy/go-json"

	"github.com/aliasimkazmi/core-components/internal/config"
)

// DebounceMsg is emitted after the quiet period elapses. The ID is compared
// against the fetcher's current ID so only the latest keystroke fetches.
type DebounceMsg struct {
	ID    int
	Query string
}

// DataMsg carries the parsed JSON payload of a successful fetch.
type DataMsg struct {
	Query   string
	Payload interface{}
}

// ErrorMsg carries a descriptive fetch failure. Network failures, non-2xx
// statuses, and parse failures all arrive here; they are never thrown.
type ErrorMsg struct {
	Query string
	Err   error
}

func (e ErrorMsg) Error() string { return e.Err.Error() }

// BeforeSendHook runs just before a request is issued. Returning false
// suppresses the request, mirroring a cancelable before-send notification.
type BeforeSendHook func(requestURL string) bool

// Fetcher issues debounced GET requests against a {{value}} URL template.
type Fetcher struct {
	Template string
	Debounce time.Duration
	Client   *http.Client
	Log      logr.Logger

	mu         sync.Mutex
	id         int                // Debounce correlation counter
	gen        int                // In-flight slot generation
	inflight   context.CancelFunc // Cancels the current in-flight request
	beforeSend BeforeSendHook
	closed     bool
}

// New creates a fetcher for the given endpoint template.
func New(template string, debounce time.Duration) *Fetcher {
	if debounce <= 0 {
		debounce = config.DefaultDebounceMs * time.Millisecond
	}
	return &Fetcher{
		Template: template,
		Debounce: debounce,
		Client:   http.DefaultClient,
		Log:      logr.Discard(),
	}
}

// SetBeforeSend installs (or replaces) the before-send hook. The hook is
// read by fetch goroutines, so it goes through the fetcher's lock.
func (f *Fetcher) SetBeforeSend(hook BeforeSendHook) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.beforeSend = hook
}

// Trigger schedules a debounced fetch for query. Each call supersedes any
// pending debounce: the returned command sleeps the quiet period and emits a
// DebounceMsg whose ID only matches if no newer trigger happened meanwhile.
// Empty queries never fetch and invalidate any pending debounce.
func (f *Fetcher) Trigger(query string) tea.Cmd {
	f.mu.Lock()
	f.id++
	id := f.id
	delay := f.Debounce
	f.mu.Unlock()

	if strings.TrimSpace(query) == "" {
		f.Abort()
		return nil
	}
	return func() tea.Msg {
		time.Sleep(delay)
		return DebounceMsg{ID: id, Query: query}
	}
}

// Stale reports whether a debounce message was superseded by a later trigger.
func (f *Fetcher) Stale(msg DebounceMsg) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return msg.ID != f.id || f.closed
}

// Fetch issues the GET for query, aborting any request still in flight.
// The returned command produces a DataMsg on success, an ErrorMsg on
// failure, and nil when the request was suppressed or superseded.
func (f *Fetcher) Fetch(query string) tea.Cmd {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	if f.inflight != nil {
		f.inflight()
	}
	ctx, cancel := context.WithCancel(context.Background())
	f.inflight = cancel
	f.gen++
	gen := f.gen
	f.mu.Unlock()

	return func() tea.Msg {
		defer f.clearInflight(gen, cancel)
		return f.do(ctx, query)
	}
}

// Abort cancels any in-flight request and invalidates pending debounces.
func (f *Fetcher) Abort() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.id++
	if f.inflight != nil {
		f.inflight()
		f.inflight = nil
	}
}

// Close aborts outstanding work and rejects further fetches. Called when the
// widget detaches.
func (f *Fetcher) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	if f.inflight != nil {
		f.inflight()
		f.inflight = nil
	}
}

// RequestURL substitutes the URL-encoded query into the template.
func (f *Fetcher) RequestURL(query string) string {
	return strings.ReplaceAll(f.Template, config.ValuePlaceholder, url.QueryEscape(query))
}

func (f *Fetcher) do(ctx context.Context, query string) tea.Msg {
	reqURL := f.RequestURL(query)

	f.mu.Lock()
	beforeSend := f.beforeSend
	f.mu.Unlock()
	if beforeSend != nil && !beforeSend(reqURL) {
		f.Log.V(1).Info("fetch suppressed by before-send hook", "url", reqURL)
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return ErrorMsg{Query: query, Err: fmt.Errorf("build request for %q: %w", reqURL, err)}
	}
	req.Header.Set("Accept", "application/json")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		// A superseded or closed fetcher cancels the context; that is not an
		// error the host should see.
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			f.Log.V(1).Info("fetch aborted", "query", query)
			return nil
		}
		return ErrorMsg{Query: query, Err: fmt.Errorf("request %q failed: %w", reqURL, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ErrorMsg{Query: query, Err: fmt.Errorf("request %q returned status %d", reqURL, resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			return nil
		}
		return ErrorMsg{Query: query, Err: fmt.Errorf("read response from %q: %w", reqURL, err)}
	}

	var payload interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ErrorMsg{Query: query, Err: fmt.Errorf("parse response from %q: %w", reqURL, err)}
	}

	f.Log.V(1).Info("fetch completed", "query", query, "status", resp.StatusCode)
	return DataMsg{Query: query, Payload: payload}
}

func (f *Fetcher) clearInflight(gen int, cancel context.CancelFunc) {
	cancel()
	f.mu.Lock()
	defer f.mu.Unlock()
	// Only release the slot if no newer request replaced it.
	if f.gen == gen {
		f.inflight = nil
	}
}
