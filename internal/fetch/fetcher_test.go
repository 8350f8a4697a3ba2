package fetch

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, f *Fetcher, query string) interface{} {
	t.Helper()
	cmd := f.Fetch(query)
	require.NotNil(t, cmd)
	return cmd()
}

func TestFetchSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "go widgets", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`["alpha","beta"]`))
	}))
	defer srv.Close()

	f := New(srv.URL+"/search?q={{value}}", 10*time.Millisecond)
	msg := runCmd(t, f, "go widgets")

	data, ok := msg.(DataMsg)
	require.True(t, ok, "expected DataMsg, got %T: %v", msg, msg)
	assert.Equal(t, "go widgets", data.Query)
	assert.Equal(t, []interface{}{"alpha", "beta"}, data.Payload)
}

func TestFetchNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := New(srv.URL+"/q={{value}}", time.Millisecond)
	msg := runCmd(t, f, "x")

	errMsg, ok := msg.(ErrorMsg)
	require.True(t, ok, "expected ErrorMsg, got %T", msg)
	assert.Contains(t, errMsg.Error(), "status 500")
}

func TestFetchMalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	f := New(srv.URL+"/q={{value}}", time.Millisecond)
	msg := runCmd(t, f, "x")

	errMsg, ok := msg.(ErrorMsg)
	require.True(t, ok, "expected ErrorMsg, got %T", msg)
	assert.Contains(t, errMsg.Error(), "parse response")
}

func TestFetchNetworkFailure(t *testing.T) {
	// Point at a server that is already closed.
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	f := New(srv.URL+"/q={{value}}", time.Millisecond)
	msg := runCmd(t, f, "x")

	errMsg, ok := msg.(ErrorMsg)
	require.True(t, ok, "expected ErrorMsg, got %T", msg)
	assert.Contains(t, errMsg.Error(), "failed")
}

func TestBeforeSendSuppressesRequest(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	f := New(srv.URL+"/q={{value}}", time.Millisecond)
	var seenURL string
	f.SetBeforeSend(func(u string) bool {
		seenURL = u
		return false
	})

	msg := runCmd(t, f, "x")
	assert.Nil(t, msg)
	assert.Zero(t, hits)
	assert.Contains(t, seenURL, "/q=x")
}

func TestSetBeforeSendDuringInflightFetch(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	f := New(srv.URL+"/q={{value}}", time.Millisecond)
	cmd := f.Fetch("x")
	require.NotNil(t, cmd)

	done := make(chan interface{}, 1)
	go func() { done <- cmd() }()

	// Replace the hook while the request is still blocked in the handler.
	for i := 0; i < 8; i++ {
		f.SetBeforeSend(func(string) bool { return true })
	}
	close(release)

	msg := <-done
	_, ok := msg.(DataMsg)
	assert.True(t, ok, "expected DataMsg, got %T", msg)
}

func TestTriggerEmptyQueryNeverFetches(t *testing.T) {
	f := New("http://example.invalid/q={{value}}", time.Millisecond)
	assert.Nil(t, f.Trigger(""))
	assert.Nil(t, f.Trigger("   "))
}

func TestTriggerSupersedesPendingDebounce(t *testing.T) {
	f := New("http://example.invalid/q={{value}}", time.Millisecond)

	first := f.Trigger("a")
	second := f.Trigger("ab")
	require.NotNil(t, first)
	require.NotNil(t, second)

	m1 := first().(DebounceMsg)
	m2 := second().(DebounceMsg)

	assert.True(t, f.Stale(m1), "first keystroke should be superseded")
	assert.False(t, f.Stale(m2))
	assert.Equal(t, "ab", m2.Query)
}

func TestSupersededFetchDiscardedSilently(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "slow" {
			select {
			case <-release:
			case <-r.Context().Done():
				return
			}
		}
		_, _ = w.Write([]byte(`["ok"]`))
	}))
	defer srv.Close()
	defer close(release)

	f := New(srv.URL+"/search?q={{value}}", time.Millisecond)

	slow := f.Fetch("slow")
	var wg sync.WaitGroup
	var slowMsg interface{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		slowMsg = slow()
	}()

	// Give the slow request time to reach the server, then supersede it.
	time.Sleep(50 * time.Millisecond)
	fastMsg := f.Fetch("fast")()
	wg.Wait()

	assert.Nil(t, slowMsg, "superseded request should be discarded silently")
	data, ok := fastMsg.(DataMsg)
	require.True(t, ok, "expected DataMsg, got %T", fastMsg)
	assert.Equal(t, "fast", data.Query)
}

func TestCloseRejectsFurtherFetches(t *testing.T) {
	f := New("http://example.invalid/q={{value}}", time.Millisecond)
	f.Close()
	assert.Nil(t, f.Fetch("x"))
	assert.True(t, f.Stale(DebounceMsg{ID: 1, Query: "x"}))
}

func TestRequestURLEncodesQuery(t *testing.T) {
	f := New("https://api.example.com/s?q={{value}}&n=5", time.Millisecond)
	assert.Equal(t,
		"https://api.example.com/s?q=caf%C3%A9+au+lait&n=5",
		f.RequestURL("café au lait"))
}
