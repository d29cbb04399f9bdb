package preload

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestHint_FetchesHead(t *testing.T) {
	var requests atomic.Int32
	var gotRange atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		gotRange.Store(r.Header.Get("Range"))
		_, _ = w.Write(make([]byte, 1024))
	}))
	defer srv.Close()

	p := New(WithClient(srv.Client()))
	defer p.Cancel()

	p.Hint(srv.URL + "/next.mp3")

	waitFor(t, func() bool { return requests.Load() == 1 })
	if r, _ := gotRange.Load().(string); r == "" {
		t.Error("prefetch request carried no Range header")
	}
}

func TestHint_SameURLOnce(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		_, _ = w.Write([]byte("x"))
	}))
	defer srv.Close()

	p := New(WithClient(srv.Client()))
	defer p.Cancel()

	url := srv.URL + "/next.mp3"
	p.Hint(url)
	p.Hint(url)
	p.Hint(url)

	waitFor(t, func() bool { return requests.Load() >= 1 })
	time.Sleep(50 * time.Millisecond)
	if n := requests.Load(); n != 1 {
		t.Errorf("requests = %d, want 1 for a repeated hint", n)
	}
}

func TestHint_NewURLRetractsPrevious(t *testing.T) {
	release := make(chan struct{})
	var cancelled atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/slow.mp3" {
			select {
			case <-release:
			case <-r.Context().Done():
				cancelled.Store(true)
			}
			return
		}
		_, _ = w.Write([]byte("x"))
	}))
	defer srv.Close()
	defer close(release)

	p := New(WithClient(srv.Client()))
	defer p.Cancel()

	p.Hint(srv.URL + "/slow.mp3")
	time.Sleep(50 * time.Millisecond)
	p.Hint(srv.URL + "/fast.mp3")

	waitFor(t, func() bool { return cancelled.Load() })
}

func TestHint_LocalURLIgnored(t *testing.T) {
	p := New()
	defer p.Cancel()

	// Must not panic or hit the network.
	p.Hint("/var/lib/bgm/audio/track.mp3")
	p.Hint("")
}
