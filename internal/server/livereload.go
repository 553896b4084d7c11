package server

import (
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// reloader tells connected pages to reload. Once closed it drops every page
// and turns new ones away, so server shutdown does not wait on open streams.
type reloader struct {
	mu        sync.Mutex
	pages     map[chan struct{}]struct{}
	done      chan struct{}
	closeOnce sync.Once
	heartbeat time.Duration
}

func newReloader() *reloader {
	return &reloader{
		pages:     make(map[chan struct{}]struct{}),
		done:      make(chan struct{}),
		heartbeat: 25 * time.Second,
	}
}

func (rl *reloader) subscribe() (chan struct{}, bool) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	select {
	case <-rl.done:
		return nil, false
	default:
	}
	ch := make(chan struct{}, 1)
	rl.pages[ch] = struct{}{}
	return ch, true
}

func (rl *reloader) unsubscribe(ch chan struct{}) {
	rl.mu.Lock()
	delete(rl.pages, ch)
	rl.mu.Unlock()
}

// notify queues a reload for every page and returns how many there are. A
// page with a reload already pending is not queued twice.
func (rl *reloader) notify() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ch := range rl.pages {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	return len(rl.pages)
}

func (rl *reloader) count() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.pages)
}

func (rl *reloader) close() {
	rl.closeOnce.Do(func() { close(rl.done) })
}

// handleLiveReload streams reload events to one page.
func (s *Server) handleLiveReload(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	ch, ok := s.reload.subscribe()
	if !ok {
		http.Error(w, "server shutting down", http.StatusServiceUnavailable)
		return
	}
	defer s.reload.unsubscribe(ch)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	send := func(event string) {
		writeEvent(w, event)
		flusher.Flush()
	}

	heartbeat := time.NewTicker(s.reload.heartbeat)
	defer heartbeat.Stop()

	send("")
	for {
		select {
		case <-r.Context().Done():
			return
		case <-s.reload.done:
			return
		case <-heartbeat.C:
			send("")
		case <-ch:
			send("reload")
		}
	}
}

// writeEvent writes a named event, or a keep-alive comment when event is
// empty.
func writeEvent(w io.Writer, event string) {
	if event == "" {
		fmt.Fprint(w, ":\n\n")
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, event)
}
