// Package server serves a built song book locally, rebuilding it when its
// sources change and telling open pages to reload.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"
)

// LiveReloadPath is the SSE endpoint pages listen on for reload events.
const LiveReloadPath = "/__livereload"

// BuildFunc rebuilds the book.
type BuildFunc func(ctx context.Context) error

// Options configures a Server.
type Options struct {
	Host string
	Port int
	// Output is the built page served at "/". Files next to it are served too.
	Output string
	// Watch lists the files and directories polled for changes.
	Watch    []string
	Interval time.Duration
	Build    BuildFunc
	Logger   *slog.Logger
}

// Server is the HTTP server for a book being edited.
type Server struct {
	router chi.Router
	opts   Options
	reload *reloader
	log    *slog.Logger
}

// New creates and configures the server.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Interval <= 0 {
		opts.Interval = 300 * time.Millisecond
	}
	s := &Server{
		opts:   opts,
		reload: newReloader(),
		log:    opts.Logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Addr returns the host:port the server listens on.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.opts.Host, strconv.Itoa(s.opts.Port))
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.log))

	r.Get(LiveReloadPath, s.handleLiveReload)
	r.Get("/*", s.handleStatic)

	s.router = r
}

func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	upath := r.URL.Path
	if upath == "/" {
		http.ServeFile(w, r, s.opts.Output)
		return
	}

	root := filepath.Dir(s.opts.Output)
	target := filepath.Join(root, filepath.FromSlash(path.Clean("/"+upath)))
	if !strings.HasPrefix(filepath.Clean(target), filepath.Clean(root)) {
		http.Error(w, "invalid path", http.StatusBadRequest)
		return
	}
	if fi, err := os.Stat(target); err == nil && !fi.IsDir() {
		http.ServeFile(w, r, target)
		return
	}
	http.NotFound(w, r)
}

// Run builds the book, serves it and rebuilds on changes until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	if err := s.opts.Build(ctx); err != nil {
		return fmt.Errorf("initial build failed: %w", err)
	}

	srv := &http.Server{Addr: s.Addr(), Handler: s}
	srv.RegisterOnShutdown(s.reload.close)
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		s.log.Info("serving", "url", "http://"+s.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		return s.Watch(ctx)
	})
	eg.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return eg.Wait()
}

// Watch polls the watched paths and rebuilds when they change, then signals
// connected pages to reload. It returns when ctx is done.
func (s *Server) Watch(ctx context.Context) error {
	last := snapshot(s.opts.Watch, s.opts.Output)
	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		current := snapshot(s.opts.Watch, s.opts.Output)
		if current == last {
			continue
		}
		last = current

		s.log.Info("change detected, rebuilding")
		if err := s.opts.Build(ctx); err != nil {
			s.log.Error("build failed", "error", err)
			continue
		}
		s.log.Info("rebuilt, reload signal sent", "pages", s.reload.notify())
	}
}

func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

// OpenBrowser attempts to open the provided URL in a browser.
func OpenBrowser(url string) error {
	switch runtime.GOOS {
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		return exec.Command("open", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
