// Package httpapi is the HTTP transport over internal/session: route
// dispatch, request decoding, session-registry lookup, SSE streaming,
// and the error -> status-code mapping of spec §6.2/§7. Its handler
// factory shape (func(*Server) httprouter.Handle) and security headers
// follow the teacher's web.go/html.go.
package httpapi

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"

	"bughouse/internal/config"
	"bughouse/internal/ids"
	"bughouse/internal/logging"
	"bughouse/internal/registry"
	"bughouse/internal/session"
)

const requestTimeout = 10 * time.Second

// Server holds everything a handler needs: the process config, the
// live session registry, and the session.Config template every new
// session is built from.
type Server struct {
	cfg        *config.Config
	sessionCfg session.Config
	registry   *registry.Registry[session.Endpoint]
}

// New builds a Server from the process configuration.
func New(cfg *config.Config) *Server {
	return &Server{
		cfg:      cfg,
		registry: registry.New[session.Endpoint](),
		sessionCfg: session.Config{
			SessionCapacity:     cfg.SessionCapacity,
			MaxUser:             cfg.MaxUser,
			MaxParticipant:      cfg.MaxParticipant,
			Tick:                cfg.Tick,
			BroadcastInterval:   cfg.BroadcastInterval,
			GameDuration:        session.DefaultGameDuration,
			PromotionBonus:      session.DefaultPromotionBonus,
			BroadcastHistory:    session.DefaultBroadcastHistory,
			MaxFailedBroadcasts: session.DefaultMaxFailedBroadcasts,
			Debug:               cfg.Debug,
		},
	}
}

func securityHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
}

func realIP(r *http.Request) string {
	host, _, _ := net.SplitHostPort(r.RemoteAddr)
	if ip := r.Header.Get("X-Real-IP"); ip != "" && net.ParseIP(ip) != nil {
		host = ip
	}
	return host
}

// Router builds the httprouter mux with every route in spec §6.2
// wired, plus a pprof block gated on cfg.Debug (teacher's cfg.profile
// shape).
func (s *Server) Router() *httprouter.Router {
	mux := httprouter.New()

	mux.PanicHandler = func(w http.ResponseWriter, r *http.Request, i any) {
		securityHeaders(w)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}

	mux.GET("/v1/healthz", s.serveHealth())

	mux.POST("/v1/sessions", s.serveCreate())
	mux.POST("/v1/sessions/:sid", s.serveJoin())
	mux.DELETE("/v1/sessions/:sid", s.serveDelete())
	mux.PUT("/v1/sessions/:sid/participants", s.serveSetParticipants())
	mux.POST("/v1/sessions/:sid/games", s.serveStart())
	mux.POST("/v1/sessions/:sid/games/:gid", s.serveResign())
	mux.POST("/v1/sessions/:sid/games/:gid/board", s.serveBoard())
	mux.GET("/v1/sessions/:sid/sse", s.serveSSE())

	if s.cfg.Debug {
		registerProfileHandlers(mux)
	}

	return mux
}

// ListenAndServe runs the HTTP server until ctx is canceled, then
// shuts it down gracefully, mirroring the teacher's ServePage.
func (s *Server) ListenAndServe(ctx context.Context) error {
	// WriteTimeout is deliberately left unset: the Go stdlib applies it
	// as a fixed deadline from the start of the request, not a
	// per-write idle timeout, which would sever the long-lived SSE
	// stream (spec §6.2) after requestTimeout regardless of activity.
	// The SSE handler relies on request-context cancellation instead.
	srv := &http.Server{
		Addr:              s.cfg.BindAddr,
		Handler:           s.Router(),
		IdleTimeout:       10 * time.Minute,
		ReadTimeout:       requestTimeout,
		ReadHeaderTimeout: requestTimeout,
	}

	go s.sweepLoop(ctx)

	errCh := make(chan error, 1)
	go func() {
		logging.Logf(s.cfg.Debug, "SERVE: listening on http://%s/", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// sweepLoop defensively removes terminated sessions the registry
// wasn't proactively told about (spec §4.9).
func (s *Server) sweepLoop(ctx context.Context) {
	t := time.NewTicker(time.Minute)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.registry.Sweep()
		}
	}
}

func sessionIDParam(p httprouter.Params) ids.SessionId {
	return ids.SessionId(strings.TrimSpace(p.ByName("sid")))
}

func (s *Server) lookup(w http.ResponseWriter, sid ids.SessionId) (session.Endpoint, bool) {
	ep, ok := s.registry.Get(sid)
	if !ok {
		writeNotFound(w)
		return session.Endpoint{}, false
	}
	return ep, true
}
