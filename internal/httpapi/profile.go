package httpapi

import (
	"net/http/pprof"

	"github.com/julienschmidt/httprouter"
)

// registerProfileHandlers wires net/http/pprof under /v1/pprof,
// gated by the caller on cfg.Debug, mirroring the teacher's
// registerProfileHandlers/cfg.profile shape.
func registerProfileHandlers(mux *httprouter.Router) {
	mux.Handler("GET", "/v1/pprof/allocs", pprof.Handler("allocs"))
	mux.Handler("GET", "/v1/pprof/block", pprof.Handler("block"))
	mux.Handler("GET", "/v1/pprof/goroutine", pprof.Handler("goroutine"))
	mux.Handler("GET", "/v1/pprof/heap", pprof.Handler("heap"))
	mux.Handler("GET", "/v1/pprof/mutex", pprof.Handler("mutex"))
	mux.Handler("GET", "/v1/pprof/threadcreate", pprof.Handler("threadcreate"))
	mux.HandlerFunc("GET", "/v1/pprof/cmdline", pprof.Cmdline)
	mux.HandlerFunc("GET", "/v1/pprof/profile", pprof.Profile)
	mux.HandlerFunc("GET", "/v1/pprof/symbol", pprof.Symbol)
	mux.HandlerFunc("GET", "/v1/pprof/trace", pprof.Trace)
}
