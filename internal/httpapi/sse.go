package httpapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"bughouse/internal/session"
)

// serveSSE opens the event stream for a session (spec §6.2), framing
// every event exactly as internal/events.Frame produced it inside the
// actor — this handler only copies bytes.
func (s *Server) serveSSE() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		securityHeaders(w)
		ep, ok := s.lookup(w, sessionIDParam(p))
		if !ok {
			return
		}

		subID, frames, f := session.Subscribe(ep)
		if f != nil {
			writeFailure(w, f)
			return
		}
		defer session.Unsubscribe(ep, subID)

		flusher, ok := w.(http.Flusher)
		if !ok {
			writeJSON(w, http.StatusInternalServerError, errorBody{Error: "streaming unsupported"})
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("Cache-Control", "no-cache")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		ctx := r.Context()
		for {
			select {
			case frame, ok := <-frames:
				if !ok {
					return
				}
				if _, err := w.Write(frame); err != nil {
					return
				}
				flusher.Flush()
			case <-ctx.Done():
				return
			}
		}
	}
}
