package session

import (
	"bughouse/internal/events"
	"bughouse/internal/ids"
	"bughouse/internal/logging"
)

// emit frames an event and fans it out to every SSE subscriber. A
// framing error is impossible for the payload shapes this package
// produces, so it is logged rather than propagated.
func (s *Session) emit(causedBy ids.UserId, t events.Type, payload any) {
	frame, err := events.Frame(events.Event{CausedBy: causedBy, Type: t, Payload: payload})
	if err != nil {
		logging.Logf(s.cfg.Debug, "EMIT: session %s: %v", s.id, err)
		return
	}
	s.hub.Send(frame)
}
