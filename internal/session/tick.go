package session

import (
	"time"

	"bughouse/internal/events"
	"bughouse/internal/game"
	"bughouse/internal/ids"
)

// handleTick reconciles the active game's clocks against the tick
// timer and evaluates whether the game just ended on time (spec
// §4.3, §4.8).
func (s *Session) handleTick(t time.Time) {
	if s.state != started || s.current == nil {
		return
	}
	s.current.Tick(t)
	s.checkEndCondition()
}

// handlePeriodic broadcasts a full snapshot (spec §4.5's Periodic
// event) and terminates the session once the broadcast hub has gone
// unheard past its threshold (spec §4.6).
func (s *Session) handlePeriodic(t time.Time) {
	if s.state == started && s.current != nil {
		s.current.Tick(t)
		s.checkEndCondition()
	}

	s.emit(ids.OwnerID, events.Periodic, events.PeriodicPayload{Snapshot: s.buildSnapshot()})

	if s.hub.Abandoned(s.cfg.MaxFailedBroadcasts) {
		s.state = terminated
	}
}

// checkEndCondition maps the active game's outcome to a state
// transition, score increments, and a GameEnded event, per spec §4.8.
// It is a no-op while the game is still ongoing.
func (s *Session) checkEndCondition() {
	if s.state != started || s.current == nil {
		return
	}
	outcome := s.current.EvaluateEnd()
	if outcome == game.Ongoing {
		return
	}

	s.state = ended
	gameID := s.current.ID
	members := s.current.Participants.Members()

	var winnerA, winnerB *ids.UserId
	switch outcome {
	case game.Team1Wins:
		a, b := members[0], members[1]
		s.users[a].Score++
		s.users[b].Score++
		winnerA, winnerB = &a, &b
	case game.Team2Wins:
		c, d := members[2], members[3]
		s.users[c].Score++
		s.users[d].Score++
		winnerA, winnerB = &c, &d
	case game.Drawn:
		// No score change; winnerA/winnerB stay nil.
	}

	s.emit(ids.OwnerID, events.GameEnded, events.GameEndedPayload{GameId: gameID, WinnerA: winnerA, WinnerB: winnerB})
}
