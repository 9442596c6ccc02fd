package session

import (
	"bughouse/internal/clock"
	"bughouse/internal/ids"
	"bughouse/internal/rules"
)

// UserSnapshot is one user's public view: identity, name, score, and
// participation status (spec §3).
type UserSnapshot struct {
	ID     ids.UserId `json:"id"`
	Name   string     `json:"name"`
	Score  int        `json:"score"`
	Status Status     `json:"status"`
}

// BoardSnapshot is one board's rendered position, the pools of both
// colors playing it, and its clock state.
type BoardSnapshot struct {
	Position     string         `json:"position"`
	WhiteToMove  bool           `json:"whiteToMove"`
	WhitePool    map[string]int `json:"whitePool"`
	BlackPool    map[string]int `json:"blackPool"`
	WhiteRemain  int64          `json:"whiteRemainMs"`
	BlackRemain  int64          `json:"blackRemainMs"`
	Paused       bool           `json:"paused"`
}

// GameSnapshot describes the currently active game, if any.
type GameSnapshot struct {
	GameId       int               `json:"gameId"`
	Participants [4]ids.UserId     `json:"participants"`
	Boards       [2]BoardSnapshot  `json:"boards"`
}

// Snapshot is a full, self-contained view of a session, used as the
// Periodic event payload.
type Snapshot struct {
	SessionId    ids.SessionId  `json:"sessionId"`
	Users        []UserSnapshot `json:"users"`
	Participants []ids.UserId   `json:"participants"`
	State        string         `json:"state"`
	Game         *GameSnapshot  `json:"game,omitempty"`
}

func (s *Session) statusOf(uid ids.UserId) Status {
	if s.state == started && s.current != nil {
		if _, _, ok := s.current.Participants.Seat(uid); ok {
			return Active
		}
	}
	for _, p := range s.participants {
		if p == uid {
			return Inactive
		}
	}
	return Spectator
}

func stateLabel(st state) string {
	switch st {
	case starting:
		return "Starting"
	case started:
		return "Started"
	case ended:
		return "Ended"
	default:
		return "Terminated"
	}
}

var poolKindLabel = map[rules.PieceKind]string{
	rules.KindPawn:   "p",
	rules.KindKnight: "n",
	rules.KindBishop: "b",
	rules.KindRook:   "r",
	rules.KindQueen:  "q",
}

func poolToStrings(p map[rules.PieceKind]int) map[string]int {
	out := make(map[string]int, len(p))
	for k, v := range p {
		out[poolKindLabel[k]] = v
	}
	return out
}

// buildSnapshot assembles the session's current full state. Called
// from the actor goroutine only.
func (s *Session) buildSnapshot() Snapshot {
	users := make([]UserSnapshot, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, UserSnapshot{ID: u.ID, Name: u.Name, Score: u.Score, Status: s.statusOf(u.ID)})
	}

	snap := Snapshot{
		SessionId:    s.id,
		Users:        users,
		Participants: s.participants,
		State:        stateLabel(s.state),
	}

	if s.current == nil {
		return snap
	}

	boardOne, boardTwo := s.current.Oracle.Render()
	pools := s.current.Oracle.GetPools()

	gs := &GameSnapshot{
		GameId:       s.current.ID,
		Participants: s.current.Participants.Members(),
	}
	gs.Boards[0] = BoardSnapshot{
		Position:    boardOne,
		WhiteToMove: s.current.Oracle.GetWhiteActive(rules.BoardOne),
		WhitePool:   poolToStrings(pools[rules.Side{Board: rules.BoardOne, White: true}]),
		BlackPool:   poolToStrings(pools[rules.Side{Board: rules.BoardOne, White: false}]),
		WhiteRemain: s.current.Clock.Remaining(clock.BoardOne, clock.White).Milliseconds(),
		BlackRemain: s.current.Clock.Remaining(clock.BoardOne, clock.Black).Milliseconds(),
		Paused:      s.current.Clock.Paused(clock.BoardOne),
	}
	gs.Boards[1] = BoardSnapshot{
		Position:    boardTwo,
		WhiteToMove: s.current.Oracle.GetWhiteActive(rules.BoardTwo),
		WhitePool:   poolToStrings(pools[rules.Side{Board: rules.BoardTwo, White: true}]),
		BlackPool:   poolToStrings(pools[rules.Side{Board: rules.BoardTwo, White: false}]),
		WhiteRemain: s.current.Clock.Remaining(clock.BoardTwo, clock.White).Milliseconds(),
		BlackRemain: s.current.Clock.Remaining(clock.BoardTwo, clock.Black).Milliseconds(),
		Paused:      s.current.Clock.Paused(clock.BoardTwo),
	}
	snap.Game = gs
	return snap
}
