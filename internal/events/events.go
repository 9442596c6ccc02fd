// Package events defines the session's Event taxonomy (spec §4.5) and
// frames them as Server-Sent Events. Framing happens here, inside the
// actor's domain, rather than in the HTTP layer: the SSE payload is a
// fully-built byte string by the time it reaches a broadcast
// subscriber, matching the original session's own Event::to_message.
package events

import (
	"encoding/json"
	"fmt"

	"bughouse/internal/ids"
)

// Type tags an Event's payload shape.
type Type string

const (
	Joined              Type = "Joined"
	ParticipantsChanged Type = "ParticipantsChanged"
	GameStarted         Type = "GameStarted"
	GameEnded           Type = "GameEnded"
	PieceDeployed       Type = "PieceDeployed"
	PieceMoved          Type = "PieceMoved"
	PiecePromoted       Type = "PiecePromoted"
	PlayerResigned      Type = "PlayerResigned"
	Periodic            Type = "Periodic"
)

// Event is a causing user (0 when the actor itself is the cause, e.g.
// a timer-driven game end), a type tag, and a JSON payload that is
// either a delta or a full session snapshot.
type Event struct {
	CausedBy ids.UserId `json:"causedBy"`
	Type     Type       `json:"type"`
	Payload  any        `json:"payload"`
}

// JoinedPayload carries the new user's id and display name.
type JoinedPayload struct {
	UserId ids.UserId `json:"userId"`
	Name   string     `json:"name"`
}

// ParticipantsChangedPayload carries the replaced participants list.
type ParticipantsChangedPayload struct {
	Participants []ids.UserId `json:"participants"`
}

// GameStartedPayload carries the new game id and the active
// participants tuple (a, b, c, d) per spec §4.2's seat table.
type GameStartedPayload struct {
	GameId int          `json:"gameId"`
	A      ids.UserId   `json:"a"`
	B      ids.UserId   `json:"b"`
	C      ids.UserId   `json:"c"`
	D      ids.UserId   `json:"d"`
	Order  [4]ids.UserId `json:"order"`
}

// GameEndedPayload carries the winning pair, or nil members on a draw
// or abort, matching the original's Option<(UserId, UserId)> shape
// rather than flattening to a boolean (supplemented feature: keeps
// "no winner" and "team 1 won with these two ids" distinguishable).
type GameEndedPayload struct {
	GameId  int         `json:"gameId"`
	WinnerA *ids.UserId `json:"winnerA"`
	WinnerB *ids.UserId `json:"winnerB"`
}

// BoardChangePayload carries the board index and the raw change
// notation for a deploy, move, or promotion.
type BoardChangePayload struct {
	Board  int    `json:"board"`
	Change string `json:"change"`
}

// PlayerResignedPayload carries the board a participant just conceded
// (supplemented feature: the original spec's closed taxonomy has no
// dedicated tag for this, so rather than mislabel it as a deploy with
// an empty change string, it gets its own type; see spec §4.5).
type PlayerResignedPayload struct {
	Board int `json:"board"`
}

// PeriodicPayload is a full session snapshot, opaque to this package;
// the session package supplies its own snapshot struct as `any`.
type PeriodicPayload struct {
	Snapshot any `json:"snapshot"`
}

// Frame renders an Event as an SSE message: "data: <json>\n\n".
func Frame(e Event) ([]byte, error) {
	body, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("events: marshal: %w", err)
	}
	out := make([]byte, 0, len(body)+8)
	out = append(out, []byte("data: ")...)
	out = append(out, body...)
	out = append(out, '\n', '\n')
	return out, nil
}
