// Package session implements the session actor: the single-owner
// concurrency unit that holds one bughouse session's authoritative
// state and drives its command contract (spec §4.1), state machine
// (§4.7), and end-condition evaluation (§4.8). Exactly one goroutine
// ever mutates a Session's fields; everything else talks to it only
// through its Endpoint's bounded command channel, the same shape as
// the teacher's Hub.run() single-goroutine select loop.
package session

import (
	"time"

	"bughouse/internal/broadcast"
	"bughouse/internal/game"
	"bughouse/internal/ids"
	"bughouse/internal/pairing"
)

// Config is the slice of the process-wide configuration a session
// needs (spec §6.3).
type Config struct {
	SessionCapacity   int
	MaxUser           int
	MaxParticipant    int
	Tick              time.Duration
	BroadcastInterval time.Duration
	GameDuration      time.Duration
	PromotionBonus    time.Duration
	BroadcastHistory  int
	MaxFailedBroadcasts int
	Debug             bool
}

// Session is the actor's private state. Every field is owned and
// mutated exclusively by the goroutine running Run().
type Session struct {
	id     ids.SessionId
	cfg    Config
	now    func() time.Time

	userIDs map[ids.AuthToken]ids.UserId
	users   map[ids.UserId]*User

	participants []ids.UserId
	queue        *pairing.Queue
	queueFilled  bool

	state   state
	gameID  int
	current *game.Game

	hub *broadcast.Hub

	commands chan command
	done     chan struct{}
}

// New constructs a session and inserts the owner as UserId(0), per
// spec §4.1's Create contract. A nil return (with a non-nil Failure)
// means the session never existed — the caller (the registry's spawn
// path) must not insert it and must not start its goroutine.
func New(id ids.SessionId, ownerName string, cfg Config, now func() time.Time) (*Session, ids.AuthToken, *Failure) {
	if !validUserName(ownerName) {
		return nil, "", fail(UserNameInvalid, "owner name must be non-empty alphabetic/whitespace")
	}
	if now == nil {
		now = time.Now
	}

	token := ids.NewAuthToken()
	s := &Session{
		id:      id,
		cfg:     cfg,
		now:     now,
		userIDs: map[ids.AuthToken]ids.UserId{token: ids.OwnerID},
		users:   map[ids.UserId]*User{ids.OwnerID: {ID: ids.OwnerID, Name: ownerName}},
		state:   starting,
		hub:     broadcast.NewHub(cfg.BroadcastHistory),
		commands: make(chan command, cfg.SessionCapacity),
		done:     make(chan struct{}),
	}
	return s, token, nil
}

// Run is the actor's command loop; call it in its own goroutine. It
// returns once the session transitions to Terminated.
func (s *Session) Run() {
	tick := time.NewTicker(s.cfg.Tick)
	defer tick.Stop()
	broadcastTick := time.NewTicker(s.cfg.BroadcastInterval)
	defer broadcastTick.Stop()

	defer func() {
		close(s.done)
		s.hub.Close()
	}()

	for {
		select {
		case cmd, ok := <-s.commands:
			if !ok {
				return
			}
			cmd.execute(s)
			if s.state == terminated {
				return
			}
		case t := <-tick.C:
			s.handleTick(t)
			if s.state == terminated {
				return
			}
		case t := <-broadcastTick.C:
			s.handlePeriodic(t)
			if s.state == terminated {
				return
			}
		}
	}
}

// Endpoint is a cheap-to-clone handle to a running session's command
// channel, and the value stored in the session registry.
type Endpoint struct {
	commands chan<- command
	done     <-chan struct{}
}

// NewEndpoint builds the Endpoint for a session; call once, right
// after New, before starting Run in a goroutine.
func (s *Session) NewEndpoint() Endpoint {
	return Endpoint{commands: s.commands, done: s.done}
}

// Closed reports whether the session actor has terminated, satisfying
// registry.Endpoint.
func (e Endpoint) Closed() bool {
	select {
	case <-e.done:
		return true
	default:
		return false
	}
}

// errClosed is returned by command submission when the session has
// already terminated.
var errClosed = fail(SessionIdInvalid, "session has terminated")

// submit enqueues a command, blocking until there's channel capacity
// or the session terminates.
func submit(e Endpoint, cmd command) *Failure {
	select {
	case e.commands <- cmd:
		return nil
	case <-e.done:
		return errClosed
	}
}
