package session

import (
	"bughouse/internal/clock"
	"bughouse/internal/events"
	"bughouse/internal/game"
	"bughouse/internal/ids"
	"bughouse/internal/pairing"
	"bughouse/internal/rules"
)

// command is anything the actor's select loop can pull off its
// channel and apply to itself synchronously.
type command interface {
	execute(s *Session)
}

// ---- Join ----

// JoinRequest is either a first-time join (UserName set) or a rejoin
// (AuthToken set, Rejoin true), matching spec §4.1's Join variants.
type JoinRequest struct {
	UserName  string
	AuthToken ids.AuthToken
	Rejoin    bool
}

// JoinResult is what a successful Join returns.
type JoinResult struct {
	UserId    ids.UserId    `json:"userId"`
	UserName  string        `json:"userName"`
	AuthToken ids.AuthToken `json:"authToken"`
}

type joinCmd struct {
	req   JoinRequest
	reply chan<- joinReply
}

type joinReply struct {
	result  JoinResult
	failure *Failure
}

func (c *joinCmd) execute(s *Session) {
	if c.req.Rejoin {
		uid, ok := s.userIDs[c.req.AuthToken]
		if !ok {
			c.reply <- joinReply{failure: fail(AuthTokenInvalid, "unknown auth token")}
			return
		}
		u := s.users[uid]
		c.reply <- joinReply{result: JoinResult{UserId: uid, UserName: u.Name, AuthToken: c.req.AuthToken}}
		return
	}

	if !validUserName(c.req.UserName) {
		c.reply <- joinReply{failure: fail(UserNameInvalid, "invalid user name")}
		return
	}
	if len(s.users) >= s.cfg.MaxUser {
		c.reply <- joinReply{failure: fail(TooManyUsers, "user cap reached")}
		return
	}

	uid := ids.UserId(len(s.users))
	token := ids.NewAuthToken()
	s.userIDs[token] = uid
	s.users[uid] = &User{ID: uid, Name: c.req.UserName}

	c.reply <- joinReply{result: JoinResult{UserId: uid, UserName: c.req.UserName, AuthToken: token}}
	s.emit(uid, events.Joined, events.JoinedPayload{UserId: uid, Name: c.req.UserName})
}

// Join sends a Join command and waits for the reply.
func Join(e Endpoint, req JoinRequest) (JoinResult, *Failure) {
	reply := make(chan joinReply, 1)
	if f := submit(e, &joinCmd{req: req, reply: reply}); f != nil {
		return JoinResult{}, f
	}
	r := <-reply
	return r.result, r.failure
}

// ---- Delete ----

type deleteCmd struct {
	token ids.AuthToken
	reply chan<- *Failure
}

func (c *deleteCmd) execute(s *Session) {
	if !s.isOwner(c.token) {
		c.reply <- fail(MustBeSessionOwner, "must be session owner")
		return
	}
	s.state = terminated
	c.reply <- nil
}

// Delete sends a Delete command and waits for acknowledgement.
func Delete(e Endpoint, token ids.AuthToken) *Failure {
	reply := make(chan *Failure, 1)
	if f := submit(e, &deleteCmd{token: token, reply: reply}); f != nil {
		return f
	}
	return <-reply
}

// ---- SetParticipants ----

type setParticipantsCmd struct {
	token        ids.AuthToken
	participants []ids.UserId
	reply        chan<- *Failure
}

func (c *setParticipantsCmd) execute(s *Session) {
	if !s.isOwner(c.token) {
		c.reply <- fail(MustBeSessionOwner, "must be session owner")
		return
	}
	if s.state != starting {
		c.reply <- fail(PreconditionFailure, "game already started")
		return
	}
	if len(c.participants) > s.cfg.MaxParticipant {
		c.reply <- fail(TooManyParticipants, "participant count above cap")
		return
	}
	for _, id := range c.participants {
		if _, ok := s.users[id]; !ok {
			c.reply <- fail(PreconditionFailure, "unknown participant id")
			return
		}
	}

	s.participants = c.participants
	c.reply <- nil
	s.emit(ids.OwnerID, events.ParticipantsChanged, events.ParticipantsChangedPayload{Participants: c.participants})
}

// SetParticipants replaces the session's participants list.
func SetParticipants(e Endpoint, token ids.AuthToken, participants []ids.UserId) *Failure {
	reply := make(chan *Failure, 1)
	if f := submit(e, &setParticipantsCmd{token: token, participants: participants, reply: reply}); f != nil {
		return f
	}
	return <-reply
}

// ---- Start ----

type startCmd struct {
	token ids.AuthToken
	reply chan<- *Failure
}

func (c *startCmd) execute(s *Session) {
	if !s.isOwner(c.token) {
		c.reply <- fail(MustBeSessionOwner, "must be session owner")
		return
	}
	if s.state == started {
		c.reply <- fail(PreconditionFailure, "a game is already in progress")
		return
	}
	n := len(s.participants)
	if n < 4 || n > s.cfg.MaxParticipant {
		c.reply <- fail(PreconditionFailure, "participant count out of bounds")
		return
	}

	if !s.queueFilled {
		s.queue = pairing.NewQueue(s.participants)
		s.queueFilled = true
	}
	next, ok := s.queue.Pop()
	if !ok {
		c.reply <- fail(PreconditionFailure, "pairing queue exhausted")
		return
	}

	s.gameID++
	participants := game.Participants{A: next.Team1A, B: next.Team1B, C: next.Team2A, D: next.Team2B}
	s.current = game.New(s.gameID, participants, s.now(), s.cfg.GameDuration, s.cfg.PromotionBonus)
	s.state = started

	c.reply <- nil
	s.emit(ids.OwnerID, events.GameStarted, events.GameStartedPayload{
		GameId: s.gameID,
		A:      next.Team1A, B: next.Team1B, C: next.Team2A, D: next.Team2B,
		Order: participants.Members(),
	})
}

// Start pops the next pairing and begins a game.
func Start(e Endpoint, token ids.AuthToken) *Failure {
	reply := make(chan *Failure, 1)
	if f := submit(e, &startCmd{token: token, reply: reply}); f != nil {
		return f
	}
	return <-reply
}

// ---- Resign ----

type resignCmd struct {
	token ids.AuthToken
	reply chan<- *Failure
}

func (c *resignCmd) execute(s *Session) {
	uid, b, col, f := s.activeSeat(c.token)
	if f != nil {
		c.reply <- f
		return
	}
	s.current.Resign(b, bool(col))
	c.reply <- nil
	s.emit(uid, events.PlayerResigned, events.PlayerResignedPayload{Board: seatBoardIndex(b)})
	s.checkEndCondition()
}

// Resign concedes the caller's board.
func Resign(e Endpoint, token ids.AuthToken) *Failure {
	reply := make(chan *Failure, 1)
	if f := submit(e, &resignCmd{token: token, reply: reply}); f != nil {
		return f
	}
	return <-reply
}

// ---- Board: Deploy / Move / Promote ----

type deployCmd struct {
	token     ids.AuthToken
	pieceStr  string
	squareStr string
	reply     chan<- *Failure
}

func (c *deployCmd) execute(s *Session) {
	uid, b, col, f := s.activeSeat(c.token)
	if f != nil {
		c.reply <- f
		return
	}
	piece, ok := rules.ParsePiece(c.pieceStr)
	if !ok {
		c.reply <- fail(CannotParse, "malformed piece")
		return
	}
	sqCol, sqRow, ok := rules.ParseSquare(c.squareStr)
	if !ok {
		c.reply <- fail(CannotParse, "malformed square")
		return
	}
	if err := s.current.Deploy(s.now(), b, bool(col), piece, sqCol, sqRow); err != nil {
		c.reply <- fail(IllegalMove, err.Error())
		return
	}
	c.reply <- nil
	s.emit(uid, events.PieceDeployed, events.BoardChangePayload{Board: seatBoardIndex(b), Change: c.squareStr})
	s.checkEndCondition()
}

// Deploy places a pooled piece on the board.
func Deploy(e Endpoint, token ids.AuthToken, pieceStr, squareStr string) *Failure {
	reply := make(chan *Failure, 1)
	if f := submit(e, &deployCmd{token: token, pieceStr: pieceStr, squareStr: squareStr, reply: reply}); f != nil {
		return f
	}
	return <-reply
}

type moveCmd struct {
	token     ids.AuthToken
	changeStr string
	reply     chan<- *Failure
}

func (c *moveCmd) execute(s *Session) {
	uid, b, col, f := s.activeSeat(c.token)
	if f != nil {
		c.reply <- f
		return
	}
	if s.current.Oracle.GetWhiteActive(toOracleBoard(b)) != bool(col) {
		c.reply <- fail(PreconditionFailure, "not this side's turn")
		return
	}
	ch, ok := rules.ParseChange(c.changeStr)
	if !ok {
		c.reply <- fail(CannotParse, "malformed move")
		return
	}
	if err := s.current.Move(s.now(), b, ch[0], ch[1], ch[2], ch[3]); err != nil {
		c.reply <- fail(IllegalMove, err.Error())
		return
	}
	c.reply <- nil
	s.emit(uid, events.PieceMoved, events.BoardChangePayload{Board: seatBoardIndex(b), Change: c.changeStr})
	s.checkEndCondition()
}

// Move executes a board move.
func Move(e Endpoint, token ids.AuthToken, changeStr string) *Failure {
	reply := make(chan *Failure, 1)
	if f := submit(e, &moveCmd{token: token, changeStr: changeStr, reply: reply}); f != nil {
		return f
	}
	return <-reply
}

type promoteCmd struct {
	token     ids.AuthToken
	changeStr string
	targetStr string
	reply     chan<- *Failure
}

func (c *promoteCmd) execute(s *Session) {
	uid, b, col, f := s.activeSeat(c.token)
	if f != nil {
		c.reply <- f
		return
	}
	if s.current.Oracle.GetWhiteActive(toOracleBoard(b)) != bool(col) {
		c.reply <- fail(PreconditionFailure, "not this side's turn")
		return
	}
	ch, ok := rules.ParseChange(c.changeStr)
	if !ok {
		c.reply <- fail(CannotParse, "malformed move")
		return
	}
	target, ok := rules.ParsePiece(c.targetStr)
	if !ok {
		c.reply <- fail(CannotParse, "malformed promotion target")
		return
	}
	if err := s.current.Promote(s.now(), b, target, ch[0], ch[1], ch[2], ch[3]); err != nil {
		c.reply <- fail(IllegalMove, err.Error())
		return
	}
	c.reply <- nil
	s.emit(uid, events.PiecePromoted, events.BoardChangePayload{Board: seatBoardIndex(b), Change: c.changeStr})
	s.checkEndCondition()
}

// Promote declares a promotion target and executes the move consuming
// it.
func Promote(e Endpoint, token ids.AuthToken, changeStr, targetStr string) *Failure {
	reply := make(chan *Failure, 1)
	if f := submit(e, &promoteCmd{token: token, changeStr: changeStr, targetStr: targetStr, reply: reply}); f != nil {
		return f
	}
	return <-reply
}

// ---- Subscribe / Unsubscribe ----

type subscription struct {
	id     int
	frames <-chan []byte
}

type subscribeCmd struct {
	reply chan<- subscription
}

func (c *subscribeCmd) execute(s *Session) {
	id, frames := s.hub.Subscribe()
	c.reply <- subscription{id: id, frames: frames}
}

// Subscribe returns a fresh broadcast receiver along with the id the
// caller must pass back to Unsubscribe once it stops listening.
func Subscribe(e Endpoint) (id int, frames <-chan []byte, f *Failure) {
	reply := make(chan subscription, 1)
	if f := submit(e, &subscribeCmd{reply: reply}); f != nil {
		return 0, nil, f
	}
	sub := <-reply
	return sub.id, sub.frames, nil
}

type unsubscribeCmd struct {
	id   int
	done chan<- struct{}
}

func (c *unsubscribeCmd) execute(s *Session) {
	s.hub.Unsubscribe(c.id)
	close(c.done)
}

// Unsubscribe releases a subscriber's broadcast channel, dispatched
// through the actor like every other mutation so it can't race a
// concurrent Send. A session that has already terminated has already
// dropped every subscriber via Hub.Close, so a failed submit here is
// a no-op.
func Unsubscribe(e Endpoint, id int) {
	done := make(chan struct{})
	if f := submit(e, &unsubscribeCmd{id: id, done: done}); f != nil {
		return
	}
	<-done
}

// ---- shared helpers ----

func (s *Session) isOwner(token ids.AuthToken) bool {
	uid, ok := s.userIDs[token]
	return ok && uid == ids.OwnerID
}

// activeSeat resolves an auth token to its user id and active
// (board, color) seat, applying spec §4.2's membership table. It
// returns a *Failure covering every rejection a board command shares:
// unknown token, no game in progress, caller not an active
// participant.
func (s *Session) activeSeat(token ids.AuthToken) (ids.UserId, clock.Board, clock.Color, *Failure) {
	uid, ok := s.userIDs[token]
	if !ok {
		return 0, false, false, fail(AuthTokenInvalid, "unknown auth token")
	}
	if s.state != started || s.current == nil {
		return 0, false, false, fail(PreconditionFailure, "no game in progress")
	}
	b, col, ok := s.current.Participants.Seat(uid)
	if !ok {
		return 0, false, false, fail(PreconditionFailure, "caller is not an active participant")
	}
	return uid, b, col, nil
}

// seatBoardIndex reports the 1-based board number a clock.Board
// identifies, matching the BoardChangePayload.Board convention.
func seatBoardIndex(b clock.Board) int {
	if b == clock.BoardOne {
		return 1
	}
	return 2
}

func toOracleBoard(b clock.Board) rules.Board {
	if b == clock.BoardOne {
		return rules.BoardOne
	}
	return rules.BoardTwo
}
