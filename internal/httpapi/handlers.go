package httpapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"bughouse/internal/ids"
	"bughouse/internal/logging"
	"bughouse/internal/session"
)

type createResponse struct {
	SessionId ids.SessionId `json:"sessionId"`
	UserId    ids.UserId    `json:"userId"`
	AuthToken ids.AuthToken `json:"authToken"`
}

func (s *Server) serveHealth() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		securityHeaders(w)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("Ok\n"))
	}
}

func (s *Server) serveCreate() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		securityHeaders(w)

		var body createRequest
		if !decodeJSON(w, r, &body) {
			return
		}

		if s.registry.Len() >= s.cfg.MaxSession {
			writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: "session registry at capacity"})
			return
		}

		id := ids.NewSessionId()
		sess, token, f := session.New(id, body.OwnerName, s.sessionCfg, nil)
		if f != nil {
			writeFailure(w, f)
			return
		}

		ep := sess.NewEndpoint()
		s.registry.Spawn(id, ep)
		go sess.Run()

		logging.Logf(s.cfg.Debug, "CREATE: session %s owned by %q from %s", id, body.OwnerName, realIP(r))
		writeJSON(w, http.StatusOK, createResponse{SessionId: id, UserId: ids.OwnerID, AuthToken: token})
	}
}

func (s *Server) serveJoin() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		securityHeaders(w)
		ep, ok := s.lookup(w, sessionIDParam(p))
		if !ok {
			return
		}

		var body joinRequest
		if !decodeJSON(w, r, &body) {
			return
		}

		req := session.JoinRequest{UserName: body.UserName, AuthToken: body.AuthToken, Rejoin: body.AuthToken != ""}
		result, f := session.Join(ep, req)
		if f != nil {
			writeFailure(w, f)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func (s *Server) serveDelete() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		securityHeaders(w)
		sid := sessionIDParam(p)
		ep, ok := s.lookup(w, sid)
		if !ok {
			return
		}

		var body deleteRequest
		if !decodeJSON(w, r, &body) {
			return
		}

		if f := session.Delete(ep, body.AuthToken); f != nil {
			writeFailure(w, f)
			return
		}
		s.registry.Remove(sid)
		w.WriteHeader(http.StatusAccepted)
	}
}

func (s *Server) serveSetParticipants() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		securityHeaders(w)
		ep, ok := s.lookup(w, sessionIDParam(p))
		if !ok {
			return
		}

		var body participantsRequest
		if !decodeJSON(w, r, &body) {
			return
		}

		if f := session.SetParticipants(ep, body.AuthToken, body.Participants); f != nil {
			writeFailure(w, f)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}
}

func (s *Server) serveStart() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		securityHeaders(w)
		ep, ok := s.lookup(w, sessionIDParam(p))
		if !ok {
			return
		}

		var body startRequest
		if !decodeJSON(w, r, &body) {
			return
		}

		if f := session.Start(ep, body.AuthToken); f != nil {
			writeFailure(w, f)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}
}

func (s *Server) serveResign() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		securityHeaders(w)
		ep, ok := s.lookup(w, sessionIDParam(p))
		if !ok {
			return
		}

		var body resignRequest
		if !decodeJSON(w, r, &body) {
			return
		}

		if f := session.Resign(ep, body.AuthToken); f != nil {
			writeFailure(w, f)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}
}

func (s *Server) serveBoard() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		securityHeaders(w)
		ep, ok := s.lookup(w, sessionIDParam(p))
		if !ok {
			return
		}

		var body boardRequest
		if !decodeJSON(w, r, &body) {
			return
		}

		var f *session.Failure
		switch body.Type {
		case "Deploy":
			f = session.Deploy(ep, body.AuthToken, body.Piece, body.Pos)
		case "Move":
			f = session.Move(ep, body.AuthToken, body.Change)
		case "Promote":
			f = session.Promote(ep, body.AuthToken, body.Change, body.UpgradeTo)
		default:
			writeBadJSON(w)
			return
		}
		if f != nil {
			writeFailure(w, f)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}
}
