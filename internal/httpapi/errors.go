package httpapi

import (
	"encoding/json"
	"net/http"

	"bughouse/internal/session"
)

// statusFor maps a session.Failure's semantic Kind to the HTTP status
// the spec's error taxonomy (§7) assigns it.
func statusFor(f *session.Failure) int {
	switch f.Kind {
	case session.AuthTokenInvalid:
		return http.StatusUnauthorized
	case session.SessionIdInvalid:
		return http.StatusNotFound
	case session.MustBeSessionOwner:
		return http.StatusForbidden
	case session.UserNameInvalid,
		session.TooManyUsers,
		session.TooManyParticipants,
		session.PreconditionFailure,
		session.IllegalMove,
		session.CannotParse:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func writeFailure(w http.ResponseWriter, f *session.Failure) {
	writeJSON(w, statusFor(f), errorBody{Error: f.Message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeBadJSON(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed request body"})
}

func writeNotFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, errorBody{Error: "unknown session"})
}
