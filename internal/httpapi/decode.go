package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
)

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeBadJSON(w)
		return false
	}
	if err := json.Unmarshal(body, dst); err != nil {
		writeBadJSON(w)
		return false
	}
	return true
}
