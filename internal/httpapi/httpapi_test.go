package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bughouse/internal/config"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := &config.Config{
		MaxSession:        10,
		SessionCapacity:   4,
		Tick:              time.Hour,
		BroadcastInterval: time.Hour,
		MaxUser:           20,
		MaxParticipant:    5,
	}
	s := New(cfg)
	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}

func TestCreateSessionReturnsOwnerCredentials(t *testing.T) {
	ts := testServer(t)

	resp := postJSON(t, ts.URL+"/v1/sessions", createRequest{OwnerName: "Owner"})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out createResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.NotEmpty(t, out.SessionId)
	assert.NotEmpty(t, out.AuthToken)
}

func TestCreateRejectsInvalidOwnerName(t *testing.T) {
	ts := testServer(t)

	resp := postJSON(t, ts.URL+"/v1/sessions", createRequest{OwnerName: ""})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestUnknownSessionReturns404(t *testing.T) {
	ts := testServer(t)

	resp := postJSON(t, ts.URL+"/v1/sessions/zzzz", map[string]string{"userName": "Bob"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFullLifecycleJoinParticipantsStartMove(t *testing.T) {
	ts := testServer(t)

	resp := postJSON(t, ts.URL+"/v1/sessions", createRequest{OwnerName: "Owner"})
	var created createResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()

	type joinOut struct {
		UserId    int    `json:"userId"`
		AuthToken string `json:"authToken"`
	}
	joinAs := func(name string) joinOut {
		r := postJSON(t, ts.URL+"/v1/sessions/"+string(created.SessionId), map[string]string{"userName": name})
		defer r.Body.Close()
		require.Equal(t, http.StatusOK, r.StatusCode)
		var out joinOut
		require.NoError(t, json.NewDecoder(r.Body).Decode(&out))
		return out
	}

	bob := joinAs("Bob")
	carol := joinAs("Carol")
	dave := joinAs("Dave")

	participantsBody := map[string]any{
		"authToken":    created.AuthToken,
		"participants": []int{0, bob.UserId, carol.UserId, dave.UserId},
	}
	data, _ := json.Marshal(participantsBody)
	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/v1/sessions/"+string(created.SessionId)+"/participants", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp2.Body.Close()
	assert.Equal(t, http.StatusAccepted, resp2.StatusCode)

	resp3 := postJSON(t, ts.URL+"/v1/sessions/"+string(created.SessionId)+"/games", map[string]string{"authToken": created.AuthToken})
	resp3.Body.Close()
	assert.Equal(t, http.StatusAccepted, resp3.StatusCode)

	board := map[string]string{"type": "Move", "authToken": created.AuthToken, "change": "e1e3"}
	resp4 := postJSON(t, ts.URL+"/v1/sessions/"+string(created.SessionId)+"/games/1/board", board)
	defer resp4.Body.Close()
	assert.Equal(t, http.StatusAccepted, resp4.StatusCode)
}

func TestSSEStreamOpensAndFrames(t *testing.T) {
	ts := testServer(t)

	resp := postJSON(t, ts.URL+"/v1/sessions", createRequest{OwnerName: "Owner"})
	var created createResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/v1/sessions/"+string(created.SessionId)+"/sse", nil)
	sseResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer sseResp.Body.Close()
	assert.Equal(t, "text/event-stream", sseResp.Header.Get("Content-Type"))

	go func() {
		_ = postJSON(t, ts.URL+"/v1/sessions/"+string(created.SessionId), map[string]string{"userName": "Alice"}).Body.Close()
	}()

	buf := make([]byte, 4096)
	n, _ := sseResp.Body.Read(buf)
	assert.Contains(t, string(buf[:n]), "data: ")
}
