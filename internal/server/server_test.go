package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/deluca-mike/bang-game/internal/game"
	"github.com/deluca-mike/bang-game/internal/registry"
)

type memorySnapshots struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemorySnapshots() *memorySnapshots {
	return &memorySnapshots{data: map[string][]byte{}}
}

func (m *memorySnapshots) Save(_ context.Context, gameID string, snapshot []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[gameID] = append([]byte(nil), snapshot...)
	return nil
}

func (m *memorySnapshots) Load(_ context.Context, gameID string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshot, ok := m.data[gameID]
	return snapshot, ok, nil
}

func newTestServer(t *testing.T, snapshots Snapshots) (*Server, *registry.Registry) {
	t.Helper()
	reg := registry.New(time.Hour, nil, zap.NewNop())
	seed := int64(0)
	s := New(reg, snapshots, zap.NewNop(), WithRandFactory(func() game.Rand {
		seed++
		return game.NewRand(seed)
	}))
	return s, reg
}

// do runs one request against the handler and decodes the JSON response into a
// loosely typed map.
func do(t *testing.T, s *Server, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	decoded := map[string]any{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec.Code, decoded
}

func createMatch(t *testing.T, s *Server, creator string) string {
	t.Helper()
	status, body := do(t, s, http.MethodPost, "/create/"+creator, nil)
	require.Equal(t, http.StatusOK, status)
	id, _ := body["gameId"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestCreateMatch(t *testing.T) {
	s, reg := newTestServer(t, nil)

	status, body := do(t, s, http.MethodPost, "/create/alice", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ALICE", body["playerName"])
	assert.NotEmpty(t, body["gameId"])
	assert.Equal(t, 1, reg.Len())
}

func TestCreateRejectsBadName(t *testing.T) {
	s, _ := newTestServer(t, nil)

	status, body := do(t, s, http.MethodPost, "/create/b4d", nil)
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_name", body["code"])
}

func TestJoinAndStartFlow(t *testing.T) {
	s, _ := newTestServer(t, nil)
	id := createMatch(t, s, "alice")

	status, _ := do(t, s, http.MethodPost, "/join/"+id+"/bob", nil)
	require.Equal(t, http.StatusOK, status)

	// Rejoining under the same name is not an error.
	status, _ = do(t, s, http.MethodPost, "/join/"+id+"/bob", nil)
	require.Equal(t, http.StatusOK, status)

	// Only the creator can start.
	status, body := do(t, s, http.MethodPost, "/start/"+id+"/bob", nil)
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, game.CodeNotAllowed, body["code"])

	status, body = do(t, s, http.MethodPost, "/start/"+id+"/alice", nil)
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body["version"])

	status, state := do(t, s, http.MethodGet, "/publicState/"+id, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, state["started"])
}

func TestGameIDIsCaseInsensitive(t *testing.T) {
	s, _ := newTestServer(t, nil)
	id := createMatch(t, s, "alice")

	status, _ := do(t, s, http.MethodGet, "/stateVersion/"+strings.ToLower(id), nil)
	require.Equal(t, http.StatusOK, status)
}

func TestUnknownGame(t *testing.T) {
	s, _ := newTestServer(t, nil)

	status, body := do(t, s, http.MethodGet, "/stateVersion/ZZZZ", nil)
	require.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "unknown_game", body["code"])
}

func TestPrivateStateHidesOtherHands(t *testing.T) {
	s, _ := newTestServer(t, nil)
	id := createMatch(t, s, "alice")
	do(t, s, http.MethodPost, "/join/"+id+"/bob", nil)
	status, _ := do(t, s, http.MethodPost, "/start/"+id+"/alice", nil)
	require.Equal(t, http.StatusOK, status)

	status, state := do(t, s, http.MethodGet, "/privateState/"+id+"/alice", nil)
	require.Equal(t, http.StatusOK, status)

	players, ok := state["players"].([]any)
	require.True(t, ok)
	require.Len(t, players, 2)
	for _, raw := range players {
		pv, ok := raw.(map[string]any)
		require.True(t, ok)
		if pv["name"] == "ALICE" {
			assert.NotEmpty(t, pv["hand"])
		} else {
			assert.Nil(t, pv["hand"])
			assert.NotZero(t, pv["handSize"])
		}
	}

	status, body := do(t, s, http.MethodGet, "/privateState/"+id+"/mallory", nil)
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, game.CodeUnknownPlayer, body["code"])
}

func TestRulesRoundTrip(t *testing.T) {
	s, _ := newTestServer(t, nil)
	id := createMatch(t, s, "alice")

	status, _ := do(t, s, http.MethodPost, "/rules/"+id+"/alice", map[string]any{"maxPlayers": 6})
	require.Equal(t, http.StatusOK, status)

	req := httptest.NewRequest(http.MethodGet, "/rules/"+id, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var rules game.Rules
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rules))
	assert.Equal(t, 6, rules.MaxPlayers)
}

func TestMutationsReportVersion(t *testing.T) {
	s, _ := newTestServer(t, nil)
	id := createMatch(t, s, "alice")

	status, before := do(t, s, http.MethodGet, "/stateVersion/"+id, nil)
	require.Equal(t, http.StatusOK, status)

	status, after := do(t, s, http.MethodPost, "/rules/"+id+"/alice", map[string]any{"maxPlayers": 5})
	require.Equal(t, http.StatusOK, status)
	assert.NotEqual(t, before["version"], after["version"])
}

func TestSnapshotFallback(t *testing.T) {
	snapshots := newMemorySnapshots()
	s, reg := newTestServer(t, snapshots)
	id := createMatch(t, s, "alice")
	do(t, s, http.MethodPost, "/join/"+id+"/bob", nil)

	status, before := do(t, s, http.MethodGet, "/stateVersion/"+id, nil)
	require.Equal(t, http.StatusOK, status)

	// Evict the match from memory; the next request restores it from storage.
	reg.Remove(id)
	require.Equal(t, 0, reg.Len())

	status, after := do(t, s, http.MethodGet, "/stateVersion/"+id, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, before["version"], after["version"])
	assert.Equal(t, 1, reg.Len())
}

func TestWatchFeed(t *testing.T) {
	s, _ := newTestServer(t, nil)
	id := createMatch(t, s, "alice")

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/watch/" + id
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil {
		defer resp.Body.Close()
	}
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, initial, err := conn.ReadMessage()
	require.NoError(t, err)
	require.NotEmpty(t, initial)

	// A mutation pushes the new version to watchers.
	status, _ := do(t, s, http.MethodPost, "/join/"+id+"/bob", nil)
	require.Equal(t, http.StatusOK, status)

	_, updated, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.NotEqual(t, string(initial), string(updated))
}
