package server

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/deluca-mike/bang-game/internal/game"
	"github.com/deluca-mike/bang-game/internal/registry"
)

// Snapshots is the persistence surface the server needs. A nil Snapshots runs
// the server memory-only.
type Snapshots interface {
	Save(ctx context.Context, gameID string, snapshot []byte) error
	Load(ctx context.Context, gameID string) ([]byte, bool, error)
}

var nameFormat = regexp.MustCompile(`^[A-Za-z]+$`)

// Server exposes the match API over HTTP plus a websocket watch feed. All
// access to a match happens under its registry entry lock.
type Server struct {
	registry  *registry.Registry
	snapshots Snapshots
	logger    *zap.Logger
	newRand   func() game.Rand
	watch     *watchHub
	mux       *http.ServeMux
}

// Option tweaks server construction.
type Option func(*Server)

// WithRandFactory replaces the per-match randomness source, for deterministic
// tests.
func WithRandFactory(f func() game.Rand) Option {
	return func(s *Server) { s.newRand = f }
}

func New(reg *registry.Registry, snapshots Snapshots, logger *zap.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		registry:  reg,
		snapshots: snapshots,
		logger:    logger,
		newRand: func() game.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
		watch: newWatchHub(logger),
		mux:   http.NewServeMux(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("POST /create/{name}", s.handleCreate)
	s.mux.HandleFunc("POST /join/{id}/{name}", s.handleJoin)
	s.mux.HandleFunc("POST /start/{id}/{name}", s.handleStart)

	s.mux.HandleFunc("GET /stateVersion/{id}", s.handleStateVersion)
	s.mux.HandleFunc("GET /publicState/{id}", s.handlePublicState)
	s.mux.HandleFunc("GET /privateState/{id}/{name}", s.handlePrivateState)
	s.mux.HandleFunc("GET /rules/{id}", s.handleGetRules)
	s.mux.HandleFunc("POST /rules/{id}/{name}", s.handleSetRules)

	s.mux.HandleFunc("POST /draw/{id}/{name}", s.handleDraw)
	s.mux.HandleFunc("POST /finishTempDraw/{id}/{name}", s.handleFinishTempDraw)
	s.mux.HandleFunc("POST /pickFromStore/{id}/{name}", s.handlePickFromStore)
	s.mux.HandleFunc("POST /discard/{id}/{name}", s.handleDiscard)
	s.mux.HandleFunc("POST /play/{id}/{name}", s.handlePlay)
	s.mux.HandleFunc("POST /loseLife/{id}/{name}", s.handleLoseLife)
	s.mux.HandleFunc("POST /mimicSkill/{id}/{name}", s.handleMimicSkill)
	s.mux.HandleFunc("POST /endTurn/{id}/{name}", s.handleEndTurn)

	s.mux.HandleFunc("GET /watch/{id}", s.handleWatch)
}

func (s *Server) Handler() http.Handler { return s.mux }

// acquire fetches a match entry, falling back to the snapshot store when the
// match is no longer resident in memory.
func (s *Server) acquire(ctx context.Context, gameID string) (*registry.Entry, error) {
	if entry, ok := s.registry.Get(gameID); ok {
		return entry, nil
	}

	if s.snapshots == nil {
		return nil, errNotFound
	}

	snapshot, ok, err := s.snapshots.Load(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errNotFound
	}

	g, err := game.RestoreGame(snapshot, s.newRand(), s.logger)
	if err != nil {
		return nil, err
	}

	s.logger.Info("match restored from storage", zap.String("game", gameID))
	return s.registry.Put(g), nil
}

var errNotFound = errors.New("game does not exist")

// save persists the match and notifies watchers of the new version.
func (s *Server) save(ctx context.Context, g *game.Game) {
	if s.snapshots != nil {
		snapshot, err := g.Snapshot()
		if err != nil {
			s.logger.Error("snapshot failed", zap.String("game", g.ID), zap.Error(err))
		} else if err := s.snapshots.Save(ctx, g.ID, snapshot); err != nil {
			s.logger.Error("snapshot save failed", zap.String("game", g.ID), zap.Error(err))
		}
	}

	s.watch.notify(g.ID, g.Version)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var gameErr *game.Error
	if errors.As(err, &gameErr) {
		writeJSON(w, http.StatusBadRequest, gameErr)
		return
	}
	if errors.Is(err, errNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"code": "unknown_game", "message": errNotFound.Error()})
		return
	}

	s.logger.Error("request failed", zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, map[string]string{"code": "internal", "message": "internal error"})
}

// playerName validates and normalizes the name path segment.
func playerName(r *http.Request) (string, bool) {
	name := r.PathValue("name")
	if !nameFormat.MatchString(name) {
		return "", false
	}
	return strings.ToUpper(name), true
}

func gameID(r *http.Request) string {
	return strings.ToUpper(r.PathValue("id"))
}

func decodeBody(r *http.Request, into any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	return json.NewDecoder(r.Body).Decode(into)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	name, ok := playerName(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"code": "invalid_name", "message": "name can only contain letters"})
		return
	}

	g, err := game.NewGame(name, s.newRand(), s.logger)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.registry.Put(g)
	s.save(r.Context(), g)

	writeJSON(w, http.StatusOK, map[string]string{"gameId": g.ID, "playerName": name})
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	name, ok := playerName(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"code": "invalid_name", "message": "name can only contain letters"})
		return
	}
	id := gameID(r)

	entry, err := s.acquire(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	entry.Lock()
	defer entry.Unlock()

	// Rejoining under the same name is idempotent.
	if _, err := entry.Game.PrivateState(name); err == nil {
		writeJSON(w, http.StatusOK, map[string]string{"gameId": id, "playerName": name})
		return
	}

	joined, err := entry.Game.AddPlayer(name)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.save(r.Context(), entry.Game)
	writeJSON(w, http.StatusOK, map[string]string{"gameId": id, "playerName": joined})
}

// mutate runs one game operation under the entry lock, persisting and
// notifying on success.
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, op func(g *game.Game, playerName string) error) {
	name, ok := playerName(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"code": "invalid_name", "message": "name can only contain letters"})
		return
	}

	entry, err := s.acquire(r.Context(), gameID(r))
	if err != nil {
		s.writeError(w, err)
		return
	}

	entry.Lock()
	defer entry.Unlock()

	if err := op(entry.Game, name); err != nil {
		s.writeError(w, err)
		return
	}

	s.save(r.Context(), entry.Game)
	writeJSON(w, http.StatusOK, map[string]string{"version": entry.Game.Version})
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(g *game.Game, name string) error {
		return g.Start(name)
	})
}

func (s *Server) handleSetRules(w http.ResponseWriter, r *http.Request) {
	var patch game.RulesPatch
	if err := decodeBody(r, &patch); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"code": "invalid_body", "message": err.Error()})
		return
	}
	s.mutate(w, r, func(g *game.Game, name string) error {
		return g.SetRules(name, patch)
	})
}

func (s *Server) handleDraw(w http.ResponseWriter, r *http.Request) {
	var req game.DrawRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"code": "invalid_body", "message": err.Error()})
		return
	}
	s.mutate(w, r, func(g *game.Game, name string) error {
		return g.Draw(name, req)
	})
}

func (s *Server) handleFinishTempDraw(w http.ResponseWriter, r *http.Request) {
	var req game.CardIndicesRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"code": "invalid_body", "message": err.Error()})
		return
	}
	s.mutate(w, r, func(g *game.Game, name string) error {
		return g.FinishTempDraw(name, req)
	})
}

func (s *Server) handlePickFromStore(w http.ResponseWriter, r *http.Request) {
	var req game.CardIndicesRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"code": "invalid_body", "message": err.Error()})
		return
	}
	s.mutate(w, r, func(g *game.Game, name string) error {
		return g.PickFromStore(name, req)
	})
}

func (s *Server) handleDiscard(w http.ResponseWriter, r *http.Request) {
	var req game.DiscardRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"code": "invalid_body", "message": err.Error()})
		return
	}
	s.mutate(w, r, func(g *game.Game, name string) error {
		return g.Discard(name, req)
	})
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req game.PlayRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"code": "invalid_body", "message": err.Error()})
		return
	}
	s.mutate(w, r, func(g *game.Game, name string) error {
		return g.Play(name, req)
	})
}

func (s *Server) handleLoseLife(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(g *game.Game, name string) error {
		return g.LoseLifeForDraw(name)
	})
}

func (s *Server) handleMimicSkill(w http.ResponseWriter, r *http.Request) {
	var req game.MimicRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"code": "invalid_body", "message": err.Error()})
		return
	}
	s.mutate(w, r, func(g *game.Game, name string) error {
		return g.MimicSkill(name, req)
	})
}

func (s *Server) handleEndTurn(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(g *game.Game, name string) error {
		return g.EndTurn(name)
	})
}

func (s *Server) handleStateVersion(w http.ResponseWriter, r *http.Request) {
	entry, err := s.acquire(r.Context(), gameID(r))
	if err != nil {
		s.writeError(w, err)
		return
	}

	entry.Lock()
	defer entry.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"version": entry.Game.Version})
}

func (s *Server) handlePublicState(w http.ResponseWriter, r *http.Request) {
	entry, err := s.acquire(r.Context(), gameID(r))
	if err != nil {
		s.writeError(w, err)
		return
	}

	entry.Lock()
	defer entry.Unlock()
	writeJSON(w, http.StatusOK, entry.Game.PublicState())
}

func (s *Server) handlePrivateState(w http.ResponseWriter, r *http.Request) {
	name, ok := playerName(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"code": "invalid_name", "message": "name can only contain letters"})
		return
	}

	entry, err := s.acquire(r.Context(), gameID(r))
	if err != nil {
		s.writeError(w, err)
		return
	}

	entry.Lock()
	defer entry.Unlock()

	view, err := entry.Game.PrivateState(name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleGetRules(w http.ResponseWriter, r *http.Request) {
	entry, err := s.acquire(r.Context(), gameID(r))
	if err != nil {
		s.writeError(w, err)
		return
	}

	entry.Lock()
	defer entry.Unlock()
	writeJSON(w, http.StatusOK, entry.Game.Rules)
}

func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)

	entry, err := s.acquire(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	entry.Lock()
	version := entry.Game.Version
	entry.Unlock()

	s.watch.serve(w, r, id, version)
}
