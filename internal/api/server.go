package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/user/house-eternal/internal/game"
	"github.com/user/house-eternal/internal/interfaces"
	"github.com/user/house-eternal/internal/types"
	"github.com/user/house-eternal/internal/world"
	"go.uber.org/zap"
)

// Server exposes the game over HTTP
type Server struct {
	manager interfaces.GameManager
	logger  *zap.Logger
}

// NewServer creates a server for the manager
func NewServer(manager interfaces.GameManager, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{manager: manager, logger: logger}
}

// Router builds the HTTP routes
func (s *Server) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	router.Get("/state", s.getState)
	router.Get("/characters/{id}", s.getCharacter)
	router.Get("/characters/{id}/succession", s.getSuccession)

	router.Post("/game", s.newGame)
	router.Post("/game/save", s.saveGame)
	router.Post("/game/load", s.loadGame)
	router.Get("/game/save", s.hasSave)
	router.Delete("/game/save", s.deleteSave)
	router.Delete("/game", s.exitGame)

	router.Post("/speed", s.setSpeed)
	router.Post("/tick", s.tick)

	router.Post("/marriages", s.arrangeMarriage)
	router.Post("/court/{id}/invite", s.invite)
	router.Post("/court/{id}/banish", s.banish)
	router.Post("/titles/{id}/grant", s.grantTitle)
	router.Post("/events/{id}/resolve", s.resolveEvent)

	return router
}

type characterView struct {
	*types.Character
	Age         int    `json:"age"`
	Rank        string `json:"rank,omitempty"`
	BornOn      string `json:"born_on"`
	IsPlayer    bool   `json:"is_player"`
	DynastyName string `json:"dynasty_name,omitempty"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeResult maps manager errors onto HTTP statuses
func (s *Server) writeResult(w http.ResponseWriter, ok bool, err error) {
	switch {
	case errors.Is(err, game.ErrNoGame):
		writeError(w, http.StatusConflict, err.Error())
	case err != nil:
		s.logger.Error("Request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	default:
		writeJSON(w, http.StatusOK, okResponse{OK: ok})
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return false
	}
	return true
}

func (s *Server) getState(w http.ResponseWriter, r *http.Request) {
	state := s.manager.State()
	if state == nil {
		writeError(w, http.StatusConflict, game.ErrNoGame.Error())
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) getCharacter(w http.ResponseWriter, r *http.Request) {
	state := s.manager.State()
	if state == nil {
		writeError(w, http.StatusConflict, game.ErrNoGame.Error())
		return
	}
	c, ok := state.Characters[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "character not found")
		return
	}

	view := characterView{
		Character: c,
		Age:       types.Age(c, state.CurrentWeek),
		BornOn:    world.FormatWeek(c.BirthWeek),
		IsPlayer:  c.ID == state.PlayerCharacterID,
	}
	if t, ok := state.Titles[c.PrimaryTitleID]; ok {
		view.Rank = world.RankName(t.Rank, c.Sex)
	}
	if d, ok := state.Dynasties[c.DynastyID]; ok {
		view.DynastyName = d.Name
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) getSuccession(w http.ResponseWriter, r *http.Request) {
	law := types.SuccessionLaw(r.URL.Query().Get("law"))
	if law == "" {
		law = types.LawPrimogeniture
	}
	if !law.Valid() {
		writeError(w, http.StatusBadRequest, "unknown succession law")
		return
	}
	line, err := s.manager.SuccessionLine(chi.URLParam(r, "id"), law)
	if errors.Is(err, game.ErrNoGame) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"law": law, "line": line})
}

func (s *Server) newGame(w http.ResponseWriter, r *http.Request) {
	var req types.NewGameConfig
	if !decode(w, r, &req) {
		return
	}
	state, err := s.manager.NewGame(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, state)
}

func (s *Server) saveGame(w http.ResponseWriter, r *http.Request) {
	err := s.manager.SaveGame(r.Context())
	s.writeResult(w, err == nil, err)
}

func (s *Server) loadGame(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, okResponse{OK: s.manager.LoadGame(r.Context())})
}

func (s *Server) hasSave(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"exists": s.manager.HasSave(r.Context())})
}

func (s *Server) deleteSave(w http.ResponseWriter, r *http.Request) {
	err := s.manager.DeleteSave(r.Context())
	s.writeResult(w, err == nil, err)
}

func (s *Server) exitGame(w http.ResponseWriter, r *http.Request) {
	s.manager.ExitGame()
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func (s *Server) setSpeed(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Speed types.Speed `json:"speed"`
	}
	if !decode(w, r, &req) {
		return
	}
	err := s.manager.SetSpeed(req.Speed)
	if errors.Is(err, game.ErrInvalidSpeed) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeResult(w, err == nil, err)
}

func (s *Server) tick(w http.ResponseWriter, r *http.Request) {
	report, err := s.manager.Tick()
	if err != nil {
		s.writeResult(w, false, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) arrangeMarriage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		A           string `json:"a"`
		B           string `json:"b"`
		Matrilineal bool   `json:"matrilineal"`
	}
	if !decode(w, r, &req) {
		return
	}
	ok, err := s.manager.ArrangeMarriage(req.A, req.B, req.Matrilineal)
	s.writeResult(w, ok, err)
}

func (s *Server) invite(w http.ResponseWriter, r *http.Request) {
	ok, err := s.manager.InviteToCourt(chi.URLParam(r, "id"))
	s.writeResult(w, ok, err)
}

func (s *Server) banish(w http.ResponseWriter, r *http.Request) {
	ok, err := s.manager.BanishFromCourt(chi.URLParam(r, "id"))
	s.writeResult(w, ok, err)
}

func (s *Server) grantTitle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CharacterID string `json:"character_id"`
	}
	if !decode(w, r, &req) {
		return
	}
	ok, err := s.manager.GrantTitle(req.CharacterID, chi.URLParam(r, "id"))
	s.writeResult(w, ok, err)
}

func (s *Server) resolveEvent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Choice int `json:"choice"`
	}
	if !decode(w, r, &req) {
		return
	}
	ok, err := s.manager.ResolveEvent(chi.URLParam(r, "id"), req.Choice)
	s.writeResult(w, ok, err)
}
