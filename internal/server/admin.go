package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lox/pokerroom/internal/registry"
	"github.com/lox/pokerroom/internal/table"
)

// AdminRouter serves the operational HTTP API: table lifecycle, ledgers and
// health. It binds on a separate listener from the websocket transport.
func (s *Server) AdminRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Get("/tables", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"tables": s.registry.List()})
	})

	r.Post("/tables", s.handleCreateTable)
	r.Get("/tables/{tableID}", s.handleGetTable)
	r.Get("/tables/{tableID}/ledger", s.handleGetLedger)
	r.Delete("/tables/{tableID}", s.handleDeleteTable)

	return r
}

// CreateTableRequest is the admin payload for creating a table
type CreateTableRequest struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Creator      string `json:"creator"`
	SmallBlind   int    `json:"smallBlind"`
	BigBlind     int    `json:"bigBlind"`
	MinBuyIn     int    `json:"minBuyIn"`
	MaxBuyIn     int    `json:"maxBuyIn"`
	Seats        int    `json:"seats"`
	TurnDuration int    `json:"turnDurationSeconds"`
}

func (s *Server) handleCreateTable(w http.ResponseWriter, req *http.Request) {
	var body CreateTableRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.SmallBlind <= 0 || body.BigBlind <= body.SmallBlind {
		writeError(w, http.StatusBadRequest, "blinds must satisfy 0 < small < big")
		return
	}

	cfg := table.Config{
		ID:         body.ID,
		Name:       body.Name,
		Creator:    body.Creator,
		SmallBlind: body.SmallBlind,
		BigBlind:   body.BigBlind,
		MinBuyIn:   body.MinBuyIn,
		MaxBuyIn:   body.MaxBuyIn,
		Seats:      body.Seats,
	}
	if body.TurnDuration > 0 {
		cfg.TurnDuration = time.Duration(body.TurnDuration) * time.Second
	}

	e, err := s.registry.Create(req.Context(), cfg)
	if err != nil {
		if errors.Is(err, registry.ErrTableExists) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, e.Metadata())
}

func (s *Server) handleGetTable(w http.ResponseWriter, req *http.Request) {
	e, ok := s.registry.Get(chi.URLParam(req, "tableID"))
	if !ok {
		writeError(w, http.StatusNotFound, "table not found")
		return
	}
	writeJSON(w, http.StatusOK, e.Metadata())
}

func (s *Server) handleGetLedger(w http.ResponseWriter, req *http.Request) {
	e, ok := s.registry.Get(chi.URLParam(req, "tableID"))
	if !ok {
		writeError(w, http.StatusNotFound, "table not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"tableId": e.ID(),
		"ledger":  e.Ledger(),
	})
}

func (s *Server) handleDeleteTable(w http.ResponseWriter, req *http.Request) {
	err := s.registry.Remove(req.Context(), chi.URLParam(req, "tableID"))
	if err != nil {
		if errors.Is(err, registry.ErrTableNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
