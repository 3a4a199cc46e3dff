package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"janggi/internal/engine"
	"janggi/internal/janggi"
	"janggi/internal/notation"
	"janggi/internal/server/game"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// rulesError maps the core sentinels onto stable API codes.
func rulesError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, janggi.ErrWrongTurn):
		writeError(w, http.StatusConflict, "wrong_turn")
	case errors.Is(err, janggi.ErrIllegalShape):
		writeError(w, http.StatusUnprocessableEntity, "illegal_move")
	case errors.Is(err, janggi.ErrSelfCheck):
		writeError(w, http.StatusUnprocessableEntity, "self_check")
	case errors.Is(err, janggi.ErrGameOver):
		writeError(w, http.StatusConflict, "game_over")
	default:
		log.Error().Err(err).Msg("unexpected rules error")
		writeError(w, http.StatusInternalServerError, "internal")
	}
}

// authSeat checks the bearer token and reports which side it grants
// on this game. On failure the response is already written.
func (s *Server) authSeat(w http.ResponseWriter, r *http.Request, gameID string) (janggi.Side, bool) {
	tok := bearerToken(r)
	if tok == "" {
		writeError(w, http.StatusUnauthorized, "missing_token")
		return janggi.NoSide, false
	}
	tokGame, side, err := parseSeatToken(s.secret, tok)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "bad_token")
		return janggi.NoSide, false
	}
	if tokGame != gameID {
		writeError(w, http.StatusForbidden, "wrong_game")
		return janggi.NoSide, false
	}
	return side, true
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	inst, err := s.mgr.Create(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("create game")
		writeError(w, http.StatusInternalServerError, "create_failed")
		return
	}

	redTok, rerr := signSeatToken(s.secret, inst.ID, janggi.Red, s.ttl)
	blueTok, berr := signSeatToken(s.secret, inst.ID, janggi.Blue, s.ttl)
	if rerr != nil || berr != nil {
		log.Error().AnErr("red", rerr).AnErr("blue", berr).Msg("sign seat tokens")
		_ = s.mgr.Remove(r.Context(), inst.ID)
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}

	writeJSON(w, http.StatusCreated, CreateGameResponse{
		StateResponse: stateResponse(inst.View(), inst.LegalMoves()),
		RedToken:      redTok,
		BlueToken:     blueTok,
	})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	inst, err := s.mgr.Get(chi.URLParam(r, "gameID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "game_not_found")
		return
	}
	writeJSON(w, http.StatusOK, stateResponse(inst.View(), inst.LegalMoves()))
}

func (s *Server) handleMoves(w http.ResponseWriter, r *http.Request) {
	inst, err := s.mgr.Get(chi.URLParam(r, "gameID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "game_not_found")
		return
	}

	resp := MovesResponse{GameID: inst.ID}
	if from := r.URL.Query().Get("from"); from != "" {
		file, rank, err := notation.ParseSquare(from)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_square")
			return
		}
		resp.From = notation.FormatSquare(file, rank)
		resp.Moves = movesToStrings(inst.LegalMovesFrom(janggi.IndexOf(file, rank)))
	} else {
		resp.Moves = movesToStrings(inst.LegalMoves())
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	inst, err := s.mgr.Get(gameID)
	if err != nil {
		writeError(w, http.StatusNotFound, "game_not_found")
		return
	}
	side, ok := s.authSeat(w, r, gameID)
	if !ok {
		return
	}

	var req MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	mv, err := req.toMove()
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_move")
		return
	}

	// The token must belong to the side whose turn it is; a stale
	// check here still surfaces as wrong_turn from the rules.
	if side != inst.View().Turn {
		writeError(w, http.StatusForbidden, "not_your_turn")
		return
	}

	v, err := inst.Play(mv)
	if err != nil {
		rulesError(w, err)
		return
	}
	if err := s.mgr.Persist(r.Context(), inst); err != nil {
		log.Warn().Err(err).Str("game_id", gameID).Msg("persist after move")
	}
	writeJSON(w, http.StatusOK, stateResponse(v, inst.LegalMoves()))
}

func (s *Server) handleEngineMove(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	inst, err := s.mgr.Get(gameID)
	if err != nil {
		writeError(w, http.StatusNotFound, "game_not_found")
		return
	}
	// Either seat may ask for an engine reply, whichever side is to
	// move.
	if _, ok := s.authSeat(w, r, gameID); !ok {
		return
	}

	var req EngineMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	depth := req.MaxDepth
	if depth <= 0 {
		depth = s.depth
	}
	if depth > maxEngineDepth {
		depth = maxEngineDepth
	}
	cfg := engine.SearchConfig{
		Depth:          depth,
		UseTT:          true,
		RandomizeEqual: true,
	}
	if req.TimeMs > 0 {
		cfg.MaxTimePerMove = time.Duration(req.TimeMs) * time.Millisecond
	}

	res, v, err := inst.EngineMove(cfg)
	if err != nil {
		if errors.Is(err, game.ErrNoMove) {
			writeError(w, http.StatusConflict, "no_moves")
			return
		}
		rulesError(w, err)
		return
	}
	if err := s.mgr.Persist(r.Context(), inst); err != nil {
		log.Warn().Err(err).Str("game_id", gameID).Msg("persist after engine move")
	}

	writeJSON(w, http.StatusOK, EngineMoveResponse{
		BestMove: moveToDTO(res.BestMove),
		Score:    res.Score,
		Depth:    res.Depth,
		Nodes:    res.Nodes,
		TimeMs:   res.Elapsed.Milliseconds(),
		State:    stateResponse(v, inst.LegalMoves()),
	})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	if _, ok := s.authSeat(w, r, gameID); !ok {
		return
	}
	if err := s.mgr.Remove(r.Context(), gameID); err != nil {
		if errors.Is(err, game.ErrNotFound) {
			writeError(w, http.StatusNotFound, "game_not_found")
			return
		}
		log.Error().Err(err).Str("game_id", gameID).Msg("remove game")
		writeError(w, http.StatusInternalServerError, "internal")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
