package httpserver

import (
	"fmt"

	"janggi/internal/janggi"
	"janggi/internal/notation"
	"janggi/internal/server/game"
)

// MoveDTO carries one move as two square names, e.g. {"from":"c7",
// "to":"c6"}.
type MoveDTO struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func moveToDTO(m janggi.Move) MoveDTO {
	return MoveDTO{
		From: notation.FormatSquare(janggi.FileOf(m.From), janggi.RankOf(m.From)),
		To:   notation.FormatSquare(janggi.FileOf(m.To), janggi.RankOf(m.To)),
	}
}

func movesToStrings(ms []janggi.Move) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = notation.FormatMove(m)
	}
	return out
}

// MoveRequest accepts either a move string ("c7c6") or the four
// coordinates spelled out. Coordinates are pointers so that file or
// rank zero survives the JSON round trip.
type MoveRequest struct {
	Move     string `json:"move,omitempty"`
	FromFile *int   `json:"from_file,omitempty"`
	FromRank *int   `json:"from_rank,omitempty"`
	ToFile   *int   `json:"to_file,omitempty"`
	ToRank   *int   `json:"to_rank,omitempty"`
}

func (req *MoveRequest) toMove() (janggi.Move, error) {
	if req.Move != "" {
		return notation.ParseMove(req.Move)
	}
	if req.FromFile == nil || req.FromRank == nil || req.ToFile == nil || req.ToRank == nil {
		return janggi.Move{}, fmt.Errorf("%w: need move or all four coordinates", notation.ErrBadMove)
	}
	if !janggi.OnBoard(*req.FromFile, *req.FromRank) || !janggi.OnBoard(*req.ToFile, *req.ToRank) {
		return janggi.Move{}, fmt.Errorf("%w: coordinates off the board", notation.ErrBadMove)
	}
	return janggi.MoveFromCoords(*req.FromFile, *req.FromRank, *req.ToFile, *req.ToRank), nil
}

// StateResponse is the full snapshot a client needs to draw the game
// and offer its legal moves.
type StateResponse struct {
	GameID     string   `json:"game_id"`
	Position   string   `json:"position"`
	Board      []string `json:"board"`
	Turn       string   `json:"turn"`
	Status     string   `json:"status"`
	Winner     string   `json:"winner,omitempty"`
	Ply        int      `json:"ply"`
	LegalMoves []string `json:"legal_moves"`
}

func stateResponse(v game.View, legal []janggi.Move) StateResponse {
	resp := StateResponse{
		GameID:     v.ID,
		Position:   v.Position,
		Board:      notation.Rows(v.Board),
		Turn:       v.Turn.String(),
		Status:     v.Status.String(),
		Ply:        v.Ply,
		LegalMoves: movesToStrings(legal),
	}
	if v.Status == janggi.StatusCheckmate {
		resp.Winner = v.Winner.String()
	}
	return resp
}

// CreateGameResponse returns the opening state plus one seat token
// per color.
type CreateGameResponse struct {
	StateResponse
	RedToken  string `json:"red_token"`
	BlueToken string `json:"blue_token"`
}

// MovesResponse answers the legal-move query, optionally narrowed to
// one square.
type MovesResponse struct {
	GameID string   `json:"game_id"`
	From   string   `json:"from,omitempty"`
	Moves  []string `json:"moves"`
}

// EngineMoveRequest tunes the reply search; zero values fall back to
// the server defaults.
type EngineMoveRequest struct {
	MaxDepth int   `json:"max_depth,omitempty"`
	TimeMs   int64 `json:"time_ms,omitempty"`
}

// EngineMoveResponse reports what the engine played and the state
// after its move.
type EngineMoveResponse struct {
	BestMove MoveDTO       `json:"best_move"`
	Score    int           `json:"score"`
	Depth    int           `json:"depth"`
	Nodes    int64         `json:"nodes"`
	TimeMs   int64         `json:"time_ms"`
	State    StateResponse `json:"state"`
}
