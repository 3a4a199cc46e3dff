package httpserver

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"janggi/internal/janggi"
	"janggi/internal/server/game"
	"janggi/internal/server/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	mgr := game.NewManager(store.NewMemory(), 0)
	return New(mgr, Config{JWTSecret: "test-secret", EngineDepth: 2})
}

func doJSON(t *testing.T, s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decodeInto(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func errCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var e map[string]string
	decodeInto(t, rec, &e)
	return e["error"]
}

func createGame(t *testing.T, s *Server) CreateGameResponse {
	t.Helper()
	rec := doJSON(t, s, http.MethodPost, "/api/games", "", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create = %d, want 201: %s", rec.Code, rec.Body)
	}
	var resp CreateGameResponse
	decodeInto(t, rec, &resp)
	return resp
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("health = %d, want 200", rec.Code)
	}
}

func TestCreateGame(t *testing.T) {
	s := newTestServer(t)
	resp := createGame(t, s)

	if resp.GameID == "" {
		t.Fatal("game_id is empty")
	}
	if resp.Turn != "blue" {
		t.Fatalf("turn = %q, want blue", resp.Turn)
	}
	if resp.Status != "in_progress" {
		t.Fatalf("status = %q, want in_progress", resp.Status)
	}
	if resp.Ply != 0 {
		t.Fatalf("ply = %d, want 0", resp.Ply)
	}
	if len(resp.Board) != 10 {
		t.Fatalf("board has %d rows, want 10", len(resp.Board))
	}
	if resp.Board[0] != "REHA.AHER" {
		t.Fatalf("board[0] = %q, want red back rank", resp.Board[0])
	}
	if len(resp.LegalMoves) != 31 {
		t.Fatalf("legal_moves = %d, want 31", len(resp.LegalMoves))
	}
	if resp.RedToken == "" || resp.BlueToken == "" {
		t.Fatal("seat tokens missing")
	}
	if resp.RedToken == resp.BlueToken {
		t.Fatal("both seats got the same token")
	}
}

func TestPlayMoveFlow(t *testing.T) {
	s := newTestServer(t)
	g := createGame(t, s)

	// Blue opens with the edge soldier.
	rec := doJSON(t, s, http.MethodPost, "/api/games/"+g.GameID+"/moves", g.BlueToken,
		MoveRequest{Move: "a7a6"})
	if rec.Code != http.StatusOK {
		t.Fatalf("blue move = %d: %s", rec.Code, rec.Body)
	}
	var st StateResponse
	decodeInto(t, rec, &st)
	if st.Ply != 1 {
		t.Fatalf("ply = %d, want 1", st.Ply)
	}
	if st.Turn != "red" {
		t.Fatalf("turn = %q, want red", st.Turn)
	}
	if st.Board[6][0] != '.' || st.Board[5][0] != 'p' {
		t.Fatalf("soldier did not advance: %q / %q", st.Board[6], st.Board[5])
	}

	// Red answers in kind, via coordinates instead of a move string.
	f0, r0, f1, r1 := 0, 3, 0, 4
	rec = doJSON(t, s, http.MethodPost, "/api/games/"+g.GameID+"/moves", g.RedToken,
		MoveRequest{FromFile: &f0, FromRank: &r0, ToFile: &f1, ToRank: &r1})
	if rec.Code != http.StatusOK {
		t.Fatalf("red move = %d: %s", rec.Code, rec.Body)
	}
	decodeInto(t, rec, &st)
	if st.Ply != 2 || st.Turn != "blue" {
		t.Fatalf("after red move: ply=%d turn=%q", st.Ply, st.Turn)
	}
	if st.Status != "in_progress" {
		t.Fatalf("status = %q, want in_progress", st.Status)
	}
}

func TestMoveAuth(t *testing.T) {
	s := newTestServer(t)
	g := createGame(t, s)
	other := createGame(t, s)
	path := "/api/games/" + g.GameID + "/moves"
	body := MoveRequest{Move: "a7a6"}

	rec := doJSON(t, s, http.MethodPost, path, "", body)
	if rec.Code != http.StatusUnauthorized || errCode(t, rec) != "missing_token" {
		t.Fatalf("no token: %d %s", rec.Code, rec.Body)
	}

	rec = doJSON(t, s, http.MethodPost, path, "garbage", body)
	if rec.Code != http.StatusUnauthorized || errCode(t, rec) != "bad_token" {
		t.Fatalf("bad token: %d %s", rec.Code, rec.Body)
	}

	rec = doJSON(t, s, http.MethodPost, path, other.BlueToken, body)
	if rec.Code != http.StatusForbidden || errCode(t, rec) != "wrong_game" {
		t.Fatalf("other game's token: %d %s", rec.Code, rec.Body)
	}

	// Red's seat cannot move while blue is to play.
	rec = doJSON(t, s, http.MethodPost, path, g.RedToken, MoveRequest{Move: "a4a5"})
	if rec.Code != http.StatusForbidden || errCode(t, rec) != "not_your_turn" {
		t.Fatalf("out of turn: %d %s", rec.Code, rec.Body)
	}
}

func TestMoveRejections(t *testing.T) {
	s := newTestServer(t)
	g := createGame(t, s)
	path := "/api/games/" + g.GameID + "/moves"

	cases := []struct {
		name     string
		body     any
		wantCode int
		wantErr  string
	}{
		{"unparseable move", MoveRequest{Move: "zz"}, http.StatusBadRequest, "bad_move"},
		{"missing coordinates", MoveRequest{}, http.StatusBadRequest, "bad_move"},
		{"soldier backward", MoveRequest{Move: "a7a8"}, http.StatusUnprocessableEntity, "illegal_move"},
		{"moving red's piece", MoveRequest{Move: "a4a5"}, http.StatusConflict, "wrong_turn"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, s, http.MethodPost, path, g.BlueToken, tc.body)
			if rec.Code != tc.wantCode || errCode(t, rec) != tc.wantErr {
				t.Fatalf("got %d %s, want %d %s", rec.Code, rec.Body, tc.wantCode, tc.wantErr)
			}
		})
	}

	rec := doJSON(t, s, http.MethodPost, "/api/games/nope/moves", g.BlueToken, MoveRequest{Move: "a7a6"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown game = %d, want 404", rec.Code)
	}
}

func TestMovesQuery(t *testing.T) {
	s := newTestServer(t)
	g := createGame(t, s)
	base := "/api/games/" + g.GameID + "/moves"

	rec := doJSON(t, s, http.MethodGet, base, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("all moves = %d", rec.Code)
	}
	var all MovesResponse
	decodeInto(t, rec, &all)
	if len(all.Moves) != 31 {
		t.Fatalf("all moves = %d, want 31", len(all.Moves))
	}

	// Blue's corner chariot can only slide up its own file twice.
	rec = doJSON(t, s, http.MethodGet, base+"?from=a10", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("from=a10 = %d", rec.Code)
	}
	var one MovesResponse
	decodeInto(t, rec, &one)
	if one.From != "a10" {
		t.Fatalf("from = %q, want a10", one.From)
	}
	if len(one.Moves) != 2 {
		t.Fatalf("chariot moves = %v, want 2 square slides", one.Moves)
	}

	rec = doJSON(t, s, http.MethodGet, base+"?from=z9", "", nil)
	if rec.Code != http.StatusBadRequest || errCode(t, rec) != "bad_square" {
		t.Fatalf("bad square: %d %s", rec.Code, rec.Body)
	}
}

func TestEngineMoveEndpoint(t *testing.T) {
	s := newTestServer(t)
	g := createGame(t, s)
	path := "/api/games/" + g.GameID + "/engine-move"

	rec := doJSON(t, s, http.MethodPost, path, "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token = %d, want 401", rec.Code)
	}

	// Either seat may request the reply; red asks for blue's move.
	rec = doJSON(t, s, http.MethodPost, path, g.RedToken, EngineMoveRequest{MaxDepth: 2})
	if rec.Code != http.StatusOK {
		t.Fatalf("engine move = %d: %s", rec.Code, rec.Body)
	}
	var resp EngineMoveResponse
	decodeInto(t, rec, &resp)
	if resp.BestMove.From == "" || resp.BestMove.From == resp.BestMove.To {
		t.Fatalf("best_move = %+v", resp.BestMove)
	}
	if resp.Depth != 2 {
		t.Fatalf("depth = %d, want 2", resp.Depth)
	}
	if resp.Nodes <= 0 {
		t.Fatalf("nodes = %d, want > 0", resp.Nodes)
	}
	if resp.State.Ply != 1 || resp.State.Turn != "red" {
		t.Fatalf("state after engine move: ply=%d turn=%q", resp.State.Ply, resp.State.Turn)
	}
}

func TestDeleteGame(t *testing.T) {
	s := newTestServer(t)
	g := createGame(t, s)
	path := "/api/games/" + g.GameID

	rec := doJSON(t, s, http.MethodDelete, path, "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token = %d, want 401", rec.Code)
	}

	rec = doJSON(t, s, http.MethodDelete, path, g.BlueToken, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete = %d, want 204", rec.Code)
	}

	rec = doJSON(t, s, http.MethodGet, path, "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete = %d, want 404", rec.Code)
	}

	rec = doJSON(t, s, http.MethodDelete, path, g.BlueToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete = %d, want 404", rec.Code)
	}
}

func TestSeatTokenRoundTrip(t *testing.T) {
	secret := []byte("roundtrip-secret")
	tok, err := signSeatToken(secret, "game-1", janggi.Blue, defaultTokenTTL)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	gameID, side, err := parseSeatToken(secret, tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if gameID != "game-1" {
		t.Fatalf("game id = %q, want game-1", gameID)
	}
	if side != janggi.Blue {
		t.Fatalf("side = %v, want blue", side)
	}

	if _, _, err := parseSeatToken([]byte("other-secret"), tok); err == nil {
		t.Fatal("token verified under the wrong secret")
	}
}
