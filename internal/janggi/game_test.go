package janggi

import (
	"errors"
	"testing"
)

func TestOpeningSoldierAdvance(t *testing.T) {
	g := NewGame()
	if g.SideToMove() != Blue {
		t.Fatalf("side to move = %v, want blue", g.SideToMove())
	}

	if err := g.ProposeMove(MoveFromCoords(2, 6, 2, 5)); err != nil {
		t.Fatalf("blue soldier advance rejected: %v", err)
	}
	if g.Status != StatusInProgress {
		t.Fatalf("status = %v, want in_progress", g.Status)
	}
	if g.SideToMove() != Red {
		t.Fatalf("side to move = %v, want red", g.SideToMove())
	}

	if err := g.ProposeMove(MoveFromCoords(4, 3, 4, 4)); err != nil {
		t.Fatalf("red soldier advance rejected: %v", err)
	}
	if g.SideToMove() != Blue || g.Ply != 2 {
		t.Fatalf("after two plies: side=%v ply=%d", g.SideToMove(), g.Ply)
	}
}

func TestMoveErrorPrecedence(t *testing.T) {
	g := NewGame()

	// red piece while blue is to move: turn error even though the
	// destination is also nonsense
	if err := g.ProposeMove(MoveFromCoords(0, 0, 7, 7)); !errors.Is(err, ErrWrongTurn) {
		t.Fatalf("got %v, want ErrWrongTurn", err)
	}

	// empty origin
	if err := g.ProposeMove(MoveFromCoords(4, 4, 4, 5)); !errors.Is(err, ErrWrongTurn) {
		t.Fatalf("got %v, want ErrWrongTurn", err)
	}

	// own piece, impossible shape
	if err := g.ProposeMove(MoveFromCoords(0, 9, 5, 5)); !errors.Is(err, ErrIllegalShape) {
		t.Fatalf("got %v, want ErrIllegalShape", err)
	}

	// cannon with no screen on an open path
	if err := g.ProposeMove(MoveFromCoords(1, 7, 1, 4)); !errors.Is(err, ErrIllegalShape) {
		t.Fatalf("got %v, want ErrIllegalShape", err)
	}

	if g.Ply != 0 || g.Status != StatusInProgress {
		t.Fatalf("rejected moves changed the game: ply=%d status=%v", g.Ply, g.Status)
	}
}

func TestSelfCheckRejectedEvenWhenCapturing(t *testing.T) {
	// the blue horse shields its general from the chariot on file 4;
	// capturing the soldier on (3,3) would expose the general
	p := emptyPosition(Blue)
	place(t, p, Blue, PieceGeneral, 4, 8)
	place(t, p, Blue, PieceHorse, 4, 5)
	place(t, p, Red, PieceChariot, 4, 0)
	place(t, p, Red, PieceSoldier, 3, 3)
	place(t, p, Red, PieceGeneral, 3, 0)
	g := NewGameFromPosition(p)

	err := g.ProposeMove(MoveFromCoords(4, 5, 3, 3))
	if !errors.Is(err, ErrSelfCheck) {
		t.Fatalf("got %v, want ErrSelfCheck", err)
	}
	if g.Pos.At(3, 3) == 0 || g.Pos.At(4, 5) == 0 {
		t.Fatal("rejected capture mutated the board")
	}
	if g.SideToMove() != Blue {
		t.Fatalf("side to move = %v, want blue", g.SideToMove())
	}
}

// Cornered general: the blue general on (3,9) is checked by the
// chariot on (3,0). The chariot on (5,8) seals (4,8); only (4,9)
// remains open.
func cornerEscapePosition(t *testing.T) *Position {
	t.Helper()
	p := emptyPosition(Blue)
	place(t, p, Blue, PieceGeneral, 3, 9)
	place(t, p, Red, PieceChariot, 3, 0)
	place(t, p, Red, PieceChariot, 5, 8)
	place(t, p, Red, PieceGeneral, 4, 1)
	return p
}

func TestCheckWithSingleEscape(t *testing.T) {
	g := NewGameFromPosition(cornerEscapePosition(t))

	if g.Status != StatusCheck {
		t.Fatalf("status = %v, want check", g.Status)
	}
	moves := g.Pos.LegalMoves()
	if len(moves) != 1 {
		t.Fatalf("%d legal moves, want exactly 1", len(moves))
	}
	want := MoveFromCoords(3, 9, 4, 9)
	if moves[0].From != want.From || moves[0].To != want.To {
		t.Fatalf("legal move = %+v, want %+v", moves[0], want)
	}

	if err := g.ProposeMove(want); err != nil {
		t.Fatalf("the single escape was rejected: %v", err)
	}
	if g.Status != StatusInProgress {
		t.Fatalf("status after escape = %v, want in_progress", g.Status)
	}
}

func TestCheckmateWhenEscapeSealed(t *testing.T) {
	p := cornerEscapePosition(t)
	place(t, p, Red, PieceSoldier, 4, 8) // covers (4,9) and cannot be taken
	g := NewGameFromPosition(p)

	if g.Status != StatusCheckmate {
		t.Fatalf("status = %v, want checkmate", g.Status)
	}
	if g.Winner != Red {
		t.Fatalf("winner = %v, want red", g.Winner)
	}
	if moves := g.Pos.LegalMoves(); len(moves) != 0 {
		t.Fatalf("mated side still has %d legal moves: %+v", len(moves), moves)
	}

	err := g.ProposeMove(MoveFromCoords(3, 9, 4, 9))
	if !errors.Is(err, ErrGameOver) {
		t.Fatalf("got %v, want ErrGameOver", err)
	}
}

func TestFacingGeneralsIsNotARule(t *testing.T) {
	// generals ending up face to face on an open file is neither a draw
	// nor forbidden
	p := emptyPosition(Blue)
	place(t, p, Blue, PieceGeneral, 3, 8)
	place(t, p, Red, PieceGeneral, 4, 1)
	g := NewGameFromPosition(p)

	if err := g.ProposeMove(MoveFromCoords(3, 8, 4, 8)); err != nil {
		t.Fatalf("move into a face-off rejected: %v", err)
	}
	if g.Status != StatusInProgress {
		t.Fatalf("status = %v, want in_progress", g.Status)
	}
}

func TestNoDrawStatusExists(t *testing.T) {
	// shuffle guards back and forth; repetition never produces any
	// status beyond the three defined ones
	g := NewGame()
	seq := []Move{
		MoveFromCoords(3, 9, 3, 8), MoveFromCoords(3, 0, 3, 1),
		MoveFromCoords(3, 8, 3, 9), MoveFromCoords(3, 1, 3, 0),
	}
	for i := 0; i < 12; i++ {
		mv := seq[i%len(seq)]
		if err := g.ProposeMove(mv); err != nil {
			t.Fatalf("cycle %d: %v", i, err)
		}
		switch g.Status {
		case StatusInProgress, StatusCheck, StatusCheckmate:
		default:
			t.Fatalf("cycle %d: unexpected status %v", i, g.Status)
		}
	}
	if g.Status != StatusInProgress {
		t.Fatalf("status = %v, want in_progress", g.Status)
	}
}

func TestStatusStrings(t *testing.T) {
	pairs := []struct {
		s    GameStatus
		want string
	}{
		{StatusInProgress, "in_progress"},
		{StatusCheck, "check"},
		{StatusCheckmate, "checkmate"},
	}
	for _, pr := range pairs {
		if got := pr.s.String(); got != pr.want {
			t.Errorf("String(%d) = %q, want %q", pr.s, got, pr.want)
		}
	}
}
