package janggi

type GameStatus int8

const (
	StatusInProgress GameStatus = iota
	StatusCheck
	StatusCheckmate
)

func (s GameStatus) String() string {
	switch s {
	case StatusInProgress:
		return "in_progress"
	case StatusCheck:
		return "check"
	case StatusCheckmate:
		return "checkmate"
	}
	return "unknown"
}

// Game is the turn state machine over one live position. Check is
// informational and play continues through it; checkmate is terminal.
// The ruleset has no draw, so no draw status exists and none is ever
// produced, whatever the move sequence.
type Game struct {
	Pos    *Position
	Status GameStatus
	Winner Side // meaningful only when Status is StatusCheckmate
	Ply    int
}

// NewGame starts from the standard setup. Blue owns the opening move.
func NewGame() *Game {
	g := &Game{
		Pos:    NewInitialPosition(),
		Status: StatusInProgress,
		Winner: NoSide,
	}
	return g
}

// NewGameFromPosition wraps an existing position and derives its
// status, so a persisted game resumes with check and mate rediscovered.
func NewGameFromPosition(pos *Position) *Game {
	g := &Game{Pos: pos, Winner: NoSide}
	g.refreshStatus()
	return g
}

// ProposeMove validates and applies m. Any rejection leaves the game
// exactly as it was; there is no partial application.
func (g *Game) ProposeMove(m Move) error {
	if g.Status == StatusCheckmate {
		return ErrGameOver
	}
	if err := g.Pos.Validate(m); err != nil {
		return err
	}
	np, ok := g.Pos.ApplyMove(m)
	if !ok {
		return ErrIllegalShape
	}
	g.Pos = np
	g.Ply++
	g.refreshStatus()
	return nil
}

// refreshStatus classifies the position for the side now to move.
// Mate requires check with no legal reply; a quiet position with no
// moves stays in progress, because only checkmate ends a game.
func (g *Game) refreshStatus() {
	stm := g.Pos.SideToMove
	if !g.Pos.IsInCheck(stm) {
		g.Status = StatusInProgress
		return
	}
	if g.Pos.HasLegalMove() {
		g.Status = StatusCheck
		return
	}
	g.Status = StatusCheckmate
	g.Winner = opposite(stm)
}

// SideToMove is the side whose move is awaited.
func (g *Game) SideToMove() Side {
	return g.Pos.SideToMove
}

// Snapshot copies the occupancy array for rendering. The game never
// formats or prints anything itself.
func (g *Game) Snapshot() [NumSquares]Piece {
	return g.Pos.Board.Squares
}
