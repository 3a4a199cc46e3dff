package game

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"janggi/internal/engine"
	"janggi/internal/janggi"
)

// ErrNoMove is returned when the engine is asked to move in a position
// that offers none.
var ErrNoMove = errors.New("no move available")

// Instance is one live game. All play goes through its mutex, so two
// clients can never interleave half-applied moves. The engine seat is
// created lazily and kept so its table stays warm between replies.
type Instance struct {
	ID        string
	CreatedAt time.Time

	updated atomic.Int64 // unix nanos of last activity

	mu   sync.Mutex
	game *janggi.Game
	eng  *engine.Engine
}

// View is a read-only copy of an instance's state for rendering and
// persistence.
type View struct {
	ID        string
	Position  string
	Board     [janggi.NumSquares]janggi.Piece
	Turn      janggi.Side
	Status    janggi.GameStatus
	Winner    janggi.Side
	Ply       int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func newInstance(id string, g *janggi.Game, createdAt time.Time) *Instance {
	inst := &Instance{
		ID:        id,
		CreatedAt: createdAt,
		game:      g,
	}
	inst.touch()
	return inst
}

func (i *Instance) touch() {
	i.updated.Store(time.Now().UnixNano())
}

// LastActive reports the last time the instance was created, played on
// or restored. The janitor reads it without taking the play lock.
func (i *Instance) LastActive() time.Time {
	return time.Unix(0, i.updated.Load())
}

func (i *Instance) viewLocked() View {
	return View{
		ID:        i.ID,
		Position:  i.game.Pos.Encode(),
		Board:     i.game.Snapshot(),
		Turn:      i.game.SideToMove(),
		Status:    i.game.Status,
		Winner:    i.game.Winner,
		Ply:       i.game.Ply,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.LastActive(),
	}
}

func (i *Instance) View() View {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.viewLocked()
}

// Play proposes mv. On rejection the instance is untouched and the
// error is one of the rules sentinels.
func (i *Instance) Play(mv janggi.Move) (View, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if err := i.game.ProposeMove(mv); err != nil {
		return View{}, err
	}
	i.touch()
	return i.viewLocked(), nil
}

// LegalMoves lists every legal move for the side to move.
func (i *Instance) LegalMoves() []janggi.Move {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.game.Pos.LegalMoves()
}

// LegalMovesFrom lists the legal moves of the piece on from; nothing
// is legal from a square the side to move does not own.
func (i *Instance) LegalMovesFrom(from int) []janggi.Move {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.game.Pos.LegalMovesFrom(from)
}

// EngineMove searches the current position and plays the reply. The
// play lock is held for the whole search, so concurrent readers wait.
func (i *Instance) EngineMove(cfg engine.SearchConfig) (engine.SearchResult, View, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.game.Status == janggi.StatusCheckmate {
		return engine.SearchResult{}, View{}, janggi.ErrGameOver
	}
	if i.eng == nil {
		i.eng = engine.NewEngine()
	}

	res := i.eng.Search(i.game.Pos, cfg)
	if res.BestMove.From == res.BestMove.To {
		return res, View{}, ErrNoMove
	}
	if err := i.game.ProposeMove(res.BestMove); err != nil {
		return res, View{}, err
	}
	i.touch()
	return res, i.viewLocked(), nil
}
