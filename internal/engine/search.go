package engine

import (
	"math/rand"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"janggi/internal/janggi"
)

const (
	scoreInf = 1_000_000_000

	// Mate scores sit far above anything the evaluator can produce.
	scoreMate = 100_000_000
)

// SearchConfig bounds one Search call.
type SearchConfig struct {
	Depth          int           // maximum iterative deepening depth
	MaxTimePerMove time.Duration // soft deadline, 0 means none
	NumWorkers     int           // parallel root workers, 0 means NumCPU
	UseTT          bool
	RandomizeEqual bool // pick uniformly among equal best root moves
}

// SearchResult reports one Search call. Score is from the side to
// move's view; at or beyond scoreMate it announces a forced win.
type SearchResult struct {
	BestMove janggi.Move
	Score    int
	Depth    int
	Nodes    int64
	Elapsed  time.Duration
}

// Search runs iterative deepening up to cfg.Depth. With no legal move
// it returns a zero BestMove and the terminal score.
func (e *Engine) Search(pos *janggi.Position, cfg SearchConfig) SearchResult {
	start := time.Now()
	if cfg.Depth <= 0 {
		cfg.Depth = 4
	}
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = runtime.NumCPU()
	}
	e.useTT = cfg.UseTT
	atomic.StoreInt64(&e.nodes, 0)
	pos.EnsureHash()

	moves := pos.LegalMoves()
	if len(moves) == 0 {
		score := Evaluate(pos)
		if pos.IsInCheck(pos.SideToMove) {
			score = -scoreMate
		}
		return SearchResult{Score: score, Elapsed: time.Since(start)}
	}

	// A move that takes the enemy general ends the search outright.
	for _, mv := range moves {
		target := pos.Board.Squares[mv.To]
		if target != 0 && target.Type() == janggi.PieceGeneral {
			return SearchResult{
				BestMove: mv,
				Score:    scoreMate,
				Depth:    1,
				Nodes:    1,
				Elapsed:  time.Since(start),
			}
		}
	}

	var deadline time.Time
	if cfg.MaxTimePerMove > 0 {
		deadline = start.Add(cfg.MaxTimePerMove)
	}

	best := SearchResult{BestMove: moves[0]}
	for depth := 1; depth <= cfg.Depth; depth++ {
		if !deadline.IsZero() && time.Now().After(deadline) {
			break
		}
		score, mv, ok := e.searchRoot(pos, moves, depth, deadline, cfg)
		if !ok {
			break
		}
		timedOut := !deadline.IsZero() && time.Now().After(deadline)
		if timedOut && best.Depth > 0 {
			// Partial depth; keep the last completed one.
			break
		}
		best.BestMove = mv
		best.Score = score
		best.Depth = depth
	}

	best.Nodes = atomic.LoadInt64(&e.nodes)
	best.Elapsed = time.Since(start)
	return best
}

// searchRoot scores every root move at the given depth. Children are
// searched in parallel, each worker on a private Engine so the tables
// need no locking.
func (e *Engine) searchRoot(pos *janggi.Position, moves []janggi.Move, depth int, deadline time.Time, cfg SearchConfig) (int, janggi.Move, bool) {
	ordered := make([]janggi.Move, len(moves))
	copy(ordered, moves)
	orderMoves(pos, ordered)
	if e.useTT {
		if entry, ok := e.probeTT(positionKey(pos)); ok {
			promoteMove(ordered, entry.Move)
		}
	}

	type rootChild struct {
		move janggi.Move
		pos  *janggi.Position
	}
	children := make([]rootChild, 0, len(ordered))
	for _, mv := range ordered {
		child, ok := pos.ApplyMove(mv)
		if !ok {
			continue
		}
		children = append(children, rootChild{move: mv, pos: child})
	}
	if len(children) == 0 {
		return 0, janggi.Move{}, false
	}

	scores := make([]int, len(children))
	workers := cfg.NumWorkers
	if workers > len(children) {
		workers = len(children)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := newRootWorker(cfg.UseTT)
			for idx := range jobs {
				scores[idx] = -local.alphaBeta(children[idx].pos, depth-1, -scoreInf, scoreInf, deadline)
			}
			atomic.AddInt64(&e.nodes, local.nodes)
		}()
	}
	for idx := range children {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	bestScore := -scoreInf - 1
	ties := make([]janggi.Move, 0, 4)
	for i, score := range scores {
		if score > bestScore {
			bestScore = score
			ties = append(ties[:0], children[i].move)
		} else if score == bestScore && cfg.RandomizeEqual {
			ties = append(ties, children[i].move)
		}
	}
	bestMove := ties[0]
	if cfg.RandomizeEqual && len(ties) > 1 {
		bestMove = ties[rand.Intn(len(ties))]
	}

	if e.useTT {
		e.storeTT(positionKey(pos), depth, bestScore, ttExact, bestMove)
	}
	return bestScore, bestMove, true
}

// alphaBeta is plain negamax with a transposition table. Runs on one
// goroutine's private Engine.
func (e *Engine) alphaBeta(pos *janggi.Position, depth, alpha, beta int, deadline time.Time) int {
	e.nodes++

	if depth <= 0 {
		return Evaluate(pos)
	}
	if !deadline.IsZero() && time.Now().After(deadline) {
		return Evaluate(pos)
	}

	key := positionKey(pos)
	alphaOrig := alpha
	var ttMove janggi.Move
	if e.useTT {
		if entry, ok := e.probeTT(key); ok {
			ttMove = entry.Move
			if entry.Depth >= depth {
				switch entry.Flag {
				case ttExact:
					return entry.Score
				case ttLower:
					if entry.Score > alpha {
						alpha = entry.Score
					}
				case ttUpper:
					if entry.Score < beta {
						beta = entry.Score
					}
				}
				if alpha >= beta {
					return entry.Score
				}
			}
		}
	}

	moves := pos.LegalMoves()
	if len(moves) == 0 {
		if pos.IsInCheck(pos.SideToMove) {
			// Mated here. More remaining depth means the mate sits
			// closer to the root, which must score worse for the
			// loser so the winner prefers the shortest mate.
			return -(scoreMate + depth)
		}
		// No moves without check is not terminal under these rules.
		return Evaluate(pos)
	}

	orderMoves(pos, moves)
	if ttMove.From != ttMove.To {
		promoteMove(moves, ttMove)
	}

	bestScore := -scoreInf
	var bestMove janggi.Move
	for i := range moves {
		child, ok := pos.ApplyMove(moves[i])
		if !ok {
			continue
		}
		score := -e.alphaBeta(child, depth-1, -beta, -alpha, deadline)
		if score > bestScore {
			bestScore = score
			bestMove = moves[i]
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}

	if e.useTT {
		flag := ttExact
		if bestScore <= alphaOrig {
			flag = ttUpper
		} else if bestScore >= beta {
			flag = ttLower
		}
		e.storeTT(key, depth, bestScore, flag, bestMove)
	}
	return bestScore
}

// orderMoves puts captures first, most valuable victim leading and the
// cheapest attacker breaking ties among equal victims.
func orderMoves(pos *janggi.Position, moves []janggi.Move) {
	for i := range moves {
		victim := pos.Board.Squares[moves[i].To]
		if victim == 0 {
			moves[i].Score = 0
			continue
		}
		attacker := pos.Board.Squares[moves[i].From]
		moves[i].Score = 1_000_000 + pieceValue[victim.Type()] - pieceValue[attacker.Type()]/10
	}
	sort.SliceStable(moves, func(i, j int) bool {
		return moves[i].Score > moves[j].Score
	})
}

func promoteMove(moves []janggi.Move, mv janggi.Move) {
	for i := range moves {
		if moves[i].From == mv.From && moves[i].To == mv.To {
			moves[0], moves[i] = moves[i], moves[0]
			return
		}
	}
}
