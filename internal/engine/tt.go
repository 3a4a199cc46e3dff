package engine

import "janggi/internal/janggi"

type ttFlag uint8

const (
	ttExact ttFlag = iota
	ttLower
	ttUpper
)

type ttEntry struct {
	Key   uint64
	Depth int
	Score int
	Flag  ttFlag
	Move  janggi.Move
}

// Past this size the whole table is thrown away rather than evicted
// entry by entry.
const ttResetThreshold = 1_000_000

func (e *Engine) probeTT(key uint64) (ttEntry, bool) {
	entry, ok := e.tt[key]
	if !ok {
		return ttEntry{}, false
	}
	return entry, true
}

func (e *Engine) storeTT(key uint64, depth, score int, flag ttFlag, mv janggi.Move) {
	if len(e.tt) > ttResetThreshold {
		e.tt = make(map[uint64]ttEntry, 1<<18)
	}
	old, ok := e.tt[key]
	if !ok || depth >= old.Depth {
		e.tt[key] = ttEntry{Key: key, Depth: depth, Score: score, Flag: flag, Move: mv}
	}
}

func positionKey(p *janggi.Position) uint64 {
	return p.EnsureHash()
}
