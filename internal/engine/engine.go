package engine

// Engine carries search state reused across calls for the same game:
// the transposition table and the node counter. An Engine is not safe
// for concurrent use; callers that share one serialize around it.
// Root workers get private Engines so the table needs no locking.
type Engine struct {
	tt    map[uint64]ttEntry
	nodes int64
	useTT bool
}

func NewEngine() *Engine {
	return &Engine{
		tt: make(map[uint64]ttEntry, 1<<18),
	}
}

func newRootWorker(useTT bool) *Engine {
	return &Engine{
		tt:    make(map[uint64]ttEntry, 1<<14),
		useTT: useTT,
	}
}
