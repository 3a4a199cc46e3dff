package mcts

import (
	"math"
	"math/rand"
	"time"

	"janggi/internal/engine"
	"janggi/internal/janggi"
)

// evalScale squashes engine scores into (-1, 1): a horse of advantage
// already reads as a clear lead.
const evalScale = 1000.0

// Searcher runs UCT playouts with uniform priors and static leaf
// evaluation. Not safe for concurrent Search calls.
type Searcher struct {
	params Params
	rng    *rand.Rand
}

func NewSearcher(params Params) *Searcher {
	def := DefaultParams()
	if params.Simulations <= 0 {
		params.Simulations = def.Simulations
	}
	if params.Cpuct <= 0 {
		params.Cpuct = def.Cpuct
	}
	if params.NoiseAlpha <= 0 {
		params.NoiseAlpha = def.NoiseAlpha
	}
	seed := params.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Searcher{params: params, rng: rand.New(rand.NewSource(seed))}
}

// Result reports one Search call. WinProb is from the side to move's
// view.
type Result struct {
	BestMove janggi.Move
	WinProb  float64
	Sims     int64
	Elapsed  time.Duration
}

func (s *Searcher) Search(pos *janggi.Position) Result {
	start := time.Now()
	root := newNode(janggi.Move{}, nil, 1)
	s.expand(root, pos)
	if s.params.RootNoise > 0 {
		s.mixRootNoise(root)
	}

	for i := 0; i < s.params.Simulations; i++ {
		if s.params.MaxTime > 0 && time.Since(start) > s.params.MaxTime {
			break
		}
		s.playout(root, pos)
	}

	return Result{
		BestMove: s.pickMove(root),
		WinProb:  (root.utilityFor(pos.SideToMove) + 1) / 2,
		Sims:     root.visits,
		Elapsed:  time.Since(start),
	}
}

// playout runs one selection-expansion-evaluation-backup pass.
func (s *Searcher) playout(root *node, rootPos *janggi.Position) {
	n := root
	pos := rootPos
	path := make([]*node, 0, 32)
	path = append(path, n)

	for n.expanded && !n.terminal {
		child := s.selectChild(n, pos.SideToMove)
		if child == nil {
			break
		}
		next, ok := pos.ApplyMove(child.move)
		if !ok {
			break
		}
		n = child
		pos = next
		path = append(path, n)
	}

	s.expand(n, pos)
	var value float64
	if n.terminal {
		value = terminalValue(n)
	} else {
		value = leafValue(pos)
	}

	for _, visited := range path {
		visited.visits++
		visited.valueSum += value
	}
}

// selectChild maximizes Q + U where U is the usual prior-weighted
// exploration term. pla is the side to move at n. A child never tried
// starts from its parent's running mean, so one early visit elsewhere
// cannot freeze out the rest of the move list.
func (s *Searcher) selectChild(n *node, pla janggi.Side) *node {
	var best *node
	bestValue := math.Inf(-1)
	sqrtVisits := math.Sqrt(float64(n.visits) + 1)
	firstPlay := n.utilityFor(pla)
	for _, child := range n.children {
		q := firstPlay
		if child.visits > 0 {
			q = child.utilityFor(pla)
		}
		u := s.params.Cpuct * child.prior * sqrtVisits / (1 + float64(child.visits))
		if v := q + u; v > bestValue {
			bestValue = v
			best = child
		}
	}
	return best
}

func (s *Searcher) expand(n *node, pos *janggi.Position) {
	if n.expanded {
		return
	}
	n.expanded = true

	moves := pos.LegalMoves()
	if len(moves) == 0 {
		n.terminal = true
		if pos.IsInCheck(pos.SideToMove) {
			n.loser = pos.SideToMove
		}
		return
	}

	prior := 1 / float64(len(moves))
	n.children = make([]*node, 0, len(moves))
	for _, mv := range moves {
		n.children = append(n.children, newNode(mv, n, prior))
	}
}

// A mated node is a loss for its side to move. A side stuck without
// check scores neutral; the game itself plays on from there.
func terminalValue(n *node) float64 {
	switch n.loser {
	case janggi.Red:
		return -1
	case janggi.Blue:
		return 1
	}
	return 0
}

// leafValue maps the static evaluation to red's view in (-1, 1).
func leafValue(pos *janggi.Position) float64 {
	score := engine.Evaluate(pos)
	if pos.SideToMove == janggi.Blue {
		score = -score
	}
	return math.Tanh(float64(score) / evalScale)
}

// pickMove takes the most visited child, or samples visits^(1/T) when
// a temperature is set.
func (s *Searcher) pickMove(root *node) janggi.Move {
	if len(root.children) == 0 {
		return janggi.Move{}
	}
	if s.params.Temperature <= 0 {
		var best *node
		for _, child := range root.children {
			if best == nil || child.visits > best.visits {
				best = child
			}
		}
		return best.move
	}

	weights := make([]float64, len(root.children))
	total := 0.0
	for i, child := range root.children {
		weights[i] = math.Pow(float64(child.visits), 1/s.params.Temperature)
		total += weights[i]
	}
	if total == 0 {
		return root.children[s.rng.Intn(len(root.children))].move
	}
	pick := s.rng.Float64() * total
	for i, w := range weights {
		pick -= w
		if pick <= 0 {
			return root.children[i].move
		}
	}
	return root.children[len(root.children)-1].move
}

func (s *Searcher) mixRootNoise(root *node) {
	if len(root.children) == 0 {
		return
	}
	noise := s.dirichlet(len(root.children))
	eps := s.params.RootNoise
	for i, child := range root.children {
		child.prior = (1-eps)*child.prior + eps*noise[i]
	}
}

func (s *Searcher) dirichlet(n int) []float64 {
	out := make([]float64, n)
	sum := 0.0
	for i := range out {
		out[i] = s.gammaSample(s.params.NoiseAlpha)
		sum += out[i]
	}
	if sum == 0 {
		for i := range out {
			out[i] = 1 / float64(n)
		}
		return out
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

// gammaSample draws from Gamma(alpha, 1) by Marsaglia and Tsang.
func (s *Searcher) gammaSample(alpha float64) float64 {
	if alpha < 1 {
		u := s.rng.Float64()
		for u == 0 {
			u = s.rng.Float64()
		}
		return s.gammaSample(alpha+1) * math.Pow(u, 1/alpha)
	}
	d := alpha - 1.0/3.0
	c := 1 / math.Sqrt(9*d)
	for {
		x := s.rng.NormFloat64()
		v := 1 + c*x
		if v <= 0 {
			continue
		}
		v = v * v * v
		u := s.rng.Float64()
		if u < 1-0.0331*x*x*x*x {
			return d * v
		}
		if u > 0 && math.Log(u) < 0.5*x*x+d*(1-v+math.Log(v)) {
			return d * v
		}
	}
}
