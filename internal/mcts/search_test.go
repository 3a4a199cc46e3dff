package mcts

import (
	"math"
	"testing"

	"janggi/internal/janggi"
)

func decodePosition(t *testing.T, text string) *janggi.Position {
	t.Helper()
	pos, err := janggi.DecodePosition(text)
	if err != nil {
		t.Fatalf("decode %q: %v", text, err)
	}
	return pos
}

func TestSearchConvergesOnMateInOne(t *testing.T) {
	// Back-rank mate: one chariot delivers on rank 9 while the other
	// holds rank 8. Red is a chariot and change down in material, so
	// every quiet child backs up a losing value and only the mating
	// child, a terminal win, collects the playouts.
	pos := decodePosition(t, "e1e5h/4K3h/6ppp/8p/9/1R7/8r/9/R8/4k4 r")

	s := NewSearcher(Params{Simulations: 500, Seed: 1})
	res := s.Search(pos)

	want := janggi.MoveFromCoords(1, 5, 1, 9)
	if res.BestMove.From != want.From || res.BestMove.To != want.To {
		t.Fatalf("got best move %d->%d, want %d->%d",
			res.BestMove.From, res.BestMove.To, want.From, want.To)
	}
	if res.WinProb < 0.75 {
		t.Fatalf("got win probability %.3f, want near certainty", res.WinProb)
	}
	if res.Sims == 0 {
		t.Fatalf("got 0 simulations")
	}
}

func TestSearchOnMatedPosition(t *testing.T) {
	pos := decodePosition(t, "9/4K4/9/9/9/9/9/9/R8/1R2k4 b")

	s := NewSearcher(Params{Simulations: 50, Seed: 1})
	res := s.Search(pos)

	if res.BestMove.From != res.BestMove.To {
		t.Fatalf("got best move %d->%d, want none", res.BestMove.From, res.BestMove.To)
	}
	if res.WinProb > 0.1 {
		t.Fatalf("got win probability %.3f for the mated side, want near zero", res.WinProb)
	}
}

func TestExpandMarksTerminalNodes(t *testing.T) {
	s := NewSearcher(Params{Seed: 1})

	mated := decodePosition(t, "9/4K4/9/9/9/9/9/9/R8/1R2k4 b")
	n := newNode(janggi.Move{}, nil, 1)
	s.expand(n, mated)

	if !n.terminal {
		t.Fatalf("mated position not marked terminal")
	}
	if n.loser != janggi.Blue {
		t.Fatalf("got loser %v, want blue", n.loser)
	}
	if len(n.children) != 0 {
		t.Fatalf("terminal node grew %d children", len(n.children))
	}
	if got := terminalValue(n); got != 1 {
		t.Fatalf("got terminal value %v, want 1 from red's view", got)
	}
}

func TestExpandAssignsUniformPriors(t *testing.T) {
	s := NewSearcher(Params{Seed: 1})
	n := newNode(janggi.Move{}, nil, 1)
	s.expand(n, janggi.NewInitialPosition())

	if len(n.children) == 0 {
		t.Fatalf("opening position expanded to no children")
	}
	want := 1 / float64(len(n.children))
	for _, child := range n.children {
		if math.Abs(child.prior-want) > 1e-12 {
			t.Fatalf("got prior %v, want uniform %v", child.prior, want)
		}
	}
}

func TestDirichletNoiseIsADistribution(t *testing.T) {
	s := NewSearcher(Params{Seed: 7, NoiseAlpha: 0.3})

	noise := s.dirichlet(12)
	sum := 0.0
	for _, v := range noise {
		if v < 0 {
			t.Fatalf("got negative noise component %v", v)
		}
		sum += v
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Fatalf("got noise sum %v, want 1", sum)
	}
}

func TestRootNoiseKeepsPriorsNormalized(t *testing.T) {
	pos := janggi.NewInitialPosition()
	s := NewSearcher(Params{Seed: 3, RootNoise: 0.25})

	root := newNode(janggi.Move{}, nil, 1)
	s.expand(root, pos)
	s.mixRootNoise(root)

	sum := 0.0
	for _, child := range root.children {
		sum += child.prior
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Fatalf("got prior sum %v after noise, want 1", sum)
	}
}
