package mcts

import "janggi/internal/janggi"

// Node utilities are stored from red's view in [-1, 1]; selection
// flips the sign for blue.
type node struct {
	move     janggi.Move
	parent   *node
	children []*node
	prior    float64

	visits   int64
	valueSum float64

	expanded bool
	terminal bool
	loser    janggi.Side // side mated at this node, NoSide otherwise
}

func newNode(mv janggi.Move, parent *node, prior float64) *node {
	return &node{move: mv, parent: parent, prior: prior, loser: janggi.NoSide}
}

func (n *node) meanValue() float64 {
	if n.visits == 0 {
		return 0
	}
	return n.valueSum / float64(n.visits)
}

// utilityFor is the mean value from pla's view.
func (n *node) utilityFor(pla janggi.Side) float64 {
	if pla == janggi.Red {
		return n.meanValue()
	}
	return -n.meanValue()
}
