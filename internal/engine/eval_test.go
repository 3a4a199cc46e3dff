package engine

import (
	"testing"

	"janggi/internal/janggi"
)

func TestEvaluateOpeningIsBalanced(t *testing.T) {
	// The standard setup is an exact mirror, so neither side can be
	// ahead whoever is to move.
	if got := Evaluate(janggi.NewInitialPosition()); got != 0 {
		t.Fatalf("got %d for the opening, want 0", got)
	}

	pos := janggi.NewInitialPosition()
	pos.SideToMove = janggi.Red
	if got := Evaluate(pos); got != 0 {
		t.Fatalf("got %d for the opening with red to move, want 0", got)
	}
}

func TestEvaluateFlipsWithSideToMove(t *testing.T) {
	pos := janggi.NewInitialPosition()
	pos.Set(2, 9, 0) // blue loses a horse

	pos.SideToMove = janggi.Red
	redView := Evaluate(pos)
	if redView <= 0 {
		t.Fatalf("got %d with red a horse up, want positive", redView)
	}

	pos.SideToMove = janggi.Blue
	if blueView := Evaluate(pos); blueView != -redView {
		t.Fatalf("got %d from blue's view, want %d", blueView, -redView)
	}
}

func TestEvaluateMissingGuardsPenalized(t *testing.T) {
	full := janggi.NewInitialPosition()
	full.SideToMove = janggi.Red

	bare := janggi.NewInitialPosition()
	bare.SideToMove = janggi.Red
	bare.Set(3, 9, 0) // strip both blue guards
	bare.Set(5, 9, 0)

	if Evaluate(bare) <= Evaluate(full) {
		t.Fatalf("stripping blue's guards did not help red: %d vs %d",
			Evaluate(bare), Evaluate(full))
	}
}

func TestOpenFile(t *testing.T) {
	pos := janggi.NewInitialPosition()

	if openFile(pos, 0) {
		t.Fatalf("file 0 carries soldiers, want closed")
	}
	if !openFile(pos, 1) {
		t.Fatalf("file 1 carries no soldier, want open")
	}
}
