package janggi

// IsAttacked reports whether bySide attacks sq, by move simulation:
// any piece of bySide whose pseudo-legal moves include sq attacks it.
// Generals and guards are skipped as attackers: they never leave their
// own palace and the two palaces are disjoint, so they can never bear
// on the enemy general. Callers use this for check detection.
func (p *Position) IsAttacked(sq int, bySide Side) bool {
	for s := 0; s < NumSquares; s++ {
		pc := p.Board.Squares[s]
		if pc == 0 || pc.Side() != bySide {
			continue
		}
		pt := pc.Type()
		if pt == PieceGeneral || pt == PieceGuard {
			continue
		}
		var moves []Move
		genPieceMoves(p, s, pt, &moves)
		for _, mv := range moves {
			if mv.To == sq {
				return true
			}
		}
	}
	return false
}

// FindGeneral returns the square of side's general, or -1 when the
// general is off the board.
func (p *Position) FindGeneral(side Side) int {
	for s, pc := range p.Board.Squares {
		if pc != 0 && pc.Side() == side && pc.Type() == PieceGeneral {
			return s
		}
	}
	return -1
}

// IsInCheck reports whether side's general is currently attacked.
func (p *Position) IsInCheck(side Side) bool {
	gen := p.FindGeneral(side)
	if gen == -1 {
		return false
	}
	return p.IsAttacked(gen, opposite(side))
}
