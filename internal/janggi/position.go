package janggi

// Validate checks m against the full rules without touching the
// position. Checks run in a fixed order so the caller sees the most
// specific rejection: turn ownership, then movement shape, then
// self-check. Self-check is decided by playing the move on a scratch
// copy; capturing the enemy general grants no exemption.
func (p *Position) Validate(m Move) error {
	if m.From < 0 || m.From >= NumSquares {
		return ErrWrongTurn
	}
	pc := p.Board.Squares[m.From]
	if pc == 0 || pc.Side() != p.SideToMove {
		return ErrWrongTurn
	}
	if m.To < 0 || m.To >= NumSquares {
		return ErrIllegalShape
	}
	shapeOK := false
	for _, mv := range p.PseudoLegalMovesFrom(m.From) {
		if mv.To == m.To {
			shapeOK = true
			break
		}
	}
	if !shapeOK {
		return ErrIllegalShape
	}
	np, ok := p.ApplyMove(m)
	if !ok {
		return ErrIllegalShape
	}
	if np.IsInCheck(p.SideToMove) {
		return ErrSelfCheck
	}
	return nil
}

// GeneralExists reports whether side's general is on the board.
// DecodePosition does not require one, so load paths check here
// before play begins.
func (p *Position) GeneralExists(side Side) bool {
	return p.FindGeneral(side) != -1
}
