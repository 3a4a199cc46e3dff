package janggi

func genPieceMoves(p *Position, sq int, pt PieceType, moves *[]Move) {
	switch pt {
	case PieceChariot:
		genChariotMoves(p, sq, moves)
	case PieceCannon:
		genCannonMoves(p, sq, moves)
	case PieceHorse:
		genHorseMoves(p, sq, moves)
	case PieceElephant:
		genElephantMoves(p, sq, moves)
	case PieceGeneral, PieceGuard:
		genPalaceMoves(p, sq, moves)
	case PieceSoldier:
		genSoldierMoves(p, sq, moves)
	}
}

// GeneratePseudoMovesForSide generates side's moves ignoring check.
func (p *Position) GeneratePseudoMovesForSide(side Side) []Move {
	var moves []Move
	for sq := 0; sq < NumSquares; sq++ {
		pc := p.Board.Squares[sq]
		if pc == 0 || pc.Side() != side {
			continue
		}
		genPieceMoves(p, sq, pc.Type(), &moves)
	}
	return moves
}

// GeneratePseudoMoves generates the side to move's moves ignoring check.
func (p *Position) GeneratePseudoMoves() []Move {
	return p.GeneratePseudoMovesForSide(p.SideToMove)
}

// PseudoLegalMovesFrom generates the moves of the piece on from,
// ignoring both check and whose turn it is.
func (p *Position) PseudoLegalMovesFrom(from int) []Move {
	if from < 0 || from >= NumSquares {
		return nil
	}
	pc := p.Board.Squares[from]
	if pc == 0 {
		return nil
	}
	var moves []Move
	genPieceMoves(p, from, pc.Type(), &moves)
	return moves
}

// LegalMoves generates the side to move's moves, dropping any that
// would leave the mover's own general attacked.
func (p *Position) LegalMoves() []Move {
	pseudo := p.GeneratePseudoMoves()
	out := make([]Move, 0, len(pseudo))
	for _, mv := range pseudo {
		np, ok := p.ApplyMove(mv)
		if !ok {
			continue
		}
		if np.IsInCheck(p.SideToMove) {
			continue
		}
		out = append(out, mv)
	}
	return out
}

// LegalMovesFrom is LegalMoves restricted to the piece on from. The
// piece must belong to the side to move, otherwise nothing is legal.
func (p *Position) LegalMovesFrom(from int) []Move {
	if from < 0 || from >= NumSquares {
		return nil
	}
	pc := p.Board.Squares[from]
	if pc == 0 || pc.Side() != p.SideToMove {
		return nil
	}
	pseudo := p.PseudoLegalMovesFrom(from)
	out := make([]Move, 0, len(pseudo))
	for _, mv := range pseudo {
		np, ok := p.ApplyMove(mv)
		if !ok {
			continue
		}
		if np.IsInCheck(p.SideToMove) {
			continue
		}
		out = append(out, mv)
	}
	return out
}

// HasLegalMove short-circuits LegalMoves.
func (p *Position) HasLegalMove() bool {
	pseudo := p.GeneratePseudoMoves()
	for _, mv := range pseudo {
		np, ok := p.ApplyMove(mv)
		if !ok {
			continue
		}
		if !np.IsInCheck(p.SideToMove) {
			return true
		}
	}
	return false
}

// ApplyMove plays m on a copy and returns it. The move is taken at
// face value here; Validate is the rules gate. Returns false for out
// of range squares or an origin not owned by the side to move.
func (p *Position) ApplyMove(m Move) (*Position, bool) {
	if m.From < 0 || m.From >= NumSquares || m.To < 0 || m.To >= NumSquares {
		return nil, false
	}
	pc := p.Board.Squares[m.From]
	if pc == 0 || pc.Side() != p.SideToMove {
		return nil, false
	}
	captured := p.Board.Squares[m.To]

	np := *p
	np.Board.Squares[m.To] = pc
	np.Board.Squares[m.From] = 0
	np.SideToMove = opposite(p.SideToMove)

	// incremental Zobrist: remove the mover from its origin, remove the
	// captured piece if any, add the mover on its destination, flip side
	h := p.EnsureHash()
	h ^= pieceHashKey(pc, m.From)
	if captured != 0 {
		h ^= pieceHashKey(captured, m.To)
	}
	h ^= pieceHashKey(pc, m.To)
	h ^= zobristSide
	np.Hash = h

	return &np, true
}
