package janggi

// Horse: one straight step then one diagonal step outward. Eight
// destinations; each is blocked when the straight-step square (the
// pivot) is occupied by anything.
var horseLegMoves = [8]struct {
	Df, Dr int // destination
	Bf, Br int // pivot
}{
	{-1, -2, 0, -1},
	{+1, -2, 0, -1},
	{-1, +2, 0, +1},
	{+1, +2, 0, +1},
	{-2, -1, -1, 0},
	{-2, +1, -1, 0},
	{+2, -1, +1, 0},
	{+2, +1, +1, 0},
}

func genHorseMoves(p *Position, from int, moves *[]Move) {
	file, rank := fileOf(from), rankOf(from)
	side := p.Board.Squares[from].Side()
	for _, m := range horseLegMoves {
		f := file + m.Df
		r := rank + m.Dr
		if !onBoard(f, r) {
			continue
		}
		bf := file + m.Bf
		br := rank + m.Br
		if p.Board.Squares[indexOf(bf, br)] != 0 {
			continue // pivot blocked
		}
		to := indexOf(f, r)
		dst := p.Board.Squares[to]
		if dst == 0 || dst.Side() != side {
			*moves = append(*moves, Move{From: from, To: to})
		}
	}
}

// Elephant: one straight step then two diagonal steps outward in the
// same quadrant. The pivot and the first diagonal square must both be
// empty; the elephant roams the whole board.
var elephantLegMoves = [8]struct {
	Df, Dr   int // destination
	B1f, B1r int // pivot
	B2f, B2r int // first diagonal square
}{
	{-2, -3, 0, -1, -1, -2},
	{+2, -3, 0, -1, +1, -2},
	{-2, +3, 0, +1, -1, +2},
	{+2, +3, 0, +1, +1, +2},
	{-3, -2, -1, 0, -2, -1},
	{-3, +2, -1, 0, -2, +1},
	{+3, -2, +1, 0, +2, -1},
	{+3, +2, +1, 0, +2, +1},
}

func genElephantMoves(p *Position, from int, moves *[]Move) {
	file, rank := fileOf(from), rankOf(from)
	side := p.Board.Squares[from].Side()
	for _, m := range elephantLegMoves {
		f := file + m.Df
		r := rank + m.Dr
		if !onBoard(f, r) {
			continue
		}
		if p.Board.Squares[indexOf(file+m.B1f, rank+m.B1r)] != 0 {
			continue
		}
		if p.Board.Squares[indexOf(file+m.B2f, rank+m.B2r)] != 0 {
			continue
		}
		to := indexOf(f, r)
		dst := p.Board.Squares[to]
		if dst == 0 || dst.Side() != side {
			*moves = append(*moves, Move{From: from, To: to})
		}
	}
}
