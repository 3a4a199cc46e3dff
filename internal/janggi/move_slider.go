package janggi

// Chariot: free travel along files and ranks, and along the palace X
// lines when standing on one of their points.
func genChariotMoves(p *Position, from int, moves *[]Move) {
	file, rank := fileOf(from), rankOf(from)
	side := p.Board.Squares[from].Side()
	for _, d := range orthoDirs {
		f, r := file+d[0], rank+d[1]
		for onBoard(f, r) {
			to := indexOf(f, r)
			pc := p.Board.Squares[to]
			if pc == 0 {
				*moves = append(*moves, Move{From: from, To: to})
			} else {
				if pc.Side() != side {
					*moves = append(*moves, Move{From: from, To: to})
				}
				break
			}
			f += d[0]
			r += d[1]
		}
	}
	if !onPalaceDiag(file, rank) {
		return
	}
	for _, d := range diagDirs {
		f, r := file+d[0], rank+d[1]
		for onBoard(f, r) && onPalaceDiag(f, r) {
			to := indexOf(f, r)
			pc := p.Board.Squares[to]
			if pc == 0 {
				*moves = append(*moves, Move{From: from, To: to})
			} else {
				if pc.Side() != side {
					*moves = append(*moves, Move{From: from, To: to})
				}
				break
			}
			f += d[0]
			r += d[1]
		}
	}
}

// Cannon: must jump exactly one screen to move or capture. The screen
// is never a cannon and a cannon is never the capture target. Without
// a screen a cannon has no move at all in that direction.
func genCannonMoves(p *Position, from int, moves *[]Move) {
	file, rank := fileOf(from), rankOf(from)
	side := p.Board.Squares[from].Side()
	for _, d := range orthoDirs {
		genCannonRay(p, from, side, d, false, moves)
	}
	if !onPalaceDiag(file, rank) {
		return
	}
	for _, d := range diagDirs {
		genCannonRay(p, from, side, d, true, moves)
	}
}

func genCannonRay(p *Position, from int, side Side, d [2]int, diag bool, moves *[]Move) {
	f, r := fileOf(from)+d[0], rankOf(from)+d[1]

	// scan up to the screen; squares before it are unreachable
	screened := false
	for onBoard(f, r) {
		if diag && !onPalaceDiag(f, r) {
			return
		}
		pc := p.Board.Squares[indexOf(f, r)]
		f += d[0]
		r += d[1]
		if pc != 0 {
			if pc.Type() == PieceCannon {
				return
			}
			screened = true
			break
		}
	}
	if !screened {
		return
	}

	// beyond the screen: empties are destinations, the first occupied
	// square ends the ray and is a capture only if enemy and not a cannon
	for onBoard(f, r) {
		if diag && !onPalaceDiag(f, r) {
			return
		}
		to := indexOf(f, r)
		pc := p.Board.Squares[to]
		if pc == 0 {
			*moves = append(*moves, Move{From: from, To: to})
			f += d[0]
			r += d[1]
			continue
		}
		if pc.Side() != side && pc.Type() != PieceCannon {
			*moves = append(*moves, Move{From: from, To: to})
		}
		return
	}
}
