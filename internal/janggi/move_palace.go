package janggi

// General and guard move the same way: one step that stays inside the
// owner's palace, orthogonal anywhere or diagonal along the X lines.
func genPalaceMoves(p *Position, from int, moves *[]Move) {
	file, rank := fileOf(from), rankOf(from)
	side := p.Board.Squares[from].Side()
	for _, d := range orthoDirs {
		f, r := file+d[0], rank+d[1]
		if !inPalace(side, f, r) {
			continue
		}
		to := indexOf(f, r)
		dst := p.Board.Squares[to]
		if dst == 0 || dst.Side() != side {
			*moves = append(*moves, Move{From: from, To: to})
		}
	}
	if !onPalaceDiag(file, rank) {
		return
	}
	for _, d := range diagDirs {
		f, r := file+d[0], rank+d[1]
		if !inPalace(side, f, r) || !onPalaceDiag(f, r) {
			continue
		}
		to := indexOf(f, r)
		dst := p.Board.Squares[to]
		if dst == 0 || dst.Side() != side {
			*moves = append(*moves, Move{From: from, To: to})
		}
	}
}
