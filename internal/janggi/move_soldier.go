package janggi

// Soldier: one step forward or sideways, never backward. On an enemy
// palace X point it may also step diagonally forward along the X lines.
func genSoldierMoves(p *Position, from int, moves *[]Move) {
	file, rank := fileOf(from), rankOf(from)
	pc := p.Board.Squares[from]
	if pc == 0 {
		return
	}
	side := pc.Side()
	dir := soldierDir(side)

	steps := [3][2]int{{0, dir}, {-1, 0}, {+1, 0}}
	for _, d := range steps {
		f, r := file+d[0], rank+d[1]
		if !onBoard(f, r) {
			continue
		}
		to := indexOf(f, r)
		dst := p.Board.Squares[to]
		if dst == 0 || dst.Side() != side {
			*moves = append(*moves, Move{From: from, To: to})
		}
	}

	enemy := opposite(side)
	if !onPalaceDiag(file, rank) || !inPalace(enemy, file, rank) {
		return
	}
	for _, df := range [2]int{-1, +1} {
		f, r := file+df, rank+dir
		if !onBoard(f, r) || !onPalaceDiag(f, r) || !inPalace(enemy, f, r) {
			continue
		}
		to := indexOf(f, r)
		dst := p.Board.Squares[to]
		if dst == 0 || dst.Side() != side {
			*moves = append(*moves, Move{From: from, To: to})
		}
	}
}
