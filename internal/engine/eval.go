package engine

import "janggi/internal/janggi"

// Material weights are the traditional point values scaled by 100. The
// general's weight only matters in positions where it can actually be
// taken; legal play never removes it.
var pieceValue = map[janggi.PieceType]int{
	janggi.PieceGeneral:  1_000_000,
	janggi.PieceChariot:  1300,
	janggi.PieceCannon:   700,
	janggi.PieceHorse:    500,
	janggi.PieceElephant: 300,
	janggi.PieceGuard:    300,
	janggi.PieceSoldier:  200,
}

// Evaluate scores pos from the side to move's view: positive means the
// mover stands better. Internally everything is computed red-positive
// and flipped at the end.
func Evaluate(pos *janggi.Position) int {
	score := evaluateMaterialPositional(pos) + evaluateGeneralSafety(pos)
	if pos.SideToMove == janggi.Blue {
		return -score
	}
	return score
}

func evaluateMaterialPositional(pos *janggi.Position) int {
	score := 0
	for sq := 0; sq < janggi.NumSquares; sq++ {
		pc := pos.Board.Squares[sq]
		if pc == 0 {
			continue
		}
		side := pc.Side()
		pt := pc.Type()
		val := pieceValue[pt] + positionalBonus(pos, pt, side, janggi.FileOf(sq), janggi.RankOf(sq))
		if side == janggi.Red {
			score += val
		} else {
			score -= val
		}
	}
	return score
}

// advanceOf is how far a piece has pushed from its home edge.
func advanceOf(side janggi.Side, rank int) int {
	if side == janggi.Red {
		return rank
	}
	return janggi.Ranks - 1 - rank
}

func positionalBonus(pos *janggi.Position, pt janggi.PieceType, side janggi.Side, file, rank int) int {
	centerBonus := 4 - abs(file-4)
	switch pt {
	case janggi.PieceSoldier:
		advance := advanceOf(side, rank)
		b := advance*6 + centerBonus*2
		if advance >= 6 {
			b += 15 // deep soldier pressing the enemy palace
		}
		return b
	case janggi.PieceChariot:
		b := centerBonus * 2
		if openFile(pos, file) {
			b += 12
		}
		return b
	case janggi.PieceCannon:
		return centerBonus * 3
	case janggi.PieceHorse:
		return centerBonus*3 + advanceOf(side, rank)
	case janggi.PieceElephant:
		return centerBonus * 2
	case janggi.PieceGuard:
		if inPalace(side, file, rank) {
			return 10
		}
		return -8
	case janggi.PieceGeneral:
		if file == 4 {
			return 4
		}
		return 0
	}
	return 0
}

// openFile reports that no soldier of either side sits on the file.
func openFile(pos *janggi.Position, file int) bool {
	for rank := 0; rank < janggi.Ranks; rank++ {
		pc := pos.Board.Squares[janggi.IndexOf(file, rank)]
		if pc != 0 && pc.Type() == janggi.PieceSoldier {
			return false
		}
	}
	return true
}

const (
	missingGuardPenalty  = 40
	chariotLinePressure  = 45
	cannonScreenPressure = 35
)

func evaluateGeneralSafety(pos *janggi.Position) int {
	score := 0
	for _, side := range []janggi.Side{janggi.Red, janggi.Blue} {
		penalty := 0
		if guards := countGuards(pos, side); guards < 2 {
			penalty += (2 - guards) * missingGuardPenalty
		}
		if sq := pos.FindGeneral(side); sq >= 0 {
			penalty += linePressure(pos, side, sq)
		}
		if side == janggi.Red {
			score -= penalty
		} else {
			score += penalty
		}
	}
	return score
}

func countGuards(pos *janggi.Position, side janggi.Side) int {
	n := 0
	for sq := 0; sq < janggi.NumSquares; sq++ {
		pc := pos.Board.Squares[sq]
		if pc != 0 && pc.Side() == side && pc.Type() == janggi.PieceGuard {
			n++
		}
	}
	return n
}

// linePressure sums threats by enemy chariots and cannons down the
// general's file and rank. A chariot counts with a clear line, a
// cannon with exactly one screen that is not itself a cannon.
func linePressure(pos *janggi.Position, side janggi.Side, generalSq int) int {
	enemy := janggi.Opposite(side)
	gf, gr := janggi.FileOf(generalSq), janggi.RankOf(generalSq)

	total := 0
	dirs := [4][2]int{{0, -1}, {0, +1}, {-1, 0}, {+1, 0}}
	for _, d := range dirs {
		screens := 0
		screenIsCannon := false
		f, r := gf+d[0], gr+d[1]
		for janggi.OnBoard(f, r) {
			pc := pos.Board.Squares[janggi.IndexOf(f, r)]
			if pc != 0 {
				if pc.Side() == enemy {
					switch pc.Type() {
					case janggi.PieceChariot:
						if screens == 0 {
							total += chariotLinePressure
						}
					case janggi.PieceCannon:
						if screens == 1 && !screenIsCannon {
							total += cannonScreenPressure
						}
					}
				}
				if screens == 0 {
					screenIsCannon = pc.Type() == janggi.PieceCannon
				}
				screens++
				if screens > 1 {
					break
				}
			}
			f += d[0]
			r += d[1]
		}
	}
	return total
}

// Mirrors the unexported palace test in the rules package.
func inPalace(side janggi.Side, file, rank int) bool {
	if file < 3 || file > 5 {
		return false
	}
	if side == janggi.Red {
		return rank <= 2
	}
	return rank >= 7
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
