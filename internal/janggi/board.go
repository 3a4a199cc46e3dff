package janggi

import (
	"strings"
	"unicode"
)

const (
	Files      = 9
	Ranks      = 10
	NumSquares = Files * Ranks
)

func indexOf(file, rank int) int { return rank*Files + file }
func fileOf(sq int) int          { return sq % Files }
func rankOf(sq int) int          { return sq / Files }

func onBoard(file, rank int) bool {
	return file >= 0 && file < Files && rank >= 0 && rank < Ranks
}

// IndexOf and the coordinate accessors exist for callers outside the
// package (notation, DTOs); internal code uses the lowercase forms.
func IndexOf(file, rank int) int { return indexOf(file, rank) }
func FileOf(sq int) int          { return fileOf(sq) }
func RankOf(sq int) int          { return rankOf(sq) }
func OnBoard(file, rank int) bool {
	return onBoard(file, rank)
}

func opposite(side Side) Side {
	if side == Red {
		return Blue
	}
	if side == Blue {
		return Red
	}
	return NoSide
}

// Opposite returns the other side.
func Opposite(side Side) Side { return opposite(side) }

var (
	orthoDirs = [4][2]int{{0, -1}, {0, +1}, {-1, 0}, {+1, 0}} // {dFile, dRank}
	diagDirs  = [4][2]int{{-1, -1}, {-1, +1}, {+1, -1}, {+1, +1}}
)

// Soldier advance direction: red marches toward rank 9, blue toward rank 0.
func soldierDir(side Side) int {
	if side == Red {
		return +1
	}
	if side == Blue {
		return -1
	}
	return 0
}

// The palaces span files 3..5, ranks 0..2 (red) and 7..9 (blue).
func inPalace(side Side, file, rank int) bool {
	if file < 3 || file > 5 {
		return false
	}
	if side == Red {
		return rank >= 0 && rank <= 2
	}
	if side == Blue {
		return rank >= 7 && rank <= 9
	}
	return false
}

// onPalaceDiag reports whether (file, rank) sits on a palace X line:
// the four corners and the centre of either palace. Diagonal steps
// exist only between two such points one diagonal step apart, which is
// always a corner-centre pair.
func onPalaceDiag(file, rank int) bool {
	if file == 4 {
		return rank == 1 || rank == 8
	}
	if file == 3 || file == 5 {
		return rank == 0 || rank == 2 || rank == 7 || rank == 9
	}
	return false
}

var letterToPieceType = map[rune]PieceType{
	'k': PieceGeneral,
	'a': PieceGuard,
	'h': PieceHorse,
	'e': PieceElephant,
	'r': PieceChariot,
	'c': PieceCannon,
	'p': PieceSoldier,
}

func pieceToChar(p Piece) rune {
	if p == 0 {
		return '.'
	}
	pt := p.Type()
	var base rune
	for k, v := range letterToPieceType {
		if v == pt {
			base = k
			break
		}
	}
	if base == 0 {
		return '.'
	}
	if p.Side() == Red {
		return unicode.ToUpper(base)
	}
	return base
}

// Standard setup, rank 0 (red back rank) first. Red is uppercase.
const initialBoardString = `REHA.AHER
....K....
.C.....C.
P.P.P.P.P
.........
.........
p.p.p.p.p
.c.....c.
....k....
reha.aher`

func parseInitialBoard() Board {
	var b Board
	lines := make([]string, 0, Ranks)
	for _, line := range strings.Split(initialBoardString, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) != Ranks {
		panic("initialBoardString is not 10 ranks")
	}
	for r := 0; r < Ranks; r++ {
		if len(lines[r]) != Files {
			panic("initialBoardString rank is not 9 files")
		}
		for f, ch := range lines[r] {
			if ch == '.' {
				continue
			}
			isUpper := unicode.IsUpper(ch)
			base := unicode.ToLower(ch)
			pt, ok := letterToPieceType[base]
			if !ok {
				panic("unknown piece letter: " + string(ch))
			}
			side := Blue
			if isUpper {
				side = Red
			}
			b.Squares[indexOf(f, r)] = makePiece(side, pt)
		}
	}
	return b
}

// NewInitialPosition returns the standard setup with blue to move.
func NewInitialPosition() *Position {
	pos := &Position{
		Board:      parseInitialBoard(),
		SideToMove: Blue, // blue opens
	}
	pos.Hash = pos.CalculateHash()
	return pos
}
