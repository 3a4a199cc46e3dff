// Package notation translates between the engine's coordinates and the
// text players type and read: square names, move strings, rejection
// messages and a terminal board diagram. The rules engine itself never
// parses or prints anything.
package notation

import (
	"errors"
	"fmt"
	"strings"

	"janggi/internal/janggi"
)

var (
	ErrBadSquare = errors.New("bad square")
	ErrBadMove   = errors.New("bad move")
)

// ParseSquare reads a coordinate like "c3" or "i10": file letter a-i,
// rank number 1-10 counted from red's back rank.
func ParseSquare(s string) (file, rank int, err error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) < 2 || len(s) > 3 {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadSquare, s)
	}
	file = int(s[0] - 'a')
	if file < 0 || file >= janggi.Files {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadSquare, s)
	}
	n := 0
	for _, ch := range s[1:] {
		if ch < '0' || ch > '9' {
			return 0, 0, fmt.Errorf("%w: %q", ErrBadSquare, s)
		}
		n = n*10 + int(ch-'0')
	}
	if n < 1 || n > janggi.Ranks {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadSquare, s)
	}
	return file, n - 1, nil
}

func FormatSquare(file, rank int) string {
	if !janggi.OnBoard(file, rank) {
		return "??"
	}
	return fmt.Sprintf("%c%d", 'a'+file, rank+1)
}

// ParseMove reads "c3c4", "c3 c4" or "c3-c4".
func ParseMove(s string) (janggi.Move, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", " ")
	fields := strings.Fields(s)

	var fromStr, toStr string
	switch len(fields) {
	case 1:
		run := fields[0]
		split := -1
		for i := 1; i < len(run); i++ {
			if run[i] >= 'a' && run[i] <= 'i' {
				split = i
				break
			}
		}
		if split <= 0 {
			return janggi.Move{}, fmt.Errorf("%w: %q", ErrBadMove, s)
		}
		fromStr, toStr = run[:split], run[split:]
	case 2:
		fromStr, toStr = fields[0], fields[1]
	default:
		return janggi.Move{}, fmt.Errorf("%w: %q", ErrBadMove, s)
	}

	ff, fr, err := ParseSquare(fromStr)
	if err != nil {
		return janggi.Move{}, err
	}
	tf, tr, err := ParseSquare(toStr)
	if err != nil {
		return janggi.Move{}, err
	}
	return janggi.MoveFromCoords(ff, fr, tf, tr), nil
}

func FormatMove(m janggi.Move) string {
	return FormatSquare(janggi.FileOf(m.From), janggi.RankOf(m.From)) +
		FormatSquare(janggi.FileOf(m.To), janggi.RankOf(m.To))
}

func pieceRune(pc janggi.Piece) rune {
	var base rune
	switch pc.Type() {
	case janggi.PieceGeneral:
		base = 'k'
	case janggi.PieceGuard:
		base = 'a'
	case janggi.PieceHorse:
		base = 'h'
	case janggi.PieceElephant:
		base = 'e'
	case janggi.PieceChariot:
		base = 'r'
	case janggi.PieceCannon:
		base = 'c'
	case janggi.PieceSoldier:
		base = 'p'
	default:
		return '.'
	}
	if pc.Side() == janggi.Red {
		return base - 'a' + 'A'
	}
	return base
}

// PieceName spells a piece out, e.g. "red chariot".
func PieceName(pc janggi.Piece) string {
	if pc == 0 {
		return "empty"
	}
	var kind string
	switch pc.Type() {
	case janggi.PieceGeneral:
		kind = "general"
	case janggi.PieceGuard:
		kind = "guard"
	case janggi.PieceHorse:
		kind = "horse"
	case janggi.PieceElephant:
		kind = "elephant"
	case janggi.PieceChariot:
		kind = "chariot"
	case janggi.PieceCannon:
		kind = "cannon"
	case janggi.PieceSoldier:
		kind = "soldier"
	default:
		kind = "piece"
	}
	return pc.Side().String() + " " + kind
}

// Render draws the board with red's back rank at the top, so each side
// reads its own soldiers marching up or down toward the middle.
func Render(squares [janggi.NumSquares]janggi.Piece) string {
	var sb strings.Builder
	for r := 0; r < janggi.Ranks; r++ {
		fmt.Fprintf(&sb, "%2d ", r+1)
		for f := 0; f < janggi.Files; f++ {
			if f > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteRune(pieceRune(squares[janggi.IndexOf(f, r)]))
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   a b c d e f g h i\n")
	return sb.String()
}

// Rows flattens the board into one bare string per rank, red's back
// rank first, using Render's letters without any coordinate frame.
func Rows(squares [janggi.NumSquares]janggi.Piece) []string {
	rows := make([]string, janggi.Ranks)
	for r := 0; r < janggi.Ranks; r++ {
		var sb strings.Builder
		for f := 0; f < janggi.Files; f++ {
			sb.WriteRune(pieceRune(squares[janggi.IndexOf(f, r)]))
		}
		rows[r] = sb.String()
	}
	return rows
}

// Labels assigns display tags to the pieces on the board: the letter
// plus an ordinal in scan order per side, e.g. "H1"/"H2" for red's
// horses and "h1"/"h2" for blue's. The unique general is just "K"/"k".
// Tags are purely cosmetic; the rules never see them.
func Labels(squares [janggi.NumSquares]janggi.Piece) map[int]string {
	counts := make(map[janggi.Piece]int)
	labels := make(map[int]string, 32)
	for sq, pc := range squares {
		if pc == 0 {
			continue
		}
		if pc.Type() == janggi.PieceGeneral {
			labels[sq] = string(pieceRune(pc))
			continue
		}
		counts[pc]++
		labels[sq] = fmt.Sprintf("%c%d", pieceRune(pc), counts[pc])
	}
	return labels
}

// Describe turns a rules rejection into a sentence for the player.
func Describe(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, janggi.ErrWrongTurn):
		return "that is not your piece to move"
	case errors.Is(err, janggi.ErrIllegalShape):
		return "that piece cannot reach that square"
	case errors.Is(err, janggi.ErrSelfCheck):
		return "that move would leave your general in check"
	case errors.Is(err, janggi.ErrGameOver):
		return "the game is already over"
	}
	return err.Error()
}
