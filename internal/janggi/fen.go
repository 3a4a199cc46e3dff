package janggi

import (
	"errors"
	"strings"
	"unicode"
)

// Text codec for positions: ten ranks separated by "/", rank 0 first,
// empty runs compressed to digits; after a space, "r" or "b" names the
// side to move. Red pieces are uppercase.
func (p *Position) Encode() string {
	var sb strings.Builder
	for r := 0; r < Ranks; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for f := 0; f < Files; f++ {
			sq := indexOf(f, r)
			pc := p.Board.Squares[sq]
			if pc == 0 {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteRune(pieceToChar(pc))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}
	sb.WriteByte(' ')
	if p.SideToMove == Red {
		sb.WriteByte('r')
	} else {
		sb.WriteByte('b')
	}
	return sb.String()
}

var ErrInvalidText = errors.New("invalid position text")

func DecodePosition(text string) (*Position, error) {
	parts := strings.Split(text, " ")
	if len(parts) < 2 {
		return nil, ErrInvalidText
	}
	ranks := strings.Split(parts[0], "/")
	if len(ranks) != Ranks {
		return nil, ErrInvalidText
	}
	var b Board
	for r := 0; r < Ranks; r++ {
		row := ranks[r]
		f := 0
		for _, ch := range row {
			if f >= Files {
				return nil, ErrInvalidText
			}
			if ch >= '1' && ch <= '9' {
				f += int(ch - '0')
				continue
			}
			if ch == '.' {
				f++
				continue
			}
			isUpper := unicode.IsUpper(ch)
			base := unicode.ToLower(ch)
			pt, ok := letterToPieceType[base]
			if !ok {
				return nil, ErrInvalidText
			}
			side := Blue
			if isUpper {
				side = Red
			}
			b.Squares[indexOf(f, r)] = makePiece(side, pt)
			f++
		}
		if f != Files {
			return nil, ErrInvalidText
		}
	}
	var stm Side
	switch parts[1] {
	case "r":
		stm = Red
	case "b":
		stm = Blue
	default:
		return nil, ErrInvalidText
	}
	pos := &Position{
		Board:      b,
		SideToMove: stm,
	}
	pos.Hash = pos.CalculateHash()
	return pos, nil
}
