package janggi

type Side int8

const (
	NoSide Side = -1
	Red    Side = 0
	Blue   Side = 1
)

func (s Side) String() string {
	switch s {
	case Red:
		return "red"
	case Blue:
		return "blue"
	}
	return "none"
}

type PieceType int8

const (
	PieceNone     PieceType = iota
	PieceGeneral            // confined to the palace
	PieceGuard              // confined to the palace
	PieceHorse              // one straight step then one diagonal, blocked at the pivot
	PieceElephant           // one straight step then two diagonal, blocked anywhere on the path
	PieceChariot            // slider, rides palace diagonals too
	PieceCannon             // slider that must jump exactly one screen
	PieceSoldier            // forward or sideways, never backward
)

type Piece int8 // 0=empty; >0 red; <0 blue; abs=PieceType

func makePiece(side Side, pt PieceType) Piece {
	if pt == PieceNone || side == NoSide {
		return 0
	}
	if side == Red {
		return Piece(pt)
	}
	return -Piece(pt)
}

func (p Piece) Type() PieceType {
	if p < 0 {
		return PieceType(-p)
	}
	return PieceType(p)
}

func (p Piece) Side() Side {
	if p == 0 {
		return NoSide
	}
	if p > 0 {
		return Red
	}
	return Blue
}

type Board struct {
	Squares [NumSquares]Piece
}

type Move struct {
	From  int `json:"from"`
	To    int `json:"to"`
	Score int `json:"-"` // search ordering only, never serialized
}

// MoveFromCoords builds a Move from (file, rank) pairs. Coordinates
// outside the board yield a Move that fails validation.
func MoveFromCoords(fromFile, fromRank, toFile, toRank int) Move {
	m := Move{From: -1, To: -1}
	if onBoard(fromFile, fromRank) {
		m.From = indexOf(fromFile, fromRank)
	}
	if onBoard(toFile, toRank) {
		m.To = indexOf(toFile, toRank)
	}
	return m
}

// Position = board + side to move.
type Position struct {
	Board      Board
	SideToMove Side
	Hash       uint64
}

// At reads the occupant of (file, rank). Off-board reads return 0.
func (p *Position) At(file, rank int) Piece {
	if !onBoard(file, rank) {
		return 0
	}
	return p.Board.Squares[indexOf(file, rank)]
}

// Set places pc on (file, rank), or clears the square when pc is 0.
// The cached hash is dropped; it is recomputed on next use.
func (p *Position) Set(file, rank int, pc Piece) {
	if !onBoard(file, rank) {
		return
	}
	p.Board.Squares[indexOf(file, rank)] = pc
	p.Hash = 0
}
