package janggi

import "errors"

// Move rejections, most specific first: turn ownership, then movement
// shape, then self-check. A rejected move never modifies the position.
var (
	ErrWrongTurn    = errors.New("not your piece to move")
	ErrIllegalShape = errors.New("piece cannot reach that square")
	ErrSelfCheck    = errors.New("move leaves own general in check")
	ErrGameOver     = errors.New("game is already decided")
)
