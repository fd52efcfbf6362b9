package cribbage

import "errors"

// Sentinel errors for rejected transitions. Every rejection is
// recoverable: the caller keeps the prior state value untouched.
var (
	ErrInvalidPlayer    = errors.New("invalid player")
	ErrNotYourTurn      = errors.New("not your turn")
	ErrWrongPhase       = errors.New("action not legal in this phase")
	ErrInvalidCardIndex = errors.New("card index out of range")
	ErrWouldExceed31    = errors.New("play would exceed 31")
	ErrDiscardComplete  = errors.New("already discarded two cards")
	ErrHasLegalPlay     = errors.New("a legal play is available")
)
