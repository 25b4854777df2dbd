package game

import "errors"

var (
	// ErrIllegalAction is returned when an action breaks the betting rules.
	// It is recoverable: the same seat is asked again.
	ErrIllegalAction = errors.New("illegal action")

	// ErrInsufficientChips is returned when a bet is placed from an empty
	// stack. It signals a broken round invariant and aborts the hand.
	ErrInsufficientChips = errors.New("no chips left to bet")

	// ErrSourceClosed is returned by action sources that can no longer
	// deliver decisions.
	ErrSourceClosed = errors.New("action source closed")
)
