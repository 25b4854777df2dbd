package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/headsup/internal/game"
)

var errEmptyCommand = errors.New("enter an action: fold, check, call, raise N or allin")

// ParseCommand turns a line typed by the player into a decision for req.
// Legality is left to the engine, which re-asks on an illegal decision.
//
//	fold | f
//	check | k
//	call | c
//	raise N | r N | bet N | b N    N chips added this action
//	allin | all-in | a
func ParseCommand(input string, req game.ActionRequest) (game.Decision, error) {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return game.Decision{}, errEmptyCommand
	}

	switch fields[0] {
	case "fold", "f":
		return game.Decision{Action: game.Fold}, nil
	case "check", "k":
		return game.Decision{Action: game.Check}, nil
	case "call", "c":
		return game.Decision{Action: game.Call, Amount: min(req.ToCall(), req.Chips)}, nil
	case "raise", "r", "bet", "b":
		if len(fields) != 2 {
			return game.Decision{}, fmt.Errorf("usage: %s <chips>", fields[0])
		}
		amount, err := strconv.Atoi(fields[1])
		if err != nil || amount <= 0 {
			return game.Decision{}, fmt.Errorf("invalid amount %q", fields[1])
		}
		return game.Decision{Action: game.Raise, Amount: amount}, nil
	case "allin", "all-in", "a":
		if req.Chips <= req.ToCall() || req.OpponentChips == 0 {
			return game.Decision{Action: game.Call, Amount: min(req.ToCall(), req.Chips)}, nil
		}
		return game.Decision{Action: game.Raise, Amount: req.Chips}, nil
	}
	return game.Decision{}, fmt.Errorf("unknown action %q", fields[0])
}

// describeLegal renders the actions available for req, e.g. "fold, call 50, raise 100-950"
func describeLegal(req game.ActionRequest) string {
	var parts []string
	for _, a := range req.Legal {
		switch a {
		case game.Call:
			parts = append(parts, fmt.Sprintf("call %d", min(req.ToCall(), req.Chips)))
		case game.Raise:
			lo := min(max(req.MinRaise, req.ToCall()+1), req.Chips)
			if lo == req.Chips {
				parts = append(parts, fmt.Sprintf("raise %d (all-in)", req.Chips))
			} else {
				parts = append(parts, fmt.Sprintf("raise %d-%d", lo, req.Chips))
			}
		default:
			parts = append(parts, a.String())
		}
	}
	return strings.Join(parts, ", ")
}
