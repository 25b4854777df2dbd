package game

import "fmt"

// Validate checks a decision against the betting rules for the request's
// situation. Violations wrap ErrIllegalAction.
//
// A raise amount is the number of chips the actor adds. It must exceed the
// outstanding differential and either be at least the minimum raise while
// leaving chips behind, or be exactly the actor's whole stack.
func Validate(req ActionRequest, d Decision) error {
	toCall := req.OpponentBet - req.Bet

	switch d.Action {
	case Fold:
		return nil

	case Check:
		if req.Bet != req.OpponentBet {
			return fmt.Errorf("%w: cannot check, must call %d", ErrIllegalAction, toCall)
		}
		return nil

	case Call:
		if req.Bet >= req.OpponentBet {
			return fmt.Errorf("%w: nothing to call", ErrIllegalAction)
		}
		return nil

	case Raise:
		if req.OpponentChips == 0 {
			return fmt.Errorf("%w: opponent is all-in, cannot raise", ErrIllegalAction)
		}
		amount := d.Amount
		if amount <= toCall {
			return fmt.Errorf("%w: raise of %d does not exceed the %d to call", ErrIllegalAction, amount, toCall)
		}
		if amount == req.Chips {
			return nil
		}
		if amount > req.Chips {
			return fmt.Errorf("%w: raise of %d exceeds stack of %d", ErrIllegalAction, amount, req.Chips)
		}
		if amount < req.MinRaise {
			return fmt.Errorf("%w: raise of %d below minimum %d", ErrIllegalAction, amount, req.MinRaise)
		}
		return nil
	}

	return fmt.Errorf("%w: unknown action %d", ErrIllegalAction, d.Action)
}

// LegalActions lists the action kinds that have at least one legal amount
func LegalActions(req ActionRequest) []Action {
	actions := []Action{Fold}
	switch {
	case req.Bet == req.OpponentBet:
		actions = append(actions, Check)
	case req.Bet < req.OpponentBet:
		actions = append(actions, Call)
	}
	// going all-in is always a legal raise when the stack covers the call
	if req.OpponentChips > 0 && req.Chips > req.OpponentBet-req.Bet {
		actions = append(actions, Raise)
	}
	return actions
}
