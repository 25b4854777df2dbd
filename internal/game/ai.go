package game

import (
	"fmt"
	rand "math/rand/v2"
	"strings"
)

// Style names a fixed base action distribution for policy participants
type Style string

const (
	Optimal Style = "Optimal"
	LAG     Style = "LAG" // loose aggressive
	TAG     Style = "TAG" // tight aggressive
	TP      Style = "TP"  // tight passive
	LP      Style = "LP"  // loose passive
)

// Candidate indexes into the fixed seven-action menu
const (
	CandFold = iota
	CandCheck
	CandCall
	CandRaise1BB
	CandRaise2BB
	CandRaise4BB
	CandAllIn
	numCandidates
)

// Weights is a distribution over the seven candidates
type Weights [numCandidates]float64

var styleWeights = map[Style]Weights{
	Optimal: {0.2, 0.3, 0.2, 0.14, 0.1, 0.05, 0.01},
	LAG:     {0.2, 0.2, 0.2, 0.15, 0.1, 0.1, 0.05},
	TAG:     {0.05, 0.2, 0.1, 0.25, 0.2, 0.15, 0.05},
	TP:      {0.1, 0.25, 0.4, 0.1, 0.05, 0.05, 0.05},
	LP:      {0.1, 0.3, 0.4, 0.1, 0.05, 0.03, 0.02},
}

// Styles lists the known style names
func Styles() []Style {
	return []Style{Optimal, LAG, TAG, TP, LP}
}

// ParseStyle resolves a style name case-insensitively
func ParseStyle(name string) (Style, error) {
	for _, s := range Styles() {
		if strings.EqualFold(string(s), name) {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown style %q", name)
}

// StyleWeights returns the base distribution for style
func StyleWeights(style Style) (Weights, bool) {
	w, ok := styleWeights[style]
	return w, ok
}

// Distribution is a (fold, check/call, raise) probability triple from a
// trained strategy table.
type Distribution [3]float64

// StrategyTable maps information-set keys to trained distributions
type StrategyTable interface {
	Lookup(infoSet string) (Distribution, bool)
}

// Expand spreads a three-bucket distribution over the seven candidates
func (d Distribution) Expand() Weights {
	return Weights{
		d[0] * 0.7,
		d[0] * 0.3,
		d[1],
		d[2] * 0.5,
		d[2] * 0.3,
		d[2] * 0.15,
		d[2] * 0.05,
	}
}

// Candidate is one entry of the policy menu, tagged with its history symbol
type Candidate struct {
	Decision
	Symbol byte // 'p' pass, 'c' call, 'b' bet
}

// Candidates builds the fixed menu for req: fold, check, call, raises of one,
// two and four big blinds over the call amount, and all-in.
func Candidates(req ActionRequest) [numCandidates]Candidate {
	toCall := req.ToCall()
	return [numCandidates]Candidate{
		{Decision{Fold, 0}, 'p'},
		{Decision{Check, 0}, 'p'},
		{Decision{Call, toCall}, 'c'},
		{Decision{Raise, toCall + req.BigBlind}, 'b'},
		{Decision{Raise, toCall + 2*req.BigBlind}, 'b'},
		{Decision{Raise, toCall + 4*req.BigBlind}, 'b'},
		{Decision{Raise, req.Chips}, 'b'},
	}
}

// BaseWeights picks the trained distribution for infoSet when the table has
// one, else the style's fixed weights. Unknown styles fall back to Optimal.
func BaseWeights(style Style, table StrategyTable, infoSet string) Weights {
	if table != nil {
		if d, ok := table.Lookup(infoSet); ok {
			return d.Expand()
		}
	}
	if w, ok := styleWeights[style]; ok {
		return w
	}
	return styleWeights[Optimal]
}

// Sample draws an index with probability proportional to its weight by
// scanning cumulative weights against a uniform draw scaled to the total.
// It returns -1 when no weight is positive.
func Sample(rng *rand.Rand, weights []float64) int {
	total := 0.0
	last := -1
	for i, w := range weights {
		if w > 0 {
			total += w
			last = i
		}
	}
	if last < 0 {
		return -1
	}

	target := rng.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		cumulative += w
		if target < cumulative {
			return i
		}
	}
	// floating point rounding can leave target == total
	return last
}

// legalWeights conditions w on legality. A fold with nothing to call is
// remapped to check, so its weight moves there; every candidate the rules
// reject is zeroed. Drawing from the result is equivalent to drawing from w
// and redrawing until the choice is legal.
func legalWeights(req ActionRequest, w Weights) (Weights, [numCandidates]Candidate) {
	cands := Candidates(req)
	if req.Bet == req.OpponentBet {
		w[CandCheck] += w[CandFold]
		w[CandFold] = 0
	}
	for i, c := range cands {
		if Validate(req, c.Decision) != nil {
			w[i] = 0
		}
	}
	return w, cands
}

// checkOrFold is always legal: check when level, fold when facing a bet
func checkOrFold(req ActionRequest) Decision {
	if req.Bet == req.OpponentBet {
		return Decision{Action: Check}
	}
	return Decision{Action: Fold}
}

// decidePolicy selects a legal decision for a policy participant in a single
// bounded draw.
func decidePolicy(rng *rand.Rand, style Style, table StrategyTable, req ActionRequest) Decision {
	w, cands := legalWeights(req, BaseWeights(style, table, req.InfoSet))
	i := Sample(rng, w[:])
	if i < 0 {
		return checkOrFold(req)
	}
	return cands[i].Decision
}
