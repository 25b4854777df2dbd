// Package strategy loads trained decision tables for policy participants.
//
// A table file maps information-set keys to (fold, check/call, raise)
// probabilities:
//
//	strategy:
//	  "2♦7♣": [0.8, 0.2, 0.0]
//	  "A♥A♠b": [0.0, 0.4, 0.6]
package strategy

import (
	"fmt"
	"math"
	"os"

	"github.com/lox/headsup/internal/game"
	"gopkg.in/yaml.v3"
)

type tableFile struct {
	Strategy map[string][]float64 `yaml:"strategy"`
}

// Table is a read-only information-set lookup. It satisfies
// game.StrategyTable.
type Table struct {
	entries map[string]game.Distribution
}

var _ game.StrategyTable = (*Table)(nil)

// Load reads a table from a YAML file
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading strategy file %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing strategy file %s: %w", path, err)
	}
	return t, nil
}

// Parse decodes a table. Every entry needs exactly three non-negative
// weights with a positive sum; weights are normalised to sum to one.
func Parse(data []byte) (*Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	t := &Table{entries: make(map[string]game.Distribution, len(f.Strategy))}
	for key, weights := range f.Strategy {
		d, err := distribution(weights)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", key, err)
		}
		t.entries[key] = d
	}
	return t, nil
}

func distribution(weights []float64) (game.Distribution, error) {
	var d game.Distribution
	if len(weights) != len(d) {
		return d, fmt.Errorf("want %d weights, got %d", len(d), len(weights))
	}
	sum := 0.0
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return d, fmt.Errorf("weight %d is %v", i, w)
		}
		d[i] = w
		sum += w
	}
	if sum == 0 {
		return d, fmt.Errorf("weights sum to zero")
	}
	for i := range d {
		d[i] /= sum
	}
	return d, nil
}

// Lookup implements game.StrategyTable. A nil table has no entries.
func (t *Table) Lookup(infoSet string) (game.Distribution, bool) {
	if t == nil {
		return game.Distribution{}, false
	}
	d, ok := t.entries[infoSet]
	return d, ok
}

// Len returns the number of entries
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}
