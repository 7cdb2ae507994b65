// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package booster

import (
	"math"
	"sort"

	"github.com/google/btree"

	"github.com/0xdhu/ALTAVA-staking-contract/altava"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/reverts"
)

// Pair maps a collateral count to a booster value in basis points.
type Pair struct {
	Key   uint64 `json:"key"`
	Value uint64 `json:"value"`
}

func lessByKey(a, b Pair) bool { return a.Key < b.Key }

// Curve is an ordered booster table. Keys are unique and ascending, values
// strictly increase with the key.
type Curve struct {
	tree *btree.BTreeG[Pair]
}

// NewCurve builds a curve from pairs already known to be valid.
func NewCurve(pairs []Pair) *Curve {
	c := &Curve{tree: btree.NewG(4, lessByKey)}
	for _, p := range pairs {
		c.tree.ReplaceOrInsert(p)
	}
	return c
}

func (c *Curve) Len() int {
	return c.tree.Len()
}

// Pairs returns all pairs in ascending key order.
func (c *Curve) Pairs() []Pair {
	pairs := make([]Pair, 0, c.tree.Len())
	c.tree.Ascend(func(p Pair) bool {
		pairs = append(pairs, p)
		return true
	})
	return pairs
}

// Value returns the value of the greatest key not above q, or 0 when q is
// below every key. Counts past the top key get the top value.
func (c *Curve) Value(q uint64) uint64 {
	var v uint64
	c.tree.DescendLessOrEqual(Pair{Key: q}, func(p Pair) bool {
		v = p.Value
		return false
	})
	return v
}

// lower returns the pair with the greatest key strictly below key.
func (c *Curve) lower(key uint64) (p Pair, ok bool) {
	if key == 0 {
		return
	}
	c.tree.DescendLessOrEqual(Pair{Key: key - 1}, func(item Pair) bool {
		p, ok = item, true
		return false
	})
	return
}

// upper returns the pair with the smallest key strictly above key.
func (c *Curve) upper(key uint64) (p Pair, ok bool) {
	if key == math.MaxUint64 {
		return
	}
	c.tree.AscendGreaterOrEqual(Pair{Key: key + 1}, func(item Pair) bool {
		p, ok = item, true
		return false
	})
	return
}

func checkPair(p Pair) error {
	if p.Key == 0 || p.Value == 0 {
		return reverts.New(reverts.InvalidInput, "Inputs cannot be zero")
	}
	if p.Value > altava.MaxBoosterValue {
		return reverts.New(reverts.OverflowMax, "Booster rate: overflow max")
	}
	return nil
}

// SetValue inserts or updates the pair at key. Writing the value a key
// already holds fails with "Amount in use".
func (c *Curve) SetValue(key, value uint64) error {
	if err := checkPair(Pair{key, value}); err != nil {
		return err
	}
	existing, found := c.tree.Get(Pair{Key: key})
	if found && existing.Value == value {
		return reverts.New(reverts.InvalidInput, "Amount in use")
	}
	lo, hasLo := c.lower(key)
	hi, hasHi := c.upper(key)
	if (hasLo && value <= lo.Value) || (hasHi && value >= hi.Value) {
		return reverts.New(reverts.InvalidOrdering, "Booster value: invalid")
	}
	if !found && c.tree.Len() >= altava.MaxBoosterPairs {
		return reverts.New(reverts.CapacityExceeded, "Limit max booster pair")
	}
	c.tree.ReplaceOrInsert(Pair{key, value})
	return nil
}

// RemoveValue drops the pair at key.
func (c *Curve) RemoveValue(key uint64) error {
	if _, found := c.tree.Delete(Pair{Key: key}); !found {
		return reverts.New(reverts.NotFound, "Booster key not exist")
	}
	return nil
}

// SetArray replaces the whole curve. pairs may come in any order.
func (c *Curve) SetArray(pairs []Pair) error {
	if len(pairs) == 0 {
		return reverts.New(reverts.InvalidInput, "Invalid inputs")
	}
	if len(pairs) > altava.MaxBoosterPairs {
		return reverts.New(reverts.CapacityExceeded, "Limit max booster pair")
	}
	sorted := append([]Pair(nil), pairs...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })

	for i, p := range sorted {
		if err := checkPair(p); err != nil {
			return err
		}
		if i == 0 {
			continue
		}
		prev := sorted[i-1]
		if p.Key == prev.Key || p.Value <= prev.Value {
			return reverts.New(reverts.InvalidOrdering, "Booster value: invalid")
		}
	}
	c.tree.Clear(false)
	for _, p := range sorted {
		c.tree.ReplaceOrInsert(p)
	}
	return nil
}
