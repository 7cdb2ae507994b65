// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package booster

import (
	"github.com/0xdhu/ALTAVA-staking-contract/altava"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/solidity"
)

// Table is a Curve persisted in one storage position as a list of pairs.
type Table struct {
	raw *solidity.Raw[[]Pair]
}

func NewTable(ctx *solidity.Context, pos altava.Bytes32) *Table {
	return &Table{raw: solidity.NewRaw[[]Pair](ctx, pos)}
}

// Curve loads the stored curve.
func (t *Table) Curve() (*Curve, error) {
	pairs, err := t.raw.Get()
	if err != nil {
		return nil, err
	}
	return NewCurve(pairs), nil
}

func (t *Table) save(c *Curve) error {
	if c.Len() == 0 {
		t.raw.Clear()
		return nil
	}
	return t.raw.Set(c.Pairs())
}

func (t *Table) update(fn func(c *Curve) error) error {
	c, err := t.Curve()
	if err != nil {
		return err
	}
	if err := fn(c); err != nil {
		return err
	}
	return t.save(c)
}

func (t *Table) SetValue(key, value uint64) error {
	return t.update(func(c *Curve) error { return c.SetValue(key, value) })
}

func (t *Table) RemoveValue(key uint64) error {
	return t.update(func(c *Curve) error { return c.RemoveValue(key) })
}

func (t *Table) SetArray(pairs []Pair) error {
	return t.update(func(c *Curve) error { return c.SetArray(pairs) })
}

func (t *Table) Value(q uint64) (uint64, error) {
	c, err := t.Curve()
	if err != nil {
		return 0, err
	}
	return c.Value(q), nil
}

func (t *Table) Pairs() ([]Pair, error) {
	c, err := t.Curve()
	if err != nil {
		return nil, err
	}
	return c.Pairs(), nil
}

func (t *Table) Len() (int, error) {
	pairs, err := t.raw.Get()
	if err != nil {
		return 0, err
	}
	return len(pairs), nil
}
