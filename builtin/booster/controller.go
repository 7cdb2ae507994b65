// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package booster

import (
	"github.com/0xdhu/ALTAVA-staking-contract/altava"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/access"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/reverts"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/solidity"
	"github.com/0xdhu/ALTAVA-staking-contract/log"
	"github.com/0xdhu/ALTAVA-staking-contract/xenv"
)

var logger = log.WithContext("pkg", "booster")

var slotTables = solidity.Slot("booster.tables")

// Controller keeps one booster table per chef, all managed by a single owner.
type Controller struct {
	env  *xenv.Environment
	addr altava.Address
	ctx  *solidity.Context
	*access.Ownable
}

func NewController(env *xenv.Environment, addr altava.Address) *Controller {
	return &Controller{
		env:     env,
		addr:    addr,
		ctx:     solidity.NewContext(addr, env.State()),
		Ownable: access.NewOwnable(env, addr),
	}
}

func (c *Controller) Address() altava.Address { return c.addr }

func (c *Controller) table(chef altava.Address) (*Table, error) {
	if chef.IsZero() {
		return nil, reverts.New(reverts.ZeroAddress, "Cannot be zero address")
	}
	return NewTable(c.ctx, altava.Blake2b(chef.Bytes(), slotTables.Bytes())), nil
}

func (c *Controller) ownerTable(caller, chef altava.Address) (*Table, error) {
	if err := c.OnlyOwner(caller); err != nil {
		return nil, err
	}
	return c.table(chef)
}

// SetBoosterArray replaces the table of chef.
func (c *Controller) SetBoosterArray(caller, chef altava.Address, pairs []Pair) error {
	t, err := c.ownerTable(caller, chef)
	if err != nil {
		return err
	}
	if err := t.SetArray(pairs); err != nil {
		return err
	}
	c.env.Log(c.addr, "BoosterArraySet", []altava.Bytes32{xenv.AddressTopic(chef)},
		map[string]any{"pairs": pairs})
	logger.Info("booster table replaced", "chef", chef, "pairs", len(pairs))
	return nil
}

// SetBoosterValue inserts or updates one pair of chef's table.
func (c *Controller) SetBoosterValue(caller, chef altava.Address, pair Pair) error {
	t, err := c.ownerTable(caller, chef)
	if err != nil {
		return err
	}
	if err := t.SetValue(pair.Key, pair.Value); err != nil {
		return err
	}
	c.env.Log(c.addr, "BoosterUpdated", []altava.Bytes32{xenv.AddressTopic(chef)},
		map[string]any{"key": pair.Key, "value": pair.Value})
	logger.Info("booster value set", "chef", chef, "key", pair.Key, "value", pair.Value)
	return nil
}

// RemoveBoosterValue drops the pair at key from chef's table.
func (c *Controller) RemoveBoosterValue(caller, chef altava.Address, key uint64) error {
	t, err := c.ownerTable(caller, chef)
	if err != nil {
		return err
	}
	if err := t.RemoveValue(key); err != nil {
		return err
	}
	c.env.Log(c.addr, "BoosterRemoved", []altava.Bytes32{xenv.AddressTopic(chef)},
		map[string]any{"key": key})
	logger.Info("booster value removed", "chef", chef, "key", key)
	return nil
}

// BoosterAPR returns the booster value chef grants for count collaterals.
func (c *Controller) BoosterAPR(chef altava.Address, count uint64) (uint64, error) {
	t, err := c.table(chef)
	if err != nil {
		return 0, err
	}
	return t.Value(count)
}

func (c *Controller) BoosterPairs(chef altava.Address) ([]Pair, error) {
	t, err := c.table(chef)
	if err != nil {
		return nil, err
	}
	return t.Pairs()
}

func (c *Controller) TotalPairCount(chef altava.Address) (int, error) {
	t, err := c.table(chef)
	if err != nil {
		return 0, err
	}
	return t.Len()
}
