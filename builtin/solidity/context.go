// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/0xdhu/ALTAVA-staking-contract/altava"
	"github.com/0xdhu/ALTAVA-staking-contract/state"
)

// Context binds storage helpers to one contract address.
type Context struct {
	address altava.Address
	state   *state.State
}

func NewContext(address altava.Address, state *state.State) *Context {
	return &Context{address: address, state: state}
}

func (c *Context) Address() altava.Address {
	return c.address
}

func (c *Context) State() *state.State {
	return c.state
}

// Slot derives a named storage position.
func Slot(name string) altava.Bytes32 {
	return altava.BytesToBytes32([]byte(name))
}
