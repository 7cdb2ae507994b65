// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/0xdhu/ALTAVA-staking-contract/altava"
)

type contract struct {
	name    string
	Address altava.Address
}

func newContract(name string) *contract {
	return &contract{
		name,
		altava.BytesToAddress([]byte(name)),
	}
}

func (c *contract) Name() string { return c.name }
