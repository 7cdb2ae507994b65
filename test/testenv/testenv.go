// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package testenv builds execution environments over in-memory storage for contract tests.
package testenv

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0xdhu/ALTAVA-staking-contract/altava"
	"github.com/0xdhu/ALTAVA-staking-contract/lvldb"
	"github.com/0xdhu/ALTAVA-staking-contract/state"
	"github.com/0xdhu/ALTAVA-staking-contract/xenv"
)

// New returns an environment at block 0, time 0, over an empty in-memory state.
func New(t testing.TB) *xenv.Environment {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	stater, err := state.NewStater(db, 128)
	require.NoError(t, err)
	return xenv.New(stater.NewState(), &xenv.BlockContext{}, altava.Address{})
}

// Addr derives a readable test address from name.
func Addr(name string) altava.Address {
	return altava.BytesToAddress([]byte(name))
}

// SetBlock moves the environment to the given block number and time.
func SetBlock(env *xenv.Environment, number, time uint64) {
	env.BlockContext().Number = number
	env.BlockContext().Time = time
}
