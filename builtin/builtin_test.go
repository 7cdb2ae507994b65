// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xdhu/ALTAVA-staking-contract/altava"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin"
	"github.com/0xdhu/ALTAVA-staking-contract/test/testenv"
)

func TestAddresses(t *testing.T) {
	assert.Equal(t, altava.BytesToAddress([]byte("NFTStaking")), builtin.NFTStaking.Address)
	assert.Equal(t, "MasterChef", builtin.MasterChef.Name())

	seen := map[altava.Address]bool{}
	for _, addr := range []altava.Address{
		builtin.NFTStaking.Address,
		builtin.MasterChef.Address,
		builtin.NFTMasterChef.Address,
		builtin.BoosterController.Address,
	} {
		assert.False(t, seen[addr])
		seen[addr] = true
	}
}

func TestWithEnv(t *testing.T) {
	env := testenv.New(t)
	owner := testenv.Addr("owner")

	require.NoError(t, builtin.BoosterController.WithEnv(env).Init(owner))
	got, err := builtin.BoosterController.WithEnv(env).Owner()
	require.NoError(t, err)
	assert.Equal(t, owner, got)
	assert.Equal(t, builtin.MasterChef.Address, builtin.MasterChef.WithEnv(env).Address())
}
