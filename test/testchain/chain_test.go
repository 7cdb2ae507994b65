// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package testchain

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xdhu/ALTAVA-staking-contract/builtin"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/masterchef"
	"github.com/0xdhu/ALTAVA-staking-contract/genesis"
	"github.com/0xdhu/ALTAVA-staking-contract/xenv"
)

func TestChain(t *testing.T) {
	c, err := NewDefault()
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, uint64(0), c.BlockContext().Number)
	c.AdvanceBlocks(5)
	assert.Equal(t, uint64(5), c.BlockContext().Number)
	c.AdvanceTime(time.Minute)
	assert.Equal(t, uint64(11), c.BlockContext().Number)
	assert.Equal(t, genesis.DevLaunchTime+110, c.BlockContext().Time)

	chef, err := c.DeploySmartChef(&masterchef.DeployParams{
		ID:             "tava-tnt",
		RewardLabel:    "TNT",
		StakedToken:    genesis.DevStakedToken,
		RewardToken:    genesis.DevRewardToken,
		RewardPerBlock: big.NewInt(1e18),
		StartBlock:     100,
		EndBlock:       1000,
	})
	require.NoError(t, err)
	assert.False(t, chef.IsZero())

	require.NoError(t, c.View(func(env *xenv.Environment) error {
		n, err := builtin.MasterChef.WithEnv(env).ChefCount()
		assert.Equal(t, uint64(1), n)
		return err
	}))

	nftChef, err := c.DeployNFTChef("pass", genesis.DevRewardNFT, []uint64{100, 200})
	require.NoError(t, err)
	assert.NotEqual(t, chef, nftChef)

	_, err = c.DeployNFTChef("pass", genesis.DevRewardNFT, []uint64{100, 200})
	assert.ErrorContains(t, err, "already deployed")
}
