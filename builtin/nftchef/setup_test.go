// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package nftchef_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0xdhu/ALTAVA-staking-contract/altava"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/collateral"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/nft"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/nftchef"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/token"
	"github.com/0xdhu/ALTAVA-staking-contract/test/testenv"
	"github.com/0xdhu/ALTAVA-staking-contract/xenv"
)

var (
	owner   = testenv.Addr("owner")
	alice   = testenv.Addr("alice")
	bob     = testenv.Addr("bob")
	factory = testenv.Addr("nftFactory")
	master  = testenv.Addr("factory")
)

func days(n uint64) uint64 { return n * altava.Day }

func ether(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1e18))
}

type chefTest struct {
	t        *testing.T
	env      *xenv.Environment
	chef     *nftchef.NFTChef
	staked   *token.Token
	coll     *nft.NFT
	registry *collateral.Registry
	nextNFT  uint64
}

func newTest(t *testing.T) *chefTest {
	env := testenv.New(t)
	ct := &chefTest{
		t:        t,
		env:      env,
		chef:     nftchef.New(env, testenv.Addr("nftchef")),
		staked:   token.New(env, testenv.Addr("TAVA")),
		coll:     nft.New(env, testenv.Addr("secondskin")),
		registry: collateral.New(env, testenv.Addr("registry")),
	}
	require.NoError(t, ct.staked.Init(owner, token.Meta{Name: "ALTAVA", Symbol: "TAVA", Decimals: 18}))
	require.NoError(t, ct.coll.Init(owner, nft.Meta{Name: "SecondSkin", Symbol: "SSK"}))
	require.NoError(t, ct.registry.Init(owner, ct.coll.Address()))
	require.NoError(t, ct.registry.SetMasterChef(owner, master))
	require.NoError(t, ct.registry.SetNFTMasterChef(owner, factory))
	require.NoError(t, ct.registry.RegisterChef(factory, ct.chef.Address()))

	require.NoError(t, ct.chef.Initialize(factory, &nftchef.Params{
		ID:          "test_id",
		StakedToken: ct.staked.Address(),
		RewardNFT:   testenv.Addr("thirdparty"),
		Registry:    ct.registry.Address(),
		Admin:       owner,
		Boosters:    []uint64{150, 250, 350},
	}))
	return ct
}

// tiers configures 3, 6 and 9 day tiers requiring 1000, 2000 and 3000 tokens.
func (ct *chefTest) tiers() *chefTest {
	for i, units := range []uint64{1, 3, 5} {
		n := int64(i + 1)
		require.NoError(ct.t, ct.chef.SetRequiredLockAmount(owner, days(uint64(3*n)), ether(1000*n), units, true))
	}
	return ct
}

func (ct *chefTest) fund(user altava.Address, amount *big.Int) {
	require.NoError(ct.t, ct.staked.Mint(owner, user, amount))
	require.NoError(ct.t, ct.staked.Approve(user, ct.chef.Address(), amount))
}

func (ct *chefTest) pledge(user altava.Address, n int) []uint64 {
	ids := make([]uint64, 0, n)
	for range n {
		ct.nextNFT++
		require.NoError(ct.t, ct.coll.Mint(owner, user, ct.nextNFT))
		ids = append(ids, ct.nextNFT)
	}
	require.NoError(ct.t, ct.chef.StakeCollateral(user, ids))
	return ids
}

func (ct *chefTest) at(time uint64) *chefTest {
	testenv.SetBlock(ct.env, time/10, time)
	return ct
}

func (ct *chefTest) balance(user altava.Address) *big.Int {
	bal, err := ct.staked.BalanceOf(user)
	require.NoError(ct.t, err)
	return bal
}
