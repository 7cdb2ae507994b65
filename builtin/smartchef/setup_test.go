// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package smartchef_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0xdhu/ALTAVA-staking-contract/altava"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/booster"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/collateral"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/nft"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/smartchef"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/token"
	"github.com/0xdhu/ALTAVA-staking-contract/test/testenv"
	"github.com/0xdhu/ALTAVA-staking-contract/xenv"
)

const (
	startBlock = 100
	endBlock   = 500
)

var (
	owner   = testenv.Addr("owner")
	alice   = testenv.Addr("alice")
	bob     = testenv.Addr("bob")
	factory = testenv.Addr("factory")
	nftChef = testenv.Addr("nftFactory")

	week = altava.Day * 7
)

func ether(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1e18))
}

type chefTest struct {
	t        *testing.T
	env      *xenv.Environment
	chef     *smartchef.SmartChef
	staked   *token.Token
	reward   *token.Token
	coll     *nft.NFT
	registry *collateral.Registry
	boosters *booster.Controller
	nextNFT  uint64
}

func newTest(t *testing.T, airdrop bool) *chefTest {
	env := testenv.New(t)
	ct := &chefTest{
		t:        t,
		env:      env,
		chef:     smartchef.New(env, testenv.Addr("chef")),
		staked:   token.New(env, testenv.Addr("TAVA")),
		reward:   token.New(env, testenv.Addr("TNT")),
		coll:     nft.New(env, testenv.Addr("secondskin")),
		registry: collateral.New(env, testenv.Addr("registry")),
		boosters: booster.NewController(env, testenv.Addr("boosters")),
	}
	require.NoError(t, ct.staked.Init(owner, token.Meta{Name: "ALTAVA", Symbol: "TAVA", Decimals: 18}))
	require.NoError(t, ct.reward.Init(owner, token.Meta{Name: "Test NFT Token", Symbol: "TNT", Decimals: 18}))
	require.NoError(t, ct.coll.Init(owner, nft.Meta{Name: "SecondSkin", Symbol: "SSK"}))

	require.NoError(t, ct.registry.Init(owner, ct.coll.Address()))
	require.NoError(t, ct.registry.SetMasterChef(owner, factory))
	require.NoError(t, ct.registry.SetNFTMasterChef(owner, nftChef))
	require.NoError(t, ct.registry.RegisterChef(factory, ct.chef.Address()))

	require.NoError(t, ct.boosters.Init(owner))
	require.NoError(t, ct.boosters.SetBoosterArray(owner, ct.chef.Address(),
		[]booster.Pair{{Key: 1, Value: 150}, {Key: 2, Value: 250}, {Key: 3, Value: 350}}))

	require.NoError(t, ct.chef.Initialize(factory, &smartchef.Params{
		ID:                "test_id",
		RewardLabel:       "TNT",
		StakedToken:       ct.staked.Address(),
		RewardToken:       ct.reward.Address(),
		RewardPerBlock:    ether(10),
		StartBlock:        startBlock,
		EndBlock:          endBlock,
		Admin:             owner,
		Registry:          ct.registry.Address(),
		Airdrop:           airdrop,
		BoosterController: ct.boosters.Address(),
	}))
	require.NoError(t, ct.reward.Mint(owner, ct.chef.Address(), ether(10000)))
	return ct
}

// fund mints amount of staked token to user and approves the chef for it.
func (ct *chefTest) fund(user altava.Address, amount *big.Int) {
	require.NoError(ct.t, ct.staked.Mint(owner, user, amount))
	allowance, err := ct.staked.Allowance(user, ct.chef.Address())
	require.NoError(ct.t, err)
	require.NoError(ct.t, ct.staked.Approve(user, ct.chef.Address(), allowance.Add(allowance, amount)))
}

// pledge mints n collateral NFTs to user and pledges them through the chef.
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

func (ct *chefTest) at(block, time uint64) *chefTest {
	testenv.SetBlock(ct.env, block, time)
	return ct
}

func (ct *chefTest) balance(tok *token.Token, user altava.Address) *big.Int {
	bal, err := tok.BalanceOf(user)
	require.NoError(ct.t, err)
	return bal
}

type TestFunc func(t *testing.T)

// TestSequence runs chef steps in order, failing fast on the first broken step.
type TestSequence struct {
	ct    *chefTest
	funcs []TestFunc
}

func NewSequence(ct *chefTest) *TestSequence {
	return &TestSequence{ct: ct}
}

func (s *TestSequence) AddFunc(f TestFunc) *TestSequence {
	s.funcs = append(s.funcs, f)
	return s
}

func (s *TestSequence) At(block, time uint64) *TestSequence {
	return s.AddFunc(func(t *testing.T) { s.ct.at(block, time) })
}

func (s *TestSequence) Stake(user altava.Address, amount *big.Int, duration uint64) *TestSequence {
	return s.AddFunc(func(t *testing.T) {
		require.NoError(t, s.ct.chef.Stake(user, amount, duration), "stake %v for %d", amount, duration)
	})
}

func (s *TestSequence) Unlock(user altava.Address) *TestSequence {
	return s.AddFunc(func(t *testing.T) {
		require.NoError(t, s.ct.chef.Unlock(user, "receiver"))
	})
}

func (s *TestSequence) Run(t *testing.T) {
	for _, f := range s.funcs {
		f(t)
	}
}
