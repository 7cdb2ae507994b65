// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package smartchef_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xdhu/ALTAVA-staking-contract/altava"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/reverts"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/smartchef"
	"github.com/0xdhu/ALTAVA-staking-contract/test/testenv"
)

func TestInitialize(t *testing.T) {
	ct := newTest(t, false)

	err := ct.chef.Initialize(factory, &smartchef.Params{
		StakedToken: ct.staked.Address(),
		RewardToken: ct.reward.Address(),
		Registry:    ct.registry.Address(),
		Admin:       owner,
	})
	assert.Equal(t, reverts.AlreadyInitialized, reverts.KindOf(err))

	cfg, err := ct.chef.Config()
	require.NoError(t, err)
	assert.Equal(t, "test_id", cfg.ID)
	assert.Equal(t, factory, cfg.Factory)
	assert.Equal(t, "1000000000000", cfg.Pool.PrecisionFactor.String())
	assert.Equal(t, uint64(startBlock), cfg.Pool.LastRewardBlock)

	o, err := ct.chef.Owner()
	require.NoError(t, err)
	assert.Equal(t, owner, o)

	fresh := smartchef.New(ct.env, testenv.Addr("fresh"))
	err = fresh.Initialize(factory, &smartchef.Params{
		StakedToken:    altava.Address{},
		RewardToken:    ct.reward.Address(),
		Registry:       ct.registry.Address(),
		RewardPerBlock: ether(1),
		StartBlock:     1,
		EndBlock:       2,
		Admin:          owner,
	})
	assert.Equal(t, reverts.ZeroAddress, reverts.KindOf(err))
	assert.Equal(t, reverts.NotFound, reverts.KindOf(fresh.Stake(alice, ether(1), week)))
}

func TestStakeValidation(t *testing.T) {
	ct := newTest(t, false).at(startBlock, 0)
	ct.fund(alice, ether(1000))

	assert.Equal(t, reverts.InvalidPeriod, reverts.KindOf(ct.chef.Stake(alice, ether(1000), week/2)))
	assert.Equal(t, reverts.InvalidPeriod, reverts.KindOf(ct.chef.Stake(alice, ether(1000), 366*altava.Day)))
	assert.Equal(t, reverts.InvalidInput, reverts.KindOf(ct.chef.Stake(alice, new(big.Int), 0)))
	assert.Equal(t, reverts.InvalidInput, reverts.KindOf(ct.chef.Stake(alice, new(big.Int), week)))
	assert.Equal(t, reverts.InsufficientAllowanceOrBalance, reverts.KindOf(ct.chef.Stake(alice, ether(2000), week)))

	assert.Equal(t, reverts.NotOwner, reverts.KindOf(ct.chef.SetPause(alice, true)))
	require.NoError(t, ct.chef.SetPause(owner, true))
	assert.Equal(t, reverts.Paused, reverts.KindOf(ct.chef.Stake(alice, ether(1000), week)))
	assert.Equal(t, reverts.Paused, reverts.KindOf(ct.chef.Unlock(alice, "")))
	require.NoError(t, ct.chef.SetPause(owner, false))

	require.NoError(t, ct.chef.Stake(alice, ether(1000), week))
	assert.Zero(t, ct.balance(ct.staked, alice).Sign())
	assert.Equal(t, ether(1000), ct.balance(ct.staked, ct.chef.Address()))

	info, err := ct.chef.UserInfo(alice)
	require.NoError(t, err)
	assert.True(t, info.Locked)
	assert.Equal(t, ether(1000), info.LockedAmount)
	assert.Equal(t, week, info.LockEndTime-info.LockStartTime)
}

func TestExtend(t *testing.T) {
	ct := newTest(t, false).at(startBlock, 1000)
	ct.fund(alice, ether(2000))
	require.NoError(t, ct.chef.Stake(alice, ether(1000), week))

	assert.Equal(t, reverts.InvalidPeriod, reverts.KindOf(ct.chef.Stake(alice, ether(1000), week)))
	assert.Equal(t, reverts.InvalidPeriod, reverts.KindOf(ct.chef.Stake(alice, new(big.Int), week)))
	assert.Equal(t, reverts.InvalidPeriod, reverts.KindOf(ct.chef.Stake(alice, new(big.Int), week/2)))
	assert.Equal(t, reverts.InvalidPeriod, reverts.KindOf(ct.chef.Stake(alice, new(big.Int), 1500*altava.Day)))

	ct.at(startBlock+10, 5000)
	require.NoError(t, ct.chef.Stake(alice, new(big.Int), 2*week))
	info, err := ct.chef.UserInfo(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), info.LockStartTime, "extension keeps the start")
	assert.Equal(t, 1000+2*week, info.LockEndTime)

	// top up without moving the end
	require.NoError(t, ct.chef.Stake(alice, ether(1000), 0))
	info, err = ct.chef.UserInfo(alice)
	require.NoError(t, err)
	assert.Equal(t, ether(2000), info.LockedAmount)
	assert.Equal(t, 1000+2*week, info.LockEndTime)
}

func TestThirtyToSixtyDays(t *testing.T) {
	ct := newTest(t, false).at(startBlock, 0)
	ct.fund(alice, ether(100))
	require.NoError(t, ct.chef.Stake(alice, ether(100), 30*altava.Day))

	ct.at(startBlock+5, 10*altava.Day)
	require.NoError(t, ct.chef.Stake(alice, new(big.Int), 60*altava.Day))

	info, err := ct.chef.UserInfo(alice)
	require.NoError(t, err)
	assert.Equal(t, 60*altava.Day, info.LockEndTime)

	ct.at(startBlock+6, 31*altava.Day)
	assert.Equal(t, reverts.StillLocked, reverts.KindOf(ct.chef.Unlock(alice, "")))
	ct.at(startBlock+7, 60*altava.Day)
	require.NoError(t, ct.chef.Unlock(alice, ""))
}

func TestSingleStakerReward(t *testing.T) {
	ct := newTest(t, false).at(startBlock, 0)
	ct.fund(alice, ether(1000))
	require.NoError(t, ct.chef.Stake(alice, ether(1000), week))

	ct.at(startBlock+50, week)
	pending, err := ct.chef.PendingReward(alice)
	require.NoError(t, err)
	assert.Equal(t, ether(500), pending)

	require.NoError(t, ct.chef.Unlock(alice, ""))
	assert.Equal(t, ether(1000), ct.balance(ct.staked, alice))
	assert.Equal(t, ether(500), ct.balance(ct.reward, alice))

	cfg, err := ct.chef.Config()
	require.NoError(t, err)
	assert.Zero(t, cfg.Pool.TotalLocked.Sign())
}

func TestRewardDebt(t *testing.T) {
	ct := newTest(t, false).at(startBlock, 0)
	ct.fund(owner, ether(1000))
	ct.fund(alice, ether(1000))

	NewSequence(ct).
		Stake(owner, ether(1000), week).
		Stake(alice, ether(1000), week).
		At(startBlock+5, 100).
		Stake(alice, new(big.Int), 2*week).
		Run(t)

	info, err := ct.chef.UserInfo(alice)
	require.NoError(t, err)
	assert.Equal(t, ether(25), info.Rewards)
	assert.Equal(t, ether(25), info.RewardDebt)

	cfg, err := ct.chef.Config()
	require.NoError(t, err)
	assert.Equal(t, "25000000000", cfg.Pool.AccTokenPerShare.String())
}

func TestBoosterBonus(t *testing.T) {
	ct := newTest(t, false).at(startBlock, 0)
	ids := ct.pledge(alice, 2)
	ct.fund(alice, ether(1000))
	require.NoError(t, ct.chef.Stake(alice, ether(1000), week))

	bp, err := ct.chef.StakerBoosterValue(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(250), bp)

	// the bonus follows the lower of the snapshot and the live value
	require.NoError(t, ct.coll.TransferFrom(alice, alice, bob, ids[0]))
	bp, err = ct.chef.StakerBoosterValue(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(150), bp)

	ct.at(startBlock+50, week)
	require.NoError(t, ct.chef.Unlock(alice, ""))
	want := new(big.Int).Add(ether(500), new(big.Int).Div(ether(75), big.NewInt(10)))
	assert.Equal(t, want, ct.balance(ct.reward, alice))
}

func TestDoubleUnlock(t *testing.T) {
	ct := newTest(t, false).at(startBlock, 0)
	ct.fund(alice, ether(1000))
	assert.Equal(t, reverts.AlreadyUnlocked, reverts.KindOf(ct.chef.Unlock(alice, "")))

	require.NoError(t, ct.chef.Stake(alice, ether(1000), week))
	ct.at(startBlock+1, week-1)
	assert.Equal(t, reverts.StillLocked, reverts.KindOf(ct.chef.Unlock(alice, "")))

	ct.at(startBlock+10, week)
	require.NoError(t, ct.chef.Unlock(alice, ""))
	staked := ct.balance(ct.staked, alice)
	reward := ct.balance(ct.reward, alice)

	ct.at(startBlock+20, 2*week)
	assert.Equal(t, reverts.AlreadyUnlocked, reverts.KindOf(ct.chef.Unlock(alice, "")))
	assert.Equal(t, staked, ct.balance(ct.staked, alice))
	assert.Equal(t, reward, ct.balance(ct.reward, alice))
}

func TestTwoStakersShare(t *testing.T) {
	ct := newTest(t, false).at(startBlock, 0)
	ct.fund(alice, ether(1000))
	ct.fund(bob, ether(3000))

	NewSequence(ct).
		Stake(alice, ether(1000), week).
		Stake(bob, ether(3000), week).
		At(startBlock+40, week).
		Unlock(alice).
		Unlock(bob).
		Run(t)

	assert.Equal(t, ether(100), ct.balance(ct.reward, alice))
	assert.Equal(t, ether(300), ct.balance(ct.reward, bob))
}

func TestAirdrop(t *testing.T) {
	ct := newTest(t, true).at(startBlock, 0)
	ct.fund(alice, ether(1000))
	require.NoError(t, ct.chef.Stake(alice, ether(1000), week))

	ct.at(startBlock+50, week+1)
	assert.Equal(t, reverts.ZeroAddress, reverts.KindOf(ct.chef.Unlock(alice, "")))
	require.NoError(t, ct.chef.Unlock(alice, "Address"))

	assert.Equal(t, ether(1000), ct.balance(ct.staked, alice))
	assert.Zero(t, ct.balance(ct.reward, alice).Sign(), "airdrop pools pay off chain")

	ev := ct.env.Events()[len(ct.env.Events())-1]
	assert.Equal(t, "Unlock", ev.Name)
	assert.Contains(t, string(ev.Data), `"receiver":"Address"`)
	assert.Contains(t, string(ev.Data), `"rewards":"500000000000000000000"`)
}

func TestAdmin(t *testing.T) {
	ct := newTest(t, false)

	assert.Equal(t, reverts.NotOwner, reverts.KindOf(ct.chef.UpdateRewardPerBlock(alice, ether(1))))
	assert.Equal(t, reverts.NotOwner, reverts.KindOf(ct.chef.UpdateStartAndEndBlocks(alice, startBlock, endBlock)))
	assert.Equal(t, reverts.InvalidInput, reverts.KindOf(ct.chef.UpdateStartAndEndBlocks(owner, endBlock, endBlock-1)))
	assert.Equal(t, reverts.InvalidInput, reverts.KindOf(ct.chef.UpdateStartAndEndBlocks(owner, 0, endBlock-1)))
	require.NoError(t, ct.chef.UpdateRewardPerBlock(owner, ether(10)))
	require.NoError(t, ct.chef.UpdateStartAndEndBlocks(owner, startBlock, endBlock))

	ct.at(startBlock+1, 0)
	assert.Equal(t, reverts.PoolAlreadyStarted, reverts.KindOf(ct.chef.UpdateRewardPerBlock(owner, ether(10))))
	assert.Equal(t, reverts.PoolAlreadyStarted, reverts.KindOf(ct.chef.UpdateStartAndEndBlocks(owner, startBlock, endBlock)))

	assert.Equal(t, reverts.NotOwner, reverts.KindOf(ct.chef.SetBoosterController(alice, ct.boosters.Address())))
	assert.Equal(t, reverts.ZeroAddress, reverts.KindOf(ct.chef.SetBoosterController(owner, altava.Address{})))
	require.NoError(t, ct.chef.SetBoosterController(owner, ct.boosters.Address()))

	assert.Equal(t, reverts.NotOwner, reverts.KindOf(ct.chef.EmergencyRewardWithdraw(alice, big.NewInt(100))))
	assert.Equal(t, reverts.NotAllowed, reverts.KindOf(ct.chef.EmergencyRewardWithdraw(owner, ether(20000))))
	require.NoError(t, ct.chef.EmergencyRewardWithdraw(owner, big.NewInt(100)))
	assert.Equal(t, big.NewInt(100), ct.balance(ct.reward, owner))
}

func TestEmergencyWithdrawSameToken(t *testing.T) {
	ct := newTest(t, false)
	chef := smartchef.New(ct.env, testenv.Addr("chef2"))
	require.NoError(t, chef.Initialize(factory, &smartchef.Params{
		ID:             "test_id",
		StakedToken:    ct.staked.Address(),
		RewardToken:    ct.staked.Address(),
		RewardPerBlock: ether(10),
		StartBlock:     startBlock,
		EndBlock:       endBlock,
		Admin:          owner,
		Registry:       ct.registry.Address(),
	}))
	assert.Equal(t, reverts.NotAllowed, reverts.KindOf(chef.EmergencyRewardWithdraw(owner, big.NewInt(100))))
}

func TestEmergencyWithdrawWhileLocked(t *testing.T) {
	ct := newTest(t, false).at(startBlock, 0)
	ct.fund(alice, ether(10))
	require.NoError(t, ct.chef.Stake(alice, ether(10), week))
	assert.Equal(t, reverts.NotAllowed, reverts.KindOf(ct.chef.EmergencyRewardWithdraw(owner, big.NewInt(1))))

	ct.at(startBlock+1, week)
	require.NoError(t, ct.chef.Unlock(alice, ""))
	require.NoError(t, ct.chef.EmergencyRewardWithdraw(owner, big.NewInt(1)))
}
