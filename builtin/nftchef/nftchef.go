// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package nftchef implements the tiered lock pool. A staker locks the amount
// a duration tier requires, discounted by the booster earned through pledged
// collateral, and is credited reward NFT units delivered off chain.
package nftchef

import (
	"math/big"
	"slices"

	"github.com/0xdhu/ALTAVA-staking-contract/altava"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/access"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/accrual"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/booster"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/collateral"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/reverts"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/solidity"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/token"
	"github.com/0xdhu/ALTAVA-staking-contract/log"
	"github.com/0xdhu/ALTAVA-staking-contract/xenv"
)

var logger = log.WithContext("pkg", "nftchef")

var (
	slotConfig    = solidity.Slot("nftchef.config")
	slotTiers     = solidity.Slot("nftchef.tiers")
	slotPeriods   = solidity.Slot("nftchef.periods")
	slotBooster   = solidity.Slot("nftchef.booster")
	slotIndex     = solidity.Slot("nftchef.index")
	slotPositions = solidity.Slot("nftchef.positions")
)

// Params configures a chef at deployment. Boosters are the values of keys 1..n.
type Params struct {
	ID          string
	StakedToken altava.Address
	RewardNFT   altava.Address
	Registry    altava.Address
	Admin       altava.Address
	Boosters    []uint64
}

type config struct {
	ID          string
	StakedToken altava.Address
	RewardNFT   altava.Address
	Registry    altava.Address
	Factory     altava.Address
}

// LockConfig is one duration tier.
type LockConfig struct {
	RequiredLockAmount *big.Int
	RewardUnits        uint64
	IsLive             bool
}

// Position is one entry of a staker's history.
type Position struct {
	LockedAmount *big.Int
	TierAmount   *big.Int // gross tier amount when the position was opened or last extended
	LockDuration uint64
	LockedAt     uint64
	UnlockAt     uint64
	RewardAmount uint64
	BoosterValue uint64
	Unstaked     bool
}

func (p *Position) open() bool {
	return p.LockedAmount != nil && p.LockedAmount.Sign() > 0 && !p.Unstaked
}

// Info is the public view of a chef.
type Info struct {
	ID          string
	StakedToken altava.Address
	RewardNFT   altava.Address
	Registry    altava.Address
	Factory     altava.Address
	Paused      bool
}

// NFTChef is one tiered lock pool.
type NFTChef struct {
	env  *xenv.Environment
	addr altava.Address
	*access.Ownable
	*access.Pausable
	config    *solidity.Raw[*config]
	tiers     *solidity.Mapping[solidity.Uint64Key, *LockConfig]
	periods   *solidity.Raw[[]uint64]
	booster   *booster.Table
	index     *solidity.Mapping[altava.Address, uint64]
	positions *solidity.Mapping[solidity.IndexKey, *Position]
}

func New(env *xenv.Environment, addr altava.Address) *NFTChef {
	ctx := solidity.NewContext(addr, env.State())
	return &NFTChef{
		env:       env,
		addr:      addr,
		Ownable:   access.NewOwnable(env, addr),
		Pausable:  access.NewPausable(env, addr),
		config:    solidity.NewRaw[*config](ctx, slotConfig),
		tiers:     solidity.NewMapping[solidity.Uint64Key, *LockConfig](ctx, slotTiers),
		periods:   solidity.NewRaw[[]uint64](ctx, slotPeriods),
		booster:   booster.NewTable(ctx, slotBooster),
		index:     solidity.NewMapping[altava.Address, uint64](ctx, slotIndex),
		positions: solidity.NewMapping[solidity.IndexKey, *Position](ctx, slotPositions),
	}
}

func (c *NFTChef) Address() altava.Address { return c.addr }

// BoosterPairs turns booster values into the pairs of keys 1..n.
func BoosterPairs(values []uint64) []booster.Pair {
	pairs := make([]booster.Pair, 0, len(values))
	for i, v := range values {
		pairs = append(pairs, booster.Pair{Key: uint64(i + 1), Value: v})
	}
	return pairs
}

func checkBoosterRate(values ...uint64) error {
	for _, v := range values {
		if v > altava.MaxBoosterValue {
			return reverts.New(reverts.OverflowMax, "Booster rate: overflow 50%")
		}
	}
	return nil
}

// Initialize configures the chef. caller is recorded as the deploying factory.
func (c *NFTChef) Initialize(caller altava.Address, p *Params) error {
	prev, err := c.config.Get()
	if err != nil {
		return err
	}
	if !prev.Factory.IsZero() {
		return reverts.New(reverts.AlreadyInitialized, "Already initialized")
	}
	if p.StakedToken.IsZero() || p.RewardNFT.IsZero() || p.Registry.IsZero() {
		return reverts.New(reverts.ZeroAddress, "Cannot be zero address")
	}
	if len(p.Boosters) > 0 {
		if err := checkBoosterRate(p.Boosters...); err != nil {
			return err
		}
		if err := c.booster.SetArray(BoosterPairs(p.Boosters)); err != nil {
			return err
		}
	}
	if err := c.config.Set(&config{
		ID:          p.ID,
		StakedToken: p.StakedToken,
		RewardNFT:   p.RewardNFT,
		Registry:    p.Registry,
		Factory:     caller,
	}); err != nil {
		return err
	}
	return c.Ownable.Init(p.Admin)
}

func (c *NFTChef) loadConfig() (*config, error) {
	cfg, err := c.config.Get()
	if err != nil {
		return nil, err
	}
	if cfg.Factory.IsZero() {
		return nil, reverts.New(reverts.NotFound, "Chef: not initialized")
	}
	return cfg, nil
}

func (c *NFTChef) Info() (*Info, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	paused, err := c.Paused()
	if err != nil {
		return nil, err
	}
	return &Info{
		ID:          cfg.ID,
		StakedToken: cfg.StakedToken,
		RewardNFT:   cfg.RewardNFT,
		Registry:    cfg.Registry,
		Factory:     cfg.Factory,
		Paused:      paused,
	}, nil
}

// SetRequiredLockAmount creates or replaces the tier of period seconds.
func (c *NFTChef) SetRequiredLockAmount(caller altava.Address, period uint64, amount *big.Int, rewardUnits uint64, isLive bool) error {
	if err := c.OnlyOwner(caller); err != nil {
		return err
	}
	if period < altava.MinTierDuration {
		return reverts.New(reverts.InvalidPeriod, "Lock period: at least 1 day")
	}
	if amount == nil || amount.Sign() <= 0 {
		return reverts.New(reverts.InvalidInput, "Amount should not be zero")
	}
	if err := c.tiers.Set(solidity.Uint64Key(period), &LockConfig{
		RequiredLockAmount: new(big.Int).Set(amount),
		RewardUnits:        rewardUnits,
		IsLive:             isLive,
	}); err != nil {
		return err
	}
	periods, err := c.periods.Get()
	if err != nil {
		return err
	}
	if !slices.Contains(periods, period) {
		periods = append(periods, period)
		slices.Sort(periods)
		if err := c.periods.Set(periods); err != nil {
			return err
		}
	}
	c.env.Log(c.addr, "LockConfigUpdated", nil, map[string]any{
		"period":      period,
		"amount":      amount.String(),
		"rewardUnits": rewardUnits,
		"isLive":      isLive,
	})
	logger.Info("tier set", "chef", c.addr, "period", period, "amount", amount, "live", isLive)
	return nil
}

func (c *NFTChef) Config(period uint64) (*LockConfig, error) {
	tier, err := c.tiers.Get(solidity.Uint64Key(period))
	if err != nil {
		return nil, err
	}
	if tier.RequiredLockAmount == nil {
		tier.RequiredLockAmount = new(big.Int)
	}
	return tier, nil
}

// Periods lists every configured tier duration, ascending.
func (c *NFTChef) Periods() ([]uint64, error) {
	return c.periods.Get()
}

func (c *NFTChef) liveTier(period uint64) (*LockConfig, error) {
	tier, err := c.Config(period)
	if err != nil {
		return nil, err
	}
	if !tier.IsLive || tier.RequiredLockAmount.Sign() == 0 {
		return nil, reverts.New(reverts.TierNotLive, "This option is not in live")
	}
	return tier, nil
}

// discounted returns amount less bp basis points.
func discounted(amount *big.Int, bp uint64) (*big.Int, error) {
	off, err := accrual.ApplyBasisPoints(amount, bp)
	if err != nil {
		return nil, err
	}
	return new(big.Int).Sub(amount, off), nil
}

// StakerBoosterValue is the booster user earns with the collateral held right now.
func (c *NFTChef) StakerBoosterValue(user altava.Address) (uint64, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return 0, err
	}
	count, err := collateral.New(c.env, cfg.Registry).StakedCount(user)
	if err != nil {
		return 0, err
	}
	return c.booster.Value(count)
}

// RequiredAmount is what user must lock for the tier of period right now.
func (c *NFTChef) RequiredAmount(user altava.Address, period uint64) (*big.Int, error) {
	tier, err := c.Config(period)
	if err != nil {
		return nil, err
	}
	bp, err := c.StakerBoosterValue(user)
	if err != nil {
		return nil, err
	}
	return discounted(tier.RequiredLockAmount, bp)
}

func (c *NFTChef) UserStakeIndex(user altava.Address) (uint64, error) {
	return c.index.Get(user)
}

func (c *NFTChef) StakerInfo(user altava.Address, i uint64) (*Position, error) {
	p, err := c.positions.Get(solidity.IndexKey{Addr: user, Index: i})
	if err != nil {
		return nil, err
	}
	if p.LockedAmount == nil {
		p.LockedAmount = new(big.Int)
	}
	if p.TierAmount == nil {
		p.TierAmount = new(big.Int)
	}
	return p, nil
}

// CurrentStakerInfo returns the position at the current index of user,
// which is empty when nothing is staked.
func (c *NFTChef) CurrentStakerInfo(user altava.Address) (*Position, error) {
	i, err := c.index.Get(user)
	if err != nil {
		return nil, err
	}
	return c.StakerInfo(user, i)
}

// PenaltyAmount is the part of the locked amount the current collateral no
// longer justifies. It is measured against the tier amount the position was
// staked under, so later tier changes do not affect open positions.
func (c *NFTChef) PenaltyAmount(user altava.Address) (*big.Int, error) {
	pos, err := c.CurrentStakerInfo(user)
	if err != nil {
		return nil, err
	}
	if !pos.open() {
		return new(big.Int), nil
	}
	bp, err := c.StakerBoosterValue(user)
	if err != nil {
		return nil, err
	}
	required, err := discounted(pos.TierAmount, bp)
	if err != nil {
		return nil, err
	}
	if required.Cmp(pos.LockedAmount) <= 0 {
		return new(big.Int), nil
	}
	penalty := required.Sub(required, pos.LockedAmount)
	if penalty.Cmp(pos.LockedAmount) > 0 {
		penalty.Set(pos.LockedAmount)
	}
	return penalty, nil
}

// Stake locks the required amount of the tier of period, or moves the open
// position up to that tier, collecting only the difference.
func (c *NFTChef) Stake(caller altava.Address, period uint64) error {
	if err := c.WhenNotPaused(); err != nil {
		return err
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	tier, err := c.liveTier(period)
	if err != nil {
		return err
	}
	bp, err := c.StakerBoosterValue(caller)
	if err != nil {
		return err
	}
	required, err := discounted(tier.RequiredLockAmount, bp)
	if err != nil {
		return err
	}
	index, err := c.index.Get(caller)
	if err != nil {
		return err
	}
	key := solidity.IndexKey{Addr: caller, Index: index}
	pos, err := c.StakerInfo(caller, index)
	if err != nil {
		return err
	}

	now := c.env.BlockContext().Time
	event := "Stake"
	due := required
	if pos.open() {
		if period <= pos.LockDuration {
			return reverts.New(reverts.InvalidPeriod, "Stake: Invalid period")
		}
		event = "Extend"
		due = new(big.Int)
		if required.Cmp(pos.LockedAmount) > 0 {
			due.Sub(required, pos.LockedAmount)
		}
		pos.UnlockAt += period - pos.LockDuration
		pos.LockedAmount = new(big.Int).Add(pos.LockedAmount, due)
	} else {
		pos = &Position{
			LockedAmount: new(big.Int).Set(required),
			LockedAt:     now,
			UnlockAt:     now + period,
		}
	}
	pos.LockDuration = period
	pos.TierAmount = new(big.Int).Set(tier.RequiredLockAmount)
	pos.RewardAmount = tier.RewardUnits
	pos.BoosterValue = bp

	if due.Sign() > 0 {
		if err := token.New(c.env, cfg.StakedToken).TransferFrom(c.addr, caller, c.addr, due); err != nil {
			return err
		}
	}
	if err := c.positions.Set(key, pos); err != nil {
		return err
	}
	c.env.Log(c.addr, event, []altava.Bytes32{xenv.AddressTopic(caller)}, map[string]any{
		"index":        index,
		"period":       period,
		"paid":         due.String(),
		"lockedAmount": pos.LockedAmount.String(),
		"lockedAt":     pos.LockedAt,
		"unlockAt":     pos.UnlockAt,
		"booster":      bp,
	})
	logger.Debug("staked", "chef", c.addr, "user", caller, "event", event, "period", period, "paid", due)
	return nil
}

// Unstake closes the matured position of caller. The reward NFT units are
// recorded against receiver for off-chain delivery.
func (c *NFTChef) Unstake(caller altava.Address, receiver string) error {
	if err := c.WhenNotPaused(); err != nil {
		return err
	}
	if receiver == "" {
		return reverts.New(reverts.ZeroAddress, "Cannot be zero address")
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	index, err := c.index.Get(caller)
	if err != nil {
		return err
	}
	pos, err := c.StakerInfo(caller, index)
	if err != nil {
		return err
	}
	if !pos.open() {
		return reverts.New(reverts.NotFound, "Your position not exist")
	}
	if c.env.BlockContext().Time < pos.UnlockAt {
		return reverts.New(reverts.StillLocked, "Not able to withdraw")
	}
	penalty, err := c.PenaltyAmount(caller)
	if err != nil {
		return err
	}
	owner, err := c.Owner()
	if err != nil {
		return err
	}

	staked := token.New(c.env, cfg.StakedToken)
	payout := new(big.Int).Sub(pos.LockedAmount, penalty)
	if payout.Sign() > 0 {
		if err := staked.Transfer(c.addr, caller, payout); err != nil {
			return err
		}
	}
	if penalty.Sign() > 0 {
		if err := staked.Transfer(c.addr, owner, penalty); err != nil {
			return err
		}
	}
	pos.Unstaked = true
	if err := c.positions.Set(solidity.IndexKey{Addr: caller, Index: index}, pos); err != nil {
		return err
	}
	if err := c.index.Set(caller, index+1); err != nil {
		return err
	}
	c.env.Log(c.addr, "Unstake", []altava.Bytes32{xenv.AddressTopic(caller)}, map[string]any{
		"index":        index,
		"amount":       payout.String(),
		"penalty":      penalty.String(),
		"rewardNFT":    cfg.RewardNFT,
		"rewardAmount": pos.RewardAmount,
		"receiver":     receiver,
	})
	logger.Debug("unstaked", "chef", c.addr, "user", caller, "amount", payout, "penalty", penalty)
	return nil
}

// StakeCollateral pledges ids of caller through this chef.
func (c *NFTChef) StakeCollateral(caller altava.Address, ids []uint64) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	return collateral.New(c.env, cfg.Registry).StakeFrom(c.addr, caller, ids)
}

// UnstakeCollateral releases ids of caller through this chef.
func (c *NFTChef) UnstakeCollateral(caller altava.Address, ids []uint64) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	return collateral.New(c.env, cfg.Registry).UnstakeFrom(c.addr, caller, ids)
}

func (c *NFTChef) SetPause(caller altava.Address, paused bool) error {
	if err := c.OnlyOwner(caller); err != nil {
		return err
	}
	return c.SetPaused(caller, paused)
}

// BoosterValue returns the booster granted for count collaterals.
func (c *NFTChef) BoosterValue(count uint64) (uint64, error) {
	return c.booster.Value(count)
}

func (c *NFTChef) BoosterPairs() ([]booster.Pair, error) {
	return c.booster.Pairs()
}

func (c *NFTChef) BoosterTotal() (int, error) {
	return c.booster.Len()
}

// SetBoosterValue updates key or appends it right after the last key.
func (c *NFTChef) SetBoosterValue(caller altava.Address, key, value uint64) error {
	if err := c.OnlyOwner(caller); err != nil {
		return err
	}
	total, err := c.booster.Len()
	if err != nil {
		return err
	}
	if key > uint64(total)+1 {
		return reverts.New(reverts.InvalidInput, "Out of index")
	}
	if err := checkBoosterRate(value); err != nil {
		return err
	}
	if err := c.booster.SetValue(key, value); err != nil {
		return err
	}
	c.env.Log(c.addr, "BoosterUpdated", nil, map[string]any{"key": key, "value": value})
	logger.Info("booster value set", "chef", c.addr, "key", key, "value", value)
	return nil
}

// RemoveBoosterValue drops the last key.
func (c *NFTChef) RemoveBoosterValue(caller altava.Address, key uint64) error {
	if err := c.OnlyOwner(caller); err != nil {
		return err
	}
	total, err := c.booster.Len()
	if err != nil {
		return err
	}
	if key == 0 || key != uint64(total) {
		return reverts.New(reverts.InvalidInput, "Out of index")
	}
	if err := c.booster.RemoveValue(key); err != nil {
		return err
	}
	c.env.Log(c.addr, "BoosterRemoved", nil, map[string]any{"key": key})
	logger.Info("booster value removed", "chef", c.addr, "key", key)
	return nil
}
