// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package smartchef implements the open-duration lock pool. Stakers lock a
// token for at least a week and earn a reward token every block, boosted by
// the collateral they pledge.
package smartchef

import (
	"math/big"

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

var logger = log.WithContext("pkg", "smartchef")

var (
	slotConfig = solidity.Slot("smartchef.config")
	slotPool   = solidity.Slot("smartchef.pool")
	slotUsers  = solidity.Slot("smartchef.users")
)

// Params configures a chef at deployment.
type Params struct {
	ID                string
	RewardLabel       string
	StakedToken       altava.Address
	RewardToken       altava.Address
	RewardPerBlock    *big.Int
	StartBlock        uint64
	EndBlock          uint64
	Admin             altava.Address
	Registry          altava.Address
	Airdrop           bool
	BoosterController altava.Address
}

type config struct {
	ID                string
	RewardLabel       string
	StakedToken       altava.Address
	RewardToken       altava.Address
	Registry          altava.Address
	BoosterController altava.Address
	Factory           altava.Address
	Airdrop           bool
}

// UserInfo is the lock of one staker.
type UserInfo struct {
	LockedAmount  *big.Int
	LockStartTime uint64
	LockEndTime   uint64
	Locked        bool
	RewardDebt    *big.Int
	Rewards       *big.Int
	BoosterValue  uint64
}

func (u *UserInfo) normalize() {
	if u.LockedAmount == nil {
		u.LockedAmount = new(big.Int)
	}
	if u.RewardDebt == nil {
		u.RewardDebt = new(big.Int)
	}
	if u.Rewards == nil {
		u.Rewards = new(big.Int)
	}
}

// Config is the public view of a chef.
type Config struct {
	ID                string
	RewardLabel       string
	StakedToken       altava.Address
	RewardToken       altava.Address
	Registry          altava.Address
	BoosterController altava.Address
	Factory           altava.Address
	Airdrop           bool
	Paused            bool
	Pool              accrual.Pool
}

// SmartChef is one open-duration lock pool.
type SmartChef struct {
	env  *xenv.Environment
	addr altava.Address
	*access.Ownable
	*access.Pausable
	config *solidity.Raw[*config]
	pool   *solidity.Raw[*accrual.Pool]
	users  *solidity.Mapping[altava.Address, *UserInfo]
}

func New(env *xenv.Environment, addr altava.Address) *SmartChef {
	ctx := solidity.NewContext(addr, env.State())
	return &SmartChef{
		env:      env,
		addr:     addr,
		Ownable:  access.NewOwnable(env, addr),
		Pausable: access.NewPausable(env, addr),
		config:   solidity.NewRaw[*config](ctx, slotConfig),
		pool:     solidity.NewRaw[*accrual.Pool](ctx, slotPool),
		users:    solidity.NewMapping[altava.Address, *UserInfo](ctx, slotUsers),
	}
}

func (c *SmartChef) Address() altava.Address { return c.addr }

// Initialize configures the chef. caller is recorded as the deploying factory.
func (c *SmartChef) Initialize(caller altava.Address, p *Params) error {
	prev, err := c.config.Get()
	if err != nil {
		return err
	}
	if !prev.Factory.IsZero() {
		return reverts.New(reverts.AlreadyInitialized, "Already initialized")
	}
	if p.StakedToken.IsZero() || p.RewardToken.IsZero() || p.Registry.IsZero() {
		return reverts.New(reverts.ZeroAddress, "Cannot be zero address")
	}
	if p.RewardPerBlock == nil || p.RewardPerBlock.Sign() < 0 {
		return reverts.New(reverts.InvalidInput, "Invalid reward per block")
	}
	if p.StartBlock >= p.EndBlock {
		return reverts.New(reverts.InvalidInput, "startBlock too higher")
	}
	decimals, err := token.New(c.env, p.RewardToken).Decimals()
	if err != nil {
		return err
	}
	pool, err := accrual.NewPool(p.RewardPerBlock, p.StartBlock, p.EndBlock, decimals)
	if err != nil {
		return err
	}
	if err := c.pool.Set(pool); err != nil {
		return err
	}
	if err := c.config.Set(&config{
		ID:                p.ID,
		RewardLabel:       p.RewardLabel,
		StakedToken:       p.StakedToken,
		RewardToken:       p.RewardToken,
		Registry:          p.Registry,
		BoosterController: p.BoosterController,
		Factory:           caller,
		Airdrop:           p.Airdrop,
	}); err != nil {
		return err
	}
	return c.Ownable.Init(p.Admin)
}

func (c *SmartChef) loadConfig() (*config, error) {
	cfg, err := c.config.Get()
	if err != nil {
		return nil, err
	}
	if cfg.Factory.IsZero() {
		return nil, reverts.New(reverts.NotFound, "Chef: not initialized")
	}
	return cfg, nil
}

// updatePool settles the accumulator up to the current block.
func (c *SmartChef) updatePool() (*accrual.Pool, error) {
	pool, err := c.pool.Get()
	if err != nil {
		return nil, err
	}
	if err := pool.Update(c.env.BlockContext().Number); err != nil {
		return nil, err
	}
	return pool, nil
}

func (c *SmartChef) userInfo(user altava.Address) (*UserInfo, error) {
	u, err := c.users.Get(user)
	if err != nil {
		return nil, err
	}
	u.normalize()
	return u, nil
}

// liveBooster is the booster user earns with the collateral held right now.
func (c *SmartChef) liveBooster(cfg *config, user altava.Address) (uint64, error) {
	if cfg.BoosterController.IsZero() {
		return 0, nil
	}
	count, err := collateral.New(c.env, cfg.Registry).StakedCount(user)
	if err != nil {
		return 0, err
	}
	return booster.NewController(c.env, cfg.BoosterController).BoosterAPR(c.addr, count)
}

func checkDuration(duration uint64) error {
	if duration < altava.MinLockDuration {
		return reverts.New(reverts.InvalidPeriod, "Minimum lock period is one week")
	}
	if duration > altava.MaxLockDuration {
		return reverts.New(reverts.InvalidPeriod, "Maximum lock period exceeded")
	}
	return nil
}

// Stake opens a lock of amount for duration seconds, or extends the open one.
// On an open lock a longer duration moves the end to start+duration, and a
// zero duration tops up the amount without touching the end.
func (c *SmartChef) Stake(caller altava.Address, amount *big.Int, duration uint64) error {
	if err := c.WhenNotPaused(); err != nil {
		return err
	}
	if amount.Sign() < 0 {
		return reverts.New(reverts.InvalidInput, "Invalid amount")
	}
	if amount.Sign() == 0 && duration == 0 {
		return reverts.New(reverts.InvalidInput, "Nothing to deposit")
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	pool, err := c.updatePool()
	if err != nil {
		return err
	}
	user, err := c.userInfo(caller)
	if err != nil {
		return err
	}
	now := c.env.BlockContext().Time

	event := "Stake"
	if !user.Locked {
		if amount.Sign() == 0 {
			return reverts.New(reverts.InvalidInput, "Nothing to deposit")
		}
		if err := checkDuration(duration); err != nil {
			return err
		}
		user = &UserInfo{
			LockedAmount:  new(big.Int),
			LockStartTime: now,
			LockEndTime:   now + duration,
			Locked:        true,
			RewardDebt:    new(big.Int),
			Rewards:       new(big.Int),
		}
	} else {
		event = "Extend"
		pending, err := pool.Pending(user.LockedAmount, user.RewardDebt)
		if err != nil {
			return err
		}
		if user.Rewards, err = accrual.Add(user.Rewards, pending); err != nil {
			return err
		}
		current := user.LockEndTime - user.LockStartTime
		switch {
		case duration > current:
			if err := checkDuration(duration); err != nil {
				return err
			}
			user.LockEndTime = user.LockStartTime + duration
		case duration == 0:
		case amount.Sign() > 0:
			return reverts.New(reverts.InvalidPeriod, "Extend lock duration")
		default:
			return reverts.New(reverts.InvalidPeriod, "Not enough duration to extends")
		}
	}

	if amount.Sign() > 0 {
		if err := token.New(c.env, cfg.StakedToken).TransferFrom(c.addr, caller, c.addr, amount); err != nil {
			return err
		}
		if user.LockedAmount, err = accrual.Add(user.LockedAmount, amount); err != nil {
			return err
		}
		if pool.TotalLocked, err = accrual.Add(pool.TotalLocked, amount); err != nil {
			return err
		}
	}
	if user.RewardDebt, err = pool.Debt(user.LockedAmount); err != nil {
		return err
	}
	if user.BoosterValue, err = c.liveBooster(cfg, caller); err != nil {
		return err
	}
	if err := c.users.Set(caller, user); err != nil {
		return err
	}
	if err := c.pool.Set(pool); err != nil {
		return err
	}
	c.env.Log(c.addr, event, []altava.Bytes32{xenv.AddressTopic(caller)}, map[string]any{
		"amount":       amount.String(),
		"lockedAmount": user.LockedAmount.String(),
		"lockEndTime":  user.LockEndTime,
		"booster":      user.BoosterValue,
	})
	logger.Debug("staked", "chef", c.addr, "user", caller, "event", event, "amount", amount, "end", user.LockEndTime)
	return nil
}

// Unlock closes the expired lock of caller. Principal goes back to caller.
// Rewards plus the booster bonus are paid in the reward token, or for airdrop
// pools only recorded against receiver.
func (c *SmartChef) Unlock(caller altava.Address, receiver string) error {
	if err := c.WhenNotPaused(); err != nil {
		return err
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	pool, err := c.updatePool()
	if err != nil {
		return err
	}
	user, err := c.userInfo(caller)
	if err != nil {
		return err
	}
	if !user.Locked {
		return reverts.New(reverts.AlreadyUnlocked, "Empty to unlock")
	}
	if c.env.BlockContext().Time < user.LockEndTime {
		return reverts.New(reverts.StillLocked, "Still in locked")
	}
	if cfg.Airdrop && receiver == "" {
		return reverts.New(reverts.ZeroAddress, "Cannot be zero address")
	}

	pending, err := pool.Pending(user.LockedAmount, user.RewardDebt)
	if err != nil {
		return err
	}
	rewards, err := accrual.Add(user.Rewards, pending)
	if err != nil {
		return err
	}
	live, err := c.liveBooster(cfg, caller)
	if err != nil {
		return err
	}
	bonus, err := accrual.ApplyBasisPoints(rewards, min(user.BoosterValue, live))
	if err != nil {
		return err
	}
	total := new(big.Int).Add(rewards, bonus)

	if user.LockedAmount.Sign() > 0 {
		if err := token.New(c.env, cfg.StakedToken).Transfer(c.addr, caller, user.LockedAmount); err != nil {
			return err
		}
	}
	if !cfg.Airdrop && total.Sign() > 0 {
		if err := token.New(c.env, cfg.RewardToken).Transfer(c.addr, caller, total); err != nil {
			return err
		}
	}
	pool.TotalLocked = new(big.Int).Sub(pool.TotalLocked, user.LockedAmount)
	if err := c.pool.Set(pool); err != nil {
		return err
	}
	c.users.Delete(caller)

	c.env.Log(c.addr, "Unlock", []altava.Bytes32{xenv.AddressTopic(caller)}, map[string]any{
		"amount":   user.LockedAmount.String(),
		"rewards":  rewards.String(),
		"bonus":    bonus.String(),
		"receiver": receiver,
		"airdrop":  cfg.Airdrop,
	})
	logger.Debug("unlocked", "chef", c.addr, "user", caller, "amount", user.LockedAmount, "reward", total)
	return nil
}

// StakeCollateral pledges ids of caller through this chef.
func (c *SmartChef) StakeCollateral(caller altava.Address, ids []uint64) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	return collateral.New(c.env, cfg.Registry).StakeFrom(c.addr, caller, ids)
}

// UnstakeCollateral releases ids of caller through this chef.
func (c *SmartChef) UnstakeCollateral(caller altava.Address, ids []uint64) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	return collateral.New(c.env, cfg.Registry).UnstakeFrom(c.addr, caller, ids)
}

func (c *SmartChef) UpdateRewardPerBlock(caller altava.Address, rewardPerBlock *big.Int) error {
	if err := c.OnlyOwner(caller); err != nil {
		return err
	}
	if rewardPerBlock.Sign() < 0 {
		return reverts.New(reverts.InvalidInput, "Invalid reward per block")
	}
	pool, err := c.pool.Get()
	if err != nil {
		return err
	}
	if c.env.BlockContext().Number >= pool.StartBlock {
		return reverts.New(reverts.PoolAlreadyStarted, "Pool has started")
	}
	pool.RewardPerBlock = new(big.Int).Set(rewardPerBlock)
	if err := c.pool.Set(pool); err != nil {
		return err
	}
	c.env.Log(c.addr, "RewardPerBlockUpdated", nil, map[string]any{"rewardPerBlock": rewardPerBlock.String()})
	logger.Info("reward per block updated", "chef", c.addr, "value", rewardPerBlock)
	return nil
}

func (c *SmartChef) UpdateStartAndEndBlocks(caller altava.Address, start, end uint64) error {
	if err := c.OnlyOwner(caller); err != nil {
		return err
	}
	pool, err := c.pool.Get()
	if err != nil {
		return err
	}
	block := c.env.BlockContext().Number
	if block >= pool.StartBlock {
		return reverts.New(reverts.PoolAlreadyStarted, "Pool has started")
	}
	if start >= end {
		return reverts.New(reverts.InvalidInput, "startBlock too higher")
	}
	if start <= block {
		return reverts.New(reverts.InvalidInput, "startBlock too lower")
	}
	pool.StartBlock = start
	pool.EndBlock = end
	pool.LastRewardBlock = start
	if err := c.pool.Set(pool); err != nil {
		return err
	}
	c.env.Log(c.addr, "StartAndEndBlocksUpdated", nil, map[string]any{"startBlock": start, "endBlock": end})
	logger.Info("blocks updated", "chef", c.addr, "start", start, "end", end)
	return nil
}

func (c *SmartChef) SetPause(caller altava.Address, paused bool) error {
	if err := c.OnlyOwner(caller); err != nil {
		return err
	}
	return c.SetPaused(caller, paused)
}

func (c *SmartChef) SetBoosterController(caller, controller altava.Address) error {
	if err := c.OnlyOwner(caller); err != nil {
		return err
	}
	if controller.IsZero() {
		return reverts.New(reverts.ZeroAddress, "Cannot be zero address")
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	cfg.BoosterController = controller
	if err := c.config.Set(cfg); err != nil {
		return err
	}
	c.env.Log(c.addr, "BoosterControllerUpdated", []altava.Bytes32{xenv.AddressTopic(controller)},
		map[string]any{"controller": controller})
	return nil
}

// EmergencyRewardWithdraw sends amount of reward token held by the chef to the
// owner. Refused while principal is locked or when the reward token is also
// the staked token.
func (c *SmartChef) EmergencyRewardWithdraw(caller altava.Address, amount *big.Int) error {
	if err := c.OnlyOwner(caller); err != nil {
		return err
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	pool, err := c.pool.Get()
	if err != nil {
		return err
	}
	if cfg.StakedToken == cfg.RewardToken || pool.TotalLocked.Sign() > 0 {
		return reverts.New(reverts.NotAllowed, "Not able to withdraw")
	}
	reward := token.New(c.env, cfg.RewardToken)
	bal, err := reward.BalanceOf(c.addr)
	if err != nil {
		return err
	}
	if bal.Cmp(amount) < 0 {
		return reverts.New(reverts.NotAllowed, "Not able to withdraw")
	}
	if err := reward.Transfer(c.addr, caller, amount); err != nil {
		return err
	}
	c.env.Log(c.addr, "EmergencyWithdraw", nil, map[string]any{"amount": amount.String()})
	logger.Info("reward withdrawn", "chef", c.addr, "amount", amount)
	return nil
}

func (c *SmartChef) UserInfo(user altava.Address) (*UserInfo, error) {
	return c.userInfo(user)
}

// PendingReward returns the rewards of user as of the current block, booster excluded.
func (c *SmartChef) PendingReward(user altava.Address) (*big.Int, error) {
	pool, err := c.pool.Get()
	if err != nil {
		return nil, err
	}
	u, err := c.userInfo(user)
	if err != nil {
		return nil, err
	}
	if !u.Locked {
		return new(big.Int), nil
	}
	pending, err := pool.PendingAt(c.env.BlockContext().Number, u.LockedAmount, u.RewardDebt)
	if err != nil {
		return nil, err
	}
	return accrual.Add(u.Rewards, pending)
}

// StakerBoosterValue is the booster user would get staking right now.
func (c *SmartChef) StakerBoosterValue(user altava.Address) (uint64, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return 0, err
	}
	return c.liveBooster(cfg, user)
}

func (c *SmartChef) Config() (*Config, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	pool, err := c.pool.Get()
	if err != nil {
		return nil, err
	}
	paused, err := c.Paused()
	if err != nil {
		return nil, err
	}
	return &Config{
		ID:                cfg.ID,
		RewardLabel:       cfg.RewardLabel,
		StakedToken:       cfg.StakedToken,
		RewardToken:       cfg.RewardToken,
		Registry:          cfg.Registry,
		BoosterController: cfg.BoosterController,
		Factory:           cfg.Factory,
		Airdrop:           cfg.Airdrop,
		Paused:            paused,
		Pool:              *pool,
	}, nil
}
