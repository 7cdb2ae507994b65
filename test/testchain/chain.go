// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package testchain runs a runtime over in-memory storage with a fake clock.
package testchain

import (
	"math/big"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/0xdhu/ALTAVA-staking-contract/altava"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/masterchef"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/token"
	"github.com/0xdhu/ALTAVA-staking-contract/genesis"
	"github.com/0xdhu/ALTAVA-staking-contract/logdb"
	"github.com/0xdhu/ALTAVA-staking-contract/lvldb"
	"github.com/0xdhu/ALTAVA-staking-contract/runtime"
	"github.com/0xdhu/ALTAVA-staking-contract/xenv"
)

// BlockInterval is the block interval of test chains.
const BlockInterval = 10 * time.Second

// Chain bundles a runtime with its in-memory stores.
type Chain struct {
	db       *lvldb.LevelDB
	logDB    *logdb.LogDB
	clock    *clockwork.FakeClock
	rt       *runtime.Runtime
	genesis  *genesis.Genesis
	accounts []genesis.DevAccount
}

// NewDefault creates a chain on the dev network genesis.
func NewDefault() (*Chain, error) {
	return NewWithGenesis(genesis.NewDevnet())
}

// NewWithGenesis creates a chain on gen. The clock starts at the launch time.
func NewWithGenesis(gen *genesis.Genesis) (*Chain, error) {
	db, err := lvldb.NewMem()
	if err != nil {
		return nil, err
	}
	logDB, err := logdb.NewMem()
	if err != nil {
		db.Close()
		return nil, err
	}
	clock := clockwork.NewFakeClockAt(time.Unix(int64(gen.LaunchTime()), 0))
	rt, err := runtime.New(db, logDB, gen, runtime.NewBlockClock(clock, gen.LaunchTime(), BlockInterval), 4096)
	if err != nil {
		logDB.Close()
		db.Close()
		return nil, err
	}
	return &Chain{
		db:       db,
		logDB:    logDB,
		clock:    clock,
		rt:       rt,
		genesis:  gen,
		accounts: genesis.DevAccounts(),
	}, nil
}

func (c *Chain) Runtime() *runtime.Runtime        { return c.rt }
func (c *Chain) LogDB() *logdb.LogDB              { return c.logDB }
func (c *Chain) Genesis() *genesis.Genesis        { return c.genesis }
func (c *Chain) Clock() *clockwork.FakeClock      { return c.clock }
func (c *Chain) Accounts() []genesis.DevAccount   { return c.accounts }
func (c *Chain) Admin() altava.Address            { return c.genesis.Config().Admin }
func (c *Chain) BlockContext() *xenv.BlockContext { return c.rt.Clock().Now() }

// Execute runs a mutating call.
func (c *Chain) Execute(method string, caller altava.Address, fn func(env *xenv.Environment) error) (*runtime.Receipt, error) {
	return c.rt.Execute(method, caller, fn)
}

// View runs a read only call.
func (c *Chain) View(fn func(env *xenv.Environment) error) error {
	return c.rt.View(fn)
}

// AdvanceBlocks moves the clock forward by n block intervals.
func (c *Chain) AdvanceBlocks(n uint64) {
	c.clock.Advance(time.Duration(n) * BlockInterval)
}

// AdvanceTime moves the clock forward by d.
func (c *Chain) AdvanceTime(d time.Duration) {
	c.clock.Advance(d)
}

// Approve lets spender pull amount of tok from owner.
func (c *Chain) Approve(tok, owner, spender altava.Address, amount *big.Int) error {
	_, err := c.Execute("approve", owner, func(env *xenv.Environment) error {
		return token.New(env, tok).Approve(owner, spender, amount)
	})
	return err
}

// DeploySmartChef deploys a SmartChef as admin through the master chef.
func (c *Chain) DeploySmartChef(p *masterchef.DeployParams) (altava.Address, error) {
	var addr altava.Address
	_, err := c.Execute("deploySmartChef", c.Admin(), func(env *xenv.Environment) (err error) {
		addr, err = builtin.MasterChef.WithEnv(env).Deploy(c.Admin(), p)
		return
	})
	return addr, err
}

// DeployNFTChef deploys an NFTChef as admin through the nft master chef.
func (c *Chain) DeployNFTChef(id string, rewardNFT altava.Address, boosters []uint64) (altava.Address, error) {
	var addr altava.Address
	_, err := c.Execute("deployNFTChef", c.Admin(), func(env *xenv.Environment) (err error) {
		addr, err = builtin.NFTMasterChef.WithEnv(env).Deploy(c.Admin(), id, rewardNFT, boosters)
		return
	})
	return addr, err
}

// Close closes the stores.
func (c *Chain) Close() error {
	c.rt.Close()
	if err := c.logDB.Close(); err != nil {
		return err
	}
	return c.db.Close()
}
