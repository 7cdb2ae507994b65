// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/0xdhu/ALTAVA-staking-contract/altava"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/nft"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/token"
	"github.com/0xdhu/ALTAVA-staking-contract/state"
	"github.com/0xdhu/ALTAVA-staking-contract/xenv"
)

// Genesis to build genesis state.
type Genesis struct {
	builder    *Builder
	id         altava.Bytes32
	name       string
	launchTime uint64
	config     *Config
}

// New creates a genesis from config.
func New(cfg *Config) (*Genesis, error) {
	if err := cfg.validate(); err != nil {
		return nil, errors.WithMessage(err, "invalid genesis")
	}
	enc, err := rlp.EncodeToBytes(cfg.rlpFields())
	if err != nil {
		return nil, errors.Wrap(err, "encode genesis")
	}
	return &Genesis{
		builder:    newBuilder(cfg),
		id:         altava.Blake2b(enc),
		name:       cfg.Name,
		launchTime: cfg.LaunchTime,
		config:     cfg,
	}, nil
}

// Load reads and validates a YAML genesis file.
func Load(path string) (*Genesis, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return New(cfg)
}

// Build build the genesis state.
func (g *Genesis) Build(stater *state.Stater) (*Output, error) {
	return g.builder.Build(stater)
}

// ID returns genesis ID.
func (g *Genesis) ID() altava.Bytes32 {
	return g.id
}

// Name returns network name.
func (g *Genesis) Name() string {
	return g.name
}

func (g *Genesis) LaunchTime() uint64 {
	return g.launchTime
}

func (g *Genesis) Config() *Config {
	return g.config
}

func newBuilder(cfg *Config) *Builder {
	admin := cfg.Admin
	boosterOwner := admin
	if cfg.BoosterOwner != nil {
		boosterOwner = *cfg.BoosterOwner
	}

	b := new(Builder).Timestamp(cfg.LaunchTime)
	for _, t := range cfg.Tokens {
		b.Call("token "+t.Symbol, func(env *xenv.Environment) error {
			tk := token.New(env, t.Address)
			if err := tk.Init(admin, token.Meta{Name: t.Name, Symbol: t.Symbol, Decimals: t.Decimals}); err != nil {
				return err
			}
			for _, bal := range t.Balances {
				if err := tk.Mint(admin, bal.Address, bal.Amount.Int); err != nil {
					return err
				}
			}
			return nil
		})
	}
	for _, coll := range cfg.Collections {
		b.Call("collection "+coll.Symbol, func(env *xenv.Environment) error {
			n := nft.New(env, coll.Address)
			if err := n.Init(admin, nft.Meta{Name: coll.Name, Symbol: coll.Symbol}); err != nil {
				return err
			}
			for _, m := range coll.Mints {
				for _, id := range m.IDs {
					if err := n.Mint(admin, m.Owner, id); err != nil {
						return err
					}
				}
			}
			return nil
		})
	}
	return b.
		Call("nft staking", func(env *xenv.Environment) error {
			return builtin.NFTStaking.WithEnv(env).Init(admin, cfg.Collateral)
		}).
		Call("master chef", func(env *xenv.Environment) error {
			return builtin.MasterChef.WithEnv(env).Init(admin, builtin.NFTStaking.Address)
		}).
		Call("nft master chef", func(env *xenv.Environment) error {
			return builtin.NFTMasterChef.WithEnv(env).Init(admin, cfg.StakedToken, builtin.NFTStaking.Address)
		}).
		Call("controllers", func(env *xenv.Environment) error {
			registry := builtin.NFTStaking.WithEnv(env)
			if err := registry.SetMasterChef(admin, builtin.MasterChef.Address); err != nil {
				return err
			}
			return registry.SetNFTMasterChef(admin, builtin.NFTMasterChef.Address)
		}).
		Call("booster controller", func(env *xenv.Environment) error {
			return builtin.BoosterController.WithEnv(env).Init(boosterOwner)
		})
}
