// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package masterchef implements the factories that deploy and index chefs.
package masterchef

import (
	"github.com/0xdhu/ALTAVA-staking-contract/altava"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/access"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/collateral"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/reverts"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/solidity"
	"github.com/0xdhu/ALTAVA-staking-contract/log"
	"github.com/0xdhu/ALTAVA-staking-contract/xenv"
)

var logger = log.WithContext("pkg", "masterchef")

// factory is the chef index shared by both factories.
type factory struct {
	env  *xenv.Environment
	addr altava.Address
	*access.Ownable
	nftStaking *solidity.Address
	count      *solidity.Raw[uint64]
	chefs      *solidity.Mapping[solidity.Uint64Key, altava.Address]
}

func newFactory(env *xenv.Environment, addr altava.Address, prefix string) factory {
	ctx := solidity.NewContext(addr, env.State())
	return factory{
		env:        env,
		addr:       addr,
		Ownable:    access.NewOwnable(env, addr),
		nftStaking: solidity.NewAddress(ctx, solidity.Slot(prefix+".nftStaking")),
		count:      solidity.NewRaw[uint64](ctx, solidity.Slot(prefix+".count")),
		chefs:      solidity.NewMapping[solidity.Uint64Key, altava.Address](ctx, solidity.Slot(prefix+".chefs")),
	}
}

func (f *factory) Address() altava.Address { return f.addr }

func (f *factory) init(owner, nftStaking altava.Address) error {
	if nftStaking.IsZero() {
		return reverts.New(reverts.ZeroAddress, "Cannot be zero address")
	}
	prev, err := f.nftStaking.Get()
	if err != nil {
		return err
	}
	if !prev.IsZero() {
		return reverts.New(reverts.AlreadyInitialized, "Already initialized")
	}
	f.nftStaking.Set(nftStaking)
	return f.Ownable.Init(owner)
}

// NFTStaking returns the collateral registry chefs are bound to.
func (f *factory) NFTStaking() (altava.Address, error) {
	return f.nftStaking.Get()
}

func (f *factory) SetNFTStaking(caller, addr altava.Address) error {
	if err := f.OnlyOwner(caller); err != nil {
		return err
	}
	if addr.IsZero() {
		return reverts.New(reverts.ZeroAddress, "Cannot be zero address")
	}
	f.nftStaking.Set(addr)
	f.env.Log(f.addr, "NFTStakingUpdated", []altava.Bytes32{xenv.AddressTopic(addr)}, map[string]any{"nftStaking": addr})
	logger.Info("nft staking set", "factory", f.addr, "addr", addr)
	return nil
}

func (f *factory) ChefCount() (uint64, error) {
	return f.count.Get()
}

// ChefAddress returns the i-th deployed chef, counting from 1.
func (f *factory) ChefAddress(i uint64) (altava.Address, error) {
	n, err := f.count.Get()
	if err != nil {
		return altava.Address{}, err
	}
	if i == 0 || i > n {
		return altava.Address{}, reverts.New(reverts.NotFound, "Chef: not exist")
	}
	return f.chefs.Get(solidity.Uint64Key(i))
}

// Chefs lists every deployed chef in deployment order.
func (f *factory) Chefs() ([]altava.Address, error) {
	n, err := f.count.Get()
	if err != nil {
		return nil, err
	}
	chefs := make([]altava.Address, 0, n)
	for i := uint64(1); i <= n; i++ {
		addr, err := f.chefs.Get(solidity.Uint64Key(i))
		if err != nil {
			return nil, err
		}
		chefs = append(chefs, addr)
	}
	return chefs, nil
}

// next allocates the address of a new chef and registers it with the registry.
func (f *factory) next() (altava.Address, *collateral.Registry, error) {
	n, err := f.count.Get()
	if err != nil {
		return altava.Address{}, nil, err
	}
	registryAddr, err := f.nftStaking.Get()
	if err != nil {
		return altava.Address{}, nil, err
	}
	n++
	chef := altava.CreateContractAddress(f.addr, n)
	if err := f.count.Set(n); err != nil {
		return altava.Address{}, nil, err
	}
	if err := f.chefs.Set(solidity.Uint64Key(n), chef); err != nil {
		return altava.Address{}, nil, err
	}
	registry := collateral.New(f.env, registryAddr)
	if err := registry.RegisterChef(f.addr, chef); err != nil {
		return altava.Address{}, nil, err
	}
	return chef, registry, nil
}
