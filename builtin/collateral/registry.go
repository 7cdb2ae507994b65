// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package collateral tracks the NFTs each address pledges to earn boosters.
//
// Pledges are not locked: a pledged NFT may be transferred away at any time.
// Such stale ids are skipped by queries and dropped on the next mutation.
package collateral

import (
	"slices"

	"github.com/0xdhu/ALTAVA-staking-contract/altava"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/access"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/nft"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/reverts"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/solidity"
	"github.com/0xdhu/ALTAVA-staking-contract/log"
	"github.com/0xdhu/ALTAVA-staking-contract/xenv"
)

var logger = log.WithContext("pkg", "collateral")

var (
	slotCollection    = solidity.Slot("collateral.collection")
	slotMasterChef    = solidity.Slot("collateral.masterChef")
	slotNFTMasterChef = solidity.Slot("collateral.nftMasterChef")
	slotChefs         = solidity.Slot("collateral.chefs")
	slotStaked        = solidity.Slot("collateral.staked")
)

// Registry is the collateral registry contract.
type Registry struct {
	env  *xenv.Environment
	addr altava.Address
	*access.Ownable
	collection    *solidity.Address
	masterChef    *solidity.Address
	nftMasterChef *solidity.Address
	chefs         *solidity.Mapping[altava.Address, bool]
	staked        *solidity.Mapping[altava.Address, []uint64]
}

func New(env *xenv.Environment, addr altava.Address) *Registry {
	ctx := solidity.NewContext(addr, env.State())
	return &Registry{
		env:           env,
		addr:          addr,
		Ownable:       access.NewOwnable(env, addr),
		collection:    solidity.NewAddress(ctx, slotCollection),
		masterChef:    solidity.NewAddress(ctx, slotMasterChef),
		nftMasterChef: solidity.NewAddress(ctx, slotNFTMasterChef),
		chefs:         solidity.NewMapping[altava.Address, bool](ctx, slotChefs),
		staked:        solidity.NewMapping[altava.Address, []uint64](ctx, slotStaked),
	}
}

func (r *Registry) Address() altava.Address { return r.addr }

// Init binds the registry to the collateral collection.
func (r *Registry) Init(owner, collection altava.Address) error {
	if collection.IsZero() {
		return reverts.New(reverts.ZeroAddress, "Cannot be zero address")
	}
	prev, err := r.collection.Get()
	if err != nil {
		return err
	}
	if !prev.IsZero() {
		return reverts.New(reverts.AlreadyInitialized, "NFTStaking: already initialized")
	}
	r.collection.Set(collection)
	return r.Ownable.Init(owner)
}

func (r *Registry) Collection() (altava.Address, error) {
	return r.collection.Get()
}

func (r *Registry) MasterChef() (altava.Address, error)    { return r.masterChef.Get() }
func (r *Registry) NFTMasterChef() (altava.Address, error) { return r.nftMasterChef.Get() }

// SetMasterChef binds the smart chef factory. Each controller can be set once.
func (r *Registry) SetMasterChef(caller, addr altava.Address) error {
	return r.setController(caller, addr, r.masterChef, "MasterChefSet")
}

func (r *Registry) SetNFTMasterChef(caller, addr altava.Address) error {
	return r.setController(caller, addr, r.nftMasterChef, "NFTMasterChefSet")
}

func (r *Registry) setController(caller, addr altava.Address, slot *solidity.Address, event string) error {
	if err := r.OnlyOwner(caller); err != nil {
		return err
	}
	if addr.IsZero() {
		return reverts.New(reverts.ZeroAddress, "Cannot be zero address")
	}
	prev, err := slot.Get()
	if err != nil {
		return err
	}
	if !prev.IsZero() {
		return reverts.New(reverts.AlreadyInitialized, "Already initialized")
	}
	slot.Set(addr)
	r.env.Log(r.addr, event, []altava.Bytes32{xenv.AddressTopic(addr)}, map[string]any{"controller": addr})
	logger.Info("controller set", "event", event, "addr", addr)
	return nil
}

// checkControllers fails until both factories are configured.
func (r *Registry) checkControllers() (master, nftMaster altava.Address, err error) {
	if master, err = r.masterChef.Get(); err != nil {
		return
	}
	if master.IsZero() {
		err = reverts.New(reverts.ZeroAddress, "masterchef: zero address")
		return
	}
	if nftMaster, err = r.nftMasterChef.Get(); err != nil {
		return
	}
	if nftMaster.IsZero() {
		err = reverts.New(reverts.ZeroAddress, "nftMasterChef: zero address")
	}
	return
}

// RegisterChef allows chef to pledge on behalf of users. Only a factory may
// register its chefs.
func (r *Registry) RegisterChef(caller, chef altava.Address) error {
	master, nftMaster, err := r.checkControllers()
	if err != nil {
		return err
	}
	if caller != master && caller != nftMaster {
		return reverts.New(reverts.Unauthorized, "You are not masterchef")
	}
	if chef.IsZero() {
		return reverts.New(reverts.ZeroAddress, "Cannot be zero address")
	}
	return r.chefs.Set(chef, true)
}

func (r *Registry) IsChef(addr altava.Address) (bool, error) {
	return r.chefs.Get(addr)
}

func (r *Registry) onlyChef(caller altava.Address) error {
	if _, _, err := r.checkControllers(); err != nil {
		return err
	}
	ok, err := r.chefs.Get(caller)
	if err != nil {
		return err
	}
	if !ok {
		return reverts.New(reverts.Unauthorized, "You are not subchef")
	}
	return nil
}

// Stake pledges ids owned by caller.
func (r *Registry) Stake(caller altava.Address, ids []uint64) error {
	if _, _, err := r.checkControllers(); err != nil {
		return err
	}
	return r.stake(caller, ids)
}

// Unstake releases ids pledged by caller.
func (r *Registry) Unstake(caller altava.Address, ids []uint64) error {
	if _, _, err := r.checkControllers(); err != nil {
		return err
	}
	return r.unstake(caller, ids)
}

// StakeFrom pledges ids of user. Registered chefs only.
func (r *Registry) StakeFrom(caller, user altava.Address, ids []uint64) error {
	if err := r.onlyChef(caller); err != nil {
		return err
	}
	return r.stake(user, ids)
}

// UnstakeFrom releases ids of user. Registered chefs only.
func (r *Registry) UnstakeFrom(caller, user altava.Address, ids []uint64) error {
	if err := r.onlyChef(caller); err != nil {
		return err
	}
	return r.unstake(user, ids)
}

func (r *Registry) collectionNFT() (*nft.NFT, error) {
	collection, err := r.collection.Get()
	if err != nil {
		return nil, err
	}
	return nft.New(r.env, collection), nil
}

// checkOwned dedups ids and verifies user holds every one of them.
func (r *Registry) checkOwned(coll *nft.NFT, user altava.Address, ids []uint64) ([]uint64, error) {
	if len(ids) == 0 {
		return nil, reverts.New(reverts.InvalidInput, "Empty array")
	}
	unique := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if slices.Contains(unique, id) {
			continue
		}
		owner, err := coll.OwnerOf(id)
		if err != nil {
			return nil, err
		}
		if owner != user {
			return nil, reverts.New(reverts.NotOwner, "You are not owner")
		}
		unique = append(unique, id)
	}
	return unique, nil
}

// pruned loads the pledged ids of user and swap-removes those user no longer holds.
func (r *Registry) pruned(coll *nft.NFT, user altava.Address) ([]uint64, error) {
	ids, err := r.staked.Get(user)
	if err != nil {
		return nil, err
	}
	for i := 0; i < len(ids); {
		owner, err := coll.OwnerOf(ids[i])
		if err != nil && !reverts.IsRevertErr(err) {
			return nil, err
		}
		if owner == user {
			i++
			continue
		}
		ids[i] = ids[len(ids)-1]
		ids = ids[:len(ids)-1]
	}
	return ids, nil
}

func (r *Registry) save(user altava.Address, ids []uint64) error {
	if len(ids) == 0 {
		r.staked.Delete(user)
		return nil
	}
	return r.staked.Set(user, ids)
}

func (r *Registry) stake(user altava.Address, ids []uint64) error {
	coll, err := r.collectionNFT()
	if err != nil {
		return err
	}
	unique, err := r.checkOwned(coll, user, ids)
	if err != nil {
		return err
	}
	current, err := r.pruned(coll, user)
	if err != nil {
		return err
	}
	for _, id := range unique {
		if !slices.Contains(current, id) {
			current = append(current, id)
		}
	}
	if len(current) > altava.MaxRegisterLimit {
		return reverts.New(reverts.CapacityExceeded, "Overflow max registration limit")
	}
	if err := r.save(user, current); err != nil {
		return err
	}
	r.env.Log(r.addr, "CollateralStaked", []altava.Bytes32{xenv.AddressTopic(user)},
		map[string]any{"ids": unique, "count": len(current)})
	logger.Debug("collateral staked", "user", user, "ids", unique, "count", len(current))
	return nil
}

func (r *Registry) unstake(user altava.Address, ids []uint64) error {
	coll, err := r.collectionNFT()
	if err != nil {
		return err
	}
	unique, err := r.checkOwned(coll, user, ids)
	if err != nil {
		return err
	}
	current, err := r.pruned(coll, user)
	if err != nil {
		return err
	}
	for _, id := range unique {
		i := slices.Index(current, id)
		if i < 0 {
			return reverts.New(reverts.NotStaked, "Not staked yet")
		}
		current[i] = current[len(current)-1]
		current = current[:len(current)-1]
	}
	if err := r.save(user, current); err != nil {
		return err
	}
	r.env.Log(r.addr, "CollateralUnstaked", []altava.Bytes32{xenv.AddressTopic(user)},
		map[string]any{"ids": unique, "count": len(current)})
	logger.Debug("collateral unstaked", "user", user, "ids", unique, "count", len(current))
	return nil
}

// StakedIDs returns the pledged ids user still holds, in pledge order.
func (r *Registry) StakedIDs(user altava.Address) ([]uint64, error) {
	coll, err := r.collectionNFT()
	if err != nil {
		return nil, err
	}
	ids, err := r.staked.Get(user)
	if err != nil {
		return nil, err
	}
	live := make([]uint64, 0, len(ids))
	for _, id := range ids {
		owner, err := coll.OwnerOf(id)
		if err != nil && !reverts.IsRevertErr(err) {
			return nil, err
		}
		if owner == user {
			live = append(live, id)
		}
	}
	return live, nil
}

// StakedCount returns how many pledged ids user still holds.
func (r *Registry) StakedCount(user altava.Address) (uint64, error) {
	ids, err := r.StakedIDs(user)
	if err != nil {
		return 0, err
	}
	return uint64(len(ids)), nil
}
