// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package nft implements the non-fungible token ledger used as staking collateral.
package nft

import (
	"math/big"

	"github.com/0xdhu/ALTAVA-staking-contract/altava"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/access"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/reverts"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/solidity"
	"github.com/0xdhu/ALTAVA-staking-contract/log"
	"github.com/0xdhu/ALTAVA-staking-contract/xenv"
)

var logger = log.WithContext("pkg", "nft")

var (
	slotMeta      = solidity.Slot("nft.meta")
	slotSupply    = solidity.Slot("nft.totalSupply")
	slotOwners    = solidity.Slot("nft.owners")
	slotBalances  = solidity.Slot("nft.balances")
	slotApprovals = solidity.Slot("nft.approvals")
)

// Meta describes a collection.
type Meta struct {
	Name   string
	Symbol string
}

// NFT is a collection living at a fixed address.
type NFT struct {
	env  *xenv.Environment
	addr altava.Address
	*access.Ownable
	meta      *solidity.Raw[*Meta]
	supply    *solidity.Raw[uint64]
	owners    *solidity.Mapping[solidity.Uint64Key, altava.Address]
	balances  *solidity.Mapping[altava.Address, uint64]
	approvals *solidity.Mapping[solidity.Uint64Key, altava.Address]
}

// New binds the collection at addr.
func New(env *xenv.Environment, addr altava.Address) *NFT {
	ctx := solidity.NewContext(addr, env.State())
	return &NFT{
		env:       env,
		addr:      addr,
		Ownable:   access.NewOwnable(env, addr),
		meta:      solidity.NewRaw[*Meta](ctx, slotMeta),
		supply:    solidity.NewRaw[uint64](ctx, slotSupply),
		owners:    solidity.NewMapping[solidity.Uint64Key, altava.Address](ctx, slotOwners),
		balances:  solidity.NewMapping[altava.Address, uint64](ctx, slotBalances),
		approvals: solidity.NewMapping[solidity.Uint64Key, altava.Address](ctx, slotApprovals),
	}
}

func (n *NFT) Address() altava.Address { return n.addr }

// Init creates the collection. It can only run once.
func (n *NFT) Init(owner altava.Address, meta Meta) error {
	if meta.Symbol == "" {
		return reverts.New(reverts.InvalidInput, "ERC721: empty symbol")
	}
	if prev, err := n.meta.Get(); err != nil {
		return err
	} else if prev.Symbol != "" {
		return reverts.New(reverts.AlreadyInitialized, "ERC721: already initialized")
	}
	if err := n.meta.Set(&meta); err != nil {
		return err
	}
	return n.Ownable.Init(owner)
}

func (n *NFT) Meta() (*Meta, error) {
	return n.meta.Get()
}

func (n *NFT) TotalSupply() (uint64, error) {
	return n.supply.Get()
}

// OwnerOf fails with NotFound for an id that was never minted.
func (n *NFT) OwnerOf(id uint64) (altava.Address, error) {
	owner, err := n.owners.Get(solidity.Uint64Key(id))
	if err != nil {
		return altava.Address{}, err
	}
	if owner.IsZero() {
		return altava.Address{}, reverts.New(reverts.NotFound, "ERC721: invalid token ID")
	}
	return owner, nil
}

func (n *NFT) BalanceOf(owner altava.Address) (uint64, error) {
	if owner.IsZero() {
		return 0, reverts.New(reverts.ZeroAddress, "ERC721: address zero is not a valid owner")
	}
	return n.balances.Get(owner)
}

func (n *NFT) GetApproved(id uint64) (altava.Address, error) {
	if _, err := n.OwnerOf(id); err != nil {
		return altava.Address{}, err
	}
	return n.approvals.Get(solidity.Uint64Key(id))
}

// Approve lets to move id once. Only the holder may approve.
func (n *NFT) Approve(caller, to altava.Address, id uint64) error {
	owner, err := n.OwnerOf(id)
	if err != nil {
		return err
	}
	if owner != caller {
		return reverts.New(reverts.NotOwner, "ERC721: approve caller is not token owner")
	}
	if to == owner {
		return reverts.New(reverts.InvalidInput, "ERC721: approval to current owner")
	}
	if err := n.approvals.Set(solidity.Uint64Key(id), to); err != nil {
		return err
	}
	n.env.Log(n.addr, "Approval",
		[]altava.Bytes32{xenv.AddressTopic(owner), xenv.AddressTopic(to)},
		map[string]any{"tokenId": id})
	return nil
}

// TransferFrom moves id from its holder. caller must be the holder or approved.
func (n *NFT) TransferFrom(caller, from, to altava.Address, id uint64) error {
	owner, err := n.OwnerOf(id)
	if err != nil {
		return err
	}
	if owner != from {
		return reverts.New(reverts.NotOwner, "ERC721: transfer from incorrect owner")
	}
	if to.IsZero() {
		return reverts.New(reverts.ZeroAddress, "ERC721: transfer to the zero address")
	}
	if caller != owner {
		approved, err := n.approvals.Get(solidity.Uint64Key(id))
		if err != nil {
			return err
		}
		if approved != caller {
			return reverts.New(reverts.Unauthorized, "ERC721: caller is not token owner or approved")
		}
	}
	n.approvals.Delete(solidity.Uint64Key(id))
	if err := n.addBalance(from, -1); err != nil {
		return err
	}
	if err := n.addBalance(to, 1); err != nil {
		return err
	}
	if err := n.owners.Set(solidity.Uint64Key(id), to); err != nil {
		return err
	}
	n.emitTransfer(from, to, id)
	return nil
}

// Mint creates id for to. Owner only.
func (n *NFT) Mint(caller, to altava.Address, id uint64) error {
	if err := n.OnlyOwner(caller); err != nil {
		return err
	}
	if to.IsZero() {
		return reverts.New(reverts.ZeroAddress, "ERC721: mint to the zero address")
	}
	exists, err := n.owners.Exists(solidity.Uint64Key(id))
	if err != nil {
		return err
	}
	if exists {
		return reverts.New(reverts.AlreadyExists, "ERC721: token already minted")
	}
	if err := n.addBalance(to, 1); err != nil {
		return err
	}
	if err := n.owners.Set(solidity.Uint64Key(id), to); err != nil {
		return err
	}
	supply, err := n.supply.Get()
	if err != nil {
		return err
	}
	if err := n.supply.Set(supply + 1); err != nil {
		return err
	}
	n.emitTransfer(altava.Address{}, to, id)
	logger.Debug("minted", "nft", n.addr, "to", to, "id", id)
	return nil
}

func (n *NFT) addBalance(addr altava.Address, delta int) error {
	bal, err := n.balances.Get(addr)
	if err != nil {
		return err
	}
	if delta < 0 {
		bal--
	} else {
		bal++
	}
	if bal == 0 {
		n.balances.Delete(addr)
		return nil
	}
	return n.balances.Set(addr, bal)
}

func (n *NFT) emitTransfer(from, to altava.Address, id uint64) {
	n.env.Log(n.addr, "Transfer",
		[]altava.Bytes32{xenv.AddressTopic(from), xenv.AddressTopic(to)},
		map[string]any{"tokenId": id})
	n.env.Transfer(n.addr, from, to, new(big.Int).SetUint64(id), true)
}
