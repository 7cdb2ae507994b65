// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package access provides the owner gate and pause flag shared by the built-in contracts.
package access

import (
	"github.com/0xdhu/ALTAVA-staking-contract/altava"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/reverts"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/solidity"
	"github.com/0xdhu/ALTAVA-staking-contract/xenv"
)

var (
	slotOwner  = solidity.Slot("access.owner")
	slotPaused = solidity.Slot("access.paused")
)

// Ownable guards a contract behind a single owner address.
type Ownable struct {
	env   *xenv.Environment
	addr  altava.Address
	owner *solidity.Address
}

func NewOwnable(env *xenv.Environment, addr altava.Address) *Ownable {
	ctx := solidity.NewContext(addr, env.State())
	return &Ownable{env: env, addr: addr, owner: solidity.NewAddress(ctx, slotOwner)}
}

func (o *Ownable) Owner() (altava.Address, error) {
	return o.owner.Get()
}

// OnlyOwner fails with NotOwner unless caller is the owner.
func (o *Ownable) OnlyOwner(caller altava.Address) error {
	owner, err := o.owner.Get()
	if err != nil {
		return err
	}
	if owner.IsZero() || owner != caller {
		return reverts.New(reverts.NotOwner, "Ownable: caller is not the owner")
	}
	return nil
}

// Init sets the first owner of a freshly created contract.
func (o *Ownable) Init(owner altava.Address) error {
	if owner.IsZero() {
		return reverts.New(reverts.ZeroAddress, "Ownable: owner is the zero address")
	}
	o.setOwner(altava.Address{}, owner)
	return nil
}

func (o *Ownable) TransferOwnership(caller, newOwner altava.Address) error {
	if err := o.OnlyOwner(caller); err != nil {
		return err
	}
	if newOwner.IsZero() {
		return reverts.New(reverts.ZeroAddress, "Ownable: new owner is the zero address")
	}
	o.setOwner(caller, newOwner)
	return nil
}

func (o *Ownable) setOwner(prev, next altava.Address) {
	o.owner.Set(next)
	o.env.Log(o.addr, "OwnershipTransferred",
		[]altava.Bytes32{xenv.AddressTopic(prev), xenv.AddressTopic(next)},
		map[string]any{"previousOwner": prev, "newOwner": next})
}

// Pausable is an owner toggled stop switch.
type Pausable struct {
	env    *xenv.Environment
	addr   altava.Address
	paused *solidity.Raw[bool]
}

func NewPausable(env *xenv.Environment, addr altava.Address) *Pausable {
	ctx := solidity.NewContext(addr, env.State())
	return &Pausable{env: env, addr: addr, paused: solidity.NewRaw[bool](ctx, slotPaused)}
}

func (p *Pausable) Paused() (bool, error) {
	return p.paused.Get()
}

// WhenNotPaused fails with Paused while the flag is set.
func (p *Pausable) WhenNotPaused() error {
	paused, err := p.paused.Get()
	if err != nil {
		return err
	}
	if paused {
		return reverts.New(reverts.Paused, "Pausable: paused")
	}
	return nil
}

// SetPaused flips the flag. by is recorded in the event.
func (p *Pausable) SetPaused(by altava.Address, paused bool) error {
	if !paused {
		p.paused.Clear()
	} else if err := p.paused.Set(true); err != nil {
		return err
	}
	name := "Unpaused"
	if paused {
		name = "Paused"
	}
	p.env.Log(p.addr, name, nil, map[string]any{"account": by})
	return nil
}
