// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token implements the fungible token ledger used for staking and rewards.
package token

import (
	"math/big"

	"github.com/0xdhu/ALTAVA-staking-contract/altava"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/access"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/reverts"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/solidity"
	"github.com/0xdhu/ALTAVA-staking-contract/log"
	"github.com/0xdhu/ALTAVA-staking-contract/xenv"
)

var logger = log.WithContext("pkg", "token")

var (
	slotMeta        = solidity.Slot("token.meta")
	slotTotalSupply = solidity.Slot("token.totalSupply")
	slotBalances    = solidity.Slot("token.balances")
	slotAllowances  = solidity.Slot("token.allowances")
)

// Meta describes a token.
type Meta struct {
	Name     string
	Symbol   string
	Decimals uint8
}

type allowanceKey struct {
	owner, spender altava.Address
}

func (k allowanceKey) Bytes() []byte {
	return append(append(make([]byte, 0, 2*altava.AddressLength), k.owner[:]...), k.spender[:]...)
}

// Token is a fungible token living at a fixed address.
type Token struct {
	env  *xenv.Environment
	addr altava.Address
	*access.Ownable
	meta        *solidity.Raw[*Meta]
	totalSupply *solidity.Uint256
	balances    *solidity.Mapping[altava.Address, *big.Int]
	allowances  *solidity.Mapping[allowanceKey, *big.Int]
}

// New binds the token at addr.
func New(env *xenv.Environment, addr altava.Address) *Token {
	ctx := solidity.NewContext(addr, env.State())
	return &Token{
		env:         env,
		addr:        addr,
		Ownable:     access.NewOwnable(env, addr),
		meta:        solidity.NewRaw[*Meta](ctx, slotMeta),
		totalSupply: solidity.NewUint256(ctx, slotTotalSupply),
		balances:    solidity.NewMapping[altava.Address, *big.Int](ctx, slotBalances),
		allowances:  solidity.NewMapping[allowanceKey, *big.Int](ctx, slotAllowances),
	}
}

func (t *Token) Address() altava.Address { return t.addr }

// Init creates the token. It can only run once.
func (t *Token) Init(owner altava.Address, meta Meta) error {
	if meta.Symbol == "" {
		return reverts.New(reverts.InvalidInput, "ERC20: empty symbol")
	}
	if prev, err := t.meta.Get(); err != nil {
		return err
	} else if prev.Symbol != "" {
		return reverts.New(reverts.AlreadyInitialized, "ERC20: already initialized")
	}
	if err := t.meta.Set(&meta); err != nil {
		return err
	}
	return t.Ownable.Init(owner)
}

func (t *Token) Meta() (*Meta, error) {
	return t.meta.Get()
}

func (t *Token) Decimals() (uint8, error) {
	meta, err := t.meta.Get()
	if err != nil {
		return 0, err
	}
	return meta.Decimals, nil
}

func (t *Token) TotalSupply() (*big.Int, error) {
	return t.totalSupply.Get()
}

func (t *Token) BalanceOf(addr altava.Address) (*big.Int, error) {
	return t.balances.Get(addr)
}

func (t *Token) Allowance(owner, spender altava.Address) (*big.Int, error) {
	return t.allowances.Get(allowanceKey{owner, spender})
}

func (t *Token) setBalance(addr altava.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		t.balances.Delete(addr)
		return nil
	}
	return t.balances.Set(addr, amount)
}

// Approve sets the amount spender may move out of owner's balance.
func (t *Token) Approve(owner, spender altava.Address, amount *big.Int) error {
	if spender.IsZero() {
		return reverts.New(reverts.ZeroAddress, "ERC20: approve to the zero address")
	}
	if amount.Sign() < 0 {
		return reverts.New(reverts.InvalidInput, "ERC20: negative amount")
	}
	if err := t.allowances.Set(allowanceKey{owner, spender}, amount); err != nil {
		return err
	}
	t.env.Log(t.addr, "Approval",
		[]altava.Bytes32{xenv.AddressTopic(owner), xenv.AddressTopic(spender)},
		map[string]any{"value": amount.String()})
	return nil
}

// Transfer moves amount from one balance to another.
func (t *Token) Transfer(from, to altava.Address, amount *big.Int) error {
	if to.IsZero() {
		return reverts.New(reverts.ZeroAddress, "ERC20: transfer to the zero address")
	}
	if amount.Sign() < 0 {
		return reverts.New(reverts.InvalidInput, "ERC20: negative amount")
	}
	fromBal, err := t.balances.Get(from)
	if err != nil {
		return err
	}
	if fromBal.Cmp(amount) < 0 {
		return reverts.New(reverts.InsufficientAllowanceOrBalance, "ERC20: transfer amount exceeds balance")
	}
	if err := t.setBalance(from, fromBal.Sub(fromBal, amount)); err != nil {
		return err
	}
	toBal, err := t.balances.Get(to)
	if err != nil {
		return err
	}
	if err := t.setBalance(to, toBal.Add(toBal, amount)); err != nil {
		return err
	}
	t.emitTransfer(from, to, amount)
	return nil
}

// TransferFrom moves amount on behalf of from, consuming spender's allowance.
func (t *Token) TransferFrom(spender, from, to altava.Address, amount *big.Int) error {
	allowance, err := t.Allowance(from, spender)
	if err != nil {
		return err
	}
	if allowance.Cmp(amount) < 0 {
		return reverts.New(reverts.InsufficientAllowanceOrBalance, "ERC20: insufficient allowance")
	}
	if err := t.allowances.Set(allowanceKey{from, spender}, allowance.Sub(allowance, amount)); err != nil {
		return err
	}
	return t.Transfer(from, to, amount)
}

// Mint creates amount new tokens for to. Owner only.
func (t *Token) Mint(caller, to altava.Address, amount *big.Int) error {
	if err := t.OnlyOwner(caller); err != nil {
		return err
	}
	if to.IsZero() {
		return reverts.New(reverts.ZeroAddress, "ERC20: mint to the zero address")
	}
	if amount.Sign() <= 0 {
		return reverts.New(reverts.InvalidInput, "ERC20: mint amount is zero")
	}
	if err := t.totalSupply.Add(amount); err != nil {
		return err
	}
	bal, err := t.balances.Get(to)
	if err != nil {
		return err
	}
	if err := t.setBalance(to, bal.Add(bal, amount)); err != nil {
		return err
	}
	t.emitTransfer(altava.Address{}, to, amount)
	logger.Debug("minted", "token", t.addr, "to", to, "amount", amount)
	return nil
}

func (t *Token) emitTransfer(from, to altava.Address, amount *big.Int) {
	t.env.Log(t.addr, "Transfer",
		[]altava.Bytes32{xenv.AddressTopic(from), xenv.AddressTopic(to)},
		map[string]any{"value": amount.String()})
	t.env.Transfer(t.addr, from, to, amount, false)
}
