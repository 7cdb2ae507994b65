// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package accrual implements the accumulated-reward-per-share bookkeeping of a chef.
package accrual

import (
	"math/big"

	"github.com/holiman/uint256"

	"github.com/0xdhu/ALTAVA-staking-contract/altava"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/reverts"
)

var errOverflow = reverts.New(reverts.Overflow, "SafeMath: overflow")

// Pool is the reward state shared by every staker of a chef.
type Pool struct {
	AccTokenPerShare *big.Int
	LastRewardBlock  uint64
	RewardPerBlock   *big.Int
	TotalLocked      *big.Int
	StartBlock       uint64
	EndBlock         uint64
	PrecisionFactor  *big.Int
}

// NewPool returns a pool that starts accruing at start.
func NewPool(rewardPerBlock *big.Int, start, end uint64, rewardDecimals uint8) (*Pool, error) {
	pf, err := PrecisionFactor(rewardDecimals)
	if err != nil {
		return nil, err
	}
	return &Pool{
		AccTokenPerShare: new(big.Int),
		LastRewardBlock:  start,
		RewardPerBlock:   new(big.Int).Set(rewardPerBlock),
		TotalLocked:      new(big.Int),
		StartBlock:       start,
		EndBlock:         end,
		PrecisionFactor:  pf,
	}, nil
}

// PrecisionFactor returns 10^(30-decimals).
func PrecisionFactor(decimals uint8) (*big.Int, error) {
	if decimals >= altava.PrecisionDecimals {
		return nil, reverts.New(reverts.InvalidInput, "Must be inferior to 30")
	}
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(altava.PrecisionDecimals-decimals)), nil), nil
}

// Multiplier returns the number of rewarded blocks in [from, to), none past end.
func Multiplier(from, to, end uint64) uint64 {
	switch {
	case to <= end:
		return to - from
	case from >= end:
		return 0
	default:
		return end - from
	}
}

// Update brings the accumulator up to block.
func (p *Pool) Update(block uint64) error {
	if block <= p.LastRewardBlock {
		return nil
	}
	if p.TotalLocked.Sign() == 0 {
		p.LastRewardBlock = block
		return nil
	}
	acc, err := p.accAt(block)
	if err != nil {
		return err
	}
	p.AccTokenPerShare = acc
	p.LastRewardBlock = block
	return nil
}

// accAt computes the accumulator as of block without touching the pool.
func (p *Pool) accAt(block uint64) (*big.Int, error) {
	if block <= p.LastRewardBlock || p.TotalLocked.Sign() == 0 {
		return new(big.Int).Set(p.AccTokenPerShare), nil
	}
	mult := new(big.Int).SetUint64(Multiplier(p.LastRewardBlock, block, p.EndBlock))
	reward, err := Mul(mult, p.RewardPerBlock)
	if err != nil {
		return nil, err
	}
	inc, err := MulDiv(reward, p.PrecisionFactor, p.TotalLocked)
	if err != nil {
		return nil, err
	}
	return Add(p.AccTokenPerShare, inc)
}

// Debt returns amount * acc / precision at the current accumulator.
func (p *Pool) Debt(amount *big.Int) (*big.Int, error) {
	return MulDiv(amount, p.AccTokenPerShare, p.PrecisionFactor)
}

// Pending returns the reward amount earned above debt.
func (p *Pool) Pending(amount, debt *big.Int) (*big.Int, error) {
	accrued, err := p.Debt(amount)
	if err != nil {
		return nil, err
	}
	return clampSub(accrued, debt), nil
}

// PendingAt is Pending as it would be after updating to block.
func (p *Pool) PendingAt(block uint64, amount, debt *big.Int) (*big.Int, error) {
	acc, err := p.accAt(block)
	if err != nil {
		return nil, err
	}
	accrued, err := MulDiv(amount, acc, p.PrecisionFactor)
	if err != nil {
		return nil, err
	}
	return clampSub(accrued, debt), nil
}

func clampSub(a, b *big.Int) *big.Int {
	if a.Cmp(b) <= 0 {
		return new(big.Int)
	}
	return new(big.Int).Sub(a, b)
}

func toU256(x *big.Int) (*uint256.Int, error) {
	if x.Sign() < 0 {
		return nil, errOverflow
	}
	v, overflow := uint256.FromBig(x)
	if overflow {
		return nil, errOverflow
	}
	return v, nil
}

// Mul returns a*b, failing past 256 bits.
func Mul(a, b *big.Int) (*big.Int, error) {
	x, err := toU256(a)
	if err != nil {
		return nil, err
	}
	y, err := toU256(b)
	if err != nil {
		return nil, err
	}
	z, overflow := new(uint256.Int).MulOverflow(x, y)
	if overflow {
		return nil, errOverflow
	}
	return z.ToBig(), nil
}

// Add returns a+b, failing past 256 bits.
func Add(a, b *big.Int) (*big.Int, error) {
	x, err := toU256(a)
	if err != nil {
		return nil, err
	}
	y, err := toU256(b)
	if err != nil {
		return nil, err
	}
	z, overflow := new(uint256.Int).AddOverflow(x, y)
	if overflow {
		return nil, errOverflow
	}
	return z.ToBig(), nil
}

// MulDiv returns a*b/c, with the product checked against 256 bits.
func MulDiv(a, b, c *big.Int) (*big.Int, error) {
	if c.Sign() == 0 {
		return nil, reverts.New(reverts.InvalidInput, "SafeMath: division by zero")
	}
	prod, err := Mul(a, b)
	if err != nil {
		return nil, err
	}
	return prod.Quo(prod, c), nil
}

// ApplyBasisPoints returns amount * bp / 10000.
func ApplyBasisPoints(amount *big.Int, bp uint64) (*big.Int, error) {
	return MulDiv(amount, new(big.Int).SetUint64(bp), altava.BasisPointsBig)
}
