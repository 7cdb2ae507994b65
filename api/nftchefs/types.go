// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package nftchefs

import (
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"

	"github.com/0xdhu/ALTAVA-staking-contract/altava"
	"github.com/0xdhu/ALTAVA-staking-contract/api/utils"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/booster"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/nftchef"
)

type DeployRequest struct {
	ID        string         `json:"id"`
	RewardNFT altava.Address `json:"rewardNFT"`
	Boosters  []uint64       `json:"boosters"`
}

type Deployed struct {
	Address altava.Address `json:"address"`
	*utils.Receipt
}

type Chef struct {
	Address     altava.Address `json:"address"`
	ID          string         `json:"id"`
	StakedToken altava.Address `json:"stakedToken"`
	RewardNFT   altava.Address `json:"rewardNFT"`
	Registry    altava.Address `json:"registry"`
	Factory     altava.Address `json:"factory"`
	Owner       altava.Address `json:"owner"`
	Paused      bool           `json:"paused"`
	Boosters    []booster.Pair `json:"boosters"`
}

type Tier struct {
	Period             uint64                `json:"period"`
	RequiredLockAmount *math.HexOrDecimal256 `json:"requiredLockAmount"`
	RewardUnits        uint64                `json:"rewardUnits"`
	IsLive             bool                  `json:"isLive"`
}

func convertTier(period uint64, c *nftchef.LockConfig) *Tier {
	return &Tier{period, utils.Amount(c.RequiredLockAmount), c.RewardUnits, c.IsLive}
}

type Position struct {
	Index        uint64                `json:"index"`
	LockedAmount *math.HexOrDecimal256 `json:"lockedAmount"`
	TierAmount   *math.HexOrDecimal256 `json:"tierAmount"`
	LockDuration uint64                `json:"lockDuration"`
	LockedAt     uint64                `json:"lockedAt"`
	UnlockAt     uint64                `json:"unlockAt"`
	RewardAmount uint64                `json:"rewardAmount"`
	BoosterValue uint64                `json:"boosterValue"`
	Unstaked     bool                  `json:"unstaked"`
}

func convertPosition(i uint64, p *nftchef.Position) *Position {
	return &Position{
		Index:        i,
		LockedAmount: utils.Amount(p.LockedAmount),
		TierAmount:   utils.Amount(p.TierAmount),
		LockDuration: p.LockDuration,
		LockedAt:     p.LockedAt,
		UnlockAt:     p.UnlockAt,
		RewardAmount: p.RewardAmount,
		BoosterValue: p.BoosterValue,
		Unstaked:     p.Unstaked,
	}
}

type User struct {
	Index       uint64                `json:"index"`
	Current     *Position             `json:"current"`
	Penalty     *math.HexOrDecimal256 `json:"penalty"`
	LiveBooster uint64                `json:"liveBooster"`
}

type Required struct {
	Period uint64                `json:"period"`
	Amount *math.HexOrDecimal256 `json:"amount"`
}

type TierRequest struct {
	RequiredLockAmount *math.HexOrDecimal256 `json:"requiredLockAmount"`
	RewardUnits        uint64                `json:"rewardUnits"`
	IsLive             bool                  `json:"isLive"`
}

func (r *TierRequest) validate() error {
	if r.RequiredLockAmount == nil {
		return errors.New("requiredLockAmount: required")
	}
	return nil
}

type StakeRequest struct {
	Period uint64 `json:"period"`
}

type UnstakeRequest struct {
	Receiver string `json:"receiver"`
}

type IDsRequest struct {
	IDs []uint64 `json:"ids"`
}

type PauseRequest struct {
	Paused bool `json:"paused"`
}

type BoosterRequest struct {
	Key   uint64 `json:"key"`
	Value uint64 `json:"value"`
}
