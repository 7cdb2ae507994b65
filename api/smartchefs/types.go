// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package smartchefs

import (
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"

	"github.com/0xdhu/ALTAVA-staking-contract/altava"
	"github.com/0xdhu/ALTAVA-staking-contract/api/utils"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/smartchef"
)

type DeployRequest struct {
	ID                string                `json:"id"`
	RewardLabel       string                `json:"rewardLabel"`
	StakedToken       altava.Address        `json:"stakedToken"`
	RewardToken       altava.Address        `json:"rewardToken"`
	RewardPerBlock    *math.HexOrDecimal256 `json:"rewardPerBlock"`
	StartBlock        uint64                `json:"startBlock"`
	EndBlock          uint64                `json:"endBlock"`
	Airdrop           bool                  `json:"airdrop"`
	BoosterController *altava.Address       `json:"boosterController"`
}

type Deployed struct {
	Address altava.Address `json:"address"`
	*utils.Receipt
}

type Pool struct {
	AccTokenPerShare *math.HexOrDecimal256 `json:"accTokenPerShare"`
	LastRewardBlock  uint64                `json:"lastRewardBlock"`
	RewardPerBlock   *math.HexOrDecimal256 `json:"rewardPerBlock"`
	TotalLocked      *math.HexOrDecimal256 `json:"totalLocked"`
	StartBlock       uint64                `json:"startBlock"`
	EndBlock         uint64                `json:"endBlock"`
	PrecisionFactor  *math.HexOrDecimal256 `json:"precisionFactor"`
}

type Chef struct {
	Address           altava.Address `json:"address"`
	ID                string         `json:"id"`
	RewardLabel       string         `json:"rewardLabel"`
	StakedToken       altava.Address `json:"stakedToken"`
	RewardToken       altava.Address `json:"rewardToken"`
	Registry          altava.Address `json:"registry"`
	BoosterController altava.Address `json:"boosterController"`
	Factory           altava.Address `json:"factory"`
	Owner             altava.Address `json:"owner"`
	Airdrop           bool           `json:"airdrop"`
	Paused            bool           `json:"paused"`
	Pool              Pool           `json:"pool"`
}

func convertChef(addr, owner altava.Address, cfg *smartchef.Config) *Chef {
	return &Chef{
		Address:           addr,
		ID:                cfg.ID,
		RewardLabel:       cfg.RewardLabel,
		StakedToken:       cfg.StakedToken,
		RewardToken:       cfg.RewardToken,
		Registry:          cfg.Registry,
		BoosterController: cfg.BoosterController,
		Factory:           cfg.Factory,
		Owner:             owner,
		Airdrop:           cfg.Airdrop,
		Paused:            cfg.Paused,
		Pool: Pool{
			AccTokenPerShare: utils.Amount(cfg.Pool.AccTokenPerShare),
			LastRewardBlock:  cfg.Pool.LastRewardBlock,
			RewardPerBlock:   utils.Amount(cfg.Pool.RewardPerBlock),
			TotalLocked:      utils.Amount(cfg.Pool.TotalLocked),
			StartBlock:       cfg.Pool.StartBlock,
			EndBlock:         cfg.Pool.EndBlock,
			PrecisionFactor:  utils.Amount(cfg.Pool.PrecisionFactor),
		},
	}
}

// User is the position of a user together with its live figures.
type User struct {
	LockedAmount  *math.HexOrDecimal256 `json:"lockedAmount"`
	LockStartTime uint64                `json:"lockStartTime"`
	LockEndTime   uint64                `json:"lockEndTime"`
	Locked        bool                  `json:"locked"`
	RewardDebt    *math.HexOrDecimal256 `json:"rewardDebt"`
	Rewards       *math.HexOrDecimal256 `json:"rewards"`
	BoosterValue  uint64                `json:"boosterValue"`
	Pending       *math.HexOrDecimal256 `json:"pending"`
	LiveBooster   uint64                `json:"liveBooster"`
}

type StakeRequest struct {
	Amount   *math.HexOrDecimal256 `json:"amount"`
	Duration uint64                `json:"duration"`
}

type UnlockRequest struct {
	Receiver string `json:"receiver"`
}

type IDsRequest struct {
	IDs []uint64 `json:"ids"`
}

type AmountRequest struct {
	Amount *math.HexOrDecimal256 `json:"amount"`
}

type BlocksRequest struct {
	StartBlock uint64 `json:"startBlock"`
	EndBlock   uint64 `json:"endBlock"`
}

type PauseRequest struct {
	Paused bool `json:"paused"`
}

type AddressRequest struct {
	Address altava.Address `json:"address"`
}

func (r *StakeRequest) validate() error {
	if r.Amount == nil {
		return errors.New("amount: required")
	}
	return nil
}

func (r *AmountRequest) validate() error {
	if r.Amount == nil {
		return errors.New("amount: required")
	}
	return nil
}
