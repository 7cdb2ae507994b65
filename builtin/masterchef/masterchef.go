// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package masterchef

import (
	"math/big"

	"github.com/0xdhu/ALTAVA-staking-contract/altava"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/reverts"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/smartchef"
	"github.com/0xdhu/ALTAVA-staking-contract/xenv"
)

// DeployParams describes a SmartChef to deploy.
type DeployParams struct {
	ID                string
	RewardLabel       string
	StakedToken       altava.Address
	RewardToken       altava.Address
	RewardPerBlock    *big.Int
	StartBlock        uint64
	EndBlock          uint64
	Airdrop           bool
	BoosterController altava.Address
}

// MasterChef deploys SmartChefs.
type MasterChef struct {
	factory
}

func New(env *xenv.Environment, addr altava.Address) *MasterChef {
	return &MasterChef{newFactory(env, addr, "masterchef")}
}

// Init binds the factory to the collateral registry.
func (m *MasterChef) Init(owner, nftStaking altava.Address) error {
	return m.init(owner, nftStaking)
}

// Deploy creates a SmartChef owned by caller.
func (m *MasterChef) Deploy(caller altava.Address, p *DeployParams) (altava.Address, error) {
	if err := m.OnlyOwner(caller); err != nil {
		return altava.Address{}, err
	}
	if p.ID == "" || p.RewardLabel == "" {
		return altava.Address{}, reverts.New(reverts.InvalidInput, "Cannot be zero address")
	}
	if p.StakedToken.IsZero() || p.RewardToken.IsZero() {
		return altava.Address{}, reverts.New(reverts.ZeroAddress, "Cannot be zero address")
	}
	addr, registry, err := m.next()
	if err != nil {
		return altava.Address{}, err
	}
	chef := smartchef.New(m.env, addr)
	if err := chef.Initialize(m.addr, &smartchef.Params{
		ID:                p.ID,
		RewardLabel:       p.RewardLabel,
		StakedToken:       p.StakedToken,
		RewardToken:       p.RewardToken,
		RewardPerBlock:    p.RewardPerBlock,
		StartBlock:        p.StartBlock,
		EndBlock:          p.EndBlock,
		Admin:             caller,
		Registry:          registry.Address(),
		Airdrop:           p.Airdrop,
		BoosterController: p.BoosterController,
	}); err != nil {
		return altava.Address{}, err
	}
	m.env.Log(m.addr, "ChefDeployed", []altava.Bytes32{xenv.AddressTopic(addr)}, map[string]any{
		"id":          p.ID,
		"rewardLabel": p.RewardLabel,
		"stakedToken": p.StakedToken,
		"rewardToken": p.RewardToken,
		"airdrop":     p.Airdrop,
	})
	logger.Info("smartchef deployed", "id", p.ID, "chef", addr)
	return addr, nil
}
