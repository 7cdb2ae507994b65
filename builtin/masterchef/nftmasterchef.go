// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package masterchef

import (
	"github.com/0xdhu/ALTAVA-staking-contract/altava"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/nftchef"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/reverts"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/solidity"
	"github.com/0xdhu/ALTAVA-staking-contract/xenv"
)

// NFTMasterChef deploys NFTChefs, at most one per reward NFT.
type NFTMasterChef struct {
	factory
	stakedToken *solidity.Address
	byReward    *solidity.Mapping[altava.Address, altava.Address]
}

func NewNFT(env *xenv.Environment, addr altava.Address) *NFTMasterChef {
	ctx := solidity.NewContext(addr, env.State())
	return &NFTMasterChef{
		factory:     newFactory(env, addr, "nftmasterchef"),
		stakedToken: solidity.NewAddress(ctx, solidity.Slot("nftmasterchef.stakedToken")),
		byReward:    solidity.NewMapping[altava.Address, altava.Address](ctx, solidity.Slot("nftmasterchef.byReward")),
	}
}

// Init binds the factory to the staked token and the collateral registry.
func (m *NFTMasterChef) Init(owner, stakedToken, nftStaking altava.Address) error {
	if stakedToken.IsZero() {
		return reverts.New(reverts.ZeroAddress, "Cannot be zero address")
	}
	if err := m.init(owner, nftStaking); err != nil {
		return err
	}
	m.stakedToken.Set(stakedToken)
	return nil
}

func (m *NFTMasterChef) StakedToken() (altava.Address, error) {
	return m.stakedToken.Get()
}

// ChefByRewardNFT returns the chef rewarding rewardNFT, or the zero address.
func (m *NFTMasterChef) ChefByRewardNFT(rewardNFT altava.Address) (altava.Address, error) {
	return m.byReward.Get(rewardNFT)
}

// Deploy creates an NFTChef owned by caller. boosters are the values of keys 1..n.
func (m *NFTMasterChef) Deploy(caller altava.Address, id string, rewardNFT altava.Address, boosters []uint64) (altava.Address, error) {
	if err := m.OnlyOwner(caller); err != nil {
		return altava.Address{}, err
	}
	if rewardNFT.IsZero() {
		return altava.Address{}, reverts.New(reverts.ZeroAddress, "Cannot be zero address")
	}
	if prev, err := m.byReward.Get(rewardNFT); err != nil {
		return altava.Address{}, err
	} else if !prev.IsZero() {
		return altava.Address{}, reverts.New(reverts.AlreadyExists, "Reward NFT: already deployed")
	}
	stakedToken, err := m.stakedToken.Get()
	if err != nil {
		return altava.Address{}, err
	}
	addr, registry, err := m.next()
	if err != nil {
		return altava.Address{}, err
	}
	chef := nftchef.New(m.env, addr)
	if err := chef.Initialize(m.addr, &nftchef.Params{
		ID:          id,
		StakedToken: stakedToken,
		RewardNFT:   rewardNFT,
		Registry:    registry.Address(),
		Admin:       caller,
		Boosters:    boosters,
	}); err != nil {
		return altava.Address{}, err
	}
	if err := m.byReward.Set(rewardNFT, addr); err != nil {
		return altava.Address{}, err
	}
	m.env.Log(m.addr, "ChefDeployed", []altava.Bytes32{xenv.AddressTopic(addr)}, map[string]any{
		"id":        id,
		"rewardNFT": rewardNFT,
		"boosters":  boosters,
	})
	logger.Info("nftchef deployed", "id", id, "chef", addr)
	return addr, nil
}
