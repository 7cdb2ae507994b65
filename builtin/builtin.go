// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package builtin binds the singleton contracts living at fixed addresses.
// Chefs and tokens live at addresses assigned at deployment and are bound
// through their own packages.
package builtin

import (
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/booster"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/collateral"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/masterchef"
	"github.com/0xdhu/ALTAVA-staking-contract/xenv"
)

// Builtin contracts binding.
var (
	NFTStaking        = &nftStakingContract{newContract("NFTStaking")}
	MasterChef        = &masterChefContract{newContract("MasterChef")}
	NFTMasterChef     = &nftMasterChefContract{newContract("NFTMasterChef")}
	BoosterController = &boosterControllerContract{newContract("BoosterController")}
)

type (
	nftStakingContract        struct{ *contract }
	masterChefContract        struct{ *contract }
	nftMasterChefContract     struct{ *contract }
	boosterControllerContract struct{ *contract }
)

func (c *nftStakingContract) WithEnv(env *xenv.Environment) *collateral.Registry {
	return collateral.New(env, c.Address)
}

func (c *masterChefContract) WithEnv(env *xenv.Environment) *masterchef.MasterChef {
	return masterchef.New(env, c.Address)
}

func (c *nftMasterChefContract) WithEnv(env *xenv.Environment) *masterchef.NFTMasterChef {
	return masterchef.NewNFT(env, c.Address)
}

func (c *boosterControllerContract) WithEnv(env *xenv.Environment) *booster.Controller {
	return booster.NewController(env, c.Address)
}
