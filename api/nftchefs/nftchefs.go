// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package nftchefs

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/0xdhu/ALTAVA-staking-contract/altava"
	"github.com/0xdhu/ALTAVA-staking-contract/api/utils"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/booster"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/nftchef"
	"github.com/0xdhu/ALTAVA-staking-contract/runtime"
	"github.com/0xdhu/ALTAVA-staking-contract/xenv"
)

type NFTChefs struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *NFTChefs {
	return &NFTChefs{rt}
}

type validator interface {
	validate() error
}

func parseBody(req *http.Request, v any) error {
	if err := utils.ParseJSON(req.Body, v); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if v, ok := v.(validator); ok {
		if err := v.validate(); err != nil {
			return utils.BadRequest(err)
		}
	}
	return nil
}

func (n *NFTChefs) handleGetChefs(w http.ResponseWriter, _ *http.Request) error {
	var chefs []altava.Address
	if err := n.rt.View(func(env *xenv.Environment) (err error) {
		chefs, err = builtin.NFTMasterChef.WithEnv(env).Chefs()
		return
	}); err != nil {
		return err
	}
	if chefs == nil {
		chefs = []altava.Address{}
	}
	return utils.WriteJSON(w, chefs)
}

func (n *NFTChefs) handleDeploy(w http.ResponseWriter, req *http.Request) error {
	caller, err := utils.Caller(req)
	if err != nil {
		return err
	}
	var body DeployRequest
	if err := parseBody(req, &body); err != nil {
		return err
	}
	var addr altava.Address
	receipt, err := n.rt.Execute("nftmasterchef.deploy", caller, func(env *xenv.Environment) (err error) {
		addr, err = builtin.NFTMasterChef.WithEnv(env).Deploy(caller, body.ID, body.RewardNFT, body.Boosters)
		return
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Deployed{addr, utils.ConvertReceipt(receipt)})
}

func (n *NFTChefs) handleGetByReward(w http.ResponseWriter, req *http.Request) error {
	rewardNFT, err := utils.AddressVar(req, "nft")
	if err != nil {
		return err
	}
	var chef altava.Address
	if err := n.rt.View(func(env *xenv.Environment) (err error) {
		chef, err = builtin.NFTMasterChef.WithEnv(env).ChefByRewardNFT(rewardNFT)
		return
	}); err != nil {
		return err
	}
	if chef.IsZero() {
		return utils.HTTPError(errors.New("chef not found"), http.StatusNotFound)
	}
	return utils.WriteJSON(w, utils.M{"address": chef})
}

func (n *NFTChefs) handleGetChef(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "chef")
	if err != nil {
		return err
	}
	var out Chef
	if err := n.rt.View(func(env *xenv.Environment) error {
		chef := nftchef.New(env, addr)
		info, err := chef.Info()
		if err != nil {
			return err
		}
		owner, err := chef.Owner()
		if err != nil {
			return err
		}
		pairs, err := chef.BoosterPairs()
		if err != nil {
			return err
		}
		if pairs == nil {
			pairs = []booster.Pair{}
		}
		out = Chef{
			Address:     addr,
			ID:          info.ID,
			StakedToken: info.StakedToken,
			RewardNFT:   info.RewardNFT,
			Registry:    info.Registry,
			Factory:     info.Factory,
			Owner:       owner,
			Paused:      info.Paused,
			Boosters:    pairs,
		}
		return nil
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, &out)
}

func (n *NFTChefs) handleGetTiers(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "chef")
	if err != nil {
		return err
	}
	tiers := []*Tier{}
	if err := n.rt.View(func(env *xenv.Environment) error {
		chef := nftchef.New(env, addr)
		periods, err := chef.Periods()
		if err != nil {
			return err
		}
		for _, period := range periods {
			cfg, err := chef.Config(period)
			if err != nil {
				return err
			}
			tiers = append(tiers, convertTier(period, cfg))
		}
		return nil
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, tiers)
}

func (n *NFTChefs) handleGetUser(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "chef")
	if err != nil {
		return err
	}
	user, err := utils.AddressVar(req, "user")
	if err != nil {
		return err
	}
	var out User
	if err := n.rt.View(func(env *xenv.Environment) error {
		chef := nftchef.New(env, addr)
		index, err := chef.UserStakeIndex(user)
		if err != nil {
			return err
		}
		current, err := chef.StakerInfo(user, index)
		if err != nil {
			return err
		}
		penalty, err := chef.PenaltyAmount(user)
		if err != nil {
			return err
		}
		live, err := chef.StakerBoosterValue(user)
		if err != nil {
			return err
		}
		out = User{index, convertPosition(index, current), utils.Amount(penalty), live}
		return nil
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, &out)
}

func (n *NFTChefs) handleGetPosition(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "chef")
	if err != nil {
		return err
	}
	user, err := utils.AddressVar(req, "user")
	if err != nil {
		return err
	}
	i, err := utils.Uint64Var(req, "index")
	if err != nil {
		return err
	}
	var out *Position
	if err := n.rt.View(func(env *xenv.Environment) error {
		pos, err := nftchef.New(env, addr).StakerInfo(user, i)
		if err != nil {
			return err
		}
		out = convertPosition(i, pos)
		return nil
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, out)
}

func (n *NFTChefs) handleGetRequired(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "chef")
	if err != nil {
		return err
	}
	user, err := utils.AddressVar(req, "user")
	if err != nil {
		return err
	}
	period, err := utils.Uint64Var(req, "period")
	if err != nil {
		return err
	}
	out := Required{Period: period}
	if err := n.rt.View(func(env *xenv.Environment) error {
		amount, err := nftchef.New(env, addr).RequiredAmount(user, period)
		if err != nil {
			return err
		}
		out.Amount = utils.Amount(amount)
		return nil
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, &out)
}

// call runs fn against the chef addressed by the request as the request caller.
func (n *NFTChefs) call(w http.ResponseWriter, req *http.Request, method string, body any, fn func(chef *nftchef.NFTChef, caller altava.Address) error) error {
	addr, err := utils.AddressVar(req, "chef")
	if err != nil {
		return err
	}
	caller, err := utils.Caller(req)
	if err != nil {
		return err
	}
	if body != nil {
		if err := parseBody(req, body); err != nil {
			return err
		}
	}
	return utils.Execute(w, n.rt, method, caller, func(env *xenv.Environment) error {
		return fn(nftchef.New(env, addr), caller)
	})
}

func (n *NFTChefs) handleSetTier(w http.ResponseWriter, req *http.Request) error {
	period, err := utils.Uint64Var(req, "period")
	if err != nil {
		return err
	}
	var body TierRequest
	return n.call(w, req, "nftchef.setRequiredLockAmount", &body, func(chef *nftchef.NFTChef, caller altava.Address) error {
		return chef.SetRequiredLockAmount(caller, period, utils.BigInt(body.RequiredLockAmount), body.RewardUnits, body.IsLive)
	})
}

func (n *NFTChefs) handleStake(w http.ResponseWriter, req *http.Request) error {
	var body StakeRequest
	return n.call(w, req, "nftchef.stake", &body, func(chef *nftchef.NFTChef, caller altava.Address) error {
		return chef.Stake(caller, body.Period)
	})
}

func (n *NFTChefs) handleUnstake(w http.ResponseWriter, req *http.Request) error {
	var body UnstakeRequest
	return n.call(w, req, "nftchef.unstake", &body, func(chef *nftchef.NFTChef, caller altava.Address) error {
		return chef.Unstake(caller, body.Receiver)
	})
}

func (n *NFTChefs) handleStakeCollateral(w http.ResponseWriter, req *http.Request) error {
	var body IDsRequest
	return n.call(w, req, "nftchef.stakeCollateral", &body, func(chef *nftchef.NFTChef, caller altava.Address) error {
		return chef.StakeCollateral(caller, body.IDs)
	})
}

func (n *NFTChefs) handleUnstakeCollateral(w http.ResponseWriter, req *http.Request) error {
	var body IDsRequest
	return n.call(w, req, "nftchef.unstakeCollateral", &body, func(chef *nftchef.NFTChef, caller altava.Address) error {
		return chef.UnstakeCollateral(caller, body.IDs)
	})
}

func (n *NFTChefs) handleSetPause(w http.ResponseWriter, req *http.Request) error {
	var body PauseRequest
	return n.call(w, req, "nftchef.setPause", &body, func(chef *nftchef.NFTChef, caller altava.Address) error {
		return chef.SetPause(caller, body.Paused)
	})
}

func (n *NFTChefs) handleSetBooster(w http.ResponseWriter, req *http.Request) error {
	var body BoosterRequest
	return n.call(w, req, "nftchef.setBoosterValue", &body, func(chef *nftchef.NFTChef, caller altava.Address) error {
		return chef.SetBoosterValue(caller, body.Key, body.Value)
	})
}

func (n *NFTChefs) handleRemoveBooster(w http.ResponseWriter, req *http.Request) error {
	key, err := utils.Uint64Var(req, "key")
	if err != nil {
		return err
	}
	return n.call(w, req, "nftchef.removeBoosterValue", nil, func(chef *nftchef.NFTChef, caller altava.Address) error {
		return chef.RemoveBoosterValue(caller, key)
	})
}

func (n *NFTChefs) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("nftchefs_get_chefs").
		HandlerFunc(utils.WrapHandlerFunc(n.handleGetChefs))
	sub.Path("").
		Methods(http.MethodPost).
		Name("nftchefs_deploy").
		HandlerFunc(utils.WrapHandlerFunc(n.handleDeploy))
	sub.Path("/by-reward/{nft}").
		Methods(http.MethodGet).
		Name("nftchefs_get_by_reward").
		HandlerFunc(utils.WrapHandlerFunc(n.handleGetByReward))
	sub.Path("/{chef}").
		Methods(http.MethodGet).
		Name("nftchefs_get_chef").
		HandlerFunc(utils.WrapHandlerFunc(n.handleGetChef))
	sub.Path("/{chef}/tiers").
		Methods(http.MethodGet).
		Name("nftchefs_get_tiers").
		HandlerFunc(utils.WrapHandlerFunc(n.handleGetTiers))
	sub.Path("/{chef}/tiers/{period}").
		Methods(http.MethodPut).
		Name("nftchefs_set_tier").
		HandlerFunc(utils.WrapHandlerFunc(n.handleSetTier))
	sub.Path("/{chef}/users/{user}").
		Methods(http.MethodGet).
		Name("nftchefs_get_user").
		HandlerFunc(utils.WrapHandlerFunc(n.handleGetUser))
	sub.Path("/{chef}/users/{user}/positions/{index}").
		Methods(http.MethodGet).
		Name("nftchefs_get_position").
		HandlerFunc(utils.WrapHandlerFunc(n.handleGetPosition))
	sub.Path("/{chef}/users/{user}/required/{period}").
		Methods(http.MethodGet).
		Name("nftchefs_get_required").
		HandlerFunc(utils.WrapHandlerFunc(n.handleGetRequired))
	sub.Path("/{chef}/boosters").
		Methods(http.MethodPut).
		Name("nftchefs_set_booster").
		HandlerFunc(utils.WrapHandlerFunc(n.handleSetBooster))
	sub.Path("/{chef}/boosters/{key}").
		Methods(http.MethodDelete).
		Name("nftchefs_remove_booster").
		HandlerFunc(utils.WrapHandlerFunc(n.handleRemoveBooster))

	for _, r := range []struct {
		path    string
		name    string
		handler utils.HandlerFunc
	}{
		{"/{chef}/stake", "nftchefs_stake", n.handleStake},
		{"/{chef}/unstake", "nftchefs_unstake", n.handleUnstake},
		{"/{chef}/collateral/stake", "nftchefs_stake_collateral", n.handleStakeCollateral},
		{"/{chef}/collateral/unstake", "nftchefs_unstake_collateral", n.handleUnstakeCollateral},
		{"/{chef}/pause", "nftchefs_set_pause", n.handleSetPause},
	} {
		sub.Path(r.path).
			Methods(http.MethodPost).
			Name(r.name).
			HandlerFunc(utils.WrapHandlerFunc(r.handler))
	}
}
