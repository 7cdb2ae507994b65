// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package smartchefs

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/0xdhu/ALTAVA-staking-contract/altava"
	"github.com/0xdhu/ALTAVA-staking-contract/api/utils"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/masterchef"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/smartchef"
	"github.com/0xdhu/ALTAVA-staking-contract/runtime"
	"github.com/0xdhu/ALTAVA-staking-contract/xenv"
)

type SmartChefs struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *SmartChefs {
	return &SmartChefs{rt}
}

func parseBody(req *http.Request, v any) error {
	if err := utils.ParseJSON(req.Body, v); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	return nil
}

type validator interface {
	validate() error
}

func (s *SmartChefs) handleGetChefs(w http.ResponseWriter, _ *http.Request) error {
	var chefs []altava.Address
	if err := s.rt.View(func(env *xenv.Environment) (err error) {
		chefs, err = builtin.MasterChef.WithEnv(env).Chefs()
		return
	}); err != nil {
		return err
	}
	if chefs == nil {
		chefs = []altava.Address{}
	}
	return utils.WriteJSON(w, chefs)
}

func (s *SmartChefs) handleDeploy(w http.ResponseWriter, req *http.Request) error {
	caller, err := utils.Caller(req)
	if err != nil {
		return err
	}
	var body DeployRequest
	if err := parseBody(req, &body); err != nil {
		return err
	}
	rewardPerBlock := utils.BigInt(body.RewardPerBlock)
	if rewardPerBlock == nil {
		return utils.BadRequest(errors.New("rewardPerBlock: required"))
	}
	controller := builtin.BoosterController.Address
	if body.BoosterController != nil {
		controller = *body.BoosterController
	}

	var addr altava.Address
	receipt, err := s.rt.Execute("masterchef.deploy", caller, func(env *xenv.Environment) (err error) {
		addr, err = builtin.MasterChef.WithEnv(env).Deploy(caller, &masterchef.DeployParams{
			ID:                body.ID,
			RewardLabel:       body.RewardLabel,
			StakedToken:       body.StakedToken,
			RewardToken:       body.RewardToken,
			RewardPerBlock:    rewardPerBlock,
			StartBlock:        body.StartBlock,
			EndBlock:          body.EndBlock,
			Airdrop:           body.Airdrop,
			BoosterController: controller,
		})
		return
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Deployed{addr, utils.ConvertReceipt(receipt)})
}

func (s *SmartChefs) handleGetChef(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "chef")
	if err != nil {
		return err
	}
	var out *Chef
	if err := s.rt.View(func(env *xenv.Environment) error {
		chef := smartchef.New(env, addr)
		cfg, err := chef.Config()
		if err != nil {
			return err
		}
		owner, err := chef.Owner()
		if err != nil {
			return err
		}
		out = convertChef(addr, owner, cfg)
		return nil
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, out)
}

func (s *SmartChefs) handleGetUser(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "chef")
	if err != nil {
		return err
	}
	user, err := utils.AddressVar(req, "user")
	if err != nil {
		return err
	}
	var out User
	if err := s.rt.View(func(env *xenv.Environment) error {
		chef := smartchef.New(env, addr)
		info, err := chef.UserInfo(user)
		if err != nil {
			return err
		}
		pending, err := chef.PendingReward(user)
		if err != nil {
			return err
		}
		live, err := chef.StakerBoosterValue(user)
		if err != nil {
			return err
		}
		out = User{
			LockedAmount:  utils.Amount(info.LockedAmount),
			LockStartTime: info.LockStartTime,
			LockEndTime:   info.LockEndTime,
			Locked:        info.Locked,
			RewardDebt:    utils.Amount(info.RewardDebt),
			Rewards:       utils.Amount(info.Rewards),
			BoosterValue:  info.BoosterValue,
			Pending:       utils.Amount(pending),
			LiveBooster:   live,
		}
		return nil
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, &out)
}

// call runs fn against the chef addressed by the request as the request caller.
func (s *SmartChefs) call(w http.ResponseWriter, req *http.Request, method string, body any, fn func(chef *smartchef.SmartChef, caller altava.Address) error) error {
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
		if v, ok := body.(validator); ok {
			if err := v.validate(); err != nil {
				return utils.BadRequest(err)
			}
		}
	}
	return utils.Execute(w, s.rt, method, caller, func(env *xenv.Environment) error {
		return fn(smartchef.New(env, addr), caller)
	})
}

func (s *SmartChefs) handleStake(w http.ResponseWriter, req *http.Request) error {
	var body StakeRequest
	return s.call(w, req, "smartchef.stake", &body, func(chef *smartchef.SmartChef, caller altava.Address) error {
		return chef.Stake(caller, utils.BigInt(body.Amount), body.Duration)
	})
}

func (s *SmartChefs) handleUnlock(w http.ResponseWriter, req *http.Request) error {
	var body UnlockRequest
	return s.call(w, req, "smartchef.unlock", &body, func(chef *smartchef.SmartChef, caller altava.Address) error {
		return chef.Unlock(caller, body.Receiver)
	})
}

func (s *SmartChefs) handleStakeCollateral(w http.ResponseWriter, req *http.Request) error {
	var body IDsRequest
	return s.call(w, req, "smartchef.stakeCollateral", &body, func(chef *smartchef.SmartChef, caller altava.Address) error {
		return chef.StakeCollateral(caller, body.IDs)
	})
}

func (s *SmartChefs) handleUnstakeCollateral(w http.ResponseWriter, req *http.Request) error {
	var body IDsRequest
	return s.call(w, req, "smartchef.unstakeCollateral", &body, func(chef *smartchef.SmartChef, caller altava.Address) error {
		return chef.UnstakeCollateral(caller, body.IDs)
	})
}

func (s *SmartChefs) handleUpdateRewardPerBlock(w http.ResponseWriter, req *http.Request) error {
	var body AmountRequest
	return s.call(w, req, "smartchef.updateRewardPerBlock", &body, func(chef *smartchef.SmartChef, caller altava.Address) error {
		return chef.UpdateRewardPerBlock(caller, utils.BigInt(body.Amount))
	})
}

func (s *SmartChefs) handleUpdateBlocks(w http.ResponseWriter, req *http.Request) error {
	var body BlocksRequest
	return s.call(w, req, "smartchef.updateStartAndEndBlocks", &body, func(chef *smartchef.SmartChef, caller altava.Address) error {
		return chef.UpdateStartAndEndBlocks(caller, body.StartBlock, body.EndBlock)
	})
}

func (s *SmartChefs) handleSetPause(w http.ResponseWriter, req *http.Request) error {
	var body PauseRequest
	return s.call(w, req, "smartchef.setPause", &body, func(chef *smartchef.SmartChef, caller altava.Address) error {
		return chef.SetPause(caller, body.Paused)
	})
}

func (s *SmartChefs) handleSetBoosterController(w http.ResponseWriter, req *http.Request) error {
	var body AddressRequest
	return s.call(w, req, "smartchef.setBoosterController", &body, func(chef *smartchef.SmartChef, caller altava.Address) error {
		return chef.SetBoosterController(caller, body.Address)
	})
}

func (s *SmartChefs) handleEmergencyWithdraw(w http.ResponseWriter, req *http.Request) error {
	var body AmountRequest
	return s.call(w, req, "smartchef.emergencyRewardWithdraw", &body, func(chef *smartchef.SmartChef, caller altava.Address) error {
		return chef.EmergencyRewardWithdraw(caller, utils.BigInt(body.Amount))
	})
}

func (s *SmartChefs) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("smartchefs_get_chefs").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetChefs))
	sub.Path("").
		Methods(http.MethodPost).
		Name("smartchefs_deploy").
		HandlerFunc(utils.WrapHandlerFunc(s.handleDeploy))
	sub.Path("/{chef}").
		Methods(http.MethodGet).
		Name("smartchefs_get_chef").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetChef))
	sub.Path("/{chef}/users/{user}").
		Methods(http.MethodGet).
		Name("smartchefs_get_user").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetUser))

	for _, r := range []struct {
		path    string
		name    string
		handler utils.HandlerFunc
	}{
		{"/{chef}/stake", "smartchefs_stake", s.handleStake},
		{"/{chef}/unlock", "smartchefs_unlock", s.handleUnlock},
		{"/{chef}/collateral/stake", "smartchefs_stake_collateral", s.handleStakeCollateral},
		{"/{chef}/collateral/unstake", "smartchefs_unstake_collateral", s.handleUnstakeCollateral},
		{"/{chef}/reward-per-block", "smartchefs_update_reward_per_block", s.handleUpdateRewardPerBlock},
		{"/{chef}/blocks", "smartchefs_update_blocks", s.handleUpdateBlocks},
		{"/{chef}/pause", "smartchefs_set_pause", s.handleSetPause},
		{"/{chef}/booster-controller", "smartchefs_set_booster_controller", s.handleSetBoosterController},
		{"/{chef}/emergency-withdraw", "smartchefs_emergency_withdraw", s.handleEmergencyWithdraw},
	} {
		sub.Path(r.path).
			Methods(http.MethodPost).
			Name(r.name).
			HandlerFunc(utils.WrapHandlerFunc(r.handler))
	}
}
