// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package collateral

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/0xdhu/ALTAVA-staking-contract/altava"
	"github.com/0xdhu/ALTAVA-staking-contract/api/utils"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin"
	"github.com/0xdhu/ALTAVA-staking-contract/runtime"
	"github.com/0xdhu/ALTAVA-staking-contract/xenv"
)

type Registry struct {
	Address       altava.Address `json:"address"`
	Collection    altava.Address `json:"collection"`
	MasterChef    altava.Address `json:"masterChef"`
	NFTMasterChef altava.Address `json:"nftMasterChef"`
	Owner         altava.Address `json:"owner"`
}

type Staked struct {
	IDs   []uint64 `json:"ids"`
	Count uint64   `json:"count"`
}

type IDsRequest struct {
	IDs []uint64 `json:"ids"`
}

type AddressRequest struct {
	Address altava.Address `json:"address"`
}

type Collateral struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Collateral {
	return &Collateral{rt}
}

func (c *Collateral) handleGetRegistry(w http.ResponseWriter, _ *http.Request) error {
	out := Registry{Address: builtin.NFTStaking.Address}
	if err := c.rt.View(func(env *xenv.Environment) (err error) {
		r := builtin.NFTStaking.WithEnv(env)
		if out.Collection, err = r.Collection(); err != nil {
			return
		}
		if out.MasterChef, err = r.MasterChef(); err != nil {
			return
		}
		if out.NFTMasterChef, err = r.NFTMasterChef(); err != nil {
			return
		}
		out.Owner, err = r.Owner()
		return
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, &out)
}

func (c *Collateral) handleGetStaked(w http.ResponseWriter, req *http.Request) error {
	user, err := utils.AddressVar(req, "user")
	if err != nil {
		return err
	}
	var ids []uint64
	if err := c.rt.View(func(env *xenv.Environment) (err error) {
		ids, err = builtin.NFTStaking.WithEnv(env).StakedIDs(user)
		return
	}); err != nil {
		return err
	}
	if ids == nil {
		ids = []uint64{}
	}
	return utils.WriteJSON(w, &Staked{ids, uint64(len(ids))})
}

func (c *Collateral) handleStake(w http.ResponseWriter, req *http.Request) error {
	caller, err := utils.Caller(req)
	if err != nil {
		return err
	}
	var body IDsRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	return utils.Execute(w, c.rt, "collateral.stake", caller, func(env *xenv.Environment) error {
		return builtin.NFTStaking.WithEnv(env).Stake(caller, body.IDs)
	})
}

func (c *Collateral) handleUnstake(w http.ResponseWriter, req *http.Request) error {
	caller, err := utils.Caller(req)
	if err != nil {
		return err
	}
	var body IDsRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	return utils.Execute(w, c.rt, "collateral.unstake", caller, func(env *xenv.Environment) error {
		return builtin.NFTStaking.WithEnv(env).Unstake(caller, body.IDs)
	})
}

func (c *Collateral) handleSetMasterChef(w http.ResponseWriter, req *http.Request) error {
	caller, err := utils.Caller(req)
	if err != nil {
		return err
	}
	var body AddressRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	return utils.Execute(w, c.rt, "collateral.setMasterChef", caller, func(env *xenv.Environment) error {
		return builtin.NFTStaking.WithEnv(env).SetMasterChef(caller, body.Address)
	})
}

func (c *Collateral) handleSetNFTMasterChef(w http.ResponseWriter, req *http.Request) error {
	caller, err := utils.Caller(req)
	if err != nil {
		return err
	}
	var body AddressRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	return utils.Execute(w, c.rt, "collateral.setNFTMasterChef", caller, func(env *xenv.Environment) error {
		return builtin.NFTStaking.WithEnv(env).SetNFTMasterChef(caller, body.Address)
	})
}

func (c *Collateral) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("collateral_get_registry").
		HandlerFunc(utils.WrapHandlerFunc(c.handleGetRegistry))
	sub.Path("/users/{user}").
		Methods(http.MethodGet).
		Name("collateral_get_staked").
		HandlerFunc(utils.WrapHandlerFunc(c.handleGetStaked))
	sub.Path("/stake").
		Methods(http.MethodPost).
		Name("collateral_stake").
		HandlerFunc(utils.WrapHandlerFunc(c.handleStake))
	sub.Path("/unstake").
		Methods(http.MethodPost).
		Name("collateral_unstake").
		HandlerFunc(utils.WrapHandlerFunc(c.handleUnstake))
	sub.Path("/masterchef").
		Methods(http.MethodPost).
		Name("collateral_set_masterchef").
		HandlerFunc(utils.WrapHandlerFunc(c.handleSetMasterChef))
	sub.Path("/nftmasterchef").
		Methods(http.MethodPost).
		Name("collateral_set_nftmasterchef").
		HandlerFunc(utils.WrapHandlerFunc(c.handleSetNFTMasterChef))
}
