// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package boosters

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/0xdhu/ALTAVA-staking-contract/altava"
	"github.com/0xdhu/ALTAVA-staking-contract/api/utils"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/booster"
	"github.com/0xdhu/ALTAVA-staking-contract/runtime"
	"github.com/0xdhu/ALTAVA-staking-contract/xenv"
)

type Table struct {
	Chef  altava.Address `json:"chef"`
	Pairs []booster.Pair `json:"pairs"`
	Total int            `json:"total"`
}

type Value struct {
	Count uint64 `json:"count"`
	Value uint64 `json:"value"`
}

type ArrayRequest struct {
	Pairs []booster.Pair `json:"pairs"`
}

type Boosters struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Boosters {
	return &Boosters{rt}
}

func (b *Boosters) handleGetOwner(w http.ResponseWriter, _ *http.Request) error {
	var owner altava.Address
	if err := b.rt.View(func(env *xenv.Environment) (err error) {
		owner, err = builtin.BoosterController.WithEnv(env).Owner()
		return
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, utils.M{"address": builtin.BoosterController.Address, "owner": owner})
}

func (b *Boosters) handleGetTable(w http.ResponseWriter, req *http.Request) error {
	chef, err := utils.AddressVar(req, "chef")
	if err != nil {
		return err
	}
	out := Table{Chef: chef}
	if err := b.rt.View(func(env *xenv.Environment) (err error) {
		ctrl := builtin.BoosterController.WithEnv(env)
		if out.Pairs, err = ctrl.BoosterPairs(chef); err != nil {
			return
		}
		out.Total, err = ctrl.TotalPairCount(chef)
		return
	}); err != nil {
		return err
	}
	if out.Pairs == nil {
		out.Pairs = []booster.Pair{}
	}
	return utils.WriteJSON(w, &out)
}

func (b *Boosters) handleGetValue(w http.ResponseWriter, req *http.Request) error {
	chef, err := utils.AddressVar(req, "chef")
	if err != nil {
		return err
	}
	count, err := utils.Uint64Query(req, "count", 0)
	if err != nil {
		return err
	}
	out := Value{Count: count}
	if err := b.rt.View(func(env *xenv.Environment) (err error) {
		out.Value, err = builtin.BoosterController.WithEnv(env).BoosterAPR(chef, count)
		return
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, &out)
}

func (b *Boosters) handleSetArray(w http.ResponseWriter, req *http.Request) error {
	chef, err := utils.AddressVar(req, "chef")
	if err != nil {
		return err
	}
	caller, err := utils.Caller(req)
	if err != nil {
		return err
	}
	var body ArrayRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	return utils.Execute(w, b.rt, "booster.setArray", caller, func(env *xenv.Environment) error {
		return builtin.BoosterController.WithEnv(env).SetBoosterArray(caller, chef, body.Pairs)
	})
}

func (b *Boosters) handleSetValue(w http.ResponseWriter, req *http.Request) error {
	chef, err := utils.AddressVar(req, "chef")
	if err != nil {
		return err
	}
	caller, err := utils.Caller(req)
	if err != nil {
		return err
	}
	var body booster.Pair
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	return utils.Execute(w, b.rt, "booster.setValue", caller, func(env *xenv.Environment) error {
		return builtin.BoosterController.WithEnv(env).SetBoosterValue(caller, chef, body)
	})
}

func (b *Boosters) handleRemoveValue(w http.ResponseWriter, req *http.Request) error {
	chef, err := utils.AddressVar(req, "chef")
	if err != nil {
		return err
	}
	key, err := utils.Uint64Var(req, "key")
	if err != nil {
		return err
	}
	caller, err := utils.Caller(req)
	if err != nil {
		return err
	}
	return utils.Execute(w, b.rt, "booster.removeValue", caller, func(env *xenv.Environment) error {
		return builtin.BoosterController.WithEnv(env).RemoveBoosterValue(caller, chef, key)
	})
}

func (b *Boosters) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("boosters_get_owner").
		HandlerFunc(utils.WrapHandlerFunc(b.handleGetOwner))
	sub.Path("/{chef}").
		Methods(http.MethodGet).
		Name("boosters_get_table").
		HandlerFunc(utils.WrapHandlerFunc(b.handleGetTable))
	sub.Path("/{chef}").
		Methods(http.MethodPut).
		Name("boosters_set_array").
		HandlerFunc(utils.WrapHandlerFunc(b.handleSetArray))
	sub.Path("/{chef}/value").
		Methods(http.MethodGet).
		Name("boosters_get_value").
		HandlerFunc(utils.WrapHandlerFunc(b.handleGetValue))
	sub.Path("/{chef}/pairs").
		Methods(http.MethodPost).
		Name("boosters_set_value").
		HandlerFunc(utils.WrapHandlerFunc(b.handleSetValue))
	sub.Path("/{chef}/pairs/{key}").
		Methods(http.MethodDelete).
		Name("boosters_remove_value").
		HandlerFunc(utils.WrapHandlerFunc(b.handleRemoveValue))
}
