// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package nfts

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/0xdhu/ALTAVA-staking-contract/altava"
	"github.com/0xdhu/ALTAVA-staking-contract/api/utils"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/nft"
	"github.com/0xdhu/ALTAVA-staking-contract/runtime"
	"github.com/0xdhu/ALTAVA-staking-contract/xenv"
)

type Collection struct {
	Address     altava.Address `json:"address"`
	Name        string         `json:"name"`
	Symbol      string         `json:"symbol"`
	TotalSupply uint64         `json:"totalSupply"`
	Owner       altava.Address `json:"owner"`
}

type Token struct {
	ID       uint64         `json:"id"`
	Owner    altava.Address `json:"owner"`
	Approved altava.Address `json:"approved"`
}

type Balance struct {
	Balance uint64 `json:"balance"`
}

type TransferRequest struct {
	From altava.Address `json:"from"`
	To   altava.Address `json:"to"`
	ID   uint64         `json:"id"`
}

type ApproveRequest struct {
	To altava.Address `json:"to"`
	ID uint64         `json:"id"`
}

type NFTs struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *NFTs {
	return &NFTs{rt}
}

func (n *NFTs) handleGetCollection(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	var out Collection
	if err := n.rt.View(func(env *xenv.Environment) error {
		coll := nft.New(env, addr)
		meta, err := coll.Meta()
		if err != nil {
			return err
		}
		if meta == nil || meta.Symbol == "" {
			return utils.HTTPError(errors.New("collection not found"), http.StatusNotFound)
		}
		supply, err := coll.TotalSupply()
		if err != nil {
			return err
		}
		owner, err := coll.Owner()
		if err != nil {
			return err
		}
		out = Collection{addr, meta.Name, meta.Symbol, supply, owner}
		return nil
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, &out)
}

func (n *NFTs) handleGetToken(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	id, err := utils.Uint64Var(req, "id")
	if err != nil {
		return err
	}
	out := Token{ID: id}
	if err := n.rt.View(func(env *xenv.Environment) (err error) {
		coll := nft.New(env, addr)
		if out.Owner, err = coll.OwnerOf(id); err != nil {
			return
		}
		out.Approved, err = coll.GetApproved(id)
		return
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, &out)
}

func (n *NFTs) handleGetBalance(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	owner, err := utils.AddressVar(req, "owner")
	if err != nil {
		return err
	}
	var bal uint64
	if err := n.rt.View(func(env *xenv.Environment) (err error) {
		bal, err = nft.New(env, addr).BalanceOf(owner)
		return
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, &Balance{bal})
}

func (n *NFTs) handleTransfer(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	caller, err := utils.Caller(req)
	if err != nil {
		return err
	}
	var body TransferRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	return utils.Execute(w, n.rt, "nft.transferFrom", caller, func(env *xenv.Environment) error {
		return nft.New(env, addr).TransferFrom(caller, body.From, body.To, body.ID)
	})
}

func (n *NFTs) handleApprove(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	caller, err := utils.Caller(req)
	if err != nil {
		return err
	}
	var body ApproveRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	return utils.Execute(w, n.rt, "nft.approve", caller, func(env *xenv.Environment) error {
		return nft.New(env, addr).Approve(caller, body.To, body.ID)
	})
}

func (n *NFTs) handleMint(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	caller, err := utils.Caller(req)
	if err != nil {
		return err
	}
	var body ApproveRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	return utils.Execute(w, n.rt, "nft.mint", caller, func(env *xenv.Environment) error {
		return nft.New(env, addr).Mint(caller, body.To, body.ID)
	})
}

func (n *NFTs) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("nfts_get_collection").
		HandlerFunc(utils.WrapHandlerFunc(n.handleGetCollection))
	sub.Path("/{address}/tokens/{id}").
		Methods(http.MethodGet).
		Name("nfts_get_token").
		HandlerFunc(utils.WrapHandlerFunc(n.handleGetToken))
	sub.Path("/{address}/balances/{owner}").
		Methods(http.MethodGet).
		Name("nfts_get_balance").
		HandlerFunc(utils.WrapHandlerFunc(n.handleGetBalance))
	sub.Path("/{address}/transferFrom").
		Methods(http.MethodPost).
		Name("nfts_transfer_from").
		HandlerFunc(utils.WrapHandlerFunc(n.handleTransfer))
	sub.Path("/{address}/approve").
		Methods(http.MethodPost).
		Name("nfts_approve").
		HandlerFunc(utils.WrapHandlerFunc(n.handleApprove))
	sub.Path("/{address}/mint").
		Methods(http.MethodPost).
		Name("nfts_mint").
		HandlerFunc(utils.WrapHandlerFunc(n.handleMint))
}
