// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tokens

import (
	"math/big"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/0xdhu/ALTAVA-staking-contract/api/utils"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/token"
	"github.com/0xdhu/ALTAVA-staking-contract/runtime"
	"github.com/0xdhu/ALTAVA-staking-contract/xenv"
)

type Tokens struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Tokens {
	return &Tokens{rt}
}

func (t *Tokens) handleGetToken(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	var out Token
	if err := t.rt.View(func(env *xenv.Environment) error {
		tk := token.New(env, addr)
		meta, err := tk.Meta()
		if err != nil {
			return err
		}
		if meta == nil || meta.Symbol == "" {
			return utils.HTTPError(errors.New("token not found"), http.StatusNotFound)
		}
		supply, err := tk.TotalSupply()
		if err != nil {
			return err
		}
		owner, err := tk.Owner()
		if err != nil {
			return err
		}
		out = Token{addr, meta.Name, meta.Symbol, meta.Decimals, utils.Amount(supply), owner}
		return nil
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, &out)
}

func (t *Tokens) handleGetBalance(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	owner, err := utils.AddressVar(req, "owner")
	if err != nil {
		return err
	}
	var bal *big.Int
	if err := t.rt.View(func(env *xenv.Environment) (err error) {
		bal, err = token.New(env, addr).BalanceOf(owner)
		return
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, &Balance{utils.Amount(bal)})
}

func (t *Tokens) handleGetAllowance(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	owner, err := utils.AddressVar(req, "owner")
	if err != nil {
		return err
	}
	spender, err := utils.AddressVar(req, "spender")
	if err != nil {
		return err
	}
	var allowance *big.Int
	if err := t.rt.View(func(env *xenv.Environment) (err error) {
		allowance, err = token.New(env, addr).Allowance(owner, spender)
		return
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, &Allowance{utils.Amount(allowance)})
}

func parseAmount(amount *big.Int) error {
	if amount == nil {
		return utils.BadRequest(errors.New("amount: required"))
	}
	return nil
}

func (t *Tokens) handleTransfer(w http.ResponseWriter, req *http.Request) error {
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
	amount := utils.BigInt(body.Amount)
	if err := parseAmount(amount); err != nil {
		return err
	}
	return utils.Execute(w, t.rt, "token.transfer", caller, func(env *xenv.Environment) error {
		return token.New(env, addr).Transfer(caller, body.To, amount)
	})
}

func (t *Tokens) handleTransferFrom(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	caller, err := utils.Caller(req)
	if err != nil {
		return err
	}
	var body TransferFromRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	amount := utils.BigInt(body.Amount)
	if err := parseAmount(amount); err != nil {
		return err
	}
	return utils.Execute(w, t.rt, "token.transferFrom", caller, func(env *xenv.Environment) error {
		return token.New(env, addr).TransferFrom(caller, body.From, body.To, amount)
	})
}

func (t *Tokens) handleApprove(w http.ResponseWriter, req *http.Request) error {
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
	amount := utils.BigInt(body.Amount)
	if err := parseAmount(amount); err != nil {
		return err
	}
	return utils.Execute(w, t.rt, "token.approve", caller, func(env *xenv.Environment) error {
		return token.New(env, addr).Approve(caller, body.Spender, amount)
	})
}

func (t *Tokens) handleMint(w http.ResponseWriter, req *http.Request) error {
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
	amount := utils.BigInt(body.Amount)
	if err := parseAmount(amount); err != nil {
		return err
	}
	return utils.Execute(w, t.rt, "token.mint", caller, func(env *xenv.Environment) error {
		return token.New(env, addr).Mint(caller, body.To, amount)
	})
}

func (t *Tokens) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("tokens_get_token").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetToken))
	sub.Path("/{address}/balances/{owner}").
		Methods(http.MethodGet).
		Name("tokens_get_balance").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetBalance))
	sub.Path("/{address}/allowances/{owner}/{spender}").
		Methods(http.MethodGet).
		Name("tokens_get_allowance").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetAllowance))
	sub.Path("/{address}/transfer").
		Methods(http.MethodPost).
		Name("tokens_transfer").
		HandlerFunc(utils.WrapHandlerFunc(t.handleTransfer))
	sub.Path("/{address}/transferFrom").
		Methods(http.MethodPost).
		Name("tokens_transfer_from").
		HandlerFunc(utils.WrapHandlerFunc(t.handleTransferFrom))
	sub.Path("/{address}/approve").
		Methods(http.MethodPost).
		Name("tokens_approve").
		HandlerFunc(utils.WrapHandlerFunc(t.handleApprove))
	sub.Path("/{address}/mint").
		Methods(http.MethodPost).
		Name("tokens_mint").
		HandlerFunc(utils.WrapHandlerFunc(t.handleMint))
}
